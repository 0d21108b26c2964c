package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lease only when it still carries this holder's
// token. A holder that outlived its TTL must not free a lease someone else
// has since acquired.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// JobLock implements usecase.JobLock as a Redis SetNX lease. Only one
// instance runs a named sweep at a time; the TTL releases a lease held by a
// crashed holder. Each Acquire stores a per-holder token so a stale Release
// cannot break the next holder's lease.
type JobLock struct {
	client *redis.Client
	prefix string

	mu     sync.Mutex
	tokens map[string]string
}

// NewJobLock creates a new JobLock.
func NewJobLock(client *redis.Client) *JobLock {
	return &JobLock{
		client: client,
		prefix: "joblock:",
		tokens: make(map[string]string),
	}
}

// Acquire takes the named lease. It reports false when another holder has it.
func (l *JobLock) Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	token, err := newToken()
	if err != nil {
		return false, err
	}

	acquired, err := l.client.SetNX(ctx, l.prefix+name, token, ttl).Result()
	if err != nil || !acquired {
		return false, err
	}

	l.mu.Lock()
	l.tokens[name] = token
	l.mu.Unlock()

	return true, nil
}

// Release frees the named lease if this holder still owns it. Releasing a
// lease that has expired and been re-acquired elsewhere is a no-op.
func (l *JobLock) Release(ctx context.Context, name string) error {
	l.mu.Lock()
	token, ok := l.tokens[name]
	delete(l.tokens, name)
	l.mu.Unlock()

	if !ok {
		return nil
	}

	return releaseScript.Run(ctx, l.client, []string{l.prefix + name}, token).Err()
}

func newToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
