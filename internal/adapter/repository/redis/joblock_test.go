package redis

import (
	"context"
	"testing"
	"time"
)

func TestJobLock_AcquireAndRelease(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	lock := NewJobLock(client)
	ctx := context.Background()

	held, err := lock.Acquire(ctx, "interest", time.Minute)
	if err != nil || !held {
		t.Fatalf("expected first acquire to succeed, got held=%v err=%v", held, err)
	}

	held, err = lock.Acquire(ctx, "interest", time.Minute)
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	if held {
		t.Fatal("expected second acquire to fail while the lease is held")
	}

	// A different job name is an independent lease.
	held, err = lock.Acquire(ctx, "installments", time.Minute)
	if err != nil || !held {
		t.Fatalf("expected an independent lease to succeed, got held=%v err=%v", held, err)
	}

	if err := lock.Release(ctx, "interest"); err != nil {
		t.Fatalf("release failed: %v", err)
	}

	held, err = lock.Acquire(ctx, "interest", time.Minute)
	if err != nil || !held {
		t.Fatalf("expected acquire after release to succeed, got held=%v err=%v", held, err)
	}
}

func TestJobLock_LeaseExpires(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	lock := NewJobLock(client)
	ctx := context.Background()

	if held, err := lock.Acquire(ctx, "interest", time.Second); err != nil || !held {
		t.Fatalf("expected acquire to succeed, got held=%v err=%v", held, err)
	}

	mr.FastForward(2 * time.Second)

	held, err := lock.Acquire(ctx, "interest", time.Second)
	if err != nil || !held {
		t.Fatalf("expected acquire after expiry to succeed, got held=%v err=%v", held, err)
	}
}

func TestJobLock_StaleReleaseKeepsCurrentLease(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	// Two instances sharing one Redis, as two deployed replicas would.
	first := NewJobLock(client)
	second := NewJobLock(client)
	ctx := context.Background()

	if held, err := first.Acquire(ctx, "interest", 50*time.Millisecond); err != nil || !held {
		t.Fatalf("expected first acquire to succeed, got held=%v err=%v", held, err)
	}

	// The first holder outlives its TTL; the lease falls to the second.
	mr.FastForward(time.Second)

	if held, err := second.Acquire(ctx, "interest", time.Minute); err != nil || !held {
		t.Fatalf("expected acquire after expiry to succeed, got held=%v err=%v", held, err)
	}

	// The stale holder's release must not free the second holder's lease.
	if err := first.Release(ctx, "interest"); err != nil {
		t.Fatalf("stale release failed: %v", err)
	}

	held, err := first.Acquire(ctx, "interest", time.Minute)
	if err != nil {
		t.Fatalf("acquire failed: %v", err)
	}
	if held {
		t.Fatal("lease was acquired while still held by another instance")
	}

	// The second holder can still release its own lease normally.
	if err := second.Release(ctx, "interest"); err != nil {
		t.Fatalf("release failed: %v", err)
	}
	if held, err := first.Acquire(ctx, "interest", time.Minute); err != nil || !held {
		t.Fatalf("expected acquire after owner release to succeed, got held=%v err=%v", held, err)
	}
}

func TestJobLock_ReleaseWithoutAcquireIsNoop(t *testing.T) {
	client, mr := newTestRedisClient(t)
	defer mr.Close()
	defer client.Close()

	lock := NewJobLock(client)
	if err := lock.Release(context.Background(), "interest"); err != nil {
		t.Fatalf("release without acquire failed: %v", err)
	}
}
