package postgres

import (
	"crypto/rand"
	"math/big"

	"github.com/oklog/ulid/v2"
)

// ULIDGenerator generates ULID-based IDs.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate generates a new ULID.
func (g *ULIDGenerator) Generate() string {
	return ulid.Make().String()
}

const accountNumberDigits = 16

// NumberGenerator generates candidate account numbers.
type NumberGenerator struct{}

// NewNumberGenerator creates a new NumberGenerator.
func NewNumberGenerator() *NumberGenerator {
	return &NumberGenerator{}
}

// AccountNumber returns a random 16-digit number. Uniqueness is the
// caller's problem; candidates are checked against existing accounts.
func (g *NumberGenerator) AccountNumber() string {
	digits := make([]byte, accountNumberDigits)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken.
			panic(err)
		}
		digits[i] = '0' + byte(n.Int64())
	}
	return string(digits)
}
