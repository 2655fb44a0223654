// Package addressing splits memory addresses into the fields a
// set-associative cache uses to locate a block.
package addressing

import (
	"errors"
	"fmt"
)

const (
	// AddressBits is the width of the addresses that the cache accepts.
	AddressBits = 64

	// MaxSetBits bounds the number of sets a cache model can allocate.
	MaxSetBits = 24
)

var (
	// ErrInvalidAssociativity is returned when a geometry has no lines per
	// set.
	ErrInvalidAssociativity = errors.New("associativity must be at least 1")

	// ErrNegativeBits is returned when the set-index or block-offset width
	// is negative.
	ErrNegativeBits = errors.New("bit width must not be negative")

	// ErrNoTagBits is returned when the set-index and block-offset fields
	// leave no room for a tag.
	ErrNoTagBits = errors.New("set and block bits must leave at least one tag bit")

	// ErrTooManySets is returned when the cache would have more than
	// 2^MaxSetBits sets.
	ErrTooManySets = errors.New("too many set bits")
)

// Geometry describes the shape of a set-associative cache.
type Geometry struct {
	// SetBits is s. The cache has 2^s sets.
	SetBits int

	// Associativity is E, the number of lines in each set.
	Associativity int

	// BlockBits is b. Each block holds 2^b bytes.
	BlockBits int
}

// Validate checks that the geometry describes a cache that can be built.
func (g Geometry) Validate() error {
	if g.Associativity < 1 {
		return fmt.Errorf("%w, got E=%d", ErrInvalidAssociativity, g.Associativity)
	}

	if g.SetBits < 0 {
		return fmt.Errorf("%w, got s=%d", ErrNegativeBits, g.SetBits)
	}

	if g.BlockBits < 0 {
		return fmt.Errorf("%w, got b=%d", ErrNegativeBits, g.BlockBits)
	}

	if g.SetBits > MaxSetBits {
		return fmt.Errorf("%w, got s=%d, at most %d is supported",
			ErrTooManySets, g.SetBits, MaxSetBits)
	}

	if g.SetBits+g.BlockBits >= AddressBits {
		return fmt.Errorf("%w, got s=%d b=%d",
			ErrNoTagBits, g.SetBits, g.BlockBits)
	}

	return nil
}

// NumSets returns S, the number of sets.
func (g Geometry) NumSets() int {
	return 1 << g.SetBits
}

// BlockSize returns B, the number of bytes in a block.
func (g Geometry) BlockSize() uint64 {
	return 1 << g.BlockBits
}

// TotalSize returns the number of bytes the cache can hold.
func (g Geometry) TotalSize() uint64 {
	return uint64(g.NumSets()) * uint64(g.Associativity) * g.BlockSize()
}

func (g Geometry) String() string {
	return fmt.Sprintf("s=%d E=%d b=%d", g.SetBits, g.Associativity, g.BlockBits)
}
