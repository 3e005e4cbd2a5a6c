package allocator

import (
	"errors"
	"fmt"

	"buddyarena/allocator/buddy"
)

var (
	ErrUniverseNotPow2 = errors.New("universe size must be a power of two")
	ErrMinBlockNotPow2 = errors.New("min block size must be a power of two")
	ErrMaxBlockNotPow2 = errors.New("max block size must be a power of two")
	ErrBlockSizeRange  = errors.New("require min block size <= max block size <= universe size")
)

// Config carries the sizing constraints for a Manager. Sizes are counted in
// the same units the backing store is indexed in (bytes, elements, ...).
//
// MinBlockSize and MaxBlockSize bound the block sizes handed out for new
// requests. They do not bound coalescing: freed buddies merge all the way
// back to the universe root regardless of MaxBlockSize.
type Config struct {
	// UniverseSize is the total managed range [0, UniverseSize).
	// Must be a power of two.
	UniverseSize int

	// MinBlockSize is the smallest block ever reserved. Requests smaller
	// than this are rounded up to it. Zero means 1.
	MinBlockSize int

	// MaxBlockSize is the largest block a single request may reserve.
	// Requests that round above it fail. Zero means UniverseSize.
	MaxBlockSize int
}

// withDefaults returns c with zero sizes replaced by their defaults.
func (c Config) withDefaults() Config {
	if c.MinBlockSize == 0 {
		c.MinBlockSize = 1
	}
	if c.MaxBlockSize == 0 {
		c.MaxBlockSize = c.UniverseSize
	}
	return c
}

// Validate checks the construction preconditions. A Config that fails
// validation indicates a programming error in the host; New refuses it.
func (c Config) Validate() error {
	if !buddy.IsPowerOfTwo(c.UniverseSize) {
		return fmt.Errorf("%w: got %d", ErrUniverseNotPow2, c.UniverseSize)
	}
	if !buddy.IsPowerOfTwo(c.MinBlockSize) {
		return fmt.Errorf("%w: got %d", ErrMinBlockNotPow2, c.MinBlockSize)
	}
	if !buddy.IsPowerOfTwo(c.MaxBlockSize) {
		return fmt.Errorf("%w: got %d", ErrMaxBlockNotPow2, c.MaxBlockSize)
	}
	if c.MinBlockSize > c.MaxBlockSize || c.MaxBlockSize > c.UniverseSize {
		return fmt.Errorf("%w: min=%d max=%d universe=%d",
			ErrBlockSizeRange, c.MinBlockSize, c.MaxBlockSize, c.UniverseSize)
	}
	return nil
}
