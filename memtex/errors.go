package memtex

import "errors"

// Sentinel errors for memtex package.
var (
	// ErrBudgetExceeded is returned when a single texture is larger than
	// the whole device budget.
	ErrBudgetExceeded = errors.New("memtex: texture budget exceeded")

	// ErrInvalidSize is returned for textures with a non-positive edge.
	ErrInvalidSize = errors.New("memtex: invalid texture size")

	// ErrDataSize is returned when pixel data does not match the texture
	// size and format.
	ErrDataSize = errors.New("memtex: pixel data does not match texture size")

	// ErrUnsupportedFormat is returned for formats the device cannot store.
	ErrUnsupportedFormat = errors.New("memtex: unsupported texture format")
)
