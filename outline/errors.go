package outline

import "errors"

// Sentinel errors for outline package.
var (
	// ErrEmptyFontData is returned when the font program is empty.
	ErrEmptyFontData = errors.New("outline: empty font data")

	// ErrInvalidSize is returned for a non-positive point size.
	ErrInvalidSize = errors.New("outline: point size must be positive")

	// ErrLibraryClosed is returned when creating a face from a library
	// that has been shut down.
	ErrLibraryClosed = errors.New("outline: library is shut down")

	// ErrNoOutline is returned when rasterizing a glyph that has no
	// monochrome vector outline, such as a color bitmap glyph.
	ErrNoOutline = errors.New("outline: glyph has no vector outline")
)
