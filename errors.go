package fontatlas

import (
	"errors"
	"strconv"
)

// Sentinel errors for fontatlas package.
var (
	// ErrInvalidInput is returned for a non-positive point size, empty font
	// data or a resource name with no recognized extension.
	ErrInvalidInput = errors.New("fontatlas: invalid input")

	// ErrEngine is returned when the outline engine cannot parse or size
	// a font program.
	ErrEngine = errors.New("fontatlas: outline engine failure")

	// ErrMissingSection is returned when a glyph-sheet descriptor lacks
	// its font root or its pages section.
	ErrMissingSection = errors.New("fontatlas: descriptor section missing")

	// ErrPageLoad is returned when a glyph-sheet page image is missing or
	// cannot be decoded.
	ErrPageLoad = errors.New("fontatlas: page image load failed")

	// ErrPackingOverflow is returned when a padded glyph is larger than the
	// maximum page size.
	ErrPackingOverflow = errors.New("fontatlas: glyph exceeds maximum page size")

	// ErrTextureCreation is returned when a page texture cannot be created.
	ErrTextureCreation = errors.New("fontatlas: texture creation failed")

	// ErrHeadless is returned when a face is requested from a font with no
	// texture creator.
	ErrHeadless = errors.New("fontatlas: no texture creator configured")
)

// BuildError is returned when a face cannot be built. Err wraps one of the
// sentinel errors of this package.
type BuildError struct {
	Font      string
	PointSize int
	Err       error
}

func (e *BuildError) Error() string {
	return "fontatlas: build " + e.Font + " at size " + strconv.Itoa(e.PointSize) + ": " + e.Err.Error()
}

func (e *BuildError) Unwrap() error {
	return e.Err
}
