package bmfont

import "errors"

// Sentinel errors for bmfont package.
var (
	// ErrNoFontElement is returned when a descriptor has no recognizable
	// root: neither a <font> element nor a leading text-format info line.
	ErrNoFontElement = errors.New("bmfont: could not find font element")

	// ErrNoPagesElement is returned when a descriptor declares no pages.
	ErrNoPagesElement = errors.New("bmfont: could not find pages element")
)
