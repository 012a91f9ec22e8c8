package fontatlas

import "image"

// Glyph is the atlas placement and metrics of one character.
type Glyph struct {
	// Page is the index of the atlas page holding the bitmap.
	Page int

	// X and Y locate the bitmap on its page.
	X, Y int

	// Width and Height are the bitmap size in pixels. Both are zero for
	// glyphs with nothing to draw, such as a space.
	Width, Height int

	// AdvanceX is the horizontal pen advance.
	AdvanceX int

	// OffsetX and OffsetY place the bitmap relative to the pen position at
	// the top of the row.
	OffsetX, OffsetY int

	// kerning maps the dense index of a following glyph to an adjustment.
	kerning map[int]int
}

// Rect returns the bitmap rectangle on the glyph's page.
func (g Glyph) Rect() image.Rectangle {
	return image.Rect(g.X, g.Y, g.X+g.Width, g.Y+g.Height)
}

// Visible reports whether the glyph has a bitmap.
func (g Glyph) Visible() bool {
	return g.Width > 0 && g.Height > 0
}

// glyphTable stores glyphs by dense index with a sparse code point mapping.
type glyphTable struct {
	glyphs     []Glyph
	mapping    map[rune]int
	hasKerning bool
}

func newGlyphTable(n int) glyphTable {
	return glyphTable{
		glyphs:  make([]Glyph, 0, n),
		mapping: make(map[rune]int, n),
	}
}

// lookup resolves a code point to a dense index.
func (t *glyphTable) lookup(r rune) (int, bool) {
	i, ok := t.mapping[r]
	return i, ok
}

// setKerning records the adjustment between the glyphs at dense indices
// first and second.
func (t *glyphTable) setKerning(first, second, amount int) {
	g := &t.glyphs[first]
	if g.kerning == nil {
		g.kerning = make(map[int]int)
	}
	g.kerning[second] = amount
}

// kerning returns the adjustment between two code points.
func (t *glyphTable) kerning(c, d rune) int {
	if !t.hasKerning || c == '\n' || d == '\n' {
		return 0
	}
	i, ok := t.lookup(c)
	if !ok {
		return 0
	}
	j, ok := t.lookup(d)
	if !ok {
		return 0
	}
	return t.glyphs[i].kerning[j]
}
