package fontatlas

import (
	"iter"
	"maps"
	"slices"
)

// Face is a built glyph atlas for one font at one size.
//
// A Face is immutable; rebuilding produces a new Face. It is safe for
// concurrent reads.
type Face struct {
	glyphTable
	pages     []*Page
	rowHeight int
	pointSize int
}

// Glyph returns the glyph for code point r. It returns false when the
// face has no glyph for r and the caller should fall back.
func (f *Face) Glyph(r rune) (Glyph, bool) {
	i, ok := f.lookup(r)
	if !ok {
		return Glyph{}, false
	}
	return f.glyphs[i], true
}

// Kerning returns the adjustment to the advance between c and a following
// d. It returns 0 when either code point is unmapped, either is a newline
// or the face carries no kerning.
func (f *Face) Kerning(c, d rune) int {
	return f.kerning(c, d)
}

// HasKerning reports whether the font provided kerning data.
func (f *Face) HasKerning() bool {
	return f.hasKerning
}

// RowHeight returns the distance between successive baselines in pixels.
func (f *Face) RowHeight() int {
	return f.rowHeight
}

// PointSize returns the size the face was built for. Glyph-sheet faces
// report the size declared by their descriptor.
func (f *Face) PointSize() int {
	return f.pointSize
}

// NumGlyphs returns the number of glyph records, including unmapped ones.
func (f *Face) NumGlyphs() int {
	return len(f.glyphs)
}

// Pages returns the atlas pages. The slice must not be modified.
func (f *Face) Pages() []*Page {
	return f.pages
}

// All iterates over the mapped code points in ascending order.
func (f *Face) All() iter.Seq2[rune, Glyph] {
	return func(yield func(rune, Glyph) bool) {
		for _, r := range slices.Sorted(maps.Keys(f.mapping)) {
			if !yield(r, f.glyphs[f.mapping[r]]) {
				return
			}
		}
	}
}

// TotalTextureSize returns the summed pixel area of all pages.
func (f *Face) TotalTextureSize() int {
	total := 0
	for _, p := range f.pages {
		total += p.Width() * p.Height()
	}
	return total
}

// IsDataLost reports whether any page texture has lost its data.
func (f *Face) IsDataLost() bool {
	for _, p := range f.pages {
		if p.IsDataLost() {
			return true
		}
	}
	return false
}

// release frees the page textures.
func (f *Face) release() {
	for _, p := range f.pages {
		p.release()
	}
}
