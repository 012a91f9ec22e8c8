package outline

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"iter"

	gotext "github.com/go-text/typesetting/font"
	ot "github.com/go-text/typesetting/font/opentype"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// GlyphIndex is a glyph index within a font program.
type GlyphIndex uint16

// GlyphMetrics holds the whole-pixel metrics of one glyph.
type GlyphMetrics struct {
	// Width and Height of the glyph bitmap.
	Width, Height int

	// BearingX is the distance from the pen position to the left edge of
	// the bitmap.
	BearingX int

	// BearingY is the distance from the baseline up to the top edge of the
	// bitmap.
	BearingY int

	// Advance is the horizontal pen advance.
	Advance int
}

var kernTag = ot.MustNewTag("kern")

// Face is a font program sized for rasterization.
// Face is not safe for concurrent use.
type Face struct {
	lib     *Library
	sfnt    *sfnt.Font
	cmap    *gotext.Font
	buf     sfnt.Buffer
	ppem    fixed.Int26_6
	metrics font.Metrics
	kerning bool
	closed  bool
}

// NewFace parses a font program and sizes it to pointSize at DPI.
// The data must not be modified while the face is in use.
func (l *Library) NewFace(data []byte, pointSize float64) (*Face, error) {
	if l.closed.Load() {
		return nil, ErrLibraryClosed
	}
	if len(data) == 0 {
		return nil, ErrEmptyFontData
	}
	if pointSize <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSize, pointSize)
	}

	sf, err := sfnt.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("outline: parse font: %w", err)
	}
	gf, err := gotext.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("outline: parse character map: %w", err)
	}

	f := &Face{
		lib:  l,
		sfnt: sf,
		cmap: gf.Font,
		ppem: fixed.Int26_6(pointSize*DPI/72*64 + 0.5),
	}
	f.metrics, err = sf.Metrics(&f.buf, f.ppem, font.HintingFull)
	if err != nil {
		return nil, fmt.Errorf("outline: set point size %v: %w", pointSize, err)
	}
	f.kerning = hasKerning(gf.Font)

	l.open.Add(1)
	return f, nil
}

// hasKerning reports whether the font carries pair kerning data that Kern
// can read: a kern table or a GPOS "kern" feature. AAT kerx tables are not
// read.
func hasKerning(f *gotext.Font) bool {
	if len(f.Kern) > 0 {
		return true
	}
	for _, feat := range f.GPOS.Features {
		if feat.Tag == kernTag {
			return true
		}
	}
	return false
}

// Close releases the face. It is safe to call Close more than once.
func (f *Face) Close() {
	if f.closed {
		return
	}
	f.closed = true
	f.lib.open.Add(-1)
}

// Chars iterates over every code point the character map defines, paired
// with its glyph index. Entries mapping to glyph 0 are skipped.
func (f *Face) Chars() iter.Seq2[rune, GlyphIndex] {
	return func(yield func(rune, GlyphIndex) bool) {
		it := f.cmap.Cmap.Iter()
		for it.Next() {
			r, gid := it.Char()
			if gid == 0 || gid > 0xFFFF {
				continue
			}
			if !yield(r, GlyphIndex(gid)) {
				return
			}
		}
	}
}

// NumGlyphs returns the number of glyphs in the font program.
func (f *Face) NumGlyphs() int {
	return f.sfnt.NumGlyphs()
}

// LineHeight returns the recommended baseline-to-baseline distance,
// rounded up to a whole pixel.
func (f *Face) LineHeight() int {
	return f.metrics.Height.Ceil()
}

// Ascent returns the distance from the top of a line to its baseline.
func (f *Face) Ascent() int {
	return f.metrics.Ascent.Ceil()
}

// HasKerning reports whether kerning queries can return non-zero values.
func (f *Face) HasKerning() bool {
	return f.kerning
}

// Metrics measures one glyph.
func (f *Face) Metrics(gi GlyphIndex) (GlyphMetrics, error) {
	bounds, advance, err := f.sfnt.GlyphBounds(&f.buf, sfnt.GlyphIndex(gi), f.ppem, font.HintingFull)
	if err != nil {
		return GlyphMetrics{}, fmt.Errorf("outline: glyph %d bounds: %w", gi, err)
	}
	m := GlyphMetrics{Advance: advance.Floor()}
	if bounds.Empty() {
		return m, nil
	}
	minX, minY := bounds.Min.X.Floor(), bounds.Min.Y.Floor()
	m.Width = bounds.Max.X.Ceil() - minX
	m.Height = bounds.Max.Y.Ceil() - minY
	m.BearingX = minX
	m.BearingY = -minY
	return m, nil
}

// Kern returns the horizontal adjustment in whole pixels between glyphs a
// and b, in that order. Pairs without kerning return 0.
func (f *Face) Kern(a, b GlyphIndex) int {
	if !f.kerning {
		return 0
	}
	k, err := f.sfnt.Kern(&f.buf, sfnt.GlyphIndex(a), sfnt.GlyphIndex(b), f.ppem, font.HintingFull)
	if err != nil {
		return 0
	}
	return k.Floor()
}

// Rasterize draws the coverage of glyph gi into r of dst. The glyph's
// bounding box, as reported by Metrics, is aligned with r.Min; pixels of
// dst outside r are not touched.
func (f *Face) Rasterize(gi GlyphIndex, dst *image.Alpha, r image.Rectangle) error {
	r = r.Intersect(dst.Bounds())
	if r.Empty() {
		return nil
	}

	bounds, _, err := f.sfnt.GlyphBounds(&f.buf, sfnt.GlyphIndex(gi), f.ppem, font.HintingFull)
	if err != nil {
		return fmt.Errorf("outline: glyph %d bounds: %w", gi, err)
	}
	// Segments are only valid until f.buf is used again.
	segments, err := f.sfnt.LoadGlyph(&f.buf, sfnt.GlyphIndex(gi), f.ppem, nil)
	if err != nil {
		if errors.Is(err, sfnt.ErrColoredGlyph) {
			return ErrNoOutline
		}
		return fmt.Errorf("outline: glyph %d outline: %w", gi, err)
	}

	biasX := -fixed.I(bounds.Min.X.Floor())
	biasY := -fixed.I(bounds.Min.Y.Floor())

	z := f.lib.getRasterizer(r.Dx(), r.Dy())
	defer f.lib.putRasterizer(z)
	z.DrawOp = draw.Src

	for _, seg := range segments {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			z.MoveTo(toPx(seg.Args[0].X+biasX), toPx(seg.Args[0].Y+biasY))
		case sfnt.SegmentOpLineTo:
			z.LineTo(toPx(seg.Args[0].X+biasX), toPx(seg.Args[0].Y+biasY))
		case sfnt.SegmentOpQuadTo:
			z.QuadTo(
				toPx(seg.Args[0].X+biasX), toPx(seg.Args[0].Y+biasY),
				toPx(seg.Args[1].X+biasX), toPx(seg.Args[1].Y+biasY),
			)
		case sfnt.SegmentOpCubeTo:
			z.CubeTo(
				toPx(seg.Args[0].X+biasX), toPx(seg.Args[0].Y+biasY),
				toPx(seg.Args[1].X+biasX), toPx(seg.Args[1].Y+biasY),
				toPx(seg.Args[2].X+biasX), toPx(seg.Args[2].Y+biasY),
			)
		}
	}
	z.Draw(dst, r, image.Opaque, image.Point{})
	return nil
}

func toPx(x fixed.Int26_6) float32 {
	return float32(x) / 64
}
