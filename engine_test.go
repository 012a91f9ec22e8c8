package fontatlas

import (
	"errors"
	"image"
	"iter"
	"maps"
	"slices"

	"github.com/gogpu/fontatlas/outline"
)

// fakeGlyph describes one glyph served by fakeEngine.
type fakeGlyph struct {
	metrics   outline.GlyphMetrics
	coverage  uint8
	noMetrics bool
	rasterErr error
}

// fakeEngine is a deterministic outline engine. Glyph indices without an
// entry in glyphs fail their metrics query.
type fakeEngine struct {
	chars      map[rune]outline.GlyphIndex
	glyphs     map[outline.GlyphIndex]fakeGlyph
	kern       map[[2]outline.GlyphIndex]int
	lineHeight int
	ascent     int
	err        error

	sizes []float64
	open  int
}

var errFakeEngine = errors.New("fake engine: bad font")

func (e *fakeEngine) NewFace(data []byte, pointSize float64) (outlineFace, error) {
	e.sizes = append(e.sizes, pointSize)
	if e.err != nil {
		return nil, e.err
	}
	e.open++
	return &fakeFace{e: e}, nil
}

type fakeFace struct {
	e *fakeEngine
}

func (f *fakeFace) Chars() iter.Seq2[rune, outline.GlyphIndex] {
	return func(yield func(rune, outline.GlyphIndex) bool) {
		for _, r := range slices.Sorted(maps.Keys(f.e.chars)) {
			if !yield(r, f.e.chars[r]) {
				return
			}
		}
	}
}

func (f *fakeFace) NumGlyphs() int  { return len(f.e.glyphs) }
func (f *fakeFace) LineHeight() int { return f.e.lineHeight }
func (f *fakeFace) Ascent() int     { return f.e.ascent }
func (f *fakeFace) HasKerning() bool {
	return len(f.e.kern) > 0
}
func (f *fakeFace) Close() { f.e.open-- }

func (f *fakeFace) Metrics(gi outline.GlyphIndex) (outline.GlyphMetrics, error) {
	g, ok := f.e.glyphs[gi]
	if !ok || g.noMetrics {
		return outline.GlyphMetrics{}, errors.New("fake engine: no metrics")
	}
	return g.metrics, nil
}

func (f *fakeFace) Kern(a, b outline.GlyphIndex) int {
	return f.e.kern[[2]outline.GlyphIndex{a, b}]
}

func (f *fakeFace) Rasterize(gi outline.GlyphIndex, dst *image.Alpha, r image.Rectangle) error {
	g := f.e.glyphs[gi]
	if g.rasterErr != nil {
		return g.rasterErr
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			dst.Pix[dst.PixOffset(x, y)] = g.coverage
		}
	}
	return nil
}

// newFakeEngine returns an engine with 'A' (10x12), ' ' (empty), 'B' (8x8)
// and 'C' (metrics fail), all at coverage 64, and kerning A,B = -2.
func newFakeEngine() *fakeEngine {
	return &fakeEngine{
		chars: map[rune]outline.GlyphIndex{'A': 1, ' ': 2, 'B': 3, 'C': 4},
		glyphs: map[outline.GlyphIndex]fakeGlyph{
			0: {},
			1: {metrics: outline.GlyphMetrics{Width: 10, Height: 12, BearingX: 1, BearingY: 11, Advance: 11}, coverage: 64},
			2: {metrics: outline.GlyphMetrics{Advance: 5}},
			3: {metrics: outline.GlyphMetrics{Width: 8, Height: 8, BearingY: 8, Advance: 9}, coverage: 64},
			4: {noMetrics: true},
		},
		kern:       map[[2]outline.GlyphIndex]int{{1, 3}: -2},
		lineHeight: 14,
		ascent:     11,
	}
}
