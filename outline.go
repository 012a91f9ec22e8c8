package fontatlas

import (
	"fmt"
	"image"
	"iter"
	"slices"
	"strconv"

	"github.com/gogpu/fontatlas/internal/pack"
	"github.com/gogpu/fontatlas/outline"
)

// Point size limits for outline fonts.
const (
	MinPointSize = 1
	MaxPointSize = 96
)

// outlineEngine creates sized faces from font programs.
type outlineEngine interface {
	NewFace(data []byte, pointSize float64) (outlineFace, error)
}

// outlineFace is the engine surface the outline pipeline depends on.
type outlineFace interface {
	Chars() iter.Seq2[rune, outline.GlyphIndex]
	NumGlyphs() int
	Metrics(gi outline.GlyphIndex) (outline.GlyphMetrics, error)
	LineHeight() int
	Ascent() int
	HasKerning() bool
	Kern(a, b outline.GlyphIndex) int
	Rasterize(gi outline.GlyphIndex, dst *image.Alpha, r image.Rectangle) error
	Close()
}

// sharedEngine builds faces with the process-wide outline library.
type sharedEngine struct{}

func (sharedEngine) NewFace(data []byte, pointSize float64) (outlineFace, error) {
	f, err := outline.Shared().NewFace(data, pointSize)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// clampPointSize validates a requested outline size and clamps it to
// MaxPointSize.
func clampPointSize(pointSize int) (int, error) {
	if pointSize < MinPointSize {
		return 0, fmt.Errorf("%w: point size %d", ErrInvalidInput, pointSize)
	}
	return min(pointSize, MaxPointSize), nil
}

// buildOutlineFace rasterizes every glyph of a font program into atlas
// pages at pointSize.
func buildOutlineFace(cfg *config, name string, data []byte, pointSize int) (*Face, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: empty font data", ErrInvalidInput)
	}
	pointSize, err := clampPointSize(pointSize)
	if err != nil {
		return nil, err
	}

	ef, err := cfg.engine.NewFace(data, float64(pointSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEngine, err)
	}
	defer ef.Close()

	log := Logger().With("font", name, "size", pointSize)

	// Code point mapping. The index space ends at the highest mapped index.
	mapping := make(map[rune]int)
	numGlyphs := 0
	for r, gi := range ef.Chars() {
		mapping[r] = int(gi)
		numGlyphs = max(numGlyphs, int(gi)+1)
	}

	table := newGlyphTable(numGlyphs)
	table.mapping = mapping
	table.glyphs = table.glyphs[:numGlyphs]

	ascent := ef.Ascent()
	rowHeight := ef.LineHeight()
	for i := range table.glyphs {
		m, err := ef.Metrics(outline.GlyphIndex(i))
		if err != nil {
			log.Debug("fontatlas: glyph metrics unavailable", "glyph", i, "err", err)
			continue
		}
		table.glyphs[i] = Glyph{
			Width:    m.Width,
			Height:   m.Height,
			AdvanceX: m.Advance,
			OffsetX:  m.BearingX,
			OffsetY:  ascent - m.BearingY,
		}
		rowHeight = max(rowHeight, m.Height)
	}

	if ef.HasKerning() {
		table.hasKerning = true
		pairs := kernOutline(ef, &table)
		log.Debug("fontatlas: kerning loaded", "pairs", pairs)
	}

	images, err := packGlyphs(table.glyphs)
	if err != nil {
		return nil, err
	}
	for i, g := range table.glyphs {
		if !g.Visible() {
			continue
		}
		if err := ef.Rasterize(outline.GlyphIndex(i), images[g.Page], g.Rect()); err != nil {
			log.Debug("fontatlas: glyph rasterization failed", "glyph", i, "err", err)
		}
	}

	scale := normalizeOpacity(images, table.glyphs)
	log.Debug("fontatlas: glyphs packed",
		"glyphs", numGlyphs, "fontGlyphs", ef.NumGlyphs(), "mapped", len(mapping),
		"pages", len(images), "opacityScale", scale)

	pages, err := newPages(cfg, name, images)
	if err != nil {
		return nil, err
	}
	return &Face{
		glyphTable: table,
		pages:      pages,
		rowHeight:  rowHeight,
		pointSize:  pointSize,
	}, nil
}

// kernOutline stores the non-zero kerning between every ordered pair of
// glyphs reachable from the code point mapping. It returns the number of
// pairs stored.
func kernOutline(ef outlineFace, table *glyphTable) int {
	reachable := make([]int, 0, len(table.mapping))
	for _, i := range table.mapping {
		reachable = append(reachable, i)
	}
	slices.Sort(reachable)
	reachable = slices.Compact(reachable)

	pairs := 0
	for _, a := range reachable {
		for _, b := range reachable {
			if k := ef.Kern(outline.GlyphIndex(a), outline.GlyphIndex(b)); k != 0 {
				table.setKerning(a, b, k)
				pairs++
			}
		}
	}
	return pairs
}

// packGlyphs assigns every visible glyph a page and position, padding each
// by one pixel on the right and bottom. A glyph that does not fit on the
// current page starts a new one. It returns the blank page images, at
// least one.
func packGlyphs(glyphs []Glyph) ([]*image.Alpha, error) {
	var sizes []image.Point
	alloc := pack.NewPageAllocator()

	for i := range glyphs {
		g := &glyphs[i]
		if !g.Visible() {
			g.Page, g.X, g.Y = 0, 0, 0
			continue
		}
		w, h := g.Width+1, g.Height+1
		if !alloc.Fits(w, h) {
			return nil, fmt.Errorf("%w: glyph %d is %dx%d, maximum page is %dx%d",
				ErrPackingOverflow, i, w, h, pack.MaxPageSize, pack.MaxPageSize)
		}

		x, y, ok := alloc.Allocate(w, h)
		if !ok {
			sizes = append(sizes, closePage(alloc, len(sizes)))
			alloc = pack.NewPageAllocator()
			if x, y, ok = alloc.Allocate(w, h); !ok {
				return nil, fmt.Errorf("%w: glyph %d", ErrPackingOverflow, i)
			}
		}
		g.Page, g.X, g.Y = len(sizes), x, y
	}
	sizes = append(sizes, closePage(alloc, len(sizes)))

	images := make([]*image.Alpha, len(sizes))
	for i, s := range sizes {
		images[i] = newAlphaPage(s)
	}
	return images, nil
}

// closePage returns the final size of a packed page.
func closePage(alloc *pack.AreaAllocator, page int) image.Point {
	Logger().Debug("fontatlas: page packed", "page", page,
		"width", alloc.Width(), "height", alloc.Height(), "utilization", alloc.Utilization())
	return alloc.Size()
}

// newPages creates a texture per page image. On failure the textures
// already created are released.
func newPages(cfg *config, name string, images []*image.Alpha) ([]*Page, error) {
	pages := make([]*Page, 0, len(images))
	for i, img := range images {
		p, err := newPage(cfg, img, name+" page "+strconv.Itoa(i))
		if err != nil {
			for _, p := range pages {
				p.release()
			}
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, nil
}
