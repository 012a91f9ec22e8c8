package fontatlas

import (
	"fmt"
	"image"
	"path"

	"github.com/gogpu/fontatlas/bmfont"
)

// buildSheetFace loads a pre-rendered glyph sheet. Page images are resolved
// relative to the directory of name.
func buildSheetFace(cfg *config, name string, data []byte) (*Face, error) {
	d, err := bmfont.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMissingSection, err)
	}

	log := Logger().With("font", name)

	if d.Common.Pages < 0 || d.Common.Pages > len(d.Pages) {
		return nil, fmt.Errorf("%w: %d pages in common, %d declared", ErrPageLoad, d.Common.Pages, len(d.Pages))
	}
	images := make([]*image.Alpha, d.Common.Pages)
	dir := path.Dir(name)
	for i := range images {
		img, err := loadSheetPage(cfg, path.Join(dir, d.Pages[i].File))
		if err != nil {
			return nil, err
		}
		images[i] = img
	}

	table := newGlyphTable(len(d.Chars))
	for _, c := range d.Chars {
		g := Glyph{
			Page:     c.Page,
			X:        c.X,
			Y:        c.Y,
			Width:    c.Width,
			Height:   c.Height,
			AdvanceX: c.XAdvance,
			OffsetX:  c.XOffset,
			OffsetY:  c.YOffset,
		}
		if g.Page < 0 || g.Page >= len(images) {
			log.Debug("fontatlas: char on undeclared page", "id", c.ID, "page", c.Page)
			g.Page, g.Width, g.Height = 0, 0, 0
		}
		table.mapping[rune(c.ID)] = len(table.glyphs)
		table.glyphs = append(table.glyphs, g)
	}

	table.hasKerning = d.HasKernings
	dropped := 0
	for _, k := range d.Kernings {
		first, ok := table.lookup(rune(k.First))
		if !ok {
			dropped++
			continue
		}
		second, ok := table.lookup(rune(k.Second))
		if !ok {
			dropped++
			continue
		}
		table.setKerning(first, second, k.Amount)
	}
	log.Debug("fontatlas: glyph sheet parsed",
		"chars", len(d.Chars), "mapped", len(table.mapping), "pages", len(images),
		"kernings", len(d.Kernings), "droppedKernings", dropped)

	pages, err := newPages(cfg, name, images)
	if err != nil {
		return nil, err
	}
	return &Face{
		glyphTable: table,
		pages:      pages,
		rowHeight:  d.Common.LineHeight,
		pointSize:  d.Info.Size,
	}, nil
}

func loadSheetPage(cfg *config, file string) (*image.Alpha, error) {
	f, err := cfg.fsys.Open(file)
	if err != nil {
		return nil, decodeError(file, err)
	}
	defer f.Close()

	img, err := decodePage(f)
	if err != nil {
		return nil, decodeError(file, err)
	}
	return img, nil
}
