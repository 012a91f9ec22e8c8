package fontatlas

import "image"

// minAverageOpacity bounds the scale applied by normalizeOpacity.
const minAverageOpacity = 128

// normalizeOpacity brightens faint glyph coverage in place.
//
// The average of each visible glyph's maximum coverage, floored at
// minAverageOpacity, is scaled up to full opacity. Only pixels inside glyph
// rectangles are touched and glyphs with no coverage are skipped. It
// returns the scale applied, 1 when none was.
func normalizeOpacity(pages []*image.Alpha, glyphs []Glyph) float64 {
	peaks := make([]uint8, len(glyphs))
	sum, count := 0, 0
	for i, g := range glyphs {
		if !g.Visible() || g.Page < 0 || g.Page >= len(pages) {
			continue
		}
		peaks[i] = maxCoverage(pages[g.Page], g.Rect())
		if peaks[i] > 0 {
			sum += int(peaks[i])
			count++
		}
	}
	if count == 0 {
		return 1
	}

	avg := max(sum/count, minAverageOpacity)
	if avg >= 255 {
		return 1
	}
	scale := 255 / float64(avg)

	for i, g := range glyphs {
		if peaks[i] == 0 {
			continue
		}
		img := pages[g.Page]
		r := g.Rect().Intersect(img.Bounds())
		for y := r.Min.Y; y < r.Max.Y; y++ {
			row := img.Pix[img.PixOffset(r.Min.X, y):img.PixOffset(r.Max.X, y)]
			for x, p := range row {
				row[x] = uint8(min(int(float64(p)*scale), 255))
			}
		}
	}
	return scale
}

func maxCoverage(img *image.Alpha, r image.Rectangle) uint8 {
	r = r.Intersect(img.Bounds())
	var peak uint8
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for _, p := range img.Pix[img.PixOffset(r.Min.X, y):img.PixOffset(r.Max.X, y)] {
			peak = max(peak, p)
		}
	}
	return peak
}
