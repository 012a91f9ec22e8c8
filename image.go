package fontatlas

import (
	"fmt"
	"image"
	_ "image/png" // page codecs
	"io"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// decodePage decodes a glyph-sheet page into 8-bit coverage.
func decodePage(r io.Reader) (*image.Alpha, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	a := toAlpha(img)
	Logger().Debug("fontatlas: decoded page image",
		"format", format, "width", a.Bounds().Dx(), "height", a.Bounds().Dy())
	return a, nil
}

// toAlpha converts img to coverage anchored at the origin. Images with
// transparency contribute their alpha channel; fully opaque images, such
// as grayscale sheets, contribute their luminance.
func toAlpha(img image.Image) *image.Alpha {
	b := img.Bounds()
	dst := image.NewAlpha(image.Rect(0, 0, b.Dx(), b.Dy()))

	if isOpaque(img) {
		gray := image.NewGray(dst.Bounds())
		draw.Draw(gray, gray.Bounds(), img, b.Min, draw.Src)
		copy(dst.Pix, gray.Pix)
		return dst
	}
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

func isOpaque(img image.Image) bool {
	if _, ok := img.(*image.Alpha); ok {
		return false
	}
	o, ok := img.(interface{ Opaque() bool })
	return ok && o.Opaque()
}

// newAlphaPage allocates a transparent page.
func newAlphaPage(size image.Point) *image.Alpha {
	return image.NewAlpha(image.Rectangle{Max: size})
}

// decodeError wraps a page decoding failure.
func decodeError(file string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrPageLoad, file, err)
}
