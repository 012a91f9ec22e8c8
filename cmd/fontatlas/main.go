// Command fontatlas builds a glyph atlas from a font file and writes its
// pages as PNG images.
//
// Usage:
//
//	fontatlas -font fonts/Anonymous.ttf -size 16 -out atlas -text "AVATAR"
//	fontatlas -font ui/Sheet.fnt -out atlas
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"

	"github.com/gogpu/fontatlas"
	"github.com/gogpu/fontatlas/memtex"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("fontatlas", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		fontPath = fs.String("font", "", "font file (.ttf, .fnt or .xml)")
		size     = fs.Int("size", 16, "point size for outline fonts")
		outDir   = fs.String("out", ".", "output directory for page images")
		text     = fs.String("text", "", "print glyphs and kerning for this text")
		scale    = fs.Int("scale", 1, "upscale factor for page images")
		verbose  = fs.Bool("v", false, "verbose logging")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *fontPath == "" {
		fs.Usage()
		return errors.New("missing -font")
	}
	if *scale < 1 {
		return fmt.Errorf("invalid -scale %d", *scale)
	}

	if *verbose {
		fontatlas.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	dev := memtex.NewDevice(memtex.Config{})
	dir, name := filepath.Split(*fontPath)
	if dir == "" {
		dir = "."
	}
	font, err := fontatlas.LoadFile(os.DirFS(dir), name, fontatlas.WithTextureCreator(dev))
	if err != nil {
		return err
	}
	face, err := font.Face(*size)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return err
	}
	for i, p := range face.Pages() {
		file := filepath.Join(*outDir, fmt.Sprintf("page-%d.png", i))
		if err := writePage(file, p.Image(), *scale); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "wrote %s (%dx%d)\n", file, p.Width(), p.Height())
	}

	fmt.Fprintf(stdout, "kind: %v\n", font.Kind())
	fmt.Fprintf(stdout, "point size: %d\n", face.PointSize())
	fmt.Fprintf(stdout, "row height: %d\n", face.RowHeight())
	fmt.Fprintf(stdout, "glyphs: %d\n", face.NumGlyphs())
	fmt.Fprintf(stdout, "texture size: %d\n", face.TotalTextureSize())
	fmt.Fprintf(stdout, "memory use: %d\n", font.MemoryUse())

	runes := []rune(*text)
	for i, r := range runes {
		g, ok := face.Glyph(r)
		if !ok {
			fmt.Fprintf(stdout, "%q: no glyph\n", r)
			continue
		}
		fmt.Fprintf(stdout, "%q: page %d at (%d,%d) %dx%d advance %d offset (%d,%d)",
			r, g.Page, g.X, g.Y, g.Width, g.Height, g.AdvanceX, g.OffsetX, g.OffsetY)
		if i+1 < len(runes) {
			fmt.Fprintf(stdout, " kerning %d", face.Kerning(r, runes[i+1]))
		}
		fmt.Fprintln(stdout)
	}
	return nil
}

// writePage saves page coverage as a grayscale PNG, scaled up by factor.
func writePage(file string, page *image.Alpha, factor int) error {
	gray := image.NewGray(page.Bounds())
	copy(gray.Pix, page.Pix)

	var img image.Image = gray
	if factor > 1 {
		b := page.Bounds()
		scaled := image.NewGray(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
		draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), gray, b, draw.Src, nil)
		img = scaled
	}

	f, err := os.Create(file)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
