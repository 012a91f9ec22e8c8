package fontatlas

import (
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/fontatlas/memtex"
)

// rgbaCreator implements only gpucontext.TextureCreator.
type rgbaCreator struct {
	uploads [][]byte
	err     error
}

type rgbaTexture struct{ w, h int }

func (t rgbaTexture) Width() int  { return t.w }
func (t rgbaTexture) Height() int { return t.h }

func (c *rgbaCreator) NewTextureFromRGBA(w, h int, data []byte) (gpucontext.Texture, error) {
	if c.err != nil {
		return nil, c.err
	}
	c.uploads = append(c.uploads, data)
	return rgbaTexture{w, h}, nil
}

func TestNewPageAlphaUpload(t *testing.T) {
	cfg := defaultConfig()
	cfg.creator = memtex.NewDevice(memtex.Config{})

	img := image.NewAlpha(image.Rect(0, 0, 4, 2))
	img.Pix[5] = 200
	p, err := newPage(&cfg, img, "page 0")
	if err != nil {
		t.Fatal(err)
	}

	tex := p.Texture().(*memtex.Texture)
	if tex.Format() != gputypes.TextureFormatR8Unorm {
		t.Errorf("Format() = %v, want R8Unorm", tex.Format())
	}
	if px := tex.Pixels(); len(px) != 8 || px[5] != 200 {
		t.Errorf("Pixels() = %v", px)
	}
	desc := p.Descriptor()
	if desc.MipLevelCount != 1 || desc.Label != "page 0" {
		t.Errorf("Descriptor() = %+v", desc)
	}
	if desc.Usage&gputypes.TextureUsageCopySrc != 0 {
		t.Error("static page has CopySrc usage")
	}
	s := p.Sampler()
	if s.AddressModeU != gputypes.AddressModeClampToEdge || s.AddressModeV != gputypes.AddressModeClampToEdge {
		t.Errorf("Sampler() addressing = %v, %v", s.AddressModeU, s.AddressModeV)
	}
	if p.Width() != 4 || p.Height() != 2 {
		t.Errorf("size = %dx%d", p.Width(), p.Height())
	}
}

func TestNewPageRGBAFallback(t *testing.T) {
	c := &rgbaCreator{}
	cfg := defaultConfig()
	cfg.creator = c
	cfg.dynamic = true

	img := image.NewAlpha(image.Rect(0, 0, 2, 1))
	img.Pix[1] = 90
	p, err := newPage(&cfg, img, "page 0")
	if err != nil {
		t.Fatal(err)
	}
	if len(c.uploads) != 1 {
		t.Fatalf("uploads = %d, want 1", len(c.uploads))
	}
	want := []byte{0, 0, 0, 0, 90, 90, 90, 90}
	if string(c.uploads[0]) != string(want) {
		t.Errorf("upload = %v, want %v", c.uploads[0], want)
	}
	if p.Descriptor().Format != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("Format = %v, want RGBA8Unorm", p.Descriptor().Format)
	}
	if p.Descriptor().Usage&gputypes.TextureUsageCopySrc == 0 {
		t.Error("dynamic page lacks CopySrc usage")
	}
	if p.IsDataLost() {
		t.Error("texture without data loss reporting is lost")
	}
}

func TestNewPageFailure(t *testing.T) {
	creatorErr := errors.New("device gone")
	cfg := defaultConfig()
	cfg.creator = &rgbaCreator{err: creatorErr}

	_, err := newPage(&cfg, image.NewAlpha(image.Rect(0, 0, 2, 2)), "page 0")
	if !errors.Is(err, ErrTextureCreation) || !errors.Is(err, creatorErr) {
		t.Errorf("error = %v, want %v wrapping %v", err, ErrTextureCreation, creatorErr)
	}
}

func TestOutlineFaceTextureFailure(t *testing.T) {
	f := New("fake.ttf", WithTextureCreator(&rgbaCreator{err: errors.New("no memory")}), withEngine(newFakeEngine()))
	if err := f.Load(strings.NewReader("font")); err != nil {
		t.Fatal(err)
	}
	if _, err := f.Face(12); !errors.Is(err, ErrTextureCreation) {
		t.Errorf("Face() error = %v, want %v", err, ErrTextureCreation)
	}
	if f.Faces() != 0 {
		t.Errorf("Faces() = %d, want 0", f.Faces())
	}
}

func TestAlphaPixSubImage(t *testing.T) {
	img := image.NewAlpha(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = uint8(i)
	}
	sub := img.SubImage(image.Rect(1, 1, 3, 3)).(*image.Alpha)
	want := []byte{5, 6, 9, 10}
	if got := alphaPix(sub); string(got) != string(want) {
		t.Errorf("alphaPix() = %v, want %v", got, want)
	}
}
