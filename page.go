package fontatlas

import (
	"fmt"
	"image"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// AlphaTextureCreator is implemented by texture creators that accept
// single-channel uploads with explicit texture and sampler state.
type AlphaTextureCreator interface {
	NewAlphaTexture(desc gputypes.TextureDescriptor, sampler gputypes.SamplerDescriptor, data []byte) (gpucontext.Texture, error)
}

// DataLoser is implemented by textures whose storage can be reclaimed by
// the graphics system.
type DataLoser interface {
	IsDataLost() bool
}

type releaser interface {
	Release()
}

// Page is one atlas page and its texture.
type Page struct {
	image   *image.Alpha
	texture gpucontext.Texture
	desc    gputypes.TextureDescriptor
	sampler gputypes.SamplerDescriptor
}

// pageSampler is the sampler state for atlas pages. Addressing clamps to
// the edge; packed glyphs keep a transparent column and row on their right
// and bottom.
func pageSampler() gputypes.SamplerDescriptor {
	s := gputypes.LinearSamplerDescriptor()
	s.MipmapFilter = gputypes.MipmapFilterModeNearest
	s.LodMaxClamp = 0
	return s
}

// newPage uploads img through the configured texture creator.
func newPage(cfg *config, img *image.Alpha, label string) (*Page, error) {
	b := img.Bounds()
	usage := gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst
	if cfg.dynamic {
		usage |= gputypes.TextureUsageCopySrc
	}
	p := &Page{
		image: img,
		desc: gputypes.TextureDescriptor{
			Label:         label,
			Size:          gputypes.NewExtent2D(uint32(b.Dx()), uint32(b.Dy())), //nolint:gosec // G115: page sizes are bounded
			MipLevelCount: 1,
			SampleCount:   1,
			Dimension:     gputypes.TextureDimension2D,
			Format:        gputypes.TextureFormatR8Unorm,
			Usage:         usage,
		},
		sampler: pageSampler(),
	}

	var err error
	if ac, ok := cfg.creator.(AlphaTextureCreator); ok {
		p.texture, err = ac.NewAlphaTexture(p.desc, p.sampler, alphaPix(img))
	} else {
		p.desc.Format = gputypes.TextureFormatRGBA8Unorm
		p.texture, err = cfg.creator.NewTextureFromRGBA(b.Dx(), b.Dy(), expandRGBA(img))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrTextureCreation, label, err)
	}
	if p.texture == nil {
		return nil, fmt.Errorf("%w: %s: creator returned no texture", ErrTextureCreation, label)
	}
	return p, nil
}

// Image returns the page coverage. It must not be modified.
func (p *Page) Image() *image.Alpha {
	return p.image
}

// Texture returns the page texture.
func (p *Page) Texture() gpucontext.Texture {
	return p.texture
}

// Descriptor returns the texture descriptor the page was created with.
func (p *Page) Descriptor() gputypes.TextureDescriptor {
	return p.desc
}

// Sampler returns the sampler state for the page.
func (p *Page) Sampler() gputypes.SamplerDescriptor {
	return p.sampler
}

// Width returns the page width in pixels.
func (p *Page) Width() int {
	return p.image.Bounds().Dx()
}

// Height returns the page height in pixels.
func (p *Page) Height() int {
	return p.image.Bounds().Dy()
}

// IsDataLost reports whether the page texture lost its data. Textures that
// do not implement DataLoser never do.
func (p *Page) IsDataLost() bool {
	if dl, ok := p.texture.(DataLoser); ok {
		return dl.IsDataLost()
	}
	return false
}

func (p *Page) release() {
	if r, ok := p.texture.(releaser); ok {
		r.Release()
	}
}

// alphaPix returns the tightly packed rows of img.
func alphaPix(img *image.Alpha) []byte {
	b := img.Bounds()
	if img.Stride == b.Dx() {
		return img.Pix
	}
	out := make([]byte, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		i := img.PixOffset(b.Min.X, y)
		out = append(out, img.Pix[i:i+b.Dx()]...)
	}
	return out
}

// expandRGBA converts coverage to premultiplied white RGBA.
func expandRGBA(img *image.Alpha) []byte {
	src := alphaPix(img)
	out := make([]byte, 4*len(src))
	for i, a := range src {
		out[4*i+0] = a
		out[4*i+1] = a
		out[4*i+2] = a
		out[4*i+3] = a
	}
	return out
}
