package fontatlas

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/gogpu/gpucontext"
)

// Option configures a Font during creation.
//
// Example:
//
//	f := fontatlas.New("ui/Font.fnt",
//	    fontatlas.WithTextureCreator(creator),
//	    fontatlas.WithFS(assets),
//	    fontatlas.WithMaxFaces(4))
type Option func(*config)

// config holds optional configuration for Font creation.
type config struct {
	creator  gpucontext.TextureCreator
	fsys     fs.FS
	dynamic  bool
	maxFaces int
	engine   outlineEngine
}

// defaultConfig returns the default font configuration.
func defaultConfig() config {
	return config{
		fsys:   osFS{},
		engine: sharedEngine{},
	}
}

// WithTextureCreator sets the facility atlas pages are uploaded through.
// Without one, the font is headless: Load succeeds but no faces are built.
func WithTextureCreator(c gpucontext.TextureCreator) Option {
	return func(o *config) {
		o.creator = c
	}
}

// WithFS sets the file system glyph-sheet page images are resolved in.
// Page paths are taken relative to the directory of the font name.
// By default the host file system is used.
func WithFS(fsys fs.FS) Option {
	return func(o *config) {
		if fsys != nil {
			o.fsys = fsys
		}
	}
}

// WithDynamicTextures requests page textures that can be rewritten after
// creation. Static textures are the default.
func WithDynamicTextures(dynamic bool) Option {
	return func(o *config) {
		o.dynamic = dynamic
	}
}

// WithMaxFaces bounds the number of point sizes cached per font. When the
// limit is exceeded, the least recently used face is released.
// Zero, the default, means unlimited.
func WithMaxFaces(n int) Option {
	return func(o *config) {
		o.maxFaces = max(n, 0)
	}
}

// withEngine replaces the outline engine.
func withEngine(e outlineEngine) Option {
	return func(o *config) {
		o.engine = e
	}
}

// osFS opens names on the host file system.
type osFS struct{}

func (osFS) Open(name string) (fs.File, error) {
	return os.Open(filepath.FromSlash(name))
}
