package fontatlas

import (
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/gogpu/fontatlas/internal/lru"
)

// Kind identifies how a font's data is turned into faces.
type Kind int

const (
	// KindNone marks a font with no data or an unrecognized name.
	KindNone Kind = iota

	// KindOutline marks a scalable outline font program.
	KindOutline

	// KindBitmapSheet marks a pre-rendered glyph sheet descriptor.
	KindBitmapSheet
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindOutline:
		return "Outline"
	case KindBitmapSheet:
		return "BitmapSheet"
	default:
		return "None"
	}
}

// KindOf returns the font kind implied by the extension of name.
func KindOf(name string) Kind {
	switch strings.ToLower(path.Ext(name)) {
	case ".ttf":
		return KindOutline
	case ".xml", ".fnt":
		return KindBitmapSheet
	default:
		return KindNone
	}
}

// Font is a font resource: its raw data and the faces built from it, one
// per point size.
//
// Font is not safe for concurrent use.
type Font struct {
	name  string
	cfg   config
	data  []byte
	kind  Kind
	faces *lru.Cache[int, *Face]
}

// New creates an empty font resource. The name selects the font kind and
// anchors relative glyph-sheet page paths.
func New(name string, opts ...Option) *Font {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	f := &Font{
		name:  name,
		cfg:   cfg,
		faces: lru.New[int, *Face](cfg.maxFaces),
	}
	f.faces.OnEvict = func(size int, face *Face) {
		Logger().Debug("fontatlas: face evicted", "font", name, "size", size)
		face.release()
	}
	return f
}

// LoadFile creates a font resource from a file in fsys and loads it.
// Glyph-sheet pages are resolved in fsys too unless WithFS says otherwise.
func LoadFile(fsys fs.FS, name string, opts ...Option) (*Font, error) {
	file, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	f := New(name, append([]Option{WithFS(fsys)}, opts...)...)
	if err := f.Load(file); err != nil {
		return nil, err
	}
	return f, nil
}

// Load reads the font data from r, replacing any previous data and
// releasing cached faces.
//
// A headless font, one with no texture creator, accepts the call without
// reading or storing anything.
func (f *Font) Load(r io.Reader) error {
	if f.cfg.creator == nil {
		Logger().Debug("fontatlas: headless, font data not loaded", "font", f.name)
		return nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("fontatlas: read %s: %w", f.name, err)
	}
	if len(data) == 0 {
		Logger().Warn("fontatlas: empty font data", "font", f.name)
		return fmt.Errorf("%w: %s: empty font data", ErrInvalidInput, f.name)
	}

	f.Release()
	f.data = data
	f.kind = KindOf(f.name)
	if f.kind == KindNone {
		Logger().Warn("fontatlas: unrecognized font kind", "font", f.name)
	}
	return nil
}

// Name returns the resource name.
func (f *Font) Name() string {
	return f.name
}

// Kind returns the kind of the loaded data.
func (f *Font) Kind() Kind {
	return f.kind
}

// Face returns the face at pointSize, building it on first use.
//
// Outline sizes above MaxPointSize are clamped; sizes below MinPointSize
// fail with ErrInvalidInput. Glyph-sheet fonts have a single face whatever
// the size. A cached face whose textures lost their data is rebuilt. A
// failed build leaves nothing in the cache and returns a *BuildError.
func (f *Font) Face(pointSize int) (*Face, error) {
	face, err := f.face(pointSize)
	if err != nil {
		Logger().Warn("fontatlas: face build failed", "font", f.name, "size", pointSize, "err", err)
		return nil, &BuildError{Font: f.name, PointSize: pointSize, Err: err}
	}
	return face, nil
}

// GetFace is like Face but returns nil on failure.
func (f *Font) GetFace(pointSize int) *Face {
	face, err := f.Face(pointSize)
	if err != nil {
		return nil
	}
	return face
}

func (f *Font) face(pointSize int) (*Face, error) {
	if f.cfg.creator == nil {
		return nil, ErrHeadless
	}

	key := 0
	switch f.kind {
	case KindOutline:
		size, err := clampPointSize(pointSize)
		if err != nil {
			return nil, err
		}
		key = size
	case KindBitmapSheet:
	default:
		return nil, fmt.Errorf("%w: unrecognized font kind for %q", ErrInvalidInput, f.name)
	}

	if face, ok := f.faces.Get(key); ok {
		if !face.IsDataLost() {
			return face, nil
		}
		Logger().Warn("fontatlas: texture data lost, rebuilding face", "font", f.name, "size", key)
		f.faces.Delete(key)
		face.release()
	}

	var (
		face *Face
		err  error
	)
	if f.kind == KindOutline {
		face, err = buildOutlineFace(&f.cfg, f.name, f.data, key)
	} else {
		face, err = buildSheetFace(&f.cfg, f.name, f.data)
	}
	if err != nil {
		return nil, err
	}
	if face.IsDataLost() {
		face.release()
		return nil, fmt.Errorf("%w: page textures lost while building", ErrTextureCreation)
	}

	f.faces.Set(key, face)
	Logger().Info("fontatlas: face built",
		"font", f.name, "size", key, "glyphs", face.NumGlyphs(), "pages", len(face.pages))
	return face, nil
}

// Faces returns the number of cached faces.
func (f *Font) Faces() int {
	return f.faces.Len()
}

// MemoryUse returns the font data size plus the texture area of all cached
// faces.
func (f *Font) MemoryUse() int {
	total := len(f.data)
	for _, face := range f.faces.Values() {
		total += face.TotalTextureSize()
	}
	return total
}

// Release drops all cached faces and frees their textures. The font data
// is kept and faces are rebuilt on demand.
func (f *Font) Release() {
	for _, face := range f.faces.Values() {
		face.release()
	}
	f.faces.Clear()
}
