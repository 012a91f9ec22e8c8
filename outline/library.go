package outline

import (
	"sync"
	"sync/atomic"

	"golang.org/x/image/vector"
)

// DPI is the resolution used to convert point sizes to pixels.
const DPI = 96

// Library is the process-wide engine handle. It owns shared rasterizer
// scratch state and tracks the faces created from it.
//
// Library is safe for concurrent use; the faces it creates are not.
type Library struct {
	rasterizers sync.Pool // *vector.Rasterizer
	open        atomic.Int64
	closed      atomic.Bool
}

var (
	sharedMu sync.Mutex
	shared   *Library
)

// Shared returns the process-wide library, creating it on first use.
// After Shutdown, the next call creates a fresh library.
func Shared() *Library {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if shared == nil {
		shared = newLibrary()
		slogger().Debug("outline: library initialized")
	}
	return shared
}

// Shutdown tears down the process-wide library. Faces that are still open
// stay usable, but the library refuses to create new ones.
func Shutdown() {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if shared == nil {
		return
	}
	shared.closed.Store(true)
	slogger().Debug("outline: library shut down", "openFaces", shared.open.Load())
	shared = nil
}

func newLibrary() *Library {
	lib := &Library{}
	lib.rasterizers.New = func() any { return vector.NewRasterizer(0, 0) }
	return lib
}

// OpenFaces returns the number of faces created from the library and not
// yet closed.
func (l *Library) OpenFaces() int {
	return int(l.open.Load())
}

// Closed reports whether the library has been shut down.
func (l *Library) Closed() bool {
	return l.closed.Load()
}

func (l *Library) getRasterizer(w, h int) *vector.Rasterizer {
	z := l.rasterizers.Get().(*vector.Rasterizer)
	z.Reset(w, h)
	return z
}

func (l *Library) putRasterizer(z *vector.Rasterizer) {
	l.rasterizers.Put(z)
}
