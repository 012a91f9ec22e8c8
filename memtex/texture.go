package memtex

import (
	"container/list"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gputypes"
)

// Texture is a texture held in process memory.
//
// Texture is safe for concurrent use.
type Texture struct {
	mu sync.RWMutex

	desc    gputypes.TextureDescriptor
	sampler gputypes.SamplerDescriptor
	pixels  []byte

	sizeBytes uint64
	lost      atomic.Bool

	// Owned by the device, guarded by its lock.
	device  *Device
	element *list.Element
}

// Width returns the texture width in pixels.
func (t *Texture) Width() int {
	return int(t.desc.Size.Width)
}

// Height returns the texture height in pixels.
func (t *Texture) Height() int {
	return int(t.desc.Size.Height)
}

// Format returns the pixel format.
func (t *Texture) Format() gputypes.TextureFormat {
	return t.desc.Format
}

// Label returns the debug label given at creation.
func (t *Texture) Label() string {
	return t.desc.Label
}

// Descriptor returns the descriptor the texture was created with.
func (t *Texture) Descriptor() gputypes.TextureDescriptor {
	return t.desc
}

// Sampler returns the sampler state the texture was created with.
func (t *Texture) Sampler() gputypes.SamplerDescriptor {
	return t.sampler
}

// SizeBytes returns the storage size of the texture.
func (t *Texture) SizeBytes() uint64 {
	return t.sizeBytes
}

// Pixels returns a copy of the texture data, or nil once the data has been
// lost.
func (t *Texture) Pixels() []byte {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.pixels == nil {
		return nil
	}
	out := make([]byte, len(t.pixels))
	copy(out, t.pixels)
	return out
}

// IsDataLost reports whether the texture storage has been reclaimed.
func (t *Texture) IsDataLost() bool {
	return t.lost.Load()
}

// MarkLost discards the texture data as a device reset would. The texture
// stops counting against its device budget.
func (t *Texture) MarkLost() {
	if t.device != nil {
		t.device.release(t, true)
		return
	}
	t.discard()
}

// Release frees the texture storage. A released texture reports its data
// as lost but is not counted in the device loss statistics.
func (t *Texture) Release() {
	if t.device != nil {
		t.device.release(t, false)
		return
	}
	t.discard()
}

// discard drops the pixel storage. It reports whether the texture was
// still live.
func (t *Texture) discard() bool {
	if t.lost.Swap(true) {
		return false
	}
	t.mu.Lock()
	t.pixels = nil
	t.mu.Unlock()
	return true
}
