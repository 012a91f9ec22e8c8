package memtex

import (
	"container/list"
	"fmt"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Config holds configuration for creating a Device.
type Config struct {
	// BudgetBytes bounds the total size of live textures.
	// Zero means unlimited.
	BudgetBytes uint64
}

// Stats contains device memory statistics.
type Stats struct {
	// BudgetBytes is the configured budget, 0 when unlimited.
	BudgetBytes uint64

	// UsedBytes is the size of all live textures.
	UsedBytes uint64

	// TextureCount is the number of live textures.
	TextureCount int

	// EvictionCount is the number of textures evicted to honor the budget.
	EvictionCount uint64

	// LostCount is the number of textures whose data was lost for any
	// reason, evictions included.
	LostCount uint64
}

// String returns a human-readable string of device stats.
func (s Stats) String() string {
	budget := "unlimited"
	if s.BudgetBytes > 0 {
		budget = fmt.Sprintf("%d KB", s.BudgetBytes/1024)
	}
	return fmt.Sprintf("Device[%d KB used of %s, %d textures, %d evictions, %d lost]",
		s.UsedBytes/1024, budget, s.TextureCount, s.EvictionCount, s.LostCount)
}

// Device creates in-memory textures and tracks their storage.
// Textures are evicted oldest first when the budget is exceeded.
//
// Device is safe for concurrent use.
type Device struct {
	mu sync.Mutex

	budgetBytes uint64
	usedBytes   uint64

	// Front = newest, back = oldest.
	live *list.List

	evictionCount uint64
	lostCount     uint64
}

var _ gpucontext.TextureCreator = (*Device)(nil)

// NewDevice creates a device.
func NewDevice(cfg Config) *Device {
	return &Device{
		budgetBytes: cfg.BudgetBytes,
		live:        list.New(),
	}
}

// NewTextureFromRGBA creates an RGBA8 texture from width*height*4 bytes.
func (d *Device) NewTextureFromRGBA(width, height int, data []byte) (gpucontext.Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	desc := gputypes.TextureDescriptor{
		Size:          gputypes.NewExtent2D(uint32(width), uint32(height)), //nolint:gosec // G115: checked positive above
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	}
	return d.create(desc, gputypes.LinearSamplerDescriptor(), data)
}

// NewAlphaTexture creates a texture from a descriptor, sampler state and
// pixel data. The descriptor format must be R8Unorm or RGBA8Unorm.
func (d *Device) NewAlphaTexture(desc gputypes.TextureDescriptor, sampler gputypes.SamplerDescriptor, data []byte) (gpucontext.Texture, error) {
	if desc.Size.Width == 0 || desc.Size.Height == 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, desc.Size.Width, desc.Size.Height)
	}
	return d.create(desc, sampler, data)
}

func (d *Device) create(desc gputypes.TextureDescriptor, sampler gputypes.SamplerDescriptor, data []byte) (*Texture, error) {
	bpp, err := bytesPerPixel(desc.Format)
	if err != nil {
		return nil, err
	}
	size := uint64(desc.Size.Width) * uint64(desc.Size.Height) * bpp
	if uint64(len(data)) != size {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", ErrDataSize, len(data), size)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.budgetBytes > 0 {
		if size > d.budgetBytes {
			return nil, fmt.Errorf("%w: texture needs %d bytes, budget is %d",
				ErrBudgetExceeded, size, d.budgetBytes)
		}
		d.evictLocked(size)
	}

	t := &Texture{
		desc:      desc,
		sampler:   sampler,
		pixels:    append([]byte(nil), data...),
		sizeBytes: size,
		device:    d,
	}
	t.element = d.live.PushFront(t)
	d.usedBytes += size
	return t, nil
}

// evictLocked marks the oldest textures lost until size more bytes fit in
// the budget. Caller must hold mu.
func (d *Device) evictLocked(size uint64) {
	for d.usedBytes+size > d.budgetBytes {
		elem := d.live.Back()
		if elem == nil {
			return
		}
		t := elem.Value.(*Texture)
		d.removeLocked(t, true)
		d.evictionCount++
	}
}

// removeLocked unlinks a live texture and drops its data. Caller must hold mu.
func (d *Device) removeLocked(t *Texture, lost bool) {
	if t.element == nil {
		return
	}
	d.live.Remove(t.element)
	t.element = nil
	d.usedBytes -= t.sizeBytes
	if t.discard() && lost {
		d.lostCount++
	}
}

func (d *Device) release(t *Texture, lost bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.removeLocked(t, lost)
}

// LoseAll marks every live texture lost, as a device reset would.
func (d *Device) LoseAll() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for elem := d.live.Front(); elem != nil; {
		next := elem.Next()
		d.removeLocked(elem.Value.(*Texture), true)
		elem = next
	}
}

// Stats returns current device statistics.
func (d *Device) Stats() Stats {
	d.mu.Lock()
	defer d.mu.Unlock()

	return Stats{
		BudgetBytes:   d.budgetBytes,
		UsedBytes:     d.usedBytes,
		TextureCount:  d.live.Len(),
		EvictionCount: d.evictionCount,
		LostCount:     d.lostCount,
	}
}

func bytesPerPixel(f gputypes.TextureFormat) (uint64, error) {
	switch f {
	case gputypes.TextureFormatR8Unorm:
		return 1, nil
	case gputypes.TextureFormatRGBA8Unorm:
		return 4, nil
	default:
		return 0, fmt.Errorf("%w: %v", ErrUnsupportedFormat, f)
	}
}
