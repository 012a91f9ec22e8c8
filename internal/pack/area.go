package pack

import "image"

// Page size limits used for glyph atlas pages.
const (
	// MinPageSize is the starting edge length of a new page.
	MinPageSize = 128

	// MaxPageSize is the largest edge length a page may grow to.
	MaxPageSize = 2048
)

// AreaAllocator packs rectangles into a page that grows on demand.
//
// Free space is tracked as a list of disjoint rectangles. Each request takes
// the smallest free rectangle it fits in, and the remainder of that rectangle
// is split into at most two new free rectangles.
type AreaAllocator struct {
	size      image.Point // Current page size
	maxSize   image.Point // Largest allowed page size
	free      []image.Rectangle
	growWidth bool // Which axis doubles next
	usedArea  int
}

// NewAreaAllocator creates an allocator with the given starting size and the
// maximum size it may grow to. A maximum smaller than the start is raised to
// the start.
func NewAreaAllocator(width, height, maxWidth, maxHeight int) *AreaAllocator {
	if maxWidth < width {
		maxWidth = width
	}
	if maxHeight < height {
		maxHeight = height
	}
	return &AreaAllocator{
		size:      image.Pt(width, height),
		maxSize:   image.Pt(maxWidth, maxHeight),
		free:      []image.Rectangle{image.Rect(0, 0, width, height)},
		growWidth: true,
	}
}

// NewPageAllocator creates an allocator bounded by MinPageSize and MaxPageSize.
func NewPageAllocator() *AreaAllocator {
	return NewAreaAllocator(MinPageSize, MinPageSize, MaxPageSize, MaxPageSize)
}

// Allocate reserves a w by h rectangle and returns its top-left corner.
// It returns ok == false if the rectangle does not fit even at the maximum
// page size. Negative sizes are treated as zero.
func (a *AreaAllocator) Allocate(w, h int) (x, y int, ok bool) {
	w = max(w, 0)
	h = max(h, 0)

	best := -1
	for {
		bestArea := int(^uint(0) >> 1)
		for i, r := range a.free {
			if r.Dx() < w || r.Dy() < h {
				continue
			}
			if area := r.Dx() * r.Dy(); area < bestArea {
				best, bestArea = i, area
			}
		}
		if best >= 0 {
			break
		}
		if !a.grow() {
			return -1, -1, false
		}
	}

	area := &a.free[best]
	reserved := image.Rect(area.Min.X, area.Min.Y, area.Min.X+w, area.Min.Y+h)

	// The free area keeps the part right of the reservation. When there is
	// a lot of space below, that space becomes its own free area.
	area.Min.X = reserved.Max.X
	if area.Dy() > 2*h || h >= a.size.Y/2 {
		below := image.Rect(reserved.Min.X, reserved.Max.Y, area.Max.X, area.Max.Y)
		area.Max.Y = reserved.Max.Y
		if !below.Empty() {
			a.free = append(a.free, below)
		}
	}

	a.usedArea += w * h
	return reserved.Min.X, reserved.Min.Y, true
}

// grow doubles the page along the next axis that still has room.
func (a *AreaAllocator) grow() bool {
	switch {
	case a.growWidth && a.size.X < a.maxSize.X:
		old := a.size.X
		a.size.X = min(a.size.X*2, a.maxSize.X)
		if len(a.free) == 1 && a.free[0] == image.Rect(0, 0, old, a.size.Y) {
			a.free[0].Max.X = a.size.X
		} else {
			a.free = append(a.free, image.Rect(old, 0, a.size.X, a.size.Y))
		}
	case !a.growWidth && a.size.Y < a.maxSize.Y:
		old := a.size.Y
		a.size.Y = min(a.size.Y*2, a.maxSize.Y)
		if len(a.free) == 1 && a.free[0] == image.Rect(0, 0, a.size.X, old) {
			a.free[0].Max.Y = a.size.Y
		} else {
			a.free = append(a.free, image.Rect(0, old, a.size.X, a.size.Y))
		}
	case a.size.X < a.maxSize.X || a.size.Y < a.maxSize.Y:
		// The preferred axis is exhausted; try the other one.
	default:
		return false
	}
	a.growWidth = !a.growWidth
	return true
}

// Width returns the current page width.
func (a *AreaAllocator) Width() int { return a.size.X }

// Height returns the current page height.
func (a *AreaAllocator) Height() int { return a.size.Y }

// Size returns the current page size.
func (a *AreaAllocator) Size() image.Point { return a.size }

// Fits reports whether a w by h rectangle could ever fit in an empty page.
func (a *AreaAllocator) Fits(w, h int) bool {
	return w <= a.maxSize.X && h <= a.maxSize.Y
}

// Utilization returns the fraction of the current page area in use (0.0 to 1.0).
func (a *AreaAllocator) Utilization() float64 {
	total := a.size.X * a.size.Y
	if total <= 0 {
		return 0
	}
	return float64(a.usedArea) / float64(total)
}
