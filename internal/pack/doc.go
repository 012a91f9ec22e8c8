// Package pack places rectangles into atlas pages.
//
// AreaAllocator is a guillotine free-list packer. It starts from a minimum
// page size and doubles width and height alternately until a request fits
// or the maximum page size is reached.
package pack
