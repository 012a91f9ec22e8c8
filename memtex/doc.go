// Package memtex provides a texture device that keeps texture storage in
// process memory.
//
// A Device implements gpucontext.TextureCreator and also accepts 8-bit
// single-channel uploads described by gputypes descriptors. Its textures
// report data loss the way GPU-backed textures do after a device reset,
// which makes it suitable for headless atlas generation, tools and tests.
//
// A Device can be given a memory budget. When a new texture would exceed
// it, the oldest textures are evicted and their data is marked lost.
package memtex
