// Package fontatlas builds glyph atlases from font data.
//
// # Overview
//
// A glyph atlas is a set of fixed-size 8-bit coverage pages with glyph
// bitmaps packed into them, plus per-glyph metrics and kerning. fontatlas
// turns raw font data into such atlases and caches them per point size.
//
// Two kinds of fonts are understood, chosen by the resource name:
//   - ".ttf": outline font programs, rasterized at the requested size
//   - ".xml", ".fnt": pre-rendered glyph sheets described by a BMFont
//     descriptor, loaded as-is at their intrinsic size
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/fontatlas"
//	    "github.com/gogpu/fontatlas/memtex"
//	)
//
//	dev := memtex.NewDevice(memtex.Config{})
//	f, err := fontatlas.LoadFile(os.DirFS("fonts"), "Anonymous.ttf",
//	    fontatlas.WithTextureCreator(dev))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	face, err := f.Face(16)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	g, ok := face.Glyph('A')
//
// # Textures
//
// Atlas pages become textures through a [gpucontext.TextureCreator]. When
// the creator also implements [AlphaTextureCreator], pages are uploaded as
// single-channel R8 textures; otherwise they are expanded to white RGBA with
// the coverage in alpha. Without a creator a Font is headless and never
// produces faces.
//
// Textures implementing [DataLoser] are polled on every [Font.Face] call. A
// face whose textures lost their data is rebuilt transparently.
//
// # Concurrency
//
// Faces are immutable and safe for concurrent reads. A Font and its face
// cache are not safe for concurrent use; callers sharing a Font across
// goroutines must synchronize access.
package fontatlas
