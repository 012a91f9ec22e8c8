// Package outline wraps the scalable-outline font engine used to build glyph
// atlases.
//
// The engine combines golang.org/x/image/font/sfnt (metrics, kerning and
// glyph outlines), golang.org/x/image/vector (8-bit coverage rasterization)
// and github.com/go-text/typesetting (character map enumeration and kerning
// table discovery).
//
// One Library is shared by the whole process. It is created on first use by
// Shared and torn down by Shutdown:
//
//	lib := outline.Shared()
//	face, err := lib.NewFace(data, 12)
//	if err != nil {
//	    return err
//	}
//	defer face.Close()
//
//	for r, gi := range face.Chars() {
//	    m, err := face.Metrics(gi)
//	    ...
//	}
//
// Faces are not safe for concurrent use.
package outline
