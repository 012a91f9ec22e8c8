// Package bmfont parses glyph-sheet descriptors produced by bitmap font
// generators such as AngelCode BMFont.
//
// Both descriptor flavors are understood:
//
//   - XML, rooted at a <font> element with info, common, pages, chars and
//     optional kernings children.
//   - The plain text format, one tag per line followed by key=value pairs.
//
// A descriptor only describes a pre-packed sheet. Loading the page images
// it references is left to the caller.
//
// Example:
//
//	d, err := bmfont.Parse(data)
//	if err != nil {
//	    return err
//	}
//	for _, p := range d.Pages {
//	    fmt.Println(p.ID, p.File)
//	}
package bmfont
