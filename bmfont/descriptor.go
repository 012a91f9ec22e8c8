package bmfont

// Descriptor is a decoded glyph-sheet descriptor.
type Descriptor struct {
	Info   Info
	Common Common

	// Pages lists the page images in document order.
	Pages []Page

	// Chars lists the glyph records in document order. Ids are not
	// deduplicated.
	Chars []Char

	// Kernings lists the kerning pairs in document order.
	Kernings []Kerning

	// HasKernings reports whether the descriptor had a kernings section,
	// even an empty one.
	HasKernings bool
}

// Info holds how the sheet was generated.
type Info struct {
	Face    string
	Size    int
	Bold    bool
	Italic  bool
	Charset string
	Unicode bool
}

// Common holds values shared by all glyphs.
type Common struct {
	LineHeight int
	Base       int
	ScaleW     int
	ScaleH     int
	Pages      int
}

// Page references one sheet image, relative to the descriptor.
type Page struct {
	ID   int
	File string
}

// Char is one glyph record. The rectangle X, Y, Width, Height lies on page
// Page; offsets are applied to the pen position when drawing.
type Char struct {
	ID       int
	X, Y     int
	Width    int
	Height   int
	XOffset  int
	YOffset  int
	XAdvance int
	Page     int
	Chnl     int
}

// Kerning adjusts the advance between the chars First and Second, in that
// order.
type Kerning struct {
	First  int
	Second int
	Amount int
}
