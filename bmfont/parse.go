package bmfont

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Parse decodes a descriptor in either the XML or the text format.
//
// Descriptors starting with a UTF-16 or UTF-8 byte order mark are
// transcoded to UTF-8 first. XML descriptors declaring another charset are
// decoded through the IANA charset registry.
func Parse(data []byte) (*Descriptor, error) {
	text, err := toUTF8(data)
	if err != nil {
		return nil, fmt.Errorf("bmfont: decode descriptor: %w", err)
	}
	if isTextFormat(text) {
		return parseText(text)
	}
	return parseXML(text)
}

// toUTF8 strips a byte order mark and transcodes what follows to UTF-8.
// Data without a byte order mark is returned unchanged.
func toUTF8(data []byte) ([]byte, error) {
	if !hasBOM(data) {
		return data, nil
	}
	dec := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	out, _, err := transform.Bytes(dec, data)
	return out, err
}

func hasBOM(data []byte) bool {
	return bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) ||
		bytes.HasPrefix(data, []byte{0xFE, 0xFF}) ||
		bytes.HasPrefix(data, []byte{0xFF, 0xFE})
}

func isTextFormat(data []byte) bool {
	line := bytes.TrimLeft(data, " \t\r\n")
	return bytes.HasPrefix(line, []byte("info ")) || bytes.HasPrefix(line, []byte("info\t"))
}

// XML document shape.
type xmlFont struct {
	Info     xmlInfo      `xml:"info"`
	Common   xmlCommon    `xml:"common"`
	Pages    *xmlPages    `xml:"pages"`
	Chars    xmlChars     `xml:"chars"`
	Kernings *xmlKernings `xml:"kernings"`
}

type xmlInfo struct {
	Face    string  `xml:"face,attr"`
	Size    intAttr `xml:"size,attr"`
	Bold    intAttr `xml:"bold,attr"`
	Italic  intAttr `xml:"italic,attr"`
	Charset string  `xml:"charset,attr"`
	Unicode intAttr `xml:"unicode,attr"`
}

type xmlCommon struct {
	LineHeight intAttr `xml:"lineHeight,attr"`
	Base       intAttr `xml:"base,attr"`
	ScaleW     intAttr `xml:"scaleW,attr"`
	ScaleH     intAttr `xml:"scaleH,attr"`
	Pages      intAttr `xml:"pages,attr"`
}

type xmlPages struct {
	Page []struct {
		ID   intAttr `xml:"id,attr"`
		File string  `xml:"file,attr"`
	} `xml:"page"`
}

type xmlChars struct {
	Char []struct {
		ID       intAttr `xml:"id,attr"`
		X        intAttr `xml:"x,attr"`
		Y        intAttr `xml:"y,attr"`
		Width    intAttr `xml:"width,attr"`
		Height   intAttr `xml:"height,attr"`
		XOffset  intAttr `xml:"xoffset,attr"`
		YOffset  intAttr `xml:"yoffset,attr"`
		XAdvance intAttr `xml:"xadvance,attr"`
		Page     intAttr `xml:"page,attr"`
		Chnl     intAttr `xml:"chnl,attr"`
	} `xml:"char"`
}

type xmlKernings struct {
	Kerning []struct {
		First  intAttr `xml:"first,attr"`
		Second intAttr `xml:"second,attr"`
		Amount intAttr `xml:"amount,attr"`
	} `xml:"kerning"`
}

// intAttr is an integer attribute. Malformed values read as 0.
type intAttr int

func (a *intAttr) UnmarshalXMLAttr(attr xml.Attr) error {
	*a = intAttr(atoi(attr.Value))
	return nil
}

func parseXML(data []byte) (*Descriptor, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charsetReader

	var root *xml.StartElement
	for root == nil {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil, ErrNoFontElement
		}
		if err != nil {
			return nil, fmt.Errorf("bmfont: %w", err)
		}
		if se, ok := tok.(xml.StartElement); ok {
			root = &se
		}
	}
	if root.Name.Local != "font" {
		return nil, fmt.Errorf("%w: root is <%s>", ErrNoFontElement, root.Name.Local)
	}

	var f xmlFont
	if err := dec.DecodeElement(&f, root); err != nil {
		return nil, fmt.Errorf("bmfont: %w", err)
	}
	if f.Pages == nil {
		return nil, ErrNoPagesElement
	}

	d := &Descriptor{
		Info: Info{
			Face:    f.Info.Face,
			Size:    int(f.Info.Size),
			Bold:    f.Info.Bold != 0,
			Italic:  f.Info.Italic != 0,
			Charset: f.Info.Charset,
			Unicode: f.Info.Unicode != 0,
		},
		Common: Common{
			LineHeight: int(f.Common.LineHeight),
			Base:       int(f.Common.Base),
			ScaleW:     int(f.Common.ScaleW),
			ScaleH:     int(f.Common.ScaleH),
			Pages:      int(f.Common.Pages),
		},
		Pages:       make([]Page, 0, len(f.Pages.Page)),
		Chars:       make([]Char, 0, len(f.Chars.Char)),
		HasKernings: f.Kernings != nil,
	}
	for _, p := range f.Pages.Page {
		d.Pages = append(d.Pages, Page{ID: int(p.ID), File: p.File})
	}
	for _, c := range f.Chars.Char {
		d.Chars = append(d.Chars, Char{
			ID:       int(c.ID),
			X:        int(c.X),
			Y:        int(c.Y),
			Width:    int(c.Width),
			Height:   int(c.Height),
			XOffset:  int(c.XOffset),
			YOffset:  int(c.YOffset),
			XAdvance: int(c.XAdvance),
			Page:     int(c.Page),
			Chnl:     int(c.Chnl),
		})
	}
	if f.Kernings != nil {
		d.Kernings = make([]Kerning, 0, len(f.Kernings.Kerning))
		for _, k := range f.Kernings.Kerning {
			d.Kernings = append(d.Kernings, Kerning{
				First:  int(k.First),
				Second: int(k.Second),
				Amount: int(k.Amount),
			})
		}
	}
	return d, nil
}

// charsetReader handles the encoding named by an XML declaration. The input
// has already been transcoded to UTF-8 when it carried a byte order mark,
// so UTF-16 declarations pass through unchanged.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	if strings.HasPrefix(strings.ToLower(label), "utf-16") {
		return input, nil
	}
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return nil, fmt.Errorf("unsupported charset %q", label)
	}
	return enc.NewDecoder().Reader(input), nil
}

// atoi parses the leading signed integer of s, ignoring trailing garbage.
// It returns 0 when s does not start with a number.
func atoi(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
