package bmfont

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/text/encoding/unicode"
)

const sampleXML = `<?xml version="1.0"?>
<font>
  <info face="Sample" size="32" bold="0" italic="1" charset="" unicode="1"/>
  <common lineHeight="36" base="29" scaleW="256" scaleH="128" pages="2"/>
  <pages>
    <page id="0" file="sample_0.png"/>
    <page id="1" file="sample_1.png"/>
  </pages>
  <chars count="2">
    <char id="65" x="0" y="0" width="10" height="12" xoffset="1" yoffset="-2" xadvance="11" page="0" chnl="15"/>
    <char id="66" x="12" y="0" width="9" height="12" xoffset="0" yoffset="2" xadvance="10" page="1" chnl="15"/>
  </chars>
  <kernings count="1">
    <kerning first="65" second="66" amount="-2"/>
  </kernings>
</font>`

const sampleText = `info face="Sample" size=32 bold=0 italic=1 charset="" unicode=1
common lineHeight=36 base=29 scaleW=256 scaleH=128 pages=2
page id=0 file="sample_0.png"
page id=1 file="sample_1.png"
chars count=2
char id=65 x=0 y=0 width=10 height=12 xoffset=1 yoffset=-2 xadvance=11 page=0 chnl=15
char id=66 x=12 y=0 width=9 height=12 xoffset=0 yoffset=2 xadvance=10 page=1 chnl=15
kernings count=1
kerning first=65 second=66 amount=-2
`

var sampleDescriptor = &Descriptor{
	Info:   Info{Face: "Sample", Size: 32, Italic: true, Unicode: true},
	Common: Common{LineHeight: 36, Base: 29, ScaleW: 256, ScaleH: 128, Pages: 2},
	Pages: []Page{
		{ID: 0, File: "sample_0.png"},
		{ID: 1, File: "sample_1.png"},
	},
	Chars: []Char{
		{ID: 65, Width: 10, Height: 12, XOffset: 1, YOffset: -2, XAdvance: 11, Page: 0, Chnl: 15},
		{ID: 66, X: 12, Width: 9, Height: 12, YOffset: 2, XAdvance: 10, Page: 1, Chnl: 15},
	},
	Kernings:    []Kerning{{First: 65, Second: 66, Amount: -2}},
	HasKernings: true,
}

func TestParseXML(t *testing.T) {
	d, err := Parse([]byte(sampleXML))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if diff := cmp.Diff(sampleDescriptor, d); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseText(t *testing.T) {
	d, err := Parse([]byte(sampleText))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if diff := cmp.Diff(sampleDescriptor, d); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseUTF16(t *testing.T) {
	src := `<?xml version="1.0" encoding="UTF-16"?>` + sampleXML[len(`<?xml version="1.0"?>`):]
	enc := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder()
	data, err := enc.Bytes([]byte(src))
	if err != nil {
		t.Fatal(err)
	}

	d, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if diff := cmp.Diff(sampleDescriptor, d); diff != "" {
		t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
	}
}

func TestParseDeclaredCharset(t *testing.T) {
	src := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>" +
		"<font><info face=\"Caf\xe9\" size=\"8\"/><pages/></font>"
	d, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if d.Info.Face != "Café" {
		t.Errorf("Info.Face = %q, want %q", d.Info.Face, "Café")
	}
}

func TestParseMissingSections(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want error
	}{
		{"empty", "", ErrNoFontElement},
		{"wrong root", `<atlas><pages/></atlas>`, ErrNoFontElement},
		{"xml no pages", `<font><info size="10"/><chars count="0"/></font>`, ErrNoPagesElement},
		{"text no pages", "info size=10\ncommon pages=0\n", ErrNoPagesElement},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src))
			if !errors.Is(err, tt.want) {
				t.Errorf("Parse() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestParseMalformedXML(t *testing.T) {
	if _, err := Parse([]byte(`<font><pages>`)); err == nil {
		t.Error("Parse() of truncated XML succeeded")
	}
}

func TestParseLenientNumbers(t *testing.T) {
	src := `<font><pages><page id="x" file="a.png"/></pages>
<chars><char id="70" width="4.5" height="" xadvance="7px"/></chars></font>`
	d, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	want := Char{ID: 70, Width: 4, XAdvance: 7}
	if diff := cmp.Diff(want, d.Chars[0]); diff != "" {
		t.Errorf("char mismatch (-want +got):\n%s", diff)
	}
	if d.Pages[0].ID != 0 {
		t.Errorf("page id = %d, want 0", d.Pages[0].ID)
	}
}

func TestParseNoKernings(t *testing.T) {
	d, err := Parse([]byte(`<font><pages><page id="0" file="a.png"/></pages></font>`))
	if err != nil {
		t.Fatal(err)
	}
	if d.HasKernings || len(d.Kernings) != 0 {
		t.Errorf("HasKernings = %v, Kernings = %v", d.HasKernings, d.Kernings)
	}
}

func TestParseDuplicateCharsKept(t *testing.T) {
	src := "info size=8\npage id=0 file=\"a.png\"\nchar id=65 width=1\nchar id=65 width=2\n"
	d, err := Parse([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	if len(d.Chars) != 2 || d.Chars[1].Width != 2 {
		t.Errorf("Chars = %+v, want both records in order", d.Chars)
	}
}

func TestSplitLine(t *testing.T) {
	tag, attrs := splitLine(`page id=3   file="my page.png" extra`)
	if tag != "page" {
		t.Errorf("tag = %q, want page", tag)
	}
	want := map[string]string{"id": "3", "file": "my page.png"}
	if diff := cmp.Diff(want, attrs); diff != "" {
		t.Errorf("attrs mismatch (-want +got):\n%s", diff)
	}
}

func TestAtoi(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"12", 12},
		{"-3", -3},
		{" 7 ", 7},
		{"4.9", 4},
		{"", 0},
		{"abc", 0},
		{"+5", 5},
	}
	for _, tt := range tests {
		if got := atoi(tt.in); got != tt.want {
			t.Errorf("atoi(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
