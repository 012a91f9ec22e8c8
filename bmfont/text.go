package bmfont

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
)

// parseText decodes the line-oriented text format:
//
//	info face="Arial" size=32 bold=0 italic=0 charset="" unicode=1
//	common lineHeight=32 base=26 scaleW=256 scaleH=256 pages=1
//	page id=0 file="arial_0.png"
//	chars count=1
//	char id=65 x=0 y=0 width=10 height=12 xoffset=0 yoffset=0 xadvance=11 page=0 chnl=15
//	kernings count=1
//	kerning first=65 second=66 amount=-2
//
// Unknown tags and keys are ignored.
func parseText(data []byte) (*Descriptor, error) {
	d := &Descriptor{}
	havePages := false

	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	for sc.Scan() {
		tag, attrs := splitLine(sc.Text())
		switch tag {
		case "info":
			d.Info = Info{
				Face:    attrs["face"],
				Size:    atoi(attrs["size"]),
				Bold:    atoi(attrs["bold"]) != 0,
				Italic:  atoi(attrs["italic"]) != 0,
				Charset: attrs["charset"],
				Unicode: atoi(attrs["unicode"]) != 0,
			}
		case "common":
			d.Common = Common{
				LineHeight: atoi(attrs["lineHeight"]),
				Base:       atoi(attrs["base"]),
				ScaleW:     atoi(attrs["scaleW"]),
				ScaleH:     atoi(attrs["scaleH"]),
				Pages:      atoi(attrs["pages"]),
			}
		case "page":
			havePages = true
			d.Pages = append(d.Pages, Page{ID: atoi(attrs["id"]), File: attrs["file"]})
		case "char":
			d.Chars = append(d.Chars, Char{
				ID:       atoi(attrs["id"]),
				X:        atoi(attrs["x"]),
				Y:        atoi(attrs["y"]),
				Width:    atoi(attrs["width"]),
				Height:   atoi(attrs["height"]),
				XOffset:  atoi(attrs["xoffset"]),
				YOffset:  atoi(attrs["yoffset"]),
				XAdvance: atoi(attrs["xadvance"]),
				Page:     atoi(attrs["page"]),
				Chnl:     atoi(attrs["chnl"]),
			})
		case "kernings":
			d.HasKernings = true
		case "kerning":
			d.HasKernings = true
			d.Kernings = append(d.Kernings, Kerning{
				First:  atoi(attrs["first"]),
				Second: atoi(attrs["second"]),
				Amount: atoi(attrs["amount"]),
			})
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("bmfont: %w", err)
	}
	if !havePages {
		return nil, ErrNoPagesElement
	}
	return d, nil
}

// splitLine splits a text-format line into its tag and key=value pairs.
// Values may be double-quoted to include spaces.
func splitLine(line string) (string, map[string]string) {
	line = strings.TrimSpace(line)
	tag, rest := line, ""
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		tag, rest = line[:i], line[i+1:]
	}
	attrs := make(map[string]string)

	for {
		rest = strings.TrimLeft(rest, " \t")
		if rest == "" {
			break
		}
		eq := strings.IndexByte(rest, '=')
		if eq < 0 {
			break
		}
		key := strings.TrimSpace(rest[:eq])
		rest = rest[eq+1:]

		var val string
		if strings.HasPrefix(rest, `"`) {
			end := strings.IndexByte(rest[1:], '"')
			if end < 0 {
				val, rest = rest[1:], ""
			} else {
				val, rest = rest[1:end+1], rest[end+2:]
			}
		} else {
			end := strings.IndexAny(rest, " \t")
			if end < 0 {
				end = len(rest)
			}
			val, rest = rest[:end], rest[end:]
		}
		attrs[key] = val
	}
	return tag, attrs
}
