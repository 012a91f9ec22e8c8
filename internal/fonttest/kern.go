// Package fonttest builds font fixtures for tests.
package fonttest

import (
	"cmp"
	"encoding/binary"
	"errors"
	"math/bits"
	"slices"
)

// KernPair is one horizontal kerning entry in font units.
type KernPair struct {
	Left, Right uint16
	Value       int16
}

// WithKernTable returns a copy of the TrueType font ttf with a version 0
// kern table holding pairs. The font must not already have a kern table.
func WithKernTable(ttf []byte, pairs []KernPair) ([]byte, error) {
	if len(ttf) < 12 {
		return nil, errors.New("fonttest: font too short")
	}
	numTables := int(binary.BigEndian.Uint16(ttf[4:]))
	dirEnd := 12 + 16*numTables
	if len(ttf) < dirEnd {
		return nil, errors.New("fonttest: truncated table directory")
	}

	const kernTag = "kern"
	records := make([][]byte, 0, numTables+1)
	for i := range numTables {
		rec := slices.Clone(ttf[12+16*i : 28+16*i])
		if string(rec[:4]) == kernTag {
			return nil, errors.New("fonttest: font already has a kern table")
		}
		// Every table moves down by the new directory record.
		binary.BigEndian.PutUint32(rec[8:], binary.BigEndian.Uint32(rec[8:])+16)
		records = append(records, rec)
	}

	body := ttf[dirEnd:]
	tableOffset := dirEnd + 16 + len(body)
	pad := (4 - tableOffset%4) % 4
	tableOffset += pad

	table := kernTable(pairs)
	kern := make([]byte, 16)
	copy(kern, kernTag)
	binary.BigEndian.PutUint32(kern[8:], uint32(tableOffset))
	binary.BigEndian.PutUint32(kern[12:], uint32(len(table)))
	records = append(records, kern)
	slices.SortFunc(records, func(a, b []byte) int {
		return cmp.Compare(binary.BigEndian.Uint32(a), binary.BigEndian.Uint32(b))
	})

	n := numTables + 1
	out := make([]byte, 0, tableOffset+len(table))
	out = append(out, ttf[:4]...)
	out = binary.BigEndian.AppendUint16(out, uint16(n))
	entrySelector := bits.Len(uint(n)) - 1
	searchRange := 16 << entrySelector
	out = binary.BigEndian.AppendUint16(out, uint16(searchRange))
	out = binary.BigEndian.AppendUint16(out, uint16(entrySelector))
	out = binary.BigEndian.AppendUint16(out, uint16(16*n-searchRange))
	for _, rec := range records {
		out = append(out, rec...)
	}
	out = append(out, body...)
	out = append(out, make([]byte, pad)...)
	out = append(out, table...)
	return out, nil
}

// kernTable encodes a kern table with one horizontal format 0 subtable.
func kernTable(pairs []KernPair) []byte {
	pairs = slices.Clone(pairs)
	slices.SortFunc(pairs, func(a, b KernPair) int {
		return cmp.Or(cmp.Compare(a.Left, b.Left), cmp.Compare(a.Right, b.Right))
	})

	n := len(pairs)
	var b []byte
	b = binary.BigEndian.AppendUint16(b, 0) // version
	b = binary.BigEndian.AppendUint16(b, 1) // subtables
	b = binary.BigEndian.AppendUint16(b, 0)
	b = binary.BigEndian.AppendUint16(b, uint16(14+6*n))
	b = append(b, 0, 0x01) // format 0, horizontal
	b = binary.BigEndian.AppendUint16(b, uint16(n))
	entrySelector := 0
	if n > 0 {
		entrySelector = bits.Len(uint(n)) - 1
	}
	searchRange := 6 << entrySelector
	b = binary.BigEndian.AppendUint16(b, uint16(searchRange))
	b = binary.BigEndian.AppendUint16(b, uint16(entrySelector))
	b = binary.BigEndian.AppendUint16(b, uint16(max(6*n-searchRange, 0)))
	for _, p := range pairs {
		b = binary.BigEndian.AppendUint16(b, p.Left)
		b = binary.BigEndian.AppendUint16(b, p.Right)
		b = binary.BigEndian.AppendUint16(b, uint16(p.Value))
	}
	return b
}
