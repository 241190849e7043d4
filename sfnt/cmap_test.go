package sfnt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func u16be(v uint16) []byte { return []byte{byte(v >> 8), byte(v)} }

func TestCmapFormat0(t *testing.T) {
	b := make([]byte, 6+256)
	copy(b, u16be(0)) // format
	copy(b[2:], u16be(262))
	copy(b[4:], u16be(0))
	b[6+'A'] = 5
	b[6+'B'] = 6

	sub, err := decodeCmapSubtable(b)
	require.NoError(t, err)
	assert.Equal(t, 0, sub.Format())
	assert.EqualValues(t, 5, sub.Lookup('A'))
	assert.EqualValues(t, 6, sub.Lookup('B'))
	assert.EqualValues(t, 0, sub.Lookup('C'))
	assert.EqualValues(t, 0, sub.Lookup(1000)) // out of range
}

// buildFormat4 constructs a minimal format-4 subtable with one segment
// [firstChar, lastChar] mapped by a constant idDelta (idRangeOffset=0).
func buildFormat4(t *testing.T, firstChar, lastChar uint16, idDelta int16) []byte {
	t.Helper()
	segCount := 2 // one real segment plus the mandatory terminating 0xFFFF segment
	var b []byte
	put16 := func(v uint16) { b = append(b, byte(v>>8), byte(v)) }
	putI16 := func(v int16) { put16(uint16(v)) }

	put16(4)                      // format
	put16(0)                      // length (unused by decoder)
	put16(0)                      // language
	put16(uint16(segCount * 2))   // segCountX2
	put16(0)                      // searchRange
	put16(0)                      // entrySelector
	put16(0)                      // rangeShift
	put16(lastChar)               // endCode[0]
	put16(0xFFFF)                 // endCode[1]
	put16(0)                      // reservedPad
	put16(firstChar)              // startCode[0]
	put16(0xFFFF)                 // startCode[1]
	putI16(idDelta)                // idDelta[0]
	putI16(1)                      // idDelta[1] (maps 0xFFFF to glyph 0)
	put16(0)                      // idRangeOffset[0]
	put16(0)                      // idRangeOffset[1]
	return b
}

func TestCmapFormat4(t *testing.T) {
	b := buildFormat4(t, 'A', 'Z', 10)
	sub, err := decodeCmapSubtable(b)
	require.NoError(t, err)
	assert.Equal(t, 4, sub.Format())
	assert.EqualValues(t, 'A'+10, sub.Lookup('A'))
	assert.EqualValues(t, 'Z'+10, sub.Lookup('Z'))
	assert.EqualValues(t, 0, sub.Lookup('a')) // outside the mapped segment
}

func TestCmapFormat4RejectsMissingTerminator(t *testing.T) {
	b := buildFormat4(t, 'A', 'Z', 10)
	// Corrupt endCode[last] away from the mandatory 0xFFFF sentinel.
	copy(b[16:], u16be(0x1234))
	_, err := decodeCmapSubtable(b)
	require.Error(t, err)
}

func buildFormat6(t *testing.T, first uint16, glyphs []uint16) []byte {
	t.Helper()
	var b []byte
	put16 := func(v uint16) { b = append(b, byte(v>>8), byte(v)) }
	put16(6)
	put16(0)
	put16(0)
	put16(first)
	put16(uint16(len(glyphs)))
	for _, g := range glyphs {
		put16(g)
	}
	return b
}

func TestCmapFormat6(t *testing.T) {
	b := buildFormat6(t, 100, []uint16{7, 8, 9})
	sub, err := decodeCmapSubtable(b)
	require.NoError(t, err)
	assert.EqualValues(t, 7, sub.Lookup(100))
	assert.EqualValues(t, 9, sub.Lookup(102))
	assert.EqualValues(t, 0, sub.Lookup(99))
	assert.EqualValues(t, 0, sub.Lookup(103))
}

func TestDecodeCmapSubtableRejectsOutOfScopeFormat(t *testing.T) {
	b := append(u16be(14), make([]byte, 20)...)
	_, err := decodeCmapSubtable(b)
	require.Error(t, err)
	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, BadFormat, se.Kind)
}
