package sfnt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildHead(t *testing.T, unitsPerEm uint16, indexToLoc int16) []byte {
	t.Helper()
	b := make([]byte, 54)
	put32 := func(off int, v uint32) {
		b[off], b[off+1], b[off+2], b[off+3] = byte(v>>24), byte(v>>16), byte(v>>8), byte(v)
	}
	put16 := func(off int, v uint16) { b[off], b[off+1] = byte(v>>8), byte(v) }

	put32(0, uint32(ScalerVer1)) // version (reused bit pattern, value unchecked)
	put32(4, 0)                  // revision
	put32(8, 0)                  // checksum adjustment
	put32(12, headMagic)
	put16(16, 0) // flags
	put16(18, unitsPerEm)
	// created/modified: 16 bytes, left zero
	put16(36, 0xFF38) // xMin = -200
	put16(38, 0xFF38) // yMin = -200
	put16(40, 0x07D0) // xMax = 2000
	put16(42, 0x07D0) // yMax = 2000
	put16(44, 0)      // macStyle
	put16(46, 8)      // lowestRecPPEM
	put16(48, 2)      // fontDirectionHint
	put16(50, uint16(indexToLoc))
	put16(52, 0) // glyphDataFormat
	return b
}

func TestReadHead(t *testing.T) {
	b := buildHead(t, 2048, 1)
	h, err := ReadHead(b)
	require.NoError(t, err)
	assert.EqualValues(t, 2048, h.UnitsPerEm)
	assert.Equal(t, LocaLong, h.IndexToLocFormat)
	assert.EqualValues(t, -200, h.XMin)
	assert.EqualValues(t, 2000, h.YMax)
}

func TestReadHeadBadMagic(t *testing.T) {
	b := buildHead(t, 1000, 0)
	b[12] = 0 // corrupt the magic number
	_, err := ReadHead(b)
	require.Error(t, err)
	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, BadMagic, se.Kind)
}

func TestReadHeadBadLocaFormat(t *testing.T) {
	b := buildHead(t, 1000, 7)
	_, err := ReadHead(b)
	require.Error(t, err)
}

func buildHhea(t *testing.T, numLongHorMetrics uint16) []byte {
	t.Helper()
	b := make([]byte, 36)
	put16 := func(off int, v uint16) { b[off], b[off+1] = byte(v>>8), byte(v) }
	put16(4, 0x0320)  // ascent = 800
	put16(6, 0xFF38)  // descent = -200
	put16(8, 0)       // lineGap
	put16(10, 0x0640) // advanceWidthMax = 1600
	put16(34, numLongHorMetrics)
	return b
}

func TestReadHhea(t *testing.T) {
	b := buildHhea(t, 3)
	h, err := ReadHhea(b)
	require.NoError(t, err)
	assert.EqualValues(t, 800, h.Ascent)
	assert.EqualValues(t, -200, h.Descent)
	assert.EqualValues(t, 3, h.NumOfLongHorMetrics)
}

func TestReadMaxp(t *testing.T) {
	b := []byte{0, 1, 0, 0, 0, 42}
	m, err := ReadMaxp(b)
	require.NoError(t, err)
	assert.EqualValues(t, 42, m.NumGlyphs)
}

func TestReadHmtx(t *testing.T) {
	// 2 long entries, numGlyphs=4 leaves 2 trailing LSB-only entries.
	b := []byte{
		0x01, 0x00, 0x00, 0x05, // advance=256, lsb=5
		0x02, 0x00, 0x00, 0x0A, // advance=512, lsb=10
		0x00, 0x03, // tail lsb = 3
		0x00, 0x07, // tail lsb = 7
	}
	h, err := ReadHmtx(b, 2, 4)
	require.NoError(t, err)
	require.Len(t, h.HMetrics, 2)
	assert.EqualValues(t, 256, h.HMetrics[0].AdvanceWidth)
	assert.EqualValues(t, 512, h.HMetrics[1].AdvanceWidth)
	require.Len(t, h.TailLSB, 2)
	assert.EqualValues(t, 3, h.TailLSB[0])
	assert.EqualValues(t, 7, h.TailLSB[1])
}

func TestReadHmtxTooManyLongMetrics(t *testing.T) {
	_, err := ReadHmtx(nil, 5, 4)
	require.Error(t, err)
}

func TestReadLocaShort(t *testing.T) {
	// offsets (halved): 0, 10, 10, 25 -> *2 = 0, 20, 20, 50
	b := []byte{0, 0, 0, 10, 0, 10, 0, 25}
	l, err := ReadLoca(b, LocaShort, 3, 50)
	require.NoError(t, err)
	assert.Equal(t, []uint32{0, 20, 20, 50}, l.Offsets)
}

func TestReadLocaLongNonMonotonic(t *testing.T) {
	b := []byte{
		0, 0, 0, 0,
		0, 0, 0, 50,
		0, 0, 0, 10, // decreases: invalid
	}
	_, err := ReadLoca(b, LocaLong, 2, -1)
	require.Error(t, err)
	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, BadFormat, se.Kind)
}
