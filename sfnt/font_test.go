package sfnt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildFontImage assembles a minimal but complete font file: head, maxp,
// hhea, hmtx, loca, and glyf tables for a single glyph, laid out after the
// table directory the way a real font's table data follows its directory.
func buildFontImage(t *testing.T) []byte {
	t.Helper()

	head := buildHead(t, 1000, 0) // loca format short
	maxp := []byte{0, 1, 0, 0, 0, 1}
	hhea := buildHhea(t, 1)
	hmtx := []byte{0x03, 0xE8, 0x00, 0x00} // advance=1000, lsb=0
	glyf := buildSimpleGlyph(t)
	// loca (short): offsets 0 and len(glyf)/2, the one glyph's start and
	// the trailing end offset.
	loca := []byte{
		0, 0,
		byte(len(glyf) / 2 >> 8), byte(len(glyf) / 2),
	}

	type table struct {
		tag  Tag
		data []byte
	}
	tables := []table{
		{TagHead, head},
		{TagHhea, hhea},
		{TagMaxp, maxp},
		{TagHmtx, hmtx},
		{TagLoca, loca},
		{TagGlyf, glyf},
	}

	headerLen := 12 + 16*len(tables)
	offset := uint32(headerLen)
	records := make([]TableRecord, len(tables))
	var body []byte
	for i, tb := range tables {
		records[i] = TableRecord{Tag: tb.tag, Checksum: 0, Offset: offset, Length: uint32(len(tb.data))}
		body = append(body, tb.data...)
		offset += uint32(len(tb.data))
	}

	dir := buildDirectory(t, records)
	require.Equal(t, headerLen, len(dir))
	return append(dir, body...)
}

func TestParseFontAndLoadGlyph(t *testing.T) {
	data := buildFontImage(t)
	f, err := Parse(NewSliceSource(data))
	require.NoError(t, err)

	require.NotNil(t, f.Head)
	assert.EqualValues(t, 1000, f.Head.UnitsPerEm)
	require.NotNil(t, f.Maxp)
	assert.EqualValues(t, 1, f.Maxp.NumGlyphs)

	g, err := f.Glyph(0)
	require.NoError(t, err)
	require.NotNil(t, g.Simple)
	assert.Len(t, g.Simple.Points, 3)

	m, err := f.Metrics(0, 500)
	require.NoError(t, err)
	assert.Equal(t, Fixed(500)<<16, m.Advance)
}
