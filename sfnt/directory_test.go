package sfnt

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildDirectory encodes a minimal offset subtable plus table directory
// with the given records (already sorted by tag), mirroring the binary
// layout ReadTableDirectory expects.
func buildDirectory(t *testing.T, records []TableRecord) []byte {
	t.Helper()
	var b []byte
	putU32 := func(v uint32) { b = append(b, byte(v>>24), byte(v>>16), byte(v>>8), byte(v)) }
	putU16 := func(v uint16) { b = append(b, byte(v>>8), byte(v)) }

	putU32(uint32(ScalerVer1))
	putU16(uint16(len(records)))
	putU16(0) // search_range
	putU16(0) // entry_selector
	putU16(0) // range_shift
	for _, r := range records {
		putU32(uint32(r.Tag))
		putU32(r.Checksum)
		putU32(r.Offset)
		putU32(r.Length)
	}
	return b
}

func TestReadTableDirectoryRoundTrip(t *testing.T) {
	want := []TableRecord{
		{Tag: TagCmap, Checksum: 1, Offset: 100, Length: 20},
		{Tag: TagGlyf, Checksum: 2, Offset: 120, Length: 400},
		{Tag: TagHead, Checksum: 3, Offset: 40, Length: 54},
	}
	data := buildDirectory(t, want)

	dir, err := ReadTableDirectory(NewByteReader(NewSliceSource(data)))
	require.NoError(t, err)
	assert.Equal(t, ScalerVer1, dir.Scaler)
	if diff := cmp.Diff(want, dir.Records()); diff != "" {
		t.Errorf("Records() round-trip mismatch (-want +got):\n%s", diff)
	}

	for _, r := range want {
		got, ok := dir.Find(r.Tag)
		require.True(t, ok)
		assert.Equal(t, r, got)
	}

	_, ok := dir.Find(mkTag("zzzz"))
	assert.False(t, ok)
}

func TestReadTableDirectoryBadScaler(t *testing.T) {
	data := []byte{0xde, 0xad, 0xbe, 0xef, 0, 0, 0, 0, 0, 0, 0, 0}
	_, err := ReadTableDirectory(NewByteReader(NewSliceSource(data)))
	require.Error(t, err)
	var se *Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, BadFormat, se.Kind)
}

func TestTagString(t *testing.T) {
	assert.Equal(t, "cmap", TagCmap.String())
	assert.Equal(t, "glyf", TagGlyf.String())
}
