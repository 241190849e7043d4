package sfnt

// Well-known meta table data tags.
const (
	MetaTagDLNG Tag = 0x646c6e67 // "dlng": design languages
	MetaTagSLNG Tag = 0x736c6e67 // "slng": supported languages
)

// MetaDataMap locates one opaque metadata string within the meta table's
// owned byte arena.
type MetaDataMap struct {
	Tag Tag

	raw []byte
}

// String returns the raw metadata bytes as a string. The meta table's
// string-typed entries (dlng, slng) are specified as comma-separated
// ASCII/UTF-8 BCP 47 language tags.
func (m MetaDataMap) String() string { return string(m.raw) }

// MetaTable is the decoded meta table: opaque (tag, data) pairs.
type MetaTable struct {
	DataMaps []MetaDataMap
}

// Find returns the data map for tag, if present.
func (t *MetaTable) Find(tag Tag) (MetaDataMap, bool) {
	for _, m := range t.DataMaps {
		if m.Tag == tag {
			return m, true
		}
	}
	return MetaDataMap{}, false
}

// ReadMeta decodes the meta table (version 1).
func ReadMeta(b []byte) (*MetaTable, error) {
	const op = "read meta table"
	if len(b) < 16 {
		return nil, errf(op, Truncated, nil)
	}
	c := cursor(b)
	version := c.u32()
	if version != 1 {
		return nil, errf(op, BadFormat, nil)
	}
	c.skip(4) // flags
	c.skip(4) // reserved / dataOffset combined below via spec layout
	numDataMaps := int(c.u32())
	if c.len() < 12*numDataMaps {
		return nil, errf(op, Truncated, nil)
	}

	t := &MetaTable{DataMaps: make([]MetaDataMap, numDataMaps)}
	for i := 0; i < numDataMaps; i++ {
		tag := Tag(c.u32())
		offset := int(c.u32())
		length := int(c.u32())
		if offset < 0 || length < 0 || offset+length > len(b) {
			return nil, errf(op, Truncated, nil)
		}
		t.DataMaps[i] = MetaDataMap{Tag: tag, raw: b[offset : offset+length]}
	}
	return t, nil
}
