package sfnt

import "sort"

// CmapSubtable maps Unicode scalar values to glyph indices. Lookup never
// fails: an unmapped or out-of-range character returns glyph 0, the
// .notdef glyph.
type CmapSubtable interface {
	Format() int
	Lookup(char uint32) GlyphIndex
}

// CmapRecord pairs one encoding subtable with the platform under which it
// was registered.
type CmapRecord struct {
	PlatformID         uint16
	PlatformSpecificID uint16
	Subtable           CmapSubtable
}

// Cmap is the decoded character-to-glyph mapping table: every encoding
// subtable the font declares, each independently queryable.
type Cmap struct {
	Records []CmapRecord
}

// PreferredSubtable picks the subtable most likely to cover Unicode text,
// favoring a Windows/Unicode BMP or full-repertoire encoding the way the
// teacher's parseCmap prefers unicodeEncoding then microsoftEncoding.
func (cm *Cmap) PreferredSubtable() CmapSubtable {
	var fallback CmapSubtable
	for _, r := range cm.Records {
		switch {
		case r.PlatformID == 3 && r.PlatformSpecificID == 10:
			return r.Subtable // Windows, UCS-4
		case r.PlatformID == 3 && r.PlatformSpecificID == 1:
			fallback = r.Subtable // Windows, UCS-2 BMP
		case r.PlatformID == 0 && fallback == nil:
			fallback = r.Subtable // Unicode, any version
		}
	}
	if fallback != nil {
		return fallback
	}
	if len(cm.Records) > 0 {
		return cm.Records[0].Subtable
	}
	return nil
}

// ReadCmap decodes the top-level cmap record and every encoding subtable
// it references.
func ReadCmap(b []byte) (*Cmap, error) {
	const op = "read cmap table"
	if len(b) < 4 {
		return nil, errf(op, Truncated, nil)
	}
	c := cursor(b)
	c.skip(2) // version
	numSubtables := int(c.u16())
	if c.len() < 8*numSubtables {
		return nil, errf(op, Truncated, nil)
	}

	type enc struct {
		platformID, platformSpecificID uint16
		offset                         uint32
	}
	encs := make([]enc, numSubtables)
	for i := range encs {
		encs[i] = enc{c.u16(), c.u16(), c.u32()}
	}

	cm := &Cmap{}
	for _, e := range encs {
		if int64(e.offset) >= int64(len(b)) {
			return nil, errf(op, Truncated, nil)
		}
		sub, err := decodeCmapSubtable(b[e.offset:])
		if err != nil {
			return nil, err
		}
		cm.Records = append(cm.Records, CmapRecord{
			PlatformID:         e.platformID,
			PlatformSpecificID: e.platformSpecificID,
			Subtable:           sub,
		})
	}
	return cm, nil
}

func decodeCmapSubtable(b []byte) (CmapSubtable, error) {
	const op = "decode cmap subtable"
	if len(b) < 2 {
		return nil, errf(op, Truncated, nil)
	}
	format := uint16(b[0])<<8 | uint16(b[1])
	switch format {
	case 0:
		return decodeCmapFormat0(b)
	case 2:
		return decodeCmapFormat2(b)
	case 4:
		return decodeCmapFormat4(b)
	case 6:
		return decodeCmapFormat6(b)
	case 8:
		return decodeCmapFormat8(b)
	case 12:
		return decodeCmapFormat12(b)
	default:
		// Formats 10, 13, 14 and anything unrecognized are explicitly
		// out of scope.
		return nil, errf(op, BadFormat, nil)
	}
}

// --- format 0: byte encoding table ---

type cmapFormat0 struct {
	glyphIndexArray [256]uint8
}

func (*cmapFormat0) Format() int { return 0 }

func (t *cmapFormat0) Lookup(char uint32) GlyphIndex {
	if char >= 256 {
		return 0
	}
	return GlyphIndex(t.glyphIndexArray[char])
}

func decodeCmapFormat0(b []byte) (*cmapFormat0, error) {
	const op = "decode cmap format 0"
	if len(b) < 6+256 {
		return nil, errf(op, Truncated, nil)
	}
	c := cursor(b)
	c.skip(6) // format, length, language
	t := &cmapFormat0{}
	copy(t.glyphIndexArray[:], c.bytes(256))
	return t, nil
}

// --- format 2: high-byte mapping through table ---

type cmapSubheader struct {
	firstCode     uint16
	entryCount    uint16
	idDelta       int16
	idRangeOffset uint16
	selfOffset    int // byte offset of idRangeOffset field within raw
}

type cmapFormat2 struct {
	raw           []byte // subtable bytes, for idRangeOffset dereferencing
	subHeaderKeys [256]uint16
	subheaders    []cmapSubheader
}

func (*cmapFormat2) Format() int { return 2 }

func (t *cmapFormat2) Lookup(char uint32) GlyphIndex {
	if char > 0xFFFF {
		return 0
	}
	h := byte(char >> 8)
	k := int(t.subHeaderKeys[h] / 8)
	if k >= len(t.subheaders) {
		return 0
	}
	sh := t.subheaders[k]
	l := uint16(char & 0xFF)
	if l < sh.firstCode || uint32(l) >= uint32(sh.firstCode)+uint32(sh.entryCount) {
		return 0
	}
	if sh.idRangeOffset == 0 {
		return GlyphIndex(l + uint16(sh.idDelta))
	}
	addr := sh.selfOffset + int(sh.idRangeOffset) + 2*int(l-sh.firstCode)
	if addr < 0 || addr+2 > len(t.raw) {
		return 0
	}
	g := uint16(t.raw[addr])<<8 | uint16(t.raw[addr+1])
	if g == 0 {
		return 0
	}
	return GlyphIndex(g + uint16(sh.idDelta))
}

func decodeCmapFormat2(b []byte) (*cmapFormat2, error) {
	const op = "decode cmap format 2"
	if len(b) < 6+512 {
		return nil, errf(op, Truncated, nil)
	}
	c := cursor(b)
	c.skip(6) // format, length, language
	t := &cmapFormat2{raw: b}
	var maxKey uint16
	for i := range t.subHeaderKeys {
		k := c.u16()
		t.subHeaderKeys[i] = k
		if k > maxKey {
			maxKey = k
		}
	}
	numSubheaders := int(maxKey/8) + 1
	pos := len(b) - c.len()
	for i := 0; i < numSubheaders; i++ {
		if c.len() < 8 {
			return nil, errf(op, Truncated, nil)
		}
		sh := cmapSubheader{
			firstCode:  c.u16(),
			entryCount: c.u16(),
			idDelta:    c.i16(),
		}
		idRangeOffsetPos := pos + 6
		sh.idRangeOffset = c.u16()
		sh.selfOffset = idRangeOffsetPos
		t.subheaders = append(t.subheaders, sh)
		pos += 8
	}
	return t, nil
}

// --- format 4: segment mapping to delta values ---

type cmapFormat4 struct {
	raw        []byte
	segCount   int
	endCode    []uint16
	startCode  []uint16
	idDelta    []int16
	idROffset  []uint16
	idRBase    int // byte offset of idRangeOffset[0] within raw
}

func (*cmapFormat4) Format() int { return 4 }

func (t *cmapFormat4) Lookup(char uint32) GlyphIndex {
	if char > 0xFFFF {
		return 0
	}
	c16 := uint16(char)
	i := sort.Search(t.segCount, func(i int) bool { return t.endCode[i] >= c16 })
	if i == t.segCount {
		return 0
	}
	if t.startCode[i] > c16 {
		return 0
	}
	if t.idROffset[i] == 0 {
		return GlyphIndex(c16 + uint16(t.idDelta[i]))
	}
	addr := t.idRBase + 2*i + int(t.idROffset[i]) + 2*int(c16-t.startCode[i])
	if addr < 0 || addr+2 > len(t.raw) {
		return 0
	}
	g := uint16(t.raw[addr])<<8 | uint16(t.raw[addr+1])
	if g == 0 {
		return 0
	}
	return GlyphIndex(g + uint16(t.idDelta[i]))
}

func decodeCmapFormat4(b []byte) (*cmapFormat4, error) {
	const op = "decode cmap format 4"
	if len(b) < 14 {
		return nil, errf(op, Truncated, nil)
	}
	c := cursor(b)
	c.skip(4) // format, length
	c.skip(2) // language
	segCountX2 := c.u16()
	if segCountX2%2 != 0 {
		return nil, errf(op, BadFormat, nil)
	}
	segCount := int(segCountX2 / 2)
	c.skip(6) // searchRange, entrySelector, rangeShift
	if c.len() < 2*segCount {
		return nil, errf(op, Truncated, nil)
	}
	t := &cmapFormat4{raw: b, segCount: segCount}
	t.endCode = make([]uint16, segCount)
	for i := range t.endCode {
		t.endCode[i] = c.u16()
	}
	if segCount > 0 && t.endCode[segCount-1] != 0xFFFF {
		return nil, errf(op, BadFormat, nil)
	}
	if c.len() < 2 {
		return nil, errf(op, Truncated, nil)
	}
	c.skip(2) // reservedPad
	if c.len() < 2*segCount {
		return nil, errf(op, Truncated, nil)
	}
	t.startCode = make([]uint16, segCount)
	for i := range t.startCode {
		t.startCode[i] = c.u16()
	}
	if c.len() < 2*segCount {
		return nil, errf(op, Truncated, nil)
	}
	t.idDelta = make([]int16, segCount)
	for i := range t.idDelta {
		t.idDelta[i] = c.i16()
	}
	t.idRBase = len(b) - c.len()
	if c.len() < 2*segCount {
		return nil, errf(op, Truncated, nil)
	}
	t.idROffset = make([]uint16, segCount)
	for i := range t.idROffset {
		t.idROffset[i] = c.u16()
	}
	return t, nil
}

// --- format 6: trimmed table mapping ---

type cmapFormat6 struct {
	firstCode       uint16
	glyphIndexArray []uint16
}

func (*cmapFormat6) Format() int { return 6 }

func (t *cmapFormat6) Lookup(char uint32) GlyphIndex {
	if char < uint32(t.firstCode) || char >= uint32(t.firstCode)+uint32(len(t.glyphIndexArray)) {
		return 0
	}
	return GlyphIndex(t.glyphIndexArray[char-uint32(t.firstCode)])
}

func decodeCmapFormat6(b []byte) (*cmapFormat6, error) {
	const op = "decode cmap format 6"
	if len(b) < 10 {
		return nil, errf(op, Truncated, nil)
	}
	c := cursor(b)
	c.skip(6) // format, length, language
	firstCode := c.u16()
	entryCount := int(c.u16())
	if c.len() < 2*entryCount {
		return nil, errf(op, Truncated, nil)
	}
	arr := make([]uint16, entryCount)
	for i := range arr {
		arr[i] = c.u16()
	}
	return &cmapFormat6{firstCode: firstCode, glyphIndexArray: arr}, nil
}

// --- formats 8 and 12: grouped ranges ---

type cmapGroup struct {
	startCharCode, endCharCode, startGlyphCode uint32
}

type cmapFormat8 struct {
	is32   [8192]byte
	groups []cmapGroup
}

func (*cmapFormat8) Format() int { return 8 }

// IsSurrogateLead reports whether the 16-bit code unit u begins a 32-bit
// character code under this subtable's is32 bitmap — callers combining raw
// UTF-16 code units into a scalar before calling Lookup consult this first.
func (t *cmapFormat8) IsSurrogateLead(u uint16) bool {
	return t.is32[u>>3]&(1<<(7-u&7)) != 0
}

func (t *cmapFormat8) Lookup(char uint32) GlyphIndex {
	return lookupGroups(t.groups, char)
}

func decodeCmapFormat8(b []byte) (*cmapFormat8, error) {
	const op = "decode cmap format 8"
	if len(b) < 8192+16 {
		return nil, errf(op, Truncated, nil)
	}
	c := cursor(b)
	c.skip(2) // format
	c.skip(2) // reserved
	c.skip(4) // length
	c.skip(4) // language
	t := &cmapFormat8{}
	copy(t.is32[:], c.bytes(8192))
	if c.len() < 4 {
		return nil, errf(op, Truncated, nil)
	}
	numGroups := int(c.u32())
	if c.len() < 12*numGroups {
		return nil, errf(op, Truncated, nil)
	}
	groups, err := decodeGroups(&c, numGroups)
	if err != nil {
		return nil, err
	}
	t.groups = groups
	return t, nil
}

type cmapFormat12 struct {
	groups []cmapGroup
}

func (*cmapFormat12) Format() int { return 12 }

func (t *cmapFormat12) Lookup(char uint32) GlyphIndex {
	return lookupGroups(t.groups, char)
}

func decodeCmapFormat12(b []byte) (*cmapFormat12, error) {
	const op = "decode cmap format 12"
	if len(b) < 16 {
		return nil, errf(op, Truncated, nil)
	}
	c := cursor(b)
	c.skip(2) // format
	c.skip(2) // reserved
	c.skip(4) // length
	c.skip(4) // language
	numGroups := int(c.u32())
	if c.len() < 12*numGroups {
		return nil, errf(op, Truncated, nil)
	}
	groups, err := decodeGroups(&c, numGroups)
	if err != nil {
		return nil, err
	}
	return &cmapFormat12{groups: groups}, nil
}

func decodeGroups(c *cursor, numGroups int) ([]cmapGroup, error) {
	const op = "decode cmap groups"
	groups := make([]cmapGroup, numGroups)
	var prevEnd uint32
	for i := range groups {
		g := cmapGroup{startCharCode: c.u32(), endCharCode: c.u32(), startGlyphCode: c.u32()}
		if g.startCharCode > g.endCharCode {
			return nil, errf(op, BadFormat, nil)
		}
		if i > 0 && g.startCharCode <= prevEnd {
			return nil, errf(op, BadFormat, nil)
		}
		prevEnd = g.endCharCode
		groups[i] = g
	}
	return groups, nil
}

func lookupGroups(groups []cmapGroup, char uint32) GlyphIndex {
	i := sort.Search(len(groups), func(i int) bool { return groups[i].endCharCode >= char })
	if i == len(groups) || groups[i].startCharCode > char {
		return 0
	}
	return GlyphIndex(groups[i].startGlyphCode + (char - groups[i].startCharCode))
}
