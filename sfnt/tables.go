package sfnt

// Fixed is a 32-bit signed 16.16 fixed-point number.
type Fixed int32

// FWord is a signed 16-bit quantity measured in font design units.
type FWord int16

// UFWord is the unsigned counterpart of FWord.
type UFWord uint16

const headMagic = 0x5F0F3CF5

// LocaFormat selects how the loca table's offsets are packed.
type LocaFormat int16

const (
	LocaShort LocaFormat = 0
	LocaLong  LocaFormat = 1
)

// Head is the decoded head table. UnitsPerEm scales funits to fractions of
// an em; XMin, YMin, XMax, YMax are the font-wide glyph bounding box in
// funits.
type Head struct {
	Version             Fixed
	Revision            Fixed
	ChecksumAdjustment  uint32
	UnitsPerEm          uint16
	XMin, YMin          FWord
	XMax, YMax          FWord
	MacStyle            uint16
	LowestRecPPEM       uint16
	FontDirectionHint   int16
	IndexToLocFormat    LocaFormat
	GlyphDataFormat     int16
}

// ReadHead decodes the head table. It verifies the magic number and
// rejects an index_to_loc_format other than 0 or 1.
func ReadHead(b []byte) (*Head, error) {
	const op = "read head table"
	if len(b) < 54 {
		return nil, errf(op, Truncated, nil)
	}
	c := cursor(b)
	h := &Head{}
	h.Version = Fixed(c.i32())
	h.Revision = Fixed(c.i32())
	h.ChecksumAdjustment = c.u32()
	magic := c.u32()
	if magic != headMagic {
		return nil, errf(op, BadMagic, nil)
	}
	c.skip(2) // flags
	h.UnitsPerEm = c.u16()
	c.skip(16) // created, modified (two int64s)
	h.XMin = FWord(c.i16())
	h.YMin = FWord(c.i16())
	h.XMax = FWord(c.i16())
	h.YMax = FWord(c.i16())
	h.MacStyle = c.u16()
	h.LowestRecPPEM = c.u16()
	h.FontDirectionHint = c.i16()
	switch v := c.i16(); v {
	case 0:
		h.IndexToLocFormat = LocaShort
	case 1:
		h.IndexToLocFormat = LocaLong
	default:
		return nil, errf(op, BadFormat, nil)
	}
	h.GlyphDataFormat = c.i16()
	return h, nil
}

// Hhea is the decoded horizontal header table.
type Hhea struct {
	Ascent               FWord
	Descent              FWord
	LineGap              FWord
	AdvanceWidthMax      UFWord
	MinLeftSideBearing   FWord
	MinRightSideBearing  FWord
	XMaxExtent           FWord
	NumOfLongHorMetrics  uint16
}

// ReadHhea decodes the hhea table.
func ReadHhea(b []byte) (*Hhea, error) {
	const op = "read hhea table"
	if len(b) < 36 {
		return nil, errf(op, Truncated, nil)
	}
	c := cursor(b)
	c.skip(4) // version
	h := &Hhea{}
	h.Ascent = FWord(c.i16())
	h.Descent = FWord(c.i16())
	h.LineGap = FWord(c.i16())
	h.AdvanceWidthMax = UFWord(c.u16())
	h.MinLeftSideBearing = FWord(c.i16())
	h.MinRightSideBearing = FWord(c.i16())
	h.XMaxExtent = FWord(c.i16())
	// caretSlopeRise, caretSlopeRun, caretOffset, 4 reserved shorts,
	// metricDataFormat: 8 shorts to skip before numOfLongHorMetrics.
	c.skip(2 * 8)
	h.NumOfLongHorMetrics = c.u16()
	return h, nil
}

// Maxp is the decoded maximum profile table; only the field the rest of
// the pipeline needs is kept.
type Maxp struct {
	NumGlyphs uint16
}

// ReadMaxp decodes the maxp table.
func ReadMaxp(b []byte) (*Maxp, error) {
	const op = "read maxp table"
	if len(b) < 6 {
		return nil, errf(op, Truncated, nil)
	}
	c := cursor(b)
	c.skip(4) // version
	return &Maxp{NumGlyphs: c.u16()}, nil
}

// LongHorMetric is one (advance, lsb) pair as stored for the first
// NumOfLongHorMetrics glyphs.
type LongHorMetric struct {
	AdvanceWidth    uint16
	LeftSideBearing int16
}

// Hmtx is the decoded horizontal metrics table: NumOfLongHorMetrics
// explicit pairs followed by a tail of left-side bearings that share the
// last explicit advance.
type Hmtx struct {
	HMetrics []LongHorMetric
	TailLSB  []int16
}

// ReadHmtx decodes the hmtx table, sized from hhea.NumOfLongHorMetrics and
// maxp.NumGlyphs.
func ReadHmtx(b []byte, numOfLongHorMetrics uint16, numGlyphs uint16) (*Hmtx, error) {
	const op = "read hmtx table"
	if numOfLongHorMetrics > numGlyphs {
		return nil, errf(op, BadFormat, nil)
	}
	tailCount := int(numGlyphs - numOfLongHorMetrics)
	want := 4*int(numOfLongHorMetrics) + 2*tailCount
	if len(b) < want {
		return nil, errf(op, Truncated, nil)
	}
	c := cursor(b)
	h := &Hmtx{
		HMetrics: make([]LongHorMetric, numOfLongHorMetrics),
		TailLSB:  make([]int16, tailCount),
	}
	for i := range h.HMetrics {
		h.HMetrics[i] = LongHorMetric{AdvanceWidth: c.u16(), LeftSideBearing: c.i16()}
	}
	for i := range h.TailLSB {
		h.TailLSB[i] = c.i16()
	}
	return h, nil
}

// Loca is the decoded glyph-location table: num_glyphs+1 non-decreasing
// offsets into glyf, already expanded from the short (÷2) representation
// if that is how the font stored them.
type Loca struct {
	Offsets []uint32
}

// ReadLoca decodes the loca table. glyfLength, if non-negative, is checked
// against the final offset.
func ReadLoca(b []byte, format LocaFormat, numGlyphs uint16, glyfLength int64) (*Loca, error) {
	const op = "read loca table"
	n := int(numGlyphs) + 1
	l := &Loca{Offsets: make([]uint32, n)}
	c := cursor(b)
	switch format {
	case LocaShort:
		if len(b) < 2*n {
			return nil, errf(op, Truncated, nil)
		}
		for i := 0; i < n; i++ {
			l.Offsets[i] = uint32(c.u16()) * 2
		}
	case LocaLong:
		if len(b) < 4*n {
			return nil, errf(op, Truncated, nil)
		}
		for i := 0; i < n; i++ {
			l.Offsets[i] = c.u32()
		}
	default:
		return nil, errf(op, BadFormat, nil)
	}
	for i := 1; i < n; i++ {
		if l.Offsets[i] < l.Offsets[i-1] {
			return nil, errf(op, BadFormat, nil)
		}
	}
	if glyfLength >= 0 && n > 0 && int64(l.Offsets[n-1]) != glyfLength {
		return nil, errf(op, BadFormat, nil)
	}
	return l, nil
}
