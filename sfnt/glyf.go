package sfnt

// Simple glyph point flags, per the TrueType glyf table format.
const (
	flagOnCurve = 1 << iota
	flagXShort
	flagYShort
	flagRepeat
	flagXSameOrPositive
	flagYSameOrPositive
)

// Compound glyph component flags.
const (
	flagArg1And2AreWords = 1 << iota
	flagArgsAreXYValues
	flagRoundXYToGrid
	flagWeHaveAScale
	flagCompoundReserved
	flagMoreComponents
	flagWeHaveAnXAndYScale
	flagWeHaveATwoByTwo
	flagWeHaveInstructions
	flagUseMyMetrics
	flagOverlapCompound
)

// GlyphIndex identifies a glyph within a font.
type GlyphIndex uint16

// Point is one on/off-curve vertex of a simple glyph contour, in funits.
type Point struct {
	X, Y   int16
	OnCurve bool
}

// SimpleGlyph is a glyph described directly by contours.
type SimpleGlyph struct {
	// EndPts[i] is the index into Points of the last point of contour i.
	EndPts       []uint16
	Points       []Point
	Instructions []byte
}

// CompoundComponent is one element of a compound glyph's component list.
type CompoundComponent struct {
	GlyphIndex GlyphIndex
	Flags      uint16

	// Arg1, Arg2 are either point indices (ArgsAreXYValues false) or signed
	// offsets in funits (ArgsAreXYValues true), per Flags&flagArgsAreXYValues.
	Arg1, Arg2 int16
	ArgsAreXYValues bool

	// Transform is the component's 2x2 matrix in F2Dot14 (2.14 fixed)
	// format. It is always populated: identity when neither
	// WE_HAVE_A_SCALE, WE_HAVE_AN_X_AND_Y_SCALE, nor WE_HAVE_A_TWO_BY_TWO
	// is set.
	Transform [4]F2Dot14

	UseMyMetrics bool
}

// F2Dot14 is a 16-bit signed 2.14 fixed-point number, used for compound
// glyph transform matrices.
type F2Dot14 int16

// Float64 returns x as a float64, n/16384.
func (x F2Dot14) Float64() float64 { return float64(x) / 16384 }

// CompoundGlyph is a glyph assembled by affine reference to other glyphs.
type CompoundGlyph struct {
	Components   []CompoundComponent
	Instructions []byte
}

// Glyph is either a SimpleGlyph or a CompoundGlyph (never both), plus the
// bounding box declared in the glyf header. NumberOfContours mirrors the
// raw field: >= 0 for simple, -1 for compound.
type Glyph struct {
	NumberOfContours int16
	XMin, YMin       FWord
	XMax, YMax       FWord
	Simple           *SimpleGlyph
	Compound         *CompoundGlyph
}

// Empty reports whether the glyph has no contours and no components, the
// representation of loca[i] == loca[i+1].
func (g *Glyph) Empty() bool {
	return g.Simple == nil && g.Compound == nil
}

// ReadGlyph resolves glyph index via loca into glyf and decodes it. An
// empty glyph (loca[index] == loca[index+1]) yields a non-nil *Glyph with
// Empty() true and no error.
func ReadGlyph(glyf []byte, loca *Loca, numGlyphs uint16, index GlyphIndex) (*Glyph, error) {
	const op = "read glyph"
	if uint16(index) >= numGlyphs {
		return nil, errf(op, BadGlyph, nil)
	}
	start, end := loca.Offsets[index], loca.Offsets[index+1]
	if start == end {
		return &Glyph{}, nil
	}
	if int64(end) > int64(len(glyf)) || start > end {
		return nil, errf(op, Truncated, nil)
	}
	c := cursor(glyf[start:end])
	if c.len() < 10 {
		return nil, errf(op, Truncated, nil)
	}
	g := &Glyph{}
	g.NumberOfContours = c.i16()
	g.XMin = FWord(c.i16())
	g.YMin = FWord(c.i16())
	g.XMax = FWord(c.i16())
	g.YMax = FWord(c.i16())

	if g.NumberOfContours >= 0 {
		simple, err := decodeSimpleGlyph(c, int(g.NumberOfContours))
		if err != nil {
			return nil, err
		}
		g.Simple = simple
		return g, nil
	}
	if g.NumberOfContours != -1 {
		return nil, errf(op, BadFormat, nil)
	}
	compound, err := decodeCompoundGlyph(c)
	if err != nil {
		return nil, err
	}
	g.Compound = compound
	return g, nil
}

func decodeSimpleGlyph(c cursor, numContours int) (*SimpleGlyph, error) {
	const op = "decode simple glyph"
	if c.len() < 2*numContours+2 {
		return nil, errf(op, Truncated, nil)
	}
	endPts := make([]uint16, numContours)
	for i := range endPts {
		endPts[i] = c.u16()
	}
	numPoints := 0
	if numContours > 0 {
		numPoints = int(endPts[numContours-1]) + 1
	}
	if c.len() < 2 {
		return nil, errf(op, Truncated, nil)
	}
	instrLen := int(c.u16())
	if c.len() < instrLen {
		return nil, errf(op, Truncated, nil)
	}
	instructions := append([]byte(nil), c.bytes(instrLen)...)

	flags := make([]uint8, numPoints)
	for i := 0; i < numPoints; {
		if c.len() < 1 {
			return nil, errf(op, Truncated, nil)
		}
		f := c.u8()
		flags[i] = f
		i++
		if f&flagRepeat != 0 {
			if c.len() < 1 {
				return nil, errf(op, Truncated, nil)
			}
			repeat := int(c.u8())
			for ; repeat > 0 && i < numPoints; repeat-- {
				flags[i] = f
				i++
			}
		}
	}

	points := make([]Point, numPoints)
	var x int16
	for i := 0; i < numPoints; i++ {
		f := flags[i]
		switch {
		case f&flagXShort != 0:
			if c.len() < 1 {
				return nil, errf(op, Truncated, nil)
			}
			d := int16(c.u8())
			if f&flagXSameOrPositive == 0 {
				d = -d
			}
			x += d
		case f&flagXSameOrPositive == 0:
			if c.len() < 2 {
				return nil, errf(op, Truncated, nil)
			}
			x += c.i16()
		}
		points[i].X = x
		points[i].OnCurve = f&flagOnCurve != 0
	}
	var y int16
	for i := 0; i < numPoints; i++ {
		f := flags[i]
		switch {
		case f&flagYShort != 0:
			if c.len() < 1 {
				return nil, errf(op, Truncated, nil)
			}
			d := int16(c.u8())
			if f&flagYSameOrPositive == 0 {
				d = -d
			}
			y += d
		case f&flagYSameOrPositive == 0:
			if c.len() < 2 {
				return nil, errf(op, Truncated, nil)
			}
			y += c.i16()
		}
		points[i].Y = y
	}

	return &SimpleGlyph{EndPts: endPts, Points: points, Instructions: instructions}, nil
}

func decodeCompoundGlyph(c cursor) (*CompoundGlyph, error) {
	const op = "decode compound glyph"
	cg := &CompoundGlyph{}
	for {
		if c.len() < 4 {
			return nil, errf(op, Truncated, nil)
		}
		flags := c.u16()
		glyphIndex := c.u16()

		var arg1, arg2 int16
		if flags&flagArg1And2AreWords != 0 {
			if c.len() < 4 {
				return nil, errf(op, Truncated, nil)
			}
			arg1 = c.i16()
			arg2 = c.i16()
		} else {
			if c.len() < 2 {
				return nil, errf(op, Truncated, nil)
			}
			// A byte arg is a signed funit offset when ARGS_ARE_XY_VALUES is
			// set, but an unsigned point index (0-255) when it is clear.
			if flags&flagArgsAreXYValues != 0 {
				arg1 = int16(int8(c.u8()))
				arg2 = int16(int8(c.u8()))
			} else {
				arg1 = int16(c.u8())
				arg2 = int16(c.u8())
			}
		}

		transform := [4]F2Dot14{1 << 14, 0, 0, 1 << 14} // identity
		switch {
		case flags&flagWeHaveATwoByTwo != 0:
			if c.len() < 8 {
				return nil, errf(op, Truncated, nil)
			}
			transform[0] = F2Dot14(c.i16())
			transform[1] = F2Dot14(c.i16())
			transform[2] = F2Dot14(c.i16())
			transform[3] = F2Dot14(c.i16())
		case flags&flagWeHaveAnXAndYScale != 0:
			if c.len() < 4 {
				return nil, errf(op, Truncated, nil)
			}
			transform[0] = F2Dot14(c.i16())
			transform[3] = F2Dot14(c.i16())
		case flags&flagWeHaveAScale != 0:
			if c.len() < 2 {
				return nil, errf(op, Truncated, nil)
			}
			s := F2Dot14(c.i16())
			transform[0] = s
			transform[3] = s
		}

		cg.Components = append(cg.Components, CompoundComponent{
			GlyphIndex:      GlyphIndex(glyphIndex),
			Flags:           flags,
			Arg1:            arg1,
			Arg2:            arg2,
			ArgsAreXYValues: flags&flagArgsAreXYValues != 0,
			Transform:       transform,
			UseMyMetrics:    flags&flagUseMyMetrics != 0,
		})

		if flags&flagMoreComponents == 0 {
			if flags&flagWeHaveInstructions != 0 {
				if c.len() < 2 {
					return nil, errf(op, Truncated, nil)
				}
				instrLen := int(c.u16())
				if c.len() < instrLen {
					return nil, errf(op, Truncated, nil)
				}
				cg.Instructions = append([]byte(nil), c.bytes(instrLen)...)
			}
			break
		}
	}
	return cg, nil
}
