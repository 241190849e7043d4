package outline

import "github.com/halvorsen/sfntglyph/sfnt"

// funitPoint is one vertex of a glyph assembled in font design units,
// before the final scale-to-pixels pass. Compound glyphs are fully
// resolved — transformed and translated — while still in this space, so
// that point-matching arguments refer to real, untransformed coordinates
// rather than already-flattened pixel geometry.
type funitPoint struct {
	x, y    int32
	onCurve bool
}

// assembly is a flattened list of funitPoints plus contour boundaries,
// the funit-space counterpart of Outline.
type assembly struct {
	points []funitPoint
	ends   []int // inclusive end index into points, one per contour
}

// Build assembles glyph (resolving any compound components through
// resolver) and flattens it into a Fixed pixel-space Outline scaled for
// pixelSize against unitsPerEm.
func Build(glyph *sfnt.Glyph, resolver GlyphResolver, unitsPerEm uint16, pixelSize int) (*Outline, error) {
	asm, err := assembleFromGlyph(glyph, resolver, 0)
	if err != nil {
		return nil, err
	}
	return flatten(asm, unitsPerEm, pixelSize)
}

func assembleSimple(s *sfnt.SimpleGlyph) *assembly {
	a := &assembly{
		points: make([]funitPoint, len(s.Points)),
		ends:   make([]int, len(s.EndPts)),
	}
	for i, p := range s.Points {
		a.points[i] = funitPoint{x: int32(p.X), y: int32(p.Y), onCurve: p.OnCurve}
	}
	for i, e := range s.EndPts {
		a.ends[i] = int(e)
	}
	return a
}

func assembleFromGlyph(g *sfnt.Glyph, resolver GlyphResolver, depth int) (*assembly, error) {
	const op = "assemble glyph"
	if depth > maxCompoundDepth {
		return nil, errf(op, sfnt.BadCompound, nil)
	}
	if g == nil || g.Empty() {
		return &assembly{}, nil
	}
	if g.Simple != nil {
		return assembleSimple(g.Simple), nil
	}
	if g.Compound == nil {
		return &assembly{}, nil
	}

	out := &assembly{}
	for _, comp := range g.Compound.Components {
		if resolver == nil {
			return nil, errf(op, sfnt.BadCompound, nil)
		}
		subGlyph, err := resolver.Glyph(comp.GlyphIndex)
		if err != nil {
			return nil, errf(op, sfnt.BadCompound, err)
		}
		sub, err := assembleFromGlyph(subGlyph, resolver, depth+1)
		if err != nil {
			return nil, err
		}
		transformed := applyTransform(sub.points, comp.Transform)

		var dx, dy int32
		if comp.ArgsAreXYValues {
			dx, dy = int32(comp.Arg1), int32(comp.Arg2)
		} else {
			// Point-matching mode: dx,dy is the vector that makes the
			// parent contour's point Arg1 coincide with the (already
			// transformed) sub-glyph's point Arg2.
			pIdx, qIdx := int(comp.Arg1), int(comp.Arg2)
			if pIdx < 0 || pIdx >= len(out.points) || qIdx < 0 || qIdx >= len(transformed) {
				return nil, errf(op, sfnt.BadCompound, nil)
			}
			dx = out.points[pIdx].x - transformed[qIdx].x
			dy = out.points[pIdx].y - transformed[qIdx].y
		}

		base := len(out.points)
		for _, pt := range transformed {
			out.points = append(out.points, funitPoint{x: pt.x + dx, y: pt.y + dy, onCurve: pt.onCurve})
		}
		for _, e := range sub.ends {
			out.ends = append(out.ends, base+e)
		}
	}
	return out, nil
}

// applyTransform applies a compound component's 2x2 F2Dot14 matrix to
// every point, using the same rounded fixed-point multiply the newer
// freetype/truetype GlyphBuf uses for the analogous computation:
// newX = round(x*m0 + y*m2), newY = round(x*m1 + y*m3).
func applyTransform(points []funitPoint, t [4]sfnt.F2Dot14) []funitPoint {
	out := make([]funitPoint, len(points))
	if t[0] == 1<<14 && t[1] == 0 && t[2] == 0 && t[3] == 1<<14 {
		copy(out, points)
		return out
	}
	t0, t1, t2, t3 := int64(t[0]), int64(t[1]), int64(t[2]), int64(t[3])
	for i, p := range points {
		x, y := int64(p.x), int64(p.y)
		nx := int32((x*t0 + y*t2 + 1<<13) >> 14)
		ny := int32((x*t1 + y*t3 + 1<<13) >> 14)
		out[i] = funitPoint{x: nx, y: ny, onCurve: p.onCurve}
	}
	return out
}

func toFixed(v int32, unitsPerEm uint16, pixelSize int) Fixed {
	return Fixed(int64(v) * int64(pixelSize) << 16 / int64(unitsPerEm))
}

func flatten(asm *assembly, unitsPerEm uint16, pixelSize int) (*Outline, error) {
	const op = "flatten outline"
	if unitsPerEm == 0 {
		return nil, errf(op, sfnt.BadFormat, nil)
	}
	out := &Outline{}
	start := 0
	for _, end := range asm.ends {
		if end < start || end >= len(asm.points) {
			return nil, errf(op, sfnt.BadGlyph, nil)
		}
		flattenContour(out, asm.points[start:end+1], unitsPerEm, pixelSize)
		start = end + 1
	}
	return out, nil
}

// fixedPoint is a funitPoint after scaling to Fixed pixel space.
type fixedPoint struct {
	x, y    Fixed
	onCurve bool
}

// flattenContour walks one contour's on/off-curve points, reconstructing
// implicit on-curve midpoints between consecutive off-curve points, and
// emits a MoveTo followed by LineTos (straight segments emitted directly,
// quadratic segments flattened via subdivideQuad), closing back to the
// contour's start.
func flattenContour(out *Outline, pts []funitPoint, unitsPerEm uint16, pixelSize int) {
	if len(pts) == 0 {
		return
	}
	fp := make([]fixedPoint, len(pts))
	for i, p := range pts {
		fp[i] = fixedPoint{
			x:       toFixed(p.x, unitsPerEm, pixelSize),
			y:       toFixed(p.y, unitsPerEm, pixelSize),
			onCurve: p.onCurve,
		}
	}

	n := len(fp)
	var start fixedPoint
	var rest []fixedPoint
	switch {
	case fp[0].onCurve:
		start, rest = fp[0], fp[1:]
	case fp[n-1].onCurve:
		start, rest = fp[n-1], fp[:n-1]
	default:
		start, rest = midFixed(fp[0], fp[n-1]), fp
	}

	out.moveTo(start.x, start.y)
	cur := start
	var pending *fixedPoint
	for i := range rest {
		p := rest[i]
		if p.onCurve {
			if pending != nil {
				subdivideQuad(out, cur, *pending, p, 0)
				pending = nil
			} else {
				out.lineTo(p.x, p.y)
			}
			cur = p
			continue
		}
		if pending != nil {
			mid := midFixed(*pending, p)
			subdivideQuad(out, cur, *pending, mid, 0)
			cur = mid
		}
		pc := p
		pending = &pc
	}
	if pending != nil {
		subdivideQuad(out, cur, *pending, start, 0)
	} else {
		out.lineTo(start.x, start.y)
	}
}

func midFixed(a, b fixedPoint) fixedPoint {
	return fixedPoint{x: (a.x + b.x) / 2, y: (a.y + b.y) / 2, onCurve: true}
}
