package raster

import "github.com/halvorsen/sfntglyph/outline"

// edge is one non-horizontal contour segment whose top is already snapped
// up to a sample row (a multiple of polyStep offset by polyStart); bottom
// is the segment's unsnapped lower-y end.
// winding is +1 for a segment whose y increases from top to bottom in the
// original outline's vertex order, -1 otherwise, feeding the non-zero
// winding accumulation in accumulateSpans.
type edge struct {
	winding    int
	x          Fixed
	top        Fixed
	bottom     Fixed
	stepX      Fixed
}

// buildEdges walks o's command stream, translated by (-offX, -offY) into
// local raster pixel space, and builds one edge per non-horizontal
// contour segment. Contours are expected to already be closed (outline's
// flattening always emits a closing LineTo back to the MoveTo point).
func buildEdges(o *outline.Outline, offX, offY Fixed) []edge {
	var edges []edge
	var prevX, prevY Fixed
	havePrev := false
	for _, cmd := range o.Commands {
		x := cmd.X - offX
		y := cmd.Y - offY
		if cmd.Flag == outline.MoveTo {
			prevX, prevY = x, y
			havePrev = true
			continue
		}
		if havePrev {
			if e, ok := makeEdge(prevX, prevY, x, y); ok {
				edges = append(edges, e)
			}
		}
		prevX, prevY = x, y
	}
	return edges
}

// makeEdge builds the edge for segment (x0,y0)-(x1,y1), snapping its top
// up to the nearest sample row. Horizontal segments contribute nothing to
// winding and are rejected, as are segments whose snapped top no longer
// falls strictly before their bottom.
func makeEdge(x0, y0, x1, y1 Fixed) (edge, bool) {
	if y0 == y1 {
		return edge{}, false
	}
	dy := int64(y1) - int64(y0)
	dx := int64(x1) - int64(x0)
	stepX := Fixed(dx * polyStep / dy)

	winding := 1
	topY, topX, botY := y0, x0, y1
	if y1 < y0 {
		winding = -1
		topY, topX, botY = y1, x1, y0
	}

	snappedTop := snapUp(topY)
	if snappedTop >= botY {
		return edge{}, false
	}
	xAtSnapped := topX + Fixed(int64(stepX)*(int64(snappedTop)-int64(topY))/polyStep)

	return edge{winding: winding, x: xAtSnapped, top: snappedTop, bottom: botY, stepX: stepX}, true
}

// snapUp rounds y up to the nearest sample row: a value congruent to
// polyStart modulo polyStep.
func snapUp(y Fixed) Fixed {
	rel := int64(y) - polyStart
	q := rel / polyStep
	if rel%polyStep > 0 {
		q++
	}
	return Fixed(polyStart + q*polyStep)
}

// accumulateSpans walks active (already sorted by current x) applying the
// non-zero winding rule, adding this sample row's coverage contribution
// for every span where the accumulated winding is non-zero.
func accumulateSpans(active []*edge, rowAccum []int32, width int) {
	winding := 0
	var spanStart Fixed
	for _, e := range active {
		before := winding != 0
		winding += e.winding
		after := winding != 0
		switch {
		case !before && after:
			spanStart = e.x
		case before && !after:
			addSpanCoverage(rowAccum, spanStart, e.x, width)
		}
	}
}

// addSpanCoverage adds this sample row's weight to every pixel column the
// Fixed-space interval [xStart, xEnd) overlaps, fractionally at the two
// boundary columns and fully for columns entirely inside the span.
func addSpanCoverage(rowAccum []int32, xStart, xEnd Fixed, width int) {
	if xEnd <= xStart {
		return
	}
	if xStart < 0 {
		xStart = 0
	}
	maxX := Fixed(width) << 16
	if xEnd > maxX {
		xEnd = maxX
	}
	if xEnd <= xStart {
		return
	}

	startPixel := int(xStart >> 16)
	endPixel := int((xEnd - 1) >> 16)

	if startPixel == endPixel {
		addWeight(rowAccum, startPixel, width, xEnd-xStart)
		return
	}
	firstColEnd := Fixed(startPixel+1) << 16
	addWeight(rowAccum, startPixel, width, firstColEnd-xStart)
	for p := startPixel + 1; p < endPixel; p++ {
		addWeight(rowAccum, p, width, 1<<16)
	}
	lastColStart := Fixed(endPixel) << 16
	addWeight(rowAccum, endPixel, width, xEnd-lastColStart)
}

func addWeight(rowAccum []int32, pixel, width int, fracFixed Fixed) {
	if pixel < 0 || pixel >= width {
		return
	}
	w := int32(int64(fracFixed) * subrowWeight >> 16)
	rowAccum[pixel] += w
}
