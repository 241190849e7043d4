// Package raster fills a flattened outline into a coverage bitmap using a
// vertically-supersampled active-edge-table scanline algorithm with
// non-zero winding, the same family of technique as the original format's
// sfnt_raster/sfnt_edge pair, re-expressed as a slice-based active list
// instead of an intrusive linked list.
package raster

import (
	"sort"

	"github.com/halvorsen/sfntglyph/outline"
	"github.com/halvorsen/sfntglyph/sfnt"
)

// Fixed is the same 16.16 fixed-point representation outline and sfnt use.
type Fixed = outline.Fixed

const (
	// polyShift sets the vertical supersampling rate: 2^polyShift sample
	// rows are walked per output pixel row.
	polyShift  = 2
	polySample = 1 << polyShift
	polyStep   = 0x10000 >> polyShift
	polyStart  = polyStep >> 1

	// subrowWeight is the coverage a fully-covered pixel column
	// contributes from a single sample row; polySample rows summed give
	// a maximum of polySample*subrowWeight, clamped to 255.
	subrowWeight = 256 / polySample
)

// Raster is a coverage bitmap: one byte per pixel, 0 (empty) to 255
// (fully covered), addressed row-major with Stride bytes per row. OffX
// and OffY are the pixel-space coordinates of cell (0,0), so that an
// Outline's Fixed coordinates map to local raster columns/rows via
// (coord>>16) - OffX / OffY. Ref/Unref use a plain int32 reference
// count, so a Raster shared across goroutines needs external
// synchronization.
type Raster struct {
	Cells         []byte
	Width, Height int
	OffX, OffY    int32
	Stride        int

	refcount int32
}

func (r *Raster) Ref() *Raster { r.refcount++; return r }
func (r *Raster) Unref()       { r.refcount-- }
func (r *Raster) Refcount() int32 { return r.refcount }

// At returns the coverage at local pixel (x, y), or 0 outside bounds.
func (r *Raster) At(x, y int) byte {
	if x < 0 || x >= r.Width || y < 0 || y >= r.Height {
		return 0
	}
	return r.Cells[y*r.Stride+x]
}

func floorFixed(f Fixed) int32 {
	return int32(f >> 16)
}

func ceilFixed(f Fixed) int32 {
	return int32((f + 0xFFFF) >> 16)
}

// PrepareRaster sizes a Raster from an outline's bounding box, without
// filling it. An empty outline (no commands) yields a zero-sized Raster.
func PrepareRaster(o *outline.Outline) *Raster {
	if len(o.Commands) == 0 {
		return &Raster{}
	}
	offx := floorFixed(o.XMin)
	offy := floorFixed(o.YMin)
	width := int(ceilFixed(o.XMax) - offx)
	height := int(ceilFixed(o.YMax) - offy)
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Raster{
		Cells:  make([]byte, width*height),
		Width:  width,
		Height: height,
		OffX:   offx,
		OffY:   offy,
		Stride: width,
	}
}

// RasterizeOutline prepares a Raster sized to o's bounding box and fills
// it by scanline-converting every contour with the non-zero winding rule.
func RasterizeOutline(o *outline.Outline) (*Raster, error) {
	const op = "rasterize outline"
	r := PrepareRaster(o)
	if r.Width == 0 || r.Height == 0 {
		return r, nil
	}

	offX := Fixed(r.OffX) << 16
	offY := Fixed(r.OffY) << 16
	edges := buildEdges(o, offX, offY)
	if len(edges) == 0 {
		return r, nil
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].top < edges[j].top })

	maxBottom := edges[0].bottom
	for _, e := range edges[1:] {
		if e.bottom > maxBottom {
			maxBottom = e.bottom
		}
	}
	minTop := edges[0].top

	active := make([]*edge, 0, len(edges))
	next := 0
	rowAccum := make([]int32, r.Width)
	curRow := int(minTop >> 16)
	if curRow < 0 {
		return nil, errf(op, sfnt.BadFormat, nil)
	}

	flush := func(row int) {
		if row < 0 || row >= r.Height {
			for x := range rowAccum {
				rowAccum[x] = 0
			}
			return
		}
		base := row * r.Stride
		for x := 0; x < r.Width; x++ {
			v := rowAccum[x]
			if v > 255 {
				v = 255
			}
			r.Cells[base+x] = byte(v)
			rowAccum[x] = 0
		}
	}

	for y := minTop; y < maxBottom; y += polyStep {
		for next < len(edges) && edges[next].top == y {
			e := edges[next]
			active = append(active, &e)
			next++
		}
		kept := active[:0]
		for _, e := range active {
			if e.bottom > y {
				kept = append(kept, e)
			}
		}
		active = kept
		sort.Slice(active, func(i, j int) bool { return active[i].x < active[j].x })

		row := int(y >> 16)
		if row != curRow {
			flush(curRow)
			curRow = row
		}

		accumulateSpans(active, rowAccum, r.Width)

		for _, e := range active {
			e.x += e.stepX
		}
	}
	flush(curRow)

	return r, nil
}
