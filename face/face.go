// Package face adapts a parsed *sfnt.Font into a golang.org/x/image/font.Face,
// the presentation-layer boundary where Fixed 16.16 funit-derived coordinates
// convert to fixed.Int26_6 device pixels and the Y axis flips from the
// core pipeline's math convention (positive Y up) to image space (positive Y
// down).
package face

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/halvorsen/sfntglyph/outline"
	"github.com/halvorsen/sfntglyph/raster"
	"github.com/halvorsen/sfntglyph/sfnt"
)

// Options are optional arguments to NewFace.
type Options struct {
	// Size is the font size in points. A zero value means 12.
	Size float64
	// DPI is the rendering resolution. A zero value means 72.
	DPI float64
}

func (o *Options) size() float64 {
	if o != nil && o.Size > 0 {
		return o.Size
	}
	return 12
}

func (o *Options) dpi() float64 {
	if o != nil && o.DPI > 0 {
		return o.DPI
	}
	return 72
}

type glyphFace struct {
	f          *sfnt.Font
	unitsPerEm uint16
	pixelSize  int
	scale      fixed.Int26_6
}

// NewFace returns a font.Face rendering f at the size and DPI given by
// opts. Bytecode hinting is out of scope; glyphs are rendered directly
// from the unhinted scaled outline, same as the core pipeline everywhere
// else.
func NewFace(f *sfnt.Font, opts *Options) (font.Face, error) {
	if f.Head == nil || f.Head.UnitsPerEm == 0 {
		return nil, &Error{Op: "new face", Kind: sfnt.BadFormat}
	}
	scale := fixed.Int26_6(0.5 + opts.size()*opts.dpi()*64/72)
	pixelSize := int((scale + 32) >> 6)
	if pixelSize < 1 {
		pixelSize = 1
	}
	return &glyphFace{
		f:          f,
		unitsPerEm: f.Head.UnitsPerEm,
		pixelSize:  pixelSize,
		scale:      scale,
	}, nil
}

func (g *glyphFace) Close() error { return nil }

// Kern always returns zero: the parsed table set carries no kern table.
func (g *glyphFace) Kern(r0, r1 rune) fixed.Int26_6 { return 0 }

func (g *glyphFace) Metrics() font.Metrics {
	m := font.Metrics{Height: g.scale}
	if g.f.Hhea != nil {
		m.Ascent = g.toFixed26_6(int32(g.f.Hhea.Ascent))
		m.Descent = -g.toFixed26_6(int32(g.f.Hhea.Descent))
		m.Height = m.Ascent + m.Descent + g.toFixed26_6(int32(g.f.Hhea.LineGap))
	}
	return m
}

func (g *glyphFace) toFixed26_6(funits int32) fixed.Int26_6 {
	return fixed.Int26_6(int64(funits) * int64(g.pixelSize) * 64 / int64(g.unitsPerEm))
}

func (g *glyphFace) GlyphAdvance(r rune) (fixed.Int26_6, bool) {
	idx := g.f.Lookup(r)
	m, err := g.f.Metrics(idx, g.pixelSize)
	if err != nil {
		return 0, false
	}
	return fixedFromOutline(m.Advance), true
}

func (g *glyphFace) GlyphBounds(r rune) (fixed.Rectangle26_6, fixed.Int26_6, bool) {
	o, _, err := g.buildOutline(r)
	if err != nil || o == nil || len(o.Commands) == 0 {
		return fixed.Rectangle26_6{}, 0, false
	}
	advance, _ := g.GlyphAdvance(r)
	return fixed.Rectangle26_6{
		Min: fixed.Point26_6{X: fixedFromOutline(o.XMin), Y: -fixedFromOutline(o.YMax)},
		Max: fixed.Point26_6{X: fixedFromOutline(o.XMax), Y: -fixedFromOutline(o.YMin)},
	}, advance, true
}

// Glyph rasterizes r at dot and returns the alpha mask plus its placement,
// matching golang.org/x/image/font.Face's contract.
func (g *glyphFace) Glyph(dot fixed.Point26_6, r rune) (
	dr image.Rectangle, mask image.Image, maskp image.Point, advance fixed.Int26_6, ok bool) {

	o, idx, err := g.buildOutline(r)
	if err != nil {
		return image.Rectangle{}, nil, image.Point{}, 0, false
	}
	adv, _ := g.GlyphAdvance(r)
	if o == nil || len(o.Commands) == 0 {
		return image.Rectangle{}, nil, image.Point{}, adv, true
	}
	_ = idx

	ras, err := raster.RasterizeOutline(flipY(o))
	if err != nil || ras.Width == 0 || ras.Height == 0 {
		return image.Rectangle{}, nil, image.Point{}, adv, true
	}

	img := image.NewAlpha(image.Rect(0, 0, ras.Width, ras.Height))
	copy(img.Pix, ras.Cells)

	ix := int(dot.X >> 6)
	iy := int(dot.Y >> 6)
	dr = image.Rectangle{
		Min: image.Point{X: ix + int(ras.OffX), Y: iy + int(ras.OffY)},
		Max: image.Point{X: ix + int(ras.OffX) + ras.Width, Y: iy + int(ras.OffY) + ras.Height},
	}
	return dr, img, image.Point{}, adv, true
}

func (g *glyphFace) buildOutline(r rune) (*outline.Outline, sfnt.GlyphIndex, error) {
	idx := g.f.Lookup(r)
	gl, err := g.f.Glyph(idx)
	if err != nil {
		return nil, idx, err
	}
	o, err := outline.Build(gl, g.f, g.unitsPerEm, g.pixelSize)
	return o, idx, err
}

func fixedFromOutline(f outline.Fixed) fixed.Int26_6 {
	return fixed.Int26_6(int64(f) >> 10)
}

// flipY mirrors an outline's Y coordinates (and bounding box) about the
// origin, converting the pipeline's math convention (positive Y up) into
// image space (positive Y down) at this presentation boundary, same as
// the negation the teacher's drawContour applies per-point.
func flipY(o *outline.Outline) *outline.Outline {
	out := &outline.Outline{
		Commands: make([]outline.Command, len(o.Commands)),
		XMin:     o.XMin,
		XMax:     o.XMax,
		YMin:     -o.YMax,
		YMax:     -o.YMin,
	}
	for i, c := range o.Commands {
		out.Commands[i] = outline.Command{Flag: c.Flag, X: c.X, Y: -c.Y}
	}
	return out
}
