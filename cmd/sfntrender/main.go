// Command sfntrender draws a single character from a font to a PNG file,
// the same rasterize-then-encode shape as the teacher's example/raster,
// re-pointed at this module's face.Face instead of freetype/raster's
// Rasterizer and using the modern image/png and flag packages in place
// of the original's exp/draw-era plumbing.
package main

import (
	"flag"
	"image"
	"image/draw"
	"image/png"
	"log"
	"os"

	"golang.org/x/image/math/fixed"

	"github.com/halvorsen/sfntglyph/face"
	"github.com/halvorsen/sfntglyph/sfnt"
)

var (
	fontfile = flag.String("font", "", "filename of font to render from")
	char     = flag.String("char", "A", "character to render")
	size     = flag.Float64("size", 64, "font size in points")
	dpi      = flag.Float64("dpi", 72, "rendering resolution")
	out      = flag.String("out", "out.png", "output PNG path")
)

func main() {
	flag.Parse()
	if *fontfile == "" || *char == "" {
		log.Fatal("sfntrender: -font and -char are required")
	}
	r := []rune(*char)[0]

	data, err := os.ReadFile(*fontfile)
	if err != nil {
		log.Fatalf("sfntrender: reading %s: %v", *fontfile, err)
	}
	f, err := sfnt.Parse(sfnt.NewSliceSource(data))
	if err != nil {
		log.Fatalf("sfntrender: parsing %s: %v", *fontfile, err)
	}
	fc, err := face.NewFace(f, &face.Options{Size: *size, DPI: *dpi})
	if err != nil {
		log.Fatalf("sfntrender: building face: %v", err)
	}
	defer fc.Close()

	dr, mask, maskp, _, ok := fc.Glyph(fixed.Point26_6{}, r)
	if !ok {
		log.Fatalf("sfntrender: no glyph for %q", r)
	}

	const pad = 4
	gs := dr.Size()
	canvas := image.Rect(0, 0, gs.X+2*pad, gs.Y+2*pad)
	rgba := image.NewRGBA(canvas)
	draw.Draw(rgba, canvas, image.White, image.Point{}, draw.Src)
	dst := image.Rect(pad, pad, pad+gs.X, pad+gs.Y)
	draw.DrawMask(rgba, dst, image.Black, image.Point{}, mask, maskp, draw.Over)

	w, err := os.Create(*out)
	if err != nil {
		log.Fatalf("sfntrender: creating %s: %v", *out, err)
	}
	defer w.Close()
	if err := png.Encode(w, rgba); err != nil {
		log.Fatalf("sfntrender: encoding png: %v", err)
	}
}
