// Command sfntdump prints a font's table directory and decoded header
// summary, the same job the teacher's dumpfont does against its Font.Dump,
// re-pointed at this module's own *sfnt.Font.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/halvorsen/sfntglyph/sfnt"
)

var fontfile = flag.String("font", "", "filename of font to dump")

func main() {
	flag.Parse()
	if *fontfile == "" {
		log.Fatal("sfntdump: -font is required")
	}

	data, err := os.ReadFile(*fontfile)
	if err != nil {
		log.Fatalf("sfntdump: reading %s: %v", *fontfile, err)
	}

	f, err := sfnt.Parse(sfnt.NewSliceSource(data))
	if err != nil {
		log.Fatalf("sfntdump: parsing %s: %v", *fontfile, err)
	}

	fmt.Printf("scaler type: %#x\n", uint32(f.Directory.Scaler))
	fmt.Printf("tables: %d\n", len(f.Directory.Records()))
	for _, rec := range f.Directory.Records() {
		fmt.Printf("  %-6s offset=%-10d length=%-10d checksum=%08x\n", rec.Tag, rec.Offset, rec.Length, rec.Checksum)
	}

	if f.Head != nil {
		fmt.Printf("unitsPerEm: %d\n", f.Head.UnitsPerEm)
		fmt.Printf("bounds (funits): [%d %d %d %d]\n", f.Head.XMin, f.Head.YMin, f.Head.XMax, f.Head.YMax)
	}
	if f.Maxp != nil {
		fmt.Printf("numGlyphs: %d\n", f.Maxp.NumGlyphs)
	}
	if f.Hhea != nil {
		fmt.Printf("ascent=%d descent=%d lineGap=%d\n", f.Hhea.Ascent, f.Hhea.Descent, f.Hhea.LineGap)
	}
	if f.Cmap != nil {
		fmt.Printf("cmap subtables: %d\n", len(f.Cmap.Records))
		for _, r := range f.Cmap.Records {
			fmt.Printf("  platform=%d encoding=%d format=%d\n", r.PlatformID, r.PlatformSpecificID, r.Subtable.Format())
		}
	}
	if f.Name != nil {
		if rec, ok := f.Name.Find(sfnt.NameFullName); ok {
			fmt.Printf("full name: %s\n", rec.String())
		}
	}
}
