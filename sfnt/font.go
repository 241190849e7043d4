package sfnt

// Font is a parsed SFNT file: the table directory plus every table this
// module understands that the file actually carries. Decoded tables are
// immutable after Parse returns; a Font is safe for concurrent read-only
// use.
type Font struct {
	Directory *TableDirectory

	Head *Head
	Hhea *Hhea
	Maxp *Maxp
	Hmtx *Hmtx
	Loca *Loca
	Glyf []byte
	Cmap *Cmap
	Name *NameTable
	Meta *MetaTable
}

// Parse decodes a font from src. It fails if head or maxp is absent;
// hhea, hmtx, loca, glyf, cmap, name, and meta are decoded if present and
// their absence is not fatal (hmtx is read only when hhea is present).
// Glyph needs loca and glyf, and Metrics needs hhea and hmtx.
func Parse(src Source) (*Font, error) {
	const op = "parse font"
	r := NewByteReader(src)

	dir, err := ReadTableDirectory(r)
	if err != nil {
		return nil, err
	}
	f := &Font{Directory: dir}

	headBytes, ok := readTableBytes(r, dir, TagHead)
	if !ok {
		return nil, errf(op, Truncated, nil)
	}
	f.Head, err = ReadHead(headBytes)
	if err != nil {
		return nil, err
	}

	maxpBytes, ok := readTableBytes(r, dir, TagMaxp)
	if !ok {
		return nil, errf(op, Truncated, nil)
	}
	f.Maxp, err = ReadMaxp(maxpBytes)
	if err != nil {
		return nil, err
	}

	if hheaBytes, ok := readTableBytes(r, dir, TagHhea); ok {
		f.Hhea, err = ReadHhea(hheaBytes)
		if err != nil {
			return nil, err
		}
		if hmtxBytes, ok := readTableBytes(r, dir, TagHmtx); ok {
			f.Hmtx, err = ReadHmtx(hmtxBytes, f.Hhea.NumOfLongHorMetrics, f.Maxp.NumGlyphs)
			if err != nil {
				return nil, err
			}
		}
	}

	glyfRec, hasGlyf := dir.Find(TagGlyf)
	if hasGlyf {
		f.Glyf, ok = readTableBytes(r, dir, TagGlyf)
		if !ok {
			return nil, errf(op, Truncated, nil)
		}
	}
	if locaBytes, ok := readTableBytes(r, dir, TagLoca); ok {
		glyfLen := int64(-1)
		if hasGlyf {
			glyfLen = int64(glyfRec.Length)
		}
		f.Loca, err = ReadLoca(locaBytes, f.Head.IndexToLocFormat, f.Maxp.NumGlyphs, glyfLen)
		if err != nil {
			return nil, err
		}
	}

	if cmapBytes, ok := readTableBytes(r, dir, TagCmap); ok {
		f.Cmap, err = ReadCmap(cmapBytes)
		if err != nil {
			return nil, err
		}
	}
	if nameBytes, ok := readTableBytes(r, dir, TagName); ok {
		f.Name, err = ReadName(nameBytes)
		if err != nil {
			return nil, err
		}
	}
	if metaBytes, ok := readTableBytes(r, dir, TagMeta); ok {
		f.Meta, err = ReadMeta(metaBytes)
		if err != nil {
			return nil, err
		}
	}

	return f, nil
}

func readTableBytes(r *ByteReader, dir *TableDirectory, tag Tag) ([]byte, bool) {
	rec, ok := dir.Find(tag)
	if !ok {
		return nil, false
	}
	b, err := r.At(int64(rec.Offset), rec.Length)
	if err != nil {
		return nil, false
	}
	return b, true
}

// Glyph resolves index through the font's loca/glyf tables.
func (f *Font) Glyph(index GlyphIndex) (*Glyph, error) {
	const op = "font glyph"
	if f.Loca == nil || f.Glyf == nil {
		return nil, errf(op, BadFormat, nil)
	}
	return ReadGlyph(f.Glyf, f.Loca, f.Maxp.NumGlyphs, index)
}

// Metrics looks up the horizontal metrics of index. See LookupGlyphMetrics
// for the pixelSize convention.
func (f *Font) Metrics(index GlyphIndex, pixelSize int) (GlyphMetrics, error) {
	const op = "font metrics"
	if f.Hhea == nil || f.Hmtx == nil {
		return GlyphMetrics{}, errf(op, BadFormat, nil)
	}
	return LookupGlyphMetrics(index, pixelSize, f.Head, f.Hhea, f.Maxp, f.Hmtx)
}

// Lookup maps a Unicode scalar to a glyph index via the font's preferred
// cmap subtable. It returns glyph 0 if the font has no cmap or the
// character is unmapped.
func (f *Font) Lookup(char rune) GlyphIndex {
	if f.Cmap == nil {
		return 0
	}
	sub := f.Cmap.PreferredSubtable()
	if sub == nil {
		return 0
	}
	return sub.Lookup(uint32(char))
}
