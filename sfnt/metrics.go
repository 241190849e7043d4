package sfnt

// GlyphMetrics is the horizontal metrics of a single glyph. When looked up
// with a negative pixel size, LBearing and Advance are funit values held
// as Fixed 16.16 (funit << 16); otherwise they are scaled to Fixed 16.16
// pixels.
type GlyphMetrics struct {
	LBearing Fixed
	Advance  Fixed
}

// LookupGlyphMetrics returns the left side bearing and advance width of
// glyph, scaled to pixelSize if pixelSize >= 0, or as funits shifted into
// Fixed 16.16 if pixelSize < 0.
func LookupGlyphMetrics(glyph GlyphIndex, pixelSize int, head *Head, hhea *Hhea, maxp *Maxp, hmtx *Hmtx) (GlyphMetrics, error) {
	const op = "lookup glyph metrics"
	if uint32(glyph) >= uint32(maxp.NumGlyphs) {
		return GlyphMetrics{}, errf(op, BadGlyph, nil)
	}

	var advance uint16
	var lsb int16
	if uint32(glyph) < uint32(hhea.NumOfLongHorMetrics) {
		hm := hmtx.HMetrics[glyph]
		advance, lsb = hm.AdvanceWidth, hm.LeftSideBearing
	} else {
		if len(hmtx.HMetrics) == 0 {
			return GlyphMetrics{}, errf(op, BadFormat, nil)
		}
		advance = hmtx.HMetrics[len(hmtx.HMetrics)-1].AdvanceWidth
		tailIndex := int(glyph) - int(hhea.NumOfLongHorMetrics)
		if tailIndex < 0 || tailIndex >= len(hmtx.TailLSB) {
			return GlyphMetrics{}, errf(op, BadFormat, nil)
		}
		lsb = hmtx.TailLSB[tailIndex]
	}

	if pixelSize < 0 {
		return GlyphMetrics{LBearing: Fixed(lsb) << 16, Advance: Fixed(advance) << 16}, nil
	}
	if head.UnitsPerEm == 0 {
		return GlyphMetrics{}, errf(op, BadFormat, nil)
	}
	scale := func(funit int32) Fixed {
		// (funit << 16) * pixelSize / unitsPerEm computed at 64-bit
		// precision to avoid overflow, matching the Fixed division the
		// outline builder uses for the same funit-to-pixel conversion.
		return Fixed(int64(funit) * int64(pixelSize) << 16 / int64(head.UnitsPerEm))
	}
	return GlyphMetrics{LBearing: scale(int32(lsb)), Advance: scale(int32(advance))}, nil
}
