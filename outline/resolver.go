package outline

import "github.com/halvorsen/sfntglyph/sfnt"

// GlyphResolver resolves a glyph index to its decoded glyph for compound
// assembly. *sfnt.Font satisfies this interface directly. The original
// format threaded get_glyph/free_glyph callback pairs through the
// recursion by hand; re-architected here as a plain interface with the
// recursion bound carried on the Go call stack instead, per the
// re-architecture note on function-pointer callbacks and back-edges.
type GlyphResolver interface {
	Glyph(index sfnt.GlyphIndex) (*sfnt.Glyph, error)
}

// maxCompoundDepth bounds compound glyph recursion.
const maxCompoundDepth = 16
