package outline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halvorsen/sfntglyph/sfnt"
)

func squareGlyph() *sfnt.Glyph {
	simple := &sfnt.SimpleGlyph{
		EndPts: []uint16{3},
		Points: []sfnt.Point{
			{X: 0, Y: 0, OnCurve: true},
			{X: 1000, Y: 0, OnCurve: true},
			{X: 1000, Y: 1000, OnCurve: true},
			{X: 0, Y: 1000, OnCurve: true},
		},
	}
	return &sfnt.Glyph{NumberOfContours: 1, Simple: simple}
}

func TestBuildSimpleGlyphClosesContour(t *testing.T) {
	o, err := Build(squareGlyph(), nil, 1000, 1000)
	require.NoError(t, err)
	require.NotEmpty(t, o.Commands)

	first, last := o.Commands[0], o.Commands[len(o.Commands)-1]
	assert.Equal(t, MoveTo, first.Flag)
	assert.Equal(t, first.X, last.X)
	assert.Equal(t, first.Y, last.Y)

	assert.Equal(t, Fixed(0), o.XMin)
	assert.Equal(t, Fixed(0), o.YMin)
	assert.Equal(t, Fixed(1000)<<16, o.XMax)
	assert.Equal(t, Fixed(1000)<<16, o.YMax)
}

func TestBuildScalesToPixelSize(t *testing.T) {
	// unitsPerEm 1000, pixelSize 500: everything is halved.
	o, err := Build(squareGlyph(), nil, 1000, 500)
	require.NoError(t, err)
	assert.Equal(t, Fixed(500)<<16, o.XMax)
}

type stubResolver map[sfnt.GlyphIndex]*sfnt.Glyph

func (s stubResolver) Glyph(index sfnt.GlyphIndex) (*sfnt.Glyph, error) {
	g, ok := s[index]
	if !ok {
		return nil, errf("stub resolver", sfnt.BadGlyph, nil)
	}
	return g, nil
}

func TestBuildCompoundXYTranslate(t *testing.T) {
	resolver := stubResolver{1: squareGlyph()}
	compound := &sfnt.CompoundGlyph{
		Components: []sfnt.CompoundComponent{
			{
				GlyphIndex:      1,
				ArgsAreXYValues: true,
				Arg1:            2000,
				Arg2:            3000,
				Transform:       [4]sfnt.F2Dot14{1 << 14, 0, 0, 1 << 14},
			},
		},
	}
	g := &sfnt.Glyph{NumberOfContours: -1, Compound: compound}

	o, err := Build(g, resolver, 1000, 1000)
	require.NoError(t, err)
	assert.Equal(t, Fixed(2000)<<16, o.XMin)
	assert.Equal(t, Fixed(3000)<<16, o.YMin)
	assert.Equal(t, Fixed(3000)<<16, o.XMax)
	assert.Equal(t, Fixed(4000)<<16, o.YMax)
}

func TestBuildCompoundPointMatching(t *testing.T) {
	// The first component places a square at (100, 200). The second
	// component, point-matched on (its point 0 == the first component's
	// point 0), must land at the same offset rather than at the origin.
	resolver := stubResolver{1: squareGlyph()}
	identity := [4]sfnt.F2Dot14{1 << 14, 0, 0, 1 << 14}
	compound := &sfnt.CompoundGlyph{
		Components: []sfnt.CompoundComponent{
			{GlyphIndex: 1, ArgsAreXYValues: true, Arg1: 100, Arg2: 200, Transform: identity},
			{GlyphIndex: 1, ArgsAreXYValues: false, Arg1: 0, Arg2: 0, Transform: identity},
		},
	}
	g := &sfnt.Glyph{NumberOfContours: -1, Compound: compound}

	o, err := Build(g, resolver, 1000, 1000)
	require.NoError(t, err)
	assert.Equal(t, Fixed(100)<<16, o.XMin)
	assert.Equal(t, Fixed(200)<<16, o.YMin)
	assert.Equal(t, Fixed(1100)<<16, o.XMax)
	assert.Equal(t, Fixed(1200)<<16, o.YMax)
}
