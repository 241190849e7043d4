package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halvorsen/sfntglyph/outline"
)

func squareOutline(size int) *outline.Outline {
	o := &outline.Outline{}
	s := outline.Fixed(size) << 16
	type op struct {
		move bool
		x, y outline.Fixed
	}
	pts := []op{
		{true, 0, 0},
		{false, s, 0},
		{false, s, s},
		{false, 0, s},
		{false, 0, 0},
	}
	for _, p := range pts {
		if p.move {
			o.Commands = append(o.Commands, outline.Command{Flag: outline.MoveTo, X: p.x, Y: p.y})
		} else {
			o.Commands = append(o.Commands, outline.Command{Flag: outline.LineTo, X: p.x, Y: p.y})
		}
	}
	o.XMin, o.YMin, o.XMax, o.YMax = 0, 0, s, s
	return o
}

func TestPrepareRasterSizesFromBounds(t *testing.T) {
	o := squareOutline(10)
	r := PrepareRaster(o)
	assert.Equal(t, 10, r.Width)
	assert.Equal(t, 10, r.Height)
	assert.Equal(t, int32(0), r.OffX)
	assert.Equal(t, int32(0), r.OffY)
}

func TestRasterizeOutlineFullyCoversInterior(t *testing.T) {
	o := squareOutline(8)
	r, err := RasterizeOutline(o)
	require.NoError(t, err)
	require.Equal(t, 8, r.Width)
	require.Equal(t, 8, r.Height)

	// An interior pixel, fully enclosed on all sides, should be at or near
	// full coverage.
	assert.GreaterOrEqual(t, r.At(4, 4), byte(250))
}

func TestRasterizeOutlineEmptyOutline(t *testing.T) {
	r, err := RasterizeOutline(&outline.Outline{})
	require.NoError(t, err)
	assert.Equal(t, 0, r.Width)
	assert.Equal(t, 0, r.Height)
}

func TestRasterizeOutlineZeroOutsideShape(t *testing.T) {
	o := squareOutline(8)
	// Points outside the raster bounds (and so outside the shape) read
	// zero via At's bounds guard.
	r, err := RasterizeOutline(o)
	require.NoError(t, err)
	assert.Equal(t, byte(0), r.At(-1, 0))
	assert.Equal(t, byte(0), r.At(100, 100))
}
