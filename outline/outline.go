// Package outline flattens a (possibly compound) glyph into a line/curve
// command stream in scaled Fixed pixel space.
package outline

import "github.com/halvorsen/sfntglyph/sfnt"

// Fixed is a 32-bit signed 16.16 fixed-point number, the same
// representation the sfnt package uses for scaled quantities — an
// outline's coordinates are simply funits run through the same Fixed
// division the metrics resolver uses.
type Fixed = sfnt.Fixed

// CommandFlag distinguishes a contour-starting move from a line segment,
// mirroring the original format's single LINETO bit: clear means "move
// to", set means "line to".
type CommandFlag int

const (
	MoveTo CommandFlag = 0
	LineTo CommandFlag = 1 << 1
)

// Command is one emitted outline instruction.
type Command struct {
	Flag CommandFlag
	X, Y Fixed
}

// Outline is a flattened glyph outline in Fixed pixel space: a command
// stream plus its accumulated bounding box. It is reference-counted:
// Ref/Unref use a plain int32, so an Outline shared across goroutines
// needs external synchronization.
type Outline struct {
	Commands               []Command
	XMin, YMin, XMax, YMax Fixed

	refcount int32
}

// Ref increments the reference count and returns the outline, so callers
// can write `cached = outline.Ref()`.
func (o *Outline) Ref() *Outline {
	o.refcount++
	return o
}

// Unref decrements the reference count. The caller is responsible for
// discarding its last reference once the count reaches zero; there is no
// finalizer, matching the core's "no global state, no background work"
// resource discipline.
func (o *Outline) Unref() {
	o.refcount--
}

// Refcount returns the current reference count.
func (o *Outline) Refcount() int32 { return o.refcount }

func (o *Outline) extend(x, y Fixed) {
	// moveTo/lineTo append the command before calling extend, so a
	// length of 1 here means this is the first point seen.
	if len(o.Commands) == 1 {
		o.XMin, o.XMax = x, x
		o.YMin, o.YMax = y, y
		return
	}
	if x < o.XMin {
		o.XMin = x
	}
	if x > o.XMax {
		o.XMax = x
	}
	if y < o.YMin {
		o.YMin = y
	}
	if y > o.YMax {
		o.YMax = y
	}
}

func (o *Outline) moveTo(x, y Fixed) {
	o.Commands = append(o.Commands, Command{Flag: MoveTo, X: x, Y: y})
	o.extend(x, y)
}

func (o *Outline) lineTo(x, y Fixed) {
	o.Commands = append(o.Commands, Command{Flag: LineTo, X: x, Y: y})
	o.extend(x, y)
}
