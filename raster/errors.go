package raster

import (
	"fmt"

	"github.com/halvorsen/sfntglyph/sfnt"
)

// Error is the error type returned by this package's build/fill
// operations, reusing sfnt.Kind the same way the outline package does.
type Error struct {
	Op   string
	Kind sfnt.Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("raster: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("raster: %s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if ok {
		return e.Kind == t.Kind
	}
	if s, ok := target.(*sfnt.Error); ok {
		return e.Kind == s.Kind
	}
	return false
}

func errf(op string, kind sfnt.Kind, err error) error {
	return &Error{Op: op, Kind: kind, Err: err}
}
