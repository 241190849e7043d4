package face

import (
	"fmt"

	"github.com/halvorsen/sfntglyph/sfnt"
)

// Error reports a face-construction failure.
type Error struct {
	Op   string
	Kind sfnt.Kind
}

func (e *Error) Error() string {
	return fmt.Sprintf("face: %s: %s", e.Op, e.Kind)
}

func (e *Error) Is(target error) bool {
	if s, ok := target.(*sfnt.Error); ok {
		return e.Kind == s.Kind
	}
	t, ok := target.(*Error)
	return ok && e.Kind == t.Kind
}
