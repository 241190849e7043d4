package sfnt

import "fmt"

// Kind classifies the ways a decode or build operation can fail.
type Kind int

const (
	// Io reports that the underlying byte source failed.
	Io Kind = iota
	// ShortRead reports that a read ran past the end of its source.
	ShortRead
	// Truncated reports that a declared length exceeds the bytes available.
	Truncated
	// BadMagic reports that the head table's magic number did not match.
	BadMagic
	// BadFormat reports an unsupported cmap format, an unknown
	// index_to_loc_format, or malformed segment arithmetic.
	BadFormat
	// BadGlyph reports a glyph index at or beyond num_glyphs.
	BadGlyph
	// BadCompound reports a compound glyph that cycles, nests too deep, or
	// references a sub-glyph that cannot be resolved.
	BadCompound
	// Oom reports an allocation failure.
	Oom
)

func (k Kind) String() string {
	switch k {
	case Io:
		return "io"
	case ShortRead:
		return "short read"
	case Truncated:
		return "truncated"
	case BadMagic:
		return "bad magic"
	case BadFormat:
		return "bad format"
	case BadGlyph:
		return "bad glyph"
	case BadCompound:
		return "bad compound"
	case Oom:
		return "out of memory"
	default:
		return "unknown"
	}
}

// Error is the error type returned by every decoder in this package (the
// outline, raster and face packages define their own Error over the same
// Kind). Op names the failing operation (e.g. "read head table") and Kind
// classifies the failure so callers can branch on it with errors.As.
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("sfnt: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("sfnt: %s: %s", e.Op, e.Kind)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error with the same Kind, so callers can
// write errors.Is(err, sfnt.ErrKind(sfnt.BadGlyph)).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// ErrKind returns a sentinel *Error usable with errors.Is to test for a
// particular Kind, regardless of Op or wrapped cause.
func ErrKind(k Kind) error { return &Error{Kind: k} }

func errf(op string, kind Kind, err error) error {
	return &Error{Op: op, Kind: kind, Err: err}
}
