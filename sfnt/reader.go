package sfnt

import (
	"io"
)

// Source is the seekable byte source the core reads from: the table
// directory, every table decoder, and the glyph loader only ever need
// positioned, bounds-checked reads, so an io.ReaderAt is sufficient — it
// works equally well over an in-memory []byte (via bytes.Reader) or an
// open os.File.
type Source = io.ReaderAt

// sliceSource adapts a []byte to a Source without copying, the way
// golang.org/x/image/font/sfnt's internal "source" type wraps either an
// in-memory buffer or an io.ReaderAt behind one reader.
type sliceSource []byte

func (s sliceSource) ReadAt(p []byte, off int64) (int, error) {
	if off < 0 || off > int64(len(s)) {
		return 0, io.EOF
	}
	n := copy(p, s[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// NewSliceSource wraps an in-memory font image as a Source.
func NewSliceSource(b []byte) Source { return sliceSource(b) }

// ByteReader is a cursor over a Source: positioned, bounds-checked,
// big-endian reads. Every read either succeeds in full or fails without
// advancing the cursor.
type ByteReader struct {
	src Source
	pos int64
}

// NewByteReader returns a ByteReader positioned at the start of src.
func NewByteReader(src Source) *ByteReader {
	return &ByteReader{src: src}
}

// Seek repositions the cursor to an absolute offset.
func (r *ByteReader) Seek(offset int64) {
	r.pos = offset
}

// Pos returns the cursor's current absolute offset.
func (r *ByteReader) Pos() int64 { return r.pos }

// ReadExact reads exactly n bytes at the current position and advances the
// cursor by n. On failure the cursor is left unmoved.
func (r *ByteReader) ReadExact(n int) ([]byte, error) {
	if n < 0 {
		return nil, &Error{Op: "read", Kind: BadFormat}
	}
	buf := make([]byte, n)
	nn, err := r.src.ReadAt(buf, r.pos)
	if err != nil && !(err == io.EOF && nn == n) {
		if nn == n {
			// ReadAt is allowed to return io.EOF alongside a full read.
		} else if err == io.EOF {
			return nil, &Error{Op: "read", Kind: ShortRead, Err: err}
		} else {
			return nil, &Error{Op: "read", Kind: Io, Err: err}
		}
	}
	r.pos += int64(n)
	return buf, nil
}

// At seeks to offset and reads exactly length bytes, returning them as a
// view with no further relation to the ByteReader. It never advances the
// ByteReader's own cursor.
func (r *ByteReader) At(offset int64, length uint32) ([]byte, error) {
	saved := r.pos
	r.pos = offset
	b, err := r.ReadExact(int(length))
	r.pos = saved
	return b, err
}

func (r *ByteReader) u8() (uint8, error) {
	b, err := r.ReadExact(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (r *ByteReader) u16() (uint16, error) {
	b, err := r.ReadExact(2)
	if err != nil {
		return 0, err
	}
	return uint16(b[0])<<8 | uint16(b[1]), nil
}

func (r *ByteReader) i16() (int16, error) {
	v, err := r.u16()
	return int16(v), err
}

func (r *ByteReader) u32() (uint32, error) {
	b, err := r.ReadExact(4)
	if err != nil {
		return 0, err
	}
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), nil
}

func (r *ByteReader) i32() (int32, error) {
	v, err := r.u32()
	return int32(v), err
}

// cursor interprets an already-fetched byte slice as a stream of big-endian
// integers. It is the in-memory counterpart to ByteReader, used once a
// table's bytes have been read out of the Source in one shot — the pattern
// the teacher calls "data" in freetype/truetype/truetype.go.
type cursor []byte

func (c *cursor) len() int { return len(*c) }

func (c *cursor) u8() uint8 {
	x := (*c)[0]
	*c = (*c)[1:]
	return x
}

func (c *cursor) u16() uint16 {
	x := uint16((*c)[0])<<8 | uint16((*c)[1])
	*c = (*c)[2:]
	return x
}

func (c *cursor) i16() int16 { return int16(c.u16()) }

func (c *cursor) u32() uint32 {
	x := uint32((*c)[0])<<24 | uint32((*c)[1])<<16 | uint32((*c)[2])<<8 | uint32((*c)[3])
	*c = (*c)[4:]
	return x
}

func (c *cursor) i32() int32 { return int32(c.u32()) }

func (c *cursor) skip(n int) { *c = (*c)[n:] }

func (c *cursor) bytes(n int) []byte {
	b := (*c)[:n]
	*c = (*c)[n:]
	return b
}
