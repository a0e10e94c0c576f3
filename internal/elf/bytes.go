package elf

// Reader provides bounds-checked fixed-width reads over a raw buffer.
// It is stateless: every read addresses an explicit offset and the
// caller tracks positions. The buffer is never mutated.
type Reader struct {
	buf []byte
}

// NewReader wraps buf without copying it.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Len returns the length of the underlying buffer.
func (r *Reader) Len() int {
	return len(r.buf)
}

func (r *Reader) check(off uint64, width int) error {
	// Compared this way round so a huge offset cannot wrap the addition.
	if off > uint64(len(r.buf)) || uint64(width) > uint64(len(r.buf))-off {
		return &BoundsError{Offset: off, Width: width, Length: len(r.buf)}
	}
	return nil
}

// Uint8 reads a single byte at off.
func (r *Reader) Uint8(off uint64) (uint8, error) {
	if err := r.check(off, 1); err != nil {
		return 0, err
	}
	return r.buf[off], nil
}

// Uint16 reads a 2-byte unsigned integer at off in the given byte order.
func (r *Reader) Uint16(off uint64, bo ByteOrder) (uint16, error) {
	if err := r.check(off, 2); err != nil {
		return 0, err
	}
	return bo.order().Uint16(r.buf[off:]), nil
}

// Uint32 reads a 4-byte unsigned integer at off in the given byte order.
func (r *Reader) Uint32(off uint64, bo ByteOrder) (uint32, error) {
	if err := r.check(off, 4); err != nil {
		return 0, err
	}
	return bo.order().Uint32(r.buf[off:]), nil
}

// Uint64 reads an 8-byte unsigned integer at off in the given byte order.
func (r *Reader) Uint64(off uint64, bo ByteOrder) (uint64, error) {
	if err := r.check(off, 8); err != nil {
		return 0, err
	}
	return bo.order().Uint64(r.buf[off:]), nil
}

// Word reads a class-sized address or offset field at off and widens it
// to uint64. Class32 fields are 4 bytes, Class64 fields are 8.
func (r *Reader) Word(off uint64, class Class, bo ByteOrder) (uint64, error) {
	if class == Class64 {
		return r.Uint64(off, bo)
	}
	v, err := r.Uint32(off, bo)
	return uint64(v), err
}
