package elf

import (
	"errors"
	"fmt"
)

// ErrInvalidMagic reports that the buffer does not start with the ELF
// signature 0x7F 'E' 'L' 'F'. Nothing else is decoded in that case.
var ErrInvalidMagic = errors.New("invalid ELF magic")

// UnknownClassError reports an EI_CLASS byte that is neither ELFCLASS32
// nor ELFCLASS64. Without the class the field widths are undefined, so
// parsing cannot continue.
type UnknownClassError struct {
	Code uint8
}

func (e *UnknownClassError) Error() string {
	return fmt.Sprintf("unknown ELF class 0x%02x", e.Code)
}

// UnknownByteOrderError reports an EI_DATA byte that is neither
// little-endian nor big-endian encoding.
type UnknownByteOrderError struct {
	Code uint8
}

func (e *UnknownByteOrderError) Error() string {
	return fmt.Sprintf("unknown ELF byte order 0x%02x", e.Code)
}

// BoundsError reports a fixed-width read that would run past the end of
// the buffer.
type BoundsError struct {
	Offset uint64
	Width  int
	Length int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("read of %d bytes at offset 0x%x out of bounds (buffer is %d bytes)",
		e.Width, e.Offset, e.Length)
}

// TruncatedTableError reports a header table whose declared extent runs
// past the end of the buffer. The file is shorter than its own header
// claims, which indicates truncation or corruption.
type TruncatedTableError struct {
	Table  string
	End    uint64
	Length int
}

func (e *TruncatedTableError) Error() string {
	return fmt.Sprintf("%s table truncated: table ends at 0x%x but buffer is %d bytes",
		e.Table, e.End, e.Length)
}
