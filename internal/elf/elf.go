// Package elf decodes the structural metadata of ELF object files: the
// identification block, the program header table and the section header
// table. It operates on fully loaded byte buffers and performs no I/O of
// its own; loading a file and presenting the result are the caller's
// responsibility.
package elf

import (
	"encoding/binary"
	"fmt"
)

// Class is the ELF word-size variant. It fixes the width of every
// address and offset field in the file.
type Class uint8

const (
	Class32 Class = 1
	Class64 Class = 2
)

// WordSize returns the width in bytes of address/offset fields for the class.
func (c Class) WordSize() int {
	if c == Class64 {
		return 8
	}
	return 4
}

func (c Class) String() string {
	switch c {
	case Class32:
		return "ELF32"
	case Class64:
		return "ELF64"
	default:
		return fmt.Sprintf("unknown class (0x%02x)", uint8(c))
	}
}

// ByteOrder is the encoding order of every multi-byte field in the file.
type ByteOrder uint8

const (
	LittleEndian ByteOrder = 1
	BigEndian    ByteOrder = 2
)

func (bo ByteOrder) String() string {
	switch bo {
	case LittleEndian:
		return "little endian"
	case BigEndian:
		return "big endian"
	default:
		return fmt.Sprintf("unknown byte order (0x%02x)", uint8(bo))
	}
}

// order maps the ELF encoding byte onto the stdlib decoder for it.
func (bo ByteOrder) order() binary.ByteOrder {
	if bo == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}
