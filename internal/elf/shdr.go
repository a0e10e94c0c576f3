package elf

import (
	"fmt"
	"math/bits"
)

// Per-class section header entry sizes. As with program headers the
// declared e_shentsize is informational only.
const (
	shEntrySize32 = 40
	shEntrySize64 = 64
)

// SectionHeader describes one named region of the file, in file order.
// NameOffset is the raw index into the section name string table; the
// name itself is not resolved here.
type SectionHeader struct {
	NameOffset uint32
	Type       SectionType
	Flags      SectionFlags
	Addr       uint64
	Offset     uint64
	Size       uint64
	Link       uint32
	Info       uint32
	AddrAlign  uint64
	EntSize    uint64
}

func shEntrySize(class Class) uint64 {
	if class == Class64 {
		return shEntrySize64
	}
	return shEntrySize32
}

// decodeSectionHeaders decodes the section header table described by the
// identification, with the same zero-count and truncation policy as the
// program header table.
func decodeSectionHeaders(r *Reader, id *Identification) ([]SectionHeader, []string, error) {
	if id.ShNum == 0 {
		return []SectionHeader{}, nil, nil
	}

	entrySize := shEntrySize(id.Class)
	var warnings []string
	if uint64(id.ShEntSize) != entrySize {
		warnings = append(warnings,
			fmt.Sprintf("declared section header entry size %d differs from the %s size %d",
				id.ShEntSize, id.Class, entrySize))
	}

	end := id.ShOff + uint64(id.ShNum)*entrySize
	if end < id.ShOff || end > uint64(r.Len()) {
		return nil, warnings, &TruncatedTableError{Table: "section header", End: end, Length: r.Len()}
	}

	headers := make([]SectionHeader, 0, id.ShNum)
	for i := uint64(0); i < uint64(id.ShNum); i++ {
		base := id.ShOff + i*entrySize
		sh, err := decodeSectionHeader(r, base, id.Class, id.ByteOrder)
		if err != nil {
			return nil, warnings, err
		}
		if sh.AddrAlign > 1 && bits.OnesCount64(sh.AddrAlign) != 1 {
			warnings = append(warnings, fmt.Sprintf(
				"section header %d: alignment 0x%x is not a power of two", i, sh.AddrAlign))
		}
		headers = append(headers, sh)
	}
	return headers, warnings, nil
}

// decodeSectionHeader decodes a single entry at base. Unlike program
// headers the field order is identical across classes; only the widths
// of the word-sized fields differ.
func decodeSectionHeader(r *Reader, base uint64, class Class, bo ByteOrder) (SectionHeader, error) {
	var sh SectionHeader

	// Field offsets relative to base: name, type, flags, addr, offset,
	// size, link, info, align, entsize.
	var off [10]uint64
	switch class {
	case Class64:
		off = [10]uint64{0, 4, 8, 16, 24, 32, 40, 44, 48, 56}
	default:
		off = [10]uint64{0, 4, 8, 12, 16, 20, 24, 28, 32, 36}
	}

	var err error
	if sh.NameOffset, err = r.Uint32(base+off[0], bo); err != nil {
		return sh, err
	}
	rawType, err := r.Uint32(base+off[1], bo)
	if err != nil {
		return sh, err
	}
	sh.Type = SectionType(rawType)

	rawFlags, err := r.Word(base+off[2], class, bo)
	if err != nil {
		return sh, err
	}
	sh.Flags = SectionFlags(rawFlags)

	if sh.Addr, err = r.Word(base+off[3], class, bo); err != nil {
		return sh, err
	}
	if sh.Offset, err = r.Word(base+off[4], class, bo); err != nil {
		return sh, err
	}
	if sh.Size, err = r.Word(base+off[5], class, bo); err != nil {
		return sh, err
	}
	if sh.Link, err = r.Uint32(base+off[6], bo); err != nil {
		return sh, err
	}
	if sh.Info, err = r.Uint32(base+off[7], bo); err != nil {
		return sh, err
	}
	if sh.AddrAlign, err = r.Word(base+off[8], class, bo); err != nil {
		return sh, err
	}
	if sh.EntSize, err = r.Word(base+off[9], class, bo); err != nil {
		return sh, err
	}
	return sh, nil
}
