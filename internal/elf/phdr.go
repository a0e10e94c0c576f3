package elf

import (
	"fmt"
	"math/bits"
)

// Per-class program header entry sizes. The declared e_phentsize is
// informational; the class-derived size drives decoding.
const (
	phEntrySize32 = 32
	phEntrySize64 = 56
)

// ProgramHeader describes one runtime segment of the file, in file
// order. Addresses and sizes are widened to uint64 regardless of class.
type ProgramHeader struct {
	Type     SegmentType
	Flags    SegmentFlags
	Offset   uint64
	VirtAddr uint64
	PhysAddr uint64
	FileSize uint64
	MemSize  uint64
	Align    uint64
}

func phEntrySize(class Class) uint64 {
	if class == Class64 {
		return phEntrySize64
	}
	return phEntrySize32
}

// decodeProgramHeaders decodes the program header table described by the
// identification. A zero entry count yields an empty table. The whole
// declared table extent is bounds-checked up front so a truncated file
// fails with a table error instead of a partial read.
func decodeProgramHeaders(r *Reader, id *Identification) ([]ProgramHeader, []string, error) {
	if id.PhNum == 0 {
		return []ProgramHeader{}, nil, nil
	}

	entrySize := phEntrySize(id.Class)
	var warnings []string
	if uint64(id.PhEntSize) != entrySize {
		warnings = append(warnings,
			fmt.Sprintf("declared program header entry size %d differs from the %s size %d",
				id.PhEntSize, id.Class, entrySize))
	}

	end := id.PhOff + uint64(id.PhNum)*entrySize
	if end < id.PhOff || end > uint64(r.Len()) {
		return nil, warnings, &TruncatedTableError{Table: "program header", End: end, Length: r.Len()}
	}

	headers := make([]ProgramHeader, 0, id.PhNum)
	for i := uint64(0); i < uint64(id.PhNum); i++ {
		base := id.PhOff + i*entrySize
		ph, err := decodeProgramHeader(r, base, id.Class, id.ByteOrder)
		if err != nil {
			return nil, warnings, err
		}
		warnings = append(warnings, checkSegmentPlacement(i, ph)...)
		headers = append(headers, ph)
	}
	return headers, warnings, nil
}

// decodeProgramHeader decodes a single entry at base. The two classes
// lay the fields out differently, not just wider: ELF32 stores p_flags
// between p_memsz and p_align while ELF64 moves it directly after
// p_type, so the field order is dispatched on class.
func decodeProgramHeader(r *Reader, base uint64, class Class, bo ByteOrder) (ProgramHeader, error) {
	var ph ProgramHeader

	rawType, err := r.Uint32(base, bo)
	if err != nil {
		return ph, err
	}
	ph.Type = SegmentType(rawType)

	// Field offsets relative to base: offset, vaddr, paddr, filesz,
	// memsz, flags, align.
	var off [7]uint64
	switch class {
	case Class64:
		off = [7]uint64{8, 16, 24, 32, 40, 4, 48}
	default:
		off = [7]uint64{4, 8, 12, 16, 20, 24, 28}
	}

	if ph.Offset, err = r.Word(base+off[0], class, bo); err != nil {
		return ph, err
	}
	if ph.VirtAddr, err = r.Word(base+off[1], class, bo); err != nil {
		return ph, err
	}
	if ph.PhysAddr, err = r.Word(base+off[2], class, bo); err != nil {
		return ph, err
	}
	if ph.FileSize, err = r.Word(base+off[3], class, bo); err != nil {
		return ph, err
	}
	if ph.MemSize, err = r.Word(base+off[4], class, bo); err != nil {
		return ph, err
	}
	rawFlags, err := r.Uint32(base+off[5], bo)
	if err != nil {
		return ph, err
	}
	ph.Flags = SegmentFlags(rawFlags)
	if ph.Align, err = r.Word(base+off[6], class, bo); err != nil {
		return ph, err
	}
	return ph, nil
}

// checkSegmentPlacement reports loader-visible inconsistencies in a
// decoded entry. An alignment of 0 or 1 means unaligned; anything else
// must be a power of two and must place p_vaddr and p_offset in the same
// residue class. Violations do not stop decoding.
func checkSegmentPlacement(index uint64, ph ProgramHeader) []string {
	if ph.Align <= 1 {
		return nil
	}
	if bits.OnesCount64(ph.Align) != 1 {
		return []string{fmt.Sprintf(
			"program header %d: alignment 0x%x is not a power of two", index, ph.Align)}
	}
	if ph.VirtAddr%ph.Align != ph.Offset%ph.Align {
		return []string{fmt.Sprintf(
			"program header %d: virtual address 0x%x and file offset 0x%x disagree modulo alignment 0x%x",
			index, ph.VirtAddr, ph.Offset, ph.Align)}
	}
	return nil
}
