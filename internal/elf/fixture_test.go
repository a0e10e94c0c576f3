package elf

// Test fixtures are built synthetically: encodeFixture is the write-side
// mirror of the decoder, laying out header, program header table and
// section header table contiguously so round-trip tests can compare
// decoded entries against the values written in.

func fixtureGeometry(class Class) (hdrSize, phEnt, shEnt uint64) {
	if class == Class64 {
		return headerSize64, phEntrySize64, shEntrySize64
	}
	return headerSize32, phEntrySize32, shEntrySize32
}

func encodeFixture(id Identification, phs []ProgramHeader, shs []SectionHeader) []byte {
	class, bo := id.Class, id.ByteOrder
	order := bo.order()
	hdrSize, phEnt, shEnt := fixtureGeometry(class)

	phOff := hdrSize
	shOff := phOff + uint64(len(phs))*phEnt
	buf := make([]byte, shOff+uint64(len(shs))*shEnt)

	putWord := func(off uint64, v uint64) {
		if class == Class64 {
			order.PutUint64(buf[off:], v)
		} else {
			order.PutUint32(buf[off:], uint32(v))
		}
	}

	copy(buf, elfMagic[:])
	buf[4] = byte(class)
	buf[5] = byte(bo)
	buf[6] = id.IdentVersion
	buf[7] = byte(id.OSABI)
	buf[8] = id.ABIVersion
	order.PutUint16(buf[16:], uint16(id.Type))
	order.PutUint16(buf[18:], uint16(id.Machine))
	order.PutUint32(buf[20:], id.Version)

	var entry, flags, ehSize, phEntSize, phNum, shEntSize, shNum, shStrNdx uint64
	if class == Class64 {
		entry, flags, ehSize = 24, 48, 52
		phEntSize, phNum, shEntSize, shNum, shStrNdx = 54, 56, 58, 60, 62
		order.PutUint64(buf[32:], phOff)
		order.PutUint64(buf[40:], shOff)
	} else {
		entry, flags, ehSize = 24, 36, 40
		phEntSize, phNum, shEntSize, shNum, shStrNdx = 42, 44, 46, 48, 50
		order.PutUint32(buf[28:], uint32(phOff))
		order.PutUint32(buf[32:], uint32(shOff))
	}
	putWord(entry, id.Entry)
	order.PutUint32(buf[flags:], id.Flags)
	order.PutUint16(buf[ehSize:], uint16(hdrSize))
	order.PutUint16(buf[phEntSize:], uint16(phEnt))
	order.PutUint16(buf[phNum:], uint16(len(phs)))
	order.PutUint16(buf[shEntSize:], uint16(shEnt))
	order.PutUint16(buf[shNum:], uint16(len(shs)))
	order.PutUint16(buf[shStrNdx:], id.ShStrNdx)

	for i, ph := range phs {
		base := phOff + uint64(i)*phEnt
		order.PutUint32(buf[base:], uint32(ph.Type))
		if class == Class64 {
			order.PutUint32(buf[base+4:], uint32(ph.Flags))
			order.PutUint64(buf[base+8:], ph.Offset)
			order.PutUint64(buf[base+16:], ph.VirtAddr)
			order.PutUint64(buf[base+24:], ph.PhysAddr)
			order.PutUint64(buf[base+32:], ph.FileSize)
			order.PutUint64(buf[base+40:], ph.MemSize)
			order.PutUint64(buf[base+48:], ph.Align)
		} else {
			order.PutUint32(buf[base+4:], uint32(ph.Offset))
			order.PutUint32(buf[base+8:], uint32(ph.VirtAddr))
			order.PutUint32(buf[base+12:], uint32(ph.PhysAddr))
			order.PutUint32(buf[base+16:], uint32(ph.FileSize))
			order.PutUint32(buf[base+20:], uint32(ph.MemSize))
			order.PutUint32(buf[base+24:], uint32(ph.Flags))
			order.PutUint32(buf[base+28:], uint32(ph.Align))
		}
	}

	for i, sh := range shs {
		base := shOff + uint64(i)*shEnt
		order.PutUint32(buf[base:], sh.NameOffset)
		order.PutUint32(buf[base+4:], uint32(sh.Type))
		if class == Class64 {
			order.PutUint64(buf[base+8:], uint64(sh.Flags))
			order.PutUint64(buf[base+16:], sh.Addr)
			order.PutUint64(buf[base+24:], sh.Offset)
			order.PutUint64(buf[base+32:], sh.Size)
			order.PutUint32(buf[base+40:], sh.Link)
			order.PutUint32(buf[base+44:], sh.Info)
			order.PutUint64(buf[base+48:], sh.AddrAlign)
			order.PutUint64(buf[base+56:], sh.EntSize)
		} else {
			order.PutUint32(buf[base+8:], uint32(sh.Flags))
			order.PutUint32(buf[base+12:], uint32(sh.Addr))
			order.PutUint32(buf[base+16:], uint32(sh.Offset))
			order.PutUint32(buf[base+20:], uint32(sh.Size))
			order.PutUint32(buf[base+24:], sh.Link)
			order.PutUint32(buf[base+28:], sh.Info)
			order.PutUint32(buf[base+32:], uint32(sh.AddrAlign))
			order.PutUint32(buf[base+36:], uint32(sh.EntSize))
		}
	}

	return buf
}

// minimalIdent is a valid executable header for the given class and
// byte order with no tables.
func minimalIdent(class Class, bo ByteOrder) Identification {
	return Identification{
		Class:        class,
		ByteOrder:    bo,
		IdentVersion: 1,
		OSABI:        OSABILinux,
		Type:         TypeExecutable,
		Machine:      MachineX86_64,
		Version:      1,
		Entry:        0x401000,
	}
}
