package elf

import "fmt"

// elfMagic is the fixed 4-byte signature every ELF file starts with.
var elfMagic = [4]byte{0x7F, 'E', 'L', 'F'}

// Header sizes implied by the class. The declared e_ehsize is checked
// against these but the class-derived value is authoritative.
const (
	headerSize32 = 52
	headerSize64 = 64
)

// Identification holds the decoded ELF header: the fixed 16-byte
// identification block plus the class-dependent remainder. It is built
// once per input buffer and immutable afterwards.
type Identification struct {
	Magic        [4]byte
	Class        Class
	ByteOrder    ByteOrder
	IdentVersion uint8
	OSABI        OSABI
	ABIVersion   uint8
	Type         ObjectType
	Machine      Machine
	Version      uint32
	Entry        uint64
	PhOff        uint64
	ShOff        uint64
	Flags        uint32
	HeaderSize   uint16
	PhEntSize    uint16
	PhNum        uint16
	ShEntSize    uint16
	ShNum        uint16
	ShStrNdx     uint16
}

// expectedHeaderSize returns the header size implied by the class.
func (id *Identification) expectedHeaderSize() uint16 {
	if id.Class == Class64 {
		return headerSize64
	}
	return headerSize32
}

// decodeIdentification decodes the ELF header from the start of the
// buffer. The magic check is the single validation gate: on mismatch no
// further field is decoded. A non-1 identification version and a
// declared header size that differs from the class-expected one are
// stable-format quirks reported as warnings, not failures.
func decodeIdentification(r *Reader) (Identification, []string, error) {
	var id Identification
	var warnings []string

	for i := range id.Magic {
		b, err := r.Uint8(uint64(i))
		if err != nil {
			return id, nil, err
		}
		id.Magic[i] = b
	}
	if id.Magic != elfMagic {
		return id, nil, ErrInvalidMagic
	}

	classByte, err := r.Uint8(4)
	if err != nil {
		return id, nil, err
	}
	switch Class(classByte) {
	case Class32, Class64:
		id.Class = Class(classByte)
	default:
		return id, nil, &UnknownClassError{Code: classByte}
	}

	orderByte, err := r.Uint8(5)
	if err != nil {
		return id, nil, err
	}
	switch ByteOrder(orderByte) {
	case LittleEndian, BigEndian:
		id.ByteOrder = ByteOrder(orderByte)
	default:
		return id, nil, &UnknownByteOrderError{Code: orderByte}
	}

	if id.IdentVersion, err = r.Uint8(6); err != nil {
		return id, nil, err
	}
	if id.IdentVersion != 1 {
		warnings = append(warnings,
			fmt.Sprintf("identification version is %d, expected 1", id.IdentVersion))
	}

	abiByte, err := r.Uint8(7)
	if err != nil {
		return id, nil, err
	}
	id.OSABI = OSABI(abiByte)
	if id.ABIVersion, err = r.Uint8(8); err != nil {
		return id, nil, err
	}

	bo := id.ByteOrder
	objType, err := r.Uint16(16, bo)
	if err != nil {
		return id, nil, err
	}
	id.Type = ObjectType(objType)

	machine, err := r.Uint16(18, bo)
	if err != nil {
		return id, nil, err
	}
	id.Machine = Machine(machine)

	if id.Version, err = r.Uint32(20, bo); err != nil {
		return id, nil, err
	}

	// Past e_version the two classes agree on field order; only the
	// width and therefore the position of the three address/offset
	// fields differ.
	type layout struct {
		entry, phOff, shOff                         uint64
		flags, ehSize                               uint64
		phEntSize, phNum, shEntSize, shNum, shStrNdx uint64
	}
	var off layout
	switch id.Class {
	case Class64:
		off = layout{24, 32, 40, 48, 52, 54, 56, 58, 60, 62}
	default:
		off = layout{24, 28, 32, 36, 40, 42, 44, 46, 48, 50}
	}

	if id.Entry, err = r.Word(off.entry, id.Class, bo); err != nil {
		return id, nil, err
	}
	if id.PhOff, err = r.Word(off.phOff, id.Class, bo); err != nil {
		return id, nil, err
	}
	if id.ShOff, err = r.Word(off.shOff, id.Class, bo); err != nil {
		return id, nil, err
	}
	if id.Flags, err = r.Uint32(off.flags, bo); err != nil {
		return id, nil, err
	}
	if id.HeaderSize, err = r.Uint16(off.ehSize, bo); err != nil {
		return id, nil, err
	}
	if expected := id.expectedHeaderSize(); id.HeaderSize != expected {
		warnings = append(warnings,
			fmt.Sprintf("declared ELF header size %d differs from the %s size %d",
				id.HeaderSize, id.Class, expected))
	}
	if id.PhEntSize, err = r.Uint16(off.phEntSize, bo); err != nil {
		return id, nil, err
	}
	if id.PhNum, err = r.Uint16(off.phNum, bo); err != nil {
		return id, nil, err
	}
	if id.ShEntSize, err = r.Uint16(off.shEntSize, bo); err != nil {
		return id, nil, err
	}
	if id.ShNum, err = r.Uint16(off.shNum, bo); err != nil {
		return id, nil, err
	}
	if id.ShStrNdx, err = r.Uint16(off.shStrNdx, bo); err != nil {
		return id, nil, err
	}

	return id, warnings, nil
}
