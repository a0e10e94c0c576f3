package elf

import (
	"fmt"
	"strings"
)

// The classification tables below map the numeric codes found in ELF
// headers onto symbolic names. Lookups are total: a code outside a table
// classifies as unknown (or by OS/processor range membership) instead of
// failing, because vendor extensions are valid files that must still
// parse. The raw code is always retained in the typed value.

// Machine identifies the target instruction set architecture (e_machine).
type Machine uint16

const (
	MachineNone        Machine = 0x0000
	MachineWE32100     Machine = 0x0001
	MachineSPARC       Machine = 0x0002
	MachineX86         Machine = 0x0003
	MachineM68K        Machine = 0x0004
	MachineM88K        Machine = 0x0005
	MachineIntelMCU    Machine = 0x0006
	MachineIntel80860  Machine = 0x0007
	MachineMIPS        Machine = 0x0008
	MachineSystem370   Machine = 0x0009
	MachineRS3000      Machine = 0x000A
	MachinePARISC      Machine = 0x000E
	MachineIntel80960  Machine = 0x0013
	MachinePowerPC     Machine = 0x0014
	MachinePowerPC64   Machine = 0x0015
	MachineS390        Machine = 0x0016
	MachineARM         Machine = 0x0028
	MachineSuperH      Machine = 0x002A
	MachineIA64        Machine = 0x0032
	MachineX86_64      Machine = 0x003E
	MachineTMS320C6000 Machine = 0x008C
	MachineAArch64     Machine = 0x00B7
	MachineRISCV       Machine = 0x00F3
	MachineBPF         Machine = 0x00F7
	MachineWDC65C816   Machine = 0x0101
)

var machineNames = map[Machine]string{
	MachineNone:        "none",
	MachineWE32100:     "AT&T WE 32100",
	MachineSPARC:       "SPARC",
	MachineX86:         "Intel 80386",
	MachineM68K:        "Motorola 68000",
	MachineM88K:        "Motorola 88000",
	MachineIntelMCU:    "Intel MCU",
	MachineIntel80860:  "Intel 80860",
	MachineMIPS:        "MIPS",
	MachineSystem370:   "IBM System/370",
	MachineRS3000:      "MIPS RS3000",
	MachinePARISC:      "HP PA-RISC",
	MachineIntel80960:  "Intel 80960",
	MachinePowerPC:     "PowerPC",
	MachinePowerPC64:   "PowerPC64",
	MachineS390:        "IBM S/390",
	MachineARM:         "ARM",
	MachineSuperH:      "Hitachi SuperH",
	MachineIA64:        "Intel IA-64",
	MachineX86_64:      "x86-64",
	MachineTMS320C6000: "TI TMS320C6000",
	MachineAArch64:     "AArch64",
	MachineRISCV:       "RISC-V",
	MachineBPF:         "Linux BPF",
	MachineWDC65C816:   "WDC 65C816",
}

// Known reports whether the code appears in the documented table.
func (m Machine) Known() bool {
	_, ok := machineNames[m]
	return ok
}

func (m Machine) String() string {
	if name, ok := machineNames[m]; ok {
		return name
	}
	return fmt.Sprintf("unknown (0x%04x)", uint16(m))
}

// OSABI identifies the operating system ABI the file targets (EI_OSABI).
type OSABI uint8

const (
	OSABISysV          OSABI = 0x00
	OSABIHPUX          OSABI = 0x01
	OSABINetBSD        OSABI = 0x02
	OSABILinux         OSABI = 0x03
	OSABIGNUHurd       OSABI = 0x04
	OSABISolaris       OSABI = 0x06
	OSABIAIX           OSABI = 0x07
	OSABIIRIX          OSABI = 0x08
	OSABIFreeBSD       OSABI = 0x09
	OSABITru64         OSABI = 0x0A
	OSABINovellModesto OSABI = 0x0B
	OSABIOpenBSD       OSABI = 0x0C
	OSABIOpenVMS       OSABI = 0x0D
	OSABINonStopKernel OSABI = 0x0E
	OSABIAROS          OSABI = 0x0F
	OSABIFenixOS       OSABI = 0x10
	OSABICloudABI      OSABI = 0x11
	OSABIOpenVOS       OSABI = 0x12
)

var osABINames = map[OSABI]string{
	OSABISysV:          "UNIX System V",
	OSABIHPUX:          "HP-UX",
	OSABINetBSD:        "NetBSD",
	OSABILinux:         "Linux",
	OSABIGNUHurd:       "GNU Hurd",
	OSABISolaris:       "Solaris",
	OSABIAIX:           "AIX",
	OSABIIRIX:          "IRIX",
	OSABIFreeBSD:       "FreeBSD",
	OSABITru64:         "Tru64 UNIX",
	OSABINovellModesto: "Novell Modesto",
	OSABIOpenBSD:       "OpenBSD",
	OSABIOpenVMS:       "OpenVMS",
	OSABINonStopKernel: "NonStop Kernel",
	OSABIAROS:          "AROS",
	OSABIFenixOS:       "FenixOS",
	OSABICloudABI:      "CloudABI",
	OSABIOpenVOS:       "OpenVOS",
}

func (a OSABI) Known() bool {
	_, ok := osABINames[a]
	return ok
}

func (a OSABI) String() string {
	if name, ok := osABINames[a]; ok {
		return name
	}
	return fmt.Sprintf("unknown (0x%02x)", uint8(a))
}

// ObjectType is the object file type (e_type).
type ObjectType uint16

const (
	TypeNone         ObjectType = 0x0000
	TypeRelocatable  ObjectType = 0x0001
	TypeExecutable   ObjectType = 0x0002
	TypeSharedObject ObjectType = 0x0003
	TypeCore         ObjectType = 0x0004

	typeLoOS   ObjectType = 0xFE00
	typeLoProc ObjectType = 0xFF00
)

var objectTypeNames = map[ObjectType]string{
	TypeNone:         "none",
	TypeRelocatable:  "relocatable",
	TypeExecutable:   "executable",
	TypeSharedObject: "shared object",
	TypeCore:         "core dump",
}

func (t ObjectType) Known() bool {
	_, ok := objectTypeNames[t]
	return ok
}

func (t ObjectType) String() string {
	if name, ok := objectTypeNames[t]; ok {
		return name
	}
	switch {
	case t >= typeLoProc:
		return fmt.Sprintf("processor-specific (0x%04x)", uint16(t))
	case t >= typeLoOS:
		return fmt.Sprintf("OS-specific (0x%04x)", uint16(t))
	default:
		return fmt.Sprintf("unknown (0x%04x)", uint16(t))
	}
}

// SegmentType is a program header entry type (p_type).
type SegmentType uint32

const (
	SegmentNull    SegmentType = 0x00000000
	SegmentLoad    SegmentType = 0x00000001
	SegmentDynamic SegmentType = 0x00000002
	SegmentInterp  SegmentType = 0x00000003
	SegmentNote    SegmentType = 0x00000004
	SegmentShlib   SegmentType = 0x00000005
	SegmentPhdr    SegmentType = 0x00000006
	SegmentTLS     SegmentType = 0x00000007

	segmentLoOS   SegmentType = 0x60000000
	segmentHiOS   SegmentType = 0x6FFFFFFF
	segmentLoProc SegmentType = 0x70000000
	segmentHiProc SegmentType = 0x7FFFFFFF
)

var segmentTypeNames = map[SegmentType]string{
	SegmentNull:    "NULL",
	SegmentLoad:    "LOAD",
	SegmentDynamic: "DYNAMIC",
	SegmentInterp:  "INTERP",
	SegmentNote:    "NOTE",
	SegmentShlib:   "SHLIB",
	SegmentPhdr:    "PHDR",
	SegmentTLS:     "TLS",
}

// OSSpecific reports whether the type falls in the OS-specific range.
func (t SegmentType) OSSpecific() bool {
	return t >= segmentLoOS && t <= segmentHiOS
}

// ProcessorSpecific reports whether the type falls in the
// processor-specific range.
func (t SegmentType) ProcessorSpecific() bool {
	return t >= segmentLoProc && t <= segmentHiProc
}

func (t SegmentType) Known() bool {
	_, ok := segmentTypeNames[t]
	return ok
}

func (t SegmentType) String() string {
	if name, ok := segmentTypeNames[t]; ok {
		return name
	}
	switch {
	case t.OSSpecific():
		return fmt.Sprintf("OS-specific (0x%08x)", uint32(t))
	case t.ProcessorSpecific():
		return fmt.Sprintf("processor-specific (0x%08x)", uint32(t))
	default:
		return fmt.Sprintf("unknown (0x%08x)", uint32(t))
	}
}

// SegmentFlags is the p_flags permission bitmask of a segment.
type SegmentFlags uint32

const (
	SegmentFlagExecutable SegmentFlags = 0x1
	SegmentFlagWritable   SegmentFlags = 0x2
	SegmentFlagReadable   SegmentFlags = 0x4
)

// Has reports whether every flag in mask is set.
func (f SegmentFlags) Has(mask SegmentFlags) bool {
	return f&mask == mask
}

// Names returns the symbolic names of the set permission bits in R, W, X
// order. Bits outside the documented mask stay visible through the raw
// value only.
func (f SegmentFlags) Names() []string {
	var names []string
	if f.Has(SegmentFlagReadable) {
		names = append(names, "R")
	}
	if f.Has(SegmentFlagWritable) {
		names = append(names, "W")
	}
	if f.Has(SegmentFlagExecutable) {
		names = append(names, "X")
	}
	return names
}

func (f SegmentFlags) String() string {
	names := f.Names()
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "")
}

// SectionType is a section header entry type (sh_type).
type SectionType uint32

const (
	SectionNull         SectionType = 0x00000000
	SectionProgBits     SectionType = 0x00000001
	SectionSymTab       SectionType = 0x00000002
	SectionStrTab       SectionType = 0x00000003
	SectionRela         SectionType = 0x00000004
	SectionHash         SectionType = 0x00000005
	SectionDynamic      SectionType = 0x00000006
	SectionNote         SectionType = 0x00000007
	SectionNoBits       SectionType = 0x00000008
	SectionRel          SectionType = 0x00000009
	SectionShlib        SectionType = 0x0000000A
	SectionDynSym       SectionType = 0x0000000B
	SectionInitArray    SectionType = 0x0000000E
	SectionFiniArray    SectionType = 0x0000000F
	SectionPreinitArray SectionType = 0x00000010
	SectionGroup        SectionType = 0x00000011
	SectionSymTabShndx  SectionType = 0x00000012
	SectionNum          SectionType = 0x00000013

	sectionLoOS SectionType = 0x60000000
)

var sectionTypeNames = map[SectionType]string{
	SectionNull:         "NULL",
	SectionProgBits:     "PROGBITS",
	SectionSymTab:       "SYMTAB",
	SectionStrTab:       "STRTAB",
	SectionRela:         "RELA",
	SectionHash:         "HASH",
	SectionDynamic:      "DYNAMIC",
	SectionNote:         "NOTE",
	SectionNoBits:       "NOBITS",
	SectionRel:          "REL",
	SectionShlib:        "SHLIB",
	SectionDynSym:       "DYNSYM",
	SectionInitArray:    "INIT_ARRAY",
	SectionFiniArray:    "FINI_ARRAY",
	SectionPreinitArray: "PREINIT_ARRAY",
	SectionGroup:        "GROUP",
	SectionSymTabShndx:  "SYMTAB_SHNDX",
	SectionNum:          "NUM",
}

// OSSpecific reports whether the type falls in the OS-specific range.
func (t SectionType) OSSpecific() bool {
	return t >= sectionLoOS
}

func (t SectionType) Known() bool {
	_, ok := sectionTypeNames[t]
	return ok
}

func (t SectionType) String() string {
	if name, ok := sectionTypeNames[t]; ok {
		return name
	}
	if t.OSSpecific() {
		return fmt.Sprintf("OS-specific (0x%08x)", uint32(t))
	}
	return fmt.Sprintf("unknown (0x%08x)", uint32(t))
}

// SectionFlags is the sh_flags attribute bitmask of a section.
type SectionFlags uint64

const (
	SectionFlagWrite           SectionFlags = 0x1
	SectionFlagAlloc           SectionFlags = 0x2
	SectionFlagExecInstr       SectionFlags = 0x4
	SectionFlagMerge           SectionFlags = 0x10
	SectionFlagStrings         SectionFlags = 0x20
	SectionFlagInfoLink        SectionFlags = 0x40
	SectionFlagLinkOrder       SectionFlags = 0x80
	SectionFlagOSNonconforming SectionFlags = 0x100
	SectionFlagGroup           SectionFlags = 0x200
	SectionFlagTLS             SectionFlags = 0x400
	SectionFlagCompressed      SectionFlags = 0x800
	SectionFlagOrdered         SectionFlags = 0x4000000
	SectionFlagExclude         SectionFlags = 0x8000000

	SectionFlagMaskOS        SectionFlags = 0x0FF00000
	SectionFlagMaskProcessor SectionFlags = 0xF0000000
)

var sectionFlagNames = []struct {
	flag SectionFlags
	name string
}{
	{SectionFlagWrite, "WRITE"},
	{SectionFlagAlloc, "ALLOC"},
	{SectionFlagExecInstr, "EXECINSTR"},
	{SectionFlagMerge, "MERGE"},
	{SectionFlagStrings, "STRINGS"},
	{SectionFlagInfoLink, "INFO_LINK"},
	{SectionFlagLinkOrder, "LINK_ORDER"},
	{SectionFlagOSNonconforming, "OS_NONCONFORMING"},
	{SectionFlagGroup, "GROUP"},
	{SectionFlagTLS, "TLS"},
	{SectionFlagCompressed, "COMPRESSED"},
	{SectionFlagOrdered, "ORDERED"},
	{SectionFlagExclude, "EXCLUDE"},
}

// Has reports whether every flag in mask is set.
func (f SectionFlags) Has(mask SectionFlags) bool {
	return f&mask == mask
}

// Names returns the symbolic names of the set attribute bits in table
// order. OS and processor mask regions are reported as single entries
// when any of their bits are set; bits outside every documented region
// stay visible through the raw value only.
func (f SectionFlags) Names() []string {
	var names []string
	rest := f
	for _, entry := range sectionFlagNames {
		if f.Has(entry.flag) {
			names = append(names, entry.name)
			rest &^= entry.flag
		}
	}
	// ORDERED and EXCLUDE live inside the OS mask region; only bits not
	// already named count towards the range entries.
	if rest&SectionFlagMaskOS != 0 {
		names = append(names, "OS")
	}
	if rest&SectionFlagMaskProcessor != 0 {
		names = append(names, "PROC")
	}
	return names
}

func (f SectionFlags) String() string {
	names := f.Names()
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, "+")
}
