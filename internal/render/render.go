// Package render turns a parsed ELF report into human-readable text or
// machine-readable JSON. It is pure presentation: all decoding and
// classification happens in the elf package.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/fluffinity/elfreader/internal/elf"
)

// Options selects which parts of the report are rendered.
type Options struct {
	Header         bool
	ProgramHeaders bool
	SectionHeaders bool
	Color          bool
}

// All returns options with every part enabled.
func All(useColor bool) Options {
	return Options{
		Header:         true,
		ProgramHeaders: true,
		SectionHeaders: true,
		Color:          useColor,
	}
}

// Text writes a human-readable rendering of the report to w.
func Text(w io.Writer, path string, rep *elf.Report, opts Options) error {
	heading := color.New(color.Bold, color.FgCyan)
	warn := color.New(color.FgYellow)
	if !opts.Color {
		heading.DisableColor()
		warn.DisableColor()
	}

	fmt.Fprintf(w, "File: %s\n\n", path)

	if opts.Header {
		heading.Fprintln(w, "ELF Header")
		writeHeaderText(w, &rep.Identification)
		fmt.Fprintln(w)
	}

	if opts.ProgramHeaders {
		heading.Fprintf(w, "Program Headers (%d)\n", len(rep.ProgramHeaders))
		if len(rep.ProgramHeaders) > 0 {
			writeProgramHeaderTable(w, rep.ProgramHeaders)
		}
		fmt.Fprintln(w)
	}

	if opts.SectionHeaders {
		heading.Fprintf(w, "Section Headers (%d)\n", len(rep.SectionHeaders))
		if len(rep.SectionHeaders) > 0 {
			writeSectionHeaderTable(w, rep.SectionHeaders)
		}
		fmt.Fprintln(w)
	}

	for _, warning := range rep.Warnings {
		warn.Fprintf(w, "Warning: %s\n", warning)
	}
	return nil
}

func writeHeaderText(w io.Writer, id *elf.Identification) {
	rows := []struct {
		label string
		value string
	}{
		{"Class", id.Class.String()},
		{"Byte order", id.ByteOrder.String()},
		{"Ident version", fmt.Sprintf("%d", id.IdentVersion)},
		{"OS/ABI", id.OSABI.String()},
		{"ABI version", fmt.Sprintf("%d", id.ABIVersion)},
		{"Type", id.Type.String()},
		{"Machine", id.Machine.String()},
		{"Version", fmt.Sprintf("0x%x", id.Version)},
		{"Entry point", fmt.Sprintf("0x%x", id.Entry)},
		{"Program header offset", fmt.Sprintf("0x%x", id.PhOff)},
		{"Section header offset", fmt.Sprintf("0x%x", id.ShOff)},
		{"Flags", fmt.Sprintf("0x%x", id.Flags)},
		{"Header size", fmt.Sprintf("%d", id.HeaderSize)},
		{"Program headers", fmt.Sprintf("%d x %d bytes", id.PhNum, id.PhEntSize)},
		{"Section headers", fmt.Sprintf("%d x %d bytes", id.ShNum, id.ShEntSize)},
		{"Section name table index", fmt.Sprintf("%d", id.ShStrNdx)},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "  %-26s %s\n", row.label+":", row.value)
	}
}

func writeProgramHeaderTable(w io.Writer, headers []elf.ProgramHeader) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Type", "Flags", "Offset", "VirtAddr", "PhysAddr", "FileSize", "MemSize", "Align"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	for i, ph := range headers {
		table.Append([]string{
			fmt.Sprintf("%d", i),
			ph.Type.String(),
			ph.Flags.String(),
			fmt.Sprintf("0x%x", ph.Offset),
			fmt.Sprintf("0x%x", ph.VirtAddr),
			fmt.Sprintf("0x%x", ph.PhysAddr),
			fmt.Sprintf("0x%x", ph.FileSize),
			fmt.Sprintf("0x%x", ph.MemSize),
			fmt.Sprintf("0x%x", ph.Align),
		})
	}
	table.Render()
}

func writeSectionHeaderTable(w io.Writer, headers []elf.SectionHeader) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Name offset", "Type", "Flags", "Addr", "Offset", "Size", "Link", "Info", "Align", "EntSize"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	for i, sh := range headers {
		flags := strings.Join(sh.Flags.Names(), "+")
		if flags == "" {
			flags = "-"
		}
		table.Append([]string{
			fmt.Sprintf("%d", i),
			fmt.Sprintf("0x%x", sh.NameOffset),
			sh.Type.String(),
			flags,
			fmt.Sprintf("0x%x", sh.Addr),
			fmt.Sprintf("0x%x", sh.Offset),
			fmt.Sprintf("0x%x", sh.Size),
			fmt.Sprintf("%d", sh.Link),
			fmt.Sprintf("%d", sh.Info),
			fmt.Sprintf("0x%x", sh.AddrAlign),
			fmt.Sprintf("0x%x", sh.EntSize),
		})
	}
	table.Render()
}

// JSON view models: numeric codes are kept next to their symbolic names
// so consumers can round-trip either.

type jsonReport struct {
	File           string              `json:"file"`
	Header         *jsonHeader         `json:"header,omitempty"`
	ProgramHeaders []jsonProgramHeader `json:"program_headers,omitempty"`
	SectionHeaders []jsonSectionHeader `json:"section_headers,omitempty"`
	Warnings       []string            `json:"warnings,omitempty"`
}

type jsonHeader struct {
	Class         string `json:"class"`
	ByteOrder     string `json:"byte_order"`
	IdentVersion  uint8  `json:"ident_version"`
	OSABI         string `json:"os_abi"`
	OSABICode     uint8  `json:"os_abi_code"`
	ABIVersion    uint8  `json:"abi_version"`
	Type          string `json:"type"`
	TypeCode      uint16 `json:"type_code"`
	Machine       string `json:"machine"`
	MachineCode   uint16 `json:"machine_code"`
	Version       uint32 `json:"version"`
	Entry         uint64 `json:"entry_point"`
	PhOff         uint64 `json:"program_header_offset"`
	ShOff         uint64 `json:"section_header_offset"`
	Flags         uint32 `json:"flags"`
	HeaderSize    uint16 `json:"header_size"`
	PhEntSize     uint16 `json:"program_header_entry_size"`
	PhNum         uint16 `json:"program_header_count"`
	ShEntSize     uint16 `json:"section_header_entry_size"`
	ShNum         uint16 `json:"section_header_count"`
	ShStrNdx      uint16 `json:"section_name_table_index"`
}

type jsonProgramHeader struct {
	Type      string   `json:"type"`
	TypeCode  uint32   `json:"type_code"`
	Flags     []string `json:"flags"`
	FlagsCode uint32   `json:"flags_code"`
	Offset    uint64   `json:"offset"`
	VirtAddr  uint64   `json:"virtual_address"`
	PhysAddr  uint64   `json:"physical_address"`
	FileSize  uint64   `json:"file_size"`
	MemSize   uint64   `json:"memory_size"`
	Align     uint64   `json:"alignment"`
}

type jsonSectionHeader struct {
	NameOffset uint32   `json:"name_offset"`
	Type       string   `json:"type"`
	TypeCode   uint32   `json:"type_code"`
	Flags      []string `json:"flags"`
	FlagsCode  uint64   `json:"flags_code"`
	Addr       uint64   `json:"address"`
	Offset     uint64   `json:"offset"`
	Size       uint64   `json:"size"`
	Link       uint32   `json:"link"`
	Info       uint32   `json:"info"`
	AddrAlign  uint64   `json:"address_alignment"`
	EntSize    uint64   `json:"entry_size"`
}

// JSON writes a machine-readable rendering of the report to w.
func JSON(w io.Writer, path string, rep *elf.Report, opts Options) error {
	out := jsonReport{
		File:     path,
		Warnings: rep.Warnings,
	}

	if opts.Header {
		id := rep.Identification
		out.Header = &jsonHeader{
			Class:        id.Class.String(),
			ByteOrder:    id.ByteOrder.String(),
			IdentVersion: id.IdentVersion,
			OSABI:        id.OSABI.String(),
			OSABICode:    uint8(id.OSABI),
			ABIVersion:   id.ABIVersion,
			Type:         id.Type.String(),
			TypeCode:     uint16(id.Type),
			Machine:      id.Machine.String(),
			MachineCode:  uint16(id.Machine),
			Version:      id.Version,
			Entry:        id.Entry,
			PhOff:        id.PhOff,
			ShOff:        id.ShOff,
			Flags:        id.Flags,
			HeaderSize:   id.HeaderSize,
			PhEntSize:    id.PhEntSize,
			PhNum:        id.PhNum,
			ShEntSize:    id.ShEntSize,
			ShNum:        id.ShNum,
			ShStrNdx:     id.ShStrNdx,
		}
	}

	if opts.ProgramHeaders {
		out.ProgramHeaders = make([]jsonProgramHeader, 0, len(rep.ProgramHeaders))
		for _, ph := range rep.ProgramHeaders {
			out.ProgramHeaders = append(out.ProgramHeaders, jsonProgramHeader{
				Type:      ph.Type.String(),
				TypeCode:  uint32(ph.Type),
				Flags:     ph.Flags.Names(),
				FlagsCode: uint32(ph.Flags),
				Offset:    ph.Offset,
				VirtAddr:  ph.VirtAddr,
				PhysAddr:  ph.PhysAddr,
				FileSize:  ph.FileSize,
				MemSize:   ph.MemSize,
				Align:     ph.Align,
			})
		}
	}

	if opts.SectionHeaders {
		out.SectionHeaders = make([]jsonSectionHeader, 0, len(rep.SectionHeaders))
		for _, sh := range rep.SectionHeaders {
			out.SectionHeaders = append(out.SectionHeaders, jsonSectionHeader{
				NameOffset: sh.NameOffset,
				Type:       sh.Type.String(),
				TypeCode:   uint32(sh.Type),
				Flags:      sh.Flags.Names(),
				FlagsCode:  uint64(sh.Flags),
				Addr:       sh.Addr,
				Offset:     sh.Offset,
				Size:       sh.Size,
				Link:       sh.Link,
				Info:       sh.Info,
				AddrAlign:  sh.AddrAlign,
				EntSize:    sh.EntSize,
			})
		}
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
