package elf

import (
	"fmt"
	"os"
)

// Report is the aggregate parse result handed to the presentation
// layer: the decoded header plus both header tables in file order, and
// any non-fatal inconsistencies noticed along the way. A Report is only
// produced for a fully decoded file; fatal conditions return an error
// and no partial Report.
type Report struct {
	Identification Identification
	ProgramHeaders []ProgramHeader
	SectionHeaders []SectionHeader

	// Warnings records recoverable oddities such as entry size or
	// alignment mismatches. They never prevent parsing.
	Warnings []string
}

// Parse decodes the ELF metadata from a fully loaded file buffer.
// Parsing is pure and deterministic: no I/O, no logging, no state
// shared between calls, so distinct buffers may be parsed concurrently.
func Parse(buf []byte) (*Report, error) {
	r := NewReader(buf)

	id, warnings, err := decodeIdentification(r)
	if err != nil {
		return nil, err
	}

	programHeaders, phWarnings, err := decodeProgramHeaders(r, &id)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, phWarnings...)

	sectionHeaders, shWarnings, err := decodeSectionHeaders(r, &id)
	if err != nil {
		return nil, err
	}
	warnings = append(warnings, shWarnings...)

	return &Report{
		Identification: id,
		ProgramHeaders: programHeaders,
		SectionHeaders: sectionHeaders,
		Warnings:       warnings,
	}, nil
}

// ParseFile loads path into memory and parses it. This is the only
// place the package touches the filesystem; the decode itself always
// runs over the in-memory buffer.
func ParseFile(path string) (*Report, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(buf)
}
