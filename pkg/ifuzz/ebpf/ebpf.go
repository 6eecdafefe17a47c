// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package ebpf allows to generate eBPF instruction streams for conformance testing
// of eBPF interpreters and verifiers.
//
// The instruction catalog (insns.go) lists every legal opcode together with the ISA
// version that introduced it and, where the ISA fixes an operand field, the legal
// value of that field. InsnSet narrows the catalog to a max version and materializes
// random instructions from it.
package ebpf

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sort"
)

// Version is the eBPF ISA ("cpu") version. Versions are totally ordered.
type Version int

const (
	V1 Version = iota + 1
	V2
	V3
	V4

	VersionFirst = V1
	VersionLast  = V4
)

var ErrUnknownVersion = errors.New("unknown ISA version")

func (v Version) Valid() bool {
	return v >= VersionFirst && v <= VersionLast
}

func (v Version) String() string {
	if !v.Valid() {
		return fmt.Sprintf("v?(%d)", int(v))
	}
	return fmt.Sprintf("v%d", int(v))
}

// ParseVersion converts a numeric cpu version (as passed on command line) to Version.
// Values outside of the known range are rejected, never clamped.
func ParseVersion(n int) (Version, error) {
	v := Version(n)
	if !v.Valid() {
		return 0, fmt.Errorf("%w: %v (supported %v..%v)", ErrUnknownVersion, n, int(VersionFirst), int(VersionLast))
	}
	return v, nil
}

// Field identifies an operand field that the ISA may fix for an opcode.
type Field int

const (
	FieldSrc Field = iota
	FieldImm
	FieldOff
	FieldLast
)

func (f Field) String() string {
	switch f {
	case FieldSrc:
		return "src"
	case FieldImm:
		return "imm"
	case FieldOff:
		return "off"
	}
	return fmt.Sprintf("field(%d)", int(f))
}

// Fixed is a bitmask of fields fixed by a template.
type Fixed uint8

const (
	FixSrc Fixed = 1 << FieldSrc
	FixImm Fixed = 1 << FieldImm
	FixOff Fixed = 1 << FieldOff
)

func (f Fixed) Has(field Field) bool {
	return f&(1<<field) != 0
}

const (
	InsnSize = 8

	OpLdImmDW = 0x18 // 64-bit immediate load, followed by an extension word
	OpCall    = 0x85
	OpExit    = 0x95
)

// Template is one legal (version, opcode, fixed field values) combination.
// Fields not mentioned in Fixed are free and get random values.
type Template struct {
	Name    string
	Version Version
	Opcode  byte
	Fixed   Fixed
	Src     uint8
	Imm     uint32
	Off     int16
}

// Value returns the fixed value of the field as an unsigned number.
// Offsets are returned as their 16-bit two's complement representation.
func (tmpl *Template) Value(field Field) uint32 {
	switch field {
	case FieldSrc:
		return uint32(tmpl.Src)
	case FieldImm:
		return tmpl.Imm
	case FieldOff:
		return uint32(uint16(tmpl.Off))
	}
	panic(fmt.Sprintf("bad field %v", field))
}

func (tmpl *Template) String() string {
	s := fmt.Sprintf("%v %#02x %v", tmpl.Version, tmpl.Opcode, tmpl.Name)
	for f := Field(0); f < FieldLast; f++ {
		if tmpl.Fixed.Has(f) {
			s += fmt.Sprintf(" %v=%#x", f, tmpl.Value(f))
		}
	}
	return s
}

// Templates returns a copy of the whole catalog.
func Templates() []Template {
	return append([]Template(nil), templates...)
}

// InsnSet is the part of the catalog legal at or below a max version.
// It is immutable after creation and can be shared.
type InsnSet struct {
	max       Version
	templates []Template
	values    map[byte]*[FieldLast][]uint32
}

func NewInsnSet(max Version) (*InsnSet, error) {
	if !max.Valid() {
		return nil, fmt.Errorf("%w: %v", ErrUnknownVersion, int(max))
	}
	insnset := &InsnSet{
		max:    max,
		values: make(map[byte]*[FieldLast][]uint32),
	}
	for _, tmpl := range templates {
		if tmpl.Version > max {
			continue
		}
		insnset.templates = append(insnset.templates, tmpl)
		vals := insnset.values[tmpl.Opcode]
		if vals == nil {
			vals = new([FieldLast][]uint32)
			insnset.values[tmpl.Opcode] = vals
		}
		for f := Field(0); f < FieldLast; f++ {
			if tmpl.Fixed.Has(f) {
				vals[f] = appendUnique(vals[f], tmpl.Value(f))
			}
		}
	}
	for _, vals := range insnset.values {
		for f := range vals {
			sort.Slice(vals[f], func(i, j int) bool { return vals[f][i] < vals[f][j] })
		}
	}
	return insnset, nil
}

// Eligible returns catalog templates with version <= max, in catalog order.
func Eligible(max Version) ([]Template, error) {
	insnset, err := NewInsnSet(max)
	if err != nil {
		return nil, err
	}
	return insnset.Templates(), nil
}

// ValuesFor returns the allowed values of the field for the opcode at the max version.
// The result is empty if the opcode does not fix the field.
func ValuesFor(max Version, opcode byte, field Field) ([]uint32, error) {
	insnset, err := NewInsnSet(max)
	if err != nil {
		return nil, err
	}
	return insnset.ValuesFor(opcode, field), nil
}

func (insnset *InsnSet) MaxVersion() Version {
	return insnset.max
}

func (insnset *InsnSet) Templates() []Template {
	return append([]Template(nil), insnset.templates...)
}

// ValuesFor returns the union of the fixed values of the field across all
// templates of the set sharing the opcode.
func (insnset *InsnSet) ValuesFor(opcode byte, field Field) []uint32 {
	vals := insnset.values[opcode]
	if vals == nil {
		return nil
	}
	return append([]uint32(nil), vals[field]...)
}

// Opcodes returns all distinct opcodes of the set in ascending order.
func (insnset *InsnSet) Opcodes() []byte {
	var res []byte
	for op := range insnset.values {
		res = append(res, op)
	}
	sort.Slice(res, func(i, j int) bool { return res[i] < res[j] })
	return res
}

func appendUnique(vals []uint32, v uint32) []uint32 {
	for _, v1 := range vals {
		if v1 == v {
			return vals
		}
	}
	return append(vals, v)
}

// Insn is a single concrete instruction.
type Insn struct {
	Opcode byte
	Dst    uint8 // 4 bits
	Src    uint8 // 4 bits
	Off    int16
	Imm    uint32
}

func (insn Insn) IsWideLoad() bool {
	return insn.Opcode == OpLdImmDW
}

// Encode returns the 8-byte encoding of the instruction:
// opcode, dst<<4|src, offset (big endian), immediate (big endian).
func (insn Insn) Encode() []byte {
	return insn.Append(make([]byte, 0, InsnSize))
}

func (insn Insn) Append(text []byte) []byte {
	text = append(text, insn.Opcode, insn.Dst<<4|insn.Src&0xf)
	text = binary.BigEndian.AppendUint16(text, uint16(insn.Off))
	return binary.BigEndian.AppendUint32(text, insn.Imm)
}

func (insn Insn) String() string {
	return fmt.Sprintf("op=%#02x dst=r%v src=r%v off=%v imm=%#x", insn.Opcode, insn.Dst, insn.Src, insn.Off, insn.Imm)
}

// DecodeInsn is the inverse of Insn.Encode.
func DecodeInsn(text []byte) (Insn, error) {
	if len(text) < InsnSize {
		return Insn{}, fmt.Errorf("instruction must be %v bytes, got %v", InsnSize, len(text))
	}
	return Insn{
		Opcode: text[0],
		Dst:    text[1] >> 4,
		Src:    text[1] & 0xf,
		Off:    int16(binary.BigEndian.Uint16(text[2:])),
		Imm:    binary.BigEndian.Uint32(text[4:]),
	}, nil
}

// Decode splits a generated program into instructions.
// Extension words of wide loads belong to their owner and are not returned.
func Decode(text []byte) ([]Insn, error) {
	if len(text)%InsnSize != 0 {
		return nil, fmt.Errorf("program size %v is not a multiple of %v", len(text), InsnSize)
	}
	var insns []Insn
	for pc := 0; pc < len(text); pc += InsnSize {
		insn, err := DecodeInsn(text[pc:])
		if err != nil {
			return nil, err
		}
		insns = append(insns, insn)
		if insn.IsWideLoad() {
			if pc+2*InsnSize > len(text) {
				return nil, fmt.Errorf("wide load at %v misses its extension word", pc/InsnSize)
			}
			pc += InsnSize
		}
	}
	return insns, nil
}

// WideLoads returns the number of wide loads among insns.
func WideLoads(insns []Insn) int {
	n := 0
	for _, insn := range insns {
		if insn.IsWideLoad() {
			n++
		}
	}
	return n
}

// Stats summarizes a generated program.
type Stats struct {
	Insns     int
	WideLoads int
}

// Scan walks the program and counts its instructions.
func Scan(text []byte) (Stats, error) {
	insns, err := Decode(text)
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		Insns:     len(insns),
		WideLoads: WideLoads(insns),
	}, nil
}

// CheckCatalog verifies internal consistency of the catalog.
// Tools call it once on startup before generating anything.
func CheckCatalog() error {
	return checkTemplates(templates)
}

func checkTemplates(tmpls []Template) error {
	fixed := make(map[byte]Fixed)
	seen := make(map[Template]bool)
	perVersion := make(map[Version]int)
	for _, tmpl := range tmpls {
		if !tmpl.Version.Valid() {
			return fmt.Errorf("%v: %w", tmpl.String(), ErrUnknownVersion)
		}
		if tmpl.Src > 0xf {
			return fmt.Errorf("%v: src %v does not fit into 4 bits", tmpl.String(), tmpl.Src)
		}
		if f, ok := fixed[tmpl.Opcode]; ok && f != tmpl.Fixed {
			return fmt.Errorf("%v: opcode %#02x fixes different fields in different templates",
				tmpl.String(), tmpl.Opcode)
		}
		fixed[tmpl.Opcode] = tmpl.Fixed
		key := tmpl
		key.Name = ""
		if seen[key] {
			return fmt.Errorf("%v: duplicate template", tmpl.String())
		}
		seen[key] = true
		perVersion[tmpl.Version]++
	}
	total := 0
	for v := VersionFirst; v <= VersionLast; v++ {
		total += perVersion[v]
		if total == 0 {
			return fmt.Errorf("no templates for %v", v)
		}
	}
	return nil
}
