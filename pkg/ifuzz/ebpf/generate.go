// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package ebpf

import "fmt"

// Rand is the source of randomness for generation. *math/rand.Rand implements it.
// Generation never reads global random state, so a seeded source gives reproducible programs.
type Rand interface {
	Intn(n int) int
	Int63n(n int64) int64
	Read(p []byte) (int, error)
}

// Generate materializes a random instruction from the template.
// Free fields get uniformly random values. Fields fixed by the opcode are drawn
// from the union of fixed values of all templates in the set sharing the opcode.
func (insnset *InsnSet) Generate(r Rand, tmpl Template) Insn {
	insn := Insn{
		Opcode: tmpl.Opcode,
		Dst:    uint8(r.Intn(16)),
	}
	insn.Src = uint8(r.Intn(16))
	insn.Off = int16(uint16(r.Intn(1 << 16)))
	insn.Imm = uint32(r.Int63n(1 << 32))
	if v, ok := insnset.fixedValue(r, &tmpl, FieldSrc); ok {
		insn.Src = uint8(v)
	}
	if v, ok := insnset.fixedValue(r, &tmpl, FieldImm); ok {
		insn.Imm = v
	}
	if v, ok := insnset.fixedValue(r, &tmpl, FieldOff); ok {
		insn.Off = int16(uint16(v))
	}
	return insn
}

func (insnset *InsnSet) fixedValue(r Rand, tmpl *Template, field Field) (uint32, bool) {
	if vals := insnset.values[tmpl.Opcode]; vals != nil && len(vals[field]) != 0 {
		return vals[field][r.Intn(len(vals[field]))], true
	}
	// The template does not come from this set (e.g. a newer version).
	if tmpl.Fixed.Has(field) {
		return tmpl.Value(field), true
	}
	return 0, false
}

// Assemble generates a program of exactly size instructions.
// Each wide load is followed by an extension word of random bytes,
// so the result is 8*size + 8*(number of wide loads) bytes long.
func (insnset *InsnSet) Assemble(r Rand, size int) ([]byte, error) {
	text := make([]byte, 0, size*InsnSize)
	for i := 0; i < size; i++ {
		insn := insnset.Generate(r, insnset.templates[r.Intn(len(insnset.templates))])
		text = insn.Append(text)
		if insn.IsWideLoad() {
			var ext [InsnSize]byte
			if _, err := r.Read(ext[:]); err != nil {
				return nil, fmt.Errorf("failed to generate extension word: %w", err)
			}
			text = append(text, ext[:]...)
		}
	}
	return text, nil
}

// Assemble is a shortcut for NewInsnSet(max) followed by InsnSet.Assemble.
func Assemble(r Rand, size int, max Version) ([]byte, error) {
	insnset, err := NewInsnSet(max)
	if err != nil {
		return nil, err
	}
	return insnset.Assemble(r, size)
}

// AssembleLegacy fills size instruction slots with random bytes and then
// overwrites every opcode byte with a random opcode from legacyOpcodes.
// Operand fields are not constrained and there is no version gating.
// The last slot never holds a wide load since it would have no extension word.
func AssembleLegacy(r Rand, size int) ([]byte, error) {
	if size <= 0 {
		return nil, nil
	}
	text := make([]byte, size*InsnSize)
	if _, err := r.Read(text); err != nil {
		return nil, fmt.Errorf("failed to generate operands: %w", err)
	}
	for pc := 0; pc < len(text); pc += InsnSize {
		text[pc] = legacyOpcodes[r.Intn(len(legacyOpcodes))]
	}
	if last := len(text) - InsnSize; text[last] == OpLdImmDW {
		text[last] = OpExit
	}
	return text, nil
}

// legacyOpcodes is the flat opcode list of the legacy generation mode.
// Duplicates are intentional: they make the entries more likely.
var legacyOpcodes = [...]byte{
	// LD.
	0x30, 0x28, 0x20, 0x38, // abs b/h/w/dw
	0x50, 0x48, 0x40, 0x58, // ind b/h/w/dw
	0x18,
	0x71, 0x69, 0x61, 0x79,
	0x18,
	// LDX.
	0x71, 0x69, 0x61, 0x79,
	// ST.
	0x72, 0x6a, 0x62, 0x7a,
	// STX.
	0x73, 0x6b, 0x63, 0x7b,
	0xc3, 0xdb, // xadd
	// ALU.
	0x04, 0x0c, 0x14, 0x1c, 0x24, 0x2c, 0x34, 0x3c,
	0x44, 0x4c, 0x54, 0x5c, 0x64, 0x6c, 0x74, 0x7c,
	0x84,
	0x94, 0x9c, 0xa4, 0xac, 0xb4, 0xbc, 0xc4, 0xcc,
	0xd4, 0xdc, // le, be
	// ALU64.
	0x07, 0x0f, 0x17, 0x1f, 0x27, 0x2f, 0x37, 0x3f,
	0x47, 0x4f, 0x57, 0x5f, 0x67, 0x6f, 0x77, 0x7f,
	0x87,
	0x97, 0x9f, 0xa7, 0xaf, 0xb7, 0xbf, 0xc7, 0xcf,
	// JMP.
	0x05,
	0x15, 0x1d, 0x25, 0x2d, 0x35, 0x3d, 0xa5, 0xad, 0xb5, 0xbd,
	0x45, 0x4d, 0x55, 0x5d, 0x65, 0x6d, 0x75, 0x7d, 0xc5, 0xcd, 0xd5, 0xdd,
	0x85, 0x8d, 0x95, // call, tail call, exit
	// JMP32.
	0x16, 0x1e, 0x26, 0x2e, 0x36, 0x3e, 0xa6, 0xae, 0xb6, 0xbe,
	0x46, 0x4e, 0x56, 0x5e, 0x66, 0x6e, 0x76, 0x7e, 0xc6, 0xce, 0xd6, 0xde,
}
