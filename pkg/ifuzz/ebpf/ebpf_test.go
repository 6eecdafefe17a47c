// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package ebpf

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCatalog(t *testing.T) {
	require.NoError(t, CheckCatalog())
	perVersion := make(map[Version]int)
	for _, tmpl := range Templates() {
		perVersion[tmpl.Version]++
	}
	for v := VersionFirst; v <= VersionLast; v++ {
		t.Logf("%v: %v templates", v, perVersion[v])
	}
}

func TestCheckTemplatesErrors(t *testing.T) {
	tests := []struct {
		name  string
		tmpls []Template
	}{
		{
			name: "bad version",
			tmpls: []Template{
				{Name: "exit", Version: 0, Opcode: OpExit},
			},
		},
		{
			name: "wide src",
			tmpls: []Template{
				{Name: "call", Version: V1, Opcode: OpCall, Fixed: FixSrc, Src: 16},
			},
		},
		{
			name: "inconsistent fixed fields",
			tmpls: []Template{
				{Name: "call0", Version: V1, Opcode: OpCall, Fixed: FixSrc, Src: 0},
				{Name: "call1", Version: V1, Opcode: OpCall, Fixed: FixImm, Imm: 1},
			},
		},
		{
			name: "duplicate",
			tmpls: []Template{
				{Name: "exit", Version: V1, Opcode: OpExit},
				{Name: "exit2", Version: V1, Opcode: OpExit},
			},
		},
		{
			name: "no v1 templates",
			tmpls: []Template{
				{Name: "exit", Version: V2, Opcode: OpExit},
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Error(t, checkTemplates(test.tmpls))
		})
	}
}

func TestParseVersion(t *testing.T) {
	for n := 1; n <= 4; n++ {
		v, err := ParseVersion(n)
		require.NoError(t, err)
		assert.Equal(t, Version(n), v)
		assert.True(t, v.Valid())
	}
	for _, n := range []int{-1, 0, 5, 9} {
		_, err := ParseVersion(n)
		assert.True(t, errors.Is(err, ErrUnknownVersion), "version %v: %v", n, err)
	}
	assert.Equal(t, "v3", V3.String())
}

func TestEligible(t *testing.T) {
	prev := 0
	for v := VersionFirst; v <= VersionLast; v++ {
		tmpls, err := Eligible(v)
		require.NoError(t, err)
		assert.Greater(t, len(tmpls), prev, "version %v adds no templates", v)
		prev = len(tmpls)
		for _, tmpl := range tmpls {
			assert.LessOrEqual(t, tmpl.Version, v, "%v", tmpl.String())
		}
	}
	all, err := Eligible(VersionLast)
	require.NoError(t, err)
	assert.Equal(t, Templates(), all)
	_, err = Eligible(Version(9))
	assert.True(t, errors.Is(err, ErrUnknownVersion))
}

func TestValuesFor(t *testing.T) {
	tests := []struct {
		max    Version
		opcode byte
		field  Field
		want   []uint32
	}{
		{V1, OpCall, FieldSrc, []uint32{0, 1}},
		{V3, OpCall, FieldSrc, []uint32{0, 1, 2}},
		{V1, OpLdImmDW, FieldSrc, []uint32{0, 1}},
		{V4, OpLdImmDW, FieldSrc, []uint32{0, 1, 2, 3, 4, 5, 6}},
		{V3, 0xbf, FieldOff, []uint32{0}},
		{V4, 0xbf, FieldOff, []uint32{0, 8, 16, 32}},
		{V4, 0xd4, FieldImm, []uint32{16, 32, 64}},
		{V4, OpExit, FieldSrc, nil},
		{V1, 0x20, FieldSrc, nil},
	}
	for _, test := range tests {
		got, err := ValuesFor(test.max, test.opcode, test.field)
		require.NoError(t, err)
		assert.Equal(t, test.want, got, "%v %#02x %v", test.max, test.opcode, test.field)
	}
	_, err := ValuesFor(Version(0), OpCall, FieldSrc)
	assert.True(t, errors.Is(err, ErrUnknownVersion))
}

func TestInsnSetOpcodes(t *testing.T) {
	v1, err := NewInsnSet(V1)
	require.NoError(t, err)
	v3, err := NewInsnSet(V3)
	require.NoError(t, err)
	assert.Equal(t, V1, v1.MaxVersion())
	has := func(insnset *InsnSet, opcode byte) bool {
		for _, op := range insnset.Opcodes() {
			if op == opcode {
				return true
			}
		}
		return false
	}
	assert.True(t, has(v1, OpExit))
	assert.True(t, has(v1, OpLdImmDW))
	assert.False(t, has(v1, 0x20), "ld_abs must not be in v1")
	assert.False(t, has(v1, 0xa5), "jlt must not be in v1")
	assert.True(t, has(v3, 0x20))
	assert.True(t, has(v3, 0x16))
	assert.False(t, has(v3, 0xd7), "bswap must not be in v3")
	ops := v3.Opcodes()
	for i := 1; i < len(ops); i++ {
		assert.Less(t, ops[i-1], ops[i])
	}
}

func TestEncode(t *testing.T) {
	insn := Insn{
		Opcode: 0xbf,
		Dst:    0x3,
		Src:    0xa,
		Off:    -2,
		Imm:    0x11223344,
	}
	text := insn.Encode()
	assert.Equal(t, []byte{0xbf, 0x3a, 0xff, 0xfe, 0x11, 0x22, 0x33, 0x44}, text)
	back, err := DecodeInsn(text)
	require.NoError(t, err)
	assert.Equal(t, insn, back)
	_, err = DecodeInsn(text[:7])
	assert.Error(t, err)
}

func TestDecode(t *testing.T) {
	var text []byte
	text = Insn{Opcode: 0xb7, Dst: 1, Imm: 5}.Append(text)
	text = Insn{Opcode: OpLdImmDW, Dst: 2, Src: 1}.Append(text)
	text = append(text, 0x18, 0x18, 0x18, 0x18, 0, 0, 0, 0)
	text = Insn{Opcode: OpExit}.Append(text)
	insns, err := Decode(text)
	require.NoError(t, err)
	require.Len(t, insns, 3)
	assert.Equal(t, byte(0xb7), insns[0].Opcode)
	assert.Equal(t, byte(OpLdImmDW), insns[1].Opcode)
	assert.Equal(t, byte(OpExit), insns[2].Opcode)
	assert.Equal(t, 1, WideLoads(insns))
	stats, err := Scan(text)
	require.NoError(t, err)
	assert.Equal(t, Stats{Insns: 3, WideLoads: 1}, stats)

	_, err = Decode(text[:len(text)-1])
	assert.Error(t, err)
	_, err = Decode(text[:2*InsnSize])
	assert.Error(t, err, "truncated extension word must be detected")
}

func TestDisassemble(t *testing.T) {
	text := []byte{
		0xb7, 0x00, 0x00, 0x00, 0x2a, 0x00, 0x00, 0x00, // r0 = 42
		0x95, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, // exit
	}
	lines := Disassemble(text)
	require.Len(t, lines, 2)
	for _, line := range lines {
		assert.NotContains(t, line, "invalid")
	}

	// Wide load without its extension word.
	lines = Disassemble([]byte{0x18, 0, 0, 0, 0, 0, 0, 0})
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "invalid")
	assert.Nil(t, Disassemble(nil))
}
