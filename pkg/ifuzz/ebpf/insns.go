// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package ebpf

// templates is the instruction catalog, one row per legal opcode/field combination.
// Rows are only ever appended; a row is never changed once a version ships.
var templates = []Template{
	// v1: base instruction set.
	// ALU (32-bit) and ALU64.
	{Name: "add32_imm", Version: V1, Opcode: 0x04},
	{Name: "add32_reg", Version: V1, Opcode: 0x0c},
	{Name: "sub32_imm", Version: V1, Opcode: 0x14},
	{Name: "sub32_reg", Version: V1, Opcode: 0x1c},
	{Name: "mul32_imm", Version: V1, Opcode: 0x24},
	{Name: "mul32_reg", Version: V1, Opcode: 0x2c},
	{Name: "div32_imm", Version: V1, Opcode: 0x34, Fixed: FixOff, Off: 0},
	{Name: "div32_reg", Version: V1, Opcode: 0x3c, Fixed: FixOff, Off: 0},
	{Name: "or32_imm", Version: V1, Opcode: 0x44},
	{Name: "or32_reg", Version: V1, Opcode: 0x4c},
	{Name: "and32_imm", Version: V1, Opcode: 0x54},
	{Name: "and32_reg", Version: V1, Opcode: 0x5c},
	{Name: "lsh32_imm", Version: V1, Opcode: 0x64},
	{Name: "lsh32_reg", Version: V1, Opcode: 0x6c},
	{Name: "rsh32_imm", Version: V1, Opcode: 0x74},
	{Name: "rsh32_reg", Version: V1, Opcode: 0x7c},
	{Name: "neg32", Version: V1, Opcode: 0x84},
	{Name: "mod32_imm", Version: V1, Opcode: 0x94, Fixed: FixOff, Off: 0},
	{Name: "mod32_reg", Version: V1, Opcode: 0x9c, Fixed: FixOff, Off: 0},
	{Name: "xor32_imm", Version: V1, Opcode: 0xa4},
	{Name: "xor32_reg", Version: V1, Opcode: 0xac},
	{Name: "mov32_imm", Version: V1, Opcode: 0xb4},
	{Name: "mov32_reg", Version: V1, Opcode: 0xbc, Fixed: FixOff, Off: 0},
	{Name: "arsh32_imm", Version: V1, Opcode: 0xc4},
	{Name: "arsh32_reg", Version: V1, Opcode: 0xcc},
	{Name: "add_imm", Version: V1, Opcode: 0x07},
	{Name: "add_reg", Version: V1, Opcode: 0x0f},
	{Name: "sub_imm", Version: V1, Opcode: 0x17},
	{Name: "sub_reg", Version: V1, Opcode: 0x1f},
	{Name: "mul_imm", Version: V1, Opcode: 0x27},
	{Name: "mul_reg", Version: V1, Opcode: 0x2f},
	{Name: "div_imm", Version: V1, Opcode: 0x37, Fixed: FixOff, Off: 0},
	{Name: "div_reg", Version: V1, Opcode: 0x3f, Fixed: FixOff, Off: 0},
	{Name: "or_imm", Version: V1, Opcode: 0x47},
	{Name: "or_reg", Version: V1, Opcode: 0x4f},
	{Name: "and_imm", Version: V1, Opcode: 0x57},
	{Name: "and_reg", Version: V1, Opcode: 0x5f},
	{Name: "lsh_imm", Version: V1, Opcode: 0x67},
	{Name: "lsh_reg", Version: V1, Opcode: 0x6f},
	{Name: "rsh_imm", Version: V1, Opcode: 0x77},
	{Name: "rsh_reg", Version: V1, Opcode: 0x7f},
	{Name: "neg", Version: V1, Opcode: 0x87},
	{Name: "mod_imm", Version: V1, Opcode: 0x97, Fixed: FixOff, Off: 0},
	{Name: "mod_reg", Version: V1, Opcode: 0x9f, Fixed: FixOff, Off: 0},
	{Name: "xor_imm", Version: V1, Opcode: 0xa7},
	{Name: "xor_reg", Version: V1, Opcode: 0xaf},
	{Name: "mov_imm", Version: V1, Opcode: 0xb7},
	{Name: "mov_reg", Version: V1, Opcode: 0xbf, Fixed: FixOff, Off: 0},
	{Name: "arsh_imm", Version: V1, Opcode: 0xc7},
	{Name: "arsh_reg", Version: V1, Opcode: 0xcf},
	// Byte swap, imm selects the width.
	{Name: "le16", Version: V1, Opcode: 0xd4, Fixed: FixImm, Imm: 16},
	{Name: "le32", Version: V1, Opcode: 0xd4, Fixed: FixImm, Imm: 32},
	{Name: "le64", Version: V1, Opcode: 0xd4, Fixed: FixImm, Imm: 64},
	{Name: "be16", Version: V1, Opcode: 0xdc, Fixed: FixImm, Imm: 16},
	{Name: "be32", Version: V1, Opcode: 0xdc, Fixed: FixImm, Imm: 32},
	{Name: "be64", Version: V1, Opcode: 0xdc, Fixed: FixImm, Imm: 64},
	// Loads and stores.
	{Name: "lddw", Version: V1, Opcode: 0x18, Fixed: FixSrc, Src: 0},
	{Name: "lddw_map_fd", Version: V1, Opcode: 0x18, Fixed: FixSrc, Src: 1},
	{Name: "ldxw", Version: V1, Opcode: 0x61},
	{Name: "ldxh", Version: V1, Opcode: 0x69},
	{Name: "ldxb", Version: V1, Opcode: 0x71},
	{Name: "ldxdw", Version: V1, Opcode: 0x79},
	{Name: "stw", Version: V1, Opcode: 0x62},
	{Name: "sth", Version: V1, Opcode: 0x6a},
	{Name: "stb", Version: V1, Opcode: 0x72},
	{Name: "stdw", Version: V1, Opcode: 0x7a},
	{Name: "stxw", Version: V1, Opcode: 0x63},
	{Name: "stxh", Version: V1, Opcode: 0x6b},
	{Name: "stxb", Version: V1, Opcode: 0x73},
	{Name: "stxdw", Version: V1, Opcode: 0x7b},
	{Name: "lock_add32", Version: V1, Opcode: 0xc3, Fixed: FixImm, Imm: 0},
	{Name: "lock_add64", Version: V1, Opcode: 0xdb, Fixed: FixImm, Imm: 0},
	// Jumps.
	{Name: "ja", Version: V1, Opcode: 0x05},
	{Name: "jeq_imm", Version: V1, Opcode: 0x15},
	{Name: "jeq_reg", Version: V1, Opcode: 0x1d},
	{Name: "jgt_imm", Version: V1, Opcode: 0x25},
	{Name: "jgt_reg", Version: V1, Opcode: 0x2d},
	{Name: "jge_imm", Version: V1, Opcode: 0x35},
	{Name: "jge_reg", Version: V1, Opcode: 0x3d},
	{Name: "jset_imm", Version: V1, Opcode: 0x45},
	{Name: "jset_reg", Version: V1, Opcode: 0x4d},
	{Name: "jne_imm", Version: V1, Opcode: 0x55},
	{Name: "jne_reg", Version: V1, Opcode: 0x5d},
	{Name: "jsgt_imm", Version: V1, Opcode: 0x65},
	{Name: "jsgt_reg", Version: V1, Opcode: 0x6d},
	{Name: "jsge_imm", Version: V1, Opcode: 0x75},
	{Name: "jsge_reg", Version: V1, Opcode: 0x7d},
	{Name: "call_helper", Version: V1, Opcode: 0x85, Fixed: FixSrc, Src: 0},
	{Name: "call_local", Version: V1, Opcode: 0x85, Fixed: FixSrc, Src: 1},
	{Name: "exit", Version: V1, Opcode: 0x95},

	// v2: new conditional jumps.
	{Name: "jlt_imm", Version: V2, Opcode: 0xa5},
	{Name: "jlt_reg", Version: V2, Opcode: 0xad},
	{Name: "jle_imm", Version: V2, Opcode: 0xb5},
	{Name: "jle_reg", Version: V2, Opcode: 0xbd},
	{Name: "jslt_imm", Version: V2, Opcode: 0xc5},
	{Name: "jslt_reg", Version: V2, Opcode: 0xcd},
	{Name: "jsle_imm", Version: V2, Opcode: 0xd5},
	{Name: "jsle_reg", Version: V2, Opcode: 0xdd},

	// v3: JMP32 class.
	{Name: "jeq32_imm", Version: V3, Opcode: 0x16},
	{Name: "jeq32_reg", Version: V3, Opcode: 0x1e},
	{Name: "jgt32_imm", Version: V3, Opcode: 0x26},
	{Name: "jgt32_reg", Version: V3, Opcode: 0x2e},
	{Name: "jge32_imm", Version: V3, Opcode: 0x36},
	{Name: "jge32_reg", Version: V3, Opcode: 0x3e},
	{Name: "jset32_imm", Version: V3, Opcode: 0x46},
	{Name: "jset32_reg", Version: V3, Opcode: 0x4e},
	{Name: "jne32_imm", Version: V3, Opcode: 0x56},
	{Name: "jne32_reg", Version: V3, Opcode: 0x5e},
	{Name: "jsgt32_imm", Version: V3, Opcode: 0x66},
	{Name: "jsgt32_reg", Version: V3, Opcode: 0x6e},
	{Name: "jsge32_imm", Version: V3, Opcode: 0x76},
	{Name: "jsge32_reg", Version: V3, Opcode: 0x7e},
	{Name: "jlt32_imm", Version: V3, Opcode: 0xa6},
	{Name: "jlt32_reg", Version: V3, Opcode: 0xae},
	{Name: "jle32_imm", Version: V3, Opcode: 0xb6},
	{Name: "jle32_reg", Version: V3, Opcode: 0xbe},
	{Name: "jslt32_imm", Version: V3, Opcode: 0xc6},
	{Name: "jslt32_reg", Version: V3, Opcode: 0xce},
	{Name: "jsle32_imm", Version: V3, Opcode: 0xd6},
	{Name: "jsle32_reg", Version: V3, Opcode: 0xde},
	// Atomic operations, imm selects the operation.
	{Name: "atomic32_fetch_add", Version: V3, Opcode: 0xc3, Fixed: FixImm, Imm: 0x01},
	{Name: "atomic32_or", Version: V3, Opcode: 0xc3, Fixed: FixImm, Imm: 0x40},
	{Name: "atomic32_fetch_or", Version: V3, Opcode: 0xc3, Fixed: FixImm, Imm: 0x41},
	{Name: "atomic32_and", Version: V3, Opcode: 0xc3, Fixed: FixImm, Imm: 0x50},
	{Name: "atomic32_fetch_and", Version: V3, Opcode: 0xc3, Fixed: FixImm, Imm: 0x51},
	{Name: "atomic32_xor", Version: V3, Opcode: 0xc3, Fixed: FixImm, Imm: 0xa0},
	{Name: "atomic32_fetch_xor", Version: V3, Opcode: 0xc3, Fixed: FixImm, Imm: 0xa1},
	{Name: "atomic32_xchg", Version: V3, Opcode: 0xc3, Fixed: FixImm, Imm: 0xe1},
	{Name: "atomic32_cmpxchg", Version: V3, Opcode: 0xc3, Fixed: FixImm, Imm: 0xf1},
	{Name: "atomic64_fetch_add", Version: V3, Opcode: 0xdb, Fixed: FixImm, Imm: 0x01},
	{Name: "atomic64_or", Version: V3, Opcode: 0xdb, Fixed: FixImm, Imm: 0x40},
	{Name: "atomic64_fetch_or", Version: V3, Opcode: 0xdb, Fixed: FixImm, Imm: 0x41},
	{Name: "atomic64_and", Version: V3, Opcode: 0xdb, Fixed: FixImm, Imm: 0x50},
	{Name: "atomic64_fetch_and", Version: V3, Opcode: 0xdb, Fixed: FixImm, Imm: 0x51},
	{Name: "atomic64_xor", Version: V3, Opcode: 0xdb, Fixed: FixImm, Imm: 0xa0},
	{Name: "atomic64_fetch_xor", Version: V3, Opcode: 0xdb, Fixed: FixImm, Imm: 0xa1},
	{Name: "atomic64_xchg", Version: V3, Opcode: 0xdb, Fixed: FixImm, Imm: 0xe1},
	{Name: "atomic64_cmpxchg", Version: V3, Opcode: 0xdb, Fixed: FixImm, Imm: 0xf1},
	{Name: "call_helper_btf", Version: V3, Opcode: 0x85, Fixed: FixSrc, Src: 2},
	{Name: "lddw_map_value", Version: V3, Opcode: 0x18, Fixed: FixSrc, Src: 2},
	// Legacy packet access.
	{Name: "ldabsw", Version: V3, Opcode: 0x20},
	{Name: "ldabsh", Version: V3, Opcode: 0x28},
	{Name: "ldabsb", Version: V3, Opcode: 0x30},
	{Name: "ldindw", Version: V3, Opcode: 0x40},
	{Name: "ldindh", Version: V3, Opcode: 0x48},
	{Name: "ldindb", Version: V3, Opcode: 0x50},

	// v4: signed division, sign extension and friends.
	{Name: "sdiv32_imm", Version: V4, Opcode: 0x34, Fixed: FixOff, Off: 1},
	{Name: "sdiv32_reg", Version: V4, Opcode: 0x3c, Fixed: FixOff, Off: 1},
	{Name: "smod32_imm", Version: V4, Opcode: 0x94, Fixed: FixOff, Off: 1},
	{Name: "smod32_reg", Version: V4, Opcode: 0x9c, Fixed: FixOff, Off: 1},
	{Name: "sdiv_imm", Version: V4, Opcode: 0x37, Fixed: FixOff, Off: 1},
	{Name: "sdiv_reg", Version: V4, Opcode: 0x3f, Fixed: FixOff, Off: 1},
	{Name: "smod_imm", Version: V4, Opcode: 0x97, Fixed: FixOff, Off: 1},
	{Name: "smod_reg", Version: V4, Opcode: 0x9f, Fixed: FixOff, Off: 1},
	{Name: "movsx32_8", Version: V4, Opcode: 0xbc, Fixed: FixOff, Off: 8},
	{Name: "movsx32_16", Version: V4, Opcode: 0xbc, Fixed: FixOff, Off: 16},
	{Name: "movsx_8", Version: V4, Opcode: 0xbf, Fixed: FixOff, Off: 8},
	{Name: "movsx_16", Version: V4, Opcode: 0xbf, Fixed: FixOff, Off: 16},
	{Name: "movsx_32", Version: V4, Opcode: 0xbf, Fixed: FixOff, Off: 32},
	{Name: "bswap16", Version: V4, Opcode: 0xd7, Fixed: FixImm, Imm: 16},
	{Name: "bswap32", Version: V4, Opcode: 0xd7, Fixed: FixImm, Imm: 32},
	{Name: "bswap64", Version: V4, Opcode: 0xd7, Fixed: FixImm, Imm: 64},
	{Name: "ldxsw", Version: V4, Opcode: 0x81},
	{Name: "ldxsh", Version: V4, Opcode: 0x89},
	{Name: "ldxsb", Version: V4, Opcode: 0x91},
	{Name: "gotol", Version: V4, Opcode: 0x06, Fixed: FixOff, Off: 0},
	{Name: "lddw_var_addr", Version: V4, Opcode: 0x18, Fixed: FixSrc, Src: 3},
	{Name: "lddw_code_addr", Version: V4, Opcode: 0x18, Fixed: FixSrc, Src: 4},
	{Name: "lddw_map_idx", Version: V4, Opcode: 0x18, Fixed: FixSrc, Src: 5},
	{Name: "lddw_map_idx_value", Version: V4, Opcode: 0x18, Fixed: FixSrc, Src: 6},
}
