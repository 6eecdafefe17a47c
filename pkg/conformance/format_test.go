// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package conformance

import (
	"math/rand"
	"testing"

	"github.com/ebpf-fuzzer/ebpf-fuzzer/pkg/ifuzz/ebpf"
	"github.com/ebpf-fuzzer/ebpf-fuzzer/pkg/testutil"
	"github.com/google/go-cmp/cmp"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	raw := []byte{
		0xb7, 0x01, 0x00, 0x00, 0x00, 0x00, 0x00, 0x2a,
		0x18, 0x21, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
		0x95, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
	}
	tests := []struct {
		name string
		raw  []byte
		asm  []string
		want string
	}{
		{
			name: "raw",
			raw:  raw,
			want: `-- raw
0x2a000000000001b7
0x0000000000002118
0x0807060504030201
0x0000000000000095
-- result
0x0
`,
		},
		{
			name: "asm",
			raw:  raw[24:],
			asm:  []string{"Exit"},
			want: `-- asm
Exit
-- raw
0x0000000000000095
-- result
0x0
`,
		},
		{
			name: "empty asm",
			raw:  raw[24:],
			asm:  []string{},
			want: `-- asm
-- raw
0x0000000000000095
-- result
0x0
`,
		},
		{
			name: "empty",
			want: `-- raw
-- result
0x0
`,
		},
		{
			name: "partial word",
			raw:  raw[:11],
			want: `-- raw
0x2a000000000001b7
-- result
0x0
`,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := string(Format(test.raw, test.asm))
			if got != test.want {
				dmp := diffmatchpatch.New()
				t.Fatalf("wrong output:\n%s", dmp.DiffPrettyText(dmp.DiffMain(test.want, got, false)))
			}
		})
	}
}

func TestParse(t *testing.T) {
	r := rand.New(testutil.RandSource(t))
	for i := 0; i < testutil.IterCount()/10; i++ {
		raw, err := ebpf.Assemble(r, 1+r.Intn(39), ebpf.VersionLast)
		require.NoError(t, err)
		var asm []string
		if i%2 == 0 {
			asm = ebpf.Disassemble(raw)
		}
		p, err := Parse(Format(raw, asm))
		require.NoError(t, err)
		want := &Program{Asm: asm, Raw: raw, Result: Result}
		if diff := cmp.Diff(want, p); diff != "" {
			t.Fatal(diff)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"no raw", "-- result\n0x0\n"},
		{"unknown section", "-- raw\n-- mem\n"},
		{"duplicate section", "-- raw\n0x0\n-- raw\n"},
		{"outside section", "0x95\n-- raw\n"},
		{"no prefix", "-- raw\n95\n"},
		{"bad hex", "-- raw\n0xzz\n"},
		{"too long", "-- raw\n0x00000000000000950\n"},
		{"two results", "-- raw\n-- result\n0x0\n0x1\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse([]byte(test.text))
			assert.Error(t, err)
		})
	}
}

func TestParseLenient(t *testing.T) {
	p, err := Parse([]byte("\n-- raw\r\n0x95\r\n\n-- result\n\n0x0\n"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x95, 0, 0, 0, 0, 0, 0, 0}, p.Raw)
	assert.Equal(t, "0x0", p.Result)
	assert.Nil(t, p.Asm)
}
