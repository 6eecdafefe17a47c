// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package ebpf

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/cilium/ebpf/asm"
)

// Disassemble returns one human-readable line per instruction of the text.
// Text is decoded as native little-endian eBPF, which is what the legacy mode produces.
// A trailing undecodable instruction results in a final "invalid: ..." line.
func Disassemble(text []byte) []string {
	var lines []string
	r := bytes.NewReader(text)
	for r.Len() > 0 {
		var ins asm.Instruction
		if _, err := ins.Unmarshal(r, binary.LittleEndian); err != nil {
			if errors.Is(err, io.EOF) {
				err = io.ErrUnexpectedEOF
			}
			lines = append(lines, fmt.Sprintf("invalid: %v", err))
			break
		}
		lines = append(lines, fmt.Sprint(ins))
	}
	return lines
}
