// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package conformance reads and writes programs in the text format of the
// bpf_conformance test runner:
//
//	-- asm
//	<disassembly, optional>
//	-- raw
//	0x<64-bit little-endian instruction word>
//	-- result
//	0x0
package conformance

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
)

const (
	SectionAsm    = "asm"
	SectionRaw    = "raw"
	SectionResult = "result"

	// Result is the expected result emitted for every generated program.
	Result = "0x0"

	wordSize = 8
)

type Program struct {
	Asm    []string
	Raw    []byte
	Result string
}

// Format renders raw program text. The asm section is emitted only if asm is not nil.
// Trailing bytes that do not form a whole word are dropped.
func Format(raw []byte, asm []string) []byte {
	buf := new(bytes.Buffer)
	if asm != nil {
		fmt.Fprintf(buf, "-- %v\n", SectionAsm)
		for _, line := range asm {
			fmt.Fprintf(buf, "%v\n", line)
		}
	}
	fmt.Fprintf(buf, "-- %v\n", SectionRaw)
	for i := 0; i+wordSize <= len(raw); i += wordSize {
		fmt.Fprintf(buf, "0x%016x\n", binary.LittleEndian.Uint64(raw[i:]))
	}
	fmt.Fprintf(buf, "-- %v\n%v\n", SectionResult, Result)
	return buf.Bytes()
}

// Parse is the inverse of Format.
func Parse(text []byte) (*Program, error) {
	p := new(Program)
	section := ""
	seen := make(map[string]bool)
	s := bufio.NewScanner(bytes.NewReader(text))
	for lineNo := 1; s.Scan(); lineNo++ {
		line := strings.TrimRight(s.Text(), "\r")
		if name, ok := strings.CutPrefix(line, "-- "); ok {
			switch name {
			case SectionAsm, SectionRaw, SectionResult:
			default:
				return nil, fmt.Errorf("line %v: unknown section %q", lineNo, name)
			}
			if seen[name] {
				return nil, fmt.Errorf("line %v: duplicate section %q", lineNo, name)
			}
			seen[name] = true
			section = name
			if name == SectionAsm {
				p.Asm = []string{}
			}
			continue
		}
		switch section {
		case SectionAsm:
			p.Asm = append(p.Asm, line)
		case SectionRaw:
			if line == "" {
				continue
			}
			word, err := parseWord(line)
			if err != nil {
				return nil, fmt.Errorf("line %v: %w", lineNo, err)
			}
			p.Raw = binary.LittleEndian.AppendUint64(p.Raw, word)
		case SectionResult:
			if line == "" {
				continue
			}
			if p.Result != "" {
				return nil, fmt.Errorf("line %v: more than one result", lineNo)
			}
			p.Result = line
		default:
			if strings.TrimSpace(line) != "" {
				return nil, fmt.Errorf("line %v: text outside of a section", lineNo)
			}
		}
	}
	if err := s.Err(); err != nil {
		return nil, err
	}
	if !seen[SectionRaw] {
		return nil, fmt.Errorf("no %q section", SectionRaw)
	}
	return p, nil
}

func parseWord(line string) (uint64, error) {
	hex, ok := strings.CutPrefix(line, "0x")
	if !ok || hex == "" || len(hex) > 16 {
		return 0, fmt.Errorf("bad raw word %q", line)
	}
	v, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("bad raw word %q: %w", line, err)
	}
	return v, nil
}
