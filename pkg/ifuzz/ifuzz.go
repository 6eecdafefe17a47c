// Copyright 2017 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package ifuzz generates eBPF programs for conformance testing.
// The actual instruction catalog lives in the ebpf subpackage,
// this package selects the generation strategy.
package ifuzz

import (
	"errors"
	"fmt"

	"github.com/ebpf-fuzzer/ebpf-fuzzer/pkg/ifuzz/ebpf"
)

type Mode int

const (
	// ModeTemplate draws instructions from the version-gated catalog.
	ModeTemplate Mode = iota
	// ModeLegacy writes random opcodes over random bytes.
	ModeLegacy
	ModeLast
)

var modeNames = [ModeLast]string{
	ModeTemplate: "template",
	ModeLegacy:   "legacy",
}

var ErrUnknownMode = errors.New("unknown generation mode")

func (mode Mode) String() string {
	if mode < 0 || mode >= ModeLast {
		return fmt.Sprintf("mode(%d)", int(mode))
	}
	return modeNames[mode]
}

func ParseMode(name string) (Mode, error) {
	for mode, name1 := range modeNames {
		if name == name1 {
			return Mode(mode), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, name)
}

type Config struct {
	Mode       Mode         // one of ModeXXX
	Len        int          // number of instructions to generate
	MaxVersion ebpf.Version // newest ISA version instructions may come from (ModeTemplate only)
}

func (cfg *Config) Validate() error {
	if cfg.Mode < 0 || cfg.Mode >= ModeLast {
		return fmt.Errorf("%w: %v", ErrUnknownMode, int(cfg.Mode))
	}
	if cfg.Len < 0 {
		return fmt.Errorf("negative program length %v", cfg.Len)
	}
	if cfg.Mode == ModeTemplate && !cfg.MaxVersion.Valid() {
		return fmt.Errorf("%w: %v", ebpf.ErrUnknownVersion, int(cfg.MaxVersion))
	}
	return nil
}

// Generate generates a single program according to cfg.
func Generate(cfg *Config, r ebpf.Rand) ([]byte, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Mode {
	case ModeTemplate:
		return ebpf.Assemble(r, cfg.Len, cfg.MaxVersion)
	case ModeLegacy:
		return ebpf.AssembleLegacy(r, cfg.Len)
	}
	panic(fmt.Sprintf("unhandled mode %v", cfg.Mode))
}

// Preview returns disassembly of the program if the mode supports it.
// Template mode uses its own field packing that a disassembler would misread, so it has no preview.
func Preview(cfg *Config, text []byte) []string {
	if cfg.Mode != ModeLegacy {
		return nil
	}
	return ebpf.Disassemble(text)
}
