// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// ebpf-gen generates random eBPF programs in the bpf_conformance text format.
//
// Usage:
//
//	ebpf-gen --count 100 --output progs/%d.data --max-cpu-version 4
//
// Programs are printed to stdout unless --output names a file. In the output name
// %d is replaced with the program index, and a .xz suffix produces compressed files.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ebpf-fuzzer/ebpf-fuzzer/pkg/conformance"
	"github.com/ebpf-fuzzer/ebpf-fuzzer/pkg/ifuzz"
	"github.com/ebpf-fuzzer/ebpf-fuzzer/pkg/ifuzz/ebpf"
	"github.com/ebpf-fuzzer/ebpf-fuzzer/pkg/log"
	"github.com/ebpf-fuzzer/ebpf-fuzzer/pkg/osutil"
	"github.com/ebpf-fuzzer/ebpf-fuzzer/pkg/stat"
	"github.com/ebpf-fuzzer/ebpf-fuzzer/pkg/tool"
)

var (
	flagMinSize = flag.Int("min-size", 3, "minimal number of instructions in a program")
	flagMaxSize = flag.Int("max-size", 40, "number of instructions in a program is below this value")
	flagCount   = flag.Int("count", 1, "number of programs to generate")
	flagOutput  = flag.String("output", "-", "output file (- for stdout), %d is replaced with the program index")
	flagVersion = flag.Int("max-cpu-version", int(ebpf.V3), "newest eBPF ISA version to use (1-4)")
	flagMode    = flag.String("mode", ifuzz.ModeTemplate.String(), "generation mode (template, legacy)")
	flagSeed    = flag.Int64("seed", -1, "prng seed (-1 for time based)")
)

var (
	statPrograms = stat.New("programs", "Number of generated programs", stat.Console)
	statInsns    = stat.New("instructions", "Number of generated instructions", stat.Console)
	statWide     = stat.New("wide loads", "Number of generated 64-bit immediate loads", stat.Console)
	statSize     = stat.New("program size", "Distribution of program sizes in instructions",
		stat.Console, stat.Distribution{})
)

const stdout = "-"

func main() {
	if args := tool.Init(); len(args) != 0 {
		tool.Failf("unexpected arguments: %q", args)
	}
	opts, err := parseOptions(*flagMinSize, *flagMaxSize, *flagCount, *flagVersion, *flagMode, *flagOutput)
	if err != nil {
		tool.Fail(err)
	}
	if err := ebpf.CheckCatalog(); err != nil {
		tool.Failf("broken instruction catalog: %v", err)
	}
	seed := *flagSeed
	if seed == -1 {
		seed = time.Now().UnixNano()
	}
	log.Logf(1, "generating %v programs of %v..%v instructions (%v, %v), seed=%v",
		opts.count, opts.minSize, opts.maxSize-1, opts.mode, opts.version, seed)
	if err := generate(rand.New(rand.NewSource(seed)), opts, os.Stdout); err != nil {
		tool.Fail(err)
	}
	for _, ui := range stat.Collect(stat.Console) {
		log.Logf(1, "%-16v: %v", ui.Name, ui.Value)
	}
}

type options struct {
	minSize int
	maxSize int // exclusive
	count   int
	version ebpf.Version
	mode    ifuzz.Mode
	output  string
}

var errConfig = errors.New("bad configuration")

func parseOptions(minSize, maxSize, count, version int, mode, output string) (*options, error) {
	opts := &options{
		minSize: minSize,
		maxSize: maxSize,
		count:   count,
		output:  output,
	}
	var err error
	if opts.version, err = ebpf.ParseVersion(version); err != nil {
		return nil, err
	}
	if opts.mode, err = ifuzz.ParseMode(mode); err != nil {
		return nil, err
	}
	if minSize < 1 {
		return nil, fmt.Errorf("%w: --min-size must be at least 1, got %v", errConfig, minSize)
	}
	if maxSize <= minSize {
		return nil, fmt.Errorf("%w: --max-size (%v) must be above --min-size (%v)", errConfig, maxSize, minSize)
	}
	if count < 0 {
		return nil, fmt.Errorf("%w: negative --count %v", errConfig, count)
	}
	if output == "" {
		return nil, fmt.Errorf("%w: empty --output", errConfig)
	}
	return opts, nil
}

// generate produces all programs in order. Program i is complete before
// any random draw for program i+1 happens.
func generate(r *rand.Rand, opts *options, w io.Writer) error {
	for i := 0; i < opts.count; i++ {
		cfg := &ifuzz.Config{
			Mode:       opts.mode,
			Len:        opts.minSize + r.Intn(opts.maxSize-opts.minSize),
			MaxVersion: opts.version,
		}
		text, err := ifuzz.Generate(cfg, r)
		if err != nil {
			return err
		}
		account(cfg, text)
		out := conformance.Format(text, ifuzz.Preview(cfg, text))
		if opts.output == stdout {
			if _, err := w.Write(out); err != nil {
				return err
			}
			continue
		}
		file := outputFile(opts.output, i)
		if err := osutil.WriteFile(file, out); err != nil {
			return fmt.Errorf("failed to write program %v: %w", i, err)
		}
		log.Logf(2, "program %v: %v instructions -> %v", i, cfg.Len, file)
	}
	return nil
}

func account(cfg *ifuzz.Config, text []byte) {
	statPrograms.Add(1)
	statInsns.Add(cfg.Len)
	statSize.Add(cfg.Len)
	if cfg.Mode != ifuzz.ModeTemplate {
		return
	}
	if stats, err := ebpf.Scan(text); err == nil {
		statWide.Add(stats.WideLoads)
	} else {
		log.Logf(0, "failed to scan generated program: %v", err)
	}
}

func outputFile(pattern string, index int) string {
	return strings.ReplaceAll(pattern, "%d", strconv.Itoa(index))
}
