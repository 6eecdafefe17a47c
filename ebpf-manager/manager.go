// Copyright 2015 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// ebpf-manager accepts generated eBPF programs over HTTP for a conformance run.
// Runners (tools/ebpf-runner) post programs to /run, the manager validates them,
// optionally stores them in the workdir and exports statistics.
package main

import (
	"flag"
	"fmt"
	golog "log"
	"net/http"
	"path/filepath"

	"github.com/ebpf-fuzzer/ebpf-fuzzer/pkg/config"
	"github.com/ebpf-fuzzer/ebpf-fuzzer/pkg/log"
	"github.com/ebpf-fuzzer/ebpf-fuzzer/pkg/osutil"
	"github.com/ebpf-fuzzer/ebpf-fuzzer/pkg/stat"
	"github.com/ebpf-fuzzer/ebpf-fuzzer/pkg/tool"
)

var flagConfig = flag.String("config", "", "configuration file (JSON, or YAML with .yaml extension)")

type Config struct {
	// Instance name shown on the status page.
	Name string `json:"name"`
	// TCP address to serve HTTP on (e.g. "localhost:5000").
	HTTP string `json:"http"`
	// Location of a working directory for the manager (optional).
	// Received programs are stored in workdir/programs/<id>.bpf.
	Workdir string `json:"workdir,omitempty"`
}

const defaultHTTP = ":5000"

var (
	statRequests = stat.New("requests", "Number of program submissions",
		stat.Simple, stat.Rate{}, stat.Prometheus("ebpf_manager_requests"))
	statRejected = stat.New("rejected", "Number of malformed submissions",
		stat.Simple, stat.Prometheus("ebpf_manager_rejected"))
	statInsns = stat.New("instructions", "Number of received instructions",
		stat.Prometheus("ebpf_manager_instructions"))
	statWideLoads = stat.New("wide loads", "Number of received 64-bit immediate loads",
		stat.Prometheus("ebpf_manager_wide_loads"))
	statSize = stat.New("program size", "Distribution of received program sizes in instructions",
		stat.Simple, stat.Distribution{})
)

type Manager struct {
	cfg *Config
}

func main() {
	if args := tool.Init(); len(args) != 0 {
		tool.Failf("unexpected arguments: %q", args)
	}
	log.EnableLogCaching(1000, 1<<20)
	cfg, err := loadConfig(*flagConfig)
	if err != nil {
		log.Fatalf("%v", err)
	}
	mgr := &Manager{cfg: cfg}
	log.Logf(0, "serving http on http://%v", cfg.HTTP)
	srv := &http.Server{
		Addr:     cfg.HTTP,
		Handler:  mgr.initHTTP(),
		ErrorLog: golog.New(log.VerboseWriter(1), "", 0),
	}
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("failed to listen on %v: %v", cfg.HTTP, err)
	}
}

func loadConfig(filename string) (*Config, error) {
	cfg := &Config{
		Name: "ebpf-manager",
		HTTP: defaultHTTP,
	}
	if filename != "" {
		if err := config.LoadFile(filename, cfg); err != nil {
			return nil, err
		}
	}
	if cfg.HTTP == "" {
		return nil, fmt.Errorf("config param http is empty")
	}
	if cfg.Workdir != "" {
		cfg.Workdir = osutil.Abs(cfg.Workdir)
		if err := osutil.MkdirAll(cfg.programsDir()); err != nil {
			return nil, fmt.Errorf("failed to create workdir: %w", err)
		}
	}
	return cfg, nil
}

func (cfg *Config) programsDir() string {
	return filepath.Join(cfg.Workdir, "programs")
}
