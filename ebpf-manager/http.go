// Copyright 2015 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"text/tabwriter"

	"github.com/ebpf-fuzzer/ebpf-fuzzer/pkg/conformance"
	"github.com/ebpf-fuzzer/ebpf-fuzzer/pkg/ifuzz/ebpf"
	"github.com/ebpf-fuzzer/ebpf-fuzzer/pkg/log"
	"github.com/ebpf-fuzzer/ebpf-fuzzer/pkg/osutil"
	"github.com/ebpf-fuzzer/ebpf-fuzzer/pkg/stat"
	"github.com/google/uuid"
	"github.com/gorilla/handlers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	maxRequestSize  = 16 << 20
	acceptedMessage = "Request received and processed"
)

func (mgr *Manager) initHTTP() http.Handler {
	mux := http.NewServeMux()
	handle := func(pattern string, handler func(http.ResponseWriter, *http.Request)) {
		mux.Handle(pattern, handlers.CompressHandler(http.HandlerFunc(handler)))
	}
	handle("/", mgr.httpSummary)
	handle("/run", mgr.httpRun)
	handle("/metrics", promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{}).ServeHTTP)
	// Browsers like to request this, without special handler this goes to / handler.
	handle("/favicon.ico", func(w http.ResponseWriter, r *http.Request) {})
	return mux
}

func (mgr *Manager) httpSummary(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "%v\n\n", mgr.cfg.Name)
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	for _, ui := range stat.Collect(stat.Simple) {
		fmt.Fprintf(tw, "%v:\t%v\t%v\n", ui.Name, ui.Value, ui.Desc)
	}
	tw.Flush()
	fmt.Fprintf(w, "\nLog:\n%v", log.CachedLogOutput())
}

func (mgr *Manager) httpRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		replyError(w, http.StatusMethodNotAllowed, fmt.Sprintf("method %v is not allowed", r.Method))
		return
	}
	statRequests.Add(1)
	req := new(conformance.RunRequest)
	if err := json.NewDecoder(io.LimitReader(r.Body, maxRequestSize)).Decode(req); err != nil {
		statRejected.Add(1)
		replyError(w, http.StatusBadRequest, fmt.Sprintf("failed to parse request: %v", err))
		return
	}
	p, err := conformance.Parse([]byte(req.Program))
	if err != nil {
		statRejected.Add(1)
		replyError(w, http.StatusBadRequest, fmt.Sprintf("bad program: %v", err))
		return
	}
	stats, err := ebpf.Scan(p.Raw)
	if err != nil {
		statRejected.Add(1)
		replyError(w, http.StatusBadRequest, fmt.Sprintf("bad program: %v", err))
		return
	}
	id := uuid.New().String()
	if mgr.cfg.Workdir != "" {
		file := filepath.Join(mgr.cfg.programsDir(), id+".bpf")
		if err := osutil.WriteFile(file, []byte(req.Program)); err != nil {
			log.Logf(0, "failed to store program: %v", err)
			replyError(w, http.StatusInternalServerError, "failed to store program")
			return
		}
	}
	statInsns.Add(stats.Insns)
	statWideLoads.Add(stats.WideLoads)
	statSize.Add(stats.Insns)
	log.Logf(1, "received program %v: %v instructions, %v wide loads", id, stats.Insns, stats.WideLoads)
	log.Logf(2, "program %v:\n%s", id, req.Program)
	reply(w, http.StatusOK, &conformance.RunResponse{
		Status:       conformance.StatusSuccess,
		Message:      acceptedMessage,
		ID:           id,
		ReceivedData: req,
		Instructions: stats.Insns,
		WideLoads:    stats.WideLoads,
	})
}

func replyError(w http.ResponseWriter, code int, msg string) {
	reply(w, code, &conformance.RunResponse{
		Status:  conformance.StatusError,
		Message: msg,
	})
}

func reply(w http.ResponseWriter, code int, resp *conformance.RunResponse) {
	data, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, fmt.Sprintf("failed to encode json: %v", err), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(data)
}
