// Copyright 2026 syzkaller project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// ebpf-runner submits program files to ebpf-manager and prints the replies.
//
// Usage:
//
//	ebpf-runner [-j 4] http://localhost:5000/run progs/0.data progs/1.data.xz
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"sync"

	"github.com/ebpf-fuzzer/ebpf-fuzzer/pkg/conformance"
	"github.com/ebpf-fuzzer/ebpf-fuzzer/pkg/log"
	"github.com/ebpf-fuzzer/ebpf-fuzzer/pkg/osutil"
	"github.com/ebpf-fuzzer/ebpf-fuzzer/pkg/tool"
	"golang.org/x/sync/errgroup"
)

var flagJobs = flag.Int("j", runtime.NumCPU(), "number of parallel submissions")

func main() {
	args := tool.Init()
	if len(args) < 2 {
		tool.Failf("usage: ebpf-runner [-j N] <url> <file>...")
	}
	if err := run(context.Background(), conformance.NewClient(args[0]), args[1:], *flagJobs, os.Stdout); err != nil {
		tool.Fail(err)
	}
}

// run submits files concurrently, but prints replies in the order of files.
func run(ctx context.Context, client *conformance.Client, files []string, jobs int, w io.Writer) error {
	for _, file := range files {
		if !osutil.IsExist(file) {
			return fmt.Errorf("file %q does not exist", file)
		}
	}
	if jobs < 1 {
		jobs = 1
	}
	replies := make([]*conformance.Reply, len(files))
	var mu sync.Mutex
	next := 0
	flush := func() {
		for ; next < len(replies) && replies[next] != nil; next++ {
			printReply(w, files[next], replies[next])
		}
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, file := range files {
		i, file := i, file // per-iteration copy (go directive < 1.22)
		g.Go(func() error {
			data, err := osutil.ReadFile(file)
			if err != nil {
				return err
			}
			reply, err := client.Submit(ctx, data)
			if err != nil {
				return fmt.Errorf("failed to send %v: %w", file, err)
			}
			log.Logf(1, "%v: %v", file, reply.StatusCode)
			mu.Lock()
			defer mu.Unlock()
			replies[i] = reply
			flush()
			return nil
		})
	}
	return g.Wait()
}

func printReply(w io.Writer, file string, reply *conformance.Reply) {
	fmt.Fprintf(w, "%v\n", file)
	fmt.Fprintf(w, "Response status code: %v\n", reply.StatusCode)
	fmt.Fprintf(w, "Response content:\n%s\n", reply.Body)
}
