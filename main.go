// PANDA replays a C/C++ project's compilation database across a
// worker pool to run compiler-based tools against every translation
// unit, then reduces their per-unit outputs into project-level
// artifacts.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"syscall"

	log "github.com/golang/glog"

	"github.com/ctu-tools/panda/driver"
	"github.com/ctu-tools/panda/options"
)

func main() {
	opts, err := options.ParseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "panda: %v\n", err)
		os.Exit(2)
	}

	if err := run(opts); err != nil {
		log.Exitf("panda: %v", err)
	}
}

func run(opts *options.Options) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	defer log.Flush()

	defer func() {
		if r := recover(); r != nil {
			const size = 64 << 10
			buf := make([]byte, size)
			buf = buf[:runtime.Stack(buf, false)]
			log.Fatalf("panic: %v\n%s", r, buf)
		}
	}()

	if buildinfo, ok := debug.ReadBuildInfo(); ok {
		log.V(1).Infof("main module: %s %s", buildinfo.Main.Path, buildinfo.Main.Version)
	}

	_, err := driver.Run(ctx, opts)
	return err
}
