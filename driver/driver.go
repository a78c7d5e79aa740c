// Package driver wires the other packages together into the sequence
// described by SPEC_FULL.md §4.8: parse options, build the catalog,
// construct the pool, stream the CDB enqueuing per-unit and per-CDB
// tasks, join, run the reducers that need per-unit outputs, and report
// timing.
package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/klauspost/cpuid/v2"

	"github.com/ctu-tools/panda/action"
	"github.com/ctu-tools/panda/cdb"
	"github.com/ctu-tools/panda/estimate"
	"github.com/ctu-tools/panda/options"
	"github.com/ctu-tools/panda/plugin"
	"github.com/ctu-tools/panda/pool"
	"github.com/ctu-tools/panda/reduce"
	"github.com/ctu-tools/panda/worklist"
)

// Run executes one end-to-end PANDA pass against opts and returns the
// number of units processed, or a fatal configuration error (§7).
func Run(ctx context.Context, opts *options.Options) (int, error) {
	start := time.Now()

	checkFileLimit(opts.Jobs)

	catalog := action.Builtins(opts.OutputRoot, opts.Verbose, opts.ExtdefMapper)
	plugins, err := plugin.Load(opts.PluginPaths)
	if err != nil {
		return 0, fmt.Errorf("loading plugins: %w", err)
	}
	for _, p := range plugins {
		catalog[p.Key] = p
	}

	if opts.Verbose {
		printBanner(opts, catalog)
	}

	var wl worklist.Worklist
	if opts.Strategy == options.FIFO {
		wl = worklist.NewFIFO()
	} else {
		wl = worklist.NewPriority(opts.WorklistStrategy())
	}
	p := pool.New(opts.Jobs, wl)

	estimator := estimatorFor(opts)
	cfg := pool.CompilerConfig{CC: opts.CC, CXX: opts.CXX, OutputRoot: opts.OutputRoot}

	var units []cdb.CompileCommand
	var extdefPaths []string

	cdbFile, err := os.Open(opts.CDBPath)
	if err != nil {
		return 0, fmt.Errorf("opening compilation database: %w", err)
	}
	defer cdbFile.Close()

	err = cdb.Decode(cdbFile, func(cc cdb.CompileCommand) {
		if !opts.UnitAllowed(cc.File) {
			return
		}
		units = append(units, cc)

		for key, act := range catalog {
			if !opts.ActionEnabled(key) {
				continue
			}
			act := act
			cc := cc
			size := func() int { return estimator.Estimate(cc.File) }
			switch act.Kind {
			case action.Integrated:
				p.AddTask(func() { pool.CompilerAction(ctx, cfg, cc, act) }, size)
			case action.Singleton:
				p.AddTask(func() { pool.ToolAction(ctx, cfg, cc, act) }, size)
			}
			if key == action.KeyExtdefMap {
				extdefPaths = append(extdefPaths, pool.OutputPath(opts.OutputRoot, cc.File, ".extdef"))
			}
		}
	})
	if err != nil {
		return 0, fmt.Errorf("reading compilation database: %w", err)
	}

	if opts.EmitInvocationList {
		unitsCopy := units
		p.AddTask(func() { runInvocationList(ctx, opts, unitsCopy) }, nil)
	}
	if opts.EmitInputFileList {
		unitsCopy := units
		p.AddTask(func() {
			if err := reduce.WriteInputFileList(filepath.Join(opts.OutputRoot, opts.InputFileList), unitsCopy); err != nil {
				log.Warnf("input-file list: %v", err)
			}
		}, nil)
	}

	p.Join()

	if opts.ActionEnabled(action.KeyExtdefMap) {
		merged, err := reduce.MergeExtdefMaps(ctx, opts.Jobs, extdefPaths)
		if err != nil {
			log.Warnf("external-function map merge failed: %v", err)
		} else {
			if opts.ASTCTU {
				merged = reduce.RewriteForASTCTU(merged, opts.OutputRoot)
			}
			if err := reduce.WriteExtdefMap(filepath.Join(opts.OutputRoot, opts.EFMOutput), merged); err != nil {
				log.Warnf("writing external-function map failed: %v", err)
			}
		}
	}
	if opts.EmitSourceFileList {
		sources, err := reduce.BuildSourceFileList(ctx, opts.Jobs, units, opts.OutputRoot, opts.SFLPrefix)
		if err != nil {
			log.Warnf("source-file list failed: %v", err)
		} else if err := reduce.WriteSourceFileList(filepath.Join(opts.OutputRoot, opts.SourceFileList), sources); err != nil {
			log.Warnf("writing source-file list failed: %v", err)
		}
	}

	log.Infof("panda: %d units in %.3fs", len(units), time.Since(start).Seconds())
	return len(units), nil
}

func runInvocationList(ctx context.Context, opts *options.Options, units []cdb.CompileCommand) {
	resourceDir, err := reduce.ResourceDir(ctx, opts.CC)
	if err != nil {
		log.Warnf("invocation list: resolving resource dir: %v", err)
		resourceDir = ""
	}
	if err := reduce.WriteInvocationList(filepath.Join(opts.OutputRoot, opts.InvocationList), units, resourceDir); err != nil {
		log.Warnf("writing invocation list failed: %v", err)
	}
}

func printBanner(opts *options.Options, catalog map[string]*action.Descriptor) {
	log.Infof("panda starting cpu=%s", cpuinfo())
	var keys []string
	for key := range catalog {
		if opts.ActionEnabled(key) {
			keys = append(keys, key)
		}
	}
	for _, key := range keys {
		log.Infof("  action %s: %s", key, catalog[key].Prompt)
	}
}

func estimatorFor(opts *options.Options) estimate.Estimator {
	return estimate.ForMetric(opts.Metric)
}

// cpuinfo reports a short host-CPU summary for the verbose banner,
// grounded on subcmd/ninja/ninja.go's own cpuinfo() helper.
func cpuinfo() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s cores=%d threads=%d", cpuid.CPU.BrandName, cpuid.CPU.PhysicalCores, cpuid.CPU.LogicalCores)
	return sb.String()
}
