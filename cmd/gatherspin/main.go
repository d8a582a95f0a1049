// Command gatherspin synthesises distributed gathering algorithms for a
// luminous-robot model configuration and certifies each survivor with
// the external SPIN/Promela toolchain.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/katalvlaran/gatherspin/internal/algorithm"
	"github.com/katalvlaran/gatherspin/internal/config"
	"github.com/katalvlaran/gatherspin/internal/enumerate"
	"github.com/katalvlaran/gatherspin/internal/filter"
	"github.com/katalvlaran/gatherspin/internal/logging"
	"github.com/katalvlaran/gatherspin/internal/orchestrate"
	"github.com/katalvlaran/gatherspin/internal/promela"
	"github.com/katalvlaran/gatherspin/internal/sandbox"
	"github.com/katalvlaran/gatherspin/internal/verify"
	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "gatherspin:", err)
		os.Exit(2)
	}

	log := logging.New(cfg.LogLevel, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.RunConfig, log zerolog.Logger) error {
	timing := orchestrate.NewTiming()

	outputPath := ""
	if cfg.ToFile {
		outputPath = cfg.OutputPath
		if outputPath == "" {
			outputPath = filepath.Join("results", cfg.SuggestedName())
		}
	}

	var sink *os.File
	if outputPath != "" {
		if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
			return err
		}
		f, err := os.OpenFile(outputPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err != nil {
			return err
		}
		sink = f
		defer sink.Close()
	}

	var out *orchestrate.Tee
	if sink != nil {
		out = orchestrate.NewTee(sink, os.Stdout)
	} else {
		out = orchestrate.NewTee(os.Stdout, io.Discard)
	}

	fmt.Fprintf(out, "Run options: %+v\n", cfg)
	log.Info().Msg("preparing environment")

	volume := sandbox.OSVolume{}
	handle, err := volume.Acquire(cfg.ScratchSizeMB, cfg.Ramdisk)
	if err != nil {
		return err
	}
	timing.MarkPrepare()

	stages := filter.Stages(filter.Options{Weak: cfg.Weak, Retain: cfg.Retain})
	rawSource := func(yield func(algorithm.Algorithm) bool) {
		enumerate.Algorithms(cfg.Category, cfg.NumColors, cfg.ClassL, yield)
	}
	viable := func(yield func(algorithm.Algorithm) bool) {
		filter.Viable(stages, nil, rawSource, yield)
	}
	indexed := orchestrate.Indexed(viable)
	timing.MarkGenerate()

	opts := promela.RunOptions{Scheduler: cfg.Scheduler, Rigid: cfg.Rigid, QuasiSS: cfg.QuasiSS}
	driver := verify.Driver{Tool: verify.ProcessVerifier{}, Log: log}

	var summary orchestrate.Summary
	if cfg.Sequential {
		log.Info().Msg("starting verification (sequential)")
		summary, err = orchestrate.RunSequential(ctx, handle.Path, indexed, driver, opts, out)
	} else {
		log.Info().Msg("starting verification (parallel)")
		summary, err = orchestrate.RunParallel(ctx, handle.Path, indexed, driver, opts, cfg.Workers, out, log)
	}
	timing.MarkVerify()
	if err != nil {
		return err
	}

	log.Info().Msg("cleaning up")
	cleanupErr := volume.Release(handle)
	timing.MarkCleanup()

	log.Info().Msg("generating report")
	timing.MarkReport()
	if rerr := orchestrate.WriteReport(out, summary, timing); rerr != nil {
		return rerr
	}
	_ = out.Flush()

	return cleanupErr
}
