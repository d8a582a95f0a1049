// Package config assembles a RunConfig from parsed command-line flags
// and a handful of environment overrides: read once at startup, never
// polled.
package config

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"strconv"

	"go.uber.org/automaxprocs/maxprocs"

	"github.com/katalvlaran/gatherspin/internal/domain"
	"github.com/katalvlaran/gatherspin/internal/xerrors"
)

const (
	defaultScratchSizeMB = 512
	envScratchSizeMB     = "GATHERSPIN_SCRATCH_SIZE_MB"
	envLogLevel          = "GATHERSPIN_LOG_LEVEL"
)

// RunConfig is the fully-resolved configuration for one invocation of the
// main driver: everything the orchestrator, sandbox manager and
// verification driver need, with no further flag parsing downstream.
type RunConfig struct {
	Category  domain.ModelKind
	NumColors uint8
	ClassL    bool

	Sequential bool
	Weak       bool
	Retain     bool

	Scheduler domain.Scheduler
	Rigid     bool
	QuasiSS   bool

	ToFile     bool
	OutputPath string
	Ramdisk    string

	Workers       int
	ScratchSizeMB int
	LogLevel      string
}

// Load parses args (excluding the program name, as in flag.Args()
// convention) into a RunConfig and validates cross-field constraints.
// The scratch size and log level come from GATHERSPIN_SCRATCH_SIZE_MB and
// GATHERSPIN_LOG_LEVEL (defaults 512 and "info"), and the worker count
// from GOMAXPROCS after automaxprocs tuning; none of the three has a
// command-line flag.
func Load(args []string) (RunConfig, error) {
	fs := flag.NewFlagSet("gatherspin", flag.ContinueOnError)

	classL := fs.Bool("L", false, "restrict to class-L guards")
	sequential := fs.Bool("S", false, "sequential orchestration")
	fs.BoolVar(sequential, "sequential", false, "sequential orchestration")
	weak := fs.Bool("w", false, "weak filter (omit the some-non-gathered triplet)")
	retain := fs.Bool("R", false, "enable Viglietta retain filter")
	sched := fs.String("s", "async", "scheduler")
	fs.StringVar(sched, "sched", "async", "scheduler")
	rigid := fs.Bool("rigid", false, "rigid-movement restriction")
	quasiSS := fs.Bool("Q", false, "quasi self-stabilising")
	fs.BoolVar(quasiSS, "quasi-ss", false, "quasi self-stabilising")
	toFile := fs.Bool("f", false, "tee output to file with a default derived name")
	fs.BoolVar(toFile, "file", false, "tee output to file with a default derived name")
	outPath := fs.String("o", "", "explicit output path (implies -f)")
	fs.StringVar(outPath, "out", "", "explicit output path (implies -f)")
	ramdisk := fs.String("r", "", "name of scratch volume")
	fs.StringVar(ramdisk, "ramdisk", "", "name of scratch volume")

	if err := fs.Parse(args); err != nil {
		return RunConfig{}, err
	}

	rest := fs.Args()
	if len(rest) != 2 {
		return RunConfig{}, xerrors.New(xerrors.KindBadCode,
			fmt.Sprintf("expected <category> <n_colors>, got %d positional arguments", len(rest)))
	}

	category, err := domain.ParseModelKind(rest[0])
	if err != nil {
		return RunConfig{}, err
	}
	nColors64, err := strconv.ParseUint(rest[1], 10, 8)
	if err != nil {
		return RunConfig{}, xerrors.BadCodef("n_colors", rest[1], err)
	}
	if nColors64 < 1 {
		return RunConfig{}, xerrors.New(xerrors.KindBadCode, "n_colors must be >= 1")
	}

	scheduler, err := domain.ParseScheduler(*sched)
	if err != nil {
		return RunConfig{}, err
	}

	cfg := RunConfig{
		Category:   category,
		NumColors:  uint8(nColors64),
		ClassL:     *classL,
		Sequential: *sequential,
		Weak:       *weak,
		Retain:     *retain,
		Scheduler:  scheduler,
		Rigid:      *rigid,
		QuasiSS:    *quasiSS,
		ToFile:     *toFile || *outPath != "",
		OutputPath: *outPath,
		Ramdisk:    *ramdisk,
		LogLevel:   "info",
	}

	if v := os.Getenv(envLogLevel); v != "" {
		cfg.LogLevel = v
	}

	cfg.ScratchSizeMB = defaultScratchSizeMB
	if v := os.Getenv(envScratchSizeMB); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.ScratchSizeMB = n
		}
	}

	// automaxprocs adjusts GOMAXPROCS to the container/cgroup-visible CPU
	// share before we read it back for the parallel worker pool size.
	if _, err := maxprocs.Set(); err != nil {
		// Non-fatal: fall back to whatever GOMAXPROCS already is.
		_ = err
	}
	cfg.Workers = runtime.GOMAXPROCS(0)
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}

	return cfg, nil
}

// SuggestedName derives the default report filename:
// {output|parout}[_L]_{kind}_{n_colors}_{scheduler-kebab}[_rigid][_qss].txt
func (c RunConfig) SuggestedName() string {
	prefix := "parout"
	if c.Sequential {
		prefix = "output"
	}
	classL := ""
	if c.ClassL {
		classL = "_L"
	}
	kind := ""
	switch c.Category {
	case domain.Full:
		kind = "full"
	case domain.External:
		kind = "external"
	case domain.Internal:
		kind = "internal"
	}
	rigid := ""
	if c.Rigid {
		rigid = "_rigid"
	}
	qss := ""
	if c.QuasiSS {
		qss = "_qss"
	}
	return fmt.Sprintf("%s%s_%s_%d_%s%s%s.txt", prefix, classL, kind, c.NumColors, c.Scheduler.Kebab(), rigid, qss)
}
