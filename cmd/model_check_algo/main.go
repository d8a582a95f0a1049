// Command model_check_algo runs the three-step external verification
// pipeline once against a single algorithm code (or a raw Promela
// fragment read from -a/stdin), printing the classified outcome and any
// counter-example trail.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/katalvlaran/gatherspin/internal/algorithm"
	"github.com/katalvlaran/gatherspin/internal/domain"
	"github.com/katalvlaran/gatherspin/internal/logging"
	"github.com/katalvlaran/gatherspin/internal/promela"
	"github.com/katalvlaran/gatherspin/internal/sandbox"
	"github.com/katalvlaran/gatherspin/internal/verify"
)

func main() {
	classL := flag.Bool("L", false, "class L algorithms")
	sched := flag.String("s", "async", "scheduler")
	flag.StringVar(sched, "sched", "async", "scheduler")
	rigid := flag.Bool("rigid", false, "rigid-movement restriction")
	quasiSS := flag.Bool("Q", false, "quasi self-stabilising")
	flag.BoolVar(quasiSS, "quasi-ss", false, "quasi self-stabilising")
	algoPath := flag.String("a", "", "path to a raw Promela fragment (reads stdin if set to \"-\"); if unset, the positional algorithm code is generated instead")
	flag.StringVar(algoPath, "algo", "", "alias for -a")
	ramdisk := flag.String("r", "", "name of scratch volume")
	flag.StringVar(ramdisk, "ramdisk", "", "alias for -r")
	logLevel := flag.String("log-level", "info", "zerolog level")

	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: model_check_algo [-L] [-s scheduler] [--rigid] [-Q] [-a path|-] [-r name] <category> <n_colors> [<algorithm-code>]")
		flag.PrintDefaults()
	}
	flag.Parse()

	log := logging.New(*logLevel, os.Stderr)

	args := flag.Args()
	if len(args) < 2 {
		flag.Usage()
		os.Exit(2)
	}

	category, err := domain.ParseModelKind(args[0])
	if err != nil {
		fatal(err)
	}
	n, err := strconv.ParseUint(args[1], 10, 8)
	if err != nil {
		fatal(err)
	}
	numColors := uint8(n)

	scheduler, err := domain.ParseScheduler(*sched)
	if err != nil {
		fatal(err)
	}
	opts := promela.RunOptions{Scheduler: scheduler, Rigid: *rigid, QuasiSS: *quasiSS}

	var rawModel string
	var code string
	switch {
	case *algoPath != "":
		data, rerr := readModelSource(*algoPath)
		if rerr != nil {
			fatal(rerr)
		}
		rawModel = string(data)
		code = "<raw promela fragment>"
	case len(args) == 3:
		algo, perr := algorithm.TryParse(category, numColors, *classL, args[2])
		if perr != nil {
			fatal(perr)
		}
		rawModel = promela.Generate(algo)
		code = algo.AsCode()
	default:
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	volume := sandbox.OSVolume{}
	handle, err := volume.Acquire(256, *ramdisk)
	if err != nil {
		fatal(err)
	}
	defer func() {
		if rerr := volume.Release(handle); rerr != nil {
			log.Error().Err(rerr).Msg("release scratch volume failed")
		}
	}()

	enclosure, err := sandbox.CreateEnclosure(handle.Path)
	if err != nil {
		fatal(err)
	}

	driver := verify.Driver{Tool: verify.ProcessVerifier{}, Log: log}
	outcome, err := driver.VerifyModel(ctx, enclosure, rawModel, opts)
	if err != nil {
		fatal(err)
	}

	fmt.Printf("Algorithm: %s\n", code)
	fmt.Printf("Outcome: %s\n", outcome)

	if outcome == verify.Fail {
		trail, ok, terr := verify.ReadTrail(enclosure)
		if terr != nil {
			fatal(terr)
		}
		if ok {
			fmt.Println("\nCounter-example trail:")
			fmt.Println(trail)
		}
	}

	if outcome == verify.Fail {
		os.Exit(1)
	}
}

func readModelSource(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "model_check_algo:", err)
	os.Exit(1)
}
