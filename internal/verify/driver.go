package verify

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/gatherspin/internal/algorithm"
	"github.com/katalvlaran/gatherspin/internal/promela"
	"github.com/katalvlaran/gatherspin/internal/xerrors"
)

// Outcome classifies one verification run. The zero value is never a
// valid classification; every successful call returns one of the three
// named constants.
type Outcome int

const (
	_ Outcome = iota
	Pass
	Fail
	SearchIncomplete
)

func (o Outcome) String() string {
	switch o {
	case Pass:
		return "PASS"
	case Fail:
		return "FAIL"
	case SearchIncomplete:
		return "Incomplete"
	default:
		return "?"
	}
}

const trailFile = "MainGathering.pml.trail"

// Driver runs one algorithm through the three-step external pipeline
// inside an already-installed enclosure.
type Driver struct {
	Tool Verifier
	Log  zerolog.Logger
}

// Verify runs one algorithm through the pipeline: delete any stale
// trail, install the generated model, run spin -> clang -> pan, and
// classify the outcome from the trail file's presence and the analyser's
// captured stdout.
func (d Driver) Verify(ctx context.Context, enclosure string, algo algorithm.Algorithm, opts promela.RunOptions) (Outcome, error) {
	return d.verifyModel(ctx, enclosure, promela.Generate(algo), opts)
}

// VerifyModel runs the same three-step pipeline as Verify, but against an
// already-rendered Promela fragment rather than one derived from an
// Algorithm -- the entry point model_check_algo needs when it is handed
// raw model text directly (e.g. read from a file or stdin).
func (d Driver) VerifyModel(ctx context.Context, enclosure string, rawPromela string, opts promela.RunOptions) (Outcome, error) {
	return d.verifyModel(ctx, enclosure, rawPromela, opts)
}

func (d Driver) verifyModel(ctx context.Context, enclosure string, rawPromela string, opts promela.RunOptions) (Outcome, error) {
	trail := filepath.Join(enclosure, trailFile)

	state := Idle
	d.Log.Trace().Str("enclosure", enclosure).Str("state", state.String()).Msg("verify: start")

	if err := os.Remove(trail); err != nil && !os.IsNotExist(err) {
		return 0, &TransitionError{From: state, Err: xerrors.Wrap(xerrors.KindStaleTrail, "could not remove stale trail file", err)}
	}
	if _, err := os.Stat(trail); err == nil {
		return 0, &TransitionError{From: state, Err: xerrors.New(xerrors.KindStaleTrail, "trail file still present after removal")}
	}

	modelPath := filepath.Join(enclosure, promela.AlgorithmFile)
	if err := os.WriteFile(modelPath, []byte(rawPromela), 0o644); err != nil {
		return 0, &TransitionError{From: state, Err: xerrors.Wrap(xerrors.KindInstallFailed, "write generated model failed", err)}
	}
	state = Installed
	d.Log.Trace().Str("state", state.String()).Msg("verify: model installed")

	genArgs := opts.GeneratorArgs()
	d.Log.Debug().Strs("args", genArgs).Msg("invoking verifier-source generator")
	if out, err := d.Tool.Generate(ctx, enclosure, genArgs, promela.MainFile); err != nil {
		msg := "spin invocation failed"
		if s := strings.TrimSpace(out); s != "" {
			msg += ": " + s
		}
		return 0, &TransitionError{From: state, Err: xerrors.Wrap(xerrors.KindGeneratorFail, msg, err)}
	}
	state = Generated
	d.Log.Trace().Str("state", state.String()).Msg("verify: generated")

	d.Log.Debug().Msg("invoking C compiler")
	if err := d.Tool.Compile(ctx, enclosure); err != nil {
		return 0, &TransitionError{From: state, Err: xerrors.Wrap(xerrors.KindCompileFailed, "clang invocation failed", err)}
	}
	state = Compiled
	d.Log.Trace().Str("state", state.String()).Msg("verify: compiled")

	d.Log.Debug().Msg("invoking analyser")
	stdout, err := d.Tool.Analyse(ctx, enclosure)
	if err != nil {
		return 0, &TransitionError{From: state, Err: xerrors.Wrap(xerrors.KindAnalyserFailed, "pan invocation failed", err)}
	}
	state = Analysed
	d.Log.Trace().Str("state", state.String()).Msg("verify: analysed")

	outcome := classify(trail, stdout)
	state = Classified
	d.Log.Trace().Str("state", state.String()).Str("outcome", outcome.String()).Msg("verify: classified")

	return outcome, nil
}

func classify(trailPath, stdout string) Outcome {
	if _, err := os.Stat(trailPath); err == nil {
		return Fail
	}
	for _, line := range strings.Split(stdout, "\n") {
		if strings.HasPrefix(line, "Warning: Search not completed") {
			return SearchIncomplete
		}
	}
	return Pass
}

// ReadTrail returns the trail file's contents, if any, for the
// model_check_algo ancillary CLI.
func ReadTrail(enclosure string) (string, bool, error) {
	data, err := os.ReadFile(filepath.Join(enclosure, trailFile))
	if os.IsNotExist(err) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return string(data), true, nil
}
