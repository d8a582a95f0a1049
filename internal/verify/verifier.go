// Package verify models the three-step external toolchain (spin, clang,
// pan) as a small state machine with explicit typed failures, and the
// per-algorithm classification logic built on top of it.
package verify

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"path/filepath"

	"github.com/katalvlaran/gatherspin/internal/xerrors"
)

// Verifier abstracts the three external tools so the driver can be
// exercised against a scripted fake without the real SPIN toolchain
// installed.
type Verifier interface {
	// Generate invokes the verifier-source generator in dir with args
	// against mainFile, and returns its captured stdout. The driver
	// passes only the option args; implementations add the always-on
	// -a/-DALGO=SYNTH themselves.
	Generate(ctx context.Context, dir string, args []string, mainFile string) (stdout string, err error)
	// Compile invokes the C compiler in dir against pan.c.
	Compile(ctx context.Context, dir string) error
	// Analyse invokes the compiled analyser in dir and returns its
	// captured stdout.
	Analyse(ctx context.Context, dir string) (stdout string, err error)
}

// ProcessVerifier drives the real spin/clang/pan binaries as external
// processes, one per call, each bounded to dir. Each call captures the
// process's stdout and stderr together into the returned string.
type ProcessVerifier struct{}

func (ProcessVerifier) Generate(ctx context.Context, dir string, args []string, mainFile string) (string, error) {
	full := append([]string{"-a", "-DALGO=SYNTH"}, args...)
	full = append(full, mainFile)
	return runCaptured(ctx, dir, "spin", full...)
}

func (ProcessVerifier) Compile(ctx context.Context, dir string) error {
	_, err := runCaptured(ctx, dir, "clang",
		"-DMEMLIM=16384", "-DXUSAFE", "-DNOREDUCE", "-O2", "-w", "-o", "pan", "pan.c")
	return err
}

// Analyse runs the compiled analyser. pan exits non-zero whenever it
// finds a violation, so a non-zero exit that still produced output is
// treated as output; only a failure to spawn (or run to completion with
// nothing captured) is an error.
func (ProcessVerifier) Analyse(ctx context.Context, dir string) (string, error) {
	pan := filepath.Join(dir, "pan")
	out, err := runCaptured(ctx, dir, pan, "-m100000", "-a", "-f", "-E", "-n", "gathering")
	var exitErr *exec.ExitError
	if err != nil && errors.As(err, &exitErr) && len(out) > 0 {
		return out, nil
	}
	return out, err
}

func runCaptured(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	return out.String(), err
}

// State names one point in the per-enclosure, per-call state machine:
// Idle -> Installed -> Generated -> Compiled -> Analysed -> Classified ->
// Idle. A failed transition surfaces its typed error and leaves the
// enclosure recoverable by a subsequent call re-installing the artefact.
type State int

const (
	Idle State = iota
	Installed
	Generated
	Compiled
	Analysed
	Classified
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Installed:
		return "Installed"
	case Generated:
		return "Generated"
	case Compiled:
		return "Compiled"
	case Analysed:
		return "Analysed"
	case Classified:
		return "Classified"
	default:
		return "Unknown"
	}
}

// TransitionError pairs a taxonomy error with the state the driver was
// leaving when it occurred, so callers can log exactly where a call
// failed without parsing the error message.
type TransitionError struct {
	From State
	Err  *xerrors.Error
}

func (e *TransitionError) Error() string { return e.Err.Error() }
func (e *TransitionError) Unwrap() error { return e.Err }
