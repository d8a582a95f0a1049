package verify

import (
	"context"
	"os"
	"path/filepath"
)

// FakeVerifier scripts the three external-tool steps without invoking
// spin/clang/pan, so PASS, FAIL and SEARCH_INCOMPLETE classification can
// be exercised deterministically in CI. The rendered model contents are
// never inspected; callers script the behaviour they want per scenario.
type FakeVerifier struct {
	// GenerateErr/CompileErr/AnalyseErr, if set, are returned by the
	// corresponding step instead of running any script.
	GenerateErr error
	CompileErr  error
	AnalyseErr  error

	// AnalyseStdout is returned by Analyse on success.
	AnalyseStdout string

	// WriteTrail, if true, writes MainGathering.pml.trail into the
	// enclosure during Compile, simulating a counter-example produced
	// by a real pan run (the real pipeline only ever produces the
	// trail as a side effect of Analyse, but FakeVerifier writes it
	// earlier since it never actually execs pan).
	WriteTrail bool

	// Calls records which methods were invoked, in order, for
	// assertions about call sequencing.
	Calls []string
}

func (f *FakeVerifier) Generate(_ context.Context, dir string, _ []string, _ string) (string, error) {
	f.Calls = append(f.Calls, "generate")
	if f.GenerateErr != nil {
		return "", f.GenerateErr
	}
	return "", nil
}

func (f *FakeVerifier) Compile(_ context.Context, dir string) error {
	f.Calls = append(f.Calls, "compile")
	if f.CompileErr != nil {
		return f.CompileErr
	}
	if f.WriteTrail {
		if err := os.WriteFile(filepath.Join(dir, trailFile), []byte("fake counter-example\n"), 0o644); err != nil {
			return err
		}
	}
	return nil
}

func (f *FakeVerifier) Analyse(_ context.Context, _ string) (string, error) {
	f.Calls = append(f.Calls, "analyse")
	if f.AnalyseErr != nil {
		return "", f.AnalyseErr
	}
	return f.AnalyseStdout, nil
}

var _ Verifier = (*FakeVerifier)(nil)
