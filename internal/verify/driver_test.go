package verify

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gatherspin/internal/algorithm"
	"github.com/katalvlaran/gatherspin/internal/domain"
	"github.com/katalvlaran/gatherspin/internal/promela"
	"github.com/katalvlaran/gatherspin/internal/xerrors"
)

func fullTwoGuards() []algorithm.Guard {
	return []algorithm.Guard{
		algorithm.FullG(0, 0, domain.Same), algorithm.FullG(0, 1, domain.Same),
		algorithm.FullG(1, 0, domain.Same), algorithm.FullG(1, 1, domain.Same),
		algorithm.FullG(0, 0, domain.Near), algorithm.FullG(0, 1, domain.Near),
		algorithm.FullG(1, 0, domain.Near), algorithm.FullG(1, 1, domain.Near),
	}
}

func actions(t *testing.T, codes ...string) []algorithm.Action {
	t.Helper()
	out := make([]algorithm.Action, len(codes))
	for i, c := range codes {
		a, err := algorithm.ParseAction(c)
		require.NoError(t, err)
		out[i] = a
	}
	return out
}

func TestVerify_ShouldClassifyFail_WhenCompileWritesTrail(t *testing.T) {
	// Arrange: gathered all-Stay, non-gathered all-ToHalf -- a known
	// counter-example producer under the centralized scheduler.
	algo := algorithm.New(2, fullTwoGuards(), actions(t, "S0", "S1", "S0", "S1", "H0", "H1", "H0", "H1"))
	enclosure := t.TempDir()
	fake := &FakeVerifier{WriteTrail: true}
	driver := Driver{Tool: fake, Log: zerolog.Nop()}

	// Act
	outcome, err := driver.Verify(context.Background(), enclosure, algo, promela.RunOptions{Scheduler: domain.Centralized})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, Fail, outcome)
	assert.Equal(t, []string{"generate", "compile", "analyse"}, fake.Calls)
}

func TestVerify_ShouldClassifyPass_WhenNoTrailAndCleanStdout(t *testing.T) {
	// Arrange: gathered all-Stay, non-gathered all-ToOther -- gathers
	// under the centralized scheduler.
	algo := algorithm.New(2, fullTwoGuards(), actions(t, "S0", "S1", "S0", "S1", "O0", "O1", "O0", "O1"))
	enclosure := t.TempDir()
	fake := &FakeVerifier{AnalyseStdout: "pan: search complete\n"}
	driver := Driver{Tool: fake, Log: zerolog.Nop()}

	// Act
	outcome, err := driver.Verify(context.Background(), enclosure, algo, promela.RunOptions{Scheduler: domain.Centralized})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, Pass, outcome)
}

func TestVerify_ShouldClassifySearchIncomplete_WhenStdoutWarns(t *testing.T) {
	enclosure := t.TempDir()
	fake := &FakeVerifier{AnalyseStdout: "Warning: Search not completed\n"}
	driver := Driver{Tool: fake, Log: zerolog.Nop()}
	algo := algorithm.New(2, fullTwoGuards(), actions(t, "S0", "S1", "S0", "S1", "O0", "O1", "O0", "O1"))

	// Act
	outcome, err := driver.Verify(context.Background(), enclosure, algo, promela.RunOptions{Scheduler: domain.Async})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, SearchIncomplete, outcome)
}

func TestVerify_ShouldReturnTypedError_WhenGenerateFails(t *testing.T) {
	enclosure := t.TempDir()
	genErr := assertError("spin crashed")
	fake := &FakeVerifier{GenerateErr: genErr}
	driver := Driver{Tool: fake, Log: zerolog.Nop()}
	algo := algorithm.New(2, fullTwoGuards(), actions(t, "S0", "S1", "S0", "S1", "O0", "O1", "O0", "O1"))

	// Act
	_, err := driver.Verify(context.Background(), enclosure, algo, promela.RunOptions{Scheduler: domain.Async})

	// Assert
	require.Error(t, err)
	assert.Equal(t, []string{"generate"}, fake.Calls)

	var te *TransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, Installed, te.From)
	assert.Equal(t, xerrors.KindGeneratorFail, te.Err.Kind())
}

func TestVerify_ShouldTagCompileFailure_WithGeneratedState(t *testing.T) {
	enclosure := t.TempDir()
	fake := &FakeVerifier{CompileErr: assertError("clang crashed")}
	driver := Driver{Tool: fake, Log: zerolog.Nop()}
	algo := algorithm.New(2, fullTwoGuards(), actions(t, "S0", "S1", "S0", "S1", "O0", "O1", "O0", "O1"))

	// Act
	_, err := driver.Verify(context.Background(), enclosure, algo, promela.RunOptions{Scheduler: domain.Async})

	// Assert
	var te *TransitionError
	require.ErrorAs(t, err, &te)
	assert.Equal(t, Generated, te.From)
	assert.Equal(t, xerrors.KindCompileFailed, te.Err.Kind())
}

// TestRigidQuasiSSMatrix_ShouldClassifyPerFlagCombination exercises the
// rigid and quasi-self-stabilising flag matrix. Since FakeVerifier never
// inspects the generator args, the outcome is scripted directly per
// case, mirroring how a real SPIN run classifies each combination.
func TestRigidQuasiSSMatrix_ShouldClassifyPerFlagCombination(t *testing.T) {
	algo := algorithm.New(4, []algorithm.Guard{
		algorithm.LExternal(1), algorithm.LExternal(2), algorithm.LExternal(3), algorithm.LExternal(0),
	}, actions(t, "H1", "S2", "O3", "S0"))

	cases := []struct {
		rigid, quasiSS bool
		writeTrail     bool
		want           Outcome
	}{
		{rigid: true, quasiSS: true, writeTrail: false, want: Pass},
		{rigid: true, quasiSS: false, writeTrail: true, want: Fail},
		{rigid: false, quasiSS: false, writeTrail: true, want: Fail},
	}
	for _, c := range cases {
		enclosure := t.TempDir()
		fake := &FakeVerifier{WriteTrail: c.writeTrail}
		driver := Driver{Tool: fake, Log: zerolog.Nop()}
		opts := promela.RunOptions{Scheduler: domain.SSYNC, Rigid: c.rigid, QuasiSS: c.quasiSS}

		// Act
		outcome, err := driver.Verify(context.Background(), enclosure, algo, opts)

		// Assert
		require.NoError(t, err)
		assert.Equalf(t, c.want, outcome, "rigid=%v quasiSS=%v", c.rigid, c.quasiSS)
	}
}

type simpleError string

func (e simpleError) Error() string { return string(e) }

func assertError(msg string) error { return simpleError(msg) }
