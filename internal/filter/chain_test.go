package filter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gatherspin/internal/algorithm"
	"github.com/katalvlaran/gatherspin/internal/domain"
	"github.com/katalvlaran/gatherspin/internal/enumerate"
	"github.com/katalvlaran/gatherspin/internal/filter"
)

func TestStages_ShouldPlaceCanonicalLast_WhenNotWeak(t *testing.T) {
	// Arrange
	stages := filter.Stages(filter.Options{})

	// Assert
	require.Len(t, stages, 7)
	assert.Equal(t, "is_pseudo_canonical", stages[len(stages)-1].Name)
}

func TestStages_ShouldOmitNonGatheredTriplet_WhenWeak(t *testing.T) {
	// Arrange
	stages := filter.Stages(filter.Options{Weak: true})

	// Assert
	require.Len(t, stages, 4)
	assert.Equal(t, "is_pseudo_canonical", stages[len(stages)-1].Name)
}

func TestStages_ShouldAppendRetainLast_WhenRetainEnabled(t *testing.T) {
	// Arrange
	stages := filter.Stages(filter.Options{Retain: true})

	// Assert
	assert.Equal(t, "retains_color_iff_other_different", stages[len(stages)-1].Name)
}

// TestViable_ShouldMatchLiteralCascade_ForFullTwoFalse pins the known
// cascade counts for (Full, 2, false): 1_679_616, 20_736, 20_574,
// 18_144, 14_560, 11_200, 8_064, 4_704 across the raw input and the
// seven non-weak stages.
func TestViable_ShouldMatchLiteralCascade_ForFullTwoFalse(t *testing.T) {
	if testing.Short() {
		t.Skip("exhaustive cascade walk over 1.68M algorithms; skipped with -short")
	}

	stages := filter.Stages(filter.Options{})
	counters := make([]int64, len(stages)+1)

	source := func(yield func(algorithm.Algorithm) bool) {
		enumerate.Algorithms(domain.Full, 2, false, yield)
	}
	filter.Viable(stages, counters, source, func(algorithm.Algorithm) bool { return true })

	want := []int64{1_679_616, 20_736, 20_574, 18_144, 14_560, 11_200, 8_064, 4_704}
	assert.Equal(t, want, counters)
}

// TestViable_ShouldYieldLiteralPrefix_ForFullTwoFalse pins the first
// five survivors of (Full, 2, false) under the full non-weak chain.
func TestViable_ShouldYieldLiteralPrefix_ForFullTwoFalse(t *testing.T) {
	if testing.Short() {
		t.Skip("walks the raw enumeration until the fifth survivor; skipped with -short")
	}

	want := []string{
		"00s_01s_10s_11s_00d_01d_10d_11d__S0_S0_S0_S0_S0_S0_H0_O1",
		"00s_01s_10s_11s_00d_01d_10d_11d__S0_S0_S0_S0_S0_S0_H1_O0",
		"00s_01s_10s_11s_00d_01d_10d_11d__S0_S0_S0_S0_S0_S0_H1_O1",
		"00s_01s_10s_11s_00d_01d_10d_11d__S0_S0_S0_S0_S0_S0_O0_H1",
		"00s_01s_10s_11s_00d_01d_10d_11d__S0_S0_S0_S0_S0_S0_O1_H0",
	}

	stages := filter.Stages(filter.Options{})
	source := func(yield func(algorithm.Algorithm) bool) {
		enumerate.Algorithms(domain.Full, 2, false, yield)
	}

	var got []string
	filter.Viable(stages, nil, source, func(a algorithm.Algorithm) bool {
		got = append(got, a.AsCode())
		return len(got) < len(want)
	})

	assert.Equal(t, want, got)
}

func TestAccept_ShouldShortCircuit_OnFirstFailingStage(t *testing.T) {
	calls := 0
	stages := []filter.Stage{
		{Name: "always-false", Apply: func(algorithm.Algorithm) bool { calls++; return false }},
		{Name: "never-reached", Apply: func(algorithm.Algorithm) bool { calls++; return true }},
	}

	algo := algorithm.New(2, []algorithm.Guard{algorithm.LFull(0, 0)}, []algorithm.Action{{Color: 0, Movement: domain.Stay}})

	// Act
	ok := filter.Accept(stages, algo)

	// Assert
	assert.False(t, ok)
	assert.Equal(t, 1, calls)
}
