package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColors_ShouldReturnAscendingRange_WhenGivenN(t *testing.T) {
	// Act
	got := Colors(4)

	// Assert
	assert.Equal(t, []Color{0, 1, 2, 3}, got)
}

func TestMoveCode_ShouldRoundTrip_ForEveryMove(t *testing.T) {
	for _, mv := range Moves() {
		// Act
		parsed, err := ParseMove(mv.Code())

		// Assert
		require.NoError(t, err)
		assert.Equal(t, mv, parsed)
	}
}

func TestParseMove_ShouldAcceptLongSpelling(t *testing.T) {
	// Act
	mv, err := ParseMove("TO_HALF")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, ToHalf, mv)
}

func TestParseMove_ShouldError_WhenCodeUnknown(t *testing.T) {
	// Act
	_, err := ParseMove("X")

	// Assert
	require.Error(t, err)
}

func TestMoveOrdering_ShouldBeStayLessThanHalfLessThanOther(t *testing.T) {
	assert.Less(t, int(Stay), int(ToHalf))
	assert.Less(t, int(ToHalf), int(ToOther))
}

func TestDistanceCode_ShouldAlwaysEmitD_ForNear(t *testing.T) {
	// Assert
	assert.Equal(t, "d", Near.Code())
}

func TestParseDistance_ShouldAcceptBothDAndN_ForNear(t *testing.T) {
	for _, code := range []string{"d", "n"} {
		// Act
		d, err := ParseDistance(code)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, Near, d)
	}
}

func TestParseDistance_ShouldAcceptF_ForFar(t *testing.T) {
	// Act
	d, err := ParseDistance("f")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, Far, d)
}

func TestParseModelKind_ShouldAcceptShortAndLongForms(t *testing.T) {
	cases := map[string]ModelKind{
		"F": Full, "full": Full, "Full": Full,
		"E": External, "external": External,
		"I": Internal, "internal": Internal,
	}
	for input, want := range cases {
		// Act
		got, err := ParseModelKind(input)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestParseModelKind_ShouldError_WhenValueUnknown(t *testing.T) {
	// Act
	_, err := ParseModelKind("nonsense")

	// Assert
	require.Error(t, err)
}
