package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchedulerCompare_ShouldBeReflexive_ForEveryScheduler(t *testing.T) {
	for _, s := range AllSchedulers {
		// Assert
		assert.Equal(t, Equal, s.Compare(s))
	}
}

func TestSchedulerCompare_ShouldBeAntisymmetric_OverFullDomain(t *testing.T) {
	for _, a := range AllSchedulers {
		for _, b := range AllSchedulers {
			ab := a.Compare(b)
			ba := b.Compare(a)
			switch ab {
			case Equal:
				assert.Equalf(t, Equal, ba, "%s vs %s", a, b)
			case Less:
				assert.Equalf(t, Greater, ba, "%s vs %s", a, b)
			case Greater:
				assert.Equalf(t, Less, ba, "%s vs %s", a, b)
			case Incomparable:
				assert.Equalf(t, Incomparable, ba, "%s vs %s", a, b)
			}
		}
	}
}

func TestSchedulerCompare_ShouldBeTransitive_OverFullDomain(t *testing.T) {
	for _, a := range AllSchedulers {
		for _, b := range AllSchedulers {
			ab := a.Compare(b)
			if ab != Less && ab != Equal {
				continue
			}
			for _, c := range AllSchedulers {
				bc := b.Compare(c)
				if bc != Less && bc != Equal {
					continue
				}
				if ab == Equal && bc == Equal {
					continue
				}
				ac := a.Compare(c)
				assert.NotEqualf(t, Incomparable, ac, "%s <= %s <= %s", a, b, c)
				assert.NotEqualf(t, Greater, ac, "%s <= %s <= %s", a, b, c)
			}
		}
	}
}

func TestSchedulerCompare_ShouldBeIncomparable_ForCentralizedAndFSYNC(t *testing.T) {
	assert.Equal(t, Incomparable, Centralized.Compare(FSYNC))
	assert.Equal(t, Incomparable, FSYNC.Compare(Centralized))
}

func TestSchedulerCompare_ShouldRankAsyncFamilyAboveSSYNC(t *testing.T) {
	assert.Equal(t, Less, SSYNC.Compare(Async))
	assert.Equal(t, Less, Async.Compare(AsyncRegular))
	assert.Equal(t, Less, AsyncRegular.Compare(AsyncSafe))
}

func TestParseScheduler_ShouldRoundTrip_ForEveryScheduler(t *testing.T) {
	for _, s := range AllSchedulers {
		// Act
		got, err := ParseScheduler(s.String())

		// Assert
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
}

func TestParseScheduler_ShouldAcceptKebabCase(t *testing.T) {
	// Act
	s, err := ParseScheduler("async-lc-atomic")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, AsyncLCAtomic, s)
}

func TestSchedulerKebab_ShouldLowercaseAndHyphenate(t *testing.T) {
	assert.Equal(t, "async-lc-atomic", AsyncLCAtomic.Kebab())
}

func TestSchedulerAsPromela_ShouldUppercase(t *testing.T) {
	assert.Equal(t, "ASYNC_LC_ATOMIC", AsyncLCAtomic.AsPromela())
}
