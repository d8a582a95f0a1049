// Package filter implements the semantic filter chain that prunes the
// raw enumeration down to viable candidates. Canonical-form filtering
// runs *after* the "some non-gathered" triplet, not before it; the
// per-stage survivor counts depend on this order.
package filter

import "github.com/katalvlaran/gatherspin/internal/algorithm"

// Options toggles the weak and retain variants of the chain.
type Options struct {
	Weak   bool // omit the "some_non_gathered_is_*" triplet
	Retain bool // enable Viglietta's retain-color filter
}

// Stage is one predicate in the chain, named for counter reporting.
type Stage struct {
	Name  string
	Apply func(algorithm.Algorithm) bool
}

// Stages returns the ordered list of active stages for the given options.
// The three "all_*" stages and is_pseudo_canonical are always included;
// the "some_non_gathered_is_*" triplet is dropped when Weak is set, and
// the retain stage is appended only when Retain is set.
func Stages(opt Options) []Stage {
	stages := []Stage{
		{"all_gathered_are_stay", algorithm.Algorithm.AllGatheredAreStay},
		{"all_colors_used_in_actions", algorithm.Algorithm.AllColorsUsedInActions},
		{"all_colors_used_in_non_gathered", algorithm.Algorithm.AllColorsUsedInNonGathered},
	}
	if !opt.Weak {
		stages = append(stages,
			Stage{"some_non_gathered_is_stay", algorithm.Algorithm.SomeNonGatheredIsStay},
			Stage{"some_non_gathered_is_to_half", algorithm.Algorithm.SomeNonGatheredIsToHalf},
			Stage{"some_non_gathered_is_to_other", algorithm.Algorithm.SomeNonGatheredIsToOther},
		)
	}
	stages = append(stages, Stage{"is_pseudo_canonical", algorithm.Algorithm.IsPseudoCanonical})
	if opt.Retain {
		stages = append(stages, Stage{"retains_color_iff_other_different", algorithm.Algorithm.RetainsColorIffOtherDifferent})
	}
	return stages
}

// Accept reports whether a survives every stage, short-circuiting on the
// first failure.
func Accept(stages []Stage, a algorithm.Algorithm) bool {
	for _, s := range stages {
		if !s.Apply(a) {
			return false
		}
	}
	return true
}

// Viable wraps a source sequence (as produced by enumerate.Algorithms)
// with the filter chain, invoking yield only for survivors. counters, if
// non-nil, is incremented once per stage passed (counters[0] counts
// input seen before stage 0, counters[i+1] counts survivors of stage i),
// giving the count_filter ancillary CLI its per-stage view.
func Viable(stages []Stage, counters []int64, source func(yield func(algorithm.Algorithm) bool), yield func(algorithm.Algorithm) bool) {
	source(func(a algorithm.Algorithm) bool {
		if counters != nil {
			counters[0]++
		}
		for i, s := range stages {
			if !s.Apply(a) {
				return true // rejected, keep pulling from source
			}
			if counters != nil {
				counters[i+1]++
			}
		}
		return yield(a)
	})
}
