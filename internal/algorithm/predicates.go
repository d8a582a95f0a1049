package algorithm

import "github.com/katalvlaran/gatherspin/internal/domain"

// AllGatheredAreStay reports whether every rule whose guard is gathered
// prescribes a stationary action. When the robots are already gathered,
// ToOther and ToHalf are equivalent to Stay, so any other move there is
// pure noise the filter chain discards.
func (a Algorithm) AllGatheredAreStay() bool {
	for _, r := range a.Rules() {
		if r.Guard.IsGathered() && !r.Action.IsStationary() {
			return false
		}
	}
	return true
}

// SomeNonGatheredIsStay reports whether some non-gathered rule is stationary.
// An algorithm without one cannot achieve gathering under a centralized scheduler.
func (a Algorithm) SomeNonGatheredIsStay() bool {
	for _, r := range a.Rules() {
		if !r.Guard.IsGathered() && r.Action.IsStationary() {
			return true
		}
	}
	return false
}

// SomeNonGatheredIsToOther reports whether some non-gathered rule moves ToOther.
func (a Algorithm) SomeNonGatheredIsToOther() bool {
	for _, r := range a.Rules() {
		if !r.Guard.IsGathered() && r.Action.Movement == domain.ToOther {
			return true
		}
	}
	return false
}

// SomeNonGatheredIsToHalf reports whether some non-gathered rule moves ToHalf.
func (a Algorithm) SomeNonGatheredIsToHalf() bool {
	for _, r := range a.Rules() {
		if !r.Guard.IsGathered() && r.Action.Movement == domain.ToHalf {
			return true
		}
	}
	return false
}

// AllColorsUsedInNonGathered reports whether every colour below num_colors
// is written by some non-gathered action. If not, gathering would already
// be solvable with fewer colours, in the lesser model.
func (a Algorithm) AllColorsUsedInNonGathered() bool {
	for _, c := range domain.Colors(a.numColors) {
		found := false
		for _, r := range a.Rules() {
			if r.Action.Color == c && !r.Guard.IsGathered() {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// AllColorsUsedInActions reports whether every colour below num_colors is
// written by some action (gathered or not).
func (a Algorithm) AllColorsUsedInActions() bool {
	for _, c := range domain.Colors(a.numColors) {
		found := false
		for _, act := range a.actions {
			if act.Color == c {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// IsPseudoCanonical is a best-effort, one-sided symmetry filter: among the
// non-gathered rules whose guard has SameColors, their movements, taken in
// positional order, must be non-decreasing under Stay < ToHalf < ToOther.
// Any algorithm failing this check is guaranteed non-canonical; one that
// passes may still not be, since the filter never proves canonicity.
func (a Algorithm) IsPseudoCanonical() bool {
	ref := domain.Stay
	ok := true
	for _, r := range a.Rules() {
		if r.Guard.IsGathered() || !r.Guard.SameColors() {
			continue
		}
		mv := r.Action.Movement
		if ref > mv {
			ok = false
		}
		if mv > ref {
			ref = mv
		}
	}
	return ok
}

// RetainsColorIffOtherDifferent implements Viglietta's (ALGOSENSOR 2013)
// retain rule: "a robot retains its color if and only if it sees the
// other robot set to a different color." Only Full/LFull guards carry
// enough information to state this; all other shapes satisfy it vacuously.
func (a Algorithm) RetainsColorIffOtherDifferent() bool {
	for _, r := range a.Rules() {
		switch r.Guard.Shape {
		case ShapeFull, ShapeLFull:
			my := r.Guard.My
			sameColors := r.Guard.SameColors()
			changesColor := r.Action.Color != my
			if sameColors && !changesColor {
				return false
			}
			if !sameColors && changesColor {
				return false
			}
		default:
			// vacuously true: the predicate is defined only where
			// the guard observes both colours.
		}
	}
	return true
}
