package algorithm

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/gatherspin/internal/domain"
	"github.com/katalvlaran/gatherspin/internal/xerrors"
)

// Algorithm is an immutable value object: a total function from a
// canonical guard list to commands, represented as positionally aligned
// guard and action slices.
type Algorithm struct {
	numColors uint8
	guards    []Guard
	actions   []Action
}

// New constructs an Algorithm. It panics if the invariants are violated:
// guards and actions must have equal, non-zero length, and every action's
// colour must be strictly below numColors. Construction from the
// enumerator or the parser is expected to always satisfy these; a panic
// here signals a programming error in one of those two call sites.
func New(numColors uint8, guards []Guard, actions []Action) Algorithm {
	if len(guards) != len(actions) {
		panic(fmt.Sprintf("algorithm: %d guards but %d actions", len(guards), len(actions)))
	}
	if len(guards) == 0 {
		panic("algorithm: empty guard/action list")
	}
	for _, a := range actions {
		if a.Color >= domain.Color(numColors) {
			panic(fmt.Sprintf("algorithm: action color %v >= num_colors %d", a.Color, numColors))
		}
	}
	g := make([]Guard, len(guards))
	copy(g, guards)
	a := make([]Action, len(actions))
	copy(a, actions)
	return Algorithm{numColors: numColors, guards: g, actions: a}
}

// NumColors returns the number of colours this algorithm was built with.
func (a Algorithm) NumColors() uint8 { return a.numColors }

// ModelKind is derived from the first guard's shape.
func (a Algorithm) ModelKind() domain.ModelKind { return a.guards[0].ModelKind() }

// ClassL is derived from the first guard's shape.
func (a Algorithm) ClassL() bool { return a.guards[0].ClassL() }

// Rules returns the (guard, action) pairs in positional order.
func (a Algorithm) Rules() []Rule {
	out := make([]Rule, len(a.guards))
	for i := range a.guards {
		out[i] = Rule{Guard: a.guards[i], Action: a.actions[i]}
	}
	return out
}

// Equal reports whether two algorithms have identical num_colors, guards
// and actions, in order.
func (a Algorithm) Equal(other Algorithm) bool {
	if a.numColors != other.numColors || len(a.guards) != len(other.guards) {
		return false
	}
	for i := range a.guards {
		if a.guards[i] != other.guards[i] || a.actions[i] != other.actions[i] {
			return false
		}
	}
	return true
}

// AsCode renders the canonical textual form: guards, "__", actions, each
// half underscore-separated.
func (a Algorithm) AsCode() string {
	guardParts := make([]string, len(a.guards))
	for i, g := range a.guards {
		guardParts[i] = g.Code()
	}
	actionParts := make([]string, len(a.actions))
	for i, act := range a.actions {
		actionParts[i] = act.Code()
	}
	return strings.Join(guardParts, "_") + "__" + strings.Join(actionParts, "_")
}

// TryParse parses the canonical textual form for the given (model,
// num_colors, class_l), validating the separator, per-field codes, equal
// guard/action counts, and guard-count-matches-model.
func TryParse(model domain.ModelKind, numColors uint8, classL bool, code string) (Algorithm, error) {
	halves := strings.Split(code, "__")
	switch len(halves) {
	case 2:
		// falls through below
	case 1:
		return Algorithm{}, xerrors.New(xerrors.KindBadCode, "guards are missing (no \"__\" separator)")
	default:
		return Algorithm{}, xerrors.New(xerrors.KindBadCode, "missing separation string (or too many)")
	}

	guardCodes := strings.Split(halves[0], "_")
	guards := make([]Guard, len(guardCodes))
	for i, gc := range guardCodes {
		g, err := ParseGuard(model, classL, gc)
		if err != nil {
			return Algorithm{}, err
		}
		guards[i] = g
	}

	actionCodes := strings.Split(halves[1], "_")
	actions := make([]Action, len(actionCodes))
	for i, ac := range actionCodes {
		act, err := ParseAction(ac)
		if err != nil {
			return Algorithm{}, err
		}
		actions[i] = act
	}

	if len(guards) != len(actions) {
		return Algorithm{}, xerrors.ModelMismatchf(
			"guards and actions have different lengths (%d guards, %d actions)", len(guards), len(actions))
	}
	canonical := GuardsForModel(model, numColors, classL)
	if len(guards) != len(canonical) {
		return Algorithm{}, xerrors.ModelMismatchf(
			"number of guards (%d) does not match model (%d)", len(guards), len(canonical))
	}
	for i := range guards {
		if guards[i] != canonical[i] {
			return Algorithm{}, xerrors.ModelMismatchf(
				"guard %d is %q, canonical order expects %q", i, guards[i].Code(), canonical[i].Code())
		}
	}
	for i, act := range actions {
		if act.Color >= domain.Color(numColors) {
			return Algorithm{}, xerrors.ModelMismatchf(
				"action %d writes color %v, model has only %d colors", i, act.Color, numColors)
		}
	}

	return New(numColors, guards, actions), nil
}
