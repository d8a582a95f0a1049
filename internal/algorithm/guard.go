// Package algorithm is the core domain model: guards, actions, rules and
// the Algorithm aggregate, including its canonical textual codec and the
// semantic predicates used by the filter chain.
package algorithm

import (
	"fmt"

	"github.com/katalvlaran/gatherspin/internal/domain"
	"github.com/katalvlaran/gatherspin/internal/xerrors"
)

// Shape identifies which of the six guard variants a Guard value holds.
type Shape uint8

const (
	ShapeLExternal Shape = iota // other's color only
	ShapeLInternal              // my color only
	ShapeLFull                  // my color + other's color
	ShapeExternal               // other's color + distance
	ShapeInternal               // my color + distance
	ShapeFull                   // my color + other's color + distance
)

// Guard is a tagged variant over the six observable shapes. Only the
// fields relevant to Shape are meaningful; the others are zero.
type Guard struct {
	Shape    Shape
	My       domain.Color
	Other    domain.Color
	Distance domain.Distance
}

func LExternal(other domain.Color) Guard { return Guard{Shape: ShapeLExternal, Other: other} }
func LInternal(my domain.Color) Guard    { return Guard{Shape: ShapeLInternal, My: my} }
func LFull(my, other domain.Color) Guard { return Guard{Shape: ShapeLFull, My: my, Other: other} }
func ExternalG(other domain.Color, d domain.Distance) Guard {
	return Guard{Shape: ShapeExternal, Other: other, Distance: d}
}
func InternalG(my domain.Color, d domain.Distance) Guard {
	return Guard{Shape: ShapeInternal, My: my, Distance: d}
}
func FullG(my, other domain.Color, d domain.Distance) Guard {
	return Guard{Shape: ShapeFull, My: my, Other: other, Distance: d}
}

// ModelKind reports which model family this guard shape belongs to.
func (g Guard) ModelKind() domain.ModelKind {
	switch g.Shape {
	case ShapeFull, ShapeLFull:
		return domain.Full
	case ShapeExternal, ShapeLExternal:
		return domain.External
	default:
		return domain.Internal
	}
}

// ClassL reports whether this guard shape carries no distance coordinate.
func (g Guard) ClassL() bool {
	switch g.Shape {
	case ShapeLExternal, ShapeLInternal, ShapeLFull:
		return true
	default:
		return false
	}
}

// IsGathered reports whether the guard's distance payload is domain.Same.
// Class-L shapes (no distance payload) are never "gathered".
func (g Guard) IsGathered() bool {
	switch g.Shape {
	case ShapeExternal, ShapeInternal, ShapeFull:
		return g.Distance == domain.Same
	default:
		return false
	}
}

// SameColors reports whether the guard's colour payload(s) coincide: it
// holds vacuously for shapes with at most one colour coordinate, and
// requires My == Other for the two-colour shapes.
func (g Guard) SameColors() bool {
	switch g.Shape {
	case ShapeLExternal, ShapeLInternal, ShapeExternal, ShapeInternal:
		return true
	case ShapeLFull, ShapeFull:
		return g.My == g.Other
	default:
		return false
	}
}

// MyColor returns the guard's own-light colour, if this shape observes it.
func (g Guard) MyColor() (domain.Color, bool) {
	switch g.Shape {
	case ShapeLInternal, ShapeInternal, ShapeLFull, ShapeFull:
		return g.My, true
	default:
		return 0, false
	}
}

// OtherColor returns the guard's other-light colour, if this shape observes it.
func (g Guard) OtherColor() (domain.Color, bool) {
	switch g.Shape {
	case ShapeLExternal, ShapeExternal, ShapeLFull, ShapeFull:
		return g.Other, true
	default:
		return 0, false
	}
}

// DistanceVal returns the guard's distance payload, if this shape observes it.
func (g Guard) DistanceVal() (domain.Distance, bool) {
	switch g.Shape {
	case ShapeExternal, ShapeInternal, ShapeFull:
		return g.Distance, true
	default:
		return 0, false
	}
}

// Code renders the guard's canonical short code: one or two colour
// digits, optionally followed by a distance letter.
func (g Guard) Code() string {
	switch g.Shape {
	case ShapeLExternal:
		return g.Other.String()
	case ShapeLInternal:
		return g.My.String()
	case ShapeLFull:
		return g.My.String() + g.Other.String()
	case ShapeExternal:
		return g.Other.String() + g.Distance.Code()
	case ShapeInternal:
		return g.My.String() + g.Distance.Code()
	case ShapeFull:
		return g.My.String() + g.Other.String() + g.Distance.Code()
	default:
		return "?"
	}
}

// guardCodeLen is the exact code length for each (model, class-L) shape:
// one digit per observed colour, plus one distance letter unless class-L.
func guardCodeLen(model domain.ModelKind, classL bool) int {
	n := 1
	if model == domain.Full {
		n = 2
	}
	if !classL {
		n++
	}
	return n
}

// ParseGuard parses one guard code for the given (model, class-L) shape.
func ParseGuard(model domain.ModelKind, classL bool, code string) (Guard, error) {
	if len(code) != guardCodeLen(model, classL) {
		return Guard{}, xerrors.BadCodef("guard", code, fmt.Errorf("wrong length"))
	}
	switch {
	case model == domain.Full:
		c1, err := domain.ParseColor(code[0:1])
		if err != nil {
			return Guard{}, err
		}
		c2, err := domain.ParseColor(code[1:2])
		if err != nil {
			return Guard{}, err
		}
		if classL {
			return LFull(c1, c2), nil
		}
		d, err := domain.ParseDistance(code[2:3])
		if err != nil {
			return Guard{}, err
		}
		return FullG(c1, c2, d), nil

	case classL: // External or Internal, class L
		col, err := domain.ParseColor(code[0:1])
		if err != nil {
			return Guard{}, err
		}
		if model == domain.External {
			return LExternal(col), nil
		}
		return LInternal(col), nil

	default: // External or Internal, non class L
		col, err := domain.ParseColor(code[0:1])
		if err != nil {
			return Guard{}, err
		}
		d, err := domain.ParseDistance(code[1:2])
		if err != nil {
			return Guard{}, err
		}
		if model == domain.External {
			return ExternalG(col, d), nil
		}
		return InternalG(col, d), nil
	}
}

// GuardsForModel constructs the canonical guard list for (model,
// num_colors, class_l), in the fixed order: outer loop distance (Same,
// Near, never Far), middle loop my-colour, inner loop other-colour,
// with coordinates omitted per model shape. Class-L variants omit the
// distance loop entirely. The result must never be mutated; callers
// share it immutably across every algorithm built over it.
func GuardsForModel(model domain.ModelKind, numColors uint8, classL bool) []Guard {
	colors := domain.Colors(numColors)
	dists := [2]domain.Distance{domain.Same, domain.Near}

	guards := make([]Guard, 0, NumberForModel(model, numColors, classL))
	switch {
	case model == domain.Full && classL:
		for _, my := range colors {
			for _, other := range colors {
				guards = append(guards, LFull(my, other))
			}
		}
	case model == domain.Full:
		for _, d := range dists {
			for _, my := range colors {
				for _, other := range colors {
					guards = append(guards, FullG(my, other, d))
				}
			}
		}
	case model == domain.External && classL:
		for _, c := range colors {
			guards = append(guards, LExternal(c))
		}
	case model == domain.External:
		for _, d := range dists {
			for _, c := range colors {
				guards = append(guards, ExternalG(c, d))
			}
		}
	case model == domain.Internal && classL:
		for _, c := range colors {
			guards = append(guards, LInternal(c))
		}
	default: // Internal, non class-L
		for _, d := range dists {
			for _, c := range colors {
				guards = append(guards, InternalG(c, d))
			}
		}
	}
	return guards
}

// NumberForModel returns the size of the canonical guard set for
// (model, num_colors, class_l): n^2 (Full) or n (External/Internal),
// doubled unless class-L.
func NumberForModel(model domain.ModelKind, numColors uint8, classL bool) int {
	var basic int
	if model == domain.Full {
		basic = int(numColors) * int(numColors)
	} else {
		basic = int(numColors)
	}
	if classL {
		return basic
	}
	return 2 * basic
}
