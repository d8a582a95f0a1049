// Package domain holds the small, total value types shared by the
// algorithm model: colours, moves, distances, model kinds and the
// scheduler lattice. Nothing here depends on the rest of the module.
package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/gatherspin/internal/xerrors"
)

// Color is a small non-negative integer in [0, NumColors).
type Color uint8

// Colors yields 0, 1, ..., n-1 in ascending order.
func Colors(n uint8) []Color {
	out := make([]Color, n)
	for i := range out {
		out[i] = Color(i)
	}
	return out
}

func (c Color) String() string { return strconv.Itoa(int(c)) }

// ParseColor parses a single decimal digit sequence into a Color.
func ParseColor(code string) (Color, error) {
	v, err := strconv.ParseUint(code, 10, 8)
	if err != nil {
		return 0, xerrors.BadCodef("color", code, err)
	}
	return Color(v), nil
}

// Move is the robot's movement command, totally ordered Stay < ToHalf < ToOther.
type Move uint8

const (
	Stay Move = iota
	ToHalf
	ToOther
)

// Moves lists the three moves in ascending order.
func Moves() [3]Move { return [3]Move{Stay, ToHalf, ToOther} }

func (m Move) String() string {
	switch m {
	case Stay:
		return "STAY"
	case ToHalf:
		return "TO_HALF"
	case ToOther:
		return "TO_OTHER"
	default:
		return fmt.Sprintf("Move(%d)", uint8(m))
	}
}

// Code returns the single-letter short code used in canonical algorithm text.
func (m Move) Code() string {
	switch m {
	case Stay:
		return "S"
	case ToHalf:
		return "H"
	case ToOther:
		return "O"
	default:
		return "?"
	}
}

// ParseMove accepts the short letter or the long spelling, case-insensitively.
func ParseMove(code string) (Move, error) {
	switch strings.ToUpper(code) {
	case "S", "STAY":
		return Stay, nil
	case "H", "HALF", "TO_HALF", "TOHALF":
		return ToHalf, nil
	case "O", "OTHER", "TO_OTHER", "TOOTHER":
		return ToOther, nil
	default:
		return 0, xerrors.BadCodef("move", code, nil)
	}
}

// Distance is the 3-valued gathered/near/far observation.
type Distance uint8

const (
	Same Distance = iota
	Near
	Far
)

func (d Distance) String() string {
	switch d {
	case Same:
		return "Same"
	case Near:
		return "Near"
	case Far:
		return "Far"
	default:
		return fmt.Sprintf("Distance(%d)", uint8(d))
	}
}

// Code returns the short code emitted for a distance; Near is always
// rendered as "d" (the enumerator never produces Far, so this never
// collides with Far's own "f" code).
func (d Distance) Code() string {
	switch d {
	case Same:
		return "s"
	case Near:
		return "d"
	case Far:
		return "f"
	default:
		return "?"
	}
}

// ParseDistance accepts "s" for Same, "d" or "n" for Near, "f" for Far.
func ParseDistance(code string) (Distance, error) {
	switch code {
	case "s":
		return Same, nil
	case "d", "n":
		return Near, nil
	case "f":
		return Far, nil
	default:
		return 0, xerrors.BadCodef("distance", code, nil)
	}
}

// ModelKind selects which pair of observable lights a guard may depend on.
type ModelKind uint8

const (
	Full ModelKind = iota
	External
	Internal
)

func (k ModelKind) String() string {
	switch k {
	case Full:
		return "Full"
	case External:
		return "External"
	case Internal:
		return "Internal"
	default:
		return fmt.Sprintf("ModelKind(%d)", uint8(k))
	}
}

// ParseModelKind accepts the single-letter form used by the original
// toolchain ("F"/"E"/"I") as well as the lower-case CLI category names.
func ParseModelKind(value string) (ModelKind, error) {
	switch value {
	case "F", "full", "Full":
		return Full, nil
	case "E", "external", "External":
		return External, nil
	case "I", "internal", "Internal":
		return Internal, nil
	default:
		return 0, xerrors.BadCodef("model kind", value, nil)
	}
}
