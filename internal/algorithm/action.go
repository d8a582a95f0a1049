package algorithm

import (
	"fmt"

	"github.com/katalvlaran/gatherspin/internal/domain"
	"github.com/katalvlaran/gatherspin/internal/xerrors"
)

// Action is the command a rule issues: move, then adopt a new colour.
type Action struct {
	Color    domain.Color
	Movement domain.Move
}

// IsStationary reports whether this action's movement is Stay.
func (a Action) IsStationary() bool { return a.Movement == domain.Stay }

// Code renders the action's canonical short code "<M><C>".
func (a Action) Code() string { return a.Movement.Code() + a.Color.String() }

// ParseAction parses a two-character-plus action code such as "S0" or "H12".
func ParseAction(code string) (Action, error) {
	if len(code) < 2 {
		return Action{}, xerrors.BadCodef("action", code, fmt.Errorf("wrong length"))
	}
	mv, err := domain.ParseMove(code[0:1])
	if err != nil {
		return Action{}, err
	}
	col, err := domain.ParseColor(code[1:])
	if err != nil {
		return Action{}, err
	}
	return Action{Color: col, Movement: mv}, nil
}

// Rule pairs a Guard with the Action it prescribes.
type Rule struct {
	Guard  Guard
	Action Action
}
