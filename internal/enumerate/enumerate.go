// Package enumerate builds the canonical guard set for a model
// configuration and lazily enumerates every syntactically valid
// algorithm over that guard set.
package enumerate

import (
	"math/big"

	"github.com/katalvlaran/gatherspin/internal/algorithm"
	"github.com/katalvlaran/gatherspin/internal/domain"
)

// BuildGuards returns the canonical guard list for (model, num_colors,
// class_l): the fixed enumeration order shared between the parser and
// the enumerator (algorithm.GuardsForModel). The result must never be
// mutated; share it immutably across every algorithm produced by
// Algorithms.
func BuildGuards(model domain.ModelKind, numColors uint8, classL bool) []algorithm.Guard {
	return algorithm.GuardsForModel(model, numColors, classL)
}

// Algorithms returns a lazily-evaluated sequence of every algorithm for
// (model, num_colors, class_l): the Cartesian product of Move x
// Color(num_colors) raised to the guard-list length, with action-0
// varying slowest and the last action fastest, and within each position
// move slow / colour fast, both ascending.
//
// yield follows the standard library's push-iterator convention: return
// false from yield to stop early.
func Algorithms(model domain.ModelKind, numColors uint8, classL bool, yield func(algorithm.Algorithm) bool) {
	guards := BuildGuards(model, numColors, classL)
	n := len(guards)
	moves := domain.Moves()

	actions := make([]algorithm.Action, n)
	// odometer indices: idx[i] in [0, 3*numColors) encodes (move, color)
	// with move slow, color fast -- move = idx/numColors, color = idx%numColors.
	idx := make([]int, n)
	base := int(numColors)
	total := base * 3

	for {
		for i := 0; i < n; i++ {
			actions[i] = algorithm.Action{
				Movement: moves[idx[i]/base],
				Color:    domain.Color(idx[i] % base),
			}
		}
		if !yield(algorithm.New(numColors, guards, actions)) {
			return
		}

		// increment the odometer, last position fastest.
		pos := n - 1
		for pos >= 0 {
			idx[pos]++
			if idx[pos] < total {
				break
			}
			idx[pos] = 0
			pos--
		}
		if pos < 0 {
			return
		}
	}
}

// CountAlgorithmsInModel computes the exact cardinality of Algorithms
// without enumerating it: (n^g * 3^g) choices of action vector over g
// guards, squared when the non-class-L guard set doubles g.
func CountAlgorithmsInModel(model domain.ModelKind, numColors uint8, classL bool) *big.Int {
	var numGuards int64
	if model == domain.Full {
		numGuards = int64(numColors) * int64(numColors)
	} else {
		numGuards = int64(numColors)
	}

	n := big.NewInt(int64(numColors))
	nPow := new(big.Int).Exp(n, big.NewInt(numGuards), nil)
	mPow := new(big.Int).Exp(big.NewInt(3), big.NewInt(numGuards), nil)
	inClassL := new(big.Int).Mul(nPow, mPow)

	if classL {
		return inClassL
	}
	return new(big.Int).Mul(inClassL, inClassL)
}
