// Package promela renders an Algorithm into the Promela model fragment
// consumed by the external verifier, and carries the four static model
// fragments (MainGathering.pml, Robots.pml, Schedulers.pml, Types.pml) as
// opaque byte blobs embedded at build time. Their content is out of
// scope; what matters here is that every enclosure gets byte-identical
// copies and that the generated Algorithms.pml fragment is a pure
// function of the Algorithm it was built from.
package promela

import (
	_ "embed"
	"strconv"
	"strings"

	"github.com/katalvlaran/gatherspin/internal/algorithm"
	"github.com/katalvlaran/gatherspin/internal/domain"
)

//go:embed assets/MainGathering.pml
var mainGathering string

//go:embed assets/Robots.pml
var robots string

//go:embed assets/Schedulers.pml
var schedulers string

//go:embed assets/Types.pml
var types string

// StaticFile names one of the four files installed once per enclosure.
type StaticFile struct {
	Name    string
	Content string
}

// StaticFiles lists the four static model fragments in the fixed
// installation order (mirroring the reference PML_FILES table).
func StaticFiles() [4]StaticFile {
	return [4]StaticFile{
		{Name: "MainGathering.pml", Content: mainGathering},
		{Name: "Robots.pml", Content: robots},
		{Name: "Schedulers.pml", Content: schedulers},
		{Name: "Types.pml", Content: types},
	}
}

// AlgorithmFile is the filename of the per-call generated fragment.
const AlgorithmFile = "Algorithms.pml"

// MainFile is the filename handed to the verifier-source generator.
const MainFile = "MainGathering.pml"

// Generate renders algo into the Algorithms.pml fragment: a name string,
// the two num_colors macros, and a procedure whose body evaluates a
// non-deterministic choice block with one branch per rule. Generate is a
// pure function of algo: the same algorithm always yields byte-identical
// output.
func Generate(algo algorithm.Algorithm) string {
	rules := algo.Rules()
	branches := make([]string, len(rules))
	for i, r := range rules {
		branches[i] = branchFor(r)
	}
	body := "    if\n" + strings.Join(branches, "\n") + "\n    fi;"

	numColors := algo.NumColors()
	code := algo.AsCode()

	var b strings.Builder
	b.WriteString("\n#ifndef __ALGORITHMS_PML__\n")
	b.WriteString("#define __ALGORITHMS_PML__\n")
	b.WriteString("#  define ALGO_NAME      \"ALGO_SYNTH_" + code + "\"\n")
	b.WriteString("#  define Algorithm(o,c) Alg_Synth(o,c)\n")
	nc := strconv.Itoa(int(numColors))
	b.WriteString("#  define MAX_COLOR      (" + nc + ")\n")
	b.WriteString("#  define NUM_COLORS     (" + nc + ")\n")
	b.WriteString("inline Alg_Synth(obs, command)\n{\n")
	b.WriteString("    command.move      = STAY;\n")
	b.WriteString("    command.new_color = obs.color.me;\n")
	b.WriteString(body)
	b.WriteString("\n}\n#endif\n")
	return b.String()
}

func branchFor(r algorithm.Rule) string {
	g := r.Guard
	c := r.Action.Color.String()
	m := r.Action.Movement.String()

	var conds []string
	if my, ok := g.MyColor(); ok {
		conds = append(conds, "(obs.color.me == "+my.String()+")")
	}
	if other, ok := g.OtherColor(); ok {
		conds = append(conds, "(obs.color.other == "+other.String()+")")
	}
	if d, ok := g.DistanceVal(); ok {
		if d == domain.Same {
			conds = append(conds, "(obs.same_position)")
		} else {
			conds = append(conds, "! (obs.same_position)")
		}
	}

	guardExpr := strings.Join(conds, " && ")
	return "    :: " + guardExpr + " -> command.move = " + m + "; command.new_color = " + c + ";"
}
