// Command dot_from_string renders an algorithm's rule table as a
// Graphviz DOT digraph: one node per distinct guard code, one edge per
// rule labelled with the prescribed action.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/gatherspin/internal/algorithm"
	"github.com/katalvlaran/gatherspin/internal/domain"
)

func main() {
	classL := flag.Bool("L", false, "class L algorithms")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: dot_from_string [-L] <category> <n_colors> <algorithm-code>")
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) != 3 {
		flag.Usage()
		os.Exit(2)
	}

	category, err := domain.ParseModelKind(args[0])
	if err != nil {
		fatal(err)
	}
	n, err := strconv.ParseUint(args[1], 10, 8)
	if err != nil {
		fatal(err)
	}

	algo, err := algorithm.TryParse(category, uint8(n), *classL, args[2])
	if err != nil {
		fatal(err)
	}

	fmt.Println(renderDot(algo))
}

// renderDot writes one node per rule, labelled with its guard code, and
// one self-describing edge label carrying the prescribed action --
// there is no natural state-transition graph here (guards are
// observations, not states), so every rule is drawn as an isolated node
// with its action as a self-loop annotation. Gathered guards are drawn as
// double circles, and stationary actions as dashed edges.
func renderDot(algo algorithm.Algorithm) string {
	var b strings.Builder
	b.WriteString("digraph algorithm {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=box fontname=\"monospace\"];\n\n")

	for i, rule := range algo.Rules() {
		guardID := fmt.Sprintf("g%d", i)
		shape := "box"
		if rule.Guard.IsGathered() {
			shape = "doublecircle"
		}
		fmt.Fprintf(&b, "  %s [label=\"%s\" shape=%s];\n", guardID, rule.Guard.Code(), shape)
	}
	b.WriteString("\n")

	for i, rule := range algo.Rules() {
		guardID := fmt.Sprintf("g%d", i)
		style := "solid"
		if rule.Action.IsStationary() {
			style = "dashed"
		}
		fmt.Fprintf(&b, "  %s -> %s [label=\"%s\" style=%s];\n", guardID, guardID, rule.Action.Code(), style)
	}

	b.WriteString("}\n")
	return b.String()
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "dot_from_string:", err)
	os.Exit(1)
}
