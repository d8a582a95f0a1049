// Command count_filter reports how many algorithms survive each stage of
// the semantic filter chain, in plain text or as a LaTeX table row.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/gatherspin/internal/algorithm"
	"github.com/katalvlaran/gatherspin/internal/domain"
	"github.com/katalvlaran/gatherspin/internal/enumerate"
	"github.com/katalvlaran/gatherspin/internal/filter"
)

func main() {
	classL := flag.Bool("L", false, "class L algorithms")
	weak := flag.Bool("w", false, "weak filter (omit the some-non-gathered triplet)")
	retain := flag.Bool("R", false, "enable Viglietta retain filter")
	latex := flag.Bool("latex", false, "emit a LaTeX table row instead of plain text")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: count_filter [-L] [-w] [-R] [--latex] <category> <n_colors>")
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) != 2 {
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
	numColors := uint8(n)

	stages := filter.Stages(filter.Options{Weak: *weak, Retain: *retain})
	counters := make([]int64, len(stages)+1)

	source := func(yield func(algorithm.Algorithm) bool) {
		enumerate.Algorithms(category, numColors, *classL, yield)
	}
	filter.Viable(stages, counters, source, func(algorithm.Algorithm) bool { return true })

	if *latex {
		printLatex(stages, counters)
		return
	}
	printPlain(stages, counters)
}

func printPlain(stages []filter.Stage, counters []int64) {
	fmt.Printf("%-40s %d\n", "raw enumeration", counters[0])
	for i, s := range stages {
		fmt.Printf("%-40s %d\n", s.Name, counters[i+1])
	}
}

func printLatex(stages []filter.Stage, counters []int64) {
	names := make([]string, 0, len(stages)+1)
	values := make([]string, 0, len(stages)+1)
	names = append(names, "raw")
	values = append(values, strconv.FormatInt(counters[0], 10))
	for i, s := range stages {
		names = append(names, s.Name)
		values = append(values, strconv.FormatInt(counters[i+1], 10))
	}
	fmt.Printf("%% %s\n", strings.Join(names, " & "))
	fmt.Printf("%s \\\\\n", strings.Join(values, " & "))
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "count_filter:", err)
	os.Exit(1)
}
