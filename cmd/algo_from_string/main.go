// Command algo_from_string emits the generated Promela model for one
// algorithm given its canonical code string.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/katalvlaran/gatherspin/internal/algorithm"
	"github.com/katalvlaran/gatherspin/internal/domain"
	"github.com/katalvlaran/gatherspin/internal/promela"
)

func main() {
	classL := flag.Bool("L", false, "class L algorithms")
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: algo_from_string [-L] <category> <n_colors> <algorithm-code>")
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

	fmt.Printf("# Algorithm: %s\n\n", algo.AsCode())
	fmt.Println(promela.Generate(algo))
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "algo_from_string:", err)
	os.Exit(1)
}
