// Package orchestrate fans survivors of the filter chain out to the
// verification driver, sequentially on a single enclosure or in
// parallel over a worker pool with one enclosure per worker, and
// reduces the per-algorithm outcomes into a report.
package orchestrate

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/katalvlaran/gatherspin/internal/algorithm"
	"github.com/katalvlaran/gatherspin/internal/promela"
	"github.com/katalvlaran/gatherspin/internal/sandbox"
	"github.com/katalvlaran/gatherspin/internal/verify"
	"github.com/katalvlaran/gatherspin/internal/xerrors"
)

// Survivor pairs a filter-chain survivor with its survivor index: its
// position among the algorithms the chain let through, counted in the
// deterministic enumeration order.
type Survivor struct {
	Index int
	Algo  algorithm.Algorithm
}

// Indexed wraps a filter-chain push-iterator source, assigning
// increasing indices only to the algorithms that survive (i.e. the ones
// the source actually yields), and exposes it as a new push-iterator
// over Survivor.
func Indexed(source func(yield func(algorithm.Algorithm) bool)) func(yield func(Survivor) bool) {
	return func(yield func(Survivor) bool) {
		i := 0
		source(func(a algorithm.Algorithm) bool {
			ok := yield(Survivor{Index: i, Algo: a})
			i++
			return ok
		})
	}
}

// Result is one algorithm's verification outcome, or the error that
// prevented classification.
type Result struct {
	Index int
	Code  string
	Out   verify.Outcome
	Err   error
}

// Summary aggregates counts across every dispatched result.
type Summary struct {
	Total      int
	Pass       int
	Fail       int
	Incomplete int
	Errors     int
}

func (s *Summary) add(r Result) {
	s.Total++
	switch {
	case r.Err != nil:
		s.Errors++
	case r.Out == verify.Pass:
		s.Pass++
	case r.Out == verify.Fail:
		s.Fail++
	case r.Out == verify.SearchIncomplete:
		s.Incomplete++
	}
}

// RunSequential creates a single enclosure and drives every survivor
// through it in enumeration order, emitting a progress dot per FAIL
// (every 10th a space, every 100th a newline) and a full report line for
// every non-FAIL outcome, flushed immediately so partial progress is
// durable.
func RunSequential(
	ctx context.Context,
	volumePath string,
	survivors func(yield func(Survivor) bool),
	driver verify.Driver,
	opts promela.RunOptions,
	out *Tee,
) (Summary, error) {
	enclosure, err := sandbox.CreateEnclosure(volumePath)
	if err != nil {
		return Summary{}, err
	}

	var summary Summary
	var loopErr error
	cancelled := false
	survivors(func(s Survivor) bool {
		if ctx.Err() != nil {
			cancelled = true
			return false
		}
		outcome, verr := driver.Verify(ctx, enclosure, s.Algo, opts)
		r := Result{Index: s.Index, Code: s.Algo.AsCode(), Out: outcome, Err: verr}
		summary.add(r)

		var werr error
		if verr == nil && outcome != verify.Fail {
			_, werr = fmt.Fprintf(out, "\n%4d : %s %s\n", r.Index, r.Out, r.Code)
		} else if verr != nil {
			_, werr = fmt.Fprintf(out, "\nERROR %4d : %v\n", r.Index, verr)
		} else {
			werr = writeDot(out, r.Index)
		}
		if werr != nil {
			loopErr = xerrors.Wrap(xerrors.KindIOError, "report sink write failed", werr)
			return false
		}
		_ = out.Flush()
		return true
	})
	if cancelled {
		fmt.Fprintf(out, "\nCANCELLED after %d algorithms\n", summary.Total)
		_ = out.Flush()
	}
	return summary, loopErr
}

func writeDot(out io.Writer, index int) error {
	var err error
	switch {
	case (index+1)%100 == 0:
		_, err = fmt.Fprint(out, "\n.")
	case (index+1)%10 == 0:
		_, err = fmt.Fprint(out, ". ")
	default:
		_, err = fmt.Fprint(out, ".")
	}
	return err
}

// RunParallel materialises survivors, fans them out across a worker pool
// of the given size (each worker lazily creating and reusing exactly one
// enclosure inside volumePath), and reduces the length-N result slice
// (ordering preserved) into a Summary after emitting PASS/Incomplete
// lines and any errors.
func RunParallel(
	ctx context.Context,
	volumePath string,
	survivors func(yield func(Survivor) bool),
	driver verify.Driver,
	opts promela.RunOptions,
	workers int,
	out *Tee,
	log zerolog.Logger,
) (Summary, error) {
	var all []Survivor
	survivors(func(s Survivor) bool {
		all = append(all, s)
		return true
	})
	n := len(all)
	if workers < 1 {
		workers = 1
	}

	tasks := make(chan Survivor)
	results := make(chan Result, n)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			var enclosure string
			for s := range tasks {
				if enclosure == "" {
					var err error
					enclosure, err = sandbox.CreateEnclosure(volumePath)
					if err != nil {
						results <- Result{Index: s.Index, Code: s.Algo.AsCode(), Err: err}
						continue
					}
					log.Debug().Int("worker", workerID).Str("enclosure", enclosure).Msg("enclosure created")
				}
				outcome, err := driver.Verify(ctx, enclosure, s.Algo, opts)
				results <- Result{Index: s.Index, Code: s.Algo.AsCode(), Out: outcome, Err: err}
			}
		}(w)
	}

	// A cancelled context stops the dispatch of new tasks; in-flight
	// tasks still complete so no enclosure is left mid-state-machine.
	dispatched := 0
dispatch:
	for _, s := range all {
		select {
		case <-ctx.Done():
			break dispatch
		case tasks <- s:
			dispatched++
		}
	}
	close(tasks)
	wg.Wait()
	close(results)

	if dispatched < n {
		fmt.Fprintf(out, "CANCELLED after %d of %d algorithms\n", dispatched, n)
	}

	collected := make([]Result, 0, n)
	for r := range results {
		collected = append(collected, r)
	}
	sort.Slice(collected, func(i, j int) bool { return collected[i].Index < collected[j].Index })

	var summary Summary
	for _, r := range collected {
		summary.add(r)
		var werr error
		switch {
		case r.Err != nil:
			_, werr = fmt.Fprintf(out, "ERROR : %4d : %v\n", r.Index, r.Err)
		case r.Out == verify.Pass:
			_, werr = fmt.Fprintf(out, "%4d : PASS %s\n", r.Index, r.Code)
		case r.Out == verify.SearchIncomplete:
			_, werr = fmt.Fprintf(out, "INCOMPLETE > %4d : SearchIncomplete %s\n", r.Index, r.Code)
		}
		if werr != nil {
			return summary, xerrors.Wrap(xerrors.KindIOError, "report sink write failed", werr)
		}
	}
	_ = out.Flush()

	return summary, nil
}

// Timing captures the five monotonic checkpoints of a run: prepare,
// generate, verify, cleanup, report, each measured from the run's start.
type Timing struct {
	start    time.Time
	Prepare  time.Duration
	Generate time.Duration
	Verify   time.Duration
	Cleanup  time.Duration
	Report   time.Duration
}

// NewTiming starts the clock.
func NewTiming() *Timing { return &Timing{start: time.Now()} }

func (t *Timing) MarkPrepare()  { t.Prepare = time.Since(t.start) }
func (t *Timing) MarkGenerate() { t.Generate = time.Since(t.start) }
func (t *Timing) MarkVerify()   { t.Verify = time.Since(t.start) }
func (t *Timing) MarkCleanup()  { t.Cleanup = time.Since(t.start) }
func (t *Timing) MarkReport()   { t.Report = time.Since(t.start) }

// WriteReport renders the summary counts, the cumulative/additive timing
// tables in milliseconds, and host info (uname -a, CPU count, OS/arch).
func WriteReport(out io.Writer, s Summary, t *Timing) error {
	if _, err := fmt.Fprintf(out,
		"Verification Finished with %d pass, %d fail, %d incomplete, %d errors (%d algorithms)\n",
		s.Pass, s.Fail, s.Incomplete, s.Errors, s.Total); err != nil {
		return err
	}

	prepare := t.Prepare.Milliseconds()
	gen := t.Generate.Milliseconds()
	verif := t.Verify.Milliseconds()
	cleanup := t.Cleanup.Milliseconds()
	report := t.Report.Milliseconds()

	deltaPrepare := prepare
	deltaGen := gen - prepare
	deltaVerif := verif - gen
	deltaCleanup := cleanup - verif
	deltaReport := report - cleanup

	fmt.Fprintf(out, "\nTiming report (Total: %d ms):\n", report)
	fmt.Fprintf(out, "| unit: ms       | prepare | generate | verify | cleanup | report |\n")
	fmt.Fprintf(out, "| -------------- | ------- | -------- | ------ | ------- | ------ |\n")
	fmt.Fprintf(out, "| **cumulative** | %d | %d | %d | %d | %d |\n", prepare, gen, verif, cleanup, report)
	fmt.Fprintf(out, "| **additive** | %d | %d | %d | %d | %d |\n", deltaPrepare, deltaGen, deltaVerif, deltaCleanup, deltaReport)
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Uname: %s\n", systemInfo())
	fmt.Fprintf(out, "Num cpus: %d\n", runtime.NumCPU())
	fmt.Fprintf(out, "OS/Arch: %s %s\n", runtime.GOOS, runtime.GOARCH)
	return nil
}

func systemInfo() string {
	out, err := exec.Command("uname", "-a").Output()
	if err != nil {
		return "<undetermined>"
	}
	return string(trimRight(out))
}

func trimRight(b []byte) []byte {
	for len(b) > 0 && (b[len(b)-1] == '\n' || b[len(b)-1] == '\r') {
		b = b[:len(b)-1]
	}
	return b
}
