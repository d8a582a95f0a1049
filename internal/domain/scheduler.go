package domain

import (
	"strings"

	"github.com/katalvlaran/gatherspin/internal/xerrors"
)

// Scheduler is the adversary model under which a candidate algorithm is
// checked. The twelve values form a partial order (not a total one): it
// expresses relative adversary strength, not an arbitrary enumeration index.
type Scheduler uint8

const (
	Centralized Scheduler = iota
	FSYNC
	SSYNC
	AsyncLCStrict
	AsyncLCAtomic
	AsyncCMAtomic
	AsyncMoveAtomic
	AsyncMoveRegular
	AsyncMoveSafe
	Async
	AsyncRegular
	AsyncSafe
)

// AllSchedulers lists the full 12-value domain in declaration order.
var AllSchedulers = [12]Scheduler{
	Centralized, FSYNC, SSYNC,
	AsyncLCStrict, AsyncLCAtomic, AsyncCMAtomic,
	AsyncMoveAtomic, AsyncMoveRegular, AsyncMoveSafe,
	Async, AsyncRegular, AsyncSafe,
}

var schedulerNames = map[Scheduler]string{
	Centralized:      "Centralized",
	FSYNC:            "FSYNC",
	SSYNC:            "SSYNC",
	AsyncLCStrict:    "ASYNC_LC_Strict",
	AsyncLCAtomic:    "ASYNC_LC_Atomic",
	AsyncCMAtomic:    "ASYNC_CM_Atomic",
	AsyncMoveAtomic:  "ASYNC_Move_Atomic",
	AsyncMoveRegular: "ASYNC_Move_Regular",
	AsyncMoveSafe:    "ASYNC_Move_Safe",
	Async:            "ASYNC",
	AsyncRegular:     "ASYNC_Regular",
	AsyncSafe:        "ASYNC_Safe",
}

func (s Scheduler) String() string {
	if name, ok := schedulerNames[s]; ok {
		return name
	}
	return "Scheduler(?)"
}

// AsPromela is the upper-cased token passed as -DSCHEDULER=<...> to the
// verifier-source generator.
func (s Scheduler) AsPromela() string { return strings.ToUpper(s.String()) }

// Kebab renders the scheduler name in kebab-case, as used in default
// report filenames (e.g. "ASYNC_LC_Atomic" -> "async-lc-atomic").
func (s Scheduler) Kebab() string {
	return strings.ToLower(strings.ReplaceAll(s.String(), "_", "-"))
}

var schedulerByName = func() map[string]Scheduler {
	m := make(map[string]Scheduler, len(schedulerNames))
	for s, n := range schedulerNames {
		m[strings.ToLower(n)] = s
		m[strings.ToLower(strings.ReplaceAll(n, "_", "-"))] = s
	}
	m["async"] = Async
	return m
}()

// ParseScheduler accepts the canonical name, case-insensitively, with
// either underscores or hyphens as separators.
func ParseScheduler(value string) (Scheduler, error) {
	key := strings.ToLower(strings.ReplaceAll(value, "-", "_"))
	if s, ok := schedulerByName[key]; ok {
		return s, nil
	}
	key = strings.ToLower(strings.ReplaceAll(value, "_", "-"))
	if s, ok := schedulerByName[key]; ok {
		return s, nil
	}
	return 0, xerrors.BadCodef("scheduler", value, nil)
}

// Ordering is the result of comparing two schedulers under the partial order.
type Ordering int

const (
	Incomparable Ordering = iota
	Equal
	Less
	Greater
)

// Compare returns how s relates to other in the adversary-strength lattice.
// Centralized and FSYNC are incomparable minima; SSYNC dominates both; the
// ASYNC family dominates SSYNC, with internal branches for look-compute and
// move-granularity atomicity, and ASYNC_Safe > ASYNC_Regular > ASYNC at top.
func (s Scheduler) Compare(other Scheduler) Ordering {
	switch {
	case s == other:
		return Equal

	// from the bottom: Centralized and FSYNC are incomparable minima,
	// both below everything else except each other.
	case (s == Centralized && other == FSYNC) || (s == FSYNC && other == Centralized):
		return Incomparable
	case s == Centralized || s == FSYNC:
		return Less
	case other == Centralized || other == FSYNC:
		return Greater

	case s == SSYNC:
		return Less
	case other == SSYNC:
		return Greater

	// from the top: the three bare ASYNC_* variants dominate every
	// mid-lattice branch, in the strict order Safe > Regular > (plain).
	case other == AsyncSafe:
		return Less
	case s == AsyncSafe:
		return Greater
	case other == AsyncRegular:
		return Less
	case s == AsyncRegular:
		return Greater
	case other == Async:
		return Less
	case s == Async:
		return Greater

	// mid-lattice branches, each independent of the others.
	case s == AsyncLCStrict && other == AsyncLCAtomic:
		return Less
	case s == AsyncLCAtomic && other == AsyncLCStrict:
		return Greater
	case s == AsyncMoveAtomic && (other == AsyncMoveRegular || other == AsyncMoveSafe):
		return Less
	case (s == AsyncMoveRegular || s == AsyncMoveSafe) && other == AsyncMoveAtomic:
		return Greater
	case s == AsyncMoveRegular && other == AsyncMoveSafe:
		return Less
	case s == AsyncMoveSafe && other == AsyncMoveRegular:
		return Greater

	default:
		return Incomparable
	}
}

func (o Ordering) String() string {
	switch o {
	case Equal:
		return "="
	case Less:
		return "<"
	case Greater:
		return ">"
	default:
		return "?"
	}
}
