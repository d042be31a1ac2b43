package results

import "github.com/fmfcore/tmtmeta/internal/schema"

// outcomeRank orders the result monoid of spec §4.5:
// pass < info < warn < fail < error. skip is handled separately since it
// is absorbing only when every entry is skip.
var outcomeRank = map[schema.Outcome]int{
	schema.OutcomePass:  0,
	schema.OutcomeInfo:  1,
	schema.OutcomeWarn:  2,
	schema.OutcomeFail:  3,
	schema.OutcomeError: 4,
}

// Reduce folds a sequence of outcomes under the monoid of spec §4.5,
// reused both for a plan's outcome over its tests and for the overall
// run's outcome over its plans.
func Reduce(outcomes []schema.Outcome) schema.Outcome {
	if len(outcomes) == 0 {
		return schema.OutcomeSkip
	}

	allSkip := true
	best := schema.OutcomePass
	bestRank := -1
	for _, o := range outcomes {
		if o == schema.OutcomeSkip {
			continue
		}
		allSkip = false
		if r, ok := outcomeRank[o]; ok && r > bestRank {
			bestRank = r
			best = o
		}
	}
	if allSkip {
		return schema.OutcomeSkip
	}
	return best
}

// CheckAugmentedOutcome folds a record's per-check results into its own
// outcome, the resolution SPEC_FULL.md adopts for spec §9's open question
// on the interplay between exit-first and the check mechanism: a failing
// check counts as a test-level failure for exit-first purposes.
func CheckAugmentedOutcome(rec Record) schema.Outcome {
	out := rec.Result
	outRank, ok := outcomeRank[out]
	if !ok {
		outRank = -1
	}
	for _, c := range rec.Check {
		co := schema.Outcome(c.Result)
		if r, ok := outcomeRank[co]; ok && r > outRank {
			outRank = r
			out = co
		}
	}
	return out
}

// ExitCode maps a run's outcomes to the exit codes of spec §6.
func ExitCode(outcomes []schema.Outcome) int {
	if len(outcomes) == 0 {
		return 3
	}

	allSkip := true
	hasError := false
	hasFailOrWarn := false

	for _, o := range outcomes {
		switch o {
		case schema.OutcomeSkip:
		case schema.OutcomeError:
			hasError = true
			allSkip = false
		case schema.OutcomeFail, schema.OutcomeWarn:
			hasFailOrWarn = true
			allSkip = false
		default:
			allSkip = false
		}
	}

	switch {
	case allSkip:
		return 4
	case hasError:
		return 2
	case hasFailOrWarn:
		return 1
	default:
		return 0
	}
}
