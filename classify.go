package passfilter

import "strings"

// Status is the outcome of classifying a single candidate password.
type Status uint8

const (
	// Unique means the candidate was not previously seen; it has been added
	// to the filter as a side effect of classification.
	Unique Status = iota

	// AlreadyUsed means the filter reported the candidate as present. This
	// may be a false positive with the filter's configured probability.
	AlreadyUsed

	// Invalid means the candidate was empty or whitespace-only and was
	// neither checked against nor added to the filter.
	Invalid
)

// String returns the human-readable status used in classification reports.
func (s Status) String() string {
	switch s {
	case Unique:
		return "unique"
	case AlreadyUsed:
		return "already used"
	case Invalid:
		return "invalid password"
	default:
		return "unknown"
	}
}

// Result pairs a candidate with its classification outcome.
type Result struct {
	Candidate string
	Status    Status
}

// Classify processes candidates strictly in input order against f and
// returns one Result per candidate, in the same order.
//
// This is a stateful fold, not an independent per-item check: a candidate
// classified Unique is immediately added to the filter, so a later duplicate
// within the same batch is reported AlreadyUsed. Candidates that are empty
// or whitespace-only after trimming are Invalid and never touch the filter;
// absent values at an input boundary are represented as the empty string.
//
// The filter is mutated by this call. Callers must not treat it as read-only.
func Classify(f *Filter, candidates []string) []Result {
	results := make([]Result, 0, len(candidates))
	for _, candidate := range candidates {
		switch {
		case strings.TrimSpace(candidate) == "":
			results = append(results, Result{Candidate: candidate, Status: Invalid})
		case f.MightContain(candidate):
			// Assumed already present; no re-insert
			results = append(results, Result{Candidate: candidate, Status: AlreadyUsed})
		default:
			f.Add(candidate)
			results = append(results, Result{Candidate: candidate, Status: Unique})
		}
	}
	return results
}

// ResultMap collapses results into a candidate-keyed map. When the same
// literal candidate appears more than once in a batch, the later
// occurrence's status wins, so the map reflects the batch-final state for
// each value. Use the slice returned by Classify for per-occurrence
// fidelity.
func ResultMap(results []Result) map[string]Status {
	m := make(map[string]Status, len(results))
	for _, r := range results {
		m[r.Candidate] = r.Status
	}
	return m
}
