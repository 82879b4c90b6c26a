package validation

import (
	"strings"

	"github.com/arbovm/levenshtein"
)

// repairEnum maps a raw model-emitted label onto one of the allowed values.
// Exact (case-insensitive) matches win; otherwise a unique nearest neighbor
// within maxDistance edits is accepted, so near-miss spellings like
// "financ" still land on "finance". Anything else falls back. The output is
// always a member of allowed or the fallback, which keeps repeated repair a
// fixed point.
func repairEnum(raw string, allowed []string, fallback string, maxDistance int) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return fallback
	}
	for _, candidate := range allowed {
		if s == candidate {
			return candidate
		}
	}
	if maxDistance <= 0 {
		return fallback
	}

	best := ""
	bestDistance := maxDistance + 1
	unique := false
	for _, candidate := range allowed {
		d := levenshtein.Distance(s, candidate)
		switch {
		case d < bestDistance:
			best = candidate
			bestDistance = d
			unique = true
		case d == bestDistance:
			// Ambiguous between two candidates (e.g. "mcro" sits one
			// edit from both micro and macro): refuse to guess.
			unique = false
		}
	}
	if unique && bestDistance <= maxDistance {
		return best
	}
	return fallback
}
