package validation

import (
	"strings"

	"go-pattern-analyzer/pkg/models"
)

// typeRule is one bucket of the taxonomy cascade: an ordered keyword set and
// the closed type it collapses to.
type typeRule struct {
	patternType models.PatternType
	keywords    []string
}

// typeRules is evaluated top to bottom, returning on first match. Several
// keywords are ambiguous across buckets (a "radial" Fibonacci spiral hits
// both the fibonacci and symmetry vocabularies), so the order
// fibonacci > symmetry > geometric is a deliberate tie-break favoring the
// most mathematically distinctive classification.
var typeRules = []typeRule{
	{
		patternType: models.PatternFibonacci,
		keywords: []string{
			"fibonacci", "golden", "spiral", "elliott_wave",
			"golden ratio", "phi", "1.618", "logarithmic spiral",
			"fibonacci sequence",
		},
	},
	{
		patternType: models.PatternSymmetry,
		keywords: []string{
			"symmetry", "symmetric", "bilateral", "radial", "mirror",
			"reflection", "rotational", "axis", "balanced",
		},
	},
	{
		patternType: models.PatternGeometric,
		keywords: []string{
			"geometric", "repetition", "repeating", "pattern", "grid",
			"tile", "tessellation", "fractal",
			"polygon", "triangle", "square", "circle", "rectangle", "hexagon",
			"head_shoulders", "wedge", "flag", "pennant", "channel", "pitchfork",
		},
	},
}

// NormalizePatternType collapses the open vocabulary the model emits into
// the closed four-value taxonomy. It matches keywords against the
// concatenation of type, subtype and name, lower-cased, and is pure: same
// inputs, same output, no I/O.
func NormalizePatternType(rawType, rawSubtype, rawName string) models.PatternType {
	haystack := strings.ToLower(rawType + " " + rawSubtype + " " + rawName)
	for _, rule := range typeRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(haystack, keyword) {
				return rule.patternType
			}
		}
	}
	return models.PatternCustom
}
