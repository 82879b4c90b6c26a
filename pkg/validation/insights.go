package validation

import (
	"go-pattern-analyzer/pkg/models"
)

var allowedComplexities = []string{
	string(models.ComplexitySimple), string(models.ComplexityModerate),
	string(models.ComplexityComplex), string(models.ComplexityHighlyComplex),
}

const (
	defaultExplanation = "The image contains structural regularities that suggest an underlying pattern, " +
		"though the model did not articulate them in detail."
	defaultSecretMessage = "Every image hides a structure waiting to be traced."
	defaultShareCaption  = "Found a hidden pattern in this photo"
)

// InsightsValidator repairs the free-text narrative block and its enumerated
// classification fields
type InsightsValidator struct {
	thresholds Thresholds
}

// NewInsightsValidator creates an insights validator with default thresholds
func NewInsightsValidator() *InsightsValidator {
	return &InsightsValidator{thresholds: DefaultThresholds()}
}

// NewInsightsValidatorWithThresholds creates an insights validator with custom thresholds
func NewInsightsValidatorWithThresholds(thresholds Thresholds) *InsightsValidator {
	return &InsightsValidator{thresholds: thresholds}
}

// Validate is total. It takes the surviving (already gated) patterns so the
// narrative's classification fields can be derived when the model omitted
// them: primaryDomain inherits the first pattern's domain, complexity is
// derived from pattern count.
func (v *InsightsValidator) Validate(raw interface{}, patterns []models.PatternRecord) models.Insights {
	fallbackDomain := models.DomainOther
	if len(patterns) > 0 {
		fallbackDomain = patterns[0].Domain
	}

	m, ok := asMap(raw)
	if !ok {
		// Entirely absent narrative: substitute the canned one.
		return models.Insights{
			Explanation:       defaultExplanation,
			SecretMessage:     defaultSecretMessage,
			ShareCaption:      defaultShareCaption,
			PrimaryDomain:     fallbackDomain,
			PatternComplexity: complexityFromCount(len(patterns)),
			SuggestedActions:  []string{},
		}
	}

	complexity := repairEnum(stringOr(m, "patternComplexity", ""), allowedComplexities,
		string(complexityFromCount(len(patterns))), v.thresholds.MaxEnumDistance)

	return models.Insights{
		Explanation:       nonEmptyOr(stringOr(m, "explanation", ""), defaultExplanation),
		SecretMessage:     nonEmptyOr(stringOr(m, "secretMessage", ""), defaultSecretMessage),
		ShareCaption:      nonEmptyOr(stringOr(m, "shareCaption", ""), defaultShareCaption),
		PrimaryDomain:     models.PatternDomain(repairEnum(stringOr(m, "primaryDomain", ""), allowedDomains, string(fallbackDomain), v.thresholds.MaxEnumDistance)),
		PatternComplexity: models.PatternComplexity(complexity),
		SuggestedActions:  asStringSlice(m["suggestedActions"]),
	}
}

func complexityFromCount(count int) models.PatternComplexity {
	switch {
	case count >= 3:
		return models.ComplexityComplex
	case count == 2:
		return models.ComplexityModerate
	default:
		return models.ComplexitySimple
	}
}

func nonEmptyOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
