package validation

import (
	"testing"

	"go-pattern-analyzer/pkg/models"
)

func survivingPatterns(count int, domain models.PatternDomain) []models.PatternRecord {
	patterns := make([]models.PatternRecord, count)
	for i := range patterns {
		patterns[i] = models.PatternRecord{
			Type:       models.PatternGeometric,
			Name:       "Pattern",
			Confidence: 0.8,
			Domain:     domain,
		}
	}
	return patterns
}

func TestInsightsValidator_AbsentBlock(t *testing.T) {
	validator := NewInsightsValidator()

	insights := validator.Validate(nil, survivingPatterns(1, models.DomainNature))
	if insights.Explanation == "" || insights.SecretMessage == "" || insights.ShareCaption == "" {
		t.Errorf("Expected canned narrative for absent insights, got %+v", insights)
	}
	if insights.PrimaryDomain != models.DomainNature {
		t.Errorf("Expected primary domain inherited from first pattern, got %q", insights.PrimaryDomain)
	}
	if insights.SuggestedActions == nil || len(insights.SuggestedActions) != 0 {
		t.Errorf("Expected empty suggested actions, got %v", insights.SuggestedActions)
	}
}

func TestInsightsValidator_DomainInheritance(t *testing.T) {
	validator := NewInsightsValidator()

	// No surviving patterns at all: domain falls back to other.
	insights := validator.Validate(map[string]interface{}{}, nil)
	if insights.PrimaryDomain != models.DomainOther {
		t.Errorf("Expected other for no patterns, got %q", insights.PrimaryDomain)
	}

	// Invalid emitted domain also inherits.
	insights = validator.Validate(map[string]interface{}{
		"primaryDomain": "astral",
	}, survivingPatterns(1, models.DomainFinance))
	if insights.PrimaryDomain != models.DomainFinance {
		t.Errorf("Expected inherited finance domain, got %q", insights.PrimaryDomain)
	}

	// A valid emitted domain wins over inheritance.
	insights = validator.Validate(map[string]interface{}{
		"primaryDomain": "art",
	}, survivingPatterns(1, models.DomainFinance))
	if insights.PrimaryDomain != models.DomainArt {
		t.Errorf("Expected emitted art domain kept, got %q", insights.PrimaryDomain)
	}
}

func TestInsightsValidator_ComplexityDerivation(t *testing.T) {
	validator := NewInsightsValidator()

	tests := []struct {
		patternCount int
		expected     models.PatternComplexity
	}{
		{0, models.ComplexitySimple},
		{1, models.ComplexitySimple},
		{2, models.ComplexityModerate},
		{3, models.ComplexityComplex},
		{5, models.ComplexityComplex},
	}
	for _, tt := range tests {
		insights := validator.Validate(map[string]interface{}{}, survivingPatterns(tt.patternCount, models.DomainOther))
		if insights.PatternComplexity != tt.expected {
			t.Errorf("count %d: expected complexity %q, got %q",
				tt.patternCount, tt.expected, insights.PatternComplexity)
		}
	}

	// An explicitly valid complexity is kept regardless of count.
	insights := validator.Validate(map[string]interface{}{
		"patternComplexity": "highly_complex",
	}, survivingPatterns(1, models.DomainOther))
	if insights.PatternComplexity != models.ComplexityHighlyComplex {
		t.Errorf("Expected emitted complexity kept, got %q", insights.PatternComplexity)
	}
}

func TestInsightsValidator_SuggestedActionsCoercion(t *testing.T) {
	validator := NewInsightsValidator()

	// Not a sequence: coerced to empty, never an error.
	insights := validator.Validate(map[string]interface{}{
		"suggestedActions": "do things",
	}, nil)
	if insights.SuggestedActions == nil || len(insights.SuggestedActions) != 0 {
		t.Errorf("Expected empty actions for non-sequence input, got %v", insights.SuggestedActions)
	}

	insights = validator.Validate(map[string]interface{}{
		"suggestedActions": []interface{}{"frame it", 7.0, "share it"},
	}, nil)
	if len(insights.SuggestedActions) != 2 {
		t.Errorf("Expected 2 string actions kept, got %v", insights.SuggestedActions)
	}
}

func TestInsightsValidator_FreeTextPreserved(t *testing.T) {
	validator := NewInsightsValidator()

	insights := validator.Validate(map[string]interface{}{
		"explanation":   "A spiral winds through the composition.",
		"secretMessage": "Look closer.",
		"shareCaption":  "Spiral spotted!",
	}, nil)
	if insights.Explanation != "A spiral winds through the composition." {
		t.Errorf("Expected explanation preserved, got %q", insights.Explanation)
	}
	if insights.SecretMessage != "Look closer." || insights.ShareCaption != "Spiral spotted!" {
		t.Errorf("Expected free text preserved, got %+v", insights)
	}
}
