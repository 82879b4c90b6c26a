package validation

import (
	"go-pattern-analyzer/pkg/models"
)

// QualityGate filters low-confidence detections and guarantees a non-empty
// result
type QualityGate struct {
	thresholds Thresholds
}

// NewQualityGate creates a gate with default thresholds
func NewQualityGate() *QualityGate {
	return &QualityGate{thresholds: DefaultThresholds()}
}

// NewQualityGateWithThresholds creates a gate with custom thresholds
func NewQualityGateWithThresholds(thresholds Thresholds) *QualityGate {
	return &QualityGate{thresholds: thresholds}
}

// Apply drops every pattern below the minimum confidence and derives the
// aggregate quality from the mean confidence of the survivors. When the
// filter empties the sequence, exactly one placeholder is synthesized so the
// downstream invariant "patterns is never empty" holds.
func (g *QualityGate) Apply(patterns []models.PatternRecord) ([]models.PatternRecord, models.AnalysisQuality) {
	kept := make([]models.PatternRecord, 0, len(patterns))
	for _, pattern := range patterns {
		if pattern.Confidence >= g.thresholds.MinPatternConfidence {
			kept = append(kept, pattern)
		}
	}
	if len(kept) == 0 {
		kept = append(kept, g.placeholderPattern())
	}

	var sum float64
	for _, pattern := range kept {
		sum += pattern.Confidence
	}
	mean := sum / float64(len(kept))

	quality := models.QualityLow
	switch {
	case mean > g.thresholds.HighQualityMean:
		quality = models.QualityHigh
	case mean > g.thresholds.MediumQualityMean:
		quality = models.QualityMedium
	}
	return kept, quality
}

// placeholderPattern is the single synthetic record emitted when nothing
// confident survived: a custom pattern anchored about the image center with
// one explanatory overlay step.
func (g *QualityGate) placeholderPattern() models.PatternRecord {
	return models.PatternRecord{
		Type:       models.PatternCustom,
		Subtype:    "",
		Name:       "Possible Pattern",
		Confidence: g.thresholds.PlaceholderConfidence,
		Anchors: []models.Anchor{
			{X: 40, Y: 40},
			{X: 60, Y: 60},
		},
		Measurements: map[string]float64{},
		OverlaySteps: []string{
			"No confident pattern was isolated; the most likely region of interest is highlighted",
		},
		Domain:      models.DomainOther,
		Scale:       models.ScaleMacro,
		Orientation: 0,
	}
}
