package validation

import (
	"go-pattern-analyzer/pkg/models"
)

var allowedDomains = []string{
	string(models.DomainFinance), string(models.DomainNature),
	string(models.DomainArt), string(models.DomainGeometry),
	string(models.DomainArchitecture), string(models.DomainOther),
}

var allowedScales = []string{
	string(models.ScaleMicro), string(models.ScaleMeso),
	string(models.ScaleMacro), string(models.ScaleMultiScale),
}

// overlayTemplates holds the canned progressive-rendering steps synthesized
// when the model omits its own, keyed by normalized type.
var overlayTemplates = map[models.PatternType][]string{
	models.PatternFibonacci: {
		"Mark the spiral's origin point",
		"Trace the golden-ratio arc through each anchor",
		"Overlay the Fibonacci rectangle subdivisions",
		"Highlight where the spiral meets the image content",
	},
	models.PatternSymmetry: {
		"Draw the axis of symmetry",
		"Mirror the anchor points across the axis",
		"Shade the matched regions on both sides",
	},
	models.PatternGeometric: {
		"Outline the repeating unit",
		"Extend the unit across the detected grid",
		"Connect the anchor points along the repetition",
		"Fill the complete tiling over the content area",
	},
	models.PatternCustom: {
		"Mark the detected anchor points",
		"Connect the anchors in order",
		"Shade the enclosed region",
	},
}

// genericOverlaySteps is the fallback template for any type without a canned
// entry and the source of padding steps.
var genericOverlaySteps = []string{
	"Mark the region of interest",
	"Draw the detected structure over the image",
	"Highlight the anchor points",
	"Reveal the completed pattern overlay",
}

// defaultAnchors is the canonical substitute pair used when fewer than two
// valid anchors survive filtering.
func defaultAnchors() []models.Anchor {
	return []models.Anchor{{X: 25, Y: 25}, {X: 75, Y: 75}}
}

// defaultNames substitutes a display name when the model omits one. Each
// name must re-normalize to its own type, so the custom entry avoids every
// taxonomy keyword.
var defaultNames = map[models.PatternType]string{
	models.PatternFibonacci: "Fibonacci Structure",
	models.PatternSymmetry:  "Symmetry Pattern",
	models.PatternGeometric: "Geometric Pattern",
	models.PatternCustom:    "Detected Structure",
}

// PatternRecordValidator repairs one raw pattern entry into a complete
// PatternRecord
type PatternRecordValidator struct {
	thresholds Thresholds
}

// NewPatternRecordValidator creates a validator with default thresholds
func NewPatternRecordValidator() *PatternRecordValidator {
	return &PatternRecordValidator{thresholds: DefaultThresholds()}
}

// NewPatternRecordValidatorWithThresholds creates a validator with custom thresholds
func NewPatternRecordValidatorWithThresholds(thresholds Thresholds) *PatternRecordValidator {
	return &PatternRecordValidator{thresholds: thresholds}
}

// Validate produces a best-effort record from whatever the model emitted.
// It is total and never rejects a record outright; low-value records are the
// quality gate's concern, not field-level repair's.
func (v *PatternRecordValidator) Validate(raw interface{}) models.PatternRecord {
	m, ok := asMap(raw)
	if !ok {
		m = map[string]interface{}{}
	}

	rawType := stringOr(m, "type", "")
	subtype := stringOr(m, "subtype", "")
	name := stringOr(m, "name", "")
	patternType := NormalizePatternType(rawType, subtype, name)
	if name == "" {
		name = defaultNames[patternType]
	}

	confidence, ok := asNumber(m["confidence"])
	if !ok || confidence < 0 || confidence > 1 {
		confidence = v.thresholds.DefaultConfidence
	}

	orientation, ok := asNumber(m["orientation"])
	if !ok || orientation < 0 || orientation > 360 {
		orientation = 0
	}

	return models.PatternRecord{
		Type:         patternType,
		Subtype:      subtype,
		Name:         name,
		Confidence:   confidence,
		Anchors:      v.repairAnchors(m["anchors"]),
		Measurements: repairMeasurements(m["measurements"]),
		OverlaySteps: v.repairOverlaySteps(m["overlaySteps"], patternType),
		Domain:       models.PatternDomain(repairEnum(stringOr(m, "domain", ""), allowedDomains, string(models.DomainOther), v.thresholds.MaxEnumDistance)),
		Scale:        models.PatternScale(repairEnum(stringOr(m, "scale", ""), allowedScales, string(models.ScaleMacro), v.thresholds.MaxEnumDistance)),
		Orientation:  orientation,
	}
}

// repairAnchors keeps only points with both coordinates numeric and within
// [0,100]. Fewer than MinAnchors survivors means the geometry is not
// trustworthy at all, so the whole set is replaced by the canonical pair.
func (v *PatternRecordValidator) repairAnchors(raw interface{}) []models.Anchor {
	entries, ok := asSlice(raw)
	if !ok {
		return defaultAnchors()
	}

	anchors := make([]models.Anchor, 0, len(entries))
	for _, entry := range entries {
		point, ok := asMap(entry)
		if !ok {
			continue
		}
		x, okX := asNumber(point["x"])
		y, okY := asNumber(point["y"])
		if !okX || !okY || !inRange(x) || !inRange(y) {
			continue
		}
		anchors = append(anchors, models.Anchor{X: x, Y: y})
	}
	if len(anchors) < v.thresholds.MinAnchors {
		return defaultAnchors()
	}
	return anchors
}

// repairOverlaySteps guarantees MinOverlaySteps..MaxOverlaySteps
// human-readable steps: synthesized from the per-type template when absent,
// padded from the generic template when too short, truncated when too long.
func (v *PatternRecordValidator) repairOverlaySteps(raw interface{}, patternType models.PatternType) []string {
	steps := asStringSlice(raw)
	if len(steps) == 0 {
		template, ok := overlayTemplates[patternType]
		if !ok {
			template = genericOverlaySteps
		}
		steps = append([]string{}, template...)
	}
	for i := 0; len(steps) < v.thresholds.MinOverlaySteps; i++ {
		steps = append(steps, genericOverlaySteps[i%len(genericOverlaySteps)])
	}
	if len(steps) > v.thresholds.MaxOverlaySteps {
		steps = steps[:v.thresholds.MaxOverlaySteps]
	}
	return steps
}

// repairMeasurements keeps numeric entries of the open measurement mapping
// and coerces everything else to an empty map.
func repairMeasurements(raw interface{}) map[string]float64 {
	out := map[string]float64{}
	m, ok := asMap(raw)
	if !ok {
		return out
	}
	for key, value := range m {
		if n, ok := asNumber(value); ok {
			out[key] = n
		}
	}
	return out
}
