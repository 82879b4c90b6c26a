package models

import "time"

// PatternType is the closed top-level taxonomy. The vision model is free to
// invent subtype labels, but every persisted pattern carries exactly one of
// these four values. Field names and enum values in this file are the stable
// contract consumed by the storage layer and the mobile client; changing them
// is a breaking schema change for persisted history.
type PatternType string

const (
	PatternFibonacci PatternType = "fibonacci"
	PatternGeometric PatternType = "geometric"
	PatternSymmetry  PatternType = "symmetry"
	PatternCustom    PatternType = "custom"
)

// PatternDomain classifies where a pattern comes from.
type PatternDomain string

const (
	DomainFinance      PatternDomain = "finance"
	DomainNature       PatternDomain = "nature"
	DomainArt          PatternDomain = "art"
	DomainGeometry     PatternDomain = "geometry"
	DomainArchitecture PatternDomain = "architecture"
	DomainOther        PatternDomain = "other"
)

// PatternScale describes the physical scale a pattern operates at.
type PatternScale string

const (
	ScaleMicro      PatternScale = "micro"
	ScaleMeso       PatternScale = "meso"
	ScaleMacro      PatternScale = "macro"
	ScaleMultiScale PatternScale = "multi-scale"
)

// PatternComplexity grades the overall structure found in an image.
type PatternComplexity string

const (
	ComplexitySimple        PatternComplexity = "simple"
	ComplexityModerate      PatternComplexity = "moderate"
	ComplexityComplex       PatternComplexity = "complex"
	ComplexityHighlyComplex PatternComplexity = "highly_complex"
)

// AnalysisQuality is the aggregate confidence classification of one analysis.
type AnalysisQuality string

const (
	QualityLow    AnalysisQuality = "low"
	QualityMedium AnalysisQuality = "medium"
	QualityHigh   AnalysisQuality = "high"
)

// ContentArea is the sub-rectangle of the source image judged to contain
// meaningful content, in percentage coordinates over the full image.
// After validation it is always a well-formed rectangle: either the model's
// detection or the full-image default.
type ContentArea struct {
	TopLeftX            float64  `json:"topLeftX"`
	TopLeftY            float64  `json:"topLeftY"`
	BottomRightX        float64  `json:"bottomRightX"`
	BottomRightY        float64  `json:"bottomRightY"`
	DetectionConfidence float64  `json:"detectionConfidence"`
	DetectedArtifacts   []string `json:"detectedArtifacts"`
}

// FullImageContentArea is the wholesale replacement used whenever the model's
// rectangle is missing or geometrically unusable.
func FullImageContentArea() ContentArea {
	return ContentArea{
		TopLeftX:            0,
		TopLeftY:            0,
		BottomRightX:        100,
		BottomRightY:        100,
		DetectionConfidence: 0.5,
		DetectedArtifacts:   []string{},
	}
}

// Anchor is a 2D point in percentage coordinates relative to the content
// area, marking a structurally significant point of a detected pattern.
type Anchor struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PatternRecord is one detected pattern. After validation every field is
// present and in range: at least 2 anchors, 1-5 overlay steps, confidence and
// orientation bounded, enums drawn from the closed sets above.
type PatternRecord struct {
	Type         PatternType        `json:"type"`
	Subtype      string             `json:"subtype"`
	Name         string             `json:"name"`
	Confidence   float64            `json:"confidence"`
	Anchors      []Anchor           `json:"anchors"`
	Measurements map[string]float64 `json:"measurements"`
	OverlaySteps []string           `json:"overlaySteps"`
	Domain       PatternDomain      `json:"domain"`
	Scale        PatternScale       `json:"scale"`
	Orientation  float64            `json:"orientation"`
}

// Insights is the narrative block accompanying an analysis.
type Insights struct {
	Explanation       string            `json:"explanation"`
	SecretMessage     string            `json:"secretMessage"`
	ShareCaption      string            `json:"shareCaption"`
	PrimaryDomain     PatternDomain     `json:"primaryDomain"`
	PatternComplexity PatternComplexity `json:"patternComplexity"`
	SuggestedActions  []string          `json:"suggestedActions"`
}

// AnalysisMetadata carries bookkeeping about how the result was produced.
type AnalysisMetadata struct {
	ProcessingTimeMs int64           `json:"processingTimeMs"`
	ModelVersion     string          `json:"modelVersion"`
	AnalysisQuality  AnalysisQuality `json:"analysisQuality"`
}

// AnalysisResult is the aggregate produced once per capture. Patterns is
// never empty after the quality gate. The result is immutable once returned
// by the pipeline.
type AnalysisResult struct {
	ID          string           `json:"id"`
	ContentArea ContentArea      `json:"contentArea"`
	Patterns    []PatternRecord  `json:"patterns"`
	Insights    Insights         `json:"insights"`
	Metadata    AnalysisMetadata `json:"metadata"`
	Timestamp   time.Time        `json:"timestamp"`
}
