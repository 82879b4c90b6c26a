package validation

// Thresholds defines configurable bounds for the repair pipeline
type Thresholds struct {
	// Quality gate
	MinPatternConfidence  float64
	HighQualityMean       float64
	MediumQualityMean     float64
	PlaceholderConfidence float64

	// Pattern record repair
	MinAnchors        int
	MinOverlaySteps   int
	MaxOverlaySteps   int
	DefaultConfidence float64

	// Maximum edit distance for tolerant enum repair
	MaxEnumDistance int
}

// DefaultThresholds returns the default pipeline thresholds
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinPatternConfidence:  0.25,
		HighQualityMean:       0.7,
		MediumQualityMean:     0.5,
		PlaceholderConfidence: 0.3,
		MinAnchors:            2,
		MinOverlaySteps:       3,
		MaxOverlaySteps:       5,
		DefaultConfidence:     0.5,
		MaxEnumDistance:       2,
	}
}
