package validation

import (
	"go-pattern-analyzer/pkg/models"
)

// ContentAreaValidator repairs the detected region-of-interest rectangle
type ContentAreaValidator struct{}

// NewContentAreaValidator creates a new content area validator
func NewContentAreaValidator() *ContentAreaValidator {
	return &ContentAreaValidator{}
}

// Validate turns whatever the model put under "contentArea" into a valid
// rectangle. It is total: a missing or malformed rectangle is replaced
// wholesale with the full-image default rather than patched field by field,
// because partial correction can produce a geometrically nonsensical but
// "valid" box.
func (v *ContentAreaValidator) Validate(raw interface{}) models.ContentArea {
	m, ok := asMap(raw)
	if !ok {
		return models.FullImageContentArea()
	}

	topLeftX, okX1 := asNumber(m["topLeftX"])
	topLeftY, okY1 := asNumber(m["topLeftY"])
	bottomRightX, okX2 := asNumber(m["bottomRightX"])
	bottomRightY, okY2 := asNumber(m["bottomRightY"])
	if !okX1 || !okY1 || !okX2 || !okY2 {
		return models.FullImageContentArea()
	}
	if !inRange(topLeftX) || !inRange(topLeftY) || !inRange(bottomRightX) || !inRange(bottomRightY) {
		return models.FullImageContentArea()
	}
	if topLeftX >= bottomRightX || topLeftY >= bottomRightY {
		return models.FullImageContentArea()
	}

	confidence, ok := asNumber(m["detectionConfidence"])
	if !ok || confidence < 0 || confidence > 1 {
		confidence = 0.5
	}

	return models.ContentArea{
		TopLeftX:            topLeftX,
		TopLeftY:            topLeftY,
		BottomRightX:        bottomRightX,
		BottomRightY:        bottomRightY,
		DetectionConfidence: confidence,
		DetectedArtifacts:   asStringSlice(m["detectedArtifacts"]),
	}
}

func inRange(coord float64) bool {
	return coord >= 0 && coord <= 100
}
