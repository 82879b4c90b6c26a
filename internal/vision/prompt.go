package vision

const systemPrompt = `You are a visual pattern analyst. You examine a photograph and identify the
geometric and mathematical patterns present in it: Fibonacci/golden-ratio
structures, symmetries, repeating geometric arrangements, and anything else
structurally notable. You always answer with a single JSON object and
nothing else. You never include markdown, commentary, or text outside the
JSON object.`

const userPrompt = `Analyze the attached photograph. First identify the content area: the
sub-rectangle containing meaningful content, excluding borders, watermarks,
toolbars and other UI artifacts. Then describe every visual pattern you can
find, each with its anchor points (percentage coordinates relative to the
content area), a confidence score, measurements, and 3-5 overlay steps that
progressively render the pattern. Finish with an insights narrative.`

const responseSchemaHint = `Respond with exactly this JSON shape:
{
  "contentArea": {
    "topLeftX": 0-100, "topLeftY": 0-100,
    "bottomRightX": 0-100, "bottomRightY": 0-100,
    "detectionConfidence": 0-1,
    "detectedArtifacts": ["string"]
  },
  "patterns": [
    {
      "type": "fibonacci|geometric|symmetry|custom",
      "subtype": "string",
      "name": "string",
      "confidence": 0-1,
      "anchors": [{"x": 0-100, "y": 0-100}],
      "measurements": {"string": number},
      "overlaySteps": ["string"],
      "domain": "finance|nature|art|geometry|architecture|other",
      "scale": "micro|meso|macro|multi-scale",
      "orientation": 0-360
    }
  ],
  "insights": {
    "explanation": "string",
    "secretMessage": "string",
    "shareCaption": "string",
    "primaryDomain": "finance|nature|art|geometry|architecture|other",
    "patternComplexity": "simple|moderate|complex|highly_complex",
    "suggestedActions": ["string"]
  }
}`

// NewAnalysisRequest builds the standard pattern-analysis request for one
// prepared image.
func NewAnalysisRequest(imageBytes []byte) Request {
	return Request{
		SystemPrompt: systemPrompt,
		UserPrompt:   userPrompt,
		SchemaHint:   responseSchemaHint,
		ImageBytes:   imageBytes,
	}
}
