package parser

import (
	"encoding/json"
	"regexp"
	"strings"

	apperrors "go-pattern-analyzer/internal/errors"
)

var fenceRe = regexp.MustCompile("```[a-zA-Z]*\n|```")

// Parse turns the raw model reply into a generic JSON object. Empty text is
// a distinct EmptyResponse condition. Text that fails to parse is classified
// as truncated (non-empty but not ending with a closing brace) or garbled
// (ends correctly but still unparseable); the distinction drives different
// user guidance and is heuristic, not proof. Valid JSON whose top level is
// not an object is an InvalidStructure error.
func Parse(text string) (map[string]interface{}, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, apperrors.NewEmptyResponseError()
	}

	// Vision models habitually wrap JSON in markdown code fences.
	cleaned := strings.TrimSpace(fenceRe.ReplaceAllString(trimmed, ""))
	if cleaned == "" {
		return nil, apperrors.NewEmptyResponseError()
	}

	var value interface{}
	if err := json.Unmarshal([]byte(cleaned), &value); err != nil {
		return nil, apperrors.NewMalformedResponseError(classify(cleaned), err)
	}

	doc, ok := value.(map[string]interface{})
	if !ok {
		return nil, apperrors.NewInvalidStructureError("top-level JSON value is not an object")
	}
	return doc, nil
}

func classify(cleaned string) apperrors.MalformedKind {
	if !strings.HasSuffix(cleaned, "}") {
		return apperrors.MalformedTruncated
	}
	return apperrors.MalformedGarbled
}
