// Package extract turns free-form model completions into typed records.
//
// Models are instructed to answer with a single JSON object, but in practice
// completions arrive wrapped in markdown fences, prefixed with prose, or both.
// This package strips that decoration, parses the remainder strictly, and
// reports failures as typed errors the callers can degrade on.
package extract

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractionError signals that a completion did not contain valid JSON after
// fence stripping. Raw carries the offending text for diagnostic logging;
// callers must not treat it as data.
type ExtractionError struct {
	Raw string
	Err error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("no valid JSON object in completion: %v", e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// stripFences isolates the JSON payload from a completion. A labeled
// ```json fence wins over a bare ``` fence; text without fences is used as-is.
// Anything after the closing fence (trailing prose) is discarded.
func stripFences(s string) string {
	if _, after, ok := strings.Cut(s, "```json"); ok {
		if body, _, found := strings.Cut(after, "```"); found {
			return strings.TrimSpace(body)
		}
		return strings.TrimSpace(after)
	}
	if _, after, ok := strings.Cut(s, "```"); ok {
		if body, _, found := strings.Cut(after, "```"); found {
			return strings.TrimSpace(body)
		}
		return strings.TrimSpace(after)
	}
	return strings.TrimSpace(s)
}

// ExtractObject parses one JSON object out of a completion.
// Returns an *ExtractionError when the stripped text is not valid JSON.
func ExtractObject(raw string) (map[string]any, error) {
	payload := stripFences(raw)

	var obj map[string]any
	if err := json.Unmarshal([]byte(payload), &obj); err != nil {
		return nil, &ExtractionError{Raw: raw, Err: err}
	}
	return obj, nil
}

// Decode parses a completion directly into a typed record.
func Decode(raw string, v any) error {
	payload := stripFences(raw)

	if err := json.Unmarshal([]byte(payload), v); err != nil {
		return &ExtractionError{Raw: raw, Err: err}
	}
	return nil
}
