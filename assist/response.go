package assist

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Explanation is one per-attribute mapping record returned by the
// collaborator. It mirrors the deterministic engine's explanation shape so
// both paths produce interchangeable output.
type Explanation struct {
	Entity     string `json:"entity"`
	Attribute  string `json:"attribute"`
	SourceType string `json:"sourceType"`
	TargetType string `json:"targetType"`
	Reason     string `json:"reason"`
}

// Response is the required shape of a collaborator reply.
type Response struct {
	DDL          string        `json:"ddl"`
	Explanations []Explanation `json:"explanations"`
}

// envelope decodes with pointer fields so missing keys are
// distinguishable from empty values during shape validation.
type envelope struct {
	DDL          *string        `json:"ddl"`
	Explanations *[]Explanation `json:"explanations"`
}

// ParseResponse decodes and shape-validates a raw collaborator reply.
// The reply must be a JSON object with a string "ddl" field and an
// "explanations" array of mapping records; anything else is an error the
// caller treats as recoverable.
func ParseResponse(raw string) (*Response, error) {
	raw = stripFences(raw)
	var env envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return nil, fmt.Errorf("assist: response is not valid JSON: %w", err)
	}
	if env.DDL == nil {
		return nil, fmt.Errorf("assist: response missing %q field", "ddl")
	}
	if env.Explanations == nil {
		return nil, fmt.Errorf("assist: response missing %q field", "explanations")
	}
	return &Response{DDL: *env.DDL, Explanations: *env.Explanations}, nil
}

// stripFences removes a surrounding markdown code fence, which models
// emit even when asked for bare JSON.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
