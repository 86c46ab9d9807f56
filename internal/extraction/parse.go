package extraction

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseSupplement validates a model reply against the requested {"name","brand"} shape.
// Markdown code fences and text around the outermost JSON object are ignored.
// Every failure wraps ErrMalformedResult.
func ParseSupplement(text string) (*Supplement, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSpace(text)

	startIdx := strings.Index(text, "{")
	if startIdx == -1 {
		return nil, fmt.Errorf("%w: no JSON object found", ErrMalformedResult)
	}
	endIdx := strings.LastIndex(text, "}")
	if endIdx < startIdx {
		return nil, fmt.Errorf("%w: unterminated JSON object", ErrMalformedResult)
	}
	text = text[startIdx : endIdx+1]

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResult, err)
	}
	for _, key := range []string{"name", "brand"} {
		if _, ok := fields[key]; !ok {
			return nil, fmt.Errorf("%w: missing %q field", ErrMalformedResult, key)
		}
	}

	var s Supplement
	if err := json.Unmarshal([]byte(text), &s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResult, err)
	}
	s.Name = strings.TrimSpace(s.Name)
	s.Brand = strings.TrimSpace(s.Brand)

	return &s, nil
}
