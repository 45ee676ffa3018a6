package openai

import (
	"encoding/json"
	"fmt"
	"strings"
)

// extractJSONArray returns the first well-formed JSON array embedded in raw
// text. Models routinely wrap their JSON in prose or markdown fences, so the
// scan is bracket-depth based and string-aware rather than a straight
// json.Unmarshal of the whole body.
func extractJSONArray(raw string) ([]byte, error) {
	start := strings.IndexByte(raw, '[')
	if start < 0 {
		return nil, fmt.Errorf("no JSON array in response")
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case inString:
			if c == '\\' {
				escaped = true
			} else if c == '"' {
				inString = false
			}
		case c == '"':
			inString = true
		case c == '[':
			depth++
		case c == ']':
			depth--
			if depth == 0 {
				candidate := raw[start : i+1]
				if !json.Valid([]byte(candidate)) {
					return nil, fmt.Errorf("extracted array is not valid JSON")
				}
				return []byte(candidate), nil
			}
		}
	}
	return nil, fmt.Errorf("unterminated JSON array in response")
}
