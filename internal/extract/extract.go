// Package extract recovers a JSON object from raw model output.
// Backends are instructed to emit pure JSON but regularly prepend
// commentary or wrap the document in markdown code fences.
package extract

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedOutput reports that no valid JSON object could be
// recovered from the model output.
var ErrMalformedOutput = errors.New("malformed model output")

// Object returns the bytes of the JSON object carried in raw. It trims
// whitespace, strips a leading ```json or ``` fence and a trailing
// fence, then attempts a strict parse; on failure it retries on the
// substring between the first '{' and the last '}'. The second stage
// still fails for genuinely invalid JSON rather than masking it.
func Object(raw string) ([]byte, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	if b, ok := parseObject(s); ok {
		return b, nil
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end < start {
		return nil, fmt.Errorf("%w: no JSON object found", ErrMalformedOutput)
	}
	if b, ok := parseObject(s[start : end+1]); ok {
		return b, nil
	}
	return nil, fmt.Errorf("%w: invalid JSON between braces", ErrMalformedOutput)
}

func parseObject(s string) ([]byte, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil, false
	}
	return []byte(s), true
}
