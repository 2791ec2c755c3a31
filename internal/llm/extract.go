package llm

import (
	"encoding/json"
	"strings"

	llmerrors "github.com/astroforge/astroforge/internal/llm/errors"
)

// rawPrefixCap bounds how much offending raw text is carried into a
// malformed-response error for diagnosis.
const rawPrefixCap = 200

// extractJSON recovers a JSON object from the raw completion text.
//
// Exactly one layer of fenced-code-block wrapping is tolerated: a leading
// marker line is dropped, and a matching trailing marker line is dropped if
// present. No other normalization is attempted; prose outside a fence is a
// malformed response, not something to scan around.
func extractJSON(raw string) (map[string]any, error) {
	cleaned := strings.TrimSpace(raw)

	if strings.HasPrefix(cleaned, "```") {
		lines := strings.Split(cleaned, "\n")
		if len(lines) > 1 && strings.TrimSpace(lines[len(lines)-1]) == "```" {
			cleaned = strings.Join(lines[1:len(lines)-1], "\n")
		} else {
			cleaned = strings.Join(lines[1:], "\n")
		}
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(cleaned), &obj); err != nil {
		prefix := raw
		if len(prefix) > rawPrefixCap {
			prefix = prefix[:rawPrefixCap]
		}
		return nil, llmerrors.Wrap(llmerrors.KindMalformedResponse, err,
			"endpoint returned invalid JSON: %v; raw: %q", err, prefix)
	}
	return obj, nil
}
