package gemini

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/trogers1052/bond-crm-service/internal/models"
)

// Opening and closing fences are matched separately; truncated output can
// carry only the first.
var (
	openingFence = regexp.MustCompile("(?i)^```(?:json)?")
	closingFence = regexp.MustCompile("\\n?```$")
)

// ParseCandidates decodes the model output into trade candidates. Markdown
// code fences are stripped first. Valid JSON that is not an array yields an
// empty list; anything else that fails to decode is a *ResponseError.
func ParseCandidates(text string) ([]models.TradeCandidate, error) {
	content := strings.TrimSpace(text)
	content = openingFence.ReplaceAllString(content, "")
	content = closingFence.ReplaceAllString(content, "")
	content = strings.TrimSpace(content)

	var raw json.RawMessage
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, &ResponseError{Raw: text, Err: err}
	}

	if !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("[")) {
		return []models.TradeCandidate{}, nil
	}

	candidates := []models.TradeCandidate{}
	if err := json.Unmarshal(raw, &candidates); err != nil {
		return nil, &ResponseError{Raw: text, Err: err}
	}
	return candidates, nil
}
