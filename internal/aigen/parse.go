package aigen

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var ErrEmptyResponse = errors.New("empty model response")

func stripFences(raw string) string {
	clean := strings.TrimSpace(raw)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```JSON")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.Trim(clean, "`")
	return strings.TrimSpace(clean)
}

// ParseQuestions decodes a model reply holding either a bare JSON array or an
// object with a "preguntas" array. Markdown code fences are ignored.
func ParseQuestions(raw string) ([]Question, error) {
	clean := stripFences(raw)
	if clean == "" {
		return nil, ErrEmptyResponse
	}

	var questions []Question
	if strings.HasPrefix(clean, "[") {
		if err := json.Unmarshal([]byte(clean), &questions); err != nil {
			return nil, fmt.Errorf("decode questions: %w", err)
		}
	} else {
		var wrapped struct {
			Preguntas []Question `json:"preguntas"`
			Error     string     `json:"error"`
		}
		if err := json.Unmarshal([]byte(clean), &wrapped); err != nil {
			return nil, fmt.Errorf("decode questions: %w", err)
		}
		if wrapped.Error != "" && len(wrapped.Preguntas) == 0 {
			return nil, fmt.Errorf("model refused: %s", wrapped.Error)
		}
		questions = wrapped.Preguntas
	}

	valid := questions[:0]
	for _, q := range questions {
		if strings.TrimSpace(q.Enunciado) == "" {
			continue
		}
		valid = append(valid, q)
	}
	if len(valid) == 0 {
		return nil, ErrEmptyResponse
	}
	return valid, nil
}
