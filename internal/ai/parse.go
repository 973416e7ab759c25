package ai

import (
	"encoding/json"
	"strings"

	"github.com/rs/zerolog/log"
)

// extractJSON finds the first complete JSON object in a raw model
// reply, stripping markdown code fences and surrounding prose.
func extractJSON(raw string) string {
	if start := strings.Index(raw, "```json"); start != -1 {
		raw = raw[start+7:]
		if end := strings.Index(raw, "```"); end != -1 {
			raw = raw[:end]
		}
	} else if start := strings.Index(raw, "```"); start != -1 {
		raw = raw[start+3:]
		if end := strings.Index(raw, "```"); end != -1 {
			raw = raw[:end]
		}
	}

	start := strings.Index(raw, "{")
	if start == -1 {
		return ""
	}
	end := strings.LastIndex(raw, "}")
	if end == -1 || end < start {
		return ""
	}

	candidate := raw[start : end+1]
	if json.Valid([]byte(candidate)) {
		return candidate
	}

	log.Warn().Str("snippet", candidate).Msg("model reply held a malformed JSON object")
	return ""
}

// parseAnalysis decodes a model reply into an Analysis, or nil when the
// reply does not carry one.
func parseAnalysis(raw string) *Analysis {
	blob := extractJSON(raw)
	if blob == "" {
		return nil
	}

	var a Analysis
	if err := json.Unmarshal([]byte(blob), &a); err != nil {
		return nil
	}
	if a.Summary == "" && a.Advice == "" && len(a.KPIs) == 0 {
		return nil
	}
	return &a
}
