package insights

import (
	"encoding/json"
	"strings"
)

// Analysis is the constrained envelope the narrative model is asked for.
type Analysis struct {
	Summary     string   `json:"summary"`
	MoodInsight string   `json:"moodInsight"`
	Patterns    []string `json:"patterns"`
	Suggestions []string `json:"suggestions"`
}

// ParseAnalysis decodes a model response. Code fences are stripped
// first, and a response that still fails to decode degrades to an
// envelope carrying the raw text as the summary rather than an error.
func ParseAnalysis(text string) Analysis {
	raw := strings.TrimSpace(text)
	candidate := stripCodeFence(raw)

	var out Analysis
	if err := json.Unmarshal([]byte(candidate), &out); err == nil {
		if out.Summary != "" || out.MoodInsight != "" || len(out.Patterns) > 0 || len(out.Suggestions) > 0 {
			return out
		}
	}
	return Analysis{Summary: raw}
}

func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	body := strings.TrimPrefix(s, "```")
	// Drop an optional language tag on the fence line.
	if i := strings.IndexByte(body, '\n'); i >= 0 {
		first := strings.TrimSpace(body[:i])
		if first == "" || !strings.ContainsAny(first, "{[") {
			body = body[i+1:]
		}
	}
	body = strings.TrimSuffix(strings.TrimSpace(body), "```")
	return strings.TrimSpace(body)
}
