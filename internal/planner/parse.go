package planner

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	"github.com/lifesync/backend/internal/schedule"
)

// decodeDrafts parses model output into event drafts. Models are asked for a
// bare JSON array but routinely wrap it in markdown fences or emit slightly
// broken JSON; fences are stripped and a repair pass runs before giving up.
func decodeDrafts(text string) ([]schedule.Draft, error) {
	raw := stripFences(text)
	if raw == "" {
		return nil, fmt.Errorf("planner returned empty output")
	}

	var drafts []schedule.Draft
	if err := json.Unmarshal([]byte(raw), &drafts); err == nil {
		return drafts, nil
	}

	repaired, err := jsonrepair.JSONRepair(raw)
	if err != nil {
		return nil, fmt.Errorf("planner output is not valid JSON: %w", err)
	}
	if err := json.Unmarshal([]byte(repaired), &drafts); err != nil {
		return nil, fmt.Errorf("decoding repaired planner output: %w", err)
	}

	return drafts, nil
}

// stripFences removes ```json / ``` markdown fences and surrounding noise,
// keeping the outermost JSON array when one is present.
func stripFences(text string) string {
	s := strings.ReplaceAll(text, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	s = strings.TrimSpace(s)

	// Trim any prose around the array.
	start := strings.Index(s, "[")
	end := strings.LastIndex(s, "]")
	if start >= 0 && end > start {
		s = s[start : end+1]
	}

	return s
}
