package planner

import (
	"context"
	"fmt"
	"strings"

	"github.com/lifesync/backend/internal/schedule"
)

const plannerSystemPrompt = `You are a scheduling assistant for the "LifeSync" app.
Current Day Context: %s.

Categories available: "work", "study", "health", "leisure", "chore".

Your task: Convert the user's natural language request into a JSON array of event objects.
Each object must have:
- title (string)
- category (one of the strings above, default to leisure)
- start (HH:MM 24h format string)
- end (HH:MM 24h format string)
- days (array of strings, e.g. ["Monday", "Wednesday"])

Rules:
- If user doesn't specify day, assume "%s".
- If user says "every day", include all days of the week.
- Ensure start time is before end time.
- Return ONLY the JSON array. No markdown, no text.`

// GeneratePlan converts a natural-language request into event drafts. The
// current day anchors requests that do not name a day. Drafts come back raw;
// the caller applies the bulk-insert normalization policy.
func (c *Client) GeneratePlan(ctx context.Context, prompt, currentDay string) ([]schedule.Draft, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("prompt is empty")
	}

	system := fmt.Sprintf(plannerSystemPrompt, currentDay, currentDay)
	text, err := c.generate(ctx, []part{
		{Text: system + "\n\nUser Request: " + prompt},
	})
	if err != nil {
		return nil, fmt.Errorf("generating plan: %w", err)
	}

	drafts, err := decodeDrafts(text)
	if err != nil {
		return nil, fmt.Errorf("parsing plan: %w", err)
	}

	return drafts, nil
}
