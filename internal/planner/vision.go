package planner

import (
	"context"
	"fmt"

	"github.com/lifesync/backend/internal/schedule"
)

const scanSystemPrompt = `You are analyzing an image of a timetable or schedule.

Extract every distinct event you can read and return a JSON array of objects.
Each object must have:
- title (string)
- category (one of "work", "study", "health", "leisure", "chore"; default to leisure)
- start (HH:MM 24h format string)
- end (HH:MM 24h format string)
- days (array of strings, e.g. ["Monday", "Wednesday"])

Rules:
- Ensure start time is before end time.
- Skip entries whose times you cannot read.
- Return ONLY the JSON array. No markdown, no text.`

// ScanTimetable extracts event drafts from a base64-encoded timetable image.
func (c *Client) ScanTimetable(ctx context.Context, imageData, mimeType string) ([]schedule.Draft, error) {
	if imageData == "" {
		return nil, fmt.Errorf("image data is empty")
	}
	if mimeType == "" {
		mimeType = "image/png"
	}

	text, err := c.generate(ctx, []part{
		{Text: scanSystemPrompt},
		{InlineData: &inlineData{MimeType: mimeType, Data: imageData}},
	})
	if err != nil {
		return nil, fmt.Errorf("scanning timetable: %w", err)
	}

	drafts, err := decodeDrafts(text)
	if err != nil {
		return nil, fmt.Errorf("parsing scan result: %w", err)
	}

	return drafts, nil
}
