package schedule

import (
	"github.com/lifesync/backend/internal/storage/models"
)

// minHealthMinutes is the threshold below which a day is considered to be
// missing physical activity.
const minHealthMinutes = 30

// Suggestion proposes a schedule block the user may accept. The Action draft
// goes through the normal conflict-checked add path.
type Suggestion struct {
	ID     string       `json:"id"`
	Title  string       `json:"title"`
	Reason string       `json:"reason"`
	Action models.Event `json:"action"`
}

// Suggestions inspects a day's agenda and proposes improvements. An empty
// day yields nothing; a scheduled day with under 30 minutes of health time
// gets an evening walk suggestion.
func Suggestions(agenda []models.Event, day string) []Suggestion {
	if len(agenda) == 0 {
		return nil
	}

	summary := Summarize(agenda)

	var suggs []Suggestion
	if summary.ByCategory[models.CategoryHealth] < minHealthMinutes {
		suggs = append(suggs, Suggestion{
			ID:     "missing-health",
			Title:  "No Movement",
			Reason: "Missing physical activity.",
			Action: models.Event{
				Title:    "Walk",
				Category: models.CategoryHealth,
				Start:    "18:00",
				End:      "18:30",
				Days:     []string{day},
			},
		})
	}

	return suggs
}
