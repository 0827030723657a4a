package schedule

import (
	"fmt"
	"strings"

	"github.com/lifesync/backend/internal/storage/models"
)

// Draft is a partial event record supplied by a bulk producer (AI planner,
// image scan) before an id is assigned.
type Draft struct {
	Title    string   `json:"title"`
	Category string   `json:"category"`
	Start    string   `json:"start"`
	End      string   `json:"end"`
	Days     []string `json:"days"`
}

// RejectedDraft pairs a rejected draft with the reason it was dropped.
type RejectedDraft struct {
	Draft  Draft  `json:"draft"`
	Reason string `json:"reason"`
}

// NormalizeDrafts applies the bulk-insert policy to producer output:
//
//   - an unknown category is coerced to leisure, the planner's documented
//     default;
//   - unrecognized day names are dropped from the set;
//   - a draft with no title, an empty day set, malformed times, or a start
//     at or after its end is rejected with a reason.
//
// Accepted drafts come back as events ready for id assignment. Rejections
// are reported rather than silently propagated into the store.
func NormalizeDrafts(drafts []Draft) ([]models.Event, []RejectedDraft) {
	var accepted []models.Event
	var rejected []RejectedDraft

	for _, d := range drafts {
		d.Title = strings.TrimSpace(d.Title)
		if d.Title == "" {
			rejected = append(rejected, RejectedDraft{Draft: d, Reason: "missing title"})
			continue
		}

		var days []string
		for _, day := range d.Days {
			if models.IsValidDay(day) {
				days = append(days, day)
			}
		}
		if len(days) == 0 {
			rejected = append(rejected, RejectedDraft{Draft: d, Reason: "no valid days"})
			continue
		}

		dur, err := Duration(d.Start, d.End)
		if err != nil {
			rejected = append(rejected, RejectedDraft{Draft: d, Reason: err.Error()})
			continue
		}
		if dur <= 0 {
			rejected = append(rejected, RejectedDraft{
				Draft:  d,
				Reason: fmt.Sprintf("start %s is not before end %s", d.Start, d.End),
			})
			continue
		}

		category := d.Category
		if !models.IsValidCategory(category) {
			category = models.CategoryLeisure
		}

		accepted = append(accepted, models.Event{
			Title:    d.Title,
			Category: category,
			Start:    d.Start,
			End:      d.End,
			Days:     days,
		})
	}

	return accepted, rejected
}
