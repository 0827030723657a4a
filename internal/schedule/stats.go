package schedule

import (
	"math"

	"github.com/lifesync/backend/internal/storage/models"
)

// ActiveDayMinutes is the fixed denominator for category percentages: a
// 12-hour "active day".
const ActiveDayMinutes = 720

// ringCategories are the categories shown as percentage rings. Chores and
// empty blocks get informational bars only.
var ringCategories = []string{
	models.CategoryWork, models.CategoryStudy, models.CategoryHealth, models.CategoryLeisure,
}

// Summary describes how a day's agenda spends its time.
type Summary struct {
	TotalMinutes int                `json:"total_minutes"`
	ByCategory   map[string]int     `json:"by_category"`
	Percentages  map[string]float64 `json:"percentages"`
}

// Summarize folds a day's agenda into total and per-category minutes, plus
// percentage-of-active-day figures for the ring categories, clamped at 100.
// ByCategory keys appear only for categories actually present; unrecognized
// category strings are counted under their literal key. Events whose times
// do not parse contribute zero minutes.
func Summarize(agenda []models.Event) Summary {
	s := Summary{
		ByCategory:  make(map[string]int),
		Percentages: make(map[string]float64),
	}

	for _, e := range agenda {
		dur, err := Duration(e.Start, e.End)
		if err != nil {
			continue
		}
		s.TotalMinutes += dur
		s.ByCategory[e.Category] += dur
	}

	for _, cat := range ringCategories {
		pct := float64(s.ByCategory[cat]) / ActiveDayMinutes * 100
		s.Percentages[cat] = math.Min(pct, 100)
	}

	return s
}
