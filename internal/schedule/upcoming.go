package schedule

import (
	"time"

	"github.com/lifesync/backend/internal/storage/models"
)

// Upcoming returns the events recurring on now's weekday whose start time
// falls within (now, now+windowMinutes]. Alert delivery (sound, notification,
// websocket push) is the caller's concern; this stays independently testable.
func Upcoming(events []models.Event, now time.Time, windowMinutes int) []models.Event {
	today := models.WeekdayName(now.Weekday())
	nowMinutes := now.Hour()*60 + now.Minute()

	var due []models.Event
	for _, e := range events {
		if !e.OccursOn(today) {
			continue
		}
		start, err := ParseClock(e.Start)
		if err != nil {
			continue
		}
		diff := start - nowMinutes
		if diff > 0 && diff <= windowMinutes {
			due = append(due, e)
		}
	}

	return due
}

// MinutesUntil returns how many whole minutes remain before the event's
// start on the current day. Negative values mean the start has passed.
func MinutesUntil(e *models.Event, now time.Time) int {
	start, err := ParseClock(e.Start)
	if err != nil {
		return 0
	}
	return start - (now.Hour()*60 + now.Minute())
}
