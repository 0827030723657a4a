package schedule

import (
	"sort"

	"github.com/lifesync/backend/internal/storage/models"
)

// AgendaFor projects the full event collection onto a single weekday: events
// recurring on that day, sorted ascending by start time. Equal start times
// keep original insertion order via the seq field rather than relying on an
// unspecified stable-sort guarantee.
func AgendaFor(events []models.Event, day string) []models.Event {
	var agenda []models.Event
	for _, e := range events {
		if e.OccursOn(day) {
			agenda = append(agenda, e)
		}
	}

	sort.Slice(agenda, func(i, j int) bool {
		si := startMinutes(&agenda[i])
		sj := startMinutes(&agenda[j])
		if si != sj {
			return si < sj
		}
		return agenda[i].Seq < agenda[j].Seq
	})

	return agenda
}

// startMinutes returns the event's start as minutes after midnight, or 0
// when the value does not parse. Store writes are validated at the API
// boundary; unvalidated imports sort as if they started at midnight.
func startMinutes(e *models.Event) int {
	m, err := ParseClock(e.Start)
	if err != nil {
		return 0
	}
	return m
}
