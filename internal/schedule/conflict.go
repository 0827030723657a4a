package schedule

import (
	"github.com/lifesync/backend/internal/storage/models"
)

// FindConflict returns the first stored event that overlaps the candidate,
// or nil when the candidate fits. Two events conflict when they share at
// least one weekday and their [start, end) intervals overlap; touching
// endpoints do not conflict. excludeID skips the event being edited.
//
// Events are scanned linearly in stored order; a weekly personal schedule is
// tens of events, so no interval structure is warranted.
func FindConflict(candidate models.Event, events []models.Event, excludeID string) *models.Event {
	candStart, err := ParseClock(candidate.Start)
	if err != nil {
		return nil
	}
	candEnd, err := ParseClock(candidate.End)
	if err != nil {
		return nil
	}

	for i := range events {
		e := &events[i]
		if excludeID != "" && e.ID == excludeID {
			continue
		}
		if !e.SharesDay(&candidate) {
			continue
		}

		eStart, err := ParseClock(e.Start)
		if err != nil {
			continue
		}
		eEnd, err := ParseClock(e.End)
		if err != nil {
			continue
		}

		if candStart < eEnd && candEnd > eStart {
			return e
		}
	}

	return nil
}
