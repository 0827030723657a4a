package schedule

import (
	"github.com/lifesync/backend/internal/storage/models"
)

// Default free-slot search parameters: scan from 08:00 for a one-hour block.
const (
	DefaultAnchorMinutes = 8 * 60
	DefaultBlockMinutes  = 60
)

// FallbackSlot is the fixed window reported when a day has no free block.
// It may overlap existing events; callers must re-run FindConflict before
// committing it.
var FallbackSlot = Slot{Start: "09:00", End: "10:00"}

// Slot is a candidate time window.
type Slot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// NextFreeSlot finds the first open window of blockMinutes on the given day,
// scanning forward from anchorMinutes. First-fit: the first gap large enough
// wins. The cursor only advances; an event ending before the cursor cannot
// pull it back. A trailing slot must end before midnight.
//
// The second return value is false when the day is fully booked. The caller
// decides the degraded path explicitly instead of receiving a silently
// conflicting window.
func NextFreeSlot(events []models.Event, day string, anchorMinutes, blockMinutes int) (Slot, bool) {
	if blockMinutes <= 0 {
		blockMinutes = DefaultBlockMinutes
	}

	cursor := anchorMinutes

	for _, e := range AgendaFor(events, day) {
		eStart, err := ParseClock(e.Start)
		if err != nil {
			continue
		}
		eEnd, err := ParseClock(e.End)
		if err != nil {
			continue
		}

		if eStart-cursor >= blockMinutes {
			return Slot{Start: FormatClock(cursor), End: FormatClock(cursor + blockMinutes)}, true
		}
		if eEnd > cursor {
			cursor = eEnd
		}
	}

	if cursor+blockMinutes < MinutesPerDay {
		return Slot{Start: FormatClock(cursor), End: FormatClock(cursor + blockMinutes)}, true
	}

	return Slot{}, false
}
