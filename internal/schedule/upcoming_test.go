package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifesync/backend/internal/storage/models"
)

// mondayAt returns a Monday at the given wall-clock time.
func mondayAt(hour, min int) time.Time {
	return time.Date(2026, time.August, 31, hour, min, 0, 0, time.UTC)
}

func TestUpcomingWithinWindow(t *testing.T) {
	events := []models.Event{
		{ID: "soon", Start: "10:03", End: "11:00", Days: day("Monday")},
		{ID: "later", Start: "10:30", End: "11:00", Days: day("Monday")},
		{ID: "started", Start: "09:55", End: "11:00", Days: day("Monday")},
	}

	due := Upcoming(events, mondayAt(10, 0), 5)
	require.Len(t, due, 1)
	assert.Equal(t, "soon", due[0].ID)
}

func TestUpcomingIgnoresOtherWeekdays(t *testing.T) {
	events := []models.Event{
		{ID: "tuesday", Start: "10:03", End: "11:00", Days: day("Tuesday")},
	}

	assert.Empty(t, Upcoming(events, mondayAt(10, 0), 5))
}

func TestUpcomingWindowBoundaryIsInclusive(t *testing.T) {
	events := []models.Event{
		{ID: "edge", Start: "10:05", End: "11:00", Days: day("Monday")},
	}

	due := Upcoming(events, mondayAt(10, 0), 5)
	require.Len(t, due, 1)
	assert.Equal(t, "edge", due[0].ID)
}

func TestUpcomingExcludesEventsStartingNow(t *testing.T) {
	events := []models.Event{
		{ID: "now", Start: "10:00", End: "11:00", Days: day("Monday")},
	}

	assert.Empty(t, Upcoming(events, mondayAt(10, 0), 5))
}

func TestMinutesUntil(t *testing.T) {
	e := models.Event{Start: "10:30", End: "11:00", Days: day("Monday")}
	assert.Equal(t, 30, MinutesUntil(&e, mondayAt(10, 0)))
	assert.Equal(t, -30, MinutesUntil(&e, mondayAt(11, 0)))
}
