package ics

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifesync/backend/internal/storage/models"
)

// 2026-08-31 is a Monday.
var refMonday = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

func TestExportRecurringEvent(t *testing.T) {
	events := []models.Event{
		{
			ID:       "1",
			Title:    "Deep Work",
			Category: models.CategoryWork,
			Start:    "09:00",
			End:      "11:00",
			Days:     []string{"Monday", "Wednesday", "Friday"},
		},
	}

	out, err := Export(events, refMonday, time.UTC)
	require.NoError(t, err)

	assert.Contains(t, out, "BEGIN:VCALENDAR")
	assert.Contains(t, out, "SUMMARY:Deep Work")
	assert.Contains(t, out, "UID:1@lifesync")
	assert.Contains(t, out, "RRULE:FREQ=WEEKLY;BYDAY=FR,MO,WE")
	assert.Contains(t, out, "CATEGORIES:work")
	// First occurrence is the reference Monday itself.
	assert.Contains(t, out, "DTSTART:20260831T090000Z")
	assert.Contains(t, out, "DTEND:20260831T110000Z")
}

func TestExportAnchorsToNextMatchingDay(t *testing.T) {
	events := []models.Event{
		{
			ID:    "2",
			Title: "Yoga",
			Start: "07:00",
			End:   "08:00",
			Days:  []string{"Thursday"},
		},
	}

	out, err := Export(events, refMonday, time.UTC)
	require.NoError(t, err)

	// Thursday after Monday 2026-08-31 is 2026-09-03.
	assert.Contains(t, out, "DTSTART:20260903T070000Z")
}

func TestExportSkipsMalformedEvents(t *testing.T) {
	events := []models.Event{
		{ID: "3", Title: "Broken", Start: "25:00", End: "26:00", Days: []string{"Monday"}},
		{ID: "4", Title: "No Days", Start: "09:00", End: "10:00", Days: nil},
		{ID: "5", Title: "Reversed", Start: "10:00", End: "09:00", Days: []string{"Monday"}},
	}

	out, err := Export(events, refMonday, time.UTC)
	require.NoError(t, err)

	assert.NotContains(t, out, "Broken")
	assert.NotContains(t, out, "No Days")
	assert.NotContains(t, out, "Reversed")
	assert.NotContains(t, strings.ReplaceAll(out, "\r\n", "\n"), "BEGIN:VEVENT")
}
