package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lifesync/backend/internal/storage/models"
)

func day(days ...string) []string { return days }

func TestAgendaForFiltersAndSortsByStart(t *testing.T) {
	events := []models.Event{
		{ID: "a", Seq: 1, Title: "Late", Start: "14:00", End: "15:00", Days: day("Monday")},
		{ID: "b", Seq: 2, Title: "Other day", Start: "08:00", End: "09:00", Days: day("Tuesday")},
		{ID: "c", Seq: 3, Title: "Early", Start: "07:00", End: "08:00", Days: day("Monday", "Friday")},
	}

	agenda := AgendaFor(events, "Monday")
	require.Len(t, agenda, 2)
	assert.Equal(t, "c", agenda[0].ID)
	assert.Equal(t, "a", agenda[1].ID)
}

func TestAgendaForBreaksTiesByInsertionOrder(t *testing.T) {
	events := []models.Event{
		{ID: "second", Seq: 9, Start: "10:00", End: "11:00", Days: day("Monday")},
		{ID: "first", Seq: 4, Start: "10:00", End: "10:30", Days: day("Monday")},
	}

	agenda := AgendaFor(events, "Monday")
	require.Len(t, agenda, 2)
	assert.Equal(t, "first", agenda[0].ID)
	assert.Equal(t, "second", agenda[1].ID)
}

func TestAgendaForEmptyDay(t *testing.T) {
	events := []models.Event{
		{ID: "a", Start: "09:00", End: "10:00", Days: day("Monday")},
	}

	assert.Empty(t, AgendaFor(events, "Sunday"))
}
