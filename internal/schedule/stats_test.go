package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lifesync/backend/internal/storage/models"
)

func TestSummarizeTotalsAndCategories(t *testing.T) {
	agenda := []models.Event{
		{Category: models.CategoryWork, Start: "09:00", End: "11:00", Days: day("Monday")},
		{Category: models.CategoryWork, Start: "13:00", End: "14:00", Days: day("Monday")},
		{Category: models.CategoryHealth, Start: "18:00", End: "18:30", Days: day("Monday")},
	}

	s := Summarize(agenda)
	assert.Equal(t, 210, s.TotalMinutes)
	assert.Equal(t, 180, s.ByCategory[models.CategoryWork])
	assert.Equal(t, 30, s.ByCategory[models.CategoryHealth])

	// Keys appear only for categories actually present.
	_, ok := s.ByCategory[models.CategoryStudy]
	assert.False(t, ok)
}

func TestSummarizePercentagesAgainstActiveDay(t *testing.T) {
	agenda := []models.Event{
		{Category: models.CategoryStudy, Start: "08:00", End: "11:00", Days: day("Monday")},
	}

	s := Summarize(agenda)
	assert.InDelta(t, 25.0, s.Percentages[models.CategoryStudy], 0.001)
	assert.Zero(t, s.Percentages[models.CategoryWork])
}

func TestSummarizeClampsPercentagesAt100(t *testing.T) {
	// 900 minutes of work exceeds the 720-minute active day.
	agenda := []models.Event{
		{Category: models.CategoryWork, Start: "06:00", End: "21:00", Days: day("Monday")},
	}

	s := Summarize(agenda)
	assert.Equal(t, 900, s.ByCategory[models.CategoryWork])
	assert.Equal(t, 100.0, s.Percentages[models.CategoryWork])
}

func TestSummarizeUnrecognizedCategory(t *testing.T) {
	agenda := []models.Event{
		{Category: "gardening", Start: "10:00", End: "11:00", Days: day("Monday")},
	}

	s := Summarize(agenda)
	assert.Equal(t, 60, s.ByCategory["gardening"])

	// Only the four ring categories get percentages.
	_, ok := s.Percentages["gardening"]
	assert.False(t, ok)
	assert.Len(t, s.Percentages, 4)
}

func TestSummarizeSkipsUnparseableTimes(t *testing.T) {
	agenda := []models.Event{
		{Category: models.CategoryWork, Start: "oops", End: "11:00", Days: day("Monday")},
		{Category: models.CategoryWork, Start: "09:00", End: "10:00", Days: day("Monday")},
	}

	s := Summarize(agenda)
	assert.Equal(t, 60, s.TotalMinutes)
}

func TestSummarizeEmptyAgenda(t *testing.T) {
	s := Summarize(nil)
	assert.Zero(t, s.TotalMinutes)
	assert.Empty(t, s.ByCategory)
	assert.Len(t, s.Percentages, 4)
}
