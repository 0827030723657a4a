// Package models defines the data structures persisted by the storage layer.
package models

import (
	"time"
)

// Event represents a single schedule entry: a time-blocked task that recurs
// on a set of weekdays. A one-element day set is a one-off occurrence pinned
// to that day.
type Event struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Start     string    `json:"start"` // "HH:MM", 24-hour
	End       string    `json:"end"`   // "HH:MM", 24-hour
	Days      []string  `json:"days"`
	Seq       int64     `json:"seq"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Category constants. Unknown values are tolerated by the aggregation layer
// and counted under their literal key.
const (
	CategoryWork    = "work"
	CategoryStudy   = "study"
	CategoryHealth  = "health"
	CategoryLeisure = "leisure"
	CategoryChore   = "chore"
	CategoryEmpty   = "empty"
)

// DaysOfWeek lists the recognized weekday names in display order.
var DaysOfWeek = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// Categories lists the recognized category names.
var Categories = []string{
	CategoryWork, CategoryStudy, CategoryHealth, CategoryLeisure, CategoryChore, CategoryEmpty,
}

// IsValidDay reports whether name is one of the seven weekday names.
func IsValidDay(name string) bool {
	for _, d := range DaysOfWeek {
		if d == name {
			return true
		}
	}
	return false
}

// IsValidCategory reports whether name is a recognized category.
func IsValidCategory(name string) bool {
	for _, c := range Categories {
		if c == name {
			return true
		}
	}
	return false
}

// WeekdayName converts a time.Weekday to the weekday name used in day sets.
func WeekdayName(d time.Weekday) string {
	switch d {
	case time.Monday:
		return "Monday"
	case time.Tuesday:
		return "Tuesday"
	case time.Wednesday:
		return "Wednesday"
	case time.Thursday:
		return "Thursday"
	case time.Friday:
		return "Friday"
	case time.Saturday:
		return "Saturday"
	default:
		return "Sunday"
	}
}

// OccursOn reports whether the event recurs on the named day.
func (e *Event) OccursOn(day string) bool {
	for _, d := range e.Days {
		if d == day {
			return true
		}
	}
	return false
}

// SharesDay reports whether the two events have at least one weekday in common.
func (e *Event) SharesDay(other *Event) bool {
	for _, d := range other.Days {
		if e.OccursOn(d) {
			return true
		}
	}
	return false
}

// DefaultEvents is the built-in starter schedule, inserted when the store is
// empty on first run.
func DefaultEvents() []Event {
	return []Event{
		{
			ID:       "1",
			Title:    "Deep Work / Coding",
			Category: CategoryWork,
			Start:    "09:00",
			End:      "11:00",
			Days:     []string{"Monday", "Wednesday", "Friday"},
		},
		{
			ID:       "2",
			Title:    "Team Sync",
			Category: CategoryWork,
			Start:    "11:30",
			End:      "12:30",
			Days:     []string{"Monday"},
		},
		{
			ID:       "3",
			Title:    "Lunch Break",
			Category: CategoryLeisure,
			Start:    "12:30",
			End:      "13:30",
			Days:     []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
		},
	}
}
