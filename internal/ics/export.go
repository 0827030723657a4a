// Package ics serializes the weekly schedule as an iCalendar feed with
// recurring weekly events.
package ics

import (
	"fmt"
	"sort"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/lifesync/backend/internal/schedule"
	"github.com/lifesync/backend/internal/storage/models"
)

// byDayCodes maps weekday names to RRULE BYDAY codes.
var byDayCodes = map[string]string{
	"Monday":    "MO",
	"Tuesday":   "TU",
	"Wednesday": "WE",
	"Thursday":  "TH",
	"Friday":    "FR",
	"Saturday":  "SA",
	"Sunday":    "SU",
}

var weekdayIndex = map[string]time.Weekday{
	"Sunday":    time.Sunday,
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
}

// Export renders the event collection as an iCalendar document. Each stored
// event becomes one VEVENT recurring weekly on its days, anchored to the
// first occurrence on or after ref.
func Export(events []models.Event, ref time.Time, loc *time.Location) (string, error) {
	if loc == nil {
		loc = time.UTC
	}
	ref = ref.In(loc)

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//LifeSync//Weekly Schedule//EN")

	for _, event := range events {
		startMin, err := schedule.ParseClock(event.Start)
		if err != nil {
			continue
		}
		endMin, err := schedule.ParseClock(event.End)
		if err != nil {
			continue
		}

		byDay := byDayList(event.Days)
		if len(byDay) == 0 {
			continue
		}

		first := firstOccurrence(ref, event.Days, startMin, loc)

		duration := endMin - startMin
		if duration <= 0 {
			continue
		}

		entry := cal.AddEvent(fmt.Sprintf("%s@lifesync", event.ID))
		entry.SetSummary(event.Title)
		entry.SetDtStampTime(ref)
		entry.SetStartAt(first)
		entry.SetEndAt(first.Add(time.Duration(duration) * time.Minute))
		entry.AddRrule(fmt.Sprintf("FREQ=WEEKLY;BYDAY=%s", strings.Join(byDay, ",")))
		entry.SetProperty(ical.ComponentPropertyCategories, event.Category)
	}

	return cal.Serialize(), nil
}

// byDayList converts day names to sorted BYDAY codes, dropping unknowns.
func byDayList(days []string) []string {
	var codes []string
	seen := make(map[string]bool)
	for _, day := range days {
		code, ok := byDayCodes[day]
		if !ok || seen[code] {
			continue
		}
		seen[code] = true
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// firstOccurrence finds the earliest datetime on or after ref that lands on
// one of the event's days at the given start minute.
func firstOccurrence(ref time.Time, days []string, startMin int, loc *time.Location) time.Time {
	base := time.Date(ref.Year(), ref.Month(), ref.Day(), startMin/60, startMin%60, 0, 0, loc)

	for offset := 0; offset < 7; offset++ {
		candidate := base.AddDate(0, 0, offset)
		for _, day := range days {
			if wd, ok := weekdayIndex[day]; ok && candidate.Weekday() == wd {
				if !candidate.Before(ref) || offset > 0 {
					return candidate
				}
			}
		}
	}

	return base
}
