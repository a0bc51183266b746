// Package prayer computes daily prayer schedules and resolves the next iftar
// instant for a location, across the today/tomorrow boundary.
package prayer

import (
	"fmt"
	"time"

	"github.com/smokyabdulrahman/iftar-timer/internal/astro"
)

// EventNames lists the six daily events in chronological order.
var EventNames = []string{"Fajr", "Sunrise", "Dhuhr", "Asr", "Maghrib", "Isha"}

// Schedule holds the six event instants for exactly one civil date at one
// location. Instants are expressed in the location's timezone. A Schedule is
// immutable once computed.
type Schedule struct {
	Date     time.Time // start of the civil date in Location
	Location *time.Location

	Fajr    time.Time
	Sunrise time.Time
	Dhuhr   time.Time
	Asr     time.Time
	Maghrib time.Time
	Isha    time.Time
}

// IftarTime is the fast-breaking instant, which coincides with Maghrib.
func (s *Schedule) IftarTime() time.Time { return s.Maghrib }

// SuhoorEnd is the pre-dawn meal cutoff, which coincides with Fajr.
func (s *Schedule) SuhoorEnd() time.Time { return s.Fajr }

// Event pairs an event name with its instant.
type Event struct {
	Name string
	Time time.Time
}

// Events returns the six events in chronological order.
func (s *Schedule) Events() []Event {
	return []Event{
		{"Fajr", s.Fajr},
		{"Sunrise", s.Sunrise},
		{"Dhuhr", s.Dhuhr},
		{"Asr", s.Asr},
		{"Maghrib", s.Maghrib},
		{"Isha", s.Isha},
	}
}

// ComputeSchedule computes the schedule for the civil date that `at` falls on
// in the location's own calendar. The calendar day is always derived from the
// location's timezone, never from UTC.
func ComputeSchedule(coords astro.Coordinates, loc *time.Location, at time.Time, method astro.Method, madhab astro.Madhab) (*Schedule, error) {
	local := at.In(loc)
	year, month, day := local.Date()

	times, err := astro.Calculate(coords, year, month, day, method, madhab)
	if err != nil {
		return nil, fmt.Errorf("schedule for %04d-%02d-%02d: %w", year, month, day, err)
	}

	return &Schedule{
		Date:     time.Date(year, month, day, 0, 0, 0, 0, loc),
		Location: loc,
		Fajr:     times.Fajr.In(loc),
		Sunrise:  times.Sunrise.In(loc),
		Dhuhr:    times.Dhuhr.In(loc),
		Asr:      times.Asr.In(loc),
		Maghrib:  times.Maghrib.In(loc),
		Isha:     times.Isha.In(loc),
	}, nil
}

// Resolved is the next iftar a user should see right now: today's if it has
// not yet arrived, otherwise tomorrow's.
type Resolved struct {
	Time    time.Time
	IsToday bool
}

// ResolveNextIftar returns today's maghrib while `now` is strictly before it.
// At the instant of maghrib and after, it returns tomorrow's maghrib: once
// the fast breaks, the next point of interest is unambiguously tomorrow.
//
// Callers must re-resolve when the location or method changes, and at each
// local midnight (the location's midnight, not UTC's).
func ResolveNextIftar(coords astro.Coordinates, loc *time.Location, method astro.Method, madhab astro.Madhab, now time.Time) (Resolved, error) {
	today, err := ComputeSchedule(coords, loc, now, method, madhab)
	if err != nil {
		return Resolved{}, err
	}

	if now.Before(today.Maghrib) {
		return Resolved{Time: today.Maghrib, IsToday: true}, nil
	}

	tomorrow, err := ComputeSchedule(coords, loc, today.Date.AddDate(0, 0, 1), method, madhab)
	if err != nil {
		return Resolved{}, err
	}

	return Resolved{Time: tomorrow.Maghrib, IsToday: false}, nil
}

// NextLocalMidnight returns the start of the next civil day in loc.
// The watch loop arms its day-rollover timer against this instant.
func NextLocalMidnight(now time.Time, loc *time.Location) time.Time {
	year, month, day := now.In(loc).Date()
	return time.Date(year, month, day+1, 0, 0, 0, 0, loc)
}
