// Package phase classifies an instant into one of six named day phases
// relative to a prayer schedule. The phase drives theme selection.
package phase

import (
	"time"

	"github.com/smokyabdulrahman/iftar-timer/internal/prayer"
)

// Phase names a portion of the fasting day. Exactly one phase is active at
// any instant for a given schedule.
type Phase string

const (
	LateNight  Phase = "lateNight"  // midnight to fajr
	Morning    Phase = "morning"    // fajr to noon
	Afternoon  Phase = "afternoon"  // noon to 3h before iftar
	PreIftar   Phase = "preIftar"   // 3h to 30m before iftar
	NearIftar  Phase = "nearIftar"  // 30m before to iftar
	AfterIftar Phase = "afterIftar" // iftar to midnight
)

// Default is returned when no schedule is available yet; the caller must
// always have a renderable phase.
const Default = Afternoon

// All lists the six phases in day order.
var All = []Phase{LateNight, Morning, Afternoon, PreIftar, NearIftar, AfterIftar}

// Classify returns the phase for `now` against the given schedule.
//
// The branches are evaluated in order, first match wins. Two independent
// clocks feed the thresholds: civil noon/midnight of the schedule's date and
// solar maghrib. On very short days the three-hour pre-iftar window can open
// before noon, which leaves the afternoon branch unreachable for that day;
// that degenerate ordering is kept as is.
func Classify(s *prayer.Schedule, now time.Time) Phase {
	if s == nil {
		return Default
	}

	year, month, day := s.Date.Date()
	noon := time.Date(year, month, day, 12, 0, 0, 0, s.Location)
	midnight := time.Date(year, month, day+1, 0, 0, 0, 0, s.Location)

	threeHoursBefore := s.Maghrib.Add(-3 * time.Hour)
	thirtyMinBefore := s.Maghrib.Add(-30 * time.Minute)

	switch {
	case now.Before(s.Fajr):
		return LateNight
	case now.Before(noon):
		return Morning
	case now.Before(threeHoursBefore):
		return Afternoon
	case now.Before(thirtyMinBefore):
		return PreIftar
	case now.Before(s.Maghrib):
		return NearIftar
	case now.Before(midnight):
		return AfterIftar
	default:
		// Past the schedule's own midnight: the next day's schedule is not
		// in hand yet, so this is the deep-night tail of the stale one.
		return LateNight
	}
}
