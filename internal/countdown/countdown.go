// Package countdown decomposes the time remaining until a target instant.
//
// The engine is a pure function of (target, now): it holds no clock of its
// own. Callers re-invoke Until on a fixed cadence (one second in the watch
// loop) and render the returned snapshot.
package countdown

import (
	"fmt"
	"time"
)

// State is one countdown snapshot. Hours is unbounded (a target can be more
// than a day away); Minutes and Seconds are the remainder within the hour and
// minute. When IsPast is set, all fields are zero.
type State struct {
	Hours     int
	Minutes   int
	Seconds   int
	Remaining time.Duration
	IsPast    bool
}

// Until computes the countdown state for target at the instant now.
// A zero target means "no target yet" and reads as already past, so the
// caller always has something renderable. At target <= now the countdown is
// over: there is no state where the digits read zero but IsPast is false.
func Until(target, now time.Time) State {
	if target.IsZero() {
		return State{IsPast: true}
	}

	diff := target.Sub(now)
	if diff <= 0 {
		return State{IsPast: true}
	}

	ms := diff.Milliseconds()
	return State{
		Hours:     int(ms / 3_600_000),
		Minutes:   int(ms % 3_600_000 / 60_000),
		Seconds:   int(ms % 60_000 / 1_000),
		Remaining: diff,
	}
}

// Clock renders the state as "H:MM:SS", e.g. "2:05:09".
func (s State) Clock() string {
	return fmt.Sprintf("%d:%02d:%02d", s.Hours, s.Minutes, s.Seconds)
}

// Short renders the state as "Xh Ym", or "Ym" under an hour.
// Seconds are dropped; status bars refresh too slowly for them to matter.
func (s State) Short() string {
	if s.IsPast {
		return "0m"
	}
	if s.Hours > 0 {
		return fmt.Sprintf("%dh %dm", s.Hours, s.Minutes)
	}
	return fmt.Sprintf("%dm", s.Minutes)
}
