// Package ramadan tracks progress through the Ramadan month.
package ramadan

import "time"

// Period is one Ramadan month in the civil calendar. Dates are midnight UTC;
// the actual start depends on moon sighting, so they are an approximation.
type Period struct {
	Start     time.Time
	End       time.Time
	HijriYear int
}

// Current is Ramadan 1447 AH, expected February 18 to March 19, 2026.
var Current = Period{
	Start:     time.Date(2026, time.February, 18, 0, 0, 0, 0, time.UTC),
	End:       time.Date(2026, time.March, 19, 0, 0, 0, 0, time.UTC),
	HijriYear: 1447,
}

// Progress is a snapshot of how far through the month a given instant is.
type Progress struct {
	Day       int     // 1-based day of Ramadan, clamped to [1, TotalDays]
	TotalDays int
	Percent   float64 // Day/TotalDays * 100
	Before    bool    // now is before the period
	After     bool    // now is past the period
	DaysUntil int     // days until start, only meaningful when Before
}

// Progress computes the snapshot for now against the period.
func (p Period) Progress(now time.Time) Progress {
	totalDays := int(p.End.Sub(p.Start).Hours() / 24)

	if now.Before(p.Start) {
		until := p.Start.Sub(now)
		days := int(until.Hours() / 24)
		if until > time.Duration(days)*24*time.Hour {
			days++ // round up partial days
		}
		return Progress{TotalDays: totalDays, Before: true, DaysUntil: days}
	}
	if now.After(p.End) {
		return Progress{Day: totalDays, TotalDays: totalDays, Percent: 100, After: true}
	}

	day := int(now.Sub(p.Start).Hours()/24) + 1
	if day < 1 {
		day = 1
	}
	if day > totalDays {
		day = totalDays
	}

	return Progress{
		Day:       day,
		TotalDays: totalDays,
		Percent:   float64(day) / float64(totalDays) * 100,
	}
}

// In reports whether now falls inside the period.
func (p Period) In(now time.Time) bool {
	return !now.Before(p.Start) && !now.After(p.End)
}
