package countdown

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"
)

// Format constants for display modes.
const (
	FormatClock     = "clock"
	FormatShort     = "short"
	FormatTime      = "time"
	FormatTimeShort = "time-and-remaining"
	FormatFull      = "full"
)

// FormatData is the data passed to custom Go templates.
type FormatData struct {
	City      string // City name, e.g. "Mecca" (may be empty)
	Time      string // Formatted iftar time, e.g. "17:39" or "5:39 PM"
	Clock     string // Countdown clock, e.g. "2:05:09"
	Remaining string // Short remaining, e.g. "2h 5m"
	Hours     int
	Minutes   int
	Seconds   int
	IsToday   bool // false once the resolved iftar rolled to tomorrow
}

// FormatOutput formats an iftar countdown for display according to the chosen
// format mode. timeFormat should be "15:04" for 24h or "3:04 PM" for 12h.
//
// If mode contains "{{", it is treated as a custom Go template string.
// Available fields: .City, .Time, .Clock, .Remaining, .Hours, .Minutes,
// .Seconds, .IsToday
//
// Example: "iftar in {{.Remaining}}" -> "iftar in 2h 5m"
func FormatOutput(target time.Time, city string, isToday bool, now time.Time, mode, timeFormat string) string {
	s := Until(target, now)
	timeStr := target.Format(timeFormat)

	if strings.Contains(mode, "{{") {
		return formatCustom(mode, FormatData{
			City:      city,
			Time:      timeStr,
			Clock:     s.Clock(),
			Remaining: s.Short(),
			Hours:     s.Hours,
			Minutes:   s.Minutes,
			Seconds:   s.Seconds,
			IsToday:   isToday,
		})
	}

	switch mode {
	case FormatClock:
		return s.Clock()
	case FormatShort:
		return s.Short()
	case FormatTime:
		return timeStr
	case FormatTimeShort:
		return fmt.Sprintf("%s (%s)", timeStr, s.Short())
	case FormatFull:
		day := "today"
		if !isToday {
			day = "tomorrow"
		}
		return fmt.Sprintf("Iftar %s %s (in %s)", day, timeStr, s.Short())
	default:
		return fmt.Sprintf("%s (%s)", timeStr, s.Short())
	}
}

// formatCustom executes a user-provided Go template string against the FormatData.
func formatCustom(tmpl string, data FormatData) string {
	t, err := template.New("custom").Parse(tmpl)
	if err != nil {
		return fmt.Sprintf("template-err: %v", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return fmt.Sprintf("template-err: %v", err)
	}

	return buf.String()
}
