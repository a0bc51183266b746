package countdown

import (
	"strings"
	"testing"
	"time"
)

// ---------------------------------------------------------------------------
// Until
// ---------------------------------------------------------------------------

func TestUntil_Decomposition(t *testing.T) {
	now := time.Date(2026, time.February, 18, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		offset  time.Duration
		hours   int
		minutes int
		seconds int
	}{
		{"five and a half hours", 5*time.Hour + 30*time.Minute, 5, 30, 0},
		{"exact hour", time.Hour, 1, 0, 0},
		{"under a minute", 42 * time.Second, 0, 0, 42},
		{"over a day", 30*time.Hour + 2*time.Minute + 3*time.Second, 30, 2, 3},
		{"sub-second truncates", 900 * time.Millisecond, 0, 0, 0},
		{"one second plus change", 1500 * time.Millisecond, 0, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Until(now.Add(tt.offset), now)
			if s.IsPast {
				t.Fatal("IsPast = true for a future target")
			}
			if s.Hours != tt.hours || s.Minutes != tt.minutes || s.Seconds != tt.seconds {
				t.Errorf("Until = %d:%02d:%02d, want %d:%02d:%02d",
					s.Hours, s.Minutes, s.Seconds, tt.hours, tt.minutes, tt.seconds)
			}
			if s.Remaining != tt.offset {
				t.Errorf("Remaining = %v, want %v", s.Remaining, tt.offset)
			}
		})
	}
}

func TestUntil_Past(t *testing.T) {
	now := time.Date(2026, time.February, 18, 18, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		target time.Time
	}{
		{"zero target", time.Time{}},
		{"exactly now", now},
		{"one ms ago", now.Add(-time.Millisecond)},
		{"long past", now.Add(-48 * time.Hour)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Until(tt.target, now)
			if !s.IsPast {
				t.Fatal("IsPast = false, want true")
			}
			if s.Hours != 0 || s.Minutes != 0 || s.Seconds != 0 || s.Remaining != 0 {
				t.Errorf("past state not zeroed: %+v", s)
			}
		})
	}
}

// Decomposition bound: the digits account for all but the truncated
// sub-second remainder.
func TestUntil_DecompositionBound(t *testing.T) {
	now := time.Date(2026, time.March, 1, 6, 0, 0, 0, time.UTC)

	offsets := []time.Duration{
		time.Millisecond,
		999 * time.Millisecond,
		time.Second,
		61*time.Second + 450*time.Millisecond,
		11*time.Hour + 59*time.Minute + 59*time.Second + 999*time.Millisecond,
	}

	for _, off := range offsets {
		s := Until(now.Add(off), now)
		digits := int64(s.Hours)*3_600_000 + int64(s.Minutes)*60_000 + int64(s.Seconds)*1_000
		total := s.Remaining.Milliseconds()
		if digits > total || total >= digits+1_000 {
			t.Errorf("offset %v: digits %dms not within [total-999, total] of %dms", off, digits, total)
		}
	}
}

func TestUntil_Monotonic(t *testing.T) {
	target := time.Date(2026, time.February, 18, 18, 5, 0, 0, time.UTC)
	now := target.Add(-3 * time.Second)

	var prev time.Duration = 1 << 62
	sawPast := false
	for i := 0; i < 8; i++ {
		s := Until(target, now)
		if s.IsPast {
			sawPast = true
		} else {
			if sawPast {
				t.Fatalf("IsPast reverted to false at now=%v", now)
			}
			if s.Remaining >= prev {
				t.Errorf("Remaining %v did not decrease (prev %v)", s.Remaining, prev)
			}
			prev = s.Remaining
		}
		now = now.Add(750 * time.Millisecond)
	}
	if !sawPast {
		t.Error("countdown never became past")
	}
}

// ---------------------------------------------------------------------------
// Rendering
// ---------------------------------------------------------------------------

func TestState_Clock(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{State{Hours: 2, Minutes: 5, Seconds: 9}, "2:05:09"},
		{State{Hours: 0, Minutes: 0, Seconds: 3}, "0:00:03"},
		{State{Hours: 27, Minutes: 59, Seconds: 59}, "27:59:59"},
		{State{IsPast: true}, "0:00:00"},
	}

	for _, tt := range tests {
		if got := tt.state.Clock(); got != tt.want {
			t.Errorf("Clock(%+v) = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestState_Short(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{State{Hours: 2, Minutes: 15}, "2h 15m"},
		{State{Minutes: 42}, "42m"},
		{State{Seconds: 30}, "0m"},
		{State{IsPast: true}, "0m"},
	}

	for _, tt := range tests {
		if got := tt.state.Short(); got != tt.want {
			t.Errorf("Short(%+v) = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestFormatOutput_Modes(t *testing.T) {
	now := time.Date(2026, time.February, 18, 15, 24, 0, 0, time.UTC)
	target := time.Date(2026, time.February, 18, 17, 39, 0, 0, time.UTC)

	tests := []struct {
		mode string
		want string
	}{
		{FormatClock, "2:15:00"},
		{FormatShort, "2h 15m"},
		{FormatTime, "17:39"},
		{FormatTimeShort, "17:39 (2h 15m)"},
		{FormatFull, "Iftar today 17:39 (in 2h 15m)"},
		{"unknown-mode", "17:39 (2h 15m)"},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			got := FormatOutput(target, "Mecca", true, now, tt.mode, "15:04")
			if got != tt.want {
				t.Errorf("FormatOutput(%q) = %q, want %q", tt.mode, got, tt.want)
			}
		})
	}
}

func TestFormatOutput_Tomorrow(t *testing.T) {
	now := time.Date(2026, time.February, 18, 19, 0, 0, 0, time.UTC)
	target := time.Date(2026, time.February, 19, 17, 40, 0, 0, time.UTC)

	got := FormatOutput(target, "", false, now, FormatFull, "3:04 PM")
	want := "Iftar tomorrow 5:40 PM (in 22h 40m)"
	if got != want {
		t.Errorf("FormatOutput = %q, want %q", got, want)
	}
}

func TestFormatOutput_CustomTemplate(t *testing.T) {
	now := time.Date(2026, time.February, 18, 15, 24, 30, 0, time.UTC)
	target := time.Date(2026, time.February, 18, 17, 39, 0, 0, time.UTC)

	got := FormatOutput(target, "Mecca", true, now, "{{.City}}: iftar in {{.Clock}}", "15:04")
	want := "Mecca: iftar in 2:14:30"
	if got != want {
		t.Errorf("custom template = %q, want %q", got, want)
	}

	got = FormatOutput(target, "Mecca", true, now, "{{.Bad", "15:04")
	if !strings.Contains(got, "template-err") {
		t.Errorf("invalid template should report template-err, got %q", got)
	}
}
