package astro

import (
	"errors"
	"testing"
	"time"

	"github.com/nathan-osman/go-sunrise"
)

// sunriseSunsetRef returns go-sunrise's canned sunrise/sunset for cross-checking.
func sunriseSunsetRef(c Coordinates, year int, month time.Month, day int) (time.Time, time.Time) {
	return sunrise.SunriseSunset(c.Latitude, c.Longitude, year, month, day)
}

// ---------------------------------------------------------------------------
// Coordinates
// ---------------------------------------------------------------------------

func TestCoordinates_Validate(t *testing.T) {
	tests := []struct {
		name    string
		lat     float64
		lon     float64
		wantErr bool
	}{
		{"valid London", 51.5074, -0.1278, false},
		{"valid equator", 0, 0, false},
		{"valid extremes", 90, 180, false},
		{"valid negative extremes", -90, -180, false},
		{"latitude too high", 90.1, 0, true},
		{"latitude too low", -91, 0, true},
		{"longitude too high", 0, 181, true},
		{"longitude too low", 0, -180.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Coordinates{tt.lat, tt.lon}.Validate()
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidCoordinates) {
					t.Fatalf("Validate() = %v, want ErrInvalidCoordinates", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() unexpected error: %v", err)
			}
		})
	}
}

func TestCalculate_RejectsInvalidCoordinates(t *testing.T) {
	_, err := Calculate(Coordinates{95, 0}, 2026, time.February, 28, MethodISNA, MadhabShafi)
	if !errors.Is(err, ErrInvalidCoordinates) {
		t.Fatalf("expected ErrInvalidCoordinates, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Calculate
// ---------------------------------------------------------------------------

var testCities = []struct {
	name     string
	coords   Coordinates
	timezone string
}{
	{"London", Coordinates{51.5074, -0.1278}, "Europe/London"},
	{"Mecca", Coordinates{21.4225, 39.8262}, "Asia/Riyadh"},
	{"Jakarta", Coordinates{-6.2088, 106.8456}, "Asia/Jakarta"},
	{"New York", Coordinates{40.7128, -74.0060}, "America/New_York"},
}

func TestCalculate_Ordering(t *testing.T) {
	dates := []struct {
		y int
		m time.Month
		d int
	}{
		{2026, time.February, 18},
		{2026, time.March, 19},
		{2026, time.December, 21},
	}
	// June is left out: at London's latitude astronomical twilight never
	// ends in midsummer, which is the ErrHighLatitude case tested below.

	for _, city := range testCities {
		for _, date := range dates {
			for method := range methodParams {
				times, err := Calculate(city.coords, date.y, date.m, date.d, method, MadhabShafi)
				if err != nil {
					t.Fatalf("%s %v %s: unexpected error: %v", city.name, date, method, err)
				}

				ordered := []time.Time{times.Fajr, times.Sunrise, times.Dhuhr, times.Asr, times.Maghrib, times.Isha}
				for i := 1; i < len(ordered); i++ {
					if !ordered[i-1].Before(ordered[i]) {
						t.Errorf("%s %v %s: event %d (%v) not before event %d (%v)",
							city.name, date, method, i-1, ordered[i-1], i, ordered[i])
					}
				}
			}
		}
	}
}

func TestCalculate_MaghribMatchesSunset(t *testing.T) {
	// Maghrib is sunset. Our hour-angle uses the exact refraction altitude
	// while go-sunrise's canned SunriseSunset uses a rounded constant, so
	// allow a small tolerance.
	for _, city := range testCities {
		times, err := Calculate(city.coords, 2026, time.February, 28, MethodISNA, MadhabShafi)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", city.name, err)
		}

		rise, set := sunriseSunsetRef(city.coords, 2026, time.February, 28)
		if d := times.Maghrib.Sub(set); d < -2*time.Minute || d > 2*time.Minute {
			t.Errorf("%s: Maghrib %v differs from reference sunset %v by %v", city.name, times.Maghrib, set, d)
		}
		if d := times.Sunrise.Sub(rise); d < -2*time.Minute || d > 2*time.Minute {
			t.Errorf("%s: Sunrise %v differs from reference sunrise %v by %v", city.name, times.Sunrise, rise, d)
		}
	}
}

func TestCalculate_DhuhrIsMethodIndependent(t *testing.T) {
	c := Coordinates{24.7136, 46.6753} // Riyadh

	isna, err := Calculate(c, 2026, time.February, 28, MethodISNA, MadhabShafi)
	if err != nil {
		t.Fatalf("ISNA: %v", err)
	}
	uaq, err := Calculate(c, 2026, time.February, 28, MethodUmmAlQura, MadhabShafi)
	if err != nil {
		t.Fatalf("UmmAlQura: %v", err)
	}

	if !isna.Dhuhr.Equal(uaq.Dhuhr) {
		t.Errorf("Dhuhr differs across methods: ISNA %v, UmmAlQura %v", isna.Dhuhr, uaq.Dhuhr)
	}
	if isna.Fajr.Equal(uaq.Fajr) {
		t.Errorf("Fajr should differ across methods (ISNA 15° vs UmmAlQura 18.5°), both %v", isna.Fajr)
	}
}

func TestCalculate_FajrAngleOrdering(t *testing.T) {
	// A deeper twilight angle means an earlier fajr.
	c := Coordinates{51.5074, -0.1278}

	isna, err := Calculate(c, 2026, time.February, 28, MethodISNA, MadhabShafi) // 15°
	if err != nil {
		t.Fatalf("ISNA: %v", err)
	}
	mwl, err := Calculate(c, 2026, time.February, 28, MethodMuslimWorldLeague, MadhabShafi) // 18°
	if err != nil {
		t.Fatalf("MWL: %v", err)
	}

	if !mwl.Fajr.Before(isna.Fajr) {
		t.Errorf("MWL fajr (18°) %v should be before ISNA fajr (15°) %v", mwl.Fajr, isna.Fajr)
	}
}

func TestCalculate_UmmAlQuraIshaInterval(t *testing.T) {
	c := Coordinates{21.4225, 39.8262} // Mecca

	times, err := Calculate(c, 2026, time.February, 18, MethodUmmAlQura, MadhabShafi)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := times.Maghrib.Add(90 * time.Minute)
	if !times.Isha.Equal(want) {
		t.Errorf("UmmAlQura isha = %v, want maghrib+90m = %v", times.Isha, want)
	}
}

func TestCalculate_HanafiAsrIsLater(t *testing.T) {
	c := Coordinates{24.8607, 67.0011} // Karachi

	shafi, err := Calculate(c, 2026, time.February, 28, MethodKarachi, MadhabShafi)
	if err != nil {
		t.Fatalf("shafi: %v", err)
	}
	hanafi, err := Calculate(c, 2026, time.February, 28, MethodKarachi, MadhabHanafi)
	if err != nil {
		t.Fatalf("hanafi: %v", err)
	}

	if !shafi.Asr.Before(hanafi.Asr) {
		t.Errorf("Hanafi asr %v should be after Shafi asr %v", hanafi.Asr, shafi.Asr)
	}
	if !shafi.Dhuhr.Equal(hanafi.Dhuhr) {
		t.Errorf("madhab must not affect dhuhr: %v vs %v", shafi.Dhuhr, hanafi.Dhuhr)
	}
}

func TestCalculate_Idempotent(t *testing.T) {
	c := Coordinates{29.7604, -95.3698} // Houston

	a, err := Calculate(c, 2026, time.March, 1, MethodISNA, MadhabShafi)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	b, err := Calculate(c, 2026, time.March, 1, MethodISNA, MadhabShafi)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}

	if a != b {
		t.Errorf("Calculate is not idempotent: %+v vs %+v", a, b)
	}
}

func TestCalculate_HighLatitude(t *testing.T) {
	// Longyearbyen in midsummer: the sun never sets, so twilight events
	// cannot be computed and the error must surface.
	c := Coordinates{78.2232, 15.6267}

	_, err := Calculate(c, 2026, time.June, 21, MethodMuslimWorldLeague, MadhabShafi)
	if !errors.Is(err, ErrHighLatitude) {
		t.Fatalf("expected ErrHighLatitude, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// ParseMethod / ParseMadhab
// ---------------------------------------------------------------------------

func TestParseMethod(t *testing.T) {
	tests := []struct {
		in      string
		want    Method
		wantErr bool
	}{
		{"ISNA", MethodISNA, false},
		{"isna", MethodISNA, false},
		{"MuslimWorldLeague", MethodMuslimWorldLeague, false},
		{"ummalqura", MethodUmmAlQura, false},
		{"Karachi", MethodKarachi, false},
		{"egyptian", MethodEgyptian, false},
		{"", "", true},
		{"Tehran", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMethod(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseMethod(%q) expected error, got %v", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMethod(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseMethod(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseMadhab(t *testing.T) {
	if m, err := ParseMadhab("Hanafi"); err != nil || m != MadhabHanafi {
		t.Errorf("ParseMadhab(Hanafi) = %v, %v", m, err)
	}
	if m, err := ParseMadhab("shafi"); err != nil || m != MadhabShafi {
		t.Errorf("ParseMadhab(shafi) = %v, %v", m, err)
	}
	if _, err := ParseMadhab("maliki"); err == nil {
		t.Error("ParseMadhab(maliki) expected error")
	}
}
