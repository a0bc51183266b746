// Package astro computes the six daily prayer instants for a coordinate and
// civil date from solar geometry.
//
// Solar transit and declination come from github.com/nathan-osman/go-sunrise;
// the twilight and Asr events are derived from the same transit using the
// standard hour-angle formula with per-method depression angles.
package astro

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/nathan-osman/go-sunrise"
)

// ErrInvalidCoordinates reports a latitude or longitude outside the valid
// range. It is a caller error, never a computation defect.
var ErrInvalidCoordinates = errors.New("invalid coordinates")

// ErrScheduleInvariant reports that the computed instants are not strictly
// increasing. This indicates a defect in the solar computation and is never
// silently reordered.
var ErrScheduleInvariant = errors.New("prayer times out of order")

// ErrHighLatitude reports that the sun never crosses a required twilight
// angle on the given date (polar day/night conditions).
var ErrHighLatitude = errors.New("sun does not reach required angle at this latitude")

// Coordinates is a geographic point in decimal degrees.
type Coordinates struct {
	Latitude  float64
	Longitude float64
}

// Validate checks the coordinate ranges: latitude [-90, 90], longitude [-180, 180].
func (c Coordinates) Validate() error {
	if c.Latitude < -90 || c.Latitude > 90 {
		return fmt.Errorf("%w: latitude %v out of range [-90, 90]", ErrInvalidCoordinates, c.Latitude)
	}
	if c.Longitude < -180 || c.Longitude > 180 {
		return fmt.Errorf("%w: longitude %v out of range [-180, 180]", ErrInvalidCoordinates, c.Longitude)
	}
	return nil
}

// Times holds the six daily event instants in UTC, in chronological order.
type Times struct {
	Fajr    time.Time
	Sunrise time.Time
	Dhuhr   time.Time
	Asr     time.Time
	Maghrib time.Time
	Isha    time.Time
}

// standardAltitude is the sun altitude at sunrise/sunset, accounting for
// atmospheric refraction and the solar disc radius.
const standardAltitude = -0.833

// Calculate computes the six event instants for the given civil date at the
// given coordinates. The computation is pure: identical inputs always yield
// identical outputs.
func Calculate(c Coordinates, year int, month time.Month, day int, method Method, madhab Madhab) (Times, error) {
	if err := c.Validate(); err != nil {
		return Times{}, err
	}

	p, ok := methodParams[method]
	if !ok {
		p = methodParams[DefaultMethod]
	}

	// Solar position for the date, from go-sunrise's primitives.
	d := sunrise.MeanSolarNoon(c.Longitude, year, month, day)
	anomaly := sunrise.SolarMeanAnomaly(d)
	center := sunrise.EquationOfCenter(anomaly)
	ecliptic := sunrise.EclipticLongitude(anomaly, center, d)
	transit := sunrise.SolarTransit(d, anomaly, ecliptic)
	declination := sunrise.Declination(ecliptic)

	riseAngle, err := hourAngle(c.Latitude, declination, standardAltitude)
	if err != nil {
		return Times{}, fmt.Errorf("sunrise: %w", err)
	}
	fajrAngle, err := hourAngle(c.Latitude, declination, -p.fajrAngle)
	if err != nil {
		return Times{}, fmt.Errorf("fajr: %w", err)
	}
	asrAngle, err := hourAngle(c.Latitude, declination, asrAltitude(c.Latitude, declination, madhab.shadowFactor()))
	if err != nil {
		return Times{}, fmt.Errorf("asr: %w", err)
	}

	t := Times{
		Fajr:    sunrise.JulianDayToTime(transit - fajrAngle/360),
		Sunrise: sunrise.JulianDayToTime(transit - riseAngle/360),
		Dhuhr:   sunrise.JulianDayToTime(transit),
		Asr:     sunrise.JulianDayToTime(transit + asrAngle/360),
		Maghrib: sunrise.JulianDayToTime(transit + riseAngle/360),
	}

	if p.ishaAfterMaghrib > 0 {
		t.Isha = t.Maghrib.Add(p.ishaAfterMaghrib)
	} else {
		ishaAngle, err := hourAngle(c.Latitude, declination, -p.ishaAngle)
		if err != nil {
			return Times{}, fmt.Errorf("isha: %w", err)
		}
		t.Isha = sunrise.JulianDayToTime(transit + ishaAngle/360)
	}

	if err := t.checkOrder(); err != nil {
		return Times{}, err
	}

	return t, nil
}

// checkOrder verifies the strict ordering fajr < sunrise < dhuhr < asr <
// maghrib < isha. A violation is surfaced, never clamped.
func (t Times) checkOrder() error {
	events := []struct {
		name string
		at   time.Time
	}{
		{"fajr", t.Fajr},
		{"sunrise", t.Sunrise},
		{"dhuhr", t.Dhuhr},
		{"asr", t.Asr},
		{"maghrib", t.Maghrib},
		{"isha", t.Isha},
	}
	for i := 1; i < len(events); i++ {
		if !events[i-1].at.Before(events[i].at) {
			return fmt.Errorf("%w: %s (%s) not before %s (%s)",
				ErrScheduleInvariant,
				events[i-1].name, events[i-1].at.Format(time.RFC3339),
				events[i].name, events[i].at.Format(time.RFC3339))
		}
	}
	return nil
}

const degree = math.Pi / 180

// hourAngle returns the hour angle (in degrees from solar noon) at which the
// sun's center reaches the given altitude (degrees, negative below horizon).
func hourAngle(latitude, declination, altitude float64) (float64, error) {
	num := math.Sin(altitude*degree) - math.Sin(latitude*degree)*math.Sin(declination*degree)
	den := math.Cos(latitude*degree) * math.Cos(declination*degree)
	cos := num / den
	if cos < -1 || cos > 1 || math.IsNaN(cos) {
		return 0, fmt.Errorf("%w: altitude %.2f°, latitude %.4f", ErrHighLatitude, altitude, latitude)
	}
	return math.Acos(cos) / degree, nil
}

// asrAltitude returns the sun altitude (degrees) at which an object's shadow
// equals shadowFactor times its height plus its noon shadow.
func asrAltitude(latitude, declination, shadowFactor float64) float64 {
	return math.Atan(1/(shadowFactor+math.Tan(math.Abs(latitude-declination)*degree))) / degree
}
