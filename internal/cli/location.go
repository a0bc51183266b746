package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/smokyabdulrahman/iftar-timer/internal/cache"
	"github.com/smokyabdulrahman/iftar-timer/internal/city"
	"github.com/smokyabdulrahman/iftar-timer/internal/config"
	"github.com/smokyabdulrahman/iftar-timer/internal/geo"
)

// openCache initializes the cache, which is best-effort: a failure disables
// caching with a warning instead of aborting the command.
func openCache(dir string) *cache.Cache {
	c, err := cache.New(dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: cache disabled: %v\n", err)
		return nil
	}
	return c
}

// resolveLocation determines the effective location.
// Priority: coordinates > city name > cached geolocation > IP auto-detect.
func resolveLocation(cfg *config.Config, c *cache.Cache, now time.Time) (*city.City, error) {
	switch {
	case cfg.Latitude != 0 || cfg.Longitude != 0:
		return coordsLocation(cfg)

	case cfg.City != "":
		return cityLocation(cfg)

	default:
		// Try cached geolocation first.
		if c != nil {
			if cached := c.LoadLocation(now); cached != nil {
				return cached, nil
			}
		}

		// Fall back to IP-based geolocation.
		detected, err := geo.DetectLocation()
		if err != nil {
			return nil, fmt.Errorf("no location specified and auto-detection failed: %w", err)
		}

		if c != nil {
			_ = c.SaveLocation(detected, now) // best-effort
		}

		return detected, nil
	}
}

// coordsLocation builds a location from explicit coordinates. Without an
// explicit timezone the system's local zone defines the civil day; reverse
// geocoding names the place when the network allows.
func coordsLocation(cfg *config.Config) (*city.City, error) {
	tz := cfg.Timezone
	if tz == "" {
		tz = time.Local.String()
	}

	loc := &city.City{
		Name:     fmt.Sprintf("%.4f, %.4f", cfg.Latitude, cfg.Longitude),
		Lat:      cfg.Latitude,
		Lng:      cfg.Longitude,
		Timezone: tz,
	}
	if err := loc.Coordinates().Validate(); err != nil {
		return nil, err
	}

	if named, err := geo.ReverseGeocode(cfg.Latitude, cfg.Longitude); err == nil {
		loc.Name = named.Name
		loc.Country = named.Country
	}

	return loc, nil
}

// cityLocation resolves a city name against the built-in list first, then
// falls back to geocoding.
func cityLocation(cfg *config.Config) (*city.City, error) {
	if found, ok := city.Find(cfg.City); ok {
		if cfg.Timezone != "" {
			found.Timezone = cfg.Timezone
		}
		return &found, nil
	}

	query := cfg.City
	if cfg.Country != "" {
		query += ", " + cfg.Country
	}
	results, err := geo.SearchCities(query)
	if err != nil {
		return nil, fmt.Errorf("city %q is not built in and geocoding failed: %w", cfg.City, err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("no match for city %q (try `iftar-timer search %q` or pass --latitude/--longitude)", cfg.City, cfg.City)
	}

	match := results[0]
	if cfg.Timezone != "" {
		match.Timezone = cfg.Timezone
	}
	return &match, nil
}

// location loads the IANA zone of a resolved city, falling back to the
// system's local zone when the city carries no timezone of its own.
func location(loc *city.City) (*time.Location, error) {
	if loc.Timezone == "" {
		return time.Local, nil
	}
	tz, err := loc.Location()
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", loc.Timezone, err)
	}
	return tz, nil
}
