// Package geo resolves locations from the network: IP-based auto-detection
// and Nominatim city search. Both endpoints are overridable for tests.
package geo

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/smokyabdulrahman/iftar-timer/internal/city"
)

// ipAPIResponse maps the response from ip-api.com.
type ipAPIResponse struct {
	Status   string  `json:"status"`
	Message  string  `json:"message"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	City     string  `json:"city"`
	Country  string  `json:"country"`
	Timezone string  `json:"timezone"`
}

// detectAPIURL is the geolocation API endpoint. It is a variable (not a
// constant) so that tests can override it with an httptest server URL.
var detectAPIURL = "http://ip-api.com/json/?fields=status,message,lat,lon,city,country,timezone"

// DetectLocation uses ip-api.com to determine the user's location from their
// public IP address. This is a free service that requires no API key.
// Detected data is external input: coordinates are validated before being
// handed to the calculator, never trusted as is.
func DetectLocation() (*city.City, error) {
	client := &http.Client{Timeout: 5 * time.Second}

	resp, err := client.Get(detectAPIURL)
	if err != nil {
		return nil, fmt.Errorf("geolocation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geolocation API returned status %d", resp.StatusCode)
	}

	var result ipAPIResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode geolocation response: %w", err)
	}

	if result.Status != "success" {
		return nil, fmt.Errorf("geolocation failed: %s", result.Message)
	}

	detected := city.City{
		Name:     result.City,
		Country:  result.Country,
		Lat:      result.Lat,
		Lng:      result.Lon,
		Timezone: result.Timezone,
	}
	if err := detected.Coordinates().Validate(); err != nil {
		return nil, fmt.Errorf("geolocation returned unusable coordinates: %w", err)
	}
	if _, err := time.LoadLocation(detected.Timezone); err != nil {
		return nil, fmt.Errorf("geolocation returned unusable timezone %q: %w", detected.Timezone, err)
	}

	return &detected, nil
}
