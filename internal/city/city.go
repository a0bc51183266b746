// Package city holds the built-in city list and lookups over it.
package city

import (
	"strings"
	"time"

	"github.com/smokyabdulrahman/iftar-timer/internal/astro"
)

// City is one selectable location: coordinates plus the IANA timezone used to
// derive its civil calendar day.
type City struct {
	Name     string  `json:"name"`
	Country  string  `json:"country"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Timezone string  `json:"timezone"`
}

// Coordinates returns the city's position as calculator input.
func (c City) Coordinates() astro.Coordinates {
	return astro.Coordinates{Latitude: c.Lat, Longitude: c.Lng}
}

// Location loads the city's IANA timezone.
func (c City) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// Popular is the built-in city list, selectable without any network call.
var Popular = []City{
	{Name: "Houston", Country: "USA", Lat: 29.7604, Lng: -95.3698, Timezone: "America/Chicago"},
	{Name: "New York", Country: "USA", Lat: 40.7128, Lng: -74.0060, Timezone: "America/New_York"},
	{Name: "London", Country: "UK", Lat: 51.5074, Lng: -0.1278, Timezone: "Europe/London"},
	{Name: "Dubai", Country: "UAE", Lat: 25.2048, Lng: 55.2708, Timezone: "Asia/Dubai"},
	{Name: "Jakarta", Country: "Indonesia", Lat: -6.2088, Lng: 106.8456, Timezone: "Asia/Jakarta"},
	{Name: "Riyadh", Country: "Saudi Arabia", Lat: 24.7136, Lng: 46.6753, Timezone: "Asia/Riyadh"},
	{Name: "Istanbul", Country: "Turkey", Lat: 41.0082, Lng: 28.9784, Timezone: "Europe/Istanbul"},
	{Name: "Cairo", Country: "Egypt", Lat: 30.0444, Lng: 31.2357, Timezone: "Africa/Cairo"},
	{Name: "Kuala Lumpur", Country: "Malaysia", Lat: 3.1390, Lng: 101.6869, Timezone: "Asia/Kuala_Lumpur"},
	{Name: "Toronto", Country: "Canada", Lat: 43.6532, Lng: -79.3832, Timezone: "America/Toronto"},
	{Name: "Los Angeles", Country: "USA", Lat: 34.0522, Lng: -118.2437, Timezone: "America/Los_Angeles"},
	{Name: "Mecca", Country: "Saudi Arabia", Lat: 21.4225, Lng: 39.8262, Timezone: "Asia/Riyadh"},
}

// Find looks up a built-in city by name, case-insensitively.
func Find(name string) (City, bool) {
	for _, c := range Popular {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return City{}, false
}
