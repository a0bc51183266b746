package geo

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/smokyabdulrahman/iftar-timer/internal/city"
)

// userAgent identifies this tool to Nominatim, per its usage policy.
const userAgent = "iftar-timer/1.0"

// nominatimResult maps one entry of a Nominatim search/reverse response.
type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
	Address     struct {
		City    string `json:"city"`
		Town    string `json:"town"`
		Village string `json:"village"`
		State   string `json:"state"`
		Country string `json:"country"`
	} `json:"address"`
}

// Endpoints are variables so that tests can point them at httptest servers.
var (
	searchAPIURL  = "https://nominatim.openstreetmap.org/search"
	reverseAPIURL = "https://nominatim.openstreetmap.org/reverse"
)

var nominatimClient = &http.Client{Timeout: 10 * time.Second}

// SearchCities looks up cities matching the query on Nominatim. Queries
// shorter than two characters return no results without a network call.
// Nominatim does not report timezones, so the returned cities carry an empty
// Timezone; the caller supplies one (config, flag, or detection).
func SearchCities(query string) ([]city.City, error) {
	if len(query) < 2 {
		return nil, nil
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "5")
	params.Set("addressdetails", "1")

	var results []nominatimResult
	if err := nominatimGet(searchAPIURL, params, &results); err != nil {
		return nil, fmt.Errorf("city search failed: %w", err)
	}

	cities := make([]city.City, 0, len(results))
	for _, r := range results {
		c, err := r.toCity()
		if err != nil {
			// Skip unparseable entries rather than failing the whole search.
			continue
		}
		cities = append(cities, c)
	}
	return cities, nil
}

// ReverseGeocode resolves coordinates to the nearest named place.
func ReverseGeocode(lat, lng float64) (*city.City, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))
	params.Set("format", "json")

	var result nominatimResult
	if err := nominatimGet(reverseAPIURL, params, &result); err != nil {
		return nil, fmt.Errorf("reverse geocoding failed: %w", err)
	}

	name := result.placeName()
	if name == "" {
		name = "Unknown"
	}
	return &city.City{
		Name:    name,
		Country: result.Address.Country,
		Lat:     lat,
		Lng:     lng,
	}, nil
}

// nominatimGet performs a GET with the required User-Agent and decodes JSON.
func nominatimGet(endpoint string, params url.Values, out any) error {
	req, err := http.NewRequest(http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := nominatimClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("nominatim returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode nominatim response: %w", err)
	}
	return nil
}

// placeName picks the most specific place name available.
func (r nominatimResult) placeName() string {
	switch {
	case r.Address.City != "":
		return r.Address.City
	case r.Address.Town != "":
		return r.Address.Town
	case r.Address.Village != "":
		return r.Address.Village
	case r.DisplayName != "":
		return strings.SplitN(r.DisplayName, ",", 2)[0]
	default:
		return ""
	}
}

// toCity converts a search result into a City, validating its coordinates.
func (r nominatimResult) toCity() (city.City, error) {
	lat, err := strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return city.City{}, fmt.Errorf("invalid latitude %q: %w", r.Lat, err)
	}
	lng, err := strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return city.City{}, fmt.Errorf("invalid longitude %q: %w", r.Lon, err)
	}

	c := city.City{
		Name:    r.placeName(),
		Country: r.Address.Country,
		Lat:     lat,
		Lng:     lng,
	}
	if err := c.Coordinates().Validate(); err != nil {
		return city.City{}, err
	}
	return c, nil
}
