// Package cache persists the auto-detected location between runs so that the
// status-bar use case does not hit the geolocation service every few seconds.
package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/smokyabdulrahman/iftar-timer/internal/city"
)

const (
	locationCacheFile = "location.json"
	locationTTL       = 24 * time.Hour
)

// Cache provides file-based caching rooted at a directory.
type Cache struct {
	dir string
}

// locationEntry stores a cached detected location with its detection time.
type locationEntry struct {
	City     city.City `json:"city"`
	CachedAt time.Time `json:"cached_at"`
}

// New creates a Cache rooted at the given directory.
// If dir is empty, it defaults to ~/.cache/iftar-timer/.
func New(dir string) (*Cache, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot determine home directory: %w", err)
		}
		dir = filepath.Join(home, ".cache", "iftar-timer")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create cache directory %s: %w", dir, err)
	}

	return &Cache{dir: dir}, nil
}

// LoadLocation attempts to read the cached detected location.
// Returns nil if the cache is missing, unreadable, stale, or fails the
// coordinate/timezone invariants (cached data is never trusted blindly).
func (c *Cache) LoadLocation(now time.Time) *city.City {
	path := filepath.Join(c.dir, locationCacheFile)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}

	var entry locationEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil
	}

	if now.Sub(entry.CachedAt) > locationTTL {
		return nil
	}
	if err := entry.City.Coordinates().Validate(); err != nil {
		return nil
	}
	if _, err := time.LoadLocation(entry.City.Timezone); err != nil {
		return nil
	}

	return &entry.City
}

// SaveLocation writes a detected location to the cache.
func (c *Cache) SaveLocation(loc *city.City, now time.Time) error {
	path := filepath.Join(c.dir, locationCacheFile)

	entry := locationEntry{
		City:     *loc,
		CachedAt: now,
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("failed to marshal location cache: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write location cache: %w", err)
	}

	return nil
}
