package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smokyabdulrahman/iftar-timer/internal/astro"
)

// ---------------------------------------------------------------------------
// Load / Save round trip
// ---------------------------------------------------------------------------

func TestLoadFrom_MissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("missing file should not be an error, got: %v", err)
	}
	if *cfg != (Config{}) {
		t.Errorf("missing file should yield empty config, got %+v", cfg)
	}
}

func TestSaveTo_CacheDirDoesNotPersist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	cfg := Config{City: "Mecca", CacheDir: "/tmp/alt-cache"}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "alt-cache") {
		t.Errorf("flag-only CacheDir leaked into the config file: %s", data)
	}
}

func TestLoadFrom_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestSaveTo_LoadFrom_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := Config{
		City:       "Mecca",
		Country:    "Saudi Arabia",
		Latitude:   21.4225,
		Longitude:  39.8262,
		Timezone:   "Asia/Riyadh",
		Method:     "UmmAlQura",
		Madhab:     "shafi",
		TimeFormat: "24h",
	}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if *got != cfg {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", got, cfg)
	}
}

func TestResetAt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := (&Config{City: "Cairo"}).SaveTo(path); err != nil {
		t.Fatal(err)
	}

	if err := ResetAt(path); err != nil {
		t.Fatalf("ResetAt: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("config file still exists after reset")
	}

	// Resetting a missing file is fine.
	if err := ResetAt(path); err != nil {
		t.Errorf("ResetAt on missing file: %v", err)
	}
}

func TestDir_RespectsXDGConfigHome(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")

	dir, err := Dir()
	if err != nil {
		t.Fatalf("Dir: %v", err)
	}
	want := filepath.Join("/tmp/xdg-test", configDirName)
	if dir != want {
		t.Errorf("Dir() = %q, want %q", dir, want)
	}
}

// ---------------------------------------------------------------------------
// Set / Get
// ---------------------------------------------------------------------------

func TestSet_ValidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"city", "Istanbul"},
		{"country", "Turkey"},
		{"latitude", "41.0082"},
		{"longitude", "28.9784"},
		{"timezone", "Europe/Istanbul"},
		{"method", "MuslimWorldLeague"},
		{"method", "isna"},
		{"madhab", "hanafi"},
		{"time_format", "24h"},
		{"theme", "nearIftar"},
		{"theme", "auto"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			var cfg Config
			if err := cfg.Set(tt.key, tt.value); err != nil {
				t.Errorf("Set(%q, %q) unexpected error: %v", tt.key, tt.value, err)
			}
		})
	}
}

func TestSet_InvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"latitude", "abc"},
		{"latitude", "91"},
		{"latitude", "-90.5"},
		{"longitude", "181"},
		{"longitude", ""},
		{"timezone", "Mars/Olympus_Mons"},
		{"method", "Tehran"},
		{"madhab", "maliki"},
		{"time_format", "25h"},
		{"theme", "disco"},
		{"no_such_key", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			var cfg Config
			if err := cfg.Set(tt.key, tt.value); err == nil {
				t.Errorf("Set(%q, %q) expected error, got nil", tt.key, tt.value)
			}
		})
	}
}

func TestSet_MethodNormalizesCase(t *testing.T) {
	var cfg Config
	if err := cfg.Set("method", "ummalqura"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if cfg.Method != "UmmAlQura" {
		t.Errorf("Method = %q, want canonical %q", cfg.Method, "UmmAlQura")
	}
}

func TestSet_ThemeAutoClears(t *testing.T) {
	cfg := Config{Theme: "morning"}
	if err := cfg.Set("theme", "auto"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if cfg.Theme != "" {
		t.Errorf("Theme = %q, want empty (auto)", cfg.Theme)
	}
}

func TestGet_AllKeys(t *testing.T) {
	cfg := Config{
		City:       "Dubai",
		Country:    "UAE",
		Latitude:   25.2048,
		Longitude:  55.2708,
		Timezone:   "Asia/Dubai",
		Method:     "ISNA",
		Madhab:     "shafi",
		TimeFormat: "12h",
		Theme:      "",
	}

	for _, key := range ValidKeys {
		if _, err := cfg.Get(key); err != nil {
			t.Errorf("Get(%q) unexpected error: %v", key, err)
		}
	}

	if v, _ := cfg.Get("latitude"); v != "25.2048" {
		t.Errorf("Get(latitude) = %q, want %q", v, "25.2048")
	}
	if _, err := cfg.Get("bogus"); err == nil {
		t.Error("Get(bogus) expected error, got nil")
	}
	if !strings.Contains(strings.Join(ValidKeys, ","), "theme") {
		t.Error("ValidKeys should include theme")
	}
}

// ---------------------------------------------------------------------------
// Fallbacks
// ---------------------------------------------------------------------------

func TestMethodOrDefault(t *testing.T) {
	tests := []struct {
		stored string
		want   astro.Method
	}{
		{"", astro.DefaultMethod},
		{"Karachi", astro.MethodKarachi},
		{"karachi", astro.MethodKarachi},
		{"garbage-from-old-version", astro.DefaultMethod},
	}

	for _, tt := range tests {
		cfg := Config{Method: tt.stored}
		if got := cfg.MethodOrDefault(); got != tt.want {
			t.Errorf("MethodOrDefault(%q) = %v, want %v", tt.stored, got, tt.want)
		}
	}
}

func TestMadhabOrDefault(t *testing.T) {
	if got := (&Config{}).MadhabOrDefault(); got != astro.DefaultMadhab {
		t.Errorf("empty madhab = %v, want default", got)
	}
	if got := (&Config{Madhab: "hanafi"}).MadhabOrDefault(); got != astro.MadhabHanafi {
		t.Errorf("madhab = %v, want hanafi", got)
	}
	if got := (&Config{Madhab: "???"}).MadhabOrDefault(); got != astro.DefaultMadhab {
		t.Errorf("invalid madhab = %v, want default", got)
	}
}
