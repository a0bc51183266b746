package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/iftar-timer/internal/city"
	"github.com/smokyabdulrahman/iftar-timer/internal/countdown"
	"github.com/smokyabdulrahman/iftar-timer/internal/display"
	"github.com/smokyabdulrahman/iftar-timer/internal/phase"
	"github.com/smokyabdulrahman/iftar-timer/internal/prayer"
	"github.com/smokyabdulrahman/iftar-timer/internal/ramadan"
	"github.com/smokyabdulrahman/iftar-timer/internal/theme"
)

func runToday(cmd *cobra.Command, args []string) error {
	cfg := effectiveConfig(cmd)
	goTimeFmt := goTimeLayout(cfg.TimeFormat)

	c := openCache(cfg.CacheDir)
	now := time.Now()

	loc, err := resolveLocation(cfg, c, now)
	if err != nil {
		return err
	}
	tz, err := location(loc)
	if err != nil {
		return err
	}

	sched, err := prayer.ComputeSchedule(loc.Coordinates(), tz, now, cfg.MethodOrDefault(), cfg.MadhabOrDefault())
	if err != nil {
		return err
	}
	next, err := prayer.ResolveNextIftar(loc.Coordinates(), tz, cfg.MethodOrDefault(), cfg.MadhabOrDefault(), now)
	if err != nil {
		return err
	}

	ph := currentPhase(cfg.Theme, sched, now)
	th := theme.ForPhase(ph)
	cd := countdown.Until(next.Time, now)

	if FlagJSON {
		return printTodayJSON(loc, sched, next, cd, ph, now, goTimeFmt)
	}

	printTodayRich(loc, sched, next, cd, ph, th, now, goTimeFmt)
	return nil
}

// currentPhase honors a pinned theme before falling back to the clock.
func currentPhase(pinned string, sched *prayer.Schedule, now time.Time) phase.Phase {
	if pinned != "" {
		for _, p := range phase.All {
			if pinned == string(p) {
				return p
			}
		}
	}
	return phase.Classify(sched, now)
}

// locationLabel builds a "City, Country" string, coordinates as fallback.
func locationLabel(loc *city.City) string {
	if loc.Country != "" {
		return loc.Name + ", " + loc.Country
	}
	if loc.Name != "" {
		return loc.Name
	}
	return fmt.Sprintf("%.4f, %.4f", loc.Lat, loc.Lng)
}

// printTodayRich renders the colored terminal output for the default view.
func printTodayRich(loc *city.City, sched *prayer.Schedule, next prayer.Resolved, cd countdown.State, ph phase.Phase, th theme.Theme, now time.Time, goTimeFmt string) {
	fmt.Println()
	fmt.Printf("  %s\n", display.Bold("Iftar Timer"))
	fmt.Println()

	fmt.Printf("  %s\n", locationLabel(loc))
	fmt.Printf("  %s\n", display.Gray(sched.Date.Format("Monday, 02 Jan 2006")+" · "+loc.Timezone))
	fmt.Println()

	// Headline countdown in the phase accent color.
	day := "today"
	if !next.IsToday {
		day = "tomorrow"
	}
	fmt.Printf("  Iftar %s at %s\n", day, display.HexBold(th.Accent, next.Time.Format(goTimeFmt)))
	fmt.Printf("  %s  %s\n", display.HexBold(th.Accent, cd.Clock()), display.Gray(th.Description))
	fmt.Println()

	// Schedule table, next event highlighted.
	tbl := &display.Table{AccentHex: th.Accent}
	for _, ev := range sched.Events() {
		tbl.Rows = append(tbl.Rows, display.Row{
			Cells:     []string{"  " + ev.Name, ev.Time.Format(goTimeFmt)},
			Highlight: ev.Name == "Maghrib" && next.IsToday,
		})
	}
	fmt.Print(tbl.Render())
	fmt.Println()

	// Ramadan progress, only while relevant.
	p := ramadan.Current.Progress(now)
	switch {
	case p.Before && p.DaysUntil <= 60:
		fmt.Printf("  %s\n\n", display.Gray(fmt.Sprintf("Ramadan %d starts in %d days", ramadan.Current.HijriYear, p.DaysUntil)))
	case !p.Before && !p.After:
		fmt.Printf("  Ramadan day %d of %d  %s\n\n", p.Day, p.TotalDays, display.Gray(display.ProgressBar(p.Percent, 20)))
	}
}

// todayJSON is the JSON output structure for the root command.
type todayJSON struct {
	Location todayJSONLocation `json:"location"`
	Date     string            `json:"date"`
	Schedule map[string]string `json:"schedule"`
	Phase    string            `json:"phase"`
	Iftar    todayJSONIftar    `json:"iftar"`
	Ramadan  *todayJSONRamadan `json:"ramadan,omitempty"`
}

type todayJSONLocation struct {
	City      string  `json:"city,omitempty"`
	Country   string  `json:"country,omitempty"`
	Timezone  string  `json:"timezone"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type todayJSONIftar struct {
	Time      string `json:"time"`
	IsToday   bool   `json:"is_today"`
	Remaining string `json:"remaining"`
	Clock     string `json:"clock"`
}

type todayJSONRamadan struct {
	Day       int     `json:"day"`
	TotalDays int     `json:"total_days"`
	Percent   float64 `json:"percent"`
}

// printTodayJSON renders structured JSON output.
func printTodayJSON(loc *city.City, sched *prayer.Schedule, next prayer.Resolved, cd countdown.State, ph phase.Phase, now time.Time, goTimeFmt string) error {
	schedule := make(map[string]string)
	for _, ev := range sched.Events() {
		schedule[strings.ToLower(ev.Name)] = ev.Time.Format(goTimeFmt)
	}

	out := todayJSON{
		Location: todayJSONLocation{
			City:      loc.Name,
			Country:   loc.Country,
			Timezone:  loc.Timezone,
			Latitude:  loc.Lat,
			Longitude: loc.Lng,
		},
		Date:     sched.Date.Format("2006-01-02"),
		Schedule: schedule,
		Phase:    string(ph),
		Iftar: todayJSONIftar{
			Time:      next.Time.Format(goTimeFmt),
			IsToday:   next.IsToday,
			Remaining: cd.Short(),
			Clock:     cd.Clock(),
		},
	}

	if p := ramadan.Current.Progress(now); !p.Before && !p.After {
		out.Ramadan = &todayJSONRamadan{Day: p.Day, TotalDays: p.TotalDays, Percent: p.Percent}
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
