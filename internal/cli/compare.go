package cli

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/iftar-timer/internal/city"
	"github.com/smokyabdulrahman/iftar-timer/internal/countdown"
	"github.com/smokyabdulrahman/iftar-timer/internal/display"
	"github.com/smokyabdulrahman/iftar-timer/internal/prayer"
)

func newCompareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare [city ...]",
		Short: "Compare iftar times across cities",
		Long:  "Show the next iftar for several cities side by side, each in its own local time, sorted by how soon iftar arrives. With no arguments the whole built-in list is shown.",
		RunE:  runCompare,
	}
}

// compareRow is one city's resolved iftar, in that city's local time.
type compareRow struct {
	City      string `json:"city"`
	Country   string `json:"country"`
	LocalTime string `json:"local_time"`
	IsToday   bool   `json:"is_today"`
	Remaining string `json:"remaining"`

	wait time.Duration
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg := effectiveConfig(cmd)
	goTimeFmt := goTimeLayout(cfg.TimeFormat)

	cities, err := selectCities(args)
	if err != nil {
		return err
	}

	now := time.Now()
	rows := make([]compareRow, 0, len(cities))
	for _, ct := range cities {
		tz, err := ct.Location()
		if err != nil {
			return fmt.Errorf("%s: %w", ct.Name, err)
		}

		next, err := prayer.ResolveNextIftar(ct.Coordinates(), tz, cfg.MethodOrDefault(), cfg.MadhabOrDefault(), now)
		if err != nil {
			return fmt.Errorf("%s: %w", ct.Name, err)
		}

		cd := countdown.Until(next.Time, now)
		rows = append(rows, compareRow{
			City:      ct.Name,
			Country:   ct.Country,
			LocalTime: next.Time.Format(goTimeFmt),
			IsToday:   next.IsToday,
			Remaining: cd.Short(),
			wait:      next.Time.Sub(now),
		})
	}

	// Soonest iftar first.
	sort.Slice(rows, func(i, j int) bool { return rows[i].wait < rows[j].wait })

	if FlagJSON {
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	tbl := &display.Table{
		Headers: []string{"  City", "Country", "Iftar", "In"},
	}
	for i, r := range rows {
		when := r.LocalTime
		if !r.IsToday {
			when += " (tomorrow)"
		}
		tbl.Rows = append(tbl.Rows, display.Row{
			Cells:     []string{"  " + r.City, r.Country, when, r.Remaining},
			Highlight: i == 0,
		})
	}

	fmt.Println()
	fmt.Print(tbl.Render())
	fmt.Println()
	return nil
}

// selectCities maps arguments to built-in cities, or returns the whole list.
func selectCities(args []string) ([]city.City, error) {
	if len(args) == 0 {
		return city.Popular, nil
	}

	cities := make([]city.City, 0, len(args))
	for _, name := range args {
		ct, ok := city.Find(name)
		if !ok {
			return nil, fmt.Errorf("unknown city %q (see `iftar-timer cities` for the built-in list)", name)
		}
		cities = append(cities, ct)
	}
	return cities, nil
}
