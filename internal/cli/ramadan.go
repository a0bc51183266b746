package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/iftar-timer/internal/display"
	"github.com/smokyabdulrahman/iftar-timer/internal/ramadan"
)

func newRamadanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ramadan",
		Short: "Show Ramadan progress",
		Long:  "Show how far through Ramadan we are, or how many days remain until it starts.",
		RunE:  runRamadan,
	}
}

func runRamadan(cmd *cobra.Command, args []string) error {
	now := time.Now()
	p := ramadan.Current.Progress(now)

	if FlagJSON {
		out := struct {
			HijriYear int     `json:"hijri_year"`
			Start     string  `json:"start"`
			End       string  `json:"end"`
			Day       int     `json:"day,omitempty"`
			TotalDays int     `json:"total_days"`
			Percent   float64 `json:"percent"`
			Before    bool    `json:"before"`
			After     bool    `json:"after"`
			DaysUntil int     `json:"days_until,omitempty"`
		}{
			HijriYear: ramadan.Current.HijriYear,
			Start:     ramadan.Current.Start.Format("2006-01-02"),
			End:       ramadan.Current.End.Format("2006-01-02"),
			Day:       p.Day,
			TotalDays: p.TotalDays,
			Percent:   p.Percent,
			Before:    p.Before,
			After:     p.After,
			DaysUntil: p.DaysUntil,
		}
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Println()
	fmt.Printf("  %s\n\n", display.Boldf("Ramadan %d AH", ramadan.Current.HijriYear))

	switch {
	case p.Before:
		fmt.Printf("  Starts %s, in %d days.\n", ramadan.Current.Start.Format("02 Jan 2006"), p.DaysUntil)
	case p.After:
		fmt.Printf("  Ended %s. Eid Mubarak!\n", ramadan.Current.End.Format("02 Jan 2006"))
	default:
		fmt.Printf("  Day %d of %d\n", p.Day, p.TotalDays)
		fmt.Printf("  %s\n", display.ProgressBar(p.Percent, 29))
	}
	fmt.Println()
	return nil
}
