package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/iftar-timer/internal/countdown"
	"github.com/smokyabdulrahman/iftar-timer/internal/prayer"
)

var flagFormat string

func newNextCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "next",
		Short: "Print the next iftar with countdown",
		Long:  "Print a single line with the next iftar time and remaining duration.\nDesigned for status bars (tmux, polybar, waybar): no colors, no trailing newline decoration.",
		RunE:  runNext,
	}

	cmd.Flags().StringVar(&flagFormat, "format", countdown.FormatFull, "Display format: clock, short, time, time-and-remaining, full, or a custom Go template")

	return cmd
}

func runNext(cmd *cobra.Command, args []string) error {
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

	next, err := prayer.ResolveNextIftar(loc.Coordinates(), tz, cfg.MethodOrDefault(), cfg.MadhabOrDefault(), now)
	if err != nil {
		return err
	}

	fmt.Print(countdown.FormatOutput(next.Time, loc.Name, next.IsToday, now, flagFormat, goTimeFmt))
	return nil
}
