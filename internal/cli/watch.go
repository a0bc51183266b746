package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/smokyabdulrahman/iftar-timer/internal/display"
	"github.com/smokyabdulrahman/iftar-timer/internal/theme"
	"github.com/smokyabdulrahman/iftar-timer/internal/watch"
)

var flagVerbose bool

func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Live countdown that updates every second",
		Long:  "Run a live iftar countdown in the terminal. The schedule recomputes at local midnight; the phase (and its accent color) follows the clock. Ctrl-C to exit.",
		RunE:  runWatch,
	}

	cmd.Flags().BoolVar(&flagVerbose, "verbose", false, "Log schedule recomputations to stderr")

	return cmd
}

func runWatch(cmd *cobra.Command, args []string) error {
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

	log := zerolog.Nop()
	if flagVerbose {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}

	s := watch.New(loc.Coordinates(), tz, cfg.MethodOrDefault(), cfg.MadhabOrDefault(),
		watch.WithLogger(log))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	lines := 0
	for {
		select {
		case snap, ok := <-s.Updates():
			if !ok {
				continue
			}
			lines = renderFrame(snap, loc.Name, cfg.Theme, goTimeFmt, lines)

		case err := <-done:
			fmt.Println()
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
	}
}

// renderFrame redraws the live view in place and returns the line count so
// the next frame knows how far to move the cursor back up.
func renderFrame(snap watch.Snapshot, cityName, pinnedTheme, goTimeFmt string, prevLines int) int {
	ph := snap.Phase
	if pinnedTheme != "" {
		ph = currentPhase(pinnedTheme, snap.Schedule, time.Now())
	}
	th := theme.ForPhase(ph)

	day := "today"
	if !snap.NextIftar.IsToday {
		day = "tomorrow"
	}

	var b strings.Builder
	if prevLines > 0 {
		fmt.Fprintf(&b, "\033[%dA\033[J", prevLines)
	}
	fmt.Fprintf(&b, "  %s · iftar %s %s\n",
		display.Bold(cityName), day, snap.NextIftar.Time.Format(goTimeFmt))
	fmt.Fprintf(&b, "  %s\n", display.HexBold(th.Accent, snap.Countdown.Clock()))
	fmt.Fprintf(&b, "  %s\n", display.Gray(th.Description))

	fmt.Print(b.String())
	return 3
}
