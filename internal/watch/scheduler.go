// Package watch drives the live countdown loop: a one-second tick for the
// countdown, a slower tick for phase reclassification, and a midnight rollover
// that recomputes the whole schedule for the new civil day.
package watch

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/smokyabdulrahman/iftar-timer/internal/astro"
	"github.com/smokyabdulrahman/iftar-timer/internal/countdown"
	"github.com/smokyabdulrahman/iftar-timer/internal/phase"
	"github.com/smokyabdulrahman/iftar-timer/internal/prayer"
)

// Default tick intervals. Tests shrink these to avoid wall-clock waits.
const (
	defaultTickInterval  = time.Second
	defaultPhaseInterval = time.Minute
)

// Snapshot is one frame of the live view.
type Snapshot struct {
	Schedule  *prayer.Schedule
	NextIftar prayer.Resolved
	Countdown countdown.State
	Phase     phase.Phase
}

// Scheduler recomputes the countdown state on a fixed cadence and the
// schedule itself at local midnight. All recomputation happens on a single
// goroutine; consumers receive frames over Updates.
type Scheduler struct {
	coords astro.Coordinates
	loc    *time.Location
	method astro.Method
	madhab astro.Madhab

	tickInterval  time.Duration
	phaseInterval time.Duration
	now           func() time.Time
	log           zerolog.Logger

	updates chan Snapshot
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithClock overrides the time source. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) { s.now = now }
}

// WithIntervals overrides the countdown and phase tick intervals.
func WithIntervals(tick, phaseTick time.Duration) Option {
	return func(s *Scheduler) {
		s.tickInterval = tick
		s.phaseInterval = phaseTick
	}
}

// WithLogger attaches a logger for rollover and recompute events.
func WithLogger(log zerolog.Logger) Option {
	return func(s *Scheduler) { s.log = log }
}

// New creates a Scheduler for a fixed location and calculation settings.
func New(coords astro.Coordinates, loc *time.Location, method astro.Method, madhab astro.Madhab, opts ...Option) *Scheduler {
	s := &Scheduler{
		coords:        coords,
		loc:           loc,
		method:        method,
		madhab:        madhab,
		tickInterval:  defaultTickInterval,
		phaseInterval: defaultPhaseInterval,
		now:           time.Now,
		log:           zerolog.Nop(),
		updates:       make(chan Snapshot, 1),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Updates returns the channel carrying live frames. It is closed when Run
// returns.
func (s *Scheduler) Updates() <-chan Snapshot {
	return s.updates
}

// Run blocks until ctx is cancelled or the initial schedule computation
// fails. The first frame is emitted immediately, then one per tick.
func (s *Scheduler) Run(ctx context.Context) error {
	snap, err := s.compute()
	if err != nil {
		return err
	}
	defer close(s.updates)

	s.emit(ctx, snap)

	tick := time.NewTicker(s.tickInterval)
	defer tick.Stop()
	phaseTick := time.NewTicker(s.phaseInterval)
	defer phaseTick.Stop()

	// Fire shortly after local midnight so the new frame lands on the new
	// civil day even with a slightly slow clock.
	midnight := time.NewTimer(s.untilRollover())
	defer midnight.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-tick.C:
			snap.Countdown = countdown.Until(snap.NextIftar.Time, s.now())
			s.emit(ctx, snap)

		case <-phaseTick.C:
			snap.Phase = phase.Classify(snap.Schedule, s.now())
			s.emit(ctx, snap)

		case <-midnight.C:
			s.log.Debug().Time("at", s.now()).Msg("midnight rollover, recomputing schedule")
			next, err := s.compute()
			if err != nil {
				// Keep serving the stale schedule rather than dying at
				// midnight; the countdown target is still valid.
				s.log.Error().Err(err).Msg("rollover recompute failed")
			} else {
				snap = next
				s.emit(ctx, snap)
			}
			midnight.Reset(s.untilRollover())
		}
	}
}

// compute builds a full frame from scratch for the current instant.
func (s *Scheduler) compute() (Snapshot, error) {
	now := s.now()

	sched, err := prayer.ComputeSchedule(s.coords, s.loc, now, s.method, s.madhab)
	if err != nil {
		return Snapshot{}, err
	}
	next, err := prayer.ResolveNextIftar(s.coords, s.loc, s.method, s.madhab, now)
	if err != nil {
		return Snapshot{}, err
	}

	s.log.Debug().
		Str("date", sched.Date.Format("2006-01-02")).
		Time("iftar", next.Time).
		Bool("today", next.IsToday).
		Msg("schedule computed")

	return Snapshot{
		Schedule:  sched,
		NextIftar: next,
		Countdown: countdown.Until(next.Time, now),
		Phase:     phase.Classify(sched, now),
	}, nil
}

// untilRollover returns the duration until just past the next local midnight.
func (s *Scheduler) untilRollover() time.Duration {
	now := s.now()
	d := prayer.NextLocalMidnight(now, s.loc).Sub(now) + time.Second
	if d < time.Second {
		d = time.Second
	}
	return d
}

// emit delivers a frame without blocking forever on a slow consumer: if the
// buffer is full the stale frame is dropped in favor of the new one.
func (s *Scheduler) emit(ctx context.Context, snap Snapshot) {
	select {
	case s.updates <- snap:
	case <-ctx.Done():
	default:
		select {
		case <-s.updates:
		default:
		}
		select {
		case s.updates <- snap:
		default:
		}
	}
}
