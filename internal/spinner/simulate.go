package spinner

import (
	"errors"
	"math"
	"time"

	"github.com/rs/zerolog"
)

var ErrSimulationStalled = errors.New("spin did not converge within the tick limit")

// DefaultMaxTicks is the tick limit of Simulate when none is given.
const DefaultMaxTicks = 200_000

// SimulateOptions tune a headless spin.
type SimulateOptions struct {
	// SampleEvery keeps every n-th frame in the timeline. The final frame is
	// always kept. Zero keeps only the final frame.
	SampleEvery  int
	MaxTicks     int
	InitialAngle float64
	Start        time.Time
	Logger       zerolog.Logger
}

// Simulation is the outcome of a headless spin.
type Simulation struct {
	Result
	Ticks    int
	Timeline []Frame
}

// Simulate runs a complete spin on a manual scheduler and a mock clock, so
// the outcome and its timeline are available immediately. cfg.OnFinished is
// optional here and still called once.
func Simulate(cfg Config, rnd RandomSource, opts SimulateOptions) (Simulation, error) {
	if opts.MaxTicks <= 0 {
		opts.MaxTicks = DefaultMaxTicks
	}
	if opts.Start.IsZero() {
		opts.Start = time.Unix(0, 0).UTC()
	}

	var (
		sim      Simulation
		finished bool
	)
	user := cfg.OnFinished
	cfg.OnFinished = func(name string) {
		finished = true
		if user != nil {
			user(name)
		}
	}

	clock := NewMockClock(opts.Start)
	sched := NewManualScheduler(clock)
	e, err := New(cfg, Deps{
		Random:    rnd,
		Clock:     clock,
		Scheduler: sched,
		Logger:    opts.Logger,
		OnFrame: func(f Frame) {
			if f.Final || (opts.SampleEvery > 0 && f.Index%opts.SampleEvery == 0) {
				sim.Timeline = append(sim.Timeline, f)
			}
		},
	})
	if err != nil {
		return Simulation{}, err
	}
	e.SetAngle(opts.InitialAngle)

	e.Spin()
	sim.Ticks = sched.RunUntilStopped(opts.MaxTicks)
	if !finished {
		e.Close()
		return Simulation{}, ErrSimulationStalled
	}
	sim.Result = e.LastResult()
	return sim, nil
}

// WorstCaseTicks bounds the ticks a spin of cfg can take: the acceleration
// phase, then at most one full turn at the crawl floor until the pointer
// reaches the winner.
func WorstCaseTicks(cfg Config) int {
	cfg = cfg.withDefaults()
	n := len(cfg.Segments)
	if n == 0 {
		return 0
	}
	up := int(math.Ceil(float64(cfg.UpDuration) / float64(cfg.TickUnit)))
	return up + int(math.Ceil(2/crawlFactor))*n + 2
}
