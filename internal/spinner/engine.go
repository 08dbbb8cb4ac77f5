package spinner

import (
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// crawlFactor keeps the wheel creeping toward the winner once the
// deceleration curve has run out.
const crawlFactor = 0.05

// Phase of a running spin.
type Phase string

const (
	PhaseIdle         Phase = "idle"
	PhaseAccelerating Phase = "accelerating"
	PhaseDecelerating Phase = "decelerating"
)

// SpinState is the per-spin bookkeeping. A fresh value is installed by every
// accepted Spin and reset when the spin completes.
type SpinState struct {
	Spinning bool
	Winner   string
	Started  time.Time
	Frames   int
	Velocity float64
}

// Frame is a snapshot of one tick, taken after the rotation was advanced.
type Frame struct {
	Index    int           `json:"index"`
	Elapsed  time.Duration `json:"elapsed"`
	Angle    float64       `json:"angle"`
	Step     float64       `json:"step"`
	Progress float64       `json:"progress"`
	Phase    Phase         `json:"phase"`
	Segment  string        `json:"segment"`
	Final    bool          `json:"final"`
}

// Result describes the last completed spin.
type Result struct {
	Winner     string
	Frames     int
	Elapsed    time.Duration
	FinalAngle float64
}

// Deps are the collaborators of an Engine. Every field is optional.
type Deps struct {
	Random    RandomSource
	Clock     Clock
	Scheduler Scheduler
	// Painter receives a full redraw on construction and on every tick.
	Painter Painter
	// OnFrame observes every tick. It runs outside the engine lock.
	OnFrame func(Frame)
	Logger  zerolog.Logger
}

// Engine spins a weighted wheel: it draws the winner up front and animates the
// rotation until the pointer rests on it.
type Engine struct {
	mu sync.Mutex

	cfg       Config
	rnd       RandomSource
	clock     Clock
	scheduler Scheduler
	painter   Painter
	renderer  *Renderer
	onFrame   func(Frame)
	log       zerolog.Logger

	state   SpinState
	angle   float64
	current string
	started bool
	last    Result
	// seq numbers accepted spins so a finished tick can tell whether the
	// callback started a new one.
	seq uint64
}

// New validates cfg and builds an idle engine.
func New(cfg Config, deps Deps) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()
	cfg.Segments = append([]Segment(nil), cfg.Segments...)

	e := &Engine{
		cfg:       cfg,
		rnd:       deps.Random,
		clock:     deps.Clock,
		scheduler: deps.Scheduler,
		painter:   deps.Painter,
		renderer:  NewRenderer(cfg),
		onFrame:   deps.OnFrame,
		log:       deps.Logger,
	}
	if e.rnd == nil {
		e.rnd = DefaultSource
	}
	if e.clock == nil {
		e.clock = SystemClock{}
	}
	if e.scheduler == nil {
		e.scheduler = NewTickerScheduler()
	}
	e.current = cfg.Segments[SegmentUnderPointer(e.angle, len(cfg.Segments))].Name

	e.mu.Lock()
	e.draw()
	e.mu.Unlock()
	return e, nil
}

// Spin starts a spin. It returns false when a spin is already in flight.
func (e *Engine) Spin() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state.Spinning || len(e.cfg.Segments) == 0 {
		return false
	}

	e.state = SpinState{
		Spinning: true,
		Winner:   SelectWinner(e.cfg.Segments, e.rnd),
		Started:  e.clock.Now(),
	}
	e.started = true
	e.seq++
	e.log.Debug().
		Str("winner", e.state.Winner).
		Int("segments", len(e.cfg.Segments)).
		Msg("spin started")

	e.scheduler.Start(e.cfg.tickInterval(), e.Tick)
	return true
}

// Tick advances a running spin by one frame. It is a no-op while idle.
func (e *Engine) Tick() {
	e.mu.Lock()
	if !e.state.Spinning {
		e.mu.Unlock()
		return
	}

	st := &e.state
	st.Frames++
	segments := e.cfg.Segments
	n := len(segments)
	elapsed := e.clock.Now().Sub(st.Started)
	e.current = segments[SegmentUnderPointer(e.angle, n)].Name

	maxSpeed := math.Pi / float64(n)
	upTime := e.cfg.upTime()

	var (
		progress float64
		step     float64
		phase    = PhaseAccelerating
		finished bool
	)
	if elapsed < upTime {
		progress = float64(elapsed) / float64(upTime)
		step = maxSpeed * math.Sin(progress*math.Pi/2)
	} else {
		phase = PhaseDecelerating
		if e.current == st.Winner && st.Frames >= n {
			progress = 1
			finished = true
		} else {
			progress = min(float64(elapsed)/float64(e.cfg.downTime()), 1)
			step = max(maxSpeed*math.Sin(progress*math.Pi/2+math.Pi/2), maxSpeed*crawlFactor)
		}
	}

	st.Velocity = step
	e.angle = NormalizeAngle(e.angle + step)
	under := segments[SegmentUnderPointer(e.angle, n)].Name
	e.draw()

	frame := Frame{
		Index:    st.Frames,
		Elapsed:  elapsed,
		Angle:    e.angle,
		Step:     step,
		Progress: progress,
		Phase:    phase,
		Segment:  under,
		Final:    finished,
	}

	if !finished {
		e.mu.Unlock()
		if e.onFrame != nil {
			e.onFrame(frame)
		}
		return
	}

	e.scheduler.Stop()
	e.last = Result{
		Winner:     e.current,
		Frames:     st.Frames,
		Elapsed:    elapsed,
		FinalAngle: e.angle,
	}
	st.Started = time.Time{}
	st.Frames = 0
	st.Velocity = 0
	winner := e.current
	onFinished := e.cfg.OnFinished
	seq := e.seq
	e.log.Debug().
		Str("winner", winner).
		Int("frames", e.last.Frames).
		Dur("elapsed", elapsed).
		Msg("spin finished")
	e.mu.Unlock()

	if e.onFrame != nil {
		e.onFrame(frame)
	}
	onFinished(winner)

	e.mu.Lock()
	if e.seq == seq {
		e.state = SpinState{}
	}
	e.mu.Unlock()
}

// draw repaints the surface. Callers hold e.mu.
func (e *Engine) draw() {
	if e.painter == nil {
		return
	}
	var caption string
	if e.started {
		caption = e.current
	}
	e.renderer.Draw(e.painter, e.cfg.Segments, e.angle, caption)
}

// Redraw repaints the surface with the current rotation.
func (e *Engine) Redraw() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draw()
}

// SetAngle rotates an idle wheel. It returns false while spinning.
func (e *Engine) SetAngle(angle float64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state.Spinning {
		return false
	}
	e.angle = NormalizeAngle(angle)
	e.current = e.cfg.Segments[SegmentUnderPointer(e.angle, len(e.cfg.Segments))].Name
	e.draw()
	return true
}

// Close stops a running tick loop. Owners call it when the surface goes away.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.scheduler.Stop()
	e.state = SpinState{}
}

func (e *Engine) IsSpinning() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Spinning
}

func (e *Engine) Angle() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.angle
}

// CurrentSegment is the name under the pointer as of the last tick.
func (e *Engine) CurrentSegment() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current
}

// LastResult is the outcome of the most recent completed spin.
func (e *Engine) LastResult() Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last
}

// Segments returns a copy of the wheel's segments.
func (e *Engine) Segments() []Segment {
	return append([]Segment(nil), e.cfg.Segments...)
}

// Config returns the effective configuration, defaults applied.
func (e *Engine) Config() Config {
	return e.cfg
}
