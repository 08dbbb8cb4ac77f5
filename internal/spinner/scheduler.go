package spinner

import (
	"sync"
	"time"
)

// Scheduler drives the tick loop. Start begins calling tick every interval
// until Stop; ticks never overlap. Stop may be called from inside tick.
type Scheduler interface {
	Start(interval time.Duration, tick func())
	Stop()
}

// TickerScheduler runs ticks on its own goroutine from a time.Ticker.
type TickerScheduler struct {
	mu   sync.Mutex
	stop chan struct{}
}

func NewTickerScheduler() *TickerScheduler {
	return &TickerScheduler{}
}

func (s *TickerScheduler) Start(interval time.Duration, tick func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		close(s.stop)
	}
	stop := make(chan struct{})
	s.stop = stop

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				// Stop may have raced with the ticker.
				select {
				case <-stop:
					return
				default:
				}
				tick()
			}
		}
	}()
}

func (s *TickerScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
}

// ManualScheduler steps ticks on demand. When it owns a MockClock every step
// advances the clock by the interval first, which makes a spin fully
// deterministic.
type ManualScheduler struct {
	clock    *MockClock
	interval time.Duration
	tick     func()
	running  bool
	starts   int
}

func NewManualScheduler(clock *MockClock) *ManualScheduler {
	return &ManualScheduler{clock: clock}
}

func (s *ManualScheduler) Start(interval time.Duration, tick func()) {
	s.interval = interval
	s.tick = tick
	s.running = true
	s.starts++
}

func (s *ManualScheduler) Stop() {
	s.running = false
}

// Running reports whether a tick loop is active.
func (s *ManualScheduler) Running() bool { return s.running }

// Interval is the interval passed to the last Start.
func (s *ManualScheduler) Interval() time.Duration { return s.interval }

// Starts counts Start calls.
func (s *ManualScheduler) Starts() int { return s.starts }

// Step runs one tick. It returns false when no loop is running.
func (s *ManualScheduler) Step() bool {
	if !s.running {
		return false
	}
	if s.clock != nil {
		s.clock.Advance(s.interval)
	}
	s.tick()
	return true
}

// RunUntilStopped steps until the loop stops or max ticks have run and
// returns the number of ticks executed.
func (s *ManualScheduler) RunUntilStopped(max int) int {
	n := 0
	for n < max && s.Step() {
		n++
	}
	return n
}
