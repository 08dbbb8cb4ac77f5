package main

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// sounds plays the tick of the pointer passing a divider and the chime of a
// finished spin. Every method is a no-op when the speaker failed to open.
type sounds struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

func newSounds() *sounds {
	return &sounds{mixer: &beep.Mixer{}}
}

func (s *sounds) init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

func (s *sounds) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	s.initialized = false
}

func (s *sounds) play(st beep.Streamer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

func (s *sounds) click() {
	s.play(tone(1760, 12*time.Millisecond, 0.25))
}

func (s *sounds) chime() {
	s.play(beep.Seq(
		tone(987.77, 90*time.Millisecond, 0.4),
		tone(1318.51, 220*time.Millisecond, 0.4),
	))
}

func tone(freq float64, d time.Duration, vol float64) beep.Streamer {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return beep.Silence(0)
	}
	return &effects.Volume{
		Streamer: beep.Take(sampleRate.N(d), sine),
		Base:     2,
		Volume:   math.Log2(vol),
	}
}
