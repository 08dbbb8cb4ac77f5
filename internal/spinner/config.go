package spinner

import (
	"fmt"
	"time"
)

// Default construction parameters.
const (
	DefaultPrimaryColor  = "black"
	DefaultContrastColor = "white"
	DefaultButtonText    = "SPIN"
	DefaultSize          = 290
	DefaultUpDuration    = 100 * time.Millisecond
	DefaultDownDuration  = 1000 * time.Millisecond
	DefaultTickUnit      = time.Millisecond
	DefaultFontFamily    = "proxima-nova"
	DefaultFontSize      = 16
	DefaultOutlineWidth  = 10
)

// Config holds the construction parameters of a wheel. Zero values take the
// defaults above.
type Config struct {
	Segments   []Segment
	OnFinished func(name string)

	PrimaryColor  string
	ContrastColor string
	ButtonText    string
	Size          float64

	// UpDuration and DownDuration are per-segment budgets for the
	// acceleration and deceleration phases.
	UpDuration   time.Duration
	DownDuration time.Duration
	// TickUnit times the segment count gives the tick interval.
	TickUnit time.Duration

	FontFamily   string
	FontSize     float64
	OutlineWidth float64
}

func (c Config) withDefaults() Config {
	if c.PrimaryColor == "" {
		c.PrimaryColor = DefaultPrimaryColor
	}
	if c.ContrastColor == "" {
		c.ContrastColor = DefaultContrastColor
	}
	if c.ButtonText == "" {
		c.ButtonText = DefaultButtonText
	}
	if c.Size <= 0 {
		c.Size = DefaultSize
	}
	if c.UpDuration <= 0 {
		c.UpDuration = DefaultUpDuration
	}
	if c.DownDuration <= 0 {
		c.DownDuration = DefaultDownDuration
	}
	if c.TickUnit <= 0 {
		c.TickUnit = DefaultTickUnit
	}
	if c.FontFamily == "" {
		c.FontFamily = DefaultFontFamily
	}
	if c.FontSize <= 0 {
		c.FontSize = DefaultFontSize
	}
	if c.OutlineWidth <= 0 {
		c.OutlineWidth = DefaultOutlineWidth
	}
	return c
}

// Validate reports configuration that would make a spin impossible or a draw
// undefined.
func (c Config) Validate() error {
	if err := c.ValidateDrawing(); err != nil {
		return err
	}
	if c.OnFinished == nil {
		return ErrNoCallback
	}
	return nil
}

// ValidateDrawing checks only what the renderer needs.
func (c Config) ValidateDrawing() error {
	if err := ValidateSegments(c.Segments); err != nil {
		return err
	}
	c = c.withDefaults()
	if _, err := ParseColor(c.PrimaryColor); err != nil {
		return fmt.Errorf("primary color: %w", err)
	}
	if _, err := ParseColor(c.ContrastColor); err != nil {
		return fmt.Errorf("contrast color: %w", err)
	}
	return nil
}

// WithDefaults returns c with every unset parameter filled in.
func (c Config) WithDefaults() Config {
	return c.withDefaults()
}

func (c Config) upTime() time.Duration {
	return time.Duration(len(c.Segments)) * c.UpDuration
}

func (c Config) downTime() time.Duration {
	return time.Duration(len(c.Segments)) * c.DownDuration
}

func (c Config) tickInterval() time.Duration {
	return time.Duration(len(c.Segments)) * c.TickUnit
}
