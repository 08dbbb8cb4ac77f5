package env

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"reward_wheel/internal/config"
	"reward_wheel/internal/spinner"
)

const (
	defaultSampleEvery       = 10
	defaultMaxTicks          = 200_000
	defaultDriftWindow       = 500
	defaultDriftPeriod       = 25
	defaultDriftMaxDeviation = 5.0
)

type wheelFile struct {
	Wheel wheelYAML `yaml:"wheel"`
}

type wheelYAML struct {
	PrimaryColor  string        `yaml:"primary_color"`
	ContrastColor string        `yaml:"contrast_color"`
	ButtonText    string        `yaml:"button_text"`
	Size          float64       `yaml:"size"`
	UpDuration    time.Duration `yaml:"up_duration"`
	DownDuration  time.Duration `yaml:"down_duration"`
	TickUnit      time.Duration `yaml:"tick_unit"`
	FontFamily    string        `yaml:"font_family"`
	FontSize      float64       `yaml:"font_size"`
	OutlineWidth  float64       `yaml:"outline_width"`
	SampleEvery   int           `yaml:"sample_every"`
	MaxTicks      int           `yaml:"max_ticks"`
	Drift         struct {
		Window       int     `yaml:"window"`
		Period       int     `yaml:"period"`
		MaxDeviation float64 `yaml:"max_deviation"`
	} `yaml:"drift"`
}

type wheelConfig struct {
	engine            spinner.Config
	sampleEvery       int
	maxTicks          int
	driftWindow       int
	driftPeriod       int
	driftMaxDeviation float64
}

// NewWheelConfigFromYAML читает секцию wheel из YAML файла.
// Незаданные ключи берут значения движка по умолчанию
func NewWheelConfigFromYAML(path string) (config.WheelConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read wheel config: %w", err)
	}
	return parseWheelConfig(data)
}

func parseWheelConfig(data []byte) (config.WheelConfig, error) {
	var f wheelFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse wheel config: %w", err)
	}
	y := f.Wheel

	if y.Size < 0 || y.FontSize < 0 || y.OutlineWidth < 0 {
		return nil, errors.New("wheel sizes must not be negative")
	}
	if y.UpDuration < 0 || y.DownDuration < 0 || y.TickUnit < 0 {
		return nil, errors.New("wheel durations must not be negative")
	}
	if y.SampleEvery < 0 || y.MaxTicks < 0 || y.Drift.Window < 0 || y.Drift.Period < 0 || y.Drift.MaxDeviation < 0 {
		return nil, errors.New("wheel limits must not be negative")
	}

	engine := spinner.Config{
		PrimaryColor:  y.PrimaryColor,
		ContrastColor: y.ContrastColor,
		ButtonText:    y.ButtonText,
		Size:          y.Size,
		UpDuration:    y.UpDuration,
		DownDuration:  y.DownDuration,
		TickUnit:      y.TickUnit,
		FontFamily:    y.FontFamily,
		FontSize:      y.FontSize,
		OutlineWidth:  y.OutlineWidth,
	}.WithDefaults()

	if _, err := spinner.ParseColor(engine.PrimaryColor); err != nil {
		return nil, fmt.Errorf("primary color: %w", err)
	}
	if _, err := spinner.ParseColor(engine.ContrastColor); err != nil {
		return nil, fmt.Errorf("contrast color: %w", err)
	}

	cfg := &wheelConfig{
		engine:            engine,
		sampleEvery:       y.SampleEvery,
		maxTicks:          y.MaxTicks,
		driftWindow:       y.Drift.Window,
		driftPeriod:       y.Drift.Period,
		driftMaxDeviation: y.Drift.MaxDeviation,
	}
	if cfg.sampleEvery == 0 {
		cfg.sampleEvery = defaultSampleEvery
	}
	if cfg.maxTicks == 0 {
		cfg.maxTicks = defaultMaxTicks
	}
	if cfg.driftWindow == 0 {
		cfg.driftWindow = defaultDriftWindow
	}
	if cfg.driftPeriod == 0 {
		cfg.driftPeriod = defaultDriftPeriod
	}
	if cfg.driftMaxDeviation == 0 {
		cfg.driftMaxDeviation = defaultDriftMaxDeviation
	}
	return cfg, nil
}

func (c *wheelConfig) PrimaryColor() string        { return c.engine.PrimaryColor }
func (c *wheelConfig) ContrastColor() string       { return c.engine.ContrastColor }
func (c *wheelConfig) ButtonText() string          { return c.engine.ButtonText }
func (c *wheelConfig) Size() float64               { return c.engine.Size }
func (c *wheelConfig) UpDuration() time.Duration   { return c.engine.UpDuration }
func (c *wheelConfig) DownDuration() time.Duration { return c.engine.DownDuration }
func (c *wheelConfig) TickUnit() time.Duration     { return c.engine.TickUnit }
func (c *wheelConfig) FontFamily() string          { return c.engine.FontFamily }
func (c *wheelConfig) FontSize() float64           { return c.engine.FontSize }
func (c *wheelConfig) OutlineWidth() float64       { return c.engine.OutlineWidth }
func (c *wheelConfig) SampleEvery() int            { return c.sampleEvery }
func (c *wheelConfig) MaxTicks() int               { return c.maxTicks }
func (c *wheelConfig) DriftWindow() int            { return c.driftWindow }
func (c *wheelConfig) DriftPeriod() int            { return c.driftPeriod }
func (c *wheelConfig) DriftMaxDeviation() float64  { return c.driftMaxDeviation }
