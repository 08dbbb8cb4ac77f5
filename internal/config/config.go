package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

func Load(path string) error {
	err := godotenv.Load(path)
	if err != nil {
		return err
	}
	return nil
}

type HTTPConfig interface {
	Address() string
	// AllowedOrigins - источники для CORS и вебсокета. "*" - любой
	AllowedOrigins() []string
}

type PGConfig interface {
	DSN() string
}

type ClaimConfig interface {
	SecretKey() []byte
	TokenTTL() time.Duration
}

type LogConfig interface {
	Level() zerolog.Level
	Pretty() bool
}

// WheelConfig - настройки колеса по умолчанию и параметры мониторинга шансов
type WheelConfig interface {
	PrimaryColor() string
	ContrastColor() string
	ButtonText() string
	Size() float64
	UpDuration() time.Duration
	DownDuration() time.Duration
	TickUnit() time.Duration
	FontFamily() string
	FontSize() float64
	OutlineWidth() float64

	// SampleEvery - шаг выборки кадров для таймлайна спина
	SampleEvery() int
	// MaxTicks - предел тиков симуляции
	MaxTicks() int

	DriftWindow() int
	DriftPeriod() int
	DriftMaxDeviation() float64
}
