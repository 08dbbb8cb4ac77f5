package env

import (
	"fmt"
	"os"
	"strconv"

	"github.com/rs/zerolog"

	"reward_wheel/internal/config"
)

const (
	logLevelEnvName  = "LOG_LEVEL"
	logPrettyEnvName = "LOG_PRETTY"
)

type logConfig struct {
	level  zerolog.Level
	pretty bool
}

// NewLogConfig - уровень по умолчанию info, вывод в JSON
func NewLogConfig() (config.LogConfig, error) {
	level := zerolog.InfoLevel
	if raw := os.Getenv(logLevelEnvName); len(raw) != 0 {
		parsed, err := zerolog.ParseLevel(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid log level: %w", err)
		}
		level = parsed
	}

	var pretty bool
	if raw := os.Getenv(logPrettyEnvName); len(raw) != 0 {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid log pretty flag: %w", err)
		}
		pretty = parsed
	}

	return &logConfig{level: level, pretty: pretty}, nil
}

func (c *logConfig) Level() zerolog.Level {
	return c.level
}

func (c *logConfig) Pretty() bool {
	return c.pretty
}
