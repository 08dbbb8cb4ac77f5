package env

import (
	"errors"
	"net"
	"os"
	"strconv"
	"strings"

	"reward_wheel/internal/config"
)

const (
	httpHostEnvName = "HTTP_HOST"
	httpPortEnvName = "HTTP_PORT"

	// Список через запятую. Пусто - любой источник
	httpAllowedOriginsEnvName = "HTTP_ALLOWED_ORIGINS"
)

type httpConfig struct {
	host    string
	port    string
	origins []string
}

func NewHTTPConfig() (config.HTTPConfig, error) {
	host := os.Getenv(httpHostEnvName)

	port := os.Getenv(httpPortEnvName)
	if len(port) == 0 {
		return nil, errors.New("http port not found")
	}
	if _, err := strconv.Atoi(port); err != nil {
		return nil, errors.New("http port must be a number")
	}

	var origins []string
	for _, o := range strings.Split(os.Getenv(httpAllowedOriginsEnvName), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return &httpConfig{
		host:    host,
		port:    port,
		origins: origins,
	}, nil
}

func (cfg *httpConfig) Address() string {
	return net.JoinHostPort(cfg.host, cfg.port)
}

func (cfg *httpConfig) AllowedOrigins() []string {
	return cfg.origins
}
