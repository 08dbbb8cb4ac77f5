package env

import (
	"fmt"
	"os"
	"time"

	"reward_wheel/internal/config"
)

const (
	claimSecretEnvName   = "CLAIM_SECRET"
	claimTokenTTLEnvName = "CLAIM_TOKEN_TTL"

	defaultClaimTokenTTL = 72 * time.Hour
)

type claimConfig struct {
	secretKey string
	tokenTTL  time.Duration
}

func NewClaimConfig() (config.ClaimConfig, error) {
	secret := os.Getenv(claimSecretEnvName)
	if len(secret) == 0 {
		return nil, fmt.Errorf("claim secret key not found")
	}

	ttl := defaultClaimTokenTTL
	if raw := os.Getenv(claimTokenTTLEnvName); len(raw) != 0 {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid claim token ttl: %w", err)
		}
		if parsed <= 0 {
			return nil, fmt.Errorf("claim token ttl must be positive")
		}
		ttl = parsed
	}

	return &claimConfig{
		secretKey: secret,
		tokenTTL:  ttl,
	}, nil
}

func (c *claimConfig) SecretKey() []byte {
	return []byte(c.secretKey)
}

func (c *claimConfig) TokenTTL() time.Duration {
	return c.tokenTTL
}
