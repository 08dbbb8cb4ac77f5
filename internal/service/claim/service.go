package claim

import (
	"context"
	"fmt"
	"strings"

	"reward_wheel/internal/config"
	"reward_wheel/internal/model"
	"reward_wheel/internal/service"
	"reward_wheel/pkg/token"
)

type serv struct {
	cfg config.ClaimConfig
}

func NewClaimService(cfg config.ClaimConfig) service.ClaimService {
	return &serv{cfg: cfg}
}

// Verify Проверяет подпись и срок токена выигрыша и сверяет код погашения со спином
func (s *serv) Verify(_ context.Context, tokenStr string) (*model.Claim, error) {
	tokenStr = strings.TrimSpace(tokenStr)
	if tokenStr == "" {
		return nil, fmt.Errorf("%w: empty token", model.ErrInvalidClaim)
	}

	claim, err := token.VerifyClaimToken(tokenStr, s.cfg.SecretKey())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrInvalidClaim, err)
	}
	if !token.VerifyRedemptionCode(claim.RedemptionCode, claim.SpinID, s.cfg.SecretKey()) {
		return nil, fmt.Errorf("%w: redemption code mismatch", model.ErrInvalidClaim)
	}
	return claim, nil
}
