package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"reward_wheel/internal/model"
)

const issuer = "reward_wheel"

type claimToken struct {
	jwt.RegisteredClaims
	WheelID        int64  `json:"wid"`
	Reward         string `json:"reward"`
	RedemptionCode string `json:"code"`
}

// GenerateClaimToken подписывает выигрыш. ID токена - ID спина, subject - участник
func GenerateClaimToken(claim model.Claim, secretKey []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := claimToken{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        claim.SpinID,
			Subject:   claim.Participant,
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings{strconv.FormatInt(claim.WheelID, 10)},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		WheelID:        claim.WheelID,
		Reward:         claim.Reward,
		RedemptionCode: claim.RedemptionCode,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(secretKey)
}

func VerifyClaimToken(tokenStr string, secretKey []byte) (*model.Claim, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &claimToken{}, func(token *jwt.Token) (interface{}, error) {
		_, ok := token.Method.(*jwt.SigningMethodHMAC)
		if !ok {
			return nil, errors.New("unexpected token signing method")
		}

		return secretKey, nil
	}, jwt.WithIssuer(issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(*claimToken)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	return &model.Claim{
		SpinID:         claims.ID,
		WheelID:        claims.WheelID,
		Participant:    claims.Subject,
		Reward:         claims.Reward,
		RedemptionCode: claims.RedemptionCode,
		ExpiresAt:      claims.ExpiresAt.Time,
	}, nil
}
