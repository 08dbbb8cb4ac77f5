package converter

import (
	"reward_wheel/internal/api/dto/claim"
	"reward_wheel/internal/model"
)

func ToClaimResponse(c model.Claim) claim.ClaimResponse {
	return claim.ClaimResponse{
		SpinID:         c.SpinID,
		WheelID:        c.WheelID,
		Participant:    c.Participant,
		Reward:         c.Reward,
		RedemptionCode: c.RedemptionCode,
		ExpiresAt:      c.ExpiresAt,
	}
}
