package claim

import "time"

type VerifyRequest struct {
	Token string `json:"token" validate:"notblank"`
}

type ClaimResponse struct {
	SpinID         string    `json:"spin_id"`
	WheelID        int64     `json:"wheel_id"`
	Participant    string    `json:"participant"`
	Reward         string    `json:"reward"`
	RedemptionCode string    `json:"redemption_code"`
	ExpiresAt      time.Time `json:"expires_at"`
}
