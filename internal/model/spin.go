package model

import (
	"time"

	"reward_wheel/internal/spinner"
)

// SpinRecord is a persisted spin.
type SpinRecord struct {
	ID             string
	WheelID        int64
	Participant    string
	Winner         string
	Frames         int
	FinalAngle     float64
	DurationMS     int64
	RedemptionCode string
	CreatedAt      time.Time
}

// SpinResult is what a spin returns to the caller: the stored record, a
// sampled timeline for client-side playback and the claim token.
type SpinResult struct {
	Spin       SpinRecord
	Timeline   []spinner.Frame
	ClaimToken string
}

// Claim is the verified content of a claim token.
type Claim struct {
	SpinID         string
	WheelID        int64
	Participant    string
	Reward         string
	RedemptionCode string
	ExpiresAt      time.Time
}
