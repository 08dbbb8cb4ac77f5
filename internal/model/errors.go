package model

import "errors"

var (
	ErrWheelNotFound    = errors.New("wheel not found")
	ErrInvalidWheel     = errors.New("invalid wheel")
	ErrAlreadySpun      = errors.New("participant already spun this wheel")
	ErrInvalidClaim     = errors.New("invalid claim token")
	ErrCampaignRequired = errors.New("campaign id is required")

	ErrParticipantRequired = errors.New("participant is required")
)
