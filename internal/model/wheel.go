package model

import "time"

// Upper limits of WheelSettings. The API rejects larger values with the same
// bounds in its validate tags.
const (
	MaxWheelSize       = 2000
	MaxSegmentDuration = 10 * time.Second
)

// Wheel is a prize wheel attached to a loyalty campaign.
type Wheel struct {
	ID         int64
	CampaignID int64
	Name       string
	OnlyOnce   bool // participant may spin this wheel once
	Settings   WheelSettings
	Segments   []Segment
	CreatedAt  time.Time
}

// WheelSettings override the configured wheel appearance. Zero values keep
// the defaults.
type WheelSettings struct {
	PrimaryColor  string
	ContrastColor string
	ButtonText    string
	Size          float64
	UpDuration    time.Duration
	DownDuration  time.Duration
}

// Segment is a reward on the wheel. Position orders the wedges.
type Segment struct {
	Position    int
	Name        string
	Color       string
	Probability float64
}
