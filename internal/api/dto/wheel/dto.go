package wheel

import "time"

type Segment struct {
	Position    int     `json:"position" validate:"gte=0"`
	Name        string  `json:"name" validate:"notblank,max=100"`
	Color       string  `json:"color" validate:"required"`
	Probability float64 `json:"probability" validate:"gte=0"` // Вес в процентах, 0..100
}

type WheelSettings struct {
	PrimaryColor   string  `json:"primary_color,omitempty"`
	ContrastColor  string  `json:"contrast_color,omitempty"`
	ButtonText     string  `json:"button_text,omitempty"`
	Size           float64 `json:"size,omitempty" validate:"gte=0,lte=2000"`
	UpDurationMS   int64   `json:"up_duration_ms,omitempty" validate:"gte=0,lte=10000"`   // На сегмент
	DownDurationMS int64   `json:"down_duration_ms,omitempty" validate:"gte=0,lte=10000"` // На сегмент
}

type CreateWheelRequest struct {
	CampaignID int64         `json:"campaign_id" validate:"gte=0"`
	Name       string        `json:"name" validate:"max=200"`
	OnlyOnce   bool          `json:"only_once"`
	Settings   WheelSettings `json:"settings"`
	Segments   []Segment     `json:"segments" validate:"dive"`
}

type UpdateSegmentsRequest struct {
	Segments []Segment `json:"segments" validate:"dive"`
}

type WheelResponse struct {
	ID         int64         `json:"id"`
	CampaignID int64         `json:"campaign_id"`
	Name       string        `json:"name"`
	OnlyOnce   bool          `json:"only_once"`
	Settings   WheelSettings `json:"settings"`
	Segments   []Segment     `json:"segments"`
	WeightSum  float64       `json:"weight_sum"`
	// Фактические шансы сегментов с учётом того, что при сумме весов меньше 100
	// остаток достаётся первому сегменту, а всё что выше 100 недостижимо
	EffectiveOdds []float64 `json:"effective_odds"`
	CreatedAt     time.Time `json:"created_at"`
}

type SpinRequest struct {
	Participant string `json:"participant" validate:"max=200"`
}

type Frame struct {
	Index     int     `json:"index"`
	ElapsedMS float64 `json:"elapsed_ms"`
	Angle     float64 `json:"angle"`
	Step      float64 `json:"step"`
	Progress  float64 `json:"progress"`
	Phase     string  `json:"phase"`
	Segment   string  `json:"segment"`
	Final     bool    `json:"final"`
}

type SpinResponse struct {
	SpinID         string    `json:"spin_id"`
	WheelID        int64     `json:"wheel_id"`
	Participant    string    `json:"participant"`
	Winner         string    `json:"winner"`
	Frames         int       `json:"frames"`
	FinalAngle     float64   `json:"final_angle"`
	DurationMS     int64     `json:"duration_ms"`
	RedemptionCode string    `json:"redemption_code"`
	ClaimToken     string    `json:"claim_token,omitempty"`
	Timeline       []Frame   `json:"timeline,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// LiveMessage Сообщение вебсокета живого спина
type LiveMessage struct {
	Type   string        `json:"type"` // frame, result, error
	Frame  *Frame        `json:"frame,omitempty"`
	Result *SpinResponse `json:"result,omitempty"`
	Error  string        `json:"error,omitempty"`
}

type SegmentStats struct {
	Name     string  `json:"name"`
	Expected float64 `json:"expected"`
	Observed float64 `json:"observed"`
	Wins     int     `json:"wins"`
}

type DriftLog struct {
	Timestamp time.Time `json:"timestamp"`
	Segment   string    `json:"segment"`
	Expected  float64   `json:"expected"`
	Observed  float64   `json:"observed"`
	Spins     int       `json:"spins"`
}

type StatsResponse struct {
	WheelID    int64          `json:"wheel_id"`
	TotalSpins int            `json:"total_spins"`
	WindowSize int            `json:"window_size"`
	Segments   []SegmentStats `json:"segments"`
	Drifting   bool           `json:"drifting"`
	Drifts     []DriftLog     `json:"drifts"`
}
