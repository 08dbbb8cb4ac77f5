package converter

import (
	"time"

	"reward_wheel/internal/api/dto/wheel"
	"reward_wheel/internal/model"
	"reward_wheel/internal/spinner"
)

func ToWheel(req wheel.CreateWheelRequest) model.Wheel {
	return model.Wheel{
		CampaignID: req.CampaignID,
		Name:       req.Name,
		OnlyOnce:   req.OnlyOnce,
		Settings: model.WheelSettings{
			PrimaryColor:  req.Settings.PrimaryColor,
			ContrastColor: req.Settings.ContrastColor,
			ButtonText:    req.Settings.ButtonText,
			Size:          req.Settings.Size,
			UpDuration:    time.Duration(req.Settings.UpDurationMS) * time.Millisecond,
			DownDuration:  time.Duration(req.Settings.DownDurationMS) * time.Millisecond,
		},
		Segments: ToSegments(req.Segments),
	}
}

func ToSegments(segments []wheel.Segment) []model.Segment {
	result := make([]model.Segment, len(segments))
	for i, s := range segments {
		result[i] = model.Segment{
			Position:    s.Position,
			Name:        s.Name,
			Color:       s.Color,
			Probability: s.Probability,
		}
	}
	return result
}

func ToWheelResponse(w model.Wheel) wheel.WheelResponse {
	segments := make([]wheel.Segment, len(w.Segments))
	engineSegments := make([]spinner.Segment, len(w.Segments))
	for i, s := range w.Segments {
		segments[i] = wheel.Segment{
			Position:    s.Position,
			Name:        s.Name,
			Color:       s.Color,
			Probability: s.Probability,
		}
		engineSegments[i] = spinner.Segment{Name: s.Name, Color: s.Color, Probability: s.Probability}
	}

	return wheel.WheelResponse{
		ID:         w.ID,
		CampaignID: w.CampaignID,
		Name:       w.Name,
		OnlyOnce:   w.OnlyOnce,
		Settings: wheel.WheelSettings{
			PrimaryColor:   w.Settings.PrimaryColor,
			ContrastColor:  w.Settings.ContrastColor,
			ButtonText:     w.Settings.ButtonText,
			Size:           w.Settings.Size,
			UpDurationMS:   w.Settings.UpDuration.Milliseconds(),
			DownDurationMS: w.Settings.DownDuration.Milliseconds(),
		},
		Segments:      segments,
		WeightSum:     spinner.WeightSum(engineSegments),
		EffectiveOdds: spinner.ExpectedShares(engineSegments),
		CreatedAt:     w.CreatedAt,
	}
}

func ToWheelsResponse(wheels []model.Wheel) []wheel.WheelResponse {
	result := make([]wheel.WheelResponse, len(wheels))
	for i, w := range wheels {
		result[i] = ToWheelResponse(w)
	}
	return result
}

func ToFrame(f spinner.Frame) wheel.Frame {
	return wheel.Frame{
		Index:     f.Index,
		ElapsedMS: float64(f.Elapsed) / float64(time.Millisecond),
		Angle:     f.Angle,
		Step:      f.Step,
		Progress:  f.Progress,
		Phase:     string(f.Phase),
		Segment:   f.Segment,
		Final:     f.Final,
	}
}

func ToSpinRecordResponse(s model.SpinRecord) wheel.SpinResponse {
	return wheel.SpinResponse{
		SpinID:         s.ID,
		WheelID:        s.WheelID,
		Participant:    s.Participant,
		Winner:         s.Winner,
		Frames:         s.Frames,
		FinalAngle:     s.FinalAngle,
		DurationMS:     s.DurationMS,
		RedemptionCode: s.RedemptionCode,
		CreatedAt:      s.CreatedAt,
	}
}

func ToSpinRecordsResponse(spins []model.SpinRecord) []wheel.SpinResponse {
	result := make([]wheel.SpinResponse, len(spins))
	for i, s := range spins {
		result[i] = ToSpinRecordResponse(s)
	}
	return result
}

func ToSpinResponse(res model.SpinResult) wheel.SpinResponse {
	response := ToSpinRecordResponse(res.Spin)
	response.ClaimToken = res.ClaimToken
	if len(res.Timeline) > 0 {
		response.Timeline = make([]wheel.Frame, len(res.Timeline))
		for i, f := range res.Timeline {
			response.Timeline[i] = ToFrame(f)
		}
	}
	return response
}

func ToStatsResponse(st model.WheelStats) wheel.StatsResponse {
	segments := make([]wheel.SegmentStats, len(st.Segments))
	for i, s := range st.Segments {
		segments[i] = wheel.SegmentStats{
			Name:     s.Name,
			Expected: s.Expected,
			Observed: s.Observed,
			Wins:     s.Wins,
		}
	}
	drifts := make([]wheel.DriftLog, len(st.Drifts))
	for i, d := range st.Drifts {
		drifts[i] = wheel.DriftLog{
			Timestamp: d.Timestamp,
			Segment:   d.Segment,
			Expected:  d.Expected,
			Observed:  d.Observed,
			Spins:     d.Spins,
		}
	}
	return wheel.StatsResponse{
		WheelID:    st.WheelID,
		TotalSpins: st.TotalSpins,
		WindowSize: st.WindowSize,
		Segments:   segments,
		Drifting:   st.Drifting,
		Drifts:     drifts,
	}
}
