package model

// Analyze request bounds enforced by the analytics API.
const (
	DefaultNVideos        = 50
	MinNVideos            = 1
	MaxNVideos            = 200
	DefaultBaselineWindow = 20
	MinBaselineWindow     = 5
	MaxBaselineWindow     = 100
)

// AnalyzeRequest is the body sent to POST /analyze/channel.
type AnalyzeRequest struct {
	ChannelID      string `json:"channel_id"`
	NVideos        int    `json:"n_videos"`
	BaselineWindow int    `json:"baseline_window"`
}

// ApplyDefaults fills zero values and clamps both knobs into the ranges the
// analytics API accepts, so a sloppy form submit never turns into a 422.
func (r *AnalyzeRequest) ApplyDefaults() {
	if r.NVideos == 0 {
		r.NVideos = DefaultNVideos
	}
	if r.BaselineWindow == 0 {
		r.BaselineWindow = DefaultBaselineWindow
	}
	r.NVideos = clamp(r.NVideos, MinNVideos, MaxNVideos)
	r.BaselineWindow = clamp(r.BaselineWindow, MinBaselineWindow, MaxBaselineWindow)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
