package model

import "time"

// MetaInfo describes the parameters a run was generated with.
type MetaInfo struct {
	ChannelID      string    `json:"channel_id"`
	NVideos        int       `json:"n_videos"`
	BaselineWindow int       `json:"baseline_window"`
	GeneratedAt    time.Time `json:"generated_at"`
}

// ChannelIdentity is the channel snapshot captured at generation time.
type ChannelIdentity struct {
	ChannelID    string `json:"channel_id"`
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnail_url"`
}

// Kpis holds the headline numbers for a run.
type Kpis struct {
	VideosAnalyzed            int     `json:"videos_analyzed"`
	BaselineViewsPerDay       float64 `json:"baseline_views_per_day"`
	MedianRelativePerformance float64 `json:"median_relative_performance"`
	AvgEngagementRate         float64 `json:"avg_engagement_rate"`
}

// TrendPoint is one per-video data point in the performance trend.
type TrendPoint struct {
	PublishedAt         time.Time `json:"published_at"`
	Views               int       `json:"views"`
	ViewsPerDay         float64   `json:"views_per_day"`
	RelativePerformance float64   `json:"relative_performance"`
}

// DriverEffect describes how one video feature moves performance.
type DriverEffect struct {
	Feature       string  `json:"feature"`
	EffectPercent float64 `json:"effect_percent"`
	UnitChange    string  `json:"unit_change"`
	Direction     string  `json:"direction"` // "increase" or "decrease"
}

// Recommendation is an actionable suggestion derived from the drivers.
type Recommendation struct {
	Title                 string   `json:"title"`
	Detail                string   `json:"detail"`
	ExpectedImpactPercent *float64 `json:"expected_impact_percent,omitempty"`
	Confidence            string   `json:"confidence"` // "low", "medium", "high"
}

// TopicAssignment maps one video to the topic cluster it belongs to.
type TopicAssignment struct {
	VideoID    string `json:"video_id"`
	TopicID    int    `json:"topic_id"`
	TopicLabel string `json:"topic_label"`
}

// TopicSummary aggregates performance for one topic cluster, including the
// temporal signals (momentum, fatigue) computed by the analytics service.
type TopicSummary struct {
	TopicID int    `json:"topic_id"`
	Label   string `json:"label"`
	NVideos int    `json:"n_videos"`

	AvgRelativePerformance    float64 `json:"avg_relative_performance"`
	MedianRelativePerformance float64 `json:"median_relative_performance"`
	AvgViewsPerDay            float64 `json:"avg_views_per_day"`
	Volatility                float64 `json:"volatility"`

	HitRate     float64 `json:"hit_rate"`
	BestRecent  float64 `json:"best_recent"`
	WorstRecent float64 `json:"worst_recent"`

	RecentAvgRelativePerformance float64 `json:"recent_avg_relative_performance"`
	OlderAvgRelativePerformance  float64 `json:"older_avg_relative_performance"`
	Momentum                     float64 `json:"momentum"`
	TrendSlope                   float64 `json:"trend_slope"`
	Fatigue                      bool    `json:"fatigue"`
	Confidence                   float64 `json:"confidence"`

	TopExamples []string `json:"top_examples"`
}

// RunRecord is one persisted analysis result, exactly as returned by the
// analytics API. Records are written once and never mutated.
type RunRecord struct {
	Meta    MetaInfo        `json:"meta"`
	Channel ChannelIdentity `json:"channel"`
	Kpis    Kpis            `json:"kpis"`

	Trends          []TrendPoint     `json:"trends"`
	Drivers         []DriverEffect   `json:"drivers"`
	Recommendations []Recommendation `json:"recommendations"`
	Warnings        []string         `json:"warnings"`

	Topics           []TopicSummary    `json:"topics"`
	TopicAssignments []TopicAssignment `json:"topic_assignments"`
	TopicInsights    []string          `json:"topic_insights"`
}

// RunListItem is a lightweight projection of a RunRecord used for history
// listings, so pages don't load full trend/topic detail per run.
type RunListItem struct {
	Ref            string    `json:"ref"`
	ChannelID      string    `json:"channel_id"`
	ChannelTitle   string    `json:"channel_title,omitempty"`
	GeneratedAt    time.Time `json:"generated_at"`
	NVideos        int       `json:"n_videos"`
	BaselineWindow int       `json:"baseline_window"`

	BaselineViewsPerDay       float64 `json:"baseline_views_per_day"`
	MedianRelativePerformance float64 `json:"median_relative_performance"`
	AvgEngagementRate         float64 `json:"avg_engagement_rate"`
}

// ListItem projects the record for listings under the given file reference.
func (r *RunRecord) ListItem(ref string) RunListItem {
	return RunListItem{
		Ref:                       ref,
		ChannelID:                 r.Meta.ChannelID,
		ChannelTitle:              r.Channel.Title,
		GeneratedAt:               r.Meta.GeneratedAt,
		NVideos:                   r.Meta.NVideos,
		BaselineWindow:            r.Meta.BaselineWindow,
		BaselineViewsPerDay:       r.Kpis.BaselineViewsPerDay,
		MedianRelativePerformance: r.Kpis.MedianRelativePerformance,
		AvgEngagementRate:         r.Kpis.AvgEngagementRate,
	}
}
