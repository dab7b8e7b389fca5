package model

// StoreStats is the API response for GET /api/stats.
type StoreStats struct {
	TotalRuns        int     `json:"total_runs"`
	DistinctChannels int     `json:"distinct_channels"`
	LatestRunAt      *string `json:"latest_run_at,omitempty"`
}
