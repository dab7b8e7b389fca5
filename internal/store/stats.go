package store

import (
	"context"
	"time"

	"github.com/mohannedbt/creator-growth-lab/internal/model"
)

// Stats aggregates the store contents for the stats endpoint. Built on the
// same best-effort listing, so corrupt files are simply not counted.
func (s *RunStore) Stats(ctx context.Context) (*model.StoreStats, error) {
	items, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	channels := make(map[string]struct{}, len(items))
	for _, it := range items {
		channels[it.ChannelID] = struct{}{}
	}

	stats := &model.StoreStats{
		TotalRuns:        len(items),
		DistinctChannels: len(channels),
	}
	if len(items) > 0 {
		latest := items[0].GeneratedAt.UTC().Format(time.RFC3339)
		stats.LatestRunAt = &latest
	}
	return stats, nil
}
