package store

import (
	"context"
	"fmt"

	"github.com/solatis/audiencekeeper/internal/types"
)

type campaignStatsRow struct {
	CampaignID   string `db:"campaign_id"`
	Title        string `db:"title"`
	OpenCount    int64  `db:"open_count"`
	ClosedCount  int64  `db:"closed_count"`
	SentCount    int64  `db:"sent_count"`
	PendingCount int64  `db:"pending_count"`
	FailedCount  int64  `db:"failed_count"`
}

type dashboardRow struct {
	TotalCustomers int64 `db:"total_customers"`
	TotalSegments  int64 `db:"total_segments"`
	TotalCampaigns int64 `db:"total_campaigns"`
	OpenCount      int64 `db:"open_count"`
	ClosedCount    int64 `db:"closed_count"`
	SentCount      int64 `db:"sent_count"`
	PendingCount   int64 `db:"pending_count"`
	FailedCount    int64 `db:"failed_count"`
}

// CampaignStats returns per-campaign counts, newest campaign first.
// OpenCount and ClosedCount are 1 or 0 so the rows sum to dashboard totals.
func (s *Store) CampaignStats(ctx context.Context) ([]types.CampaignStats, error) {
	var rows []campaignStatsRow
	if err := s.queries.Select(ctx, "campaign-stats", &rows); err != nil {
		return nil, fmt.Errorf("failed to query campaign stats: %w", err)
	}
	out := make([]types.CampaignStats, len(rows))
	for i, r := range rows {
		out[i] = types.CampaignStats{
			CampaignID:   types.CampaignID(r.CampaignID),
			Title:        r.Title,
			OpenCount:    int(r.OpenCount),
			ClosedCount:  int(r.ClosedCount),
			SentCount:    int(r.SentCount),
			PendingCount: int(r.PendingCount),
			FailedCount:  int(r.FailedCount),
		}
	}
	return out, nil
}

// DashboardStats returns store-wide totals.
func (s *Store) DashboardStats(ctx context.Context) (types.DashboardStats, error) {
	var r dashboardRow
	if err := s.queries.Get(ctx, "dashboard-stats", &r); err != nil {
		return types.DashboardStats{}, fmt.Errorf("failed to query dashboard stats: %w", err)
	}
	return types.DashboardStats{
		TotalCustomers: int(r.TotalCustomers),
		TotalSegments:  int(r.TotalSegments),
		TotalCampaigns: int(r.TotalCampaigns),
		OpenCount:      int(r.OpenCount),
		ClosedCount:    int(r.ClosedCount),
		SentCount:      int(r.SentCount),
		PendingCount:   int(r.PendingCount),
		FailedCount:    int(r.FailedCount),
	}, nil
}
