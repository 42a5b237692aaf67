// Package service orchestrates segment, customer and campaign operations
// over the store, the segment engine and the export sink.
package service

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/solatis/audiencekeeper/internal/core/config"
	"github.com/solatis/audiencekeeper/internal/core/export"
	"github.com/solatis/audiencekeeper/internal/core/logger"
	"github.com/solatis/audiencekeeper/internal/core/store"
	"github.com/solatis/audiencekeeper/internal/segment"
	"github.com/solatis/audiencekeeper/internal/types"
)

// Store is the persistence the service needs.
type Store interface {
	Ping(ctx context.Context) error

	CreateSegment(ctx context.Context, seg *types.Segment) error
	GetSegment(ctx context.Context, id types.SegmentID) (*types.Segment, error)
	ListSegments(ctx context.Context, userID string) ([]*types.Segment, error)
	ReplaceSegment(ctx context.Context, seg *types.Segment) error
	UpdateAudienceSize(ctx context.Context, id types.SegmentID, size int) error
	DeleteSegment(ctx context.Context, id types.SegmentID) error

	UpsertCustomers(ctx context.Context, profiles []types.CustomerProfile) ([]types.CustomerID, error)
	Customers(ctx context.Context) *store.CustomerCursor
	CountMatching(ctx context.Context, seg *segment.CompiledSegment) (int, error)
	MatchingIDs(ctx context.Context, seg *segment.CompiledSegment, limit int) ([]types.CustomerID, error)

	CreateCampaign(ctx context.Context, c *types.Campaign, recipients []types.CustomerID) error
	GetCampaign(ctx context.Context, id types.CampaignID) (*types.Campaign, error)
	ListCampaigns(ctx context.Context, userID string) ([]*types.Campaign, error)
	ListCampaignsByState(ctx context.Context, state types.CampaignState) ([]*types.Campaign, error)
	UpdateCampaignState(ctx context.Context, id types.CampaignID, state types.CampaignState) error
	SetCampaignExport(ctx context.Context, id types.CampaignID, uri string) error
	GetCommunicationLog(ctx context.Context, id types.LogID) (*types.CommunicationLog, error)
	UpdateLogStatus(ctx context.Context, id types.LogID, status types.LogStatus) error

	CampaignStats(ctx context.Context) ([]types.CampaignStats, error)
	DashboardStats(ctx context.Context) (types.DashboardStats, error)
}

// Service implements the audiencekeeper use cases.
type Service struct {
	store    Store
	exporter export.Exporter
	cfg      config.AudienceConfig
	log      *logger.Logger
	now      func() time.Time
}

// New creates a service. A nil exporter disables export; a nil logger
// discards logs.
func New(st Store, exporter export.Exporter, cfg config.AudienceConfig, log *logger.Logger) (*Service, error) {
	if st == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	if cfg.Strategy != config.StrategyStream && cfg.Strategy != config.StrategySQL {
		return nil, fmt.Errorf("unknown audience strategy %q", cfg.Strategy)
	}
	if cfg.RefreshConcurrency <= 0 {
		cfg.RefreshConcurrency = 1
	}
	if exporter == nil {
		exporter = export.Nop{}
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{
		store:    st,
		exporter: exporter,
		cfg:      cfg,
		log:      log.WithComponent("service"),
		now:      time.Now,
	}, nil
}

// Ping checks that the store is reachable.
func (s *Service) Ping(ctx context.Context) error {
	return s.store.Ping(ctx)
}

// finish records err on span and ends it.
func finish(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// owned loads a segment and checks it belongs to userID.
func (s *Service) owned(ctx context.Context, userID string, id types.SegmentID) (*types.Segment, error) {
	seg, err := s.store.GetSegment(ctx, id)
	if err != nil {
		return nil, err
	}
	if seg.UserID != userID {
		return nil, fmt.Errorf("segment %s: %w", id, types.ErrForbidden)
	}
	return seg, nil
}

func (s *Service) ownedCampaign(ctx context.Context, userID string, id types.CampaignID) (*types.Campaign, error) {
	c, err := s.store.GetCampaign(ctx, id)
	if err != nil {
		return nil, err
	}
	if c.UserID != userID {
		return nil, fmt.Errorf("campaign %s: %w", id, types.ErrForbidden)
	}
	return c, nil
}
