package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/solatis/audiencekeeper/internal/core/tracing"
	"github.com/solatis/audiencekeeper/internal/segment"
	"github.com/solatis/audiencekeeper/internal/types"
)

func traceSegment(id types.SegmentID) trace.SpanStartOption {
	return trace.WithAttributes(attribute.String("segment.id", string(id)))
}

// CreateCampaign starts a campaign for one of the user's segments. The
// audience is evaluated now and frozen: one PENDING communication log is
// written per recipient and the recipient list is exported when an export
// sink is configured. Dispatch itself happens elsewhere.
func (s *Service) CreateCampaign(ctx context.Context, userID, title string, segmentID types.SegmentID) (c *types.Campaign, err error) {
	ctx, span := tracing.Start(ctx, "campaign.create", traceSegment(segmentID))
	defer func() { finish(span, err) }()

	if userID == "" {
		return nil, types.ErrMissingUser
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, types.ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > types.MaxNameLength {
		return nil, fmt.Errorf("campaign title: %w", types.ErrNameTooLong)
	}

	seg, err := s.owned(ctx, userID, segmentID)
	if err != nil {
		return nil, err
	}
	compiled, err := segment.Validate(seg)
	if err != nil {
		return nil, fmt.Errorf("stored segment %s is invalid: %w", segmentID, err)
	}
	aud, err := s.audience(ctx, compiled, 0)
	if err != nil {
		return nil, err
	}

	c = &types.Campaign{
		CampaignID:   types.NewCampaignID(),
		UserID:       userID,
		SegmentID:    segmentID,
		Title:        title,
		State:        types.CampaignActive,
		AudienceSize: aud.Size,
		CreatedAt:    s.now().UTC().Truncate(time.Microsecond),
	}
	if err := s.store.CreateCampaign(ctx, c, aud.CustomerIDs); err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.String("campaign.id", string(c.CampaignID)),
		attribute.Int("campaign.audience_size", c.AudienceSize),
	)

	// The campaign and its logs are committed; a failed export leaves the
	// logs as the dispatcher's source of recipients.
	uri, err := s.exporter.Export(ctx, c, aud.CustomerIDs)
	if err != nil {
		s.log.WithContext(ctx).Warnw("recipient list export failed",
			"campaign_id", c.CampaignID, "error", err)
	} else if uri != "" {
		if err := s.store.SetCampaignExport(ctx, c.CampaignID, uri); err != nil {
			s.log.WithContext(ctx).Warnw("failed to record recipient list export",
				"campaign_id", c.CampaignID, "export_uri", uri, "error", err)
		} else {
			c.ExportURI = uri
		}
	}

	s.log.WithContext(ctx).Infow("campaign created",
		"campaign_id", c.CampaignID, "segment_id", segmentID, "audience_size", c.AudienceSize)
	return c, nil
}

// ListCampaigns returns the user's campaigns, newest first.
func (s *Service) ListCampaigns(ctx context.Context, userID string) ([]*types.Campaign, error) {
	if userID == "" {
		return nil, types.ErrMissingUser
	}
	return s.store.ListCampaigns(ctx, userID)
}

// ActiveCampaigns returns every ACTIVE campaign, newest first.
func (s *Service) ActiveCampaigns(ctx context.Context) ([]*types.Campaign, error) {
	return s.store.ListCampaignsByState(ctx, types.CampaignActive)
}

// SetCampaignState moves one of the user's campaigns to state.
func (s *Service) SetCampaignState(ctx context.Context, userID string, id types.CampaignID, state types.CampaignState) (*types.Campaign, error) {
	if userID == "" {
		return nil, types.ErrMissingUser
	}
	state = types.CampaignState(strings.ToUpper(strings.TrimSpace(string(state))))
	if !state.Valid() {
		return nil, fmt.Errorf("%q: %w", state, types.ErrInvalidState)
	}
	c, err := s.ownedCampaign(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpdateCampaignState(ctx, id, state); err != nil {
		return nil, err
	}
	c.State = state
	s.log.WithContext(ctx).Infow("campaign state changed", "campaign_id", id, "state", state)
	return c, nil
}

// RecordDelivery applies a delivery receipt from the external dispatcher.
func (s *Service) RecordDelivery(ctx context.Context, id types.LogID, status types.LogStatus) (*types.CommunicationLog, error) {
	status = types.LogStatus(strings.ToUpper(strings.TrimSpace(string(status))))
	if !status.Valid() || status == types.LogPending {
		return nil, fmt.Errorf("%q: %w", status, types.ErrInvalidStatus)
	}
	if err := s.store.UpdateLogStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.store.GetCommunicationLog(ctx, id)
}

// CampaignStats returns per-campaign delivery counts.
func (s *Service) CampaignStats(ctx context.Context) ([]types.CampaignStats, error) {
	return s.store.CampaignStats(ctx)
}

// DashboardStats returns store-wide totals.
func (s *Service) DashboardStats(ctx context.Context) (types.DashboardStats, error) {
	return s.store.DashboardStats(ctx)
}
