package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/solatis/audiencekeeper/internal/core/db"
	"github.com/solatis/audiencekeeper/internal/types"
)

// logInsertBatch bounds rows per multi-row INSERT; 5 columns each keeps
// the statement under SQLite's bind variable limit.
const logInsertBatch = 100

type campaignRow struct {
	CampaignID   string `db:"campaign_id"`
	UserID       string `db:"user_id"`
	SegmentID    string `db:"segment_id"`
	Title        string `db:"title"`
	State        string `db:"state"`
	AudienceSize int64  `db:"audience_size"`
	ExportURI    string `db:"export_uri"`
	CreatedAt    string `db:"created_at"`
}

func (r campaignRow) campaign() (*types.Campaign, error) {
	createdAt, err := parseTime(r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("campaign %s: %w", r.CampaignID, err)
	}
	return &types.Campaign{
		CampaignID:   types.CampaignID(r.CampaignID),
		UserID:       r.UserID,
		SegmentID:    types.SegmentID(r.SegmentID),
		Title:        r.Title,
		State:        types.CampaignState(r.State),
		AudienceSize: int(r.AudienceSize),
		ExportURI:    r.ExportURI,
		CreatedAt:    createdAt,
	}, nil
}

type logRow struct {
	LogID      string `db:"log_id"`
	CampaignID string `db:"campaign_id"`
	CustomerID string `db:"customer_id"`
	Status     string `db:"status"`
	CreatedAt  string `db:"created_at"`
}

func (r logRow) log() (types.CommunicationLog, error) {
	createdAt, err := parseTime(r.CreatedAt)
	if err != nil {
		return types.CommunicationLog{}, fmt.Errorf("communication log %s: %w", r.LogID, err)
	}
	return types.CommunicationLog{
		LogID:      types.LogID(r.LogID),
		CampaignID: types.CampaignID(r.CampaignID),
		CustomerID: types.CustomerID(r.CustomerID),
		Status:     types.LogStatus(r.Status),
		CreatedAt:  createdAt,
	}, nil
}

// CreateCampaign inserts the campaign and one PENDING communication log per
// recipient in a single transaction.
func (s *Store) CreateCampaign(ctx context.Context, c *types.Campaign, recipients []types.CustomerID) error {
	created := FormatTime(c.CreatedAt)

	return s.inTx(ctx, func(tx *sqlx.Tx, q *db.Queries) error {
		_, err := q.Exec(ctx, "insert-campaign",
			string(c.CampaignID), c.UserID, string(c.SegmentID), c.Title,
			string(c.State), int64(c.AudienceSize), c.ExportURI, created)
		if err != nil {
			return fmt.Errorf("failed to insert campaign: %w", err)
		}

		for start := 0; start < len(recipients); start += logInsertBatch {
			end := min(start+logInsertBatch, len(recipients))
			ins := s.builder.Insert("communication_logs").
				Columns("log_id", "campaign_id", "customer_id", "status", "created_at")
			for _, id := range recipients[start:end] {
				ins = ins.Values(string(types.NewLogID()), string(c.CampaignID), string(id), string(types.LogPending), created)
			}
			query, args, err := ins.ToSql()
			if err != nil {
				return fmt.Errorf("build communication log insert: %w", err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("failed to insert communication logs: %w", err)
			}
		}
		return nil
	})
}

// GetCampaign loads one campaign.
func (s *Store) GetCampaign(ctx context.Context, id types.CampaignID) (*types.Campaign, error) {
	var row campaignRow
	if err := s.queries.Get(ctx, "get-campaign", &row, string(id)); err != nil {
		return nil, notFound(err, "campaign "+string(id))
	}
	return row.campaign()
}

// ListCampaigns returns the user's campaigns, newest first.
func (s *Store) ListCampaigns(ctx context.Context, userID string) ([]*types.Campaign, error) {
	return s.listCampaigns(ctx, "list-campaigns-by-user", userID)
}

// ListCampaignsByState returns every campaign in state, newest first.
func (s *Store) ListCampaignsByState(ctx context.Context, state types.CampaignState) ([]*types.Campaign, error) {
	return s.listCampaigns(ctx, "list-campaigns-by-state", string(state))
}

func (s *Store) listCampaigns(ctx context.Context, query string, arg string) ([]*types.Campaign, error) {
	var rows []campaignRow
	if err := s.queries.Select(ctx, query, &rows, arg); err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	out := make([]*types.Campaign, 0, len(rows))
	for _, r := range rows {
		c, err := r.campaign()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// UpdateCampaignState moves a campaign to state.
func (s *Store) UpdateCampaignState(ctx context.Context, id types.CampaignID, state types.CampaignState) error {
	res, err := s.queries.Exec(ctx, "update-campaign-state", string(state), string(id))
	if err != nil {
		return fmt.Errorf("failed to update campaign state: %w", err)
	}
	return affected(res, "campaign "+string(id))
}

// SetCampaignExport records where the recipient list was exported.
func (s *Store) SetCampaignExport(ctx context.Context, id types.CampaignID, uri string) error {
	res, err := s.queries.Exec(ctx, "update-campaign-export", uri, string(id))
	if err != nil {
		return fmt.Errorf("failed to update campaign export: %w", err)
	}
	return affected(res, "campaign "+string(id))
}

// ListCommunicationLogs returns a campaign's logs ordered by customer ID.
func (s *Store) ListCommunicationLogs(ctx context.Context, id types.CampaignID) ([]types.CommunicationLog, error) {
	var rows []logRow
	if err := s.queries.Select(ctx, "list-communication-logs", &rows, string(id)); err != nil {
		return nil, fmt.Errorf("failed to list communication logs: %w", err)
	}
	out := make([]types.CommunicationLog, 0, len(rows))
	for _, r := range rows {
		l, err := r.log()
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

// GetCommunicationLog loads one log row.
func (s *Store) GetCommunicationLog(ctx context.Context, id types.LogID) (*types.CommunicationLog, error) {
	var row logRow
	if err := s.queries.Get(ctx, "get-communication-log", &row, string(id)); err != nil {
		return nil, notFound(err, "communication log "+string(id))
	}
	l, err := row.log()
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// UpdateLogStatus records a delivery receipt from the dispatcher.
func (s *Store) UpdateLogStatus(ctx context.Context, id types.LogID, status types.LogStatus) error {
	res, err := s.queries.Exec(ctx, "update-communication-log-status", string(status), string(id))
	if err != nil {
		return fmt.Errorf("failed to update communication log: %w", err)
	}
	return affected(res, "communication log "+string(id))
}
