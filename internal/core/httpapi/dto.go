package httpapi

import (
	"fmt"
	"time"

	"github.com/solatis/audiencekeeper/internal/core/service"
	"github.com/solatis/audiencekeeper/internal/segment"
	"github.com/solatis/audiencekeeper/internal/types"
)

// Request and response bodies. Field names follow the CRM client.

type previewResponse struct {
	AudienceSize int `json:"audienceSize"`
}

type audienceResponse struct {
	AudienceSize int                `json:"audienceSize"`
	Capped       bool               `json:"capped"`
	CustomerIDs  []types.CustomerID `json:"customerIds"`
}

func newAudienceResponse(a service.Audience) audienceResponse {
	ids := a.CustomerIDs
	if ids == nil {
		ids = []types.CustomerID{}
	}
	return audienceResponse{AudienceSize: a.Size, Capped: a.Capped, CustomerIDs: ids}
}

type customerRequest struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	City       *string  `json:"city"`
	TotalSpend *float64 `json:"totalSpend"`
	Visits     *int64   `json:"visits"`
	LastVisit  *string  `json:"lastVisit"`
}

// profile converts the request, parsing lastVisit with the same date rules
// as segment literals.
func (c customerRequest) profile() (types.CustomerProfile, error) {
	p := types.CustomerProfile{
		CustomerID: types.CustomerID(c.ID),
		Name:       c.Name,
		Email:      c.Email,
		City:       c.City,
		TotalSpend: c.TotalSpend,
		Visits:     c.Visits,
	}
	if c.LastVisit != nil && *c.LastVisit != "" {
		res, err := segment.Coerce(*c.LastVisit, segment.FieldTypeDate)
		if err != nil {
			return p, fmt.Errorf("lastVisit %q: %w", *c.LastVisit, err)
		}
		if !res.IsNull {
			d := res.Value.Date
			p.LastVisit = &d
		}
	}
	return p, nil
}

type ingestRequest struct {
	Customers []customerRequest `json:"customers"`
}

type ingestResponse struct {
	Inserted    int                `json:"inserted"`
	CustomerIDs []types.CustomerID `json:"customerIds"`
}

type campaignRequest struct {
	Title     string `json:"title"`
	SegmentID string `json:"segmentId"`
	UserID    string `json:"userId"`
}

type campaignStateRequest struct {
	State  string `json:"state"`
	UserID string `json:"userId"`
}

type campaignResponse struct {
	ID           string `json:"_id"`
	UserID       string `json:"userId"`
	SegmentID    string `json:"segmentId"`
	Title        string `json:"title"`
	State        string `json:"state"`
	AudienceSize int    `json:"audienceSize"`
	ExportURI    string `json:"exportUri,omitempty"`
	CreatedAt    string `json:"createdAt"`
}

func newCampaignResponse(c *types.Campaign) campaignResponse {
	return campaignResponse{
		ID:           string(c.CampaignID),
		UserID:       c.UserID,
		SegmentID:    string(c.SegmentID),
		Title:        c.Title,
		State:        string(c.State),
		AudienceSize: c.AudienceSize,
		ExportURI:    c.ExportURI,
		CreatedAt:    c.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func newCampaignList(cs []*types.Campaign) []campaignResponse {
	out := make([]campaignResponse, len(cs))
	for i, c := range cs {
		out[i] = newCampaignResponse(c)
	}
	return out
}

type pastCampaignsResponse struct {
	Campaigns []campaignResponse `json:"campaigns"`
}

type activeCampaignsResponse struct {
	ActiveCampaigns []campaignResponse `json:"activeCampaigns"`
}

type campaignCountsResponse struct {
	CampaignStats []campaignStatsResponse `json:"campaignStats"`
}

type campaignStatsResponse struct {
	CampaignID   string `json:"campaignId"`
	Title        string `json:"title"`
	OpenCount    int    `json:"openCount"`
	ClosedCount  int    `json:"closedCount"`
	SentCount    int    `json:"sentCount"`
	PendingCount int    `json:"pendingCount"`
	FailedCount  int    `json:"failedCount"`
}

type dashboardResponse struct {
	TotalCustomers int `json:"totalCustomers"`
	TotalSegments  int `json:"totalSegments"`
	TotalCampaigns int `json:"totalCampaigns"`
	OpenCount      int `json:"openCount"`
	ClosedCount    int `json:"closedCount"`
	SentCount      int `json:"sentCount"`
	PendingCount   int `json:"pendingCount"`
	FailedCount    int `json:"failedCount"`
}

type receiptRequest struct {
	Status string `json:"status"`
}

type logResponse struct {
	ID         string `json:"_id"`
	CampaignID string `json:"campaignId"`
	CustomerID string `json:"customerId"`
	Status     string `json:"status"`
	CreatedAt  string `json:"createdAt"`
}
