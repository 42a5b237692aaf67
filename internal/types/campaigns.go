package types

import "time"

// CampaignState is the lifecycle state of a campaign.
type CampaignState string

const (
	CampaignActive CampaignState = "ACTIVE"
	CampaignClosed CampaignState = "CLOSED"
)

// Valid reports whether s is a known campaign state.
func (s CampaignState) Valid() bool {
	return s == CampaignActive || s == CampaignClosed
}

// Campaign is a messaging run targeted at a segment's audience. AudienceSize
// is frozen when the campaign is created. ExportURI locates the exported
// recipient list, empty when export is disabled.
type Campaign struct {
	CampaignID   CampaignID
	UserID       string
	SegmentID    SegmentID
	Title        string
	State        CampaignState
	AudienceSize int
	ExportURI    string
	CreatedAt    time.Time
}

// LogStatus is the delivery status of one communication log row. Only the
// external dispatcher moves a row out of PENDING.
type LogStatus string

const (
	LogPending LogStatus = "PENDING"
	LogSent    LogStatus = "SENT"
	LogFailed  LogStatus = "FAILED"
)

// Valid reports whether s is a known log status.
func (s LogStatus) Valid() bool {
	return s == LogPending || s == LogSent || s == LogFailed
}

// CommunicationLog records one recipient handed to the dispatcher.
type CommunicationLog struct {
	LogID      LogID
	CampaignID CampaignID
	CustomerID CustomerID
	Status     LogStatus
	CreatedAt  time.Time
}

// CampaignStats aggregates delivery counts for one campaign.
type CampaignStats struct {
	CampaignID   CampaignID
	Title        string
	OpenCount    int
	ClosedCount  int
	SentCount    int
	PendingCount int
	FailedCount  int
}

// DashboardStats aggregates counts across the whole store.
type DashboardStats struct {
	TotalCustomers int
	TotalSegments  int
	TotalCampaigns int
	OpenCount      int
	ClosedCount    int
	SentCount      int
	PendingCount   int
	FailedCount    int
}
