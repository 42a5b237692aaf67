package types

import "github.com/google/uuid"

// NewSegmentID generates a UUIDv7 segment identifier.
// Time-ordered IDs keep list queries in creation order without a sort column.
// Panics on clock regression (uuid.Must); acceptable for ID generation.
func NewSegmentID() SegmentID {
	return SegmentID(uuid.Must(uuid.NewV7()).String())
}

// NewCampaignID generates a UUIDv7 campaign identifier.
func NewCampaignID() CampaignID {
	return CampaignID(uuid.Must(uuid.NewV7()).String())
}

// NewCustomerID generates a UUIDv7 customer identifier for ingested
// customers that arrive without one.
func NewCustomerID() CustomerID {
	return CustomerID(uuid.Must(uuid.NewV7()).String())
}

// NewLogID generates a UUIDv7 communication log identifier.
func NewLogID() LogID {
	return LogID(uuid.Must(uuid.NewV7()).String())
}

// ParseSegmentID validates and converts a string to SegmentID.
// Rejects malformed UUIDs so path parameters never reach the database unchecked.
func ParseSegmentID(s string) (SegmentID, error) {
	_, err := uuid.Parse(s)
	if err != nil {
		return "", err
	}
	return SegmentID(s), nil
}

// ParseCampaignID validates and converts a string to CampaignID.
func ParseCampaignID(s string) (CampaignID, error) {
	_, err := uuid.Parse(s)
	if err != nil {
		return "", err
	}
	return CampaignID(s), nil
}

// ParseLogID validates and converts a string to LogID.
func ParseLogID(s string) (LogID, error) {
	_, err := uuid.Parse(s)
	if err != nil {
		return "", err
	}
	return LogID(s), nil
}
