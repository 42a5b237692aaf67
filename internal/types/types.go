// Package types provides domain models shared across audiencekeeper components.
//
// Types here are wire-agnostic: the JSON and Avro shapes live in
// internal/segment, the row shapes live in internal/core/store. Only ID
// helpers (ids.go) import a third-party module.
package types

import "time"

// SegmentID represents a UUIDv7 segment identifier.
type SegmentID string

// CampaignID represents a UUIDv7 campaign identifier.
type CampaignID string

// CustomerID identifies a customer. Ingested IDs are kept verbatim; missing
// IDs are generated as UUIDv7.
type CustomerID string

// LogID represents a UUIDv7 communication log identifier.
type LogID string

// Canonical customer attribute names. Attribute bags handed to the evaluator
// are keyed by these names.
const (
	AttrTotalSpend = "totalSpend"
	AttrVisits     = "visits"
	AttrLastVisit  = "lastVisit"
	AttrCity       = "city"
)

// Customer is the evaluator's view of a customer: an opaque attribute bag.
// A key that is absent (or nil) is a missing attribute.
type Customer struct {
	ID         CustomerID
	Attributes map[string]any
}

// CustomerProfile is the persisted customer record. Nil pointers are NULL
// columns and become missing attributes in the evaluator's view.
type CustomerProfile struct {
	CustomerID CustomerID
	Name       string
	Email      string
	City       *string
	TotalSpend *float64
	Visits     *int64
	LastVisit  *time.Time
	CreatedAt  time.Time
}

// Customer projects the profile onto the evaluator's attribute bag.
func (p CustomerProfile) Customer() Customer {
	attrs := make(map[string]any, 4)
	if p.City != nil {
		attrs[AttrCity] = *p.City
	}
	if p.TotalSpend != nil {
		attrs[AttrTotalSpend] = *p.TotalSpend
	}
	if p.Visits != nil {
		attrs[AttrVisits] = *p.Visits
	}
	if p.LastVisit != nil {
		attrs[AttrLastVisit] = *p.LastVisit
	}
	return Customer{ID: p.CustomerID, Attributes: attrs}
}

// Resource limits enforced by the validator and the ingest path.
const (
	// MaxNameLength bounds segment names and campaign titles.
	MaxNameLength = 200

	// MaxGroups bounds the number of condition groups per segment.
	MaxGroups = 32

	// MaxConditionsPerGroup bounds the number of conditions inside one group.
	MaxConditionsPerGroup = 64

	// MaxValueLength bounds a single condition literal.
	MaxValueLength = 256
)
