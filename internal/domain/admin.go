package domain

import "encoding/json"

// Report statuses in the moderation workflow.
const (
	StatusUnverified = "unverified"
	StatusVerified   = "verified"
	StatusRejected   = "rejected"
)

// Verify actions.
const (
	ActionApprove = "approve"
	ActionReject  = "reject"
)

// AdminReport is a moderation-queue entry. The backend owns the full
// schema; fields we do not interpret ride along in Extra.
type AdminReport struct {
	ID                  int             `json:"id"`
	IncidentType        string          `json:"incident_type"`
	Timeframe           string          `json:"timeframe"`
	County              string          `json:"county"`
	LocationDescription string          `json:"location_description"`
	IncidentDescription string          `json:"incident_description"`
	Status              string          `json:"status"`
	Timestamp           string          `json:"timestamp"`
	Extra               json.RawMessage `json:"extra,omitempty"`
}

// AdminStats is the moderation dashboard summary.
type AdminStats struct {
	Total      int            `json:"total"`
	Unverified int            `json:"unverified"`
	Verified   int            `json:"verified"`
	Rejected   int            `json:"rejected"`
	ByType     map[string]int `json:"by_type"`
	ByCounty   map[string]int `json:"by_county"`
}

// VerifyRequest is the moderation decision body.
type VerifyRequest struct {
	Action string `json:"action" binding:"required,oneof=approve reject"`
}
