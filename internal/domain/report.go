package domain

// Incident types accepted by the report form.
var IncidentTypes = []string{
	"physical_violence",
	"sexual_violence",
	"emotional_abuse",
	"economic_abuse",
	"harassment",
	"stalking",
	"online_gbv",
	"harmful_practices",
	"other",
}

// Timeframes accepted by the report form.
var Timeframes = []string{
	"recent",
	"ongoing",
	"past_week",
	"past_month",
	"past_year",
	"long_ago",
}

// ReportSubmission is an anonymous incident report. Required fields are
// validated before any network call; the rest pass through as given.
type ReportSubmission struct {
	ConsentGiven              bool     `json:"consent_given"`
	IncidentType              string   `json:"incident_type"`
	Timeframe                 string   `json:"timeframe"`
	County                    string   `json:"county"`
	LocationDescription       string   `json:"location_description"`
	RelationshipToPerpetrator string   `json:"relationship_to_perpetrator,omitempty"`
	SupportNeeds              []string `json:"support_needs"`
	ReportingBarriers         []string `json:"reporting_barriers"`
	LanguageUsed              string   `json:"language_used"`
	ReportedToAuthorities     bool     `json:"reported_to_authorities"`
	IncidentDescription       string   `json:"incident_description"`
	Source                    string   `json:"source"`
}

// Resource is a support resource returned after a submission.
type Resource struct {
	Name        string `json:"name"`
	Contact     string `json:"contact,omitempty"`
	Description string `json:"description,omitempty"`
}

// ReportResponse is the backend acknowledgement of a submission.
type ReportResponse struct {
	Message   string     `json:"message"`
	Resources []Resource `json:"resources"`
}

// FieldErrors maps form field names to inline validation messages.
type FieldErrors map[string]string
