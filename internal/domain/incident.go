package domain

// Incident is one anonymized map point. Lat/Lng use pointers so that
// entries the backend sends without coordinates can be detected and
// discarded rather than rendered at (0,0).
type Incident struct {
	ID          int      `json:"id"`
	Type        string   `json:"type"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
	County      string   `json:"county,omitempty"`
	Description string   `json:"description,omitempty"`
	Timestamp   string   `json:"timestamp,omitempty"`
}

// IncidentEnvelope matches the backend's /api/incident response shape.
type IncidentEnvelope struct {
	Data struct {
		Incidents []Incident `json:"incidents"`
	} `json:"data"`
}
