package service

import (
	"context"
	"math"

	"github.com/Wa1r1muKariuki/Vee-GBV-Reporting-Platform/internal/domain"
)

// IncidentBackend is the remote incident-data endpoint.
type IncidentBackend interface {
	FetchIncidents(ctx context.Context) ([]domain.Incident, error)
}

// IncidentService fetches map data and drops entries that cannot be
// plotted. The map renders whatever survives; filtering by type or
// time is presentation-side.
type IncidentService struct {
	backend IncidentBackend
}

// NewIncidentService creates a new incident service
func NewIncidentService(backend IncidentBackend) *IncidentService {
	return &IncidentService{backend: backend}
}

// List returns incidents with usable coordinates. Entries with missing
// or NaN lat/lng are discarded, never rendered at a bogus location.
func (s *IncidentService) List(ctx context.Context) ([]domain.Incident, error) {
	incidents, err := s.backend.FetchIncidents(ctx)
	if err != nil {
		return nil, err
	}

	valid := make([]domain.Incident, 0, len(incidents))
	for _, in := range incidents {
		if in.Lat == nil || in.Lng == nil {
			continue
		}
		if math.IsNaN(*in.Lat) || math.IsNaN(*in.Lng) {
			continue
		}
		valid = append(valid, in)
	}
	return valid, nil
}
