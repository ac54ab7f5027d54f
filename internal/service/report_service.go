package service

import (
	"context"
	"strings"

	"github.com/Wa1r1muKariuki/Vee-GBV-Reporting-Platform/internal/domain"
)

// ReportBackend is the remote incident-report endpoint.
type ReportBackend interface {
	SubmitReport(ctx context.Context, report *domain.ReportSubmission) (*domain.ReportResponse, error)
}

// ReportService validates incident reports and forwards them. All
// required-field checks happen here, before any network call, and come
// back per-field so the form can show them inline.
type ReportService struct {
	backend ReportBackend
}

// NewReportService creates a new report service
func NewReportService(backend ReportBackend) *ReportService {
	return &ReportService{backend: backend}
}

// Validate returns inline errors for every missing required field.
func (s *ReportService) Validate(report *domain.ReportSubmission) domain.FieldErrors {
	errs := domain.FieldErrors{}

	if !report.ConsentGiven {
		errs["consent_given"] = "Consent is required to submit a report"
	}
	if report.IncidentType == "" {
		errs["incident_type"] = "Please select an incident type"
	}
	if report.Timeframe == "" {
		errs["timeframe"] = "Please indicate when this happened"
	}
	if strings.TrimSpace(report.County) == "" {
		errs["county"] = "Please specify the county"
	}
	if strings.TrimSpace(report.LocationDescription) == "" {
		errs["location_description"] = "Please describe the location"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// Submit validates and forwards a report. Validation failure blocks
// the submission client-side; a backend failure is surfaced as-is so
// the form can show an explicit status banner.
func (s *ReportService) Submit(ctx context.Context, report *domain.ReportSubmission) (*domain.ReportResponse, domain.FieldErrors, error) {
	if errs := s.Validate(report); errs != nil {
		return nil, errs, nil
	}

	if report.Source == "" {
		report.Source = "web_form"
	}
	if report.SupportNeeds == nil {
		report.SupportNeeds = []string{}
	}
	if report.ReportingBarriers == nil {
		report.ReportingBarriers = []string{}
	}
	if report.LanguageUsed == "" {
		report.LanguageUsed = "en"
	}

	resp, err := s.backend.SubmitReport(ctx, report)
	if err != nil {
		return nil, nil, err
	}
	return resp, nil, nil
}
