package service

import (
	"context"
	"io"

	"github.com/Wa1r1muKariuki/Vee-GBV-Reporting-Platform/internal/domain"
)

// AdminBackend is the remote moderation API.
type AdminBackend interface {
	ListReports(ctx context.Context, token, status string) ([]domain.AdminReport, error)
	Stats(ctx context.Context, token string) (*domain.AdminStats, error)
	Verify(ctx context.Context, token string, reportID int, action string) error
	Export(ctx context.Context, token string) (io.ReadCloser, string, error)
}

// AdminService fronts the moderation console. Unlike the chat path,
// failures here are surfaced: the operator is a trained user who needs
// accurate system state. A backend 401 comes through as
// domain.ErrUnauthorized so the console can drop its stored credential
// and return to login.
type AdminService struct {
	backend AdminBackend
}

// NewAdminService creates a new admin service
func NewAdminService(backend AdminBackend) *AdminService {
	return &AdminService{backend: backend}
}

// ListReports returns one moderation queue.
func (s *AdminService) ListReports(ctx context.Context, token, status string) ([]domain.AdminReport, error) {
	switch status {
	case domain.StatusUnverified, domain.StatusVerified, domain.StatusRejected:
	default:
		return nil, domain.ErrInvalidRequest
	}
	return s.backend.ListReports(ctx, token, status)
}

// Stats returns the dashboard summary.
func (s *AdminService) Stats(ctx context.Context, token string) (*domain.AdminStats, error) {
	return s.backend.Stats(ctx, token)
}

// Verify records an approve/reject decision for a report.
func (s *AdminService) Verify(ctx context.Context, token string, reportID int, action string) error {
	if action != domain.ActionApprove && action != domain.ActionReject {
		return domain.ErrInvalidRequest
	}
	return s.backend.Verify(ctx, token, reportID, action)
}

// Export streams the CSV blob through untouched. The caller must close
// the reader.
func (s *AdminService) Export(ctx context.Context, token string) (io.ReadCloser, string, error) {
	return s.backend.Export(ctx, token)
}
