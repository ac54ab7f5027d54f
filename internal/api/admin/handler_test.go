package admin

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Wa1r1muKariuki/Vee-GBV-Reporting-Platform/internal/api/middleware"
	"github.com/Wa1r1muKariuki/Vee-GBV-Reporting-Platform/internal/domain"
	"github.com/Wa1r1muKariuki/Vee-GBV-Reporting-Platform/internal/service"
)

type fakeAdminBackend struct {
	reports   []domain.AdminReport
	err       error
	lastToken string
	verified  map[int]string
	csv       string
}

func (f *fakeAdminBackend) ListReports(_ context.Context, token, status string) ([]domain.AdminReport, error) {
	f.lastToken = token
	if f.err != nil {
		return nil, f.err
	}
	return f.reports, nil
}

func (f *fakeAdminBackend) Stats(_ context.Context, token string) (*domain.AdminStats, error) {
	f.lastToken = token
	if f.err != nil {
		return nil, f.err
	}
	return &domain.AdminStats{Total: len(f.reports)}, nil
}

func (f *fakeAdminBackend) Verify(_ context.Context, token string, reportID int, action string) error {
	f.lastToken = token
	if f.err != nil {
		return f.err
	}
	if f.verified == nil {
		f.verified = map[int]string{}
	}
	f.verified[reportID] = action
	return nil
}

func (f *fakeAdminBackend) Export(_ context.Context, token string) (io.ReadCloser, string, error) {
	f.lastToken = token
	if f.err != nil {
		return nil, "", f.err
	}
	return io.NopCloser(strings.NewReader(f.csv)), "text/csv", nil
}

func setupRouter(backend *fakeAdminBackend) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	group := r.Group("/api/admin")
	group.Use(middleware.AdminAuth())
	NewHandler(service.NewAdminService(backend)).RegisterRoutes(group)
	return r
}

func doRequest(r *gin.Engine, method, path, token string, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(middleware.AdminTokenHeader, token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestMissingTokenRejected(t *testing.T) {
	backend := &fakeAdminBackend{}
	r := setupRouter(backend)

	w := doRequest(r, http.MethodGet, "/api/admin/stats", "", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, backend.lastToken, "request must never reach the backend")
}

func TestTokenForwardedToBackend(t *testing.T) {
	backend := &fakeAdminBackend{}
	r := setupRouter(backend)

	w := doRequest(r, http.MethodGet, "/api/admin/reports/unverified", "secret", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "secret", backend.lastToken)
}

func TestBackendUnauthorizedSurfacedAs401(t *testing.T) {
	backend := &fakeAdminBackend{err: domain.ErrUnauthorized}
	r := setupRouter(backend)

	w := doRequest(r, http.MethodGet, "/api/admin/stats", "stale-token", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code, "console relies on 401 to clear its credential")
}

func TestListReportsUnknownStatus(t *testing.T) {
	r := setupRouter(&fakeAdminBackend{})

	w := doRequest(r, http.MethodGet, "/api/admin/reports/pending", "secret", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyRecordsDecision(t *testing.T) {
	backend := &fakeAdminBackend{}
	r := setupRouter(backend)

	w := doRequest(r, http.MethodPost, "/api/admin/reports/7/verify", "secret", `{"action":"approve"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "approve", backend.verified[7])
}

func TestVerifyInvalidAction(t *testing.T) {
	r := setupRouter(&fakeAdminBackend{})

	w := doRequest(r, http.MethodPost, "/api/admin/reports/7/verify", "secret", `{"action":"delete"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportStreamsCSVAsDownload(t *testing.T) {
	backend := &fakeAdminBackend{csv: "id,type\n1,physical\n"}
	r := setupRouter(backend)

	w := doRequest(r, http.MethodGet, "/api/admin/reports/export", "secret", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, backend.csv, w.Body.String())
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	disposition := w.Header().Get("Content-Disposition")
	assert.Contains(t, disposition, "attachment")
	assert.Contains(t, disposition, "vee_reports_")
}

func TestBackendFailureIsBadGateway(t *testing.T) {
	backend := &fakeAdminBackend{err: io.ErrUnexpectedEOF}
	r := setupRouter(backend)

	w := doRequest(r, http.MethodGet, "/api/admin/stats", "secret", "")

	assert.Equal(t, http.StatusBadGateway, w.Code)
}
