package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/Wa1r1muKariuki/Vee-GBV-Reporting-Platform/internal/domain"
)

const adminTokenHeader = "x-admin-token"

// HTTPError is a non-2xx response from the backend.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("backend request failed: status=%d body=%s", e.StatusCode, e.Body)
}

// Backend talks to the remote support-platform service that owns all
// business logic: the dialogue engine, the incident store and the
// moderation workflow.
type Backend struct {
	httpClient *http.Client
	baseURL    string
}

// NewBackend creates a backend client. A zero timeout falls back to 30s.
func NewBackend(baseURL string, timeout time.Duration) *Backend {
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &Backend{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
	}
}

func (b *Backend) newRequest(ctx context.Context, method, relPath string, body io.Reader) (*http.Request, error) {
	base, err := url.Parse(b.baseURL)
	if err != nil {
		return nil, err
	}
	base.Path = path.Join(base.Path, relPath)

	req, err := http.NewRequestWithContext(ctx, method, base.String(), body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

const maxBodySize = 5 * 1024 * 1024

func (b *Backend) doJSON(req *http.Request, out any) error {
	resp, err := b.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("backend response read failed: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return domain.ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(body, out)
}

// ChatRequest is the conversational endpoint's body.
type ChatRequest struct {
	Message             string               `json:"message"`
	SessionID           string               `json:"session_id"`
	Language            string               `json:"language"`
	ConversationHistory []domain.ChatMessage `json:"conversation_history,omitempty"`
}

// ChatResponse is the conversational endpoint's reply.
type ChatResponse struct {
	Text string `json:"text"`
}

// Chat delivers one user message to POST /chat.
func (b *Backend) Chat(ctx context.Context, payload ChatRequest) (*ChatResponse, error) {
	buf, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := b.newRequest(ctx, http.MethodPost, "/chat", bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}

	var out ChatResponse
	if err := b.doJSON(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitReport forwards a validated incident report to POST /report/submit.
func (b *Backend) SubmitReport(ctx context.Context, report *domain.ReportSubmission) (*domain.ReportResponse, error) {
	buf, err := json.Marshal(report)
	if err != nil {
		return nil, err
	}

	req, err := b.newRequest(ctx, http.MethodPost, "/report/submit", bytes.NewReader(buf))
	if err != nil {
		return nil, err
	}

	var out domain.ReportResponse
	if err := b.doJSON(req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchIncidents retrieves the raw incident list from GET /api/incident.
// Entries with missing coordinates are the caller's problem; this is a
// plain transport call.
func (b *Backend) FetchIncidents(ctx context.Context) ([]domain.Incident, error) {
	req, err := b.newRequest(ctx, http.MethodGet, "/api/incident", nil)
	if err != nil {
		return nil, err
	}

	var out domain.IncidentEnvelope
	if err := b.doJSON(req, &out); err != nil {
		return nil, err
	}
	return out.Data.Incidents, nil
}

// adminEnvelope matches the backend's {data: ...} admin responses.
type adminEnvelope struct {
	Data json.RawMessage `json:"data"`
}

func (b *Backend) adminGet(ctx context.Context, token, relPath string, out any) error {
	req, err := b.newRequest(ctx, http.MethodGet, relPath, nil)
	if err != nil {
		return err
	}
	req.Header.Set(adminTokenHeader, token)

	var env adminEnvelope
	if err := b.doJSON(req, &env); err != nil {
		return err
	}
	if len(env.Data) == 0 {
		return nil
	}
	return json.Unmarshal(env.Data, out)
}

// ListReports fetches one moderation queue: unverified, verified or rejected.
func (b *Backend) ListReports(ctx context.Context, token, status string) ([]domain.AdminReport, error) {
	var reports []domain.AdminReport
	if err := b.adminGet(ctx, token, "/admin/reports/"+status, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

// Stats fetches the moderation dashboard summary.
func (b *Backend) Stats(ctx context.Context, token string) (*domain.AdminStats, error) {
	var stats domain.AdminStats
	if err := b.adminGet(ctx, token, "/admin/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Verify posts a moderation decision for one report.
func (b *Backend) Verify(ctx context.Context, token string, reportID int, action string) error {
	buf, err := json.Marshal(domain.VerifyRequest{Action: action})
	if err != nil {
		return err
	}

	req, err := b.newRequest(ctx, http.MethodPost, fmt.Sprintf("/admin/reports/%d/verify", reportID), bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set(adminTokenHeader, token)

	return b.doJSON(req, nil)
}

// Export streams the CSV export. The caller owns the returned body and
// must close it; the blob passes through untouched.
func (b *Backend) Export(ctx context.Context, token string) (io.ReadCloser, string, error) {
	req, err := b.newRequest(ctx, http.MethodGet, "/admin/reports/export", nil)
	if err != nil {
		return nil, "", err
	}
	req.Header.Set(adminTokenHeader, token)

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return nil, "", err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		return nil, "", domain.ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
		resp.Body.Close()
		return nil, "", &HTTPError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "text/csv"
	}
	return resp.Body, contentType, nil
}
