package admin

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Wa1r1muKariuki/Vee-GBV-Reporting-Platform/internal/api/middleware"
	"github.com/Wa1r1muKariuki/Vee-GBV-Reporting-Platform/internal/domain"
	"github.com/Wa1r1muKariuki/Vee-GBV-Reporting-Platform/internal/service"
)

// Handler handles moderation console API requests
type Handler struct {
	adminService *service.AdminService
}

// NewHandler creates a new admin handler
func NewHandler(adminService *service.AdminService) *Handler {
	return &Handler{adminService: adminService}
}

// RegisterRoutes registers admin routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/reports/export", h.Export)
	r.GET("/reports/:status", h.ListReports)
	r.GET("/stats", h.Stats)
	r.POST("/reports/:id/verify", h.Verify)
}

func token(c *gin.Context) string {
	return c.GetString(middleware.TokenKey)
}

// fail maps service errors to operator-facing statuses. A 401 tells
// the console to clear its stored credential and return to login.
func fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
	default:
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	}
}

// ListReports returns one moderation queue by status.
func (h *Handler) ListReports(c *gin.Context) {
	reports, err := h.adminService.ListReports(c.Request.Context(), token(c), c.Param("status"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": reports})
}

// Stats returns the moderation dashboard summary.
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.adminService.Stats(c.Request.Context(), token(c))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": stats})
}

// Verify records an approve/reject decision.
func (h *Handler) Verify(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report id"})
		return
	}

	var req domain.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.adminService.Verify(c.Request.Context(), token(c), id, req.Action); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Export streams the CSV blob as a download.
func (h *Handler) Export(c *gin.Context) {
	body, contentType, err := h.adminService.Export(c.Request.Context(), token(c))
	if err != nil {
		fail(c, err)
		return
	}
	defer body.Close()

	filename := fmt.Sprintf("vee_reports_%s.csv", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	io.Copy(c.Writer, body)
}
