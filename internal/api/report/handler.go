package report

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Wa1r1muKariuki/Vee-GBV-Reporting-Platform/internal/domain"
	"github.com/Wa1r1muKariuki/Vee-GBV-Reporting-Platform/internal/service"
)

// Handler handles report and incident-map API requests
type Handler struct {
	reportService   *service.ReportService
	incidentService *service.IncidentService
}

// NewHandler creates a new report handler
func NewHandler(reportService *service.ReportService, incidentService *service.IncidentService) *Handler {
	return &Handler{reportService: reportService, incidentService: incidentService}
}

// RegisterRoutes registers report routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/report", h.Submit)
	r.GET("/incidents", h.Incidents)
}

// Submit validates and forwards an incident report. Validation errors
// come back per-field with a 422 so the form can render them inline
// without any network round trip to the backend having happened.
func (h *Handler) Submit(c *gin.Context) {
	var report domain.ReportSubmission
	if err := c.ShouldBindJSON(&report); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, fieldErrs, err := h.reportService.Submit(c.Request.Context(), &report)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "report submission failed, please try again"})
		return
	}
	if fieldErrs != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": fieldErrs})
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Incidents returns plottable incidents for the map view.
func (h *Handler) Incidents(c *gin.Context) {
	incidents, err := h.incidentService.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "incident data unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"incidents": incidents}})
}
