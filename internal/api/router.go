package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Wa1r1muKariuki/Vee-GBV-Reporting-Platform/internal/api/admin"
	"github.com/Wa1r1muKariuki/Vee-GBV-Reporting-Platform/internal/api/chat"
	"github.com/Wa1r1muKariuki/Vee-GBV-Reporting-Platform/internal/api/middleware"
	"github.com/Wa1r1muKariuki/Vee-GBV-Reporting-Platform/internal/api/report"
	"github.com/Wa1r1muKariuki/Vee-GBV-Reporting-Platform/internal/service"
)

// RouterConfig holds configuration for the router
type RouterConfig struct {
	AllowOrigins []string
}

// SetupRouter sets up the Gin router
func SetupRouter(
	manager *service.SessionManager,
	chatService *service.ChatService,
	reportService *service.ReportService,
	incidentService *service.IncidentService,
	adminService *service.AdminService,
	cfg RouterConfig,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// CORS middleware
	r.Use(middleware.CORS(cfg.AllowOrigins))

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Chat API (anonymous, per client id)
	chatHandler := chat.NewHandler(manager, chatService)
	chatGroup := r.Group("/api/chat")
	chatHandler.RegisterRoutes(chatGroup)

	// Report + incident map API (public)
	reportHandler := report.NewHandler(reportService, incidentService)
	reportGroup := r.Group("/api")
	reportHandler.RegisterRoutes(reportGroup)

	// Moderation console API (requires the admin credential header)
	adminHandler := admin.NewHandler(adminService)
	adminGroup := r.Group("/api/admin")
	adminGroup.Use(middleware.AdminAuth())
	adminHandler.RegisterRoutes(adminGroup)

	return r
}
