package chat

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Wa1r1muKariuki/Vee-GBV-Reporting-Platform/internal/domain"
	"github.com/Wa1r1muKariuki/Vee-GBV-Reporting-Platform/internal/i18n"
	"github.com/Wa1r1muKariuki/Vee-GBV-Reporting-Platform/internal/service"
)

// Handler handles chat API requests
type Handler struct {
	manager     *service.SessionManager
	chatService *service.ChatService
}

// NewHandler creates a new chat handler
func NewHandler(manager *service.SessionManager, chatService *service.ChatService) *Handler {
	return &Handler{manager: manager, chatService: chatService}
}

// RegisterRoutes registers chat routes
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/send", h.Send)
	r.GET("/sessions", h.ListSessions)
	r.POST("/sessions", h.CreateSession)
	r.POST("/sessions/:id/activate", h.ActivateSession)
	r.POST("/sessions/:id/save", h.ToggleSaved)
	r.DELETE("/sessions/:id", h.DeleteSession)
	r.POST("/language", h.SetLanguage)
	r.POST("/quick-exit", h.QuickExit)
}

// Send handles one user message and returns the assistant reply.
func (h *Handler) Send(c *gin.Context) {
	var req domain.SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.chatService.Send(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRequest):
			c.JSON(http.StatusBadRequest, gin.H{"error": "message must not be empty"})
		case errors.Is(err, domain.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "chat session not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListSessions returns the session collection, minting a client id on
// first contact.
func (h *Handler) ListSessions(c *gin.Context) {
	clientID := c.Query("client_id")
	if clientID == "" {
		clientID = uuid.New().String()
	}

	sessions, err := h.manager.Initialize(c.Request.Context(), clientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	lang, err := h.manager.Language(c.Request.Context(), clientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, domain.SessionListResponse{
		ClientID: clientID,
		Language: string(lang),
		Sessions: sessions,
	})
}

type clientRequest struct {
	ClientID string `json:"client_id" binding:"required"`
}

// CreateSession starts a new chat for the client.
func (h *Handler) CreateSession(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.manager.CreateSession(c.Request.Context(), req.ClientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, session)
}

func (h *Handler) sessionID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return 0, false
	}
	return id, true
}

// ActivateSession makes the given session the active one.
func (h *Handler) ActivateSession(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	if err := h.manager.SetActive(c.Request.Context(), req.ClientID, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ToggleSaved flips the saved flag on the given session.
func (h *Handler) ToggleSaved(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	if err := h.manager.ToggleSaved(c.Request.Context(), req.ClientID, id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// DeleteSession removes the given session. The collection is never
// left empty; deleting the last session yields a fresh one.
func (h *Handler) DeleteSession(c *gin.Context) {
	clientID := c.Query("client_id")
	if clientID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "client_id is required"})
		return
	}
	id, ok := h.sessionID(c)
	if !ok {
		return
	}

	if err := h.manager.DeleteSession(c.Request.Context(), clientID, id); err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "chat session not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	sessions, err := h.manager.Sessions(c.Request.Context(), clientID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

type languageRequest struct {
	ClientID string `json:"client_id" binding:"required"`
	Language string `json:"language" binding:"required,oneof=en sw"`
}

// SetLanguage switches the client's display language.
func (h *Handler) SetLanguage(c *gin.Context) {
	var req languageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.manager.SetLanguage(c.Request.Context(), req.ClientID, i18n.Language(req.Language)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// QuickExit wipes every trace of the client's chats. The redirect away
// from the site is the caller's job; this endpoint only guarantees the
// data is gone.
func (h *Handler) QuickExit(c *gin.Context) {
	var req clientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.manager.Reset(c.Request.Context(), req.ClientID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}
