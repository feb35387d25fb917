package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/sales-forecast-api/internal/presence"
)

// PresenceHandler handles the online-users endpoints
type PresenceHandler struct {
	tracker *presence.Tracker
	log     zerolog.Logger
}

// NewPresenceHandler creates a new PresenceHandler
func NewPresenceHandler(tracker *presence.Tracker, log zerolog.Logger) *PresenceHandler {
	return &PresenceHandler{
		tracker: tracker,
		log:     log.With().Str("handler", "presence").Logger(),
	}
}

// Update handles POST /api/presence/update
func (h *PresenceHandler) Update(c *gin.Context) {
	var req struct {
		UserID   *int   `json:"userId"`
		Username string `json:"username"`
		FullName string `json:"nome"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.UserID == nil || req.Username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	h.tracker.Heartbeat(*req.UserID, req.Username, req.FullName)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListActive handles GET /api/presence/users
func (h *PresenceHandler) ListActive(c *gin.Context) {
	c.JSON(http.StatusOK, h.tracker.ListActive())
}
