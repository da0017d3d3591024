package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"mixtape/internal/session"
)

// SessionHandler issues session tokens.
type SessionHandler struct {
	issuer   *session.Issuer
	sessions *session.Manager
}

// NewSessionHandler creates a session handler.
func NewSessionHandler(issuer *session.Issuer, sessions *session.Manager) *SessionHandler {
	return &SessionHandler{issuer: issuer, sessions: sessions}
}

// Create handles POST /api/v1/session
func (h *SessionHandler) Create(c *gin.Context) {
	token, id, err := h.issuer.Issue()
	if err != nil {
		slog.Error("Failed to issue session token", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create session",
		})
		return
	}

	h.sessions.GetOrCreate(id)

	c.JSON(http.StatusCreated, gin.H{
		"token":      token,
		"session_id": id,
	})
}
