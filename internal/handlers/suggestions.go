package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mixtape/internal/session"
)

// PromoteRequest identifies the suggested song to move into the
// playlist.
type PromoteRequest struct {
	TrackName string   `json:"track_name" binding:"required"`
	Artists   []string `json:"artists,omitempty"`
}

// SuggestionsHandler exposes the per-session suggestion list.
type SuggestionsHandler struct {
	sessions *session.Manager
}

// NewSuggestionsHandler creates a suggestions handler.
func NewSuggestionsHandler(sessions *session.Manager) *SuggestionsHandler {
	return &SuggestionsHandler{sessions: sessions}
}

// List handles GET /api/v1/suggestions
func (h *SuggestionsHandler) List(c *gin.Context) {
	state := h.sessions.GetOrCreate(sessionID(c))
	songs := state.SuggestionSongs()
	c.JSON(http.StatusOK, gin.H{
		"songs":   songs,
		"display": displayStrings(songs),
	})
}

// Promote handles POST /api/v1/suggestions/promote
func (h *SuggestionsHandler) Promote(c *gin.Context) {
	var req PromoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	state := h.sessions.GetOrCreate(sessionID(c))
	song, err := state.PromoteSuggestion(req.TrackName, req.Artists)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "The song is not in the suggestion list",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "'" + song.String() + "' added to the playlist",
		"song":    song,
	})
}
