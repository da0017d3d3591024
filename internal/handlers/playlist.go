package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"mixtape/internal/models"
	"mixtape/internal/resolver"
	"mixtape/internal/session"
)

// AddSongRequest asks for a song by title and optional artist.
type AddSongRequest struct {
	Title  string `json:"title" binding:"required"`
	Artist string `json:"artist,omitempty"`
}

// DeleteSongRequest identifies a playlist song to remove, by name
// (with optional artists) or by positions.
type DeleteSongRequest struct {
	TrackName string   `json:"track_name,omitempty"`
	Artists   []string `json:"artists,omitempty"`
	Positions []int    `json:"positions,omitempty"`
}

// PlaylistHandler exposes the session playlist.
type PlaylistHandler struct {
	resolver *resolver.Service
	sessions *session.Manager
}

// NewPlaylistHandler creates a playlist handler.
func NewPlaylistHandler(res *resolver.Service, sessions *session.Manager) *PlaylistHandler {
	return &PlaylistHandler{resolver: res, sessions: sessions}
}

// List handles GET /api/v1/playlist
func (h *PlaylistHandler) List(c *gin.Context) {
	state := h.sessions.GetOrCreate(sessionID(c))
	songs := state.PlaylistSongs()
	c.JSON(http.StatusOK, gin.H{
		"songs":   songs,
		"display": displayStrings(songs),
	})
}

// AddSong handles POST /api/v1/playlist/songs
func (h *PlaylistHandler) AddSong(c *gin.Context) {
	var req AddSongRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	matches := h.resolver.Resolve(c.Request.Context(), req.Title, req.Artist)
	if len(matches) == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Song not found",
		})
		return
	}

	state := h.sessions.GetOrCreate(sessionID(c))

	// A title-only query returning several songs is ambiguous and the
	// choice belongs to the client. The matches become the session's
	// suggestion list so one can be promoted. With an artist given,
	// duplicates are the same song indexed multiple times; take the
	// first.
	if req.Artist == "" && len(matches) > 1 {
		state.ReplaceSuggestions(songPtrs(matches))
		c.JSON(http.StatusConflict, gin.H{
			"error":   fmt.Sprintf("Found %d matches, be more specific", len(matches)),
			"matches": matches,
		})
		return
	}

	song := matches[0]
	if !state.AddSong(&song) {
		c.JSON(http.StatusConflict, gin.H{
			"error": fmt.Sprintf("'%s' is already in the playlist", song.String()),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("'%s' added to the playlist", song.String()),
		"song":    song,
	})
}

// DeleteSong handles DELETE /api/v1/playlist/songs
func (h *PlaylistHandler) DeleteSong(c *gin.Context) {
	var req DeleteSongRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	state := h.sessions.GetOrCreate(sessionID(c))

	if len(req.Positions) > 0 {
		removed := state.RemovePositions(req.Positions)
		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("%d song(s) removed from the playlist", removed),
		})
		return
	}

	if req.TrackName == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "track_name or positions is required",
		})
		return
	}

	if !state.RemoveSong(req.TrackName, req.Artists) {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "The song is not in the playlist",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("'%s' has been removed from the playlist", req.TrackName),
	})
}

// Clear handles DELETE /api/v1/playlist
func (h *PlaylistHandler) Clear(c *gin.Context) {
	state := h.sessions.GetOrCreate(sessionID(c))
	state.ClearPlaylist()
	c.JSON(http.StatusOK, gin.H{
		"message": "All songs have been removed from the playlist",
	})
}

func songPtrs(songs []models.Song) []*models.Song {
	ptrs := make([]*models.Song, 0, len(songs))
	for i := range songs {
		ptrs = append(ptrs, &songs[i])
	}
	return ptrs
}

func displayStrings(songs []*models.Song) []string {
	display := make([]string, 0, len(songs))
	for _, s := range songs {
		display = append(display, s.String())
	}
	return display
}
