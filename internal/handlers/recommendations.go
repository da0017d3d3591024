package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"mixtape/internal/models"
	"mixtape/internal/repositories"
	"mixtape/internal/session"
	"mixtape/internal/similarity"
)

// RecommendationsHandler computes and exposes the per-session
// recommendation list.
type RecommendationsHandler struct {
	ranker   *similarity.Ranker
	catalog  repositories.CatalogRepository
	sessions *session.Manager
	limit    int
}

// NewRecommendationsHandler creates a recommendations handler. limit is
// the maximum number of recommendations returned per request.
func NewRecommendationsHandler(ranker *similarity.Ranker, catalog repositories.CatalogRepository, sessions *session.Manager, limit int) *RecommendationsHandler {
	if limit <= 0 {
		limit = similarity.DefaultNeighborLimit
	}
	return &RecommendationsHandler{ranker: ranker, catalog: catalog, sessions: sessions, limit: limit}
}

// List handles GET /api/v1/recommendations
func (h *RecommendationsHandler) List(c *gin.Context) {
	state := h.sessions.GetOrCreate(sessionID(c))

	songs, err := buildRecommendations(c.Request.Context(), h.ranker, h.catalog, state, h.limit)
	if err != nil {
		slog.Error("Failed to compute recommendations", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to compute recommendations",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"songs":   songs,
		"display": displayStrings(songs),
	})
}

// buildRecommendations ranks candidates for the session playlist,
// hydrates them from the catalog in rank order, drops songs already on
// the playlist and stores the result on the session.
func buildRecommendations(ctx context.Context, ranker *similarity.Ranker, catalog repositories.CatalogRepository, state *session.State, limit int) ([]*models.Song, error) {
	playlistIDs := state.PlaylistTrackIDs()
	if len(playlistIDs) == 0 {
		state.ReplaceRecommendations(nil)
		return nil, nil
	}

	// Over-fetch so that filtering out playlist members still leaves
	// up to limit candidates.
	ranked, err := ranker.Recommend(ctx, playlistIDs, limit+len(playlistIDs))
	if err != nil {
		return nil, err
	}

	inPlaylist := make(map[string]bool, len(playlistIDs))
	for _, id := range playlistIDs {
		inPlaylist[id] = true
	}

	candidateIDs := make([]string, 0, len(ranked))
	for _, id := range ranked {
		if !inPlaylist[id] {
			candidateIDs = append(candidateIDs, id)
		}
	}
	if len(candidateIDs) == 0 {
		state.ReplaceRecommendations(nil)
		return nil, nil
	}

	hydrated, err := catalog.FindByTrackIDs(ctx, candidateIDs)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*models.Song, len(hydrated))
	for i := range hydrated {
		byID[hydrated[i].TrackID] = &hydrated[i]
	}

	songs := make([]*models.Song, 0, limit)
	for _, id := range candidateIDs {
		if song, ok := byID[id]; ok {
			songs = append(songs, song)
			if len(songs) == limit {
				break
			}
		}
	}

	state.ReplaceRecommendations(songs)
	return songs, nil
}
