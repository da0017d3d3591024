package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mixtape/internal/nlu"
	"mixtape/internal/repositories"
	"mixtape/internal/resolver"
	"mixtape/internal/session"
	"mixtape/internal/similarity"
	"mixtape/internal/surface"
)

const (
	replyNotUnderstood  = "Sorry, I did not understand that. Try /add, /delete, /clear or /recommend."
	replyLookupFailed   = "I could not look that up right now, please try again."
	replyEmptyRecommend = "Add a few songs first and I will have something to recommend."
)

// MessageRequest is one chat utterance.
type MessageRequest struct {
	Text string `json:"text" binding:"required"`
}

// MessageHandler runs a chat turn: parse or classify the utterance,
// act on the session state, and produce a reply.
type MessageHandler struct {
	resolver   *resolver.Service
	ranker     *similarity.Ranker
	catalog    repositories.CatalogRepository
	surface    repositories.SurfaceRepository
	sessions   *session.Manager
	classifier nlu.Classifier
	limit      int
}

// NewMessageHandler creates a message handler. classifier may be nil,
// in which case free-form utterances get the fallback reply.
func NewMessageHandler(res *resolver.Service, ranker *similarity.Ranker, catalog repositories.CatalogRepository, surfaceDict repositories.SurfaceRepository, sessions *session.Manager, classifier nlu.Classifier, limit int) *MessageHandler {
	if limit <= 0 {
		limit = similarity.DefaultNeighborLimit
	}
	return &MessageHandler{
		resolver:   res,
		ranker:     ranker,
		catalog:    catalog,
		surface:    surfaceDict,
		sessions:   sessions,
		classifier: classifier,
		limit:      limit,
	}
}

// Handle handles POST /api/v1/messages
func (h *MessageHandler) Handle(c *gin.Context) {
	var req MessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	ctx := c.Request.Context()
	state := h.sessions.GetOrCreate(sessionID(c))

	understanding, ok := nlu.ParseUtterance(req.Text)
	if !ok && h.classifier != nil {
		classified, err := h.classifier.Classify(ctx, req.Text)
		if err != nil {
			slog.Error("Intent classification failed", "error", err)
		} else {
			understanding = classified
		}
	}

	reply := h.dispatch(ctx, state, understanding)

	c.JSON(http.StatusOK, gin.H{
		"reply":    reply,
		"intent":   understanding.Intent,
		"playlist": displayStrings(state.PlaylistSongs()),
	})
}

func (h *MessageHandler) dispatch(ctx context.Context, state *session.State, u nlu.Understanding) string {
	switch u.Intent {
	case nlu.IntentAdd:
		return h.addSong(ctx, state, u.Entities)
	case nlu.IntentDelete:
		return h.deleteSong(state, u.Entities)
	case nlu.IntentClear:
		state.ClearPlaylist()
		return "All songs have been removed from the playlist."
	case nlu.IntentCreate:
		state.ClearPlaylist()
		if u.Entities.Description != "" {
			return fmt.Sprintf("Started a new playlist for: %s. Add songs with /add.", u.Entities.Description)
		}
		return "Started a new playlist. Add songs with /add."
	case nlu.IntentRecommend:
		return h.recommend(ctx, state)
	case nlu.IntentAlbumReleaseDate:
		return h.albumReleaseDate(ctx, u.Entities.Album)
	case nlu.IntentArtistAlbumCount:
		return h.artistAlbumCount(ctx, u.Entities.Artist)
	case nlu.IntentAlbumForSong:
		return h.albumForSong(ctx, u.Entities.Song)
	case nlu.IntentAlbumTrackCount:
		return h.albumTrackCount(ctx, u.Entities.Album)
	case nlu.IntentAlbumDuration:
		return h.albumDuration(ctx, u.Entities.Album)
	case nlu.IntentMostPopularSong:
		return h.mostPopularSong(ctx, u.Entities.Artist)
	default:
		return replyNotUnderstood
	}
}

func (h *MessageHandler) addSong(ctx context.Context, state *session.State, e nlu.Entities) string {
	if e.Song == "" {
		return "Which song should I add? Try /add title by artist."
	}

	matches := h.resolver.Resolve(ctx, e.Song, e.Artist)
	if len(matches) == 0 {
		return fmt.Sprintf("I could not find '%s' in the catalog.", e.Song)
	}

	if e.Artist == "" && len(matches) > 1 {
		state.ReplaceSuggestions(songPtrs(matches))
		return fmt.Sprintf("Found %d songs named '%s'. Pick one from the suggestions.", len(matches), e.Song)
	}

	song := matches[0]
	if !state.AddSong(&song) {
		return fmt.Sprintf("'%s' is already in the playlist.", song.String())
	}
	return fmt.Sprintf("'%s' added to the playlist.", song.String())
}

func (h *MessageHandler) deleteSong(state *session.State, e nlu.Entities) string {
	if len(e.Position) > 0 {
		removed := state.RemovePositions(e.Position)
		if removed == 0 {
			return "Those positions are not in the playlist."
		}
		return fmt.Sprintf("%d song(s) removed from the playlist.", removed)
	}

	if e.Song == "" {
		return "Which song should I remove?"
	}

	if !state.RemoveSong(e.Song, nlu.SplitArtists(e.Artist)) {
		return fmt.Sprintf("'%s' is not in the playlist.", e.Song)
	}
	return fmt.Sprintf("'%s' has been removed from the playlist.", e.Song)
}

func (h *MessageHandler) recommend(ctx context.Context, state *session.State) string {
	songs, err := buildRecommendations(ctx, h.ranker, h.catalog, state, h.limit)
	if err != nil {
		slog.Error("Failed to compute recommendations", "error", err)
		return "I could not compute recommendations right now, please try again."
	}
	if len(songs) == 0 {
		return replyEmptyRecommend
	}

	return "You might like: " + strings.Join(displayStrings(songs), "; ")
}

func (h *MessageHandler) albumReleaseDate(ctx context.Context, album string) string {
	if album == "" {
		return replyNotUnderstood
	}
	date, err := h.catalog.AlbumReleaseDate(ctx, album)
	if err != nil {
		slog.Error("Album release date lookup failed", "album", album, "error", err)
		return replyLookupFailed
	}
	if date == "" {
		return fmt.Sprintf("I could not find the album '%s'.", album)
	}
	return fmt.Sprintf("The album '%s' was released on %s.", album, date)
}

// artistAlbumCount counts albums by the exact primary artist name and
// only when that yields nothing retries through the surface dictionary,
// so an exact name is never shadowed by a fuzzy one.
func (h *MessageHandler) artistAlbumCount(ctx context.Context, artist string) string {
	if artist == "" {
		return replyNotUnderstood
	}

	count, err := h.catalog.AlbumCountByArtistName(ctx, artist)
	if err != nil {
		slog.Error("Album count lookup failed", "artist", artist, "error", err)
		return replyLookupFailed
	}

	if count == 0 {
		artistID, err := h.surface.LookupArtist(ctx, surface.Lowercase(artist))
		if err != nil {
			slog.Error("Surface dictionary artist lookup failed", "artist", artist, "error", err)
			return replyLookupFailed
		}
		if artistID != "" {
			count, err = h.catalog.AlbumCountByArtistID(ctx, artistID)
			if err != nil {
				slog.Error("Album count lookup failed", "artist_id", artistID, "error", err)
				return replyLookupFailed
			}
		}
	}

	if count == 0 {
		return fmt.Sprintf("I could not find any albums by '%s'.", artist)
	}
	return fmt.Sprintf("%s has released %d album(s).", artist, count)
}

func (h *MessageHandler) albumForSong(ctx context.Context, song string) string {
	if song == "" {
		return replyNotUnderstood
	}
	album, err := h.catalog.AlbumForTrack(ctx, song)
	if err != nil {
		slog.Error("Album for track lookup failed", "song", song, "error", err)
		return replyLookupFailed
	}
	if album == "" {
		return fmt.Sprintf("I could not find the song '%s'.", song)
	}
	return fmt.Sprintf("'%s' appears on the album '%s'.", song, album)
}

func (h *MessageHandler) albumTrackCount(ctx context.Context, album string) string {
	if album == "" {
		return replyNotUnderstood
	}
	count, err := h.catalog.TrackCountForAlbum(ctx, album)
	if err != nil {
		slog.Error("Album track count lookup failed", "album", album, "error", err)
		return replyLookupFailed
	}
	if count == 0 {
		return fmt.Sprintf("I could not find the album '%s'.", album)
	}
	return fmt.Sprintf("The album '%s' contains %d song(s).", album, count)
}

func (h *MessageHandler) albumDuration(ctx context.Context, album string) string {
	if album == "" {
		return replyNotUnderstood
	}
	seconds, err := h.catalog.AlbumDurationSec(ctx, album)
	if err != nil {
		slog.Error("Album duration lookup failed", "album", album, "error", err)
		return replyLookupFailed
	}
	if seconds == 0 {
		return fmt.Sprintf("I could not find the album '%s'.", album)
	}
	total := int(seconds)
	return fmt.Sprintf("The album '%s' is %d minute(s) and %d second(s) long.", album, total/60, total%60)
}

func (h *MessageHandler) mostPopularSong(ctx context.Context, artist string) string {
	if artist == "" {
		return replyNotUnderstood
	}
	song, err := h.catalog.MostPopularTrackByArtist(ctx, artist)
	if err != nil {
		slog.Error("Most popular track lookup failed", "artist", artist, "error", err)
		return replyLookupFailed
	}
	if song == nil {
		return fmt.Sprintf("I could not find any songs by '%s'.", artist)
	}
	return fmt.Sprintf("The most popular song by %s is '%s'.", artist, song.TrackName)
}
