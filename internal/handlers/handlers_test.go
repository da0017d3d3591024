package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mixtape/internal/handlers"
	"mixtape/internal/models"
	"mixtape/internal/nlu"
	"mixtape/internal/resolver"
	"mixtape/internal/session"
	"mixtape/internal/similarity"
	"mixtape/internal/testutil"
)

type testEnv struct {
	catalog    *testutil.MockCatalogRepository
	dict       *testutil.MockSurfaceRepository
	neighbors  *testutil.MockNeighborSource
	classifier *testutil.MockClassifier
	http       *testutil.HTTPTestHelper
}

func newTestEnv(t *testing.T) *testEnv {
	env := &testEnv{
		catalog:    new(testutil.MockCatalogRepository),
		dict:       new(testutil.MockSurfaceRepository),
		neighbors:  new(testutil.MockNeighborSource),
		classifier: new(testutil.MockClassifier),
	}

	issuer := session.NewIssuer("test-secret", time.Hour)
	sessions := session.NewManager()
	resolverService := resolver.NewService(env.catalog, env.dict)
	ranker := similarity.NewRanker(env.neighbors, env.catalog, 10)

	router := handlers.SetupRouter(handlers.RouterDeps{
		Issuer:          issuer,
		Session:         handlers.NewSessionHandler(issuer, sessions),
		Playlist:        handlers.NewPlaylistHandler(resolverService, sessions),
		Suggestions:     handlers.NewSuggestionsHandler(sessions),
		Recommendations: handlers.NewRecommendationsHandler(ranker, env.catalog, sessions, 10),
		Messages:        handlers.NewMessageHandler(resolverService, ranker, env.catalog, env.dict, sessions, env.classifier, 10),
	})

	env.http = testutil.NewHTTPTestHelper(t, router)

	// Open a session for the authenticated routes.
	recorder := env.http.PostJSON("/api/v1/session", nil)
	require.Equal(t, http.StatusCreated, recorder.Code)

	var body struct {
		Token string `json:"token"`
	}
	env.http.DecodeJSON(recorder, &body)
	require.NotEmpty(t, body.Token)
	env.http.SetToken(body.Token)

	return env
}

func TestSessionRequired(t *testing.T) {
	env := newTestEnv(t)
	env.http.SetToken("")

	recorder := env.http.GetJSON("/api/v1/playlist")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	env.http.SetToken("bogus-token")
	recorder = env.http.GetJSON("/api/v1/playlist")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestAddSongAndListPlaylist(t *testing.T) {
	env := newTestEnv(t)

	song := testutil.NewSongBuilder().WithTrackID("t1").WithTrackName("Yesterday").WithArtist("a1", "The Beatles").Build()
	env.catalog.On("FindExact", mock.Anything, "Yesterday", "The Beatles").Return([]models.Song{song}, nil)

	recorder := env.http.PostJSON("/api/v1/playlist/songs", handlers.AddSongRequest{Title: "Yesterday", Artist: "The Beatles"})
	require.Equal(t, http.StatusCreated, recorder.Code)

	// Adding the same song again conflicts.
	recorder = env.http.PostJSON("/api/v1/playlist/songs", handlers.AddSongRequest{Title: "Yesterday", Artist: "The Beatles"})
	assert.Equal(t, http.StatusConflict, recorder.Code)

	recorder = env.http.GetJSON("/api/v1/playlist")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Display []string `json:"display"`
	}
	env.http.DecodeJSON(recorder, &body)
	assert.Equal(t, []string{"Yesterday by The Beatles"}, body.Display)
}

func TestAddSongNotFound(t *testing.T) {
	env := newTestEnv(t)

	env.catalog.On("FindExact", mock.Anything, "Nothing", "").Return(nil, nil)
	env.dict.On("LookupTrack", mock.Anything, "nothing").Return(nil, nil)
	env.catalog.On("FindByTrackIDs", mock.Anything, mock.Anything).Return(nil, nil)

	recorder := env.http.PostJSON("/api/v1/playlist/songs", handlers.AddSongRequest{Title: "Nothing"})
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestAmbiguousAddFillsSuggestions(t *testing.T) {
	env := newTestEnv(t)

	matches := []models.Song{
		testutil.NewSongBuilder().WithTrackID("t1").WithTrackName("Hurt").WithArtist("a1", "Nine Inch Nails").WithTrackPopularity(70).Build(),
		testutil.NewSongBuilder().WithTrackID("t2").WithTrackName("Hurt").WithArtist("a2", "Johnny Cash").WithTrackPopularity(90).Build(),
	}
	env.catalog.On("FindExact", mock.Anything, "Hurt", "").Return(matches, nil)

	recorder := env.http.PostJSON("/api/v1/playlist/songs", handlers.AddSongRequest{Title: "Hurt"})
	require.Equal(t, http.StatusConflict, recorder.Code)

	recorder = env.http.GetJSON("/api/v1/suggestions")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Display []string `json:"display"`
	}
	env.http.DecodeJSON(recorder, &body)
	// Suggestions come back sorted by popularity.
	assert.Equal(t, []string{"Hurt by Johnny Cash", "Hurt by Nine Inch Nails"}, body.Display)

	// Promoting one adds it to the playlist and drains the list.
	recorder = env.http.PostJSON("/api/v1/suggestions/promote", handlers.PromoteRequest{TrackName: "Hurt", Artists: []string{"Johnny Cash"}})
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = env.http.GetJSON("/api/v1/suggestions")
	env.http.DecodeJSON(recorder, &body)
	assert.Empty(t, body.Display)
}

func TestDeleteAndClearPlaylist(t *testing.T) {
	env := newTestEnv(t)

	song := testutil.NewSongBuilder().WithTrackID("t1").WithTrackName("Yesterday").WithArtist("a1", "The Beatles").Build()
	env.catalog.On("FindExact", mock.Anything, "Yesterday", "The Beatles").Return([]models.Song{song}, nil)

	recorder := env.http.PostJSON("/api/v1/playlist/songs", handlers.AddSongRequest{Title: "Yesterday", Artist: "The Beatles"})
	require.Equal(t, http.StatusCreated, recorder.Code)

	recorder = env.http.DeleteJSON("/api/v1/playlist/songs", handlers.DeleteSongRequest{TrackName: "Yesterday"})
	assert.Equal(t, http.StatusOK, recorder.Code)

	recorder = env.http.DeleteJSON("/api/v1/playlist/songs", handlers.DeleteSongRequest{TrackName: "Yesterday"})
	assert.Equal(t, http.StatusNotFound, recorder.Code)

	recorder = env.http.DeleteJSON("/api/v1/playlist", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestRecommendationsFilterPlaylistMembers(t *testing.T) {
	env := newTestEnv(t)

	playlistSong := testutil.NewSongBuilder().WithTrackID("t1").WithTrackName("Seed").WithArtist("a1", "Artist").Build()
	env.catalog.On("FindExact", mock.Anything, "Seed", "Artist").Return([]models.Song{playlistSong}, nil)

	recorder := env.http.PostJSON("/api/v1/playlist/songs", handlers.AddSongRequest{Title: "Seed", Artist: "Artist"})
	require.Equal(t, http.StatusCreated, recorder.Code)

	// t1 is its own best neighbor here and must not be recommended back.
	env.neighbors.On("Neighbors", mock.Anything, "t1", mock.Anything).Return([]string{"t1", "t2"}, nil)
	env.catalog.On("Popularity", mock.Anything, mock.Anything).Return(map[string]*int{}, nil)
	env.catalog.On("FindByTrackIDs", mock.Anything, []string{"t2"}).Return([]models.Song{
		testutil.NewSongBuilder().WithTrackID("t2").WithTrackName("Fresh").WithArtist("a2", "Other").Build(),
	}, nil)

	recorder = env.http.GetJSON("/api/v1/recommendations")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Display []string `json:"display"`
	}
	env.http.DecodeJSON(recorder, &body)
	assert.Equal(t, []string{"Fresh by Other"}, body.Display)
}

func TestMessagesSlashAdd(t *testing.T) {
	env := newTestEnv(t)

	song := testutil.NewSongBuilder().WithTrackID("t1").WithTrackName("Yesterday").WithArtist("a1", "The Beatles").Build()
	env.catalog.On("FindExact", mock.Anything, "Yesterday", "The Beatles").Return([]models.Song{song}, nil)

	recorder := env.http.PostJSON("/api/v1/messages", handlers.MessageRequest{Text: "/add Yesterday by The Beatles"})
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Reply    string   `json:"reply"`
		Playlist []string `json:"playlist"`
	}
	env.http.DecodeJSON(recorder, &body)
	assert.Contains(t, body.Reply, "added to the playlist")
	assert.Equal(t, []string{"Yesterday by The Beatles"}, body.Playlist)

	// The slash command never reaches the language model.
	env.classifier.AssertNotCalled(t, "Classify", mock.Anything, mock.Anything)
}

func TestMessagesFreeTextUsesClassifier(t *testing.T) {
	env := newTestEnv(t)

	env.classifier.On("Classify", mock.Anything, "wipe the playlist please").Return(nlu.Understanding{Intent: nlu.IntentClear}, nil)

	recorder := env.http.PostJSON("/api/v1/messages", handlers.MessageRequest{Text: "wipe the playlist please"})
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Reply string `json:"reply"`
	}
	env.http.DecodeJSON(recorder, &body)
	assert.Contains(t, body.Reply, "removed from the playlist")
}

func TestMessagesArtistAlbumCountFallsBackToSurfaceDictionary(t *testing.T) {
	env := newTestEnv(t)

	// The exact name misses; the surface dictionary resolves the id.
	env.catalog.On("AlbumCountByArtistName", mock.Anything, "Beatles").Return(int64(0), nil)
	env.dict.On("LookupArtist", mock.Anything, "beatles").Return("a1", nil)
	env.catalog.On("AlbumCountByArtistID", mock.Anything, "a1").Return(int64(13), nil)

	recorder := env.http.PostJSON("/api/v1/messages", handlers.MessageRequest{Text: "How many albums has artist Beatles released?"})
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Reply string `json:"reply"`
	}
	env.http.DecodeJSON(recorder, &body)
	assert.Contains(t, body.Reply, "13")
}

func TestMessagesUnknownIntent(t *testing.T) {
	env := newTestEnv(t)

	env.classifier.On("Classify", mock.Anything, mock.Anything).Return(nlu.Understanding{Intent: nlu.IntentUnknown}, nil)

	recorder := env.http.PostJSON("/api/v1/messages", handlers.MessageRequest{Text: "what is the meaning of life"})
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Reply string `json:"reply"`
	}
	env.http.DecodeJSON(recorder, &body)
	assert.Contains(t, body.Reply, "did not understand")
}
