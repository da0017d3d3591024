// Package enrich fetches audio features from the Spotify API. It is
// used only by the catalog import tool to backfill rows whose feature
// columns are missing; the running service never calls out.
package enrich

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	spotifyTokenURL = "https://accounts.spotify.com/api/token"
	spotifyAPIURL   = "https://api.spotify.com/v1"
)

// AudioFeatures is the subset of Spotify's audio-features payload the
// catalog stores.
type AudioFeatures struct {
	Danceability     float64 `json:"danceability"`
	Energy           float64 `json:"energy"`
	Valence          float64 `json:"valence"`
	Acousticness     float64 `json:"acousticness"`
	Instrumentalness float64 `json:"instrumentalness"`
	Liveness         float64 `json:"liveness"`
	Speechiness      float64 `json:"speechiness"`
	Tempo            float64 `json:"tempo"`
	Loudness         float64 `json:"loudness"`
	Key              int     `json:"key"`
	Mode             int     `json:"mode"`
	TimeSignature    int     `json:"time_signature"`
	DurationMs       float64 `json:"duration_ms"`
}

// SpotifyClient fetches track audio features with client-credentials
// auth.
type SpotifyClient struct {
	client      *resty.Client
	tokenConfig *clientcredentials.Config

	mu          sync.RWMutex
	accessToken string
	tokenExpiry time.Time
}

// NewSpotifyClient creates a Spotify enrichment client.
func NewSpotifyClient(clientID, clientSecret string) *SpotifyClient {
	tokenConfig := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     spotifyTokenURL,
	}

	client := resty.New().
		SetTimeout(10 * time.Second).
		SetRetryCount(3).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second)

	return &SpotifyClient{
		client:      client,
		tokenConfig: tokenConfig,
	}
}

// AudioFeatures fetches the audio features for a Spotify track id.
// Returns nil when the track is unknown to Spotify.
func (s *SpotifyClient) AudioFeatures(ctx context.Context, trackID string) (*AudioFeatures, error) {
	token, err := s.ensureValidToken(ctx)
	if err != nil {
		return nil, err
	}

	var features AudioFeatures
	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetResult(&features).
		Get(fmt.Sprintf("%s/audio-features/%s", spotifyAPIURL, trackID))
	if err != nil {
		return nil, fmt.Errorf("spotify audio-features request failed: %w", err)
	}

	if resp.StatusCode() == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("spotify audio-features returned status %d", resp.StatusCode())
	}

	return &features, nil
}

func (s *SpotifyClient) ensureValidToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	if s.accessToken != "" && time.Now().Before(s.tokenExpiry) {
		token := s.accessToken
		s.mu.RUnlock()
		return token, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.accessToken != "" && time.Now().Before(s.tokenExpiry) {
		return s.accessToken, nil
	}

	token, err := s.tokenConfig.Token(ctx)
	if err != nil {
		return "", fmt.Errorf("spotify token request failed: %w", err)
	}

	s.accessToken = token.AccessToken
	// Refresh a minute early to avoid using a token at its boundary.
	s.tokenExpiry = token.Expiry.Add(-1 * time.Minute)
	return s.accessToken, nil
}
