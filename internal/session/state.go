// Package session holds per-session playlist state. Every chat client
// gets its own State; nothing is shared across sessions, which is what
// lets resolver and ranker calls run without any locking of their own.
package session

import (
	"fmt"
	"sync"

	"mixtape/internal/models"
)

// State is the mutable per-session triple of playlist, suggestions and
// recommendations. All access goes through methods; the internal lock
// serializes concurrent requests within one session.
type State struct {
	mu              sync.Mutex
	playlist        *models.Playlist
	suggestions     *models.Playlist
	recommendations *models.Playlist
}

// NewState creates empty session state.
func NewState() *State {
	return &State{
		playlist:        models.NewPlaylist("My Playlist"),
		suggestions:     models.NewPlaylist("Suggestions"),
		recommendations: models.NewPlaylist("Recommendations"),
	}
}

// AddSong appends a song to the playlist. Returns false when an equal
// song is already present.
func (s *State) AddSong(song *models.Song) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playlist.Add(song)
}

// RemoveSong removes the first playlist song matching the track name
// and optional artists.
func (s *State) RemoveSong(trackName string, artists []string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playlist.RemoveByName(trackName, artists)
}

// RemovePositions removes playlist songs at the given zero-based
// positions and returns how many were removed.
func (s *State) RemovePositions(positions []int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playlist.RemoveByPositions(positions)
}

// ClearPlaylist removes every playlist song.
func (s *State) ClearPlaylist() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playlist.Clear()
}

// PlaylistSongs returns a copy of the playlist contents.
func (s *State) PlaylistSongs() []*models.Song {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*models.Song(nil), s.playlist.Songs...)
}

// PlaylistTrackIDs returns the playlist track ids in order.
func (s *State) PlaylistTrackIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playlist.TrackIDs()
}

// PlaylistContains reports whether an equal song is in the playlist.
func (s *State) PlaylistContains(song *models.Song) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playlist.Contains(song)
}

// ReplaceSuggestions swaps in a new suggestion list, sorted by track
// popularity descending.
func (s *State) ReplaceSuggestions(songs []*models.Song) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.suggestions.Clear()
	for _, song := range songs {
		s.suggestions.Add(song)
	}
	s.suggestions.SortByPopularity()
}

// SuggestionSongs returns a copy of the suggestion list.
func (s *State) SuggestionSongs() []*models.Song {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*models.Song(nil), s.suggestions.Songs...)
}

// PromoteSuggestion moves a suggested song into the playlist and then
// empties the suggestion list.
func (s *State) PromoteSuggestion(trackName string, artists []string) (*models.Song, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	song := s.suggestions.Find(trackName, artists)
	if song == nil {
		return nil, fmt.Errorf("song not found in suggestions: %s", trackName)
	}
	s.suggestions.RemoveByName(trackName, artists)
	s.playlist.Add(song)
	s.suggestions.Clear()
	return song, nil
}

// ReplaceRecommendations swaps in a new recommendation list.
func (s *State) ReplaceRecommendations(songs []*models.Song) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recommendations.Clear()
	for _, song := range songs {
		s.recommendations.Add(song)
	}
}

// RecommendationSongs returns a copy of the recommendation list.
func (s *State) RecommendationSongs() []*models.Song {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*models.Song(nil), s.recommendations.Songs...)
}
