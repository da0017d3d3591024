package models

import (
	"sort"
	"strings"
)

// Playlist is an ordered sequence of songs with uniqueness enforced by
// full attribute equality. It is not safe for concurrent use; callers
// own the locking (see the session package).
type Playlist struct {
	Name  string  `json:"name"`
	Songs []*Song `json:"songs"`
}

// NewPlaylist creates an empty named playlist.
func NewPlaylist(name string) *Playlist {
	return &Playlist{Name: name}
}

// Add appends a song unless an equal song is already present.
// Returns false if the song was already in the playlist.
func (p *Playlist) Add(song *Song) bool {
	if p.Contains(song) {
		return false
	}
	p.Songs = append(p.Songs, song)
	return true
}

// Contains reports whether an equal song is already present.
func (p *Playlist) Contains(song *Song) bool {
	for _, s := range p.Songs {
		if s.Equal(song) {
			return true
		}
	}
	return false
}

// Find returns the first song matching track name and, when given, the
// full artist list. Matching is case-insensitive.
func (p *Playlist) Find(trackName string, artists []string) *Song {
	for _, s := range p.Songs {
		if !strings.EqualFold(s.TrackName, trackName) {
			continue
		}
		if len(artists) == 0 || artistsMatch(s.ArtistNames(), artists) {
			return s
		}
	}
	return nil
}

// RemoveByName removes the first song whose track name matches,
// optionally constrained to the given artists. Returns false when no
// song matched.
func (p *Playlist) RemoveByName(trackName string, artists []string) bool {
	for i, s := range p.Songs {
		if !strings.EqualFold(s.TrackName, trackName) {
			continue
		}
		if len(artists) == 0 || artistsMatch(s.ArtistNames(), artists) {
			p.Songs = append(p.Songs[:i], p.Songs[i+1:]...)
			return true
		}
	}
	return false
}

// RemoveByPositions removes the songs at the given zero-based
// positions. Out-of-range positions are ignored. Returns the number of
// songs removed.
func (p *Playlist) RemoveByPositions(positions []int) int {
	keep := make([]*Song, 0, len(p.Songs))
	drop := make(map[int]bool, len(positions))
	for _, pos := range positions {
		drop[pos] = true
	}
	removed := 0
	for i, s := range p.Songs {
		if drop[i] {
			removed++
			continue
		}
		keep = append(keep, s)
	}
	p.Songs = keep
	return removed
}

// Clear removes every song.
func (p *Playlist) Clear() {
	p.Songs = nil
}

// Len returns the number of songs.
func (p *Playlist) Len() int {
	return len(p.Songs)
}

// TrackIDs returns the track ids in playlist order, duplicates kept.
func (p *Playlist) TrackIDs() []string {
	ids := make([]string, 0, len(p.Songs))
	for _, s := range p.Songs {
		ids = append(ids, s.TrackID)
	}
	return ids
}

// SortByPopularity orders songs by track popularity descending.
// Songs without a popularity value sort last.
func (p *Playlist) SortByPopularity() {
	sort.SliceStable(p.Songs, func(i, j int) bool {
		return popOf(p.Songs[i]) > popOf(p.Songs[j])
	})
}

func popOf(s *Song) int {
	if s.TrackPop == nil {
		return -1
	}
	return *s.TrackPop
}

func artistsMatch(have, want []string) bool {
	if len(have) != len(want) {
		return false
	}
	for i := range have {
		if !strings.EqualFold(have[i], want[i]) {
			return false
		}
	}
	return true
}
