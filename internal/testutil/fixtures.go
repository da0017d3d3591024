package testutil

import (
	"fmt"

	"mixtape/internal/models"
)

// SongBuilder provides a fluent interface for creating test songs
type SongBuilder struct {
	song models.Song
}

// NewSongBuilder creates a new song builder with default values
func NewSongBuilder() *SongBuilder {
	return &SongBuilder{
		song: models.Song{
			TrackID:   "track-1",
			TrackName: "Test Song",
			ArtistID:  "artist-1",
			Artists:   "Test Artist",
			Artist0:   "Test Artist",
		},
	}
}

// WithTrackID sets the canonical track id
func (b *SongBuilder) WithTrackID(id string) *SongBuilder {
	b.song.TrackID = id
	return b
}

// WithTrackName sets the track title
func (b *SongBuilder) WithTrackName(name string) *SongBuilder {
	b.song.TrackName = name
	return b
}

// WithArtist sets the primary artist name and id
func (b *SongBuilder) WithArtist(id, name string) *SongBuilder {
	b.song.ArtistID = id
	b.song.Artists = name
	b.song.Artist0 = name
	return b
}

// WithArtists sets the combined artists display field
func (b *SongBuilder) WithArtists(artists string) *SongBuilder {
	b.song.Artists = artists
	return b
}

// WithAlbum sets the album id and name
func (b *SongBuilder) WithAlbum(id, name string) *SongBuilder {
	b.song.AlbumID = id
	b.song.AlbumName = name
	return b
}

// WithTrackPopularity sets the track popularity score
func (b *SongBuilder) WithTrackPopularity(popularity int) *SongBuilder {
	b.song.TrackPop = &popularity
	return b
}

// WithDanceability sets the danceability audio feature
func (b *SongBuilder) WithDanceability(v float64) *SongBuilder {
	b.song.Danceability = &v
	return b
}

// WithEnergy sets the energy audio feature
func (b *SongBuilder) WithEnergy(v float64) *SongBuilder {
	b.song.Energy = &v
	return b
}

// Build returns the constructed song
func (b *SongBuilder) Build() models.Song {
	return b.song
}

// BuildPtr returns the constructed song as a pointer
func (b *SongBuilder) BuildPtr() *models.Song {
	song := b.song
	return &song
}

// Songs builds n distinct songs named "Song 1".."Song n" with track ids
// "t1".."tn", all by the default test artist.
func Songs(n int) []models.Song {
	songs := make([]models.Song, 0, n)
	for i := 1; i <= n; i++ {
		songs = append(songs, NewSongBuilder().
			WithTrackID(fmt.Sprintf("t%d", i)).
			WithTrackName(fmt.Sprintf("Song %d", i)).
			Build())
	}
	return songs
}
