package models

import "strings"

// Song is one catalog entry: one row per (track, primary artist)
// combination, carrying descriptive metadata, audio features and
// popularity metrics. Songs are value records: they are built from a
// catalog row at query time and never mutated afterwards.
type Song struct {
	AlbumID         string   `bson:"album_id" json:"album_id"`
	AlbumName       string   `bson:"album_name" json:"album_name"`
	AlbumPopularity *int     `bson:"album_popularity" json:"album_popularity"`
	AlbumType       string   `bson:"album_type" json:"album_type"`
	Artists         string   `bson:"artists" json:"artists"`
	Artist0         string   `bson:"artist_0" json:"artist_0"`
	Artist1         string   `bson:"artist_1" json:"artist_1"`
	Artist2         string   `bson:"artist_2" json:"artist_2"`
	Artist3         string   `bson:"artist_3" json:"artist_3"`
	Artist4         string   `bson:"artist_4" json:"artist_4"`
	ArtistID        string   `bson:"artist_id" json:"artist_id"`
	DurationSec     *float64 `bson:"duration_sec" json:"duration_sec"`
	Label           string   `bson:"label" json:"label"`
	ReleaseDate     string   `bson:"release_date" json:"release_date"`
	TotalTracks     *int     `bson:"total_tracks" json:"total_tracks"`
	TrackID         string   `bson:"track_id" json:"track_id"`
	TrackName       string   `bson:"track_name" json:"track_name"`
	TrackNumber     *int     `bson:"track_number" json:"track_number"`
	ArtistGenres    string   `bson:"artist_genres" json:"artist_genres"`
	ArtistPop       *int     `bson:"artist_popularity" json:"artist_popularity"`
	Followers       *float64 `bson:"followers" json:"followers"`
	Name            string   `bson:"name" json:"name"`
	Genre0          string   `bson:"genre_0" json:"genre_0"`
	Genre1          string   `bson:"genre_1" json:"genre_1"`
	Genre2          string   `bson:"genre_2" json:"genre_2"`
	Genre3          string   `bson:"genre_3" json:"genre_3"`
	Genre4          string   `bson:"genre_4" json:"genre_4"`
	Acousticness    *float64 `bson:"acousticness" json:"acousticness"`
	AnalysisURL     string   `bson:"analysis_url" json:"analysis_url"`
	Danceability    *float64 `bson:"danceability" json:"danceability"`
	DurationMs      *float64 `bson:"duration_ms" json:"duration_ms"`
	Energy          *float64 `bson:"energy" json:"energy"`
	Instrumental    *float64 `bson:"instrumentalness" json:"instrumentalness"`
	Key             *int     `bson:"key" json:"key"`
	Liveness        *float64 `bson:"liveness" json:"liveness"`
	Loudness        *float64 `bson:"loudness" json:"loudness"`
	Mode            *int     `bson:"mode" json:"mode"`
	Speechiness     *float64 `bson:"speechiness" json:"speechiness"`
	Tempo           *float64 `bson:"tempo" json:"tempo"`
	TimeSignature   *int     `bson:"time_signature" json:"time_signature"`
	TrackHref       string   `bson:"track_href" json:"track_href"`
	TrackType       string   `bson:"track_type" json:"track_type"`
	URI             string   `bson:"uri" json:"uri"`
	Valence         *float64 `bson:"valence" json:"valence"`
	Explicit        *bool    `bson:"explicit" json:"explicit"`
	TrackPop        *int     `bson:"track_popularity" json:"track_popularity"`
	ReleaseYear     *int     `bson:"release_year" json:"release_year"`
	ReleaseMonth    *int     `bson:"release_month" json:"release_month"`
	RN              *int     `bson:"rn" json:"rn"`
}

// ArtistNames returns the non-empty artist slots in order.
func (s *Song) ArtistNames() []string {
	var names []string
	for _, a := range []string{s.Artist0, s.Artist1, s.Artist2, s.Artist3, s.Artist4} {
		if a != "" {
			names = append(names, a)
		}
	}
	return names
}

// String renders the song as "Track by Artist, Artist".
func (s *Song) String() string {
	artists := s.ArtistNames()
	if len(artists) == 0 {
		return s.TrackName + " by Unknown Artist"
	}
	return s.TrackName + " by " + strings.Join(artists, ", ")
}

// Equal reports whether two songs match on every attribute. Playlist
// membership is defined by this, not by track id alone.
func (s *Song) Equal(other *Song) bool {
	if other == nil {
		return false
	}
	return s.AlbumID == other.AlbumID &&
		s.AlbumName == other.AlbumName &&
		eqInt(s.AlbumPopularity, other.AlbumPopularity) &&
		s.AlbumType == other.AlbumType &&
		s.Artists == other.Artists &&
		s.Artist0 == other.Artist0 &&
		s.Artist1 == other.Artist1 &&
		s.Artist2 == other.Artist2 &&
		s.Artist3 == other.Artist3 &&
		s.Artist4 == other.Artist4 &&
		s.ArtistID == other.ArtistID &&
		eqFloat(s.DurationSec, other.DurationSec) &&
		s.Label == other.Label &&
		s.ReleaseDate == other.ReleaseDate &&
		eqInt(s.TotalTracks, other.TotalTracks) &&
		s.TrackID == other.TrackID &&
		s.TrackName == other.TrackName &&
		eqInt(s.TrackNumber, other.TrackNumber) &&
		s.ArtistGenres == other.ArtistGenres &&
		eqInt(s.ArtistPop, other.ArtistPop) &&
		eqFloat(s.Followers, other.Followers) &&
		s.Name == other.Name &&
		s.Genre0 == other.Genre0 &&
		s.Genre1 == other.Genre1 &&
		s.Genre2 == other.Genre2 &&
		s.Genre3 == other.Genre3 &&
		s.Genre4 == other.Genre4 &&
		eqFloat(s.Acousticness, other.Acousticness) &&
		s.AnalysisURL == other.AnalysisURL &&
		eqFloat(s.Danceability, other.Danceability) &&
		eqFloat(s.DurationMs, other.DurationMs) &&
		eqFloat(s.Energy, other.Energy) &&
		eqFloat(s.Instrumental, other.Instrumental) &&
		eqInt(s.Key, other.Key) &&
		eqFloat(s.Liveness, other.Liveness) &&
		eqFloat(s.Loudness, other.Loudness) &&
		eqInt(s.Mode, other.Mode) &&
		eqFloat(s.Speechiness, other.Speechiness) &&
		eqFloat(s.Tempo, other.Tempo) &&
		eqInt(s.TimeSignature, other.TimeSignature) &&
		s.TrackHref == other.TrackHref &&
		s.TrackType == other.TrackType &&
		s.URI == other.URI &&
		eqFloat(s.Valence, other.Valence) &&
		eqBool(s.Explicit, other.Explicit) &&
		eqInt(s.TrackPop, other.TrackPop) &&
		eqInt(s.ReleaseYear, other.ReleaseYear) &&
		eqInt(s.ReleaseMonth, other.ReleaseMonth) &&
		eqInt(s.RN, other.RN)
}

func eqInt(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func eqFloat(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func eqBool(a, b *bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
