package repositories

import (
	"context"

	"mixtape/internal/models"
)

// FeatureRow is one track's numeric feature vector, in the fixed
// column order used for similarity computation.
type FeatureRow struct {
	TrackID  string
	Features []float64
}

// FeatureColumns is the catalog columns that make up a feature vector,
// in vector order. Missing values are read as zero.
var FeatureColumns = []string{
	"danceability", "energy", "valence", "acousticness",
	"instrumentalness", "liveness", "speechiness", "tempo", "loudness",
	"track_popularity", "artist_popularity", "album_popularity",
}

// TrackRef identifies a catalog track for the surface dictionary
// builder.
type TrackRef struct {
	TrackID   string `bson:"track_id"`
	TrackName string `bson:"track_name"`
}

// ArtistRef identifies a catalog primary artist for the surface
// dictionary builder.
type ArtistRef struct {
	ArtistID string `bson:"artist_id"`
	Artist   string `bson:"artist_0"`
}

// CatalogRepository defines the read-only query surface over the song
// catalog. The catalog is static at runtime; writes happen only
// through the import tool.
type CatalogRepository interface {
	// FindExact matches track_name exactly; artist, when non-empty,
	// must match the primary artist exactly.
	FindExact(ctx context.Context, title, artist string) ([]models.Song, error)

	// FindByArtistSubstring matches track_name exactly and artist as a
	// substring of the combined artists field.
	FindByArtistSubstring(ctx context.Context, title, artist string) ([]models.Song, error)

	// FindByTrackIDs hydrates songs for the given canonical track ids.
	FindByTrackIDs(ctx context.Context, ids []string) ([]models.Song, error)

	// FindByArtistID returns every song whose canonical artist id matches.
	FindByArtistID(ctx context.Context, artistID string) ([]models.Song, error)

	// FeatureMatrix returns the numeric feature vectors for the whole
	// catalog, in stable catalog order.
	FeatureMatrix(ctx context.Context) ([]FeatureRow, error)

	// Popularity maps each requested track id to its track popularity;
	// a nil entry means the value is missing in the catalog.
	Popularity(ctx context.Context, ids []string) (map[string]*int, error)

	// AllTracks and AllArtists feed the offline surface dictionary builder.
	AllTracks(ctx context.Context) ([]TrackRef, error)
	AllArtists(ctx context.Context) ([]ArtistRef, error)

	// SaveMany inserts catalog rows (import tool only).
	SaveMany(ctx context.Context, songs []models.Song) error

	// Question helpers for the dialogue layer.
	AlbumReleaseDate(ctx context.Context, albumName string) (string, error)
	AlbumCountByArtistName(ctx context.Context, artist string) (int64, error)
	AlbumCountByArtistID(ctx context.Context, artistID string) (int64, error)
	AlbumForTrack(ctx context.Context, title string) (string, error)
	TrackCountForAlbum(ctx context.Context, albumName string) (int64, error)
	AlbumDurationSec(ctx context.Context, albumName string) (float64, error)
	MostPopularTrackByArtist(ctx context.Context, artist string) (*models.Song, error)

	Count(ctx context.Context) (int64, error)
}
