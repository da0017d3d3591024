package repositories

import "context"

// TrackVariantRow is one surface dictionary entry for a track: the
// canonical id, the original title, and one normalized variant of it.
type TrackVariantRow struct {
	TrackID     string `bson:"track_id"`
	Original    string `bson:"original_track"`
	Transformed string `bson:"transformed_track"`
}

// ArtistVariantRow is one surface dictionary entry for an artist.
type ArtistVariantRow struct {
	ArtistID    string `bson:"artist_id"`
	Original    string `bson:"original_artist"`
	Transformed string `bson:"transformed_artist"`
}

// SurfaceRepository is the surface dictionary query and build surface.
// Lookups are read-only at request time; the insert and dedup methods
// are used only by the offline builder.
type SurfaceRepository interface {
	// LookupTrack returns the canonical track ids whose variants match
	// the normalized string. Empty when nothing matches.
	LookupTrack(ctx context.Context, normalized string) ([]string, error)

	// LookupArtist returns the canonical artist id for the normalized
	// string, or "" when absent.
	LookupArtist(ctx context.Context, normalized string) (string, error)

	InsertTrackVariants(ctx context.Context, rows []TrackVariantRow) error
	InsertArtistVariants(ctx context.Context, rows []ArtistVariantRow) error

	// DropAll clears both dictionary collections before a rebuild.
	DropAll(ctx context.Context) error

	// RemoveDuplicates deletes repeated (id, original, transformed)
	// triples, keeping exactly one of each.
	RemoveDuplicates(ctx context.Context) (int64, error)
}
