package surface

import (
	"context"
	"fmt"
	"log/slog"

	"mixtape/internal/repositories"
)

// Builder rebuilds the surface dictionary from the catalog. It is an
// offline tool concern; the service only reads the result.
type Builder struct {
	catalog repositories.CatalogRepository
	surface repositories.SurfaceRepository
}

// NewBuilder creates a surface dictionary builder.
func NewBuilder(catalog repositories.CatalogRepository, surface repositories.SurfaceRepository) *Builder {
	return &Builder{catalog: catalog, surface: surface}
}

// Build drops any previous dictionary, emits every variant row for
// every catalog track and primary artist, then prunes duplicate
// (id, original, transformed) triples. Null and empty source strings
// are skipped entirely.
func (b *Builder) Build(ctx context.Context) error {
	if err := b.surface.DropAll(ctx); err != nil {
		return fmt.Errorf("failed to reset surface dictionary: %w", err)
	}

	tracks, err := b.catalog.AllTracks(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog tracks: %w", err)
	}

	var trackRows []repositories.TrackVariantRow
	for _, t := range tracks {
		if t.TrackName == "" {
			continue
		}
		for _, variant := range TrackVariants(t.TrackName) {
			trackRows = append(trackRows, repositories.TrackVariantRow{
				TrackID:     t.TrackID,
				Original:    t.TrackName,
				Transformed: variant,
			})
		}
	}
	if err := b.surface.InsertTrackVariants(ctx, trackRows); err != nil {
		return err
	}
	slog.Info("Built track surface dictionary", "tracks", len(tracks), "variants", len(trackRows))

	artists, err := b.catalog.AllArtists(ctx)
	if err != nil {
		return fmt.Errorf("failed to load catalog artists: %w", err)
	}

	var artistRows []repositories.ArtistVariantRow
	for _, a := range artists {
		if a.Artist == "" {
			continue
		}
		for _, variant := range ArtistVariants(a.Artist) {
			artistRows = append(artistRows, repositories.ArtistVariantRow{
				ArtistID:    a.ArtistID,
				Original:    a.Artist,
				Transformed: variant,
			})
		}
	}
	if err := b.surface.InsertArtistVariants(ctx, artistRows); err != nil {
		return err
	}
	slog.Info("Built artist surface dictionary", "artists", len(artists), "variants", len(artistRows))

	removed, err := b.surface.RemoveDuplicates(ctx)
	if err != nil {
		return fmt.Errorf("failed to prune duplicate variants: %w", err)
	}
	if removed > 0 {
		slog.Info("Pruned duplicate surface dictionary rows", "removed", removed)
	}

	return nil
}
