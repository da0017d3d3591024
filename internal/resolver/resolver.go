// Package resolver maps raw (title, artist) pairs onto catalog songs,
// trying exact matches first and falling back to the surface
// dictionary of alternate spellings.
package resolver

import (
	"context"
	"log/slog"

	"mixtape/internal/models"
	"mixtape/internal/repositories"
	"mixtape/internal/surface"
)

// Service resolves songs against the catalog. Lookup-layer failures
// never escape a Resolve call: they are logged and reported as no
// match, so callers only ever branch on the result length.
type Service struct {
	catalog repositories.CatalogRepository
	surface repositories.SurfaceRepository
}

// NewService creates a song resolver.
func NewService(catalog repositories.CatalogRepository, surfaceDict repositories.SurfaceRepository) *Service {
	return &Service{catalog: catalog, surface: surfaceDict}
}

// Resolve returns the catalog songs matching title and, optionally,
// artist. Stages short-circuit on the first non-empty result:
//
//  1. exact (track_name, primary artist) match, then track_name with
//     artist as a substring of the artists field, when artist is given
//  2. exact track_name match alone, when artist is absent
//  3. surface dictionary lookup of the lowercased title (and artist),
//     re-queried by canonical id
//
// A title-only query may legitimately return several songs; the caller
// decides how to handle the ambiguity. When an artist was given and
// cannot be matched even through the surface dictionary, the result is
// empty rather than a title-only guess.
func (s *Service) Resolve(ctx context.Context, title, artist string) []models.Song {
	if artist != "" {
		songs, err := s.catalog.FindExact(ctx, title, artist)
		if err != nil {
			slog.Error("Catalog lookup failed", "title", title, "artist", artist, "error", err)
		}
		if len(songs) > 0 {
			return songs
		}

		songs, err = s.catalog.FindByArtistSubstring(ctx, title, artist)
		if err != nil {
			slog.Error("Catalog substring lookup failed", "title", title, "artist", artist, "error", err)
		}
		if len(songs) > 0 {
			return songs
		}

		return s.resolveViaSurface(ctx, title, artist)
	}

	songs, err := s.catalog.FindExact(ctx, title, "")
	if err != nil {
		slog.Error("Catalog lookup failed", "title", title, "error", err)
	}
	if len(songs) > 0 {
		return songs
	}

	return s.resolveViaSurface(ctx, title, "")
}

func (s *Service) resolveViaSurface(ctx context.Context, title, artist string) []models.Song {
	trackIDs, err := s.surface.LookupTrack(ctx, surface.Lowercase(title))
	if err != nil {
		slog.Error("Surface dictionary track lookup failed", "title", title, "error", err)
		return nil
	}

	if artist == "" {
		songs, err := s.catalog.FindByTrackIDs(ctx, trackIDs)
		if err != nil {
			slog.Error("Catalog hydration failed", "title", title, "error", err)
			return nil
		}
		return songs
	}

	artistID, err := s.surface.LookupArtist(ctx, surface.Lowercase(artist))
	if err != nil {
		slog.Error("Surface dictionary artist lookup failed", "artist", artist, "error", err)
		return nil
	}
	if artistID == "" {
		// No artist match anywhere; do not degrade to a title-only
		// match and risk attributing the song to the wrong artist.
		return nil
	}

	candidates, err := s.catalog.FindByTrackIDs(ctx, trackIDs)
	if err != nil {
		slog.Error("Catalog hydration failed", "title", title, "error", err)
		return nil
	}

	var songs []models.Song
	for _, song := range candidates {
		if song.ArtistID == artistID {
			songs = append(songs, song)
		}
	}
	return songs
}
