// Package similarity computes and serves per-track nearest-neighbor
// lists over the catalog's audio and popularity features, and ranks
// playlist-driven recommendations from them.
package similarity

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"sort"

	"mixtape/internal/cache"
	"mixtape/internal/repositories"
)

const neighborKeyPrefix = "neighbors:"

// DefaultNeighborLimit matches the offline precompute pass.
const DefaultNeighborLimit = 10

// Service serves top-N neighbor lists, lazily computing and persisting
// them on first request. Stored lists are returned verbatim and never
// expire; the catalog is static.
type Service struct {
	catalog repositories.CatalogRepository
	store   cache.Cache
}

// NewService creates a neighbor service over the catalog and the
// similarity cache storage.
func NewService(catalog repositories.CatalogRepository, store cache.Cache) *Service {
	return &Service{catalog: catalog, store: store}
}

// Neighbors returns up to n neighbor track ids for trackID, most
// similar first, never including trackID itself. The track must exist
// in the catalog's feature matrix; asking for an unknown id is a
// caller bug and returns an error.
func (s *Service) Neighbors(ctx context.Context, trackID string, n int) ([]string, error) {
	key := neighborKeyPrefix + trackID

	data, err := s.store.Get(ctx, key)
	if err != nil {
		slog.Error("Similarity cache read failed, recomputing", "trackID", trackID, "error", err)
	} else if data != nil {
		var ids []string
		if err := json.Unmarshal(data, &ids); err == nil {
			return ids, nil
		}
		slog.Error("Corrupt similarity cache entry, recomputing", "trackID", trackID)
	}

	ids, err := s.compute(ctx, trackID, n)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		return nil, nil
	}

	payload, err := json.Marshal(ids)
	if err != nil {
		return ids, nil
	}
	// No expiration: overwrite semantics, last writer wins.
	if err := s.store.Set(ctx, key, payload, 0); err != nil {
		slog.Error("Failed to persist neighbor list", "trackID", trackID, "error", err)
	}

	return ids, nil
}

// Precompute builds and stores neighbor lists for every catalog track
// in one pass over the feature matrix.
func (s *Service) Precompute(ctx context.Context, n int) error {
	rows, err := s.catalog.FeatureMatrix(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch feature matrix: %w", err)
	}
	standardize(rows)

	for i, row := range rows {
		ids := topNeighbors(rows, i, n)
		payload, err := json.Marshal(ids)
		if err != nil {
			return fmt.Errorf("failed to encode neighbor list for %s: %w", row.TrackID, err)
		}
		if err := s.store.Set(ctx, neighborKeyPrefix+row.TrackID, payload, 0); err != nil {
			return fmt.Errorf("failed to store neighbor list for %s: %w", row.TrackID, err)
		}
		if (i+1)%100 == 0 {
			slog.Info("Precomputing neighbors", "done", i+1, "total", len(rows))
		}
	}

	return nil
}

func (s *Service) compute(ctx context.Context, trackID string, n int) ([]string, error) {
	rows, err := s.catalog.FeatureMatrix(ctx)
	if err != nil {
		// Store failures surface as an empty result, not a crash.
		slog.Error("Failed to fetch feature matrix", "trackID", trackID, "error", err)
		return nil, nil
	}

	target := -1
	for i, row := range rows {
		if row.TrackID == trackID {
			target = i
			break
		}
	}
	if target < 0 {
		return nil, fmt.Errorf("track %q not present in feature matrix", trackID)
	}

	// Z-scores are refit against the whole catalog on every
	// computation; parameters are deliberately not persisted.
	standardize(rows)

	return topNeighbors(rows, target, n), nil
}

// standardize scales every feature column in place to mean 0 and unit
// variance across all rows.
func standardize(rows []repositories.FeatureRow) {
	if len(rows) == 0 {
		return
	}
	cols := len(rows[0].Features)
	for c := 0; c < cols; c++ {
		var sum float64
		for _, row := range rows {
			sum += row.Features[c]
		}
		mean := sum / float64(len(rows))

		var variance float64
		for _, row := range rows {
			d := row.Features[c] - mean
			variance += d * d
		}
		std := math.Sqrt(variance / float64(len(rows)))
		if std == 0 {
			std = 1
		}

		for _, row := range rows {
			row.Features[c] = (row.Features[c] - mean) / std
		}
	}
}

// topNeighbors returns up to n track ids most similar to rows[target]
// by cosine similarity, excluding the target itself. Ties keep the
// original row order.
func topNeighbors(rows []repositories.FeatureRow, target, n int) []string {
	scores := make([]float64, len(rows))
	for i := range rows {
		scores[i] = cosine(rows[target].Features, rows[i].Features)
	}

	order := make([]int, 0, len(rows)-1)
	for i := range rows {
		if i != target {
			order = append(order, i)
		}
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	if n > len(order) {
		n = len(order)
	}
	if n < 0 {
		n = 0
	}
	ids := make([]string, 0, n)
	for _, idx := range order[:n] {
		ids = append(ids, rows[idx].TrackID)
	}
	return ids
}

func cosine(a, b []float64) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
