package similarity

import (
	"context"
	"log/slog"
	"sort"

	"mixtape/internal/repositories"
)

// NeighborSource provides per-track neighbor lists, cache-first.
type NeighborSource interface {
	Neighbors(ctx context.Context, trackID string, n int) ([]string, error)
}

// Ranker turns a playlist into ranked track recommendations by
// aggregating the playlist tracks' neighbor lists. Candidates that
// appear across more playlist tracks rank first; popularity only
// breaks ties.
type Ranker struct {
	neighbors     NeighborSource
	catalog       repositories.CatalogRepository
	neighborLimit int
}

// NewRanker creates a ranker. neighborLimit is the per-track neighbor
// list length requested from the source.
func NewRanker(neighbors NeighborSource, catalog repositories.CatalogRepository, neighborLimit int) *Ranker {
	if neighborLimit <= 0 {
		neighborLimit = DefaultNeighborLimit
	}
	return &Ranker{neighbors: neighbors, catalog: catalog, neighborLimit: neighborLimit}
}

// Recommend returns up to n candidate track ids for the playlist.
// Duplicate playlist ids are meaningful: they weight their neighbors
// higher. An empty playlist yields an empty result. The caller is
// responsible for hydrating ids and filtering ones already present in
// the destination list.
func (r *Ranker) Recommend(ctx context.Context, playlistTrackIDs []string, n int) ([]string, error) {
	if len(playlistTrackIDs) == 0 || n <= 0 {
		return nil, nil
	}

	counts := make(map[string]int)
	var order []string
	for _, trackID := range playlistTrackIDs {
		neighbors, err := r.neighbors.Neighbors(ctx, trackID, r.neighborLimit)
		if err != nil {
			return nil, err
		}
		for _, id := range neighbors {
			if counts[id] == 0 {
				order = append(order, id)
			}
			counts[id]++
		}
	}
	if len(order) == 0 {
		return nil, nil
	}

	popularity, err := r.catalog.Popularity(ctx, order)
	if err != nil {
		// Rank on co-occurrence alone when the store is unavailable.
		slog.Error("Failed to fetch candidate popularity", "error", err)
		popularity = map[string]*int{}
	}

	pop := func(id string) int {
		if p, ok := popularity[id]; ok && p != nil {
			return *p
		}
		return -1 // missing popularity sorts last within its count
	}

	sort.SliceStable(order, func(a, b int) bool {
		if counts[order[a]] != counts[order[b]] {
			return counts[order[a]] > counts[order[b]]
		}
		return pop(order[a]) > pop(order[b])
	})

	if n > len(order) {
		n = len(order)
	}
	return order[:n], nil
}
