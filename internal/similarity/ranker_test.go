package similarity_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mixtape/internal/cache"
	"mixtape/internal/similarity"
	"mixtape/internal/testutil"
)

func intPtr(v int) *int { return &v }

func TestRecommendRanksByCoOccurrenceThenPopularity(t *testing.T) {
	neighbors := new(testutil.MockNeighborSource)
	neighbors.On("Neighbors", mock.Anything, "p1", mock.Anything).Return([]string{"a", "b"}, nil)
	neighbors.On("Neighbors", mock.Anything, "p2", mock.Anything).Return([]string{"a", "c"}, nil)

	catalog := new(testutil.MockCatalogRepository)
	catalog.On("Popularity", mock.Anything, mock.Anything).Return(map[string]*int{
		"a": intPtr(10),
		"b": intPtr(40),
		"c": intPtr(80),
	}, nil)

	ranker := similarity.NewRanker(neighbors, catalog, 10)

	ids, err := ranker.Recommend(context.Background(), []string{"p1", "p2"}, 10)
	require.NoError(t, err)

	// a appears in both neighbor lists and wins regardless of its lower
	// popularity; c beats b on the popularity tie-break.
	assert.Equal(t, []string{"a", "c", "b"}, ids)
}

func TestRecommendMissingPopularitySortsLast(t *testing.T) {
	neighbors := new(testutil.MockNeighborSource)
	neighbors.On("Neighbors", mock.Anything, "p1", mock.Anything).Return([]string{"a", "b", "c"}, nil)

	catalog := new(testutil.MockCatalogRepository)
	catalog.On("Popularity", mock.Anything, mock.Anything).Return(map[string]*int{
		"a": nil,
		"b": intPtr(5),
		"c": intPtr(50),
	}, nil)

	ranker := similarity.NewRanker(neighbors, catalog, 10)

	ids, err := ranker.Recommend(context.Background(), []string{"p1"}, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "b", "a"}, ids)
}

func TestRecommendEmptyPlaylist(t *testing.T) {
	ranker := similarity.NewRanker(new(testutil.MockNeighborSource), new(testutil.MockCatalogRepository), 10)

	ids, err := ranker.Recommend(context.Background(), nil, 10)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestRecommendTruncatesToLimit(t *testing.T) {
	neighbors := new(testutil.MockNeighborSource)
	neighbors.On("Neighbors", mock.Anything, "p1", mock.Anything).Return([]string{"a", "b", "c", "d"}, nil)

	catalog := new(testutil.MockCatalogRepository)
	catalog.On("Popularity", mock.Anything, mock.Anything).Return(map[string]*int{}, nil)

	ranker := similarity.NewRanker(neighbors, catalog, 10)

	ids, err := ranker.Recommend(context.Background(), []string{"p1"}, 2)
	require.NoError(t, err)
	assert.Len(t, ids, 2)
}

func TestRecommendPropagatesNeighborErrors(t *testing.T) {
	neighbors := new(testutil.MockNeighborSource)
	neighbors.On("Neighbors", mock.Anything, "p1", mock.Anything).Return(nil, errors.New("not in matrix"))

	ranker := similarity.NewRanker(neighbors, new(testutil.MockCatalogRepository), 10)

	_, err := ranker.Recommend(context.Background(), []string{"p1"}, 10)
	assert.Error(t, err)
}

func TestRecommendEndToEndWithStoredNeighbors(t *testing.T) {
	store := cache.NewMemoryCache()
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, "neighbors:t1", []byte(`["t2","t3"]`), 0))
	require.NoError(t, store.Set(ctx, "neighbors:t3", []byte(`["t2"]`), 0))

	catalog := new(testutil.MockCatalogRepository)
	catalog.On("Popularity", mock.Anything, mock.Anything).Return(map[string]*int{
		"t2": intPtr(95),
		"t3": intPtr(90),
	}, nil)

	neighbors := similarity.NewService(catalog, store)
	ranker := similarity.NewRanker(neighbors, catalog, 10)

	ids, err := ranker.Recommend(ctx, []string{"t1", "t3"}, 5)
	require.NoError(t, err)

	// t2 appears in both stored neighbor lists and outranks everything
	// seen only once.
	assert.Equal(t, []string{"t2", "t3"}, ids)
	catalog.AssertNotCalled(t, "FeatureMatrix", mock.Anything)
}

func TestRecommendRanksOnCoOccurrenceWhenPopularityUnavailable(t *testing.T) {
	neighbors := new(testutil.MockNeighborSource)
	neighbors.On("Neighbors", mock.Anything, "p1", mock.Anything).Return([]string{"a", "b"}, nil)
	neighbors.On("Neighbors", mock.Anything, "p2", mock.Anything).Return([]string{"b"}, nil)

	catalog := new(testutil.MockCatalogRepository)
	catalog.On("Popularity", mock.Anything, mock.Anything).Return(nil, errors.New("connection lost"))

	ranker := similarity.NewRanker(neighbors, catalog, 10)

	ids, err := ranker.Recommend(context.Background(), []string{"p1", "p2"}, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, ids)
}
