package testutil

import (
	"context"
	"time"

	"mixtape/internal/models"
	"mixtape/internal/nlu"
	"mixtape/internal/repositories"

	"github.com/stretchr/testify/mock"
)

// MockCatalogRepository is a mock implementation of CatalogRepository for testing
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) FindExact(ctx context.Context, title, artist string) ([]models.Song, error) {
	args := m.Called(ctx, title, artist)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Song), args.Error(1)
}

func (m *MockCatalogRepository) FindByArtistSubstring(ctx context.Context, title, artist string) ([]models.Song, error) {
	args := m.Called(ctx, title, artist)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Song), args.Error(1)
}

func (m *MockCatalogRepository) FindByTrackIDs(ctx context.Context, ids []string) ([]models.Song, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Song), args.Error(1)
}

func (m *MockCatalogRepository) FindByArtistID(ctx context.Context, artistID string) ([]models.Song, error) {
	args := m.Called(ctx, artistID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Song), args.Error(1)
}

func (m *MockCatalogRepository) FeatureMatrix(ctx context.Context) ([]repositories.FeatureRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.FeatureRow), args.Error(1)
}

func (m *MockCatalogRepository) Popularity(ctx context.Context, ids []string) (map[string]*int, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]*int), args.Error(1)
}

func (m *MockCatalogRepository) AllTracks(ctx context.Context) ([]repositories.TrackRef, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.TrackRef), args.Error(1)
}

func (m *MockCatalogRepository) AllArtists(ctx context.Context) ([]repositories.ArtistRef, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.ArtistRef), args.Error(1)
}

func (m *MockCatalogRepository) SaveMany(ctx context.Context, songs []models.Song) error {
	args := m.Called(ctx, songs)
	return args.Error(0)
}

func (m *MockCatalogRepository) AlbumReleaseDate(ctx context.Context, albumName string) (string, error) {
	args := m.Called(ctx, albumName)
	return args.String(0), args.Error(1)
}

func (m *MockCatalogRepository) AlbumCountByArtistName(ctx context.Context, artist string) (int64, error) {
	args := m.Called(ctx, artist)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCatalogRepository) AlbumCountByArtistID(ctx context.Context, artistID string) (int64, error) {
	args := m.Called(ctx, artistID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCatalogRepository) AlbumForTrack(ctx context.Context, title string) (string, error) {
	args := m.Called(ctx, title)
	return args.String(0), args.Error(1)
}

func (m *MockCatalogRepository) TrackCountForAlbum(ctx context.Context, albumName string) (int64, error) {
	args := m.Called(ctx, albumName)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCatalogRepository) AlbumDurationSec(ctx context.Context, albumName string) (float64, error) {
	args := m.Called(ctx, albumName)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockCatalogRepository) MostPopularTrackByArtist(ctx context.Context, artist string) (*models.Song, error) {
	args := m.Called(ctx, artist)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Song), args.Error(1)
}

func (m *MockCatalogRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockSurfaceRepository is a mock implementation of SurfaceRepository for testing
type MockSurfaceRepository struct {
	mock.Mock
}

func (m *MockSurfaceRepository) LookupTrack(ctx context.Context, normalized string) ([]string, error) {
	args := m.Called(ctx, normalized)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockSurfaceRepository) LookupArtist(ctx context.Context, normalized string) (string, error) {
	args := m.Called(ctx, normalized)
	return args.String(0), args.Error(1)
}

func (m *MockSurfaceRepository) InsertTrackVariants(ctx context.Context, rows []repositories.TrackVariantRow) error {
	args := m.Called(ctx, rows)
	return args.Error(0)
}

func (m *MockSurfaceRepository) InsertArtistVariants(ctx context.Context, rows []repositories.ArtistVariantRow) error {
	args := m.Called(ctx, rows)
	return args.Error(0)
}

func (m *MockSurfaceRepository) DropAll(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSurfaceRepository) RemoveDuplicates(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockCache is a mock implementation of cache.Cache for testing
type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, expiration time.Duration) error {
	args := m.Called(ctx, key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockCache) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Close() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockCache) Health(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockClassifier is a mock implementation of nlu.Classifier for testing
type MockClassifier struct {
	mock.Mock
}

func (m *MockClassifier) Classify(ctx context.Context, text string) (nlu.Understanding, error) {
	args := m.Called(ctx, text)
	return args.Get(0).(nlu.Understanding), args.Error(1)
}

// MockNeighborSource is a mock implementation of similarity.NeighborSource for testing
type MockNeighborSource struct {
	mock.Mock
}

func (m *MockNeighborSource) Neighbors(ctx context.Context, trackID string, n int) ([]string, error) {
	args := m.Called(ctx, trackID, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}
