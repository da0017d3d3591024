package surface_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"mixtape/internal/repositories"
	"mixtape/internal/surface"
	"mixtape/internal/testutil"
)

func TestBuilderEmitsAllVariants(t *testing.T) {
	catalog := new(testutil.MockCatalogRepository)
	dict := new(testutil.MockSurfaceRepository)

	catalog.On("AllTracks", mock.Anything).Return([]repositories.TrackRef{
		{TrackID: "t1", TrackName: "Thriller (Remix)"},
		{TrackID: "t2", TrackName: ""}, // skipped
	}, nil)
	catalog.On("AllArtists", mock.Anything).Return([]repositories.ArtistRef{
		{ArtistID: "a1", Artist: "The Beatles"},
	}, nil)

	dict.On("DropAll", mock.Anything).Return(nil)
	dict.On("InsertTrackVariants", mock.Anything, mock.MatchedBy(func(rows []repositories.TrackVariantRow) bool {
		if len(rows) != 8 {
			return false
		}
		for _, row := range rows {
			if row.TrackID != "t1" || row.Original != "Thriller (Remix)" {
				return false
			}
		}
		return true
	})).Return(nil)
	dict.On("InsertArtistVariants", mock.Anything, mock.MatchedBy(func(rows []repositories.ArtistVariantRow) bool {
		return len(rows) == 4 && rows[0].ArtistID == "a1"
	})).Return(nil)
	dict.On("RemoveDuplicates", mock.Anything).Return(int64(3), nil)

	builder := surface.NewBuilder(catalog, dict)
	require.NoError(t, builder.Build(context.Background()))

	dict.AssertExpectations(t)
	catalog.AssertExpectations(t)
}

func TestBuilderStopsWhenResetFails(t *testing.T) {
	catalog := new(testutil.MockCatalogRepository)
	dict := new(testutil.MockSurfaceRepository)

	dict.On("DropAll", mock.Anything).Return(errors.New("connection lost"))

	builder := surface.NewBuilder(catalog, dict)
	err := builder.Build(context.Background())

	assert.Error(t, err)
	catalog.AssertNotCalled(t, "AllTracks", mock.Anything)
}
