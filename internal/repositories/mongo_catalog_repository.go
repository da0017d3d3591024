package repositories

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mixtape/internal/models"
)

// mongoCatalogRepository implements CatalogRepository over the music
// collection.
type mongoCatalogRepository struct {
	collection *mongo.Collection
}

// NewMongoCatalogRepository creates a MongoDB-backed catalog repository
func NewMongoCatalogRepository(db *models.Database) CatalogRepository {
	return &mongoCatalogRepository{
		collection: db.DB.Collection(models.CatalogCollection),
	}
}

func (r *mongoCatalogRepository) FindExact(ctx context.Context, title, artist string) ([]models.Song, error) {
	filter := bson.M{"track_name": title}
	if artist != "" {
		filter["artist_0"] = artist
	}
	return r.findSongs(ctx, filter)
}

func (r *mongoCatalogRepository) FindByArtistSubstring(ctx context.Context, title, artist string) ([]models.Song, error) {
	filter := bson.M{
		"track_name": title,
		"artists":    primitive.Regex{Pattern: regexp.QuoteMeta(artist), Options: "i"},
	}
	return r.findSongs(ctx, filter)
}

func (r *mongoCatalogRepository) FindByTrackIDs(ctx context.Context, ids []string) ([]models.Song, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.findSongs(ctx, bson.M{"track_id": bson.M{"$in": ids}})
}

func (r *mongoCatalogRepository) FindByArtistID(ctx context.Context, artistID string) ([]models.Song, error) {
	return r.findSongs(ctx, bson.M{"artist_id": artistID})
}

func (r *mongoCatalogRepository) findSongs(ctx context.Context, filter bson.M) ([]models.Song, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer cursor.Close(ctx)

	var songs []models.Song
	for cursor.Next(ctx) {
		var song models.Song
		if err := cursor.Decode(&song); err != nil {
			slog.Error("Failed to decode catalog row", "error", err)
			continue
		}
		songs = append(songs, song)
	}

	return songs, cursor.Err()
}

// featureDoc mirrors FeatureColumns; keep the two in sync.
type featureDoc struct {
	TrackID      string   `bson:"track_id"`
	Danceability *float64 `bson:"danceability"`
	Energy       *float64 `bson:"energy"`
	Valence      *float64 `bson:"valence"`
	Acousticness *float64 `bson:"acousticness"`
	Instrumental *float64 `bson:"instrumentalness"`
	Liveness     *float64 `bson:"liveness"`
	Speechiness  *float64 `bson:"speechiness"`
	Tempo        *float64 `bson:"tempo"`
	Loudness     *float64 `bson:"loudness"`
	TrackPop     *float64 `bson:"track_popularity"`
	ArtistPop    *float64 `bson:"artist_popularity"`
	AlbumPop     *float64 `bson:"album_popularity"`
}

func (d *featureDoc) vector() []float64 {
	ptrs := []*float64{
		d.Danceability, d.Energy, d.Valence, d.Acousticness,
		d.Instrumental, d.Liveness, d.Speechiness, d.Tempo, d.Loudness,
		d.TrackPop, d.ArtistPop, d.AlbumPop,
	}
	vec := make([]float64, len(ptrs))
	for i, p := range ptrs {
		if p != nil {
			vec[i] = *p
		}
	}
	return vec
}

func (r *mongoCatalogRepository) FeatureMatrix(ctx context.Context) ([]FeatureRow, error) {
	projection := bson.M{"_id": 0, "track_id": 1}
	for _, col := range FeatureColumns {
		projection[col] = 1
	}

	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetProjection(projection))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feature matrix: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []FeatureRow
	for cursor.Next(ctx) {
		var doc featureDoc
		if err := cursor.Decode(&doc); err != nil {
			slog.Error("Failed to decode feature row", "error", err)
			continue
		}
		rows = append(rows, FeatureRow{TrackID: doc.TrackID, Features: doc.vector()})
	}

	return rows, cursor.Err()
}

func (r *mongoCatalogRepository) Popularity(ctx context.Context, ids []string) (map[string]*int, error) {
	result := make(map[string]*int, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	opts := options.Find().SetProjection(bson.M{"_id": 0, "track_id": 1, "track_popularity": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"track_id": bson.M{"$in": ids}}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch popularity: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var doc struct {
			TrackID  string `bson:"track_id"`
			TrackPop *int   `bson:"track_popularity"`
		}
		if err := cursor.Decode(&doc); err != nil {
			slog.Error("Failed to decode popularity row", "error", err)
			continue
		}
		result[doc.TrackID] = doc.TrackPop
	}

	return result, cursor.Err()
}

func (r *mongoCatalogRepository) AllTracks(ctx context.Context) ([]TrackRef, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 0, "track_id": 1, "track_name": 1})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracks: %w", err)
	}
	defer cursor.Close(ctx)

	var refs []TrackRef
	if err := cursor.All(ctx, &refs); err != nil {
		return nil, fmt.Errorf("failed to decode track refs: %w", err)
	}
	return refs, nil
}

func (r *mongoCatalogRepository) AllArtists(ctx context.Context) ([]ArtistRef, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 0, "artist_id": 1, "artist_0": 1})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list artists: %w", err)
	}
	defer cursor.Close(ctx)

	var refs []ArtistRef
	if err := cursor.All(ctx, &refs); err != nil {
		return nil, fmt.Errorf("failed to decode artist refs: %w", err)
	}
	return refs, nil
}

func (r *mongoCatalogRepository) SaveMany(ctx context.Context, songs []models.Song) error {
	if len(songs) == 0 {
		return nil
	}
	docs := make([]interface{}, len(songs))
	for i := range songs {
		docs[i] = songs[i]
	}
	_, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if err != nil {
		return fmt.Errorf("failed to insert catalog rows: %w", err)
	}
	return nil
}

func (r *mongoCatalogRepository) AlbumReleaseDate(ctx context.Context, albumName string) (string, error) {
	var doc struct {
		ReleaseDate string `bson:"release_date"`
	}
	opts := options.FindOne().SetProjection(bson.M{"_id": 0, "release_date": 1})
	err := r.collection.FindOne(ctx, bson.M{"album_name": albumName}, opts).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return "", nil
		}
		return "", fmt.Errorf("failed to fetch album release date: %w", err)
	}
	return doc.ReleaseDate, nil
}

func (r *mongoCatalogRepository) AlbumCountByArtistName(ctx context.Context, artist string) (int64, error) {
	return r.distinctAlbumCount(ctx, bson.M{"artist_0": artist})
}

func (r *mongoCatalogRepository) AlbumCountByArtistID(ctx context.Context, artistID string) (int64, error) {
	return r.distinctAlbumCount(ctx, bson.M{"artist_id": artistID})
}

func (r *mongoCatalogRepository) distinctAlbumCount(ctx context.Context, filter bson.M) (int64, error) {
	albums, err := r.collection.Distinct(ctx, "album_id", filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count albums: %w", err)
	}
	return int64(len(albums)), nil
}

func (r *mongoCatalogRepository) AlbumForTrack(ctx context.Context, title string) (string, error) {
	var doc struct {
		AlbumName string `bson:"album_name"`
	}
	opts := options.FindOne().SetProjection(bson.M{"_id": 0, "album_name": 1})
	err := r.collection.FindOne(ctx, bson.M{"track_name": title}, opts).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return "", nil
		}
		return "", fmt.Errorf("failed to fetch album for track: %w", err)
	}
	return doc.AlbumName, nil
}

func (r *mongoCatalogRepository) TrackCountForAlbum(ctx context.Context, albumName string) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"album_name": albumName})
	if err != nil {
		return 0, fmt.Errorf("failed to count album tracks: %w", err)
	}
	return count, nil
}

func (r *mongoCatalogRepository) AlbumDurationSec(ctx context.Context, albumName string) (float64, error) {
	pipeline := []bson.M{
		{"$match": bson.M{"album_name": albumName}},
		{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": "$duration_sec"}}},
	}
	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to sum album duration: %w", err)
	}
	defer cursor.Close(ctx)

	if cursor.Next(ctx) {
		var doc struct {
			Total float64 `bson:"total"`
		}
		if err := cursor.Decode(&doc); err != nil {
			return 0, fmt.Errorf("failed to decode album duration: %w", err)
		}
		return doc.Total, nil
	}
	return 0, cursor.Err()
}

func (r *mongoCatalogRepository) MostPopularTrackByArtist(ctx context.Context, artist string) (*models.Song, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "track_popularity", Value: -1}})
	var song models.Song
	err := r.collection.FindOne(ctx, bson.M{"artist_0": artist}, opts).Decode(&song)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch most popular track: %w", err)
	}
	return &song, nil
}

func (r *mongoCatalogRepository) Count(ctx context.Context) (int64, error) {
	return r.collection.CountDocuments(ctx, bson.M{})
}
