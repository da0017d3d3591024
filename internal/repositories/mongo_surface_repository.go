package repositories

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"mixtape/internal/models"
)

// mongoSurfaceRepository implements SurfaceRepository over the
// transformed_tracks and transformed_artists collections.
type mongoSurfaceRepository struct {
	tracks  *mongo.Collection
	artists *mongo.Collection
}

// NewMongoSurfaceRepository creates a MongoDB-backed surface dictionary
func NewMongoSurfaceRepository(db *models.Database) SurfaceRepository {
	return &mongoSurfaceRepository{
		tracks:  db.DB.Collection(models.TrackSurfaceCollection),
		artists: db.DB.Collection(models.ArtistSurfaceCollection),
	}
}

func (r *mongoSurfaceRepository) LookupTrack(ctx context.Context, normalized string) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 0, "track_id": 1})
	cursor, err := r.tracks.Find(ctx, bson.M{"transformed_track": normalized}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query track surface dictionary: %w", err)
	}
	defer cursor.Close(ctx)

	var ids []string
	seen := make(map[string]bool)
	for cursor.Next(ctx) {
		var doc struct {
			TrackID string `bson:"track_id"`
		}
		if err := cursor.Decode(&doc); err != nil {
			slog.Error("Failed to decode surface dictionary row", "error", err)
			continue
		}
		if !seen[doc.TrackID] {
			seen[doc.TrackID] = true
			ids = append(ids, doc.TrackID)
		}
	}

	return ids, cursor.Err()
}

func (r *mongoSurfaceRepository) LookupArtist(ctx context.Context, normalized string) (string, error) {
	var doc struct {
		ArtistID string `bson:"artist_id"`
	}
	opts := options.FindOne().SetProjection(bson.M{"_id": 0, "artist_id": 1})
	err := r.artists.FindOne(ctx, bson.M{"transformed_artist": normalized}, opts).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return "", nil
		}
		return "", fmt.Errorf("failed to query artist surface dictionary: %w", err)
	}
	return doc.ArtistID, nil
}

func (r *mongoSurfaceRepository) InsertTrackVariants(ctx context.Context, rows []TrackVariantRow) error {
	if len(rows) == 0 {
		return nil
	}
	docs := make([]interface{}, len(rows))
	for i := range rows {
		docs[i] = rows[i]
	}
	if _, err := r.tracks.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false)); err != nil {
		return fmt.Errorf("failed to insert track variants: %w", err)
	}
	return nil
}

func (r *mongoSurfaceRepository) InsertArtistVariants(ctx context.Context, rows []ArtistVariantRow) error {
	if len(rows) == 0 {
		return nil
	}
	docs := make([]interface{}, len(rows))
	for i := range rows {
		docs[i] = rows[i]
	}
	if _, err := r.artists.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false)); err != nil {
		return fmt.Errorf("failed to insert artist variants: %w", err)
	}
	return nil
}

func (r *mongoSurfaceRepository) DropAll(ctx context.Context) error {
	if err := r.tracks.Drop(ctx); err != nil {
		return fmt.Errorf("failed to drop track surface dictionary: %w", err)
	}
	if err := r.artists.Drop(ctx); err != nil {
		return fmt.Errorf("failed to drop artist surface dictionary: %w", err)
	}
	return nil
}

// RemoveDuplicates keeps exactly one document per (id, original,
// transformed) triple in each dictionary collection.
func (r *mongoSurfaceRepository) RemoveDuplicates(ctx context.Context) (int64, error) {
	trackRemoved, err := removeDuplicateVariants(ctx, r.tracks,
		bson.D{{Key: "track_id", Value: "$track_id"}, {Key: "original", Value: "$original_track"}, {Key: "transformed", Value: "$transformed_track"}})
	if err != nil {
		return 0, err
	}
	artistRemoved, err := removeDuplicateVariants(ctx, r.artists,
		bson.D{{Key: "artist_id", Value: "$artist_id"}, {Key: "original", Value: "$original_artist"}, {Key: "transformed", Value: "$transformed_artist"}})
	if err != nil {
		return trackRemoved, err
	}
	return trackRemoved + artistRemoved, nil
}

func removeDuplicateVariants(ctx context.Context, coll *mongo.Collection, groupKey bson.D) (int64, error) {
	pipeline := []bson.M{
		{"$group": bson.M{
			"_id":  groupKey,
			"ids":  bson.M{"$push": "$_id"},
			"hits": bson.M{"$sum": 1},
		}},
		{"$match": bson.M{"hits": bson.M{"$gt": 1}}},
	}

	cursor, err := coll.Aggregate(ctx, pipeline)
	if err != nil {
		return 0, fmt.Errorf("failed to find duplicate variants: %w", err)
	}
	defer cursor.Close(ctx)

	var extras []interface{}
	for cursor.Next(ctx) {
		var group struct {
			IDs []interface{} `bson:"ids"`
		}
		if err := cursor.Decode(&group); err != nil {
			return 0, fmt.Errorf("failed to decode duplicate group: %w", err)
		}
		// Keep the first document, delete the rest.
		extras = append(extras, group.IDs[1:]...)
	}
	if err := cursor.Err(); err != nil {
		return 0, err
	}
	if len(extras) == 0 {
		return 0, nil
	}

	result, err := coll.DeleteMany(ctx, bson.M{"_id": bson.M{"$in": extras}})
	if err != nil {
		return 0, fmt.Errorf("failed to delete duplicate variants: %w", err)
	}
	return result.DeletedCount, nil
}
