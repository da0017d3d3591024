package models

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names. The catalog is read-only at runtime; the surface
// dictionary collections are written only by the offline builder.
const (
	CatalogCollection       = "music"
	TrackSurfaceCollection  = "transformed_tracks"
	ArtistSurfaceCollection = "transformed_artists"
)

// Database represents the database connection
type Database struct {
	Client *mongo.Client
	DB     *mongo.Database
}

// NewDatabase creates a new database connection
func NewDatabase(ctx context.Context, mongoURL, dbName string) (*Database, error) {
	clientOptions := options.Client().
		ApplyURI(mongoURL).
		SetMaxPoolSize(20).
		SetMinPoolSize(5).
		SetMaxConnIdleTime(30 * time.Second).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, err
	}

	// Ping the database to verify connection
	err = client.Ping(ctx, nil)
	if err != nil {
		return nil, err
	}

	db := client.Database(dbName)

	return &Database{
		Client: client,
		DB:     db,
	}, nil
}

// Close closes the database connection
func (d *Database) Close(ctx context.Context) error {
	return d.Client.Disconnect(ctx)
}

// CreateIndexes creates the indexes the resolver and surface
// dictionary lookups depend on.
func (d *Database) CreateIndexes(ctx context.Context) error {
	catalog := d.DB.Collection(CatalogCollection)
	catalogIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "track_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "track_name", Value: 1}, {Key: "artist_0", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "artist_id", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "album_name", Value: 1}},
		},
	}
	if _, err := catalog.Indexes().CreateMany(ctx, catalogIndexes); err != nil {
		return err
	}

	tracks := d.DB.Collection(TrackSurfaceCollection)
	if _, err := tracks.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "transformed_track", Value: 1}},
	}); err != nil {
		return err
	}

	artists := d.DB.Collection(ArtistSurfaceCollection)
	_, err := artists.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "transformed_artist", Value: 1}},
	})
	return err
}
