package main

import (
	"context"
	"encoding/csv"
	"flag"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"mixtape/internal/config"
	"mixtape/internal/enrich"
	"mixtape/internal/models"
	"mixtape/internal/repositories"
)

const batchSize = 500

func main() {
	// Load .env file for local development
	_ = godotenv.Load()

	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	csvPath := flag.String("csv", "", "path to the catalog CSV file")
	enrichFeatures := flag.Bool("enrich", false, "backfill missing audio features from Spotify")
	flag.Parse()

	if *csvPath == "" {
		slog.Error("Missing required -csv flag")
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	// Initialize database
	db, err := models.NewDatabase(ctx, cfg.MongodbURL, cfg.MongoDatabase)
	if err != nil {
		slog.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close(ctx)

	if err := db.CreateIndexes(ctx); err != nil {
		slog.Error("Failed to create indexes", "error", err)
		os.Exit(1)
	}

	catalogRepo := repositories.NewMongoCatalogRepository(db)

	var spotify *enrich.SpotifyClient
	if *enrichFeatures {
		if cfg.SpotifyClientID == "" || cfg.SpotifyClientSecret == "" {
			slog.Error("Spotify credentials required for -enrich")
			os.Exit(1)
		}
		spotify = enrich.NewSpotifyClient(cfg.SpotifyClientID, cfg.SpotifyClientSecret)
	}

	file, err := os.Open(*csvPath)
	if err != nil {
		slog.Error("Failed to open CSV file", "path", *csvPath, "error", err)
		os.Exit(1)
	}
	defer file.Close()

	imported, err := importCatalog(ctx, file, catalogRepo, spotify)
	if err != nil {
		slog.Error("Catalog import failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Catalog import completed", "imported", imported)
}

// importCatalog streams CSV rows into the catalog in batches. When
// spotify is non-nil, rows with no audio features get them backfilled
// before insertion.
func importCatalog(ctx context.Context, r io.Reader, catalog repositories.CatalogRepository, spotify *enrich.SpotifyClient) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return 0, err
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}

	var (
		batch    []models.Song
		imported int
	)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			slog.Error("Skipping malformed CSV row", "error", err)
			continue
		}

		song := songFromRecord(cols, record)
		if song.TrackID == "" || song.TrackName == "" {
			continue
		}

		if spotify != nil && song.Danceability == nil {
			backfillFeatures(ctx, spotify, &song)
		}

		batch = append(batch, song)
		if len(batch) >= batchSize {
			if err := catalog.SaveMany(ctx, batch); err != nil {
				return imported, err
			}
			imported += len(batch)
			slog.Info("Imported batch", "total", imported)
			batch = batch[:0]
		}
	}

	if len(batch) > 0 {
		if err := catalog.SaveMany(ctx, batch); err != nil {
			return imported, err
		}
		imported += len(batch)
	}
	return imported, nil
}

func backfillFeatures(ctx context.Context, spotify *enrich.SpotifyClient, song *models.Song) {
	features, err := spotify.AudioFeatures(ctx, song.TrackID)
	if err != nil {
		slog.Error("Feature enrichment failed", "track_id", song.TrackID, "error", err)
		return
	}
	if features == nil {
		return
	}

	song.Danceability = &features.Danceability
	song.Energy = &features.Energy
	song.Valence = &features.Valence
	song.Acousticness = &features.Acousticness
	song.Instrumental = &features.Instrumentalness
	song.Liveness = &features.Liveness
	song.Speechiness = &features.Speechiness
	song.Tempo = &features.Tempo
	song.Loudness = &features.Loudness
	song.Key = &features.Key
	song.Mode = &features.Mode
	song.TimeSignature = &features.TimeSignature
	song.DurationMs = &features.DurationMs
}

func songFromRecord(cols map[string]int, record []string) models.Song {
	get := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}
	getInt := func(name string) *int {
		v := get(name)
		if v == "" {
			return nil
		}
		// Popularity-style columns sometimes arrive as floats.
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil
		}
		n := int(f)
		return &n
	}
	getFloat := func(name string) *float64 {
		v := get(name)
		if v == "" {
			return nil
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil
		}
		return &f
	}
	getBool := func(name string) *bool {
		v := strings.ToLower(get(name))
		if v == "" {
			return nil
		}
		b := v == "true" || v == "1"
		return &b
	}

	return models.Song{
		AlbumID:         get("album_id"),
		AlbumName:       get("album_name"),
		AlbumPopularity: getInt("album_popularity"),
		AlbumType:       get("album_type"),
		Artists:         get("artists"),
		Artist0:         get("artist_0"),
		Artist1:         get("artist_1"),
		Artist2:         get("artist_2"),
		Artist3:         get("artist_3"),
		Artist4:         get("artist_4"),
		ArtistID:        get("artist_id"),
		DurationSec:     getFloat("duration_sec"),
		Label:           get("label"),
		ReleaseDate:     get("release_date"),
		TotalTracks:     getInt("total_tracks"),
		TrackID:         get("track_id"),
		TrackName:       get("track_name"),
		TrackNumber:     getInt("track_number"),
		ArtistGenres:    get("artist_genres"),
		ArtistPop:       getInt("artist_popularity"),
		Followers:       getFloat("followers"),
		Name:            get("name"),
		Genre0:          get("genre_0"),
		Genre1:          get("genre_1"),
		Genre2:          get("genre_2"),
		Genre3:          get("genre_3"),
		Genre4:          get("genre_4"),
		Acousticness:    getFloat("acousticness"),
		AnalysisURL:     get("analysis_url"),
		Danceability:    getFloat("danceability"),
		DurationMs:      getFloat("duration_ms"),
		Energy:          getFloat("energy"),
		Instrumental:    getFloat("instrumentalness"),
		Key:             getInt("key"),
		Liveness:        getFloat("liveness"),
		Loudness:        getFloat("loudness"),
		Mode:            getInt("mode"),
		Speechiness:     getFloat("speechiness"),
		Tempo:           getFloat("tempo"),
		TimeSignature:   getInt("time_signature"),
		TrackHref:       get("track_href"),
		TrackType:       get("track_type"),
		URI:             get("uri"),
		Valence:         getFloat("valence"),
		Explicit:        getBool("explicit"),
		TrackPop:        getInt("track_popularity"),
		ReleaseYear:     getInt("release_year"),
		ReleaseMonth:    getInt("release_month"),
		RN:              getInt("rn"),
	}
}
