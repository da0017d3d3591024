package nlu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUtteranceCommands(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		intent Intent
		song   string
		artist string
	}{
		{"add with artist", "/add Yesterday by The Beatles", IntentAdd, "Yesterday", "The Beatles"},
		{"add title only", "/add Yesterday", IntentAdd, "Yesterday", ""},
		{"delete", "/delete Hurt by Johnny Cash", IntentDelete, "Hurt", "Johnny Cash"},
		{"remove alias", "/remove Hurt", IntentDelete, "Hurt", ""},
		{"clear", "/clear", IntentClear, "", ""},
		{"recommend", "/recommend", IntentRecommend, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, ok := ParseUtterance(tt.input)
			require.True(t, ok)
			assert.Equal(t, tt.intent, u.Intent)
			assert.Equal(t, tt.song, u.Entities.Song)
			assert.Equal(t, tt.artist, u.Entities.Artist)
		})
	}
}

func TestParseUtteranceQuestions(t *testing.T) {
	tests := []struct {
		input  string
		intent Intent
		check  func(t *testing.T, e Entities)
	}{
		{
			"When was album Thriller released?", IntentAlbumReleaseDate,
			func(t *testing.T, e Entities) { assert.Equal(t, "Thriller", e.Album) },
		},
		{
			"How many albums has artist Queen released?", IntentArtistAlbumCount,
			func(t *testing.T, e Entities) { assert.Equal(t, "Queen", e.Artist) },
		},
		{
			"Which album features song Beat It?", IntentAlbumForSong,
			func(t *testing.T, e Entities) { assert.Equal(t, "Beat It", e.Song) },
		},
		{
			"How many songs does album Thriller contain?", IntentAlbumTrackCount,
			func(t *testing.T, e Entities) { assert.Equal(t, "Thriller", e.Album) },
		},
		{
			"How long is album Thriller?", IntentAlbumDuration,
			func(t *testing.T, e Entities) { assert.Equal(t, "Thriller", e.Album) },
		},
		{
			"What is the most popular song by artist Queen?", IntentMostPopularSong,
			func(t *testing.T, e Entities) { assert.Equal(t, "Queen", e.Artist) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			u, ok := ParseUtterance(tt.input)
			require.True(t, ok)
			assert.Equal(t, tt.intent, u.Intent)
			tt.check(t, u.Entities)
		})
	}
}

func TestParseUtteranceFreeTextNeedsClassifier(t *testing.T) {
	_, ok := ParseUtterance("put on something upbeat for a road trip")
	assert.False(t, ok)
}

func TestParseUtteranceBareCommandNeedsArgs(t *testing.T) {
	_, ok := ParseUtterance("/add")
	assert.False(t, ok)
}

func TestSplitTitleArtist(t *testing.T) {
	title, artist := SplitTitleArtist("Yesterday by The Beatles")
	assert.Equal(t, "Yesterday", title)
	assert.Equal(t, "The Beatles", artist)

	title, artist = SplitTitleArtist("Yesterday")
	assert.Equal(t, "Yesterday", title)
	assert.Empty(t, artist)
}

func TestSplitArtists(t *testing.T) {
	assert.Equal(t, []string{"Queen", "David Bowie"}, SplitArtists("Queen, David Bowie"))
	assert.Nil(t, SplitArtists("  "))
}

func TestNormalizeIntent(t *testing.T) {
	assert.Equal(t, IntentAdd, normalizeIntent("add"))
	assert.Equal(t, IntentAlbumDuration, normalizeIntent("Q5"))
	assert.Equal(t, IntentUnknown, normalizeIntent("make me a sandwich"))
}
