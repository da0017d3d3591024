package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testSong(trackID, name, artist string) *Song {
	return &Song{
		TrackID:   trackID,
		TrackName: name,
		Artists:   artist,
		Artist0:   artist,
	}
}

func TestPlaylistAddRejectsDuplicates(t *testing.T) {
	p := NewPlaylist("test")
	song := testSong("t1", "Yesterday", "The Beatles")

	assert.True(t, p.Add(song))
	assert.False(t, p.Add(testSong("t1", "Yesterday", "The Beatles")))
	assert.Equal(t, 1, p.Len())
}

func TestPlaylistAddDistinguishesByAnyAttribute(t *testing.T) {
	p := NewPlaylist("test")

	// Same title, different artist: a different song.
	assert.True(t, p.Add(testSong("t1", "Hurt", "Nine Inch Nails")))
	assert.True(t, p.Add(testSong("t2", "Hurt", "Johnny Cash")))
	assert.Equal(t, 2, p.Len())
}

func TestPlaylistRemoveByName(t *testing.T) {
	p := NewPlaylist("test")
	p.Add(testSong("t1", "Yesterday", "The Beatles"))
	p.Add(testSong("t2", "Help!", "The Beatles"))

	assert.True(t, p.RemoveByName("yesterday", nil))
	assert.Equal(t, 1, p.Len())
	assert.False(t, p.RemoveByName("Yesterday", nil))
}

func TestPlaylistRemoveByNameWithArtists(t *testing.T) {
	p := NewPlaylist("test")
	p.Add(testSong("t1", "Hurt", "Nine Inch Nails"))
	p.Add(testSong("t2", "Hurt", "Johnny Cash"))

	assert.True(t, p.RemoveByName("Hurt", []string{"Johnny Cash"}))
	assert.Equal(t, 1, p.Len())
	assert.Equal(t, "t1", p.Songs[0].TrackID)
}

func TestPlaylistRemoveByPositions(t *testing.T) {
	p := NewPlaylist("test")
	p.Add(testSong("t1", "One", "A"))
	p.Add(testSong("t2", "Two", "B"))
	p.Add(testSong("t3", "Three", "C"))

	removed := p.RemoveByPositions([]int{0, 2, 99})
	assert.Equal(t, 2, removed)
	assert.Equal(t, []string{"t2"}, p.TrackIDs())
}

func TestPlaylistFindIsCaseInsensitive(t *testing.T) {
	p := NewPlaylist("test")
	p.Add(testSong("t1", "Bohemian Rhapsody", "Queen"))

	assert.NotNil(t, p.Find("bohemian rhapsody", nil))
	assert.NotNil(t, p.Find("Bohemian Rhapsody", []string{"queen"}))
	assert.Nil(t, p.Find("Bohemian Rhapsody", []string{"ABBA"}))
}

func TestPlaylistSortByPopularity(t *testing.T) {
	low, high := 10, 90

	a := testSong("t1", "A", "X")
	a.TrackPop = &low
	b := testSong("t2", "B", "X")
	b.TrackPop = &high
	c := testSong("t3", "C", "X") // no popularity, sorts last

	p := NewPlaylist("test")
	p.Add(c)
	p.Add(a)
	p.Add(b)
	p.SortByPopularity()

	assert.Equal(t, []string{"t2", "t1", "t3"}, p.TrackIDs())
}

func TestPlaylistClear(t *testing.T) {
	p := NewPlaylist("test")
	p.Add(testSong("t1", "One", "A"))
	p.Clear()
	assert.Zero(t, p.Len())
}
