package surface

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveParentheses(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"fully wrapped strips outer pair only", "(Live)", "Live"},
		{"inner parenthetical removed", "Thriller (Remix)", "Thriller"},
		{"multiple parentheticals removed", "Song (feat. X) (Live)", "Song"},
		{"no parentheses untouched", "Plain Title", "Plain Title"},
		{"wrapped with inner pair keeps inner", "(Intro (Reprise))", "Intro (Reprise)"},
		{"leading parenthetical trims left", "(Acoustic) Song", "Song"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RemoveParentheses(tt.input))
		})
	}
}

func TestRemovePunctuation(t *testing.T) {
	assert.Equal(t, "Dont Stop Me Now", RemovePunctuation("Don't Stop Me Now."))
	assert.Equal(t, "Hello Goodbye", RemovePunctuation(`Hello, "Goodbye"`))
	// Other punctuation survives.
	assert.Equal(t, "What?!", RemovePunctuation("What?!"))
}

func TestRemoveAfterSeparator(t *testing.T) {
	assert.Equal(t, "Song Title", RemoveAfterSeparator("Song Title - 2011 Remaster"))
	assert.Equal(t, "No Separator", RemoveAfterSeparator("No Separator"))
	// Hyphen without surrounding spaces is not a separator.
	assert.Equal(t, "Rock-n-Roll", RemoveAfterSeparator("Rock-n-Roll"))
}

func TestRemoveThePrefix(t *testing.T) {
	assert.Equal(t, "beatles", RemoveThePrefix("the beatles"))
	assert.Equal(t, "Beatles", RemoveThePrefix("The Beatles"))
	assert.Equal(t, "theory of a deadman", RemoveThePrefix("theory of a deadman"))
}

func TestTrackVariants(t *testing.T) {
	variants := TrackVariants("Don't Stop (Live) - Remastered")

	assert.Len(t, variants, 8)
	assert.Contains(t, variants, "don't stop (live) - remastered")
	assert.Contains(t, variants, "dont stop (live) - remastered")
	assert.Contains(t, variants, "don't stop (live)")
	assert.Contains(t, variants, "dont stop (live)")
}

func TestTrackVariantsIdempotentOnPlainTitle(t *testing.T) {
	// A plain lowercase title maps onto itself in every variant slot.
	variants := TrackVariants("bohemian rhapsody")
	for _, v := range variants {
		assert.Equal(t, "bohemian rhapsody", v)
	}
}

func TestArtistVariants(t *testing.T) {
	variants := ArtistVariants("The B-52's")

	assert.Len(t, variants, 4)
	assert.Equal(t, "the b-52's", variants[0])
	assert.Equal(t, "the b-52s", variants[1])
	assert.Equal(t, "b-52's", variants[2])
	assert.Equal(t, "b-52s", variants[3])
}
