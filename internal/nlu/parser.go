package nlu

import (
	"regexp"
	"strings"
)

// Question patterns handled without the language model.
var (
	albumReleasedPattern = regexp.MustCompile(`When was album (.+?) released\?`)
	artistAlbumsPattern  = regexp.MustCompile(`How many albums has artist (.+?) released\?`)
	albumForSongPattern  = regexp.MustCompile(`Which album features song (.+?)\?`)
	albumSongsPattern    = regexp.MustCompile(`How many songs does album (.+?) contain\?`)
	albumDurationPattern = regexp.MustCompile(`How long is album (.+?)\?`)
	mostPopularPattern   = regexp.MustCompile(`What is the most popular song by artist (.+?)\?`)
)

// ParseUtterance recognizes slash-commands and the fixed question
// forms. It reports false when the utterance needs the language model.
func ParseUtterance(text string) (Understanding, bool) {
	trimmed := strings.TrimSpace(text)

	if strings.HasPrefix(trimmed, "/") {
		return parseCommand(trimmed)
	}

	patterns := []struct {
		re     *regexp.Regexp
		intent Intent
		assign func(*Entities, string)
	}{
		{albumReleasedPattern, IntentAlbumReleaseDate, func(e *Entities, v string) { e.Album = v }},
		{artistAlbumsPattern, IntentArtistAlbumCount, func(e *Entities, v string) { e.Artist = v }},
		{albumForSongPattern, IntentAlbumForSong, func(e *Entities, v string) { e.Song = v }},
		{albumSongsPattern, IntentAlbumTrackCount, func(e *Entities, v string) { e.Album = v }},
		{albumDurationPattern, IntentAlbumDuration, func(e *Entities, v string) { e.Album = v }},
		{mostPopularPattern, IntentMostPopularSong, func(e *Entities, v string) { e.Artist = v }},
	}
	for _, p := range patterns {
		if m := p.re.FindStringSubmatch(trimmed); m != nil {
			u := Understanding{Intent: p.intent}
			p.assign(&u.Entities, m[1])
			return u, true
		}
	}

	return Understanding{Intent: IntentUnknown}, false
}

func parseCommand(text string) (Understanding, bool) {
	command, args, _ := strings.Cut(text, " ")
	args = strings.TrimSpace(args)

	switch strings.ToLower(command) {
	case "/add":
		if args == "" {
			return Understanding{Intent: IntentUnknown}, false
		}
		title, artist := SplitTitleArtist(args)
		return Understanding{
			Intent:   IntentAdd,
			Entities: Entities{Song: title, Artist: artist},
		}, true
	case "/delete", "/remove":
		if args == "" {
			return Understanding{Intent: IntentUnknown}, false
		}
		title, artist := SplitTitleArtist(args)
		return Understanding{
			Intent:   IntentDelete,
			Entities: Entities{Song: title, Artist: artist},
		}, true
	case "/clear":
		return Understanding{Intent: IntentClear}, true
	case "/recommend":
		return Understanding{Intent: IntentRecommend}, true
	}

	return Understanding{Intent: IntentUnknown}, false
}

// SplitTitleArtist splits "Title by Artist" into its parts. The artist
// is empty when no " by " separator is present.
func SplitTitleArtist(s string) (title, artist string) {
	title, artist, found := strings.Cut(s, " by ")
	title = strings.TrimSpace(title)
	if !found {
		return title, ""
	}
	return title, strings.TrimSpace(artist)
}

// SplitArtists splits a comma-separated artist list.
func SplitArtists(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	artists := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			artists = append(artists, trimmed)
		}
	}
	return artists
}
