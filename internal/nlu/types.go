// Package nlu turns user utterances into structured intents, either by
// matching slash-commands and question patterns directly or by asking
// an external language model. The model is an opaque collaborator: the
// only contract is the intent/entities JSON schema below.
package nlu

// Intent identifies what the user asked for. The string values are the
// wire names used in the classifier's JSON contract.
type Intent string

const (
	IntentAdd       Intent = "add"
	IntentDelete    Intent = "delete"
	IntentClear     Intent = "clear"
	IntentRecommend Intent = "recommend"
	IntentCreate    Intent = "create"

	// Catalog questions.
	IntentAlbumReleaseDate Intent = "Q1" // When was album X released?
	IntentArtistAlbumCount Intent = "Q2" // How many albums has artist Y released?
	IntentAlbumForSong     Intent = "Q3" // Which album features song X?
	IntentAlbumTrackCount  Intent = "Q4" // How many songs does album X contain?
	IntentAlbumDuration    Intent = "Q5" // How long is album X?
	IntentMostPopularSong  Intent = "Q6" // What is the most popular song by artist X?

	IntentUnknown Intent = "unknown"
)

// Entities carries everything extractable from an utterance. Fields
// not mentioned by the user stay empty.
type Entities struct {
	Song        string `json:"song"`
	Artist      string `json:"artist"`
	Album       string `json:"album"`
	Position    []int  `json:"position"`
	Description string `json:"description"`
}

// Understanding is the classifier output consumed by the dialogue
// layer.
type Understanding struct {
	Intent   Intent   `json:"intent"`
	Entities Entities `json:"entities"`
}

var knownIntents = map[Intent]bool{
	IntentAdd: true, IntentDelete: true, IntentClear: true,
	IntentRecommend: true, IntentCreate: true,
	IntentAlbumReleaseDate: true, IntentArtistAlbumCount: true,
	IntentAlbumForSong: true, IntentAlbumTrackCount: true,
	IntentAlbumDuration: true, IntentMostPopularSong: true,
}

// normalizeIntent maps arbitrary classifier output onto a known
// intent, defaulting to unknown.
func normalizeIntent(raw string) Intent {
	intent := Intent(raw)
	if knownIntents[intent] {
		return intent
	}
	return IntentUnknown
}
