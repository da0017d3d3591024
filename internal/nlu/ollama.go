package nlu

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Classifier produces a structured understanding of free-form text.
type Classifier interface {
	Classify(ctx context.Context, text string) (Understanding, error)
}

const classifierPrompt = `You are an intent detection assistant for a playlist manager.
Identify the user's intent from: "add" (add a song), "delete" (remove a song),
"clear" (empty the playlist), "recommend" (suggest songs), "create" (build a
playlist from a description), or one of the catalog questions
"Q1" (when was album X released), "Q2" (how many albums has artist Y released),
"Q3" (which album features song X), "Q4" (how many songs does album X contain),
"Q5" (how long is album X), "Q6" (what is the most popular song by artist X).

Always return every entity, using an empty string (or empty array for
position) when not mentioned, and keep the user's capitalization:
{"intent": "...", "entities": {"song": "", "artist": "", "album": "",
"position": [], "description": ""}}

Return only the JSON object. User command: `

// OllamaClassifier asks an Ollama-compatible chat endpoint for the
// intent JSON.
type OllamaClassifier struct {
	client  *resty.Client
	baseURL string
	model   string
}

// NewOllamaClassifier creates a classifier talking to the given
// Ollama-compatible base URL with the given model name.
func NewOllamaClassifier(baseURL, model string) *OllamaClassifier {
	client := resty.New().
		SetTimeout(30 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(1 * time.Second).
		SetRetryMaxWaitTime(5 * time.Second)

	return &OllamaClassifier{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Format   string        `json:"format,omitempty"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
	Error   string      `json:"error,omitempty"`
}

// Classify sends the utterance to the model and decodes the intent
// JSON from its reply.
func (c *OllamaClassifier) Classify(ctx context.Context, text string) (Understanding, error) {
	request := chatRequest{
		Model:  c.model,
		Stream: false,
		Format: "json",
		Messages: []chatMessage{
			{Role: "user", Content: classifierPrompt + "'" + text + "'"},
		},
	}

	var response chatResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(request).
		SetResult(&response).
		Post(c.baseURL + "/api/chat")
	if err != nil {
		return Understanding{}, fmt.Errorf("classifier request failed: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return Understanding{}, fmt.Errorf("classifier returned status %d", resp.StatusCode())
	}
	if response.Error != "" {
		return Understanding{}, fmt.Errorf("classifier error: %s", response.Error)
	}

	content := strings.TrimSpace(response.Message.Content)
	if content == "" {
		return Understanding{}, fmt.Errorf("classifier returned empty response")
	}

	var wire struct {
		Intent   string   `json:"intent"`
		Entities Entities `json:"entities"`
	}
	if err := json.Unmarshal([]byte(content), &wire); err != nil {
		return Understanding{}, fmt.Errorf("classifier returned malformed intent JSON: %w", err)
	}

	return Understanding{
		Intent:   normalizeIntent(wire.Intent),
		Entities: wire.Entities,
	}, nil
}
