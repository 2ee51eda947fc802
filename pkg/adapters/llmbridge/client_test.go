package llmbridge_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fabulark/fabula/pkg/adapters/llmbridge"
	"github.com/fabulark/fabula/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_SingleTextResponse(t *testing.T) {
	var gotPath string
	var gotBody map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode("Mist on the water.")
	}))
	defer srv.Close()

	client := llmbridge.New(srv.URL)
	texts, err := client.Generate(context.Background(), ports.GenerationRequest{
		Model:       "mistral",
		Prompt:      "default",
		StoryTitle:  "The Expedition",
		ScenePrompt: "the ship departs",
		Characters:  []string{"Ada"},
	})
	require.NoError(t, err)
	require.Len(t, texts, 1)
	assert.Equal(t, "Mist on the water.", texts[0].Content)
	assert.Empty(t, texts[0].Label)

	assert.Equal(t, "/generate/mistral/default", gotPath)
	assert.Equal(t, "The Expedition", gotBody["title"])
	assert.Equal(t, "the ship departs", gotBody["prompt"])
}

func TestClient_BatchResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode([]map[string]string{
			{"label": "yes", "content": "You board."},
			{"label": "no", "content": "You stay ashore."},
		})
	}))
	defer srv.Close()

	texts, err := llmbridge.New(srv.URL).Generate(context.Background(), ports.GenerationRequest{
		Model: "m", Prompt: "p",
	})
	require.NoError(t, err)
	require.Len(t, texts, 2)
	assert.Equal(t, "yes", texts[0].Label)
	assert.Equal(t, "You stay ashore.", texts[1].Content)
}

func TestClient_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := llmbridge.New(srv.URL).Generate(context.Background(), ports.GenerationRequest{Model: "m", Prompt: "p"})
	assert.ErrorIs(t, err, llmbridge.ErrGeneration)
}

func TestClient_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	_, err := llmbridge.New(srv.URL).Generate(context.Background(), ports.GenerationRequest{Model: "m", Prompt: "p"})
	assert.ErrorIs(t, err, llmbridge.ErrGeneration)
}

func TestClient_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := llmbridge.New(srv.URL).Generate(context.Background(), ports.GenerationRequest{Model: "m", Prompt: "p"})
	assert.ErrorIs(t, err, llmbridge.ErrGeneration)
}

func TestClient_PathEscaping(t *testing.T) {
	var gotEscaped string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotEscaped = r.URL.EscapedPath()
		_ = json.NewEncoder(w).Encode("ok")
	}))
	defer srv.Close()

	_, err := llmbridge.New(srv.URL).Generate(context.Background(), ports.GenerationRequest{
		Model: "m", Prompt: "long prompt",
	})
	require.NoError(t, err)
	assert.Equal(t, "/generate/m/long%20prompt", gotEscaped)
}
