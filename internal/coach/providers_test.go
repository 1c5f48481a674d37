package coach

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiProviderGenerate(t *testing.T) {
	var gotPath, gotKey string
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-goog-api-key")
		b, _ := io.ReadAll(r.Body)
		json.Unmarshal(b, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"candidates":[{"content":{"parts":[{"text":"oss"}]}}]}`)
	}))
	defer srv.Close()

	p := NewGeminiProvider(srv.URL, "secret", "test-model", time.Second)
	text, err := p.Generate(context.Background(), GenerateRequest{
		System:    "persona",
		Prompt:    "hello",
		JSONArray: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "oss", text)
	assert.Equal(t, "/v1beta/models/test-model:generateContent", gotPath)
	assert.Equal(t, "secret", gotKey)

	require.Contains(t, gotBody, "system_instruction")
	genCfg, ok := gotBody["generationConfig"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "application/json", genCfg["responseMimeType"])
}

func TestGeminiProviderErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"quota"}`, http.StatusTooManyRequests)
	}))
	defer srv.Close()

	p := NewGeminiProvider(srv.URL, "k", "m", time.Second)
	_, err := p.Generate(context.Background(), GenerateRequest{Prompt: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")

	// Empty candidate list is an error, not empty text.
	srv2 := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"candidates":[]}`)
	}))
	defer srv2.Close()

	p2 := NewGeminiProvider(srv2.URL, "k", "m", time.Second)
	_, err = p2.Generate(context.Background(), GenerateRequest{Prompt: "x"})
	require.Error(t, err)
}

func TestOllamaProviderGenerate(t *testing.T) {
	var gotBody map[string]interface{}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/generate", r.URL.Path)
		b, _ := io.ReadAll(r.Body)
		json.Unmarshal(b, &gotBody)
		io.WriteString(w, `{"response":"drill the underhook"}`)
	}))
	defer srv.Close()

	p := NewOllamaProvider(srv.URL, "test-model", time.Second)
	text, err := p.Generate(context.Background(), GenerateRequest{System: "persona", Prompt: "hi", JSONArray: true})
	require.NoError(t, err)
	assert.Equal(t, "drill the underhook", text)

	assert.Equal(t, "test-model", gotBody["model"])
	assert.Equal(t, "persona", gotBody["system"])
	assert.Equal(t, "json", gotBody["format"])
	assert.Equal(t, false, gotBody["stream"])
}

func TestOllamaProviderTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused

	p := NewOllamaProvider(srv.URL, "m", time.Second)
	_, err := p.Generate(context.Background(), GenerateRequest{Prompt: "x"})
	require.Error(t, err)
}
