package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeminiProviderGenerateResponse(t *testing.T) {
	var got geminiRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/models/test-model:generateContent"))
		assert.Equal(t, "secret", r.URL.Query().Get("key"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Acme"}]}}]}`))
	}))
	defer server.Close()

	p := NewGeminiProvider("secret", "test-model", 0.2, 100).WithBaseURL(server.URL)
	answer, err := p.GenerateResponse(context.Background(), "be brief", "who is the vendor?")

	require.NoError(t, err)
	assert.Equal(t, "Acme", answer)
	require.Len(t, got.Contents, 1)
	assert.Equal(t, "be brief\n\nwho is the vendor?", got.Contents[0].Parts[0].Text)
	assert.Equal(t, 100, got.GenerationConfig.MaxOutputTokens)
}

func TestGeminiProviderErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "empty") {
			w.Write([]byte(`{"candidates":[]}`))
			return
		}
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`quota`))
	}))
	defer server.Close()

	_, err := NewGeminiProvider("k", "busy", 0, 0).WithBaseURL(server.URL).
		GenerateResponse(context.Background(), "", "hi")
	assert.ErrorContains(t, err, "status: 429")

	_, err = NewGeminiProvider("k", "empty", 0, 0).WithBaseURL(server.URL).
		GenerateResponse(context.Background(), "", "hi")
	assert.ErrorContains(t, err, "no response")
}

func TestNewLLMProviderWithoutKey(t *testing.T) {
	p := NewLLMProvider("gemini", "", "", "")
	_, err := p.GenerateResponse(context.Background(), "", "hi")
	assert.ErrorIs(t, err, ErrLLMNotConfigured)

	assert.Equal(t, "OpenAI", NewLLMProvider("openai", "", "", "key").GetProviderName())
}
