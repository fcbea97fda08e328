package triviagen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sammyduzit/movieweb-app/internal/config"
)

func chatCompletion(content string) map[string]interface{} {
	return map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	}
}

func newOpenAIUnderTest(serverURL string) *OpenAIProvider {
	return NewOpenAIProvider(config.OpenAIConfig{
		Key:        "sk-test",
		URL:        serverURL,
		Model:      "gpt-3.5-turbo",
		TimeoutSec: 5,
	})
}

func TestOpenAI_GeneratesQuestions(t *testing.T) {
	var gotAuth string
	var gotReq chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		json.NewEncoder(w).Encode(chatCompletion(validSetJSON))
	}))
	defer server.Close()

	provider := newOpenAIUnderTest(server.URL)

	set, err := provider.GenerateMovieTrivia(context.Background(), testMovie())

	require.NoError(t, err)
	assert.Len(t, set.Questions, 1)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "gpt-3.5-turbo", gotReq.Model)
	assert.Equal(t, 2000, gotReq.MaxTokens)
	require.Len(t, gotReq.Messages, 2)
	assert.Equal(t, "system", gotReq.Messages[0].Role)
	assert.Equal(t, "user", gotReq.Messages[1].Role)
}

func TestOpenAI_ExtractsJSONFromProse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(chatCompletion("Here you go:\n" + validSetJSON))
	}))
	defer server.Close()

	set, err := newOpenAIUnderTest(server.URL).GenerateMovieTrivia(context.Background(), testMovie())

	require.NoError(t, err)
	assert.Len(t, set.Questions, 1)
}

func TestOpenAI_NoKeySkips(t *testing.T) {
	provider := NewOpenAIProvider(config.OpenAIConfig{Key: "", TimeoutSec: 5})

	_, err := provider.GenerateMovieTrivia(context.Background(), testMovie())

	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestOpenAI_RateLimitAndAuthErrors(t *testing.T) {
	for _, status := range []int{http.StatusTooManyRequests, http.StatusUnauthorized} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))
		provider := newOpenAIUnderTest(server.URL)

		_, err := provider.GenerateMovieTrivia(context.Background(), testMovie())

		assert.Error(t, err)
		server.Close()
	}
}

func TestOpenAI_EmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"choices": []interface{}{}})
	}))
	defer server.Close()

	_, err := newOpenAIUnderTest(server.URL).GenerateMovieTrivia(context.Background(), testMovie())

	assert.Error(t, err)
}
