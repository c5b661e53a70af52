package langchain

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IQ2i/thot/internal/core/domain"
)

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"unknown provider", Config{Provider: "cohere"}},
		{"none is not a backend", Config{Provider: ProviderNone}},
		{"openai without key", Config{Provider: ProviderOpenAI}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	svc, err := New(Config{Provider: ProviderOllama})
	require.NoError(t, err)
	assert.Equal(t, DefaultOllamaModel, svc.ModelName())

	svc, err = New(Config{Provider: ProviderOpenAI, APIKey: "sk-test"})
	require.NoError(t, err)
	assert.Equal(t, DefaultOpenAIModel, svc.ModelName())
}

func TestEmbedBatch_OpenAICompatible(t *testing.T) {
	var inputs []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/embeddings", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var req struct {
			Model string   `json:"model"`
			Input []string `json:"input"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "mini", req.Model)
		inputs = append(inputs, req.Input...)

		data := make([]map[string]any, len(req.Input))
		for i := range req.Input {
			data[i] = map[string]any{"object": "embedding", "index": i, "embedding": []float32{float32(i), 1}}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"object": "list", "data": data, "model": req.Model})
	}))
	defer srv.Close()

	svc, err := New(Config{Provider: ProviderOpenAI, APIKey: "sk-test", Model: "mini", BaseURL: srv.URL})
	require.NoError(t, err)

	vectors, err := svc.EmbedBatch(context.Background(), []string{"first\nchunk", "second"})
	require.NoError(t, err)
	require.Len(t, vectors, 2)
	assert.Equal(t, []float32{0, 1}, vectors[0])
	assert.Equal(t, []float32{1, 1}, vectors[1])
	assert.Equal(t, []string{"first chunk", "second"}, inputs)
}

func TestEmbedBatch_Empty(t *testing.T) {
	svc, err := New(Config{Provider: ProviderOllama})
	require.NoError(t, err)

	vectors, err := svc.EmbedBatch(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, vectors)
}
