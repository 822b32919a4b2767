package clients

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/spacesedan/feedbackflow/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCache struct {
	mu    sync.Mutex
	items map[string][]byte
	sets  int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: map[string][]byte{}}
}

func (m *memoryCache) Get(_ context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.items[key]
	return v, ok
}

func (m *memoryCache) Set(_ context.Context, key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	m.sets++
}

func TestHuggingFaceClient_ClassifySentiment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/"+HF_SENTIMENT_MODEL, r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer hf_test", r.Header.Get("Authorization"))
		assert.Equal(t, USER_AGENT, r.Header.Get("User-Agent"))

		var req models.InferenceRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "Terrible service", req.Inputs)
		assert.Nil(t, req.Parameters)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[[{"label":"neutral","score":0.1},{"label":"negative","score":0.85},{"label":"positive","score":0.05}]]`))
	}))
	defer server.Close()

	client := NewHuggingFaceClient("hf_test", server.URL, 5*time.Second)
	scores, err := client.ClassifySentiment(context.Background(), "Terrible service")

	require.NoError(t, err)
	require.Len(t, scores, 3)
	assert.Equal(t, "negative", scores[0].Label, "scores are sorted best first")
	assert.InDelta(t, 0.85, scores[0].Score, 1e-9)
}

func TestHuggingFaceClient_FlatResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"label":"joy","score":0.9},{"label":"anger","score":0.02}]`))
	}))
	defer server.Close()

	client := NewHuggingFaceClient("hf_test", server.URL, 5*time.Second)
	emotions, err := client.ClassifyEmotions(context.Background(), "so happy")

	require.NoError(t, err)
	require.Len(t, emotions, 2)
	assert.Equal(t, "joy", emotions[0].Label)
}

func TestHuggingFaceClient_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":"Model is currently loading"}`))
	}))
	defer server.Close()

	client := NewHuggingFaceClient("hf_test", server.URL, 5*time.Second)
	_, err := client.ClassifySentiment(context.Background(), "text")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnexpectedStatus)
}

func TestHuggingFaceClient_EmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[[]]`))
	}))
	defer server.Close()

	client := NewHuggingFaceClient("hf_test", server.URL, 5*time.Second)
	_, err := client.ClassifySentiment(context.Background(), "text")

	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestHuggingFaceClient_MissingCredential(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		hits++
	}))
	defer server.Close()

	client := NewHuggingFaceClient("", server.URL, 5*time.Second)
	assert.False(t, client.HasCredential())

	_, err := client.ClassifySentiment(context.Background(), "text")
	assert.ErrorIs(t, err, ErrMissingCredential)
	assert.Zero(t, hits)

	var nilClient *HuggingFaceClient
	assert.False(t, nilClient.HasCredential())
}

func TestHuggingFaceClient_ZeroShotClassify(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/"+HF_ZERO_SHOT_MODEL, r.URL.Path)

		var req models.InferenceRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if !assert.NotNil(t, req.Parameters) {
			return
		}
		assert.Equal(t, models.CategoryLabels(), req.Parameters.CandidateLabels)

		_ = json.NewEncoder(w).Encode(models.ZeroShotResponse{
			Sequence: req.Inputs,
			Labels:   []string{"shipping", "customer_service"},
			Scores:   []float64{0.7, 0.2},
		})
	}))
	defer server.Close()

	client := NewHuggingFaceClient("hf_test", server.URL+"/", 5*time.Second)
	resp, err := client.ZeroShotClassify(context.Background(), "arrived late", models.CategoryLabels())

	require.NoError(t, err)
	assert.Equal(t, []string{"shipping", "customer_service"}, resp.Labels)
	assert.Equal(t, []float64{0.7, 0.2}, resp.Scores)
}

func TestHuggingFaceClient_ZeroShotMismatchedArrays(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"labels":["price","design"],"scores":[0.9]}`))
	}))
	defer server.Close()

	client := NewHuggingFaceClient("hf_test", server.URL, 5*time.Second)
	_, err := client.ZeroShotClassify(context.Background(), "pricey", models.CategoryLabels())

	assert.Error(t, err)
}

func TestHuggingFaceClient_UsesCache(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		_, _ = w.Write([]byte(`[[{"label":"positive","score":0.99}]]`))
	}))
	defer server.Close()

	cache := newMemoryCache()
	client := NewHuggingFaceClient("hf_test", server.URL, 5*time.Second).WithCache(cache)

	for i := 0; i < 3; i++ {
		scores, err := client.ClassifySentiment(context.Background(), "great")
		require.NoError(t, err)
		assert.Equal(t, "positive", scores[0].Label)
	}

	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, cache.sets)

	_, err := client.ClassifySentiment(context.Background(), "different text")
	require.NoError(t, err)
	assert.Equal(t, 2, hits)
}

func TestHuggingFaceClient_ErrorsAreNotCached(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	cache := newMemoryCache()
	client := NewHuggingFaceClient("hf_test", server.URL, 5*time.Second).WithCache(cache)

	_, err := client.ClassifySentiment(context.Background(), "great")
	require.Error(t, err)
	assert.Zero(t, cache.sets)
}

func TestHuggingFaceClient_HealthCheckBypassesCache(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		_, _ = w.Write([]byte(`[[{"label":"neutral","score":0.8}]]`))
	}))
	defer server.Close()

	cache := newMemoryCache()
	client := NewHuggingFaceClient("hf_test", server.URL, 5*time.Second).WithCache(cache)

	require.NoError(t, client.HealthCheck(context.Background()))
	require.NoError(t, client.HealthCheck(context.Background()))

	assert.Equal(t, 2, hits)
	assert.Zero(t, cache.sets)
	assert.Equal(t, "huggingface", client.Name())

	noKey := NewHuggingFaceClient("", server.URL, 5*time.Second)
	assert.ErrorIs(t, noKey.HealthCheck(context.Background()), ErrMissingCredential)
}
