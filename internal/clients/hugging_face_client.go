package clients

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/spacesedan/feedbackflow/internal/models"
	"golang.org/x/oauth2"
)

var (
	ErrMissingCredential = errors.New("missing credential")
	ErrUnexpectedStatus  = errors.New("unexpected status code")
	ErrEmptyResponse     = errors.New("empty response")
)

// ResponseCache stores raw inference responses. Implementations must treat
// failures as misses.
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
}

type HuggingFaceClient struct {
	Client  *http.Client
	baseURL string
	hasKey  bool
	cache   ResponseCache
}

// NewHuggingFaceClient builds a client for the hosted inference API. The key
// is attached as a bearer token on every request; without one the client
// refuses to make calls.
func NewHuggingFaceClient(apiKey, baseURL string, timeout time.Duration) *HuggingFaceClient {
	slog.Info("[HuggingFaceClient] Initializing Client",
		slog.Duration("timeout", timeout),
		slog.Bool("credential", apiKey != ""))

	transport := &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{
			AccessToken: apiKey,
			TokenType:   "Bearer",
		}),
		Base: http.DefaultTransport,
	}

	return &HuggingFaceClient{
		Client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		baseURL: strings.TrimRight(baseURL, "/"),
		hasKey:  apiKey != "",
	}
}

// WithCache enables response caching.
func (h *HuggingFaceClient) WithCache(cache ResponseCache) *HuggingFaceClient {
	h.cache = cache
	return h
}

func (h *HuggingFaceClient) HasCredential() bool {
	return h != nil && h.hasKey
}

func (h *HuggingFaceClient) modelURL(model string) string {
	return h.baseURL + "/" + model
}

// ClassifySentiment returns the sentiment labels for text, best first.
func (h *HuggingFaceClient) ClassifySentiment(ctx context.Context, text string) ([]models.LabelScore, error) {
	slog.Debug("[HuggingFaceClient] Requesting sentiment classification")
	start := time.Now()

	body, err := h.postJSON(ctx, h.modelURL(HF_SENTIMENT_MODEL), models.InferenceRequest{Inputs: text})
	if err != nil {
		slog.Warn("[HuggingFaceClient] Sentiment request failed",
			slog.Duration("elapsed", time.Since(start)),
			slog.String("error", err.Error()))
		return nil, err
	}

	scores, err := decodeLabelScores(body)
	if err != nil {
		return nil, err
	}

	slog.Debug("[HuggingFaceClient] Sentiment request successful",
		slog.Duration("elapsed", time.Since(start)))
	return scores, nil
}

// ClassifyEmotions returns the emotion breakdown for text, best first.
func (h *HuggingFaceClient) ClassifyEmotions(ctx context.Context, text string) ([]models.LabelScore, error) {
	body, err := h.postJSON(ctx, h.modelURL(HF_EMOTION_MODEL), models.InferenceRequest{Inputs: text})
	if err != nil {
		return nil, err
	}
	return decodeLabelScores(body)
}

// ZeroShotClassify scores text against the candidate labels.
func (h *HuggingFaceClient) ZeroShotClassify(ctx context.Context, text string, labels []string) (models.ZeroShotResponse, error) {
	var result models.ZeroShotResponse

	body, err := h.postJSON(ctx, h.modelURL(HF_ZERO_SHOT_MODEL), models.InferenceRequest{
		Inputs:     text,
		Parameters: &models.ZeroShotParameters{CandidateLabels: labels},
	})
	if err != nil {
		return result, err
	}

	if err := json.Unmarshal(body, &result); err != nil {
		slog.Error("[HuggingFaceClient] Failed to unmarshal zero-shot response",
			slog.String("error", err.Error()),
			getPreview(body))
		return result, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(result.Labels) != len(result.Scores) {
		return result, fmt.Errorf("zero-shot response has %d labels and %d scores",
			len(result.Labels), len(result.Scores))
	}
	return result, nil
}

// decodeLabelScores accepts both the nested [[...]] shape returned for a
// single input and a flat list, and sorts by descending score.
func decodeLabelScores(body []byte) ([]models.LabelScore, error) {
	var nested [][]models.LabelScore
	var scores []models.LabelScore

	if err := json.Unmarshal(body, &nested); err == nil {
		if len(nested) > 0 {
			scores = nested[0]
		}
	} else if err := json.Unmarshal(body, &scores); err != nil {
		slog.Error("[HuggingFaceClient] Failed to unmarshal classification response",
			slog.String("error", err.Error()),
			getPreview(body))
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(scores) == 0 {
		return nil, ErrEmptyResponse
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})
	return scores, nil
}

// helper function for posting data to the inference API, no retries
func (h *HuggingFaceClient) postJSON(ctx context.Context, endpoint string, input any) ([]byte, error) {
	return h.post(ctx, endpoint, input, h.cache != nil)
}

func (h *HuggingFaceClient) Name() string {
	return "huggingface"
}

// HealthCheck sends a tiny uncached request to the sentiment model.
func (h *HuggingFaceClient) HealthCheck(ctx context.Context) error {
	_, err := h.post(ctx, h.modelURL(HF_SENTIMENT_MODEL), models.InferenceRequest{Inputs: "health check"}, false)
	return err
}

func (h *HuggingFaceClient) post(ctx context.Context, endpoint string, input any, useCache bool) ([]byte, error) {
	if !h.HasCredential() {
		return nil, ErrMissingCredential
	}

	body, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal input: %w", err)
	}

	key := cacheKey(endpoint, body)
	if useCache {
		if cached, ok := h.cache.Get(ctx, key); ok {
			slog.Debug("[HuggingFaceClient] Cache hit", slog.String("endpoint", endpoint))
			return cached, nil
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", USER_AGENT)

	resp, err := h.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		slog.Warn("[HuggingFaceClient] Non-OK response",
			slog.String("endpoint", endpoint),
			slog.Int("status", resp.StatusCode),
			getPreview(respBody))
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	if useCache {
		h.cache.Set(ctx, key, respBody)
	}
	return respBody, nil
}

func cacheKey(endpoint string, body []byte) string {
	hash := sha256.Sum256(append([]byte(endpoint+"\n"), body...))
	return CACHE_KEY_PREFIX + hex.EncodeToString(hash[:])
}

func getPreview(respBody []byte) slog.Attr {
	raw := string(respBody)
	if len(raw) > 50 {
		raw = raw[:50]
	}
	return slog.String("raw_response", raw)
}
