package analysis

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chainsight/site-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(baseURL string) *Client {
	return NewClient(&config.AnalysisConfig{
		BaseURL:   baseURL,
		CSRFToken: "test-token",
	}, zap.NewNop())
}

func TestCheckRateLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/rate-limit/", r.URL.Path)

		json.NewEncoder(w).Encode(RateLimitStatus{
			DailyLimit:   5,
			CurrentCount: 2,
			Remaining:    3,
			CanProceed:   true,
			ResetTime:    "2026-03-01T00:00:00Z",
		})
	}))
	defer server.Close()

	status := newTestClient(server.URL).CheckRateLimit(context.Background())
	require.NotNil(t, status)
	assert.Equal(t, 3, status.Remaining)
	assert.True(t, status.CanProceed)
}

func TestCheckRateLimitReturnsNilOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	assert.Nil(t, newTestClient(server.URL).CheckRateLimit(context.Background()))
}

func TestCheckRateLimitReturnsNilOnTransportError(t *testing.T) {
	// Closed server forces a connection error.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	assert.Nil(t, newTestClient(server.URL).CheckRateLimit(context.Background()))
}

func TestCheckRateLimitReturnsNilOnMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	assert.Nil(t, newTestClient(server.URL).CheckRateLimit(context.Background()))
}

func TestAnalyze(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/contracts/", r.URL.Path)
		assert.Equal(t, "test-token", r.Header.Get("X-CSRFTOKEN"))

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "it", r.FormValue("industry"), "industry must be lower-cased on the wire")

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "contract.pdf", header.Filename)

		json.NewEncoder(w).Encode(AnalysisResult{
			ID:               "r1",
			OriginalFilename: "contract.pdf",
			RiskScore:        6.5,
		})
	}))
	defer server.Close()

	result, err := newTestClient(server.URL).Analyze(context.Background(), FileRef{
		Name:    "contract.pdf",
		Size:    3,
		Content: []byte("pdf"),
	}, "IT")
	require.NoError(t, err)
	assert.Equal(t, "contract.pdf", result.OriginalFilename)
	assert.Equal(t, 6.5, result.RiskScore)
}

func TestAnalyzeRateLimitedBy429(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"message":     "Daily limit reached",
			"retry_after": 3600,
		})
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Analyze(context.Background(), FileRef{Name: "a.pdf"}, "it")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.RateLimited)
	assert.Equal(t, float64(3600), apiErr.RetryAfter)
}

func TestAnalyzeRateLimitedByErrorField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"error": "Rate limit exceeded"})
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Analyze(context.Background(), FileRef{Name: "a.pdf"}, "it")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.RateLimited)
}

func TestAnalyzeGenericFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"detail": "unsupported file type"})
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Analyze(context.Background(), FileRef{Name: "a.exe"}, "it")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.False(t, apiErr.RateLimited)
	assert.Equal(t, "unsupported file type", apiErr.Error())
}
