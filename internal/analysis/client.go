package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/chainsight/site-api/internal/config"
	"go.uber.org/zap"
)

// Client talks to the external contract analysis service.
type Client struct {
	baseURL    string
	csrfToken  string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(cfg *config.AnalysisConfig, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		csrfToken: cfg.CSRFToken,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// CheckRateLimit queries the remaining daily quota. Any transport error,
// non-success status or malformed body is logged and reported as nil, so
// callers treat an unknown quota conservatively. No retries.
func (c *Client) CheckRateLimit(ctx context.Context) *RateLimitStatus {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/rate-limit/", nil)
	if err != nil {
		c.logger.Error("failed to build rate limit request", zap.Error(err))
		return nil
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("rate limit check failed", zap.Error(err))
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("rate limit check returned non-success status",
			zap.Int("status", resp.StatusCode),
		)
		return nil
	}

	var status RateLimitStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		c.logger.Warn("failed to decode rate limit response", zap.Error(err))
		return nil
	}

	return &status
}

// APIError is a non-success response from the analysis endpoint.
type APIError struct {
	StatusCode  int
	Detail      string
	Message     string
	RateLimited bool
	RetryAfter  float64 // seconds
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("analysis service returned HTTP %d", e.StatusCode)
}

type errorBody struct {
	Detail     string  `json:"detail"`
	Message    string  `json:"message"`
	Error      string  `json:"error"`
	RetryAfter float64 `json:"retry_after"`
}

// Analyze submits a single document for analysis as a multipart request
// carrying the file and the lower-cased industry tag.
func (c *Client) Analyze(ctx context.Context, file FileRef, industry string) (*AnalysisResult, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", file.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart body: %w", err)
	}
	if _, err := part.Write(file.Content); err != nil {
		return nil, fmt.Errorf("failed to write file content: %w", err)
	}
	if err := writer.WriteField("industry", strings.ToLower(industry)); err != nil {
		return nil, fmt.Errorf("failed to write industry field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/contracts/", &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if c.csrfToken != "" {
		req.Header.Set("X-CSRFTOKEN", c.csrfToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody errorBody
		// Body may not be JSON; the status code alone still classifies
		// the failure.
		_ = json.Unmarshal(body, &errBody)

		return nil, &APIError{
			StatusCode:  resp.StatusCode,
			Detail:      errBody.Detail,
			Message:     errBody.Message,
			RateLimited: resp.StatusCode == http.StatusTooManyRequests || errBody.Error == "Rate limit exceeded",
			RetryAfter:  errBody.RetryAfter,
		}
	}

	var result AnalysisResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse analysis result: %w", err)
	}

	return &result, nil
}
