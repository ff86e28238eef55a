package analysis

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
)

// Batch rejection codes, one per user-visible failure mode.
const (
	CodeEmptySelection    = "EMPTY_SELECTION"
	CodeMissingIndustry   = "MISSING_INDUSTRY"
	CodeRateLimited       = "RATE_LIMITED"
	CodeInsufficientQuota = "INSUFFICIENT_QUOTA"
	CodeUploadFailed      = "UPLOAD_FAILED"
)

// BatchError reports why a batch submission was rejected or aborted.
type BatchError struct {
	Code    string
	Message string
}

func (e *BatchError) Error() string {
	return e.Message
}

// clientAPI is the slice of Client the orchestrator depends on.
type clientAPI interface {
	CheckRateLimit(ctx context.Context) *RateLimitStatus
	Analyze(ctx context.Context, file FileRef, industry string) (*AnalysisResult, error)
}

// Orchestrator gates a batch against the probed quota and submits its
// files sequentially. A batch either fully succeeds or fails as a whole;
// there is no partial result set and no retry.
type Orchestrator struct {
	client clientAPI
	logger *zap.Logger
}

func NewOrchestrator(client *Client, logger *zap.Logger) *Orchestrator {
	return &Orchestrator{client: client, logger: logger}
}

// Submit validates the batch, then uploads each file one at a time.
// Sequential submission keeps quota consumption attributable file-by-file
// and result order equal to selection order. On success the displayed
// quota is refreshed by a detached probe whose outcome does not affect
// the returned results.
func (o *Orchestrator) Submit(ctx context.Context, batch UploadBatch) ([]*AnalysisResult, error) {
	if len(batch.Files) == 0 {
		return nil, &BatchError{
			Code:    CodeEmptySelection,
			Message: "Please select at least one contract document to upload.",
		}
	}

	if batch.Industry == "" {
		return nil, &BatchError{
			Code:    CodeMissingIndustry,
			Message: "Please select an industry for your contract.",
		}
	}

	// Fresh probe immediately before submission; a failed probe means the
	// quota is unknown and blocks the batch.
	status := o.client.CheckRateLimit(ctx)
	if status == nil || !status.CanProceed {
		dailyLimit := 5
		if status != nil {
			dailyLimit = status.DailyLimit
		}
		return nil, &BatchError{
			Code: CodeRateLimited,
			Message: fmt.Sprintf(
				"You have reached the daily limit of %d document analyses. Please try again after %s.",
				dailyLimit, resetPhrase(status),
			),
		}
	}

	if len(batch.Files) > status.Remaining {
		return nil, &BatchError{
			Code: CodeInsufficientQuota,
			Message: fmt.Sprintf(
				"You have %d analyses remaining, but selected %d files. Please select fewer files or try again tomorrow.",
				status.Remaining, len(batch.Files),
			),
		}
	}

	results := make([]*AnalysisResult, 0, len(batch.Files))

	for _, file := range batch.Files {
		result, err := o.client.Analyze(ctx, file, batch.Industry)
		if err != nil {
			// Remaining files are aborted; the batch fails as a whole.
			return nil, o.batchFailure(file, err)
		}
		results = append(results, result)
	}

	o.logger.Info("contract batch analyzed",
		zap.Int("files", len(results)),
		zap.String("industry", batch.Industry),
	)

	// Fire-and-forget quota refresh.
	go o.client.CheckRateLimit(context.Background())

	return results, nil
}

func (o *Orchestrator) batchFailure(file FileRef, err error) *BatchError {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.RateLimited {
		hours := 24
		if apiErr.RetryAfter > 0 {
			hours = int(math.Ceil(apiErr.RetryAfter / 3600))
		}
		msg := apiErr.Message
		if msg == "" {
			msg = "Daily limit reached"
		}
		return &BatchError{
			Code: CodeRateLimited,
			Message: fmt.Sprintf(
				"Rate limit exceeded: %s. Please try again in %d hours.", msg, hours,
			),
		}
	}

	o.logger.Warn("contract upload failed",
		zap.String("file", file.Name),
		zap.Error(err),
	)

	return &BatchError{
		Code:    CodeUploadFailed,
		Message: fmt.Sprintf("Upload failed for %s: %s", file.Name, err.Error()),
	}
}

// resetPhrase renders the quota reset boundary for user-facing messages,
// defaulting to "tomorrow" when the probe gave no usable timestamp.
func resetPhrase(status *RateLimitStatus) string {
	if status != nil && status.ResetTime != "" {
		if t, err := time.Parse(time.RFC3339, status.ResetTime); err == nil {
			return t.Format("Jan 2, 2006 at 15:04 MST")
		}
	}
	return "tomorrow"
}
