package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/chainsight/site-api/internal/analysis"
	"github.com/chainsight/site-api/pkg/filesize"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".tiff": true,
}

var industries = []string{"IT", "Construction", "Garments", "General"}

// RateLimit proxies the quota probe so the browser can display remaining
// analyses. A failed probe is surfaced as a gateway error; the client
// treats it as unknown quota.
func (h *Handler) RateLimit(c *gin.Context) {
	status := h.prober.CheckRateLimit(c.Request.Context())
	if status == nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "Unable to check the daily analysis limit."})
		return
	}

	c.JSON(http.StatusOK, status)
}

// UploadContracts accepts a multipart batch of contract documents plus an
// industry tag and runs the gated sequential analysis pipeline.
func (h *Handler) UploadContracts(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid multipart form"})
		return
	}

	industry := c.PostForm("industry")
	if industry != "" && !validIndustry(industry) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("Unknown industry %q. Expected one of: %s.", industry, strings.Join(industries, ", ")),
		})
		return
	}

	batch := analysis.UploadBatch{Industry: industry}

	for _, header := range form.File["files"] {
		ext := strings.ToLower(filepath.Ext(header.Filename))
		if !allowedExtensions[ext] {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("Unsupported file type for %s. Allowed: PDF, DOC, DOCX, JPG, PNG, TIFF.", header.Filename),
			})
			return
		}

		if header.Size > h.limits.MaxFileSize {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("%s is %s, which exceeds the %s per-file limit.",
					header.Filename, filesize.Format(header.Size), filesize.Format(h.limits.MaxFileSize)),
			})
			return
		}

		file, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read " + header.Filename})
			return
		}
		content, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read " + header.Filename})
			return
		}

		batch.Files = append(batch.Files, analysis.FileRef{
			Name:    header.Filename,
			Size:    header.Size,
			Content: content,
		})
	}

	results, err := h.orchestrator.Submit(c.Request.Context(), batch)
	if err != nil {
		h.rejectBatch(c, err)
		return
	}

	h.metrics.RecordContractBatch("success", len(results))
	c.JSON(http.StatusOK, gin.H{
		"results": results,
		"message": fmt.Sprintf("Successfully analyzed %d contract(s).", len(results)),
	})
}

func (h *Handler) rejectBatch(c *gin.Context, err error) {
	var batchErr *analysis.BatchError
	if !errors.As(err, &batchErr) {
		h.logger.Error("Contract batch failed", zap.Error(err))
		h.metrics.RecordContractBatch("error", 0)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "There was an error uploading your contracts. Please try again."})
		return
	}

	h.metrics.RecordContractBatch(batchErr.Code, 0)

	status := http.StatusBadRequest
	switch batchErr.Code {
	case analysis.CodeRateLimited:
		status = http.StatusTooManyRequests
	case analysis.CodeInsufficientQuota:
		status = http.StatusConflict
	case analysis.CodeUploadFailed:
		status = http.StatusBadGateway
	}

	c.JSON(status, gin.H{
		"error": batchErr.Message,
		"code":  batchErr.Code,
	})
}

func validIndustry(industry string) bool {
	for _, known := range industries {
		if strings.EqualFold(industry, known) {
			return true
		}
	}
	return false
}
