package handlers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/chainsight/site-api/internal/analysis"
	"github.com/chainsight/site-api/internal/chat"
	"github.com/chainsight/site-api/internal/config"
	"github.com/chainsight/site-api/internal/db"
	"github.com/chainsight/site-api/internal/mailer"
	"github.com/chainsight/site-api/internal/metrics"
	"github.com/chainsight/site-api/internal/waitlist"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// The collector registers on the default prometheus registry, so tests
// share a single instance.
var (
	collectorOnce sync.Once
	testCollector *metrics.Collector
)

func testMetrics() *metrics.Collector {
	collectorOnce.Do(func() {
		testCollector = metrics.NewCollector()
	})
	return testCollector
}

type fakeSubmitter struct {
	results []*analysis.AnalysisResult
	err     error
	batches []analysis.UploadBatch
}

func (f *fakeSubmitter) Submit(ctx context.Context, batch analysis.UploadBatch) ([]*analysis.AnalysisResult, error) {
	f.batches = append(f.batches, batch)
	return f.results, f.err
}

type fakeProber struct {
	status *analysis.RateLimitStatus
}

func (f *fakeProber) CheckRateLimit(ctx context.Context) *analysis.RateLimitStatus {
	return f.status
}

type fakeRelay struct {
	initReply chat.Reply
	sendReply chat.Reply
	sent      []string
}

func (f *fakeRelay) Initialize(ctx context.Context) chat.Reply {
	return f.initReply
}

func (f *fakeRelay) Send(ctx context.Context, message string) chat.Reply {
	f.sent = append(f.sent, message)
	return f.sendReply
}

type fakeSender struct {
	err error
}

func (f *fakeSender) SendWaitlistConfirmation(ctx context.Context, entry *db.WaitlistEntry) error {
	return f.err
}

var _ mailer.Sender = (*fakeSender)(nil)

type handlerDeps struct {
	handler   *Handler
	mock      sqlmock.Sqlmock
	submitter *fakeSubmitter
	prober    *fakeProber
	relay     *fakeRelay
}

var defaultLimits = config.LimitsConfig{
	RequestsPerMinute: 30,
	ContractsPerDay:   5,
	MaxFileSize:       10 * 1024 * 1024,
}

func newTestHandler(t *testing.T, limits config.LimitsConfig) *handlerDeps {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	repo := db.NewRepository(sqlx.NewDb(mockDB, "sqlmock"))
	logger := zap.NewNop()

	submitter := &fakeSubmitter{}
	prober := &fakeProber{}
	relay := &fakeRelay{}

	h := NewHandler(
		repo,
		waitlist.NewService(repo, &fakeSender{}, logger, testMetrics()),
		submitter,
		prober,
		relay,
		testMetrics(),
		limits,
		logger,
	)

	return &handlerDeps{handler: h, mock: mock, submitter: submitter, prober: prober, relay: relay}
}

// multipartBody builds a contracts upload body with the given file names
// and industry. Each file carries a short placeholder payload.
func multipartBody(t *testing.T, industry string, names ...string) (*bytes.Buffer, string) {
	t.Helper()

	files := make(map[string][]byte, len(names))
	for _, name := range names {
		files[name] = []byte("content")
	}
	return multipartBodyFiles(t, industry, files)
}

func multipartBodyFiles(t *testing.T, industry string, files map[string][]byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for name, content := range files {
		part, err := writer.CreateFormFile("files", name)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	if industry != "" {
		require.NoError(t, writer.WriteField("industry", industry))
	}
	require.NoError(t, writer.Close())

	return &buf, writer.FormDataContentType()
}

func serveMultipart(h gin.HandlerFunc, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	router := gin.New()
	router.POST("/contracts", h)

	req := httptest.NewRequest("POST", "/contracts", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func serveJSON(h gin.HandlerFunc, method, target string, body *bytes.Buffer) *httptest.ResponseRecorder {
	router := gin.New()
	router.Handle(method, target, h)

	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
