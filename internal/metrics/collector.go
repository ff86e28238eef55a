package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector tracks the site funnel: lead capture, contract analysis
// batches, chat relay traffic and confirmation email dispatches.
type Collector struct {
	waitlistSignups   *prometheus.CounterVec
	demoRequests      prometheus.Counter
	contactMessages   prometheus.Counter
	contractBatches   *prometheus.CounterVec
	contractFiles     prometheus.Counter
	chatMessages      *prometheus.CounterVec
	confirmationMails *prometheus.CounterVec

	httpDuration *prometheus.HistogramVec
}

func NewCollector() *Collector {
	return &Collector{
		waitlistSignups: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "chainsight_waitlist_signups_total",
			Help: "Waitlist join attempts by outcome",
		}, []string{"outcome"}),

		demoRequests: promauto.NewCounter(prometheus.CounterOpts{
			Name: "chainsight_demo_requests_total",
			Help: "Demo booking submissions",
		}),

		contactMessages: promauto.NewCounter(prometheus.CounterOpts{
			Name: "chainsight_contact_messages_total",
			Help: "Contact form submissions",
		}),

		contractBatches: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "chainsight_contract_batches_total",
			Help: "Contract analysis batches by outcome",
		}, []string{"outcome"}),

		contractFiles: promauto.NewCounter(prometheus.CounterOpts{
			Name: "chainsight_contract_files_uploaded_total",
			Help: "Individual contract files successfully analyzed",
		}),

		chatMessages: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "chainsight_chat_messages_total",
			Help: "Chat relay messages by outcome",
		}, []string{"outcome"}),

		confirmationMails: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "chainsight_confirmation_emails_total",
			Help: "Waitlist confirmation email dispatches by outcome",
		}, []string{"outcome"}),

		httpDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "chainsight_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
	}
}

func (c *Collector) RecordWaitlistSignup(outcome string) {
	c.waitlistSignups.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordDemoRequest() {
	c.demoRequests.Inc()
}

func (c *Collector) RecordContactMessage() {
	c.contactMessages.Inc()
}

func (c *Collector) RecordContractBatch(outcome string, files int) {
	c.contractBatches.WithLabelValues(outcome).Inc()
	if files > 0 {
		c.contractFiles.Add(float64(files))
	}
}

func (c *Collector) RecordChatMessage(outcome string) {
	c.chatMessages.WithLabelValues(outcome).Inc()
}

func (c *Collector) RecordConfirmationEmail(outcome string) {
	c.confirmationMails.WithLabelValues(outcome).Inc()
}

// HTTPMetrics is a gin middleware recording per-route latency.
func (c *Collector) HTTPMetrics() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()

		path := ctx.FullPath()
		if path == "" {
			path = "unmatched"
		}

		c.httpDuration.WithLabelValues(
			ctx.Request.Method,
			path,
			strconv.Itoa(ctx.Writer.Status()),
		).Observe(time.Since(start).Seconds())
	}
}
