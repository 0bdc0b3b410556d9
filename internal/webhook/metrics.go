package webhook

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "travelchat_webhook_requests_total",
		Help: "Webhook exchanges by result (ok or a failure reason)",
	}, []string{"result"})

	requestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "travelchat_webhook_request_duration_seconds",
		Help:    "Wall time of webhook exchanges, including failures",
		Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 3, 5},
	})

	replyMessages = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "travelchat_webhook_reply_messages",
		Help:    "Number of raw messages per successful reply",
		Buckets: []float64{0, 1, 2, 3, 5, 8},
	})
)

func observeExchange(err error, elapsed time.Duration, messages int) {
	requestDuration.Observe(elapsed.Seconds())
	if err != nil {
		requestsTotal.WithLabelValues(string(ReasonOf(err))).Inc()
		return
	}
	requestsTotal.WithLabelValues("ok").Inc()
	replyMessages.Observe(float64(messages))
}
