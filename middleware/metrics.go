package middleware

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/tiktoken-go/tokenizer"

	"github.com/hupe1980/agentchat/core"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// MetricsMiddleware records reply counts, latency and token usage for every
// call flowing through the pipeline. Token counts use the GPT-4 BPE as a
// cross-provider approximation and fall back to a chars/4 estimate when the
// codec is unavailable.
type MetricsMiddleware struct {
	agent         string
	codec         tokenizer.Codec
	repliesTotal  *prometheus.CounterVec
	tokensTotal   *prometheus.CounterVec
	replyDuration *prometheus.HistogramVec
}

// MetricsOptions configures a MetricsMiddleware.
type MetricsOptions struct {
	// Registerer receives the collectors. Defaults to the global registry.
	Registerer prometheus.Registerer
	// Namespace prefixes all metric names. Defaults to "agentchat".
	Namespace string
}

// NewMetricsMiddleware creates the metrics link for the named agent.
func NewMetricsMiddleware(agent string, optFns ...func(o *MetricsOptions)) *MetricsMiddleware {
	opts := MetricsOptions{
		Registerer: prometheus.DefaultRegisterer,
		Namespace:  "agentchat",
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	factory := promauto.With(opts.Registerer)
	codec, err := tokenizer.ForModel(tokenizer.GPT4)
	if err != nil {
		codec = nil
	}

	return &MetricsMiddleware{
		agent: agent,
		codec: codec,
		repliesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: opts.Namespace,
				Name:      "replies_total",
				Help:      "Total number of reply generations by agent and status",
			},
			[]string{"agent", "status"},
		),
		tokensTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: opts.Namespace,
				Name:      "tokens_total",
				Help:      "Approximate token throughput by agent and direction",
			},
			[]string{"agent", "type"},
		),
		replyDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: opts.Namespace,
				Name:      "reply_duration_seconds",
				Help:      "Duration of reply generations in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"agent"},
		),
	}
}

// Name returns the middleware's identifier.
func (m *MetricsMiddleware) Name() string { return "metrics" }

// Invoke implements Middleware.
func (m *MetricsMiddleware) Invoke(ctx context.Context, messages []core.Message, opts *core.GenerateReplyOptions, next NextFunc) (core.Message, error) {
	start := time.Now()
	reply, err := next(ctx, messages, opts)
	dur := time.Since(start)

	m.replyDuration.WithLabelValues(m.agent).Observe(dur.Seconds())

	if err != nil {
		m.repliesTotal.WithLabelValues(m.agent, statusError).Inc()
		return core.Message{}, err
	}

	m.repliesTotal.WithLabelValues(m.agent, statusSuccess).Inc()

	var promptText string
	for i := range messages {
		promptText += messages[i].Content + "\n"
	}
	m.tokensTotal.WithLabelValues(m.agent, "prompt").Add(float64(m.countTokens(promptText)))
	m.tokensTotal.WithLabelValues(m.agent, "completion").Add(float64(m.countTokens(reply.Content)))

	return reply, nil
}

// countTokens counts BPE tokens, estimating by character count when the
// codec could not be constructed or rejects the input.
func (m *MetricsMiddleware) countTokens(text string) int {
	if m.codec == nil {
		return len(text) / 4
	}
	count, err := m.codec.Count(text)
	if err != nil {
		return len(text) / 4
	}
	return count
}
