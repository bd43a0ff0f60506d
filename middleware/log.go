package middleware

import (
	"context"
	"time"

	"github.com/hupe1980/agentchat/core"
	"github.com/hupe1980/agentchat/logging"
)

// LogMiddleware records every reply-generation call passing through the
// pipeline. It is purely pass-through: messages and options reach the next
// link untouched and errors propagate unchanged.
type LogMiddleware struct {
	logger logging.Logger
}

// NewLogMiddleware creates a logging link around the given logger.
func NewLogMiddleware(logger logging.Logger) *LogMiddleware {
	if logger == nil {
		logger = logging.NoOpLogger{}
	}
	return &LogMiddleware{logger: logger}
}

// Name returns the middleware's identifier.
func (m *LogMiddleware) Name() string { return "log" }

// Invoke implements Middleware.
func (m *LogMiddleware) Invoke(ctx context.Context, messages []core.Message, opts *core.GenerateReplyOptions, next NextFunc) (core.Message, error) {
	m.logger.Debug("middleware.generate.start", "messages", len(messages))

	start := time.Now()
	reply, err := next(ctx, messages, opts)
	dur := time.Since(start)

	if err != nil {
		m.logger.Error("middleware.generate.error", "duration_ms", dur.Milliseconds(), "error", err.Error())
		return core.Message{}, err
	}

	m.logger.Info("middleware.generate.complete",
		"duration_ms", dur.Milliseconds(),
		"from", reply.From,
		"role", string(reply.Role),
		"function_call", reply.IsFunctionCall(),
	)
	return reply, nil
}
