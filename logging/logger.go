package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// LogLevel is a thin enum for user friendly level configuration decoupled from slog.
type LogLevel int

const (
	// LogLevelDebug is the debug logging level.
	LogLevelDebug LogLevel = iota
	// LogLevelInfo is the informational logging level.
	LogLevelInfo
	// LogLevelWarn is the warning logging level.
	LogLevelWarn
	// LogLevelError is the error logging level.
	LogLevelError
)

// String returns the string representation of the log level.
func (l LogLevel) String() string {
	switch l {
	case LogLevelDebug:
		return "DEBUG"
	case LogLevelInfo:
		return "INFO"
	case LogLevelWarn:
		return "WARN"
	case LogLevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func slogLevel(l LogLevel) slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Logger defines the minimal logging interface for AgentChat.
// This allows users to provide their own logger implementation or use the
// built-in adapters.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// SlogAdapter wraps *slog.Logger to implement the Logger interface.
type SlogAdapter struct {
	*slog.Logger
}

// Debug logs a debug message.
func (s *SlogAdapter) Debug(msg string, args ...any) { s.Logger.Debug(msg, args...) }

// Info logs an informational message.
func (s *SlogAdapter) Info(msg string, args ...any) { s.Logger.Info(msg, args...) }

// Warn logs a warning message.
func (s *SlogAdapter) Warn(msg string, args ...any) { s.Logger.Warn(msg, args...) }

// Error logs an error message.
func (s *SlogAdapter) Error(msg string, args ...any) { s.Logger.Error(msg, args...) }

// NewSlogAdapter creates a Logger from *slog.Logger.
func NewSlogAdapter(logger *slog.Logger) Logger {
	return &SlogAdapter{Logger: logger}
}

// NewDefaultSlogLogger creates a Logger using slog.Default().
func NewDefaultSlogLogger() Logger {
	return NewSlogAdapter(slog.Default())
}

// NoOpLogger discards all log messages. Useful for testing or when logging is disabled.
type NoOpLogger struct{}

// Debug logs a debug message.
func (NoOpLogger) Debug(string, ...any) {}

// Info logs an informational message.
func (NoOpLogger) Info(string, ...any) {}

// Warn logs a warning message.
func (NoOpLogger) Warn(string, ...any) {}

// Error logs an error message.
func (NoOpLogger) Error(string, ...any) {}

// ChatLogger wraps slog.Logger adding contextual cloning helpers and domain
// convenience methods. It is cheap to copy via the With* methods.
type ChatLogger struct {
	logger       *slog.Logger
	level        LogLevel
	component    string
	conversation string
	context      map[string]any
}

// ChatLoggerConfig configures construction of a ChatLogger.
type ChatLoggerConfig struct {
	Level        LogLevel
	Format       string // json or text
	Output       io.Writer
	AddSource    bool
	Component    string
	Conversation string
}

// DefaultChatLoggerConfig returns a baseline JSON info level configuration.
func DefaultChatLoggerConfig() *ChatLoggerConfig {
	return &ChatLoggerConfig{Level: LogLevelInfo, Format: "json", Output: os.Stdout}
}

// NewChatLogger builds a ChatLogger from a config (or defaults if nil).
func NewChatLogger(cfg *ChatLoggerConfig) *ChatLogger {
	if cfg == nil {
		cfg = DefaultChatLoggerConfig()
	}
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: slogLevel(cfg.Level), AddSource: cfg.AddSource}
	var handler slog.Handler
	if cfg.Format == "text" {
		handler = slog.NewTextHandler(out, opts)
	} else {
		handler = slog.NewJSONHandler(out, opts)
	}
	return &ChatLogger{
		logger:       slog.New(handler),
		level:        cfg.Level,
		component:    cfg.Component,
		conversation: cfg.Conversation,
		context:      map[string]any{},
	}
}

func (l *ChatLogger) clone() *ChatLogger {
	nl := *l
	nl.context = make(map[string]any, len(l.context))
	for k, v := range l.context {
		nl.context[k] = v
	}
	return &nl
}

// WithContext adds a key/value attribute attached to every log entry.
func (l *ChatLogger) WithContext(key string, value any) *ChatLogger {
	nl := l.clone()
	nl.context[key] = value
	return nl
}

// WithComponent sets the logical component (orchestrator, middleware, groupchat).
func (l *ChatLogger) WithComponent(c string) *ChatLogger {
	nl := l.clone()
	nl.component = c
	return nl
}

// WithConversation attaches a conversation identifier.
func (l *ChatLogger) WithConversation(id string) *ChatLogger {
	nl := l.clone()
	nl.conversation = id
	return nl
}

func (l *ChatLogger) buildAttrs(extra ...slog.Attr) []slog.Attr {
	attrs := make([]slog.Attr, 0, len(l.context)+len(extra)+3)
	if l.component != "" {
		attrs = append(attrs, slog.String("component", l.component))
	}
	if l.conversation != "" {
		attrs = append(attrs, slog.String("conversation_id", l.conversation))
	}
	for k, v := range l.context {
		attrs = append(attrs, slog.Any(k, v))
	}
	return append(attrs, extra...)
}

func (l *ChatLogger) log(level slog.Level, min LogLevel, msg string, args ...any) {
	if l.level > min {
		return
	}
	attrs := l.buildAttrs()
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		attrs = append(attrs, slog.Any(key, args[i+1]))
	}
	l.logger.LogAttrs(context.Background(), level, msg, attrs...)
}

// Debug logs at debug level.
func (l *ChatLogger) Debug(msg string, args ...any) {
	l.log(slog.LevelDebug, LogLevelDebug, msg, args...)
}

// Info logs at info level.
func (l *ChatLogger) Info(msg string, args ...any) {
	l.log(slog.LevelInfo, LogLevelInfo, msg, args...)
}

// Warn logs at warn level.
func (l *ChatLogger) Warn(msg string, args ...any) {
	l.log(slog.LevelWarn, LogLevelWarn, msg, args...)
}

// Error logs at error level.
func (l *ChatLogger) Error(msg string, args ...any) {
	l.log(slog.LevelError, LogLevelError, msg, args...)
}

// LogSpeakerSelection records the outcome of a next-speaker selection call.
func (l *ChatLogger) LogSpeakerSelection(strategy, speaker string, candidates int, dur time.Duration) {
	attrs := l.buildAttrs(
		slog.String("strategy", strategy),
		slog.String("speaker", speaker),
		slog.Int("candidates", candidates),
		slog.Duration("duration", dur),
	)
	l.logger.LogAttrs(context.Background(), slog.LevelInfo, "Next speaker selected", attrs...)
}

// LogArbiterCall records latency and success of a RolePlay arbitration call.
func (l *ChatLogger) LogArbiterCall(admin string, dur time.Duration, success bool, err error) {
	attrs := l.buildAttrs(
		slog.String("admin", admin),
		slog.Duration("duration", dur),
		slog.Bool("success", success),
	)
	level := slog.LevelInfo
	msg := "Arbiter call completed"
	if !success {
		level = slog.LevelError
		msg = "Arbiter call failed"
		if err != nil {
			attrs = append(attrs, slog.String("error", err.Error()))
		}
	}
	l.logger.LogAttrs(context.Background(), level, msg, attrs...)
}

// LogFunctionDispatch records execution details for a dispatched function call.
func (l *ChatLogger) LogFunctionDispatch(fn string, dur time.Duration, success bool, err error) {
	attrs := l.buildAttrs(
		slog.String("function", fn),
		slog.Duration("duration", dur),
		slog.Bool("success", success),
	)
	level := slog.LevelInfo
	msg := "Function dispatch completed"
	if !success {
		level = slog.LevelError
		msg = "Function dispatch failed"
		if err != nil {
			attrs = append(attrs, slog.String("error", err.Error()))
		}
	}
	l.logger.LogAttrs(context.Background(), level, msg, attrs...)
}
