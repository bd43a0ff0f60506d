package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevel_String(t *testing.T) {
	assert.Equal(t, "DEBUG", LogLevelDebug.String())
	assert.Equal(t, "INFO", LogLevelInfo.String())
	assert.Equal(t, "WARN", LogLevelWarn.String())
	assert.Equal(t, "ERROR", LogLevelError.String())
	assert.Equal(t, "UNKNOWN", LogLevel(42).String())
}

func TestNoOpLogger(t *testing.T) {
	var logger Logger = NoOpLogger{}

	// Must not panic regardless of arguments.
	logger.Debug("msg", "k", "v")
	logger.Info("msg")
	logger.Warn("msg", "odd")
	logger.Error("msg", "k", "v")
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestChatLogger_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	logger := NewChatLogger(&ChatLoggerConfig{
		Level:     LogLevelInfo,
		Format:    "json",
		Output:    &buf,
		Component: "orchestrator",
	})

	logger.Info("Next speaker selected", "speaker", "alice")

	entry := decodeLine(t, &buf)
	assert.Equal(t, "Next speaker selected", entry["msg"])
	assert.Equal(t, "orchestrator", entry["component"])
	assert.Equal(t, "alice", entry["speaker"])
}

func TestChatLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewChatLogger(&ChatLoggerConfig{Level: LogLevelWarn, Output: &buf})

	logger.Debug("dropped")
	logger.Info("dropped")
	assert.Zero(t, buf.Len())

	logger.Warn("kept")
	assert.NotZero(t, buf.Len())
}

func TestChatLogger_WithHelpersClone(t *testing.T) {
	var buf bytes.Buffer
	base := NewChatLogger(&ChatLoggerConfig{Level: LogLevelInfo, Output: &buf})

	scoped := base.
		WithComponent("groupchat").
		WithConversation("conv-1").
		WithContext("round", 3)

	scoped.Info("tick")

	entry := decodeLine(t, &buf)
	assert.Equal(t, "groupchat", entry["component"])
	assert.Equal(t, "conv-1", entry["conversation_id"])
	assert.Equal(t, float64(3), entry["round"])

	buf.Reset()
	base.Info("tick")
	entry = decodeLine(t, &buf)
	assert.NotContains(t, entry, "component", "the base logger is unchanged")
	assert.NotContains(t, entry, "round")
}

func TestChatLogger_DomainHelpers(t *testing.T) {
	var buf bytes.Buffer
	logger := NewChatLogger(&ChatLoggerConfig{Level: LogLevelInfo, Output: &buf})

	logger.LogSpeakerSelection("roleplay", "bob", 3, 5*time.Millisecond)
	entry := decodeLine(t, &buf)
	assert.Equal(t, "Next speaker selected", entry["msg"])
	assert.Equal(t, "roleplay", entry["strategy"])
	assert.Equal(t, "bob", entry["speaker"])

	buf.Reset()
	logger.LogArbiterCall("admin", time.Millisecond, false, errors.New("timeout"))
	entry = decodeLine(t, &buf)
	assert.Equal(t, "Arbiter call failed", entry["msg"])
	assert.Equal(t, "timeout", entry["error"])

	buf.Reset()
	logger.LogFunctionDispatch("get_weather", time.Millisecond, true, nil)
	entry = decodeLine(t, &buf)
	assert.Equal(t, "Function dispatch completed", entry["msg"])
	assert.Equal(t, "get_weather", entry["function"])
}
