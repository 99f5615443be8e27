package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLogger(buf *bytes.Buffer, level Level) Logger {
	return NewLogger(&Config{
		Level:       level,
		ServiceName: "natlas-test",
		Environment: "test",
		JSONFormat:  true,
		Output:      buf,
	})
}

func TestLoggerJSONOutput(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf, LevelInfo)

	log.Info("transcription complete", F("video_id", "vid-1"), F("duration", 12.5))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "transcription complete", entry["message"])
	assert.Equal(t, "vid-1", entry["video_id"])
	assert.Equal(t, 12.5, entry["duration"])
	assert.Equal(t, "natlas-test", entry["service_name"])
	assert.Equal(t, "test", entry["environment"])
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf, LevelWarn)

	log.Debug("not emitted")
	log.Info("not emitted")
	assert.Zero(t, buf.Len())

	log.Warn("emitted")
	assert.Contains(t, buf.String(), "emitted")
}

func TestLoggerWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf, LevelInfo).With(F("component", "detector"))

	log.Info("mention found")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "detector", entry["component"])
}

func TestLoggerWithContextRequestID(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf, LevelInfo)

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-123")
	log.WithContext(ctx).Info("handling request")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-123", entry["request_id"])
}

func TestLoggerErrField(t *testing.T) {
	var buf bytes.Buffer
	log := newTestLogger(&buf, LevelInfo)

	log.Error("extraction failed", Err(errors.New("no audio stream")))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "no audio stream", entry["error"])
}
