package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	naterrors "github.com/natlasdev/natlas/pkg/errors"
	"github.com/natlasdev/natlas/pkg/logging"
)

func writeTempAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audio.wav")
	require.NoError(t, os.WriteFile(path, []byte("RIFF fake wav"), 0o644))
	return path
}

func TestTranscribe_Success(t *testing.T) {
	var gotModel string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))
		gotModel = r.FormValue("model")

		_, _, err := r.FormFile("audio")
		require.NoError(t, err)

		json.NewEncoder(w).Encode(Transcription{
			Text:            "chinedu spoke about the budget",
			DurationSeconds: 42.5,
			Language:        "en-NG",
		})
	}))
	defer server.Close()

	c := NewASRClient(server.URL, "NCAIR1/NigerianAccentedEnglish", logging.NopLogger())

	result, err := c.Transcribe(context.Background(), writeTempAudio(t))
	require.NoError(t, err)

	assert.Equal(t, "NCAIR1/NigerianAccentedEnglish", gotModel)
	assert.Equal(t, "chinedu spoke about the budget", result.Text)
	assert.Equal(t, 42.5, result.DurationSeconds)
}

func TestTranscribe_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(map[string]string{"error": "unsupported sample rate"})
	}))
	defer server.Close()

	c := NewASRClient(server.URL, "test-model", logging.NopLogger())

	_, err := c.Transcribe(context.Background(), writeTempAudio(t))
	require.Error(t, err)
	assert.True(t, naterrors.IsTranscription(err))
	assert.Contains(t, err.Error(), "unsupported sample rate")
}

func TestTranscribe_MissingAudioFile(t *testing.T) {
	c := NewASRClient("http://localhost:0", "test-model", logging.NopLogger())

	_, err := c.Transcribe(context.Background(), "/does/not/exist.wav")
	require.Error(t, err)
	assert.True(t, naterrors.IsTranscription(err))
}

func TestTranscribe_RetriesTransientFailure(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(Transcription{Text: "ok", DurationSeconds: 1})
	}))
	defer server.Close()

	c := NewASRClient(server.URL, "test-model", logging.NopLogger())

	result, err := c.Transcribe(context.Background(), writeTempAudio(t))
	require.NoError(t, err)
	assert.Equal(t, "ok", result.Text)
	assert.Equal(t, 2, attempts)
}
