// Package client provides HTTP clients for the external collaborators of the
// natlas core, currently the ASR inference server. Transport failures are
// retried; model failures surface as ErrTranscription.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	naterrors "github.com/natlasdev/natlas/pkg/errors"
	"github.com/natlasdev/natlas/pkg/logging"
)

// Transcription is the ASR model's output for one audio file.
type Transcription struct {
	// Text is the full transcript.
	Text string `json:"text"`

	// DurationSeconds is the audio duration reported by the model.
	DurationSeconds float64 `json:"duration_seconds"`

	// Language is the detected language tag, when the model reports one.
	Language string `json:"language,omitempty"`
}

// Transcriber converts an audio file into a transcript.
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (*Transcription, error)
}

// ASRClient talks to an ASR inference server over HTTP.
type ASRClient struct {
	endpoint string
	model    string
	http     *retryablehttp.Client
	log      logging.Logger
}

// NewASRClient creates a Transcriber for the given inference endpoint and
// model identifier.
func NewASRClient(endpoint, model string, log logging.Logger) *ASRClient {
	c := retryablehttp.NewClient()
	c.RetryMax = 3
	c.RetryWaitMin = 500 * time.Millisecond
	c.RetryWaitMax = 5 * time.Second
	c.Logger = nil

	return &ASRClient{
		endpoint: endpoint,
		model:    model,
		http:     c,
		log:      log,
	}
}

// errorResponse is the inference server's failure payload.
type errorResponse struct {
	Error string `json:"error"`
}

// Transcribe uploads the audio file and returns the model's transcript.
func (c *ASRClient) Transcribe(ctx context.Context, audioPath string) (*Transcription, error) {
	audio, err := os.Open(audioPath)
	if err != nil {
		return nil, fmt.Errorf("opening audio file: %v: %w", err, naterrors.ErrTranscription)
	}
	defer audio.Close()

	var body bytes.Buffer
	form := multipart.NewWriter(&body)

	part, err := form.CreateFormFile("audio", filepath.Base(audioPath))
	if err != nil {
		return nil, fmt.Errorf("building upload form: %v: %w", err, naterrors.ErrTranscription)
	}
	if _, err := io.Copy(part, audio); err != nil {
		return nil, fmt.Errorf("reading audio file: %v: %w", err, naterrors.ErrTranscription)
	}
	if err := form.WriteField("model", c.model); err != nil {
		return nil, fmt.Errorf("building upload form: %v: %w", err, naterrors.ErrTranscription)
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("building upload form: %v: %w", err, naterrors.ErrTranscription)
	}

	url := c.endpoint + "/transcribe"
	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, url, body.Bytes())
	if err != nil {
		return nil, fmt.Errorf("building request: %v: %w", err, naterrors.ErrTranscription)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calling ASR endpoint: %v: %w", err, naterrors.ErrTranscription)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errResp errorResponse
		msg := resp.Status
		if json.NewDecoder(resp.Body).Decode(&errResp) == nil && errResp.Error != "" {
			msg = errResp.Error
		}
		return nil, fmt.Errorf("ASR endpoint: %s: %w", msg, naterrors.ErrTranscription)
	}

	var result Transcription
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding ASR response: %v: %w", err, naterrors.ErrTranscription)
	}

	c.log.Info("transcription complete",
		logging.F("model", c.model),
		logging.F("duration_seconds", result.DurationSeconds),
		logging.F("elapsed_ms", time.Since(started).Milliseconds()),
	)

	return &result, nil
}
