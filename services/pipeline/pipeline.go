// Package pipeline orchestrates video processing: audio extraction,
// transcription, and mention detection. The pipeline owns the temp audio
// lifecycle and never retries the pure matching stage; collaborator errors
// propagate to the caller unchanged.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/natlasdev/natlas/client"
	naterrors "github.com/natlasdev/natlas/pkg/errors"
	"github.com/natlasdev/natlas/pkg/logging"
	"github.com/natlasdev/natlas/pkg/media"
	"github.com/natlasdev/natlas/pkg/mentions"
)

// TracerName identifies pipeline spans.
const TracerName = "natlas.pipeline"

// Span names for the processing stages.
const (
	spanProcessVideo = "pipeline.process_video"
	spanExtract      = "pipeline.extract_audio"
	spanTranscribe   = "pipeline.transcribe"
	spanDetect       = "pipeline.detect_mentions"
)

// ProcessResult is the outcome of processing one video.
type ProcessResult struct {
	VideoID         string           `json:"video_id"`
	Transcript      string           `json:"transcript"`
	DurationSeconds float64          `json:"duration_seconds"`
	Mentions        *mentions.Result `json:"mentions"`
	ProcessedAt     time.Time        `json:"processed_at"`
}

// Service wires the collaborators into the process-video flow.
type Service struct {
	extractor   media.Extractor
	transcriber client.Transcriber
	detector    *mentions.Detector
	log         logging.Logger
	tracer      trace.Tracer
}

// New creates a pipeline Service.
func New(extractor media.Extractor, transcriber client.Transcriber, detector *mentions.Detector, log logging.Logger) *Service {
	return &Service{
		extractor:   extractor,
		transcriber: transcriber,
		detector:    detector,
		log:         log,
		tracer:      otel.Tracer(TracerName),
	}
}

// ProcessVideo extracts audio, transcribes it, and detects mentions of the
// roster users in the transcript. The extracted audio file is removed before
// returning, success or not.
func (s *Service) ProcessVideo(ctx context.Context, videoPath, videoID string, users []mentions.User) (*ProcessResult, error) {
	ctx, span := s.tracer.Start(ctx, spanProcessVideo,
		trace.WithAttributes(attribute.String("video_id", videoID)),
	)
	defer span.End()

	// Reject bad rosters before paying for extraction and transcription.
	if err := mentions.ValidateRoster(users); err != nil {
		return nil, s.fail(span, err)
	}

	log := s.log.WithContext(ctx).With(logging.F("video_id", videoID))
	log.Info("processing video", logging.F("video_path", videoPath), logging.F("roster_size", len(users)))

	audioPath, err := s.extractAudio(ctx, videoPath, videoID)
	if err != nil {
		return nil, s.fail(span, err)
	}
	defer s.extractor.Cleanup(audioPath)

	transcription, err := s.transcribe(ctx, audioPath)
	if err != nil {
		return nil, s.fail(span, err)
	}

	result, err := s.detect(ctx, transcription.Text, users)
	if err != nil {
		return nil, s.fail(span, err)
	}

	log.Info("video processed",
		logging.F("duration_seconds", transcription.DurationSeconds),
		logging.F("mention_count", result.Count),
	)

	return &ProcessResult{
		VideoID:         videoID,
		Transcript:      transcription.Text,
		DurationSeconds: transcription.DurationSeconds,
		Mentions:        result,
		ProcessedAt:     time.Now().UTC(),
	}, nil
}

func (s *Service) extractAudio(ctx context.Context, videoPath, videoID string) (string, error) {
	ctx, span := s.tracer.Start(ctx, spanExtract)
	defer span.End()

	audioPath, err := s.extractor.Extract(ctx, videoPath, videoID)
	if err != nil {
		return "", s.fail(span, err)
	}
	return audioPath, nil
}

func (s *Service) transcribe(ctx context.Context, audioPath string) (*client.Transcription, error) {
	ctx, span := s.tracer.Start(ctx, spanTranscribe)
	defer span.End()

	if s.transcriber == nil {
		return nil, s.fail(span, fmt.Errorf("no ASR endpoint configured: %w", naterrors.ErrTranscription))
	}

	transcription, err := s.transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return nil, s.fail(span, err)
	}
	span.SetAttributes(attribute.Float64("duration_seconds", transcription.DurationSeconds))
	return transcription, nil
}

func (s *Service) detect(ctx context.Context, transcript string, users []mentions.User) (*mentions.Result, error) {
	_, span := s.tracer.Start(ctx, spanDetect,
		trace.WithAttributes(attribute.Int("roster_size", len(users))),
	)
	defer span.End()

	result, err := s.detector.Detect(transcript, users)
	if err != nil {
		return nil, s.fail(span, err)
	}
	span.SetAttributes(attribute.Int("mention_count", result.Count))
	return result, nil
}

// fail records the error on the span and passes it through.
func (s *Service) fail(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}
