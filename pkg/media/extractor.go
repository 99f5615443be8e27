// Package media handles audio extraction from video containers via ffmpeg.
// The core never touches raw media; this package produces the 16 kHz mono WAV
// the transcriber consumes.
package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	naterrors "github.com/natlasdev/natlas/pkg/errors"
	"github.com/natlasdev/natlas/pkg/executor"
	"github.com/natlasdev/natlas/pkg/logging"
)

// Extractor extracts the audio track from a video file.
type Extractor interface {
	// Extract writes the video's audio track as a 16 kHz mono WAV in the
	// temp directory and returns its path.
	Extract(ctx context.Context, videoPath, videoID string) (string, error)

	// Probe returns the duration of a media file in seconds.
	Probe(ctx context.Context, path string) (float64, error)

	// Cleanup removes a previously extracted audio file.
	Cleanup(audioPath string)
}

type ffmpegExtractor struct {
	exec    executor.Executor
	tempDir string
	log     logging.Logger
}

// NewExtractor creates an ffmpeg-backed Extractor writing into tempDir.
func NewExtractor(exec executor.Executor, tempDir string, log logging.Logger) Extractor {
	return &ffmpegExtractor{exec: exec, tempDir: tempDir, log: log}
}

// Extract extracts audio from a video file.
func (f *ffmpegExtractor) Extract(ctx context.Context, videoPath, videoID string) (string, error) {
	if _, err := os.Stat(videoPath); err != nil {
		return "", fmt.Errorf("video file %q: %v: %w", videoPath, err, naterrors.ErrExtraction)
	}

	audioPath := filepath.Join(f.tempDir, videoID+"_audio.wav")

	// -vn drops the video stream; 16 kHz mono PCM is what the ASR model
	// expects.
	args := []string{
		"-i", videoPath,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-y",
		audioPath,
	}

	if _, err := f.exec.Execute(ctx, "ffmpeg", args...); err != nil {
		if strings.Contains(err.Error(), "does not contain any stream") ||
			strings.Contains(err.Error(), "Output file does not contain any stream") {
			return "", fmt.Errorf("no audio stream in %q: %w", videoPath, naterrors.ErrExtraction)
		}
		return "", fmt.Errorf("ffmpeg extract audio: %v: %w", err, naterrors.ErrExtraction)
	}

	f.log.Info("audio extracted", logging.F("video_id", videoID), logging.F("audio_path", audioPath))
	return audioPath, nil
}

// Probe returns the media duration in seconds using ffprobe.
func (f *ffmpegExtractor) Probe(ctx context.Context, path string) (float64, error) {
	out, err := f.exec.Execute(ctx, "ffprobe",
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	if err != nil {
		return 0, fmt.Errorf("ffprobe duration: %v: %w", err, naterrors.ErrExtraction)
	}

	seconds, err := strconv.ParseFloat(strings.TrimSpace(out), 64)
	if err != nil {
		return 0, fmt.Errorf("parsing ffprobe duration %q: %v: %w", out, err, naterrors.ErrExtraction)
	}

	return seconds, nil
}

// Cleanup deletes a temporary audio file. Failures are logged, not returned:
// a leftover temp file never fails the request.
func (f *ffmpegExtractor) Cleanup(audioPath string) {
	if audioPath == "" {
		return
	}
	if err := os.Remove(audioPath); err != nil && !os.IsNotExist(err) {
		f.log.Warn("cleanup failed", logging.F("audio_path", audioPath), logging.Err(err))
		return
	}
	f.log.Debug("cleaned up audio file", logging.F("audio_path", audioPath))
}
