package media

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	naterrors "github.com/natlasdev/natlas/pkg/errors"
	"github.com/natlasdev/natlas/pkg/logging"
)

// fakeExecutor records invocations and returns canned output.
type fakeExecutor struct {
	output string
	err    error
	name   string
	args   []string
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args ...string) (string, error) {
	f.name = name
	f.args = args
	return f.output, f.err
}

func writeTempVideo(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.mp4")
	require.NoError(t, os.WriteFile(path, []byte("not really a video"), 0o644))
	return path
}

func TestExtract_InvokesFFmpeg(t *testing.T) {
	exec := &fakeExecutor{}
	tempDir := t.TempDir()
	ext := NewExtractor(exec, tempDir, logging.NopLogger())

	videoPath := writeTempVideo(t)
	audioPath, err := ext.Extract(context.Background(), videoPath, "vid-1")
	require.NoError(t, err)

	assert.Equal(t, "ffmpeg", exec.name)
	assert.Equal(t, filepath.Join(tempDir, "vid-1_audio.wav"), audioPath)
	assert.Contains(t, exec.args, "-vn")
	assert.Contains(t, exec.args, "16000")
	assert.Contains(t, exec.args, "pcm_s16le")
}

func TestExtract_MissingFile(t *testing.T) {
	ext := NewExtractor(&fakeExecutor{}, t.TempDir(), logging.NopLogger())

	_, err := ext.Extract(context.Background(), "/does/not/exist.mp4", "vid-1")
	require.Error(t, err)
	assert.True(t, naterrors.IsExtraction(err))
}

func TestExtract_FFmpegFailure(t *testing.T) {
	exec := &fakeExecutor{err: errors.New("Output file does not contain any stream")}
	ext := NewExtractor(exec, t.TempDir(), logging.NopLogger())

	_, err := ext.Extract(context.Background(), writeTempVideo(t), "vid-1")
	require.Error(t, err)
	assert.True(t, naterrors.IsExtraction(err))
}

func TestProbe_ParsesDuration(t *testing.T) {
	exec := &fakeExecutor{output: "123.45\n"}
	ext := NewExtractor(exec, t.TempDir(), logging.NopLogger())

	seconds, err := ext.Probe(context.Background(), "/tmp/audio.wav")
	require.NoError(t, err)

	assert.Equal(t, "ffprobe", exec.name)
	assert.Equal(t, 123.45, seconds)
}

func TestProbe_UnparseableOutput(t *testing.T) {
	exec := &fakeExecutor{output: "N/A"}
	ext := NewExtractor(exec, t.TempDir(), logging.NopLogger())

	_, err := ext.Probe(context.Background(), "/tmp/audio.wav")
	require.Error(t, err)
	assert.True(t, naterrors.IsExtraction(err))
}

func TestCleanup_RemovesFile(t *testing.T) {
	ext := NewExtractor(&fakeExecutor{}, t.TempDir(), logging.NopLogger())

	path := filepath.Join(t.TempDir(), "vid_audio.wav")
	require.NoError(t, os.WriteFile(path, []byte("wav"), 0o644))

	ext.Cleanup(path)

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestCleanup_MissingFileIsQuiet(t *testing.T) {
	ext := NewExtractor(&fakeExecutor{}, t.TempDir(), logging.NopLogger())
	ext.Cleanup("/does/not/exist.wav") // must not panic
	ext.Cleanup("")
}
