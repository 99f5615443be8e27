package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsInvalidInput(t *testing.T) {
	assert.True(t, IsInvalidInput(ErrInvalidInput))
	assert.True(t, IsInvalidInput(fmt.Errorf("empty query: %w", ErrInvalidInput)))
	assert.False(t, IsInvalidInput(ErrExtraction))
	assert.False(t, IsInvalidInput(nil))
}

func TestIsExtraction(t *testing.T) {
	assert.True(t, IsExtraction(fmt.Errorf("no audio stream: %w", ErrExtraction)))
	assert.False(t, IsExtraction(ErrTranscription))
}

func TestIsTranscription(t *testing.T) {
	wrapped := fmt.Errorf("asr endpoint returned 503: %w", ErrTranscription)
	assert.True(t, IsTranscription(wrapped))
	assert.False(t, IsTranscription(ErrInvalidInput))
}

func TestWrappingPreservesMessage(t *testing.T) {
	err := fmt.Errorf("duplicate user id 42: %w", ErrInvalidInput)
	assert.EqualError(t, err, "duplicate user id 42: invalid input")
}
