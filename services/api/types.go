package api

import (
	"github.com/natlasdev/natlas/pkg/mentions"
	"github.com/natlasdev/natlas/pkg/transcripts"
)

// ProcessVideoRequest asks the service to transcribe a video and detect
// mentions of the supplied users.
type ProcessVideoRequest struct {
	VideoPath string          `json:"video_path"`
	VideoID   string          `json:"video_id"`
	Users     []mentions.User `json:"users"`
}

// ProcessVideoResponse carries the transcript (for the caller to store) and
// the detected mentions (for tagging).
type ProcessVideoResponse struct {
	VideoID          string                   `json:"video_id"`
	MentionedUserIDs []int64                  `json:"mentioned_user_ids"`
	MentionedUsers   []mentions.MentionedUser `json:"mentioned_users"`
	MentionCount     int                      `json:"mention_count"`
	Transcript       string                   `json:"transcript"`
	DurationSeconds  float64                  `json:"duration_seconds"`
	ProcessedAt      string                   `json:"processed_at"`
	Status           string                   `json:"status"`
}

// SearchRequest asks the service to rank the supplied transcripts against a
// query. The caller owns transcript storage and sends the corpus per request.
type SearchRequest struct {
	Query       string                   `json:"query"`
	Transcripts []transcripts.Transcript `json:"transcripts"`
}

// SearchResponse lists the matching transcripts in relevance order.
type SearchResponse struct {
	Query        string                     `json:"query"`
	Results      []transcripts.SearchResult `json:"results"`
	TotalResults int                        `json:"total_results"`
}

// HealthResponse reports service liveness.
type HealthResponse struct {
	Status      string `json:"status"`
	ModelLoaded bool   `json:"model_loaded"`
	Version     string `json:"version"`
}

// ErrorResponse is the uniform failure payload.
type ErrorResponse struct {
	Error string `json:"error"`
}
