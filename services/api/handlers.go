package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/natlasdev/natlas/pkg/buildinfo"
	naterrors "github.com/natlasdev/natlas/pkg/errors"
	"github.com/natlasdev/natlas/pkg/logging"
	"github.com/natlasdev/natlas/pkg/transcripts"
	"github.com/natlasdev/natlas/services/pipeline"
)

// handlers holds the dependencies the HTTP endpoints call into.
type handlers struct {
	pipeline    *pipeline.Service
	searcher    *transcripts.Searcher
	log         logging.Logger
	metrics     *Metrics
	modelLoaded bool
}

// handleHealth reports liveness and whether the ASR collaborator is wired.
func (h *handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:      "healthy",
		ModelLoaded: h.modelLoaded,
		Version:     buildinfo.Version,
	})
}

// handleProcessVideo runs the extract -> transcribe -> detect pipeline.
func (h *handlers) handleProcessVideo(w http.ResponseWriter, r *http.Request) {
	var req ProcessVideoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, fmt.Errorf("malformed request body: %w", naterrors.ErrInvalidInput))
		return
	}
	if req.VideoPath == "" || req.VideoID == "" {
		h.writeError(w, r, fmt.Errorf("video_path and video_id are required: %w", naterrors.ErrInvalidInput))
		return
	}

	result, err := h.pipeline.ProcessVideo(r.Context(), req.VideoPath, req.VideoID, req.Users)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.metrics.MentionsTotal.Add(float64(result.Mentions.Count))

	writeJSON(w, http.StatusOK, ProcessVideoResponse{
		VideoID:          result.VideoID,
		MentionedUserIDs: result.Mentions.UserIDs,
		MentionedUsers:   result.Mentions.Users,
		MentionCount:     result.Mentions.Count,
		Transcript:       result.Transcript,
		DurationSeconds:  result.DurationSeconds,
		ProcessedAt:      result.ProcessedAt.Format(time.RFC3339),
		Status:           "success",
	})
}

// handleSearch ranks the submitted transcripts against the query.
func (h *handlers) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, fmt.Errorf("malformed request body: %w", naterrors.ErrInvalidInput))
		return
	}

	results, err := h.searcher.Search(req.Query, req.Transcripts)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	h.metrics.SearchHitsTotal.Add(float64(len(results)))

	writeJSON(w, http.StatusOK, SearchResponse{
		Query:        req.Query,
		Results:      results,
		TotalResults: len(results),
	})
}

// writeError maps domain errors onto HTTP status codes. Invalid input and
// extraction failures are the caller's fault; transcription failures are not.
func (h *handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case naterrors.IsInvalidInput(err), naterrors.IsExtraction(err):
		status = http.StatusBadRequest
	case naterrors.IsNotFound(err):
		status = http.StatusNotFound
	}

	if status >= 500 {
		h.log.WithContext(r.Context()).Error("request failed", logging.Err(err))
	} else {
		h.log.WithContext(r.Context()).Warn("request rejected", logging.Err(err))
	}

	writeJSON(w, status, ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
