package transcripts

// Transcript pairs a video identifier with its transcript text. Supplied per
// search request; never persisted by the core.
type Transcript struct {
	VideoID string `json:"video_id"`
	Text    string `json:"transcript"`
}

// SearchResult is one matching transcript.
type SearchResult struct {
	VideoID string `json:"video_id"`

	// Snippet is a bounded excerpt around the first match, for display.
	Snippet string `json:"snippet"`

	// MatchCount is the number of non-overlapping occurrences of the query,
	// at least 1 for any returned result.
	MatchCount int `json:"match_count"`

	// Relevance is a normalized [0,1] measure of match strength.
	Relevance float64 `json:"relevance_score"`
}
