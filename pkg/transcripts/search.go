// Package transcripts provides fuzzy search over a corpus of video
// transcripts: scoring, ranking, and snippet extraction. Like the mention
// detector it is a pure function over its inputs and safe for concurrent use.
package transcripts

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	naterrors "github.com/natlasdev/natlas/pkg/errors"
	"github.com/natlasdev/natlas/pkg/mentions"
)

// Defaults for the search tunables.
const (
	DefaultSimilarityThreshold = 0.80
	DefaultSnippetWindow       = 100
)

// minFuzzyQueryLength guards short queries against spurious fuzzy matches,
// mirroring the short-name guard in mention detection.
const minFuzzyQueryLength = 4

// Searcher scores transcripts against a query string.
type Searcher struct {
	// SimilarityThreshold is the minimum normalized similarity for a fuzzy
	// token match, in (0, 1].
	SimilarityThreshold float64

	// SnippetWindow is the snippet width in characters.
	SnippetWindow int
}

// NewSearcher returns a Searcher with default configuration.
func NewSearcher() *Searcher {
	return &Searcher{
		SimilarityThreshold: DefaultSimilarityThreshold,
		SnippetWindow:       DefaultSnippetWindow,
	}
}

// Search returns one result per matching transcript, ordered by descending
// relevance; equal scores preserve input order. Transcripts with no match are
// excluded entirely. An empty query fails with ErrInvalidInput; an empty
// corpus or a corpus with no matches yields an empty slice, not an error.
func (s *Searcher) Search(query string, items []Transcript) ([]SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("empty query: %w", naterrors.ErrInvalidInput)
	}

	results := []SearchResult{}
	for _, item := range items {
		if strings.TrimSpace(item.Text) == "" {
			continue
		}
		if result, ok := s.evaluate(query, item); ok {
			results = append(results, result)
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Relevance > results[j].Relevance
	})

	return results, nil
}

// evaluate scores a single transcript against the query.
func (s *Searcher) evaluate(query string, item Transcript) (SearchResult, bool) {
	queryLower := strings.ToLower(strings.TrimSpace(query))
	textLower := strings.ToLower(item.Text)

	exactCount := strings.Count(textLower, queryLower)
	if exactCount > 0 {
		firstPos := strings.Index(textLower, queryLower)
		casePreserved := strings.Contains(item.Text, strings.TrimSpace(query))

		return SearchResult{
			VideoID:    item.VideoID,
			Snippet:    s.snippet(item.Text, firstPos, len(queryLower)),
			MatchCount: exactCount,
			Relevance: s.relevance(scoreInputs{
				exactCount:    exactCount,
				casePreserved: casePreserved,
				firstPos:      firstPos,
				textLen:       len(item.Text),
				wordCount:     len(strings.Fields(item.Text)),
			}),
		}, true
	}

	matchedToken, ok := s.fuzzyMatch(queryLower, item.Text)
	if !ok {
		return SearchResult{}, false
	}

	firstPos := strings.Index(textLower, matchedToken)
	if firstPos < 0 {
		firstPos = 0
	}

	return SearchResult{
		VideoID:    item.VideoID,
		Snippet:    s.snippet(item.Text, firstPos, len(matchedToken)),
		MatchCount: 1,
		Relevance: s.relevance(scoreInputs{
			fuzzyCount: 1,
			firstPos:   firstPos,
			textLen:    len(item.Text),
			wordCount:  len(strings.Fields(item.Text)),
		}),
	}, true
}

// fuzzyMatch looks for a token-level match: a single-word query matches any
// sufficiently similar transcript token; a multi-word query matches when every
// query word is found exactly or fuzzily, independent of order. It returns the
// earliest matched transcript token for snippet positioning.
func (s *Searcher) fuzzyMatch(queryLower, text string) (string, bool) {
	queryTokens := mentions.Tokenize(queryLower)
	if len(queryTokens) == 0 {
		return "", false
	}
	textTokens := mentions.Tokenize(text)

	earliest := -1
	for _, qt := range queryTokens {
		pos := s.findToken(qt, textTokens)
		if pos < 0 {
			return "", false
		}
		if earliest < 0 || pos < earliest {
			earliest = pos
		}
	}

	return textTokens[earliest], true
}

// findToken returns the position of the first transcript token equal or
// fuzzily similar to the query token, or -1.
func (s *Searcher) findToken(queryToken string, tokens []string) int {
	for i, tok := range tokens {
		if tok == queryToken {
			return i
		}
	}
	if len(queryToken) < minFuzzyQueryLength {
		return -1
	}
	for i, tok := range tokens {
		if similarity(queryToken, tok) >= s.SimilarityThreshold {
			return i
		}
	}
	return -1
}

// similarity returns the normalized edit-distance similarity of two strings.
func similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(longest)
}
