package transcripts

import "math"

// Relevance weights. Density dominates; exactness and early position add
// smaller boosts. The sum of weights is 1 so the score stays in [0,1].
const (
	densityWeight  = 0.70
	exactWeight    = 0.15
	positionWeight = 0.15
)

type scoreInputs struct {
	exactCount    int
	fuzzyCount    int
	casePreserved bool
	firstPos      int
	textLen       int
	wordCount     int
}

// relevance combines match density, exactness, and match position into a
// normalized [0,1] score. Exact, dense, early matches approach 1.0; a single
// fuzzy match in a long transcript scores low but nonzero.
func (s *Searcher) relevance(in scoreInputs) float64 {
	if in.wordCount == 0 {
		return 0
	}

	// Occurrences per 100 words, squashed so extra occurrences keep raising
	// the score without ever saturating it.
	weighted := float64(in.exactCount) + 0.5*float64(in.fuzzyCount)
	density := weighted / math.Max(1, float64(in.wordCount)/100.0)
	densityScore := density / (density + 1)

	exactScore := 0.0
	if in.exactCount > 0 {
		exactScore = 0.6
		if in.casePreserved {
			exactScore = 1.0
		}
	}

	positionScore := 0.0
	if in.textLen > 0 {
		positionScore = 1.0 - float64(in.firstPos)/float64(in.textLen)
	}

	score := densityWeight*densityScore + exactWeight*exactScore + positionWeight*positionScore

	return math.Min(1.0, math.Max(0.0, score))
}
