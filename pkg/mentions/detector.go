// Package mentions detects which known users are verbally mentioned in an
// ASR-produced transcript. Matching is tolerant of transcription noise:
// homophones, dropped diacritics, casing, punctuation, and names the ASR
// splits across two words.
package mentions

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/antzucaro/matchr"

	naterrors "github.com/natlasdev/natlas/pkg/errors"
)

// DefaultSimilarityThreshold is the minimum normalized edit-distance
// similarity for a fuzzy match.
const DefaultSimilarityThreshold = 0.80

// minFuzzyLength guards very short names against spurious fuzzy and phonetic
// matches ("Ade" must not match "a").
const minFuzzyLength = 3

// Detector matches a roster of users against transcript text. It is stateless
// apart from its configuration and safe for concurrent use.
type Detector struct {
	// SimilarityThreshold is the minimum normalized similarity in (0, 1]
	// for a fuzzy match.
	SimilarityThreshold float64

	// Phonetic enables the soundalike-code matching pass.
	Phonetic bool
}

// NewDetector returns a Detector with default configuration.
func NewDetector() *Detector {
	return &Detector{
		SimilarityThreshold: DefaultSimilarityThreshold,
		Phonetic:            true,
	}
}

// match records where and how a candidate term matched.
type match struct {
	pos  int
	term string
	typ  MatchType
}

// Detect returns the subset of users whose name or handle appears in the
// transcript, in first-occurrence order. An empty transcript yields an empty
// result. Duplicate user IDs or an empty first name fail with ErrInvalidInput.
func (d *Detector) Detect(transcript string, users []User) (*Result, error) {
	if err := ValidateRoster(users); err != nil {
		return nil, err
	}

	result := &Result{UserIDs: []int64{}, Users: []MentionedUser{}}

	tokens := Tokenize(transcript)
	if len(tokens) == 0 {
		return result, nil
	}

	type hit struct {
		user  User
		match match
	}
	var hits []hit

	for _, u := range users {
		best, ok := d.earliestMatch(tokens, candidatesFor(u))
		if !ok {
			continue
		}
		hits = append(hits, hit{user: u, match: best})
	}

	// First-occurrence order; roster order breaks position ties.
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].match.pos < hits[j].match.pos
	})

	for _, h := range hits {
		result.UserIDs = append(result.UserIDs, h.user.UserID)
		result.Users = append(result.Users, MentionedUser{
			User:        h.user,
			MatchedText: h.match.term,
			MatchType:   h.match.typ,
		})
	}
	result.Count = len(result.UserIDs)

	return result, nil
}

// ValidateRoster rejects rosters the detector cannot report unambiguously:
// duplicate user IDs and empty first names fail with ErrInvalidInput. Callers
// that front expensive work (extraction, transcription) can validate up front.
func ValidateRoster(users []User) error {
	seen := make(map[int64]bool, len(users))
	for _, u := range users {
		if strings.TrimSpace(u.FirstName) == "" {
			return fmt.Errorf("user %d has empty first name: %w", u.UserID, naterrors.ErrInvalidInput)
		}
		if seen[u.UserID] {
			return fmt.Errorf("duplicate user id %d: %w", u.UserID, naterrors.ErrInvalidInput)
		}
		seen[u.UserID] = true
	}
	return nil
}

// earliestMatch scans the transcript tokens for the earliest position at which
// any candidate matches. At each position the policy is tried strongest first:
// exact, then fuzzy, then phonetic.
func (d *Detector) earliestMatch(tokens []string, candidates []string) (match, bool) {
	for pos := range tokens {
		for _, cand := range candidates {
			if typ, ok := d.matchAt(tokens, pos, cand); ok {
				return match{pos: pos, term: cand, typ: typ}, true
			}
		}
	}
	return match{}, false
}

// matchAt tests a candidate against the token at pos and against the 2-token
// window starting at pos. The window catches names the ASR split in two
// ("chi nedu" for "chinedu") and multi-word candidates ("ada obi").
func (d *Detector) matchAt(tokens []string, pos int, cand string) (MatchType, bool) {
	flat := strings.ReplaceAll(cand, " ", "")

	targets := []string{tokens[pos]}
	if pos+1 < len(tokens) {
		targets = append(targets, tokens[pos]+tokens[pos+1])
		if strings.Contains(cand, " ") {
			targets = append(targets, tokens[pos]+" "+tokens[pos+1])
		}
	}

	for _, target := range targets {
		if target == cand || target == flat {
			return MatchExact, true
		}
	}

	if len(flat) < minFuzzyLength {
		return "", false
	}

	for _, target := range targets {
		if similarity(flat, strings.ReplaceAll(target, " ", "")) >= d.SimilarityThreshold {
			return MatchFuzzy, true
		}
	}

	if d.Phonetic {
		key := matchr.Soundex(flat)
		for _, target := range targets {
			t := strings.ReplaceAll(target, " ", "")
			if len(t) >= minFuzzyLength && matchr.Soundex(t) == key {
				return MatchPhonetic, true
			}
		}
	}

	return "", false
}

// similarity returns the normalized edit-distance similarity of two strings,
// 1.0 for identical strings and 0.0 for entirely different ones.
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
