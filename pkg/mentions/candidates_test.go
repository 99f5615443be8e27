package mentions

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCandidatesFor_FirstNameOnly(t *testing.T) {
	cands := candidatesFor(User{UserID: 1, FirstName: "Chinedu"})
	assert.Equal(t, []string{"chinedu"}, cands)
}

func TestCandidatesFor_FullName(t *testing.T) {
	cands := candidatesFor(User{UserID: 1, FirstName: "Ada", LastName: "Obi"})
	assert.Equal(t, []string{"ada", "obi", "ada obi"}, cands)
}

func TestCandidatesFor_UsernameVariants(t *testing.T) {
	cands := candidatesFor(User{UserID: 1, FirstName: "Chinedu", Username: "@nedu_codes"})

	assert.Contains(t, cands, "chinedu")
	assert.Contains(t, cands, "nedu codes")
	assert.Contains(t, cands, "nedu")
	assert.Contains(t, cands, "codes")
	assert.Contains(t, cands, "neducodes")
}

func TestCandidatesFor_DottedUsername(t *testing.T) {
	cands := candidatesFor(User{UserID: 1, FirstName: "Emeka", Username: "millennium.py"})

	assert.Contains(t, cands, "millennium py")
	assert.Contains(t, cands, "millenniumpy")
	assert.Contains(t, cands, "millennium")
}

func TestCandidatesFor_Deduplicates(t *testing.T) {
	cands := candidatesFor(User{UserID: 1, FirstName: "Nedu", Username: "nedu"})
	assert.Equal(t, []string{"nedu"}, cands)
}
