package mentions

// User is a roster entry supplied by the caller per request. The core never
// creates or persists users; it only matches against them.
type User struct {
	// UserID is the caller-assigned unique identifier.
	UserID int64 `json:"user_id"`

	// FirstName is required and non-empty.
	FirstName string `json:"first_name"`

	// LastName is optional.
	LastName string `json:"last_name,omitempty"`

	// Username is an optional handle, with or without a leading @.
	Username string `json:"username,omitempty"`
}

// MatchType indicates how a mention was matched.
type MatchType string

const (
	// MatchExact is a token-for-token equality match.
	MatchExact MatchType = "exact"

	// MatchFuzzy is an edit-distance similarity match above the threshold.
	MatchFuzzy MatchType = "fuzzy"

	// MatchPhonetic is a soundalike-code equality match.
	MatchPhonetic MatchType = "phonetic"
)

// MentionedUser is a single detected mention.
type MentionedUser struct {
	User

	// MatchedText is the candidate term that matched.
	MatchedText string `json:"matched_term"`

	// MatchType records how the candidate matched.
	MatchType MatchType `json:"match_type"`
}

// Result is the outcome of a detection pass over one transcript.
type Result struct {
	// UserIDs holds the mentioned user IDs in first-occurrence order,
	// each ID at most once.
	UserIDs []int64 `json:"mentioned_user_ids"`

	// Users holds the corresponding mention details, same order as UserIDs.
	Users []MentionedUser `json:"mentioned_users"`

	// Count is len(UserIDs).
	Count int `json:"mention_count"`
}
