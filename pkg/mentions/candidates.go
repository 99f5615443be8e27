package mentions

import "strings"

// candidatesFor builds the normalized candidate terms for a user: first name,
// last name, full name, and username variants. A candidate may span multiple
// tokens ("ada obi", "nedu codes").
func candidatesFor(u User) []string {
	seen := make(map[string]bool)
	var out []string

	add := func(term string) {
		normalized := Normalize(term)
		if normalized == "" || seen[normalized] {
			return
		}
		seen[normalized] = true
		out = append(out, normalized)
	}

	add(u.FirstName)
	add(u.LastName)
	if u.LastName != "" {
		add(u.FirstName + " " + u.LastName)
	}

	if u.Username != "" {
		username := strings.TrimLeft(u.Username, "@")

		// "nedu_codes" -> "nedu codes", plus "nedu" and "codes" individually
		add(username)
		for _, word := range strings.Fields(Normalize(username)) {
			add(word)
		}

		// "nedu_codes" -> "neducodes"
		joined := strings.NewReplacer("_", "", ".", "", "@", "").Replace(username)
		add(joined)

		// "millennium.py" -> "millennium"
		if base, _, found := strings.Cut(username, "."); found {
			add(base)
		}
	}

	return out
}
