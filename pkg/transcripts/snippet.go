package transcripts

import "strings"

// snippet returns a window of text centered on the first match, adjusted to
// word boundaries, whitespace-collapsed, with ellipsis markers at truncated
// edges.
func (s *Searcher) snippet(text string, matchPos, matchLen int) string {
	window := s.SnippetWindow
	if window <= 0 {
		window = DefaultSnippetWindow
	}

	if len(text) <= window {
		return strings.Join(strings.Fields(text), " ")
	}

	center := matchPos + matchLen/2
	start := center - window/2
	if start < 0 {
		start = 0
	}
	end := start + window
	if end > len(text) {
		end = len(text)
		start = end - window
	}

	// Step out to word boundaries so the snippet never opens or closes
	// mid-word.
	for start > 0 && text[start] != ' ' && text[start] != '\n' {
		start--
	}
	for end < len(text) && text[end] != ' ' && text[end] != '\n' {
		end++
	}

	out := strings.Join(strings.Fields(text[start:end]), " ")
	if start > 0 {
		out = "..." + out
	}
	if end < len(text) {
		out = out + "..."
	}

	return out
}
