package notation

import (
	"fmt"

	"github.com/sahilm/fuzzy"
)

// suggestKeyword returns the candidate closest to word, or "" when nothing
// is close. Candidates containing word as a subsequence rank first; failing
// that, a candidate that is itself a subsequence of word is accepted.
func suggestKeyword(word string, candidates []string) string {
	word = NormalizeKeyword(word)
	if word == "" || len(candidates) == 0 {
		return ""
	}

	if matches := fuzzy.Find(word, candidates); len(matches) > 0 {
		return matches[0].Str
	}

	var (
		best  string
		score int
	)

	target := []string{word}

	for _, c := range candidates {
		matches := fuzzy.Find(c, target)
		if len(matches) == 0 {
			continue
		}

		// Prefer the longest contained keyword.
		if n := len([]rune(c)); n > score {
			best, score = c, n
		}
	}

	return best
}

// suggestion renders a fix hint for an unrecognized keyword.
func suggestion(word string, candidates []string) string {
	if s := suggestKeyword(word, candidates); s != "" {
		return fmt.Sprintf("did you mean %q?", s)
	}

	return "check the keyword spelling or register it"
}
