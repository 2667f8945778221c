package quiz

import (
	"strings"

	"github.com/dohyun/jumble/internal/sentencegen"
)

// Evaluate decides exact-match correctness of a reconstruction.
// The canonical sentence has its punctuation set stripped, both sides
// are lowercased and trimmed, then compared for equality. Word order
// matters — that is the point of the exercise. No partial credit.
func Evaluate(canonical, submitted string) bool {
	c := normalize(sentencegen.StripPunctuation(canonical))
	s := normalize(submitted)
	return c == s
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
