package sentencegen

import (
	"math/rand/v2"
	"strings"
)

// punctuation is the set stripped before tokenizing and comparing.
const punctuation = "?!."

// StripPunctuation removes the fixed punctuation set from s.
func StripPunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(punctuation, r) {
			return -1
		}
		return r
	}, s)
}

// Tokenize derives the canonical token sequence from a sentence:
// punctuation stripped, split on whitespace, empty fragments dropped.
func Tokenize(sentence string) []string {
	return strings.Fields(StripPunctuation(sentence))
}

// Scramble returns a uniform random permutation of tokens using the
// Fisher-Yates shuffle. The input is not modified. When the shuffle
// happens to reproduce the original order and there is more than one
// token, it reshuffles once — not indefinitely, so inputs like repeated
// words cannot loop forever.
func Scramble(tokens []string) []string {
	out := make([]string, len(tokens))
	copy(out, tokens)
	if len(out) < 2 {
		return out
	}

	shuffle(out)
	if equalOrder(out, tokens) {
		shuffle(out)
	}
	return out
}

func shuffle(s []string) {
	for i := len(s) - 1; i > 0; i-- {
		j := rand.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}

func equalOrder(a, b []string) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
