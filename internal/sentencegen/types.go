package sentencegen

// Sentence is one generated learning item, ready to be reconstructed.
type Sentence struct {
	// Original is the canonical, punctuation-bearing sentence from the
	// generator.
	Original string `json:"original_sentence"`

	// Korean is the translation hint shown to the learner. Informational
	// only; never scored.
	Korean string `json:"korean_translation"`

	// Tokens is the canonical word order with punctuation stripped.
	Tokens []string `json:"tokens"`

	// ScrambledTokens is a permutation of Tokens presented as tiles.
	ScrambledTokens []string `json:"shuffled_words"`
}

// GenerateInput holds everything needed to request a sentence set.
type GenerateInput struct {
	Difficulty  Difficulty
	Environment string
	Count       int // 0 means the configured default
}
