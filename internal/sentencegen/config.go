package sentencegen

import "fmt"

// levelSpec encodes the per-difficulty generation constraints.
type levelSpec struct {
	Words   string // word-count range, e.g. "3-8"
	Grammar string
	Vocab   string
	Avoid   string
	Include string
}

// levelSpecs is the static difficulty table. Validated at startup via
// Config.Validate; not built from free-form string interpolation.
var levelSpecs = map[Difficulty]levelSpec{
	DifficultyEasy: {
		Words:   "3-8",
		Grammar: "simple tenses only",
		Vocab:   "basic 1000 words",
		Avoid:   "idioms, phrasal verbs",
	},
	DifficultyMedium: {
		Words:   "6-12",
		Grammar: "perfect/continuous/conditionals",
		Vocab:   "3000 words + phrasal verbs",
		Include: "common idioms",
	},
	DifficultyHard: {
		Words:   "10-15",
		Grammar: "all tenses + subjunctive",
		Vocab:   "advanced + idioms",
		Include: "cultural expressions",
	},
}

// environmentTopics maps the known situational environments to topic
// hints. Free-text environments fall back to general conversation.
var environmentTopics = map[string][]string{
	"일상":   {"morning routine", "weekend plans", "weather chat", "hobbies"},
	"회사":   {"meeting request", "deadline talk", "project update", "team lunch"},
	"쇼핑":   {"price check", "size inquiry", "return policy", "discount"},
	"여행":   {"directions", "check-in", "local tips", "transportation"},
	"레스토랑": {"reservation", "order", "dietary needs", "bill payment"},
	"병원":   {"symptoms", "appointment", "prescription", "insurance"},
	"학교":   {"homework", "schedule", "grades", "activities"},
	"공항":   {"boarding", "baggage", "customs", "delays"},
}

// defaultTopics is used for environments outside the known set.
var defaultTopics = []string{"general conversation"}

// topicsFor returns the topic hints for an environment.
func topicsFor(environment string) []string {
	if topics, ok := environmentTopics[environment]; ok {
		return topics
	}
	return defaultTopics
}

// DefaultSentenceCount is how many sentences a quiz round requests
// when nothing overrides it.
const DefaultSentenceCount = 5

// Config controls the sentence generator.
type Config struct {
	// SentenceCount is how many sentences one quiz requests.
	SentenceCount int

	// MaxTokens is the token budget for the model response.
	MaxTokens int

	// Temperature controls model output randomness (0.0-1.0).
	Temperature float64
}

// DefaultConfig returns the standard generator configuration.
func DefaultConfig() Config {
	return Config{
		SentenceCount: DefaultSentenceCount,
		MaxTokens:     1024,
		Temperature:   0.8,
	}
}

// Validate checks the config and the static tables it depends on.
func (c Config) Validate() error {
	if c.SentenceCount <= 0 {
		return fmt.Errorf("sentence count must be positive, got %d", c.SentenceCount)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive, got %d", c.MaxTokens)
	}
	for _, d := range AllDifficulties() {
		spec, ok := levelSpecs[d]
		if !ok {
			return fmt.Errorf("missing level spec for difficulty %q", d)
		}
		if spec.Words == "" || spec.Grammar == "" || spec.Vocab == "" {
			return fmt.Errorf("incomplete level spec for difficulty %q", d)
		}
	}
	return nil
}
