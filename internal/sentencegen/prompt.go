package sentencegen

import (
	"fmt"
	"strings"
)

const systemPrompt = `English teacher for Korean learners. Create practical, varied sentences suitable for real-life situations.

Rules:
- Every sentence must be natural spoken or written English, correctly punctuated.
- The Korean translation must be natural, not word-for-word.
- Each sentence must be unique within the set.`

// buildUserMessage constructs the user message from the input and the
// static difficulty/environment tables.
func buildUserMessage(input GenerateInput, count int) string {
	spec := levelSpecs[input.Difficulty]
	topics := topicsFor(input.Environment)

	var b strings.Builder

	fmt.Fprintf(&b, "Create %d %s English sentences for %s.\n\n", count, input.Difficulty, input.Environment)
	b.WriteString("Rules:\n")
	fmt.Fprintf(&b, "- %s words per sentence\n", spec.Words)
	fmt.Fprintf(&b, "- Use %s\n", spec.Grammar)
	fmt.Fprintf(&b, "- Vocabulary: %s\n", spec.Vocab)
	b.WriteString("- Mix: questions (2), statements (2), requests (1)\n")
	fmt.Fprintf(&b, "- Topics: %s\n", strings.Join(topics, ", "))
	b.WriteString("- Each sentence must be unique\n")
	if spec.Avoid != "" {
		fmt.Fprintf(&b, "- Avoid: %s\n", spec.Avoid)
	}
	if spec.Include != "" {
		fmt.Fprintf(&b, "- Include: %s\n", spec.Include)
	}

	return b.String()
}
