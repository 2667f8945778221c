package sentencegen

import "fmt"

// Difficulty is one of the three proficiency tiers. The canonical string
// value is the Korean label, which is also what gets persisted and what
// the client sends — the product is built for Korean learners.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "쉬움"
	DifficultyMedium Difficulty = "중간"
	DifficultyHard   Difficulty = "어려움"
)

// AllDifficulties lists the tiers in ascending order.
func AllDifficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// ParseDifficulty resolves a Korean or English label to a Difficulty.
// Unknown values are rejected, never silently defaulted.
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "쉬움", "easy", "Easy":
		return DifficultyEasy, nil
	case "중간", "medium", "Medium":
		return DifficultyMedium, nil
	case "어려움", "hard", "Hard":
		return DifficultyHard, nil
	}
	return "", fmt.Errorf("invalid difficulty: %q", s)
}

func (d Difficulty) String() string {
	return string(d)
}

// EnglishName returns the English tier name, for prompts and logs.
func (d Difficulty) EnglishName() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyMedium:
		return "medium"
	case DifficultyHard:
		return "hard"
	}
	return "unknown"
}
