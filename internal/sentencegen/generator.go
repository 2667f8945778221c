package sentencegen

import (
	"context"
	"fmt"
)

// Generator produces scrambled sentence sets.
type Generator interface {
	// Generate requests sentences for the given difficulty and
	// environment and returns them with tokens scrambled. The result may
	// hold fewer sentences than requested when the model under-delivers,
	// but never zero.
	Generate(ctx context.Context, input GenerateInput) ([]Sentence, error)
}

// ValidationError describes why a generated sentence set was rejected.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid sentence set: %s", e.Message)
}
