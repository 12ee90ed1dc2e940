// Package answer provides the free-form answer capability: given a user
// question, produce a generated text answer. The production implementation
// is backed by Google's Gemini API.
package answer

import "context"

// Generator produces an answer for a free-form question. A failure is an
// ordinary error; callers decide how to degrade.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
