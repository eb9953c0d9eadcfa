// Package engine defines the boundary contract to the local model runtime.
// The runtime serves one blocking completion call at a time and is not safe
// for concurrent invocation; serialization is the caller's problem (see the
// ai.Gate).
package engine

import "context"

type GenerateOptions struct {
	MaxTokens   int
	Temperature float64
}

type Engine interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
}
