// Package llm defines the minimal text-in/text-out contract the Prompt
// Composer and Pipeline Coordinator use to call a large language model
// (spec.md §6: "An LLM generate API: input string prompt, output string
// content"). The core treats the model as an opaque collaborator; it never
// inspects provider-specific response fields beyond the first completion's
// text.
package llm

import "context"

// Request is the provider-agnostic generation request.
type Request struct {
	Model       string
	System      string
	User        string
	Temperature float32
}

// Response is the provider-agnostic generation result.
type Response struct {
	Text string
}

// Client is implemented by every LLM backend this module wires up. It
// mirrors internal/llm/provider.go in the teacher repo, generalized from a
// single OpenAI-shaped interface to a provider-neutral one so a
// google.golang.org/genai backend can be swapped in without touching the
// Composer.
type Client interface {
	Generate(ctx context.Context, req Request) (Response, error)
}

// ModelLister is an optional capability for providers that can enumerate
// available models (grounded on the teacher's app.New preflight
// ListModels call). OpenAIProvider implements it; neither the Coordinator
// nor internal/wiring calls it.
type ModelLister interface {
	ListModels(ctx context.Context) ([]string, error)
}
