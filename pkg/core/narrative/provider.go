// Package narrative generates the analysis report sections from normalized
// statement data and computed ratios through pluggable LLM providers, with
// deterministic template fallbacks when a provider is unavailable or fails.
package narrative

import (
	"context"
	"fmt"
)

// Provider abstracts a text-generation backend.
type Provider interface {
	// GenerateResponse sends a prompt with an optional system prompt.
	// Options carry provider-specific knobs (model override, JSON mode).
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
	// AdaptInstructions rewrites a system prompt for the provider's
	// prompting conventions. Most providers pass it through.
	AdaptInstructions(raw string) string
}

// Registry holds the configured providers by name.
type Registry struct {
	active    string
	providers map[string]Provider
}

// NewRegistry wires the built-in providers. The grounded Gemini variant is
// registered separately so callers can pick it for market-context prose.
func NewRegistry(active string) *Registry {
	return &Registry{
		active: active,
		providers: map[string]Provider{
			"gemini":          &GeminiProvider{},
			"gemini-grounded": &GroundedGeminiProvider{},
		},
	}
}

// Register adds or replaces a named provider (used by tests to inject mocks).
func (r *Registry) Register(name string, p Provider) {
	r.providers[name] = p
}

// Active returns the configured default provider.
func (r *Registry) Active() (Provider, error) {
	if p, ok := r.providers[r.active]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("provider %q not configured", r.active)
}

// ByName returns a specific provider.
func (r *Registry) ByName(name string) (Provider, error) {
	if p, ok := r.providers[name]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("provider %q not configured", name)
}
