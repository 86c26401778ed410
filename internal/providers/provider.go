// Package providers implements the generative-model strategy boundary. The
// verification core never selects a provider; callers construct one here and
// inject it. Each provider returns the typed output shapes consumed by the
// verify guardrails.
package providers

import (
	"context"
	"errors"

	"github.com/tanafus/engine/internal/catalog"
	"github.com/tanafus/engine/internal/extract"
	"github.com/tanafus/engine/internal/verify"
)

// Provider errors.
var (
	ErrUnsupportedModel = errors.New("unsupported model")
	ErrMissingAPIKey    = errors.New("provider API key required")
	ErrEmptyResponse    = errors.New("empty model response")
)

// Config carries provider construction parameters.
type Config struct {
	Model     string
	APIKey    string
	MaxTokens int
}

// Provider is the generative-model strategy interface. Implementations are
// black boxes to the verification core: they produce typed output which the
// guardrails then re-validate.
type Provider interface {
	Name() string

	// Analyze scores the tender across the five evaluation criteria.
	Analyze(ctx context.Context, documentText string, pre *extract.PreExtraction) (*verify.Analysis, error)

	// Reextract re-extracts the identifying fields from document text.
	Reextract(ctx context.Context, documentText string) (*verify.ExtractionClaim, error)

	// SpecCards generates a structured spec card per line item.
	SpecCards(ctx context.Context, items []extract.LineItem) ([]verify.SpecCard, error)

	// Nominate proposes catalog products satisfying one spec card.
	Nominate(ctx context.Context, card verify.SpecCard, candidates []catalog.Item) ([]verify.Nomination, error)
}

// Wrapper types keep top-level arrays inside an object so structured-output
// schemas stay object-rooted.
type specCardsResponse struct {
	Cards []verify.SpecCard `json:"cards"`
}

type nominationsResponse struct {
	Nominations []verify.Nomination `json:"nominations"`
}
