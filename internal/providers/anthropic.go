package providers

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/tanafus/engine/internal/catalog"
	"github.com/tanafus/engine/internal/extract"
	"github.com/tanafus/engine/internal/verify"
	"github.com/tanafus/engine/pkg/formatting"
)

const defaultMaxTokens = 4000

// Anthropic is the Claude-backed provider. The messages API has no schema
// enforcement, so responses are JSON-prompted and parsed leniently.
type Anthropic struct {
	client    *anthropic.Client
	model     string
	maxTokens int
}

// NewAnthropic creates an Anthropic provider for the configured model.
func NewAnthropic(cfg Config) (*Anthropic, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: anthropic", ErrMissingAPIKey)
	}

	maxTokens := cfg.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	client := anthropic.NewClient(option.WithAPIKey(cfg.APIKey))
	return &Anthropic{client: &client, model: cfg.Model, maxTokens: maxTokens}, nil
}

func (p *Anthropic) Name() string { return "anthropic" }

func (p *Anthropic) Analyze(ctx context.Context, documentText string, pre *extract.PreExtraction) (*verify.Analysis, error) {
	result, err := messageJSON[verify.Analysis](ctx, p, buildAnalysisPrompt(documentText, pre))
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (p *Anthropic) Reextract(ctx context.Context, documentText string) (*verify.ExtractionClaim, error) {
	result, err := messageJSON[verify.ExtractionClaim](ctx, p, buildReextractionPrompt(documentText))
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (p *Anthropic) SpecCards(ctx context.Context, items []extract.LineItem) ([]verify.SpecCard, error) {
	result, err := messageJSON[specCardsResponse](ctx, p, buildSpecCardsPrompt(items))
	if err != nil {
		return nil, err
	}
	return result.Cards, nil
}

func (p *Anthropic) Nominate(ctx context.Context, card verify.SpecCard, candidates []catalog.Item) ([]verify.Nomination, error) {
	result, err := messageJSON[nominationsResponse](ctx, p, buildNominationPrompt(card, candidates))
	if err != nil {
		return nil, err
	}
	return result.Nominations, nil
}

func messageJSON[T any](ctx context.Context, p *Anthropic, prompt string) (T, error) {
	var zero T

	resp, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: int64(p.maxTokens),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{{
			Role: anthropic.MessageParamRoleUser,
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: prompt + "\n\nReturn ONLY the JSON object, no other text."},
			}},
		}},
		Temperature: anthropic.Float(0.1),
	})
	if err != nil {
		return zero, fmt.Errorf("anthropic completion: %w", err)
	}

	text := responseText(resp)
	if text == "" {
		return zero, ErrEmptyResponse
	}

	return formatting.Parse[T](text)
}

func responseText(resp *anthropic.Message) string {
	var parts []string
	for _, block := range resp.Content {
		switch variant := block.AsAny().(type) {
		case anthropic.TextBlock:
			parts = append(parts, variant.Text)
		}
	}
	return strings.Join(parts, "")
}
