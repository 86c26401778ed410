package providers

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/tanafus/engine/internal/catalog"
	"github.com/tanafus/engine/internal/extract"
	"github.com/tanafus/engine/internal/verify"
	"github.com/tanafus/engine/pkg/formatting"
)

// OpenAI is the OpenAI-backed provider using structured outputs.
type OpenAI struct {
	client *openai.Client
	model  string
}

// NewOpenAI creates an OpenAI provider for the configured model.
func NewOpenAI(cfg Config) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: openai", ErrMissingAPIKey)
	}

	client := openai.NewClient(option.WithAPIKey(cfg.APIKey))
	return &OpenAI{client: &client, model: cfg.Model}, nil
}

func (p *OpenAI) Name() string { return "openai" }

func (p *OpenAI) Analyze(ctx context.Context, documentText string, pre *extract.PreExtraction) (*verify.Analysis, error) {
	result, err := completeJSON[verify.Analysis](ctx, p, "tender_analysis", buildAnalysisPrompt(documentText, pre))
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (p *OpenAI) Reextract(ctx context.Context, documentText string) (*verify.ExtractionClaim, error) {
	result, err := completeJSON[verify.ExtractionClaim](ctx, p, "tender_extraction", buildReextractionPrompt(documentText))
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (p *OpenAI) SpecCards(ctx context.Context, items []extract.LineItem) ([]verify.SpecCard, error) {
	result, err := completeJSON[specCardsResponse](ctx, p, "spec_cards", buildSpecCardsPrompt(items))
	if err != nil {
		return nil, err
	}
	return result.Cards, nil
}

func (p *OpenAI) Nominate(ctx context.Context, card verify.SpecCard, candidates []catalog.Item) ([]verify.Nomination, error) {
	result, err := completeJSON[nominationsResponse](ctx, p, "nominations", buildNominationPrompt(card, candidates))
	if err != nil {
		return nil, err
	}
	return result.Nominations, nil
}

// completeJSON runs one structured-output chat completion and parses the
// response into T.
func completeJSON[T any](ctx context.Context, p *OpenAI, schemaName, prompt string) (T, error) {
	var zero T

	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:   schemaName,
		Schema: GenerateSchema[T](),
		Strict: openai.Bool(true),
	}

	params := openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
		Model: openai.ChatModel(p.model),
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{JSONSchema: schemaParam},
		},
		Temperature: openai.Float(0.1),
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return zero, fmt.Errorf("openai %s completion: %w", schemaName, err)
	}
	if len(resp.Choices) == 0 {
		return zero, fmt.Errorf("%w: %s", ErrEmptyResponse, schemaName)
	}

	return formatting.Parse[T](resp.Choices[0].Message.Content)
}
