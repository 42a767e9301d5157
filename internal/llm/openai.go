package llm

import (
	"context"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/MohammadAbidShah/Resume-builder-ai/internal/config"
	"github.com/MohammadAbidShah/Resume-builder-ai/internal/errors"
)

// OpenAIClient talks to the OpenAI chat completions API (or any compatible
// endpoint via base_url).
type OpenAIClient struct {
	model string
	opts  []option.RequestOption
}

// NewOpenAIClient validates credentials and builds a client. No network call
// is made until Complete.
func NewOpenAIClient(cfg config.LLMConfig) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, errors.NewInputError("llm.api_key", "required when provider is openai")
	}
	if cfg.Model == "" {
		return nil, errors.NewInputError("llm.model", "required when provider is openai")
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenAIClient{model: cfg.Model, opts: opts}, nil
}

func (o *OpenAIClient) Complete(ctx context.Context, req Request) (Response, error) {
	client := openai.NewClient(o.opts...)

	msgs := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(req.System),
		openai.UserMessage(req.User),
	}

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(o.model),
		Messages: msgs,
	}
	if req.Temperature > 0 {
		params.Temperature = openai.Float(req.Temperature)
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	resp, err := client.Chat.Completions.New(ctx, params)
	if err != nil {
		return Response{}, fmt.Errorf("openai completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Response{}, fmt.Errorf("openai: empty choices for model %s", o.model)
	}
	return Response{Content: resp.Choices[0].Message.Content, Model: resp.Model}, nil
}

func (o *OpenAIClient) Model() string { return o.model }
