package llm

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider adapts *openai.Client to the Client/ModelLister
// interfaces, exactly as the teacher's internal/llm/provider.go does for
// its single-purpose synthesis call.
type OpenAIProvider struct {
	Inner *openai.Client
}

// NewOpenAIProvider builds a provider from a base URL and API key, mirroring
// internal/app/app.go's openai.DefaultConfig/NewClientWithConfig setup.
func NewOpenAIProvider(baseURL, apiKey string) *OpenAIProvider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIProvider{Inner: openai.NewClientWithConfig(cfg)}
}

func (p *OpenAIProvider) Generate(ctx context.Context, req Request) (Response, error) {
	if p == nil || p.Inner == nil {
		return Response{}, errors.New("openai provider not configured")
	}
	temp := req.Temperature
	if temp == 0 {
		temp = 0.7
	}
	resp, err := p.Inner.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: req.System},
			{Role: openai.ChatMessageRoleUser, Content: req.User},
		},
		Temperature: temp,
		N:           1,
	})
	if err != nil {
		return Response{}, fmt.Errorf("openai generate: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Response{}, errors.New("openai: empty choices")
	}
	return Response{Text: resp.Choices[0].Message.Content}, nil
}

func (p *OpenAIProvider) ListModels(ctx context.Context) ([]string, error) {
	list, err := p.Inner.ListModels(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(list.Models))
	for _, m := range list.Models {
		out = append(out, m.ID)
	}
	return out, nil
}
