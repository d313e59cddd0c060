package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// GenAIProvider adapts Google's Gemini API (google.golang.org/genai) to the
// Client interface, grounded on codenerd's internal/embedding/genai.go
// client construction (genai.NewClient + ClientConfig) and its
// client.Models.<Call>(ctx, model, contents, config) call shape, here used
// for GenerateContent instead of EmbedContent.
type GenAIProvider struct {
	client *genai.Client
}

// NewGenAIProvider constructs a Gemini-backed provider from an API key.
func NewGenAIProvider(ctx context.Context, apiKey string) (*GenAIProvider, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &GenAIProvider{client: client}, nil
}

func (p *GenAIProvider) Generate(ctx context.Context, req Request) (Response, error) {
	if p == nil || p.client == nil {
		return Response{}, errors.New("genai provider not configured")
	}
	temp := req.Temperature
	if temp == 0 {
		temp = 0.7
	}
	contents := []*genai.Content{
		genai.NewContentFromText(req.User, genai.RoleUser),
	}
	cfg := &genai.GenerateContentConfig{
		Temperature:       &temp,
		SystemInstruction: genai.NewContentFromText(req.System, genai.RoleUser),
	}
	result, err := p.client.Models.GenerateContent(ctx, req.Model, contents, cfg)
	if err != nil {
		return Response{}, fmt.Errorf("genai generate: %w", err)
	}
	text := result.Text()
	if text == "" {
		return Response{}, errors.New("genai: empty response")
	}
	return Response{Text: text}, nil
}
