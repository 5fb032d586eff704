package aigen

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"google.golang.org/genai"

	"github.com/zelenmun/EvalUp/internal/config"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

var (
	ErrUnknownProvider = errors.New("unknown ai provider")
	ErrProvider        = errors.New("ai provider failed")
)

type Provider interface {
	SendPrompt(ctx context.Context, system, user string) ([]Question, error)
}

type ProviderConfig struct {
	Name    string
	Model   string
	APIKey  string
	BaseURL string
}

func NewProvider(ctx context.Context, cfg ProviderConfig) (Provider, error) {
	switch cfg.Name {
	case ProviderGemini, "":
		return NewGeminiProvider(ctx, cfg.APIKey, cfg.Model)
	case ProviderOpenAI:
		return NewOpenAIProvider(cfg.BaseURL, cfg.APIKey, cfg.Model), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, cfg.Name)
	}
}

type geminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider reads GOOGLE_API_KEY / GEMINI_API_KEY from the environment
// when apiKey is empty.
func NewGeminiProvider(ctx context.Context, apiKey, model string) (Provider, error) {
	cc := &genai.ClientConfig{Backend: genai.BackendGeminiAPI}
	if apiKey != "" {
		cc.APIKey = apiKey
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &geminiProvider{client: client, model: model}, nil
}

func (p *geminiProvider) SendPrompt(ctx context.Context, system, user string) ([]Question, error) {
	log := config.WithContext(ctx)

	result, err := p.client.Models.GenerateContent(
		ctx,
		p.model,
		genai.Text(user),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
			ResponseMIMEType:  "application/json",
		},
	)
	if err != nil {
		log.WithError(err).Error("Gemini generation failed")
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}

	raw := result.Text()
	log.Debugf("[AIGEN] Raw Gemini response:\n%s", raw)

	questions, err := ParseQuestions(raw)
	if err != nil {
		log.WithError(err).Error("[AIGEN] Could not decode Gemini response")
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}

	log.Infof("[AIGEN] Gemini generated %d questions", len(questions))
	return questions, nil
}

type openAIProvider struct {
	api   *openai.Client
	model string
}

// NewOpenAIProvider talks to any OpenAI-compatible chat completions endpoint.
func NewOpenAIProvider(baseURL, apiKey, model string) Provider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if model == "" {
		model = openai.GPT4oMini
	}
	return &openAIProvider{api: openai.NewClientWithConfig(cfg), model: model}
}

func (p *openAIProvider) SendPrompt(ctx context.Context, system, user string) ([]Question, error) {
	log := config.WithContext(ctx)

	resp, err := p.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Temperature: 0.7,
	})
	if err != nil {
		log.WithError(err).Error("OpenAI generation failed")
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: %v", ErrProvider, ErrEmptyResponse)
	}

	raw := resp.Choices[0].Message.Content
	log.Debugf("[AIGEN] Raw OpenAI response:\n%s", raw)

	questions, err := ParseQuestions(raw)
	if err != nil {
		log.WithError(err).Error("[AIGEN] Could not decode OpenAI response")
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}

	log.Infof("[AIGEN] OpenAI generated %d questions", len(questions))
	return questions, nil
}

type unavailableProvider struct {
	cause error
}

// Unavailable returns a provider that fails every request with ErrProvider.
func Unavailable(cause error) Provider {
	return unavailableProvider{cause: cause}
}

func (p unavailableProvider) SendPrompt(context.Context, string, string) ([]Question, error) {
	return nil, fmt.Errorf("%w: %v", ErrProvider, p.cause)
}
