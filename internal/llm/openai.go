package llm

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

const defaultOpenAIModel = "gpt-4o"

// OpenAIGenerator drafts layouts with the chat completions API in JSON mode.
type OpenAIGenerator struct {
	apiKey  string
	model   string
	timeout time.Duration
	opts    []option.RequestOption
	client  *openai.Client
}

func NewOpenAIGenerator(apiKey, model string, timeout time.Duration, opts ...option.RequestOption) *OpenAIGenerator {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &OpenAIGenerator{
		apiKey:  strings.TrimSpace(apiKey),
		model:   strings.TrimSpace(model),
		timeout: timeout,
		opts:    opts,
	}
}

func (g *OpenAIGenerator) ensureClient() error {
	if g.apiKey == "" {
		return ErrNoAPIKey
	}
	if g.client == nil {
		opts := append([]option.RequestOption{option.WithAPIKey(g.apiKey)}, g.opts...)
		client := openai.NewClient(opts...)
		g.client = &client
	}
	return nil
}

// FromText drafts a layout from a free-text store description.
func (g *OpenAIGenerator) FromText(ctx context.Context, description string) ([]byte, error) {
	if err := requireText(description); err != nil {
		return nil, err
	}
	if err := g.ensureClient(); err != nil {
		return nil, err
	}
	return g.complete(ctx, g.modelOr(defaultOpenAIModel), []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(textSystemPrompt),
		openai.UserMessage(description),
	})
}

// FromImage drafts a layout from a floor plan photo or drawing. The image is
// sent inline as a data URL.
func (g *OpenAIGenerator) FromImage(ctx context.Context, image []byte, mimeType string) ([]byte, error) {
	if err := requireImage(image); err != nil {
		return nil, err
	}
	if err := g.ensureClient(); err != nil {
		return nil, err
	}
	if mimeType == "" {
		mimeType = http.DetectContentType(image)
	}
	dataURL := "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(image)
	// Image input needs a vision-capable model.
	return g.complete(ctx, defaultOpenAIModel, []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(imageSystemPrompt),
		openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
			openai.TextContentPart(imageUserPrompt),
			openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{URL: dataURL}),
		}),
	})
}

func (g *OpenAIGenerator) complete(ctx context.Context, model string, messages []openai.ChatCompletionMessageParamUnion) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: messages,
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
		Temperature: openai.Float(0.7),
	})
	if err != nil {
		return nil, fmt.Errorf("openai: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, ErrEmptyResponse
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return nil, ErrEmptyResponse
	}
	return []byte(content), nil
}

func (g *OpenAIGenerator) modelOr(fallback string) string {
	if g.model == "" {
		return fallback
	}
	return g.model
}
