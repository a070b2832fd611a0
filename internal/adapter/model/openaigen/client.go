package openaigen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"agentgate/internal/app/ports"
	"agentgate/internal/domain/agent"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"
)

// Config holds the provider connection settings, loaded from the
// environment under the MODEL_ prefix.
type Config struct {
	BaseURL            string        `envconfig:"BASE_URL" split_words:"true" default:"https://api.openai.com/v1"`
	APIKey             string        `envconfig:"API_KEY" split_words:"true"`
	Model              string        `split_words:"true" default:"gpt-4o-mini"`
	ImageModel         string        `envconfig:"IMAGE_MODEL" split_words:"true" default:"gpt-image-1"`
	MaxCompletionToken *int          `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"2000"`
	Temperature        float64       `split_words:"true" default:"0.5"`
	Timeout            time.Duration `split_words:"true" default:"60s"`
}

// Client adapts the OpenAI-compatible chat/image API to the
// ModelProvider port.
type Client struct {
	api openai.Client
	cfg Config
}

func New(cfg Config) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(strings.TrimSpace(cfg.APIKey)),
	}
	if trimmed := strings.TrimRight(cfg.BaseURL, "/"); trimmed != "" {
		opts = append(opts, option.WithBaseURL(trimmed))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.Timeout))
	}
	return &Client{api: openai.NewClient(opts...), cfg: cfg}
}

func (c *Client) Generate(ctx context.Context, req ports.ModelRequest) (ports.ModelResult, error) {
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}
	if req.Image {
		return c.generateImage(ctx, req)
	}
	return c.complete(ctx, req)
}

func (c *Client) complete(ctx context.Context, req ports.ModelRequest) (ports.ModelResult, error) {
	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(req.History)+2)
	if req.System != "" {
		messages = append(messages, openai.SystemMessage(req.System))
	}
	// Conversation turns are forwarded in the order received; the
	// invoker has already capped them from the oldest end.
	for _, turn := range req.History {
		if turn.Role == agent.RoleModel {
			messages = append(messages, openai.AssistantMessage(turn.Text))
		} else {
			messages = append(messages, openai.UserMessage(turn.Text))
		}
	}
	if req.Attachment != nil {
		messages = append(messages, openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
			openai.TextContentPart(req.Prompt),
			openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
				URL: dataURI(req.Attachment),
			}),
		}))
	} else {
		messages = append(messages, openai.UserMessage(req.Prompt))
	}

	params := openai.ChatCompletionNewParams{
		Model:       shared.ChatModel(c.cfg.Model),
		Messages:    messages,
		Temperature: openai.Float(c.cfg.Temperature),
	}
	if c.cfg.MaxCompletionToken != nil {
		params.MaxCompletionTokens = openai.Int(int64(*c.cfg.MaxCompletionToken))
	}
	if req.Schema != nil {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
				JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:   schemaName(req.SchemaName),
					Schema: req.Schema.JSONSchema(),
				},
			},
		}
	}

	resp, err := c.api.Chat.Completions.New(ctx, params)
	if err != nil {
		return ports.ModelResult{}, fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return ports.ModelResult{}, errors.New("chat completion: empty response")
	}
	return ports.ModelResult{Text: resp.Choices[0].Message.Content}, nil
}

func (c *Client) generateImage(ctx context.Context, req ports.ModelRequest) (ports.ModelResult, error) {
	resp, err := c.api.Images.Generate(ctx, openai.ImageGenerateParams{
		Prompt: req.Prompt,
		Model:  openai.ImageModel(c.cfg.ImageModel),
		N:      openai.Int(1),
	})
	if err != nil {
		return ports.ModelResult{}, fmt.Errorf("image generation: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].B64JSON == "" {
		return ports.ModelResult{}, errors.New("image generation: empty response")
	}
	return ports.ModelResult{ImageBase64: resp.Data[0].B64JSON}, nil
}

func dataURI(att *agent.Attachment) string {
	return "data:" + att.MimeType + ";base64," + att.Data
}

// schemaName normalizes the action name into an identifier accepted by
// the structured-output API.
func schemaName(name string) string {
	if name == "" {
		return "response"
	}
	return strings.ReplaceAll(name, "-", "_")
}
