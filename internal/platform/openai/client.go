package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/yungbote/aicourse-backend/internal/platform/envutil"
	"github.com/yungbote/aicourse-backend/internal/platform/logger"
	"github.com/yungbote/aicourse-backend/internal/platform/promptstyle"
)

// Client is the narrow surface the course pipeline needs from a chat completion backend.
type Client interface {
	// Structured outputs (json_schema). Returns the raw JSON text of the reply.
	GenerateJSON(ctx context.Context, system string, user string, schemaName string, schema map[string]any) ([]byte, error)

	// Plain text (no schema)
	GenerateText(ctx context.Context, system string, user string) (string, error)

	Embed(ctx context.Context, inputs []string) ([][]float32, error)

	Model() string
}

type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	EmbedModel  string
	Timeout     time.Duration
	Temperature float32
}

const (
	DefaultBaseURL    = "https://api.openai.com/v1"
	DefaultModel      = "gpt-4o"
	DefaultEmbedModel = "text-embedding-3-small"
	DefaultTimeout    = 600 * time.Second
)

func ConfigFromEnv() Config {
	return Config{
		APIKey:      strings.TrimSpace(envutil.String("OPENAI_API_KEY", "")),
		BaseURL:     envutil.String("OPENAI_BASE_URL", DefaultBaseURL),
		Model:       envutil.String("OPENAI_MODEL", DefaultModel),
		EmbedModel:  envutil.String("OPENAI_EMBED_MODEL", DefaultEmbedModel),
		Timeout:     envutil.Seconds("OPENAI_TIMEOUT_SECONDS", DefaultTimeout),
		Temperature: 0,
	}
}

type client struct {
	log         *logger.Logger
	api         *goopenai.Client
	model       string
	embedModel  string
	temperature float32
}

func NewClient(log *logger.Logger, cfg Config) (Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("missing OPENAI_API_KEY")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.EmbedModel == "" {
		cfg.EmbedModel = DefaultEmbedModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	apiCfg := goopenai.DefaultConfig(cfg.APIKey)
	if base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"); base != "" {
		apiCfg.BaseURL = base
	}
	apiCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &client{
		log:         log.With("service", "OpenAIClient"),
		api:         goopenai.NewClientWithConfig(apiCfg),
		model:       cfg.Model,
		embedModel:  cfg.EmbedModel,
		temperature: cfg.Temperature,
	}, nil
}

func (c *client) Model() string { return c.model }

// The request field is omitempty, so an explicit zero has to be sent as the smallest
// positive float to reach the API.
func (c *client) requestTemperature() float32 {
	if c.temperature <= 0 {
		return math.SmallestNonzeroFloat32
	}
	return c.temperature
}

func (c *client) GenerateJSON(ctx context.Context, system string, user string, schemaName string, schema map[string]any) ([]byte, error) {
	if schemaName == "" {
		return nil, errors.New("schemaName required")
	}
	if schema == nil {
		return nil, errors.New("schema required")
	}
	schemaJSON, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("encode schema %s: %w", schemaName, err)
	}

	req := goopenai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.requestTemperature(),
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: promptstyle.ApplySystem(system, "json")},
			{Role: goopenai.ChatMessageRoleUser, Content: user},
		},
		ResponseFormat: &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &goopenai.ChatCompletionResponseFormatJSONSchema{
				Name:   schemaName,
				Schema: json.RawMessage(schemaJSON),
				Strict: true,
			},
		},
	}

	text, err := c.complete(ctx, req)
	if err != nil {
		return nil, err
	}
	return []byte(text), nil
}

func (c *client) GenerateText(ctx context.Context, system string, user string) (string, error) {
	req := goopenai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.requestTemperature(),
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleSystem, Content: promptstyle.ApplySystem(system, "translate")},
			{Role: goopenai.ChatMessageRoleUser, Content: user},
		},
	}
	text, err := c.complete(ctx, req)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (c *client) complete(ctx context.Context, req goopenai.ChatCompletionRequest) (string, error) {
	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		c.log.Warn("OpenAI chat completion failed",
			"model", req.Model,
			"status", statusOf(err),
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err,
		)
		return "", err
	}
	c.log.Debug("OpenAI chat completion",
		"model", resp.Model,
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices in response")
	}
	msg := resp.Choices[0].Message
	if msg.Refusal != "" {
		return "", fmt.Errorf("model refused: %s", msg.Refusal)
	}
	if resp.Choices[0].FinishReason == goopenai.FinishReasonLength {
		return "", fmt.Errorf("response truncated at max tokens")
	}
	if strings.TrimSpace(msg.Content) == "" {
		return "", fmt.Errorf("empty response content")
	}
	return msg.Content, nil
}

func (c *client) Embed(ctx context.Context, inputs []string) ([][]float32, error) {
	if len(inputs) == 0 {
		return [][]float32{}, nil
	}
	clean := make([]string, len(inputs))
	for i := range inputs {
		s := strings.TrimSpace(inputs[i])
		if s == "" {
			s = " "
		}
		clean[i] = s
	}

	resp, err := c.api.CreateEmbeddings(ctx, goopenai.EmbeddingRequest{
		Input: clean,
		Model: goopenai.EmbeddingModel(c.embedModel),
	})
	if err != nil {
		return nil, err
	}

	out := make([][]float32, len(clean))
	for i, d := range resp.Data {
		idx := d.Index
		if idx < 0 || idx >= len(out) {
			idx = i
		}
		if idx < len(out) {
			out[idx] = d.Embedding
		}
	}
	for i := range out {
		if len(out[i]) == 0 {
			return nil, fmt.Errorf("openai embeddings missing index %d: requested=%d returned=%d model=%s", i, len(clean), len(resp.Data), c.embedModel)
		}
	}
	return out, nil
}

func statusOf(err error) int {
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}
