package utils

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"reout/pkg/logger"
)

// GeminiPlanClient implements PlanGeneratorInterface using Google's Gemini models.
// Gemini has a single call shape, so there is no legacy path.
type GeminiPlanClient struct {
	log    *logger.Logger
	client *genai.Client
	models *ModelCache
}

// NewGeminiPlanClient creates a new Gemini client
func NewGeminiPlanClient(ctx context.Context, log *logger.Logger, apiKey string, opts ...option.ClientOption) (*GeminiPlanClient, error) {
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiPlanClient{
		log:    log.With("service", "GeminiPlanClient"),
		client: client,
		models: NewModelCache(),
	}, nil
}

func (c *GeminiPlanClient) Name() string { return "gemini" }

func (c *GeminiPlanClient) Generate(ctx context.Context, prompt string, model string) (string, error) {
	m := c.client.GenerativeModel(model)
	m.SystemInstruction = genai.NewUserContent(genai.Text(prompt))

	resp, err := m.GenerateContent(ctx, genai.Text(PlanTrigger))
	if err != nil {
		return "", classifyGeminiError(err)
	}
	return planFromGemini(resp)
}

func classifyGeminiError(err error) error {
	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return newMalformedError("gemini", blocked.Error())
	}
	return newTransportError("gemini", 0, err.Error(), err)
}

func planFromGemini(resp *genai.GenerateContentResponse) (string, error) {
	text := candidateText(resp)
	if strings.TrimSpace(text) == "" {
		return "", newMalformedError("gemini", "no content generated by Gemini")
	}
	return text, nil
}

func (c *GeminiPlanClient) ListModels(ctx context.Context) ([]string, error) {
	return c.models.Get(ctx, c.loadModels)
}

func (c *GeminiPlanClient) loadModels(ctx context.Context) ([]string, error) {
	ids, err := collectGeminiModels(c.client.ListModels(ctx))
	if err != nil {
		return nil, err
	}
	c.log.Debug("gemini models loaded", "count", len(ids))
	return ids, nil
}

// modelInfoIterator is the part of genai.ModelInfoIterator the model listing uses.
type modelInfoIterator interface {
	Next() (*genai.ModelInfo, error)
}

func collectGeminiModels(it modelInfoIterator) ([]string, error) {
	var ids []string
	for {
		info, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, newTransportError("gemini", 0, err.Error(), err)
		}
		if !supportsGenerateContent(info.SupportedGenerationMethods) {
			continue
		}
		ids = append(ids, strings.TrimPrefix(info.Name, "models/"))
	}
	if len(ids) == 0 {
		return nil, newMalformedError("gemini", "empty model list")
	}
	return ids, nil
}

// Close closes the Gemini client
func (c *GeminiPlanClient) Close() error {
	return c.client.Close()
}

func candidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var out strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			out.WriteString(string(text))
		}
	}
	return out.String()
}

func supportsGenerateContent(methods []string) bool {
	for _, m := range methods {
		if m == "generateContent" {
			return true
		}
	}
	return false
}
