package narrative

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/sb-tools/merchant-lens/pkg/models/domain"
)

const (
	defaultModel = "gemini-2.0-flash"

	// Reports should read the same for the same metrics, so generation runs
	// close to deterministic.
	generationTemperature = float32(0.2)
)

// GeminiSettings configure the Gemini-backed generator.
type GeminiSettings struct {
	APIKey string
	Model  string
}

// GeminiGenerator renders reports into prose through the Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

func NewGeminiGenerator(ctx context.Context, settings GeminiSettings) (*GeminiGenerator, error) {
	if settings.APIKey == "" {
		return nil, errors.New("gemini api key is required")
	}

	model := settings.Model
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  settings.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}

	return &GeminiGenerator{client: client, model: model}, nil
}

func (g *GeminiGenerator) Generate(
	ctx context.Context,
	tag domain.Intent,
	sections []domain.ReportSection,
) (string, error) {
	prompt := BuildPrompt(tag, sections)
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, contents, &genai.GenerateContentConfig{
		Temperature: genai.Ptr(generationTemperature),
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", errors.New("gemini returned an empty narrative")
	}

	return text, nil
}
