package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"github.com/spendly/backend/internal/application/adapter"
)

const defaultGeminiModel = "gemini-1.5-flash"

// GeminiService implements the adapter.CategorySuggestionService using Google Gemini.
type GeminiService struct {
	apiKey    string
	modelName string
}

// NewGeminiService creates a new Gemini service instance.
func NewGeminiService(apiKey, modelName string) *GeminiService {
	if modelName == "" {
		modelName = defaultGeminiModel
	}
	return &GeminiService{
		apiKey:    apiKey,
		modelName: modelName,
	}
}

// IsAvailable checks if the Gemini service is properly configured.
func (s *GeminiService) IsAvailable() bool {
	return s.apiKey != ""
}

// SuggestCategory asks the model which of the offered categories fits the spend.
func (s *GeminiService) SuggestCategory(ctx context.Context, request *adapter.CategorySuggestionRequest) (*adapter.CategorySuggestion, error) {
	if !s.IsAvailable() {
		return nil, fmt.Errorf("gemini service is not configured")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.modelName)
	model.SetTemperature(0.2)
	model.ResponseMIMEType = "application/json"

	resp, err := model.GenerateContent(ctx, genai.Text(buildSuggestionPrompt(request)))
	if err != nil {
		return nil, fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return nil, err
	}

	suggestion, err := parseSuggestion(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return suggestion, nil
}

func buildSuggestionPrompt(request *adapter.CategorySuggestionRequest) string {
	var sb strings.Builder

	sb.WriteString(`You categorize personal spending records.
Pick exactly one category from the list below for the spend. Never invent a category.

CATEGORIES:
`)
	for _, c := range request.Categories {
		sb.WriteString(fmt.Sprintf("- ID: %s, Name: %s, Icon: %s\n", c.ID, c.Name, c.Icon))
	}

	sb.WriteString("\nSPEND:\n")
	sb.WriteString(fmt.Sprintf("- Description: %q\n", request.Description))
	if request.Amount != "" {
		sb.WriteString(fmt.Sprintf("- Amount: %s\n", request.Amount))
	}

	sb.WriteString(`
Respond with a single JSON object and nothing else:
{
  "category_id": "id of the chosen category",
  "confidence": 0.0-1.0,
  "reasoning": "one short sentence"
}
`)

	return sb.String()
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("empty response from gemini")
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok && strings.TrimSpace(string(text)) != "" {
			return string(text), nil
		}
	}
	return "", fmt.Errorf("no text content in response")
}

// geminiSuggestion represents the raw response from Gemini.
type geminiSuggestion struct {
	CategoryID string  `json:"category_id"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

// parseSuggestion decodes the model output, tolerating markdown code fences.
func parseSuggestion(text string) (*adapter.CategorySuggestion, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	var raw geminiSuggestion
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	categoryID, err := uuid.Parse(raw.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("invalid category id %q: %w", raw.CategoryID, err)
	}

	return &adapter.CategorySuggestion{
		CategoryID: categoryID,
		Confidence: raw.Confidence,
		Reasoning:  raw.Reasoning,
	}, nil
}

// Ensure GeminiService implements adapter.CategorySuggestionService.
var _ adapter.CategorySuggestionService = (*GeminiService)(nil)
