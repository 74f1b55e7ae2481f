package categorizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"fintools/bankfeed/internal/models"
)

// DefaultAIModel is used when config does not name a model.
const DefaultAIModel = "gemini-1.5-flash"

// AIStrategy asks a Gemini model for a category when no rule matched. The
// client is created lazily on first use so constructing the strategy never
// requires network access.
type AIStrategy struct {
	apiKey     string
	modelName  string
	categories []string

	client *genai.Client
	model  *genai.GenerativeModel
}

// NewAIStrategy creates the Gemini fallback. categories constrains the
// model's answer to known category names.
func NewAIStrategy(apiKey, modelName string, categories []string) *AIStrategy {
	if modelName == "" {
		modelName = DefaultAIModel
	}
	return &AIStrategy{apiKey: apiKey, modelName: modelName, categories: categories}
}

func (s *AIStrategy) Name() string { return "gemini" }

func (s *AIStrategy) ensureClient(ctx context.Context) error {
	if s.client != nil {
		return nil
	}
	if s.apiKey == "" {
		return fmt.Errorf("gemini api key is not set")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return fmt.Errorf("failed to create gemini client: %w", err)
	}
	s.client = client
	s.model = client.GenerativeModel(s.modelName)
	return nil
}

// Categorize sends a single-answer prompt and cleans the response down to a
// bare category name. Any API failure surfaces as an error for the caller to
// log; the transaction stays uncategorized.
func (s *AIStrategy) Categorize(ctx context.Context, tx *models.ParsedTransaction) (Assignment, bool, error) {
	if err := s.ensureClient(ctx); err != nil {
		return Assignment{}, false, err
	}

	prompt := fmt.Sprintf(`Categorize this financial transaction:
Description: %s
Amount: %s
Type: %s

Answer with exactly one category name from this list and nothing else:
%s`,
		tx.Description, tx.Amount.StringFixed(2), tx.Type,
		strings.Join(s.categories, ", "))

	resp, err := s.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return Assignment{}, false, fmt.Errorf("gemini api error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 {
		return Assignment{}, false, fmt.Errorf("empty gemini response")
	}

	answer := cleanResponse(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]))
	if answer == "" {
		return Assignment{}, false, nil
	}

	// Accept only known category names, case-insensitively.
	for _, name := range s.categories {
		if strings.EqualFold(answer, name) {
			return Assignment{CategoryName: name}, true, nil
		}
	}
	return Assignment{}, false, nil
}

// Close releases the underlying API client.
func (s *AIStrategy) Close() error {
	if s.client == nil {
		return nil
	}
	err := s.client.Close()
	s.client = nil
	s.model = nil
	return err
}

// cleanResponse strips markdown decoration and keeps the first non-empty
// line of the model's answer.
func cleanResponse(raw string) string {
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		line = strings.Trim(line, "`*\"'")
		line = strings.TrimSpace(strings.TrimPrefix(line, "Category:"))
		if line != "" {
			return line
		}
	}
	return ""
}
