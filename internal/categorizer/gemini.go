package categorizer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"whereismymoney/wimm/internal/logging"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiStrategy asks the Gemini model to pick a category when the keyword
// table has no match. It is an optional fallback: any API failure degrades
// to absence, never to an error surfaced to the pipeline.
type GeminiStrategy struct {
	apiKey     string
	model      string
	timeout    time.Duration
	categories []string
	logger     logging.Logger

	client *genai.Client
	gen    *genai.GenerativeModel
}

// NewGeminiStrategy creates a GeminiStrategy restricted to the given
// category names. The client is initialized lazily on first use.
func NewGeminiStrategy(apiKey, model string, timeout time.Duration, categories []string, logger logging.Logger) *GeminiStrategy {
	return &GeminiStrategy{
		apiKey:     apiKey,
		model:      model,
		timeout:    timeout,
		categories: categories,
		logger:     logger,
	}
}

// Name returns the name of this strategy for logging and debugging.
func (s *GeminiStrategy) Name() string {
	return "Gemini"
}

// Recommend prompts the model with the merchant name and the allowed
// category list and parses the selected category from the response.
func (s *GeminiStrategy) Recommend(ctx context.Context, merchant string) (string, bool, error) {
	if strings.TrimSpace(merchant) == "" {
		return "", false, nil
	}

	if err := s.ensureClient(ctx); err != nil {
		return "", false, fmt.Errorf("initializing Gemini client: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	prompt := fmt.Sprintf(`Categorize the merchant of a personal payment:
Merchant: %s

Assign it to exactly one of the following categories:
%s

Respond in this format:
Category: [Selected Category Name]`,
		merchant,
		strings.Join(s.categories, ", "))

	resp, err := s.gen.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", false, fmt.Errorf("Gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", false, fmt.Errorf("no response from Gemini API")
	}

	responseText := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	category := s.extractCategory(responseText)
	if category == "" {
		return "", false, nil
	}

	s.logger.WithFields(
		logging.Field{Key: logging.FieldStrategy, Value: s.Name()},
		logging.Field{Key: logging.FieldMerchant, Value: merchant},
		logging.Field{Key: logging.FieldCategory, Value: category},
	).Debug("Merchant categorized using Gemini")

	return category, true, nil
}

func (s *GeminiStrategy) ensureClient(ctx context.Context) error {
	if s.client != nil {
		return nil
	}
	if s.apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(s.apiKey))
	if err != nil {
		return err
	}
	s.client = client
	s.gen = client.GenerativeModel(s.model)
	return nil
}

// extractCategory parses the "Category: X" line and only accepts names from
// the allowed list, so a free-form model answer cannot invent a category.
func (s *GeminiStrategy) extractCategory(response string) string {
	var picked string
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "Category:") {
			picked = strings.TrimSpace(strings.TrimPrefix(line, "Category:"))
			break
		}
	}
	if picked == "" {
		return ""
	}
	for _, name := range s.categories {
		if strings.EqualFold(picked, name) {
			return name
		}
	}
	return ""
}
