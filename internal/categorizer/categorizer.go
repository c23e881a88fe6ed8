// Package categorizer recommends a category for a merchant name using an
// ordered chain of strategies: keyword matching over the fixed rule table,
// optionally followed by a Gemini fallback.
package categorizer

import (
	"context"

	"whereismymoney/wimm/internal/logging"
	"whereismymoney/wimm/internal/patterns"
)

// Recommender runs the strategy chain in order and returns the first
// recommendation. It is deterministic whenever only the keyword strategy is
// configured: the same merchant string always yields the same label.
type Recommender struct {
	strategies []Strategy
	logger     logging.Logger
}

// NewRecommender creates a Recommender over the given strategies, tried in
// order.
func NewRecommender(logger logging.Logger, strategies ...Strategy) *Recommender {
	return &Recommender{
		strategies: strategies,
		logger:     logger,
	}
}

// NewKeywordRecommender creates the default keyword-only recommender used
// by the pipeline.
func NewKeywordRecommender(rules []patterns.CategoryRule, logger logging.Logger) *Recommender {
	return NewRecommender(logger, NewKeywordStrategy(rules, logger))
}

// Recommend maps merchant text to a category label. The boolean is false
// when no strategy produced a recommendation; strategy errors are logged
// and degrade to absence, never propagate.
func (r *Recommender) Recommend(ctx context.Context, merchant string) (string, bool) {
	for _, strategy := range r.strategies {
		category, found, err := strategy.Recommend(ctx, merchant)
		if err != nil {
			r.logger.WithError(err).WithFields(
				logging.Field{Key: logging.FieldStrategy, Value: strategy.Name()},
				logging.Field{Key: logging.FieldMerchant, Value: merchant},
			).Warn("Category strategy failed, trying next")
			continue
		}
		if found {
			return category, true
		}
	}
	return "", false
}
