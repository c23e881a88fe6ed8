package categorizer

import (
	"context"
	"strings"

	"whereismymoney/wimm/internal/logging"
	"whereismymoney/wimm/internal/patterns"
)

// KeywordStrategy recommends categories by keyword matching over a
// case-normalized merchant string. Rule order is the priority order and is
// fixed: the first rule with any matching keyword wins, so a merchant that
// matches both a food and a shopping keyword resolves to food.
type KeywordStrategy struct {
	rules  []patterns.CategoryRule
	logger logging.Logger
}

// NewKeywordStrategy creates a KeywordStrategy over the given rules. Nil or
// empty rules fall back to the built-in table.
func NewKeywordStrategy(rules []patterns.CategoryRule, logger logging.Logger) *KeywordStrategy {
	if len(rules) == 0 {
		rules = patterns.DefaultCategoryRules()
	}
	return &KeywordStrategy{
		rules:  rules,
		logger: logger,
	}
}

// Name returns the name of this strategy for logging and debugging.
func (s *KeywordStrategy) Name() string {
	return "Keyword"
}

// Recommend returns the category of the first rule whose keyword set has
// any match in the merchant text.
func (s *KeywordStrategy) Recommend(_ context.Context, merchant string) (string, bool, error) {
	if strings.TrimSpace(merchant) == "" {
		return "", false, nil
	}

	lower := strings.ToLower(merchant)

	for _, rule := range s.rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(lower, strings.ToLower(keyword)) {
				s.logger.WithFields(
					logging.Field{Key: logging.FieldStrategy, Value: s.Name()},
					logging.Field{Key: logging.FieldMerchant, Value: merchant},
					logging.Field{Key: logging.FieldKeyword, Value: keyword},
					logging.Field{Key: logging.FieldCategory, Value: rule.Name},
				).Debug("Merchant categorized using keyword matching")
				return rule.Name, true, nil
			}
		}
	}

	return "", false, nil
}
