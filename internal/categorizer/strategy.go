package categorizer

import "context"

// Strategy defines one method of recommending a category for a merchant.
type Strategy interface {
	// Recommend attempts to map the merchant text to a category name.
	// The boolean reports whether a recommendation was produced; an error
	// is only returned for infrastructure failures (the caller degrades
	// those to absence).
	Recommend(ctx context.Context, merchant string) (string, bool, error)

	// Name returns the strategy name for logging and debugging.
	Name() string
}
