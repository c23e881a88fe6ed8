// Package assembler turns extracted payment info into a transaction draft
// with resolved category and account ids. It only reads from the store and
// returns the draft value; persistence is the caller's responsibility.
package assembler

import (
	"context"
	"time"

	"whereismymoney/wimm/internal/categorizer"
	"whereismymoney/wimm/internal/logging"
	"whereismymoney/wimm/internal/models"
)

// fallbackID is used when the store has no category or account to offer.
const fallbackID int64 = 1

// StoreReader is the read surface the assembler needs from the external
// transaction store.
type StoreReader interface {
	Categories() ([]models.Category, error)
	Accounts() ([]models.Account, error)
}

// Assembler resolves drafts against the current category and account
// collections.
type Assembler struct {
	recommender *categorizer.Recommender
	store       StoreReader
	logger      logging.Logger
	now         func() time.Time
}

// New creates an Assembler.
func New(recommender *categorizer.Recommender, store StoreReader, logger logging.Logger) *Assembler {
	return &Assembler{
		recommender: recommender,
		store:       store,
		logger:      logger,
		now:         time.Now,
	}
}

// SetClock overrides the draft timestamp source, for tests.
func (a *Assembler) SetClock(now func() time.Time) {
	if now != nil {
		a.now = now
	}
}

// Assemble builds an unconfirmed draft from payment info. Category
// resolution: recommended label matching name and type, then the first
// category of the matching type, then id 1. Account resolution: the
// source's canonical account by name, then the first account, then id 1.
func (a *Assembler) Assemble(ctx context.Context, info models.ParsedPaymentInfo) models.TransactionDraft {
	draft := models.TransactionDraft{
		Type:       info.Type,
		Amount:     info.Amount,
		CategoryID: a.resolveCategory(ctx, info),
		AccountID:  a.resolveAccount(info.Source),
		Merchant:   info.Merchant,
		Note:       "",
		Source:     info.Source,
		CreatedAt:  a.now(),
		Confirmed:  false,
	}

	a.logger.WithFields(
		logging.Field{Key: logging.FieldType, Value: draft.Type},
		logging.Field{Key: logging.FieldAmount, Value: draft.Amount.String()},
		logging.Field{Key: logging.FieldMerchant, Value: draft.Merchant},
		logging.Field{Key: logging.FieldCategory, Value: draft.CategoryID},
	).Debug("Assembled transaction draft")
	return draft
}

func (a *Assembler) resolveCategory(ctx context.Context, info models.ParsedPaymentInfo) int64 {
	categories, err := a.store.Categories()
	if err != nil {
		a.logger.WithError(err).Warn("Failed to read categories, using fallback id")
		return fallbackID
	}

	if label, ok := a.recommender.Recommend(ctx, info.Merchant); ok {
		for _, c := range categories {
			if c.Name == label && c.Type == info.Type {
				return c.ID
			}
		}
	}

	for _, c := range categories {
		if c.Type == info.Type {
			return c.ID
		}
	}
	return fallbackID
}

func (a *Assembler) resolveAccount(source models.Source) int64 {
	accounts, err := a.store.Accounts()
	if err != nil {
		a.logger.WithError(err).Warn("Failed to read accounts, using fallback id")
		return fallbackID
	}

	name := AccountNameFor(source)
	for _, acc := range accounts {
		if acc.Name == name {
			return acc.ID
		}
	}
	if len(accounts) > 0 {
		return accounts[0].ID
	}
	return fallbackID
}

// AccountNameFor maps a payment source to its canonical account name.
func AccountNameFor(source models.Source) string {
	switch source {
	case models.SourceWeChat:
		return "微信"
	case models.SourceAlipay:
		return "支付宝"
	default:
		return "现金"
	}
}
