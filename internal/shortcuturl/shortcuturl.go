// Package shortcuturl decodes the custom-scheme URL through which OS
// shortcut automations hand a payment directly to the app. This is a
// one-shot decode, not a monitor: there is no callback registration.
package shortcuturl

import (
	"net/url"
	"strings"

	"whereismymoney/wimm/internal/models"

	"github.com/shopspring/decimal"
)

// Scheme is the custom URL scheme the app registers.
const Scheme = "app"

// addPath identifies the add-transaction endpoint within the scheme.
const addPath = "add"

// Parse decodes app://add?amount=&merchant=&type=&source= into payment
// info. The boolean is false for a wrong scheme or endpoint, a missing or
// non-positive amount, or an unparsable URL. Malformed input is absence,
// never an error.
func Parse(rawURL string) (models.ParsedPaymentInfo, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return models.ParsedPaymentInfo{}, false
	}

	if u.Scheme != Scheme {
		return models.ParsedPaymentInfo{}, false
	}
	endpoint := u.Host
	if endpoint == "" {
		endpoint = strings.Trim(u.Path, "/")
	}
	if endpoint != addPath {
		return models.ParsedPaymentInfo{}, false
	}

	params := u.Query()

	amount, err := decimal.NewFromString(params.Get("amount"))
	if err != nil || !amount.IsPositive() {
		return models.ParsedPaymentInfo{}, false
	}

	return models.ParsedPaymentInfo{
		Source:   parseSource(params.Get("source")),
		Amount:   amount,
		Merchant: params.Get("merchant"),
		Type:     parseType(params.Get("type")),
		RawText:  rawURL,
	}, true
}

func parseType(s string) models.TransactionType {
	if s == string(models.TypeIncome) {
		return models.TypeIncome
	}
	return models.TypeExpense
}

func parseSource(s string) models.Source {
	switch models.Source(s) {
	case models.SourceWeChat, models.SourceAlipay, models.SourceClipboard:
		return models.Source(s)
	default:
		return models.SourceClipboard
	}
}
