// Package extractor implements the heuristic extraction engine that turns
// free-form payment text into a structured ParsedPaymentInfo.
//
// Extraction runs four fixed steps with no backtracking: source detection,
// amount extraction, merchant extraction, type classification. Only amount
// failure aborts the whole extraction; a missing merchant is not a failure.
package extractor

import (
	"strings"

	"whereismymoney/wimm/internal/models"
	"whereismymoney/wimm/internal/patterns"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var log = logrus.New()

// SetLogger allows setting a configured logger
func SetLogger(logger *logrus.Logger) {
	if logger != nil {
		log = logger
	}
}

// Extract parses payment text and returns the structured payment info.
// The boolean is false when the text carries no extractable positive amount;
// malformed input never produces an error, only absence.
func Extract(text string) (models.ParsedPaymentInfo, bool) {
	if strings.TrimSpace(text) == "" {
		return models.ParsedPaymentInfo{}, false
	}

	source := detectSource(text)

	amount, ok := extractAmount(text)
	if !ok {
		log.WithField("source", source).Debug("No positive amount found, discarding text")
		return models.ParsedPaymentInfo{}, false
	}

	merchant := extractMerchant(text, source)
	txType := detectTransactionType(text)

	log.WithFields(logrus.Fields{
		"source":   source,
		"amount":   amount.String(),
		"merchant": merchant,
		"type":     txType,
	}).Debug("Extracted payment info")

	return models.ParsedPaymentInfo{
		Source:   source,
		Amount:   amount,
		Merchant: merchant,
		Type:     txType,
		RawText:  text,
	}, true
}

// ExtractEvent runs Extract over the concatenated title and body of a
// normalized channel event.
func ExtractEvent(ev models.RawPaymentEvent) (models.ParsedPaymentInfo, bool) {
	text := ev.Body
	if ev.Title != "" {
		text = ev.Title + " " + ev.Body
	}
	return Extract(text)
}

// ExtractFromNotification gates a native notification on the payment-app
// channel allow-list and the payment vocabulary before extracting from the
// concatenation of title and body. Notifications failing either gate are
// discarded without running the amount extractor.
func ExtractFromNotification(channelID, title, body string) (models.ParsedPaymentInfo, bool) {
	if _, ok := patterns.PaymentAppChannels[channelID]; !ok {
		return models.ParsedPaymentInfo{}, false
	}

	fullText := title + " " + body
	if !containsAny(fullText, patterns.PaymentVocabulary) {
		log.WithField("channel", channelID).Debug("Notification carries no payment vocabulary, skipping")
		return models.ParsedPaymentInfo{}, false
	}

	return Extract(fullText)
}

// detectSource scans for channel-identifying keywords, WeChat before Alipay;
// text matching neither is attributed to the generic clipboard source.
func detectSource(text string) models.Source {
	lower := strings.ToLower(text)

	if containsAny(lower, patterns.WeChatSourceKeywords) {
		return models.SourceWeChat
	}
	if containsAny(lower, patterns.AlipaySourceKeywords) {
		return models.SourceAlipay
	}
	return models.SourceClipboard
}

// extractAmount tries the amount patterns in order; the first match that
// parses to a strictly positive decimal wins.
func extractAmount(text string) (decimal.Decimal, bool) {
	for _, pattern := range patterns.AmountPatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil || m[1] == "" {
			continue
		}
		raw := strings.TrimSuffix(m[1], ".")
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			continue
		}
		if amount.IsPositive() {
			return amount, true
		}
	}
	return decimal.Decimal{}, false
}

// extractMerchant tries the merchant pattern set selected by source and
// returns the first qualifying capture, or the empty string.
func extractMerchant(text string, source models.Source) string {
	merchantPatterns := patterns.AlipayMerchantPatterns
	if source == models.SourceWeChat {
		merchantPatterns = patterns.WeChatMerchantPatterns
	}

	for _, pattern := range merchantPatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		merchant := strings.TrimSpace(m[1])
		if patterns.ValidMerchant(merchant) {
			return merchant
		}
	}
	return ""
}

// detectTransactionType reports income when any income keyword is present,
// expense otherwise. First keyword match short-circuits. The 收款方 merchant
// label is stripped first: it contains 收款 but marks the payee of an
// outgoing payment, not incoming money.
func detectTransactionType(text string) models.TransactionType {
	cleaned := strings.ReplaceAll(text, "收款方", "")
	for _, keyword := range patterns.IncomeKeywords {
		if strings.Contains(cleaned, keyword) {
			return models.TypeIncome
		}
	}
	return models.TypeExpense
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}
