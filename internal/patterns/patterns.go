// Package patterns holds the ordered regex and keyword tables used by the
// extraction engine and the category recommender.
//
// Ordering inside every table is significant: matching is first-match-wins,
// and reordering a table changes observable extraction results.
package patterns

import "regexp"

// AmountPatterns are tried in order against the raw text. Each pattern's
// first capture group is the candidate amount.
var AmountPatterns = []*regexp.Regexp{
	regexp.MustCompile(`[￥¥]\s*(\d+\.?\d*)`),      // ￥25.00 / ¥25.00
	regexp.MustCompile(`(\d+\.?\d*)\s*元`),          // 25.00元
	regexp.MustCompile(`支付\s*(\d+\.?\d*)`),         // 支付25.00
	regexp.MustCompile(`付款\s*(\d+\.?\d*)`),         // 付款25.00
	regexp.MustCompile(`收款\s*(\d+\.?\d*)`),         // 收款25.00
	regexp.MustCompile(`金额[：:]\s*(\d+\.?\d*)`),     // 金额：25.00
	regexp.MustCompile(`(\d+\.?\d*)\s*(?:已|成功)`),   // 25.00已付款 / 25.00成功
}

// WeChatMerchantPatterns extract the merchant from WeChat-style text.
// Label-prefixed captures stop at whitespace so a trailing amount on the
// same line is not swallowed into the merchant name.
var WeChatMerchantPatterns = []*regexp.Regexp{
	regexp.MustCompile(`商户[：:]\s*(\S+)`),           // 商户：瑞幸咖啡
	regexp.MustCompile(`向\s*(.+?)\s*付款`),           // 向瑞幸咖啡付款
	regexp.MustCompile(`(?:在|于)\s*(.+?)\s*消费`),     // 在瑞幸咖啡消费
	regexp.MustCompile(`收款方[：:]\s*(\S+)`),          // 收款方：瑞幸咖啡
}

// AlipayMerchantPatterns extract the merchant from Alipay-style text. The
// same set serves unknown-source text.
var AlipayMerchantPatterns = []*regexp.Regexp{
	regexp.MustCompile(`收款方[：:]\s*(\S+)`),              // 收款方：美团外卖
	regexp.MustCompile(`付款给\s*(\S+)`),                  // 付款给美团外卖
	regexp.MustCompile(`向\s*(.+?)\s*付款`),                // 向美团外卖付款
	regexp.MustCompile(`商户[：:]\s*(\S+)`),                // 商户：美团外卖
	regexp.MustCompile(`(?:在|于)\s*(.+?)\s*(?:消费|支付)`), // 在美团外卖消费
}

// IncomeKeywords mark a transaction as income when any is present.
var IncomeKeywords = []string{
	"收款", "到账", "收到", "转入", "入账",
	"红包", "退款", "返还", "奖励", "收益",
}

// ExpenseKeywords are the expense-side vocabulary. Type classification
// defaults to expense, so these are informational rather than decisive.
var ExpenseKeywords = []string{
	"付款", "支付", "扣款", "消费", "转出",
	"转账", "购买", "充值", "缴费",
}

// WeChatSourceKeywords identify WeChat as the source, checked before Alipay.
var WeChatSourceKeywords = []string{"微信", "wechat"}

// AlipaySourceKeywords identify Alipay as the source.
var AlipaySourceKeywords = []string{"支付宝", "alipay", "花呗", "余额宝"}

// PaymentAppChannels is the allow-list of notification channel identifiers
// the notification adapter accepts.
var PaymentAppChannels = map[string]struct{}{
	"com.tencent.mm":              {}, // WeChat
	"com.eg.android.AlipayGphone": {}, // Alipay
}

// PaymentVocabulary gates notification text: a notification without any of
// these words is not a payment notification and is discarded before the
// amount extractor runs.
var PaymentVocabulary = []string{"支付", "付款", "收款", "到账", "扣款", "转账"}

// MaxMerchantRunes is the exclusive upper bound on accepted merchant length.
const MaxMerchantRunes = 30

// merchantRejectChars matches structural/markup characters that disqualify
// a merchant capture.
var merchantRejectChars = regexp.MustCompile(`[<>{}]`)

// ValidMerchant reports whether a captured merchant name qualifies.
func ValidMerchant(s string) bool {
	if s == "" {
		return false
	}
	if len([]rune(s)) >= MaxMerchantRunes {
		return false
	}
	return !merchantRejectChars.MatchString(s)
}
