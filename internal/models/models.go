// Package models defines the core data structures exchanged between the
// channel adapters, the extraction engine and the transaction store.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Source identifies the payment provider inferred from text, or the channel
// a record entered through when no provider could be inferred.
type Source string

const (
	SourceWeChat    Source = "wechat"
	SourceAlipay    Source = "alipay"
	SourceClipboard Source = "clipboard"
	// SourceManual marks store rows entered by hand; the ingestion pipeline
	// never emits it.
	SourceManual Source = "manual"
)

// TransactionType distinguishes income from expense.
type TransactionType string

const (
	TypeIncome  TransactionType = "income"
	TypeExpense TransactionType = "expense"
)

// RawPaymentEvent is the normalized shape a channel adapter produces from a
// host event before extraction. It is consumed exactly once.
type RawPaymentEvent struct {
	Channel   Source
	Title     string
	Body      string
	Timestamp int64
}

// NotificationEvent is the wire shape delivered by a native notification
// listener.
type NotificationEvent struct {
	ChannelID string `json:"channelId"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Timestamp int64  `json:"timestamp"`
}

// ShareRecord is a single entry deposited into the shared inbox by an
// out-of-process share handler.
type ShareRecord struct {
	Timestamp int64  `json:"timestamp"`
	Text      string `json:"text"`
	ImagePath string `json:"imagePath"`
}

// ParsedPaymentInfo is the result of a successful extraction. Amount is
// always strictly positive; extraction fails instead of producing a zero or
// negative amount.
type ParsedPaymentInfo struct {
	Source   Source
	Amount   decimal.Decimal
	Merchant string
	Type     TransactionType
	RawText  string
}

// TransactionDraft is the unconfirmed candidate transaction handed to the
// store. The store assigns an id on insert. Pipeline-produced drafts always
// carry Confirmed=false; confirmation is a user action outside this core.
type TransactionDraft struct {
	Type       TransactionType `json:"type"`
	Amount     decimal.Decimal `json:"amount"`
	CategoryID int64           `json:"categoryId"`
	AccountID  int64           `json:"accountId"`
	Merchant   string          `json:"merchant"`
	Note       string          `json:"note"`
	Source     Source          `json:"source"`
	CreatedAt  time.Time       `json:"createdAt"`
	Confirmed  bool            `json:"confirmed"`
}

// Transaction is a stored transaction row: a draft plus the id the store
// assigned on insert.
type Transaction struct {
	ID int64 `json:"id"`
	TransactionDraft
}

// Category is a transaction category as stored.
type Category struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	Icon      string          `json:"icon"`
	Type      TransactionType `json:"type"`
	SortOrder int             `json:"sortOrder"`
}

// Account is a payment account as stored.
type Account struct {
	ID      int64           `json:"id"`
	Name    string          `json:"name"`
	Icon    string          `json:"icon"`
	Balance decimal.Decimal `json:"balance"`
}
