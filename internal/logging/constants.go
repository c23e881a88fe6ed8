package logging

// Standardized field names for structured logging.
// Keeping the names in one place makes log output consistent across the
// channel adapters and the extraction engine.
const (
	FieldChannel  = "channel"
	FieldSource   = "source"
	FieldAmount   = "amount"
	FieldMerchant = "merchant"
	FieldType     = "type"
	FieldCategory = "category"
	FieldKeyword  = "keyword"
	FieldStrategy = "strategy"
	FieldCount    = "count"
	FieldFile     = "file_path"
	FieldReason   = "reason"
)
