// Package shareinbox drains share records deposited by an out-of-process
// share handler into a JSON inbox file, runs extraction over them and clears
// the inbox.
package shareinbox

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"whereismymoney/wimm/internal/extractor"
	"whereismymoney/wimm/internal/logging"
	"whereismymoney/wimm/internal/models"
)

// Callback receives extracted payment info for each processed record. When
// fired by a Watcher it runs on the watch goroutine, which Stop waits for,
// so a callback must not call Start or Stop on the watcher that fired it.
type Callback func(models.ParsedPaymentInfo)

// DrainResult reports what one drain pass did with the inbox.
type DrainResult struct {
	Total     int // records found in the inbox
	Processed int // records that yielded payment info
	Skipped   int // image-only records and records whose text failed extraction
}

// Inbox reads and clears the shared inbox file. Records are processed in
// deposit order and the whole inbox is cleared after a drain: drained
// records are never revisited, even when extraction failed for them.
type Inbox struct {
	path   string
	logger logging.Logger
}

// NewInbox creates an inbox over the given file path.
func NewInbox(path string, logger logging.Logger) *Inbox {
	return &Inbox{
		path:   path,
		logger: logger,
	}
}

// Path returns the inbox file location.
func (i *Inbox) Path() string {
	return i.path
}

// Pending returns the records currently in the inbox. A missing or
// malformed inbox file reads as empty, the same as no signal.
func (i *Inbox) Pending() []models.ShareRecord {
	data, err := os.ReadFile(i.path)
	if err != nil {
		if !os.IsNotExist(err) {
			i.logger.WithError(err).Warn("Failed to read share inbox")
		}
		return nil
	}

	var records []models.ShareRecord
	if err := json.Unmarshal(data, &records); err != nil {
		i.logger.WithError(err).WithField(logging.FieldFile, i.path).
			Warn("Share inbox is malformed, treating as empty")
		return nil
	}
	return records
}

// HasPending reports whether the inbox holds any records.
func (i *Inbox) HasPending() bool {
	return len(i.Pending()) > 0
}

// Clear removes every record from the inbox.
func (i *Inbox) Clear() error {
	if err := os.Remove(i.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("clearing share inbox: %w", err)
	}
	return nil
}

// Drain processes all pending records in order and then clears the inbox.
// Text records go through the extraction engine; image-only records are
// skipped (no OCR). Records whose text fails extraction are dropped with
// the rest; the inbox never re-surfaces stale shares. A second immediate
// Drain therefore finds zero records.
func (i *Inbox) Drain(callback Callback) DrainResult {
	records := i.Pending()
	result := DrainResult{Total: len(records)}

	for _, record := range records {
		if record.Text == "" {
			if record.ImagePath != "" {
				i.logger.WithField(logging.FieldFile, record.ImagePath).
					Debug("Image-only share record skipped, OCR not implemented")
			}
			result.Skipped++
			continue
		}

		info, ok := extractor.Extract(record.Text)
		if !ok {
			result.Skipped++
			continue
		}

		if callback != nil {
			callback(info)
		}
		result.Processed++
	}

	if result.Total > 0 {
		if err := i.Clear(); err != nil {
			i.logger.WithError(err).Warn("Failed to clear share inbox after drain")
		}
	}

	i.logger.Info("Share inbox drained",
		logging.Field{Key: logging.FieldCount, Value: result.Total},
		logging.Field{Key: "processed", Value: result.Processed},
		logging.Field{Key: "skipped", Value: result.Skipped})
	return result
}

// Deposit appends records to the inbox file. It exists for the share
// handler side and for tests; the app itself only drains.
func (i *Inbox) Deposit(records ...models.ShareRecord) error {
	all := append(i.Pending(), records...)

	data, err := json.Marshal(all)
	if err != nil {
		return fmt.Errorf("marshaling share records: %w", err)
	}
	if dir := filepath.Dir(i.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating inbox directory: %w", err)
		}
	}
	if err := os.WriteFile(i.path, data, 0o644); err != nil {
		return fmt.Errorf("writing share inbox: %w", err)
	}
	return nil
}
