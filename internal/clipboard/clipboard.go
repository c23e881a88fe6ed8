// Package clipboard implements the clipboard polling monitor, the ingestion
// channel for platforms where notifications cannot be listened to directly.
package clipboard

import (
	"errors"
	"strings"
	"sync"
	"time"

	"whereismymoney/wimm/internal/extractor"
	"whereismymoney/wimm/internal/logging"
	"whereismymoney/wimm/internal/models"
)

// DefaultInterval is the default clipboard poll interval.
const DefaultInterval = 2000 * time.Millisecond

// ErrEmptyClipboard is returned by ParseOnce when there is nothing to parse.
var ErrEmptyClipboard = errors.New("clipboard is empty")

// ErrNoPaymentInfo is returned by ParseOnce when the clipboard content
// carries no extractable payment signal.
var ErrNoPaymentInfo = errors.New("no payment info recognized in clipboard")

// Reader is the host capability for reading clipboard content. Concrete
// implementations are platform bindings supplied at composition time.
type Reader interface {
	Read() (string, error)
}

// Callback receives extracted payment info from a monitor poll. It runs on
// the poll goroutine, which Stop waits for, so a callback must not call
// Start or Stop on the monitor that fired it.
type Callback func(models.ParsedPaymentInfo)

// Monitor polls the clipboard on a fixed interval and fires its callback
// when new content yields payment info. A fingerprint of the last-seen
// content suppresses re-firing on unchanged clipboard; the fingerprint is
// kept across Stop so a restart does not re-fire on stale content.
type Monitor struct {
	reader   Reader
	interval time.Duration
	logger   logging.Logger

	mu          sync.Mutex
	fingerprint string
	callback    Callback
	active      bool
	stopCh      chan struct{}
	wg          sync.WaitGroup
}

// NewMonitor creates a clipboard monitor. A non-positive interval falls
// back to DefaultInterval.
func NewMonitor(reader Reader, interval time.Duration, logger logging.Logger) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Monitor{
		reader:   reader,
		interval: interval,
		logger:   logger,
	}
}

// Start begins polling and registers the callback, checking once
// immediately. Calling Start while running replaces the previous callback,
// stopping the old poll loop first. Returns false when no clipboard
// capability is available.
func (m *Monitor) Start(callback Callback) bool {
	if m.reader == nil {
		m.logger.Warn("No clipboard capability available, monitor not started")
		return false
	}

	m.Stop()

	m.mu.Lock()
	m.callback = callback
	m.active = true
	m.stopCh = make(chan struct{})
	stopCh := m.stopCh
	m.mu.Unlock()

	m.wg.Add(1)
	go m.loop(stopCh)

	m.logger.Info("Clipboard monitor started",
		logging.Field{Key: "interval", Value: m.interval.String()})
	return true
}

// Stop cancels the poll timer and clears the callback. It is idempotent and
// guarantees no callback invocation after it returns. The content
// fingerprint is deliberately not reset.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if !m.active {
		m.mu.Unlock()
		return
	}
	m.active = false
	m.callback = nil
	close(m.stopCh)
	m.mu.Unlock()

	m.wg.Wait()
	m.logger.Info("Clipboard monitor stopped")
}

// loop runs one poll immediately, then one per tick until stopped. Each
// poll runs to completion before the next tick fires.
func (m *Monitor) loop(stopCh chan struct{}) {
	defer m.wg.Done()

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.poll()
	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			m.poll()
		}
	}
}

// poll reads the clipboard, applies fingerprint dedup and runs extraction.
// The fingerprint advances on any new non-empty content, including content
// that fails extraction, so an unparseable copy is not retried every tick.
func (m *Monitor) poll() {
	content, err := m.reader.Read()
	if err != nil {
		m.logger.WithError(err).Debug("Clipboard read failed")
		return
	}

	m.mu.Lock()
	if !m.active {
		m.mu.Unlock()
		return
	}
	if content == "" || content == m.fingerprint {
		m.mu.Unlock()
		return
	}
	m.fingerprint = content
	callback := m.callback
	m.mu.Unlock()

	info, ok := extractor.Extract(content)
	if !ok || callback == nil {
		return
	}

	m.logger.WithFields(
		logging.Field{Key: logging.FieldSource, Value: info.Source},
		logging.Field{Key: logging.FieldAmount, Value: info.Amount.String()},
	).Debug("Payment info found in clipboard")
	callback(info)
}

// ParseOnce reads and parses the current clipboard content without touching
// the monitor fingerprint. It serves user-triggered manual parsing.
func (m *Monitor) ParseOnce() (models.ParsedPaymentInfo, error) {
	if m.reader == nil {
		return models.ParsedPaymentInfo{}, ErrEmptyClipboard
	}

	content, err := m.reader.Read()
	if err != nil {
		return models.ParsedPaymentInfo{}, err
	}
	if strings.TrimSpace(content) == "" {
		return models.ParsedPaymentInfo{}, ErrEmptyClipboard
	}

	info, ok := extractor.Extract(content)
	if !ok {
		return models.ParsedPaymentInfo{}, ErrNoPaymentInfo
	}
	return info, nil
}

// GenerateShareText renders a draft as the share text understood by the
// extraction engine, e.g. "支出 ¥25.00 瑞幸咖啡".
func GenerateShareText(draft models.TransactionDraft) string {
	typeText := "支出"
	if draft.Type == models.TypeIncome {
		typeText = "收入"
	}
	text := typeText + " ¥" + draft.Amount.StringFixed(2)
	if draft.Merchant != "" {
		text += " " + draft.Merchant
	}
	return text
}
