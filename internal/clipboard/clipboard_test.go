package clipboard

import (
	"errors"
	"sync"
	"testing"
	"time"

	"whereismymoney/wimm/internal/logging"
	"whereismymoney/wimm/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeReader serves clipboard content from a settable field.
type fakeReader struct {
	mu      sync.Mutex
	content string
	err     error
}

func (r *fakeReader) Read() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.content, r.err
}

func (r *fakeReader) set(content string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.content = content
}

func collectInfo(ch chan models.ParsedPaymentInfo) Callback {
	return func(info models.ParsedPaymentInfo) {
		ch <- info
	}
}

func waitForInfo(t *testing.T, ch chan models.ParsedPaymentInfo) models.ParsedPaymentInfo {
	t.Helper()
	select {
	case info := <-ch:
		return info
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for clipboard callback")
		return models.ParsedPaymentInfo{}
	}
}

func assertNoInfo(t *testing.T, ch chan models.ParsedPaymentInfo, wait time.Duration) {
	t.Helper()
	select {
	case info := <-ch:
		t.Fatalf("unexpected callback with %+v", info)
	case <-time.After(wait):
	}
}

func TestMonitor_FiresOnPaymentContent(t *testing.T) {
	reader := &fakeReader{content: "微信支付成功，收款方：瑞幸咖啡 ￥18.50"}
	monitor := NewMonitor(reader, 10*time.Millisecond, logging.NewMockLogger())
	defer monitor.Stop()

	ch := make(chan models.ParsedPaymentInfo, 4)
	require.True(t, monitor.Start(collectInfo(ch)))

	info := waitForInfo(t, ch)
	assert.Equal(t, models.SourceWeChat, info.Source)
	assert.True(t, info.Amount.Equal(decimal.RequireFromString("18.5")))
	assert.Equal(t, "瑞幸咖啡", info.Merchant)
}

func TestMonitor_UnchangedContentFiresOnce(t *testing.T) {
	reader := &fakeReader{content: "微信支付 ¥10"}
	monitor := NewMonitor(reader, 10*time.Millisecond, logging.NewMockLogger())
	defer monitor.Stop()

	ch := make(chan models.ParsedPaymentInfo, 4)
	require.True(t, monitor.Start(collectInfo(ch)))

	waitForInfo(t, ch)
	assertNoInfo(t, ch, 100*time.Millisecond)
}

func TestMonitor_ChangedContentFiresAgain(t *testing.T) {
	reader := &fakeReader{content: "微信支付 ¥10"}
	monitor := NewMonitor(reader, 10*time.Millisecond, logging.NewMockLogger())
	defer monitor.Stop()

	ch := make(chan models.ParsedPaymentInfo, 4)
	require.True(t, monitor.Start(collectInfo(ch)))
	waitForInfo(t, ch)

	reader.set("支付宝 付款 ¥20")
	info := waitForInfo(t, ch)
	assert.Equal(t, models.SourceAlipay, info.Source)
	assert.True(t, info.Amount.Equal(decimal.RequireFromString("20")))
}

func TestMonitor_UnparseableContentAdvancesFingerprint(t *testing.T) {
	reader := &fakeReader{content: "明天开会别迟到"}
	monitor := NewMonitor(reader, 10*time.Millisecond, logging.NewMockLogger())
	defer monitor.Stop()

	ch := make(chan models.ParsedPaymentInfo, 4)
	require.True(t, monitor.Start(collectInfo(ch)))

	// Unparseable content never fires, and is not retried every tick
	assertNoInfo(t, ch, 100*time.Millisecond)

	reader.set("微信支付 ¥10")
	waitForInfo(t, ch)
}

func TestMonitor_ReadErrorsAreSkipped(t *testing.T) {
	reader := &fakeReader{err: errors.New("no display")}
	monitor := NewMonitor(reader, 10*time.Millisecond, logging.NewMockLogger())
	defer monitor.Stop()

	ch := make(chan models.ParsedPaymentInfo, 4)
	require.True(t, monitor.Start(collectInfo(ch)))
	assertNoInfo(t, ch, 100*time.Millisecond)
}

func TestMonitor_NilReaderDoesNotStart(t *testing.T) {
	logger := logging.NewMockLogger()
	monitor := NewMonitor(nil, 10*time.Millisecond, logger)
	assert.False(t, monitor.Start(func(models.ParsedPaymentInfo) {}))
	assert.True(t, logger.HasEntry("WARN", "No clipboard capability available, monitor not started"))
}

func TestMonitor_StopPreventsFurtherCallbacks(t *testing.T) {
	reader := &fakeReader{content: "微信支付 ¥10"}
	monitor := NewMonitor(reader, 10*time.Millisecond, logging.NewMockLogger())

	ch := make(chan models.ParsedPaymentInfo, 16)
	require.True(t, monitor.Start(collectInfo(ch)))
	waitForInfo(t, ch)

	monitor.Stop()
	reader.set("支付宝 付款 ¥99")
	assertNoInfo(t, ch, 100*time.Millisecond)
}

func TestMonitor_StopIsIdempotent(t *testing.T) {
	reader := &fakeReader{content: ""}
	monitor := NewMonitor(reader, 10*time.Millisecond, logging.NewMockLogger())
	monitor.Stop() // never started

	require.True(t, monitor.Start(func(models.ParsedPaymentInfo) {}))
	monitor.Stop()
	monitor.Stop()
}

func TestMonitor_FingerprintSurvivesRestart(t *testing.T) {
	reader := &fakeReader{content: "微信支付 ¥10"}
	monitor := NewMonitor(reader, 10*time.Millisecond, logging.NewMockLogger())
	defer monitor.Stop()

	ch := make(chan models.ParsedPaymentInfo, 4)
	require.True(t, monitor.Start(collectInfo(ch)))
	waitForInfo(t, ch)
	monitor.Stop()

	// Restarting over unchanged content must not re-fire on the stale copy
	require.True(t, monitor.Start(collectInfo(ch)))
	assertNoInfo(t, ch, 100*time.Millisecond)

	reader.set("支付宝 付款 ¥20")
	waitForInfo(t, ch)
}

func TestMonitor_StartReplacesCallback(t *testing.T) {
	reader := &fakeReader{content: "微信支付 ¥10"}
	monitor := NewMonitor(reader, 10*time.Millisecond, logging.NewMockLogger())
	defer monitor.Stop()

	first := make(chan models.ParsedPaymentInfo, 4)
	second := make(chan models.ParsedPaymentInfo, 4)
	require.True(t, monitor.Start(collectInfo(first)))
	waitForInfo(t, first)

	require.True(t, monitor.Start(collectInfo(second)))
	reader.set("支付宝 付款 ¥20")
	waitForInfo(t, second)
	assertNoInfo(t, first, 50*time.Millisecond)
}

func TestMonitor_DefaultInterval(t *testing.T) {
	monitor := NewMonitor(&fakeReader{}, 0, logging.NewMockLogger())
	assert.Equal(t, DefaultInterval, monitor.interval)
}

func TestParseOnce(t *testing.T) {
	reader := &fakeReader{content: "微信支付成功，收款方：瑞幸咖啡 ￥18.50"}
	monitor := NewMonitor(reader, time.Second, logging.NewMockLogger())

	info, err := monitor.ParseOnce()
	require.NoError(t, err)
	assert.Equal(t, "瑞幸咖啡", info.Merchant)

	// ParseOnce must not advance the monitor fingerprint
	ch := make(chan models.ParsedPaymentInfo, 4)
	require.True(t, monitor.Start(collectInfo(ch)))
	waitForInfo(t, ch)
	monitor.Stop()
}

func TestParseOnce_Errors(t *testing.T) {
	monitor := NewMonitor(&fakeReader{content: "   "}, time.Second, logging.NewMockLogger())
	_, err := monitor.ParseOnce()
	assert.ErrorIs(t, err, ErrEmptyClipboard)

	monitor = NewMonitor(&fakeReader{content: "明天开会"}, time.Second, logging.NewMockLogger())
	_, err = monitor.ParseOnce()
	assert.ErrorIs(t, err, ErrNoPaymentInfo)

	monitor = NewMonitor(nil, time.Second, logging.NewMockLogger())
	_, err = monitor.ParseOnce()
	assert.ErrorIs(t, err, ErrEmptyClipboard)

	readErr := errors.New("no display")
	monitor = NewMonitor(&fakeReader{err: readErr}, time.Second, logging.NewMockLogger())
	_, err = monitor.ParseOnce()
	assert.ErrorIs(t, err, readErr)
}

func TestGenerateShareText(t *testing.T) {
	expense := models.TransactionDraft{
		Type:     models.TypeExpense,
		Amount:   decimal.RequireFromString("25"),
		Merchant: "瑞幸咖啡",
	}
	assert.Equal(t, "支出 ¥25.00 瑞幸咖啡", GenerateShareText(expense))

	income := models.TransactionDraft{
		Type:   models.TypeIncome,
		Amount: decimal.RequireFromString("100"),
	}
	assert.Equal(t, "收入 ¥100.00", GenerateShareText(income))

	// Round-trip: share text is itself extractable
	monitor := NewMonitor(&fakeReader{content: GenerateShareText(expense)}, time.Second, logging.NewMockLogger())
	info, err := monitor.ParseOnce()
	require.NoError(t, err)
	assert.True(t, info.Amount.Equal(expense.Amount))
	assert.Equal(t, models.TypeExpense, info.Type)
}
