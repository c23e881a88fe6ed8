package shareinbox

import (
	"path/filepath"
	"testing"
	"time"

	"whereismymoney/wimm/internal/logging"
	"whereismymoney/wimm/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForDrained(t *testing.T, ch chan models.ParsedPaymentInfo) models.ParsedPaymentInfo {
	t.Helper()
	select {
	case info := <-ch:
		return info
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for inbox watcher callback")
		return models.ParsedPaymentInfo{}
	}
}

func TestWatcher_DrainsExistingRecordsOnStart(t *testing.T) {
	inbox := newTestInbox(t)
	require.NoError(t, inbox.Deposit(models.ShareRecord{Text: "微信支付 ¥10"}))

	watcher := NewWatcher(inbox, logging.NewMockLogger())
	ch := make(chan models.ParsedPaymentInfo, 4)
	require.True(t, watcher.Start(func(info models.ParsedPaymentInfo) { ch <- info }))
	defer watcher.Stop()

	info := waitForDrained(t, ch)
	assert.True(t, info.Amount.Equal(decimal.RequireFromString("10")))
	assert.False(t, inbox.HasPending())
}

func TestWatcher_DrainsOnInboxWrite(t *testing.T) {
	inbox := newTestInbox(t)
	watcher := NewWatcher(inbox, logging.NewMockLogger())

	ch := make(chan models.ParsedPaymentInfo, 4)
	require.True(t, watcher.Start(func(info models.ParsedPaymentInfo) { ch <- info }))
	defer watcher.Stop()

	require.NoError(t, inbox.Deposit(models.ShareRecord{Text: "支付宝 付款 ¥20"}))

	info := waitForDrained(t, ch)
	assert.Equal(t, models.SourceAlipay, info.Source)
}

func TestWatcher_IgnoresOtherFilesInDirectory(t *testing.T) {
	inbox := newTestInbox(t)
	watcher := NewWatcher(inbox, logging.NewMockLogger())

	ch := make(chan models.ParsedPaymentInfo, 4)
	require.True(t, watcher.Start(func(info models.ParsedPaymentInfo) { ch <- info }))
	defer watcher.Stop()

	other := NewInbox(filepath.Join(filepath.Dir(inbox.Path()), "other.json"), logging.NewMockLogger())
	require.NoError(t, other.Deposit(models.ShareRecord{Text: "微信支付 ¥10"}))

	select {
	case info := <-ch:
		t.Fatalf("unexpected callback with %+v", info)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_StopPreventsFurtherCallbacks(t *testing.T) {
	inbox := newTestInbox(t)
	watcher := NewWatcher(inbox, logging.NewMockLogger())

	ch := make(chan models.ParsedPaymentInfo, 4)
	require.True(t, watcher.Start(func(info models.ParsedPaymentInfo) { ch <- info }))
	watcher.Stop()

	require.NoError(t, inbox.Deposit(models.ShareRecord{Text: "微信支付 ¥10"}))
	select {
	case info := <-ch:
		t.Fatalf("unexpected callback with %+v", info)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	inbox := newTestInbox(t)
	watcher := NewWatcher(inbox, logging.NewMockLogger())
	watcher.Stop() // never started

	require.True(t, watcher.Start(nil))
	watcher.Stop()
	watcher.Stop()
}
