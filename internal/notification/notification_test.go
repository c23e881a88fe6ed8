package notification

import (
	"errors"
	"testing"

	"whereismymoney/wimm/internal/logging"
	"whereismymoney/wimm/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeHost is a scriptable ListenerHost.
type fakeHost struct {
	enabled    bool
	enabledErr error

	grantOnRequest bool
	requestErr     error

	startErr error
	stopErr  error

	handler func(models.NotificationEvent)

	startCalls   int
	stopCalls    int
	requestCalls int
}

func (h *fakeHost) IsEnabled() (bool, error) {
	return h.enabled, h.enabledErr
}

func (h *fakeHost) RequestPermission() (bool, error) {
	h.requestCalls++
	if h.requestErr != nil {
		return false, h.requestErr
	}
	h.enabled = h.grantOnRequest
	return h.grantOnRequest, nil
}

func (h *fakeHost) StartListening(handler func(models.NotificationEvent)) error {
	h.startCalls++
	if h.startErr != nil {
		return h.startErr
	}
	h.handler = handler
	return nil
}

func (h *fakeHost) StopListening() error {
	h.stopCalls++
	h.handler = nil
	return h.stopErr
}

func (h *fakeHost) deliver(ev models.NotificationEvent) {
	if h.handler != nil {
		h.handler(ev)
	}
}

func paymentEvent() models.NotificationEvent {
	return models.NotificationEvent{
		ChannelID: "com.tencent.mm",
		Title:     "微信支付",
		Body:      "向瑞幸咖啡付款 ¥25.00",
	}
}

func TestPermissionState_String(t *testing.T) {
	assert.Equal(t, "unknown", PermissionUnknown.String())
	assert.Equal(t, "disabled", PermissionDisabled.String())
	assert.Equal(t, "enabled", PermissionEnabled.String())
}

func TestCheckPermission(t *testing.T) {
	tests := []struct {
		name     string
		host     *fakeHost
		expected PermissionState
	}{
		{"granted", &fakeHost{enabled: true}, PermissionEnabled},
		{"not granted", &fakeHost{enabled: false}, PermissionDisabled},
		{"host error reads as disabled", &fakeHost{enabledErr: errors.New("ipc broken")}, PermissionDisabled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adapter := NewAdapter(tt.host, logging.NewMockLogger())
			assert.Equal(t, tt.expected, adapter.CheckPermission())
		})
	}
}

func TestCheckPermission_NilHost(t *testing.T) {
	adapter := NewAdapter(nil, logging.NewMockLogger())
	assert.Equal(t, PermissionDisabled, adapter.CheckPermission())
}

func TestRequestPermission_NilHost(t *testing.T) {
	adapter := NewAdapter(nil, logging.NewMockLogger())
	assert.Equal(t, PermissionDisabled, adapter.RequestPermission())
}

func TestRequestPermission(t *testing.T) {
	t.Run("already granted skips the request", func(t *testing.T) {
		host := &fakeHost{enabled: true}
		adapter := NewAdapter(host, logging.NewMockLogger())
		assert.Equal(t, PermissionEnabled, adapter.RequestPermission())
		assert.Equal(t, 0, host.requestCalls)
	})

	t.Run("user grants", func(t *testing.T) {
		host := &fakeHost{grantOnRequest: true}
		adapter := NewAdapter(host, logging.NewMockLogger())
		assert.Equal(t, PermissionEnabled, adapter.RequestPermission())
		assert.Equal(t, 1, host.requestCalls)
	})

	t.Run("user declines", func(t *testing.T) {
		host := &fakeHost{grantOnRequest: false}
		adapter := NewAdapter(host, logging.NewMockLogger())
		assert.Equal(t, PermissionDisabled, adapter.RequestPermission())
	})

	t.Run("request error reads as disabled", func(t *testing.T) {
		host := &fakeHost{requestErr: errors.New("no settings screen")}
		adapter := NewAdapter(host, logging.NewMockLogger())
		assert.Equal(t, PermissionDisabled, adapter.RequestPermission())
	})
}

func TestStart_DeliversPaymentNotifications(t *testing.T) {
	host := &fakeHost{enabled: true}
	adapter := NewAdapter(host, logging.NewMockLogger())

	var got []models.ParsedPaymentInfo
	require.True(t, adapter.Start(func(info models.ParsedPaymentInfo) {
		got = append(got, info)
	}))

	host.deliver(paymentEvent())
	require.Len(t, got, 1)
	assert.Equal(t, models.SourceWeChat, got[0].Source)
	assert.True(t, got[0].Amount.Equal(decimal.RequireFromString("25")))
	assert.Equal(t, "瑞幸咖啡", got[0].Merchant)
}

func TestStart_FiltersNonPaymentEvents(t *testing.T) {
	host := &fakeHost{enabled: true}
	adapter := NewAdapter(host, logging.NewMockLogger())

	fired := 0
	require.True(t, adapter.Start(func(models.ParsedPaymentInfo) { fired++ }))

	// Unknown package
	host.deliver(models.NotificationEvent{
		ChannelID: "com.example.other",
		Title:     "微信支付",
		Body:      "向瑞幸咖啡付款 ¥25.00",
	})
	// Payment app, but chat text
	host.deliver(models.NotificationEvent{
		ChannelID: "com.tencent.mm",
		Title:     "张三",
		Body:      "晚上一起吃饭吗",
	})
	assert.Zero(t, fired)
}

func TestStart_FailsWithoutPermission(t *testing.T) {
	host := &fakeHost{enabled: false}
	adapter := NewAdapter(host, logging.NewMockLogger())
	assert.False(t, adapter.Start(func(models.ParsedPaymentInfo) {}))
	assert.Zero(t, host.startCalls)
}

func TestStart_FailsWithNilHost(t *testing.T) {
	adapter := NewAdapter(nil, logging.NewMockLogger())
	assert.False(t, adapter.Start(func(models.ParsedPaymentInfo) {}))
}

func TestStart_HostRefusal(t *testing.T) {
	host := &fakeHost{enabled: true, startErr: errors.New("listener busy")}
	adapter := NewAdapter(host, logging.NewMockLogger())
	assert.False(t, adapter.Start(func(models.ParsedPaymentInfo) {}))

	// A later event must not fire anything
	host.deliver(paymentEvent())
}

func TestStop_PreventsFurtherCallbacks(t *testing.T) {
	host := &fakeHost{enabled: true}
	adapter := NewAdapter(host, logging.NewMockLogger())

	fired := 0
	require.True(t, adapter.Start(func(models.ParsedPaymentInfo) { fired++ }))
	assert.True(t, adapter.Stop())

	// Late-arriving host event after Stop is a no-op
	adapter.handleEvent(paymentEvent())
	assert.Zero(t, fired)
	assert.Equal(t, 1, host.stopCalls)
}

func TestStop_Idempotent(t *testing.T) {
	host := &fakeHost{enabled: true}
	adapter := NewAdapter(host, logging.NewMockLogger())

	assert.True(t, adapter.Stop()) // never started

	require.True(t, adapter.Start(func(models.ParsedPaymentInfo) {}))
	assert.True(t, adapter.Stop())
	assert.True(t, adapter.Stop())
	assert.Equal(t, 1, host.stopCalls)
}

func TestStart_ReplacesCallback(t *testing.T) {
	host := &fakeHost{enabled: true}
	adapter := NewAdapter(host, logging.NewMockLogger())

	firstFired, secondFired := 0, 0
	require.True(t, adapter.Start(func(models.ParsedPaymentInfo) { firstFired++ }))
	require.True(t, adapter.Start(func(models.ParsedPaymentInfo) { secondFired++ }))

	host.deliver(paymentEvent())
	assert.Zero(t, firstFired)
	assert.Equal(t, 1, secondFired)
}
