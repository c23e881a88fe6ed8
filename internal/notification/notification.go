// Package notification wraps a platform notification-listening capability
// behind a permission state machine and forwards payment notifications into
// the extraction engine.
package notification

import (
	"sync"

	"whereismymoney/wimm/internal/extractor"
	"whereismymoney/wimm/internal/logging"
	"whereismymoney/wimm/internal/models"
)

// PermissionState is the notification-access permission as last observed.
type PermissionState int

const (
	PermissionUnknown PermissionState = iota
	PermissionDisabled
	PermissionEnabled
)

// String returns the state name for logging.
func (s PermissionState) String() string {
	switch s {
	case PermissionEnabled:
		return "enabled"
	case PermissionDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

// ListenerHost is the platform capability for listening to notifications.
// One concrete implementation exists per host platform; the surrounding
// application selects it at composition time.
type ListenerHost interface {
	// IsEnabled reports whether notification access is currently granted.
	IsEnabled() (bool, error)

	// RequestPermission guides the user to grant notification access and
	// reports whether access is granted afterwards. The user may decline.
	RequestPermission() (bool, error)

	// StartListening registers the handler for inbound native events.
	StartListening(handler func(models.NotificationEvent)) error

	// StopListening unregisters the handler at host level.
	StopListening() error
}

// Callback receives extracted payment info from accepted notifications.
// The adapter lock is held during delivery, so a callback must not call
// Start or Stop on the adapter that fired it.
type Callback func(models.ParsedPaymentInfo)

// Adapter is the notification ingestion channel. Inbound events pass the
// channel allow-list and payment-vocabulary gates before the callback fires.
type Adapter struct {
	host   ListenerHost
	logger logging.Logger

	mu       sync.Mutex
	state    PermissionState
	callback Callback
	active   bool
}

// NewAdapter creates a notification adapter over the given host capability.
// A nil host means the platform has no notification listening support.
func NewAdapter(host ListenerHost, logger logging.Logger) *Adapter {
	return &Adapter{
		host:   host,
		logger: logger,
		state:  PermissionUnknown,
	}
}

// CheckPermission queries the host and resolves Unknown into Enabled or
// Disabled.
func (a *Adapter) CheckPermission() PermissionState {
	if a.host == nil {
		return PermissionDisabled
	}

	enabled, err := a.host.IsEnabled()
	a.mu.Lock()
	defer a.mu.Unlock()
	if err != nil {
		a.logger.WithError(err).Warn("Failed to check notification permission")
		a.state = PermissionDisabled
		return a.state
	}
	if enabled {
		a.state = PermissionEnabled
	} else {
		a.state = PermissionDisabled
	}
	return a.state
}

// RequestPermission asks the host to guide the user to the grant screen.
// The user may decline, leaving the state Disabled.
func (a *Adapter) RequestPermission() PermissionState {
	if a.host == nil {
		a.logger.Warn("No notification listener capability on this platform")
		return PermissionDisabled
	}
	if a.CheckPermission() == PermissionEnabled {
		return PermissionEnabled
	}

	granted, err := a.host.RequestPermission()
	a.mu.Lock()
	defer a.mu.Unlock()
	if err != nil {
		a.logger.WithError(err).Warn("Notification permission request failed")
		a.state = PermissionDisabled
		return a.state
	}
	if granted {
		a.state = PermissionEnabled
	} else {
		a.state = PermissionDisabled
	}
	a.logger.Info("Notification permission request resolved",
		logging.Field{Key: "state", Value: a.state.String()})
	return a.state
}

// Start registers the callback and begins listening. It returns false when
// the host capability is missing, permission is not granted, or the host
// refuses to start; it never panics or returns an error to a callback.
// Calling Start while running replaces the previous callback.
func (a *Adapter) Start(callback Callback) bool {
	if a.host == nil {
		a.logger.Warn("No notification listener capability on this platform")
		return false
	}
	if a.CheckPermission() != PermissionEnabled {
		a.logger.Info("Notification access not granted, listener not started")
		return false
	}

	a.Stop()

	a.mu.Lock()
	a.callback = callback
	a.active = true
	a.mu.Unlock()

	if err := a.host.StartListening(a.handleEvent); err != nil {
		a.logger.WithError(err).Error("Failed to start notification listener")
		a.mu.Lock()
		a.callback = nil
		a.active = false
		a.mu.Unlock()
		return false
	}

	a.logger.Info("Notification listener started")
	return true
}

// Stop unregisters the callback and stops the host listener. It is
// idempotent, and after it returns no callback will fire: late-arriving
// host events see the cleared active flag and become no-ops.
func (a *Adapter) Stop() bool {
	a.mu.Lock()
	wasActive := a.active
	a.active = false
	a.callback = nil
	a.mu.Unlock()

	if !wasActive || a.host == nil {
		return true
	}

	if err := a.host.StopListening(); err != nil {
		a.logger.WithError(err).Warn("Failed to stop notification listener")
		return false
	}
	a.logger.Info("Notification listener stopped")
	return true
}

// handleEvent gates one native event through extraction and fires the
// callback. The lock is held across the callback so Stop cannot return
// while an accepted event is still being delivered.
func (a *Adapter) handleEvent(ev models.NotificationEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if !a.active || a.callback == nil {
		return
	}

	info, ok := extractor.ExtractFromNotification(ev.ChannelID, ev.Title, ev.Body)
	if !ok {
		return
	}

	a.logger.WithFields(
		logging.Field{Key: logging.FieldChannel, Value: ev.ChannelID},
		logging.Field{Key: logging.FieldAmount, Value: info.Amount.String()},
	).Debug("Payment notification accepted")
	a.callback(info)
}
