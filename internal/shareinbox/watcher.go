package shareinbox

import (
	"path/filepath"
	"sync"

	"whereismymoney/wimm/internal/logging"
	"whereismymoney/wimm/internal/models"

	"github.com/fsnotify/fsnotify"
)

// Watcher drains the inbox whenever the out-of-process share handler writes
// to it, instead of waiting for the next app foreground. It watches the
// inbox directory because the handler may recreate the file on each write.
type Watcher struct {
	inbox  *Inbox
	logger logging.Logger

	mu       sync.Mutex
	active   bool
	watcher  *fsnotify.Watcher
	callback Callback
	stopCh   chan struct{}
	wg       sync.WaitGroup
}

// NewWatcher creates a watcher over the given inbox.
func NewWatcher(inbox *Inbox, logger logging.Logger) *Watcher {
	return &Watcher{
		inbox:  inbox,
		logger: logger,
	}
}

// Start drains once immediately, then drains again on every write to the
// inbox file. Calling Start while running replaces the previous callback.
// Returns false when the filesystem watcher cannot be established.
func (w *Watcher) Start(callback Callback) bool {
	w.Stop()

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		w.logger.WithError(err).Error("Failed to create inbox watcher")
		return false
	}
	if err := fsWatcher.Add(filepath.Dir(w.inbox.Path())); err != nil {
		w.logger.WithError(err).Error("Failed to watch inbox directory")
		_ = fsWatcher.Close()
		return false
	}

	w.mu.Lock()
	w.active = true
	w.watcher = fsWatcher
	w.callback = callback
	w.stopCh = make(chan struct{})
	stopCh := w.stopCh
	w.mu.Unlock()

	w.inbox.Drain(w.fire)

	w.wg.Add(1)
	go w.loop(fsWatcher, stopCh)

	w.logger.Info("Share inbox watcher started",
		logging.Field{Key: logging.FieldFile, Value: w.inbox.Path()})
	return true
}

// Stop cancels the watcher. Idempotent; no callback fires after it returns.
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.active {
		w.mu.Unlock()
		return
	}
	w.active = false
	w.callback = nil
	close(w.stopCh)
	watcher := w.watcher
	w.watcher = nil
	w.mu.Unlock()

	_ = watcher.Close()
	w.wg.Wait()
	w.logger.Info("Share inbox watcher stopped")
}

func (w *Watcher) loop(fsWatcher *fsnotify.Watcher, stopCh chan struct{}) {
	defer w.wg.Done()

	inboxName := filepath.Base(w.inbox.Path())
	for {
		select {
		case <-stopCh:
			return
		case event, ok := <-fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != inboxName {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.inbox.Drain(w.fire)
		case err, ok := <-fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.WithError(err).Warn("Inbox watcher error")
		}
	}
}

// fire forwards to the registered callback if the watcher is still active.
func (w *Watcher) fire(info models.ParsedPaymentInfo) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.active || w.callback == nil {
		return
	}
	w.callback(info)
}
