package storefront

import (
	"sync"
	"time"
)

// DefaultNotificationTTL is how long a notification stays visible.
const DefaultNotificationTTL = 3 * time.Second

// NotificationKind distinguishes success and error notifications.
type NotificationKind string

const (
	NotifySuccess NotificationKind = "success"
	NotifyError   NotificationKind = "error"
)

// Notification is a transient user-visible message.
type Notification struct {
	Message string
	Kind    NotificationKind
}

// Notifier holds the currently visible notification and dismisses it after
// a fixed window. Showing a new notification replaces the current one and
// restarts the window.
type Notifier struct {
	mu      sync.Mutex
	ttl     time.Duration
	current *Notification
	timer   *time.Timer
}

// NewNotifier creates a Notifier with the given display window. A zero or
// negative ttl falls back to DefaultNotificationTTL.
func NewNotifier(ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = DefaultNotificationTTL
	}
	return &Notifier{ttl: ttl}
}

// Show displays a notification and schedules its dismissal.
func (n *Notifier) Show(message string, kind NotificationKind) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.timer != nil {
		n.timer.Stop()
	}
	shown := &Notification{Message: message, Kind: kind}
	n.current = shown
	n.timer = time.AfterFunc(n.ttl, func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		// A newer notification may have replaced this one already.
		if n.current == shown {
			n.current = nil
		}
	})
}

// Current returns the visible notification, or nil once dismissed.
func (n *Notifier) Current() *Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}
