package notify

import (
	"fmt"

	"github.com/gen2brain/beeep"
)

// Notifier handles sending desktop notifications. Disabled notifiers
// swallow everything, so callers never need to guard.
type Notifier struct {
	enabled bool
}

// NewNotifier creates a new notifier. Notifications start disabled;
// they are opt-in via config.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// SetEnabled enables or disables notifications.
func (n *Notifier) SetEnabled(enabled bool) {
	n.enabled = enabled
}

// IsEnabled returns whether notifications are enabled.
func (n *Notifier) IsEnabled() bool {
	return n.enabled
}

// Send sends a desktop notification with the given title and body.
func (n *Notifier) Send(title, body string) error {
	if !n.enabled {
		return nil
	}
	return beeep.Notify(title, body, "")
}

// SendExternalChange announces that another session modified the
// shared file and this session reloaded it.
func (n *Notifier) SendExternalChange(count int) error {
	return n.Send("tandem", fmt.Sprintf("List updated by another session (%d items)", count))
}
