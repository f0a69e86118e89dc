// Package notify presents transient notifications (toasts) and two-outcome
// confirmation prompts. Notifications raised before a redirect are parked in a
// per-browser flash store and drained by the next rendered page.
package notify

import "time"

// Toast colors.
const (
	ColorSuccess     = "#a7c957"
	ColorError       = "#b60404ff"
	ColorEditSuccess = "#28a745"
	ColorEditError   = "#dc3545"
)

// DefaultDuration is how long a toast stays on screen.
const DefaultDuration = 3 * time.Second

// Notification is one auto-dismissing message.
type Notification struct {
	Text       string `json:"text"`
	Color      string `json:"color"`
	DurationMs int64  `json:"duration_ms"`
}

// New builds a notification. A non-positive duration falls back to DefaultDuration.
func New(text, color string, duration time.Duration) Notification {
	if duration <= 0 {
		duration = DefaultDuration
	}
	return Notification{
		Text:       text,
		Color:      color,
		DurationMs: duration.Milliseconds(),
	}
}
