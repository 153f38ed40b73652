package services

import "github.com/SscSPs/bank_console/internal/core/domain"

// NotificationSink collects the status messages shown to the user.
type NotificationSink interface {
	// Push records a message; it disappears on its own once expired.
	Push(title, message string, severity domain.Severity) domain.Notification

	// Active returns the unexpired messages in push order.
	Active() []domain.Notification

	// Dismiss removes a message before it expires.
	Dismiss(id string) bool

	// OnPush registers a callback run for every pushed message.
	OnPush(fn func(n domain.Notification))
}
