package services

import (
	"sync"
	"time"

	"github.com/SscSPs/bank_console/internal/core/domain"
	portssvc "github.com/SscSPs/bank_console/internal/core/ports/services"
	"github.com/google/uuid"
)

const (
	DefaultNotificationTTL = 6 * time.Second
	DefaultErrorTTL        = 8 * time.Second
)

// notificationService implements NotificationSink. Expired entries are
// dropped lazily whenever the list is touched.
type notificationService struct {
	successTTL time.Duration
	errorTTL   time.Duration
	now        func() time.Time

	mu      sync.Mutex
	entries []domain.Notification
	onPush  []func(n domain.Notification)
}

// NotificationOption is a functional option for configuring the notification sink
type NotificationOption func(*notificationService)

// WithNotificationTTLs sets how long errors and every other severity stay visible.
func WithNotificationTTLs(defaultTTL, errorTTL time.Duration) NotificationOption {
	return func(s *notificationService) {
		if defaultTTL > 0 {
			s.successTTL = defaultTTL
		}
		if errorTTL > 0 {
			s.errorTTL = errorTTL
		}
	}
}

// WithNotificationClock overrides the clock used for expiry.
func WithNotificationClock(now func() time.Time) NotificationOption {
	return func(s *notificationService) {
		s.now = now
	}
}

func NewNotificationService(options ...NotificationOption) portssvc.NotificationSink {
	s := &notificationService{
		successTTL: DefaultNotificationTTL,
		errorTTL:   DefaultErrorTTL,
		now:        time.Now,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

var _ portssvc.NotificationSink = (*notificationService)(nil)

func (s *notificationService) Push(title, message string, severity domain.Severity) domain.Notification {
	now := s.now()
	ttl := s.successTTL
	if severity == domain.SeverityError {
		ttl = s.errorTTL
	}
	n := domain.Notification{
		ID:        uuid.NewString(),
		Title:     title,
		Message:   message,
		Severity:  severity,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	s.mu.Lock()
	s.prune(now)
	s.entries = append(s.entries, n)
	callbacks := append([]func(domain.Notification){}, s.onPush...)
	s.mu.Unlock()

	for _, fn := range callbacks {
		fn(n)
	}
	return n
}

func (s *notificationService) Active() []domain.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prune(s.now())
	out := make([]domain.Notification, len(s.entries))
	copy(out, s.entries)
	return out
}

func (s *notificationService) Dismiss(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, n := range s.entries {
		if n.ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return true
		}
	}
	return false
}

func (s *notificationService) OnPush(fn func(n domain.Notification)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onPush = append(s.onPush, fn)
}

// prune drops expired entries; callers hold mu.
func (s *notificationService) prune(now time.Time) {
	kept := s.entries[:0]
	for _, n := range s.entries {
		if !n.Expired(now) {
			kept = append(kept, n)
		}
	}
	s.entries = kept
}
