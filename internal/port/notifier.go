package port

import "docdesk/internal/domain"

// Notifier is the single channel for user-visible outcomes.
type Notifier interface {
	Notify(notice domain.Notice)
}
