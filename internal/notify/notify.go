// Package notify delivers user-visible notices.
package notify

import (
	"sync"

	"go.uber.org/zap"

	"docdesk/internal/domain"
	"docdesk/internal/port"
)

type logNotifier struct {
	log *zap.Logger
}

// NewLogNotifier returns a Notifier that writes each notice to the log at a
// level matching its severity.
func NewLogNotifier(log *zap.Logger) port.Notifier {
	return &logNotifier{log: log.Named("notice")}
}

func (n *logNotifier) Notify(notice domain.Notice) {
	fields := []zap.Field{zap.String("severity", string(notice.Severity)), zap.Time("at", notice.At)}
	switch notice.Severity {
	case domain.SeverityError:
		n.log.Error(notice.Message, fields...)
	case domain.SeverityWarning:
		n.log.Warn(notice.Message, fields...)
	default:
		n.log.Info(notice.Message, fields...)
	}
}

// Recorder keeps every notice in memory, in delivery order.
type Recorder struct {
	mu      sync.Mutex
	notices []domain.Notice
}

func (r *Recorder) Notify(notice domain.Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, notice)
}

// Notices returns a copy of everything recorded so far.
func (r *Recorder) Notices() []domain.Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Notice(nil), r.notices...)
}

// Last returns the most recent notice and whether there was one.
func (r *Recorder) Last() (domain.Notice, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.notices) == 0 {
		return domain.Notice{}, false
	}
	return r.notices[len(r.notices)-1], true
}

// Fanout delivers each notice to every notifier in order.
type Fanout []port.Notifier

func (f Fanout) Notify(notice domain.Notice) {
	for _, n := range f {
		n.Notify(notice)
	}
}
