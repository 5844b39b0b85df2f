package service

import (
	"context"

	"go.uber.org/zap"
)

// Notification is the payload handed to the external alert surface.
type Notification struct {
	Title  string
	Body   string
	Tag    string
	Urgent bool
}

// Notifier is the external notification surface. When Supported
// reports false, or permission is denied, alerts degrade to no-ops and
// a single informational message is emitted.
type Notifier interface {
	Supported() bool
	RequestPermission(ctx context.Context) (bool, error)
	Show(ctx context.Context, n Notification) error
}

// AlertSounder plays the audible alert. The urgent variant is used for
// high-priority events.
type AlertSounder interface {
	Play(urgent bool)
}

// LogNotifier writes notifications to the structured log. It is the
// default surface for headless deployments.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier builds a log-backed notifier.
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

// Supported always reports true for the log surface.
func (n *LogNotifier) Supported() bool { return true }

// RequestPermission always grants for the log surface.
func (n *LogNotifier) RequestPermission(context.Context) (bool, error) { return true, nil }

// Show emits the notification as a log record.
func (n *LogNotifier) Show(_ context.Context, note Notification) error {
	n.logger.Info("notification",
		zap.String("title", note.Title),
		zap.String("body", note.Body),
		zap.String("tag", note.Tag),
		zap.Bool("urgent", note.Urgent),
	)
	return nil
}

// LogSounder logs in place of an audible alert.
type LogSounder struct {
	logger *zap.Logger
}

// NewLogSounder builds a log-backed sounder.
func NewLogSounder(logger *zap.Logger) *LogSounder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogSounder{logger: logger}
}

// Play logs the alert with its urgency.
func (s *LogSounder) Play(urgent bool) {
	s.logger.Info("alert_sound", zap.Bool("urgent", urgent))
}
