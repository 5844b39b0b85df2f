package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/edusys-app/edusys-api/internal/models"
	"github.com/edusys-app/edusys-api/internal/store"
)

// NotificationService is the polling scheduler that raises event
// alerts. Each scan re-reads the event collection from the store, so a
// concurrently edited event is always judged against its persisted
// state rather than a cached copy.
//
// Per-event lifecycle: an event is armed while its notified flag is
// false and fires at most once, either on its day or exactly LeadDays
// before it. Editing the event's date, time or lead offset re-arms it
// (EventService.Update). A separate same-minute check raises a
// transient "happening now" alert on every scan that lands on the
// event's exact minute; that check is intentionally not deduplicated.
type NotificationService struct {
	store    *store.Store
	notifier Notifier
	sounder  AlertSounder
	logger   *zap.Logger
	metrics  *MetricsService
	clock    Clock
	interval time.Duration

	mu             sync.Mutex
	cancel         context.CancelFunc
	wg             sync.WaitGroup
	started        bool
	permitOnce     sync.Once
	permitted      bool
	warnedDisabled bool
}

// NewNotificationService constructs the scheduler. A nil clock falls
// back to time.Now; a non-positive interval falls back to one minute.
func NewNotificationService(st *store.Store, notifier Notifier, sounder AlertSounder, metrics *MetricsService, logger *zap.Logger, clock Clock, interval time.Duration) *NotificationService {
	if notifier == nil {
		notifier = NewLogNotifier(logger)
	}
	if sounder == nil {
		sounder = NewLogSounder(logger)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if clock == nil {
		clock = time.Now
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &NotificationService{
		store:    st,
		notifier: notifier,
		sounder:  sounder,
		logger:   logger,
		metrics:  metrics,
		clock:    clock,
		interval: interval,
	}
}

// Start runs one immediate scan and then scans on the fixed interval
// until Stop or context cancellation. Alert permission is requested on
// the first scan.
// There is no catch-up for ticks missed while the process is
// suspended; a skipped day-boundary transition is simply not retried.
func (s *NotificationService) Start(ctx context.Context) {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.started = true
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.Scan(ctx)

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Scan(ctx)
			}
		}
	}()
	s.logger.Info("notification scheduler started", zap.Duration("interval", s.interval))
}

// Stop cancels the scan loop and waits for it to exit.
func (s *NotificationService) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.cancel()
	s.started = false
	s.mu.Unlock()
	s.wg.Wait()
	s.logger.Info("notification scheduler stopped")
}

// Scan performs one pass over the event collection: due-date alerts
// for armed events, then the exact-minute check. Exported so a scan can
// be driven directly in tests and on demand.
func (s *NotificationService) Scan(ctx context.Context) {
	s.permitOnce.Do(func() { s.permitted = s.requestPermission(ctx) })

	started := time.Now()
	now := s.clock()
	events := s.store.Events(ctx)

	fired := s.fireDueEvents(ctx, events, now)
	if len(fired) > 0 {
		s.commitFired(ctx, fired)
	}
	s.fireHappeningNow(ctx, events, now)

	if s.metrics != nil {
		s.metrics.ObserveScan(time.Since(started), len(events))
	}
}

// firedEvent snapshots the schedule an alert was raised against, so
// the commit can tell a concurrently rescheduled event apart.
type firedEvent struct {
	id       string
	date     string
	time     string
	leadDays int
}

// fireDueEvents raises alerts for armed events whose day-offset
// matches and returns a snapshot per fired event.
func (s *NotificationService) fireDueEvents(ctx context.Context, events []models.Event, now time.Time) []firedEvent {
	fired := []firedEvent{}
	for _, event := range events {
		if event.Notified {
			continue
		}
		days, ok := daysUntil(event.Date, now)
		if !ok {
			s.logger.Warn("event has unparseable date, skipping", zap.String("event_id", event.ID), zap.String("data", event.Date))
			continue
		}
		if days != 0 && days != event.LeadDays {
			continue
		}

		title := fmt.Sprintf("Evento hoje: %s", event.Title)
		kind := "today"
		if days != 0 {
			title = fmt.Sprintf("Evento em %d dias: %s", days, event.Title)
			kind = "advance"
		}
		s.raise(ctx, Notification{
			Title:  title,
			Body:   fmt.Sprintf("%s\nData: %s\nHora: %s", event.Description, event.Date, event.Time),
			Tag:    "evento-" + event.ID,
			Urgent: event.Priority == models.PriorityHigh,
		})
		s.sound(event.Priority == models.PriorityHigh)

		fired = append(fired, firedEvent{id: event.ID, date: event.Date, time: event.Time, leadDays: event.LeadDays})
		if s.metrics != nil {
			s.metrics.RecordNotification(kind)
		}
	}
	return fired
}

// commitFired merges the notified flags into the freshly loaded
// collection by record id, under the store's write lock. Concurrent
// edits to other fields survive; an event rescheduled while its alert
// was showing no longer matches its snapshot and stays armed.
func (s *NotificationService) commitFired(ctx context.Context, fired []firedEvent) {
	byID := make(map[string]firedEvent, len(fired))
	for _, f := range fired {
		byID[f.id] = f
	}
	s.store.MutateEvents(ctx, func(events []models.Event) []models.Event {
		for i, e := range events {
			f, ok := byID[e.ID]
			if !ok {
				continue
			}
			if e.Date != f.date || e.Time != f.time || e.LeadDays != f.leadDays {
				continue
			}
			events[i].Notified = true
		}
		return events
	})
}

// fireHappeningNow raises a transient alert for events scheduled at
// the current wall-clock minute. Not gated by the notified flag, and
// may fire more than once if consecutive scans land on the same
// minute; the polling granularity makes that imprecision acceptable.
func (s *NotificationService) fireHappeningNow(ctx context.Context, events []models.Event, now time.Time) {
	today := now.Format(dateLayout)
	minute := now.Format(timeLayout)
	for _, event := range events {
		if event.Date != today || event.Time != minute {
			continue
		}
		urgent := event.Priority == models.PriorityHigh
		s.sound(urgent)
		s.raise(ctx, Notification{
			Title:  fmt.Sprintf("Evento agora: %s", event.Title),
			Body:   event.Description,
			Tag:    "evento-agora-" + event.ID,
			Urgent: urgent,
		})
		if s.metrics != nil {
			s.metrics.RecordNotification("now")
		}
	}
}

func (s *NotificationService) requestPermission(ctx context.Context) bool {
	if !s.notifier.Supported() {
		s.logger.Info("notification surface unavailable, alerts disabled")
		return false
	}
	granted, err := s.notifier.RequestPermission(ctx)
	if err != nil {
		s.logger.Warn("notification permission request failed", zap.Error(err))
		return false
	}
	if !granted {
		s.logger.Info("notification permission denied, alerts disabled")
	}
	return granted
}

// raise shows a notification when permitted. State transitions are
// persisted regardless, so enabling the surface later does not replay
// historical alerts.
func (s *NotificationService) raise(ctx context.Context, n Notification) {
	if !s.permitted {
		s.warnOnce()
		return
	}
	if err := s.notifier.Show(ctx, n); err != nil {
		s.logger.Warn("failed to show notification", zap.String("tag", n.Tag), zap.Error(err))
	}
}

func (s *NotificationService) sound(urgent bool) {
	if !s.permitted {
		return
	}
	s.sounder.Play(urgent)
}

func (s *NotificationService) warnOnce() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.warnedDisabled {
		return
	}
	s.warnedDisabled = true
	s.logger.Info("suppressing alerts: notification surface not permitted")
}
