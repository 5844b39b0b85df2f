package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/edusys-app/edusys-api/internal/models"
	"github.com/edusys-app/edusys-api/internal/store"
)

type recordingNotifier struct {
	mu        sync.Mutex
	supported bool
	granted   bool
	shown     []Notification
}

func (n *recordingNotifier) Supported() bool { return n.supported }

func (n *recordingNotifier) RequestPermission(context.Context) (bool, error) {
	return n.granted, nil
}

func (n *recordingNotifier) Show(_ context.Context, note Notification) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.shown = append(n.shown, note)
	return nil
}

func (n *recordingNotifier) titles() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.shown))
	for _, note := range n.shown {
		out = append(out, note.Title)
	}
	return out
}

type recordingSounder struct {
	mu    sync.Mutex
	plays []bool
}

func (s *recordingSounder) Play(urgent bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plays = append(s.plays, urgent)
}

func newScanFixture(t *testing.T, now time.Time) (*store.Store, *recordingNotifier, *recordingSounder, *NotificationService) {
	t.Helper()
	st := store.New(store.NewMemoryKV(), zap.NewNop())
	notifier := &recordingNotifier{supported: true, granted: true}
	sounder := &recordingSounder{}
	svc := NewNotificationService(st, notifier, sounder, nil, zap.NewNop(), fixedClock(now), time.Minute)
	return st, notifier, sounder, svc
}

func TestScanFiresEventDueToday(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	st, notifier, _, svc := newScanFixture(t, now)
	ctx := context.Background()

	st.SaveEvents(ctx, []models.Event{{
		ID: "e1", Title: "Reunião", Date: "2026-03-10", Time: "15:00",
		Priority: models.PriorityMedium, LeadDays: 1,
	}})

	svc.Scan(ctx)

	require.Equal(t, []string{"Evento hoje: Reunião"}, notifier.titles())
	events := st.Events(ctx)
	require.Len(t, events, 1)
	assert.True(t, events[0].Notified, "fired state must be persisted")
}

func TestScanFiresAdvanceNotice(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	st, notifier, _, svc := newScanFixture(t, now)
	ctx := context.Background()

	st.SaveEvents(ctx, []models.Event{{
		ID: "e1", Title: "Prova", Date: "2026-03-12", Time: "08:00",
		Priority: models.PriorityHigh, LeadDays: 2,
	}})

	svc.Scan(ctx)

	require.Equal(t, []string{"Evento em 2 dias: Prova"}, notifier.titles())
	assert.True(t, st.Events(ctx)[0].Notified)
}

func TestScanFiresAtMostOnce(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	st, notifier, _, svc := newScanFixture(t, now)
	ctx := context.Background()

	st.SaveEvents(ctx, []models.Event{{
		ID: "e1", Title: "Reunião", Date: "2026-03-10", Time: "15:00",
		Priority: models.PriorityMedium, LeadDays: 1,
	}})

	svc.Scan(ctx)
	svc.Scan(ctx)
	svc.Scan(ctx)

	assert.Len(t, notifier.titles(), 1, "an armed event fires once")
}

func TestScanSkipsEventsNotDue(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	st, notifier, _, svc := newScanFixture(t, now)
	ctx := context.Background()

	st.SaveEvents(ctx, []models.Event{
		{ID: "far", Title: "Distante", Date: "2026-03-20", Time: "08:00", Priority: models.PriorityLow, LeadDays: 1},
		{ID: "done", Title: "Já avisado", Date: "2026-03-10", Time: "08:00", Priority: models.PriorityLow, LeadDays: 1, Notified: true},
		{ID: "bad", Title: "Data inválida", Date: "10/03/2026", Time: "08:00", Priority: models.PriorityLow, LeadDays: 1},
	})

	svc.Scan(ctx)
	assert.Empty(t, notifier.titles())
}

func TestRearmedEventFiresAgain(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	st, notifier, _, svc := newScanFixture(t, now)
	events := NewEventService(st, nil, zap.NewNop(), fixedClock(now))
	ctx := context.Background()

	st.SaveEvents(ctx, []models.Event{{
		ID: "e1", Title: "Conselho", Date: "2026-03-10", Time: "10:00",
		Priority: models.PriorityMedium, LeadDays: 1,
	}})

	svc.Scan(ctx)
	require.Len(t, notifier.titles(), 1)

	// Rescheduling through the event service re-arms the notification.
	_, err := events.Update(ctx, "e1", UpdateEventRequest{
		Title: "Conselho", Date: "2026-03-10", Time: "11:00",
		Priority: "media", LeadDays: 1,
	})
	require.NoError(t, err)

	svc.Scan(ctx)
	assert.Len(t, notifier.titles(), 2)
}

func TestScanHappeningNowRepeats(t *testing.T) {
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	st, notifier, sounder, svc := newScanFixture(t, now)
	ctx := context.Background()

	st.SaveEvents(ctx, []models.Event{{
		ID: "e1", Title: "Aula", Date: "2026-03-10", Time: "15:00",
		Priority: models.PriorityHigh, LeadDays: 1, Notified: true,
	}})

	svc.Scan(ctx)
	svc.Scan(ctx)

	titles := notifier.titles()
	require.Len(t, titles, 2, "same-minute alert is not deduplicated")
	assert.Equal(t, "Evento agora: Aula", titles[0])

	sounder.mu.Lock()
	defer sounder.mu.Unlock()
	require.NotEmpty(t, sounder.plays)
	assert.True(t, sounder.plays[0], "high priority plays the urgent sound")
}

func TestScanWithoutPermissionStillPersists(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	st := store.New(store.NewMemoryKV(), zap.NewNop())
	notifier := &recordingNotifier{supported: true, granted: false}
	sounder := &recordingSounder{}
	svc := NewNotificationService(st, notifier, sounder, nil, zap.NewNop(), fixedClock(now), time.Minute)
	ctx := context.Background()

	st.SaveEvents(ctx, []models.Event{{
		ID: "e1", Title: "Reunião", Date: "2026-03-10", Time: "15:00",
		Priority: models.PriorityMedium, LeadDays: 1,
	}})

	svc.Scan(ctx)

	assert.Empty(t, notifier.titles(), "denied permission suppresses the surface")
	assert.Empty(t, sounder.plays)
	assert.True(t, st.Events(ctx)[0].Notified, "state transition persists so the alert is not replayed later")
}

// blockingNotifier parks inside Show until released, so a test can
// interleave store mutations with an in-flight scan.
type blockingNotifier struct {
	recordingNotifier
	entered chan struct{}
	release chan struct{}
}

func (n *blockingNotifier) Show(ctx context.Context, note Notification) error {
	close(n.entered)
	<-n.release
	return n.recordingNotifier.Show(ctx, note)
}

func TestConcurrentEditSurvivesScan(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	st := store.New(store.NewMemoryKV(), zap.NewNop())
	notifier := &blockingNotifier{
		recordingNotifier: recordingNotifier{supported: true, granted: true},
		entered:           make(chan struct{}),
		release:           make(chan struct{}),
	}
	svc := NewNotificationService(st, notifier, &recordingSounder{}, nil, zap.NewNop(), fixedClock(now), time.Minute)
	events := NewEventService(st, nil, zap.NewNop(), fixedClock(now))
	ctx := context.Background()

	st.SaveEvents(ctx, []models.Event{{
		ID: "e1", Title: "Reunião", Date: "2026-03-10", Time: "15:00",
		Priority: models.PriorityMedium, LeadDays: 1,
	}})

	done := make(chan struct{})
	go func() {
		svc.Scan(ctx)
		close(done)
	}()

	<-notifier.entered
	_, err := events.Update(ctx, "e1", UpdateEventRequest{
		Title: "Reunião (sala 2)", Date: "2026-03-10", Time: "15:00",
		Priority: "media", LeadDays: 1,
	})
	require.NoError(t, err)
	close(notifier.release)
	<-done

	got := st.Events(ctx)
	require.Len(t, got, 1)
	assert.Equal(t, "Reunião (sala 2)", got[0].Title, "a user edit must survive a concurrent scan")
	assert.True(t, got[0].Notified, "the fired flag still lands on the edited record")
}

func TestConcurrentRescheduleKeepsEventArmed(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	st := store.New(store.NewMemoryKV(), zap.NewNop())
	notifier := &blockingNotifier{
		recordingNotifier: recordingNotifier{supported: true, granted: true},
		entered:           make(chan struct{}),
		release:           make(chan struct{}),
	}
	svc := NewNotificationService(st, notifier, &recordingSounder{}, nil, zap.NewNop(), fixedClock(now), time.Minute)
	events := NewEventService(st, nil, zap.NewNop(), fixedClock(now))
	ctx := context.Background()

	st.SaveEvents(ctx, []models.Event{{
		ID: "e1", Title: "Reunião", Date: "2026-03-10", Time: "15:00",
		Priority: models.PriorityMedium, LeadDays: 1,
	}})

	done := make(chan struct{})
	go func() {
		svc.Scan(ctx)
		close(done)
	}()

	<-notifier.entered
	_, err := events.Update(ctx, "e1", UpdateEventRequest{
		Title: "Reunião", Date: "2026-03-11", Time: "15:00",
		Priority: "media", LeadDays: 1,
	})
	require.NoError(t, err)
	close(notifier.release)
	<-done

	got := st.Events(ctx)
	require.Len(t, got, 1)
	assert.False(t, got[0].Notified, "an event rescheduled mid-scan stays armed for its new date")
}

func TestStartRunsImmediateScan(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	st, notifier, _, svc := newScanFixture(t, now)
	ctx := context.Background()

	st.SaveEvents(ctx, []models.Event{{
		ID: "e1", Title: "Reunião", Date: "2026-03-10", Time: "15:00",
		Priority: models.PriorityMedium, LeadDays: 1,
	}})

	svc.Start(ctx)
	defer svc.Stop()

	require.Eventually(t, func() bool {
		return len(notifier.titles()) == 1
	}, time.Second, 10*time.Millisecond)
}
