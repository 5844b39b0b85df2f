package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/edusys-app/edusys-api/internal/models"
)

func TestStoreRoundTrip(t *testing.T) {
	s := New(NewMemoryKV(), zap.NewNop())
	ctx := context.Background()

	teachers := []models.Teacher{{
		ID:         "t1",
		Name:       "Maria Silva",
		Title:      "Doutora",
		HourlyRate: 50,
		Tenured:    true,
		Sessions:   []models.SubjectSession{{ID: "m1", Subject: "Física", Date: "2026-08-28", Time: "08:00", Location: "Sala 2", Hours: 4}},
	}}
	s.SaveTeachers(ctx, teachers)
	assert.Equal(t, teachers, s.Teachers(ctx))

	events := []models.Event{{ID: "e1", Title: "Reunião", Date: "2026-09-01", Time: "10:00", Priority: models.PriorityMedium, LeadDays: 1}}
	s.SaveEvents(ctx, events)
	assert.Equal(t, events, s.Events(ctx))
}

func TestStoreMissingCollectionsDefaultEmpty(t *testing.T) {
	s := New(NewMemoryKV(), zap.NewNop())
	ctx := context.Background()

	assert.Empty(t, s.Teachers(ctx))
	assert.Empty(t, s.Events(ctx))
	assert.Empty(t, s.Students(ctx))
}

func TestStoreMalformedBlobRecoversToDefault(t *testing.T) {
	kv := NewMemoryKV()
	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, KeyStudents, "{not json"))
	require.NoError(t, kv.Set(ctx, KeyConfig, "[]"))

	s := New(kv, zap.NewNop())
	assert.Empty(t, s.Students(ctx))
	// Config degrades to defaults, never to a zero struct.
	assert.Equal(t, models.DefaultAppConfig(), s.Config(ctx))
}

func TestStoreConfigDefaults(t *testing.T) {
	s := New(NewMemoryKV(), zap.NewNop())
	ctx := context.Background()

	cfg := s.Config(ctx)
	assert.False(t, cfg.DarkMode)
	assert.True(t, cfg.WhatsAppIntegration)

	cfg.DarkMode = true
	s.SaveConfig(ctx, cfg)
	assert.True(t, s.Config(ctx).DarkMode)
}

type failingKV struct {
	KV
	err error
}

func (f *failingKV) Set(context.Context, Key, string) error { return f.err }

func TestStoreWriteFailureHook(t *testing.T) {
	kv := &failingKV{KV: NewMemoryKV(), err: errors.New("disk full")}
	s := New(kv, zap.NewNop())
	ctx := context.Background()

	var failed []Key
	s.OnWriteFailure(func(key Key) { failed = append(failed, key) })

	s.SaveTeachers(ctx, []models.Teacher{{ID: "t1", Name: "A"}})
	s.MutateEvents(ctx, func(events []models.Event) []models.Event {
		return append(events, models.Event{ID: "e1", Title: "B", Date: "2026-01-01", Time: "08:00"})
	})

	assert.Equal(t, []Key{KeyTeachers, KeyEvents}, failed)
}

func TestStoreResetKeepsConfig(t *testing.T) {
	s := New(NewMemoryKV(), zap.NewNop())
	ctx := context.Background()

	s.SaveTeachers(ctx, []models.Teacher{{ID: "t1", Name: "A"}})
	s.SaveEvents(ctx, []models.Event{{ID: "e1", Title: "B", Date: "2026-01-01", Time: "08:00"}})
	s.SaveStudents(ctx, []models.Student{{ID: "a1", Name: "C"}})
	s.SaveConfig(ctx, models.AppConfig{DarkMode: true, WhatsAppIntegration: false})

	s.Reset(ctx)

	assert.Empty(t, s.Teachers(ctx))
	assert.Empty(t, s.Events(ctx))
	assert.Empty(t, s.Students(ctx))
	assert.True(t, s.Config(ctx).DarkMode)
}
