package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/edusys-app/edusys-api/internal/models"
	appErrors "github.com/edusys-app/edusys-api/pkg/errors"
)

func TestBackupExportFilename(t *testing.T) {
	st := newTestStore(t)
	now := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	svc := NewBackupService(st, zap.NewNop(), fixedClock(now))

	_, filename := svc.Export(context.Background())
	assert.Equal(t, "edusys_backup_2026-03-10.json", filename)
}

func TestBackupRoundTrip(t *testing.T) {
	ctx := context.Background()
	src := newTestStore(t)
	src.SaveTeachers(ctx, []models.Teacher{{ID: "t1", Name: "Carlos"}})
	src.SaveEvents(ctx, []models.Event{{ID: "e1", Title: "Prova", Date: "2026-03-12", Time: "08:00", Priority: models.PriorityHigh}})
	src.SaveStudents(ctx, []models.Student{{ID: "s1", Name: "Maria", AbsenceLimit: 25}})
	src.SaveConfig(ctx, models.AppConfig{DarkMode: true, WhatsAppIntegration: false})

	backup, _ := NewBackupService(src, zap.NewNop(), nil).Export(ctx)
	raw, err := json.Marshal(backup)
	require.NoError(t, err)

	dst := newTestStore(t)
	require.NoError(t, NewBackupService(dst, zap.NewNop(), nil).Import(ctx, raw))

	assert.Equal(t, src.Teachers(ctx), dst.Teachers(ctx))
	assert.Equal(t, src.Events(ctx), dst.Events(ctx))
	assert.Equal(t, src.Students(ctx), dst.Students(ctx))
	assert.Equal(t, src.Config(ctx), dst.Config(ctx))
}

func TestBackupPartialImport(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	st.SaveTeachers(ctx, []models.Teacher{{ID: "t1", Name: "Carlos"}})
	st.SaveStudents(ctx, []models.Student{{ID: "s1", Name: "Maria"}})

	// Only the events key is present; the other collections stay put.
	raw := []byte(`{"eventos":[{"id":"e1","titulo":"Prova","data":"2026-03-12","hora":"08:00","prioridade":"alta","notificacaoAntecipada":1,"notificado":false}]}`)
	require.NoError(t, NewBackupService(st, zap.NewNop(), nil).Import(ctx, raw))

	require.Len(t, st.Events(ctx), 1)
	assert.Equal(t, "Prova", st.Events(ctx)[0].Title)
	assert.Len(t, st.Teachers(ctx), 1)
	assert.Len(t, st.Students(ctx), 1)
}

func TestBackupImportRejectsGarbage(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	st.SaveTeachers(ctx, []models.Teacher{{ID: "t1", Name: "Carlos"}})
	svc := NewBackupService(st, zap.NewNop(), nil)

	err := svc.Import(ctx, []byte("not json at all"))
	assert.ErrorIs(t, err, appErrors.ErrImportFormat)

	err = svc.Import(ctx, []byte(`{"unrelated": true}`))
	assert.ErrorIs(t, err, appErrors.ErrImportFormat)

	// A rejected import leaves the store untouched.
	assert.Len(t, st.Teachers(ctx), 1)
}

func TestBackupResetKeepsConfig(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	st.SaveTeachers(ctx, []models.Teacher{{ID: "t1", Name: "Carlos"}})
	st.SaveConfig(ctx, models.AppConfig{DarkMode: true, WhatsAppIntegration: true})

	NewBackupService(st, zap.NewNop(), nil).Reset(ctx)

	assert.Empty(t, st.Teachers(ctx))
	assert.True(t, st.Config(ctx).DarkMode)
}
