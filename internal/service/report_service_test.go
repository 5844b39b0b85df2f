package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/edusys-app/edusys-api/internal/models"
	"github.com/edusys-app/edusys-api/internal/store"
	"github.com/edusys-app/edusys-api/pkg/config"
	filestore "github.com/edusys-app/edusys-api/pkg/storage"
)

func newReportFixture(t *testing.T) (*store.Store, *ReportService) {
	t.Helper()
	st := store.New(store.NewMemoryKV(), zap.NewNop())
	files, err := filestore.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := filestore.NewSignedURLSigner("test-secret", time.Hour)
	svc := NewReportService(st, files, signer, zap.NewNop(), nil, config.ReportsConfig{
		SignedURLTTL:    time.Hour,
		CleanupInterval: time.Hour,
	})
	return st, svc
}

func TestReportRequestValidation(t *testing.T) {
	_, svc := newReportFixture(t)
	ctx := context.Background()

	_, err := svc.Request(ctx, "boletim", models.FormatPDF, "")
	assert.Error(t, err, "unknown report type")

	_, err = svc.Request(ctx, models.ReportTeachers, "xlsx", "")
	assert.Error(t, err, "unknown format")

	_, err = svc.Request(ctx, models.ReportFull, models.FormatCSV, "")
	assert.Error(t, err, "full report has no csv rendering")
}

func TestReportPipelineGeneratesPDF(t *testing.T) {
	st, svc := newReportFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc.Start(ctx)
	defer svc.Stop()

	st.SaveTeachers(ctx, []models.Teacher{{
		ID: "t1", Name: "Carlos", HourlyRate: 50,
		Sessions: []models.SubjectSession{{ID: "s1", Subject: "Matemática", Date: "2026-03-12", Time: "08:00", Hours: 4}},
	}})

	job, err := svc.Request(ctx, models.ReportTeachers, models.FormatPDF, "")
	require.NoError(t, err)
	assert.Equal(t, models.ReportQueued, job.Status)

	require.Eventually(t, func() bool {
		current, err := svc.Get(job.ID)
		return err == nil && current.Status == models.ReportCompleted
	}, 5*time.Second, 20*time.Millisecond)

	completed, err := svc.Get(job.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, completed.DownloadURL)
	assert.Contains(t, completed.FileName, "relatorio_professores_")

	token := completed.DownloadURL[len("/api/v1/reports/download?token="):]
	file, name, err := svc.Download(token)
	require.NoError(t, err)
	defer file.Close()
	assert.Equal(t, completed.FileName, name)

	data, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.True(t, len(data) > 0)
	assert.Equal(t, "%PDF", string(data[:4]))
}

func TestReportPipelineGeneratesCSV(t *testing.T) {
	st, svc := newReportFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc.Start(ctx)
	defer svc.Stop()

	st.SaveEvents(ctx, []models.Event{{
		ID: "e1", Title: "Prova", Date: "2026-03-12", Time: "08:00",
		Priority: models.PriorityHigh, LeadDays: 1,
	}})

	job, err := svc.Request(ctx, models.ReportEvents, models.FormatCSV, "")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		current, err := svc.Get(job.ID)
		return err == nil && current.Status == models.ReportCompleted
	}, 5*time.Second, 20*time.Millisecond)

	completed, err := svc.Get(job.ID)
	require.NoError(t, err)

	token := completed.DownloadURL[len("/api/v1/reports/download?token="):]
	file, _, err := svc.Download(token)
	require.NoError(t, err)
	defer file.Close()

	data, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Título,Data,Hora,Prioridade,Notificado")
	assert.Contains(t, string(data), "Prova,2026-03-12,08:00,alta,Não")
}

func TestReportSingleRecordNotFound(t *testing.T) {
	_, svc := newReportFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	svc.Start(ctx)
	defer svc.Stop()

	job, err := svc.Request(ctx, models.ReportStudents, models.FormatPDF, "missing")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		current, err := svc.Get(job.ID)
		return err == nil && current.Status == models.ReportFailed
	}, 5*time.Second, 20*time.Millisecond)
}

func TestReportDownloadRejectsBadToken(t *testing.T) {
	_, svc := newReportFixture(t)
	_, _, err := svc.Download("not-a-token")
	assert.Error(t, err)

	_, err = svc.Get("missing")
	assert.Error(t, err)
}
