package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/edusys-app/edusys-api/internal/models"
	"github.com/edusys-app/edusys-api/internal/service"
	"github.com/edusys-app/edusys-api/internal/store"
	"github.com/edusys-app/edusys-api/pkg/config"
	"github.com/edusys-app/edusys-api/pkg/response"
	filestore "github.com/edusys-app/edusys-api/pkg/storage"
)

func newTestRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st := store.New(store.NewMemoryKV(), zap.NewNop())
	clock := func() time.Time { return time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC) }

	files, err := filestore.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := filestore.NewSignedURLSigner("test-secret", time.Hour)
	reports := service.NewReportService(st, files, signer, zap.NewNop(), clock, config.ReportsConfig{
		SignedURLTTL:    time.Hour,
		CleanupInterval: time.Hour,
	})

	whatsapp := service.NewWhatsAppService(st, zap.NewNop(), "")
	scheduler := service.NewNotificationService(st, nil, nil, nil, zap.NewNop(), clock, time.Minute)

	r := gin.New()
	RegisterRoutes(r, Handlers{
		Teachers:  NewTeacherHandler(service.NewTeacherService(st, nil, zap.NewNop()), whatsapp),
		Students:  NewStudentHandler(service.NewStudentService(st, nil, zap.NewNop()), whatsapp),
		Events:    NewEventHandler(service.NewEventService(st, nil, zap.NewNop(), clock), scheduler, whatsapp),
		Config:    NewConfigHandler(service.NewConfigService(st, zap.NewNop())),
		Backup:    NewBackupHandler(service.NewBackupService(st, zap.NewNop(), clock)),
		Reports:   NewReportHandler(reports),
		Dashboard: NewDashboardHandler(service.NewDashboardService(st, zap.NewNop(), clock), whatsapp),
	})
	return r, st
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestEventEndpointsRoundTrip(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/events", gin.H{"titulo": "Reunião"})
	require.Equal(t, http.StatusCreated, w.Code)

	var created response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	raw, err := json.Marshal(created.Data)
	require.NoError(t, err)
	var event models.Event
	require.NoError(t, json.Unmarshal(raw, &event))
	assert.Equal(t, "2026-03-11", event.Date, "defaults to tomorrow")

	w = doJSON(t, r, http.MethodGet, "/api/v1/events", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/api/v1/events/"+event.ID, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/v1/events/"+event.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestEventCreateRejectsInvalidPayload(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/events", gin.H{"prioridade": "urgente"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "VALIDATION_ERROR", envelope.Error.Code)
}

func TestConfigEndpoints(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/config", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"whatsappIntegration":true`)

	w = doJSON(t, r, http.MethodPut, "/api/v1/config", gin.H{"darkMode": true, "whatsappIntegration": false})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"darkMode":true`)
}

func TestBackupImportRejectsInvalidFile(t *testing.T) {
	r, st := newTestRouter(t)
	st.SaveTeachers(context.Background(), []models.Teacher{{ID: "t1", Name: "Carlos"}})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/backup/import", bytes.NewReader([]byte("not json")))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, st.Teachers(context.Background()), 1, "rejected import mutates nothing")
}

func TestBackupExportSetsFilename(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/v1/backup/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "edusys_backup_2026-03-10.json")
}

func TestWhatsAppDisabledReturnsConflict(t *testing.T) {
	r, st := newTestRouter(t)
	ctx := context.Background()
	st.SaveConfig(ctx, models.AppConfig{WhatsAppIntegration: false})
	st.SaveEvents(ctx, []models.Event{{ID: "e1", Title: "X", Date: "2026-03-12", Time: "08:00", Priority: models.PriorityMedium, WhatsApp: "11987654321"}})

	w := doJSON(t, r, http.MethodGet, "/api/v1/events/e1/whatsapp", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestWhatsAppLinkEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/v1/whatsapp/link", gin.H{"phone": "(11) 98765-4321", "message": "oi"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "https://wa.me/5511987654321")
}

func TestDashboardCountsPendingEvents(t *testing.T) {
	r, st := newTestRouter(t)
	ctx := context.Background()
	st.SaveEvents(ctx, []models.Event{
		{ID: "e1", Title: "Futuro", Date: "2026-03-12", Time: "08:00", Priority: models.PriorityMedium},
		{ID: "e2", Title: "Passado", Date: "2026-03-01", Time: "08:00", Priority: models.PriorityMedium},
	})

	w := doJSON(t, r, http.MethodGet, "/api/v1/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	raw, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	var stats models.DashboardStats
	require.NoError(t, json.Unmarshal(raw, &stats))
	assert.Equal(t, 2, stats.Events)
	assert.Equal(t, 1, stats.PendingEvents)
}
