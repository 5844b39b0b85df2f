package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/edusys-app/edusys-api/internal/models"
	appErrors "github.com/edusys-app/edusys-api/pkg/errors"
)

func newWhatsAppFixture(t *testing.T, enabled bool) *WhatsAppService {
	t.Helper()
	st := newTestStore(t)
	st.SaveConfig(context.Background(), models.AppConfig{WhatsAppIntegration: enabled})
	return NewWhatsAppService(st, zap.NewNop(), "")
}

func TestNormalizeNumber(t *testing.T) {
	svc := newWhatsAppFixture(t, true)

	assert.Equal(t, "5511987654321", svc.NormalizeNumber("(11) 98765-4321"))
	assert.Equal(t, "5511987654321", svc.NormalizeNumber("5511987654321"), "existing country code is kept")
	assert.Equal(t, "551134567890", svc.NormalizeNumber("11 3456-7890"))
	assert.Equal(t, "", svc.NormalizeNumber("sem número"))
}

func TestChatLinkEscapesMessage(t *testing.T) {
	svc := newWhatsAppFixture(t, true)

	link, err := svc.ChatLink("(11) 98765-4321", "Olá & bem-vindo")
	require.NoError(t, err)
	assert.Equal(t, "5511987654321", link.Phone)
	assert.Equal(t, "https://wa.me/5511987654321?text=Ol%C3%A1+%26+bem-vindo", link.URL)

	_, err = svc.ChatLink("", "oi")
	assert.Error(t, err)
}

func TestExtractPhone(t *testing.T) {
	phone, ok := ExtractPhone("João Silva - 11987654321")
	require.True(t, ok)
	assert.Equal(t, "11987654321", phone)

	phone, ok = ExtractPhone("sem contato", "fone 1134567890")
	require.True(t, ok)
	assert.Equal(t, "1134567890", phone)

	_, ok = ExtractPhone("nada", "123")
	assert.False(t, ok)
}

func TestEventReminderLink(t *testing.T) {
	svc := newWhatsAppFixture(t, true)

	link, err := svc.EventReminder(context.Background(), models.Event{
		Title: "Reunião de Pais", Date: "2026-03-10", Time: "19:00",
		Description: "Auditório", WhatsApp: "11987654321",
	})
	require.NoError(t, err)
	assert.Equal(t, "5511987654321", link.Phone)
	assert.Contains(t, link.Message, "Reunião de Pais")
	assert.Contains(t, link.Message, "10/03/2026", "date is rendered in local convention")

	_, err = svc.EventReminder(context.Background(), models.Event{Title: "Sem contato"})
	assert.ErrorIs(t, err, appErrors.ErrNoPhoneNumber)
}

func TestTeacherPaymentFallsBackToNotes(t *testing.T) {
	svc := newWhatsAppFixture(t, true)

	teacher := models.Teacher{
		Name: "Carlos", HourlyRate: 50, Notes: "contato: 11987654321",
		Sessions: []models.SubjectSession{{Subject: "Matemática", Hours: 4}},
	}
	link, err := svc.TeacherPayment(context.Background(), teacher)
	require.NoError(t, err)
	assert.Equal(t, "5511987654321", link.Phone)
	assert.Contains(t, link.Message, "R$ 200.00")

	_, err = svc.TeacherPayment(context.Background(), models.Teacher{Name: "Sem contato"})
	assert.ErrorIs(t, err, appErrors.ErrNoPhoneNumber)
}

func TestStudentReportStripsPhoneFromName(t *testing.T) {
	svc := newWhatsAppFixture(t, true)

	link, err := svc.StudentReport(context.Background(), models.Student{
		Name: "Maria Souza - 11987654321", TotalClasses: 100, Absences: 10, AbsenceLimit: 25,
		Grades: []models.Grade{{Value: 8, Weight: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, "5511987654321", link.Phone)
	assert.Contains(t, link.Message, "Aluno: Maria Souza\n")
	assert.NotContains(t, link.Message, "Maria Souza - 11987654321")
}

func TestWhatsAppDisabledGate(t *testing.T) {
	svc := newWhatsAppFixture(t, false)

	_, err := svc.EventReminder(context.Background(), models.Event{Title: "X", WhatsApp: "11987654321"})
	assert.ErrorIs(t, err, appErrors.ErrWhatsAppDisabled)

	_, err = svc.TeacherPayment(context.Background(), models.Teacher{WhatsApp: "11987654321"})
	assert.ErrorIs(t, err, appErrors.ErrWhatsAppDisabled)
}
