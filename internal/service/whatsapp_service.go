package service

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/edusys-app/edusys-api/internal/models"
	"github.com/edusys-app/edusys-api/internal/store"
	appErrors "github.com/edusys-app/edusys-api/pkg/errors"
)

// phonePattern matches the first 10-11 digit run embedded in free
// text. Legacy records carry contact numbers inside the name or notes
// field; the explicit whatsapp field takes precedence when set.
var phonePattern = regexp.MustCompile(`\d{10,11}`)

// WhatsAppLink is a ready-to-open deep link with its target number.
type WhatsAppLink struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
	URL     string `json:"url"`
}

// WhatsAppService builds wa.me deep links and reminder messages.
type WhatsAppService struct {
	store       *store.Store
	logger      *zap.Logger
	countryCode string
}

// NewWhatsAppService constructs the service. countryCode defaults to
// "55" when empty.
func NewWhatsAppService(st *store.Store, logger *zap.Logger, countryCode string) *WhatsAppService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if countryCode == "" {
		countryCode = "55"
	}
	return &WhatsAppService{store: st, logger: logger, countryCode: countryCode}
}

// NormalizeNumber strips all non-digit characters and prefixes the
// country code unless the number already starts with it.
func (s *WhatsAppService) NormalizeNumber(raw string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)
	if digits == "" {
		return ""
	}
	if strings.HasPrefix(digits, s.countryCode) {
		return digits
	}
	return s.countryCode + digits
}

// ChatLink builds a wa.me deep link for the number and message.
func (s *WhatsAppService) ChatLink(number, message string) (*WhatsAppLink, error) {
	phone := s.NormalizeNumber(number)
	if phone == "" {
		return nil, appErrors.Clone(appErrors.ErrNoPhoneNumber, "")
	}
	return &WhatsAppLink{
		Phone:   phone,
		Message: message,
		URL:     fmt.Sprintf("https://wa.me/%s?text=%s", phone, url.QueryEscape(message)),
	}, nil
}

// ExtractPhone returns the first 10-11 digit run found in any of the
// given texts.
func ExtractPhone(texts ...string) (string, bool) {
	for _, text := range texts {
		if match := phonePattern.FindString(text); match != "" {
			return match, true
		}
	}
	return "", false
}

// EventReminder builds the reminder deep link for an event, using the
// event's own contact number.
func (s *WhatsAppService) EventReminder(ctx context.Context, event models.Event) (*WhatsAppLink, error) {
	if err := s.ensureEnabled(ctx); err != nil {
		return nil, err
	}
	if event.WhatsApp == "" {
		return nil, appErrors.Clone(appErrors.ErrNoPhoneNumber, "event has no contact number")
	}
	return s.ChatLink(event.WhatsApp, eventReminderMessage(event))
}

// TeacherPayment builds the payment report deep link for a teacher.
// The number comes from the whatsapp field, falling back to a digit
// run embedded in the notes.
func (s *WhatsAppService) TeacherPayment(ctx context.Context, teacher models.Teacher) (*WhatsAppLink, error) {
	if err := s.ensureEnabled(ctx); err != nil {
		return nil, err
	}
	phone := teacher.WhatsApp
	if phone == "" {
		extracted, ok := ExtractPhone(teacher.Notes)
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrNoPhoneNumber, "no phone number in teacher notes")
		}
		phone = extracted
	}
	return s.ChatLink(phone, teacherPaymentMessage(teacher))
}

// StudentReport builds the academic report deep link for a student.
// The number comes from the whatsapp field, falling back to a digit
// run embedded in the name.
func (s *WhatsAppService) StudentReport(ctx context.Context, student models.Student) (*WhatsAppLink, error) {
	if err := s.ensureEnabled(ctx); err != nil {
		return nil, err
	}
	phone := student.WhatsApp
	if phone == "" {
		extracted, ok := ExtractPhone(student.Name)
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrNoPhoneNumber, "no phone number in student name")
		}
		phone = extracted
	}
	return s.ChatLink(phone, studentReportMessage(student))
}

func (s *WhatsAppService) ensureEnabled(ctx context.Context) error {
	if !s.store.Config(ctx).WhatsAppIntegration {
		return appErrors.Clone(appErrors.ErrWhatsAppDisabled, "")
	}
	return nil
}

func eventReminderMessage(event models.Event) string {
	date := event.Date
	if parsed, ok := parseEventDate(event.Date, time.Local); ok {
		date = parsed.Format("02/01/2006")
	}
	return fmt.Sprintf("🔔 *Lembrete de Evento*\n\n*%s*\nData: %s\nHora: %s\n\n%s\n\nEste é um lembrete automático do EduSys.",
		event.Title, date, event.Time, event.Description)
}

func teacherPaymentMessage(teacher models.Teacher) string {
	hours := TotalHoursTaught(teacher)
	payment := TotalPaymentOwed(teacher)
	return fmt.Sprintf("💰 *Relatório de Pagamento*\n\nProfessor: %s\nTotal de Horas: %d\nValor da Hora/Aula: R$ %.2f\nTotal a Receber: R$ %.2f\n\nMensagem automática do EduSys.",
		teacher.Name, hours, teacher.HourlyRate, payment)
}

func studentReportMessage(student models.Student) string {
	// The embedded digit run is contact data, not part of the name.
	name := strings.TrimSpace(phonePattern.ReplaceAllString(student.Name, ""))
	name = strings.TrimSuffix(name, "-")
	name = strings.TrimSpace(name)
	return fmt.Sprintf("📚 *Relatório de Aluno*\n\nAluno: %s\nMédia: %.2f\nFaltas: %d/%d (%.2f%%)\nSituação: %s\n\nMensagem automática do EduSys.",
		name, WeightedAverage(student.Grades), student.Absences, student.TotalClasses,
		AttendancePercentage(student), DetermineStatus(student))
}
