package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/edusys-app/edusys-api/internal/models"
	"github.com/edusys-app/edusys-api/internal/store"
	appErrors "github.com/edusys-app/edusys-api/pkg/errors"
)

// TeacherService handles teacher and session use-cases.
type TeacherService struct {
	store     *store.Store
	validator *validator.Validate
	logger    *zap.Logger
}

// NewTeacherService constructs the teacher service.
func NewTeacherService(st *store.Store, validate *validator.Validate, logger *zap.Logger) *TeacherService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeacherService{store: st, validator: validate, logger: logger}
}

// TeacherRequest holds the payload for creating or replacing a teacher.
type TeacherRequest struct {
	Name       string  `json:"nome" validate:"required"`
	Title      string  `json:"titulo"`
	HourlyRate float64 `json:"valorHoraAula" validate:"gte=0"`
	Tenured    bool    `json:"estatutario"`
	Notes      string  `json:"observacoes"`
	WhatsApp   string  `json:"whatsapp"`
}

// SessionRequest holds the payload for appending a subject session.
type SessionRequest struct {
	Subject  string `json:"nome" validate:"required"`
	Date     string `json:"data" validate:"required"`
	Time     string `json:"horario"`
	Location string `json:"local"`
	Hours    int    `json:"horasAula" validate:"gt=0"`
}

// List returns teachers, optionally narrowed by a case-insensitive
// name search.
func (s *TeacherService) List(ctx context.Context, search string) []models.Teacher {
	teachers := s.store.Teachers(ctx)
	if search == "" {
		return teachers
	}
	needle := strings.ToLower(search)
	filtered := make([]models.Teacher, 0, len(teachers))
	for _, t := range teachers {
		if strings.Contains(strings.ToLower(t.Name), needle) {
			filtered = append(filtered, t)
		}
	}
	return filtered
}

// Get returns one teacher by id.
func (s *TeacherService) Get(ctx context.Context, id string) (*models.Teacher, error) {
	for _, t := range s.store.Teachers(ctx) {
		if t.ID == id {
			teacher := t
			return &teacher, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
}

// Create registers a new teacher with an empty session list.
func (s *TeacherService) Create(ctx context.Context, req TeacherRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher payload")
	}
	teacher := models.Teacher{
		ID:         uuid.NewString(),
		Name:       req.Name,
		Title:      req.Title,
		Sessions:   []models.SubjectSession{},
		HourlyRate: req.HourlyRate,
		Tenured:    req.Tenured,
		Notes:      req.Notes,
		WhatsApp:   req.WhatsApp,
	}
	s.store.MutateTeachers(ctx, func(teachers []models.Teacher) []models.Teacher {
		return append(teachers, teacher)
	})
	return &teacher, nil
}

// Update replaces a teacher's own fields. The session list is managed
// through AddSession and RemoveSession and survives the replace.
func (s *TeacherService) Update(ctx context.Context, id string, req TeacherRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher payload")
	}
	var updated *models.Teacher
	s.store.MutateTeachers(ctx, func(teachers []models.Teacher) []models.Teacher {
		for i, t := range teachers {
			if t.ID != id {
				continue
			}
			teachers[i].Name = req.Name
			teachers[i].Title = req.Title
			teachers[i].HourlyRate = req.HourlyRate
			teachers[i].Tenured = req.Tenured
			teachers[i].Notes = req.Notes
			teachers[i].WhatsApp = req.WhatsApp
			teacher := teachers[i]
			updated = &teacher
			break
		}
		return teachers
	})
	if updated == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
	}
	return updated, nil
}

// Delete removes a teacher and the sessions it owns.
func (s *TeacherService) Delete(ctx context.Context, id string) error {
	found := false
	s.store.MutateTeachers(ctx, func(teachers []models.Teacher) []models.Teacher {
		for i, t := range teachers {
			if t.ID == id {
				found = true
				return append(teachers[:i], teachers[i+1:]...)
			}
		}
		return teachers
	})
	if !found {
		return appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
	}
	return nil
}

// AddSession appends a subject session to a teacher.
func (s *TeacherService) AddSession(ctx context.Context, teacherID string, req SessionRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid session payload")
	}
	session := models.SubjectSession{
		ID:       uuid.NewString(),
		Subject:  req.Subject,
		Date:     req.Date,
		Time:     req.Time,
		Location: req.Location,
		Hours:    req.Hours,
	}
	var updated *models.Teacher
	s.store.MutateTeachers(ctx, func(teachers []models.Teacher) []models.Teacher {
		for i, t := range teachers {
			if t.ID != teacherID {
				continue
			}
			teachers[i].Sessions = append(teachers[i].Sessions, session)
			teacher := teachers[i]
			updated = &teacher
			break
		}
		return teachers
	})
	if updated == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
	}
	return updated, nil
}

// RemoveSession deletes one session from a teacher.
func (s *TeacherService) RemoveSession(ctx context.Context, teacherID, sessionID string) (*models.Teacher, error) {
	teacherFound := false
	var updated *models.Teacher
	s.store.MutateTeachers(ctx, func(teachers []models.Teacher) []models.Teacher {
		for i, t := range teachers {
			if t.ID != teacherID {
				continue
			}
			teacherFound = true
			for j, session := range t.Sessions {
				if session.ID == sessionID {
					teachers[i].Sessions = append(t.Sessions[:j], t.Sessions[j+1:]...)
					teacher := teachers[i]
					updated = &teacher
					break
				}
			}
			break
		}
		return teachers
	})
	if !teacherFound {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
	}
	if updated == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "session not found")
	}
	return updated, nil
}

// Payment derives the hours taught and amount owed for a teacher.
func (s *TeacherService) Payment(ctx context.Context, id string) (*models.PaymentSummary, error) {
	teacher, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.PaymentSummary{
		TeacherID:    teacher.ID,
		TeacherName:  teacher.Name,
		TotalHours:   TotalHoursTaught(*teacher),
		HourlyRate:   teacher.HourlyRate,
		TotalPayment: TotalPaymentOwed(*teacher),
	}, nil
}
