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

// StudentService handles student and grade use-cases.
type StudentService struct {
	store     *store.Store
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(st *store.Store, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{store: st, validator: validate, logger: logger}
}

// StudentRequest holds the payload for creating or replacing a student.
type StudentRequest struct {
	Name         string  `json:"nome" validate:"required"`
	WhatsApp     string  `json:"whatsapp"`
	TotalClasses int     `json:"totalAulas" validate:"gte=0"`
	Absences     int     `json:"faltas" validate:"gte=0"`
	AbsenceLimit float64 `json:"limiteFaltas" validate:"gte=0,lte=100"`
}

// GradeRequest holds the payload for appending a grade.
type GradeRequest struct {
	Value       float64 `json:"valor" validate:"gte=0,lte=10"`
	Weight      float64 `json:"peso" validate:"gt=0"`
	Description string  `json:"descricao"`
}

// List returns students, optionally narrowed by a case-insensitive
// name search.
func (s *StudentService) List(ctx context.Context, search string) []models.Student {
	students := s.store.Students(ctx)
	if search == "" {
		return students
	}
	needle := strings.ToLower(search)
	filtered := make([]models.Student, 0, len(students))
	for _, st := range students {
		if strings.Contains(strings.ToLower(st.Name), needle) {
			filtered = append(filtered, st)
		}
	}
	return filtered
}

// Get returns one student by id.
func (s *StudentService) Get(ctx context.Context, id string) (*models.Student, error) {
	for _, st := range s.store.Students(ctx) {
		if st.ID == id {
			student := st
			return &student, nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
}

// Create registers a new student with an empty grade list. The default
// absence limit is 25 percent, matching the historical form default.
func (s *StudentService) Create(ctx context.Context, req StudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	student := models.Student{
		ID:           uuid.NewString(),
		Name:         req.Name,
		WhatsApp:     req.WhatsApp,
		Grades:       []models.Grade{},
		TotalClasses: req.TotalClasses,
		Absences:     req.Absences,
		AbsenceLimit: req.AbsenceLimit,
	}
	if student.AbsenceLimit == 0 {
		student.AbsenceLimit = 25
	}
	s.store.MutateStudents(ctx, func(students []models.Student) []models.Student {
		return append(students, student)
	})
	return &student, nil
}

// Update replaces a student's own fields, keeping the grade list.
func (s *StudentService) Update(ctx context.Context, id string, req StudentRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}
	var updated *models.Student
	s.store.MutateStudents(ctx, func(students []models.Student) []models.Student {
		for i, st := range students {
			if st.ID != id {
				continue
			}
			students[i].Name = req.Name
			students[i].WhatsApp = req.WhatsApp
			students[i].TotalClasses = req.TotalClasses
			students[i].Absences = req.Absences
			students[i].AbsenceLimit = req.AbsenceLimit
			student := students[i]
			updated = &student
			break
		}
		return students
	})
	if updated == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return updated, nil
}

// Delete removes a student and the grades it owns.
func (s *StudentService) Delete(ctx context.Context, id string) error {
	found := false
	s.store.MutateStudents(ctx, func(students []models.Student) []models.Student {
		for i, st := range students {
			if st.ID == id {
				found = true
				return append(students[:i], students[i+1:]...)
			}
		}
		return students
	})
	if !found {
		return appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return nil
}

// AddGrade appends a grade to a student.
func (s *StudentService) AddGrade(ctx context.Context, studentID string, req GradeRequest) (*models.Student, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid grade payload")
	}
	grade := models.Grade{
		ID:          uuid.NewString(),
		Value:       req.Value,
		Weight:      req.Weight,
		Description: req.Description,
	}
	var updated *models.Student
	s.store.MutateStudents(ctx, func(students []models.Student) []models.Student {
		for i, st := range students {
			if st.ID != studentID {
				continue
			}
			students[i].Grades = append(students[i].Grades, grade)
			student := students[i]
			updated = &student
			break
		}
		return students
	})
	if updated == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return updated, nil
}

// RemoveGrade deletes one grade from a student.
func (s *StudentService) RemoveGrade(ctx context.Context, studentID, gradeID string) (*models.Student, error) {
	studentFound := false
	var updated *models.Student
	s.store.MutateStudents(ctx, func(students []models.Student) []models.Student {
		for i, st := range students {
			if st.ID != studentID {
				continue
			}
			studentFound = true
			for j, g := range st.Grades {
				if g.ID == gradeID {
					students[i].Grades = append(st.Grades[:j], st.Grades[j+1:]...)
					student := students[i]
					updated = &student
					break
				}
			}
			break
		}
		return students
	})
	if !studentFound {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	if updated == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "grade not found")
	}
	return updated, nil
}

// Report derives the academic figures for a student.
func (s *StudentService) Report(ctx context.Context, id string) (*models.StudentReport, error) {
	student, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.StudentReport{
		StudentID:         student.ID,
		StudentName:       student.Name,
		WeightedAverage:   WeightedAverage(student.Grades),
		Absences:          student.Absences,
		TotalClasses:      student.TotalClasses,
		AbsencePercentage: AttendancePercentage(*student),
		AbsenceLimit:      student.AbsenceLimit,
		Status:            DetermineStatus(*student),
	}, nil
}
