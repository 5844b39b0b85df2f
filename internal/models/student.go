package models

// StudentStatus is the academic standing computed from grades and
// attendance. Values are the legacy report strings.
type StudentStatus string

const (
	StatusUndefined       StudentStatus = "Indefinido"
	StatusApproved        StudentStatus = "Aprovado"
	StatusFailedByAbsence StudentStatus = "Reprovado por Faltas"
	StatusFailedByGrade   StudentStatus = "Reprovado por Nota"
)

// Student represents a learner with grades and attendance counters.
type Student struct {
	ID           string  `json:"id"`
	Name         string  `json:"nome" validate:"required"`
	WhatsApp     string  `json:"whatsapp,omitempty"`
	Grades       []Grade `json:"notas"`
	TotalClasses int     `json:"totalAulas" validate:"gte=0"`
	Absences     int     `json:"faltas" validate:"gte=0"`
	AbsenceLimit float64 `json:"limiteFaltas" validate:"gte=0,lte=100"`
}

// Grade is a weighted assessment result owned by a single student.
type Grade struct {
	ID          string  `json:"id"`
	Value       float64 `json:"valor" validate:"gte=0,lte=10"`
	Weight      float64 `json:"peso" validate:"gt=0"`
	Description string  `json:"descricao"`
}

// StudentReport carries the derived academic figures for a student.
type StudentReport struct {
	StudentID         string        `json:"student_id"`
	StudentName       string        `json:"student_name"`
	WeightedAverage   float64       `json:"weighted_average"`
	Absences          int           `json:"absences"`
	TotalClasses      int           `json:"total_classes"`
	AbsencePercentage float64       `json:"absence_percentage"`
	AbsenceLimit      float64       `json:"absence_limit"`
	Status            StudentStatus `json:"status"`
}
