package models

// Teacher represents an instructor managed by the institution.
//
// JSON field names keep the legacy storage vocabulary so blobs written
// by earlier versions of the tool load without migration.
type Teacher struct {
	ID         string           `json:"id"`
	Name       string           `json:"nome" validate:"required"`
	Title      string           `json:"titulo"`
	Sessions   []SubjectSession `json:"materias"`
	HourlyRate float64          `json:"valorHoraAula" validate:"gte=0"`
	Tenured    bool             `json:"estatutario"`
	Notes      string           `json:"observacoes,omitempty"`
	WhatsApp   string           `json:"whatsapp,omitempty"`
}

// SubjectSession is a scheduled teaching slot owned by a single teacher.
type SubjectSession struct {
	ID       string `json:"id"`
	Subject  string `json:"nome" validate:"required"`
	Date     string `json:"data" validate:"required"`
	Time     string `json:"horario"`
	Location string `json:"local"`
	Hours    int    `json:"horasAula" validate:"gt=0"`
}

// PaymentSummary aggregates the hours taught by a teacher and the
// resulting amount owed.
type PaymentSummary struct {
	TeacherID    string  `json:"teacher_id"`
	TeacherName  string  `json:"teacher_name"`
	TotalHours   int     `json:"total_hours"`
	HourlyRate   float64 `json:"hourly_rate"`
	TotalPayment float64 `json:"total_payment"`
}
