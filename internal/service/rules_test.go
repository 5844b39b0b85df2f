package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/edusys-app/edusys-api/internal/models"
)

func grade(value, weight float64) models.Grade {
	return models.Grade{Value: value, Weight: weight}
}

func TestWeightedAverage(t *testing.T) {
	assert.Zero(t, WeightedAverage(nil))
	assert.Zero(t, WeightedAverage([]models.Grade{}))
	assert.Zero(t, WeightedAverage([]models.Grade{grade(8, 0), grade(6, 0)}))

	assert.InDelta(t, 7.0, WeightedAverage([]models.Grade{grade(8, 1), grade(6, 1)}), 1e-9)
	assert.InDelta(t, 4.5, WeightedAverage([]models.Grade{grade(4, 1), grade(5, 1)}), 1e-9)
	// Heavier weight pulls the average toward that grade.
	assert.InDelta(t, 7.5, WeightedAverage([]models.Grade{grade(9, 3), grade(3, 1)}), 1e-9)
}

func TestAttendancePercentage(t *testing.T) {
	assert.Zero(t, AttendancePercentage(models.Student{TotalClasses: 0, Absences: 5}))
	assert.InDelta(t, 30.0, AttendancePercentage(models.Student{TotalClasses: 20, Absences: 6}), 1e-9)
}

func TestDetermineStatus(t *testing.T) {
	tests := []struct {
		name    string
		student models.Student
		want    models.StudentStatus
	}{
		{
			name:    "no classes scheduled",
			student: models.Student{TotalClasses: 0, Absences: 3, Grades: []models.Grade{grade(9, 1)}},
			want:    models.StatusUndefined,
		},
		{
			name: "absences above limit override grades",
			student: models.Student{
				TotalClasses: 20, Absences: 6, AbsenceLimit: 25,
				Grades: []models.Grade{grade(10, 1), grade(10, 1)},
			},
			want: models.StatusFailedByAbsence,
		},
		{
			name: "approved by grade",
			student: models.Student{
				TotalClasses: 20, Absences: 2, AbsenceLimit: 25,
				Grades: []models.Grade{grade(8, 1), grade(6, 1)},
			},
			want: models.StatusApproved,
		},
		{
			name: "failed by grade",
			student: models.Student{
				TotalClasses: 20, Absences: 2, AbsenceLimit: 25,
				Grades: []models.Grade{grade(4, 1), grade(5, 1)},
			},
			want: models.StatusFailedByGrade,
		},
		{
			name: "average exactly at threshold passes",
			student: models.Student{
				TotalClasses: 10, Absences: 0, AbsenceLimit: 25,
				Grades: []models.Grade{grade(6, 2)},
			},
			want: models.StatusApproved,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetermineStatus(tt.student))
		})
	}
}

func TestTeacherPayment(t *testing.T) {
	teacher := models.Teacher{
		HourlyRate: 50,
		Sessions: []models.SubjectSession{
			{Subject: "Física", Hours: 4},
			{Subject: "Química", Hours: 6},
		},
	}
	assert.Equal(t, 10, TotalHoursTaught(teacher))
	assert.InDelta(t, 500.0, TotalPaymentOwed(teacher), 1e-9)

	assert.Zero(t, TotalHoursTaught(models.Teacher{}))
	assert.Zero(t, TotalPaymentOwed(models.Teacher{HourlyRate: 80}))
}
