package service

import (
	"github.com/edusys-app/edusys-api/internal/models"
)

// Passing grade threshold on the 0-10 scale. Fixed, not configurable.
const passingAverage = 6.0

// WeightedAverage computes the grade average weighted by each grade's
// weight. Empty grade lists and zero total weight yield 0.
func WeightedAverage(grades []models.Grade) float64 {
	if len(grades) == 0 {
		return 0
	}
	var products, weights float64
	for _, g := range grades {
		products += g.Value * g.Weight
		weights += g.Weight
	}
	if weights <= 0 {
		return 0
	}
	return products / weights
}

// AttendancePercentage returns the share of classes missed, in percent.
// A student with no scheduled classes is never flagged, so 0 is
// returned when TotalClasses is zero.
func AttendancePercentage(student models.Student) float64 {
	if student.TotalClasses == 0 {
		return 0
	}
	return float64(student.Absences) / float64(student.TotalClasses) * 100
}

// DetermineStatus derives the academic standing. The absence check
// takes precedence over the grade check.
func DetermineStatus(student models.Student) models.StudentStatus {
	if student.TotalClasses == 0 {
		return models.StatusUndefined
	}
	if AttendancePercentage(student) > student.AbsenceLimit {
		return models.StatusFailedByAbsence
	}
	if WeightedAverage(student.Grades) >= passingAverage {
		return models.StatusApproved
	}
	return models.StatusFailedByGrade
}

// TotalHoursTaught sums the hours of all of a teacher's sessions.
func TotalHoursTaught(teacher models.Teacher) int {
	total := 0
	for _, s := range teacher.Sessions {
		total += s.Hours
	}
	return total
}

// TotalPaymentOwed is the teacher's hours taught times the hourly rate.
func TotalPaymentOwed(teacher models.Teacher) float64 {
	return float64(TotalHoursTaught(teacher)) * teacher.HourlyRate
}
