package converter

import (
	"github.com/deringirish/PHMS/internal/delivery/dto"
	"github.com/deringirish/PHMS/internal/domain/entity"

	"github.com/samber/lo"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:              appointment.ID,
		PatientID:       appointment.PatientID,
		DoctorID:        appointment.DoctorID,
		AppointmentDate: appointment.AppointmentDate.Format(dateLayout),
		AppointmentTime: appointment.AppointmentTime,
		Duration:        appointment.Duration,
		Type:            string(appointment.Type),
		Status:          string(appointment.Status),
		Notes:           appointment.Notes,
		CreatedAt:       appointment.CreatedAt,
		UpdatedAt:       appointment.UpdatedAt,
	}

	if appointment.Patient != nil {
		response.PatientName = appointment.Patient.FullName
	}
	if appointment.Doctor != nil {
		response.DoctorName = appointment.Doctor.Name
	}

	return response
}

func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	return lo.Map(appointments, func(a entity.Appointment, _ int) dto.AppointmentResponse {
		return *AppointmentToResponse(&a)
	})
}

// AppointmentsByDay buckets appointments under their YYYY-MM-DD date.
func AppointmentsByDay(appointments []entity.Appointment) map[string][]dto.AppointmentResponse {
	return lo.GroupBy(AppointmentsToResponses(appointments), func(a dto.AppointmentResponse) string {
		return a.AppointmentDate
	})
}
