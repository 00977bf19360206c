package converter

import (
	"github.com/deringirish/PHMS/internal/delivery/dto"
	"github.com/deringirish/PHMS/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

const dateLayout = "2006-01-02"

// VisitToResponse converts a Visit entity to VisitResponse DTO, including
// linked prescriptions and records when they were preloaded.
func VisitToResponse(visit *entity.Visit) *dto.VisitResponse {
	if visit == nil {
		return nil
	}

	diagnosis := []string(visit.Diagnosis)
	if diagnosis == nil {
		diagnosis = []string{}
	}

	response := &dto.VisitResponse{
		ID:             visit.ID,
		PatientID:      visit.PatientID,
		DoctorID:       visit.DoctorID,
		VisitDate:      visit.VisitDate.Format(dateLayout),
		ChiefComplaint: visit.ChiefComplaint,
		Diagnosis:      diagnosis,
		TreatmentPlan:  visit.TreatmentPlan,
		Notes:          visit.Notes,
		VitalSigns: dto.VitalSignsResponse{
			BPSystolic:  visit.VitalSigns.BPSystolic,
			BPDiastolic: visit.VitalSigns.BPDiastolic,
			HeartRate:   visit.VitalSigns.HeartRate,
			Temperature: visit.VitalSigns.Temperature,
		},
		PrescriptionIDs: lo.Map(visit.Prescriptions, func(p entity.Prescription, _ int) uuid.UUID { return p.ID }),
		HealthRecordIDs: lo.Map(visit.HealthRecords, func(r entity.HealthRecord, _ int) uuid.UUID { return r.ID }),
		CreatedAt:       visit.CreatedAt,
		UpdatedAt:       visit.UpdatedAt,
	}

	if visit.FollowUpDate != nil {
		response.FollowUpDate = lo.ToPtr(visit.FollowUpDate.Format(dateLayout))
	}
	if visit.Patient != nil {
		response.PatientName = visit.Patient.FullName
	}
	if visit.Doctor != nil {
		response.DoctorName = visit.Doctor.Name
	}
	if len(visit.Prescriptions) > 0 {
		response.Prescriptions = PrescriptionsToResponses(visit.Prescriptions)
	}
	if len(visit.HealthRecords) > 0 {
		response.HealthRecords = HealthRecordsToResponses(visit.HealthRecords)
	}

	return response
}

func VisitsToResponses(visits []entity.Visit) []dto.VisitResponse {
	return lo.Map(visits, func(v entity.Visit, _ int) dto.VisitResponse {
		return *VisitToResponse(&v)
	})
}
