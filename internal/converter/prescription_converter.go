package converter

import (
	"strings"

	"github.com/deringirish/PHMS/internal/delivery/dto"
	"github.com/deringirish/PHMS/internal/domain/entity"

	"github.com/samber/lo"
)

// PrescriptionToResponse converts a Prescription entity to PrescriptionResponse DTO
func PrescriptionToResponse(prescription *entity.Prescription) *dto.PrescriptionResponse {
	if prescription == nil {
		return nil
	}

	response := &dto.PrescriptionResponse{
		ID:               prescription.ID,
		PatientID:        prescription.PatientID,
		VisitID:          prescription.VisitID,
		DoctorID:         prescription.DoctorID,
		PrescriptionDate: prescription.PrescriptionDate,
		Medications: lo.Map(prescription.Medications, func(m entity.PrescribedMedication, _ int) dto.MedicationItem {
			return dto.MedicationItem(m)
		}),
		Notes:     prescription.Notes,
		CreatedAt: prescription.CreatedAt,
	}

	if prescription.Patient != nil {
		response.PatientName = prescription.Patient.FullName
	}
	if prescription.Doctor != nil {
		response.DoctorName = prescription.Doctor.Name
	}

	return response
}

func PrescriptionsToResponses(prescriptions []entity.Prescription) []dto.PrescriptionResponse {
	return lo.Map(prescriptions, func(p entity.Prescription, _ int) dto.PrescriptionResponse {
		return *PrescriptionToResponse(&p)
	})
}

// MedicationItemsToEntities trims request lines and drops ones without a
// medication name.
func MedicationItemsToEntities(items []dto.MedicationItem) []entity.PrescribedMedication {
	meds := lo.FilterMap(items, func(item dto.MedicationItem, _ int) (entity.PrescribedMedication, bool) {
		med := entity.PrescribedMedication{
			MedicationName: strings.TrimSpace(item.MedicationName),
			Dosage:         strings.TrimSpace(item.Dosage),
			Frequency:      strings.TrimSpace(item.Frequency),
			Duration:       strings.TrimSpace(item.Duration),
			Instructions:   strings.TrimSpace(item.Instructions),
			Quantity:       strings.TrimSpace(item.Quantity),
		}
		return med, med.MedicationName != ""
	})
	return meds
}

func MedicationsToResponses(medications []entity.Medication) []dto.MedicationResponse {
	return lo.Map(medications, func(m entity.Medication, _ int) dto.MedicationResponse {
		dosages := []string(m.CommonDosages)
		if dosages == nil {
			dosages = []string{}
		}
		return dto.MedicationResponse{
			ID:            m.ID,
			Name:          m.Name,
			GenericName:   m.GenericName,
			Category:      m.Category,
			CommonDosages: dosages,
		}
	})
}
