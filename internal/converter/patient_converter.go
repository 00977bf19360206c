package converter

import (
	"strings"

	"github.com/deringirish/PHMS/internal/delivery/dto"
	"github.com/deringirish/PHMS/internal/domain/entity"

	"github.com/samber/lo"
)

// PatientToResponse converts a Patient entity to PatientResponse DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	conditions := []string(patient.MedicalConditions)
	if conditions == nil {
		conditions = []string{}
	}

	return &dto.PatientResponse{
		ID:                patient.ID,
		FullName:          patient.FullName,
		Age:               patient.Age,
		Gender:            patient.Gender,
		ContactNumber:     patient.ContactNumber,
		Email:             patient.Email,
		Address:           patient.Address,
		MedicalConditions: conditions,
		EmergencyContact:  patient.EmergencyContact,
		CreatedAt:         patient.CreatedAt,
		UpdatedAt:         patient.UpdatedAt,
	}
}

func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	return lo.Map(patients, func(p entity.Patient, _ int) dto.PatientResponse {
		return *PatientToResponse(&p)
	})
}

// ApplyPatientRequest copies request fields onto patient, trimming text and
// dropping blank conditions.
func ApplyPatientRequest(patient *entity.Patient, req *dto.PatientRequest) {
	patient.FullName = strings.TrimSpace(req.FullName)
	patient.Age = req.Age
	patient.Gender = req.Gender
	patient.ContactNumber = strings.TrimSpace(req.ContactNumber)
	patient.Email = strings.TrimSpace(req.Email)
	patient.Address = strings.TrimSpace(req.Address)
	patient.EmergencyContact = strings.TrimSpace(req.EmergencyContact)
	patient.MedicalConditions = SplitList(req.MedicalConditions...)
}

// SplitList trims every item, splits items on commas and drops empties.
func SplitList(items ...string) []string {
	out := []string{}
	for _, item := range items {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
