package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/deringirish/PHMS/internal/converter"
	"github.com/deringirish/PHMS/internal/delivery/dto"
	"github.com/deringirish/PHMS/internal/domain/entity"
	"github.com/deringirish/PHMS/internal/domain/repository"
	"github.com/deringirish/PHMS/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrPrescriptionNotFound = errors.New("prescription not found")
	ErrNoMedications        = errors.New("at least one medication is required")
	ErrVisitPatientMismatch = errors.New("visit belongs to another patient")
)

const medicationSearchLimit = 10

type PrescriptionUsecase interface {
	CreatePrescription(ctx context.Context, patientID uuid.UUID, req *dto.CreatePrescriptionRequest) (*dto.PrescriptionResponse, error)
	GetPrescription(ctx context.Context, id uuid.UUID) (*dto.PrescriptionResponse, error)
	ListPatientPrescriptions(ctx context.Context, patientID uuid.UUID) (*dto.PrescriptionListResponse, error)
	SearchMedications(ctx context.Context, query string) ([]dto.MedicationResponse, error)
}

type prescriptionUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	patientRepo      repository.PatientRepository
	visitRepo        repository.VisitRepository
	prescriptionRepo repository.PrescriptionRepository
	medicationRepo   repository.MedicationRepository
	auditService     service.AuditService
}

func NewPrescriptionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	visitRepo repository.VisitRepository,
	prescriptionRepo repository.PrescriptionRepository,
	medicationRepo repository.MedicationRepository,
	auditService service.AuditService,
) PrescriptionUsecase {
	return &prescriptionUsecase{
		db:               db,
		log:              log,
		patientRepo:      patientRepo,
		visitRepo:        visitRepo,
		prescriptionRepo: prescriptionRepo,
		medicationRepo:   medicationRepo,
		auditService:     auditService,
	}
}

// CreatePrescription stores the prescription and, when a visit is given,
// attaches it to that visit in the same transaction.
func (u *prescriptionUsecase) CreatePrescription(ctx context.Context, patientID uuid.UUID, req *dto.CreatePrescriptionRequest) (*dto.PrescriptionResponse, error) {
	medications := converter.MedicationItemsToEntities(req.Medications)
	if len(medications) == 0 {
		return nil, ErrNoMedications
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientRepo.FindByID(tx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient by ID: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	prescription := &entity.Prescription{
		PatientID:        patientID,
		DoctorID:         actorID(ctx),
		PrescriptionDate: time.Now().UTC(),
		Medications:      datatypes.JSONSlice[entity.PrescribedMedication](medications),
		Notes:            strings.TrimSpace(req.Notes),
	}

	if req.VisitID != "" {
		visitID, err := uuid.Parse(req.VisitID)
		if err != nil {
			return nil, ErrVisitNotFound
		}
		visit, err := u.visitRepo.FindByID(tx, visitID)
		if err != nil {
			u.log.Warnf("Failed to find visit by ID: %+v", err)
			return nil, err
		}
		if visit == nil {
			return nil, ErrVisitNotFound
		}
		if visit.PatientID != patientID {
			return nil, ErrVisitPatientMismatch
		}
		prescription.VisitID = &visit.ID
	}

	if err := u.prescriptionRepo.Create(tx, prescription); err != nil {
		u.log.Warnf("Failed to create prescription: %+v", err)
		return nil, err
	}

	prescription.Patient = patient
	response := converter.PrescriptionToResponse(prescription)
	if err := u.auditService.LogCreate(ctx, tx, actorID(ctx), entity.AuditActionPrescriptionCreate, "prescription", prescription.ID.String(), response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return response, nil
}

func (u *prescriptionUsecase) GetPrescription(ctx context.Context, id uuid.UUID) (*dto.PrescriptionResponse, error) {
	prescription, err := u.prescriptionRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find prescription by ID: %+v", err)
		return nil, err
	}
	if prescription == nil {
		return nil, ErrPrescriptionNotFound
	}
	return converter.PrescriptionToResponse(prescription), nil
}

func (u *prescriptionUsecase) ListPatientPrescriptions(ctx context.Context, patientID uuid.UUID) (*dto.PrescriptionListResponse, error) {
	db := u.db.WithContext(ctx)

	patient, err := u.patientRepo.FindByID(db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient by ID: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	prescriptions, err := u.prescriptionRepo.FindByPatientID(db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find prescriptions: %+v", err)
		return nil, err
	}

	return &dto.PrescriptionListResponse{
		Prescriptions: converter.PrescriptionsToResponses(prescriptions),
		Total:         len(prescriptions),
	}, nil
}

func (u *prescriptionUsecase) SearchMedications(ctx context.Context, query string) ([]dto.MedicationResponse, error) {
	medications, err := u.medicationRepo.Search(u.db.WithContext(ctx), strings.TrimSpace(query), medicationSearchLimit)
	if err != nil {
		u.log.Warnf("Failed to search medications: %+v", err)
		return nil, err
	}
	return converter.MedicationsToResponses(medications), nil
}
