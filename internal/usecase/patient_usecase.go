package usecase

import (
	"context"
	"errors"

	"github.com/deringirish/PHMS/internal/converter"
	"github.com/deringirish/PHMS/internal/delivery/dto"
	"github.com/deringirish/PHMS/internal/domain/entity"
	"github.com/deringirish/PHMS/internal/domain/metric"
	"github.com/deringirish/PHMS/internal/domain/repository"
	"github.com/deringirish/PHMS/internal/infrastructure/storage"
	"github.com/deringirish/PHMS/internal/service"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPatientNotFound = errors.New("patient not found")
)

type PatientUsecase interface {
	CreatePatient(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	GetPatient(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error)
	GetPatientDetail(ctx context.Context, id uuid.UUID) (*dto.PatientDetailResponse, error)
	ListPatients(ctx context.Context, search string) (*dto.PatientListResponse, error)
	UpdatePatient(ctx context.Context, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	DeletePatient(ctx context.Context, id uuid.UUID) error
}

type patientUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	patientRepo      repository.PatientRepository
	recordRepo       repository.HealthRecordRepository
	visitRepo        repository.VisitRepository
	prescriptionRepo repository.PrescriptionRepository
	appointmentRepo  repository.AppointmentRepository
	uploadRepo       repository.PendingUploadRepository
	storage          storage.ObjectStorage
	auditService     service.AuditService
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	recordRepo repository.HealthRecordRepository,
	visitRepo repository.VisitRepository,
	prescriptionRepo repository.PrescriptionRepository,
	appointmentRepo repository.AppointmentRepository,
	uploadRepo repository.PendingUploadRepository,
	objectStorage storage.ObjectStorage,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		db:               db,
		log:              log,
		patientRepo:      patientRepo,
		recordRepo:       recordRepo,
		visitRepo:        visitRepo,
		prescriptionRepo: prescriptionRepo,
		appointmentRepo:  appointmentRepo,
		uploadRepo:       uploadRepo,
		storage:          objectStorage,
		auditService:     auditService,
	}
}

func (u *patientUsecase) CreatePatient(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	patient := &entity.Patient{}
	converter.ApplyPatientRequest(patient, req)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	if err := u.patientRepo.Create(tx, patient); err != nil {
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	response := converter.PatientToResponse(patient)
	if err := u.auditService.LogCreate(ctx, tx, actorID(ctx), entity.AuditActionPatientCreate, "patient", patient.ID.String(), response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return response, nil
}

func (u *patientUsecase) GetPatient(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error) {
	patient, err := u.findPatient(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetPatientDetail(ctx context.Context, id uuid.UUID) (*dto.PatientDetailResponse, error) {
	db := u.db.WithContext(ctx)

	patient, err := u.findPatient(db, id)
	if err != nil {
		return nil, err
	}

	records, err := u.recordRepo.FindByPatientID(db, id, nil)
	if err != nil {
		u.log.Warnf("Failed to find health records: %+v", err)
		return nil, err
	}

	response := &dto.PatientDetailResponse{
		Patient:   *converter.PatientToResponse(patient),
		Records:   converter.HealthRecordsToResponses(records),
		ChartData: metric.Format(converter.HealthRecordsToPoints(records)),
	}
	if len(records) > 0 {
		response.LatestRecord = &response.Records[0]
	}

	return response, nil
}

func (u *patientUsecase) ListPatients(ctx context.Context, search string) (*dto.PatientListResponse, error) {
	patients, err := u.patientRepo.Search(u.db.WithContext(ctx), search)
	if err != nil {
		u.log.Warnf("Failed to search patients: %+v", err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients),
		Total:    len(patients),
	}, nil
}

func (u *patientUsecase) UpdatePatient(ctx context.Context, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.findPatient(tx, id)
	if err != nil {
		return nil, err
	}

	before := converter.PatientToResponse(patient)
	converter.ApplyPatientRequest(patient, req)

	if err := u.patientRepo.Update(tx, patient); err != nil {
		u.log.Warnf("Failed to update patient: %+v", err)
		return nil, err
	}

	after := converter.PatientToResponse(patient)
	if err := u.auditService.LogUpdate(ctx, tx, actorID(ctx), entity.AuditActionPatientUpdate, "patient", id.String(), before, after); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return after, nil
}

// DeletePatient removes the patient and everything recorded against it in a
// single transaction. Stored report artifacts are removed after commit.
func (u *patientUsecase) DeletePatient(ctx context.Context, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.findPatient(tx, id)
	if err != nil {
		return err
	}

	uploads, err := u.uploadRepo.FindByPatientID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find pending uploads: %+v", err)
		return err
	}

	steps := []struct {
		name string
		fn   func(*gorm.DB, uuid.UUID) error
	}{
		{"prescriptions", u.prescriptionRepo.DeleteByPatientID},
		{"visits", u.visitRepo.DeleteByPatientID},
		{"appointments", u.appointmentRepo.DeleteByPatientID},
		{"health records", u.recordRepo.DeleteByPatientID},
		{"pending uploads", u.uploadRepo.DeleteByPatientID},
	}
	for _, step := range steps {
		if err := step.fn(tx, id); err != nil {
			u.log.Warnf("Failed to delete %s: %+v", step.name, err)
			return err
		}
	}

	rows, err := u.patientRepo.Delete(tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete patient: %+v", err)
		return err
	}
	if rows == 0 {
		return ErrPatientNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, actorID(ctx), entity.AuditActionPatientDelete, "patient", id.String(), converter.PatientToResponse(patient)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	removeArtifacts(ctx, u.log, u.storage, lo.Map(uploads, func(p entity.PendingUpload, _ int) string {
		return p.ObjectKey
	})...)

	return nil
}

func (u *patientUsecase) findPatient(db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	patient, err := u.patientRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find patient by ID: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return patient, nil
}

// removeArtifacts deletes stored objects, logging failures; the rows that
// referenced them are already gone.
func removeArtifacts(ctx context.Context, log *logrus.Logger, objectStorage storage.ObjectStorage, keys ...string) {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := objectStorage.Delete(ctx, key); err != nil && !errors.Is(err, storage.ErrObjectNotFound) {
			log.Warnf("Failed to delete stored artifact %s: %+v", key, err)
		}
	}
}
