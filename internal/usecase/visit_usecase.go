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
	"gorm.io/gorm"
)

var (
	ErrVisitNotFound         = errors.New("visit not found")
	ErrDoctorNotFound        = errors.New("doctor not found")
	ErrRecordPatientMismatch = errors.New("health record belongs to another patient")
	ErrInvalidDateFormat     = errors.New("invalid date format, use YYYY-MM-DD")
)

const dateLayout = "2006-01-02"

type VisitUsecase interface {
	CreateVisit(ctx context.Context, patientID uuid.UUID, req *dto.CreateVisitRequest) (*dto.VisitResponse, error)
	GetVisit(ctx context.Context, id uuid.UUID) (*dto.VisitResponse, error)
	UpdateVisit(ctx context.Context, id uuid.UUID, req *dto.UpdateVisitRequest) (*dto.VisitResponse, error)
	ListPatientVisits(ctx context.Context, patientID uuid.UUID) (*dto.VisitListResponse, error)
	LinkHealthRecord(ctx context.Context, visitID, recordID uuid.UUID) (*dto.VisitResponse, error)
}

type visitUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	patientRepo  repository.PatientRepository
	adminRepo    repository.AdminRepository
	visitRepo    repository.VisitRepository
	recordRepo   repository.HealthRecordRepository
	auditService service.AuditService
}

func NewVisitUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	adminRepo repository.AdminRepository,
	visitRepo repository.VisitRepository,
	recordRepo repository.HealthRecordRepository,
	auditService service.AuditService,
) VisitUsecase {
	return &visitUsecase{
		db:           db,
		log:          log,
		patientRepo:  patientRepo,
		adminRepo:    adminRepo,
		visitRepo:    visitRepo,
		recordRepo:   recordRepo,
		auditService: auditService,
	}
}

func (u *visitUsecase) CreateVisit(ctx context.Context, patientID uuid.UUID, req *dto.CreateVisitRequest) (*dto.VisitResponse, error) {
	visitDate, err := parseDateOr(req.VisitDate, today())
	if err != nil {
		return nil, err
	}
	followUp, err := parseOptionalDate(req.FollowUpDate)
	if err != nil {
		return nil, err
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

	doctorID, err := resolveDoctor(ctx, tx, u.adminRepo, req.DoctorID)
	if err != nil {
		return nil, err
	}

	visit := &entity.Visit{
		PatientID:      patientID,
		DoctorID:       doctorID,
		VisitDate:      visitDate,
		ChiefComplaint: strings.TrimSpace(req.ChiefComplaint),
		Diagnosis:      converter.SplitList(req.Diagnosis),
		TreatmentPlan:  strings.TrimSpace(req.TreatmentPlan),
		FollowUpDate:   followUp,
		Notes:          strings.TrimSpace(req.Notes),
	}
	if vs := req.VitalSigns; vs != nil {
		visit.VitalSigns = entity.VitalSigns{
			BPSystolic:  vs.BPSystolic,
			BPDiastolic: vs.BPDiastolic,
			HeartRate:   vs.HeartRate,
			Temperature: vs.Temperature,
		}
	}

	if err := u.visitRepo.Create(tx, visit); err != nil {
		u.log.Warnf("Failed to create visit: %+v", err)
		return nil, err
	}

	visit.Patient = patient
	response := converter.VisitToResponse(visit)
	if err := u.auditService.LogCreate(ctx, tx, actorID(ctx), entity.AuditActionVisitCreate, "visit", visit.ID.String(), response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return response, nil
}

func (u *visitUsecase) GetVisit(ctx context.Context, id uuid.UUID) (*dto.VisitResponse, error) {
	visit, err := u.findVisit(u.db.WithContext(ctx), id)
	if err != nil {
		return nil, err
	}
	return converter.VisitToResponse(visit), nil
}

func (u *visitUsecase) UpdateVisit(ctx context.Context, id uuid.UUID, req *dto.UpdateVisitRequest) (*dto.VisitResponse, error) {
	followUp, err := parseOptionalDate(req.FollowUpDate)
	if err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	visit, err := u.findVisit(tx, id)
	if err != nil {
		return nil, err
	}

	before := converter.VisitToResponse(visit)

	visit.ChiefComplaint = strings.TrimSpace(req.ChiefComplaint)
	visit.Diagnosis = converter.SplitList(req.Diagnosis)
	visit.TreatmentPlan = strings.TrimSpace(req.TreatmentPlan)
	visit.FollowUpDate = followUp
	visit.Notes = strings.TrimSpace(req.Notes)

	if err := u.visitRepo.Update(tx, visit); err != nil {
		u.log.Warnf("Failed to update visit: %+v", err)
		return nil, err
	}

	after := converter.VisitToResponse(visit)
	if err := u.auditService.LogUpdate(ctx, tx, actorID(ctx), entity.AuditActionVisitUpdate, "visit", id.String(), before, after); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return after, nil
}

func (u *visitUsecase) ListPatientVisits(ctx context.Context, patientID uuid.UUID) (*dto.VisitListResponse, error) {
	db := u.db.WithContext(ctx)

	patient, err := u.patientRepo.FindByID(db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient by ID: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	visits, err := u.visitRepo.FindByPatientID(db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find visits: %+v", err)
		return nil, err
	}

	return &dto.VisitListResponse{
		Visits: converter.VisitsToResponses(visits),
		Total:  len(visits),
	}, nil
}

// LinkHealthRecord attaches one of the patient's records to the visit.
// Linking the same record twice is a no-op.
func (u *visitUsecase) LinkHealthRecord(ctx context.Context, visitID, recordID uuid.UUID) (*dto.VisitResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	visit, err := u.findVisit(tx, visitID)
	if err != nil {
		return nil, err
	}

	record, err := u.recordRepo.FindByID(tx, recordID)
	if err != nil {
		u.log.Warnf("Failed to find health record by ID: %+v", err)
		return nil, err
	}
	if record == nil {
		return nil, ErrHealthRecordNotFound
	}
	if record.PatientID != visit.PatientID {
		return nil, ErrRecordPatientMismatch
	}

	for _, linked := range visit.HealthRecords {
		if linked.ID == record.ID {
			return converter.VisitToResponse(visit), nil
		}
	}

	if err := u.visitRepo.LinkHealthRecord(tx, visit, record); err != nil {
		u.log.Warnf("Failed to link health record: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, actorID(ctx), entity.AuditActionVisitUpdate, "visit", visitID.String(),
		nil, map[string]interface{}{"linked_health_record_id": recordID}); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.VisitToResponse(visit), nil
}

func (u *visitUsecase) findVisit(db *gorm.DB, id uuid.UUID) (*entity.Visit, error) {
	visit, err := u.visitRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find visit by ID: %+v", err)
		return nil, err
	}
	if visit == nil {
		return nil, ErrVisitNotFound
	}
	return visit, nil
}

// resolveDoctor returns the requested doctor, defaulting to the acting admin.
func resolveDoctor(ctx context.Context, db *gorm.DB, adminRepo repository.AdminRepository, requested string) (*uuid.UUID, error) {
	if strings.TrimSpace(requested) == "" {
		return actorID(ctx), nil
	}

	id, err := uuid.Parse(requested)
	if err != nil {
		return nil, ErrDoctorNotFound
	}

	admin, err := adminRepo.FindByID(db, id)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrDoctorNotFound
	}
	return &id, nil
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}
	return t, nil
}

func parseDateOr(value string, fallback time.Time) (time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return fallback, nil
	}
	return parseDate(value)
}

func parseOptionalDate(value string) (*time.Time, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	t, err := parseDate(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
