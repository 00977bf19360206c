package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/deringirish/PHMS/internal/domain/entity"
	"github.com/deringirish/PHMS/internal/domain/repository"
	"github.com/deringirish/PHMS/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Document is a rendered file ready to be streamed to the client.
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
}

const pdfContentType = "application/pdf"

type ExportUsecase interface {
	HealthSummaryPDF(ctx context.Context, patientID uuid.UUID, filter *entity.RecordFilter) (*Document, error)
	PrescriptionPDF(ctx context.Context, id uuid.UUID) (*Document, error)
	VisitSummaryPDF(ctx context.Context, id uuid.UUID) (*Document, error)
}

type exportUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	patientRepo      repository.PatientRepository
	recordRepo       repository.HealthRecordRepository
	prescriptionRepo repository.PrescriptionRepository
	visitRepo        repository.VisitRepository
	pdfService       service.PDFService
	now              func() time.Time
}

func NewExportUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	recordRepo repository.HealthRecordRepository,
	prescriptionRepo repository.PrescriptionRepository,
	visitRepo repository.VisitRepository,
	pdfService service.PDFService,
) ExportUsecase {
	return &exportUsecase{
		db:               db,
		log:              log,
		patientRepo:      patientRepo,
		recordRepo:       recordRepo,
		prescriptionRepo: prescriptionRepo,
		visitRepo:        visitRepo,
		pdfService:       pdfService,
		now:              time.Now,
	}
}

func (u *exportUsecase) HealthSummaryPDF(ctx context.Context, patientID uuid.UUID, filter *entity.RecordFilter) (*Document, error) {
	if filter != nil && filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, ErrInvalidDateRange
	}

	db := u.db.WithContext(ctx)
	patient, err := u.patientRepo.FindByID(db, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient by ID: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	records, err := u.recordRepo.FindByPatientID(db, patientID, filter)
	if err != nil {
		u.log.Warnf("Failed to find health records: %+v", err)
		return nil, err
	}

	now := u.now()
	body, err := u.pdfService.HealthSummary(patient, records, now)
	if err != nil {
		u.log.Warnf("Failed to render health summary: %+v", err)
		return nil, err
	}

	return &Document{
		Filename:    fmt.Sprintf("health_summary_%s_%s.pdf", SecureFilename(patient.FullName), now.Format("20060102")),
		ContentType: pdfContentType,
		Body:        body,
	}, nil
}

func (u *exportUsecase) PrescriptionPDF(ctx context.Context, id uuid.UUID) (*Document, error) {
	prescription, err := u.prescriptionRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find prescription by ID: %+v", err)
		return nil, err
	}
	if prescription == nil {
		return nil, ErrPrescriptionNotFound
	}

	body, err := u.pdfService.Prescription(prescription, u.now())
	if err != nil {
		u.log.Warnf("Failed to render prescription: %+v", err)
		return nil, err
	}

	return &Document{
		Filename:    fmt.Sprintf("prescription_%s_%s.pdf", id.String()[:8], prescription.PrescriptionDate.Format("20060102")),
		ContentType: pdfContentType,
		Body:        body,
	}, nil
}

func (u *exportUsecase) VisitSummaryPDF(ctx context.Context, id uuid.UUID) (*Document, error) {
	visit, err := u.visitRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find visit by ID: %+v", err)
		return nil, err
	}
	if visit == nil {
		return nil, ErrVisitNotFound
	}

	body, err := u.pdfService.VisitSummary(visit, u.now())
	if err != nil {
		u.log.Warnf("Failed to render visit summary: %+v", err)
		return nil, err
	}

	return &Document{
		Filename:    fmt.Sprintf("visit_summary_%s_%s.pdf", id.String()[:8], visit.VisitDate.Format("20060102")),
		ContentType: pdfContentType,
		Body:        body,
	}, nil
}
