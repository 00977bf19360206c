package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/deringirish/PHMS/config"
	"github.com/deringirish/PHMS/internal/converter"
	"github.com/deringirish/PHMS/internal/delivery/dto"
	"github.com/deringirish/PHMS/internal/delivery/http/middleware"
	"github.com/deringirish/PHMS/internal/domain/entity"
	"github.com/deringirish/PHMS/internal/domain/metric"
	"github.com/deringirish/PHMS/internal/domain/repository"
	"github.com/deringirish/PHMS/internal/infrastructure/storage"
	"github.com/deringirish/PHMS/internal/service"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrNoFileSelected  = errors.New("no file selected")
	ErrInvalidFileType = errors.New("invalid file type")
	ErrFileTooLarge    = errors.New("file too large")
	ErrUploadNotFound  = errors.New("pending upload not found")
	ErrStorageFailed   = errors.New("failed to store report")
)

const (
	// sweepBatchSize bounds one sweeper pass.
	sweepBatchSize        = 100
	defaultMaxUploadBytes = 16 << 20
)

type ReportUploadUsecase interface {
	UploadReport(ctx context.Context, patientID uuid.UUID, req *dto.UploadReportRequest) (*dto.PendingUploadResponse, error)
	GetPendingUpload(ctx context.Context, patientID, uploadID uuid.UUID) (*dto.PendingUploadResponse, error)
	ConfirmUpload(ctx context.Context, patientID, uploadID uuid.UUID, input *dto.RecordInput) (*dto.HealthRecordResponse, error)
	DiscardUpload(ctx context.Context, patientID, uploadID uuid.UUID) error
	SweepExpired(ctx context.Context, now time.Time) (int, error)
}

type reportUploadUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	cfg            config.UploadConfig
	patientRepo    repository.PatientRepository
	recordRepo     repository.HealthRecordRepository
	uploadRepo     repository.PendingUploadRepository
	storage        storage.ObjectStorage
	extractor      service.ReportExtractor
	auditService   service.AuditService
	alertPublisher service.AlertPublisher
}

func NewReportUploadUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	cfg config.UploadConfig,
	patientRepo repository.PatientRepository,
	recordRepo repository.HealthRecordRepository,
	uploadRepo repository.PendingUploadRepository,
	objectStorage storage.ObjectStorage,
	extractor service.ReportExtractor,
	auditService service.AuditService,
	alertPublisher service.AlertPublisher,
) ReportUploadUsecase {
	return &reportUploadUsecase{
		db:             db,
		log:            log,
		cfg:            cfg,
		patientRepo:    patientRepo,
		recordRepo:     recordRepo,
		uploadRepo:     uploadRepo,
		storage:        objectStorage,
		extractor:      extractor,
		auditService:   auditService,
		alertPublisher: alertPublisher,
	}
}

// UploadReport stores the report, extracts its values and parks them as a
// pending upload owned by the calling admin. The stored artifact is removed
// again when extraction fails.
func (u *reportUploadUsecase) UploadReport(ctx context.Context, patientID uuid.UUID, req *dto.UploadReportRequest) (*dto.PendingUploadResponse, error) {
	adminID, ok := middleware.GetAdminIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	if strings.TrimSpace(req.Filename) == "" || req.Body == nil {
		return nil, ErrNoFileSelected
	}
	if !AllowedFile(req.Filename, u.cfg.AllowedExtensions) {
		return nil, ErrInvalidFileType
	}
	maxBytes := u.cfg.MaxBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxUploadBytes
	}
	if req.Size > maxBytes {
		return nil, ErrFileTooLarge
	}

	data, err := io.ReadAll(io.LimitReader(req.Body, maxBytes+1))
	if err != nil {
		u.log.Warnf("Failed to read uploaded report: %+v", err)
		return nil, err
	}
	if int64(len(data)) > maxBytes {
		return nil, ErrFileTooLarge
	}

	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient by ID: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	now := time.Now()
	contentType := ReportContentType(req.Filename, req.ContentType)
	key := ReportObjectKey(patientID, req.Filename, now)

	if err := u.storage.Put(ctx, key, bytes.NewReader(data), int64(len(data)), contentType); err != nil {
		u.log.Warnf("Failed to store report: %+v", err)
		return nil, fmt.Errorf("%w: %v", ErrStorageFailed, err)
	}

	extracted, err := u.extractor.Extract(ctx, service.Report{Data: data, MimeType: contentType})
	if err != nil {
		u.log.Warnf("Failed to extract report data: %+v", err)
		removeArtifacts(ctx, u.log, u.storage, key)
		return nil, err
	}

	payload, err := json.Marshal(extracted)
	if err != nil {
		removeArtifacts(ctx, u.log, u.storage, key)
		return nil, err
	}

	upload := &entity.PendingUpload{
		ID:               uuid.New(),
		AdminID:          adminID,
		PatientID:        patientID,
		ObjectKey:        key,
		OriginalFilename: filepath.Base(req.Filename),
		ContentType:      contentType,
		Extracted:        payload,
		ReportTimestamp:  reportTimestamp(extracted),
		ExpiresAt:        now.Add(u.cfg.PendingTTL),
	}

	if err := u.uploadRepo.Create(u.db.WithContext(ctx), upload); err != nil {
		u.log.Warnf("Failed to create pending upload: %+v", err)
		removeArtifacts(ctx, u.log, u.storage, key)
		return nil, err
	}

	return converter.PendingUploadToResponse(upload)
}

func (u *reportUploadUsecase) GetPendingUpload(ctx context.Context, patientID, uploadID uuid.UUID) (*dto.PendingUploadResponse, error) {
	upload, err := u.findUpload(ctx, u.db.WithContext(ctx), patientID, uploadID)
	if err != nil {
		return nil, err
	}

	response, err := converter.PendingUploadToResponse(upload)
	if err != nil {
		u.log.Warnf("Failed to decode pending upload: %+v", err)
		return nil, err
	}
	return response, nil
}

// ConfirmUpload commits the reviewed values as a REPORT_AI record and drops
// the pending upload in the same transaction.
func (u *reportUploadUsecase) ConfirmUpload(ctx context.Context, patientID, uploadID uuid.UUID, input *dto.RecordInput) (*dto.HealthRecordResponse, error) {
	reading, err := metric.Sanitize(input.Values)
	if err != nil {
		return nil, err
	}
	metric.DeriveBMI(reading.Values)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	upload, err := u.findUpload(ctx, tx, patientID, uploadID)
	if err != nil {
		return nil, err
	}

	patient, err := u.patientRepo.FindByID(tx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient by ID: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	now := time.Now()
	timestamp := ParseTimestamp(input.Timestamp, now)
	if strings.TrimSpace(input.Timestamp) == "" && upload.ReportTimestamp != nil {
		timestamp = upload.ReportTimestamp.UTC()
	}

	record := NewHealthRecord(patientID, reading, timestamp, entity.SourceReportAI)
	if err := u.recordRepo.Create(tx, record); err != nil {
		u.log.Warnf("Failed to create health record: %+v", err)
		return nil, err
	}

	rows, err := u.uploadRepo.Delete(tx, upload.ID)
	if err != nil {
		u.log.Warnf("Failed to delete pending upload: %+v", err)
		return nil, err
	}
	if rows == 0 {
		return nil, ErrUploadNotFound
	}

	response := converter.HealthRecordToResponse(record)
	if err := u.auditService.LogCreate(ctx, tx, actorID(ctx), entity.AuditActionUploadConfirm, "health_record", record.ID.String(), map[string]interface{}{
		"upload_id": upload.ID,
		"filename":  upload.OriginalFilename,
		"record":    response,
	}); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	removeArtifacts(ctx, u.log, u.storage, upload.ObjectKey)
	publishCriticalValues(ctx, u.alertPublisher, patient, record)

	return response, nil
}

func (u *reportUploadUsecase) DiscardUpload(ctx context.Context, patientID, uploadID uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	adminID, ok := middleware.GetAdminIDFromContext(ctx)
	if !ok {
		return ErrUnauthenticated
	}

	// expired uploads can still be discarded
	upload, err := u.uploadRepo.FindOwned(tx, adminID, patientID, uploadID)
	if err != nil {
		u.log.Warnf("Failed to find pending upload: %+v", err)
		return err
	}
	if upload == nil {
		return ErrUploadNotFound
	}

	if _, err := u.uploadRepo.Delete(tx, upload.ID); err != nil {
		u.log.Warnf("Failed to delete pending upload: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, actorID(ctx), entity.AuditActionUploadDiscard, "pending_upload", upload.ID.String(), map[string]interface{}{
		"patient_id": upload.PatientID,
		"filename":   upload.OriginalFilename,
	}); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	removeArtifacts(ctx, u.log, u.storage, upload.ObjectKey)
	return nil
}

// SweepExpired deletes expired pending uploads and their artifacts, one
// batch per call. It returns how many rows were removed.
func (u *reportUploadUsecase) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	db := u.db.WithContext(ctx)

	expired, err := u.uploadRepo.FindExpired(db, now, sweepBatchSize)
	if err != nil {
		u.log.Warnf("Failed to find expired uploads: %+v", err)
		return 0, err
	}

	removed := 0
	for _, upload := range expired {
		rows, err := u.uploadRepo.Delete(db, upload.ID)
		if err != nil {
			u.log.Warnf("Failed to delete expired upload %s: %+v", upload.ID, err)
			continue
		}
		if rows == 0 {
			continue
		}
		removeArtifacts(ctx, u.log, u.storage, upload.ObjectKey)
		removed++
	}

	return removed, nil
}

func (u *reportUploadUsecase) findUpload(ctx context.Context, db *gorm.DB, patientID, uploadID uuid.UUID) (*entity.PendingUpload, error) {
	adminID, ok := middleware.GetAdminIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	upload, err := u.uploadRepo.FindOwned(db, adminID, patientID, uploadID)
	if err != nil {
		u.log.Warnf("Failed to find pending upload: %+v", err)
		return nil, err
	}
	if upload == nil || upload.Expired(time.Now()) {
		return nil, ErrUploadNotFound
	}
	return upload, nil
}

// AllowedFile checks the file extension against the allow-list, ignoring case.
func AllowedFile(filename string, allowed []string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if ext == "" {
		return false
	}
	return lo.ContainsBy(allowed, func(a string) bool {
		return strings.EqualFold(strings.TrimPrefix(a, "."), ext)
	})
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SecureFilename reduces a client supplied name to a safe ASCII basename.
func SecureFilename(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base(name)
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	name = strings.Trim(name, "._")
	if name == "" {
		return "report"
	}
	return name
}

// ReportObjectKey names a stored report: reports/<patient>/<YYYYmmdd_HHMMSS>_<name>.
func ReportObjectKey(patientID uuid.UUID, filename string, now time.Time) string {
	return fmt.Sprintf("reports/%s/%s_%s", patientID, now.Format("20060102_150405"), SecureFilename(filename))
}

var reportMimeTypes = map[string]string{
	"pdf":  "application/pdf",
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
}

// ReportContentType derives the MIME type from the extension, falling back
// to the declared type.
func ReportContentType(filename, declared string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if mime, ok := reportMimeTypes[ext]; ok {
		return mime
	}
	if declared != "" {
		return declared
	}
	return "application/octet-stream"
}

func reportTimestamp(extracted map[string]interface{}) *time.Time {
	raw, ok := extracted[service.TimestampKey].(string)
	if !ok || strings.TrimSpace(raw) == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(raw)); err == nil {
			return lo.ToPtr(t.UTC())
		}
	}
	return nil
}
