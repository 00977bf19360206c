package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/deringirish/PHMS/config"
	"github.com/deringirish/PHMS/internal/delivery/dto"
	"github.com/deringirish/PHMS/internal/delivery/http/middleware"
	"github.com/deringirish/PHMS/internal/domain/entity"
	"github.com/deringirish/PHMS/internal/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type uploadFixture struct {
	usecase     ReportUploadUsecase
	sql         sqlmock.Sqlmock
	patientRepo *mockPatientRepo
	recordRepo  *mockRecordRepo
	uploadRepo  *mockUploadRepo
	storage     *mockStorage
	extractor   *mockExtractor
	audit       *mockAuditService
	alerts      *mockAlertPublisher
}

func newUploadFixture(t *testing.T) *uploadFixture {
	db, sqlMock := newMockDB(t)
	f := &uploadFixture{
		sql:         sqlMock,
		patientRepo: new(mockPatientRepo),
		recordRepo:  new(mockRecordRepo),
		uploadRepo:  new(mockUploadRepo),
		storage:     new(mockStorage),
		extractor:   new(mockExtractor),
		audit:       new(mockAuditService),
		alerts:      new(mockAlertPublisher),
	}
	f.alerts.On("PublishCritical", mock.Anything, mock.Anything).Return(nil).Maybe()

	cfg := config.UploadConfig{
		MaxBytes:          1024,
		AllowedExtensions: []string{"pdf", "png", "jpg", "jpeg"},
		PendingTTL:        time.Hour,
	}
	f.usecase = NewReportUploadUsecase(db, quietLogger(), cfg, f.patientRepo, f.recordRepo, f.uploadRepo, f.storage, f.extractor, f.audit, f.alerts)
	return f
}

func adminContext(adminID uuid.UUID) context.Context {
	return middleware.WithAdmin(context.Background(), adminID, "dr.rao")
}

func reportRequest(name, body string) *dto.UploadReportRequest {
	return &dto.UploadReportRequest{
		Filename:    name,
		ContentType: "application/pdf",
		Size:        int64(len(body)),
		Body:        strings.NewReader(body),
	}
}

func pendingUpload(adminID, patientID uuid.UUID, expiresAt time.Time) *entity.PendingUpload {
	return &entity.PendingUpload{
		ID:               uuid.New(),
		AdminID:          adminID,
		PatientID:        patientID,
		ObjectKey:        "reports/" + patientID.String() + "/20240301_093000_cbc.pdf",
		OriginalFilename: "cbc.pdf",
		ContentType:      "application/pdf",
		Extracted:        []byte(`{"hemoglobin":13.2}`),
		ExpiresAt:        expiresAt,
	}
}

func TestReportUploadUsecaseUploadReport(t *testing.T) {
	adminID, patientID := uuid.New(), uuid.New()
	patient := &entity.Patient{ID: patientID, FullName: "Sunita Rao"}

	t.Run("Extraction Failure Removes Stored Report", func(t *testing.T) {
		f := newUploadFixture(t)
		var storedKey string

		f.patientRepo.On("FindByID", mock.Anything, patientID).Return(patient, nil)
		f.storage.On("Put", mock.Anything, mock.Anything, mock.Anything, int64(8), "application/pdf").
			Run(func(args mock.Arguments) { storedKey = args.String(1) }).
			Return(nil)
		f.extractor.On("Extract", mock.Anything, mock.Anything).Return(nil, service.ErrExtractionFailed)
		f.storage.On("Delete", mock.Anything, mock.Anything).Return(nil)

		_, err := f.usecase.UploadReport(adminContext(adminID), patientID, reportRequest("cbc.pdf", "%PDF-1.4"))

		assert.ErrorIs(t, err, service.ErrExtractionFailed)
		require.NotEmpty(t, storedKey)
		assert.True(t, strings.HasPrefix(storedKey, "reports/"+patientID.String()+"/"))
		f.storage.AssertCalled(t, "Delete", mock.Anything, storedKey)
		f.uploadRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Storage Failure Skips Extraction", func(t *testing.T) {
		f := newUploadFixture(t)

		f.patientRepo.On("FindByID", mock.Anything, patientID).Return(patient, nil)
		f.storage.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("bucket unavailable"))

		_, err := f.usecase.UploadReport(adminContext(adminID), patientID, reportRequest("cbc.pdf", "%PDF-1.4"))

		assert.ErrorIs(t, err, ErrStorageFailed)
		f.extractor.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything)
		f.storage.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Oversized File Rejected Before Storage", func(t *testing.T) {
		f := newUploadFixture(t)

		_, err := f.usecase.UploadReport(adminContext(adminID), patientID, reportRequest("scan.png", strings.Repeat("x", 2048)))

		assert.ErrorIs(t, err, ErrFileTooLarge)
		f.storage.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unsupported Extension", func(t *testing.T) {
		f := newUploadFixture(t)

		_, err := f.usecase.UploadReport(adminContext(adminID), patientID, reportRequest("notes.docx", "hello"))

		assert.ErrorIs(t, err, ErrInvalidFileType)
	})

	t.Run("Extracted Values Parked For The Uploading Admin", func(t *testing.T) {
		f := newUploadFixture(t)

		f.patientRepo.On("FindByID", mock.Anything, patientID).Return(patient, nil)
		f.storage.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)
		f.extractor.On("Extract", mock.Anything, mock.Anything).Return(map[string]interface{}{
			"hemoglobin":         13.2,
			service.TimestampKey: "2024-03-01",
		}, nil)
		f.uploadRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *entity.PendingUpload) bool {
			return u.AdminID == adminID && u.PatientID == patientID && u.ReportTimestamp != nil
		})).Return(nil)

		resp, err := f.usecase.UploadReport(adminContext(adminID), patientID, reportRequest("cbc.pdf", "%PDF-1.4"))

		require.NoError(t, err)
		assert.Equal(t, 13.2, resp.Extracted["hemoglobin"])
		assert.Equal(t, "cbc.pdf", resp.OriginalFilename)
		f.storage.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		f.uploadRepo.AssertExpectations(t)
	})
}

func TestReportUploadUsecaseGetPendingUpload(t *testing.T) {
	adminID, otherAdminID, patientID := uuid.New(), uuid.New(), uuid.New()

	t.Run("Other Admin Cannot See Upload", func(t *testing.T) {
		f := newUploadFixture(t)
		upload := pendingUpload(adminID, patientID, time.Now().Add(time.Hour))

		f.uploadRepo.On("FindOwned", mock.Anything, otherAdminID, patientID, upload.ID).Return(nil, nil)

		_, err := f.usecase.GetPendingUpload(adminContext(otherAdminID), patientID, upload.ID)

		assert.ErrorIs(t, err, ErrUploadNotFound)
	})

	t.Run("Expired Upload Not Found", func(t *testing.T) {
		f := newUploadFixture(t)
		upload := pendingUpload(adminID, patientID, time.Now().Add(-time.Minute))

		f.uploadRepo.On("FindOwned", mock.Anything, adminID, patientID, upload.ID).Return(upload, nil)

		_, err := f.usecase.GetPendingUpload(adminContext(adminID), patientID, upload.ID)

		assert.ErrorIs(t, err, ErrUploadNotFound)
	})

	t.Run("Owner Sees Extracted Values", func(t *testing.T) {
		f := newUploadFixture(t)
		upload := pendingUpload(adminID, patientID, time.Now().Add(time.Hour))

		f.uploadRepo.On("FindOwned", mock.Anything, adminID, patientID, upload.ID).Return(upload, nil)

		resp, err := f.usecase.GetPendingUpload(adminContext(adminID), patientID, upload.ID)

		require.NoError(t, err)
		assert.Equal(t, upload.ID, resp.UploadID)
		assert.Equal(t, 13.2, resp.Extracted["hemoglobin"])
	})
}

func TestReportUploadUsecaseConfirmUpload(t *testing.T) {
	adminID, patientID := uuid.New(), uuid.New()
	patient := &entity.Patient{ID: patientID, FullName: "Sunita Rao"}
	input := func() *dto.RecordInput {
		return &dto.RecordInput{Values: map[string]interface{}{"hemoglobin": "13.4", "bogus": 1}}
	}

	t.Run("Commits Report Record And Drops Pending Row", func(t *testing.T) {
		f := newUploadFixture(t)
		upload := pendingUpload(adminID, patientID, time.Now().Add(time.Hour))
		reportDate := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		upload.ReportTimestamp = &reportDate

		f.sql.ExpectBegin()
		f.sql.ExpectCommit()
		f.uploadRepo.On("FindOwned", mock.Anything, adminID, patientID, upload.ID).Return(upload, nil)
		f.patientRepo.On("FindByID", mock.Anything, patientID).Return(patient, nil)
		f.recordRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *entity.HealthRecord) bool {
			return r.SourceType == entity.SourceReportAI &&
				r.PatientID == patientID &&
				r.Timestamp.Equal(reportDate) &&
				r.Hemoglobin != nil && *r.Hemoglobin == 13.4
		})).Return(nil)
		f.uploadRepo.On("Delete", mock.Anything, upload.ID).Return(int64(1), nil)
		f.audit.On("LogCreate", mock.Anything, mock.Anything, &adminID, entity.AuditActionUploadConfirm, "health_record", mock.Anything, mock.Anything).Return(nil)
		f.storage.On("Delete", mock.Anything, upload.ObjectKey).Return(nil)

		resp, err := f.usecase.ConfirmUpload(adminContext(adminID), patientID, upload.ID, input())

		require.NoError(t, err)
		assert.Equal(t, string(entity.SourceReportAI), resp.SourceType)
		assert.NotContains(t, resp.Metrics, "bogus")
		f.recordRepo.AssertExpectations(t)
		f.uploadRepo.AssertExpectations(t)
		f.storage.AssertExpectations(t)
		assert.NoError(t, f.sql.ExpectationsWereMet())
	})

	t.Run("Expired Upload Rolled Back", func(t *testing.T) {
		f := newUploadFixture(t)
		upload := pendingUpload(adminID, patientID, time.Now().Add(-time.Minute))

		f.sql.ExpectBegin()
		f.sql.ExpectRollback()
		f.uploadRepo.On("FindOwned", mock.Anything, adminID, patientID, upload.ID).Return(upload, nil)

		_, err := f.usecase.ConfirmUpload(adminContext(adminID), patientID, upload.ID, input())

		assert.ErrorIs(t, err, ErrUploadNotFound)
		f.recordRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.storage.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		assert.NoError(t, f.sql.ExpectationsWereMet())
	})

	t.Run("Concurrent Confirm Loses The Race", func(t *testing.T) {
		f := newUploadFixture(t)
		upload := pendingUpload(adminID, patientID, time.Now().Add(time.Hour))

		f.sql.ExpectBegin()
		f.sql.ExpectRollback()
		f.uploadRepo.On("FindOwned", mock.Anything, adminID, patientID, upload.ID).Return(upload, nil)
		f.patientRepo.On("FindByID", mock.Anything, patientID).Return(patient, nil)
		f.recordRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		f.uploadRepo.On("Delete", mock.Anything, upload.ID).Return(int64(0), nil)

		_, err := f.usecase.ConfirmUpload(adminContext(adminID), patientID, upload.ID, input())

		assert.ErrorIs(t, err, ErrUploadNotFound)
		f.audit.AssertNotCalled(t, "LogCreate", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		f.storage.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		assert.NoError(t, f.sql.ExpectationsWereMet())
	})

	t.Run("No Recognized Metric", func(t *testing.T) {
		f := newUploadFixture(t)

		_, err := f.usecase.ConfirmUpload(adminContext(adminID), patientID, uuid.New(), &dto.RecordInput{
			Values: map[string]interface{}{"notes": "nothing readable"},
		})

		assert.ErrorIs(t, err, ErrMissingMetric)
		f.uploadRepo.AssertNotCalled(t, "FindOwned", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestReportUploadUsecaseDiscardUpload(t *testing.T) {
	adminID, otherAdminID, patientID := uuid.New(), uuid.New(), uuid.New()

	t.Run("Expired Upload Still Discarded", func(t *testing.T) {
		f := newUploadFixture(t)
		upload := pendingUpload(adminID, patientID, time.Now().Add(-time.Hour))

		f.sql.ExpectBegin()
		f.sql.ExpectCommit()
		f.uploadRepo.On("FindOwned", mock.Anything, adminID, patientID, upload.ID).Return(upload, nil)
		f.uploadRepo.On("Delete", mock.Anything, upload.ID).Return(int64(1), nil)
		f.audit.On("LogDelete", mock.Anything, mock.Anything, &adminID, entity.AuditActionUploadDiscard, "pending_upload", upload.ID.String(), mock.Anything).Return(nil)
		f.storage.On("Delete", mock.Anything, upload.ObjectKey).Return(nil)

		err := f.usecase.DiscardUpload(adminContext(adminID), patientID, upload.ID)

		require.NoError(t, err)
		f.storage.AssertExpectations(t)
		assert.NoError(t, f.sql.ExpectationsWereMet())
	})

	t.Run("Other Admin Gets Not Found", func(t *testing.T) {
		f := newUploadFixture(t)
		uploadID := uuid.New()

		f.sql.ExpectBegin()
		f.sql.ExpectRollback()
		f.uploadRepo.On("FindOwned", mock.Anything, otherAdminID, patientID, uploadID).Return(nil, nil)

		err := f.usecase.DiscardUpload(adminContext(otherAdminID), patientID, uploadID)

		assert.ErrorIs(t, err, ErrUploadNotFound)
		f.uploadRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		f.storage.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		assert.NoError(t, f.sql.ExpectationsWereMet())
	})
}
