package usecase

import (
	"errors"
	"testing"

	"github.com/deringirish/PHMS/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type patientFixture struct {
	usecase          PatientUsecase
	sql              sqlmock.Sqlmock
	patientRepo      *mockPatientRepo
	recordRepo       *mockRecordRepo
	visitRepo        *mockVisitRepo
	prescriptionRepo *mockPrescriptionRepo
	appointmentRepo  *mockAppointmentRepo
	uploadRepo       *mockUploadRepo
	storage          *mockStorage
	audit            *mockAuditService
}

func newPatientFixture(t *testing.T) *patientFixture {
	db, sqlMock := newMockDB(t)
	f := &patientFixture{
		sql:              sqlMock,
		patientRepo:      new(mockPatientRepo),
		recordRepo:       new(mockRecordRepo),
		visitRepo:        new(mockVisitRepo),
		prescriptionRepo: new(mockPrescriptionRepo),
		appointmentRepo:  new(mockAppointmentRepo),
		uploadRepo:       new(mockUploadRepo),
		storage:          new(mockStorage),
		audit:            new(mockAuditService),
	}
	f.usecase = NewPatientUsecase(db, quietLogger(), f.patientRepo, f.recordRepo, f.visitRepo, f.prescriptionRepo, f.appointmentRepo, f.uploadRepo, f.storage, f.audit)
	return f
}

func TestPatientUsecaseDeletePatient(t *testing.T) {
	adminID, patientID := uuid.New(), uuid.New()
	patient := &entity.Patient{ID: patientID, FullName: "Rajesh Kumar"}
	uploads := []entity.PendingUpload{
		{ID: uuid.New(), PatientID: patientID, ObjectKey: "reports/a.pdf"},
		{ID: uuid.New(), PatientID: patientID, ObjectKey: "reports/b.png"},
	}

	t.Run("Cascade Commits Before Artifacts Are Removed", func(t *testing.T) {
		f := newPatientFixture(t)

		f.sql.ExpectBegin()
		f.sql.ExpectCommit()
		f.patientRepo.On("FindByID", mock.Anything, patientID).Return(patient, nil)
		f.uploadRepo.On("FindByPatientID", mock.Anything, patientID).Return(uploads, nil)
		f.prescriptionRepo.On("DeleteByPatientID", mock.Anything, patientID).Return(nil).Once()
		f.visitRepo.On("DeleteByPatientID", mock.Anything, patientID).Return(nil).Once()
		f.appointmentRepo.On("DeleteByPatientID", mock.Anything, patientID).Return(nil).Once()
		f.recordRepo.On("DeleteByPatientID", mock.Anything, patientID).Return(nil).Once()
		f.uploadRepo.On("DeleteByPatientID", mock.Anything, patientID).Return(nil).Once()
		f.patientRepo.On("Delete", mock.Anything, patientID).Return(int64(1), nil).Once()
		f.audit.On("LogDelete", mock.Anything, mock.Anything, &adminID, entity.AuditActionPatientDelete, "patient", patientID.String(), mock.Anything).Return(nil)

		var committedFirst []bool
		f.storage.On("Delete", mock.Anything, mock.Anything).
			Run(func(mock.Arguments) {
				committedFirst = append(committedFirst, f.sql.ExpectationsWereMet() == nil)
			}).
			Return(nil)

		err := f.usecase.DeletePatient(adminContext(adminID), patientID)

		require.NoError(t, err)
		for _, repo := range []*mock.Mock{
			&f.prescriptionRepo.Mock, &f.visitRepo.Mock, &f.appointmentRepo.Mock,
			&f.recordRepo.Mock, &f.uploadRepo.Mock, &f.patientRepo.Mock,
		} {
			repo.AssertExpectations(t)
		}
		f.storage.AssertCalled(t, "Delete", mock.Anything, "reports/a.pdf")
		f.storage.AssertCalled(t, "Delete", mock.Anything, "reports/b.png")
		assert.Equal(t, []bool{true, true}, committedFirst)
		assert.NoError(t, f.sql.ExpectationsWereMet())
	})

	t.Run("Failing Step Aborts The Cascade", func(t *testing.T) {
		f := newPatientFixture(t)

		f.sql.ExpectBegin()
		f.sql.ExpectRollback()
		f.patientRepo.On("FindByID", mock.Anything, patientID).Return(patient, nil)
		f.uploadRepo.On("FindByPatientID", mock.Anything, patientID).Return(uploads, nil)
		f.prescriptionRepo.On("DeleteByPatientID", mock.Anything, patientID).Return(nil)
		f.visitRepo.On("DeleteByPatientID", mock.Anything, patientID).Return(errors.New("lock timeout"))

		err := f.usecase.DeletePatient(adminContext(adminID), patientID)

		assert.EqualError(t, err, "lock timeout")
		f.appointmentRepo.AssertNotCalled(t, "DeleteByPatientID", mock.Anything, mock.Anything)
		f.recordRepo.AssertNotCalled(t, "DeleteByPatientID", mock.Anything, mock.Anything)
		f.uploadRepo.AssertNotCalled(t, "DeleteByPatientID", mock.Anything, mock.Anything)
		f.patientRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		f.storage.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		assert.NoError(t, f.sql.ExpectationsWereMet())
	})

	t.Run("Failed Commit Keeps Artifacts", func(t *testing.T) {
		f := newPatientFixture(t)

		f.sql.ExpectBegin()
		f.sql.ExpectCommit().WillReturnError(errors.New("serialization failure"))
		f.patientRepo.On("FindByID", mock.Anything, patientID).Return(patient, nil)
		f.uploadRepo.On("FindByPatientID", mock.Anything, patientID).Return(uploads, nil)
		f.prescriptionRepo.On("DeleteByPatientID", mock.Anything, patientID).Return(nil)
		f.visitRepo.On("DeleteByPatientID", mock.Anything, patientID).Return(nil)
		f.appointmentRepo.On("DeleteByPatientID", mock.Anything, patientID).Return(nil)
		f.recordRepo.On("DeleteByPatientID", mock.Anything, patientID).Return(nil)
		f.uploadRepo.On("DeleteByPatientID", mock.Anything, patientID).Return(nil)
		f.patientRepo.On("Delete", mock.Anything, patientID).Return(int64(1), nil)
		f.audit.On("LogDelete", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

		err := f.usecase.DeletePatient(adminContext(adminID), patientID)

		assert.Error(t, err)
		f.storage.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		assert.NoError(t, f.sql.ExpectationsWereMet())
	})

	t.Run("Unknown Patient", func(t *testing.T) {
		f := newPatientFixture(t)

		f.sql.ExpectBegin()
		f.sql.ExpectRollback()
		f.patientRepo.On("FindByID", mock.Anything, patientID).Return(nil, nil)

		err := f.usecase.DeletePatient(adminContext(adminID), patientID)

		assert.ErrorIs(t, err, ErrPatientNotFound)
		f.prescriptionRepo.AssertNotCalled(t, "DeleteByPatientID", mock.Anything, mock.Anything)
		assert.NoError(t, f.sql.ExpectationsWereMet())
	})
}
