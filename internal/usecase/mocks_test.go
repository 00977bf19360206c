package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/deringirish/PHMS/internal/domain/entity"
	"github.com/deringirish/PHMS/internal/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// newMockDB returns a gorm handle whose transaction boundaries are checked
// through sqlmock. Repositories are mocked, so Begin/Commit/Rollback are the
// only statements that reach the driver.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Discard,
	})
	require.NoError(t, err)
	return db, sqlMock
}

type mockPatientRepo struct{ mock.Mock }

func (m *mockPatientRepo) Create(db *gorm.DB, patient *entity.Patient) error {
	return m.Called(db, patient).Error(0)
}

func (m *mockPatientRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Patient, error) {
	args := m.Called(db, id)
	patient, _ := args.Get(0).(*entity.Patient)
	return patient, args.Error(1)
}

func (m *mockPatientRepo) Search(db *gorm.DB, name string) ([]entity.Patient, error) {
	args := m.Called(db, name)
	patients, _ := args.Get(0).([]entity.Patient)
	return patients, args.Error(1)
}

func (m *mockPatientRepo) Update(db *gorm.DB, patient *entity.Patient) error {
	return m.Called(db, patient).Error(0)
}

func (m *mockPatientRepo) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	args := m.Called(db, id)
	return args.Get(0).(int64), args.Error(1)
}

type mockRecordRepo struct{ mock.Mock }

func (m *mockRecordRepo) Create(db *gorm.DB, record *entity.HealthRecord) error {
	return m.Called(db, record).Error(0)
}

func (m *mockRecordRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.HealthRecord, error) {
	args := m.Called(db, id)
	record, _ := args.Get(0).(*entity.HealthRecord)
	return record, args.Error(1)
}

func (m *mockRecordRepo) FindByPatientID(db *gorm.DB, patientID uuid.UUID, filter *entity.RecordFilter) ([]entity.HealthRecord, error) {
	args := m.Called(db, patientID, filter)
	records, _ := args.Get(0).([]entity.HealthRecord)
	return records, args.Error(1)
}

func (m *mockRecordRepo) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	args := m.Called(db, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRecordRepo) DeleteByPatientID(db *gorm.DB, patientID uuid.UUID) error {
	return m.Called(db, patientID).Error(0)
}

type mockUploadRepo struct{ mock.Mock }

func (m *mockUploadRepo) Create(db *gorm.DB, upload *entity.PendingUpload) error {
	return m.Called(db, upload).Error(0)
}

func (m *mockUploadRepo) FindOwned(db *gorm.DB, adminID, patientID, id uuid.UUID) (*entity.PendingUpload, error) {
	args := m.Called(db, adminID, patientID, id)
	upload, _ := args.Get(0).(*entity.PendingUpload)
	return upload, args.Error(1)
}

func (m *mockUploadRepo) FindExpired(db *gorm.DB, now time.Time, limit int) ([]entity.PendingUpload, error) {
	args := m.Called(db, now, limit)
	uploads, _ := args.Get(0).([]entity.PendingUpload)
	return uploads, args.Error(1)
}

func (m *mockUploadRepo) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.PendingUpload, error) {
	args := m.Called(db, patientID)
	uploads, _ := args.Get(0).([]entity.PendingUpload)
	return uploads, args.Error(1)
}

func (m *mockUploadRepo) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	args := m.Called(db, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUploadRepo) DeleteByPatientID(db *gorm.DB, patientID uuid.UUID) error {
	return m.Called(db, patientID).Error(0)
}

type mockVisitRepo struct{ mock.Mock }

func (m *mockVisitRepo) Create(db *gorm.DB, visit *entity.Visit) error {
	return m.Called(db, visit).Error(0)
}

func (m *mockVisitRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Visit, error) {
	args := m.Called(db, id)
	visit, _ := args.Get(0).(*entity.Visit)
	return visit, args.Error(1)
}

func (m *mockVisitRepo) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Visit, error) {
	args := m.Called(db, patientID)
	visits, _ := args.Get(0).([]entity.Visit)
	return visits, args.Error(1)
}

func (m *mockVisitRepo) Update(db *gorm.DB, visit *entity.Visit) error {
	return m.Called(db, visit).Error(0)
}

func (m *mockVisitRepo) LinkHealthRecord(db *gorm.DB, visit *entity.Visit, record *entity.HealthRecord) error {
	return m.Called(db, visit, record).Error(0)
}

func (m *mockVisitRepo) DeleteByPatientID(db *gorm.DB, patientID uuid.UUID) error {
	return m.Called(db, patientID).Error(0)
}

type mockPrescriptionRepo struct{ mock.Mock }

func (m *mockPrescriptionRepo) Create(db *gorm.DB, prescription *entity.Prescription) error {
	return m.Called(db, prescription).Error(0)
}

func (m *mockPrescriptionRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Prescription, error) {
	args := m.Called(db, id)
	prescription, _ := args.Get(0).(*entity.Prescription)
	return prescription, args.Error(1)
}

func (m *mockPrescriptionRepo) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Prescription, error) {
	args := m.Called(db, patientID)
	prescriptions, _ := args.Get(0).([]entity.Prescription)
	return prescriptions, args.Error(1)
}

func (m *mockPrescriptionRepo) DeleteByPatientID(db *gorm.DB, patientID uuid.UUID) error {
	return m.Called(db, patientID).Error(0)
}

type mockAppointmentRepo struct{ mock.Mock }

func (m *mockAppointmentRepo) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return m.Called(db, appointment).Error(0)
}

func (m *mockAppointmentRepo) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	args := m.Called(db, id)
	appointment, _ := args.Get(0).(*entity.Appointment)
	return appointment, args.Error(1)
}

func (m *mockAppointmentRepo) FindAll(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	args := m.Called(db, filter)
	appointments, _ := args.Get(0).([]entity.Appointment)
	return appointments, args.Error(1)
}

func (m *mockAppointmentRepo) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	args := m.Called(db, patientID)
	appointments, _ := args.Get(0).([]entity.Appointment)
	return appointments, args.Error(1)
}

func (m *mockAppointmentRepo) FindActiveOnDate(db *gorm.DB, doctorID *uuid.UUID, date time.Time, excludeID *uuid.UUID) ([]entity.Appointment, error) {
	args := m.Called(db, doctorID, date, excludeID)
	appointments, _ := args.Get(0).([]entity.Appointment)
	return appointments, args.Error(1)
}

func (m *mockAppointmentRepo) Update(db *gorm.DB, appointment *entity.Appointment) error {
	return m.Called(db, appointment).Error(0)
}

func (m *mockAppointmentRepo) UpdateStatus(db *gorm.DB, id uuid.UUID, from, to entity.AppointmentStatus) (int64, error) {
	args := m.Called(db, id, from, to)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAppointmentRepo) DeleteByPatientID(db *gorm.DB, patientID uuid.UUID) error {
	return m.Called(db, patientID).Error(0)
}

type mockStorage struct{ mock.Mock }

func (m *mockStorage) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	return m.Called(ctx, key, body, size, contentType).Error(0)
}

func (m *mockStorage) Get(ctx context.Context, key string) ([]byte, error) {
	args := m.Called(ctx, key)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

func (m *mockStorage) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type mockExtractor struct{ mock.Mock }

func (m *mockExtractor) Extract(ctx context.Context, report service.Report) (map[string]interface{}, error) {
	args := m.Called(ctx, report)
	values, _ := args.Get(0).(map[string]interface{})
	return values, args.Error(1)
}

type mockAuditService struct{ mock.Mock }

func (m *mockAuditService) LogCreate(ctx context.Context, tx *gorm.DB, adminID *uuid.UUID, action string, entityName string, entityID string, newValue interface{}) error {
	return m.Called(ctx, tx, adminID, action, entityName, entityID, newValue).Error(0)
}

func (m *mockAuditService) LogUpdate(ctx context.Context, tx *gorm.DB, adminID *uuid.UUID, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	return m.Called(ctx, tx, adminID, action, entityName, entityID, oldValue, newValue).Error(0)
}

func (m *mockAuditService) LogDelete(ctx context.Context, tx *gorm.DB, adminID *uuid.UUID, action string, entityName string, entityID string, oldValue interface{}) error {
	return m.Called(ctx, tx, adminID, action, entityName, entityID, oldValue).Error(0)
}

type mockAlertPublisher struct{ mock.Mock }

func (m *mockAlertPublisher) PublishCritical(ctx context.Context, event service.CriticalAlertEvent) error {
	return m.Called(ctx, event).Error(0)
}
