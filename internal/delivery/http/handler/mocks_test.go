package handler

import (
	"context"
	"io"
	"time"

	"github.com/deringirish/PHMS/internal/delivery/dto"
	"github.com/deringirish/PHMS/internal/domain/entity"
	"github.com/deringirish/PHMS/internal/domain/metric"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockPatientUsecase struct {
	mock.Mock
}

func (m *mockPatientUsecase) CreatePatient(ctx context.Context, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*dto.PatientResponse)
	return resp, args.Error(1)
}

func (m *mockPatientUsecase) GetPatient(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*dto.PatientResponse)
	return resp, args.Error(1)
}

func (m *mockPatientUsecase) GetPatientDetail(ctx context.Context, id uuid.UUID) (*dto.PatientDetailResponse, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*dto.PatientDetailResponse)
	return resp, args.Error(1)
}

func (m *mockPatientUsecase) ListPatients(ctx context.Context, search string) (*dto.PatientListResponse, error) {
	args := m.Called(ctx, search)
	resp, _ := args.Get(0).(*dto.PatientListResponse)
	return resp, args.Error(1)
}

func (m *mockPatientUsecase) UpdatePatient(ctx context.Context, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	args := m.Called(ctx, id, req)
	resp, _ := args.Get(0).(*dto.PatientResponse)
	return resp, args.Error(1)
}

func (m *mockPatientUsecase) DeletePatient(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockHealthRecordUsecase struct {
	mock.Mock
}

func (m *mockHealthRecordUsecase) CreateManualRecord(ctx context.Context, patientID uuid.UUID, input *dto.RecordInput) (*dto.HealthRecordResponse, error) {
	args := m.Called(ctx, patientID, input)
	resp, _ := args.Get(0).(*dto.HealthRecordResponse)
	return resp, args.Error(1)
}

func (m *mockHealthRecordUsecase) GetRecord(ctx context.Context, id uuid.UUID) (*dto.HealthRecordResponse, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*dto.HealthRecordResponse)
	return resp, args.Error(1)
}

func (m *mockHealthRecordUsecase) DeleteRecord(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *mockHealthRecordUsecase) ListRecords(ctx context.Context, patientID uuid.UUID, filter *entity.RecordFilter) (*dto.HealthRecordListResponse, error) {
	args := m.Called(ctx, patientID, filter)
	resp, _ := args.Get(0).(*dto.HealthRecordListResponse)
	return resp, args.Error(1)
}

func (m *mockHealthRecordUsecase) GetChartData(ctx context.Context, patientID uuid.UUID) (*metric.ChartData, error) {
	args := m.Called(ctx, patientID)
	resp, _ := args.Get(0).(*metric.ChartData)
	return resp, args.Error(1)
}

func (m *mockHealthRecordUsecase) GetChartHTML(ctx context.Context, patientID uuid.UUID, group string) ([]byte, error) {
	args := m.Called(ctx, patientID, group)
	page, _ := args.Get(0).([]byte)
	return page, args.Error(1)
}

type mockAppointmentUsecase struct {
	mock.Mock
}

func (m *mockAppointmentUsecase) CreateAppointment(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*dto.AppointmentResponse)
	return resp, args.Error(1)
}

func (m *mockAppointmentUsecase) GetAppointment(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	args := m.Called(ctx, id)
	resp, _ := args.Get(0).(*dto.AppointmentResponse)
	return resp, args.Error(1)
}

func (m *mockAppointmentUsecase) ListAppointments(ctx context.Context, query *dto.AppointmentListQuery) (*dto.AppointmentListResponse, error) {
	args := m.Called(ctx, query)
	resp, _ := args.Get(0).(*dto.AppointmentListResponse)
	return resp, args.Error(1)
}

func (m *mockAppointmentUsecase) ListPatientAppointments(ctx context.Context, patientID uuid.UUID) (*dto.AppointmentListResponse, error) {
	args := m.Called(ctx, patientID)
	resp, _ := args.Get(0).(*dto.AppointmentListResponse)
	return resp, args.Error(1)
}

func (m *mockAppointmentUsecase) Reschedule(ctx context.Context, id uuid.UUID, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error) {
	args := m.Called(ctx, id, req)
	resp, _ := args.Get(0).(*dto.AppointmentResponse)
	return resp, args.Error(1)
}

func (m *mockAppointmentUsecase) Cancel(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockAppointmentUsecase) Complete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockAppointmentUsecase) MarkNoShow(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockAppointmentUsecase) Calendar(ctx context.Context, month string) (*dto.CalendarResponse, error) {
	args := m.Called(ctx, month)
	resp, _ := args.Get(0).(*dto.CalendarResponse)
	return resp, args.Error(1)
}

func (m *mockAppointmentUsecase) CheckConflict(ctx context.Context, req *dto.CheckConflictRequest) (*dto.ConflictResponse, error) {
	args := m.Called(ctx, req)
	resp, _ := args.Get(0).(*dto.ConflictResponse)
	return resp, args.Error(1)
}

type mockReportUploadUsecase struct {
	mock.Mock
}

func (m *mockReportUploadUsecase) UploadReport(ctx context.Context, patientID uuid.UUID, req *dto.UploadReportRequest) (*dto.PendingUploadResponse, error) {
	if req != nil && req.Body != nil {
		_, _ = io.Copy(io.Discard, req.Body)
	}
	args := m.Called(ctx, patientID, req)
	resp, _ := args.Get(0).(*dto.PendingUploadResponse)
	return resp, args.Error(1)
}

func (m *mockReportUploadUsecase) GetPendingUpload(ctx context.Context, patientID, uploadID uuid.UUID) (*dto.PendingUploadResponse, error) {
	args := m.Called(ctx, patientID, uploadID)
	resp, _ := args.Get(0).(*dto.PendingUploadResponse)
	return resp, args.Error(1)
}

func (m *mockReportUploadUsecase) ConfirmUpload(ctx context.Context, patientID, uploadID uuid.UUID, input *dto.RecordInput) (*dto.HealthRecordResponse, error) {
	args := m.Called(ctx, patientID, uploadID, input)
	resp, _ := args.Get(0).(*dto.HealthRecordResponse)
	return resp, args.Error(1)
}

func (m *mockReportUploadUsecase) DiscardUpload(ctx context.Context, patientID, uploadID uuid.UUID) error {
	return m.Called(ctx, patientID, uploadID).Error(0)
}

func (m *mockReportUploadUsecase) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}
