package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/deringirish/PHMS/internal/converter"
	"github.com/deringirish/PHMS/internal/delivery/dto"
	"github.com/deringirish/PHMS/internal/domain/entity"
	"github.com/deringirish/PHMS/internal/domain/metric"
	"github.com/deringirish/PHMS/internal/domain/repository"
	"github.com/deringirish/PHMS/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrHealthRecordNotFound = errors.New("health record not found")
	ErrMissingMetric        = metric.ErrMissingMetric
	ErrUnknownChartGroup    = errors.New("unknown chart group")
	ErrNoChartData          = errors.New("no data for chart group")
	ErrInvalidDateRange     = errors.New("invalid date range")
)

type HealthRecordUsecase interface {
	CreateManualRecord(ctx context.Context, patientID uuid.UUID, input *dto.RecordInput) (*dto.HealthRecordResponse, error)
	GetRecord(ctx context.Context, id uuid.UUID) (*dto.HealthRecordResponse, error)
	DeleteRecord(ctx context.Context, id uuid.UUID) (uuid.UUID, error)
	ListRecords(ctx context.Context, patientID uuid.UUID, filter *entity.RecordFilter) (*dto.HealthRecordListResponse, error)
	GetChartData(ctx context.Context, patientID uuid.UUID) (*metric.ChartData, error)
	GetChartHTML(ctx context.Context, patientID uuid.UUID, group string) ([]byte, error)
}

type healthRecordUsecase struct {
	db             *gorm.DB
	log            *logrus.Logger
	patientRepo    repository.PatientRepository
	recordRepo     repository.HealthRecordRepository
	auditService   service.AuditService
	alertPublisher service.AlertPublisher
	chartRenderer  service.ChartRenderer
}

func NewHealthRecordUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	recordRepo repository.HealthRecordRepository,
	auditService service.AuditService,
	alertPublisher service.AlertPublisher,
	chartRenderer service.ChartRenderer,
) HealthRecordUsecase {
	return &healthRecordUsecase{
		db:             db,
		log:            log,
		patientRepo:    patientRepo,
		recordRepo:     recordRepo,
		auditService:   auditService,
		alertPublisher: alertPublisher,
		chartRenderer:  chartRenderer,
	}
}

func (u *healthRecordUsecase) CreateManualRecord(ctx context.Context, patientID uuid.UUID, input *dto.RecordInput) (*dto.HealthRecordResponse, error) {
	reading, err := metric.Sanitize(input.Values)
	if err != nil {
		return nil, err
	}
	metric.DeriveBMI(reading.Values)

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

	record := NewHealthRecord(patientID, reading, ParseTimestamp(input.Timestamp, time.Now()), entity.SourceManual)
	if err := u.recordRepo.Create(tx, record); err != nil {
		u.log.Warnf("Failed to create health record: %+v", err)
		return nil, err
	}

	response := converter.HealthRecordToResponse(record)
	if err := u.auditService.LogCreate(ctx, tx, actorID(ctx), entity.AuditActionRecordCreate, "health_record", record.ID.String(), response); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	publishCriticalValues(ctx, u.alertPublisher, patient, record)

	return response, nil
}

func (u *healthRecordUsecase) GetRecord(ctx context.Context, id uuid.UUID) (*dto.HealthRecordResponse, error) {
	record, err := u.recordRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find health record by ID: %+v", err)
		return nil, err
	}
	if record == nil {
		return nil, ErrHealthRecordNotFound
	}
	return converter.HealthRecordToResponse(record), nil
}

// DeleteRecord returns the owning patient so the caller can navigate back.
func (u *healthRecordUsecase) DeleteRecord(ctx context.Context, id uuid.UUID) (uuid.UUID, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	record, err := u.recordRepo.FindByID(tx, id)
	if err != nil {
		u.log.Warnf("Failed to find health record by ID: %+v", err)
		return uuid.Nil, err
	}
	if record == nil {
		return uuid.Nil, ErrHealthRecordNotFound
	}

	rows, err := u.recordRepo.Delete(tx, id)
	if err != nil {
		u.log.Warnf("Failed to delete health record: %+v", err)
		return uuid.Nil, err
	}
	if rows == 0 {
		return uuid.Nil, ErrHealthRecordNotFound
	}

	if err := u.auditService.LogDelete(ctx, tx, actorID(ctx), entity.AuditActionRecordDelete, "health_record", id.String(), converter.HealthRecordToResponse(record)); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
		return uuid.Nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return uuid.Nil, err
	}

	return record.PatientID, nil
}

func (u *healthRecordUsecase) ListRecords(ctx context.Context, patientID uuid.UUID, filter *entity.RecordFilter) (*dto.HealthRecordListResponse, error) {
	if filter != nil && filter.From != nil && filter.To != nil && filter.To.Before(*filter.From) {
		return nil, ErrInvalidDateRange
	}

	records, err := u.patientRecords(ctx, patientID, filter)
	if err != nil {
		return nil, err
	}

	return &dto.HealthRecordListResponse{
		Records: converter.HealthRecordsToResponses(records),
		Total:   len(records),
	}, nil
}

func (u *healthRecordUsecase) GetChartData(ctx context.Context, patientID uuid.UUID) (*metric.ChartData, error) {
	records, err := u.patientRecords(ctx, patientID, nil)
	if err != nil {
		return nil, err
	}

	data := metric.Format(converter.HealthRecordsToPoints(records))
	return &data, nil
}

// GetChartHTML renders one chart group as an interactive page. It returns
// ErrNoChartData when every series in the group is empty.
func (u *healthRecordUsecase) GetChartHTML(ctx context.Context, patientID uuid.UUID, group string) ([]byte, error) {
	spec, ok := metric.LookupGroup(group)
	if !ok {
		return nil, ErrUnknownChartGroup
	}

	data, err := u.GetChartData(ctx, patientID)
	if err != nil {
		return nil, err
	}

	groupData := data.Groups[spec.Key]
	if !metric.HasData(groupData) {
		return nil, ErrNoChartData
	}

	page, err := u.chartRenderer.RenderGroup(spec, data.Labels, groupData)
	if err != nil {
		u.log.Warnf("Failed to render chart: %+v", err)
		return nil, err
	}
	return page, nil
}

func (u *healthRecordUsecase) patientRecords(ctx context.Context, patientID uuid.UUID, filter *entity.RecordFilter) ([]entity.HealthRecord, error) {
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
	return records, nil
}

// NewHealthRecord builds an unsaved record from a sanitized reading.
func NewHealthRecord(patientID uuid.UUID, reading metric.Reading, timestamp time.Time, source entity.SourceType) *entity.HealthRecord {
	record := &entity.HealthRecord{
		PatientID:  patientID,
		Timestamp:  timestamp,
		SourceType: source,
		Notes:      reading.Notes,
	}
	record.SetMetrics(reading.Values)
	return record
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimestamp reads an ISO-8601 timestamp. Blank or unparseable input
// falls back to now; zone-less input is taken as UTC.
func ParseTimestamp(value string, now time.Time) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return now.UTC()
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC()
		}
	}
	return now.UTC()
}

// publishCriticalValues announces threshold crossings of a committed record.
// Delivery failures are logged by the publisher and never fail the request.
func publishCriticalValues(ctx context.Context, publisher service.AlertPublisher, patient *entity.Patient, record *entity.HealthRecord) {
	alerts := metric.CriticalAlerts(record.Metrics())
	if len(alerts) == 0 {
		return
	}

	_ = publisher.PublishCritical(ctx, service.CriticalAlertEvent{
		PatientID:   patient.ID,
		PatientName: patient.FullName,
		RecordID:    record.ID,
		Timestamp:   record.Timestamp,
		Alerts:      alerts,
	})
}
