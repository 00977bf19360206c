package converter

import (
	"github.com/deringirish/PHMS/internal/delivery/dto"
	"github.com/deringirish/PHMS/internal/domain/entity"
	"github.com/deringirish/PHMS/internal/domain/metric"

	"github.com/samber/lo"
)

// HealthRecordToResponse converts a HealthRecord entity to HealthRecordResponse DTO
func HealthRecordToResponse(record *entity.HealthRecord) *dto.HealthRecordResponse {
	if record == nil {
		return nil
	}

	return &dto.HealthRecordResponse{
		ID:         record.ID,
		PatientID:  record.PatientID,
		Timestamp:  record.Timestamp,
		SourceType: string(record.SourceType),
		Notes:      record.Notes,
		Metrics:    record.Metrics().Strings(),
		CreatedAt:  record.CreatedAt,
	}
}

func HealthRecordsToResponses(records []entity.HealthRecord) []dto.HealthRecordResponse {
	return lo.Map(records, func(r entity.HealthRecord, _ int) dto.HealthRecordResponse {
		return *HealthRecordToResponse(&r)
	})
}

// HealthRecordsToPoints feeds records into the chart formatter.
func HealthRecordsToPoints(records []entity.HealthRecord) []metric.Point {
	return lo.Map(records, func(r entity.HealthRecord, _ int) metric.Point {
		return metric.Point{Timestamp: r.Timestamp, Values: r.Metrics()}
	})
}
