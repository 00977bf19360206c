package converter

import (
	"github.com/deringirish/PHMS/internal/delivery/dto"
	"github.com/deringirish/PHMS/internal/domain/entity"
	"github.com/deringirish/PHMS/internal/domain/metric"

	"github.com/samber/lo"
)

// RecordAlerts lists the alerts of the given type raised by one record.
func RecordAlerts(record *entity.HealthRecord, alertType string) []dto.CriticalAlertResponse {
	alerts := lo.Filter(metric.CriticalAlerts(record.Metrics()), func(a metric.Alert, _ int) bool {
		return a.Type == alertType
	})

	return lo.Map(alerts, func(a metric.Alert, _ int) dto.CriticalAlertResponse {
		resp := dto.CriticalAlertResponse{
			PatientID: record.PatientID,
			RecordID:  record.ID,
			Type:      a.Type,
			Value:     a.Value,
			Date:      record.Timestamp,
		}
		if record.Patient != nil {
			resp.PatientName = record.Patient.FullName
		}
		return resp
	})
}
