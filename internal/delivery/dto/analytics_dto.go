package dto

import (
	"time"

	"github.com/deringirish/PHMS/internal/domain/entity"

	"github.com/google/uuid"
)

type DemographicsResponse struct {
	ByGender    []entity.LabelCount `json:"by_gender"`
	ByAgeGroup  []entity.LabelCount `json:"by_age_group"`
	ByCondition []entity.LabelCount `json:"by_condition"`
}

type AppointmentMetricsResponse struct {
	Days           int                 `json:"days"`
	Total          int64               `json:"total"`
	ByStatus       []entity.LabelCount `json:"by_status"`
	CompletionRate float64             `json:"completion_rate"`
	NoShowRate     float64             `json:"no_show_rate"`
	DailyCounts    []entity.LabelCount `json:"daily_counts"`
}

type VisitStatisticsResponse struct {
	Days            int                 `json:"days"`
	Total           int64               `json:"total"`
	CommonDiagnoses []entity.LabelCount `json:"common_diagnoses"`
	MonthlyCounts   []entity.LabelCount `json:"monthly_counts"`
}

type PrescriptionAnalyticsResponse struct {
	Total          int64               `json:"total"`
	TopMedications []entity.LabelCount `json:"top_medications"`
	RecentCount    int64               `json:"recent_count"`
}

type HealthTrendResponse struct {
	Metric string              `json:"metric"`
	Days   int                 `json:"days"`
	Points []entity.TrendPoint `json:"points"`
}

type CriticalAlertResponse struct {
	PatientID   uuid.UUID `json:"patient_id"`
	PatientName string    `json:"patient_name"`
	RecordID    uuid.UUID `json:"record_id"`
	Type        string    `json:"type"`
	Value       string    `json:"value"`
	Date        time.Time `json:"date"`
}
