package repository

import (
	"time"

	"github.com/deringirish/PHMS/internal/domain/entity"

	"gorm.io/gorm"
)

// AnalyticsRepository runs read-only aggregate queries for the dashboard.
type AnalyticsRepository interface {
	Overview(db *gorm.DB, today, weekAgo time.Time) (*entity.OverviewStats, error)
	GenderCounts(db *gorm.DB) ([]entity.LabelCount, error)
	PatientAges(db *gorm.DB) ([]int, error)
	TopConditions(db *gorm.DB, limit int) ([]entity.LabelCount, error)
	AppointmentStatusCounts(db *gorm.DB, since time.Time) ([]entity.LabelCount, error)
	AppointmentDailyCounts(db *gorm.DB, since time.Time) ([]entity.LabelCount, error)
	CountVisitsSince(db *gorm.DB, since time.Time) (int64, error)
	TopDiagnoses(db *gorm.DB, since time.Time, limit int) ([]entity.LabelCount, error)
	VisitMonthlyCounts(db *gorm.DB, since time.Time) ([]entity.LabelCount, error)
	CountPrescriptions(db *gorm.DB, since *time.Time) (int64, error)
	TopMedications(db *gorm.DB, limit int) ([]entity.LabelCount, error)
	MetricTrend(db *gorm.DB, column string, since time.Time) ([]entity.TrendPoint, error)
	// LatestMatching returns the newest record per patient that satisfies the
	// condition, newest first, with Patient preloaded.
	LatestMatching(db *gorm.DB, condition string, args ...interface{}) ([]entity.HealthRecord, error)
}
