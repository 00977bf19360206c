package usecase

import (
	"context"
	"errors"

	"github.com/deringirish/PHMS/internal/converter"
	"github.com/deringirish/PHMS/internal/delivery/dto"
	"github.com/deringirish/PHMS/internal/domain/entity"
	"github.com/deringirish/PHMS/internal/domain/metric"
	"github.com/deringirish/PHMS/internal/domain/repository"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrUnknownMetric = errors.New("unknown metric")

const (
	defaultMetricsDays     = 30
	defaultTrendDays       = 90
	topConditionsLimit     = 10
	topDiagnosesLimit      = 10
	topMedicationsLimit    = 15
	recentPrescriptionDays = 30

	maxBloodPressureAlerts = 10
	maxCriticalAlerts      = 20
)

type AnalyticsUsecase interface {
	Overview(ctx context.Context) (*entity.OverviewStats, error)
	Demographics(ctx context.Context) (*dto.DemographicsResponse, error)
	AppointmentMetrics(ctx context.Context, days int) (*dto.AppointmentMetricsResponse, error)
	VisitStatistics(ctx context.Context, days int) (*dto.VisitStatisticsResponse, error)
	PrescriptionAnalytics(ctx context.Context) (*dto.PrescriptionAnalyticsResponse, error)
	HealthTrends(ctx context.Context, metricName string, days int) (*dto.HealthTrendResponse, error)
	CriticalAlerts(ctx context.Context) ([]dto.CriticalAlertResponse, error)
}

type analyticsUsecase struct {
	db            *gorm.DB
	log           *logrus.Logger
	analyticsRepo repository.AnalyticsRepository
}

func NewAnalyticsUsecase(db *gorm.DB, log *logrus.Logger, analyticsRepo repository.AnalyticsRepository) AnalyticsUsecase {
	return &analyticsUsecase{
		db:            db,
		log:           log,
		analyticsRepo: analyticsRepo,
	}
}

func (u *analyticsUsecase) Overview(ctx context.Context) (*entity.OverviewStats, error) {
	now := today()
	stats, err := u.analyticsRepo.Overview(u.db.WithContext(ctx), now, now.AddDate(0, 0, -7))
	if err != nil {
		u.log.Warnf("Failed to load overview stats: %+v", err)
		return nil, err
	}
	return stats, nil
}

func (u *analyticsUsecase) Demographics(ctx context.Context) (*dto.DemographicsResponse, error) {
	db := u.db.WithContext(ctx)

	genders, err := u.analyticsRepo.GenderCounts(db)
	if err != nil {
		u.log.Warnf("Failed to count patients by gender: %+v", err)
		return nil, err
	}

	ages, err := u.analyticsRepo.PatientAges(db)
	if err != nil {
		u.log.Warnf("Failed to load patient ages: %+v", err)
		return nil, err
	}

	conditions, err := u.analyticsRepo.TopConditions(db, topConditionsLimit)
	if err != nil {
		u.log.Warnf("Failed to count medical conditions: %+v", err)
		return nil, err
	}

	return &dto.DemographicsResponse{
		ByGender:    genders,
		ByAgeGroup:  AgeGroups(ages),
		ByCondition: conditions,
	}, nil
}

func (u *analyticsUsecase) AppointmentMetrics(ctx context.Context, days int) (*dto.AppointmentMetricsResponse, error) {
	days = lo.Ternary(days > 0, days, defaultMetricsDays)
	since := today().AddDate(0, 0, -days)
	db := u.db.WithContext(ctx)

	byStatus, err := u.analyticsRepo.AppointmentStatusCounts(db, since)
	if err != nil {
		u.log.Warnf("Failed to count appointments by status: %+v", err)
		return nil, err
	}

	daily, err := u.analyticsRepo.AppointmentDailyCounts(db, since)
	if err != nil {
		u.log.Warnf("Failed to count appointments by day: %+v", err)
		return nil, err
	}

	total := lo.SumBy(byStatus, func(c entity.LabelCount) int64 { return c.Count })
	countOf := func(status entity.AppointmentStatus) int64 {
		c, _ := lo.Find(byStatus, func(c entity.LabelCount) bool { return c.Label == string(status) })
		return c.Count
	}

	return &dto.AppointmentMetricsResponse{
		Days:           days,
		Total:          total,
		ByStatus:       byStatus,
		CompletionRate: Percentage(countOf(entity.AppointmentStatusCompleted), total),
		NoShowRate:     Percentage(countOf(entity.AppointmentStatusNoShow), total),
		DailyCounts:    daily,
	}, nil
}

func (u *analyticsUsecase) VisitStatistics(ctx context.Context, days int) (*dto.VisitStatisticsResponse, error) {
	days = lo.Ternary(days > 0, days, defaultMetricsDays)
	since := today().AddDate(0, 0, -days)
	db := u.db.WithContext(ctx)

	total, err := u.analyticsRepo.CountVisitsSince(db, since)
	if err != nil {
		u.log.Warnf("Failed to count visits: %+v", err)
		return nil, err
	}

	diagnoses, err := u.analyticsRepo.TopDiagnoses(db, since, topDiagnosesLimit)
	if err != nil {
		u.log.Warnf("Failed to count diagnoses: %+v", err)
		return nil, err
	}

	monthly, err := u.analyticsRepo.VisitMonthlyCounts(db, since)
	if err != nil {
		u.log.Warnf("Failed to count visits by month: %+v", err)
		return nil, err
	}

	return &dto.VisitStatisticsResponse{
		Days:            days,
		Total:           total,
		CommonDiagnoses: diagnoses,
		MonthlyCounts:   monthly,
	}, nil
}

func (u *analyticsUsecase) PrescriptionAnalytics(ctx context.Context) (*dto.PrescriptionAnalyticsResponse, error) {
	db := u.db.WithContext(ctx)

	total, err := u.analyticsRepo.CountPrescriptions(db, nil)
	if err != nil {
		u.log.Warnf("Failed to count prescriptions: %+v", err)
		return nil, err
	}

	top, err := u.analyticsRepo.TopMedications(db, topMedicationsLimit)
	if err != nil {
		u.log.Warnf("Failed to count medications: %+v", err)
		return nil, err
	}

	since := today().AddDate(0, 0, -recentPrescriptionDays)
	recent, err := u.analyticsRepo.CountPrescriptions(db, &since)
	if err != nil {
		u.log.Warnf("Failed to count recent prescriptions: %+v", err)
		return nil, err
	}

	return &dto.PrescriptionAnalyticsResponse{
		Total:          total,
		TopMedications: top,
		RecentCount:    recent,
	}, nil
}

func (u *analyticsUsecase) HealthTrends(ctx context.Context, metricName string, days int) (*dto.HealthTrendResponse, error) {
	if metricName == "" {
		metricName = metric.SugarFasting.String()
	}
	m, ok := metric.Parse(metricName)
	if !ok {
		return nil, ErrUnknownMetric
	}
	column, ok := entity.ColumnName(m)
	if !ok {
		return nil, ErrUnknownMetric
	}
	days = lo.Ternary(days > 0, days, defaultTrendDays)

	points, err := u.analyticsRepo.MetricTrend(u.db.WithContext(ctx), column, today().AddDate(0, 0, -days))
	if err != nil {
		u.log.Warnf("Failed to load metric trend: %+v", err)
		return nil, err
	}

	return &dto.HealthTrendResponse{
		Metric: m.String(),
		Days:   days,
		Points: points,
	}, nil
}

// CriticalAlerts checks the newest qualifying record of each patient. Blood
// pressure alerts come first and fasting sugar fills the remaining slots.
func (u *analyticsUsecase) CriticalAlerts(ctx context.Context) ([]dto.CriticalAlertResponse, error) {
	db := u.db.WithContext(ctx)

	pressure, err := u.analyticsRepo.LatestMatching(db, "bp_systolic >= ? OR bp_diastolic >= ?", metric.HighSystolic, metric.HighDiastolic)
	if err != nil {
		u.log.Warnf("Failed to find blood pressure alerts: %+v", err)
		return nil, err
	}

	sugar, err := u.analyticsRepo.LatestMatching(db, "sugar_fasting >= ?", metric.HighFastingSugar)
	if err != nil {
		u.log.Warnf("Failed to find fasting sugar alerts: %+v", err)
		return nil, err
	}

	return CollectAlerts(pressure, sugar), nil
}

// CollectAlerts builds the dashboard alert list from pre-filtered records.
func CollectAlerts(pressure, sugar []entity.HealthRecord) []dto.CriticalAlertResponse {
	alerts := make([]dto.CriticalAlertResponse, 0, maxCriticalAlerts)
	for i := range pressure {
		if len(alerts) >= maxBloodPressureAlerts {
			break
		}
		alerts = append(alerts, converter.RecordAlerts(&pressure[i], metric.AlertHighBloodPressure)...)
	}
	for i := range sugar {
		if len(alerts) >= maxCriticalAlerts {
			break
		}
		alerts = append(alerts, converter.RecordAlerts(&sugar[i], metric.AlertHighFastingSugar)...)
	}
	return alerts
}

type ageGroup struct {
	label string
	max   int // inclusive upper bound, -1 for open-ended
}

var ageGroups = []ageGroup{
	{"0-17", 17},
	{"18-29", 29},
	{"30-44", 44},
	{"45-59", 59},
	{"60+", -1},
}

// AgeGroups buckets ages, returning every group even when empty.
func AgeGroups(ages []int) []entity.LabelCount {
	counts := lo.Map(ageGroups, func(g ageGroup, _ int) entity.LabelCount {
		return entity.LabelCount{Label: g.label}
	})
	for _, age := range ages {
		for i, g := range ageGroups {
			if g.max < 0 || age <= g.max {
				counts[i].Count++
				break
			}
		}
	}
	return counts
}

// Percentage returns part/total*100 rounded to two decimals, 0 when total is 0.
func Percentage(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	rate, _ := decimal.NewFromInt(part).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(total)).
		Round(2).
		Float64()
	return rate
}
