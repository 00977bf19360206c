package repository

import (
	"time"

	"github.com/deringirish/PHMS/internal/domain/entity"
	domainRepo "github.com/deringirish/PHMS/internal/domain/repository"

	"gorm.io/gorm"
)

type analyticsRepository struct{}

func NewAnalyticsRepository() domainRepo.AnalyticsRepository {
	return &analyticsRepository{}
}

func (r *analyticsRepository) Overview(db *gorm.DB, today, weekAgo time.Time) (*entity.OverviewStats, error) {
	var stats entity.OverviewStats
	counts := []struct {
		model interface{}
		dest  *int64
		query string
		args  []interface{}
	}{
		{&entity.Patient{}, &stats.TotalPatients, "", nil},
		{&entity.Appointment{}, &stats.TotalAppointments, "", nil},
		{&entity.Visit{}, &stats.TotalVisits, "", nil},
		{&entity.Prescription{}, &stats.TotalPrescriptions, "", nil},
		{&entity.HealthRecord{}, &stats.TotalHealthRecords, "", nil},
		{&entity.Appointment{}, &stats.TodaysAppointments, "appointment_date = ? AND status != ?",
			[]interface{}{today.Format("2006-01-02"), entity.AppointmentStatusCancelled}},
		{&entity.Visit{}, &stats.WeeklyVisits, "visit_date >= ?", []interface{}{weekAgo}},
	}

	for _, c := range counts {
		query := db.Model(c.model)
		if c.query != "" {
			query = query.Where(c.query, c.args...)
		}
		if err := query.Count(c.dest).Error; err != nil {
			return nil, err
		}
	}
	return &stats, nil
}

func (r *analyticsRepository) GenderCounts(db *gorm.DB) ([]entity.LabelCount, error) {
	var rows []entity.LabelCount
	err := db.Model(&entity.Patient{}).
		Select("COALESCE(NULLIF(gender, ''), 'Unknown') AS label, COUNT(*) AS count").
		Group("label").
		Order("count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *analyticsRepository) PatientAges(db *gorm.DB) ([]int, error) {
	var ages []int
	err := db.Model(&entity.Patient{}).Where("age IS NOT NULL").Pluck("age", &ages).Error
	if err != nil {
		return nil, err
	}
	return ages, nil
}

func (r *analyticsRepository) TopConditions(db *gorm.DB, limit int) ([]entity.LabelCount, error) {
	var rows []entity.LabelCount
	err := db.Raw(`
		SELECT cond AS label, COUNT(*) AS count
		FROM patients, jsonb_array_elements_text(COALESCE(medical_conditions, '[]'::jsonb)) AS cond
		GROUP BY cond
		ORDER BY count DESC, label ASC
		LIMIT ?`, limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *analyticsRepository) AppointmentStatusCounts(db *gorm.DB, since time.Time) ([]entity.LabelCount, error) {
	var rows []entity.LabelCount
	err := db.Model(&entity.Appointment{}).
		Select("status AS label, COUNT(*) AS count").
		Where("appointment_date >= ?", since.Format("2006-01-02")).
		Group("status").
		Order("count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *analyticsRepository) AppointmentDailyCounts(db *gorm.DB, since time.Time) ([]entity.LabelCount, error) {
	var rows []entity.LabelCount
	err := db.Model(&entity.Appointment{}).
		Select("to_char(appointment_date, 'YYYY-MM-DD') AS label, COUNT(*) AS count").
		Where("appointment_date >= ?", since.Format("2006-01-02")).
		Group("label").
		Order("label ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *analyticsRepository) CountVisitsSince(db *gorm.DB, since time.Time) (int64, error) {
	var total int64
	err := db.Model(&entity.Visit{}).Where("visit_date >= ?", since.Format("2006-01-02")).Count(&total).Error
	return total, err
}

func (r *analyticsRepository) TopDiagnoses(db *gorm.DB, since time.Time, limit int) ([]entity.LabelCount, error) {
	var rows []entity.LabelCount
	err := db.Raw(`
		SELECT d AS label, COUNT(*) AS count
		FROM visits, jsonb_array_elements_text(COALESCE(diagnosis, '[]'::jsonb)) AS d
		WHERE visit_date >= ?
		GROUP BY d
		ORDER BY count DESC, label ASC
		LIMIT ?`, since.Format("2006-01-02"), limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *analyticsRepository) VisitMonthlyCounts(db *gorm.DB, since time.Time) ([]entity.LabelCount, error) {
	var rows []entity.LabelCount
	err := db.Model(&entity.Visit{}).
		Select("to_char(visit_date, 'YYYY-MM') AS label, COUNT(*) AS count").
		Where("visit_date >= ?", since.Format("2006-01-02")).
		Group("label").
		Order("label ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *analyticsRepository) CountPrescriptions(db *gorm.DB, since *time.Time) (int64, error) {
	var total int64
	query := db.Model(&entity.Prescription{})
	if since != nil {
		query = query.Where("prescription_date >= ?", *since)
	}
	err := query.Count(&total).Error
	return total, err
}

func (r *analyticsRepository) TopMedications(db *gorm.DB, limit int) ([]entity.LabelCount, error) {
	var rows []entity.LabelCount
	err := db.Raw(`
		SELECT m->>'medication_name' AS label, COUNT(*) AS count
		FROM prescriptions, jsonb_array_elements(medications) AS m
		GROUP BY label
		ORDER BY count DESC, label ASC
		LIMIT ?`, limit).Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// MetricTrend aggregates one metric column per day. column must come from
// entity.ColumnName; it is interpolated into the query.
func (r *analyticsRepository) MetricTrend(db *gorm.DB, column string, since time.Time) ([]entity.TrendPoint, error) {
	var rows []entity.TrendPoint
	err := db.Model(&entity.HealthRecord{}).
		Select("to_char(timestamp, 'YYYY-MM-DD') AS date, "+
			"AVG("+column+") AS average, MIN("+column+") AS min, MAX("+column+") AS max, COUNT(*) AS count").
		Where("timestamp >= ? AND "+column+" IS NOT NULL", since).
		Group("date").
		Order("date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *analyticsRepository) LatestMatching(db *gorm.DB, condition string, args ...interface{}) ([]entity.HealthRecord, error) {
	var records []entity.HealthRecord
	latest := db.Model(&entity.HealthRecord{}).
		Select("DISTINCT ON (patient_id) *").
		Where(condition, args...).
		Order("patient_id, timestamp DESC")

	err := db.Table("(?) AS latest", latest).
		Preload("Patient").
		Order("timestamp DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
