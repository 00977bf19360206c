package entity

import (
	"time"

	"github.com/deringirish/PHMS/internal/domain/metric"

	"github.com/google/uuid"
)

// SourceType tags where a health record came from.
type SourceType string

const (
	SourceManual   SourceType = "MANUAL"
	SourceReportAI SourceType = "REPORT_AI"
)

// HealthRecord is an immutable set of measurements for one patient.
// Every metric column is nullable; at least one is set.
type HealthRecord struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID  uuid.UUID  `gorm:"type:uuid;not null;index:idx_health_records_patient_ts,priority:1" json:"patient_id"`
	Timestamp  time.Time  `gorm:"not null;index:idx_health_records_patient_ts,priority:2,sort:desc;index" json:"timestamp"`
	SourceType SourceType `gorm:"type:varchar(20);not null;default:'MANUAL'" json:"source_type"`
	Notes      string     `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`

	BPSystolic  *float64 `json:"bp_systolic,omitempty"`
	BPDiastolic *float64 `json:"bp_diastolic,omitempty"`
	HeartRate   *float64 `json:"heart_rate,omitempty"`
	Temperature *float64 `json:"temperature,omitempty"`
	SpO2        *float64 `gorm:"column:spo2" json:"spo2,omitempty"`
	Weight      *float64 `json:"weight,omitempty"`
	Height      *float64 `json:"height,omitempty"`
	BMI         *float64 `gorm:"column:bmi" json:"bmi,omitempty"`

	SugarFasting     *float64 `json:"sugar_fasting,omitempty"`
	SugarPostMeal    *float64 `json:"sugar_post_meal,omitempty"`
	RandomBloodSugar *float64 `json:"random_blood_sugar,omitempty"`
	HbA1c            *float64 `gorm:"column:hba1c" json:"hba1c,omitempty"`

	CholesterolTotal *float64 `json:"cholesterol_total,omitempty"`
	CholesterolHDL   *float64 `gorm:"column:cholesterol_hdl" json:"cholesterol_hdl,omitempty"`
	CholesterolLDL   *float64 `gorm:"column:cholesterol_ldl" json:"cholesterol_ldl,omitempty"`
	Triglycerides    *float64 `json:"triglycerides,omitempty"`
	VLDL             *float64 `gorm:"column:vldl" json:"vldl,omitempty"`

	SerumCreatinine *float64 `json:"serum_creatinine,omitempty"`
	BloodUrea       *float64 `json:"blood_urea,omitempty"`
	BUN             *float64 `gorm:"column:bun" json:"bun,omitempty"`
	EGFR            *float64 `gorm:"column:egfr" json:"egfr,omitempty"`

	SGPTALT             *float64 `gorm:"column:sgpt_alt" json:"sgpt_alt,omitempty"`
	SGOTAST             *float64 `gorm:"column:sgot_ast" json:"sgot_ast,omitempty"`
	AlkalinePhosphatase *float64 `json:"alkaline_phosphatase,omitempty"`
	TotalBilirubin      *float64 `json:"total_bilirubin,omitempty"`
	DirectBilirubin     *float64 `json:"direct_bilirubin,omitempty"`
	IndirectBilirubin   *float64 `json:"indirect_bilirubin,omitempty"`

	Sodium    *float64 `json:"sodium,omitempty"`
	Potassium *float64 `json:"potassium,omitempty"`
	Chloride  *float64 `json:"chloride,omitempty"`

	Hemoglobin          *float64 `json:"hemoglobin,omitempty"`
	TotalLeukocyteCount *float64 `json:"total_leukocyte_count,omitempty"`
	PlateletCount       *float64 `json:"platelet_count,omitempty"`
	RBCCount            *float64 `gorm:"column:rbc_count" json:"rbc_count,omitempty"`
	PCV                 *float64 `gorm:"column:pcv" json:"pcv,omitempty"`
	MCV                 *float64 `gorm:"column:mcv" json:"mcv,omitempty"`

	TSH *float64 `gorm:"column:tsh" json:"tsh,omitempty"`
	T3  *float64 `gorm:"column:t3" json:"t3,omitempty"`
	T4  *float64 `gorm:"column:t4" json:"t4,omitempty"`

	VitaminD   *float64 `gorm:"column:vitamin_d" json:"vitamin_d,omitempty"`
	VitaminB12 *float64 `gorm:"column:vitamin_b12" json:"vitamin_b12,omitempty"`

	// Relationships
	Patient *Patient `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"patient,omitempty"`
}

func (HealthRecord) TableName() string {
	return "health_records"
}

// column maps a metric onto its struct field.
func (r *HealthRecord) column(m metric.Metric) **float64 {
	switch m {
	case metric.BPSystolic:
		return &r.BPSystolic
	case metric.BPDiastolic:
		return &r.BPDiastolic
	case metric.HeartRate:
		return &r.HeartRate
	case metric.Temperature:
		return &r.Temperature
	case metric.SpO2:
		return &r.SpO2
	case metric.Weight:
		return &r.Weight
	case metric.Height:
		return &r.Height
	case metric.BMI:
		return &r.BMI
	case metric.SugarFasting:
		return &r.SugarFasting
	case metric.SugarPostMeal:
		return &r.SugarPostMeal
	case metric.RandomBloodSugar:
		return &r.RandomBloodSugar
	case metric.HbA1c:
		return &r.HbA1c
	case metric.CholesterolTotal:
		return &r.CholesterolTotal
	case metric.CholesterolHDL:
		return &r.CholesterolHDL
	case metric.CholesterolLDL:
		return &r.CholesterolLDL
	case metric.Triglycerides:
		return &r.Triglycerides
	case metric.VLDL:
		return &r.VLDL
	case metric.SerumCreatinine:
		return &r.SerumCreatinine
	case metric.BloodUrea:
		return &r.BloodUrea
	case metric.BUN:
		return &r.BUN
	case metric.EGFR:
		return &r.EGFR
	case metric.SGPTALT:
		return &r.SGPTALT
	case metric.SGOTAST:
		return &r.SGOTAST
	case metric.AlkalinePhosphatase:
		return &r.AlkalinePhosphatase
	case metric.TotalBilirubin:
		return &r.TotalBilirubin
	case metric.DirectBilirubin:
		return &r.DirectBilirubin
	case metric.IndirectBilirubin:
		return &r.IndirectBilirubin
	case metric.Sodium:
		return &r.Sodium
	case metric.Potassium:
		return &r.Potassium
	case metric.Chloride:
		return &r.Chloride
	case metric.Hemoglobin:
		return &r.Hemoglobin
	case metric.TotalLeukocyteCount:
		return &r.TotalLeukocyteCount
	case metric.PlateletCount:
		return &r.PlateletCount
	case metric.RBCCount:
		return &r.RBCCount
	case metric.PCV:
		return &r.PCV
	case metric.MCV:
		return &r.MCV
	case metric.TSH:
		return &r.TSH
	case metric.T3:
		return &r.T3
	case metric.T4:
		return &r.T4
	case metric.VitaminD:
		return &r.VitaminD
	case metric.VitaminB12:
		return &r.VitaminB12
	}
	return nil
}

// Metrics returns the recorded (non-null) values.
func (r *HealthRecord) Metrics() metric.Values {
	values := make(metric.Values)
	for _, m := range metric.All {
		if col := r.column(m); col != nil && *col != nil {
			values[m] = **col
		}
	}
	return values
}

// SetMetrics overwrites every metric column from v; metrics absent from v
// become null.
func (r *HealthRecord) SetMetrics(v metric.Values) {
	for _, m := range metric.All {
		if col := r.column(m); col != nil {
			*col = v.Ptr(m)
		}
	}
}

// Value returns a single metric.
func (r *HealthRecord) Value(m metric.Metric) (float64, bool) {
	col := r.column(m)
	if col == nil || *col == nil {
		return 0, false
	}
	return **col, true
}

// ColumnName returns the database column backing m.
func ColumnName(m metric.Metric) (string, bool) {
	name, ok := metricColumns[m]
	return name, ok
}

var metricColumns = map[metric.Metric]string{
	metric.BPSystolic:          "bp_systolic",
	metric.BPDiastolic:         "bp_diastolic",
	metric.HeartRate:           "heart_rate",
	metric.Temperature:         "temperature",
	metric.SpO2:                "spo2",
	metric.Weight:              "weight",
	metric.Height:              "height",
	metric.BMI:                 "bmi",
	metric.SugarFasting:        "sugar_fasting",
	metric.SugarPostMeal:       "sugar_post_meal",
	metric.RandomBloodSugar:    "random_blood_sugar",
	metric.HbA1c:               "hba1c",
	metric.CholesterolTotal:    "cholesterol_total",
	metric.CholesterolHDL:      "cholesterol_hdl",
	metric.CholesterolLDL:      "cholesterol_ldl",
	metric.Triglycerides:       "triglycerides",
	metric.VLDL:                "vldl",
	metric.SerumCreatinine:     "serum_creatinine",
	metric.BloodUrea:           "blood_urea",
	metric.BUN:                 "bun",
	metric.EGFR:                "egfr",
	metric.SGPTALT:             "sgpt_alt",
	metric.SGOTAST:             "sgot_ast",
	metric.AlkalinePhosphatase: "alkaline_phosphatase",
	metric.TotalBilirubin:      "total_bilirubin",
	metric.DirectBilirubin:     "direct_bilirubin",
	metric.IndirectBilirubin:   "indirect_bilirubin",
	metric.Sodium:              "sodium",
	metric.Potassium:           "potassium",
	metric.Chloride:            "chloride",
	metric.Hemoglobin:          "hemoglobin",
	metric.TotalLeukocyteCount: "total_leukocyte_count",
	metric.PlateletCount:       "platelet_count",
	metric.RBCCount:            "rbc_count",
	metric.PCV:                 "pcv",
	metric.MCV:                 "mcv",
	metric.TSH:                 "tsh",
	metric.T3:                  "t3",
	metric.T4:                  "t4",
	metric.VitaminD:            "vitamin_d",
	metric.VitaminB12:          "vitamin_b12",
}
