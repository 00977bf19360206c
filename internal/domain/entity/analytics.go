package entity

// LabelCount is one bucket of a grouped count.
type LabelCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

type OverviewStats struct {
	TotalPatients      int64 `json:"total_patients"`
	TotalAppointments  int64 `json:"total_appointments"`
	TotalVisits        int64 `json:"total_visits"`
	TotalPrescriptions int64 `json:"total_prescriptions"`
	TotalHealthRecords int64 `json:"total_health_records"`
	TodaysAppointments int64 `json:"todays_appointments"`
	WeeklyVisits       int64 `json:"weekly_visits"`
}

// TrendPoint aggregates one metric over a single day.
type TrendPoint struct {
	Date    string  `json:"date"`
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Count   int64   `json:"count"`
}
