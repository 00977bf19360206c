package metric

import "strconv"

// Critical thresholds flagged on the dashboard and published on record creation.
const (
	HighSystolic     = 140.0
	HighDiastolic    = 90.0
	HighFastingSugar = 125.0
)

const (
	AlertHighBloodPressure = "High Blood Pressure"
	AlertHighFastingSugar  = "High Fasting Sugar"
)

// Alert is a single critical finding in one reading.
type Alert struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// CriticalAlerts lists the thresholds v crosses, blood pressure first.
func CriticalAlerts(v Values) []Alert {
	var alerts []Alert
	sys, hasSys := v.Get(BPSystolic)
	dia, hasDia := v.Get(BPDiastolic)
	if (hasSys && sys >= HighSystolic) || (hasDia && dia >= HighDiastolic) {
		alerts = append(alerts, Alert{
			Type:  AlertHighBloodPressure,
			Value: BloodPressureLabel(v),
		})
	}
	if sugar, ok := v.Get(SugarFasting); ok && sugar >= HighFastingSugar {
		alerts = append(alerts, Alert{
			Type:  AlertHighFastingSugar,
			Value: FormatValue(sugar) + " mg/dL",
		})
	}
	return alerts
}

// BloodPressureLabel renders "sys/dia mmHg" with "-" for a missing side.
func BloodPressureLabel(v Values) string {
	side := func(m Metric) string {
		if f, ok := v.Get(m); ok {
			return FormatValue(f)
		}
		return "-"
	}
	return side(BPSystolic) + "/" + side(BPDiastolic) + " mmHg"
}

// FormatValue prints a metric value without trailing zeros.
func FormatValue(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
