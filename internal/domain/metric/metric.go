// Package metric holds the fixed health metric schema and the pure pipeline
// that turns raw input into stored values and stored values into chart series.
package metric

// Metric is one named numeric health measurement.
type Metric string

const (
	// Vitals
	BPSystolic  Metric = "bpSystolic"
	BPDiastolic Metric = "bpDiastolic"
	HeartRate   Metric = "heartRate"
	Temperature Metric = "temperature"
	SpO2        Metric = "spo2"
	Weight      Metric = "weight"
	Height      Metric = "height"
	BMI         Metric = "bmi"

	// Glucose
	SugarFasting     Metric = "sugarFasting"
	SugarPostMeal    Metric = "sugarPostMeal"
	RandomBloodSugar Metric = "randomBloodSugar"
	HbA1c            Metric = "hbA1c"

	// Lipid profile
	CholesterolTotal Metric = "cholesterolTotal"
	CholesterolHDL   Metric = "cholesterolHDL"
	CholesterolLDL   Metric = "cholesterolLDL"
	Triglycerides    Metric = "triglycerides"
	VLDL             Metric = "vldl"

	// Kidney
	SerumCreatinine Metric = "serumCreatinine"
	BloodUrea       Metric = "bloodUrea"
	BUN             Metric = "bun"
	EGFR            Metric = "eGFR"

	// Liver
	SGPTALT             Metric = "sgptAlt"
	SGOTAST             Metric = "sgotAst"
	AlkalinePhosphatase Metric = "alkalinePhosphatase"
	TotalBilirubin      Metric = "totalBilirubin"
	DirectBilirubin     Metric = "directBilirubin"
	IndirectBilirubin   Metric = "indirectBilirubin"

	// Electrolytes
	Sodium    Metric = "sodium"
	Potassium Metric = "potassium"
	Chloride  Metric = "chloride"

	// CBC
	Hemoglobin          Metric = "hemoglobin"
	TotalLeukocyteCount Metric = "totalLeukocyteCount"
	PlateletCount       Metric = "plateletCount"
	RBCCount            Metric = "rbcCount"
	PCV                 Metric = "pcv"
	MCV                 Metric = "mcv"

	// Thyroid
	TSH Metric = "tsh"
	T3  Metric = "t3"
	T4  Metric = "t4"

	// Vitamins
	VitaminD   Metric = "vitaminD"
	VitaminB12 Metric = "vitaminB12"
)

// NotesKey is the only non-numeric key accepted alongside metrics.
const NotesKey = "notes"

// All lists every metric in display order.
var All = []Metric{
	BPSystolic, BPDiastolic, HeartRate, Temperature, SpO2, Weight, Height, BMI,
	SugarFasting, SugarPostMeal, RandomBloodSugar, HbA1c,
	CholesterolTotal, CholesterolHDL, CholesterolLDL, Triglycerides, VLDL,
	SerumCreatinine, BloodUrea, BUN, EGFR,
	SGPTALT, SGOTAST, AlkalinePhosphatase, TotalBilirubin, DirectBilirubin, IndirectBilirubin,
	Sodium, Potassium, Chloride,
	Hemoglobin, TotalLeukocyteCount, PlateletCount, RBCCount, PCV, MCV,
	TSH, T3, T4,
	VitaminD, VitaminB12,
}

var known = func() map[Metric]struct{} {
	m := make(map[Metric]struct{}, len(All))
	for _, metric := range All {
		m[metric] = struct{}{}
	}
	return m
}()

// Parse returns the metric with the exact given name.
func Parse(name string) (Metric, bool) {
	m := Metric(name)
	_, ok := known[m]
	return m, ok
}

func (m Metric) Valid() bool {
	_, ok := known[m]
	return ok
}

func (m Metric) String() string {
	return string(m)
}

// Values maps metrics to their recorded value.
type Values map[Metric]float64

// Get returns the value of m and whether it is present.
func (v Values) Get(m Metric) (float64, bool) {
	f, ok := v[m]
	return f, ok
}

// Ptr returns a pointer to a copy of the value of m, or nil when absent.
func (v Values) Ptr(m Metric) *float64 {
	f, ok := v[m]
	if !ok {
		return nil
	}
	return &f
}

// Strings returns the values keyed by metric name.
func (v Values) Strings() map[string]float64 {
	out := make(map[string]float64, len(v))
	for m, f := range v {
		out[string(m)] = f
	}
	return out
}
