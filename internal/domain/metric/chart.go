package metric

import (
	"sort"
	"time"

	"github.com/goccy/go-json"
	"github.com/samber/lo"
)

const (
	labelLayout  = "2006-01-02"
	missingLabel = "N/A"
)

// SeriesSpec names one series of a chart group and the metric it plots.
type SeriesSpec struct {
	Key    string
	Label  string
	Metric Metric
}

// GroupSpec is one chart panel.
type GroupSpec struct {
	Key    string
	Title  string
	Unit   string
	Series []SeriesSpec
}

// Groups is the fixed chart layout, in display order.
var Groups = []GroupSpec{
	{Key: "sugar", Title: "Blood Sugar", Unit: "mg/dL", Series: []SeriesSpec{
		{Key: "fasting", Label: "Fasting", Metric: SugarFasting},
		{Key: "postMeal", Label: "Post Meal", Metric: SugarPostMeal},
		{Key: "random", Label: "Random", Metric: RandomBloodSugar},
		{Key: "hbA1c", Label: "HbA1c", Metric: HbA1c},
	}},
	{Key: "bloodPressure", Title: "Blood Pressure", Unit: "mmHg", Series: []SeriesSpec{
		{Key: "systolic", Label: "Systolic", Metric: BPSystolic},
		{Key: "diastolic", Label: "Diastolic", Metric: BPDiastolic},
		{Key: "heartRate", Label: "Heart Rate", Metric: HeartRate},
	}},
	{Key: "lipids", Title: "Lipid Profile", Unit: "mg/dL", Series: []SeriesSpec{
		{Key: "total", Label: "Total Cholesterol", Metric: CholesterolTotal},
		{Key: "hdl", Label: "HDL", Metric: CholesterolHDL},
		{Key: "ldl", Label: "LDL", Metric: CholesterolLDL},
		{Key: "triglycerides", Label: "Triglycerides", Metric: Triglycerides},
		{Key: "vldl", Label: "VLDL", Metric: VLDL},
	}},
	{Key: "weight", Title: "Weight & BMI", Unit: "", Series: []SeriesSpec{
		{Key: "weight", Label: "Weight (kg)", Metric: Weight},
		{Key: "height", Label: "Height (cm)", Metric: Height},
		{Key: "bmi", Label: "BMI", Metric: BMI},
	}},
	{Key: "kidney", Title: "Kidney Function", Unit: "", Series: []SeriesSpec{
		{Key: "creatinine", Label: "Serum Creatinine", Metric: SerumCreatinine},
		{Key: "urea", Label: "Blood Urea", Metric: BloodUrea},
		{Key: "bun", Label: "BUN", Metric: BUN},
		{Key: "egfr", Label: "eGFR", Metric: EGFR},
	}},
	{Key: "thyroid", Title: "Thyroid", Unit: "", Series: []SeriesSpec{
		{Key: "tsh", Label: "TSH", Metric: TSH},
		{Key: "t3", Label: "T3", Metric: T3},
		{Key: "t4", Label: "T4", Metric: T4},
	}},
	{Key: "liver", Title: "Liver Function", Unit: "", Series: []SeriesSpec{
		{Key: "sgpt", Label: "SGPT/ALT", Metric: SGPTALT},
		{Key: "sgot", Label: "SGOT/AST", Metric: SGOTAST},
		{Key: "alp", Label: "Alkaline Phosphatase", Metric: AlkalinePhosphatase},
		{Key: "bilirubin", Label: "Total Bilirubin", Metric: TotalBilirubin},
	}},
	{Key: "cbc", Title: "Complete Blood Count", Unit: "", Series: []SeriesSpec{
		{Key: "hemoglobin", Label: "Hemoglobin", Metric: Hemoglobin},
		{Key: "wbc", Label: "WBC", Metric: TotalLeukocyteCount},
		{Key: "platelets", Label: "Platelets", Metric: PlateletCount},
		{Key: "rbc", Label: "RBC", Metric: RBCCount},
	}},
}

// LookupGroup finds a group spec by key.
func LookupGroup(key string) (GroupSpec, bool) {
	return lo.Find(Groups, func(g GroupSpec) bool { return g.Key == key })
}

// Point is one record as seen by the formatter. A zero Timestamp means the
// record has none.
type Point struct {
	Timestamp time.Time
	Values    Values
}

// GroupData maps series keys to values aligned with ChartData.Labels;
// nil marks a record without that metric.
type GroupData map[string][]*float64

// ChartData is the formatter output. Every group in Groups is always present.
type ChartData struct {
	Labels []string
	Groups map[string]GroupData
}

// MarshalJSON flattens groups next to labels:
// {"labels": [...], "sugar": {"fasting": [...]}, ...}.
func (c ChartData) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(c.Groups)+1)
	labels := c.Labels
	if labels == nil {
		labels = []string{}
	}
	out["labels"] = labels
	for key, group := range c.Groups {
		out[key] = group
	}
	return json.Marshal(out)
}

// Format sorts points ascending by timestamp and projects every group into
// series aligned index-for-index with the date labels. Points are not mutated.
func Format(points []Point) ChartData {
	sorted := make([]Point, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.Before(sorted[j].Timestamp)
	})

	data := ChartData{
		Labels: lo.Map(sorted, func(p Point, _ int) string {
			if p.Timestamp.IsZero() {
				return missingLabel
			}
			return p.Timestamp.Format(labelLayout)
		}),
		Groups: make(map[string]GroupData, len(Groups)),
	}

	for _, group := range Groups {
		gd := make(GroupData, len(group.Series))
		for _, series := range group.Series {
			gd[series.Key] = lo.Map(sorted, func(p Point, _ int) *float64 {
				return p.Values.Ptr(series.Metric)
			})
		}
		data.Groups[group.Key] = gd
	}

	return data
}

// HasData reports whether any series in the group holds a non-null value.
func HasData(group GroupData) bool {
	for _, values := range group {
		if lo.SomeBy(values, func(v *float64) bool { return v != nil }) {
			return true
		}
	}
	return false
}
