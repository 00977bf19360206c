package metric

import (
	"math"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitize(t *testing.T) {
	t.Run("Drops Unknown Keys", func(t *testing.T) {
		reading, err := Sanitize(map[string]interface{}{
			"heartRate":   "72",
			"favouriteTV": "90",
			"patientId":   "abc",
		})

		require.NoError(t, err)
		assert.Equal(t, Values{HeartRate: 72}, reading.Values)
	})

	t.Run("Coerces Numbers And Numeric Strings", func(t *testing.T) {
		reading, err := Sanitize(map[string]interface{}{
			"bpSystolic":   120,
			"bpDiastolic":  int64(80),
			"temperature":  float32(36.5),
			"sugarFasting": " 98.4 ",
			"hbA1c":        json.Number("5.6"),
		})

		require.NoError(t, err)
		assert.Equal(t, 120.0, reading.Values[BPSystolic])
		assert.Equal(t, 80.0, reading.Values[BPDiastolic])
		assert.Equal(t, 36.5, reading.Values[Temperature])
		assert.Equal(t, 98.4, reading.Values[SugarFasting])
		assert.Equal(t, 5.6, reading.Values[HbA1c])
	})

	t.Run("Drops Unparseable Values", func(t *testing.T) {
		reading, err := Sanitize(map[string]interface{}{
			"weight":    "seventy",
			"height":    "",
			"tsh":       nil,
			"t3":        true,
			"t4":        []int{1},
			"heartRate": "NaN",
			"sodium":    "140",
		})

		require.NoError(t, err)
		assert.Equal(t, Values{Sodium: 140}, reading.Values)
	})

	t.Run("No Whitelisted Key Fails", func(t *testing.T) {
		_, err := Sanitize(map[string]interface{}{"foo": 1, "bar": "2"})
		assert.ErrorIs(t, err, ErrMissingMetric)

		_, err = Sanitize(map[string]interface{}{})
		assert.ErrorIs(t, err, ErrMissingMetric)
	})

	t.Run("Notes Alone Do Not Count", func(t *testing.T) {
		reading, err := Sanitize(map[string]interface{}{"notes": "patient felt dizzy"})

		assert.ErrorIs(t, err, ErrMissingMetric)
		assert.Equal(t, "patient felt dizzy", reading.Notes)
	})

	t.Run("Only Unparseable Metrics Fails", func(t *testing.T) {
		_, err := Sanitize(map[string]interface{}{"heartRate": "fast", "notes": "n"})
		assert.ErrorIs(t, err, ErrMissingMetric)
	})

	t.Run("Keeps Trimmed Notes", func(t *testing.T) {
		reading, err := Sanitize(map[string]interface{}{"spo2": 97, "notes": "  after walk  "})

		require.NoError(t, err)
		assert.Equal(t, "after walk", reading.Notes)
	})

	t.Run("Idempotent On Whitelisted Input", func(t *testing.T) {
		first, err := Sanitize(map[string]interface{}{
			"weight":      "70",
			"height":      175,
			"vitaminB12":  "410.5",
			"notes":       "fasting",
			"unknownTest": 3,
		})
		require.NoError(t, err)

		second, err := Sanitize(first.Map())
		require.NoError(t, err)

		assert.Equal(t, first, second)
	})
}

func TestToFloat(t *testing.T) {
	cases := []struct {
		name  string
		input interface{}
		want  float64
		ok    bool
	}{
		{"Float", 1.5, 1.5, true},
		{"Int", 7, 7, true},
		{"Uint", uint(3), 3, true},
		{"String", "12.25", 12.25, true},
		{"Negative String", "-4", -4, true},
		{"Empty String", "", 0, false},
		{"Word", "abc", 0, false},
		{"Infinity", math.Inf(1), 0, false},
		{"Nil", nil, 0, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := ToFloat(tc.input)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParse(t *testing.T) {
	m, ok := Parse("eGFR")
	assert.True(t, ok)
	assert.Equal(t, EGFR, m)

	_, ok = Parse("egfr")
	assert.False(t, ok, "names are case sensitive")

	_, ok = Parse(NotesKey)
	assert.False(t, ok, "notes is not a metric")

	assert.Len(t, All, 41)
}
