package metric

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCriticalAlerts(t *testing.T) {
	t.Run("Normal Reading", func(t *testing.T) {
		alerts := CriticalAlerts(Values{BPSystolic: 120, BPDiastolic: 80, SugarFasting: 95})
		assert.Empty(t, alerts)
	})

	t.Run("High Systolic Only", func(t *testing.T) {
		alerts := CriticalAlerts(Values{BPSystolic: 140})
		assert.Equal(t, []Alert{{Type: AlertHighBloodPressure, Value: "140/- mmHg"}}, alerts)
	})

	t.Run("High Diastolic", func(t *testing.T) {
		alerts := CriticalAlerts(Values{BPSystolic: 130, BPDiastolic: 92.5})
		assert.Equal(t, "130/92.5 mmHg", alerts[0].Value)
	})

	t.Run("Both Thresholds", func(t *testing.T) {
		alerts := CriticalAlerts(Values{BPSystolic: 150, BPDiastolic: 95, SugarFasting: 130})
		assert.Len(t, alerts, 2)
		assert.Equal(t, AlertHighBloodPressure, alerts[0].Type)
		assert.Equal(t, AlertHighFastingSugar, alerts[1].Type)
		assert.Equal(t, "130 mg/dL", alerts[1].Value)
	})
}
