package converter

import (
	"testing"
	"time"

	"github.com/deringirish/PHMS/internal/delivery/dto"
	"github.com/deringirish/PHMS/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitList(t *testing.T) {
	t.Run("Comma Separated", func(t *testing.T) {
		assert.Equal(t, []string{"Hypertension", "Type 2 Diabetes"}, SplitList(" Hypertension, Type 2 Diabetes ,,"))
	})

	t.Run("Multiple Items", func(t *testing.T) {
		assert.Equal(t, []string{"Asthma", "GERD", "Anemia"}, SplitList("Asthma", " ", "GERD, Anemia"))
	})

	t.Run("Empty Input", func(t *testing.T) {
		assert.Equal(t, []string{}, SplitList())
	})
}

func TestMedicationItemsToEntities(t *testing.T) {
	items := []dto.MedicationItem{
		{MedicationName: " Metformin ", Dosage: "500mg ", Frequency: "Twice daily"},
		{MedicationName: "   "},
	}

	meds := MedicationItemsToEntities(items)

	require.Len(t, meds, 1)
	assert.Equal(t, "Metformin", meds[0].MedicationName)
	assert.Equal(t, "500mg", meds[0].Dosage)
	assert.Equal(t, "Twice daily", meds[0].Frequency)
}

func TestHealthRecordToResponse(t *testing.T) {
	sys := 128.0
	record := &entity.HealthRecord{
		ID:          uuid.New(),
		PatientID:   uuid.New(),
		Timestamp:   time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		SourceType:  entity.SourceManual,
		BPSystolic:  &sys,
		BPDiastolic: nil,
	}

	resp := HealthRecordToResponse(record)

	require.NotNil(t, resp)
	assert.Equal(t, "MANUAL", resp.SourceType)
	assert.Equal(t, map[string]float64{"bpSystolic": 128}, resp.Metrics)
	assert.Nil(t, HealthRecordToResponse(nil))
}

func TestAppointmentsByDay(t *testing.T) {
	day1 := time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 6, 4, 0, 0, 0, 0, time.UTC)

	days := AppointmentsByDay([]entity.Appointment{
		{ID: uuid.New(), AppointmentDate: day1, AppointmentTime: "09:00"},
		{ID: uuid.New(), AppointmentDate: day1, AppointmentTime: "10:00"},
		{ID: uuid.New(), AppointmentDate: day2, AppointmentTime: "09:00"},
	})

	assert.Len(t, days["2024-06-03"], 2)
	assert.Len(t, days["2024-06-04"], 1)
}

func TestRecordAlerts(t *testing.T) {
	sys, sugar := 150.0, 130.0
	record := &entity.HealthRecord{
		ID:           uuid.New(),
		PatientID:    uuid.New(),
		BPSystolic:   &sys,
		SugarFasting: &sugar,
		Patient:      &entity.Patient{FullName: "Asha Rao"},
	}

	bp := RecordAlerts(record, "High Blood Pressure")
	require.Len(t, bp, 1)
	assert.Equal(t, "150/- mmHg", bp[0].Value)
	assert.Equal(t, "Asha Rao", bp[0].PatientName)

	glucose := RecordAlerts(record, "High Fasting Sugar")
	require.Len(t, glucose, 1)
	assert.Equal(t, "130 mg/dL", glucose[0].Value)
}
