package usecase

import (
	"testing"
	"time"

	"github.com/deringirish/PHMS/internal/delivery/dto"
	"github.com/deringirish/PHMS/internal/domain/entity"
	"github.com/deringirish/PHMS/internal/domain/metric"
	"github.com/deringirish/PHMS/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestParseTimestamp(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)

	t.Run("Blank Falls Back To Now", func(t *testing.T) {
		assert.Equal(t, now, ParseTimestamp("  ", now))
	})

	t.Run("Garbage Falls Back To Now", func(t *testing.T) {
		assert.Equal(t, now, ParseTimestamp("yesterday", now))
	})

	t.Run("Zoned Input Normalized To UTC", func(t *testing.T) {
		got := ParseTimestamp("2024-03-10T10:00:00+02:00", now)
		assert.Equal(t, time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC), got)
	})

	t.Run("Zone-less Input Taken As UTC", func(t *testing.T) {
		assert.Equal(t, time.Date(2024, 3, 10, 10, 15, 0, 0, time.UTC), ParseTimestamp("2024-03-10T10:15", now))
		assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), ParseTimestamp("2024-03-10", now))
	})
}

func TestReportTimestamp(t *testing.T) {
	got := reportTimestamp(map[string]interface{}{service.TimestampKey: "2024-02-01 08:00"})
	require.NotNil(t, got)
	assert.Equal(t, time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC), *got)

	assert.Nil(t, reportTimestamp(map[string]interface{}{service.TimestampKey: ""}))
	assert.Nil(t, reportTimestamp(map[string]interface{}{service.TimestampKey: 42.0}))
	assert.Nil(t, reportTimestamp(map[string]interface{}{}))
}

func TestAllowedFile(t *testing.T) {
	allowed := []string{"pdf", ".png", "jpg", "jpeg"}

	assert.True(t, AllowedFile("report.pdf", allowed))
	assert.True(t, AllowedFile("SCAN.PNG", allowed))
	assert.True(t, AllowedFile("photo.JpEg", allowed))
	assert.False(t, AllowedFile("notes.txt", allowed))
	assert.False(t, AllowedFile("pdf", allowed))
	assert.False(t, AllowedFile("", allowed))
}

func TestSecureFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"report.pdf", "report.pdf"},
		{"../../etc/passwd", "passwd"},
		{`C:\Users\me\lab results.pdf`, "lab_results.pdf"},
		{"blood test (1).png", "blood_test_1.png"},
		{"..", "report"},
		{"", "report"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SecureFilename(tt.in))
		})
	}
}

func TestReportObjectKey(t *testing.T) {
	patientID := uuid.MustParse("6f1c2d3e-4a5b-4c6d-8e7f-901234567890")
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	key := ReportObjectKey(patientID, "my scan.pdf", now)
	assert.Equal(t, "reports/6f1c2d3e-4a5b-4c6d-8e7f-901234567890/20240102_030405_my_scan.pdf", key)
}

func TestReportContentType(t *testing.T) {
	assert.Equal(t, "application/pdf", ReportContentType("a.PDF", "text/plain"))
	assert.Equal(t, "image/jpeg", ReportContentType("a.jpg", ""))
	assert.Equal(t, "image/webp", ReportContentType("a.webp", "image/webp"))
	assert.Equal(t, "application/octet-stream", ReportContentType("a", ""))
}

func TestNewAdmin(t *testing.T) {
	admin, err := NewAdmin("  drsmith ", " Dr Smith ", "Passw0rd!", "Secr3t!!")
	require.NoError(t, err)

	assert.Equal(t, "drsmith", admin.UserID)
	assert.Equal(t, "Dr Smith", admin.Name)
	assert.True(t, admin.Active())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("Passw0rd!")))
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.SecretPasswordHash), []byte("Secr3t!!")))
	assert.NotEqual(t, admin.PasswordHash, admin.SecretPasswordHash)
}

func appointmentAt(clock string, duration int, status entity.AppointmentStatus) entity.Appointment {
	return entity.Appointment{
		ID:              uuid.New(),
		AppointmentTime: clock,
		Duration:        duration,
		Status:          status,
	}
}

func TestHasConflict(t *testing.T) {
	existing := []entity.Appointment{
		appointmentAt("09:00", 30, entity.AppointmentStatusScheduled),
		appointmentAt("11:00", 60, entity.AppointmentStatusCancelled),
	}

	tests := []struct {
		name     string
		clock    string
		duration int
		want     bool
	}{
		{"Overlapping Start", "09:15", 30, true},
		{"Covers Existing", "08:30", 120, true},
		{"Adjacent After", "09:30", 30, false},
		{"Adjacent Before", "08:30", 30, false},
		{"Cancelled Slot Is Free", "11:00", 30, false},
		{"Default Duration", "08:45", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			candidate := &entity.Appointment{AppointmentTime: tt.clock, Duration: tt.duration}
			got, err := HasConflict(candidate, existing)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("Ignores Itself", func(t *testing.T) {
		self := existing[0]
		got, err := HasConflict(&self, existing)
		require.NoError(t, err)
		assert.False(t, got)
	})

	t.Run("Invalid Time", func(t *testing.T) {
		_, err := HasConflict(&entity.Appointment{AppointmentTime: "9am"}, existing)
		assert.Error(t, err)
	})
}

func TestValidateWindow(t *testing.T) {
	tests := []struct {
		name     string
		clock    string
		duration int
		want     error
	}{
		{"Same Day", "09:00", 30, nil},
		{"Ends Exactly At Midnight", "23:30", 30, nil},
		{"Default Duration Crosses Midnight", "23:45", 0, ErrCrossesMidnight},
		{"Long Evening Procedure", "20:00", 480, ErrCrossesMidnight},
		{"Unreadable Time", "9am", 30, ErrInvalidTimeFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWindow(&entity.Appointment{AppointmentTime: tt.clock, Duration: tt.duration})
			assert.Equal(t, tt.want, err)
		})
	}
}

func TestBuildAppointmentFilter(t *testing.T) {
	today := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)

	t.Run("Default Is Upcoming Scheduled", func(t *testing.T) {
		filter, name, err := BuildAppointmentFilter(nil, today)
		require.NoError(t, err)
		assert.Equal(t, dto.AppointmentFilterUpcoming, name)
		assert.Equal(t, today, *filter.From)
		assert.Nil(t, filter.To)
		assert.Equal(t, entity.AppointmentStatusScheduled, filter.Status)
		assert.Equal(t, upcomingAppointmentsLimit, filter.Limit)
	})

	t.Run("Today With Doctor", func(t *testing.T) {
		doctorID := uuid.New()
		filter, name, err := BuildAppointmentFilter(&dto.AppointmentListQuery{
			Filter:   dto.AppointmentFilterToday,
			DoctorID: doctorID.String(),
		}, today)
		require.NoError(t, err)
		assert.Equal(t, dto.AppointmentFilterToday, name)
		assert.Equal(t, today, *filter.From)
		assert.Equal(t, today, *filter.To)
		assert.Equal(t, doctorID, *filter.DoctorID)
	})

	t.Run("Week Keeps Status", func(t *testing.T) {
		filter, _, err := BuildAppointmentFilter(&dto.AppointmentListQuery{
			Filter: dto.AppointmentFilterWeek,
			Status: string(entity.AppointmentStatusCompleted),
		}, today)
		require.NoError(t, err)
		assert.Equal(t, today.AddDate(0, 0, 7), *filter.To)
		assert.Equal(t, entity.AppointmentStatusCompleted, filter.Status)
	})

	t.Run("Month", func(t *testing.T) {
		filter, _, err := BuildAppointmentFilter(&dto.AppointmentListQuery{Filter: dto.AppointmentFilterMonth}, today)
		require.NoError(t, err)
		assert.Equal(t, today.AddDate(0, 0, 30), *filter.To)
	})

	t.Run("Bad Doctor ID", func(t *testing.T) {
		_, _, err := BuildAppointmentFilter(&dto.AppointmentListQuery{DoctorID: "nope"}, today)
		assert.ErrorIs(t, err, ErrDoctorNotFound)
	})
}

func TestMonthRange(t *testing.T) {
	now := time.Date(2024, 2, 14, 12, 0, 0, 0, time.UTC)

	first, last, err := MonthRange("", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), first)
	assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), last)

	first, last, err = MonthRange("2023-12", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), first)
	assert.Equal(t, time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC), last)

	_, _, err = MonthRange("12-2023", now)
	assert.ErrorIs(t, err, ErrInvalidMonthFormat)
}

func TestAgeGroups(t *testing.T) {
	groups := AgeGroups([]int{0, 17, 18, 29, 30, 44, 45, 59, 60, 101})

	want := []entity.LabelCount{
		{Label: "0-17", Count: 2},
		{Label: "18-29", Count: 2},
		{Label: "30-44", Count: 2},
		{Label: "45-59", Count: 2},
		{Label: "60+", Count: 2},
	}
	assert.Equal(t, want, groups)

	empty := AgeGroups(nil)
	assert.Len(t, empty, 5)
	for _, g := range empty {
		assert.Zero(t, g.Count)
	}
}

func TestPercentage(t *testing.T) {
	assert.Equal(t, 0.0, Percentage(3, 0))
	assert.Equal(t, 50.0, Percentage(1, 2))
	assert.Equal(t, 33.33, Percentage(1, 3))
	assert.Equal(t, 66.67, Percentage(2, 3))
}

func alertRecord(values metric.Values) entity.HealthRecord {
	record := entity.HealthRecord{
		ID:        uuid.New(),
		PatientID: uuid.New(),
		Timestamp: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Patient:   &entity.Patient{FullName: "Jane Doe"},
	}
	record.SetMetrics(values)
	return record
}

func TestCollectAlerts(t *testing.T) {
	pressure := make([]entity.HealthRecord, 12)
	for i := range pressure {
		pressure[i] = alertRecord(metric.Values{metric.BPSystolic: 150, metric.BPDiastolic: 95})
	}
	sugar := make([]entity.HealthRecord, 15)
	for i := range sugar {
		sugar[i] = alertRecord(metric.Values{metric.SugarFasting: 130})
	}

	t.Run("Blood Pressure Capped Then Sugar Fills", func(t *testing.T) {
		alerts := CollectAlerts(pressure, sugar)
		require.Len(t, alerts, maxCriticalAlerts)
		for _, a := range alerts[:maxBloodPressureAlerts] {
			assert.Equal(t, metric.AlertHighBloodPressure, a.Type)
		}
		for _, a := range alerts[maxBloodPressureAlerts:] {
			assert.Equal(t, metric.AlertHighFastingSugar, a.Type)
		}
		assert.Equal(t, "150/95 mmHg", alerts[0].Value)
		assert.Equal(t, "Jane Doe", alerts[0].PatientName)
	})

	t.Run("Sugar Only Capped At Total", func(t *testing.T) {
		many := append(append([]entity.HealthRecord{}, sugar...), sugar...)
		alerts := CollectAlerts(nil, many)
		assert.Len(t, alerts, maxCriticalAlerts)
	})

	t.Run("Empty", func(t *testing.T) {
		assert.Empty(t, CollectAlerts(nil, nil))
	})
}

func TestPaginate(t *testing.T) {
	page, limit := Paginate(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, defaultAuditPageSize, limit)

	page, limit = Paginate(3, 1000)
	assert.Equal(t, 3, page)
	assert.Equal(t, maxAuditPageSize, limit)
}
