package service

import (
	"testing"
	"time"

	"github.com/deringirish/PHMS/internal/domain/metric"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChartRenderer_RenderGroup(t *testing.T) {
	data := metric.Format([]metric.Point{
		{Timestamp: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Values: metric.Values{metric.BPSystolic: 128, metric.BPDiastolic: 84}},
		{Timestamp: time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC), Values: metric.Values{metric.HeartRate: 70}},
	})
	spec, ok := metric.LookupGroup("bloodPressure")
	require.True(t, ok)

	html, err := NewChartRenderer().RenderGroup(spec, data.Labels, data.Groups["bloodPressure"])
	require.NoError(t, err)

	out := string(html)
	assert.Contains(t, out, "<html")
	assert.Contains(t, out, "Blood Pressure")
	assert.Contains(t, out, "2024-01-09")
	assert.Contains(t, out, "Systolic")
}
