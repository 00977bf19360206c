package service

import (
	"bytes"

	"github.com/deringirish/PHMS/internal/domain/metric"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/samber/lo"
)

// ChartRenderer turns one formatted chart group into a standalone HTML page.
type ChartRenderer interface {
	RenderGroup(spec metric.GroupSpec, labels []string, data metric.GroupData) ([]byte, error)
}

type chartRenderer struct{}

func NewChartRenderer() ChartRenderer {
	return &chartRenderer{}
}

func (r *chartRenderer) RenderGroup(spec metric.GroupSpec, labels []string, data metric.GroupData) ([]byte, error) {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: spec.Title,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(len(spec.Series) > 1),
			Top:  "bottom",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: spec.Unit,
		}),
	)

	line.SetXAxis(labels)
	for _, series := range spec.Series {
		// "-" is the echarts placeholder for a gap
		points := lo.Map(data[series.Key], func(v *float64, _ int) opts.LineData {
			if v == nil {
				return opts.LineData{Value: "-"}
			}
			return opts.LineData{Value: *v}
		})
		line.AddSeries(series.Label, points)
	}
	line.SetSeriesOptions(
		charts.WithLineChartOpts(opts.LineChart{
			Smooth:     opts.Bool(true),
			ShowSymbol: opts.Bool(true),
		}),
	)

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
