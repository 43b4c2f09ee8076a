package util

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"epiportal-server/models"
)

// RenderChartHTML renders a chart payload as a standalone echarts line-chart
// HTML page. The data zoom slider starts at the payload's initial view
// window so the page opens on the recent portion of the fetch range.
func RenderChartHTML(payload *models.ChartPayload, w io.Writer) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Indicator Dashboard",
			Width:     "1200px",
			Height:    "600px",
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithDataZoomOpts(opts.DataZoom{
			Type:  "slider",
			Start: initialViewStartPercent(payload),
			End:   100,
		}),
	)

	line.SetXAxis(payload.DayLabels)
	for _, dataset := range payload.Datasets {
		points := make([]opts.LineData, len(dataset.Data))
		for i, value := range dataset.Data {
			if value != nil {
				points[i] = opts.LineData{Value: *value}
			} else {
				points[i] = opts.LineData{Value: nil}
			}
		}
		line.AddSeries(dataset.Label, points,
			charts.WithLineStyleOpts(opts.LineStyle{Color: dataset.BorderColor}),
			charts.WithItemStyleOpts(opts.ItemStyle{Color: dataset.BorderColor}),
		)
	}
	return line.Render(w)
}

// initialViewStartPercent locates the initial view window's start on the
// timeline as a percentage for the data zoom slider.
func initialViewStartPercent(payload *models.ChartPayload) float32 {
	if len(payload.DayLabels) == 0 || payload.InitialViewStart == "" {
		return 0
	}
	for i, label := range payload.DayLabels {
		if label >= payload.InitialViewStart {
			return float32(i) / float32(len(payload.DayLabels)) * 100
		}
	}
	return 0
}
