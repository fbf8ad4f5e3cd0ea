package chartjs

import (
	"math"

	"github.com/angas/solarvalue-go/hours"
)

const NoOfHours = 24
const ColorYellow = "#ffc107d4"
const ColorBlue = "#2196f3d4"

// NewChart returns a two-dataset line chart with market hour labels
// H1..H24, left axis for the first dataset, right for the second.
func NewChart(title string) Chart {
	labels := make([]string, NoOfHours)
	for i := 0; i < NoOfHours; i++ {
		labels[i] = hours.FormatLabel(uint8(i + 1))
	}

	chart := Chart{
		Type: "line",
		Data: ChartData{
			Labels: labels,
			Datasets: []ChartDataset{
				{
					Data:        make([]*float64, NoOfHours),
					BorderWidth: 1,
					Tension:     0.4,
					Fill:        true,
					BorderColor: ColorYellow,
					YAxisID:     "YAxis1",
				},
				{
					Data:        make([]*float64, NoOfHours),
					BorderWidth: 1,
					Tension:     0.4,
					Fill:        true,
					BorderColor: ColorBlue,
					YAxisID:     "YAxis2",
				},
			},
		},
		Options: ChartOptions{
			Responsive: true,
			Plugins: ChartPlugins{
				Legend: ChartLegend{Display: false},
				Title:  ChartTitle{Display: false},
			},
			Scales: map[string]ChartScale{
				"YAxis1": {
					Type:     "linear",
					Display:  true,
					Position: "left",
					Title:    ChartScaleTitle{Display: true, Text: "", Color: ColorYellow}},
				"YAxis2": {
					Type:     "linear",
					Display:  true,
					Position: "right",
					Title:    ChartScaleTitle{Display: true, Text: "", Color: ColorBlue}},
			},
		},
	}

	if title != "" {
		chart.Options.Plugins.Title = ChartTitle{Display: true, Text: title}
	}

	return chart
}

func (cs ChartScale) WithTitle(title string) ChartScale {
	cs.Title.Text = title
	return cs
}

func (cs ChartScale) WithMinAndMax(min, max float64) ChartScale {
	cs.Min = &min
	cs.Max = &max
	return cs
}

func FixedFloat64(num float64, precision int) *float64 {
	p := math.Pow(10, float64(precision))
	rounded := math.Round(num * p)
	result := rounded / p
	return &result
}
