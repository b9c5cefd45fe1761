package renderer

import (
	"errors"
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/gonum/floats"

	"github.com/pthm-cable/agesim/telemetry"
)

// ErrNotEnoughData is returned when the history has fewer than two points.
var ErrNotEnoughData = errors.New("not enough data to plot")

// ChartTitle heads the history chart.
const ChartTitle = "Mean Age and Organism Size over Time"

var (
	ageColor  = drawing.Color{R: 220, G: 20, B: 60, A: 255}
	sizeColor = drawing.Color{R: 30, G: 90, B: 200, A: 255}
)

// RenderChart writes a PNG plot of mean age (left axis) and organism size
// (right axis) against step.
func RenderChart(w io.Writer, h *telemetry.History, width, height int) error {
	if h == nil || h.Len() < 2 {
		return ErrNotEnoughData
	}

	xMin, xMax := h.Steps[0], h.Steps[h.Len()-1]
	if xMax <= xMin {
		xMax = xMin + 1
	}
	ageMax := floats.Max(h.MeanAges)
	if ageMax <= 0 {
		ageMax = 1
	}
	sizeMax := floats.Max(h.Sizes) + 10

	graph := chart.Chart{
		Title:  ChartTitle,
		Width:  width,
		Height: height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 10, Bottom: 10},
		},
		XAxis: chart.XAxis{
			Name:  "Step",
			Range: &chart.ContinuousRange{Min: xMin, Max: xMax},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: chart.YAxis{
			Name:  "Age",
			Range: &chart.ContinuousRange{Min: 0, Max: ageMax},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.1e", v.(float64))
			},
		},
		YAxisSecondary: chart.YAxis{
			Name:  "Size",
			Range: &chart.ContinuousRange{Min: 0, Max: sizeMax},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Mean age",
				XValues: h.Steps,
				YValues: h.MeanAges,
				Style:   chart.Style{StrokeColor: ageColor, StrokeWidth: 2},
			},
			chart.ContinuousSeries{
				Name:    "Size",
				YAxis:   chart.YAxisSecondary,
				XValues: h.Steps,
				YValues: h.Sizes,
				Style:   chart.Style{StrokeColor: sizeColor, StrokeWidth: 2},
			},
		},
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	return nil
}
