package plot

import (
	"bytes"
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// DrawCategoryBar renders a category bar chart to PNG bytes.
func DrawCategoryBar(labels []string, y []float64, nameYAxis, nameGraph string) ([]byte, error) {
	if len(labels) == 0 || len(labels) != len(y) {
		return nil, fmt.Errorf("need matching labels and values, got %d/%d", len(labels), len(y))
	}
	return DrawPlotBar(NewCategoryBarData(labels, y, nameYAxis, nameGraph))
}

// DrawRangeBar renders a histogram-style bar chart to PNG bytes.
func DrawRangeBar(xStart, xEnd, y []float64, nameYAxis, nameGraph string) ([]byte, error) {
	if len(xStart) == 0 || len(xStart) != len(xEnd) || len(xStart) != len(y) {
		return nil, fmt.Errorf("need matching range bounds and values")
	}
	return DrawPlotBar(NewRangeBarData(xStart, xEnd, y, nameYAxis, nameGraph))
}

func DrawPlotBar(data dataForGraph) ([]byte, error) {
	barValues := data.generateBarValues()
	paddingX := customizePaddingXBottom(barValues)
	width, height := data.calculateChartDimensions(100)

	bar := chart.BarChart{}
	bar.Title = data.GetNameGraph()
	bar.Background = chart.Style{
		FontSize:    160,
		StrokeColor: chart.ColorBlack,
		Padding: chart.Box{
			Bottom: paddingX,
			Top:    50,
		},
	}
	bar.Height = height + 50
	bar.Width = width + paddingX + 50
	bar.BarWidth = 60
	bar.Bars = barValues
	bar.YAxis = chart.YAxis{
		Name: data.getNameYAxis(),
		Range: &chart.ContinuousRange{
			Min: 0.0,
			Max: findMaxValue(data.getYValues()),
		},
		Style: chart.Style{
			StrokeWidth: 2,
			StrokeColor: chart.ColorBlack,
			FontSize:    17,
		},
		GridMinorStyle: chart.Style{
			StrokeColor: chart.ColorBlack,
			StrokeWidth: 1,
			DotWidth:    1,
		},
		GridMajorStyle: chart.Style{
			StrokeColor:     chart.ColorBlack,
			StrokeWidth:     1,
			DotWidth:        1,
			StrokeDashArray: []float64{5.0, 5.0},
		},
	}
	bar.XAxis = chart.Style{
		StrokeWidth:         2,
		StrokeColor:         chart.ColorBlack,
		TextRotationDegrees: 88,
		FontSize:            17,
	}

	buffer := bytes.NewBuffer([]byte{})
	err := bar.Render(chart.PNG, buffer)
	if err != nil {
		return nil, fmt.Errorf("error rendering chart: %v", err)
	}
	return buffer.Bytes(), nil
}

// DrawDensityPlot renders a normalized density curve to PNG bytes. The y
// values are scaled so the area under the curve is 1.
func DrawDensityPlot(xValues []float64, yValues []float64) ([]byte, error) {
	if len(xValues) < 2 || len(xValues) != len(yValues) {
		return nil, fmt.Errorf("need at least two matching points")
	}

	binWidth := xValues[1] - xValues[0]
	totalArea := 0.0
	for _, y := range yValues {
		totalArea += y * binWidth
	}
	if totalArea == 0 {
		return nil, fmt.Errorf("zero total area, nothing to draw")
	}

	normalizedY := make([]float64, len(yValues))
	for i, y := range yValues {
		normalizedY[i] = y / totalArea
	}

	series := &chart.ContinuousSeries{
		XValues: xValues,
		YValues: normalizedY,
		Style: chart.Style{
			StrokeColor: drawing.ColorBlue,
			StrokeWidth: 2,
		},
	}
	fillSeries := &chart.ContinuousSeries{
		XValues: xValues,
		YValues: normalizedY,
		Style: chart.Style{
			StrokeColor: drawing.ColorBlue,
			FillColor:   drawing.ColorRed.WithAlpha(100),
			StrokeWidth: 0,
		},
	}

	graph := chart.Chart{
		Title: "Density Distribution",
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: 120,
			},
			FillColor: drawing.ColorWhite,
		},
		Width:  2048,
		Height: 1024,
		XAxis: chart.XAxis{
			Name:  "Values",
			Style: chart.Style{TextRotationDegrees: 88},
			ValueFormatter: func(v interface{}) string {
				if vf, isFloat := v.(float64); isFloat {
					return fmt.Sprintf("%.1f", vf)
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			Name: "Density",
			ValueFormatter: func(v interface{}) string {
				if vf, isFloat := v.(float64); isFloat {
					return fmt.Sprintf("%.6f", vf)
				}
				return ""
			},
		},
		Series: []chart.Series{
			fillSeries, // fill first, line on top
			series,
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	graph.Background.StrokeWidth = 1
	graph.Background.StrokeColor = drawing.ColorFromHex("efefef")

	err := graph.Render(chart.PNG, buffer)
	if err != nil {
		return nil, fmt.Errorf("error rendering chart: %v", err)
	}
	return buffer.Bytes(), nil
}

// calculateGridStep picks a readable grid interval for a given maximum value.
func calculateGridStep(maxValue float64) float64 {
	if maxValue <= 0 {
		return 0
	}
	if maxValue < 1e-10 {
		return 1e-10
	}

	magnitude := math.Pow(10, math.Floor(math.Log10(maxValue)))
	normalized := maxValue / magnitude

	var step float64
	switch {
	case normalized <= 1:
		step = 0.2
	case normalized <= 2:
		step = 0.5
	case normalized <= 5:
		step = 1.0
	default:
		step = 2.0
	}

	finalStep := step * magnitude
	// round big steps to clean numbers
	if finalStep >= 1000 {
		return math.Round(finalStep/100) * 100
	}
	if finalStep >= 100 {
		return math.Round(finalStep/10) * 10
	}
	return finalStep
}

func findMaxValue(y []float64) float64 {
	if len(y) == 0 {
		return 0
	}
	max := y[0]
	for _, v := range y {
		if v > max {
			max = v
		}
	}
	return max
}

func customizePaddingXBottom(values []chart.Value) int {
	count := 0
	for _, v := range values {
		if len(v.Label) > count {
			count = len(v.Label)
		}
	}
	return count * 8
}
