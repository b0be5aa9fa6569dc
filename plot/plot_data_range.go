package plot

import (
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// rangeBarData feeds DrawPlotBar with one bar per value range, used for the
// PNG export of histograms. Labels render as "start - end".
type rangeBarData struct {
	xStart, xEnd []float64
	yValues      []float64
	nameYAxis    string
	nameGraph    string
}

func NewRangeBarData(xStart, xEnd, y []float64, nameYAxis, nameGraph string) rangeBarData {
	return rangeBarData{
		xStart:    xStart,
		xEnd:      xEnd,
		yValues:   y,
		nameYAxis: nameYAxis,
		nameGraph: nameGraph,
	}
}

func (d rangeBarData) GetNameGraph() string {
	return d.nameGraph
}
func (d rangeBarData) getNameYAxis() string {
	return d.nameYAxis
}
func (d rangeBarData) getYValues() []float64 {
	return d.yValues
}
func (d rangeBarData) lenXValues() int {
	return len(d.xStart)
}

func (d rangeBarData) calculateChartDimensions(minBarWidth float64) (width, height int) {
	converted := NewCategoryBarData(d.rangeLabels(), d.yValues, d.nameYAxis, d.nameGraph)
	return converted.calculateChartDimensions(minBarWidth)
}

func (d rangeBarData) rangeLabels() []string {
	labels := make([]string, len(d.xStart))
	for i := range d.xStart {
		labels[i] = fmt.Sprintf("%.1f - %.1f", d.xStart[i], d.xEnd[i])
	}
	return labels
}

func (d rangeBarData) generateBarValues() []chart.Value {
	var bars []chart.Value
	labels := d.rangeLabels()
	for i := range labels {
		bars = append(bars, chart.Value{
			Value: d.yValues[i],
			Label: labels[i],
			Style: chart.Style{
				FillColor: drawing.ColorLime.WithAlpha(40),
			},
		})
	}
	return bars
}
