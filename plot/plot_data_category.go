package plot

import (
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// categoryBarData feeds DrawPlotBar with one bar per category label, used for
// the PNG export of the grouped-aggregate charts.
type categoryBarData struct {
	labels    []string
	yValues   []float64
	nameYAxis string
	nameGraph string
}

func NewCategoryBarData(labels []string, y []float64, nameYAxis, nameGraph string) categoryBarData {
	return categoryBarData{
		labels:    labels,
		yValues:   y,
		nameYAxis: nameYAxis,
		nameGraph: nameGraph,
	}
}

func (d categoryBarData) GetNameGraph() string {
	return d.nameGraph
}
func (d categoryBarData) getNameYAxis() string {
	return d.nameYAxis
}
func (d categoryBarData) getYValues() []float64 {
	return d.yValues
}
func (d categoryBarData) lenXValues() int {
	return len(d.labels)
}

func (d categoryBarData) calculateChartDimensions(minBarWidth float64) (width, height int) {
	if len(d.yValues) == 0 || d.lenXValues() <= 0 || minBarWidth <= 0 {
		return 0, 0
	}
	// very few bars need extra stretch or the chart degenerates into a sliver
	stretch := 1.1
	if d.lenXValues() < 2 {
		stretch = 10.0
	} else if d.lenXValues() < 10 {
		stretch = 3.0
	}

	const (
		paddingY     = 100       // room for the Y axis and its labels
		spacingRatio = 0.2       // gap between bars relative to bar width
		aspectRatio  = 9.0 / 16.0
	)

	barSpacing := minBarWidth * spacingRatio
	totalWidth := (minBarWidth+barSpacing)*float64(d.lenXValues()) + paddingY
	width = int(totalWidth*stretch) + paddingY
	height = int(float64(width) * aspectRatio)
	return width, height
}

func (d categoryBarData) generateBarValues() []chart.Value {
	var bars []chart.Value
	for i := range d.labels {
		bars = append(bars, chart.Value{
			Value: d.yValues[i],
			Label: d.labels[i],
			Style: chart.Style{
				FillColor: drawing.ColorPurple.WithAlpha(100),
			},
		})
	}
	return bars
}
