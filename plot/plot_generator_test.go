package plot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDrawCategoryBar(t *testing.T) {
	labels := []string{"Tier 1", "Tier 2", "Tier 3"}
	values := []float64{1200.5, 980.25, 1750}

	png, err := DrawCategoryBar(labels, values, "Total Sales ($)", "Total Sales by City Tier")
	require.NoError(t, err)
	assert.NotEmpty(t, png)
	// PNG magic bytes
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4])
}

func TestDrawCategoryBarMismatchedInput(t *testing.T) {
	_, err := DrawCategoryBar([]string{"a"}, []float64{1, 2}, "y", "title")
	assert.Error(t, err)

	_, err = DrawCategoryBar(nil, nil, "y", "title")
	assert.Error(t, err)
}

func TestDrawRangeBar(t *testing.T) {
	starts := []float64{0, 10, 20, 30}
	ends := []float64{10, 20, 30, 40}
	counts := []float64{5, 12, 7, 2}

	png, err := DrawRangeBar(starts, ends, counts, "Frequency", "Sales Distribution")
	require.NoError(t, err)
	assert.NotEmpty(t, png)
}

func TestDrawDensityPlot(t *testing.T) {
	xValues := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	yValues := []float64{1, 2, 3, 4, 4, 3, 2, 1}

	png, err := DrawDensityPlot(xValues, yValues)
	require.NoError(t, err)
	assert.NotEmpty(t, png)
}

func TestDrawDensityPlotDegenerateInput(t *testing.T) {
	_, err := DrawDensityPlot([]float64{1}, []float64{1})
	assert.Error(t, err)

	_, err = DrawDensityPlot([]float64{1, 2}, []float64{0, 0})
	assert.Error(t, err)
}

func TestCalculateGridStep(t *testing.T) {
	assert.Equal(t, 0.0, calculateGridStep(0))
	assert.InDelta(t, 200.0, calculateGridStep(1000), 1e-9)
	assert.InDelta(t, 2.0, calculateGridStep(7), 1e-9)
	assert.Greater(t, calculateGridStep(123456), 0.0)
}
