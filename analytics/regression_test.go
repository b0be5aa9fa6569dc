package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitLinearRegressionPerfectLine(t *testing.T) {
	records := []Record{
		{MRP: 10, OutletSales: 25},
		{MRP: 20, OutletSales: 45},
		{MRP: 30, OutletSales: 65},
		{MRP: 40, OutletSales: 85},
	}
	engine := NewFilterEngine(NewDataset(records, 2025))

	m, err := engine.FitLinearRegression(engine.FullView(), ColItemMRP, ColOutletSales)
	require.NoError(t, err)

	assert.Equal(t, 4, m.Observations)
	assert.InDelta(t, 2.0, m.Slope, 1e-9)
	assert.InDelta(t, 5.0, m.Intercept, 1e-9)
	assert.InDelta(t, 1.0, m.RSquared, 1e-9)
	assert.InDelta(t, 1.0, m.AdjRSquared, 1e-9)
}

func TestFitLinearRegressionNoisyData(t *testing.T) {
	records := []Record{
		{MRP: 10, OutletSales: 30},
		{MRP: 20, OutletSales: 38},
		{MRP: 30, OutletSales: 70},
		{MRP: 40, OutletSales: 79},
		{MRP: 50, OutletSales: 115},
	}
	engine := NewFilterEngine(NewDataset(records, 2025))

	m, err := engine.FitLinearRegression(engine.FullView(), ColItemMRP, ColOutletSales)
	require.NoError(t, err)

	assert.Greater(t, m.RSquared, 0.9)
	assert.Less(t, m.RSquared, 1.0)
	assert.Greater(t, m.RSquared, m.AdjRSquared)
	assert.Greater(t, m.FStatistic, 0.0)
	assert.Greater(t, m.Slope, 0.0)
}

func TestFitLinearRegressionSkipsMissingRows(t *testing.T) {
	records := []Record{
		{Weight: fptr(10), OutletSales: 25},
		{Weight: nil, OutletSales: 999}, // no weight, excluded from the fit
		{Weight: fptr(20), OutletSales: 45},
		{Weight: fptr(30), OutletSales: 65},
	}
	engine := NewFilterEngine(NewDataset(records, 2025))

	m, err := engine.FitLinearRegression(engine.FullView(), ColItemWeight, ColOutletSales)
	require.NoError(t, err)
	assert.Equal(t, 3, m.Observations)
	assert.InDelta(t, 1.0, m.RSquared, 1e-9)
}

func TestFitLinearRegressionErrors(t *testing.T) {
	engine := newTestEngine()

	_, err := engine.FitLinearRegression(engine.FullView(), "bogus", ColOutletSales)
	assert.Error(t, err)

	small := NewFilterEngine(NewDataset([]Record{{MRP: 1, OutletSales: 2}}, 2025))
	_, err = small.FitLinearRegression(small.FullView(), ColItemMRP, ColOutletSales)
	assert.Error(t, err)

	flat := NewFilterEngine(NewDataset([]Record{
		{MRP: 5, OutletSales: 1}, {MRP: 5, OutletSales: 2}, {MRP: 5, OutletSales: 3},
	}, 2025))
	_, err = flat.FitLinearRegression(flat.FullView(), ColItemMRP, ColOutletSales)
	assert.Error(t, err)
}
