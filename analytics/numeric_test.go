package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantileInterpolation(t *testing.T) {
	sorted := []float64{10, 20, 30, 40}

	assert.Equal(t, 10.0, Quantile(sorted, 0))
	assert.Equal(t, 40.0, Quantile(sorted, 1))
	assert.InDelta(t, 25.0, Quantile(sorted, 0.5), 1e-9)
	assert.InDelta(t, 17.5, Quantile(sorted, 0.25), 1e-9)
	assert.Equal(t, 0.0, Quantile(nil, 0.5))
}

func TestSummarizeMetric(t *testing.T) {
	records := []Record{
		{ItemType: "A", OutletSales: 100},
		{ItemType: "A", OutletSales: 200},
		{ItemType: "A", OutletSales: 300},
		{ItemType: "A", OutletSales: 400},
		{ItemType: "A", OutletSales: 500},
	}
	engine := NewFilterEngine(NewDataset(records, 2025))

	s, err := engine.SummarizeMetric(engine.FullView(), ColOutletSales)
	require.NoError(t, err)

	assert.Equal(t, 5, s.Count)
	assert.Equal(t, 0, s.Missing)
	assert.InDelta(t, 300.0, s.Average, 1e-9)
	assert.InDelta(t, 300.0, s.Median, 1e-9)
	assert.Equal(t, 100.0, s.Min)
	assert.Equal(t, 500.0, s.Max)
	assert.InDelta(t, 200.0, s.Quantiles[0.25], 1e-9)
	assert.InDelta(t, 400.0, s.Quantiles[0.75], 1e-9)
	assert.InDelta(t, 200.0, s.IQR, 1e-9)
	assert.Empty(t, s.Outliers)
}

func TestSummarizeMetricCountsMissing(t *testing.T) {
	engine := newTestEngine()

	s, err := engine.SummarizeMetric(engine.FullView(), ColItemWeight)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 1, s.Missing)
}

func TestSummarizeMetricEmptyView(t *testing.T) {
	engine := newTestEngine()
	empty := engine.Apply(NewFilterSelection().
		Add(ColItemType, "Snacks").
		Add(ColLocationType, "Tier 2"))

	s, err := engine.SummarizeMetric(empty, ColOutletSales)
	require.NoError(t, err)
	assert.Equal(t, 0, s.Count)
	assert.Equal(t, 0.0, s.Average)
}

func TestSummarizeMetricUnknownColumn(t *testing.T) {
	engine := newTestEngine()
	_, err := engine.SummarizeMetric(engine.FullView(), "bogus")
	assert.Error(t, err)
}

func TestHistogram(t *testing.T) {
	records := []Record{
		{OutletSales: 0}, {OutletSales: 1}, {OutletSales: 2},
		{OutletSales: 5}, {OutletSales: 9}, {OutletSales: 10},
	}
	engine := NewFilterEngine(NewDataset(records, 2025))

	bins, err := engine.Histogram(engine.FullView(), ColOutletSales, 5)
	require.NoError(t, err)
	require.Len(t, bins, 5)

	total := 0
	for _, b := range bins {
		total += b.Count
	}
	assert.Equal(t, 6, total)
	assert.Equal(t, 0.0, bins[0].Start)
	assert.Equal(t, 10.0, bins[4].End)
	// the max value must land in the last bin, not fall off the edge
	assert.GreaterOrEqual(t, bins[4].Count, 1)
}

func TestHistogramIdenticalValues(t *testing.T) {
	records := []Record{{OutletSales: 7}, {OutletSales: 7}, {OutletSales: 7}}
	engine := NewFilterEngine(NewDataset(records, 2025))

	bins, err := engine.Histogram(engine.FullView(), ColOutletSales, 50)
	require.NoError(t, err)
	require.Len(t, bins, 1)
	assert.Equal(t, 3, bins[0].Count)
}

func TestHistogramEmptyViewAndBadBins(t *testing.T) {
	engine := newTestEngine()
	empty := engine.Apply(NewFilterSelection().
		Add(ColItemType, "Snacks").
		Add(ColLocationType, "Tier 2"))

	bins, err := engine.Histogram(empty, ColOutletSales, 50)
	require.NoError(t, err)
	assert.Empty(t, bins)

	_, err = engine.Histogram(engine.FullView(), ColOutletSales, 0)
	assert.Error(t, err)
}
