package analytics

import (
	"fmt"
	"math"
	"sort"
)

// NumericSummary holds descriptive statistics for one numeric column over a
// view. Quantiles carries the standard set used by the boxplots and the text
// report.
type NumericSummary struct {
	Count     int
	Missing   int // view rows without a value for this column
	Average   float64
	Median    float64
	Min       float64
	Max       float64
	Quantiles map[float64]float64
	IQR       float64
	Outliers  []float64
}

var summaryQuantiles = []float64{0.01, 0.05, 0.1, 0.25, 0.75, 0.9, 0.95, 0.99}

// SummarizeMetric computes descriptive statistics of a metric column over the
// view. Rows with a missing value are skipped and counted. A view with no
// usable values yields a zero summary, not an error.
func (e *FilterEngine) SummarizeMetric(view *FilteredView, metric string) (*NumericSummary, error) {
	values, missing, err := e.MetricValues(view, metric)
	if err != nil {
		return nil, err
	}
	s := &NumericSummary{Missing: missing, Quantiles: map[float64]float64{}}
	if len(values) == 0 {
		return s, nil
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	sum := 0.0
	for _, v := range values {
		sum += v
	}

	s.Count = len(values)
	s.Average = sum / float64(len(values))
	s.Min = sorted[0]
	s.Max = sorted[len(sorted)-1]
	if len(sorted)%2 == 0 {
		s.Median = (sorted[len(sorted)/2-1] + sorted[len(sorted)/2]) / 2
	} else {
		s.Median = sorted[len(sorted)/2]
	}
	for _, p := range summaryQuantiles {
		s.Quantiles[p] = Quantile(sorted, p)
	}
	s.IQR = s.Quantiles[0.75] - s.Quantiles[0.25]
	s.Outliers = findOutliers(values, s.Quantiles[0.25], s.Quantiles[0.75], s.IQR)
	return s, nil
}

// MetricValues extracts the present values of a metric column across a view,
// in view order, along with the number of rows where it was missing.
func (e *FilterEngine) MetricValues(view *FilteredView, metric string) (values []float64, missing int, err error) {
	if !IsMetricColumn(metric) {
		return nil, 0, fmt.Errorf("unknown metric column %q", metric)
	}
	for i := 0; i < view.Len(); i++ {
		v, ok := e.data.metricValue(view.Record(i), metric)
		if !ok {
			missing++
			continue
		}
		values = append(values, v)
	}
	return values, missing, nil
}

// Quantile interpolates the p-quantile of an ascending-sorted slice.
func Quantile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	pos := p * float64(len(sorted)-1)
	floor := math.Floor(pos)
	ceil := math.Ceil(pos)
	if floor == ceil {
		return sorted[int(pos)]
	}
	lower := sorted[int(floor)]
	upper := sorted[int(ceil)]
	return lower + (pos-floor)*(upper-lower)
}

// findOutliers flags values outside 1.5 IQR of the quartiles.
func findOutliers(values []float64, q1, q3, iqr float64) []float64 {
	lower := q1 - 1.5*iqr
	upper := q3 + 1.5*iqr
	outliers := []float64{}
	for _, v := range values {
		if v < lower || v > upper {
			outliers = append(outliers, v)
		}
	}
	return outliers
}

// HistogramBin is one equal-width bin of a metric distribution.
type HistogramBin struct {
	Start float64
	End   float64
	Count int
}

// Histogram splits the metric's observed range into equal-width buckets.
// Rows with a missing value are skipped. When every value is identical the
// result collapses into a single bin.
func (e *FilterEngine) Histogram(view *FilteredView, metric string, bins int) ([]HistogramBin, error) {
	if bins <= 0 {
		return nil, fmt.Errorf("histogram: bins must be positive, got %d", bins)
	}
	values, _, err := e.MetricValues(view, metric)
	if err != nil {
		return nil, err
	}
	if len(values) == 0 {
		return []HistogramBin{}, nil
	}

	min, max := values[0], values[0]
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if min == max {
		return []HistogramBin{{Start: min, End: max, Count: len(values)}}, nil
	}

	width := (max - min) / float64(bins)
	result := make([]HistogramBin, bins)
	for i := range result {
		result[i].Start = min + float64(i)*width
		result[i].End = result[i].Start + width
	}
	for _, v := range values {
		idx := int((v - min) / width)
		if idx >= bins {
			idx = bins - 1 // max value lands in the last bin
		}
		result[idx].Count++
	}
	return result, nil
}
