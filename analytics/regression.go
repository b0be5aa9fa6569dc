package analytics

import "fmt"

// ModelSummary is the descriptive report of a simple least-squares fit. It is
// produced once at startup over the full dataset and displayed as-is, the way
// a pre-computed report artifact would be. It is never refitted per filter
// change.
type ModelSummary struct {
	DepVar       string
	ExogVar      string
	Observations int
	Intercept    float64
	Slope        float64
	RSquared     float64
	AdjRSquared  float64
	FStatistic   float64
}

// FitLinearRegression fits y = intercept + slope*x by ordinary least squares
// over the view, skipping rows where either column is missing. At least three
// usable rows are required for the adjusted statistics to exist.
func (e *FilterEngine) FitLinearRegression(view *FilteredView, xMetric, yMetric string) (*ModelSummary, error) {
	if !IsMetricColumn(xMetric) {
		return nil, fmt.Errorf("regression: unknown metric column %q", xMetric)
	}
	if !IsMetricColumn(yMetric) {
		return nil, fmt.Errorf("regression: unknown metric column %q", yMetric)
	}

	// Pairwise extraction: walk the view once so x and y stay aligned even
	// when one of the columns has gaps.
	var xs, ys []float64
	for i := 0; i < view.Len(); i++ {
		r := view.Record(i)
		x, okX := e.data.metricValue(r, xMetric)
		y, okY := e.data.metricValue(r, yMetric)
		if !okX || !okY {
			continue
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}

	n := len(xs)
	if n < 3 {
		return nil, fmt.Errorf("regression: need at least 3 complete rows, have %d", n)
	}

	var sumX, sumY float64
	for i := 0; i < n; i++ {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var sxx, sxy float64
	for i := 0; i < n; i++ {
		dx := xs[i] - meanX
		sxx += dx * dx
		sxy += dx * (ys[i] - meanY)
	}
	if sxx == 0 {
		return nil, fmt.Errorf("regression: %s has zero variance", xMetric)
	}

	slope := sxy / sxx
	intercept := meanY - slope*meanX

	var ssRes, ssTot float64
	for i := 0; i < n; i++ {
		fitted := intercept + slope*xs[i]
		ssRes += (ys[i] - fitted) * (ys[i] - fitted)
		ssTot += (ys[i] - meanY) * (ys[i] - meanY)
	}

	summary := &ModelSummary{
		DepVar:       yMetric,
		ExogVar:      xMetric,
		Observations: n,
		Intercept:    intercept,
		Slope:        slope,
	}
	if ssTot == 0 {
		// y is constant, the model explains nothing and there is nothing
		// to explain
		return summary, nil
	}

	r2 := 1 - ssRes/ssTot
	summary.RSquared = r2
	summary.AdjRSquared = 1 - (1-r2)*float64(n-1)/float64(n-2)
	if r2 < 1 {
		summary.FStatistic = r2 / ((1 - r2) / float64(n-2))
	}
	return summary, nil
}
