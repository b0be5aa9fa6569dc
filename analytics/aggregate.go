package analytics

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// AggregateOp selects the summary statistic computed per group.
type AggregateOp string

const (
	OpSum   AggregateOp = "sum"
	OpMean  AggregateOp = "mean"
	OpCount AggregateOp = "count"
)

// SortOrder selects how groups are returned. Ranking charts (top categories by
// total sales) want OrderValueDesc, distribution charts (city tier breakdown)
// want OrderNatural. The caller decides per call, the engine supports both.
type SortOrder string

const (
	// OrderValueDesc sorts groups by descending aggregate value.
	OrderValueDesc SortOrder = "value_desc"
	// OrderNatural sorts groups by their key, numerically when every key
	// parses as a number, alphabetically otherwise.
	OrderNatural SortOrder = "natural"
)

// GroupStat is one group of an AggregateResult.
type GroupStat struct {
	Keys  []string // one value per groupBy dimension, in request order
	Label string   // joined keys for display
	Count int
	Sum   float64
	Mean  float64
	Value float64 // the requested op's result, used for sorting and plotting
}

// AggregateResult is an ordered set of grouped summary statistics plus the
// number of view rows excluded because the metric or a groupBy value was
// missing. Excluded rows stay in the view, they are only skipped here.
type AggregateResult struct {
	GroupBy  []string
	Metric   string
	Op       AggregateOp
	Groups   []GroupStat
	Excluded int
}

// Total sums the aggregate values across groups (meaningful for OpSum/OpCount).
func (r *AggregateResult) Total() float64 {
	var t float64
	for _, g := range r.Groups {
		t += g.Value
	}
	return t
}

// Aggregate groups the view's records by the Cartesian combination of the
// groupBy dimensions and computes op over metric within each group. It is
// always computed over the given view, so active filters carry through.
// Unknown column names are programming errors and fail eagerly; an empty view
// yields an empty result without error.
func (e *FilterEngine) Aggregate(view *FilteredView, groupBy []string, metric string, op AggregateOp, order SortOrder) (*AggregateResult, error) {
	if len(groupBy) == 0 {
		return nil, fmt.Errorf("aggregate: at least one groupBy dimension required")
	}
	for _, dim := range groupBy {
		if !IsDimensionColumn(dim) {
			return nil, fmt.Errorf("aggregate: unknown dimension column %q", dim)
		}
	}
	// count needs no metric values, but a named metric must still exist
	if metric != "" && !IsMetricColumn(metric) {
		return nil, fmt.Errorf("aggregate: unknown metric column %q", metric)
	}
	if op != OpCount && metric == "" {
		return nil, fmt.Errorf("aggregate: op %q requires a metric column", op)
	}

	result := &AggregateResult{GroupBy: groupBy, Metric: metric, Op: op}
	grouped := map[string]*GroupStat{}
	groupOrder := []string{}

	for i := 0; i < view.Len(); i++ {
		r := view.Record(i)

		keys := make([]string, len(groupBy))
		missing := false
		for j, dim := range groupBy {
			val, ok := e.data.dimensionValue(r, dim)
			if !ok {
				missing = true
				break
			}
			keys[j] = val
		}
		var metricVal float64
		if !missing && op != OpCount {
			v, ok := e.data.metricValue(r, metric)
			if !ok {
				missing = true
			}
			metricVal = v
		}
		if missing {
			result.Excluded++
			continue
		}

		mapKey := strings.Join(keys, "\x1f")
		g, exists := grouped[mapKey]
		if !exists {
			g = &GroupStat{Keys: keys, Label: strings.Join(keys, " / ")}
			grouped[mapKey] = g
			groupOrder = append(groupOrder, mapKey)
		}
		g.Count++
		g.Sum += metricVal
	}

	for _, k := range groupOrder {
		g := grouped[k]
		if g.Count > 0 {
			g.Mean = g.Sum / float64(g.Count)
		}
		switch op {
		case OpSum:
			g.Value = g.Sum
		case OpMean:
			g.Value = g.Mean
		case OpCount:
			g.Value = float64(g.Count)
		}
		result.Groups = append(result.Groups, *g)
	}

	sortGroups(result.Groups, order)
	return result, nil
}

func sortGroups(groups []GroupStat, order SortOrder) {
	switch order {
	case OrderValueDesc:
		sort.SliceStable(groups, func(i, j int) bool { return groups[i].Value > groups[j].Value })
	case OrderNatural:
		sort.SliceStable(groups, func(i, j int) bool { return naturalLess(groups[i].Keys, groups[j].Keys) })
	}
}

func naturalLess(a, b []string) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] == b[i] {
			continue
		}
		na, errA := strconv.ParseFloat(a[i], 64)
		nb, errB := strconv.ParseFloat(b[i], 64)
		if errA == nil && errB == nil {
			return na < nb
		}
		return a[i] < b[i]
	}
	return len(a) < len(b)
}

// MatrixMetric names a metric column and the aggregate applied to it inside a
// matrix cell.
type MatrixMetric struct {
	Column string
	Op     AggregateOp
}

// MatrixCell is one (dimX, dimY) pair of a multi-dimensional matrix.
type MatrixCell struct {
	X, Y  string
	Size  float64
	Color float64
	Count int
}

// MultiDimensionalMatrix produces one cell per (dimX, dimY) pair present in
// the view. Size and Color each carry the caller-specified aggregate of their
// metric inside the pair's group. Cells come back in natural (dimX, dimY)
// order.
func (e *FilterEngine) MultiDimensionalMatrix(view *FilteredView, dimX, dimY string, size, color MatrixMetric) ([]MatrixCell, error) {
	sizeAgg, err := e.Aggregate(view, []string{dimX, dimY}, size.Column, size.Op, OrderNatural)
	if err != nil {
		return nil, err
	}
	colorAgg, err := e.Aggregate(view, []string{dimX, dimY}, color.Column, color.Op, OrderNatural)
	if err != nil {
		return nil, err
	}

	// A pair may show up in only one aggregation when the other metric is
	// missing for all of its rows. The matrix keeps every pair present in
	// the view, with a zero for the absent aggregate.
	cellByKey := map[string]*MatrixCell{}
	for _, g := range sizeAgg.Groups {
		cellByKey[g.Label] = &MatrixCell{X: g.Keys[0], Y: g.Keys[1], Size: g.Value, Count: g.Count}
	}
	for _, g := range colorAgg.Groups {
		c, ok := cellByKey[g.Label]
		if !ok {
			c = &MatrixCell{X: g.Keys[0], Y: g.Keys[1], Count: g.Count}
			cellByKey[g.Label] = c
		}
		c.Color = g.Value
	}

	cells := make([]MatrixCell, 0, len(cellByKey))
	for _, c := range cellByKey {
		cells = append(cells, *c)
	}
	sort.SliceStable(cells, func(i, j int) bool {
		return naturalLess([]string{cells[i].X, cells[i].Y}, []string{cells[j].X, cells[j].Y})
	})
	return cells, nil
}
