package analytics

// KeyMetrics is the headline strip of the dashboard, computed over the
// currently filtered view. HasData is false for an empty view, the UI then
// shows "No data" instead of numbers.
type KeyMetrics struct {
	Observations int
	ProductTypes int
	HighestMRP   float64
	MinYear      int
	MaxYear      int
	AvgSales     float64
	TotalSales   float64
	AvgMRP       float64
	HasData      bool
}

// KeyMetrics computes the headline numbers for a view. An empty view is a
// valid input and reports zeros.
func (e *FilterEngine) KeyMetrics(view *FilteredView) KeyMetrics {
	m := KeyMetrics{Observations: view.Len()}
	if view.Len() == 0 {
		return m
	}
	m.HasData = true
	m.ProductTypes = len(view.UniqueValues(ColItemType))

	first := view.Record(0)
	m.HighestMRP = first.MRP
	m.MinYear = first.EstablishmentYear
	m.MaxYear = first.EstablishmentYear

	var sumSales, sumMRP float64
	for i := 0; i < view.Len(); i++ {
		r := view.Record(i)
		if r.MRP > m.HighestMRP {
			m.HighestMRP = r.MRP
		}
		if r.EstablishmentYear < m.MinYear {
			m.MinYear = r.EstablishmentYear
		}
		if r.EstablishmentYear > m.MaxYear {
			m.MaxYear = r.EstablishmentYear
		}
		sumSales += r.OutletSales
		sumMRP += r.MRP
	}
	m.TotalSales = sumSales
	m.AvgSales = sumSales / float64(view.Len())
	m.AvgMRP = sumMRP / float64(view.Len())
	return m
}

// MissingColumnStat reports data completeness for one nullable column.
type MissingColumnStat struct {
	Column     string
	Missing    int
	Percentage float64
}

// MissingValueReport counts missing values per nullable column. It is always
// computed against the full dataset, never a filtered view: completeness is a
// property of the data, not of the user's current exploration.
func (e *FilterEngine) MissingValueReport() []MissingColumnStat {
	report := make([]MissingColumnStat, 0, len(nullableColumns))
	total := e.data.Len()
	for _, col := range nullableColumns {
		missing := 0
		for i := 0; i < total; i++ {
			r := e.data.Record(i)
			var ok bool
			if IsMetricColumn(col) {
				_, ok = e.data.metricValue(r, col)
			} else {
				_, ok = e.data.dimensionValue(r, col)
			}
			if !ok {
				missing++
			}
		}
		pct := 0.0
		if total > 0 {
			pct = float64(missing) / float64(total) * 100
		}
		report = append(report, MissingColumnStat{Column: col, Missing: missing, Percentage: pct})
	}
	return report
}

// PerformanceRow backs the product performance bubble chart: per product type,
// average price against average sales, with volume and visibility alongside.
type PerformanceRow struct {
	ItemType      string
	AvgMRP        float64
	AvgSales      float64
	AvgVisibility float64
	Count         int
}

// PerformanceMatrix profiles each product type in the view. Rows come back
// ordered by descending record count so the biggest bubbles draw first.
func (e *FilterEngine) PerformanceMatrix(view *FilteredView) ([]PerformanceRow, error) {
	counts, err := e.Aggregate(view, []string{ColItemType}, "", OpCount, OrderValueDesc)
	if err != nil {
		return nil, err
	}
	mrp, err := e.Aggregate(view, []string{ColItemType}, ColItemMRP, OpMean, OrderNatural)
	if err != nil {
		return nil, err
	}
	sales, err := e.Aggregate(view, []string{ColItemType}, ColOutletSales, OpMean, OrderNatural)
	if err != nil {
		return nil, err
	}
	visibility, err := e.Aggregate(view, []string{ColItemType}, ColItemVisibility, OpMean, OrderNatural)
	if err != nil {
		return nil, err
	}

	meanByType := func(agg *AggregateResult) map[string]float64 {
		m := map[string]float64{}
		for _, g := range agg.Groups {
			m[g.Label] = g.Value
		}
		return m
	}
	mrpBy := meanByType(mrp)
	salesBy := meanByType(sales)
	visBy := meanByType(visibility)

	rows := make([]PerformanceRow, 0, len(counts.Groups))
	for _, g := range counts.Groups {
		rows = append(rows, PerformanceRow{
			ItemType:      g.Label,
			AvgMRP:        mrpBy[g.Label],
			AvgSales:      salesBy[g.Label],
			AvgVisibility: visBy[g.Label],
			Count:         g.Count,
		})
	}
	return rows, nil
}
