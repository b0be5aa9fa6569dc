package main

import (
	"fmt"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/bigmart/sales_dashboard/analytics"
)

const (
	chartWidth    = "620px"
	chartHeight   = "400px"
	histogramBins = 50
)

func chartInit(title string) []charts.GlobalOpts {
	return []charts.GlobalOpts{
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// chartSalesVsMRP plots every record as a point, one series per store
// category.
func chartSalesVsMRP(engine *analytics.FilterEngine, view *analytics.FilteredView) (*charts.Scatter, error) {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(append(chartInit("Store Sales vs. MRP"),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "Item MRP ($)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Item Outlet Sales ($)"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)...)

	for _, outletType := range view.UniqueValues(analytics.ColOutletType) {
		sub, err := engine.SubView(view, analytics.ColOutletType, outletType)
		if err != nil {
			return nil, err
		}
		points := make([]opts.ScatterData, 0, sub.Len())
		for i := 0; i < sub.Len(); i++ {
			r := sub.Record(i)
			points = append(points, opts.ScatterData{
				Value:      []interface{}{round2(r.MRP), round2(r.OutletSales)},
				SymbolSize: 6,
			})
		}
		scatter.AddSeries(outletType, points)
	}
	return scatter, nil
}

// chartOutletSizePie shows the store size breakdown. Records without a size
// land in an explicit "Unknown" slice instead of being dropped.
func chartOutletSizePie(engine *analytics.FilterEngine, view *analytics.FilteredView) (*charts.Pie, error) {
	agg, err := engine.Aggregate(view, []string{analytics.ColOutletSize}, "", analytics.OpCount, analytics.OrderNatural)
	if err != nil {
		return nil, err
	}

	items := make([]opts.PieData, 0, len(agg.Groups)+1)
	for _, g := range agg.Groups {
		items = append(items, opts.PieData{Name: g.Label, Value: g.Count})
	}
	if agg.Excluded > 0 {
		items = append(items, opts.PieData{Name: "Unknown", Value: agg.Excluded})
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(chartInit("Store Size Distribution")...)
	pie.AddSeries("Outlet Size", items).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {c}"}))
	return pie, nil
}

// chartAggregateBar renders one bar per group of an aggregation, the shared
// shape behind most of the dashboard's bar charts.
func chartAggregateBar(engine *analytics.FilterEngine, view *analytics.FilteredView, title, yName string,
	groupBy, metric string, op analytics.AggregateOp, order analytics.SortOrder) (*charts.Bar, error) {

	agg, err := engine.Aggregate(view, []string{groupBy}, metric, op, order)
	if err != nil {
		return nil, err
	}

	labels := make([]string, 0, len(agg.Groups))
	values := make([]opts.BarData, 0, len(agg.Groups))
	for _, g := range agg.Groups {
		labels = append(labels, g.Label)
		values = append(values, opts.BarData{Value: round2(g.Value)})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(append(chartInit(title),
		charts.WithXAxisOpts(opts.XAxis{AxisLabel: &opts.AxisLabel{Show: opts.Bool(true), Rotate: 30, Interval: "0"}}),
		charts.WithYAxisOpts(opts.YAxis{Name: yName}),
	)...)
	bar.SetXAxis(labels).AddSeries(yName, values)
	return bar, nil
}

// chartHistogram renders a metric distribution as a 50-bin bar chart.
func chartHistogram(engine *analytics.FilterEngine, view *analytics.FilteredView, title, metric string) (*charts.Bar, error) {
	bins, err := engine.Histogram(view, metric, histogramBins)
	if err != nil {
		return nil, err
	}

	labels := make([]string, 0, len(bins))
	values := make([]opts.BarData, 0, len(bins))
	for _, b := range bins {
		labels = append(labels, fmt.Sprintf("%.1f", b.Start))
		values = append(values, opts.BarData{Value: b.Count})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(append(chartInit(title),
		charts.WithXAxisOpts(opts.XAxis{AxisLabel: &opts.AxisLabel{Show: opts.Bool(true), Rotate: 60}}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Frequency"}),
	)...)
	bar.SetXAxis(labels).AddSeries("Frequency", values)
	return bar, nil
}

// chartProductTypeSharePie shows each product type's share of total sales.
func chartProductTypeSharePie(engine *analytics.FilterEngine, view *analytics.FilteredView) (*charts.Pie, error) {
	agg, err := engine.Aggregate(view, []string{analytics.ColItemType}, analytics.ColOutletSales, analytics.OpSum, analytics.OrderValueDesc)
	if err != nil {
		return nil, err
	}

	items := make([]opts.PieData, 0, len(agg.Groups))
	for _, g := range agg.Groups {
		items = append(items, opts.PieData{Name: g.Label, Value: round2(g.Value)})
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(chartInit("Sales by Product Type (%)")...)
	pie.AddSeries("Total Sales", items).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Formatter: "{b}: {d}%"}))
	return pie, nil
}

// chartSalesByStoreAge plots average sales against store age, oldest stores
// to the right.
func chartSalesByStoreAge(engine *analytics.FilterEngine, view *analytics.FilteredView) (*charts.Line, error) {
	agg, err := engine.Aggregate(view, []string{analytics.ColStoreAge}, analytics.ColOutletSales, analytics.OpMean, analytics.OrderNatural)
	if err != nil {
		return nil, err
	}

	labels := make([]string, 0, len(agg.Groups))
	values := make([]opts.LineData, 0, len(agg.Groups))
	for _, g := range agg.Groups {
		labels = append(labels, g.Label)
		values = append(values, opts.LineData{Value: round2(g.Value)})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(append(chartInit("Average Sales vs Store Age"),
		charts.WithXAxisOpts(opts.XAxis{Name: "Store Age (Years)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Average Sales ($)"}),
	)...)
	line.SetXAxis(labels).
		AddSeries("Average Sales", values, charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}))
	return line, nil
}

// chartSalesBoxplot draws the sales distribution per store category from the
// engine's quantile summaries.
func chartSalesBoxplot(engine *analytics.FilterEngine, view *analytics.FilteredView) (*charts.BoxPlot, error) {
	categories := view.UniqueValues(analytics.ColOutletType)
	boxes := make([]opts.BoxPlotData, 0, len(categories))
	for _, outletType := range categories {
		sub, err := engine.SubView(view, analytics.ColOutletType, outletType)
		if err != nil {
			return nil, err
		}
		s, err := engine.SummarizeMetric(sub, analytics.ColOutletSales)
		if err != nil {
			return nil, err
		}
		boxes = append(boxes, opts.BoxPlotData{
			Name: outletType,
			Value: []float64{
				round2(s.Min),
				round2(s.Quantiles[0.25]),
				round2(s.Median),
				round2(s.Quantiles[0.75]),
				round2(s.Max),
			},
		})
	}

	box := charts.NewBoxPlot()
	box.SetGlobalOptions(append(chartInit("Sales Distribution by Store Type"),
		charts.WithXAxisOpts(opts.XAxis{AxisLabel: &opts.AxisLabel{Show: opts.Bool(true), Rotate: 30, Interval: "0"}}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Sales ($)"}),
	)...)
	box.SetXAxis(categories).AddSeries("Sales", boxes)
	return box, nil
}

// chartMatrixHeatmap renders the store category x city tier matrix, colored
// by mean sales per cell.
func chartMatrixHeatmap(engine *analytics.FilterEngine, view *analytics.FilteredView) (*charts.HeatMap, error) {
	cells, err := engine.MultiDimensionalMatrix(view,
		analytics.ColOutletType, analytics.ColLocationType,
		analytics.MatrixMetric{Column: analytics.ColOutletSales, Op: analytics.OpSum},
		analytics.MatrixMetric{Column: analytics.ColOutletSales, Op: analytics.OpMean},
	)
	if err != nil {
		return nil, err
	}

	xCats := view.UniqueValues(analytics.ColOutletType)
	yCats := view.UniqueValues(analytics.ColLocationType)
	xIndex := map[string]int{}
	for i, v := range xCats {
		xIndex[v] = i
	}
	yIndex := map[string]int{}
	for i, v := range yCats {
		yIndex[v] = i
	}

	data := make([]opts.HeatMapData, 0, len(cells))
	maxColor := 0.0
	for _, c := range cells {
		if c.Color > maxColor {
			maxColor = c.Color
		}
		data = append(data, opts.HeatMapData{
			Value: [3]interface{}{xIndex[c.X], yIndex[c.Y], round2(c.Color)},
		})
	}

	heatmap := charts.NewHeatMap()
	heatmap.SetGlobalOptions(append(chartInit("Store Performance Matrix (Mean Sales)"),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", AxisLabel: &opts.AxisLabel{Show: opts.Bool(true), Rotate: 30, Interval: "0"}}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: yCats}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(true),
			Min:        0,
			Max:        float32(maxColor),
		}),
	)...)
	heatmap.SetXAxis(xCats).AddSeries("Mean Sales", data)
	return heatmap, nil
}

// chartPerformanceBubble plots each product type as a bubble: price against
// sales, bubble size tracking record volume.
func chartPerformanceBubble(engine *analytics.FilterEngine, view *analytics.FilteredView) (*charts.Scatter, error) {
	rows, err := engine.PerformanceMatrix(view)
	if err != nil {
		return nil, err
	}

	maxCount := 0
	for _, r := range rows {
		if r.Count > maxCount {
			maxCount = r.Count
		}
	}

	points := make([]opts.ScatterData, 0, len(rows))
	for _, r := range rows {
		size := 10
		if maxCount > 0 {
			size = 10 + int(40*float64(r.Count)/float64(maxCount))
		}
		points = append(points, opts.ScatterData{
			Name:       r.ItemType,
			Value:      []interface{}{round2(r.AvgMRP), round2(r.AvgSales), round2(r.AvgVisibility), r.Count},
			SymbolSize: size,
		})
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(append(chartInit("Product Performance Matrix: Price vs Sales"),
		charts.WithXAxisOpts(opts.XAxis{Type: "value", Name: "Average Price ($)"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Average Sales ($)"}),
	)...)
	scatter.AddSeries("Product Types", points)
	return scatter, nil
}
