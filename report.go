package main

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/bigmart/sales_dashboard/analytics"
)

// GenerateKeyMetricsTable renders the headline numbers of a view.
func GenerateKeyMetricsTable(m analytics.KeyMetrics) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Metric", "Value"})
	if !m.HasData {
		t.AppendRow(table.Row{"Observations", 0})
		t.SetStyle(table.StyleDefault)
		return t.Render()
	}
	t.AppendRows([]table.Row{
		{"Observations", m.Observations},
		{"Product Types", m.ProductTypes},
		{"Highest MRP", fmt.Sprintf("$%.2f", m.HighestMRP)},
		{"Earliest Store", m.MinYear},
		{"Latest Store", m.MaxYear},
		{"Average Sales", fmt.Sprintf("$%.2f", m.AvgSales)},
		{"Total Sales", fmt.Sprintf("$%.2f", m.TotalSales)},
		{"Average MRP", fmt.Sprintf("$%.2f", m.AvgMRP)},
	})
	t.SetStyle(table.StyleDefault)
	return t.Render()
}

// GenerateMissingValueTable renders the missing value report. The stats are
// computed against the full dataset regardless of active filters.
func GenerateMissingValueTable(stats []analytics.MissingColumnStat) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Column", "Missing", "Missing %"})
	for _, s := range stats {
		t.AppendRow(table.Row{s.Column, s.Missing, fmt.Sprintf("%.2f%%", s.Percentage)})
	}
	t.SetStyle(table.StyleDefault)
	return t.Render()
}

// GenerateModelSummaryTable renders the fitted regression in the usual
// statistics package layout.
func GenerateModelSummaryTable(m *analytics.ModelSummary) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"OLS Regression Results", ""})
	t.AppendRows([]table.Row{
		{"Dep. Variable", m.DepVar},
		{"Model", "OLS"},
		{"No. Observations", m.Observations},
		{"R-squared", fmt.Sprintf("%.3f", m.RSquared)},
		{"Adj. R-squared", fmt.Sprintf("%.3f", m.AdjRSquared)},
		{"F-statistic", fmt.Sprintf("%.1f", m.FStatistic)},
		{"Intercept", fmt.Sprintf("%.4f", m.Intercept)},
		{m.ExogVar, fmt.Sprintf("%.4f", m.Slope)},
	})
	t.SetStyle(table.StyleDefault)
	return t.Render()
}

// GenerateAggregateTable renders one aggregation as a text table, one row per
// group.
func GenerateAggregateTable(agg *analytics.AggregateResult) string {
	t := table.NewWriter()
	header := table.Row{strings.Join(agg.GroupBy, " / "), "Count"}
	if agg.Op != analytics.OpCount {
		header = append(header, fmt.Sprintf("%s(%s)", agg.Op, agg.Metric))
	}
	t.AppendHeader(header)
	for _, g := range agg.Groups {
		row := table.Row{g.Label, g.Count}
		if agg.Op != analytics.OpCount {
			row = append(row, fmt.Sprintf("%.2f", g.Value))
		}
		t.AppendRow(row)
	}
	if agg.Excluded > 0 {
		t.AppendFooter(table.Row{"excluded rows", agg.Excluded})
	}
	t.SetStyle(table.StyleDefault)
	return t.Render()
}

// GenerateTextReport assembles the full plain text report for a view.
func GenerateTextReport(engine *analytics.FilterEngine, view *analytics.FilteredView, model *analytics.ModelSummary) string {
	buf := &strings.Builder{}

	buf.WriteString("BIG MART SALES REPORT\n\n")
	buf.WriteString("Key Metrics\n")
	buf.WriteString(GenerateKeyMetricsTable(engine.KeyMetrics(view)))
	buf.WriteString("\n\n")

	buf.WriteString("Missing Values (full dataset)\n")
	buf.WriteString(GenerateMissingValueTable(engine.MissingValueReport()))
	buf.WriteString("\n\n")

	sections := []struct {
		title   string
		groupBy string
		metric  string
		op      analytics.AggregateOp
		order   analytics.SortOrder
	}{
		{"Total Sales by Product Type", analytics.ColItemType, analytics.ColOutletSales, analytics.OpSum, analytics.OrderValueDesc},
		{"Average Sales by Store Category", analytics.ColOutletType, analytics.ColOutletSales, analytics.OpMean, analytics.OrderValueDesc},
		{"Records by City Tier", analytics.ColLocationType, "", analytics.OpCount, analytics.OrderNatural},
		{"Total Sales by Fat Content", analytics.ColItemFatContent, analytics.ColOutletSales, analytics.OpSum, analytics.OrderValueDesc},
	}
	for _, s := range sections {
		agg, err := engine.Aggregate(view, []string{s.groupBy}, s.metric, s.op, s.order)
		if err != nil {
			continue
		}
		buf.WriteString(s.title + "\n")
		buf.WriteString(GenerateAggregateTable(agg))
		buf.WriteString("\n\n")
	}

	if model != nil {
		buf.WriteString("Sales Prediction Model\n")
		buf.WriteString(GenerateModelSummaryTable(model))
		buf.WriteString("\n")
	}

	return buf.String()
}
