package main

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strings"

	"github.com/go-echarts/go-echarts/v2/components"
	uuid "github.com/satori/go.uuid"

	"github.com/bigmart/sales_dashboard/analytics"
	"github.com/bigmart/sales_dashboard/plot"
)

// filterParams maps dashboard query parameters onto dataset dimensions.
// Each parameter may repeat: ?product_type=Dairy&product_type=Snacks selects
// both.
var filterParams = map[string]string{
	"product_type":   analytics.ColItemType,
	"city_tier":      analytics.ColLocationType,
	"store_category": analytics.ColOutletType,
}

// DashboardServer serves the interactive dashboard over a loaded dataset.
// The regression model is fitted once at startup over the full dataset.
type DashboardServer struct {
	engine *analytics.FilterEngine
	model  *analytics.ModelSummary
}

func NewDashboardServer(engine *analytics.FilterEngine, model *analytics.ModelSummary) *DashboardServer {
	return &DashboardServer{engine: engine, model: model}
}

func (s *DashboardServer) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", s.handleDashboard)
	mux.HandleFunc("/report", s.handleReport)
	mux.HandleFunc("/export", s.handleExport)
}

// parseSelection builds a filter selection from dashboard query parameters.
func parseSelection(r *http.Request) *analytics.FilterSelection {
	selection := analytics.NewFilterSelection()
	query := r.URL.Query()
	for param, dimension := range filterParams {
		for _, value := range query[param] {
			if value != "" {
				selection.Add(dimension, value)
			}
		}
	}
	return selection
}

func (s *DashboardServer) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	selection := parseSelection(r)
	if err := s.engine.ValidateSelection(selection); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	view := s.engine.Apply(selection)

	var notices []string
	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	page.PageTitle = "Big Mart Sales Dashboard"

	if view.Len() == 0 {
		notices = append(notices, "No records match the current filters. Clear a filter to see data.")
	} else {
		builders := []struct {
			name  string
			build func() (components.Charter, error)
		}{
			{"sales vs mrp", func() (components.Charter, error) { return chartSalesVsMRP(s.engine, view) }},
			{"store size", func() (components.Charter, error) { return chartOutletSizePie(s.engine, view) }},
			{"city tier counts", func() (components.Charter, error) {
				return chartAggregateBar(s.engine, view, "Stores by City Tier", "Records",
					analytics.ColLocationType, "", analytics.OpCount, analytics.OrderNatural)
			}},
			{"avg sales by store type", func() (components.Charter, error) {
				return chartAggregateBar(s.engine, view, "Average Sales by Store Type", "Average Sales ($)",
					analytics.ColOutletType, analytics.ColOutletSales, analytics.OpMean, analytics.OrderValueDesc)
			}},
			{"sales histogram", func() (components.Charter, error) {
				return chartHistogram(s.engine, view, "Sales Distribution", analytics.ColOutletSales)
			}},
			{"visibility histogram", func() (components.Charter, error) {
				return chartHistogram(s.engine, view, "Item Visibility Distribution", analytics.ColItemVisibility)
			}},
			{"fat content sales", func() (components.Charter, error) {
				return chartAggregateBar(s.engine, view, "Total Sales by Fat Content", "Total Sales ($)",
					analytics.ColItemFatContent, analytics.ColOutletSales, analytics.OpSum, analytics.OrderValueDesc)
			}},
			{"city tier sales", func() (components.Charter, error) {
				return chartAggregateBar(s.engine, view, "Total Sales by City Tier", "Total Sales ($)",
					analytics.ColLocationType, analytics.ColOutletSales, analytics.OpSum, analytics.OrderNatural)
			}},
			{"product type sales", func() (components.Charter, error) {
				return chartAggregateBar(s.engine, view, "Total Sales by Product Type", "Total Sales ($)",
					analytics.ColItemType, analytics.ColOutletSales, analytics.OpSum, analytics.OrderValueDesc)
			}},
			{"product type share", func() (components.Charter, error) { return chartProductTypeSharePie(s.engine, view) }},
			{"sales by store age", func() (components.Charter, error) { return chartSalesByStoreAge(s.engine, view) }},
			{"sales boxplot", func() (components.Charter, error) { return chartSalesBoxplot(s.engine, view) }},
			{"performance heatmap", func() (components.Charter, error) { return chartMatrixHeatmap(s.engine, view) }},
			{"performance bubble", func() (components.Charter, error) { return chartPerformanceBubble(s.engine, view) }},
		}
		for _, b := range builders {
			c, err := b.build()
			if err != nil {
				log.Println("chart", b.name, "skipped:", err)
				notices = append(notices, fmt.Sprintf("Chart %q is unavailable: %s", b.name, err))
				continue
			}
			page.AddCharts(c)
		}
	}

	var chartBuf bytes.Buffer
	if err := page.Render(&chartBuf); err != nil {
		http.Error(w, "failed to render dashboard: "+err.Error(), http.StatusInternalServerError)
		return
	}

	header, err := s.renderHeader(selection, view, notices)
	if err != nil {
		http.Error(w, "failed to render dashboard: "+err.Error(), http.StatusInternalServerError)
		return
	}

	// components.Page owns the whole document, so the filter form and metric
	// strip are injected right after its <body> tag.
	html := chartBuf.String()
	html = strings.Replace(html, "<body>", "<body>\n"+header, 1)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, html)
}

// headerTemplate renders everything above the charts: title, filter form,
// key metrics, data quality tables and the model summary.
var headerTemplate = template.Must(template.New("header").Parse(`
<div style="font-family:sans-serif;max-width:1300px;margin:0 auto;padding:12px">
<h1>Big Mart Sales Dashboard</h1>
<form method="GET" action="/" style="margin-bottom:16px">
{{range .Filters}}
  <fieldset style="display:inline-block;vertical-align:top;margin-right:16px">
    <legend>{{.Title}}</legend>
    {{$param := .Param}}{{$active := .Active}}
    {{range .Values}}
      <label style="display:block">
        <input type="checkbox" name="{{$param}}" value="{{.}}" {{if index $active .}}checked{{end}}> {{.}}
      </label>
    {{end}}
  </fieldset>
{{end}}
  <button type="submit">Apply Filters</button>
  <a href="/" style="margin-left:8px">Reset</a>
  <a href="/report" style="margin-left:8px">Text Report</a>
</form>

{{if .Metrics.HasData}}
<table border="1" cellpadding="6" style="border-collapse:collapse;margin-bottom:16px">
  <tr>
    <th>Observations</th><th>Product Types</th><th>Highest MRP</th>
    <th>Store Years</th><th>Average Sales</th><th>Total Sales</th><th>Average MRP</th>
  </tr>
  <tr>
    <td>{{.Metrics.Observations}}</td>
    <td>{{.Metrics.ProductTypes}}</td>
    <td>${{printf "%.2f" .Metrics.HighestMRP}}</td>
    <td>{{.Metrics.MinYear}} - {{.Metrics.MaxYear}}</td>
    <td>${{printf "%.2f" .Metrics.AvgSales}}</td>
    <td>${{printf "%.2f" .Metrics.TotalSales}}</td>
    <td>${{printf "%.2f" .Metrics.AvgMRP}}</td>
  </tr>
</table>
{{end}}

{{range .Notices}}<p style="color:#a00">{{.}}</p>{{end}}

<details style="margin-bottom:8px">
  <summary>Missing Values (full dataset)</summary>
  <table border="1" cellpadding="6" style="border-collapse:collapse">
    <tr><th>Column</th><th>Missing</th><th>Missing %</th></tr>
    {{range .MissingStats}}
    <tr><td>{{.Column}}</td><td>{{.Missing}}</td><td>{{printf "%.2f" .Percentage}}%</td></tr>
    {{end}}
  </table>
</details>

{{if .Model}}
<details style="margin-bottom:8px">
  <summary>Sales Prediction Model (OLS: {{.Model.DepVar}} ~ {{.Model.ExogVar}})</summary>
  <table border="1" cellpadding="6" style="border-collapse:collapse">
    <tr><td>No. Observations</td><td>{{.Model.Observations}}</td></tr>
    <tr><td>R-squared</td><td>{{printf "%.3f" .Model.RSquared}}</td></tr>
    <tr><td>Adj. R-squared</td><td>{{printf "%.3f" .Model.AdjRSquared}}</td></tr>
    <tr><td>F-statistic</td><td>{{printf "%.1f" .Model.FStatistic}}</td></tr>
    <tr><td>Intercept</td><td>{{printf "%.4f" .Model.Intercept}}</td></tr>
    <tr><td>{{.Model.ExogVar}}</td><td>{{printf "%.4f" .Model.Slope}}</td></tr>
  </table>
</details>
{{end}}
</div>
`))

type filterGroup struct {
	Title  string
	Param  string
	Values []string
	Active map[string]bool
}

func (s *DashboardServer) renderHeader(selection *analytics.FilterSelection, view *analytics.FilteredView, notices []string) (string, error) {
	full := s.engine.FullView()

	titles := map[string]string{
		"product_type":   "Product Type",
		"city_tier":      "City Tier",
		"store_category": "Store Category",
	}
	// stable order on the page
	order := []string{"product_type", "city_tier", "store_category"}

	filters := make([]filterGroup, 0, len(order))
	for _, param := range order {
		dimension := filterParams[param]
		active := map[string]bool{}
		for _, v := range selection.Active(dimension) {
			active[v] = true
		}
		filters = append(filters, filterGroup{
			Title:  titles[param],
			Param:  param,
			Values: full.UniqueValues(dimension),
			Active: active,
		})
	}

	data := struct {
		Filters      []filterGroup
		Metrics      analytics.KeyMetrics
		MissingStats []analytics.MissingColumnStat
		Model        *analytics.ModelSummary
		Notices      []string
	}{
		Filters:      filters,
		Metrics:      s.engine.KeyMetrics(view),
		MissingStats: s.engine.MissingValueReport(),
		Model:        s.model,
		Notices:      notices,
	}

	var buf bytes.Buffer
	if err := headerTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (s *DashboardServer) handleReport(w http.ResponseWriter, r *http.Request) {
	selection := parseSelection(r)
	if err := s.engine.ValidateSelection(selection); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	view := s.engine.Apply(selection)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, GenerateTextReport(s.engine, view, s.model))
}

// exportKind selects how a downloadable chart is drawn.
type exportKind int

const (
	exportBar exportKind = iota
	exportHistogram
	exportDensity
)

// exportSpec describes one downloadable PNG chart. Bar specs aggregate a
// metric over a dimension; histogram and density specs bucket a metric, the
// density variant drawing a smooth curve through the bucket midpoints.
type exportSpec struct {
	kind    exportKind
	title   string
	groupBy string
	metric  string
	op      analytics.AggregateOp
	order   analytics.SortOrder
}

var exportCharts = map[string]exportSpec{
	"product_type_sales":   {exportBar, "Total Sales by Product Type", analytics.ColItemType, analytics.ColOutletSales, analytics.OpSum, analytics.OrderValueDesc},
	"city_tier_counts":     {exportBar, "Records by City Tier", analytics.ColLocationType, "", analytics.OpCount, analytics.OrderNatural},
	"store_type_avg_sales": {exportBar, "Average Sales by Store Type", analytics.ColOutletType, analytics.ColOutletSales, analytics.OpMean, analytics.OrderValueDesc},
	"fat_content_sales":    {exportBar, "Total Sales by Fat Content", analytics.ColItemFatContent, analytics.ColOutletSales, analytics.OpSum, analytics.OrderValueDesc},
	"sales_histogram":      {exportHistogram, "Sales Distribution", "", analytics.ColOutletSales, "", ""},
	"visibility_histogram": {exportHistogram, "Item Visibility Distribution", "", analytics.ColItemVisibility, "", ""},
	"sales_density":        {exportDensity, "Sales Density", "", analytics.ColOutletSales, "", ""},
	"visibility_density":   {exportDensity, "Item Visibility Density", "", analytics.ColItemVisibility, "", ""},
}

func (s *DashboardServer) handleExport(w http.ResponseWriter, r *http.Request) {
	selection := parseSelection(r)
	if err := s.engine.ValidateSelection(selection); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	view := s.engine.Apply(selection)

	name := r.URL.Query().Get("chart")
	spec, ok := exportCharts[name]
	if !ok {
		http.Error(w, "unknown chart "+name, http.StatusBadRequest)
		return
	}

	var png []byte
	var err error
	switch spec.kind {
	case exportHistogram:
		png, err = s.exportHistogram(view, spec.title, spec.metric)
	case exportDensity:
		png, err = s.exportDensity(view, spec.metric)
	default:
		png, err = s.exportAggregateBar(view, spec)
	}
	if err != nil {
		http.Error(w, "failed to draw chart: "+err.Error(), http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("%s_%s.png", name, uuid.NewV4().String())
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Write(png)
}

func (s *DashboardServer) exportAggregateBar(view *analytics.FilteredView, spec exportSpec) ([]byte, error) {
	agg, err := s.engine.Aggregate(view, []string{spec.groupBy}, spec.metric, spec.op, spec.order)
	if err != nil {
		return nil, err
	}
	labels := make([]string, 0, len(agg.Groups))
	values := make([]float64, 0, len(agg.Groups))
	for _, g := range agg.Groups {
		labels = append(labels, g.Label)
		values = append(values, g.Value)
	}
	return plot.DrawCategoryBar(labels, values, spec.title, spec.title)
}

func (s *DashboardServer) exportHistogram(view *analytics.FilteredView, title, metric string) ([]byte, error) {
	bins, err := s.engine.Histogram(view, metric, histogramBins)
	if err != nil {
		return nil, err
	}
	starts := make([]float64, 0, len(bins))
	ends := make([]float64, 0, len(bins))
	counts := make([]float64, 0, len(bins))
	for _, b := range bins {
		starts = append(starts, b.Start)
		ends = append(ends, b.End)
		counts = append(counts, float64(b.Count))
	}
	return plot.DrawRangeBar(starts, ends, counts, "Frequency", title)
}

// exportDensity draws the metric distribution as a curve through the midpoints
// of its histogram buckets.
func (s *DashboardServer) exportDensity(view *analytics.FilteredView, metric string) ([]byte, error) {
	bins, err := s.engine.Histogram(view, metric, histogramBins)
	if err != nil {
		return nil, err
	}
	xs := make([]float64, 0, len(bins))
	ys := make([]float64, 0, len(bins))
	for _, b := range bins {
		xs = append(xs, (b.Start+b.End)/2)
		ys = append(ys, float64(b.Count))
	}
	return plot.DrawDensityPlot(xs, ys)
}
