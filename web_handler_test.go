package main

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bigmart/sales_dashboard/analytics"
)

func newTestServer(t *testing.T) (*DashboardServer, *http.ServeMux) {
	t.Helper()
	dataset, err := LoadDataset(sampleCSV, 2025)
	require.NoError(t, err)
	engine := analytics.NewFilterEngine(dataset)
	model, err := engine.FitLinearRegression(engine.FullView(), analytics.ColItemMRP, analytics.ColOutletSales)
	require.NoError(t, err)

	server := NewDashboardServer(engine, model)
	mux := http.NewServeMux()
	server.RegisterRoutes(mux)
	return server, mux
}

func get(mux *http.ServeMux, path string, query url.Values) *httptest.ResponseRecorder {
	target := path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestDashboardRendersFullDataset(t *testing.T) {
	_, mux := newTestServer(t)

	rec := get(mux, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	body := rec.Body.String()
	assert.Contains(t, body, "Big Mart Sales Dashboard")
	assert.Contains(t, body, "echarts")
	// key metrics strip shows the fixture row count
	assert.Contains(t, body, "<td>10</td>")
	// filter form lists observed values
	assert.Contains(t, body, `value="Dairy"`)
	assert.Contains(t, body, `value="Tier 3"`)
	assert.Contains(t, body, `value="Grocery Store"`)
}

func TestDashboardAppliesFilters(t *testing.T) {
	_, mux := newTestServer(t)

	rec := get(mux, "/", url.Values{"store_category": {"Supermarket Type1"}})
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	// 6 fixture records are Supermarket Type1
	assert.Contains(t, body, "<td>6</td>")
	assert.Contains(t, body, `value="Supermarket Type1" checked`)
}

func TestDashboardRejectsUnknownFilterValue(t *testing.T) {
	_, mux := newTestServer(t)

	rec := get(mux, "/", url.Values{"product_type": {"Spaceships"}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Spaceships")
}

func TestDashboardZeroMatchShowsNotice(t *testing.T) {
	_, mux := newTestServer(t)

	// both values exist but no record has both
	rec := get(mux, "/", url.Values{
		"product_type": {"Dairy"},
		"city_tier":    {"Tier 2"},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No records match")
}

func TestReportEndpoint(t *testing.T) {
	_, mux := newTestServer(t)

	rec := get(mux, "/report", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/plain")

	body := rec.Body.String()
	assert.Contains(t, body, "BIG MART SALES REPORT")
	assert.Contains(t, body, "Missing Values")
	assert.Contains(t, body, "Total Sales by Product Type")
	assert.Contains(t, body, "OLS")
}

func TestReportRespectsFilters(t *testing.T) {
	_, mux := newTestServer(t)

	rec := get(mux, "/report", url.Values{"city_tier": {"Tier 2"}})
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Snack Foods")
	assert.NotContains(t, body, "Dairy")
}

func TestExportPNG(t *testing.T) {
	_, mux := newTestServer(t)

	for _, chart := range []string{"product_type_sales", "city_tier_counts", "sales_histogram", "sales_density"} {
		rec := get(mux, "/export", url.Values{"chart": {chart}})
		require.Equal(t, http.StatusOK, rec.Code, chart)
		assert.Equal(t, "image/png", rec.Header().Get("Content-Type"), chart)

		png := rec.Body.Bytes()
		require.Greater(t, len(png), 8, chart)
		assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png[:4], chart)
	}
}

func TestExportUnknownChart(t *testing.T) {
	_, mux := newTestServer(t)

	rec := get(mux, "/export", url.Values{"chart": {"nope"}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnknownPathIs404(t *testing.T) {
	_, mux := newTestServer(t)

	rec := get(mux, "/definitely-not-here", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}
