package main

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bigmart/sales_dashboard/analytics"
)

const sampleCSV = "testdata/bigmart_sample.csv"

func TestLoadDatasetFixture(t *testing.T) {
	dataset, err := LoadDataset(sampleCSV, 2025)
	require.NoError(t, err)
	assert.Equal(t, 10, dataset.Len())

	first := dataset.Record(0)
	assert.Equal(t, "FDA15", first.ItemIdentifier)
	require.NotNil(t, first.Weight)
	assert.InDelta(t, 9.30, *first.Weight, 1e-9)
	assert.Equal(t, "Dairy", first.ItemType)
	assert.Equal(t, 1999, first.EstablishmentYear)
	assert.Equal(t, "Tier 1", first.LocationType)
	assert.InDelta(t, 3735.1380, first.OutletSales, 1e-9)
}

func TestLoadDatasetPreservesMissingValues(t *testing.T) {
	dataset, err := LoadDataset(sampleCSV, 2025)
	require.NoError(t, err)

	missingWeight := 0
	missingSize := 0
	for i := 0; i < dataset.Len(); i++ {
		r := dataset.Record(i)
		if r.Weight == nil {
			missingWeight++
		}
		if r.OutletSize == "" {
			missingSize++
		}
	}
	assert.Equal(t, 2, missingWeight)
	assert.Equal(t, 4, missingSize)
}

func TestLoadDatasetNormalizesFatContent(t *testing.T) {
	dataset, err := LoadDataset(sampleCSV, 2025)
	require.NoError(t, err)

	engine := analytics.NewFilterEngine(dataset)
	values := engine.FullView().UniqueValues(analytics.ColItemFatContent)
	assert.Equal(t, []string{"Low Fat", "Regular"}, values)
}

func TestParseDatasetShortHeaderNames(t *testing.T) {
	csv := strings.Join([]string{
		"ProductID,Weight,FatContent,ProductVisibility,ProductType,MRP,OutletID,EstablishmentYear,OutletSize,LocationType,OutletType,OutletSales",
		"FDA15,9.3,Low Fat,0.016,Dairy,249.81,OUT049,1999,Medium,Tier 1,Supermarket Type1,3735.14",
	}, "\n")

	dataset, err := parseDataset(strings.NewReader(csv), 2025)
	require.NoError(t, err)
	require.Equal(t, 1, dataset.Len())
	assert.Equal(t, "FDA15", dataset.Record(0).ItemIdentifier)
	assert.Equal(t, "OUT049", dataset.Record(0).OutletIdentifier)
}

func TestParseDatasetErrors(t *testing.T) {
	header := "Item_Identifier,Item_Weight,Item_Fat_Content,Item_Visibility,Item_Type,Item_MRP,Outlet_Identifier,Outlet_Establishment_Year,Outlet_Size,Outlet_Location_Type,Outlet_Type,Item_Outlet_Sales"

	cases := []struct {
		name string
		csv  string
		want string
	}{
		{
			"missing header row",
			"101,9.3,0.5,0.016,2,249.81,49,1999,1,1,1,3735.14",
			"looks like data",
		},
		{
			"unknown column",
			"Item_Identifier,Mystery_Column\nFDA15,1",
			"unrecognized column",
		},
		{
			"missing required column",
			"Item_Identifier,Item_Weight\nFDA15,9.3",
			"missing required column",
		},
		{
			"bad numeric cell",
			header + "\nFDA15,9.3,Low Fat,0.016,Dairy,not-a-price,OUT049,1999,Medium,Tier 1,Supermarket Type1,3735.14",
			"bad MRP",
		},
		{
			"no data rows",
			header,
			"no records",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseDataset(strings.NewReader(tc.csv), 2025)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestLoadDatasetGzip(t *testing.T) {
	raw, err := os.ReadFile(sampleCSV)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "bigmart.csv.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := gzip.NewWriter(f)
	_, err = zw.Write(raw)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	dataset, err := LoadDataset(path, 2025)
	require.NoError(t, err)
	assert.Equal(t, 10, dataset.Len())
}

func TestNormalizeFatContent(t *testing.T) {
	assert.Equal(t, "Low Fat", normalizeFatContent("LF"))
	assert.Equal(t, "Low Fat", normalizeFatContent("low fat"))
	assert.Equal(t, "Regular", normalizeFatContent("reg"))
	assert.Equal(t, "Regular", normalizeFatContent(" Regular "))
	assert.Equal(t, "Unknown", normalizeFatContent("Unknown"))
}

func TestResolveColumnsDuplicate(t *testing.T) {
	_, err := resolveColumns([]string{"Item_Identifier", "ProductID"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate column")
}

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "item_fat_content", normalizeHeader(" Item_Fat_Content "))
	assert.Equal(t, "outlet_size", normalizeHeader("Outlet  Size"))
	assert.Equal(t, "mrp", normalizeHeader("MRP"))
}
