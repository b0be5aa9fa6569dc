package analytics

import (
	"sort"
	"strconv"

	"github.com/pivolan/go_utils"
)

// Canonical column identifiers. The CSV loader maps raw headers onto these,
// everything downstream (filtering, grouping, charts) speaks these names.
const (
	ColItemIdentifier    = "item_identifier"
	ColItemWeight        = "item_weight"
	ColItemFatContent    = "item_fat_content"
	ColItemVisibility    = "item_visibility"
	ColItemType          = "item_type"
	ColItemMRP           = "item_mrp"
	ColOutletIdentifier  = "outlet_identifier"
	ColEstablishmentYear = "outlet_establishment_year"
	ColOutletSize        = "outlet_size"
	ColLocationType      = "outlet_location_type"
	ColOutletType        = "outlet_type"
	ColOutletSales       = "item_outlet_sales"
	ColStoreAge          = "store_age" // derived: reference year - establishment year
)

// store_age appears in both lists: charts group by it (line chart over store
// age) and the regression consumes it numerically.
var dimensionColumns = []string{
	ColItemIdentifier,
	ColItemFatContent,
	ColItemType,
	ColOutletIdentifier,
	ColOutletSize,
	ColLocationType,
	ColOutletType,
	ColStoreAge,
}

var metricColumns = []string{
	ColItemWeight,
	ColItemVisibility,
	ColItemMRP,
	ColEstablishmentYear,
	ColOutletSales,
	ColStoreAge,
}

// Columns that may carry missing values in the source data.
var nullableColumns = []string{ColItemWeight, ColOutletSize}

func IsDimensionColumn(name string) bool {
	return go_utils.InArray(name, dimensionColumns)
}

func IsMetricColumn(name string) bool {
	return go_utils.InArray(name, metricColumns)
}

// Record is one row of the sales dataset: one product observed at one outlet.
// Weight and OutletSize may be missing in the source file. A nil Weight and an
// empty OutletSize stand for missing, they are kept so completeness metrics
// stay accurate.
type Record struct {
	ItemIdentifier    string
	Weight            *float64
	FatContent        string // "Low Fat" or "Regular" after load-time normalization
	Visibility        float64
	ItemType          string
	MRP               float64
	OutletIdentifier  string
	EstablishmentYear int
	OutletSize        string // "Small", "Medium", "High" or "" when missing
	LocationType      string // "Tier 1", "Tier 2", "Tier 3"
	OutletType        string // "Grocery Store", "Supermarket Type1", ...
	OutletSales       float64
}

// Dataset is the ordered, immutable record collection loaded once at startup.
// Filtering never mutates it, every FilteredView is an index list into it.
type Dataset struct {
	records       []Record
	referenceYear int
}

// NewDataset wraps records into a Dataset. referenceYear anchors the derived
// store_age column (reference year minus establishment year).
func NewDataset(records []Record, referenceYear int) *Dataset {
	return &Dataset{records: records, referenceYear: referenceYear}
}

func (d *Dataset) Len() int { return len(d.records) }

func (d *Dataset) Record(i int) Record { return d.records[i] }

func (d *Dataset) ReferenceYear() int { return d.referenceYear }

// dimensionValue reads a categorical column off a record. ok is false when the
// value is missing for this record (only outlet_size can be).
func (d *Dataset) dimensionValue(r Record, column string) (value string, ok bool) {
	switch column {
	case ColItemIdentifier:
		return r.ItemIdentifier, true
	case ColItemFatContent:
		return r.FatContent, true
	case ColItemType:
		return r.ItemType, true
	case ColOutletIdentifier:
		return r.OutletIdentifier, true
	case ColOutletSize:
		return r.OutletSize, r.OutletSize != ""
	case ColLocationType:
		return r.LocationType, true
	case ColOutletType:
		return r.OutletType, true
	case ColStoreAge:
		return strconv.Itoa(d.referenceYear - r.EstablishmentYear), true
	}
	return "", false
}

// metricValue reads a numeric column off a record. ok is false when the value
// is missing for this record (only item_weight can be).
func (d *Dataset) metricValue(r Record, column string) (value float64, ok bool) {
	switch column {
	case ColItemWeight:
		if r.Weight == nil {
			return 0, false
		}
		return *r.Weight, true
	case ColItemVisibility:
		return r.Visibility, true
	case ColItemMRP:
		return r.MRP, true
	case ColEstablishmentYear:
		return float64(r.EstablishmentYear), true
	case ColOutletSales:
		return r.OutletSales, true
	case ColStoreAge:
		return float64(d.referenceYear - r.EstablishmentYear), true
	}
	return 0, false
}

// FilteredView is an ordered read-only subset of a Dataset. Indices point into
// the parent dataset, no record is ever copied.
type FilteredView struct {
	dataset *Dataset
	indices []int
}

func (v *FilteredView) Len() int { return len(v.indices) }

func (v *FilteredView) Record(i int) Record { return v.dataset.records[v.indices[i]] }

// Indices returns the view's positions in the source dataset, in order.
func (v *FilteredView) Indices() []int {
	out := make([]int, len(v.indices))
	copy(out, v.indices)
	return out
}

// UniqueValues lists the distinct observed values of a dimension across the
// view, sorted ascending. Missing values are not listed.
func (v *FilteredView) UniqueValues(column string) []string {
	seen := map[string]bool{}
	values := []string{}
	for i := 0; i < v.Len(); i++ {
		val, ok := v.dataset.dimensionValue(v.Record(i), column)
		if !ok || seen[val] {
			continue
		}
		seen[val] = true
		values = append(values, val)
	}
	sort.Strings(values)
	return values
}
