package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/bigmart/sales_dashboard/analytics"
)

// LoadDataset reads the Big Mart CSV (optionally gz/lz4/zip compressed) into
// an immutable Dataset. Any structural problem is an error: the dashboard
// cannot start without its data.
func LoadDataset(path string, referenceYear int) (*analytics.Dataset, error) {
	unpacked, err := unpackArchive(path)
	if err != nil {
		return nil, fmt.Errorf("unpack %s: %v", path, err)
	}

	file, err := os.Open(unpacked)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %v", err)
	}
	defer file.Close()

	return parseDataset(file, referenceYear)
}

func parseDataset(r io.Reader, referenceYear int) (*analytics.Dataset, error) {
	reader := csv.NewReader(r)

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header row: %v", err)
	}
	columns, err := resolveColumns(headers)
	if err != nil {
		return nil, err
	}

	var records []analytics.Record
	line := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("line %d: %v", line, err)
		}

		rec, err := parseRecord(row, columns)
		if err != nil {
			return nil, fmt.Errorf("line %d: %v", line, err)
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("dataset contains no records")
	}
	return analytics.NewDataset(records, referenceYear), nil
}

func parseRecord(row []string, columns map[int]string) (analytics.Record, error) {
	var rec analytics.Record
	for i, raw := range row {
		col, ok := columns[i]
		if !ok {
			continue
		}
		value := strings.TrimSpace(raw)

		switch col {
		case analytics.ColItemIdentifier:
			rec.ItemIdentifier = value
		case analytics.ColItemWeight:
			// weight is nullable, an empty cell stays missing
			if value == "" {
				rec.Weight = nil
				continue
			}
			w, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return rec, fmt.Errorf("bad weight %q", value)
			}
			rec.Weight = &w
		case analytics.ColItemFatContent:
			rec.FatContent = normalizeFatContent(value)
		case analytics.ColItemVisibility:
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return rec, fmt.Errorf("bad visibility %q", value)
			}
			rec.Visibility = v
		case analytics.ColItemType:
			rec.ItemType = value
		case analytics.ColItemMRP:
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return rec, fmt.Errorf("bad MRP %q", value)
			}
			rec.MRP = v
		case analytics.ColOutletIdentifier:
			rec.OutletIdentifier = value
		case analytics.ColEstablishmentYear:
			y, err := strconv.Atoi(value)
			if err != nil {
				return rec, fmt.Errorf("bad establishment year %q", value)
			}
			rec.EstablishmentYear = y
		case analytics.ColOutletSize:
			// nullable, "" means missing
			rec.OutletSize = value
		case analytics.ColLocationType:
			rec.LocationType = value
		case analytics.ColOutletType:
			rec.OutletType = value
		case analytics.ColOutletSales:
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return rec, fmt.Errorf("bad outlet sales %q", value)
			}
			rec.OutletSales = v
		}
	}
	return rec, nil
}

// normalizeFatContent folds the inconsistent source spellings into the two
// real categories.
func normalizeFatContent(value string) string {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "lf", "low fat":
		return "Low Fat"
	case "reg", "regular":
		return "Regular"
	}
	return value
}
