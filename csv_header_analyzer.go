// csv_header_analyzer.go
package main

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"

	"github.com/bigmart/sales_dashboard/analytics"
)

// headerAliases maps normalized CSV headers onto canonical column names. The
// raw Big Mart export uses short names (ProductID, Weight, ...), re-exports of
// the cleaned dataset use the long ones (Item_Identifier, ...). Both load.
var headerAliases = map[string]string{
	"productid":                 analytics.ColItemIdentifier,
	"item_identifier":           analytics.ColItemIdentifier,
	"weight":                    analytics.ColItemWeight,
	"item_weight":               analytics.ColItemWeight,
	"fatcontent":                analytics.ColItemFatContent,
	"item_fat_content":          analytics.ColItemFatContent,
	"productvisibility":         analytics.ColItemVisibility,
	"item_visibility":           analytics.ColItemVisibility,
	"producttype":               analytics.ColItemType,
	"item_type":                 analytics.ColItemType,
	"mrp":                       analytics.ColItemMRP,
	"item_mrp":                  analytics.ColItemMRP,
	"outletid":                  analytics.ColOutletIdentifier,
	"outlet_identifier":         analytics.ColOutletIdentifier,
	"establishmentyear":         analytics.ColEstablishmentYear,
	"outlet_establishment_year": analytics.ColEstablishmentYear,
	"outletsize":                analytics.ColOutletSize,
	"outlet_size":               analytics.ColOutletSize,
	"locationtype":              analytics.ColLocationType,
	"outlet_location_type":      analytics.ColLocationType,
	"outlettype":                analytics.ColOutletType,
	"outlet_type":               analytics.ColOutletType,
	"outletsales":               analytics.ColOutletSales,
	"item_outlet_sales":         analytics.ColOutletSales,
}

var requiredColumns = []string{
	analytics.ColItemIdentifier,
	analytics.ColItemWeight,
	analytics.ColItemFatContent,
	analytics.ColItemVisibility,
	analytics.ColItemType,
	analytics.ColItemMRP,
	analytics.ColOutletIdentifier,
	analytics.ColEstablishmentYear,
	analytics.ColOutletSize,
	analytics.ColLocationType,
	analytics.ColOutletType,
	analytics.ColOutletSales,
}

// normalizeHeader turns a raw CSV header into its lookup form: transliterate
// to ASCII, squash special characters to underscores, lowercase.
func normalizeHeader(raw string) string {
	return strings.ToLower(replaceSpecialSymbols(unidecode.Unidecode(strings.TrimSpace(raw))))
}

func replaceSpecialSymbols(input string) string {
	// Replace all non-alphanumeric characters with underscores
	re := regexp.MustCompile("[^a-zA-Z0-9]+")
	processedString := re.ReplaceAllString(input, "_")

	// Replace any consecutive underscores with a single underscore
	processedString = strings.ReplaceAll(processedString, "__", "_")

	// Remove any underscores at the beginning or end of the string
	processedString = strings.Trim(processedString, "_")

	return processedString
}

// resolveColumns maps each header position to its canonical column. Every
// required column must be present exactly once; anything unrecognized is
// reported so a wrong file fails loudly at startup instead of rendering an
// empty dashboard.
func resolveColumns(headers []string) (map[int]string, error) {
	if len(headers) == 0 {
		return nil, fmt.Errorf("empty header row")
	}

	headerLike := 0
	for _, h := range headers {
		if isLikelyHeader(h) {
			headerLike++
		}
	}
	if float64(headerLike)/float64(len(headers)) < 0.5 {
		return nil, fmt.Errorf("first row looks like data, not a header row")
	}

	mapping := map[int]string{}
	seen := map[string]bool{}
	for i, h := range headers {
		canonical, ok := headerAliases[normalizeHeader(h)]
		if !ok {
			return nil, fmt.Errorf("unrecognized column %q", h)
		}
		if seen[canonical] {
			return nil, fmt.Errorf("duplicate column %q", h)
		}
		seen[canonical] = true
		mapping[i] = canonical
	}

	for _, col := range requiredColumns {
		if !seen[col] {
			return nil, fmt.Errorf("missing required column %q", col)
		}
	}
	return mapping, nil
}

// isLikelyHeader reports whether a field reads like a column name rather than
// a data value.
func isLikelyHeader(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}

	if _, err := strconv.ParseFloat(text, 64); err == nil {
		return false
	}

	letters := 0
	total := 0
	for _, r := range text {
		if unicode.IsLetter(r) {
			letters++
		}
		if !unicode.IsSpace(r) {
			total++
		}
	}
	if total == 0 {
		return false
	}
	return letters > 0 && float64(letters)/float64(total) >= 0.3
}
