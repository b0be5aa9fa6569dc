package analytics

import (
	"fmt"
	"sort"
	"strings"
)

// FilterSelection holds the active category values per filterable dimension.
// An empty set for a dimension means no restriction on that dimension, not
// "exclude everything". Dimensions combine with logical AND, values within a
// dimension with OR.
type FilterSelection struct {
	active map[string]map[string]bool
}

func NewFilterSelection() *FilterSelection {
	return &FilterSelection{active: map[string]map[string]bool{}}
}

// Add activates a value for a dimension.
func (s *FilterSelection) Add(dimension, value string) *FilterSelection {
	if s.active[dimension] == nil {
		s.active[dimension] = map[string]bool{}
	}
	s.active[dimension][value] = true
	return s
}

// Active returns the activated values for a dimension, sorted.
func (s *FilterSelection) Active(dimension string) []string {
	values := make([]string, 0, len(s.active[dimension]))
	for v := range s.active[dimension] {
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}

// Dimensions lists dimensions that carry at least one active value, sorted.
func (s *FilterSelection) Dimensions() []string {
	dims := []string{}
	for d, set := range s.active {
		if len(set) > 0 {
			dims = append(dims, d)
		}
	}
	sort.Strings(dims)
	return dims
}

func (s *FilterSelection) IsEmpty() bool {
	for _, set := range s.active {
		if len(set) > 0 {
			return false
		}
	}
	return true
}

// Label is a short human-readable description for chart subtitles.
func (s *FilterSelection) Label() string {
	if s.IsEmpty() {
		return "All data"
	}
	parts := []string{}
	for _, d := range s.Dimensions() {
		parts = append(parts, strings.Join(s.Active(d), ", "))
	}
	return strings.Join(parts, " / ")
}

// FilterEngine owns the immutable dataset and turns filter selections into the
// views and aggregates every dashboard widget consumes.
type FilterEngine struct {
	data *Dataset
	full *FilteredView
}

func NewFilterEngine(data *Dataset) *FilterEngine {
	indices := make([]int, data.Len())
	for i := range indices {
		indices[i] = i
	}
	return &FilterEngine{
		data: data,
		full: &FilteredView{dataset: data, indices: indices},
	}
}

func (e *FilterEngine) Dataset() *Dataset { return e.data }

// FullView is the unrestricted view over the whole dataset.
func (e *FilterEngine) FullView() *FilteredView { return e.full }

// Apply filters the dataset by the selection. A record survives when, for every
// dimension carrying active values, its own value is among them. Source order
// is preserved, the dataset is never touched. An empty result is a valid view.
func (e *FilterEngine) Apply(selection *FilterSelection) *FilteredView {
	if selection == nil || selection.IsEmpty() {
		return e.full
	}

	type constraint struct {
		dimension string
		values    map[string]bool
	}
	constraints := []constraint{}
	for dim, set := range selection.active {
		if len(set) > 0 {
			constraints = append(constraints, constraint{dimension: dim, values: set})
		}
	}

	indices := []int{}
	for i := 0; i < e.data.Len(); i++ {
		r := e.data.Record(i)
		pass := true
		for _, c := range constraints {
			val, ok := e.data.dimensionValue(r, c.dimension)
			if !ok || !c.values[val] {
				pass = false
				break
			}
		}
		if pass {
			indices = append(indices, i)
		}
	}
	return &FilteredView{dataset: e.data, indices: indices}
}

// SubView narrows an existing view to records whose dimension equals value,
// keeping order. Used for per-category breakdowns like the boxplots.
func (e *FilterEngine) SubView(view *FilteredView, dimension, value string) (*FilteredView, error) {
	if !IsDimensionColumn(dimension) {
		return nil, fmt.Errorf("unknown dimension %q", dimension)
	}
	indices := []int{}
	for i, idx := range view.indices {
		val, ok := e.data.dimensionValue(view.Record(i), dimension)
		if ok && val == value {
			indices = append(indices, idx)
		}
	}
	return &FilteredView{dataset: e.data, indices: indices}, nil
}

// ValidateSelection checks that every selected value is actually observed in
// the dataset for its dimension. Selections referencing categories that do not
// exist are caller errors and are rejected before filtering.
func (e *FilterEngine) ValidateSelection(selection *FilterSelection) error {
	if selection == nil || selection.IsEmpty() {
		return nil
	}
	for _, dim := range selection.Dimensions() {
		if !IsDimensionColumn(dim) {
			return fmt.Errorf("unknown dimension %q", dim)
		}
		observed := map[string]bool{}
		for _, v := range e.full.UniqueValues(dim) {
			observed[v] = true
		}
		for _, v := range selection.Active(dim) {
			if !observed[v] {
				return fmt.Errorf("value %q was never observed for dimension %q", v, dim)
			}
		}
	}
	return nil
}
