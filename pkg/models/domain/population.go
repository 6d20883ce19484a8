package domain

import "sort"

type FlowScope string

const (
	ScopeAreaWide FlowScope = "area_wide"
	ScopeSelected FlowScope = "selected_area"
)

type FlowDimension string

const (
	DimGenderAge FlowDimension = "gender_age"
	DimDayOfWeek FlowDimension = "day_of_week"
	DimTimeBand  FlowDimension = "time_band"
)

// FlowEntry is one labeled count within a population slice.
type FlowEntry struct {
	Label string
	Count float64
}

// FlowSlice is a foot traffic distribution over one dimension, either for the
// whole survey area or for the operator-selected micro area. Entries keep the
// source column order.
type FlowSlice struct {
	Scope     FlowScope
	Dimension FlowDimension
	Entries   []FlowEntry
}

// Total sums all entry counts.
func (s FlowSlice) Total() float64 {
	var total float64
	for _, e := range s.Entries {
		total += e.Count
	}
	return total
}

// Share returns the entry's percentage of the slice total, or 0 when the slice
// is empty.
func (s FlowSlice) Share(label string) float64 {
	total := s.Total()
	if total == 0 {
		return 0
	}
	for _, e := range s.Entries {
		if e.Label == label {
			return e.Count / total * 100
		}
	}
	return 0
}

// Top returns the n entries with the largest counts, ordered descending. Equal
// counts keep their source order.
func (s FlowSlice) Top(n int) []FlowEntry {
	ranked := make([]FlowEntry, len(s.Entries))
	copy(ranked, s.Entries)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n]
}

// WorkforceSlice is the workplace population distribution over gender and age
// bands. Only the whole survey area is available in the source data.
type WorkforceSlice struct {
	Scope   FlowScope
	Entries []FlowEntry
}

// Total sums all entry counts.
func (s WorkforceSlice) Total() float64 {
	var total float64
	for _, e := range s.Entries {
		total += e.Count
	}
	return total
}
