package stats

import (
	"cmp"
	"slices"
)

// ColumnGroup is one run of values sharing a key.
type ColumnGroup[K any] struct {
	Key   K         `json:"k" yaml:"k"`
	Count int       `json:"c" yaml:"c"`
	Data  []float64 `json:"d" yaml:"d"`
	Stats *Summary  `json:"s" yaml:"s"`
}

// ColumnGroups are the groups of a sample partitioned by key, ascending.
type ColumnGroups[K comparable] struct {
	Index  *Index[K]        `json:"i" yaml:"i"`
	Groups []ColumnGroup[K] `json:"c" yaml:"c"`
}

// GroupColumns partitions data by key and summarizes value within each group.
// Groups are ordered ascending by key and each group's data is sorted
// ascending. It returns nil for empty data. Keys must not be NaN.
func GroupColumns[T any, K cmp.Ordered](data []T, key Accessor[T, K], value Accessor[T, float64]) *ColumnGroups[K] {
	if len(data) == 0 {
		return nil
	}
	sorted := slices.Clone(data)
	slices.SortStableFunc(sorted, By(key))

	out := &ColumnGroups[K]{Index: NewIndex[K]()}
	start := 0
	for i := 1; i <= len(sorted); i++ {
		if i < len(sorted) && cmp.Compare(key.Get(sorted[i]), key.Get(sorted[start])) == 0 {
			continue
		}
		values := make([]float64, 0, i-start)
		for _, rec := range sorted[start:i] {
			values = append(values, value.Get(rec))
		}
		slices.Sort(values)
		k := key.Get(sorted[start])
		out.Index.add(k)
		out.Groups = append(out.Groups, ColumnGroup[K]{
			Key:   k,
			Count: len(values),
			Data:  values,
			Stats: Array(values, nil),
		})
		start = i
	}
	return out
}

// Group returns the group for k.
func (g *ColumnGroups[K]) Group(k K) (*ColumnGroup[K], bool) {
	if g == nil {
		return nil, false
	}
	i, ok := g.Index.Lookup(k)
	if !ok {
		return nil, false
	}
	return &g.Groups[i], true
}

// Len returns the total number of values across all groups.
func (g *ColumnGroups[K]) Len() int {
	if g == nil {
		return 0
	}
	n := 0
	for _, grp := range g.Groups {
		n += grp.Count
	}
	return n
}

// Merged returns every grouped value in one ascending sequence, built by
// merging the already sorted group data.
func (g *ColumnGroups[K]) Merged() []float64 {
	if g == nil {
		return nil
	}
	runs := make([][]float64, len(g.Groups))
	for i, grp := range g.Groups {
		runs[i] = grp.Data
	}
	return MergeAll(runs, Natural[float64]())
}
