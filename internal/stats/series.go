package stats

import (
	"cmp"
	"slices"
)

// SeriesGroup is one specimen's points, ordered by the independent variable.
type SeriesGroup[K, P any] struct {
	Key   K        `json:"k" yaml:"k"`
	Count int      `json:"c" yaml:"c"`
	Data  []P      `json:"d" yaml:"d"`
	Stats *Summary `json:"s" yaml:"s"`
}

// SeriesGroups are the series of a sample partitioned by key, ascending.
type SeriesGroups[K comparable, P any] struct {
	Index  *Index[K]           `json:"i" yaml:"i"`
	Groups []SeriesGroup[K, P] `json:"r" yaml:"r"`
}

// GroupSeries partitions data by key into series. Each series keeps the full
// identity of its points through project, is sorted ascending by x, and is
// summarized over y. It returns nil for empty data.
func GroupSeries[T any, K, X cmp.Ordered, P any](
	data []T,
	key Accessor[T, K],
	x Accessor[T, X],
	y Accessor[T, float64],
	project func(T) P,
) *SeriesGroups[K, P] {
	if len(data) == 0 {
		return nil
	}
	sorted := slices.Clone(data)
	slices.SortStableFunc(sorted, By(key))

	out := &SeriesGroups[K, P]{Index: NewIndex[K]()}
	byX := By(x)
	start := 0
	for i := 1; i <= len(sorted); i++ {
		if i < len(sorted) && cmp.Compare(key.Get(sorted[i]), key.Get(sorted[start])) == 0 {
			continue
		}
		members := slices.Clone(sorted[start:i])
		slices.SortStableFunc(members, byX)
		points := make([]P, len(members))
		for j, rec := range members {
			points[j] = project(rec)
		}
		k := key.Get(sorted[start])
		out.Index.add(k)
		out.Groups = append(out.Groups, SeriesGroup[K, P]{
			Key:   k,
			Count: len(members),
			Data:  points,
			Stats: Column(members, y, By(y)),
		})
		start = i
	}
	return out
}

// Series returns the series for k.
func (g *SeriesGroups[K, P]) Series(k K) (*SeriesGroup[K, P], bool) {
	if g == nil {
		return nil, false
	}
	i, ok := g.Index.Lookup(k)
	if !ok {
		return nil, false
	}
	return &g.Groups[i], true
}
