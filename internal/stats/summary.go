// Package stats computes descriptive statistics and the grouped summaries
// that drive whisker, error bar and series charts.
//
// Functions in this package never modify the slices they are given. When a
// comparator is supplied the input is sorted into an owned copy; a nil
// comparator means the caller guarantees the input is already sorted.
package stats

import (
	"math"
	"slices"
)

// Quartile holds the first and third quartile of a sample.
type Quartile struct {
	Q1 float64 `json:"q1" yaml:"q1"`
	Q3 float64 `json:"q3" yaml:"q3"`
}

// Summary is the descriptive statistics of one sample.
// SD and SE are nil when the sample has fewer than two values, and so is
// Quartile.
type Summary struct {
	Sum      float64   `json:"sum" yaml:"sum"`
	Max      float64   `json:"max" yaml:"max"`
	Min      float64   `json:"min" yaml:"min"`
	Mean     float64   `json:"mean" yaml:"mean"`
	Median   float64   `json:"median" yaml:"median"`
	SD       *float64  `json:"sd" yaml:"sd"`
	SE       *float64  `json:"se" yaml:"se"`
	Quartile *Quartile `json:"quartile" yaml:"quartile"`
}

// Array summarizes a numeric sample. It returns nil for an empty sample.
func Array(data []float64, order Comparator[float64]) *Summary {
	if len(data) == 0 {
		return nil
	}
	if order != nil {
		data = slices.Clone(data)
		slices.SortStableFunc(data, order)
	}
	return summarize(len(data), func(i int) float64 { return data[i] })
}

// Column summarizes one numeric column of a record sample. It returns nil
// for an empty sample.
func Column[T any](data []T, col Accessor[T, float64], order Comparator[T]) *Summary {
	if len(data) == 0 || !col.Valid() {
		return nil
	}
	if order != nil {
		data = slices.Clone(data)
		slices.SortStableFunc(data, order)
	}
	return summarize(len(data), func(i int) float64 { return col.Get(data[i]) })
}

// summarize works on n sorted values reachable through at.
func summarize(n int, at func(int) float64) *Summary {
	first := at(0)
	s := &Summary{Sum: first, Max: first, Min: first}
	for i := 1; i < n; i++ {
		v := at(i)
		if v > s.Max {
			s.Max = v
		}
		if v < s.Min {
			s.Min = v
		}
		s.Sum += v
	}
	s.Mean = s.Sum / float64(n)

	mid := n / 2
	if n%2 == 1 {
		s.Median = at(mid)
	} else {
		s.Median = (at(mid) + at(mid-1)) * .5
	}

	if n < 2 {
		return s
	}
	var sq float64
	for i := 0; i < n; i++ {
		d := at(i) - s.Mean
		sq += d * d
	}
	sd := math.Sqrt(sq / float64(n-1))
	se := sd / math.Sqrt(float64(n))
	s.SD, s.SE = &sd, &se
	s.Quartile = &Quartile{Q1: quartile(1, n, at), Q3: quartile(3, n, at)}
	return s
}

// quartile interpolates linearly between the ranks surrounding
// q*0.25*(n-1)+1. Ranks are 1-based; at is 0-based.
func quartile(q, n int, at func(int) float64) float64 {
	k := float64(q)*.25*float64(n-1) + 1
	lo := math.Floor(k)
	frac := k - lo
	low := at(int(lo) - 1)
	high := at(int(lo))
	return low + frac*(high-low)
}

// RowStatistics holds one summary per row and the summary of all rows
// taken together.
type RowStatistics struct {
	Overall *Summary   `json:"o" yaml:"o"`
	Rows    []*Summary `json:"r" yaml:"r"`
}

// Rows summarizes each row of a ragged two-dimensional sample, then merges
// the sorted rows to summarize the whole sample without a second full sort.
// It returns nil when there are no rows. Empty rows get a nil summary.
func Rows(rows [][]float64, order Comparator[float64]) *RowStatistics {
	if len(rows) == 0 {
		return nil
	}
	sorted := make([][]float64, len(rows))
	for i, row := range rows {
		if order != nil {
			row = slices.Clone(row)
			slices.SortStableFunc(row, order)
		}
		sorted[i] = row
	}
	rs := &RowStatistics{Rows: make([]*Summary, len(rows))}
	for i, row := range sorted {
		rs.Rows[i] = Array(row, nil)
	}
	merge := order
	if merge == nil {
		merge = Natural[float64]()
	}
	rs.Overall = Array(MergeAll(sorted, merge), nil)
	return rs
}
