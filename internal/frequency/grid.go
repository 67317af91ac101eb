// Package frequency builds the sex by zygosity frequency grid of a
// categorical parameter.
//
//	               Homozygous  Heterozygous  Both
//	       Male      (0, 0)       (0, 1)     (0, 2)
//	     Female      (1, 0)       (1, 1)     (1, 2)
//	       Both      (2, 0)       (2, 1)     (2, 2)
package frequency

import "github.com/KaramelBytes/phenoqc/internal/measurement"

// Grid rows.
const (
	RowMale = iota
	RowFemale
	RowBoth
)

// Grid columns.
const (
	ColHomozygous = iota
	ColHeterozygous
	ColBoth
)

// Counts maps a category to the number of specimens that have it.
type Counts map[string]int

// Percentages is the share of each category within one table.
type Percentages struct {
	Total  int                `json:"t" yaml:"t"`
	Shares map[string]float64 `json:"s" yaml:"s"`
}

func percentages(c Counts) Percentages {
	p := Percentages{Shares: make(map[string]float64, len(c))}
	for _, n := range c {
		p.Total += n
	}
	for k, n := range c {
		p.Shares[k] = float64(n) * 100.0 / float64(p.Total)
	}
	return p
}

// Cell holds the mutant and wildtype tables for one sex and zygosity
// combination.
type Cell struct {
	Mutant      Counts      `json:"m" yaml:"m"`
	Wildtype    Counts      `json:"b" yaml:"b"`
	MutantPct   Percentages `json:"sm" yaml:"sm"`
	WildtypePct Percentages `json:"sb" yaml:"sb"`
}

// Grid is indexed by row then column.
type Grid [3][3]Cell

// Build counts data into a grid and derives the percentages of every table.
// Records of unknown sex reach only the both-sexes row. Within a sex row,
// hemizygous and unknown zygosity count as heterozygous; the both-sexes row
// takes only homozygous and heterozygous records into its zygosity columns.
func Build(data []measurement.Datum) *Grid {
	g := new(Grid)
	for i := range g {
		for j := range g[i] {
			g[i][j].Mutant = Counts{}
			g[i][j].Wildtype = Counts{}
		}
	}
	for _, d := range data {
		g.add(d)
	}
	for i := range g {
		for j := range g[i] {
			c := &g[i][j]
			c.MutantPct = percentages(c.Mutant)
			c.WildtypePct = percentages(c.Wildtype)
		}
	}
	return g
}

func (g *Grid) add(d measurement.Datum) {
	inc := func(row, col int) {
		c := &g[row][col]
		if d.Genotype.IsMutant() {
			c.Mutant[d.Value]++
		} else {
			c.Wildtype[d.Value]++
		}
	}
	inc(RowBoth, ColBoth)

	row := -1
	switch d.Sex {
	case measurement.Male:
		row = RowMale
	case measurement.Female:
		row = RowFemale
	}
	if row >= 0 {
		inc(row, ColBoth)
		// sex rows file every non-homozygous record as heterozygous
		if d.Zygosity == measurement.Homozygous {
			inc(row, ColHomozygous)
		} else {
			inc(row, ColHeterozygous)
		}
	}
	switch d.Zygosity {
	case measurement.Homozygous:
		inc(RowBoth, ColHomozygous)
	case measurement.Heterozygous:
		inc(RowBoth, ColHeterozygous)
	}
}
