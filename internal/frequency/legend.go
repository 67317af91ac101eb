package frequency

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// Highlighted is the legend entry reserved for the selected specimen.
const Highlighted = "Highlighted specimen"

var palette = []string{
	"#ff0000", "#1f77b4", "#aec7e8", "#ff7f0e", "#ffbb78", "#2ca02c", "#98df8a",
	"#d62728", "#ff9896", "#9467bd", "#c5b0d5", "#8c564b", "#c49c94", "#e377c2",
	"#f7b6d2", "#7f7f7f", "#c7c7c7", "#bcbd22", "#dbdb8d", "#17becf", "#9edae5",
}

// Colour returns the fill colour of a style index.
func Colour(style int) string {
	if style < 0 {
		style = -style
	}
	return palette[style%len(palette)]
}

// Legend assigns each category a stable style index for one render.
type Legend struct {
	styles map[string]int
	order  []string
}

// NewLegend returns a legend holding only the highlighted entry at style 0.
func NewLegend() *Legend {
	return &Legend{styles: map[string]int{Highlighted: 0}, order: []string{Highlighted}}
}

// Style returns the style of category, registering it with the next free
// index if it has not been seen.
func (l *Legend) Style(category string) int {
	if s, ok := l.styles[category]; ok {
		return s
	}
	s := len(l.order)
	l.styles[category] = s
	l.order = append(l.order, category)
	return s
}

// Entry is one legend line.
type Entry struct {
	Category string `json:"c" yaml:"c"`
	Style    int    `json:"s" yaml:"s"`
	Colour   string `json:"colour" yaml:"colour"`
}

// Entries lists the legend in style order.
func (l *Legend) Entries() []Entry {
	out := make([]Entry, len(l.order))
	for i, c := range l.order {
		out[i] = Entry{Category: c, Style: l.styles[c], Colour: Colour(l.styles[c])}
	}
	return out
}

// Segment is one stacked piece of a frequency column. From and To are the
// cumulative percentages it spans.
type Segment struct {
	Category string  `json:"c" yaml:"c"`
	Percent  float64 `json:"p" yaml:"p"`
	Style    int     `json:"s" yaml:"s"`
	From     float64 `json:"from" yaml:"from"`
	To       float64 `json:"to" yaml:"to"`
}

// Segments stacks the shares of p in category order. Categories are
// registered with legend in the order they are visited.
func Segments(p Percentages, legend *Legend) []Segment {
	cats := make([]string, 0, len(p.Shares))
	for c := range p.Shares {
		cats = append(cats, c)
	}
	slices.Sort(cats)
	segs := make([]Segment, len(cats))
	at := 0.0
	for i, c := range cats {
		pct := p.Shares[c]
		segs[i] = Segment{Category: c, Percent: pct, Style: legend.Style(c), From: at, To: at + pct}
		at += pct
	}
	return segs
}

// Bar is the male or female half of a column.
type Bar struct {
	Male     bool      `json:"g" yaml:"g"`
	Total    int       `json:"t" yaml:"t"`
	Segments []Segment `json:"segments" yaml:"segments"`
}

// Column is one labelled pair of bars.
type Column struct {
	Label string `json:"l" yaml:"l"`
	Bars  [2]Bar `json:"bars" yaml:"bars"`
}

// Columns derives the four plotted columns of the grid, registering
// categories with legend in drawing order.
func (g *Grid) Columns(legend *Legend) []Column {
	specs := []struct {
		label        string
		male, female Percentages
	}{
		{"Homozygous mutant", g[RowMale][ColHomozygous].MutantPct, g[RowFemale][ColHomozygous].MutantPct},
		{"Heterozygous mutant", g[RowMale][ColHeterozygous].MutantPct, g[RowFemale][ColHeterozygous].MutantPct},
		{"Mutant", g[RowMale][ColBoth].MutantPct, g[RowFemale][ColBoth].MutantPct},
		{"Wildtype", g[RowMale][ColBoth].WildtypePct, g[RowFemale][ColBoth].WildtypePct},
	}
	out := make([]Column, len(specs))
	for i, s := range specs {
		out[i] = Column{
			Label: s.label,
			Bars: [2]Bar{
				{Male: true, Total: s.male.Total, Segments: Segments(s.male, legend)},
				{Male: false, Total: s.female.Total, Segments: Segments(s.female, legend)},
			},
		}
	}
	return out
}

var rowNames = [3]string{"Male", "Female", "Male/Female"}
var colNames = [3]string{"Homozygous", "Heterozygous", "Homozygous/Heterozygous"}

// Markdown renders every cell of the grid with its category shares.
func (g *Grid) Markdown(precision int) string {
	var b strings.Builder
	b.WriteString("[FREQUENCY GRID]\n")
	for i := range g {
		for j := range g[i] {
			c := g[i][j]
			b.WriteString(fmt.Sprintf("- %s / %s\n", rowNames[i], colNames[j]))
			b.WriteString("  • mutant: " + shareLine(c.MutantPct, precision) + "\n")
			b.WriteString("  • wildtype: " + shareLine(c.WildtypePct, precision) + "\n")
		}
	}
	return b.String()
}

func shareLine(p Percentages, precision int) string {
	if p.Total == 0 {
		return "none"
	}
	type kv struct {
		k string
		v float64
	}
	kvs := make([]kv, 0, len(p.Shares))
	for k, v := range p.Shares {
		kvs = append(kvs, kv{k, v})
	}
	slices.SortFunc(kvs, func(a, b kv) int { return cmp.Compare(a.k, b.k) })
	parts := make([]string, len(kvs))
	for i, e := range kvs {
		parts[i] = fmt.Sprintf("%s %.*f%%", e.k, precision, e.v)
	}
	return fmt.Sprintf("n=%d: %s", p.Total, strings.Join(parts, ", "))
}
