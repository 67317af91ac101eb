package analysis

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/KaramelBytes/phenoqc/internal/measurement"
	"github.com/KaramelBytes/phenoqc/internal/stats"
)

// Options controls how a dataset is turned into a view.
type Options struct {
	Columns Columns
	// Logger receives debug output; nil discards it.
	Logger logrus.FieldLogger
	// Precision is the number of significant digits used by Markdown.
	Precision int
}

// DefaultOptions returns the options of a series chart.
func DefaultOptions() Options {
	return Options{Columns: DefaultColumns(), Precision: 4}
}

// View is one render of a dataset: the mutant and wildtype statistics
// tracks. Every build gets a fresh ID.
type View struct {
	ID       string      `json:"id" yaml:"id"`
	Source   string      `json:"source,omitempty" yaml:"source,omitempty"`
	Columns  Columns     `json:"columns" yaml:"columns"`
	Mutant   *SexBundles `json:"mutant" yaml:"mutant"`
	Wildtype *SexBundles `json:"wildtype" yaml:"wildtype"`

	precision int
}

// BuildView splits data by genotype and prepares both tracks.
func BuildView(source string, data []measurement.Measurement, opt Options) (*View, error) {
	log := opt.Logger
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	mutant, wildtype := SplitGenotype(data)
	v := &View{ID: uuid.NewString(), Source: source, Columns: opt.Columns, precision: opt.Precision}
	var err error
	if v.Mutant, err = Statistics(mutant, opt.Columns); err != nil {
		return nil, fmt.Errorf("mutant statistics: %w", err)
	}
	if v.Wildtype, err = Statistics(wildtype, opt.Columns); err != nil {
		return nil, fmt.Errorf("wildtype statistics: %w", err)
	}
	log.WithFields(logrus.Fields{
		"view":     v.ID,
		"mutant":   len(mutant),
		"wildtype": len(wildtype),
	}).Debug("view prepared")
	return v, nil
}

// Markdown renders a compact text summary of the view.
func (v *View) Markdown() string {
	p := v.precision
	if p <= 0 {
		p = 4
	}
	var b strings.Builder
	b.WriteString("[DATASET SUMMARY]\n")
	if v.Source != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", v.Source))
	}
	b.WriteString(fmt.Sprintf("View: %s\n", v.ID))
	b.WriteString(fmt.Sprintf("Columns: key=%s x=%s y=%s\n", v.Columns.Key, v.Columns.X, v.Columns.Y))
	for _, track := range []struct {
		name string
		s    *SexBundles
	}{{"MUTANT", v.Mutant}, {"WILDTYPE", v.Wildtype}} {
		b.WriteString(fmt.Sprintf("\n[%s]\n", track.name))
		if track.s == nil {
			b.WriteString("No measurements\n")
			continue
		}
		writeBundle(&b, "all", track.s.O, p)
		writeBundle(&b, "male", track.s.M, p)
		writeBundle(&b, "female", track.s.F, p)
	}
	return b.String()
}

func writeBundle(b *strings.Builder, label string, bundle *Bundle, p int) {
	if bundle == nil {
		b.WriteString(fmt.Sprintf("- %s: none\n", label))
		return
	}
	b.WriteString(fmt.Sprintf("- %s: n=%d, specimens=%d, x in [%s, %s]\n",
		label, bundle.Len(), len(bundle.R.Groups), num(bundle.O.X.Min, p), num(bundle.O.X.Max, p)))
	b.WriteString("  • y: " + summaryLine(bundle.O.Y, p) + "\n")
	if label != "all" {
		return
	}
	for _, g := range bundle.C.Groups {
		b.WriteString(fmt.Sprintf("  • x=%s (n=%d): %s\n", num(g.Key, p), g.Count, summaryLine(g.Stats, p)))
	}
}

func summaryLine(s *stats.Summary, p int) string {
	if s == nil {
		return "no data"
	}
	out := fmt.Sprintf("mean %s, median %s (min %s, max %s)", num(s.Mean, p), num(s.Median, p), num(s.Min, p), num(s.Max, p))
	if s.SD != nil {
		out += fmt.Sprintf(", sd %s, se %s", num(*s.SD, p), num(*s.SE, p))
	}
	if s.Quartile != nil {
		out += fmt.Sprintf(", q1 %s, q3 %s", num(s.Quartile.Q1, p), num(s.Quartile.Q3, p))
	}
	return out
}

func num(f float64, p int) string {
	return fmt.Sprintf("%.*g", p, f)
}
