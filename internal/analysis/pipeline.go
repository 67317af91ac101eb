// Package analysis prepares measurement datasets for plotting: overall,
// per-increment and per-specimen statistics, split by sex and genotype.
package analysis

import (
	"fmt"

	"github.com/KaramelBytes/phenoqc/internal/measurement"
	"github.com/KaramelBytes/phenoqc/internal/stats"
)

// Columns names the measurement attributes that drive the pipeline.
type Columns struct {
	// Key groups points into series, usually the animal.
	Key string `json:"key" yaml:"key"`
	// X is the independent variable: "x" for increments, "d" for dates.
	X           string `json:"x" yaml:"x"`
	Y           string `json:"y" yaml:"y"`
	Animal      string `json:"animal" yaml:"animal"`
	Measurement string `json:"measurement" yaml:"measurement"`
}

// DefaultColumns returns the column names of a series chart.
func DefaultColumns() Columns {
	return Columns{Key: "a", X: "x", Y: "y", Animal: "a", Measurement: "m"}
}

type accessors struct {
	key         stats.Accessor[measurement.Measurement, int64]
	x           stats.Accessor[measurement.Measurement, float64]
	y           stats.Accessor[measurement.Measurement, float64]
	animal      stats.Accessor[measurement.Measurement, int64]
	measurement stats.Accessor[measurement.Measurement, int64]
}

func (c Columns) resolve() (accessors, error) {
	var (
		acc accessors
		err error
	)
	if acc.key, err = measurement.Identity(c.Key); err != nil {
		return acc, fmt.Errorf("key: %w", err)
	}
	if acc.x, err = measurement.Numeric(c.X); err != nil {
		return acc, fmt.Errorf("x: %w", err)
	}
	if acc.y, err = measurement.Numeric(c.Y); err != nil {
		return acc, fmt.Errorf("y: %w", err)
	}
	if acc.animal, err = measurement.Identity(c.Animal); err != nil {
		return acc, fmt.Errorf("animal: %w", err)
	}
	if acc.measurement, err = measurement.Identity(c.Measurement); err != nil {
		return acc, fmt.Errorf("measurement: %w", err)
	}
	return acc, nil
}

func (acc accessors) point(m measurement.Measurement) measurement.Point {
	return measurement.Point{
		MeasurementID: acc.measurement.Get(m),
		AnimalID:      acc.animal.Get(m),
		X:             acc.x.Get(m),
		Y:             acc.y.Get(m),
		Sex:           m.Sex,
		Zygosity:      m.Zygosity,
	}
}

// Range is the plotted extent of the independent variable.
type Range struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// Overall holds the statistics drawn as reference lines.
type Overall struct {
	X Range          `json:"x" yaml:"x"`
	Y *stats.Summary `json:"y" yaml:"y"`
}

// Bundle is the nested statistics of one dataset.
type Bundle struct {
	O Overall                                       `json:"o" yaml:"o"`
	C *stats.ColumnGroups[float64]                  `json:"c" yaml:"c"`
	R *stats.SeriesGroups[int64, measurement.Point] `json:"r" yaml:"r"`
}

// Len returns the number of measurements summarized by b.
func (b *Bundle) Len() int {
	if b == nil {
		return 0
	}
	return b.C.Len()
}

// Prepare computes the bundle for data. It returns nil for an empty dataset.
// Unknown column names are reported even when data is empty.
func Prepare(data []measurement.Measurement, cols Columns) (*Bundle, error) {
	acc, err := cols.resolve()
	if err != nil {
		return nil, err
	}
	return prepare(data, acc), nil
}

func prepare(data []measurement.Measurement, acc accessors) *Bundle {
	if len(data) == 0 {
		return nil
	}
	b := &Bundle{
		O: Overall{Y: stats.Column(data, acc.y, stats.By(acc.y))},
		C: stats.GroupColumns(data, acc.x, acc.y),
		R: stats.GroupSeries(data, acc.key, acc.x, acc.y, acc.point),
	}
	// column groups are ascending by x, so their ends bound the axis
	groups := b.C.Groups
	b.O.X = Range{Min: groups[0].Key, Max: groups[len(groups)-1].Key}
	return b
}

// SexBundles holds the combined bundle and the male-only and female-only
// bundles of one dataset. A per-sex bundle is nil when that sex has no
// measurements.
type SexBundles struct {
	O *Bundle `json:"o" yaml:"o"`
	M *Bundle `json:"m" yaml:"m"`
	F *Bundle `json:"f" yaml:"f"`
}

// Statistics prepares data as a whole and separately for each sex. The
// combined bundle is computed over the full dataset, so measurements of
// unknown sex appear only there. It returns nil for an empty dataset.
func Statistics(data []measurement.Measurement, cols Columns) (*SexBundles, error) {
	acc, err := cols.resolve()
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	var male, female []measurement.Measurement
	for _, m := range data {
		switch m.Sex {
		case measurement.Male:
			male = append(male, m)
		case measurement.Female:
			female = append(female, m)
		}
	}
	return &SexBundles{
		O: prepare(data, acc),
		M: prepare(male, acc),
		F: prepare(female, acc),
	}, nil
}

// Select returns the bundle matching the sex toggles: both sexes shown
// selects the combined bundle, one sex selects its own, neither selects
// nothing.
func (s *SexBundles) Select(showMale, showFemale bool) *Bundle {
	if s == nil {
		return nil
	}
	switch {
	case showMale && showFemale:
		return s.O
	case showMale:
		return s.M
	case showFemale:
		return s.F
	default:
		return nil
	}
}

// SplitGenotype separates mutant from wildtype measurements, keeping input
// order within each.
func SplitGenotype(data []measurement.Measurement) (mutant, wildtype []measurement.Measurement) {
	for _, m := range data {
		if m.Genotype.IsMutant() {
			mutant = append(mutant, m)
		} else {
			wildtype = append(wildtype, m)
		}
	}
	return mutant, wildtype
}
