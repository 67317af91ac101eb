package measurement

import (
	"errors"
	"fmt"
	"strings"

	"github.com/KaramelBytes/phenoqc/internal/stats"
)

// ErrUnknownColumn is returned when a column name does not address a
// measurement attribute of the requested kind.
var ErrUnknownColumn = errors.New("unknown column")

var numeric = map[string]stats.Accessor[Measurement, float64]{
	"x": stats.Field("x", func(m Measurement) float64 { return m.X }),
	"y": stats.Field("y", func(m Measurement) float64 { return m.Y }),
	"d": stats.Field("d", func(m Measurement) float64 { return m.Date }),
}

var identity = map[string]stats.Accessor[Measurement, int64]{
	"m": stats.Field("m", func(m Measurement) int64 { return m.MeasurementID }),
	"a": stats.Field("a", func(m Measurement) int64 { return m.AnimalID }),
	"g": stats.Field("g", func(m Measurement) int64 { return int64(m.Genotype) }),
	"s": stats.Field("s", func(m Measurement) int64 { return int64(m.Sex) }),
	"z": stats.Field("z", func(m Measurement) int64 { return int64(m.Zygosity) }),
}

// aliases maps long attribute names onto the short names above.
var aliases = map[string]string{
	"increment":      "x",
	"i":              "x",
	"value":          "y",
	"v":              "y",
	"date":           "d",
	"experimentdate": "d",
	"measurement":    "m",
	"measurementid":  "m",
	"animal":         "a",
	"animalid":       "a",
	"specimen":       "a",
	"specimenid":     "a",
	"genotype":       "g",
	"sex":            "s",
	"gender":         "s",
	"zygosity":       "z",
}

// Canonical returns the short attribute name for name, accepting the long
// forms used by CSV headers ("animal_id", "Measurement ID", ...).
func Canonical(name string) string {
	n := strings.ToLower(strings.TrimSpace(name))
	n = strings.NewReplacer("_", "", "-", "", " ", "").Replace(n)
	if short, ok := aliases[n]; ok {
		return short
	}
	return n
}

// Numeric returns the accessor for a numeric plotting column (x, y or d).
func Numeric(name string) (stats.Accessor[Measurement, float64], error) {
	a, ok := numeric[Canonical(name)]
	if !ok {
		return a, fmt.Errorf("numeric column %q: %w", name, ErrUnknownColumn)
	}
	return a, nil
}

// Identity returns the accessor for an integral identity column, usable as
// a grouping key.
func Identity(name string) (stats.Accessor[Measurement, int64], error) {
	a, ok := identity[Canonical(name)]
	if !ok {
		return a, fmt.Errorf("identity column %q: %w", name, ErrUnknownColumn)
	}
	return a, nil
}
