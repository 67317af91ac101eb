package parser

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/KaramelBytes/phenoqc/internal/measurement"
)

// LoadMeasurements parses a measurement file. Records whose x or y value is
// missing or not finite are dropped and logged; they never reach the
// statistics. Date-valued x is converted to Unix milliseconds.
func LoadMeasurements(path string, log logrus.FieldLogger) ([]measurement.Measurement, error) {
	rows, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	ids := newIdentifiers(log)
	out := make([]measurement.Measurement, 0, len(rows))
	for _, r := range rows {
		m, field, ok := r.measurement(ids)
		if !ok {
			log.WithFields(logrus.Fields{
				"measurement": r["m"],
				"animal":      r["a"],
				"field":       field,
				"value":       r[field],
			}).Warn("dropping measurement with invalid value")
			continue
		}
		out = append(out, m)
	}
	log.WithFields(logrus.Fields{"file": path, "rows": len(rows), "kept": len(out)}).Debug("measurements loaded")
	return out, nil
}

// LoadCategorical parses a categorical measurement file. The category is
// read from the value column as text.
func LoadCategorical(path string, log logrus.FieldLogger) ([]measurement.Datum, error) {
	rows, err := ParseFile(path)
	if err != nil {
		return nil, err
	}
	ids := newIdentifiers(log)
	out := make([]measurement.Datum, 0, len(rows))
	for _, r := range rows {
		d, ok := r.datum(ids)
		if !ok {
			log.WithFields(logrus.Fields{
				"measurement": r["m"],
				"animal":      r["a"],
				"field":       "y",
			}).Warn("dropping datum without category")
			continue
		}
		out = append(out, d)
	}
	log.WithFields(logrus.Fields{"file": path, "rows": len(rows), "kept": len(out)}).Debug("categorical data loaded")
	return out, nil
}

// measurement converts the row. A row without an x value takes its date as
// x. When the row is rejected, field names the offending attribute.
func (r Row) measurement(ids *identifiers) (m measurement.Measurement, field string, ok bool) {
	date, hasDate := parseIncrement(r["d"])
	x, ok := parseIncrement(r["x"])
	if !ok {
		// date-only rows are plotted against their date
		if strings.TrimSpace(r["x"]) != "" || !hasDate {
			return m, "x", false
		}
		x = date
	}
	y, ok := parseNumeric(r["y"])
	if !ok || !finite(y) {
		return m, "y", false
	}
	m = measurement.Measurement{
		MeasurementID: ids.measurement.id("m", r["m"]),
		AnimalID:      ids.animal.id("a", r["a"]),
		X:             x,
		Y:             y,
		Sex:           parseSex(r["s"]),
		Zygosity:      parseZygosity(r["z"]),
		Genotype:      parseGenotype(r["g"]),
	}
	if hasDate {
		m.Date = date
	}
	return m, "", true
}

// datum converts the row into a categorical observation.
func (r Row) datum(ids *identifiers) (measurement.Datum, bool) {
	v := strings.TrimSpace(r["y"])
	if v == "" {
		return measurement.Datum{}, false
	}
	return measurement.Datum{
		MeasurementID: ids.measurement.id("m", r["m"]),
		AnimalID:      ids.animal.id("a", r["a"]),
		Genotype:      parseGenotype(r["g"]),
		Sex:           parseSex(r["s"]),
		Zygosity:      parseZygosity(r["z"]),
		Value:         v,
	}, true
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// parseIncrement accepts a number or a date, returning dates as Unix
// milliseconds.
func parseIncrement(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if f, ok := parseNumeric(s); ok {
		return f, finite(f)
	}
	if t, ok := parseTimeMaybe(s); ok {
		return float64(t.UnixMilli()), true
	}
	return 0, false
}

func parseTimeMaybe(s string) (time.Time, bool) {
	layouts := []string{
		time.RFC3339, "2006-01-02 15:04:05", "2006-01-02 15:04", "2006-01-02",
		"2006/01/02", "02/01/2006", "1/2/2006 15:04", "1/2/2006 15:04:05",
	}
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseNumeric reads plain and locale-formatted numbers. A comma after the
// last dot, or a lone comma, is the decimal separator.
func parseNumeric(s string) (float64, bool) {
	raw := strings.TrimSpace(strings.ReplaceAll(s, "\u00A0", " "))
	if raw == "" {
		return 0, false
	}
	cpos := strings.LastIndex(raw, ",")
	dpos := strings.LastIndex(raw, ".")
	dec := '.'
	if cpos > dpos {
		dec = ','
	}
	for _, sep := range []rune{',', '.', ' '} {
		if sep != dec {
			raw = strings.ReplaceAll(raw, string(sep), "")
		}
	}
	if dec != '.' {
		raw = strings.ReplaceAll(raw, string(dec), ".")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// identifiers holds the per-load id tables of one file.
type identifiers struct {
	animal, measurement idTable
}

func newIdentifiers(log logrus.FieldLogger) *identifiers {
	return &identifiers{
		animal:      idTable{log: log},
		measurement: idTable{log: log},
	}
}

// idTable maps identifiers to int64. Integer ids keep their value; any other
// id, such as a specimen name "M001", gets a stable negative id in first-seen
// order so distinct names stay distinct series. A blank id is 0.
type idTable struct {
	log  logrus.FieldLogger
	seen map[string]int64
}

func (t *idTable) id(field, s string) int64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		return id
	}
	if id, ok := t.seen[s]; ok {
		return id
	}
	if t.seen == nil {
		t.seen = make(map[string]int64)
	}
	id := -int64(len(t.seen) + 1)
	t.seen[s] = id
	t.log.WithFields(logrus.Fields{"field": field, "value": s, "id": id}).Debug("assigned id to non-numeric identifier")
	return id
}

func parseSex(s string) measurement.Sex {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "0", "f", "female":
		return measurement.Female
	case "1", "m", "male":
		return measurement.Male
	}
	return measurement.UnknownSex
}

func parseZygosity(s string) measurement.Zygosity {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "0", "het", "heterozygous", "heterozygote":
		return measurement.Heterozygous
	case "1", "hom", "homozygous", "homozygote":
		return measurement.Homozygous
	case "2", "hem", "hemizygous", "hemizygote":
		return measurement.Hemizygous
	}
	return measurement.UnknownZygosity
}

// parseGenotype reads a numeric genotype. Control aliases map to wildtype;
// anything else that is not a number, including a missing value, counts as
// a mutant.
func parseGenotype(s string) measurement.Genotype {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "wildtype", "wt", "baseline", "control":
		return measurement.Wildtype
	}
	g, err := strconv.Atoi(s)
	if err != nil {
		return measurement.Genotype(-1)
	}
	return measurement.Genotype(g)
}
