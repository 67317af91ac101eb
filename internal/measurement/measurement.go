// Package measurement defines the phenotyping records the statistics engine
// consumes and the named columns that address them.
package measurement

// Sex of a specimen.
type Sex int

const (
	UnknownSex Sex = -1
	Female     Sex = 0
	Male       Sex = 1
)

func (s Sex) String() string {
	switch s {
	case Female:
		return "female"
	case Male:
		return "male"
	default:
		return "unknown"
	}
}

// Zygosity of a specimen.
type Zygosity int

const (
	UnknownZygosity Zygosity = -1
	Heterozygous    Zygosity = 0
	Homozygous      Zygosity = 1
	Hemizygous      Zygosity = 2
)

func (z Zygosity) String() string {
	switch z {
	case Heterozygous:
		return "heterozygous"
	case Homozygous:
		return "homozygous"
	case Hemizygous:
		return "hemizygous"
	default:
		return "unknown"
	}
}

// Genotype is 0 for wildtype (control) specimens; any other value is a mutant.
type Genotype int

const Wildtype Genotype = 0

// IsMutant reports whether g is a mutant genotype.
func (g Genotype) IsMutant() bool { return g != Wildtype }

// Measurement is one recorded value for one specimen at one position of the
// independent variable. X is the increment value; Date is the experiment
// date in Unix milliseconds, used as the independent variable of
// point charts.
type Measurement struct {
	MeasurementID int64    `json:"m" yaml:"m"`
	AnimalID      int64    `json:"a" yaml:"a"`
	X             float64  `json:"x" yaml:"x"`
	Y             float64  `json:"y" yaml:"y"`
	Date          float64  `json:"d" yaml:"d"`
	Sex           Sex      `json:"s" yaml:"s"`
	Zygosity      Zygosity `json:"z" yaml:"z"`
	Genotype      Genotype `json:"g" yaml:"g"`
}

// Point is a measurement as drawn in a specimen series.
type Point struct {
	MeasurementID int64    `json:"m" yaml:"m"`
	AnimalID      int64    `json:"a" yaml:"a"`
	X             float64  `json:"x" yaml:"x"`
	Y             float64  `json:"y" yaml:"y"`
	Sex           Sex      `json:"s" yaml:"s"`
	Zygosity      Zygosity `json:"z" yaml:"z"`
}

// Datum is one categorical observation.
type Datum struct {
	MeasurementID int64    `json:"m" yaml:"m"`
	AnimalID      int64    `json:"a" yaml:"a"`
	Genotype      Genotype `json:"g" yaml:"g"`
	Sex           Sex      `json:"s" yaml:"s"`
	Zygosity      Zygosity `json:"z" yaml:"z"`
	Value         string   `json:"v" yaml:"v"`
}
