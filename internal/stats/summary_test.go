package stats

import (
	"math"
	"math/rand"
	"slices"
	"testing"

	mstats "github.com/aclements/go-moremath/stats"
	"github.com/google/go-cmp/cmp"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}

func TestArrayMedian(t *testing.T) {
	tests := []struct {
		in   []float64
		want float64
	}{
		{[]float64{1, 2, 3, 4, 5}, 3},
		{[]float64{1, 2, 3, 4}, 2.5},
		{[]float64{7}, 7},
		{[]float64{4, 1, 3, 2}, 2.5},
	}
	for _, tt := range tests {
		s := Array(tt.in, Natural[float64]())
		if s == nil {
			t.Fatalf("Array(%v) = nil", tt.in)
		}
		if s.Median != tt.want {
			t.Errorf("median(%v) = %v, want %v", tt.in, s.Median, tt.want)
		}
	}
}

func TestArrayQuartiles(t *testing.T) {
	in := []float64{9, 3, 7, 1, 5, 2, 8, 4, 6}
	s := Array(in, Natural[float64]())
	want := &Quartile{Q1: 3, Q3: 7}
	if diff := cmp.Diff(want, s.Quartile); diff != "" {
		t.Fatalf("quartile mismatch (-want +got):\n%s", diff)
	}
	if s.Median != 5 {
		t.Fatalf("median = %v, want 5", s.Median)
	}

	// k = 1.75 and 3.25: both interpolate between neighbours.
	s = Array([]float64{1, 2, 3, 4}, nil)
	if !approx(s.Quartile.Q1, 1.75) || !approx(s.Quartile.Q3, 3.25) {
		t.Fatalf("interpolated quartile = %+v, want {1.75 3.25}", *s.Quartile)
	}

	s = Array([]float64{10, 20}, nil)
	if !approx(s.Quartile.Q1, 12.5) || !approx(s.Quartile.Q3, 17.5) {
		t.Fatalf("two point quartile = %+v", *s.Quartile)
	}
}

func TestArraySingleton(t *testing.T) {
	s := Array([]float64{42}, Natural[float64]())
	if s.Quartile != nil {
		t.Fatalf("singleton quartile = %+v, want nil", s.Quartile)
	}
	if s.SD != nil || s.SE != nil {
		t.Fatalf("singleton sd/se should be nil, got %v/%v", s.SD, s.SE)
	}
	if s.Sum != 42 || s.Min != 42 || s.Max != 42 || s.Mean != 42 || s.Median != 42 {
		t.Fatalf("unexpected singleton summary: %+v", s)
	}
}

func TestArrayEmpty(t *testing.T) {
	if s := Array(nil, nil); s != nil {
		t.Fatalf("Array(nil) = %+v, want nil", s)
	}
	if s := Array([]float64{}, Natural[float64]()); s != nil {
		t.Fatalf("Array(empty) = %+v, want nil", s)
	}
	if s := Column([]float64{}, Field("v", func(v float64) float64 { return v }), nil); s != nil {
		t.Fatalf("Column(empty) = %+v, want nil", s)
	}
}

func TestArrayDoesNotMutateInput(t *testing.T) {
	in := []float64{5, 1, 4, 2, 3}
	orig := slices.Clone(in)
	_ = Array(in, Natural[float64]())
	if diff := cmp.Diff(orig, in); diff != "" {
		t.Fatalf("input mutated (-want +got):\n%s", diff)
	}
}

func TestArrayMatchesMoremath(t *testing.T) {
	in := []float64{12.1, 9.8, 10.4, 11.0, 13.7, 9.1, 10.9, 12.6}
	s := Array(in, Natural[float64]())
	ref := mstats.Sample{Xs: in}
	lo, hi := ref.Bounds()
	if !approx(s.Mean, ref.Mean()) {
		t.Errorf("mean = %v, want %v", s.Mean, ref.Mean())
	}
	if !approx(*s.SD, ref.StdDev()) {
		t.Errorf("sd = %v, want %v", *s.SD, ref.StdDev())
	}
	if !approx(*s.SE, ref.StdDev()/math.Sqrt(float64(len(in)))) {
		t.Errorf("se = %v", *s.SE)
	}
	if s.Min != lo || s.Max != hi {
		t.Errorf("bounds = [%v,%v], want [%v,%v]", s.Min, s.Max, lo, hi)
	}
	if !approx(s.Sum, ref.Sum()) {
		t.Errorf("sum = %v, want %v", s.Sum, ref.Sum())
	}
}

func TestArrayOrderingProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for n := 1; n <= 40; n++ {
		in := make([]float64, n)
		for i := range in {
			in[i] = math.Round(rng.NormFloat64()*100) / 10
		}
		s := Array(in, Natural[float64]())
		if s.Min > s.Median || s.Median > s.Max {
			t.Fatalf("n=%d: median %v outside [%v,%v]", n, s.Median, s.Min, s.Max)
		}
		if s.Min > s.Mean+1e-9 || s.Mean > s.Max+1e-9 {
			t.Fatalf("n=%d: mean %v outside [%v,%v]", n, s.Mean, s.Min, s.Max)
		}
		if (s.Quartile == nil) != (n < 2) {
			t.Fatalf("n=%d: quartile presence = %v", n, s.Quartile != nil)
		}
		if s.Quartile == nil {
			continue
		}
		q := s.Quartile
		if q.Q1 > s.Median || s.Median > q.Q3 || q.Q1 < s.Min || q.Q3 > s.Max {
			t.Fatalf("n=%d: quartiles %+v inconsistent with median %v in [%v,%v]", n, *q, s.Median, s.Min, s.Max)
		}
	}
}

func TestColumnByPosition(t *testing.T) {
	rows := [][]float64{{0, 4}, {1, 2}, {2, 9}, {3, 1}}
	col := Position[float64](1)
	s := Column(rows, col, By(col))
	if s.Median != 3 || s.Min != 1 || s.Max != 9 {
		t.Fatalf("unexpected column summary: %+v", s)
	}
	if rows[0][1] != 4 {
		t.Fatalf("rows reordered")
	}
}

func TestRows(t *testing.T) {
	rs := Rows([][]float64{{3, 1}, {2}, {}}, Natural[float64]())
	if rs == nil || len(rs.Rows) != 3 {
		t.Fatalf("unexpected row statistics: %+v", rs)
	}
	if rs.Rows[2] != nil {
		t.Fatalf("empty row should have nil summary")
	}
	if rs.Rows[0].Median != 2 || rs.Rows[1].Median != 2 {
		t.Fatalf("row medians: %v %v", rs.Rows[0].Median, rs.Rows[1].Median)
	}
	if rs.Overall.Sum != 6 || rs.Overall.Median != 2 || rs.Overall.Quartile == nil {
		t.Fatalf("overall: %+v", rs.Overall)
	}
	if Rows(nil, nil) != nil {
		t.Fatalf("Rows(nil) should be nil")
	}
}
