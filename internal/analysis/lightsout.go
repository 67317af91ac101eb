package analysis

import (
	"time"

	"github.com/KaramelBytes/phenoqc/internal/measurement"
)

// SinceLightsOut re-expresses date-valued x as hours since lights-out. Each
// animal's reference is the given hour, in loc, on the day of its earliest
// measurement, so readings taken before lights-out are negative. A nil loc
// means UTC. The input is not modified.
func SinceLightsOut(data []measurement.Measurement, hour int, loc *time.Location) []measurement.Measurement {
	if loc == nil {
		loc = time.UTC
	}
	ref := make(map[int64]float64)
	for _, m := range data {
		if r, ok := ref[m.AnimalID]; !ok || m.X < r {
			ref[m.AnimalID] = m.X
		}
	}
	for id, first := range ref {
		t := time.UnixMilli(int64(first)).In(loc)
		off := time.Date(t.Year(), t.Month(), t.Day(), hour, 0, 0, 0, loc)
		ref[id] = float64(off.UnixMilli())
	}
	out := make([]measurement.Measurement, len(data))
	for i, m := range data {
		m.X = (m.X - ref[m.AnimalID]) / float64(time.Hour/time.Millisecond)
		out[i] = m
	}
	return out
}
