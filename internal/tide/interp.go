package tide

import (
	"math"
	"sort"
	"time"

	"github.com/tidecast/tidecast/internal/models"
)

// Interpolate blends two heights with a half-cosine curve. The S-shape
// tracks the sinusoidal rise and fall of real tides far better than a
// straight line; Interpolate(h1, h2, 0) == h1 and Interpolate(h1, h2, 1)
// == h2 exactly.
func Interpolate(h1, h2, fraction float64) float64 {
	return h1 + (h2-h1)*(1-math.Cos(fraction*math.Pi))/2
}

// StateAt computes the tide motion, half-cycle progress and interpolated
// height at a given instant. Queries outside the dataset's span, or against
// datasets with fewer than two extremes, return TideUnknown; there is no
// extrapolation.
func StateAt(dataset *models.TideDataset, at time.Time) models.TideState {
	unknown := models.TideState{Motion: models.TideUnknown}
	if dataset == nil {
		return unknown
	}

	extremes := dataset.SortedExtremes()
	if len(extremes) < 2 {
		return unknown
	}

	ts := at.Unix()
	if ts < extremes[0].Timestamp || ts > extremes[len(extremes)-1].Timestamp {
		return unknown
	}

	// Index of the last extreme at or before ts.
	idx := sort.Search(len(extremes), func(i int) bool {
		return extremes[i].Timestamp > ts
	})
	lower := idx - 1
	if lower == len(extremes)-1 {
		// Exactly on the final extreme; use the last bracket.
		lower--
	}
	e1, e2 := extremes[lower], extremes[lower+1]

	fraction := float64(ts-e1.Timestamp) / float64(e2.Timestamp-e1.Timestamp)

	// Coming off a low the tide rises into the next extreme, and vice versa.
	motion := models.TideFalling
	if e1.Kind == models.TideKindLow {
		motion = models.TideRising
	}

	return models.TideState{
		Motion:   motion,
		Progress: fraction * 100,
		Height:   Interpolate(e1.Height, e2.Height, fraction),
	}
}

// Curve samples the interpolated tide height from origin across totalHours
// at stepMinutes granularity. Points outside the dataset's span are
// omitted; a dataset with fewer than two extremes yields no points.
func Curve(dataset *models.TideDataset, origin time.Time, totalHours, stepMinutes int) []models.CurvePoint {
	if dataset == nil || len(dataset.Extremes) < 2 || totalHours <= 0 || stepMinutes <= 0 {
		return nil
	}

	steps := totalHours * 60 / stepMinutes
	points := make([]models.CurvePoint, 0, steps+1)
	for i := 0; i <= steps; i++ {
		t := origin.Add(time.Duration(i*stepMinutes) * time.Minute)
		state := StateAt(dataset, t)
		if state.Motion == models.TideUnknown {
			continue
		}
		points = append(points, models.CurvePoint{
			Timestamp: t.Unix(),
			Height:    state.Height,
		})
	}
	return points
}
