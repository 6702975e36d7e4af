package tide

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidecast/tidecast/internal/models"
)

func testDataset() *models.TideDataset {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return &models.TideDataset{
		Source: models.SourceLocalFree,
		Extremes: []models.TideExtreme{
			{Kind: models.TideKindLow, Timestamp: base.Unix(), Height: 0.2},
			{Kind: models.TideKindHigh, Timestamp: base.Add(6 * time.Hour).Unix(), Height: 2.4},
			{Kind: models.TideKindLow, Timestamp: base.Add(12 * time.Hour).Unix(), Height: 0.4},
			{Kind: models.TideKindHigh, Timestamp: base.Add(18 * time.Hour).Unix(), Height: 2.2},
		},
	}
}

func TestInterpolateBoundaries(t *testing.T) {
	cases := []struct {
		h1, h2 float64
	}{
		{0, 1},
		{0.2, 2.4},
		{-1.5, 3.25},
		{2.0, 0.5},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.h1, Interpolate(tc.h1, tc.h2, 0))
		assert.InDelta(t, tc.h2, Interpolate(tc.h1, tc.h2, 1), 1e-12)
	}
}

func TestInterpolateMidpoint(t *testing.T) {
	// cos(pi/2) == 0, so the half-cosine midpoint is the arithmetic mean.
	assert.InDelta(t, 1.3, Interpolate(0.2, 2.4, 0.5), 1e-12)
}

func TestStateAtDirection(t *testing.T) {
	dataset := testDataset()
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	rising := StateAt(dataset, base.Add(3*time.Hour))
	assert.Equal(t, models.TideRising, rising.Motion)
	assert.InDelta(t, 50, rising.Progress, 1e-9)
	assert.InDelta(t, 1.3, rising.Height, 1e-9)

	falling := StateAt(dataset, base.Add(9*time.Hour))
	assert.Equal(t, models.TideFalling, falling.Motion)
}

func TestStateAtExactExtremes(t *testing.T) {
	dataset := testDataset()
	extremes := dataset.SortedExtremes()

	first := StateAt(dataset, time.Unix(extremes[0].Timestamp, 0))
	assert.InDelta(t, extremes[0].Height, first.Height, 1e-9)
	assert.InDelta(t, 0, first.Progress, 1e-9)

	last := StateAt(dataset, time.Unix(extremes[len(extremes)-1].Timestamp, 0))
	assert.InDelta(t, extremes[len(extremes)-1].Height, last.Height, 1e-9)
	assert.InDelta(t, 100, last.Progress, 1e-9)

	// Interior extreme is the lower bound of its bracket.
	middle := StateAt(dataset, time.Unix(extremes[1].Timestamp, 0))
	assert.InDelta(t, extremes[1].Height, middle.Height, 1e-9)
	assert.InDelta(t, 0, middle.Progress, 1e-9)
}

func TestStateAtOutsideSpan(t *testing.T) {
	dataset := testDataset()
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	before := StateAt(dataset, base.Add(-time.Hour))
	assert.Equal(t, models.TideUnknown, before.Motion)

	after := StateAt(dataset, base.Add(19*time.Hour))
	assert.Equal(t, models.TideUnknown, after.Motion)
}

func TestStateAtInsufficientData(t *testing.T) {
	single := &models.TideDataset{
		Extremes: []models.TideExtreme{
			{Kind: models.TideKindHigh, Timestamp: time.Now().Unix(), Height: 2.0},
		},
	}

	assert.Equal(t, models.TideUnknown, StateAt(single, time.Now()).Motion)
	assert.Equal(t, models.TideUnknown, StateAt(&models.TideDataset{}, time.Now()).Motion)
	assert.Equal(t, models.TideUnknown, StateAt(nil, time.Now()).Motion)
}

func TestStateAtSortsDefensively(t *testing.T) {
	dataset := testDataset()
	// Reverse the extremes; StateAt must still bracket correctly.
	for i, j := 0, len(dataset.Extremes)-1; i < j; i, j = i+1, j-1 {
		dataset.Extremes[i], dataset.Extremes[j] = dataset.Extremes[j], dataset.Extremes[i]
	}

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	state := StateAt(dataset, base.Add(3*time.Hour))
	assert.Equal(t, models.TideRising, state.Motion)
}

func TestCurvePointCountAndBounds(t *testing.T) {
	dataset := testDataset()
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	points := Curve(dataset, base, 12, 30)
	require.Len(t, points, 12*60/30+1)

	minHeight, maxHeight := 0.2, 2.4
	for i, p := range points {
		assert.GreaterOrEqual(t, p.Height, minHeight)
		assert.LessOrEqual(t, p.Height, maxHeight)
		if i > 0 {
			assert.Greater(t, p.Timestamp, points[i-1].Timestamp)
		}
	}
}

func TestCurveEmptyCases(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.Empty(t, Curve(nil, base, 12, 30))
	assert.Empty(t, Curve(&models.TideDataset{}, base, 12, 30))
	assert.Empty(t, Curve(testDataset(), base, 0, 30))
	assert.Empty(t, Curve(testDataset(), base, 12, 0))

	// Origin past the dataset span yields no points rather than extrapolating.
	assert.Empty(t, Curve(testDataset(), base.Add(48*time.Hour), 6, 30))
}
