package conditions

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tidecast/tidecast/internal/models"
)

func hourlyAt(base time.Time, offset int, hour int) models.HourlyConditions {
	h := hour
	return models.HourlyConditions{
		Timestamp: base.Add(time.Duration(offset) * time.Hour).Unix(),
		Inputs:    models.ConditionInputs{Hour: &h},
	}
}

func TestBestWindowsRanksAndAverages(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	// Scores: hour 6 -> 100, hour 12 -> 30, hour 18 -> 100, hour 9 -> 70,
	// hour 22 -> 50.
	forecast := []models.HourlyConditions{
		hourlyAt(base, 0, 6),
		hourlyAt(base, 1, 12),
		hourlyAt(base, 2, 18),
		hourlyAt(base, 3, 9),
		hourlyAt(base, 4, 22),
	}

	result := BestWindows(forecast, WindowOptions{})

	require.Len(t, result.Best, 3)
	assert.Equal(t, 100, result.Best[0].Score)
	assert.Equal(t, 100, result.Best[1].Score)
	assert.Equal(t, 70, result.Best[2].Score)

	// Ties keep chronological order.
	assert.Equal(t, forecast[0].Timestamp, result.Best[0].Timestamp)
	assert.Equal(t, forecast[2].Timestamp, result.Best[1].Timestamp)

	assert.Equal(t, 70, result.MeanScore) // (100+30+100+70+50)/5
}

func TestBestWindowsTopN(t *testing.T) {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	forecast := []models.HourlyConditions{
		hourlyAt(base, 0, 6),
		hourlyAt(base, 1, 12),
	}

	one := BestWindows(forecast, WindowOptions{TopN: 1})
	require.Len(t, one.Best, 1)
	assert.Equal(t, 100, one.Best[0].Score)

	// Fewer hours than TopN returns what exists.
	all := BestWindows(forecast, WindowOptions{TopN: 10})
	assert.Len(t, all.Best, 2)
}

func TestBestWindowsEmptyForecast(t *testing.T) {
	result := BestWindows(nil, WindowOptions{})
	assert.Empty(t, result.Best)
	assert.Zero(t, result.MeanScore)
}
