package conditions

import (
	"math"
	"sort"

	"github.com/tidecast/tidecast/internal/models"
)

// WindowOptions controls the forecast sweep.
type WindowOptions struct {
	// TopN is how many windows to return; defaults to 3.
	TopN int
}

// BestWindows scores every hour of a forecast with Predict, then returns
// the top-scoring windows and the forecast's mean score. It is a pure fold
// over Predict; ties keep chronological order.
func BestWindows(forecast []models.HourlyConditions, opts WindowOptions) models.WindowsResult {
	if opts.TopN <= 0 {
		opts.TopN = 3
	}

	if len(forecast) == 0 {
		return models.WindowsResult{}
	}

	windows := make([]models.FishingWindow, len(forecast))
	var total int
	for i, hour := range forecast {
		result := Predict(hour.Inputs)
		windows[i] = models.FishingWindow{
			Timestamp: hour.Timestamp,
			Score:     result.Score,
			Rating:    result.Rating,
		}
		total += result.Score
	}

	mean := int(math.Round(float64(total) / float64(len(forecast))))

	sort.SliceStable(windows, func(i, j int) bool {
		return windows[i].Score > windows[j].Score
	})

	if len(windows) > opts.TopN {
		windows = windows[:opts.TopN]
	}

	return models.WindowsResult{
		Best:      windows,
		MeanScore: mean,
	}
}
