package tide

import (
	"context"

	"github.com/tidecast/tidecast/internal/models"
)

// Provider fetches tide extremes for a point. Implementations normalize
// their wire format into a TideDataset.
type Provider interface {
	Name() string
	// Available reports whether this provider can serve the point at all,
	// before any network call (geographic gating, API key presence).
	Available(point models.Coordinate) bool
	FetchExtremes(ctx context.Context, point models.Coordinate, days int) (*models.TideDataset, error)
}

// coverageBox is a closed lat/lon rectangle.
type coverageBox struct {
	minLat, maxLat float64
	minLon, maxLon float64
}

func (b coverageBox) contains(c models.Coordinate) bool {
	return c.Latitude >= b.minLat && c.Latitude <= b.maxLat &&
		c.Longitude >= b.minLon && c.Longitude <= b.maxLon
}

// The free provider only covers US waters: continental US, Alaska, Hawaii.
var freeCoverage = []coverageBox{
	{minLat: 24.0, maxLat: 50.0, minLon: -125.0, maxLon: -66.0},
	{minLat: 51.0, maxLat: 72.0, minLon: -180.0, maxLon: -129.0},
	{minLat: 18.0, maxLat: 23.0, minLon: -161.0, maxLon: -154.0},
}

func insideFreeCoverage(c models.Coordinate) bool {
	for _, box := range freeCoverage {
		if box.contains(c) {
			return true
		}
	}
	return false
}
