package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tidecast/tidecast/internal/models"
)

func TestKeyQuantizesCoordinates(t *testing.T) {
	tests := []struct {
		name  string
		coord models.Coordinate
		want  string
	}{
		{"rounds down", models.Coordinate{Latitude: 27.94, Longitude: -82.84}, "tide:27.9:-82.8"},
		{"rounds up", models.Coordinate{Latitude: 27.96, Longitude: -82.86}, "tide:28.0:-82.9"},
		{"exact bucket", models.Coordinate{Latitude: 27.9, Longitude: -82.8}, "tide:27.9:-82.8"},
		{"zero", models.Coordinate{}, "tide:0.0:0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Key("tide", tt.coord, 1))
		})
	}
}

func TestKeyNearbyPointsShareBucket(t *testing.T) {
	a := Key("tide", models.Coordinate{Latitude: 27.91, Longitude: -82.79}, 1)
	b := Key("tide", models.Coordinate{Latitude: 27.93, Longitude: -82.82}, 1)
	assert.Equal(t, a, b)
}

func TestKeyDecimalsControlResolution(t *testing.T) {
	coord := models.Coordinate{Latitude: 27.9456, Longitude: -82.8123}
	assert.Equal(t, "tide:27.95:-82.81", Key("tide", coord, 2))
	assert.Equal(t, "tide:28:-83", Key("tide", coord, 0))
}

func TestStaleKey(t *testing.T) {
	assert.Equal(t, "tide:27.9:-82.8:stale", StaleKey("tide:27.9:-82.8"))
}
