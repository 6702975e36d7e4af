package cache

import (
	"math"
	"strconv"

	"github.com/tidecast/tidecast/internal/models"
)

// Key builds a cache key from a result kind and a quantized coordinate.
// Coordinates are rounded to the configured number of decimal places before
// key formation, so nearby queries share a bucket (one decimal place is a
// roughly 10km cell).
func Key(kind string, c models.Coordinate, decimals int) string {
	return kind + ":" + quantize(c.Latitude, decimals) + ":" + quantize(c.Longitude, decimals)
}

// StaleKey derives the long-TTL companion key for a fresh cache key.
func StaleKey(key string) string {
	return key + ":stale"
}

func quantize(v float64, decimals int) string {
	scale := math.Pow10(decimals)
	rounded := math.Round(v*scale) / scale
	return strconv.FormatFloat(rounded, 'f', decimals, 64)
}
