package station

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/tidecast/tidecast/internal/cache"
	"github.com/tidecast/tidecast/internal/config"
	"github.com/tidecast/tidecast/internal/models"
	"github.com/tidecast/tidecast/pkg/http/client"
)

// Index finds tide prediction stations near a point.
type Index interface {
	NearestStation(ctx context.Context, point models.Coordinate, maxRadiusKm float64) (*models.Station, error)
	Directory(ctx context.Context) ([]models.Station, error)
}

// NotFoundError indicates no station within the radius cutoff.
type NotFoundError struct {
	Point       models.Coordinate
	MaxRadiusKm float64
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("no station within %.0fkm of (%.4f, %.4f)",
		e.MaxRadiusKm, e.Point.Latitude, e.Point.Longitude)
}

// DirectoryIndex loads the full station directory once per process and
// memoizes it. Concurrent callers before the first load completes share a
// single in-flight fetch; a failed load clears the guard so a later call
// retries.
type DirectoryIndex struct {
	httpClient    client.Interface
	directoryPath string
	snapshot      SnapshotCache
	ttl           time.Duration
	clock         cache.Clock

	group    singleflight.Group
	mu       sync.RWMutex
	stations []models.Station
	loadedAt time.Time
}

// NewDirectoryIndex creates a station index backed by the free provider's
// station directory endpoint. snapshot may be nil.
func NewDirectoryIndex(httpClient client.Interface, cfg *config.Config, cacheCfg *config.CacheConfig, snapshot SnapshotCache) *DirectoryIndex {
	if cfg == nil {
		cfg = config.New()
	}
	if cacheCfg == nil {
		cacheCfg = config.GetCacheConfig()
	}
	return &DirectoryIndex{
		httpClient:    httpClient,
		directoryPath: cfg.StationDirectory,
		snapshot:      snapshot,
		ttl:           cacheCfg.GetStationListTTL(),
		clock:         cache.NewSystemClock(),
	}
}

// NearestStation returns the closest station to point, or NotFoundError when
// the closest station is farther than maxRadiusKm.
func (x *DirectoryIndex) NearestStation(ctx context.Context, point models.Coordinate, maxRadiusKm float64) (*models.Station, error) {
	if err := point.Validate(); err != nil {
		return nil, err
	}

	stations, err := x.Directory(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting station directory: %w", err)
	}

	var nearest *models.Station
	minDistance := math.Inf(1)
	for i := range stations {
		d := DistanceKm(point.Latitude, point.Longitude, stations[i].Latitude, stations[i].Longitude)
		if d < minDistance {
			minDistance = d
			nearest = &stations[i]
		}
	}

	if nearest == nil || minDistance > maxRadiusKm {
		return nil, NotFoundError{Point: point, MaxRadiusKm: maxRadiusKm}
	}

	found := *nearest
	found.Distance = minDistance
	return &found, nil
}

// Directory returns the memoized station list, loading it on first use.
func (x *DirectoryIndex) Directory(ctx context.Context) ([]models.Station, error) {
	x.mu.RLock()
	stations := x.stations
	loadedAt := x.loadedAt
	x.mu.RUnlock()

	if stations != nil && x.clock.Now().Sub(loadedAt) < x.ttl {
		return stations, nil
	}

	// singleflight shares one in-flight load between concurrent callers and
	// forgets failed calls, so a later request can retry.
	result, err, _ := x.group.Do("directory", func() (interface{}, error) {
		loaded, err := x.fetchDirectory(ctx)
		if err != nil {
			return nil, err
		}
		x.mu.Lock()
		x.stations = loaded
		x.loadedAt = x.clock.Now()
		x.mu.Unlock()
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	return result.([]models.Station), nil
}

func (x *DirectoryIndex) fetchDirectory(ctx context.Context) ([]models.Station, error) {
	if x.snapshot != nil {
		if stations, err := x.snapshot.GetStations(ctx); err == nil && stations != nil {
			log.Debug().Int("station_count", len(stations)).Msg("Loaded station directory from snapshot")
			return stations, nil
		}
	}

	resp, err := x.httpClient.Get(ctx, x.directoryPath)
	if err != nil {
		return nil, fmt.Errorf("fetching stations: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("station directory returned status %d", resp.StatusCode)
	}

	var directory struct {
		Stations []struct {
			ID   string  `json:"id"`
			Name string  `json:"name"`
			Lat  float64 `json:"lat"`
			Lng  float64 `json:"lng"`
		} `json:"stations"`
	}
	if err := json.Unmarshal(resp.Body, &directory); err != nil {
		return nil, fmt.Errorf("decoding station directory: %w", err)
	}

	stations := make([]models.Station, len(directory.Stations))
	for i, s := range directory.Stations {
		stations[i] = models.Station{
			ID:        s.ID,
			Name:      s.Name,
			Latitude:  s.Lat,
			Longitude: s.Lng,
		}
	}

	log.Debug().Int("station_count", len(stations)).Msg("Caching station directory")

	if x.snapshot != nil {
		if err := x.snapshot.SaveStations(ctx, stations); err != nil {
			log.Warn().Err(err).Msg("Saving station directory snapshot failed")
		}
	}

	return stations, nil
}

// DistanceKm is the great-circle (haversine) distance between two points.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	const earthRadius = 6371.0 // km

	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadius * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
