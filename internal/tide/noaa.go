package tide

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tidecast/tidecast/internal/models"
	"github.com/tidecast/tidecast/internal/station"
	"github.com/tidecast/tidecast/pkg/http/client"
)

// FreeProvider is the station-based tide provider. It costs nothing to call
// but only covers US waters and requires a prediction station within range.
type FreeProvider struct {
	httpClient client.Interface
	stations   station.Index
	radiusKm   float64
	now        func() time.Time
}

func NewFreeProvider(httpClient client.Interface, stations station.Index, radiusKm float64) *FreeProvider {
	if radiusKm <= 0 {
		radiusKm = 100
	}
	return &FreeProvider{
		httpClient: httpClient,
		stations:   stations,
		radiusKm:   radiusKm,
		now:        time.Now,
	}
}

func (p *FreeProvider) Name() string {
	return "free"
}

func (p *FreeProvider) Available(point models.Coordinate) bool {
	return insideFreeCoverage(point)
}

// FetchExtremes resolves the nearest station and requests high/low
// predictions for [now, now+days].
func (p *FreeProvider) FetchExtremes(ctx context.Context, point models.Coordinate, days int) (*models.TideDataset, error) {
	nearest, err := p.stations.NearestStation(ctx, point, p.radiusKm)
	if err != nil {
		return nil, fmt.Errorf("resolving station: %w", err)
	}

	start := p.now().UTC()
	end := start.AddDate(0, 0, days)

	path := fmt.Sprintf("/api/prod/datagetter"+
		"?begin_date=%s&end_date=%s&station=%s&product=predictions&datum=MLLW"+
		"&units=metric&time_zone=gmt&format=json&interval=hilo",
		start.Format("20060102"), end.Format("20060102"), nearest.ID)

	resp, err := p.httpClient.Get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("fetching extremes: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("free provider returned status %d", resp.StatusCode)
	}

	log.Debug().
		Str("station_id", nearest.ID).
		Float64("distance_km", nearest.Distance).
		Msg("Fetched extremes from free provider")

	var payload struct {
		Predictions []struct {
			Time   string `json:"t"`
			Height string `json:"v"`
			Type   string `json:"type"`
		} `json:"predictions"`
	}
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	extremes := make([]models.TideExtreme, len(payload.Predictions))
	for i, pred := range payload.Predictions {
		t, err := time.ParseInLocation("2006-01-02 15:04", pred.Time, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("parsing time %s: %w", pred.Time, err)
		}

		height, err := strconv.ParseFloat(pred.Height, 64)
		if err != nil {
			return nil, fmt.Errorf("parsing height %s: %w", pred.Height, err)
		}

		kind := models.TideKindLow
		if pred.Type == "H" {
			kind = models.TideKindHigh
		}

		extremes[i] = models.TideExtreme{
			Kind:      kind,
			Timestamp: t.Unix(),
			Height:    height,
		}
	}

	dataset := &models.TideDataset{
		Extremes:    extremes,
		Source:      models.SourceLocalFree,
		StationID:   nearest.ID,
		StationName: nearest.Name,
	}
	dataset.Extremes = dataset.SortedExtremes()
	return dataset, nil
}
