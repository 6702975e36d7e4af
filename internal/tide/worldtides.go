package tide

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tidecast/tidecast/internal/models"
	"github.com/tidecast/tidecast/pkg/http/client"
)

// MeteredProvider is the global per-point tide provider. Every call consumes
// a token from a finite budget, so day spans are capped and the provider is
// only consulted after the free one.
type MeteredProvider struct {
	httpClient client.Interface
	apiKey     string
	maxDays    int
	now        func() time.Time
}

func NewMeteredProvider(httpClient client.Interface, apiKey string, maxDays int) *MeteredProvider {
	if maxDays <= 0 {
		maxDays = 2
	}
	return &MeteredProvider{
		httpClient: httpClient,
		apiKey:     apiKey,
		maxDays:    maxDays,
		now:        time.Now,
	}
}

func (p *MeteredProvider) Name() string {
	return "metered"
}

// Available requires a configured API key; the provider itself is global.
func (p *MeteredProvider) Available(models.Coordinate) bool {
	return p.apiKey != ""
}

// FetchExtremes requests extremes anchored at the start of the current UTC
// day. The requested span is capped at maxDays regardless of the caller's
// ask; token conservation wins over range.
func (p *MeteredProvider) FetchExtremes(ctx context.Context, point models.Coordinate, days int) (*models.TideDataset, error) {
	if days > p.maxDays {
		log.Debug().Int("requested", days).Int("capped", p.maxDays).Msg("Capping metered day span")
		days = p.maxDays
	}

	now := p.now().UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	path := fmt.Sprintf("?extremes&key=%s&lat=%.4f&lon=%.4f&start=%d&days=%d&datum=LAT",
		p.apiKey, point.Latitude, point.Longitude, dayStart.Unix(), days)

	resp, err := p.httpClient.Get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("fetching extremes: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("metered provider returned status %d", resp.StatusCode)
	}

	var payload struct {
		Extremes []struct {
			Dt     int64   `json:"dt"`
			Height float64 `json:"height"`
			Type   string  `json:"type"`
		} `json:"extremes"`
	}
	if err := json.Unmarshal(resp.Body, &payload); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	extremes := make([]models.TideExtreme, len(payload.Extremes))
	for i, e := range payload.Extremes {
		kind := models.TideKindLow
		if e.Type == "High" {
			kind = models.TideKindHigh
		}
		extremes[i] = models.TideExtreme{
			Kind:      kind,
			Timestamp: e.Dt,
			Height:    e.Height,
		}
	}

	dataset := &models.TideDataset{
		Extremes: extremes,
		Source:   models.SourceGlobalMetered,
	}
	dataset.Extremes = dataset.SortedExtremes()
	return dataset, nil
}
