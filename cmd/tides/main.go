package main

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/rs/zerolog/log"

	"github.com/tidecast/tidecast/internal/api"
	"github.com/tidecast/tidecast/internal/cache"
	"github.com/tidecast/tidecast/internal/config"
	"github.com/tidecast/tidecast/internal/models"
	"github.com/tidecast/tidecast/internal/station"
	"github.com/tidecast/tidecast/internal/tide"
	"github.com/tidecast/tidecast/pkg/http/client"
)

var (
	gateway   *tide.Gateway
	setupOnce sync.Once
)

func init() {
	setupOnce.Do(func() {
		cfg := config.LoadFromEnv()
		cfg.InitializeLogging()

		cacheCfg := config.GetCacheConfig()

		freeClient := client.New(client.Options{
			BaseURL:    cfg.FreeBaseURL,
			Timeout:    cfg.HTTPTimeout,
			MaxRetries: cfg.MaxRetries,
		})
		meteredClient := client.New(client.Options{
			BaseURL:    cfg.MeteredBaseURL,
			Timeout:    cfg.HTTPTimeout,
			MaxRetries: cfg.MaxRetries,
		})

		resultCache, err := cache.NewResultCache(context.Background(), cacheCfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Initializing result cache")
		}

		stations := station.NewDirectoryIndex(freeClient, cfg, cacheCfg, nil)
		free := tide.NewFreeProvider(freeClient, stations, cfg.StationRadiusKm)
		metered := tide.NewMeteredProvider(meteredClient, cfg.MeteredAPIKey, cfg.MeteredMaxDays)

		gateway = tide.NewGateway(free, metered, resultCache, cacheCfg)
	})
}

func handleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	params := request.QueryStringParameters

	point, err := api.ParseCoordinates(params)
	if err != nil {
		return api.Error(err.Error(), http.StatusBadRequest)
	}

	days, err := api.ParseIntParam(params, "days", 3)
	if err != nil {
		return api.Error("invalid days parameter", http.StatusBadRequest)
	}

	dataset, err := gateway.GetTideDataset(ctx, point, days)
	if err != nil {
		var unavailable *tide.ProviderUnavailableError
		if errors.As(err, &unavailable) {
			return api.Error(err.Error(), http.StatusServiceUnavailable)
		}
		return api.Error(err.Error(), http.StatusInternalServerError)
	}

	state := tide.StateAt(dataset, time.Now())

	var curve []models.CurvePoint
	hours, err := api.ParseIntParam(params, "hours", 0)
	if err != nil {
		return api.Error("invalid hours parameter", http.StatusBadRequest)
	}
	if hours > 0 {
		step, err := api.ParseIntParam(params, "step", 30)
		if err != nil || step <= 0 {
			return api.Error("invalid step parameter", http.StatusBadRequest)
		}
		curve = tide.Curve(dataset, time.Now(), hours, step)
	}

	return api.Success(api.NewTideResponse(dataset, &state, curve))
}

func main() {
	lambda.Start(handleRequest)
}
