package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog/log"

	"github.com/tidecast/tidecast/internal/api"
	"github.com/tidecast/tidecast/internal/config"
	"github.com/tidecast/tidecast/internal/station"
	"github.com/tidecast/tidecast/pkg/http/client"
)

var (
	index     station.Index
	radiusKm  float64
	setupOnce sync.Once
)

func init() {
	setupOnce.Do(func() {
		cfg := config.LoadFromEnv()
		cfg.InitializeLogging()

		cacheCfg := config.GetCacheConfig()
		radiusKm = cfg.StationRadiusKm

		httpClient := client.New(client.Options{
			BaseURL:    cfg.FreeBaseURL,
			Timeout:    cfg.HTTPTimeout,
			MaxRetries: cfg.MaxRetries,
		})

		var snapshot station.SnapshotCache
		if bucket := os.Getenv("STATION_SNAPSHOT_BUCKET"); bucket != "" {
			awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
			if err != nil {
				log.Warn().Err(err).Msg("Loading AWS config failed, station snapshot disabled")
			} else {
				snapshot = station.NewS3SnapshotCache(s3.NewFromConfig(awsCfg), bucket, cacheCfg.GetStationListTTL())
			}
		}

		index = station.NewDirectoryIndex(httpClient, cfg, cacheCfg, snapshot)
	})
}

func handleRequest(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	params := request.QueryStringParameters

	point, err := api.ParseCoordinates(params)
	if err != nil {
		return api.Error(err.Error(), http.StatusBadRequest)
	}

	radius := radiusKm
	if raw, ok := params["radius"]; ok && raw != "" {
		parsed, err := api.ParseIntParam(params, "radius", 0)
		if err != nil || parsed <= 0 {
			return api.Error("invalid radius parameter", http.StatusBadRequest)
		}
		radius = float64(parsed)
	}

	nearest, err := index.NearestStation(ctx, point, radius)
	if err != nil {
		var notFound station.NotFoundError
		if errors.As(err, &notFound) {
			return api.Error(err.Error(), http.StatusNotFound)
		}
		return api.Error(err.Error(), http.StatusBadGateway)
	}

	return api.Success(api.NewStationResponse(nearest))
}

func main() {
	lambda.Start(handleRequest)
}
