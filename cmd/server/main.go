package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/alecthomas/kong"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	kongdotenv "github.com/titusjaka/kong-dotenv-go"

	"github.com/tidecast/tidecast/internal/api"
	"github.com/tidecast/tidecast/internal/cache"
	"github.com/tidecast/tidecast/internal/conditions"
	"github.com/tidecast/tidecast/internal/config"
	"github.com/tidecast/tidecast/internal/metrics"
	"github.com/tidecast/tidecast/internal/models"
	"github.com/tidecast/tidecast/internal/station"
	"github.com/tidecast/tidecast/internal/tide"
	"github.com/tidecast/tidecast/pkg/http/client"
)

type cli struct {
	Listen string `kong:"default=':8080',help='Address to listen on.'"`
}

type server struct {
	gateway  *tide.Gateway
	stations station.Index
	radiusKm float64
}

func main() {
	var flags cli
	kctx := kong.Parse(&flags, kong.Name("tidecast-server"), kong.Configuration(kongdotenv.ENVFileReader, ".env"))

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
	kctx.FatalIfErrorf(err)

	stations := station.NewDirectoryIndex(freeClient, cfg, cacheCfg, nil)
	free := tide.NewFreeProvider(freeClient, stations, cfg.StationRadiusKm)
	metered := tide.NewMeteredProvider(meteredClient, cfg.MeteredAPIKey, cfg.MeteredMaxDays)

	srv := &server{
		gateway:  tide.NewGateway(free, metered, resultCache, cacheCfg),
		stations: stations,
		radiusKm: cfg.StationRadiusKm,
	}

	router := mux.NewRouter()
	router.HandleFunc("/api/tides", srv.handleTides).Methods(http.MethodGet)
	router.HandleFunc("/api/stations/nearest", srv.handleNearestStation).Methods(http.MethodGet)
	router.HandleFunc("/api/conditions/predict", srv.handlePredict).Methods(http.MethodPost)
	router.HandleFunc("/api/conditions/windows", srv.handleWindows).Methods(http.MethodPost)
	router.Handle("/metrics", promhttp.Handler())

	httpServer := &http.Server{
		Addr:         flags.Listen,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Info().Str("listen", flags.Listen).Msg("Starting tidecast server")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Server failed")
	}
}

func (s *server) handleTides(w http.ResponseWriter, r *http.Request) {
	params := queryParams(r)

	point, err := api.ParseCoordinates(params)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, api.NewErrorResponse(err.Error()))
		return
	}

	days, err := api.ParseIntParam(params, "days", 3)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, api.NewErrorResponse("invalid days parameter"))
		return
	}

	dataset, err := s.gateway.GetTideDataset(r.Context(), point, days)
	if err != nil {
		var unavailable *tide.ProviderUnavailableError
		if errors.As(err, &unavailable) {
			writeJSON(w, http.StatusServiceUnavailable, api.NewErrorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusInternalServerError, api.NewErrorResponse(err.Error()))
		return
	}

	state := tide.StateAt(dataset, time.Now())

	var curve []models.CurvePoint
	if hours, err := api.ParseIntParam(params, "hours", 0); err == nil && hours > 0 {
		step, stepErr := api.ParseIntParam(params, "step", 30)
		if stepErr != nil || step <= 0 {
			writeJSON(w, http.StatusBadRequest, api.NewErrorResponse("invalid step parameter"))
			return
		}
		curve = tide.Curve(dataset, time.Now(), hours, step)
	}

	writeJSON(w, http.StatusOK, api.NewTideResponse(dataset, &state, curve))
}

func (s *server) handleNearestStation(w http.ResponseWriter, r *http.Request) {
	params := queryParams(r)

	point, err := api.ParseCoordinates(params)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, api.NewErrorResponse(err.Error()))
		return
	}

	radius := s.radiusKm
	if raw, ok := params["radius"]; ok && raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed <= 0 {
			writeJSON(w, http.StatusBadRequest, api.NewErrorResponse("invalid radius parameter"))
			return
		}
		radius = parsed
	}

	nearest, err := s.stations.NearestStation(r.Context(), point, radius)
	if err != nil {
		var notFound station.NotFoundError
		if errors.As(err, &notFound) {
			writeJSON(w, http.StatusNotFound, api.NewErrorResponse(err.Error()))
			return
		}
		writeJSON(w, http.StatusBadGateway, api.NewErrorResponse(err.Error()))
		return
	}

	writeJSON(w, http.StatusOK, api.NewStationResponse(nearest))
}

func (s *server) handlePredict(w http.ResponseWriter, r *http.Request) {
	var inputs models.ConditionInputs
	if err := json.NewDecoder(r.Body).Decode(&inputs); err != nil {
		writeJSON(w, http.StatusBadRequest, api.NewErrorResponse("invalid request body"))
		return
	}

	prediction := conditions.Predict(inputs)
	metrics.PredictionsTotal.WithLabelValues(string(prediction.Rating)).Inc()
	writeJSON(w, http.StatusOK, api.NewConditionsResponse(&prediction, nil))
}

func (s *server) handleWindows(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Forecast []models.HourlyConditions `json:"forecast"`
		TopN     int                       `json:"topN"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Forecast) == 0 {
		writeJSON(w, http.StatusBadRequest, api.NewErrorResponse("forecast is required"))
		return
	}

	windows := conditions.BestWindows(req.Forecast, conditions.WindowOptions{TopN: req.TopN})
	writeJSON(w, http.StatusOK, api.NewConditionsResponse(nil, &windows))
}

func queryParams(r *http.Request) map[string]string {
	params := make(map[string]string)
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	return params
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("Encoding response failed")
	}
}
