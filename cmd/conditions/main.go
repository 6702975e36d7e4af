package main

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/tidecast/tidecast/internal/api"
	"github.com/tidecast/tidecast/internal/conditions"
	"github.com/tidecast/tidecast/internal/config"
	"github.com/tidecast/tidecast/internal/metrics"
	"github.com/tidecast/tidecast/internal/models"
)

var setupOnce sync.Once

func init() {
	setupOnce.Do(func() {
		cfg := config.LoadFromEnv()
		cfg.InitializeLogging()
	})
}

// conditionsRequest is the POST body: either a single prediction or an
// hourly forecast sweep.
type conditionsRequest struct {
	Inputs   *models.ConditionInputs   `json:"inputs,omitempty"`
	Forecast []models.HourlyConditions `json:"forecast,omitempty"`
	TopN     int                       `json:"topN,omitempty"`
}

func handleRequest(_ context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	var req conditionsRequest
	if err := json.Unmarshal([]byte(request.Body), &req); err != nil {
		return api.Error("invalid request body", http.StatusBadRequest)
	}

	switch {
	case len(req.Forecast) > 0:
		windows := conditions.BestWindows(req.Forecast, conditions.WindowOptions{TopN: req.TopN})
		return api.Success(api.NewConditionsResponse(nil, &windows))
	case req.Inputs != nil:
		prediction := conditions.Predict(*req.Inputs)
		metrics.PredictionsTotal.WithLabelValues(string(prediction.Rating)).Inc()
		return api.Success(api.NewConditionsResponse(&prediction, nil))
	default:
		return api.Error("either inputs or forecast must be provided", http.StatusBadRequest)
	}
}

func main() {
	lambda.Start(handleRequest)
}
