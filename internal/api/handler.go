package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/aws/aws-lambda-go/events"

	"github.com/tidecast/tidecast/internal/models"
)

type APIResponse struct {
	ResponseType string `json:"responseType"`
}

type TideResponse struct {
	APIResponse
	Dataset *models.TideDataset `json:"dataset"`
	State   *models.TideState   `json:"state,omitempty"`
	Curve   []models.CurvePoint `json:"curve,omitempty"`
}

type StationResponse struct {
	APIResponse
	Station *models.Station `json:"station"`
}

type ConditionsResponse struct {
	APIResponse
	Prediction *models.PredictionResult `json:"prediction,omitempty"`
	Windows    *models.WindowsResult    `json:"windows,omitempty"`
}

type ErrorResponse struct {
	APIResponse
	Error string `json:"error"`
}

func NewTideResponse(dataset *models.TideDataset, state *models.TideState, curve []models.CurvePoint) *TideResponse {
	return &TideResponse{
		APIResponse: APIResponse{ResponseType: "tide"},
		Dataset:     dataset,
		State:       state,
		Curve:       curve,
	}
}

func NewStationResponse(station *models.Station) *StationResponse {
	return &StationResponse{
		APIResponse: APIResponse{ResponseType: "station"},
		Station:     station,
	}
}

func NewConditionsResponse(prediction *models.PredictionResult, windows *models.WindowsResult) *ConditionsResponse {
	return &ConditionsResponse{
		APIResponse: APIResponse{ResponseType: "conditions"},
		Prediction:  prediction,
		Windows:     windows,
	}
}

func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{
		APIResponse: APIResponse{ResponseType: "error"},
		Error:       message,
	}
}

// Response helpers
func Success(body interface{}) (events.APIGatewayProxyResponse, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return Error("Internal Server Error", http.StatusInternalServerError)
	}

	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers: map[string]string{
			"Content-Type":                "application/json",
			"Access-Control-Allow-Origin": "*",
		},
		Body: string(jsonBody),
	}, nil
}

func Error(message string, statusCode int) (events.APIGatewayProxyResponse, error) {
	body, _ := json.Marshal(NewErrorResponse(message))

	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers: map[string]string{
			"Content-Type":                "application/json",
			"Access-Control-Allow-Origin": "*",
		},
		Body: string(body),
	}, nil
}

// ParseCoordinates extracts and validates lat/lon query parameters.
func ParseCoordinates(params map[string]string) (models.Coordinate, error) {
	latStr, hasLat := params["lat"]
	lonStr, hasLon := params["lon"]

	if !hasLat || !hasLon {
		return models.Coordinate{}, MissingParameterError{Name: "lat/lon"}
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return models.Coordinate{}, err
	}

	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return models.Coordinate{}, err
	}

	point := models.Coordinate{Latitude: lat, Longitude: lon}
	if err := point.Validate(); err != nil {
		return models.Coordinate{}, err
	}

	return point, nil
}

// ParseIntParam returns the named integer parameter or a default.
func ParseIntParam(params map[string]string, name string, defaultVal int) (int, error) {
	raw, ok := params[name]
	if !ok || raw == "" {
		return defaultVal, nil
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	return val, nil
}

type MissingParameterError struct {
	Name string
}

func (e MissingParameterError) Error() string {
	return "missing required parameter: " + e.Name
}
