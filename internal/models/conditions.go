package models

import "time"

// Habitat selects which ideal-range table applies to range-scored factors.
type Habitat string

const (
	HabitatFreshwater Habitat = "freshwater"
	HabitatSaltwater  Habitat = "saltwater"
)

// PressureTrend is the reported direction of barometric change.
type PressureTrend string

const (
	TrendFalling        PressureTrend = "falling"
	TrendSteady         PressureTrend = "steady"
	TrendRising         PressureTrend = "rising"
	TrendRapidlyFalling PressureTrend = "rapidly_falling"
	TrendRapidlyRising  PressureTrend = "rapidly_rising"
)

// TidePhase is the coarse tide movement classification used for scoring.
type TidePhase string

const (
	PhaseIncoming TidePhase = "incoming"
	PhaseOutgoing TidePhase = "outgoing"
	PhaseHigh     TidePhase = "high"
	PhaseLow      TidePhase = "low"
	PhaseSlack    TidePhase = "slack"
)

// Factor names a scored condition signal.
type Factor string

const (
	FactorPressure      Factor = "pressure"
	FactorWind          Factor = "wind"
	FactorTemperature   Factor = "temperature"
	FactorWaterTemp     Factor = "waterTemp"
	FactorCloudCover    Factor = "cloudCover"
	FactorPrecipitation Factor = "precipitation"
	FactorTidePhase     Factor = "tidePhase"
	FactorMoonPhase     Factor = "moonPhase"
	FactorTimeOfDay     Factor = "timeOfDay"
	FactorSeason        Factor = "season"

	// Weighted but not yet computed from any input; reserved for current
	// meters and catch-log feedback.
	FactorCurrentSpeed      Factor = "currentSpeed"
	FactorHistoricalSuccess Factor = "historicalSuccess"
)

// Rating buckets the overall 0-100 score.
type Rating string

const (
	RatingBad       Rating = "Bad"
	RatingPoor      Rating = "Poor"
	RatingFair      Rating = "Fair"
	RatingGood      Rating = "Good"
	RatingExcellent Rating = "Excellent"
)

// ConditionInputs carries the optional raw signals for one prediction.
// Nil fields are simply excluded from the weighted score, they are never
// treated as zero.
type ConditionInputs struct {
	PressureHPa      *float64       `json:"pressureHpa,omitempty"`
	PressureTrend    *PressureTrend `json:"pressureTrend,omitempty"`
	WindSpeedKph     *float64       `json:"windSpeedKph,omitempty"`
	AirTempC         *float64       `json:"airTempC,omitempty"`
	WaterTempC       *float64       `json:"waterTempC,omitempty"`
	CloudCoverPct    *float64       `json:"cloudCoverPct,omitempty"`
	PrecipitationPct *float64       `json:"precipitationPct,omitempty"`
	TidePhase        *TidePhase     `json:"tidePhase,omitempty"`
	// MoonPhase is the lunar cycle fraction: 0 new, 0.5 full.
	MoonPhase *float64    `json:"moonPhase,omitempty"`
	Hour      *int        `json:"hour,omitempty"`
	Month     *time.Month `json:"month,omitempty"`
	Species   string      `json:"species,omitempty"`
	Habitat   Habitat     `json:"habitat,omitempty"`
}

// PredictionResult is the outcome of one condition prediction.
type PredictionResult struct {
	Score           int                `json:"score"` // 0-100
	Rating          Rating             `json:"rating"`
	Factors         map[Factor]float64 `json:"factors"`
	Recommendations []string           `json:"recommendations"`
	ComputedAt      int64              `json:"computedAt"` // unix seconds
}

// HourlyConditions pairs a forecast hour with its condition inputs.
type HourlyConditions struct {
	Timestamp int64           `json:"timestamp"` // unix seconds
	Inputs    ConditionInputs `json:"inputs"`
}

// FishingWindow is one scored hour from a forecast sweep.
type FishingWindow struct {
	Timestamp int64  `json:"timestamp"`
	Score     int    `json:"score"`
	Rating    Rating `json:"rating"`
}

// WindowsResult holds the best-scoring forecast hours and the mean score
// across the whole forecast.
type WindowsResult struct {
	Best      []FishingWindow `json:"best"`
	MeanScore int             `json:"meanScore"`
}
