package conditions

import "github.com/tidecast/tidecast/internal/models"

// factorWeights is the fixed aggregation table. Only weights whose factor
// was actually computed participate; the sum of participating weights
// renormalizes the average.
var factorWeights = map[models.Factor]float64{
	models.FactorPressure:          0.15,
	models.FactorWind:              0.10,
	models.FactorTemperature:       0.08,
	models.FactorCloudCover:        0.06,
	models.FactorPrecipitation:     0.04,
	models.FactorWaterTemp:         0.12,
	models.FactorTidePhase:         0.10,
	models.FactorMoonPhase:         0.08,
	models.FactorCurrentSpeed:      0.05,
	models.FactorTimeOfDay:         0.10,
	models.FactorSeason:            0.06,
	models.FactorHistoricalSuccess: 0.06,
}

type idealRange struct {
	min, max float64
}

type habitatRanges struct {
	pressureHPa idealRange
	windKph     idealRange
	airTempC    idealRange
	waterTempC  idealRange
}

var rangesByHabitat = map[models.Habitat]habitatRanges{
	models.HabitatFreshwater: {
		pressureHPa: idealRange{1010, 1025},
		windKph:     idealRange{0, 15},
		airTempC:    idealRange{15, 25},
		waterTempC:  idealRange{15, 24},
	},
	models.HabitatSaltwater: {
		pressureHPa: idealRange{1010, 1025},
		windKph:     idealRange{0, 20},
		airTempC:    idealRange{18, 30},
		waterTempC:  idealRange{18, 28},
	},
}

// cloudCoverIdeal favors moderate cover: reduced glare without full dark.
var cloudCoverIdeal = idealRange{30, 70}

// Rapid change scores below plain falling/rising on purpose: a fast-moving
// barometer usually means unstable, stormy conditions.
var pressureTrendScores = map[models.PressureTrend]float64{
	models.TrendFalling:        1.0,
	models.TrendSteady:         0.7,
	models.TrendRising:         0.5,
	models.TrendRapidlyFalling: 0.4,
	models.TrendRapidlyRising:  0.3,
}

// Moving water carries bait; slack water scores lowest.
var tidePhaseScores = map[models.TidePhase]float64{
	models.PhaseIncoming: 1.0,
	models.PhaseOutgoing: 0.8,
	models.PhaseHigh:     0.5,
	models.PhaseLow:      0.4,
	models.PhaseSlack:    0.3,
}

// defaultSeasonScores indexes by month (January = index 0). Spring and fall
// peaks, winter trough.
var defaultSeasonScores = [12]float64{
	0.4, 0.45, 0.6, 0.8, 0.9, 0.85,
	0.7, 0.7, 0.85, 0.9, 0.7, 0.5,
}

// speciesSeasonScores overrides the default curve for species with
// well-known seasonal activity patterns.
var speciesSeasonScores = map[string][12]float64{
	"largemouth_bass": {
		0.3, 0.4, 0.7, 0.95, 1.0, 0.8,
		0.6, 0.6, 0.8, 0.85, 0.6, 0.4,
	},
	"smallmouth_bass": {
		0.25, 0.3, 0.6, 0.9, 1.0, 0.85,
		0.7, 0.7, 0.85, 0.8, 0.5, 0.3,
	},
	"trout": {
		0.5, 0.55, 0.8, 0.95, 1.0, 0.85,
		0.6, 0.55, 0.8, 0.9, 0.75, 0.55,
	},
	"salmon": {
		0.3, 0.3, 0.4, 0.5, 0.6, 0.75,
		0.9, 1.0, 1.0, 0.85, 0.5, 0.35,
	},
	"redfish": {
		0.5, 0.5, 0.6, 0.7, 0.8, 0.8,
		0.8, 0.9, 1.0, 1.0, 0.8, 0.6,
	},
	"snook": {
		0.35, 0.4, 0.6, 0.8, 0.95, 1.0,
		0.95, 0.95, 0.9, 0.8, 0.6, 0.4,
	},
	"walleye": {
		0.6, 0.6, 0.8, 1.0, 0.9, 0.75,
		0.6, 0.6, 0.75, 0.85, 0.8, 0.65,
	},
}

// timeOfDayScores privileges dawn and dusk, penalizes midday.
var timeOfDayScores = [24]float64{
	0.5, 0.5, 0.5, 0.5, // 0-3
	0.7, 1.0, 1.0, 1.0, // 4-7, dawn at 5-7
	0.8, 0.7, 0.5, 0.3, // 8-11
	0.3, 0.3, 0.3, 0.5, // 12-15, midday trough
	0.7, 1.0, 1.0, 1.0, // 16-19, dusk at 17-19
	0.8, 0.7, 0.5, 0.5, // 20-23
}
