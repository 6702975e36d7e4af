package conditions

import (
	"math"
	"time"

	"github.com/tidecast/tidecast/internal/models"
)

// Predict fuses whatever condition inputs are present into a single 0-100
// score with a rating tier and advisory recommendations. It is a pure
// function: absent inputs simply shrink the set of participating factors,
// they never raise errors or count as zero.
func Predict(inputs models.ConditionInputs) models.PredictionResult {
	return predictAt(inputs, time.Now())
}

func predictAt(inputs models.ConditionInputs, now time.Time) models.PredictionResult {
	factors := computeFactors(inputs)

	score := aggregate(factors)
	rating := RatingForScore(score)

	return models.PredictionResult{
		Score:           score,
		Rating:          rating,
		Factors:         factors,
		Recommendations: recommend(inputs, factors, score),
		ComputedAt:      now.Unix(),
	}
}

func computeFactors(inputs models.ConditionInputs) map[models.Factor]float64 {
	factors := make(map[models.Factor]float64)
	ranges := rangesFor(inputs.Habitat)

	if s, ok := pressureScore(inputs, ranges); ok {
		factors[models.FactorPressure] = s
	}
	if inputs.WindSpeedKph != nil {
		factors[models.FactorWind] = rangeScore(*inputs.WindSpeedKph, ranges.windKph)
	}
	if inputs.AirTempC != nil {
		factors[models.FactorTemperature] = rangeScore(*inputs.AirTempC, ranges.airTempC)
	}
	if inputs.WaterTempC != nil {
		factors[models.FactorWaterTemp] = rangeScore(*inputs.WaterTempC, ranges.waterTempC)
	}
	if inputs.CloudCoverPct != nil {
		factors[models.FactorCloudCover] = rangeScore(*inputs.CloudCoverPct, cloudCoverIdeal)
	}
	if inputs.PrecipitationPct != nil {
		factors[models.FactorPrecipitation] = precipitationScore(*inputs.PrecipitationPct)
	}
	if inputs.TidePhase != nil {
		if s, ok := tidePhaseScores[*inputs.TidePhase]; ok {
			factors[models.FactorTidePhase] = s
		}
	}
	if inputs.MoonPhase != nil {
		factors[models.FactorMoonPhase] = moonPhaseScore(*inputs.MoonPhase)
	}
	if inputs.Hour != nil && *inputs.Hour >= 0 && *inputs.Hour < 24 {
		factors[models.FactorTimeOfDay] = timeOfDayScores[*inputs.Hour]
	}
	if inputs.Month != nil && *inputs.Month >= time.January && *inputs.Month <= time.December {
		factors[models.FactorSeason] = seasonScore(*inputs.Month, inputs.Species)
	}

	return factors
}

// aggregate computes the weighted average over the factors that were
// actually computed, renormalized by the participating weight sum. With no
// factors at all the engine stays neutral at 50.
func aggregate(factors map[models.Factor]float64) int {
	var weightedSum, weightSum float64
	for factor, score := range factors {
		weight, ok := factorWeights[factor]
		if !ok {
			continue
		}
		weightedSum += score * weight
		weightSum += weight
	}

	if weightSum == 0 {
		return 50
	}
	return int(math.Round(weightedSum / weightSum * 100))
}

// RatingForScore buckets a 0-100 score into its rating tier.
func RatingForScore(score int) models.Rating {
	switch {
	case score >= 80:
		return models.RatingExcellent
	case score >= 65:
		return models.RatingGood
	case score >= 50:
		return models.RatingFair
	case score >= 35:
		return models.RatingPoor
	default:
		return models.RatingBad
	}
}

func rangesFor(habitat models.Habitat) habitatRanges {
	if r, ok := rangesByHabitat[habitat]; ok {
		return r
	}
	return rangesByHabitat[models.HabitatSaltwater]
}

// rangeScore is 1.0 inside the ideal band and decays linearly to 0 as the
// distance from the nearest bound reaches half the band width.
func rangeScore(value float64, r idealRange) float64 {
	if value >= r.min && value <= r.max {
		return 1
	}

	half := (r.max - r.min) / 2
	if half <= 0 {
		return 0
	}

	var distance float64
	if value < r.min {
		distance = r.min - value
	} else {
		distance = value - r.max
	}

	score := 1 - distance/half
	if score < 0 {
		return 0
	}
	return score
}

// pressureScore averages the range-based score with the trend lookup when
// both inputs are present; either alone stands on its own.
func pressureScore(inputs models.ConditionInputs, ranges habitatRanges) (float64, bool) {
	var scores []float64
	if inputs.PressureHPa != nil {
		scores = append(scores, rangeScore(*inputs.PressureHPa, ranges.pressureHPa))
	}
	if inputs.PressureTrend != nil {
		if s, ok := pressureTrendScores[*inputs.PressureTrend]; ok {
			scores = append(scores, s)
		}
	}

	if len(scores) == 0 {
		return 0, false
	}

	var sum float64
	for _, s := range scores {
		sum += s
	}
	return sum / float64(len(scores)), true
}

func precipitationScore(pct float64) float64 {
	switch {
	case pct < 40:
		return 0.8
	case pct < 70:
		return 0.5
	default:
		return 0.2
	}
}

// moonPhaseScore peaks at new and full moon with a secondary peak near the
// quarters, modeling solunar major and minor periods. phase is the lunar
// cycle fraction: 0 new, 0.5 full.
func moonPhaseScore(phase float64) float64 {
	phase = math.Mod(phase, 1)
	if phase < 0 {
		phase += 1
	}

	major := math.Min(math.Min(phaseDistance(phase, 0), phaseDistance(phase, 0.5)), phaseDistance(phase, 1))
	switch {
	case major < 0.05:
		return 1.0
	case major < 0.1:
		return 0.8
	}

	minor := math.Min(phaseDistance(phase, 0.25), phaseDistance(phase, 0.75))
	if minor < 0.05 {
		return 0.7
	}

	return 0.4
}

func phaseDistance(a, b float64) float64 {
	return math.Abs(a - b)
}

func seasonScore(month time.Month, species string) float64 {
	if table, ok := speciesSeasonScores[species]; ok {
		return table[month-1]
	}
	return defaultSeasonScores[month-1]
}
