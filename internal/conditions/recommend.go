package conditions

import (
	"fmt"

	"github.com/tidecast/tidecast/internal/models"
)

// recommend evaluates a fixed, ordered set of condition rules. Rules fire
// independently; when none fires, a generic score-band message is returned.
func recommend(inputs models.ConditionInputs, factors map[models.Factor]float64, score int) []string {
	var advice []string

	if s, ok := factors[models.FactorTimeOfDay]; ok && s < 0.5 {
		advice = append(advice, "Conditions are off-peak for this hour; dawn (5-7 AM) and dusk (5-7 PM) usually fish better.")
	}

	if s, ok := factors[models.FactorWind]; ok && s < 0.5 && inputs.WindSpeedKph != nil {
		advice = append(advice, fmt.Sprintf("Wind around %.0f km/h will make open water rough; work sheltered banks and leeward structure.", *inputs.WindSpeedKph))
	}

	if inputs.PressureTrend != nil && (*inputs.PressureTrend == models.TrendFalling || *inputs.PressureTrend == models.TrendRapidlyFalling) {
		advice = append(advice, "Falling pressure often triggers a feeding window before the front arrives; fish it while it lasts.")
	}

	if s, ok := factors[models.FactorMoonPhase]; ok && s >= 0.8 {
		advice = append(advice, "Major solunar period: fish activity should be elevated around moonrise and moonset.")
	}

	if inputs.TidePhase != nil {
		switch *inputs.TidePhase {
		case models.PhaseIncoming, models.PhaseOutgoing:
			advice = append(advice, "Moving water is pushing bait; focus on current seams, points and channel edges.")
		case models.PhaseSlack:
			advice = append(advice, "Slack tide slows the bite; use the lull to move spots before the next exchange.")
		}
	}

	if s, ok := factors[models.FactorPrecipitation]; ok && s <= 0.2 {
		advice = append(advice, "Heavy rain is likely; target runoff mouths once the water starts moving, and mind visibility.")
	}

	if s, ok := factors[models.FactorWaterTemp]; ok && s < 0.5 && inputs.WaterTempC != nil {
		advice = append(advice, "Water temperature is outside the comfortable band; slow your presentation and fish deeper.")
	}

	if len(advice) == 0 {
		advice = append(advice, scoreBandMessage(score))
	}

	return advice
}

func scoreBandMessage(score int) string {
	switch {
	case score >= 80:
		return "Excellent conditions: get on the water."
	case score >= 65:
		return "Good conditions overall; no major negatives in the forecast."
	case score >= 50:
		return "Fair conditions; expect a steady but unspectacular bite."
	case score >= 35:
		return "Below-average conditions; downsize and fish slow."
	default:
		return "Tough conditions; consider waiting for a better window."
	}
}
