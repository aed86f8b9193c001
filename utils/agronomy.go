package utils

import (
	"fmt"
	"time"

	"github.com/Vanshhsoni/kissan/models"
)

// AdvisoryDraft is one analyzer finding before it is persisted.
type AdvisoryDraft struct {
	Message  string `json:"message"`
	Category string `json:"category"`
}

// ActivityRecency carries days-elapsed-since-last-occurrence for each
// tracked activity. DaysNeverLogged marks activities with no log at all,
// large enough that every staleness threshold still fires.
type ActivityRecency struct {
	DaysSinceIrrigation int
	DaysSinceFertilizer int
	DaysSincePesticide  int
}

const DaysNeverLogged = 9999

// Analyzer thresholds. The age bands split a crop's life into young
// (root establishment), establishing and mature tiers.
const (
	highTempAlertC      = 35.0
	highHumidityAlertPc = 85.0

	youngCropMaxAge        = 2
	establishingCropMaxAge = 30
	harvestReadyAge        = 60
)

// AnalyzeCropConditions combines crop lifecycle state, activity recency
// and a day-aggregated forecast into an ordered list of advisories.
// Pure and deterministic: identical inputs always produce identical
// output. A nil or empty forecast just mutes the weather-contingent
// rules; staleness rules still evaluate.
//
// Rule groups run in priority order (weather alert, irrigation,
// fertilizer, pesticide, harvest, growth stage, fallback) and callers
// must keep that order when truncating for display. The irrigation,
// fertilizer and pesticide groups are each exclusive chains: at most
// one advisory per group per run.
func AnalyzeCropConditions(crop *models.Crop, rec ActivityRecency, forecast []models.WeatherDay, today time.Time) []AdvisoryDraft {
	name := crop.DisplayName()
	out := []AdvisoryDraft{}

	// ---------------------------------------------------------
	// Unsown crops: only sowing-readiness and field preparation
	// ---------------------------------------------------------
	if !crop.IsSown {
		if crop.SowingMonths.Contains(today.Month()) {
			out = append(out, AdvisoryDraft{
				Message:  fmt.Sprintf("Perfect time to sow %s — %s is within its sowing window.", name, today.Month()),
				Category: models.CategoryRoutine,
			})
			out = append(out, AdvisoryDraft{
				Message:  fmt.Sprintf("Prepare the field for %s: loosen the topsoil, clear weeds and check drainage before sowing.", name),
				Category: models.CategoryTip,
			})
		} else {
			out = append(out, AdvisoryDraft{
				Message:  fmt.Sprintf("%s is outside the sowing window for %s. Use the time for field preparation.", today.Month(), name),
				Category: models.CategoryTip,
			})
		}
		return out
	}

	// ---------------------------------------------------------
	// Weather signals for today and the next two days
	// ---------------------------------------------------------
	var (
		highTemp     bool
		highHumidity bool
		rainSoon     bool
		todayMaxC    float64
	)
	for _, day := range forecast {
		if sameDay(day.Date, today) {
			highTemp = day.MaxTempC > highTempAlertC
			highHumidity = day.AvgHumidity > highHumidityAlertPc
			todayMaxC = day.MaxTempC
			break
		}
	}
	for i, day := range forecast {
		if i >= 3 {
			break
		}
		if day.WillRain {
			rainSoon = true
			break
		}
	}

	age := crop.AgeDays(today)

	if highTemp {
		out = append(out, AdvisoryDraft{
			Message:  fmt.Sprintf("High temperature expected today (%.1f°C). Make sure %s has enough water and shade during peak hours.", todayMaxC, name),
			Category: models.CategoryUrgent,
		})
	}

	// ---------------------------------------------------------
	// Irrigation, tiered by crop age, one advisory at most
	// ---------------------------------------------------------
	waterHint := crop.IrrigationLiters
	if waterHint == "" {
		waterHint = "as per crop requirement"
	}
	switch {
	case age <= youngCropMaxAge:
		// Root establishment is time-critical; rain does not defer it.
		if rec.DaysSinceIrrigation >= 2 {
			out = append(out, AdvisoryDraft{
				Message:  fmt.Sprintf("%s was sown recently and needs water for root establishment. Irrigate today (%s).", name, waterHint),
				Category: models.CategoryUrgent,
			})
		}
	case age <= establishingCropMaxAge:
		if rainSoon && rec.DaysSinceIrrigation <= 2 {
			out = append(out, AdvisoryDraft{
				Message:  fmt.Sprintf("Rain is expected within two days — skip irrigation for %s and let the rain do the work.", name),
				Category: models.CategoryTip,
			})
		} else if rec.DaysSinceIrrigation >= 3 || (rec.DaysSinceIrrigation >= 2 && highTemp) {
			out = append(out, AdvisoryDraft{
				Message:  fmt.Sprintf("Time to irrigate %s. Suggested amount: %s.", name, waterHint),
				Category: models.CategoryRoutine,
			})
		}
	default:
		if rainSoon && rec.DaysSinceIrrigation <= 3 {
			out = append(out, AdvisoryDraft{
				Message:  fmt.Sprintf("Rain is expected within two days — skip irrigation for %s and let the rain do the work.", name),
				Category: models.CategoryTip,
			})
		} else if rec.DaysSinceIrrigation >= 4 || (rec.DaysSinceIrrigation >= 3 && highTemp) {
			out = append(out, AdvisoryDraft{
				Message:  fmt.Sprintf("Time to irrigate %s. Suggested amount: %s.", name, waterHint),
				Category: models.CategoryRoutine,
			})
		}
	}

	// ---------------------------------------------------------
	// Fertilizer, exclusive age bands in ascending order
	// ---------------------------------------------------------
	fertilizer := crop.Fertilizer
	if fertilizer == "" {
		fertilizer = "balanced NPK fertilizer"
	}
	switch {
	case age >= 7 && age < 15:
		if rec.DaysSinceFertilizer >= 7 {
			out = append(out, AdvisoryDraft{
				Message:  fmt.Sprintf("%s is ready for its first fertilizer application. A light dose now supports early growth.", name),
				Category: models.CategoryRoutine,
			})
		}
	case age >= 15 && age < 25:
		if rec.DaysSinceFertilizer >= 15 {
			out = append(out, AdvisoryDraft{
				Message:  fmt.Sprintf("Time for the second fertilizer application for %s. Recommended: %s.", name, fertilizer),
				Category: models.CategoryRoutine,
			})
		}
	case age >= 25:
		if rec.DaysSinceFertilizer >= 20 {
			out = append(out, AdvisoryDraft{
				Message:  fmt.Sprintf("It has been a while since %s was fertilized. Apply %s to keep nutrients up.", name, fertilizer),
				Category: models.CategoryRoutine,
			})
		}
	}

	// ---------------------------------------------------------
	// Pesticide, where humidity overrides the age-based schedule
	// ---------------------------------------------------------
	pesticide := crop.Pesticide
	if pesticide == "" {
		pesticide = "an appropriate pesticide"
	}
	switch {
	case highHumidity && rec.DaysSincePesticide >= 7:
		out = append(out, AdvisoryDraft{
			Message:  fmt.Sprintf("High humidity raises fungal disease risk for %s. Inspect the leaves today and treat if needed.", name),
			Category: models.CategoryUrgent,
		})
	case age >= 14 && rec.DaysSincePesticide >= 21:
		out = append(out, AdvisoryDraft{
			Message:  fmt.Sprintf("Check %s for pests. If you find any, apply %s.", name, pesticide),
			Category: models.CategoryRoutine,
		})
	case age >= 7 && rec.DaysSincePesticide >= 14 && highTemp:
		out = append(out, AdvisoryDraft{
			Message:  fmt.Sprintf("Hot weather can increase pest activity — keep an eye on %s over the next few days.", name),
			Category: models.CategoryTip,
		})
	}

	// ---------------------------------------------------------
	// Harvest window
	// ---------------------------------------------------------
	if !crop.IsHarvested && crop.HarvestingMonths.Contains(today.Month()) {
		if age >= harvestReadyAge {
			out = append(out, AdvisoryDraft{
				Message:  fmt.Sprintf("%s may be ready for harvest (grown for %d days). Check maturity signs.", name, age),
				Category: models.CategoryUrgent,
			})
		} else {
			out = append(out, AdvisoryDraft{
				Message:  fmt.Sprintf("Harvest season for %s is approaching. Start planning labour and storage.", name),
				Category: models.CategoryTip,
			})
		}
	}

	// ---------------------------------------------------------
	// Growth-stage tip (additive, independent of harvest rule)
	// ---------------------------------------------------------
	switch {
	case age <= 7:
		out = append(out, AdvisoryDraft{
			Message:  fmt.Sprintf("%s is in its establishment phase. Keep the soil moist and protect seedlings from strong sun.", name),
			Category: models.CategoryTip,
		})
	case age <= 30:
		out = append(out, AdvisoryDraft{
			Message:  fmt.Sprintf("%s is in active growth. Watch for nutrient deficiency signs on newer leaves.", name),
			Category: models.CategoryTip,
		})
	case age > harvestReadyAge && !crop.IsHarvested:
		out = append(out, AdvisoryDraft{
			Message:  fmt.Sprintf("%s is maturing. Monitor it regularly for harvest readiness.", name),
			Category: models.CategoryTip,
		})
	}

	// ---------------------------------------------------------
	// Fallback for quiet days
	// ---------------------------------------------------------
	if len(out) < 2 {
		out = append(out, AdvisoryDraft{
			Message:  fmt.Sprintf("%s is looking good. Keep up the regular care routine.", name),
			Category: models.CategoryTip,
		})
		if crop.SunlightHours != "" {
			out = append(out, AdvisoryDraft{
				Message:  fmt.Sprintf("Make sure %s gets about %s of sunlight daily.", name, crop.SunlightHours),
				Category: models.CategoryTip,
			})
		}
	}

	return out
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
