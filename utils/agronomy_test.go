package utils

import (
	"testing"
	"time"

	"github.com/Vanshhsoni/kissan/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func midJune() time.Time {
	return time.Date(2025, time.June, 15, 0, 0, 0, 0, time.Local)
}

func sownDaysAgo(today time.Time, days int) *time.Time {
	d := today.AddDate(0, 0, -days)
	return &d
}

func freshRecency() ActivityRecency {
	return ActivityRecency{
		DaysSinceIrrigation: 0,
		DaysSinceFertilizer: 0,
		DaysSincePesticide:  0,
	}
}

func neverLogged() ActivityRecency {
	return ActivityRecency{
		DaysSinceIrrigation: DaysNeverLogged,
		DaysSinceFertilizer: DaysNeverLogged,
		DaysSincePesticide:  DaysNeverLogged,
	}
}

func categories(drafts []AdvisoryDraft) []string {
	out := make([]string, 0, len(drafts))
	for _, d := range drafts {
		out = append(out, d.Category)
	}
	return out
}

func TestUnsownCropInSowingWindow(t *testing.T) {
	today := midJune()
	crop := &models.Crop{
		Name:         "നെല്ല്",
		EnglishName:  "Rice",
		SowingMonths: models.MonthSet{time.June, time.July},
	}

	drafts := AnalyzeCropConditions(crop, neverLogged(), nil, today)

	require.Len(t, drafts, 2)
	assert.Equal(t, models.CategoryRoutine, drafts[0].Category)
	assert.Contains(t, drafts[0].Message, "Perfect time to sow Rice")
	assert.Equal(t, models.CategoryTip, drafts[1].Category)
	assert.Contains(t, drafts[1].Message, "Prepare the field")
}

func TestUnsownCropOutsideSowingWindow(t *testing.T) {
	today := midJune()
	crop := &models.Crop{
		Name:         "Cabbage",
		SowingMonths: models.MonthSet{time.October, time.November},
	}

	drafts := AnalyzeCropConditions(crop, neverLogged(), nil, today)

	require.Len(t, drafts, 1)
	assert.Equal(t, models.CategoryTip, drafts[0].Category)
	assert.Contains(t, drafts[0].Message, "outside the sowing window")
}

func TestSownCropGetsNoSowingAdvisory(t *testing.T) {
	today := midJune()
	crop := &models.Crop{
		Name:         "Rice",
		IsSown:       true,
		SownDate:     sownDaysAgo(today, 10),
		SowingMonths: models.MonthSet{time.June},
	}

	drafts := AnalyzeCropConditions(crop, freshRecency(), nil, today)

	for _, d := range drafts {
		assert.NotContains(t, d.Message, "sowing window")
		assert.NotContains(t, d.Message, "Perfect time to sow")
	}
}

func TestYoungCropNeedsWaterUrgently(t *testing.T) {
	today := midJune()
	crop := &models.Crop{
		Name:     "Okra",
		IsSown:   true,
		SownDate: sownDaysAgo(today, 1),
	}

	drafts := AnalyzeCropConditions(crop, neverLogged(), nil, today)

	require.Len(t, drafts, 2)
	assert.Equal(t, models.CategoryUrgent, drafts[0].Category)
	assert.Contains(t, drafts[0].Message, "root establishment")
	assert.Equal(t, models.CategoryTip, drafts[1].Category)
	assert.Contains(t, drafts[1].Message, "establishment phase")
}

func TestYoungCropUrgencyIgnoresRain(t *testing.T) {
	today := midJune()
	crop := &models.Crop{
		Name:     "Okra",
		IsSown:   true,
		SownDate: sownDaysAgo(today, 1),
	}
	forecast := []models.WeatherDay{
		{Date: today, MaxTempC: 28, AvgHumidity: 70, WillRain: true},
	}

	drafts := AnalyzeCropConditions(crop, neverLogged(), forecast, today)

	require.NotEmpty(t, drafts)
	assert.Equal(t, models.CategoryUrgent, drafts[0].Category)
	assert.Contains(t, drafts[0].Message, "Irrigate today")
}

func TestRainSoonSkipsIrrigation(t *testing.T) {
	today := midJune()
	crop := &models.Crop{
		Name:     "Banana",
		IsSown:   true,
		SownDate: sownDaysAgo(today, 40),
	}
	rec := freshRecency()
	rec.DaysSinceIrrigation = 2

	forecast := []models.WeatherDay{
		{Date: today, MaxTempC: 28, AvgHumidity: 70},
		{Date: today.AddDate(0, 0, 1), MaxTempC: 27, AvgHumidity: 75, WillRain: true},
	}

	drafts := AnalyzeCropConditions(crop, rec, forecast, today)

	var sawSkip bool
	for _, d := range drafts {
		assert.NotContains(t, d.Message, "Time to irrigate")
		if d.Category == models.CategoryTip && d.Message == "Rain is expected within two days — skip irrigation for Banana and let the rain do the work." {
			sawSkip = true
		}
	}
	assert.True(t, sawSkip)
}

func TestMatureCropIrrigationReminder(t *testing.T) {
	today := midJune()
	crop := &models.Crop{
		Name:             "Banana",
		IsSown:           true,
		SownDate:         sownDaysAgo(today, 40),
		IrrigationLiters: "10-15 liters",
	}
	rec := freshRecency()
	rec.DaysSinceIrrigation = 5

	drafts := AnalyzeCropConditions(crop, rec, nil, today)

	require.NotEmpty(t, drafts)
	assert.Equal(t, models.CategoryRoutine, drafts[0].Category)
	assert.Contains(t, drafts[0].Message, "Time to irrigate Banana")
	assert.Contains(t, drafts[0].Message, "10-15 liters")
}

func TestHighTempTightensIrrigationThreshold(t *testing.T) {
	today := midJune()
	crop := &models.Crop{
		Name:     "Banana",
		IsSown:   true,
		SownDate: sownDaysAgo(today, 40),
	}
	rec := freshRecency()
	rec.DaysSinceIrrigation = 3 // below the mature threshold of 4

	hot := []models.WeatherDay{{Date: today, MaxTempC: 38, AvgHumidity: 60}}
	drafts := AnalyzeCropConditions(crop, rec, hot, today)

	require.NotEmpty(t, drafts)
	assert.Equal(t, models.CategoryUrgent, drafts[0].Category)
	assert.Contains(t, drafts[0].Message, "High temperature expected today (38.0°C)")

	var sawIrrigate bool
	for _, d := range drafts {
		if d.Category == models.CategoryRoutine && d.Message == "Time to irrigate Banana. Suggested amount: as per crop requirement." {
			sawIrrigate = true
		}
	}
	assert.True(t, sawIrrigate)

	// Same recency without the heat stays quiet on irrigation.
	calm := AnalyzeCropConditions(crop, rec, nil, today)
	for _, d := range calm {
		assert.NotContains(t, d.Message, "Time to irrigate")
	}
}

func TestHighHumidityRaisesFungalAlert(t *testing.T) {
	today := midJune()
	crop := &models.Crop{
		Name:     "Tomato",
		IsSown:   true,
		SownDate: sownDaysAgo(today, 20),
	}
	rec := freshRecency()
	rec.DaysSincePesticide = 8

	humid := []models.WeatherDay{{Date: today, MaxTempC: 30, AvgHumidity: 90}}
	drafts := AnalyzeCropConditions(crop, rec, humid, today)

	var sawFungal bool
	for _, d := range drafts {
		if d.Category == models.CategoryUrgent {
			assert.Contains(t, d.Message, "fungal disease risk")
			sawFungal = true
		}
	}
	assert.True(t, sawFungal)

	dry := []models.WeatherDay{{Date: today, MaxTempC: 30, AvgHumidity: 60}}
	drafts = AnalyzeCropConditions(crop, rec, dry, today)
	for _, d := range drafts {
		assert.NotContains(t, d.Message, "fungal disease risk")
	}
}

func TestPesticideGroupIsExclusive(t *testing.T) {
	today := midJune()
	crop := &models.Crop{
		Name:      "Tomato",
		IsSown:    true,
		SownDate:  sownDaysAgo(today, 20),
		Pesticide: "neem oil spray",
	}
	rec := freshRecency()
	rec.DaysSincePesticide = 25

	humid := []models.WeatherDay{{Date: today, MaxTempC: 30, AvgHumidity: 90}}
	drafts := AnalyzeCropConditions(crop, rec, humid, today)

	var pesticideDrafts int
	for _, d := range drafts {
		if d.Message == "High humidity raises fungal disease risk for Tomato. Inspect the leaves today and treat if needed." ||
			d.Message == "Check Tomato for pests. If you find any, apply neem oil spray." {
			pesticideDrafts++
		}
	}
	assert.Equal(t, 1, pesticideDrafts)
}

func TestFertilizerBandsByAge(t *testing.T) {
	today := midJune()

	cases := []struct {
		name    string
		age     int
		since   int
		message string
	}{
		{"first application", 10, DaysNeverLogged, "first fertilizer application"},
		{"second application", 20, 16, "second fertilizer application"},
		{"ongoing", 40, 25, "keep nutrients up"},
		{"too recent", 20, 5, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			crop := &models.Crop{
				Name:       "Brinjal",
				IsSown:     true,
				SownDate:   sownDaysAgo(today, tc.age),
				Fertilizer: "organic compost",
			}
			rec := freshRecency()
			rec.DaysSinceFertilizer = tc.since

			drafts := AnalyzeCropConditions(crop, rec, nil, today)

			var found bool
			for _, d := range drafts {
				if d.Message == "Brinjal is ready for its first fertilizer application. A light dose now supports early growth." ||
					d.Message == "Time for the second fertilizer application for Brinjal. Recommended: organic compost." ||
					d.Message == "It has been a while since Brinjal was fertilized. Apply organic compost to keep nutrients up." {
					found = true
					if tc.message != "" {
						assert.Contains(t, d.Message, tc.message)
					}
				}
			}
			assert.Equal(t, tc.message != "", found)
		})
	}
}

func TestHarvestWindowAdvisories(t *testing.T) {
	today := midJune()

	ready := &models.Crop{
		Name:             "Rice",
		IsSown:           true,
		SownDate:         sownDaysAgo(today, 65),
		HarvestingMonths: models.MonthSet{time.June},
	}
	drafts := AnalyzeCropConditions(ready, freshRecency(), nil, today)

	var sawReady bool
	for _, d := range drafts {
		if d.Category == models.CategoryUrgent {
			assert.Contains(t, d.Message, "may be ready for harvest (grown for 65 days)")
			sawReady = true
		}
	}
	assert.True(t, sawReady)

	early := &models.Crop{
		Name:             "Rice",
		IsSown:           true,
		SownDate:         sownDaysAgo(today, 40),
		HarvestingMonths: models.MonthSet{time.June},
	}
	drafts = AnalyzeCropConditions(early, freshRecency(), nil, today)

	var sawApproaching bool
	for _, d := range drafts {
		assert.NotContains(t, d.Message, "may be ready for harvest")
		if d.Message == "Harvest season for Rice is approaching. Start planning labour and storage." {
			sawApproaching = true
		}
	}
	assert.True(t, sawApproaching)
}

func TestHarvestedCropGetsNoHarvestAdvisory(t *testing.T) {
	today := midJune()
	crop := &models.Crop{
		Name:             "Rice",
		IsSown:           true,
		IsHarvested:      true,
		SownDate:         sownDaysAgo(today, 70),
		HarvestingMonths: models.MonthSet{time.June},
	}

	drafts := AnalyzeCropConditions(crop, freshRecency(), nil, today)

	for _, d := range drafts {
		assert.NotContains(t, d.Message, "harvest")
	}
}

func TestQuietDayFallback(t *testing.T) {
	today := midJune()
	crop := &models.Crop{
		Name:          "Banana",
		IsSown:        true,
		SownDate:      sownDaysAgo(today, 45),
		SunlightHours: "6-8 hours",
	}

	drafts := AnalyzeCropConditions(crop, freshRecency(), nil, today)

	require.Len(t, drafts, 2)
	assert.Equal(t, []string{models.CategoryTip, models.CategoryTip}, categories(drafts))
	assert.Contains(t, drafts[0].Message, "looking good")
	assert.Contains(t, drafts[1].Message, "6-8 hours")
}

func TestEmptyForecastMutesWeatherRulesOnly(t *testing.T) {
	today := midJune()
	crop := &models.Crop{
		Name:     "Banana",
		IsSown:   true,
		SownDate: sownDaysAgo(today, 40),
	}
	rec := freshRecency()
	rec.DaysSinceIrrigation = 6

	nilForecast := AnalyzeCropConditions(crop, rec, nil, today)
	emptyForecast := AnalyzeCropConditions(crop, rec, []models.WeatherDay{}, today)

	assert.Equal(t, nilForecast, emptyForecast)
	require.NotEmpty(t, nilForecast)
	assert.Equal(t, models.CategoryRoutine, nilForecast[0].Category)
	assert.Contains(t, nilForecast[0].Message, "Time to irrigate")
}

func TestAnalyzerIsDeterministic(t *testing.T) {
	today := midJune()
	crop := &models.Crop{
		Name:             "Rice",
		EnglishName:      "Rice",
		IsSown:           true,
		SownDate:         sownDaysAgo(today, 20),
		HarvestingMonths: models.MonthSet{time.October},
	}
	rec := neverLogged()
	forecast := []models.WeatherDay{
		{Date: today, MaxTempC: 36, AvgHumidity: 88},
		{Date: today.AddDate(0, 0, 1), MaxTempC: 33, AvgHumidity: 80, WillRain: true},
	}

	first := AnalyzeCropConditions(crop, rec, forecast, today)
	second := AnalyzeCropConditions(crop, rec, forecast, today)

	assert.Equal(t, first, second)
}
