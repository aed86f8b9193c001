package utils

import "time"

// CurrentSeason maps a month to the Kerala agricultural season.
func CurrentSeason(month time.Month) string {
	switch month {
	case time.June, time.July, time.August, time.September:
		return "Kharif (വർഷാക്കാലം)"
	case time.October, time.November, time.December, time.January:
		return "Rabi (ശീതകാലം)"
	default:
		return "Summer (വേനൽക്കാലം)"
	}
}

// SeasonalTips returns general care tips for the season the given month
// falls in, used by the assistant's tips endpoint.
func SeasonalTips(month time.Month) []string {
	season := CurrentSeason(month)
	switch {
	case season == "Kharif (വർഷാക്കാലം)":
		return []string{
			"Keep field drainage clear during the monsoon.",
			"Watch closely for fungal infections in the wet weeks.",
			"Protect young crops from waterlogging damage.",
		}
	case season == "Rabi (ശീതകാലം)":
		return []string{
			"Prepare beds for winter-season crops.",
			"Retain soil moisture with mulching.",
			"Guard against pest build-up in the cooler weeks.",
		}
	default:
		return []string{
			"Irrigate early in the morning to limit evaporation.",
			"Provide shade for sensitive crops during peak heat.",
			"Mulch to keep the root zone cool.",
		}
	}
}
