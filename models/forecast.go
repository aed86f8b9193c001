package models

import "time"

// WeatherDay is one calendar day's forecast, aggregated from the
// provider's 3-hour samples. It is built fresh on every analysis call
// and never persisted.
type WeatherDay struct {
	Date        time.Time `json:"date"`
	MaxTempC    float64   `json:"max_temp"`
	MinTempC    float64   `json:"min_temp"`
	AvgHumidity float64   `json:"avg_humidity"`
	WillRain    bool      `json:"will_rain"`
	TotalRainMM float64   `json:"total_rain_mm"`
	Conditions  []string  `json:"conditions"`
}
