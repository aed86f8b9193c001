package services

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/Vanshhsoni/kissan/models"
)

// Coordinate is one entry of the district lookup table.
type Coordinate struct {
	Lat float64
	Lng float64
}

// The 14 Kerala districts the app serves. Weather is only fetched for
// locations in this table; anything else short-circuits to unavailable.
var districtCoordinates = map[string]Coordinate{
	"Thiruvananthapuram": {Lat: 8.5241, Lng: 76.9366},
	"Kollam":             {Lat: 8.8932, Lng: 76.6141},
	"Pathanamthitta":     {Lat: 9.2648, Lng: 76.7870},
	"Alappuzha":          {Lat: 9.4981, Lng: 76.3388},
	"Kottayam":           {Lat: 9.5916, Lng: 76.5222},
	"Idukki":             {Lat: 9.8560, Lng: 76.9774},
	"Ernakulam":          {Lat: 9.9312, Lng: 76.2673},
	"Thrissur":           {Lat: 10.5276, Lng: 76.2144},
	"Palakkad":           {Lat: 10.7867, Lng: 76.6548},
	"Malappuram":         {Lat: 11.0510, Lng: 76.0711},
	"Kozhikode":          {Lat: 11.2588, Lng: 75.7804},
	"Wayanad":            {Lat: 11.6854, Lng: 76.1320},
	"Kannur":             {Lat: 11.8745, Lng: 75.3704},
	"Kasaragod":          {Lat: 12.4996, Lng: 74.9869},
}

// ForecastProvider is what advisory generation needs from the weather
// layer; tests substitute a stub.
type ForecastProvider interface {
	Forecast(district string) []models.WeatherDay
}

// WeatherService fetches the five-day forecast for a district and
// aggregates the provider's 3-hour samples into per-day summaries.
type WeatherService struct {
	client  *http.Client
	baseURL string
	apiKey  string
	apiHost string
	coords  map[string]Coordinate
}

func NewWeatherService() *WeatherService {
	return &WeatherService{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: "https://open-weather13.p.rapidapi.com",
		apiKey:  os.Getenv("WEATHER_API_KEY"),
		apiHost: "open-weather13.p.rapidapi.com",
		coords:  districtCoordinates,
	}
}

// Raw provider payload: a list of 3-hour samples. Temperatures arrive
// in Kelvin; rain is the accumulation over the preceding 3 hours.
type forecastResponse struct {
	List []forecastSample `json:"list"`
}

type forecastSample struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Rain struct {
		ThreeH float64 `json:"3h"`
	} `json:"rain"`
}

// Forecast returns the aggregated per-day forecast sorted ascending by
// date, or nil when weather data is unavailable. Unavailability is
// never an error for callers: the advisory engine degrades gracefully
// without weather. An empty (non-nil) slice means the provider answered
// with no samples.
func (w *WeatherService) Forecast(district string) []models.WeatherDay {
	coords, ok := w.coords[district]
	if !ok {
		log.Printf("weather: district %q not in coordinates mapping", district)
		return nil
	}

	url := fmt.Sprintf("%s/fivedaysforcast?latitude=%f&longitude=%f&lang=EN", w.baseURL, coords.Lat, coords.Lng)
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		log.Printf("weather: building request failed: %v", err)
		return nil
	}
	req.Header.Set("x-rapidapi-key", w.apiKey)
	req.Header.Set("x-rapidapi-host", w.apiHost)

	resp, err := w.client.Do(req)
	if err != nil {
		log.Printf("weather: fetch failed for %s: %v", district, err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("weather: provider returned %d for %s", resp.StatusCode, district)
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Printf("weather: reading response failed: %v", err)
		return nil
	}

	var payload forecastResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Printf("weather: malformed payload for %s: %v", district, err)
		return nil
	}

	return aggregateByDay(payload.List)
}

// aggregateByDay groups 3-hour samples by their local calendar date and
// reduces each group to one WeatherDay.
func aggregateByDay(samples []forecastSample) []models.WeatherDay {
	type dayAgg struct {
		date        time.Time
		maxC, minC  float64
		humiditySum float64
		count       int
		rainSum     float64
		willRain    bool
		conditions  []string
		seen        map[string]bool
	}

	days := map[string]*dayAgg{}
	for _, s := range samples {
		t := time.Unix(s.Dt, 0).In(time.Local)
		key := t.Format("2006-01-02")

		tempC := kelvinToCelsius(s.Main.Temp)

		agg, ok := days[key]
		if !ok {
			agg = &dayAgg{
				date: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local),
				maxC: tempC,
				minC: tempC,
				seen: map[string]bool{},
			}
			days[key] = agg
		}

		if tempC > agg.maxC {
			agg.maxC = tempC
		}
		if tempC < agg.minC {
			agg.minC = tempC
		}
		agg.humiditySum += s.Main.Humidity
		agg.count++
		agg.rainSum += s.Rain.ThreeH
		if s.Rain.ThreeH > 0 {
			agg.willRain = true
		}
		for _, cond := range s.Weather {
			if cond.Main != "" && !agg.seen[cond.Main] {
				agg.seen[cond.Main] = true
				agg.conditions = append(agg.conditions, cond.Main)
			}
		}
	}

	out := make([]models.WeatherDay, 0, len(days))
	for _, agg := range days {
		out = append(out, models.WeatherDay{
			Date:        agg.date,
			MaxTempC:    agg.maxC,
			MinTempC:    agg.minC,
			AvgHumidity: agg.humiditySum / float64(agg.count),
			WillRain:    agg.willRain,
			TotalRainMM: agg.rainSum,
			Conditions:  agg.conditions,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func kelvinToCelsius(k float64) float64 {
	return math.Round((k-273.15)*10) / 10
}

// WeatherSummary is the dashboard's compact view of today's weather.
type WeatherSummary struct {
	Status      string   `json:"status"` // "available" | "unavailable"
	MaxTempC    float64  `json:"max_temp,omitempty"`
	MinTempC    float64  `json:"min_temp,omitempty"`
	AvgHumidity float64  `json:"avg_humidity,omitempty"`
	WillRain    bool     `json:"will_rain,omitempty"`
	Conditions  []string `json:"conditions,omitempty"`
}

func (w *WeatherService) Summary(district string) WeatherSummary {
	forecast := w.Forecast(district)
	if len(forecast) == 0 {
		return WeatherSummary{Status: "unavailable"}
	}
	first := forecast[0]
	return WeatherSummary{
		Status:      "available",
		MaxTempC:    first.MaxTempC,
		MinTempC:    first.MinTempC,
		AvgHumidity: first.AvgHumidity,
		WillRain:    first.WillRain,
		Conditions:  first.Conditions,
	}
}

// KnownDistricts lists the districts weather can be fetched for, used
// to validate registration input.
func KnownDistricts() []string {
	out := make([]string, 0, len(districtCoordinates))
	for d := range districtCoordinates {
		out = append(out, d)
	}
	sort.Strings(out)
	return out
}
