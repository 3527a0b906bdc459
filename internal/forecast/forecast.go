// SPDX-FileCopyrightText: The weather2wear authors
//
// SPDX-License-Identifier: MIT

// Package forecast holds the forecast sample types and the aggregation that
// condenses a multi-day forecast into a single summary.
package forecast

import "errors"

// ErrEmptyForecast is returned when a summary is requested for a forecast set
// without any samples
var ErrEmptyForecast = errors.New("forecast set contains no samples")

// Sample is a single 3-hourly forecast observation as returned by the weather
// endpoint. The timestamp is kept as the opaque string the endpoint delivers.
type Sample struct {
	Timestamp   string
	Temperature float64
	Humidity    float64
	WindSpeed   float64
	Condition   string
	Description string
	Icon        string
}

// Set is an ordered sequence of forecast samples covering a forward time window
type Set []Sample

// Summary condenses a forecast set into the arithmetic means of its numeric
// series and the most frequent condition label
type Summary struct {
	AvgTemperature      float64
	AvgHumidity         float64
	AvgWindSpeed        float64
	MostCommonCondition string
}

// Summarize computes the Summary for the given forecast set. The most common
// condition is selected stably: when two conditions tie on their occurrence
// count, the one seen first in the set wins. An empty set fails with
// ErrEmptyForecast since a mean is undefined for it.
func Summarize(set Set) (Summary, error) {
	if len(set) == 0 {
		return Summary{}, ErrEmptyForecast
	}

	var sumTemp, sumHumidity, sumWind float64
	counts := make(map[string]int, len(set))
	mostCommon, bestCount := "", 0
	for _, sample := range set {
		sumTemp += sample.Temperature
		sumHumidity += sample.Humidity
		sumWind += sample.WindSpeed

		counts[sample.Condition]++
		if counts[sample.Condition] > bestCount {
			mostCommon = sample.Condition
			bestCount = counts[sample.Condition]
		}
	}

	n := float64(len(set))
	return Summary{
		AvgTemperature:      sumTemp / n,
		AvgHumidity:         sumHumidity / n,
		AvgWindSpeed:        sumWind / n,
		MostCommonCondition: mostCommon,
	}, nil
}
