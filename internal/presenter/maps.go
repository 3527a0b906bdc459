// SPDX-FileCopyrightText: The weather2wear authors
//
// SPDX-License-Identifier: MIT

package presenter

// MoonPhaseIcons is a map where moon phase names are keys and their
// corresponding emoji representations are values.
var MoonPhaseIcons = map[string]string{
	"New Moon":        "🌑",
	"Waxing Crescent": "🌒",
	"First Quarter":   "🌓",
	"Waxing Gibbous":  "🌔",
	"Full Moon":       "🌕",
	"Waning Gibbous":  "🌖",
	"Third Quarter":   "🌗",
	"Waning Crescent": "🌘",
}

// ConditionIcons maps the condition labels of the weather endpoint to single
// emoji icons
var ConditionIcons = map[string]string{
	"Clear":        "☀️",
	"Clouds":       "☁️",
	"Drizzle":      "🌦️",
	"Rain":         "🌧️",
	"Thunderstorm": "⛈️",
	"Snow":         "🌨️",
	"Mist":         "🌫️",
	"Fog":          "🌫️",
	"Haze":         "🌫️",
	"Smoke":        "🌫️",
	"Dust":         "🌪️",
	"Sand":         "🌪️",
	"Squall":       "💨",
	"Tornado":      "🌪️",
}
