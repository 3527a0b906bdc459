// SPDX-FileCopyrightText: The weather2wear authors
//
// SPDX-License-Identifier: MIT

package forecast

import (
	"errors"
	"math"
	"testing"
)

const floatTolerance = 1e-9

func TestSummarize(t *testing.T) {
	t.Run("averages equal the arithmetic means of the inputs", func(t *testing.T) {
		set := Set{
			{Timestamp: "2026-08-25 09:00:00", Temperature: 10, Humidity: 50, WindSpeed: 1, Condition: "Rain"},
			{Timestamp: "2026-08-25 12:00:00", Temperature: 12, Humidity: 60, WindSpeed: 2, Condition: "Rain"},
			{Timestamp: "2026-08-25 15:00:00", Temperature: 14, Humidity: 70, WindSpeed: 3, Condition: "Clear"},
		}
		summary, err := Summarize(set)
		if err != nil {
			t.Fatalf("failed to summarize forecast set: %s", err)
		}
		if math.Abs(summary.AvgTemperature-12.0) > floatTolerance {
			t.Errorf("expected average temperature to be 12.0, got %f", summary.AvgTemperature)
		}
		if math.Abs(summary.AvgHumidity-60.0) > floatTolerance {
			t.Errorf("expected average humidity to be 60.0, got %f", summary.AvgHumidity)
		}
		if math.Abs(summary.AvgWindSpeed-2.0) > floatTolerance {
			t.Errorf("expected average wind speed to be 2.0, got %f", summary.AvgWindSpeed)
		}
		if summary.MostCommonCondition != "Rain" {
			t.Errorf("expected most common condition to be Rain, got %s", summary.MostCommonCondition)
		}
	})
	t.Run("single sample set returns that sample's values", func(t *testing.T) {
		set := Set{
			{Temperature: 21.5, Humidity: 48, WindSpeed: 4.2, Condition: "Clouds"},
		}
		summary, err := Summarize(set)
		if err != nil {
			t.Fatalf("failed to summarize forecast set: %s", err)
		}
		if math.Abs(summary.AvgTemperature-21.5) > floatTolerance {
			t.Errorf("expected average temperature to be 21.5, got %f", summary.AvgTemperature)
		}
		if math.Abs(summary.AvgHumidity-48) > floatTolerance {
			t.Errorf("expected average humidity to be 48, got %f", summary.AvgHumidity)
		}
		if math.Abs(summary.AvgWindSpeed-4.2) > floatTolerance {
			t.Errorf("expected average wind speed to be 4.2, got %f", summary.AvgWindSpeed)
		}
		if summary.MostCommonCondition != "Clouds" {
			t.Errorf("expected most common condition to be Clouds, got %s", summary.MostCommonCondition)
		}
	})
	t.Run("most common condition selection", func(t *testing.T) {
		tests := []struct {
			name       string
			conditions []string
			want       string
		}{
			{"majority wins", []string{"Rain", "Clear", "Rain"}, "Rain"},
			{"tie is broken by first occurrence", []string{"Rain", "Clear"}, "Rain"},
			{"later majority overtakes", []string{"Clear", "Rain", "Rain"}, "Rain"},
			{"three-way tie keeps the first", []string{"Snow", "Rain", "Clear"}, "Snow"},
		}
		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				set := make(Set, 0, len(tc.conditions))
				for _, cond := range tc.conditions {
					set = append(set, Sample{Condition: cond})
				}
				summary, err := Summarize(set)
				if err != nil {
					t.Fatalf("failed to summarize forecast set: %s", err)
				}
				if summary.MostCommonCondition != tc.want {
					t.Errorf("expected most common condition to be %s, got %s", tc.want,
						summary.MostCommonCondition)
				}
			})
		}
	})
	t.Run("empty set fails with ErrEmptyForecast", func(t *testing.T) {
		_, err := Summarize(Set{})
		if err == nil {
			t.Fatal("expected summarize to fail on an empty set")
		}
		if !errors.Is(err, ErrEmptyForecast) {
			t.Errorf("expected error to be %s, got %s", ErrEmptyForecast, err)
		}
		if _, err = Summarize(nil); !errors.Is(err, ErrEmptyForecast) {
			t.Errorf("expected error to be %s, got %s", ErrEmptyForecast, err)
		}
	})
}
