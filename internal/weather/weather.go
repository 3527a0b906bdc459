// SPDX-FileCopyrightText: The weather2wear authors
//
// SPDX-License-Identifier: MIT

// Package weather defines the domain types for forecast data and the provider
// interface implemented by each weather API backend.
package weather

import (
	"context"
	"time"

	"github.com/weather2wear/weather2wear/internal/forecast"
)

// Provider is implemented by each weather API backend.
type Provider interface {
	Name() string
	GetForecast(ctx context.Context, location string) (*Data, error)
}

// City describes the place the forecast applies to, as resolved by the
// weather endpoint from the user-supplied location string.
type City struct {
	Name      string
	Country   string
	Latitude  float64
	Longitude float64
}

// Data is one complete forecast response for a single location.
type Data struct {
	GeneratedAt time.Time
	City        City
	Samples     forecast.Set
}
