// SPDX-FileCopyrightText: The weather2wear authors
//
// SPDX-License-Identifier: MIT

// Package forecastapi implements the weather provider that talks to the
// location-keyed forecast endpoint. The endpoint resolves a free-text location
// (city name or postcode) and answers with an OpenWeatherMap-shaped document:
// a city descriptor plus a list of 3-hourly forecast entries.
package forecastapi

import (
	"context"
	"errors"
	"fmt"
	stdhttp "net/http"
	"net/url"
	"time"

	"github.com/weather2wear/weather2wear/internal/forecast"
	"github.com/weather2wear/weather2wear/internal/http"
	"github.com/weather2wear/weather2wear/internal/logger"
	"github.com/weather2wear/weather2wear/internal/weather"
)

const (
	name       = "forecast-api"
	apiTimeout = time.Second * 10
)

// ErrUnexpectedStatus is returned when the weather endpoint answers with a
// non-200 status code
var ErrUnexpectedStatus = errors.New("weather endpoint returned unexpected status")

// ForecastAPI is the provider implementation for the forecast endpoint
type ForecastAPI struct {
	endpoint string
	log      *logger.Logger
	http     *http.Client
}

var _ weather.Provider = (*ForecastAPI)(nil)

type response struct {
	City struct {
		Name    string `json:"name"`
		Country string `json:"country"`
		Coord   struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"coord"`
	} `json:"city"`
	List []struct {
		DtTxt string `json:"dt_txt"`
		Main  struct {
			Temp     float64 `json:"temp"`
			Humidity float64 `json:"humidity"`
		} `json:"main"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
		Weather []struct {
			Main        string `json:"main"`
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
	} `json:"list"`
}

// New returns a new ForecastAPI provider
func New(client *http.Client, log *logger.Logger, endpoint string) (*ForecastAPI, error) {
	if client == nil {
		return nil, fmt.Errorf("http client is required")
	}
	if _, err := url.Parse(endpoint); err != nil {
		return nil, fmt.Errorf("invalid forecast endpoint: %w", err)
	}
	return &ForecastAPI{
		endpoint: endpoint,
		log:      log,
		http:     client,
	}, nil
}

// Name returns the name of the provider
func (p *ForecastAPI) Name() string {
	return name
}

// GetForecast fetches the forecast for the given location string. Any
// transport failure, non-200 status or undecodable body is terminal; the
// provider performs exactly one attempt.
func (p *ForecastAPI) GetForecast(ctx context.Context, location string) (*weather.Data, error) {
	query := url.Values{}
	query.Add("location", location)

	res := new(response)
	code, err := p.http.GetWithTimeout(ctx, p.endpoint, res, query, nil, apiTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch forecast data: %w", err)
	}
	if code != stdhttp.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, code)
	}

	data := &weather.Data{
		GeneratedAt: time.Now(),
		City: weather.City{
			Name:      res.City.Name,
			Country:   res.City.Country,
			Latitude:  res.City.Coord.Lat,
			Longitude: res.City.Coord.Lon,
		},
		Samples: make(forecast.Set, 0, len(res.List)),
	}
	for _, entry := range res.List {
		sample := forecast.Sample{
			Timestamp:   entry.DtTxt,
			Temperature: entry.Main.Temp,
			Humidity:    entry.Main.Humidity,
			WindSpeed:   entry.Wind.Speed,
		}
		// The weather block is a list in the wire format, only its first
		// element carries the condition.
		if len(entry.Weather) > 0 {
			sample.Condition = entry.Weather[0].Main
			sample.Description = entry.Weather[0].Description
			sample.Icon = entry.Weather[0].Icon
		}
		data.Samples = append(data.Samples, sample)
	}

	return data, nil
}
