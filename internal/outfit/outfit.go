// SPDX-FileCopyrightText: The weather2wear authors
//
// SPDX-License-Identifier: MIT

// Package outfit implements the client for the recommendation endpoint, which
// maps an aggregated weather summary plus activity preferences to clothing
// suggestions.
package outfit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	stdhttp "net/http"
	"net/url"
	"strings"
	"time"

	"github.com/weather2wear/weather2wear/internal/forecast"
	"github.com/weather2wear/weather2wear/internal/http"
	"github.com/weather2wear/weather2wear/internal/logger"
)

const apiTimeout = time.Second * 10

// Slots is the fixed, ordered set of clothing slots a complete suggestion
// covers
var Slots = []string{"Top", "Bottom", "Footwear", "Outerwear", "Accessories"}

// ErrUnexpectedStatus is returned when the recommendation endpoint answers
// with a non-200 status code
var ErrUnexpectedStatus = errors.New("recommendation endpoint returned unexpected status")

// MissingSlotError reports a recommendation reply that lacks one of the
// required clothing slots
type MissingSlotError struct {
	Slot string
}

// Error implements the error interface for the MissingSlotError
func (e MissingSlotError) Error() string {
	return fmt.Sprintf("recommendation is missing the %q clothing slot", e.Slot)
}

// Request is the payload sent to the recommendation endpoint. Activity values
// are lower-cased on the wire.
type Request struct {
	ActivityLevel     string  `json:"activity_level"`
	ActivityType      string  `json:"activity_type"`
	AvgTemp           float64 `json:"avg_temp"`
	AvgHumidity       float64 `json:"avg_humidity"`
	AvgWindSpeed      float64 `json:"avg_wind_speed"`
	MostCommonWeather string  `json:"most_common_weather"`
}

// NewRequest combines the activity preferences with a weather summary into a
// recommendation request
func NewRequest(activityLevel, activityType string, summary forecast.Summary) Request {
	return Request{
		ActivityLevel:     strings.ToLower(activityLevel),
		ActivityType:      strings.ToLower(activityType),
		AvgTemp:           summary.AvgTemperature,
		AvgHumidity:       summary.AvgHumidity,
		AvgWindSpeed:      summary.AvgWindSpeed,
		MostCommonWeather: summary.MostCommonCondition,
	}
}

// Suggestion maps clothing slots to textual recommendations
type Suggestion map[string]string

// Validate checks that the suggestion covers all required clothing slots and
// returns a MissingSlotError naming the first absent one
func (s Suggestion) Validate() error {
	for _, slot := range Slots {
		if _, ok := s[slot]; !ok {
			return MissingSlotError{Slot: slot}
		}
	}
	return nil
}

// Client talks to the recommendation endpoint
type Client struct {
	endpoint string
	log      *logger.Logger
	http     *http.Client
}

// NewClient returns a new recommendation client
func NewClient(client *http.Client, log *logger.Logger, endpoint string) (*Client, error) {
	if client == nil {
		return nil, fmt.Errorf("http client is required")
	}
	if _, err := url.Parse(endpoint); err != nil {
		return nil, fmt.Errorf("invalid recommendation endpoint: %w", err)
	}
	return &Client{
		endpoint: endpoint,
		log:      log,
		http:     client,
	}, nil
}

// Suggest submits the given request and returns the clothing suggestion. A
// transport failure or non-200 status is terminal; the client performs exactly
// one attempt. The returned suggestion is not validated here, callers check
// for completeness at render time.
func (c *Client) Suggest(ctx context.Context, req Request) (Suggestion, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal recommendation request: %w", err)
	}

	headers := map[string]string{"Content-Type": "application/json"}
	suggestion := make(Suggestion)
	code, err := c.http.PostWithTimeout(ctx, c.endpoint, &suggestion, bytes.NewReader(payload),
		headers, apiTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recommendation: %w", err)
	}
	if code != stdhttp.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, code)
	}

	return suggestion, nil
}
