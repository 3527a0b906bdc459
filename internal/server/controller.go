// SPDX-FileCopyrightText: The weather2wear authors
//
// SPDX-License-Identifier: MIT

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/weather2wear/weather2wear/internal/forecast"
	"github.com/weather2wear/weather2wear/internal/logger"
	"github.com/weather2wear/weather2wear/internal/outfit"
	"github.com/weather2wear/weather2wear/internal/weather"
)

var (
	// ErrEmptyLocation is returned when a submission carries no location
	ErrEmptyLocation = errors.New("please enter a location")

	activityLevels = []string{"Low", "Medium", "High"}
	activityTypes  = []string{"Formal", "Informal", "Sport"}
)

// Preferences are the user inputs of one form submission
type Preferences struct {
	ActivityLevel string
	ActivityType  string
	Location      string
}

// Validate checks the submitted preferences. An empty location is the expected
// first-visit case and gets its own sentinel error, unknown activity values
// can only come from tampered requests.
func (p Preferences) Validate() error {
	if p.Location == "" {
		return ErrEmptyLocation
	}
	if !slices.Contains(activityLevels, p.ActivityLevel) {
		return fmt.Errorf("unknown activity level: %q", p.ActivityLevel)
	}
	if !slices.Contains(activityTypes, p.ActivityType) {
		return fmt.Errorf("unknown activity type: %q", p.ActivityType)
	}
	return nil
}

// State is the position of a submission cycle in its lifecycle
type State int

const (
	// StateIdle means no cycle is in flight
	StateIdle State = iota
	// StateAwaitingWeather means the forecast request is in flight
	StateAwaitingWeather
	// StateAwaitingRecommendation means the outfit request is in flight
	StateAwaitingRecommendation
	// StateRendered means the cycle completed and its page was built
	StateRendered
	// StateError means the cycle failed
	StateError
)

// String satisfies the fmt.Stringer interface for the State type
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingWeather:
		return "awaiting weather"
	case StateAwaitingRecommendation:
		return "awaiting recommendation"
	case StateRendered:
		return "rendered"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// recommender is the part of the outfit client the controller depends on
type recommender interface {
	Suggest(ctx context.Context, req outfit.Request) (outfit.Suggestion, error)
}

// Cycle is the outcome of one submission: the preferences as entered and
// whatever the pipeline managed to produce before finishing or failing.
type Cycle struct {
	Prefs      Preferences
	State      State
	Data       *weather.Data
	Summary    *forecast.Summary
	Suggestion outfit.Suggestion
	Err        error
}

// runCycle drives one submission through the pipeline: validate, fetch the
// forecast, aggregate it, fetch the recommendation. A failure after the
// summary was computed keeps the summary in the cycle so that the weather
// sections can still be shown.
func (s *Server) runCycle(ctx context.Context, prefs Preferences) *Cycle {
	cycle := &Cycle{Prefs: prefs, State: StateIdle}
	s.metrics.Submissions.Inc()

	if err := prefs.Validate(); err != nil {
		s.metrics.InvalidInput.Inc()
		cycle.Err = err
		return cycle
	}

	cycle.State = StateAwaitingWeather
	data, err := s.provider.GetForecast(ctx, prefs.Location)
	if err != nil {
		s.log.Error("failed to fetch forecast", logger.Err(err),
			slog.String("location", prefs.Location))
		s.metrics.WeatherFailures.Inc()
		cycle.State = StateError
		cycle.Err = err
		return cycle
	}
	cycle.Data = data

	summary, err := forecast.Summarize(data.Samples)
	if err != nil {
		s.log.Error("failed to summarize forecast", logger.Err(err))
		s.metrics.WeatherFailures.Inc()
		cycle.State = StateError
		cycle.Err = err
		return cycle
	}
	cycle.Summary = &summary

	cycle.State = StateAwaitingRecommendation
	req := outfit.NewRequest(prefs.ActivityLevel, prefs.ActivityType, summary)
	suggestion, err := s.recommender.Suggest(ctx, req)
	if err != nil {
		s.log.Error("failed to fetch recommendation", logger.Err(err))
		s.metrics.RecommendationFailures.Inc()
		cycle.State = StateError
		cycle.Err = err
		return cycle
	}
	cycle.Suggestion = suggestion

	cycle.State = StateRendered
	return cycle
}
