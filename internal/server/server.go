// SPDX-FileCopyrightText: The weather2wear authors
//
// SPDX-License-Identifier: MIT

// Package server implements the HTTP frontend of weather2wear. It serves the
// single page, drives a submission cycle through the weather and
// recommendation clients and renders the result.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	stdhttp "net/http"
	"sync"

	"github.com/weather2wear/weather2wear/internal/config"
	"github.com/weather2wear/weather2wear/internal/http"
	"github.com/weather2wear/weather2wear/internal/i18n"
	"github.com/weather2wear/weather2wear/internal/logger"
	"github.com/weather2wear/weather2wear/internal/metrics"
	"github.com/weather2wear/weather2wear/internal/outfit"
	"github.com/weather2wear/weather2wear/internal/presenter"
	"github.com/weather2wear/weather2wear/internal/weather"
	"github.com/weather2wear/weather2wear/internal/weather/provider/forecastapi"
)

// Server holds the wired components and the last completed cycle
type Server struct {
	conf        *config.Config
	log         *logger.Logger
	provider    weather.Provider
	recommender recommender
	presenter   *presenter.Presenter
	metrics     *metrics.Metrics
	httpSrv     *stdhttp.Server

	// mu guards last; cycles themselves are never mutated after runCycle
	// returns
	mu   sync.Mutex
	last *Cycle
}

// New wires all components and returns a ready-to-run server
func New(conf *config.Config, log *logger.Logger) (*Server, error) {
	loc, err := i18n.New(conf.Locale)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize localization: %w", err)
	}

	client := http.New(log)
	api, err := forecastapi.New(client, log, conf.Weather.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to create weather provider: %w", err)
	}
	rec, err := outfit.NewClient(client, log, conf.Outfit.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to create recommendation client: %w", err)
	}
	pres, err := presenter.New(conf, loc)
	if err != nil {
		return nil, fmt.Errorf("failed to create presenter: %w", err)
	}

	srv := &Server{
		conf:        conf,
		log:         log,
		provider:    weather.NewRateLimited(api, conf.Weather.RequestsPerSecond, conf.Weather.Burst),
		recommender: rec,
		presenter:   pres,
		metrics:     metrics.New(),
	}

	mux := stdhttp.NewServeMux()
	mux.HandleFunc("GET /{$}", srv.handleIndex)
	mux.HandleFunc("POST /{$}", srv.handleSubmit)
	mux.HandleFunc("GET /healthz", srv.handleHealthz)
	mux.Handle("GET /metrics", srv.metrics.Handler())
	srv.httpSrv = &stdhttp.Server{
		Addr:              conf.ListenAddr,
		Handler:           mux,
		ReadHeaderTimeout: conf.Timeouts.Request,
	}

	return srv, nil
}

// Run starts the HTTP server and blocks until the given context is canceled,
// then shuts the server down gracefully
func (s *Server) Run(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		s.log.Info("starting HTTP server", slog.String("addr", s.conf.ListenAddr))
		if err := s.httpSrv.ListenAndServe(); err != nil &&
			!errors.Is(err, stdhttp.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("HTTP server failed: %w", err)
	case <-ctx.Done():
	}

	s.log.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.conf.Timeouts.Shutdown)
	defer cancel()
	if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down HTTP server: %w", err)
	}

	return nil
}

// Handler exposes the request multiplexer, mainly for tests
func (s *Server) Handler() stdhttp.Handler {
	return s.httpSrv.Handler
}

// handleIndex serves the page. Without a prior submission this is the blank
// form, otherwise the outcome of the last cycle is shown again.
func (s *Server) handleIndex(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	s.mu.Lock()
	cycle := s.last
	s.mu.Unlock()
	if cycle == nil {
		cycle = &Cycle{State: StateIdle}
	}
	s.renderCycle(w, cycle)
}

// handleSubmit runs one submission cycle from the posted form values
func (s *Server) handleSubmit(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	if err := r.ParseForm(); err != nil {
		s.log.Error("failed to parse form", logger.Err(err))
		stdhttp.Error(w, "failed to parse form", stdhttp.StatusBadRequest)
		return
	}
	prefs := Preferences{
		ActivityLevel: r.PostFormValue("activity_level"),
		ActivityType:  r.PostFormValue("activity_type"),
		Location:      r.PostFormValue("location"),
	}

	cycle := s.runCycle(r.Context(), prefs)

	s.mu.Lock()
	s.last = cycle
	s.mu.Unlock()

	s.renderCycle(w, cycle)
}

func (s *Server) handleHealthz(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(stdhttp.StatusOK)
	if _, err := w.Write([]byte("ok")); err != nil {
		s.log.Error("failed to write health response", logger.Err(err))
	}
}

// renderCycle builds and writes the page for a cycle. An incomplete
// recommendation fails page building, in that case the page is rebuilt
// without the outfit block and the validation error is shown instead.
func (s *Server) renderCycle(w stdhttp.ResponseWriter, cycle *Cycle) {
	in := presenter.Input{
		ActivityLevel: cycle.Prefs.ActivityLevel,
		ActivityType:  cycle.Prefs.ActivityType,
		Location:      cycle.Prefs.Location,
	}
	if in.ActivityLevel == "" {
		in.ActivityLevel = activityLevels[0]
	}
	if in.ActivityType == "" {
		in.ActivityType = activityTypes[0]
	}

	page, err := s.presenter.BuildPage(in, cycle.Data, cycle.Summary, cycle.Suggestion, cycle.Err)
	if err != nil {
		var missing outfit.MissingSlotError
		if !errors.As(err, &missing) {
			s.log.Error("failed to build page", logger.Err(err))
			stdhttp.Error(w, "failed to build page", stdhttp.StatusInternalServerError)
			return
		}
		s.log.Error("recommendation is incomplete", logger.Err(err))
		s.metrics.RecommendationFailures.Inc()
		page, err = s.presenter.BuildPage(in, cycle.Data, cycle.Summary, nil, missing)
		if err != nil {
			s.log.Error("failed to build page", logger.Err(err))
			stdhttp.Error(w, "failed to build page", stdhttp.StatusInternalServerError)
			return
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err = s.presenter.Render(w, page); err != nil {
		s.log.Error("failed to render page", logger.Err(err))
		return
	}
	if cycle.State == StateRendered {
		s.metrics.Rendered.Inc()
	}
}
