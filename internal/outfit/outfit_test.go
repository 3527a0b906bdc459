// SPDX-FileCopyrightText: The weather2wear authors
//
// SPDX-License-Identifier: MIT

package outfit

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	stdhttp "net/http"
	"testing"

	"github.com/weather2wear/weather2wear/internal/forecast"
	"github.com/weather2wear/weather2wear/internal/http"
	"github.com/weather2wear/weather2wear/internal/logger"
	"github.com/weather2wear/weather2wear/internal/testhelper"
)

const testReply = `{"Top": "Shirt", "Bottom": "Chinos", "Footwear": "Boots",
	"Outerwear": "Rain jacket", "Accessories": "Umbrella"}`

func TestNewRequest(t *testing.T) {
	t.Run("activity values are lower-cased", func(t *testing.T) {
		summary := forecast.Summary{
			AvgTemperature:      12.0,
			AvgHumidity:         60.0,
			AvgWindSpeed:        2.0,
			MostCommonCondition: "Rain",
		}
		req := NewRequest("Low", "Formal", summary)
		if req.ActivityLevel != "low" {
			t.Errorf("expected activity level to be low, got %s", req.ActivityLevel)
		}
		if req.ActivityType != "formal" {
			t.Errorf("expected activity type to be formal, got %s", req.ActivityType)
		}
		if req.AvgTemp != 12.0 {
			t.Errorf("expected average temperature to be 12.0, got %f", req.AvgTemp)
		}
		if req.MostCommonWeather != "Rain" {
			t.Errorf("expected most common weather to be Rain, got %s", req.MostCommonWeather)
		}
	})
}

func TestSuggestion_Validate(t *testing.T) {
	t.Run("complete suggestion validates", func(t *testing.T) {
		suggestion := Suggestion{
			"Top": "Shirt", "Bottom": "Chinos", "Footwear": "Boots",
			"Outerwear": "Rain jacket", "Accessories": "Umbrella",
		}
		if err := suggestion.Validate(); err != nil {
			t.Errorf("expected suggestion to validate, got: %s", err)
		}
	})
	t.Run("missing slot fails with MissingSlotError", func(t *testing.T) {
		suggestion := Suggestion{
			"Top": "Shirt", "Bottom": "Chinos", "Footwear": "Boots",
			"Accessories": "Umbrella",
		}
		err := suggestion.Validate()
		if err == nil {
			t.Fatal("expected validation to fail")
		}
		var missing MissingSlotError
		if !errors.As(err, &missing) {
			t.Fatalf("expected error to be a MissingSlotError, got %T", err)
		}
		if missing.Slot != "Outerwear" {
			t.Errorf("expected missing slot to be Outerwear, got %s", missing.Slot)
		}
	})
	t.Run("empty suggestion reports the first slot", func(t *testing.T) {
		var missing MissingSlotError
		err := Suggestion{}.Validate()
		if !errors.As(err, &missing) {
			t.Fatalf("expected error to be a MissingSlotError, got %T", err)
		}
		if missing.Slot != "Top" {
			t.Errorf("expected missing slot to be Top, got %s", missing.Slot)
		}
	})
}

func TestClient_Suggest(t *testing.T) {
	t.Run("suggestion request sends the expected payload", func(t *testing.T) {
		var gotPayload Request
		var gotContentType string
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			gotContentType = req.Header.Get("Content-Type")
			body, err := io.ReadAll(req.Body)
			if err != nil {
				t.Fatalf("failed to read request body: %s", err)
			}
			if err = json.Unmarshal(body, &gotPayload); err != nil {
				t.Fatalf("failed to unmarshal request body: %s", err)
			}
			return testhelper.JSONResponse(200, testReply), nil
		}
		client := testClient(t, rtFn)

		summary := forecast.Summary{
			AvgTemperature:      12.0,
			AvgHumidity:         60.0,
			AvgWindSpeed:        2.0,
			MostCommonCondition: "Rain",
		}
		suggestion, err := client.Suggest(t.Context(), NewRequest("Low", "Formal", summary))
		if err != nil {
			t.Fatalf("failed to get suggestion: %s", err)
		}
		if gotContentType != "application/json" {
			t.Errorf("expected content type to be application/json, got %s", gotContentType)
		}
		if gotPayload.ActivityLevel != "low" {
			t.Errorf("expected activity level to be low, got %s", gotPayload.ActivityLevel)
		}
		if gotPayload.AvgHumidity != 60.0 {
			t.Errorf("expected average humidity to be 60.0, got %f", gotPayload.AvgHumidity)
		}
		if gotPayload.MostCommonWeather != "Rain" {
			t.Errorf("expected most common weather to be Rain, got %s", gotPayload.MostCommonWeather)
		}
		if suggestion["Outerwear"] != "Rain jacket" {
			t.Errorf("expected outerwear to be 'Rain jacket', got %s", suggestion["Outerwear"])
		}
		if err = suggestion.Validate(); err != nil {
			t.Errorf("expected suggestion to validate, got: %s", err)
		}
	})
	t.Run("non-200 status fails", func(t *testing.T) {
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			return testhelper.JSONResponse(503, `{"message": "overloaded"}`), nil
		}
		client := testClient(t, rtFn)

		_, err := client.Suggest(t.Context(), Request{})
		if err == nil {
			t.Fatal("expected suggestion request to fail")
		}
		if !errors.Is(err, ErrUnexpectedStatus) {
			t.Errorf("expected error to be %s, got %s", ErrUnexpectedStatus, err)
		}
	})
	t.Run("transport failure fails", func(t *testing.T) {
		rtFn := func(req *stdhttp.Request) (*stdhttp.Response, error) {
			return nil, errors.New("intentionally failing")
		}
		client := testClient(t, rtFn)

		if _, err := client.Suggest(t.Context(), Request{}); err == nil {
			t.Fatal("expected suggestion request to fail")
		}
	})
	t.Run("new client without http client fails", func(t *testing.T) {
		if _, err := NewClient(nil, logger.New(slog.LevelError), "https://outfit.example.com/"); err == nil {
			t.Error("expected client creation to fail, but didn't")
		}
	})
}

func testClient(t *testing.T, rtFn func(req *stdhttp.Request) (*stdhttp.Response, error)) *Client {
	t.Helper()
	log := logger.New(slog.LevelError)
	httpClient := http.New(log)
	httpClient.Transport = testhelper.MockRoundTripper{Fn: rtFn}
	client, err := NewClient(httpClient, log, "https://outfit.example.com/")
	if err != nil {
		t.Fatalf("failed to create client: %s", err)
	}
	return client
}
