// SPDX-FileCopyrightText: The weather2wear authors
//
// SPDX-License-Identifier: MIT

// Package testhelper provides shared helpers for tests that exercise the
// HTTP-facing parts of weather2wear.
package testhelper

import (
	"io"
	"net/http"
	"strings"
)

// MockRoundTripper satisfies http.RoundTripper with a caller-provided function,
// so tests can serve canned responses without a network.
type MockRoundTripper struct {
	Fn func(req *http.Request) (*http.Response, error)
}

// RoundTrip implements the http.RoundTripper interface
func (m MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	return m.Fn(req)
}

// JSONResponse returns a http.Response with the given status code and the given
// string as its body
func JSONResponse(code int, body string) *http.Response {
	header := make(http.Header)
	header.Set("Content-Type", "application/json")
	return &http.Response{
		StatusCode: code,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     header,
	}
}
