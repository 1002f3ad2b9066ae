// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by search backends: a typed
// error for non-200 responses and human-readable hints for the statuses the
// search API commonly returns.
package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 64 << 10

// StatusError is returned when the remote API answers with a non-200 status.
type StatusError struct {
	StatusCode int
	// Message is the API's error.message field, or "" if the body had none.
	Message string
}

func (e *StatusError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "Unknown error"
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, msg)
}

// Hint returns troubleshooting tips for the status, or nil if there are none.
func (e *StatusError) Hint() []string {
	return Hint(e.StatusCode)
}

// Hint maps an HTTP status to troubleshooting tips. 400 usually means bad
// credentials or configuration; 429 means the daily quota is exhausted.
func Hint(status int) []string {
	switch status {
	case http.StatusBadRequest:
		return []string{
			"Check if your API key is correct",
			"Check if your Search Engine ID is correct",
			"Make sure Custom Search API is enabled in Google Cloud Console",
		}
	case http.StatusTooManyRequests:
		return []string{"Rate limit exceeded. You may have hit your daily quota."}
	default:
		return nil
	}
}

// AsStatusError reports whether err wraps a *StatusError and returns it.
func AsStatusError(err error) (*StatusError, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// CheckResponse returns nil for HTTP 200 and a *StatusError otherwise. The
// body is read for a Google-style {"error": {"message": ...}} payload; the
// caller still owns closing it.
func CheckResponse(resp *http.Response) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}

	se := &StatusError{StatusCode: resp.StatusCode}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return se
	}

	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(data, &body) == nil {
		se.Message = body.Error.Message
	}
	return se
}
