// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func respond(t *testing.T, status int, body string) *http.Response {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(ts.Close)

	resp, err := ts.Client().Get(ts.URL)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestCheckResponse_OK(t *testing.T) {
	resp := respond(t, http.StatusOK, `{"items": []}`)
	assert.NoError(t, CheckResponse(resp))
}

func TestCheckResponse_StatusErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
		wantErr string
	}{
		{
			name:    "google error payload",
			status:  http.StatusBadRequest,
			body:    `{"error": {"code": 400, "message": "API key not valid. Please pass a valid API key."}}`,
			wantMsg: "API key not valid. Please pass a valid API key.",
			wantErr: "HTTP 400: API key not valid",
		},
		{
			name:    "quota exceeded",
			status:  http.StatusTooManyRequests,
			body:    `{"error": {"code": 429, "message": "Quota exceeded for quota metric 'Queries'"}}`,
			wantMsg: "Quota exceeded for quota metric 'Queries'",
			wantErr: "HTTP 429",
		},
		{
			name:    "non-json body",
			status:  http.StatusBadGateway,
			body:    `<html>bad gateway</html>`,
			wantMsg: "",
			wantErr: "HTTP 502: Unknown error",
		},
		{
			name:    "empty body",
			status:  http.StatusInternalServerError,
			body:    ``,
			wantMsg: "",
			wantErr: "HTTP 500: Unknown error",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckResponse(respond(t, tt.status, tt.body))
			require.Error(t, err)

			se, ok := AsStatusError(err)
			require.True(t, ok)
			assert.Equal(t, tt.status, se.StatusCode)
			assert.Equal(t, tt.wantMsg, se.Message)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestHint(t *testing.T) {
	bad := Hint(http.StatusBadRequest)
	require.Len(t, bad, 3)
	assert.Contains(t, bad[0], "API key")
	assert.Contains(t, bad[1], "Search Engine ID")

	quota := Hint(http.StatusTooManyRequests)
	require.Len(t, quota, 1)
	assert.True(t, strings.Contains(quota[0], "daily quota"))

	assert.Nil(t, Hint(http.StatusInternalServerError))
	assert.Nil(t, Hint(http.StatusForbidden))
}

func TestAsStatusError_Wrapped(t *testing.T) {
	base := &StatusError{StatusCode: http.StatusTooManyRequests}
	wrapped := fmt.Errorf("fetching page at 11: %w", base)

	se, ok := AsStatusError(wrapped)
	require.True(t, ok)
	assert.Same(t, base, se)
	assert.Equal(t, Hint(http.StatusTooManyRequests), se.Hint())

	_, ok = AsStatusError(fmt.Errorf("dial tcp: connection refused"))
	assert.False(t, ok)
}
