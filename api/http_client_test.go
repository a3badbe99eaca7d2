package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPClient_Request_Success(t *testing.T) {
	// Mock server setup
	mockResponse := map[string]string{"message": "success"}
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/test-endpoint" {
			t.Errorf("Expected endpoint '/test-endpoint', got '%s'", r.URL.Path)
		}
		if got := r.URL.Query().Get("key"); got != "abc" {
			t.Errorf("Expected query key 'abc', got '%s'", got)
		}

		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(mockResponse)
	}))
	defer mockServer.Close()

	// Test setup
	client := NewHTTPClient(mockServer.URL, time.Second)
	var response map[string]string

	// Act
	err := client.Request(context.Background(), "GET", "/test-endpoint", url.Values{"key": {"abc"}}, nil, nil, &response)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "success", response["message"])
}

func TestHTTPClient_Request_Failure(t *testing.T) {
	// Mock server setup
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "bad request"}`))
	}))
	defer mockServer.Close()

	// Test setup
	client := NewHTTPClient(mockServer.URL, time.Second)
	var response map[string]string

	// Act
	err := client.Request(context.Background(), "POST", "/test-endpoint", nil, nil, map[string]string{"key": "value"}, &response)

	// Assert
	require.Error(t, err)
	assert.Equal(t, "unexpected status code: 400 Bad Request", err.Error())

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
	assert.Contains(t, statusErr.Body, "bad request")
}

func TestHTTPClient_Request_MalformedJSON(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"invalid_json`))
	}))
	defer mockServer.Close()

	client := NewHTTPClient(mockServer.URL, time.Second)
	var response map[string]string

	err := client.Request(context.Background(), "GET", "/broken", nil, nil, nil, &response)

	assert.Error(t, err)
}
