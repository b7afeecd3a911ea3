package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMux_HealthEndpoint(t *testing.T) {
	mux := buildMux([]byte(`{}`), map[string][]byte{"a": nil, "b": nil, "c": nil})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")

	var body map[string]any
	err := json.Unmarshal(rr.Body.Bytes(), &body)
	require.NoError(t, err)
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, 3, body["layers"])
}

func TestBuildMux_MapGeoJSON(t *testing.T) {
	payload := []byte(`{"type":"FeatureCollection","features":[]}`)
	mux := buildMux(payload, nil)

	req := httptest.NewRequest(http.MethodGet, "/map.geojson", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "geo+json")
	assert.Equal(t, payload, rr.Body.Bytes())
}

func TestBuildMux_LayerEndpoint(t *testing.T) {
	stormBody := []byte(`{"type":"FeatureCollection"}`)
	mux := buildMux(nil, map[string][]byte{"storms": stormBody})

	// Layer names match case-insensitively, with or without extension.
	for _, path := range []string{"/layers/storms.geojson", "/layers/Storms"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code, path)
		assert.Equal(t, stormBody, rr.Body.Bytes(), path)
	}

	req := httptest.NewRequest(http.MethodGet, "/layers/nope.geojson", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestBuildMux_IndexPage(t *testing.T) {
	mux := buildMux(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, rr.Body.String(), "map.geojson")
}

func TestBuildMux_UnknownRoute(t *testing.T) {
	mux := buildMux(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRenderBodies(t *testing.T) {
	withTestConfig(t)
	mapPath := writeTestMap(t)

	v, err := buildSession(context.Background(), mapPath)
	require.NoError(t, err)

	combined, perLayer, err := renderBodies(context.Background(), v)
	require.NoError(t, err)
	assert.NotEmpty(t, combined)
	require.Contains(t, perLayer, "storms")

	var fc struct {
		Features []json.RawMessage `json:"features"`
	}
	require.NoError(t, json.Unmarshal(perLayer["storms"], &fc))
	assert.Len(t, fc.Features, 2)
}
