package mlclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"airquality_service/internal/domain/model"
)

func TestPredict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/predict", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req predictRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "pm25_7d", req.Model)
		assert.Equal(t, 60.0, req.Features["humidity"])

		json.NewEncoder(w).Encode(predictResponse{Prediction: 42.5})
	}))
	defer srv.Close()

	client := NewHTTPInferenceClient(srv.URL, "pm25_7d")
	got, err := client.Predict(context.Background(), model.FeatureVector{"humidity": 60})
	require.NoError(t, err)
	assert.Equal(t, 42.5, got)
}

func TestPredictServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model crashed", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewHTTPInferenceClient(srv.URL, "pm25_7d")
	_, err := client.Predict(context.Background(), model.FeatureVector{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestPredictUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	client := NewHTTPInferenceClient(srv.URL, "pm25_7d")
	_, err := client.Predict(context.Background(), model.FeatureVector{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "model service request failed")
}

func TestExpectedSchema(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/models/pm10_24h/schema", r.URL.Path)
		json.NewEncoder(w).Encode(schemaResponse{Features: []string{"humidity", "temperature", "pm_10"}})
	}))
	defer srv.Close()

	client := NewHTTPInferenceClient(srv.URL, "pm10_24h")
	schema, err := client.ExpectedSchema(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.FeatureSchema{"humidity", "temperature", "pm_10"}, schema)
}

func TestExpectedSchemaNotPublished(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	client := NewHTTPInferenceClient(srv.URL, "pm10_24h")
	schema, err := client.ExpectedSchema(context.Background())
	require.NoError(t, err)
	assert.Nil(t, schema)
}

func TestInfo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/models/pm25_7d", r.URL.Path)
		w.Write([]byte(`{"name": "pm25_7d", "pollutant": "pm2.5", "horizon": "7d", "metrics": {"mse": 4.1, "rmse": 2.02, "r2": 0.87}}`))
	}))
	defer srv.Close()

	client := NewHTTPInferenceClient(srv.URL, "pm25_7d")
	info, err := client.Info(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "pm2.5", info.Pollutant)
	assert.InDelta(t, 0.87, info.Metrics.R2, 1e-9)
}

func TestInfoServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewHTTPInferenceClient(srv.URL, "pm25_7d")
	_, err := client.Info(context.Background())
	require.Error(t, err)
}
