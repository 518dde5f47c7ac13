package mlclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"airquality_service/internal/domain/model"
)

// HTTPInferenceClient talks to the model-serving service that hosts one
// trained pollutant model. It implements model.InferenceModel and is
// read-only after construction, so one instance can serve concurrent runs.
type HTTPInferenceClient struct {
	baseURL string
	name    string
	client  *http.Client
}

func NewHTTPInferenceClient(baseURL, name string) *HTTPInferenceClient {
	return &HTTPInferenceClient{
		baseURL: baseURL,
		name:    name,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type predictRequest struct {
	Model    string              `json:"model"`
	Features model.FeatureVector `json:"features"`
}

type predictResponse struct {
	Prediction float64 `json:"prediction"`
}

// Predict отправляет вектор признаков сервису моделей и возвращает скаляр.
func (c *HTTPInferenceClient) Predict(ctx context.Context, features model.FeatureVector) (float64, error) {
	body, err := json.Marshal(predictRequest{Model: c.name, Features: features})
	if err != nil {
		return 0, fmt.Errorf("failed to marshal predict request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewBuffer(body))
	if err != nil {
		return 0, fmt.Errorf("failed to create predict request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("model service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("model service returned status: %d", resp.StatusCode)
	}

	var out predictResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("failed to decode predict response: %w", err)
	}

	return out.Prediction, nil
}

type schemaResponse struct {
	Features []string `json:"features"`
}

// ExpectedSchema возвращает имена признаков, с которыми обучалась модель.
// Not every exported model publishes its schema; a 404 means unknown and
// callers fall back to a canonical ordering.
func (c *HTTPInferenceClient) ExpectedSchema(ctx context.Context) (model.FeatureSchema, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/models/%s/schema", c.baseURL, c.name), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create schema request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("model service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("model service returned status: %d", resp.StatusCode)
	}

	var out schemaResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("failed to decode schema response: %w", err)
	}

	return model.FeatureSchema(out.Features), nil
}

// Info returns the served model's metadata. It doubles as the startup
// availability probe: an error here marks the track unavailable.
func (c *HTTPInferenceClient) Info(ctx context.Context) (model.ModelInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/models/%s", c.baseURL, c.name), nil)
	if err != nil {
		return model.ModelInfo{}, fmt.Errorf("failed to create info request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return model.ModelInfo{}, fmt.Errorf("model service request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return model.ModelInfo{}, fmt.Errorf("model service returned status: %d", resp.StatusCode)
	}

	var info model.ModelInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return model.ModelInfo{}, fmt.Errorf("failed to decode info response: %w", err)
	}

	return info, nil
}
