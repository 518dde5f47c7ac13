package model

import "context"

// InferenceModel определяет интерфейс предиктора для одного загрязнителя.
// Instances are loaded once at startup and must be read-only afterwards so
// they can be shared across concurrent runs.
type InferenceModel interface {
	// Predict returns the model's scalar output for the given feature vector.
	Predict(ctx context.Context, features FeatureVector) (float64, error)

	// ExpectedSchema returns the ordered feature names the model was trained
	// with. An empty schema means unknown; callers fall back to a canonical
	// ordering.
	ExpectedSchema(ctx context.Context) (FeatureSchema, error)
}

// ModelInfo содержит информацию о модели.
type ModelInfo struct {
	Name      string `json:"name"`
	Pollutant string `json:"pollutant"`
	Horizon   string `json:"horizon"`
	Metrics   struct {
		MSE  float64 `json:"mse"`
		RMSE float64 `json:"rmse"`
		R2   float64 `json:"r2"`
	} `json:"metrics"`
}
