package core

import (
	"airquality_service/internal/domain/model"
)

// FeatureVectorBuilder выравнивает семантические значения под точный набор
// признаков, который ожидает модель. Different exports of the same trained
// pipeline spell the lag features differently, so every accepted alias of a
// concept resolves to one canonical value. A name that resolves to nothing
// defaults to 0 — tolerant of naming drift, but it also silently masks
// genuinely missing data, so callers needing strictness validate inputs
// before building.
type FeatureVectorBuilder struct {
	aliases  map[string]string
	fallback model.FeatureSchema
}

// NewFeatureVectorBuilder creates a builder with the given canonical fallback
// ordering and alias table (accepted name -> canonical name).
func NewFeatureVectorBuilder(fallback model.FeatureSchema, aliases map[string]string) *FeatureVectorBuilder {
	return &FeatureVectorBuilder{aliases: aliases, fallback: fallback}
}

// NewDailyVectorBuilder builds vectors for the PM2.5 7-day model.
func NewDailyVectorBuilder() *FeatureVectorBuilder {
	return NewFeatureVectorBuilder(
		model.FeatureSchema{
			"humidity", "pm_2_5", "temperature", "hour", "day", "month",
			"day_of_week", "pm_2_5_lag1h", "pm_2_5_ma3h",
		},
		map[string]string{
			"pm25_lag1h":     "pm_2_5_lag1h",
			"pm_2_5_lag_1_h": "pm_2_5_lag1h",
			"pm25_ma3h":      "pm_2_5_ma3h",
		},
	)
}

// NewHourlyVectorBuilder builds vectors for the PM10 24-hour model.
func NewHourlyVectorBuilder() *FeatureVectorBuilder {
	return NewFeatureVectorBuilder(
		model.FeatureSchema{
			"humidity", "pm_10", "temperature", "hour", "day", "month",
			"day_of_week", "pm10_lag_1", "pm10_lag_3", "pm10_lag_6",
			"pm10_lag_24", "pm10_roll_mean_6", "pm10_roll_mean_24",
			"pm10_ewm_12",
		},
		nil,
	)
}

// Build returns a vector containing exactly the schema's names, each resolved
// from values or defaulted to 0. An empty schema falls back to the builder's
// canonical ordering.
func (b *FeatureVectorBuilder) Build(schema model.FeatureSchema, values map[string]float64) model.FeatureVector {
	if len(schema) == 0 {
		schema = b.fallback
	}
	vec := make(model.FeatureVector, len(schema))
	for _, name := range schema {
		vec[name] = b.resolve(name, values)
	}
	return vec
}

// Ordered returns the resolved values in schema order.
func (b *FeatureVectorBuilder) Ordered(schema model.FeatureSchema, values map[string]float64) []float64 {
	if len(schema) == 0 {
		schema = b.fallback
	}
	out := make([]float64, len(schema))
	for i, name := range schema {
		out[i] = b.resolve(name, values)
	}
	return out
}

func (b *FeatureVectorBuilder) resolve(name string, values map[string]float64) float64 {
	if v, ok := values[name]; ok {
		return v
	}
	if canonical, ok := b.aliases[name]; ok {
		if v, ok := values[canonical]; ok {
			return v
		}
	}
	return 0
}
