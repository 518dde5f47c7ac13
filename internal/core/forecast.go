package core

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"airquality_service/internal/domain/model"
)

const (
	forecastSteps = 7
	// Все дневные прогнозы считаются на полдень.
	forecastHour = 12
)

// NoiseSource supplies the bounded random perturbation applied to each
// forecast step. It must be injectable so determinism tests can pin it;
// *rand.Rand satisfies it.
type NoiseSource interface {
	Float64() float64
}

// lockedNoise guards a rand.Rand so one source can serve concurrent runs.
type lockedNoise struct {
	mu sync.Mutex
	r  *rand.Rand
}

// NewSeededNoise returns a seeded, concurrency-safe noise source.
func NewSeededNoise(seed int64) NoiseSource {
	return &lockedNoise{r: rand.New(rand.NewSource(seed))}
}

func (n *lockedNoise) Float64() float64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.r.Float64()
}

// IterativeForecastEngine drives the 7-day autoregressive loop: each day's
// adjusted prediction feeds back as input for the next day.
type IterativeForecastEngine struct {
	model   model.InferenceModel
	builder *FeatureVectorBuilder
	noise   NoiseSource
}

func NewIterativeForecastEngine(m model.InferenceModel, builder *FeatureVectorBuilder, noise NoiseSource) *IterativeForecastEngine {
	return &IterativeForecastEngine{model: m, builder: builder, noise: noise}
}

// Run executes exactly seven steps. A predictor failure on any step aborts
// the whole run; no partial series is returned.
func (e *IterativeForecastEngine) Run(ctx context.Context, req model.DailyForecastRequest) ([]model.ForecastStep, error) {
	schema, err := e.model.ExpectedSchema(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get model schema: %w", err)
	}

	// Переносимое состояние цикла: вчерашнее значение становится текущим.
	current := req.Lags.Lag1
	previousLag := req.Lags.Lag2
	movingAverage := MovingAverage3(req.Lags)

	steps := make([]model.ForecastStep, 0, forecastSteps)
	for i := 0; i < forecastSteps; i++ {
		date := req.StartDate.AddDate(0, 0, i)

		values := map[string]float64{
			"humidity":     req.Humidity,
			"temperature":  req.Temperature,
			"hour":         forecastHour,
			"day":          float64(date.Day()),
			"month":        float64(int(date.Month())),
			"day_of_week":  float64(pythonWeekday(date)),
			"pm_2_5":       current,
			"pm_2_5_lag1h": previousLag,
			"pm_2_5_ma3h":  movingAverage,
		}
		features := e.builder.Build(schema, values)

		base, err := e.model.Predict(ctx, features)
		if err != nil {
			return nil, fmt.Errorf("predict failed on step %d: %w", i, err)
		}

		weekday := weekdayFactor(date.Weekday())
		cycle := weatherCycleFactor(i)
		noise := 1.0 + 0.03*(e.noise.Float64()-0.5)

		value := round2(base * weekday * cycle * noise)

		steps = append(steps, model.ForecastStep{
			Date:               date,
			Features:           features,
			BaseValue:          base,
			WeekdayFactor:      weekday,
			WeatherCycleFactor: cycle,
			NoiseFactor:        noise,
			Value:              value,
		})

		previousLag = current
		current = value
		// Рекурсивное среднее: среднее сворачивается с двумя последними
		// значениями. Not a sliding 3-day window; the trained pipeline
		// behaves this way and output parity depends on it.
		movingAverage = (movingAverage + previousLag + current) / 3
	}

	return steps, nil
}

// weekdayFactor models the weekend drop in traffic-driven pollution.
func weekdayFactor(d time.Weekday) float64 {
	switch d {
	case time.Saturday:
		return 0.90
	case time.Sunday:
		return 0.85
	default:
		return 1.0
	}
}

// weatherCycleFactor is a ±8% variation over a repeating 3-day pseudo-weather
// cycle; phase 0 (steps 0, 3, 6) is exactly neutral.
func weatherCycleFactor(step int) float64 {
	phase := float64(step%3) / 3.0
	return 1.0 + 0.08*math.Sin(2*math.Pi*phase)
}

// pythonWeekday converts to the Monday=0..Sunday=6 numbering the models were
// trained with.
func pythonWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
