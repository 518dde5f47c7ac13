package core

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"airquality_service/internal/domain/model"
)

// defaultEWMWeights approximate exponential decay over the five PM10
// readings, most recent first.
var defaultEWMWeights = []float64{0.4, 0.25, 0.2, 0.1, 0.05}

// LagStatisticsCalculator derives the rolling and weighted means the 24-hour
// model was trained on from a five-reading lag window.
type LagStatisticsCalculator struct {
	weights []float64
}

// NewLagStatisticsCalculator validates the weight vector (five weights
// summing to 1) and returns a calculator.
func NewLagStatisticsCalculator(weights []float64) (*LagStatisticsCalculator, error) {
	if len(weights) != 5 {
		return nil, fmt.Errorf("expected 5 ewm weights, got %d", len(weights))
	}
	if sum := floats.Sum(weights); math.Abs(sum-1) > 1e-9 {
		return nil, fmt.Errorf("ewm weights must sum to 1, got %v", sum)
	}
	return &LagStatisticsCalculator{weights: weights}, nil
}

// Compute returns the three derived statistics. Если хотя бы одно из пяти
// значений отсутствует, все три результата равны 0 — дисплей всегда
// заполнен, калькулятор никогда не падает.
func (c *LagStatisticsCalculator) Compute(lags model.HourlyLags) model.RollingStats {
	if !lags.Complete() {
		return model.RollingStats{}
	}
	v := lags.Values()
	vals := v[:]
	return model.RollingStats{
		RollMean6:  stat.Mean(vals[:4], nil),
		RollMean24: stat.Mean(vals, nil),
		EWM12:      stat.Mean(vals, c.weights),
	}
}

// MovingAverage3 is the 3-day moving average of the daily lag readings; it
// seeds the 7-day loop's carried state.
func MovingAverage3(lags model.DailyLags) float64 {
	return stat.Mean([]float64{lags.Lag1, lags.Lag2, lags.Lag3}, nil)
}
