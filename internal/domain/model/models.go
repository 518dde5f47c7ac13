package model

import "time"

// FeatureSchema is the ordered list of input names a trained model expects.
// An empty schema means the model did not publish one.
type FeatureSchema []string

// FeatureVector maps a trained feature name to its numeric value. It is
// rebuilt from scratch for every prediction call.
type FeatureVector map[string]float64

// DailyLags are the recent PM2.5 readings for the 7-day track:
// значения за 1, 2 и 3 дня назад.
type DailyLags struct {
	Lag1 float64 `json:"lag_1"`
	Lag2 float64 `json:"lag_2"`
	Lag3 float64 `json:"lag_3"`
}

// HourlyLags are the recent PM10 readings for the 24-hour track. Fields are
// pointers so that a missing reading is distinguishable from a zero one.
type HourlyLags struct {
	Current *float64 `json:"current"`
	Lag1    *float64 `json:"lag_1"`
	Lag3    *float64 `json:"lag_3"`
	Lag6    *float64 `json:"lag_6"`
	Lag24   *float64 `json:"lag_24"`
}

// Complete reports whether all five readings were provided.
func (l HourlyLags) Complete() bool {
	return l.Current != nil && l.Lag1 != nil && l.Lag3 != nil && l.Lag6 != nil && l.Lag24 != nil
}

// Values returns the readings ordered most recent first. Missing readings
// come back as 0.
func (l HourlyLags) Values() [5]float64 {
	deref := func(p *float64) float64 {
		if p == nil {
			return 0
		}
		return *p
	}
	return [5]float64{deref(l.Current), deref(l.Lag1), deref(l.Lag3), deref(l.Lag6), deref(l.Lag24)}
}

// RollingStats are the derived lag statistics fed to the 24-hour model.
type RollingStats struct {
	RollMean6  float64 `json:"roll_mean_6"`
	RollMean24 float64 `json:"roll_mean_24"`
	EWM12      float64 `json:"ewm_12"`
}

// DailyForecastRequest carries the user-entered initial conditions for a
// 7-day run.
type DailyForecastRequest struct {
	StartDate   time.Time
	Humidity    float64
	Temperature float64
	Lags        DailyLags
}

// HourlyForecastRequest carries the current conditions for a 24-hour run.
type HourlyForecastRequest struct {
	Date        time.Time
	Hour        int
	Humidity    float64
	Temperature float64
	Lags        HourlyLags
}

// ForecastStep is the result of one iteration of the autoregressive loop.
type ForecastStep struct {
	Date               time.Time     `json:"date"`
	Features           FeatureVector `json:"features"`
	BaseValue          float64       `json:"base_value"`
	WeekdayFactor      float64       `json:"weekday_factor"`
	WeatherCycleFactor float64       `json:"weather_cycle_factor"`
	NoiseFactor        float64       `json:"noise_factor"`
	Value              float64       `json:"value"`
}

// SeriesSummary holds the display statistics for a forecast series.
type SeriesSummary struct {
	Mean float64 `json:"mean"`
	Max  float64 `json:"max"`
	Min  float64 `json:"min"`
}

// ForecastSeries is the complete output of one 7-day run. It is never merged
// with the output of a prior run.
type ForecastSeries struct {
	RunID   string         `json:"run_id"`
	Steps   []ForecastStep `json:"steps"`
	Summary SeriesSummary  `json:"summary"`
}

// DiurnalCurve is an hourly concentration curve: 25 values for offsets 0..24
// from StartHour.
type DiurnalCurve struct {
	StartHour int       `json:"start_hour"`
	Values    []float64 `json:"values"`
}

// CurveAnnotations are the located band extrema of a diurnal curve, as
// offsets into the curve. -1 means the feature was not found.
type CurveAnnotations struct {
	MorningPeak  int `json:"morning_peak"`
	AfternoonDip int `json:"afternoon_dip"`
	EveningPeak  int `json:"evening_peak"`
}

// HourlyForecast is the complete output of one 24-hour run.
type HourlyForecast struct {
	RunID       string           `json:"run_id"`
	Predicted   float64          `json:"predicted_24h"`
	Stats       RollingStats     `json:"stats"`
	Curve       DiurnalCurve     `json:"curve"`
	Annotations CurveAnnotations `json:"annotations"`
}
