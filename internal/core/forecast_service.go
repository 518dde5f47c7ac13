package core

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"airquality_service/internal/domain/model"
	"airquality_service/internal/domain/repository"
)

// ServiceOptions wires the per-track predictors and supporting dependencies.
// A nil model marks its track unavailable; runs for it report
// model.ErrModelUnavailable instead of forecasting.
type ServiceOptions struct {
	DailyModel  model.InferenceModel
	DailyInfo   model.ModelInfo
	HourlyModel model.InferenceModel
	HourlyInfo  model.ModelInfo

	Noise            NoiseSource
	Recorder         repository.TrainingDataRecorder
	SaveTrainingData bool
}

// ForecastService orchestrates both forecast tracks. Each run is a single
// synchronous call chain with its own state; only the loaded models and the
// noise source are shared, and both are safe to share.
type ForecastService struct {
	dailyModel  model.InferenceModel
	hourlyModel model.InferenceModel
	infos       []model.ModelInfo

	dailyBuilder  *FeatureVectorBuilder
	hourlyBuilder *FeatureVectorBuilder
	stats         *LagStatisticsCalculator
	engine        *IterativeForecastEngine
	synth         DiurnalPatternSynthesizer

	recorder repository.TrainingDataRecorder
	saveData bool
}

func NewForecastService(opts ServiceOptions) (*ForecastService, error) {
	stats, err := NewLagStatisticsCalculator(defaultEWMWeights)
	if err != nil {
		return nil, fmt.Errorf("failed to build statistics calculator: %w", err)
	}

	noise := opts.Noise
	if noise == nil {
		return nil, fmt.Errorf("noise source is required")
	}

	s := &ForecastService{
		dailyModel:    opts.DailyModel,
		hourlyModel:   opts.HourlyModel,
		dailyBuilder:  NewDailyVectorBuilder(),
		hourlyBuilder: NewHourlyVectorBuilder(),
		stats:         stats,
		recorder:      opts.Recorder,
		saveData:      opts.SaveTrainingData,
	}
	s.engine = NewIterativeForecastEngine(opts.DailyModel, s.dailyBuilder, noise)

	if opts.DailyModel != nil {
		s.infos = append(s.infos, opts.DailyInfo)
	}
	if opts.HourlyModel != nil {
		s.infos = append(s.infos, opts.HourlyInfo)
	}
	return s, nil
}

// ForecastDaily runs the 7-day PM2.5 track.
func (s *ForecastService) ForecastDaily(ctx context.Context, req model.DailyForecastRequest) (*model.ForecastSeries, error) {
	if s.dailyModel == nil {
		return nil, fmt.Errorf("track %s: %w", model.TrackDaily, model.ErrModelUnavailable)
	}

	steps, err := s.engine.Run(ctx, req)
	if err != nil {
		return nil, &model.PredictionError{Track: model.TrackDaily, Err: err}
	}

	series := &model.ForecastSeries{
		RunID:   uuid.NewString(),
		Steps:   steps,
		Summary: summarize(steps),
	}

	if s.saveData && s.recorder != nil {
		if err := s.recorder.SaveDailySample(ctx, req, series.Summary.Mean); err != nil {
			log.Printf("Warning: failed to save daily training sample: %v", err)
		}
	}

	return series, nil
}

// ForecastHourly runs the 24-hour PM10 track: derived lag statistics, a
// single point prediction, and the synthesized diurnal curve.
func (s *ForecastService) ForecastHourly(ctx context.Context, req model.HourlyForecastRequest) (*model.HourlyForecast, error) {
	if s.hourlyModel == nil {
		return nil, fmt.Errorf("track %s: %w", model.TrackHourly, model.ErrModelUnavailable)
	}

	stats := s.stats.Compute(req.Lags)

	schema, err := s.hourlyModel.ExpectedSchema(ctx)
	if err != nil {
		return nil, &model.PredictionError{Track: model.TrackHourly, Err: fmt.Errorf("failed to get model schema: %w", err)}
	}

	lagValues := req.Lags.Values()
	values := map[string]float64{
		"humidity":          req.Humidity,
		"temperature":       req.Temperature,
		"hour":              float64(req.Hour),
		"day":               float64(req.Date.Day()),
		"month":             float64(int(req.Date.Month())),
		"day_of_week":       float64(pythonWeekday(req.Date)),
		"pm_10":             lagValues[0],
		"pm10_lag_1":        lagValues[1],
		"pm10_lag_3":        lagValues[2],
		"pm10_lag_6":        lagValues[3],
		"pm10_lag_24":       lagValues[4],
		"pm10_roll_mean_6":  stats.RollMean6,
		"pm10_roll_mean_24": stats.RollMean24,
		"pm10_ewm_12":       stats.EWM12,
	}
	features := s.hourlyBuilder.Build(schema, values)

	predicted, err := s.hourlyModel.Predict(ctx, features)
	if err != nil {
		return nil, &model.PredictionError{Track: model.TrackHourly, Err: err}
	}

	curve := s.synth.Synthesize(lagValues[0], predicted, req.Hour)
	forecast := &model.HourlyForecast{
		RunID:       uuid.NewString(),
		Predicted:   predicted,
		Stats:       stats,
		Curve:       curve,
		Annotations: s.synth.Annotate(curve),
	}

	if s.saveData && s.recorder != nil {
		if err := s.recorder.SaveHourlySample(ctx, req, stats, predicted); err != nil {
			log.Printf("Warning: failed to save hourly training sample: %v", err)
		}
	}

	return forecast, nil
}

// Models returns metadata for the tracks whose predictors loaded.
func (s *ForecastService) Models() []model.ModelInfo {
	return s.infos
}

func summarize(steps []model.ForecastStep) model.SeriesSummary {
	values := make([]float64, len(steps))
	for i, step := range steps {
		values[i] = step.Value
	}
	return model.SeriesSummary{
		Mean: stat.Mean(values, nil),
		Max:  floats.Max(values),
		Min:  floats.Min(values),
	}
}
