package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"airquality_service/internal/domain/model"
)

// TrainingDataRecorder captures the readings a user submitted together with
// the model's point output, for later retraining. Forecast series and curves
// themselves are never stored.
type TrainingDataRecorder interface {
	SaveDailySample(ctx context.Context, req model.DailyForecastRequest, predicted float64) error
	SaveHourlySample(ctx context.Context, req model.HourlyForecastRequest, stats model.RollingStats, predicted float64) error
}

type PostgresTrainingRecorder struct {
	db *sqlx.DB
}

func NewPostgresTrainingRecorder(connStr string) (*PostgresTrainingRecorder, error) {
	db, err := sqlx.Connect("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}
	return &PostgresTrainingRecorder{db: db}, nil
}

const insertSample = `
	INSERT INTO training_samples (
		track, observed_at, humidity, temperature, current,
		lag_1, lag_2, lag_3, lag_6, lag_24,
		roll_mean_6, roll_mean_24, ewm_12,
		predicted, recorded_at
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW()
	)`

func (r *PostgresTrainingRecorder) SaveDailySample(
	ctx context.Context,
	req model.DailyForecastRequest,
	predicted float64,
) error {
	_, err := r.db.ExecContext(ctx, insertSample,
		model.TrackDaily, req.StartDate, req.Humidity, req.Temperature, nil,
		req.Lags.Lag1, req.Lags.Lag2, req.Lags.Lag3, nil, nil,
		nil, nil, nil,
		predicted,
	)
	if err != nil {
		return fmt.Errorf("failed to insert daily sample: %w", err)
	}
	return nil
}

func (r *PostgresTrainingRecorder) SaveHourlySample(
	ctx context.Context,
	req model.HourlyForecastRequest,
	stats model.RollingStats,
	predicted float64,
) error {
	lags := req.Lags
	_, err := r.db.ExecContext(ctx, insertSample,
		model.TrackHourly, req.Date, req.Humidity, req.Temperature, nullable(lags.Current),
		nullable(lags.Lag1), nil, nullable(lags.Lag3), nullable(lags.Lag6), nullable(lags.Lag24),
		stats.RollMean6, stats.RollMean24, stats.EWM12,
		predicted,
	)
	if err != nil {
		return fmt.Errorf("failed to insert hourly sample: %w", err)
	}
	return nil
}

func nullable(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}
