package model

import (
	"errors"
	"fmt"
)

// Forecast track identifiers, named after the deployed models.
const (
	TrackDaily  = "pm25_7d"
	TrackHourly = "pm10_24h"
)

// ErrModelUnavailable indicates the track's predictor failed to load at
// startup; no forecast is attempted for it.
var ErrModelUnavailable = errors.New("model unavailable")

// PredictionError wraps a failure during feature assembly or the predictor
// call. The run that produced it is discarded whole; no partial series or
// curve is returned.
type PredictionError struct {
	Track string
	Err   error
}

func (e *PredictionError) Error() string {
	return fmt.Sprintf("prediction failed for track %s: %v", e.Track, e.Err)
}

func (e *PredictionError) Unwrap() error {
	return e.Err
}
