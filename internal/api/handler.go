package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"airquality_service/internal/core"
	"airquality_service/internal/domain/model"
)

type Handler struct {
	service *core.ForecastService
}

func NewHandler(service *core.ForecastService) *Handler {
	return &Handler{service: service}
}

type DailyForecastRequest struct {
	StartDate   string   `json:"start_date"`
	Humidity    *float64 `json:"humidity"`
	Temperature *float64 `json:"temperature"`
	PM25Lag1    *float64 `json:"pm25_lag_1"`
	PM25Lag2    *float64 `json:"pm25_lag_2"`
	PM25Lag3    *float64 `json:"pm25_lag_3"`
}

type HourlyForecastRequest struct {
	Date        string   `json:"date"`
	Hour        *int     `json:"hour"`
	Humidity    *float64 `json:"humidity"`
	Temperature *float64 `json:"temperature"`
	PM10Current *float64 `json:"pm10_current"`
	PM10Lag1    *float64 `json:"pm10_lag_1"`
	PM10Lag3    *float64 `json:"pm10_lag_3"`
	PM10Lag6    *float64 `json:"pm10_lag_6"`
	PM10Lag24   *float64 `json:"pm10_lag_24"`
}

// ForecastDaily handles POST /api/forecast/daily.
func (h *Handler) ForecastDaily(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req DailyForecastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	startDate, err := time.Parse("2006-01-02", req.StartDate)
	if err != nil {
		http.Error(w, "Invalid start_date format. Use YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	if err := validateConditions(req.Humidity, req.Temperature); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	for _, lag := range []*float64{req.PM25Lag1, req.PM25Lag2, req.PM25Lag3} {
		if lag == nil {
			http.Error(w, "All three PM2.5 lag values are required", http.StatusBadRequest)
			return
		}
		if *lag < 0 {
			http.Error(w, "PM2.5 lag values must be >= 0", http.StatusBadRequest)
			return
		}
	}

	forecastRequests.WithLabelValues(model.TrackDaily).Inc()

	series, err := h.service.ForecastDaily(r.Context(), model.DailyForecastRequest{
		StartDate:   startDate,
		Humidity:    *req.Humidity,
		Temperature: *req.Temperature,
		Lags: model.DailyLags{
			Lag1: *req.PM25Lag1,
			Lag2: *req.PM25Lag2,
			Lag3: *req.PM25Lag3,
		},
	})
	if err != nil {
		h.writeServiceError(w, model.TrackDaily, err)
		return
	}

	writeJSON(w, series)
}

// ForecastHourly handles POST /api/forecast/hourly.
func (h *Handler) ForecastHourly(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req HourlyForecastRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		http.Error(w, "Invalid date format. Use YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	if req.Hour == nil || *req.Hour < 0 || *req.Hour > 23 {
		http.Error(w, "hour must be in range 0-23", http.StatusBadRequest)
		return
	}

	if err := validateConditions(req.Humidity, req.Temperature); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Отсутствующие лаги допустимы: статистики тогда считаются нулями.
	lags := model.HourlyLags{
		Current: req.PM10Current,
		Lag1:    req.PM10Lag1,
		Lag3:    req.PM10Lag3,
		Lag6:    req.PM10Lag6,
		Lag24:   req.PM10Lag24,
	}
	for _, lag := range []*float64{lags.Current, lags.Lag1, lags.Lag3, lags.Lag6, lags.Lag24} {
		if lag != nil && *lag < 0 {
			http.Error(w, "PM10 values must be >= 0", http.StatusBadRequest)
			return
		}
	}

	forecastRequests.WithLabelValues(model.TrackHourly).Inc()

	forecast, err := h.service.ForecastHourly(r.Context(), model.HourlyForecastRequest{
		Date:        date,
		Hour:        *req.Hour,
		Humidity:    *req.Humidity,
		Temperature: *req.Temperature,
		Lags:        lags,
	})
	if err != nil {
		h.writeServiceError(w, model.TrackHourly, err)
		return
	}

	writeJSON(w, forecast)
}

// Models handles GET /api/models.
func (h *Handler) Models(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, h.service.Models())
}

func validateConditions(humidity, temperature *float64) error {
	if humidity == nil || *humidity < 0 || *humidity > 100 {
		return fmt.Errorf("humidity must be in range 0-100")
	}
	if temperature == nil || *temperature < 0 || *temperature > 50 {
		return fmt.Errorf("temperature must be in range 0-50")
	}
	return nil
}

// writeServiceError maps engine failures to HTTP statuses. A failed run is
// fatal to itself only; the process keeps serving.
func (h *Handler) writeServiceError(w http.ResponseWriter, track string, err error) {
	var predErr *model.PredictionError
	switch {
	case errors.Is(err, model.ErrModelUnavailable):
		forecastErrors.WithLabelValues(track, "model_unavailable").Inc()
		http.Error(w, "Model unavailable for this forecast track", http.StatusServiceUnavailable)
	case errors.As(err, &predErr):
		forecastErrors.WithLabelValues(track, "prediction_failure").Inc()
		http.Error(w, fmt.Sprintf("Error getting prediction: %v", predErr), http.StatusBadGateway)
	default:
		forecastErrors.WithLabelValues(track, "internal").Inc()
		http.Error(w, fmt.Sprintf("Error getting prediction: %v", err), http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
