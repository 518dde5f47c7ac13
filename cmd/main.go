package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"airquality_service/internal/api"
	"airquality_service/internal/config"
	"airquality_service/internal/core"
	"airquality_service/internal/domain/model"
	"airquality_service/internal/domain/repository"
	"airquality_service/internal/infrastructure/mlclient"
)

func main() {
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	opts := core.ServiceOptions{
		SaveTrainingData: cfg.SaveTrainingData,
	}

	// Проба доступности моделей при старте: недоступный трек не валит
	// процесс, он просто отвечает "model unavailable".
	if cfg.Models.PM25URL != "" {
		client := mlclient.NewHTTPInferenceClient(cfg.Models.PM25URL, model.TrackDaily)
		if info, err := client.Info(ctx); err != nil {
			log.Printf("Warning: PM2.5 model unavailable: %v", err)
		} else {
			opts.DailyModel, opts.DailyInfo = client, info
		}
	}
	if cfg.Models.PM10URL != "" {
		client := mlclient.NewHTTPInferenceClient(cfg.Models.PM10URL, model.TrackHourly)
		if info, err := client.Info(ctx); err != nil {
			log.Printf("Warning: PM10 model unavailable: %v", err)
		} else {
			opts.HourlyModel, opts.HourlyInfo = client, info
		}
	}

	if cfg.Postgres.URL != "" {
		recorder, err := repository.NewPostgresTrainingRecorder(cfg.Postgres.URL)
		if err != nil {
			log.Printf("Warning: training recorder disabled: %v", err)
		} else {
			opts.Recorder = recorder
		}
	}

	seed := cfg.NoiseSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	opts.Noise = core.NewSeededNoise(seed)

	service, err := core.NewForecastService(opts)
	if err != nil {
		log.Fatalf("Failed to create forecast service: %v", err)
	}

	handler := api.NewHandler(service)
	mux := http.NewServeMux()
	mux.HandleFunc("/api/forecast/daily", handler.ForecastDaily)
	mux.HandleFunc("/api/forecast/hourly", handler.ForecastHourly)
	mux.HandleFunc("/api/models", handler.Models)
	mux.Handle("/metrics", promhttp.Handler())

	log.Printf("Starting server on %s", cfg.ListenAddr)
	log.Fatal(http.ListenAndServe(cfg.ListenAddr, mux))
}
