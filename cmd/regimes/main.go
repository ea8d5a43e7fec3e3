package main

import (
	"actman/internal/health"
	"actman/internal/regimes/handler"
	"actman/internal/regimes/service"
	"actman/internal/regimes/validator"
	"actman/pkg/app"
	"actman/pkg/config"
	"actman/pkg/kafka"
	kafka_config "actman/pkg/kafka/config"
	kafka_middleware "actman/pkg/kafka/middleware"
)

const ServiceName = "regimes"

func main() {
	cfg := config.Load(ServiceName)

	cfg.Log.Info("Starting Regimes service")
	cfg.SetActivitiesAPI()

	producer := initProducer(cfg)
	regimeService := initServices(cfg, producer)

	serverApp := app.NewApplication(cfg)
	serverApp.AddCloser(producer)
	serverApp.SetApp(
		handler.NewRegimeHandler(regimeService, cfg.Log),
		health.NewHandler(nil, cfg.Log),
	)
	serverApp.Run()
}

func initProducer(cfg *config.Config) *kafka.Producer {
	kafkaCfg := kafka_config.Load()
	producer, err := kafka.NewProducer(kafkaCfg, service.TopicRegimes, service.TopicRegimes+".dlq")
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	if kafkaCfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	}
	return producer
}

func initServices(cfg *config.Config, producer *kafka.Producer) service.RegimeService {
	regimeValidator := validator.NewRegimeValidator(cfg.Log)
	regimeService := service.NewRegimeService(
		cfg.Client.Activities,
		regimeValidator,
		producer,
		cfg,
	)

	cfg.Log.Info("Regime service initialized", "activities_api", cfg.ActivitiesAPIBaseURL)
	return regimeService
}
