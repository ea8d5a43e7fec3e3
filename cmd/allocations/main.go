package main

import (
	"actman/internal/allocations/handler"
	"actman/internal/allocations/service"
	"actman/internal/health"
	"actman/pkg/app"
	"actman/pkg/config"
	"actman/pkg/kafka"
	kafka_config "actman/pkg/kafka/config"
	kafka_middleware "actman/pkg/kafka/middleware"
)

const ServiceName = "allocations"

func main() {
	cfg := config.Load(ServiceName)

	cfg.Log.Info("Starting Allocations service")
	cfg.SetActivitiesAPI()

	producer := initProducer(cfg)
	allocationService := initServices(cfg, producer)

	serverApp := app.NewApplication(cfg)
	serverApp.AddCloser(producer)
	serverApp.SetApp(
		handler.NewAllocationHandler(allocationService, cfg.Log),
		health.NewHandler(nil, cfg.Log),
	)
	serverApp.Run()
}

func initProducer(cfg *config.Config) *kafka.Producer {
	kafkaCfg := kafka_config.Load()
	producer, err := kafka.NewProducer(kafkaCfg, service.TopicAllocations, service.TopicAllocations+".dlq")
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	if kafkaCfg.EnableMiddleware {
		producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))
	}
	return producer
}

func initServices(cfg *config.Config, producer *kafka.Producer) service.AllocationService {
	allocationService := service.NewAllocationService(
		cfg.Client.Activities,
		producer,
		cfg,
	)

	cfg.Log.Info("Allocation service initialized", "activities_api", cfg.ActivitiesAPIBaseURL)
	return allocationService
}
