package main

import (
	"context"
	"time"

	"actman/internal/activities/handler"
	"actman/internal/activities/service"
	"actman/internal/activities/validator"
	"actman/internal/health"
	"actman/internal/journeys/repository"
	"actman/pkg/app"
	"actman/pkg/config"
)

const ServiceName = "activities"

func main() {
	cfg := config.Load(ServiceName)

	cfg.Log.Info("Starting Activities service")
	cfg.SetMongo()
	cfg.SetActivitiesAPI()
	defer cfg.GracefulShutdown()

	activityService := initServices(cfg)

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		handler.NewActivityHandler(activityService, cfg.Log),
		health.NewHandler(cfg.Client.Mongo, cfg.Log),
	)
	serverApp.Run()
}

func initServices(cfg *config.Config) service.ActivityService {
	journeyRepo := repository.NewMongoJourneyRepository(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := journeyRepo.EnsureIndexes(ctx); err != nil {
		cfg.Log.Fatal("Failed to ensure journey indexes", "error", err)
	}

	journeyValidator := validator.NewJourneyValidator(cfg.Log)
	activityService := service.NewActivityService(
		cfg.Client.Activities,
		journeyRepo,
		journeyValidator,
		cfg,
	)

	cfg.Log.Info("Activity service initialized",
		"database", cfg.MongoDatabaseName,
		"activities_api", cfg.ActivitiesAPIBaseURL,
	)
	return activityService
}
