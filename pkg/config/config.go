package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	"actman/pkg/client"
	"actman/pkg/logger"
	"actman/pkg/schedule"
)

type Config struct {
	Port string

	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	ActivitiesAPIBaseURL string
	ActivitiesAPITimeout time.Duration
	RegimeCacheSize      int

	AmBandEnd string
	PmBandEnd string

	RequestTimeout time.Duration
	MaxRequestSize int
	JourneyTTL     time.Duration

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	Log    *logger.Logger
	Client *client.Client
}

func Load(serviceName string) *Config {
	cfg := &Config{
		Port: getEnvStr(EnvPort, DefaultPort),

		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		ActivitiesAPIBaseURL: getEnvStr(EnvActivitiesAPIBaseURL, DefaultActivitiesAPIBaseURL),
		ActivitiesAPITimeout: getEnvDuration(EnvActivitiesAPITimeout, DefaultActivitiesAPITimeout),
		RegimeCacheSize:      getEnvNum(EnvRegimeCacheSize, DefaultRegimeCacheSize),

		AmBandEnd: getEnvStr(EnvAmBandEnd, DefaultAmBandEnd),
		PmBandEnd: getEnvStr(EnvPmBandEnd, DefaultPmBandEnd),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),
		JourneyTTL:     getEnvDuration(EnvJourneyTTL, DefaultJourneyTTL),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

func (cfg *Config) SetActivitiesAPI() {
	cfg.Client.SetActivitiesAPI(cfg.Log, cfg.ActivitiesAPIBaseURL, cfg.ActivitiesAPITimeout, cfg.RegimeCacheSize)
}

// Classifier builds the band classifier from the configured boundaries.
func (cfg *Config) Classifier() schedule.Classifier {
	return schedule.Classifier{AmEnd: cfg.AmBandEnd, PmEnd: cfg.PmBandEnd}
}

var timeRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

func (cfg *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		problems = append(problems, "MongoURI cannot be empty")
	} else if !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
		problems = append(problems, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", cfg.MongoURI))
	}
	if cfg.MongoDatabaseName == "" {
		problems = append(problems, "MongoDatabaseName cannot be empty")
	}
	if cfg.MongoConnTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
	}

	if cfg.ActivitiesAPIBaseURL == "" {
		problems = append(problems, "ActivitiesAPIBaseURL cannot be empty")
	}
	if cfg.ActivitiesAPITimeout <= 0 {
		problems = append(problems, fmt.Sprintf("ActivitiesAPITimeout must be positive, got: %s", cfg.ActivitiesAPITimeout))
	}
	if cfg.RegimeCacheSize <= 0 {
		problems = append(problems, fmt.Sprintf("RegimeCacheSize must be positive, got: %d", cfg.RegimeCacheSize))
	}

	if !timeRegex.MatchString(cfg.AmBandEnd) {
		problems = append(problems, fmt.Sprintf("AmBandEnd must be in HH:MM format (00:00-23:59), got: %s", cfg.AmBandEnd))
	}
	if !timeRegex.MatchString(cfg.PmBandEnd) {
		problems = append(problems, fmt.Sprintf("PmBandEnd must be in HH:MM format (00:00-23:59), got: %s", cfg.PmBandEnd))
	}
	if timeRegex.MatchString(cfg.AmBandEnd) && timeRegex.MatchString(cfg.PmBandEnd) && cfg.AmBandEnd >= cfg.PmBandEnd {
		problems = append(problems, fmt.Sprintf("AmBandEnd (%s) must be before PmBandEnd (%s)", cfg.AmBandEnd, cfg.PmBandEnd))
	}

	if cfg.RequestTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.MaxRequestSize <= 0 {
		problems = append(problems, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}
	if cfg.JourneyTTL <= 0 {
		problems = append(problems, fmt.Sprintf("JourneyTTL must be positive, got: %s", cfg.JourneyTTL))
	}
	if cfg.ReadTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		problems = append(problems, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	if len(problems) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, problem := range problems {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, problem)
		}
		return fmt.Errorf("%s", errMsg)
	}
	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"port", cfg.Port,
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"activities_api_base_url", cfg.ActivitiesAPIBaseURL,
		"activities_api_timeout", cfg.ActivitiesAPITimeout,
		"regime_cache_size", cfg.RegimeCacheSize,
		"am_band_end", cfg.AmBandEnd,
		"pm_band_end", cfg.PmBandEnd,
		"request_timeout", cfg.RequestTimeout,
		"max_request_size", cfg.MaxRequestSize,
		"journey_ttl", cfg.JourneyTTL,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
	)
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown()
}
