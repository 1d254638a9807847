package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Session backends.
const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// MongoDB configuration.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
	RedisQueueDB   int    `mapstructure:"REDIS_QUEUE_DB"`

	// Interaction sessions.
	SessionBackend   string        `mapstructure:"SESSION_BACKEND"`
	SessionTTL       time.Duration `mapstructure:"SESSION_TTL"`
	SessionSweepSpec string        `mapstructure:"SESSION_SWEEP_SPEC"`

	CatalogPath          string `mapstructure:"CATALOG_PATH"`
	CarouselSlidesToShow int    `mapstructure:"CAROUSEL_SLIDES_TO_SHOW"`
	CarouselOverlap      int    `mapstructure:"CAROUSEL_OVERLAP"`
	WorkflowStepAdvance  bool   `mapstructure:"WORKFLOW_STEP_ADVANCE"`
	ReviewQueueEnabled   bool   `mapstructure:"REVIEW_QUEUE_ENABLED"`
}

var AppConfig Config

func LoadConfig() {
	// A local .env is optional; real environment variables win.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "termcompass")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_SESSION_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("SESSION_BACKEND", SessionBackendMemory)
	viper.SetDefault("SESSION_TTL", "30m")
	viper.SetDefault("SESSION_SWEEP_SPEC", "@every 5m")
	viper.SetDefault("CATALOG_PATH", "")
	viper.SetDefault("CAROUSEL_SLIDES_TO_SHOW", 3)
	viper.SetDefault("CAROUSEL_OVERLAP", 4)
	viper.SetDefault("WORKFLOW_STEP_ADVANCE", false)
	viper.SetDefault("REVIEW_QUEUE_ENABLED", false)
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
