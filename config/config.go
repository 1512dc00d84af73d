package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB   int    `mapstructure:"REDIS_CACHE_DB"`
	RedisLockDB    int    `mapstructure:"REDIS_LOCK_DB"`
	RedisTaskQueue int    `mapstructure:"REDIS_TASK_QUEUE_DB"`

	// Stripe secret key for payment verification.
	StripeKey string `mapstructure:"STRIPE_KEY"`

	// Booking engine knobs.
	ServiceFeePercent    float64 `mapstructure:"SERVICE_FEE_PERCENT"`
	SlotDurationMinutes  int     `mapstructure:"SLOT_DURATION_MINUTES"`
	PaymentWindowHours   int     `mapstructure:"PAYMENT_WINDOW_HOURS"`
	SlotCacheTTLSeconds  int     `mapstructure:"SLOT_CACHE_TTL_SECONDS"`
	BookingLockTTLMillis int     `mapstructure:"BOOKING_LOCK_TTL_MILLIS"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_LOCK_DB", 1)
	viper.SetDefault("REDIS_TASK_QUEUE_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "gigbook")
	viper.SetDefault("STRIPE_KEY", "")
	viper.SetDefault("SERVICE_FEE_PERCENT", 5.0)
	viper.SetDefault("SLOT_DURATION_MINUTES", 60)
	viper.SetDefault("PAYMENT_WINDOW_HOURS", 24)
	viper.SetDefault("SLOT_CACHE_TTL_SECONDS", 60)
	viper.SetDefault("BOOKING_LOCK_TTL_MILLIS", 5000)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
