package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	AdminAPIToken     string `mapstructure:"ADMIN_API_TOKEN"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`

	// Temporal configuration.
	TemporalHostPort  string `mapstructure:"TEMPORAL_HOSTPORT"`
	TemporalNamespace string `mapstructure:"TEMPORAL_NAMESPACE"`
	TemporalTaskQueue string `mapstructure:"TEMPORAL_TASK_QUEUE"`

	// WhatsApp provider configuration.
	WhatsAppAPIKey      string `mapstructure:"WHATSAPP_API_KEY"`
	WhatsAppBaseURL     string `mapstructure:"WHATSAPP_BASE_URL"`
	WhatsAppPhoneNumber string `mapstructure:"WHATSAPP_PHONE_NUMBER"`

	// Business details used in message templates.
	BusinessName    string `mapstructure:"BUSINESS_NAME"`
	BusinessPhone   string `mapstructure:"BUSINESS_PHONE"`
	BusinessAddress string `mapstructure:"BUSINESS_ADDRESS"`

	// Notification timing.
	DefaultCountryCode string `mapstructure:"DEFAULT_COUNTRY_CODE"`
	AftercareDelayHrs  int    `mapstructure:"AFTERCARE_DELAY_HOURS"`
	Reminder24hEnabled bool   `mapstructure:"REMINDER_24H_ENABLED"`
	Reminder1hEnabled  bool   `mapstructure:"REMINDER_1H_ENABLED"`

	// Marketing campaign eligibility.
	MarketingRecencyDays int `mapstructure:"MARKETING_RECENCY_DAYS"`
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
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("TEMPORAL_HOSTPORT", "localhost:7233")
	viper.SetDefault("TEMPORAL_NAMESPACE", "default")
	viper.SetDefault("TEMPORAL_TASK_QUEUE", "notifications-queue")
	viper.SetDefault("WHATSAPP_BASE_URL", "https://api.chakrahq.com/v1")
	viper.SetDefault("BUSINESS_NAME", "STUDIO S BEAUTY BAR")
	viper.SetDefault("BUSINESS_PHONE", "")
	viper.SetDefault("BUSINESS_ADDRESS", "")
	viper.SetDefault("DEFAULT_COUNTRY_CODE", "263")
	viper.SetDefault("AFTERCARE_DELAY_HOURS", 24)
	viper.SetDefault("REMINDER_24H_ENABLED", true)
	viper.SetDefault("REMINDER_1H_ENABLED", true)
	viper.SetDefault("MARKETING_RECENCY_DAYS", 60)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

// AftercareDelay returns the configured aftercare delay as a duration.
func AftercareDelay() time.Duration {
	return time.Duration(AppConfig.AftercareDelayHrs) * time.Hour
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
