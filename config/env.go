package config

import (
	"fmt"
	"os"
	"sync"

	"github.com/joho/godotenv"
)

// Config holds all environment configuration
type Config struct {
	// Database
	DatabaseHost     string
	DatabasePort     string
	PostgresUser     string
	PostgresPassword string
	DatabaseName     string

	// Authentication
	JWTSecret string

	// HTTP
	Port              string
	TableCacheSeconds int

	// Result feed
	KafkaBroker  string
	ResultsTopic string

	// Other
	LogLevel string
}

var (
	appConfig *Config
	onceEnv   sync.Once
)

func loadConfig() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		DatabaseHost:     getEnvWithDefault("DATABASE_HOST", "localhost"),
		DatabasePort:     getEnvWithDefault("DATABASE_PORT", "5432"),
		PostgresUser:     getEnvWithDefault("POSTGRES_USER", "postgres"),
		PostgresPassword: getEnvWithDefault("POSTGRES_PASSWORD", "postgres"),
		DatabaseName:     getEnvWithDefault("DATABASE_NAME", "postgres"),

		// JWT - required in production
		JWTSecret: getRequiredEnv("JWT_SECRET", "dummyjwt"),

		Port:              getEnvWithDefault("PORT", "8000"),
		TableCacheSeconds: getEnvAsInt("TABLE_CACHE_SECONDS", 30),

		// Kafka - optional, the result consumer only starts if a broker is set
		KafkaBroker:  os.Getenv("KAFKA_BROKER"),
		ResultsTopic: getEnvWithDefault("RESULTS_TOPIC", "match-results"),

		LogLevel: getEnvWithDefault("LOG_LEVEL", "info"),
	}
}

func Env() *Config {
	onceEnv.Do(func() {
		appConfig = loadConfig()
	})
	return appConfig
}

// getRequiredEnv panics in production if the variable is missing.
func getRequiredEnv(key string, developmentDefault string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	if IsProduction() {
		panic(fmt.Sprintf("Required environment variable %s is not set", key))
	}
	return developmentDefault
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var value int
	_, err := fmt.Sscanf(valueStr, "%d", &value)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// IsProduction returns true if running in production
func IsProduction() bool {
	return getEnvWithDefault("ENVIRONMENT", "development") == "production"
}

// IsDevelopment returns true if running in development
func IsDevelopment() bool {
	return !IsProduction()
}
