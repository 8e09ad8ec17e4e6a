package config

import (
	"fmt"     // DSN formatting
	"os"      // For environment variables
	"strconv" // For string to int conversion

	"github.com/joho/godotenv"      // For loading .env files
	"github.com/shopspring/decimal" // Fixed-point money values
)

// Defaults used when the environment leaves a setting empty
const (
	DefaultAppName            = "ml_billing"
	DefaultAPIVersion         = "v1"
	DefaultAppPort            = "8080"
	DefaultDBDriver           = "mysql"
	DefaultMinPasswordLength  = 8
	DefaultModelInferenceCost = "0.01"
)

// Config holds the application configuration
type Config struct {
	AppName            string          // Application name
	APIVersion         string          // API version reported by the index route
	Debug              bool            // Debug logging
	AppPort            string          // Application port
	IsProd             bool            // Is production environment
	DBDriver           string          // Database driver: mysql or postgres
	DBUser             string          // Database user
	DBPassword         string          // Database password
	DBHost             string          // Database host
	DBPort             string          // Database port
	DBName             string          // Database name
	JWTSecret          string          // JWT secret key
	RedisAddr          string          // Redis server address
	RedisPass          string          // Redis password
	RedisDB            int             // Redis database number
	MinPasswordLength  int             // Minimum accepted password length
	ModelPath          string          // Path to the model file
	ModelInferenceCost decimal.Decimal // Price of one model call
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return &Config{
		AppName:            getEnv("APP_NAME", DefaultAppName),                            // Application name
		APIVersion:         getEnv("API_VERSION", DefaultAPIVersion),                      // API version
		Debug:              os.Getenv("DEBUG") == "true",                                  // Debug logging
		AppPort:            getEnv("APP_PORT", DefaultAppPort),                            // Application port
		IsProd:             os.Getenv("IS_PROD") == "true",                                // Is production environment
		DBDriver:           getEnv("DB_DRIVER", DefaultDBDriver),                          // Database driver
		DBUser:             os.Getenv("DB_USER"),                                          // Database user
		DBPassword:         os.Getenv("DB_PASSWORD"),                                      // Database password
		DBHost:             os.Getenv("DB_HOST"),                                          // Database host
		DBPort:             os.Getenv("DB_PORT"),                                          // Database port
		DBName:             os.Getenv("DB_NAME"),                                          // Database name
		JWTSecret:          os.Getenv("JWT_SECRET"),                                       // JWT secret key
		RedisAddr:          os.Getenv("REDIS_ADDR"),                                       // Redis server address
		RedisPass:          os.Getenv("REDIS_PASS"),                                       // Redis password
		RedisDB:            redisDB,                                                       // Redis database number
		MinPasswordLength:  getIntEnv("MIN_PASSWORD_LENGTH", DefaultMinPasswordLength),    // Password policy
		ModelPath:          os.Getenv("MODEL_PATH"),                                       // Model file
		ModelInferenceCost: getCostEnv("MODEL_INFERENCE_COST", DefaultModelInferenceCost), // Cost per prediction
	}
}

// DSN returns the data source name for the configured driver
func (c *Config) DSN() string {
	if c.DBDriver == "postgres" {
		return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
	}
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}

// getEnv returns the variable or fallback when it is unset or empty
func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// getIntEnv parses an int variable, falling back on missing or malformed values
func getIntEnv(key string, fallback int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil && v > 0 {
		return v
	}
	return fallback
}

// getCostEnv parses a price, falling back on missing, malformed or negative values.
// Zero is kept and makes the priced operation free.
func getCostEnv(key, fallback string) decimal.Decimal {
	if d, err := decimal.NewFromString(os.Getenv(key)); err == nil && !d.IsNegative() {
		return d
	}
	return decimal.RequireFromString(fallback)
}
