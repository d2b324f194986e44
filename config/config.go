package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	APIPrefix string

	DBDriver       string // postgres, mysql or sqlite
	DBDSN          string // overrides the DSN built from the DB_* parts
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBMaxOpenConns int
	DBMaxIdleConns int

	LogLevel string

	AuthEnabled bool
	JWTKey      string
	JWTTTLHours int

	BulkConcurrency int
	StatsCron       string

	// Used by the API client facade and the terminal UI.
	APIURL   string
	APIToken string
}

// LoadConfig initializes configuration from environment variables or defaults.
// Files are loaded in order; with none given, ./.env is tried.
func LoadConfig(envFiles ...string) *Config {
	if err := godotenv.Load(envFiles...); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	cfg := &Config{
		Port:      getEnv("PORT", "4000"),
		APIPrefix: getEnv("API_PREFIX", "/api"),

		DBDriver:       strings.ToLower(getEnv("DB_DRIVER", "sqlite")),
		DBDSN:          getEnv("DB_DSN", ""),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", ""),
		DBUser:         getEnv("DB_USER", ""),
		DBPassword:     getEnv("DB_PASSWORD", ""),
		DBName:         getEnv("DB_NAME", "healthtrack.db"),
		DBMaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 10),
		DBMaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),

		LogLevel: getEnv("LOG_LEVEL", "info"),

		AuthEnabled: getEnvBool("AUTH_ENABLED", false),
		JWTKey:      getEnv("JWT_SECRET_KEY", "defaultSecret"),
		JWTTTLHours: getEnvInt("JWT_TTL_HOURS", 24),

		BulkConcurrency: getEnvInt("BULK_CONCURRENCY", 4),
		StatsCron:       os.Getenv("STATS_CRON"),

		APIURL:   getEnv("API_URL", "http://localhost:4000/api"),
		APIToken: getEnv("API_TOKEN", ""),
	}
	if _, set := os.LookupEnv("STATS_CRON"); !set {
		cfg.StatsCron = "0 9 * * *"
	}

	if cfg.AuthEnabled && cfg.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if cfg.BulkConcurrency < 1 {
		cfg.BulkConcurrency = 1
	}

	return cfg
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to bool: %v", key, err)
		return defaultValue
	}
	return b
}
