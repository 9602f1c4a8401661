package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config stores the application configuration.
// It is built once at startup and passed by reference into the components
// that need it; nothing reads environment variables after Load returns.
type Config struct {
	ServerPort string

	// Deezer upstream
	DeezerAPIURL  string
	DeezerTimeout time.Duration

	// Search engine defaults
	SearchDefaultCount int // tracks returned per request
	SearchPageSize     int // upstream page size
	SearchMaxPages     int // page budget per request

	// Redis (session memory cache)
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// MinIO (durable session memory blobs)
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
	MinioRegion    string

	// MySQL
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// Auth
	JWTSecret string

	// Chat agent (OpenAI-compatible endpoint)
	AgentAPIBaseURL string
	AgentAPIKey     string
	AgentModel      string
	AgentMaxTokens  int

	// Logging
	LogLevel string
	LogFile  string
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt gets an environment variable as int or returns a default value.
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}

// getEnvBool gets an environment variable as bool or returns a default value.
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// Load loads configuration from environment variables (via .env file) or defaults.
func Load() *Config {
	// Attempt to load .env file. godotenv.Load() will not override existing env vars.
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found or error loading .env, relying on existing environment variables and defaults.")
	}

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),

		DeezerAPIURL:  getEnv("DEEZER_API_URL", "https://api.deezer.com"),
		DeezerTimeout: time.Duration(getEnvInt("DEEZER_TIMEOUT_SECONDS", 10)) * time.Second,

		SearchDefaultCount: getEnvInt("SEARCH_DEFAULT_COUNT", 5),
		SearchPageSize:     getEnvInt("SEARCH_PAGE_SIZE", 50),
		SearchMaxPages:     getEnvInt("SEARCH_MAX_PAGES", 5),

		RedisHost:     getEnv("REDIS_HOST", "127.0.0.1"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		MinioEndpoint:  getEnv("MINIO_ENDPOINT", "127.0.0.1:9000"),
		MinioAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:    getEnv("MINIO_BUCKET", "moodfm"),
		MinioUseSSL:    getEnvBool("MINIO_USE_SSL", false),
		MinioRegion:    getEnv("MINIO_REGION", "us-east-1"),

		DBHost:     getEnv("DB_HOST", "127.0.0.1"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "root"),
		DBPassword: os.Getenv("DB_PASSWORD"), // no hardcoded default for passwords
		DBName:     getEnv("DB_NAME", "moodfm"),

		JWTSecret: getEnv("JWT_SECRET", "moodfm-dev-secret"),

		AgentAPIBaseURL: getEnv("AGENT_API_BASE_URL", "https://api.openai.com/v1"),
		AgentAPIKey:     os.Getenv("AGENT_API_KEY"),
		AgentModel:      getEnv("AGENT_MODEL", "gpt-4o-mini"),
		AgentMaxTokens:  getEnvInt("AGENT_MAX_TOKENS", 1024),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", ""),
	}
}
