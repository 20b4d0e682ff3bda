package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver     string // postgres, sqlite
	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string
	DBPath       string // sqlite file, ":memory:" allowed
	JWTSecret    string
	ServerPort   string
	CookieSecure bool
	CORSOrigins  string
	LogMode      string

	// TZOffset is the fixed local offset that defines a calendar day, e.g. "+05:30".
	TZOffset string

	StoreTimeout        time.Duration
	RedisAddr           string
	LeaderboardCacheTTL time.Duration
	RosterFile          string
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	return &Config{
		DBDriver:            getEnv("DB_DRIVER", "postgres"),
		DBHost:              getEnv("DB_HOST", "localhost"),
		DBPort:              getEnv("DB_PORT", "5432"),
		DBUser:              getEnv("DB_USER", "postgres"),
		DBPassword:          getEnv("DB_PASSWORD", "postgres"),
		DBName:              getEnv("DB_NAME", "dsa_tracker"),
		DBPath:              getEnv("DB_PATH", "dsa_tracker.db"),
		JWTSecret:           getEnv("JWT_SECRET", "secret"),
		ServerPort:          getEnv("SERVER_PORT", "8080"),
		CookieSecure:        getEnvBool("COOKIE_SECURE", false),
		CORSOrigins:         getEnv("CORS_ORIGINS", "*"),
		LogMode:             getEnv("LOG_MODE", "dev"),
		TZOffset:            getEnv("TZ_OFFSET", "+05:30"),
		StoreTimeout:        getEnvDuration("STORE_TIMEOUT", 5*time.Second),
		RedisAddr:           getEnv("REDIS_ADDR", ""),
		LeaderboardCacheTTL: getEnvDuration("LEADERBOARD_CACHE_TTL", 30*time.Second),
		RosterFile:          getEnv("ROSTER_FILE", "roster.yaml"),
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("Invalid boolean for %s, using default %v", key, defaultValue)
		return defaultValue
	}
	return parsed
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid duration for %s, using default %s", key, defaultValue)
		return defaultValue
	}
	return parsed
}
