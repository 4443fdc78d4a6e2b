package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv    string
	HTTP      HTTPConfig
	GRPC      GRPCConfig
	Auth      AuthConfig
	Redis     RedisConfig
	SeedDemo  bool
	RateLimit string
}

type HTTPConfig struct {
	Port               string
	CORSAllowedOrigins []string
}

type GRPCConfig struct {
	Port string
}

type AuthConfig struct {
	JWTSecret          string
	TokenTTL           time.Duration
	LoginRatePerMinute int
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))
	loginRate, err := strconv.Atoi(getEnv("LOGIN_RATE_PER_MINUTE", "30"))
	if err != nil || loginRate <= 0 {
		loginRate = 30
	}
	ttl, err := time.ParseDuration(getEnv("JWT_TTL", "8h"))
	if err != nil || ttl <= 0 {
		ttl = 8 * time.Hour
	}

	return Config{
		AppEnv: getEnv("APP_ENV", "development"),
		HTTP: HTTPConfig{
			Port:               getEnv("HTTP_PORT", "8080"),
			CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		},
		GRPC: GRPCConfig{
			Port: getEnv("GRPC_PORT", "50052"),
		},
		Auth: AuthConfig{
			JWTSecret:          getEnv("JWT_SECRET", "dev-secret-change-me"),
			TokenTTL:           ttl,
			LoginRatePerMinute: loginRate,
		},
		Redis: RedisConfig{
			Enabled:  getBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		SeedDemo:  getBool("SEED_DEMO_DATA", true),
		RateLimit: getEnv("RATE_LIMIT", "100-M"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	v, err := strconv.ParseBool(getEnv(key, strconv.FormatBool(defaultValue)))
	if err != nil {
		return defaultValue
	}
	return v
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
