package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort      string
	MySQLDSN        string
	RedisAddr       string
	RedisDB         int
	RedisPass       string
	JWTSecret       string
	JWTAlgorithm    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	// AutoMigrate controls schema creation at startup. Tests wire their own
	// schema and run with this off.
	AutoMigrate bool
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		MySQLDSN:        getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/tasktrack?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:         getEnvInt("REDIS_DB", 0),
		RedisPass:       os.Getenv("REDIS_PASSWORD"),
		JWTSecret:       getEnv("JWT_SECRET", "change-me"),
		JWTAlgorithm:    normalizeAlgorithm(getEnv("JWT_ALGORITHM", "HS256")),
		AccessTokenTTL:  time.Duration(getEnvInt("ACCESS_TOKEN_TTL_MIN", 30)) * time.Minute,
		RefreshTokenTTL: time.Duration(getEnvInt("REFRESH_TOKEN_TTL_DAYS", 7)) * 24 * time.Hour,
		AutoMigrate:     getEnvBool("AUTO_MIGRATE", true),
	}
}

// normalizeAlgorithm clamps JWT_ALGORITHM to a supported HMAC variant. The
// token service and the route middleware both read this value, so an
// unrecognized name must resolve to the same algorithm on both sides.
func normalizeAlgorithm(alg string) string {
	switch alg {
	case "HS256", "HS384", "HS512":
		return alg
	default:
		return "HS256"
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}
