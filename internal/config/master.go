package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type AppConfig struct {
	DebugMode        bool
	LogLevel         string
	HttpConfig       *HttpConfig
	LeaderboardCfg   *LeaderboardCfg
	RedisConfig      *RedisConfig
	PostgresConfig   *PostgresConfig
	JwtConfig        *JwtConfig
	StorageConfig    *StorageConfig
	DefaultContestID string
}

func NewSystemConfig() *AppConfig {
	debug := os.Getenv("DEBUG_MODE") == "true"
	level := getEnv("LOG_LEVEL", "info")
	if debug {
		level = "debug"
	}
	return &AppConfig{
		DebugMode:        debug,
		LogLevel:         level,
		HttpConfig:       NewHttpConfig(),
		LeaderboardCfg:   NewLeaderboardCfg(),
		RedisConfig:      NewRedisConfig(),
		PostgresConfig:   NewPostgresConfig(),
		JwtConfig:        NewJwtConfig(),
		StorageConfig:    NewStorageConfig(),
		DefaultContestID: getEnv("DEFAULT_CONTEST_ID", "con"),
	}
}

// getEnv gets an environment variable with a fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return value
}

func getFloatEnv(key string, fallback float64) float64 {
	value, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return fallback
	}
	return value
}

func getListEnv(key string) []string {
	var values []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}

func getSecondsEnv(key string, fallback int) time.Duration {
	return time.Duration(getIntEnv(key, fallback)) * time.Second
}
