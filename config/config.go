package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port        string
	BindAddress string
	DBPath      string
	TargetScore int
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		BindAddress: getEnv("BIND_ADDRESS", ""),
		DBPath:      getEnv("DB_PATH", "./tricks.db"),
		TargetScore: getEnvInt("TARGET_SCORE", 75),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
