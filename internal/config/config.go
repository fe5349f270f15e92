package config

import (
	"os"
	"strconv"
)

type Config struct {
	ServerPort         string
	DBHost             string
	DBPort             string
	DBUser             string
	DBPassword         string
	DBName             string
	JWTSecret          string
	TokenTTLHours      int
	GithubClientID     string
	GithubClientSecret string
	CORSOrigin         string
}

func Load() *Config {
	return &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "5432"),
		DBUser:             getEnv("DB_USER", "devlink"),
		DBPassword:         getEnv("DB_PASSWORD", "devlink_dev_password"),
		DBName:             getEnv("DB_NAME", "devlink"),
		JWTSecret:          getEnv("JWT_SECRET", "dev-secret-change-me"),
		TokenTTLHours:      getEnvInt("TOKEN_TTL_HOURS", 24),
		GithubClientID:     getEnv("GITHUB_CLIENT_ID", ""),
		GithubClientSecret: getEnv("GITHUB_SECRET", ""),
		CORSOrigin:         getEnv("CORS_ORIGIN", "*"),
	}
}

func getEnv(key, fallback string) string {
	val, exists := os.LookupEnv(key)

	if exists {
		return val
	}

	return fallback
}

func getEnvInt(key string, fallback int) int {
	val, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}

	n, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}

	return n
}
