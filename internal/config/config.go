package config

import "os"

type Config struct {
	Port            string
	AnalyticsAPIURL string
	ResultsDir      string
	RedisURL        string
	LogLevel        string
	Environment     string
	CORSOrigins     string
}

func Load() *Config {
	return &Config{
		Port:            getEnv("PORT", "8080"),
		AnalyticsAPIURL: getEnv("ANALYTICS_API_URL", "http://localhost:8000"),
		ResultsDir:      getEnv("RESULTS_DIR", "results"),
		RedisURL:        getEnv("REDIS_URL", ""),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		CORSOrigins:     getEnv("CORS_ORIGINS", "*"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
