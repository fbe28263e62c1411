package main

import (
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/mtaadao/backend/config"
	"github.com/mtaadao/backend/pkg/xcontext"
)

// loadConfig builds the config tree from environment variables with sane
// defaults, then applies an optional TOML override file named by CONFIG_FILE.
func (s *srv) loadConfig() {
	cfg := config.Configs{
		Env: getEnv("ENV", "local"),
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "localhost"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			Database: getEnv("MYSQL_DATABASE", "mtaadao"),
			User:     getEnv("MYSQL_USER", "mtaadao"),
			Password: getEnv("MYSQL_PASSWORD", "mtaadao"),
		},
		ApiServer: config.ServerConfigs{
			Host:         getEnv("API_HOST", ""),
			Port:         getEnv("API_PORT", "8080"),
			DefaultLimit: getEnvAsInt("API_DEFAULT_LIMIT", 50),
			MaxLimit:     getEnvAsInt("API_MAX_LIMIT", 500),
		},
		MetricsServer: config.ServerConfigs{
			Host: getEnv("METRICS_HOST", ""),
			Port: getEnv("METRICS_PORT", "9000"),
		},
		Redis: config.RedisConfigs{
			Addr: getEnv("REDIS_ADDR", "localhost:6379"),
		},
		Kafka: config.KafkaConfigs{
			Addr:         getEnv("KAFKA_ADDR", "localhost:9092"),
			RefreshTopic: getEnv("KAFKA_REFRESH_TOPIC", "metrics.refreshed"),
		},
		Analytics: config.AnalyticsConfigs{
			EngagementWindow:   getEnvAsDuration("ANALYTICS_ENGAGEMENT_WINDOW", 30*24*time.Hour),
			RefreshInterval:    getEnvAsDuration("ANALYTICS_REFRESH_INTERVAL", 30*time.Second),
			RetentionFallback:  getEnvAsFloat("ANALYTICS_RETENTION_FALLBACK", 0.85),
			RunwayUnbounded:    getEnvAsFloat("ANALYTICS_RUNWAY_UNBOUNDED", 999),
			VotingPowerWeight:  int64(getEnvAsInt("ANALYTICS_VOTING_POWER_WEIGHT", 1)),
			TopDaoLimit:        getEnvAsInt("ANALYTICS_TOP_DAO_LIMIT", 5),
			ActiveDaoLimit:     getEnvAsInt("ANALYTICS_ACTIVE_DAO_LIMIT", 20),
			RecentActivitySize: getEnvAsInt("ANALYTICS_RECENT_ACTIVITY_SIZE", 50),
		},
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			panic(err)
		}
	}

	s.ctx = xcontext.WithConfigs(s.ctx, cfg)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	n, err := strconv.Atoi(value)
	if err != nil {
		panic(err)
	}

	return n
}

func getEnvAsFloat(key string, fallback float64) float64 {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		panic(err)
	}

	return f
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		panic(err)
	}

	return d
}
