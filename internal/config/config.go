package config

import (
	"crypto/rand"
	"encoding/hex"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	ListenAddr      string
	SessionSecret   string
	VotesPassword   string
	CPUStressFactor int
	MemStressFactor int
	DevelopmentMode bool
	DDBRegion       string
	DDBTableName    string
	Restaurants     []string
	StoreTimeout    time.Duration
	SessionTTL      time.Duration
}

// Load reads configuration from the environment, after a best-effort .env
// load. Every value has a default so the service starts with no environment
// at all (development mode, in-memory store).
func Load() Config {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file loaded")
	}

	return Config{
		ListenAddr:      getEnv("LISTEN_ADDR", ":8080"),
		SessionSecret:   getEnv("SESSION_SECRET", randomSecret()),
		VotesPassword:   getEnv("VOTES_PASSWORD", "votingapp2024"),
		CPUStressFactor: getEnvInt("CPU_STRESS_FACTOR", 1),
		MemStressFactor: getEnvInt("MEM_STRESS_FACTOR", 1),
		DevelopmentMode: getEnvBool("DEVELOPMENT_MODE", true),
		DDBRegion:       getEnv("DDB_AWS_REGION", ""),
		DDBTableName:    getEnv("DDB_TABLE_NAME", "votingapp-restaurants"),
		Restaurants:     getEnvList("RESTAURANTS", []string{"outback", "bucadibeppo", "ihop", "chipotle"}),
		StoreTimeout:    getEnvDuration("STORE_TIMEOUT", 5*time.Second),
		SessionTTL:      getEnvDuration("SESSION_TTL", 24*time.Hour),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		logrus.WithField("key", key).Warnf("invalid integer %q, using default %d", value, fallback)
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return strings.EqualFold(value, "true")
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		logrus.WithField("key", key).Warnf("invalid duration %q, using default %s", value, fallback)
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	if len(items) == 0 {
		return fallback
	}
	return items
}

func randomSecret() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		logrus.WithError(err).Fatal("could not generate session secret")
	}
	return hex.EncodeToString(b)
}
