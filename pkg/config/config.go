package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Quota    QuotaConfig
	Scoring  ScoringConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

type JWTConfig struct {
	SecretKey string
}

type QuotaConfig struct {
	// Backend selects the quota store at wiring time: "memory" or "redis".
	Backend            string
	DefaultFreeCredits int
}

// ScoringConfig carries the raw scoring knobs from the environment. The
// business layer validates them once at startup; an invalid weight set must
// prevent the process from starting.
type ScoringConfig struct {
	ImplicitWeight             float64
	ExplicitWeight             float64
	NoveltyWeight              float64
	ContextWeight              float64
	QualityWeight              float64
	MaxCandidates              int
	MaxResults                 int
	ReviewSmoothing            float64
	MinimumRating              float64
	DistancePenaltyStartMeters float64
	DistancePenaltyMaxMeters   float64
	EnableDebugFields          bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, errors.New("invalid redis database")
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Wayfinder API"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "wayfinder"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
		},
		Quota: QuotaConfig{
			Backend:            getEnv("QUOTA_BACKEND", "memory"),
			DefaultFreeCredits: getEnvInt("QUOTA_DEFAULT_FREE_CREDITS", 10),
		},
		Scoring: ScoringConfig{
			ImplicitWeight:             getEnvFloat("SCORING_IMPLICIT_WEIGHT", 0.25),
			ExplicitWeight:             getEnvFloat("SCORING_EXPLICIT_WEIGHT", 0.20),
			NoveltyWeight:              getEnvFloat("SCORING_NOVELTY_WEIGHT", 0.15),
			ContextWeight:              getEnvFloat("SCORING_CONTEXT_WEIGHT", 0.15),
			QualityWeight:              getEnvFloat("SCORING_QUALITY_WEIGHT", 0.25),
			MaxCandidates:              getEnvInt("SCORING_MAX_CANDIDATES", 60),
			MaxResults:                 getEnvInt("SCORING_MAX_RESULTS", 20),
			ReviewSmoothing:            getEnvFloat("SCORING_REVIEW_SMOOTHING", 20),
			MinimumRating:              getEnvFloat("SCORING_MINIMUM_RATING", 0),
			DistancePenaltyStartMeters: getEnvFloat("SCORING_DISTANCE_PENALTY_START_METERS", 500),
			DistancePenaltyMaxMeters:   getEnvFloat("SCORING_DISTANCE_PENALTY_MAX_METERS", 10000),
			EnableDebugFields:          getEnvBool("SCORING_ENABLE_DEBUG_FIELDS", false),
		},
	}

	if cfg.JWT.SecretKey == "" {
		return nil, errors.New("missing jwt secret")
	}

	switch cfg.Quota.Backend {
	case "memory", "redis":
	default:
		return nil, fmt.Errorf("unknown quota backend: %s", cfg.Quota.Backend)
	}

	if cfg.Quota.DefaultFreeCredits < 0 {
		return nil, errors.New("default free credits must not be negative")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}

	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}

	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}

	return defaultVal
}
