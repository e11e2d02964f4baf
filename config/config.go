package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sahilchouksey/career-compass-api/services/scoring"
)

// This function will Load the ENVIORNMENT VARIABLES from .env if GO_ENV variable is not set
func LoadENV() error {
	goEnv := os.Getenv("GO_ENV")

	if goEnv == "" || goEnv == "development" {
		err := godotenv.Load()
		if err != nil {
			return err
		}
	}

	return nil
}

type EnviornmentVariable struct {
	// All variables
	GO_ENV       string
	DB_DRIVER    string
	DB_USER_NAME string
	DB_PASSWORD  string
	DB_NAME      string
	DB_HOST      string
	DB_PORT      string
	DB_SSL_MODE  string
	SQLITE_PATH  string
	PORT         int
	// JWT Configuration
	JWT_SECRET string
	JWT_ISSUER string
	// Redis Configuration
	REDIS_URL string
	// Scheduler
	CRON_ENABLED bool
	// HTTP
	ALLOWED_ORIGINS string
	// Logging
	LOG_JSON  bool
	LOG_DEBUG bool
	// Report storage (S3 compatible, e.g. DigitalOcean Spaces)
	REPORTS_BUCKET     string
	REPORTS_REGION     string
	REPORTS_ENDPOINT   string
	REPORTS_ACCESS_KEY string
	REPORTS_SECRET_KEY string
	REPORTS_CDN_URL    string
	// Counselor narrative
	GEMINI_API_KEY string
	GEMINI_MODEL   string
	// Career fit scoring
	FIT_WEIGHTS                 scoring.Weights
	FIT_TOP_N                   int
	ATTEMPT_ABANDON_AFTER_HOURS int
}

func Get() (*EnviornmentVariable, error) {

	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		port = 8080
	}

	// Database defaults
	dbDriver := strings.ToLower(os.Getenv("DB_DRIVER"))
	if dbDriver == "" {
		dbDriver = "postgres"
	}

	dbHost := os.Getenv("DB_HOST")
	if dbHost == "" {
		dbHost = "localhost"
	}

	dbPort := os.Getenv("DB_PORT")
	if dbPort == "" {
		dbPort = "5432"
	}

	sqlitePath := os.Getenv("SQLITE_PATH")
	if sqlitePath == "" {
		sqlitePath = "career_compass.db"
	}

	origins := os.Getenv("ALLOWED_ORIGINS")
	if origins == "" {
		origins = "http://localhost:3000"
	}

	geminiModel := os.Getenv("GEMINI_MODEL")
	if geminiModel == "" {
		geminiModel = "gemini-2.5-flash"
	}

	envVariables := &EnviornmentVariable{
		GO_ENV:       os.Getenv("GO_ENV"),
		DB_DRIVER:    dbDriver,
		DB_USER_NAME: os.Getenv("DB_USER_NAME"),
		DB_PASSWORD:  os.Getenv("DB_PASSWORD"),
		DB_NAME:      os.Getenv("DB_NAME"),
		DB_HOST:      dbHost,
		DB_PORT:      dbPort,
		DB_SSL_MODE:  os.Getenv("DB_SSL_MODE"),
		SQLITE_PATH:  sqlitePath,
		PORT:         port,
		// JWT
		JWT_SECRET: os.Getenv("JWT_SECRET"),
		JWT_ISSUER: os.Getenv("JWT_ISSUER"),
		// Redis
		REDIS_URL: os.Getenv("REDIS_URL"),
		// Scheduler
		CRON_ENABLED: envBool("CRON_ENABLED", true),
		// HTTP
		ALLOWED_ORIGINS: origins,
		// Logging
		LOG_JSON:  envBool("LOG_JSON", false),
		LOG_DEBUG: envBool("LOG_DEBUG", false),
		// Reports
		REPORTS_BUCKET:     os.Getenv("REPORTS_BUCKET"),
		REPORTS_REGION:     os.Getenv("REPORTS_REGION"),
		REPORTS_ENDPOINT:   os.Getenv("REPORTS_ENDPOINT"),
		REPORTS_ACCESS_KEY: os.Getenv("REPORTS_ACCESS_KEY"),
		REPORTS_SECRET_KEY: os.Getenv("REPORTS_SECRET_KEY"),
		REPORTS_CDN_URL:    os.Getenv("REPORTS_CDN_URL"),
		// Gemini
		GEMINI_API_KEY: os.Getenv("GEMINI_API_KEY"),
		GEMINI_MODEL:   geminiModel,
		// Scoring
		FIT_WEIGHTS:                 fitWeights(),
		FIT_TOP_N:                   envInt("FIT_TOP_N", 10),
		ATTEMPT_ABANDON_AFTER_HOURS: envInt("ATTEMPT_ABANDON_AFTER_HOURS", 72),
	}

	return envVariables, nil
}

// IsProduction reports whether GO_ENV is production
func (e *EnviornmentVariable) IsProduction() bool {
	return e.GO_ENV == "production"
}

// fitWeights reads the three blend weights. Any unparsable value discards the whole set.
func fitWeights() scoring.Weights {
	defaults := scoring.DefaultWeights()
	raw := []string{
		os.Getenv("FIT_WEIGHT_INTERESTS"),
		os.Getenv("FIT_WEIGHT_SKILLS"),
		os.Getenv("FIT_WEIGHT_PERSONALITY"),
	}
	if raw[0] == "" && raw[1] == "" && raw[2] == "" {
		return defaults
	}

	values := []float64{defaults.Interests, defaults.Skills, defaults.Personality}
	for i, s := range raw {
		if s == "" {
			continue
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return defaults
		}
		values[i] = v
	}
	return scoring.Weights{Interests: values[0], Skills: values[1], Personality: values[2]}.Normalize()
}

func envBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
