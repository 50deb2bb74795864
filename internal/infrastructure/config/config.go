// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CronSecret   string

	// PostgreSQL
	PostgresURI string

	// MongoDB
	MongoURI      string
	MongoDB       string
	MongoUser     string
	MongoPassword string

	// Redis
	RedisAddr       string
	SessionTTL      time.Duration
	SessionMaxTurns int

	// Completion service
	OpenAIKey    string
	OpenAIModel  string
	AITimeout    time.Duration
	AITextBudget int

	// Flight status provider
	AviationstackKey     string
	AviationstackURL     string
	AviationstackTimeout time.Duration

	// Extraction
	HomeAirport string
	PDFMaxPages int

	// Notifications
	NotifyCCWaids     []string
	LocalTZ           string
	LookaheadDays     int
	WhatsAppEndpoint  string
	WhatsAppToken     string
	WhatsAppCompanyID string
	WhatsAppAgentID   string

	// Google Calendar
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURI  string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,
		CronSecret:   getEnv("CRON_SECRET", "changeme"),

		PostgresURI: getEnv("POSTGRES_DSN", "postgres://localhost:5432/tripwatch"),

		MongoURI:      getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "tripwatch"),
		MongoUser:     getEnv("MONGO_USER", ""),
		MongoPassword: getEnv("MONGO_PASSWORD", ""),

		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		SessionTTL:      time.Duration(getEnvAsInt("SESSION_TTL", 86400)) * time.Second,
		SessionMaxTurns: getEnvAsInt("SESSION_MAX_TURNS", 20),

		OpenAIKey:    getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		AITimeout:    time.Duration(getEnvAsInt("AI_TIMEOUT", 25)) * time.Second,
		AITextBudget: getEnvAsInt("AI_TEXT_BUDGET", 8000),

		AviationstackKey:     strings.TrimSpace(getEnv("AVIATIONSTACK_KEY", "")),
		AviationstackURL:     getEnv("AVIATIONSTACK_URL", "http://api.aviationstack.com/v1"),
		AviationstackTimeout: time.Duration(getEnvAsInt("AVIATIONSTACK_TIMEOUT", 25)) * time.Second,

		HomeAirport: getEnv("HOME_AIRPORT", "TLV"),
		PDFMaxPages: getEnvAsInt("PDF_MAX_PAGES", 6),

		NotifyCCWaids:     getEnvAsList("NOTIFY_CC_WAIDS"),
		LocalTZ:           getEnv("TZ", "UTC"),
		LookaheadDays:     getEnvAsInt("DEFAULT_LOOKAHEAD_DAYS", 90),
		WhatsAppEndpoint:  getEnv("WHATSAPP_SERVICE_URL", ""),
		WhatsAppToken:     getEnv("TOKEN", ""),
		WhatsAppCompanyID: getEnv("COMPANY_ID", ""),
		WhatsAppAgentID:   getEnv("AGENT_ID", ""),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURI:  getEnv("GOOGLE_OAUTH_REDIRECT_URI", ""),
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
