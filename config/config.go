package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type Config struct {
	Port          string
	DatabaseURL   string
	DataFile      string
	RemoteTimeout time.Duration
	CORSOrigins   []string
	GinMode       string
	LogLevel      string

	Reminder struct {
		Schedule string
		MinDebt  decimal.Decimal
		Twilio   struct {
			AccountSID  string
			AuthToken   string
			PhoneNumber string
		}
	}
}

// RemindersEnabled reports whether debt reminders can be sent.
func (c *Config) RemindersEnabled() bool {
	return c.Reminder.Schedule != "" && c.Reminder.Twilio.AccountSID != "" && c.Reminder.Twilio.PhoneNumber != ""
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Load reads .env when present and then the process environment.
func Load(logger zerolog.Logger) *Config {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg("no .env file found")
	}

	cfg := &Config{
		Port:        getEnv("PORT", "3000"),
		DatabaseURL: getEnv("DB_URL", ""),
		DataFile:    getEnv("DATA_FILE", "data.json"),
		GinMode:     getEnv("GIN_MODE", "release"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
	}

	timeout, err := time.ParseDuration(getEnv("REMOTE_TIMEOUT", "10s"))
	if err != nil {
		logger.Warn().Err(err).Msg("invalid REMOTE_TIMEOUT, using 10s")
		timeout = 10 * time.Second
	}
	cfg.RemoteTimeout = timeout

	for _, origin := range strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}

	cfg.Reminder.Schedule = getEnv("REMINDER_CRON", "")
	minDebt, err := decimal.NewFromString(getEnv("REMINDER_MIN_DEBT", "500"))
	if err != nil {
		logger.Warn().Err(err).Msg("invalid REMINDER_MIN_DEBT, using 500")
		minDebt = decimal.NewFromInt(500)
	}
	cfg.Reminder.MinDebt = minDebt
	cfg.Reminder.Twilio.AccountSID = getEnv("TWILIO_ACCOUNT_SID", "")
	cfg.Reminder.Twilio.AuthToken = getEnv("TWILIO_AUTH_TOKEN", "")
	cfg.Reminder.Twilio.PhoneNumber = getEnv("TWILIO_PHONE_NUMBER", "")

	return cfg
}
