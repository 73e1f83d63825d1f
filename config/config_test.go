package config

import (
	"slices"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestLoad(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("REMOTE_TIMEOUT", "3s")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test ,")
	t.Setenv("REMINDER_MIN_DEBT", "250.50")
	t.Setenv("REMINDER_CRON", "0 9 * * 1")
	t.Setenv("TWILIO_ACCOUNT_SID", "AC123")
	t.Setenv("TWILIO_PHONE_NUMBER", "+15005550006")

	cfg := Load(zerolog.Nop())
	if cfg.Port != "8080" || cfg.RemoteTimeout != 3*time.Second {
		t.Errorf("port %q timeout %v", cfg.Port, cfg.RemoteTimeout)
	}
	if !slices.Equal(cfg.CORSOrigins, []string{"http://a.test", "http://b.test"}) {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
	if cfg.Reminder.MinDebt.String() != "250.5" {
		t.Errorf("MinDebt = %s", cfg.Reminder.MinDebt)
	}
	if !cfg.RemindersEnabled() {
		t.Error("reminders are not enabled")
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_URL", "DATA_FILE", "REMOTE_TIMEOUT", "REMINDER_CRON", "REMINDER_MIN_DEBT", "CORS_ORIGINS"} {
		t.Setenv(key, "")
	}
	t.Setenv("REMOTE_TIMEOUT", "soon")

	cfg := Load(zerolog.Nop())
	if cfg.Port != "3000" || cfg.DataFile != "data.json" || cfg.DatabaseURL != "" {
		t.Errorf("defaults = %+v", cfg)
	}
	if cfg.RemoteTimeout != 10*time.Second {
		t.Errorf("RemoteTimeout = %v, want 10s", cfg.RemoteTimeout)
	}
	if cfg.RemindersEnabled() {
		t.Error("reminders enabled without a schedule")
	}
}
