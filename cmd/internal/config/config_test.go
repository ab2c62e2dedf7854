package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ALERT_INTERVAL", "")
	t.Setenv("TIMEZONE", "")

	cfg := Load()
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, 5432, cfg.DB.Port)
	assert.Equal(t, 90, cfg.Alerts.TenureDays)
	assert.Equal(t, 2, cfg.Alerts.ConsecutiveAbsences)
	assert.Equal(t, 10*time.Minute, cfg.Auth.CacheTTL)
	assert.Equal(t, int64(1), cfg.MachineID)
	assert.Equal(t, "America/Sao_Paulo", cfg.Timezone)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("GO_ENV", "production")
	t.Setenv("ALERT_INTERVAL", "15m")
	t.Setenv("ALERT_CONSECUTIVE_ABSENCES", "3")
	t.Setenv("DB_DRIVER", "postgres")
	t.Setenv("TIMEZONE", "America/Manaus")
	t.Setenv("KANBAN_WEBHOOK_URL", "https://hook.example.com/abc")

	cfg := Load()
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 15*time.Minute, cfg.Alerts.Interval)
	assert.Equal(t, 3, cfg.Alerts.ConsecutiveAbsences)
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, "America/Manaus", cfg.Timezone)
	assert.Equal(t, "https://hook.example.com/abc", cfg.KanbanWebhookURL)
}
