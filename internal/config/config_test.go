package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avelune/formgate/internal/config"
)

// setRequiredEnv seeds the minimal environment Load needs. Individual
// tests override single keys on top of it.
func setRequiredEnv(t *testing.T) {
	t.Helper()

	vars := map[string]string{
		"FORMGATE_PRIMARY.ENV": "local",

		"FORMGATE_SERVER.PORT":                 "8080",
		"FORMGATE_SERVER.READ_TIMEOUT":         "10",
		"FORMGATE_SERVER.WRITE_TIMEOUT":        "10",
		"FORMGATE_SERVER.IDLE_TIMEOUT":         "60",
		"FORMGATE_SERVER.CORS_ALLOWED_ORIGINS": "http://localhost:3000,https://example.com",

		"FORMGATE_DATABASE.HOST":               "localhost",
		"FORMGATE_DATABASE.PORT":               "5432",
		"FORMGATE_DATABASE.USER":               "formgate",
		"FORMGATE_DATABASE.PASSWORD":           "secret",
		"FORMGATE_DATABASE.NAME":               "formgate",
		"FORMGATE_DATABASE.SSL_MODE":           "disable",
		"FORMGATE_DATABASE.MAX_OPEN_CONNS":     "10",
		"FORMGATE_DATABASE.MAX_IDLE_CONNS":     "5",
		"FORMGATE_DATABASE.CONN_MAX_LIFETIME":  "300",
		"FORMGATE_DATABASE.CONN_MAX_IDLE_TIME": "60",

		"FORMGATE_REDIS.ADDRESS": "localhost:6379",

		"FORMGATE_AUTH.SECRET_KEY": "sk_test_abc123",

		"FORMGATE_INTEGRATION.RESEND_API_KEY": "re_test_key",
		"FORMGATE_INTEGRATION.NOTIFY_EMAIL":   "owner@example.com",
	}

	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func TestLoad(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Primary.Env)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 10, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"http://localhost:3000", "https://example.com"}, cfg.Server.CORSAllowedOrigins)

	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)

	assert.Equal(t, "localhost:6379", cfg.Redis.Address)
	assert.Equal(t, "owner@example.com", cfg.Integration.NotifyEmail)
}

func TestLoad_ObservabilityDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	require.NotNil(t, cfg.Observability)
	assert.Equal(t, "formgate", cfg.Observability.ServiceName)
	assert.Equal(t, "local", cfg.Observability.Environment)
	assert.Equal(t, "info", cfg.Observability.Logging.Level)
	assert.Equal(t, "json", cfg.Observability.Logging.Format)
}

func TestLoad_RateLimitIsOptional(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Zero(t, cfg.Server.SubmitRatePerSecond)

	t.Setenv("FORMGATE_SERVER.SUBMIT_RATE_PER_SECOND", "2.5")

	cfg, err = config.Load()
	require.NoError(t, err)
	assert.Equal(t, 2.5, cfg.Server.SubmitRatePerSecond)
}

func TestObservabilityConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(o *config.ObservabilityConfig)
		wantErr bool
	}{
		{"defaults are valid", func(o *config.ObservabilityConfig) {}, false},
		{"bad level", func(o *config.ObservabilityConfig) { o.Logging.Level = "verbose" }, true},
		{"bad format", func(o *config.ObservabilityConfig) { o.Logging.Format = "xml" }, true},
		{"sub-second health interval", func(o *config.ObservabilityConfig) { o.HealthChecks.Interval = 100 * time.Millisecond }, true},
		{"health checks disabled skips interval rules", func(o *config.ObservabilityConfig) {
			o.HealthChecks.Enabled = false
			o.HealthChecks.Interval = 0
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := config.DefaultObservabilityConfig()
			tt.mutate(o)

			err := o.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
