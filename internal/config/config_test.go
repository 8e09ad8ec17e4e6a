package config

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{"APP_NAME", "APP_PORT", "DB_DRIVER", "MIN_PASSWORD_LENGTH", "MODEL_INFERENCE_COST", "DEBUG"} {
		t.Setenv(k, "")
	}

	cfg := LoadConfig()

	assert.Equal(t, DefaultAppName, cfg.AppName)
	assert.Equal(t, DefaultAppPort, cfg.AppPort)
	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, 8, cfg.MinPasswordLength)
	assert.True(t, decimal.RequireFromString("0.01").Equal(cfg.ModelInferenceCost))
	assert.False(t, cfg.Debug)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("APP_NAME", "billing")
	t.Setenv("MIN_PASSWORD_LENGTH", "12")
	t.Setenv("MODEL_INFERENCE_COST", "0.25")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("DEBUG", "true")

	cfg := LoadConfig()

	assert.Equal(t, "billing", cfg.AppName)
	assert.Equal(t, 12, cfg.MinPasswordLength)
	assert.Equal(t, "0.25", cfg.ModelInferenceCost.String())
	assert.Equal(t, 3, cfg.RedisDB)
	assert.True(t, cfg.Debug)
}

func TestLoadConfig_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("MIN_PASSWORD_LENGTH", "abc")
	t.Setenv("MODEL_INFERENCE_COST", "cheap")

	cfg := LoadConfig()

	assert.Equal(t, DefaultMinPasswordLength, cfg.MinPasswordLength)
	assert.Equal(t, "0.01", cfg.ModelInferenceCost.String())
}

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{DBDriver: "mysql", DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "3306", DBName: "d"}
	assert.Equal(t, "u:p@tcp(h:3306)/d?parseTime=true", cfg.DSN())

	cfg.DBDriver = "postgres"
	cfg.DBPort = "5432"
	assert.Equal(t, "host=h user=u password=p dbname=d port=5432 sslmode=disable", cfg.DSN())
}

func TestLoadConfig_InferenceCost(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{env: "-0.01", want: "0.01"},
		{env: "0", want: "0"},
		{env: "1.50", want: "1.5"},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			t.Setenv("MODEL_INFERENCE_COST", tt.env)
			assert.Equal(t, tt.want, LoadConfig().ModelInferenceCost.String())
		})
	}
}
