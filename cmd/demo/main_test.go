package main

import (
	"os"
	"path/filepath"
	"testing"

	"ml_billing/internal/config"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.bin")
	assert.NoError(t, os.WriteFile(path, []byte("weights"), 0o600))
	log, _ := test.NewNullLogger()

	err := run(&config.Config{
		MinPasswordLength:  8,
		ModelPath:          path,
		ModelInferenceCost: decimal.RequireFromString("0.01"),
	}, log)

	assert.NoError(t, err)
}

func TestRun_MissingModel(t *testing.T) {
	log, _ := test.NewNullLogger()

	err := run(&config.Config{
		MinPasswordLength:  8,
		ModelPath:          filepath.Join(t.TempDir(), "missing.bin"),
		ModelInferenceCost: decimal.RequireFromString("0.01"),
	}, log)

	assert.NoError(t, err)
}
