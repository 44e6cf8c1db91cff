package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkazan/tlarun/internal/config"
)

func TestNewConfigRejectsMissingModulePath(t *testing.T) {
	_, err := config.NewConfig(config.Config{})
	require.Error(t, err)
}

func TestNewConfigAppliesDefaults(t *testing.T) {
	cfg, err := config.NewConfig(config.Config{ModulePath: "spec.tla"})
	require.NoError(t, err)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestNewConfigRejectsInvalidLogFormat(t *testing.T) {
	_, err := config.NewConfig(config.Config{ModulePath: "spec.tla", LogFormat: "xml"})
	require.Error(t, err)
}

func TestNewConfigRejectsNegativeMaxStates(t *testing.T) {
	_, err := config.NewConfig(config.Config{ModulePath: "spec.tla", MaxStates: -1})
	require.Error(t, err)
}
