package cli_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vkazan/tlarun/internal/cli"
)

func TestParseRequiresAModulePath(t *testing.T) {
	var out bytes.Buffer
	cfg, exitClean, err := cli.Parse(nil, &out)
	require.NoError(t, err)
	assert.True(t, exitClean)
	assert.Nil(t, cfg)
}

func TestParsePopulatesConfigFromFlags(t *testing.T) {
	var out bytes.Buffer
	cfg, exitClean, err := cli.Parse([]string{
		"-const", "N=2",
		"-const", "M=N+1",
		"-max-states", "50",
		"-log-level", "DEBUG",
		"spec.tla",
	}, &out)
	require.NoError(t, err)
	assert.False(t, exitClean)
	require.NotNil(t, cfg)
	assert.Equal(t, "spec.tla", cfg.ModulePath)
	assert.Equal(t, []string{"N=2", "M=N+1"}, cfg.ConstExprs)
	assert.Equal(t, 50, cfg.MaxStates)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestParseRejectsInvalidLogLevel(t *testing.T) {
	var out bytes.Buffer
	_, _, err := cli.Parse([]string{"-log-level", "verbose", "spec.tla"}, &out)
	require.Error(t, err)
	var exitErr *cli.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 2, exitErr.Code)
}

func TestParseReturnsExitCleanOnHelp(t *testing.T) {
	var out bytes.Buffer
	cfg, exitClean, err := cli.Parse([]string{"-h"}, &out)
	require.NoError(t, err)
	assert.True(t, exitClean)
	assert.Nil(t, cfg)
}
