package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vkazan/tlarun/internal/config"
)

// White-box (same-package) test: exercises startHealthcheckServer and
// closeHealthcheckServer directly, with explicit control over the
// start/stop boundary, rather than racing against a full Run call whose
// state exploration might finish (and tear the server back down) before
// a test request gets there.
func TestHealthcheckServerServesAndShutsDownCleanly(t *testing.T) {
	port := 30334
	cfg, err := config.NewConfig(config.Config{ModulePath: "unused.tla", HealthcheckPort: port})
	require.NoError(t, err)

	a := NewApp(io.Discard, io.Discard, cfg)
	ctx := a.Context(context.Background())

	a.startHealthcheckServer(ctx)

	var resp *http.Response
	for i := 0; i < 40; i++ {
		resp, err = http.Get(fmt.Sprintf("http://localhost:%d/health", port))
		if err == nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	require.NoError(t, a.closeHealthcheckServer(ctx))

	_, err = http.Get(fmt.Sprintf("http://localhost:%d/health", port))
	require.Error(t, err)
}

func TestHealthcheckServerDisabledWhenPortNotPositive(t *testing.T) {
	cfg, err := config.NewConfig(config.Config{ModulePath: "unused.tla"})
	require.NoError(t, err)

	a := NewApp(io.Discard, io.Discard, cfg)
	ctx := a.Context(context.Background())
	a.startHealthcheckServer(ctx)
	require.Nil(t, a.httpServer)
}
