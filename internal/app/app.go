package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/vkazan/tlarun/internal/config"
	"github.com/vkazan/tlarun/internal/ctxlog"
)

// App encapsulates one interpreter invocation's dependencies and
// lifecycle, the same role the teacher's App struct plays for one
// burstgridgo run.
type App struct {
	outW       io.Writer
	logger     *slog.Logger
	config     *config.Config
	httpServer *http.Server
}

// NewApp builds an App with its own isolated logger, the teacher's own
// NewApp contract: logging is configured here, once, rather than left to
// whatever global state happens to be installed. Unlike the teacher
// (whose outW is purely a test-capture seam), this repo's outW carries
// the actual ITF result a caller wants to parse, so log output always
// goes to logW instead — keeping the two streams separable is the whole
// point of taking both parameters.
func NewApp(outW, logW io.Writer, cfg *config.Config) *App {
	level := cfg.LogLevel
	if cfg.ChooseTrace {
		// CHOOSE's witness log line is emitted at Debug; -choose-trace
		// is the one ambient flag allowed to override the configured
		// level, rather than adding a second logger just for it.
		level = "debug"
	}
	logger := newLogger(level, cfg.LogFormat, logW)
	return &App{outW: outW, logger: logger, config: cfg}
}

// NewAppStderr is NewApp with logW defaulting to os.Stderr, the common
// case for the CLI entrypoint.
func NewAppStderr(outW io.Writer, cfg *config.Config) *App {
	return NewApp(outW, os.Stderr, cfg)
}

// Context returns ctx with this App's logger installed, for callers that
// need to pass it on to library packages.
func (a *App) Context(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
