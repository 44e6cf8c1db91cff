package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/vkazan/tlarun/internal/enumerate"
	"github.com/vkazan/tlarun/internal/itf"
	"github.com/vkazan/tlarun/internal/rewriter"
	"github.com/vkazan/tlarun/internal/tlamodule"
)

// Run loads the configured module, resolves its constants, computes the
// reachable state graph, and writes it to the App's output writer as
// ITF. A max-states truncation is logged as a warning and its partial
// result still written, rather than failing the run — callers that want
// the bound enforced as a hard failure should check Config.MaxStates
// themselves before calling Run.
func (a *App) Run(parent context.Context) error {
	ctx := a.Context(parent)
	logger := a.logger
	logger.Debug("App.Run started", "module", a.config.ModulePath)

	if a.config.HealthcheckPort > 0 {
		a.startHealthcheckServer(ctx)
		defer func() {
			if err := a.closeHealthcheckServer(ctx); err != nil {
				logger.Warn("health check server did not shut down cleanly", "error", err)
			}
		}()
	}

	src, err := os.ReadFile(a.config.ModulePath)
	if err != nil {
		return fmt.Errorf("app: reading module %s: %w", a.config.ModulePath, err)
	}

	mod, err := rewriter.Rewrite(string(src))
	if err != nil {
		return fmt.Errorf("app: rewriting module: %w", err)
	}
	m, err := tlamodule.Extract(mod)
	if err != nil {
		return fmt.Errorf("app: extracting module: %w", err)
	}
	logger.Debug("module extracted", "module", m.String())

	consts, err := resolveConstants(ctx, a.config.ConstExprs, a.config.ConstFile)
	if err != nil {
		return fmt.Errorf("app: resolving constants: %w", err)
	}
	logger.Debug("constants resolved", "count", len(consts))

	initial, err := enumerate.Init(ctx, m, consts)
	if err != nil {
		return fmt.Errorf("app: computing initial states: %w", err)
	}
	logger.Info("initial states computed", "count", len(initial))

	result, err := enumerate.Reachable(ctx, m, consts, initial, a.config.MaxStates)
	if err != nil {
		if !errors.Is(err, enumerate.ErrMaxStatesReached) {
			return fmt.Errorf("app: exploring reachable states: %w", err)
		}
		logger.Warn("reachability exploration truncated at max-states bound", "maxStates", a.config.MaxStates)
	}
	logger.Info("reachable states computed", "count", len(result.States), "edges", len(result.Edges))

	out, err := itf.MarshalStates(result.States)
	if err != nil {
		return fmt.Errorf("app: encoding states as ITF: %w", err)
	}
	if _, err := a.outW.Write(out); err != nil {
		return fmt.Errorf("app: writing output: %w", err)
	}
	if _, err := a.outW.Write([]byte("\n")); err != nil {
		return fmt.Errorf("app: writing output: %w", err)
	}

	logger.Debug("App.Run finished")
	return nil
}
