// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ManuGH/camlife/internal/config"
	"github.com/ManuGH/camlife/internal/log"
	"github.com/ManuGH/camlife/internal/telemetry"
	"github.com/ManuGH/camlife/internal/version"
)

var errExpectationsFailed = errors.New("scenario expectations failed")

type runOptions struct {
	scenario    string
	configPath  string
	metricsAddr string
	reportPath  string
	watch       bool
}

func newRunCmd() *cobra.Command {
	var opts runOptions
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a scenario against simulated hardware",
		Long: `Runs a YAML scenario against a fresh lifecycle machine bound to simulated
camera hardware and prints (or writes) a JSON report.

With --watch the scenario is re-run every time the configuration file changes
until the process is interrupted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runScenario(ctx, opts, cmd.OutOrStdout())
		},
	}
	f := cmd.Flags()
	f.StringVarP(&opts.scenario, "scenario", "s", "", "path to scenario YAML")
	f.StringVarP(&opts.configPath, "config", "c", "", "path to YAML configuration file")
	f.StringVar(&opts.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (overrides metrics.listenAddr)")
	f.StringVar(&opts.reportPath, "report", "", "write the JSON report to this file instead of stdout")
	f.BoolVar(&opts.watch, "watch", false, "re-run the scenario whenever the config file changes")
	_ = cmd.MarkFlagRequired("scenario")
	return cmd
}

func runScenario(ctx context.Context, opts runOptions, out io.Writer) error {
	if opts.watch && opts.configPath == "" {
		return errors.New("--watch requires --config")
	}
	loader := config.NewLoader(opts.configPath)
	cfg, err := loader.Load()
	if err != nil {
		return err
	}
	log.Configure(log.Config{Level: cfg.Logging.Level, Output: os.Stderr, Service: "camsim", Version: version.Version})
	logger := log.WithComponent("camsim")

	sc, err := loadScenario(opts.scenario)
	if err != nil {
		return err
	}

	tp, err := telemetry.NewProvider(ctx, telemetryConfig(cfg))
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer shutdown(logger, "telemetry", tp.Shutdown)

	addr := opts.metricsAddr
	if addr == "" {
		addr = cfg.Metrics.ListenAddr
	}
	if addr != "" {
		ms, err := startMetricsServer(addr, logger)
		if err != nil {
			return fmt.Errorf("metrics endpoint: %w", err)
		}
		defer shutdown(logger, "metrics", ms.Shutdown)
	}

	if !opts.watch {
		return runOnce(ctx, cfg, sc, opts.reportPath, out)
	}

	holder := config.NewHolder(cfg, loader)
	reloads := make(chan config.Config, 1)
	holder.RegisterListener(reloads)
	if err := holder.StartWatcher(ctx); err != nil {
		return fmt.Errorf("watch config: %w", err)
	}
	defer holder.Stop()

	for {
		if err := runOnce(ctx, holder.Get(), sc, opts.reportPath, out); err != nil && !errors.Is(err, errExpectationsFailed) {
			return err
		}
		logger.Info().Str(log.FieldPath, loader.Path()).Msg("waiting for config change")
		select {
		case <-ctx.Done():
			return nil
		case next := <-reloads:
			log.Reconfigure(log.Config{Level: next.Logging.Level, Output: os.Stderr, Service: "camsim", Version: version.Version})
		}
	}
}

func runOnce(ctx context.Context, cfg config.Config, sc Scenario, reportPath string, out io.Writer) error {
	r, err := newRunner(cfg, sc)
	if err != nil {
		return err
	}
	rep, err := r.run(ctx)
	if err != nil {
		return err
	}

	if reportPath != "" {
		if err := writeReport(reportPath, rep); err != nil {
			return err
		}
	} else {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
	}
	if !rep.Passed() {
		return fmt.Errorf("%w: %d of %d", errExpectationsFailed, len(rep.Failures), len(sc.Steps))
	}
	return nil
}

func shutdown(logger zerolog.Logger, what string, fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := fn(ctx); err != nil {
		logger.Warn().Err(err).Str("component", what).Msg("shutdown failed")
	}
}
