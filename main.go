package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/wildfunctions/fourfours/pkg/catalog"
	"github.com/wildfunctions/fourfours/pkg/engine"
	"github.com/wildfunctions/fourfours/pkg/strategy"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string
	flagCfg := engine.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "fourfours",
		Short: "Find expressions of four 4s for every integer in a range",
		Long: `fourfours exhaustively searches stack-machine derivations that use exactly
four 4s and records, for every integer target, the shortest derivation found.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := engine.LoadConfig(configPath)
			if err != nil {
				return err
			}
			applyFlags(cmd, &cfg, flagCfg)
			return run(cmd.Context(), cfg, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	f := cmd.Flags()
	f.StringVar(&configPath, "config", "", "YAML config file; flags override its values")
	f.StringVar(&flagCfg.Catalog, "catalog", flagCfg.Catalog, "action catalog ("+strings.Join(catalog.Names(), ", ")+")")
	f.StringVar(&flagCfg.Strategy, "strategy", flagCfg.Strategy, "exploration strategy ("+strings.Join(strategy.Names(), ", ")+")")
	f.IntVar(&flagCfg.TargetMin, "min", flagCfg.TargetMin, "smallest target")
	f.IntVar(&flagCfg.TargetMax, "max", flagCfg.TargetMax, "largest target")
	f.IntVar(&flagCfg.MaxDepth, "depth", flagCfg.MaxDepth, "longest derivation in actions")
	f.Float64Var(&flagCfg.MaxMagnitude, "max-magnitude", flagCfg.MaxMagnitude, "do not extend derivations past values this large (0 = unbounded)")
	f.IntVar(&flagCfg.Workers, "workers", flagCfg.Workers, "parallel workers for the parallel strategy")
	f.StringVar(&flagCfg.Format, "format", flagCfg.Format, "final report format (text, table, json)")
	f.BoolVar(&flagCfg.Quiet, "quiet", flagCfg.Quiet, "suppress progress lines")
	f.StringVar(&flagCfg.LogLevel, "log-level", flagCfg.LogLevel, "log level (debug, info, warn, error)")
	f.StringVar(&flagCfg.MetricsAddr, "metrics-addr", flagCfg.MetricsAddr, "serve Prometheus metrics on this address")

	cmd.AddCommand(newCatalogsCmd())
	return cmd
}

// applyFlags copies explicitly set flags over the loaded config.
func applyFlags(cmd *cobra.Command, cfg *engine.Config, flags engine.Config) {
	set := func(name string, apply func()) {
		if cmd.Flags().Changed(name) {
			apply()
		}
	}
	set("catalog", func() { cfg.Catalog = flags.Catalog })
	set("strategy", func() { cfg.Strategy = flags.Strategy })
	set("min", func() { cfg.TargetMin = flags.TargetMin })
	set("max", func() { cfg.TargetMax = flags.TargetMax })
	set("depth", func() { cfg.MaxDepth = flags.MaxDepth })
	set("max-magnitude", func() { cfg.MaxMagnitude = flags.MaxMagnitude })
	set("workers", func() { cfg.Workers = flags.Workers })
	set("format", func() { cfg.Format = flags.Format })
	set("quiet", func() { cfg.Quiet = flags.Quiet })
	set("log-level", func() { cfg.LogLevel = flags.LogLevel })
	set("metrics-addr", func() { cfg.MetricsAddr = flags.MetricsAddr })
}

func run(ctx context.Context, cfg engine.Config, stdout, stderr io.Writer) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := newLogger(stderr, cfg.LogLevel)

	opts := []engine.Option{engine.WithLogger(logger), engine.WithProgress(stderr)}
	if cfg.MetricsAddr != "" {
		opts = append(opts, engine.WithRegisterer(prometheus.DefaultRegisterer))
		srv := serveMetrics(cfg.MetricsAddr, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	e, err := engine.New(cfg, opts...)
	if err != nil {
		return err
	}

	report, runErr := e.Run(ctx)
	if err := engine.WriteFinal(stdout, report); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return runErr
}

func serveMetrics(addr string, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server failed", slog.String("addr", addr), slog.String("error", err.Error()))
		}
	}()
	logger.Info("serving metrics", slog.String("addr", addr))
	return srv
}

// newLogger picks a text handler for terminals and JSON otherwise.
func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}

	if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func newCatalogsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalogs",
		Short: "List the registered action catalogs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, name := range catalog.Names() {
				c, err := catalog.Get(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-10s %s\n", c.Name(), c.Description())
				fmt.Fprintf(out, "%-10s %s\n", "", catalog.FormatPath(c.Actions()))
			}
			return nil
		},
	}
}
