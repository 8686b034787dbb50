package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/hamed0406/uptimeping/internal/config"
	"github.com/hamed0406/uptimeping/internal/logging"
	"github.com/hamed0406/uptimeping/internal/probe"
	"github.com/hamed0406/uptimeping/internal/report"
	"github.com/hamed0406/uptimeping/internal/scheduler"
)

var version = "dev"

const loggerName = "pinger"

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type options struct {
	configPath string
	duration   int
	frequency  int
	timeout    int
	logFile    string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "uptimeping TARGET",
		Short: "Ping network resources and report response time",
		Long: "uptimeping sends an HTTP GET to TARGET every few seconds, logs whether it\n" +
			"answered 200 OK and how long it took (in microseconds).\n\n" +
			"  TARGET: resource target URL",
		Args:          cobra.MaximumNArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := buildConfig(cmd.Flags(), opts, args)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}

	fl := cmd.Flags()
	fl.StringVarP(&opts.configPath, "config", "c", "", "Path to an optional TOML config file")
	fl.IntVarP(&opts.duration, "duration", "d", 0, "Set how long pinging should last in seconds (default is continuous)")
	fl.IntVarP(&opts.frequency, "frequency", "f", config.DefaultFrequency, "Set how frequent the ping request should be sent in seconds")
	fl.IntVarP(&opts.timeout, "timeout", "t", config.DefaultTimeout, "Set how long the ping request should wait before aborting in seconds")
	fl.StringVarP(&opts.logFile, "log-file", "l", "", "Log file path (default is ping.log next to the executable)")
	fl.BoolVarP(&opts.verbose, "verbose", "v", false, "Add HTTP status and failure reason to each line")

	return cmd
}

// buildConfig layers defaults, the config file and explicitly set flags, in
// that order, then validates the result.
func buildConfig(fl *pflag.FlagSet, opts options, args []string) (config.Config, error) {
	f := config.Default()
	if opts.configPath != "" {
		if err := config.Load(opts.configPath, &f); err != nil {
			return config.Config{}, err
		}
	}

	if fl.Changed("duration") {
		f.Duration = opts.duration
	}
	if fl.Changed("frequency") {
		f.Frequency = opts.frequency
	}
	if fl.Changed("timeout") {
		f.Timeout = opts.timeout
	}
	if fl.Changed("log-file") {
		f.Log.Path = opts.logFile
	}
	if fl.Changed("verbose") {
		f.Verbose = opts.verbose
	}
	if len(args) == 1 {
		f.Target = args[0]
	}

	cfg, err := f.Build()
	if err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func run(ctx context.Context, cfg config.Config, stdout io.Writer) error {
	logger, closeLog, err := logging.NewLogger(logging.Config{
		Path:       cfg.Log.Path,
		Name:       loggerName,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
		Stdout:     stdout,
	})
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	for _, w := range config.Warnings(cfg) {
		logger.Warn("config_warning", zap.String("detail", w))
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	driver := scheduler.NewDriver(
		logger,
		probe.NewHTTPChecker(cfg.Timeout),
		report.New(logger, cfg.Verbose),
		cfg,
	)

	// an operator interrupt is a normal way to end a run
	err = driver.Run(ctx)
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}
