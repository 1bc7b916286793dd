package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/rohmanhakim/site-word-scanner/internal/batch"
	"github.com/rohmanhakim/site-word-scanner/internal/build"
	"github.com/rohmanhakim/site-word-scanner/internal/config"
	"github.com/rohmanhakim/site-word-scanner/internal/metadata"
	"github.com/rohmanhakim/site-word-scanner/internal/scheduler"
	"github.com/rohmanhakim/site-word-scanner/internal/storage"
	"github.com/rohmanhakim/site-word-scanner/pkg/textutil"
	"github.com/spf13/cobra"
)

var ErrEmptyKeyword = errors.New("keyword must not be empty")

var (
	cfgFile       string
	outputFormat  string
	outputDir     string
	parallelScans string
	timeoutMillis int
	userAgent     string
	verbose       bool
)

// NewRootCmd builds the site-word-scanner command and binds its flags to
// the package-level flag values.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "site-word-scanner <keyword> <input>",
		Short: "Find every occurrence of a keyword across a website.",
		Long: `site-word-scanner crawls every page of a domain reachable through
same-domain links and reports where a keyword appears: in the visible text,
in mailto: addresses, and in the hostnames of linked sites.

<input> is either a single URL starting with http:// or https://, or a path
to a file listing one domain or URL per line. One report is written per
successfully scanned domain, named {domain}_{date}.{format}.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Summary(),
		RunE:          runScan,
	}

	flags := rootCmd.Flags()
	flags.StringVar(&cfgFile, "config-file", "", "YAML config file (default $XDG_CONFIG_HOME/site-word-scanner/config.yaml)")
	flags.StringVarP(&outputFormat, "format", "f", "", "output format: json, csv or markdown (default json)")
	flags.StringVarP(&outputDir, "directory", "d", "", "directory the reports are written to (default .)")
	flags.StringVarP(&parallelScans, "parallel", "p", "", "number of domains scanned at the same time (default 3)")
	flags.IntVarP(&timeoutMillis, "timeout", "t", 0, "per-request timeout in milliseconds (0 for none)")
	flags.StringVarP(&userAgent, "user-agent", "u", "", "User-Agent header sent with every request")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log every fetch")

	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
// This is called by main.main().
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func runScan(cmd *cobra.Command, args []string) error {
	keyword := textutil.Lower(strings.TrimSpace(args[0]))
	if keyword == "" {
		return ErrEmptyKeyword
	}

	seeds, err := batch.LoadSeeds(args[1])
	if err != nil {
		return err
	}

	cfg, err := InitConfigWithError()
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), verbose)

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	storageRecorder := metadata.NewRecorder("storage", logger)
	localSink := storage.NewLocalSink(&storageRecorder)
	runner := batch.NewRunner(cfg, newScanExecutorFactory(cfg, logger), &localSink, logger)

	outcomes, runErr := runner.Run(ctx, seeds, keyword)

	for _, outcome := range outcomes {
		switch {
		case outcome.Written != nil:
			fmt.Fprintf(cmd.ErrOrStderr(), "saved %s\n", outcome.Written.Path())
		case outcome.WriteErr != nil:
			fmt.Fprintf(cmd.ErrOrStderr(), "could not save %s: %s\n", outcome.Seed, outcome.WriteErr)
		case outcome.Skipped:
			fmt.Fprintf(cmd.ErrOrStderr(), "skipped %s\n", outcome.Seed)
		}
	}

	if len(outcomes) == 1 && !outcomes[0].Skipped {
		if err := (storage.JSONRenderer{}).Render(cmd.OutOrStdout(), outcomes[0].Result); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout())
	}

	if runErr != nil {
		return fmt.Errorf("scan interrupted: %w", runErr)
	}
	return nil
}

// newScanExecutorFactory gives every seed its own scheduler and recorder,
// so log lines carry the seed they belong to.
func newScanExecutorFactory(cfg config.Config, logger *slog.Logger) batch.ExecutorFactory {
	return func(seed string) batch.ScanExecutor {
		recorder := metadata.NewRecorder(seed, logger)
		s := scheduler.NewScheduler(cfg, &recorder)
		return &s
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// InitConfigWithError resolves the config file, applies flag overrides on
// top of it and builds the final Config.
// This makes it easier to test error cases.
func InitConfigWithError() (config.Config, error) {
	configBuilder, err := config.Load(cfgFile)
	if err != nil {
		return config.Config{}, fmt.Errorf("error initializing config: %w", err)
	}

	if outputFormat != "" {
		format, err := config.ParseOutputFormat(outputFormat)
		if err != nil {
			return config.Config{}, err
		}
		configBuilder = configBuilder.WithOutputFormat(format)
	}

	if outputDir != "" {
		configBuilder = configBuilder.WithOutputDir(outputDir)
	}

	if parallelScans != "" {
		configBuilder = configBuilder.WithParallelScans(parseParallel(parallelScans))
	}

	if timeoutMillis > 0 {
		configBuilder = configBuilder.WithTimeout(time.Duration(timeoutMillis) * time.Millisecond)
	}

	if userAgent != "" {
		configBuilder = configBuilder.WithUserAgent(userAgent)
	}

	cfg, err := configBuilder.Build()
	if err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// parseParallel falls back to the default for anything that is not a
// positive integer.
func parseParallel(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return config.DefaultParallelScans
	}
	return n
}

func ResetFlags() {
	cfgFile = ""
	outputFormat = ""
	outputDir = ""
	parallelScans = ""
	timeoutMillis = 0
	userAgent = ""
	verbose = false
}

// Test helper functions to set flag values from tests
func SetConfigFileForTest(path string) {
	cfgFile = path
}

func SetOutputFormatForTest(format string) {
	outputFormat = format
}

func SetOutputDirForTest(dir string) {
	outputDir = dir
}

func SetParallelForTest(parallel string) {
	parallelScans = parallel
}

func SetTimeoutMillisForTest(ms int) {
	timeoutMillis = ms
}

func SetUserAgentForTest(agent string) {
	userAgent = agent
}
