package cmd

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/flamegraph-analysis/pkg/config"
	"github.com/flamegraph-analysis/pkg/telemetry"
	"github.com/flamegraph-analysis/pkg/utils"
)

var (
	// Global flags
	verbose bool
	cfgFile string

	cfg    *config.Config
	logger utils.Logger

	telemetryShutdown telemetry.ShutdownFunc
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "flamegraph-analysis",
	Short: "Hotspot analysis for self-contained flamegraph reports",
	Long: `flamegraph-analysis extracts hotspots from async-profiler style
self-contained HTML flamegraph reports.

It decompresses the report's prefix-compressed frame pool, aggregates the
sample weights of the rendering calls, and ranks the hottest frames of the
profiled mail server, grouped into delivery pipeline categories. Companion
commands verify mail delivery over IMAP and drive test traffic over SMTP.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}

		logLevel := utils.ParseLogLevel(cfg.Log.Level)
		if verbose {
			logLevel = utils.LevelDebug
		}

		// Logs go to stderr so the report on stdout stays parseable.
		if cfg.Log.OutputPath != "" {
			logger, err = utils.NewFileLogger(logLevel, cfg.Log.OutputPath)
			if err != nil {
				return err
			}
		} else {
			logger = utils.NewDefaultLogger(logLevel, os.Stderr)
		}

		telemetryShutdown, err = telemetry.Init(cmd.Context())
		if err != nil {
			logger.Warn("Failed to initialize telemetry: %v", err)
			telemetryShutdown = nil
		}

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if telemetryShutdown != nil {
			return telemetryShutdown(context.Background())
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Config file path")

	binName := BinName()
	rootCmd.Example = `  # Analyze a flamegraph report
  ` + binName + ` analyze ./flamegraph.html

  # Analyze with a custom relevance filter and persist the run
  ` + binName + ` analyze ./flamegraph.html --relevance myapp/ --save

  # Count messages delivered to the test mailbox
  ` + binName + ` mailbox --port 2143 --user pepper@example.com --pass potts

  # Send a test message through the server under test
  ` + binName + ` sendmail localhost 2525 tony@example.com pepper@example.com`
}

// GetLogger returns the configured logger
func GetLogger() utils.Logger {
	if logger == nil {
		return &utils.NullLogger{}
	}
	return logger
}

// BinName returns the base name of the current executable
func BinName() string {
	return filepath.Base(os.Args[0])
}
