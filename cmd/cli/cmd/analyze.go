package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/flamegraph-analysis/internal/analyzer"
	"github.com/flamegraph-analysis/internal/formatter"
	"github.com/flamegraph-analysis/internal/hotspot"
	"github.com/flamegraph-analysis/internal/repository"
	"github.com/flamegraph-analysis/internal/storage"
	"github.com/flamegraph-analysis/pkg/compression"
	"github.com/flamegraph-analysis/pkg/model"
)

var (
	// Analyze command flags
	relevance    []string
	topN         int
	fallbackTopN int
	outputFormat string
	saveRun      bool
	storageKey   string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <flamegraph.html>",
	Short: "Extract hotspots from a flamegraph report",
	Long: `Analyze a self-contained HTML flamegraph report and print its hotspots.

The report's constant pool is decompressed, the sample weights of all
rendering calls are aggregated per frame, and frames matching the relevance
filter are ranked and grouped into delivery pipeline categories. When no
frame matches the filter, the top frames overall are printed instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	binName := BinName()
	analyzeCmd.Example = `  # Analyze a report with the default relevance filter
  ` + binName + ` analyze ./flamegraph.html

  # Rank frames of a different codebase
  ` + binName + ` analyze ./flamegraph.html --relevance myapp/ --top 10

  # Persist the run to the history database and archive the report
  ` + binName + ` analyze ./flamegraph.html --save --storage-key runs/2026-08-27.html`

	analyzeCmd.Flags().StringSliceVar(&relevance, "relevance", nil, "Substrings marking a frame as relevant (default from config)")
	analyzeCmd.Flags().IntVarP(&topN, "top", "n", 0, "Number of ranked hotspots to print (default from config)")
	analyzeCmd.Flags().IntVar(&fallbackTopN, "fallback-top", 0, "Number of frames printed when nothing is relevant (default from config)")
	analyzeCmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format: text or json")
	analyzeCmd.Flags().BoolVar(&saveRun, "save", false, "Persist the run to the history database")
	analyzeCmd.Flags().StringVar(&storageKey, "storage-key", "", "Archive the report document under this storage key")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	log := GetLogger()
	reportPath := args[0]

	data, err := os.ReadFile(reportPath)
	if err != nil {
		return fmt.Errorf("failed to read report %s: %w", reportPath, err)
	}

	// Archived reports are often stored gzipped or zstd-compressed.
	if ct := compression.DetectType(data); ct != compression.TypeNone {
		log.Debug("Report %s is compressed, decompressing", reportPath)
		if data, err = compression.AutoDecompress(data); err != nil {
			return fmt.Errorf("failed to decompress report %s: %w", reportPath, err)
		}
	}

	opts := reportOptions()

	log.Debug("Analyzing %s (%d bytes)", reportPath, len(data))
	start := time.Now()

	ana := analyzer.NewFlamegraphAnalyzer(opts, log)
	report, err := ana.Analyze(cmd.Context(), string(data))
	if err != nil {
		return err
	}

	log.Debug("Analysis took %s", time.Since(start))

	f, err := formatter.New(outputFormat)
	if err != nil {
		return err
	}
	if tf, ok := f.(*formatter.TextFormatter); ok && cfg.Analysis.DisplayWidth > 0 {
		tf.DisplayWidth = cfg.Analysis.DisplayWidth
	}
	if err := f.Format(os.Stdout, report); err != nil {
		return err
	}

	if saveRun {
		if err := persistRun(cmd, reportPath, report, opts); err != nil {
			return err
		}
	}

	if storageKey != "" {
		if err := archiveReport(cmd, reportPath); err != nil {
			return err
		}
	}

	return nil
}

// reportOptions merges config defaults with any flags set on the command
// line.
func reportOptions() hotspot.Options {
	opts := hotspot.DefaultOptions()

	if len(cfg.Analysis.Relevance) > 0 {
		opts.Relevance = cfg.Analysis.Relevance
	}
	if cfg.Analysis.TopN > 0 {
		opts.TopN = cfg.Analysis.TopN
	}
	if cfg.Analysis.FallbackTopN > 0 {
		opts.FallbackTopN = cfg.Analysis.FallbackTopN
	}
	if cfg.Analysis.CategoryTopN > 0 {
		opts.CategoryTopN = cfg.Analysis.CategoryTopN
	}

	if len(relevance) > 0 {
		opts.Relevance = relevance
	}
	if topN > 0 {
		opts.TopN = topN
	}
	if fallbackTopN > 0 {
		opts.FallbackTopN = fallbackTopN
	}

	return opts
}

// persistRun writes the finished run to the history database.
func persistRun(cmd *cobra.Command, reportPath string, report *model.HotspotReport, opts hotspot.Options) error {
	log := GetLogger()

	db, err := repository.NewGormDB(&cfg.Database)
	if err != nil {
		return err
	}
	repos := repository.NewRepositories(db)
	defer repos.Close()

	run := model.RunFromReport(reportPath, report)
	if !report.Fallback {
		for i := range run.Hotspots {
			run.Hotspots[i].Category = hotspot.Classify(run.Hotspots[i].Frame, opts.Rules)
		}
	}

	if err := repos.Runs.SaveRun(cmd.Context(), run); err != nil {
		return err
	}

	log.Info("Saved run %d (%s)", run.ID, filepath.Base(reportPath))
	return nil
}

// archiveReport uploads the raw report document to the archive store.
func archiveReport(cmd *cobra.Command, reportPath string) error {
	log := GetLogger()

	store, err := storage.NewStorage(&cfg.Storage)
	if err != nil {
		return err
	}

	if err := store.UploadFile(cmd.Context(), storageKey, reportPath); err != nil {
		return err
	}

	log.Info("Archived report to %s", store.GetURL(storageKey))
	return nil
}
