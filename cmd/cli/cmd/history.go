package cmd

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/flamegraph-analysis/internal/repository"
)

var historyLimit int

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history [run-id]",
	Short: "List saved analysis runs",
	Long: `List runs saved with 'analyze --save', newest first. With a run ID
the full ranked hotspot list of that run is printed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVar(&historyLimit, "limit", 10, "Maximum number of runs to list")
}

func runHistory(cmd *cobra.Command, args []string) error {
	db, err := repository.NewGormDB(&cfg.Database)
	if err != nil {
		return err
	}
	repos := repository.NewRepositories(db)
	defer repos.Close()

	if len(args) == 1 {
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid run ID %q: %w", args[0], err)
		}
		return showRun(cmd, repos, id)
	}

	runs, err := repos.Runs.ListRuns(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(os.Stdout, "No saved runs.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCREATED\tREPORT\tTOTAL\tRELEVANT\tMODE")
	for _, run := range runs {
		mode := "ranked"
		if run.Fallback {
			mode = "fallback"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%s\n",
			run.ID,
			run.CreatedAt.Format("2006-01-02 15:04:05"),
			run.ReportPath,
			run.TotalSamples,
			run.RelevantSamples,
			mode,
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, repos *repository.Repositories, id int64) error {
	run, err := repos.Runs.GetRun(cmd.Context(), id)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "Run %d\n", run.ID)
	fmt.Fprintf(os.Stdout, "  Report:   %s\n", run.ReportPath)
	fmt.Fprintf(os.Stdout, "  Created:  %s\n", run.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(os.Stdout, "  Pool:     %d frames\n", run.PoolSize)
	fmt.Fprintf(os.Stdout, "  Samples:  %d total, %d relevant\n", run.TotalSamples, run.RelevantSamples)
	if run.Fallback {
		fmt.Fprintf(os.Stdout, "  Mode:     fallback (no relevant frames)\n")
	}
	fmt.Fprintln(os.Stdout)

	for _, h := range run.Hotspots {
		fmt.Fprintf(os.Stdout, "%2d. %6d  %s\n", h.Rank, h.Samples, h.Frame)
		if h.Category != "" {
			fmt.Fprintf(os.Stdout, "    [%s]\n", h.Category)
		}
	}

	return nil
}
