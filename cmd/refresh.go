package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/renekerr/sqlinv/internal/collector"
	"github.com/renekerr/sqlinv/internal/config"
	"github.com/renekerr/sqlinv/internal/inventory"
	"github.com/renekerr/sqlinv/internal/ui"
)

var (
	refreshTesting  bool
	refreshSkipLoad bool
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Collect every hosted database and reload the inventory table",
	Long: `Run the full refresh: enumerate the directory, collect the databases
hosted on every operational and analysis server, merge them with the
registered server details, and reload the inventory table from the
generated INSERT statements.

Every intermediate dataset is written to the output directory, so a run
can be audited file by file.`,
	RunE: runRefresh,
}

func init() {
	rootCmd.AddCommand(refreshCmd)

	refreshCmd.Flags().BoolVar(&refreshTesting, "testing", false, "load the testing table instead of the production table")
	refreshCmd.Flags().BoolVar(&refreshSkipLoad, "skip-load", false, "generate all files but leave the inventory table untouched")
}

func runRefresh(cmd *cobra.Command, args []string) error {
	started := time.Now()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Failed to load config", err.Error(), "run 'sqlinv init' to create a config file"))
		return err
	}
	if cfg.Target.Server == "" || cfg.Target.Table == "" {
		return fmt.Errorf("target.server and target.table must be configured")
	}

	fmt.Println(ui.Bold("Collecting estate data..."))

	inv, results, err := collector.Collect(cfg)
	for _, r := range results {
		if r.Skipped {
			ui.StageSkipped(r.Name, r.Detail)
		} else if r.Err != nil {
			fmt.Fprint(os.Stderr, ui.FormatError(r.Name+" failed", r.Err.Error(), ""))
		} else {
			ui.StageDone(r.Name, r.Detail)
		}
	}
	if err != nil {
		return err
	}

	out := cfg.Output
	files := []struct {
		path  string
		lines []string
	}{
		{out.Join(out.ADServersFile), inv.Candidates},
		{out.Join(out.ClusterFile), inv.Clusters},
		{out.Join(out.NonClusterFile), inv.ServerObjects},
		{out.Join(out.OperationalFile), inv.Operational},
		{out.Join(out.OlapServersFile), inv.OlapServers},
		{out.Join(out.DatabasesFile), inv.DatabaseLines()},
		{out.Join(out.ServerDetailsFile), inv.DetailLines()},
		{out.Join(out.ConnectionFailuresFile), inv.FailureLines()},
	}
	for _, f := range files {
		if err := inventory.WriteLines(f.path, f.lines); err != nil {
			return fmt.Errorf("writing %s: %w", f.path, err)
		}
	}

	csvPath := out.Join(out.MergedCSVFile)
	if err := inventory.WriteMergedCSV(csvPath, inv.Merged); err != nil {
		return fmt.Errorf("writing %s: %w", csvPath, err)
	}

	// Read the dataset back from disk so the statements are built from
	// exactly what an auditor sees in the CSV.
	rows, err := inventory.ReadMergedCSV(csvPath)
	if err != nil {
		return fmt.Errorf("reading %s back: %w", csvPath, err)
	}

	table := cfg.TableFor(refreshTesting)
	statements := inventory.BuildInserts(table, rows, time.Now())

	insertPath := out.Join(out.InsertStatementsFile)
	if err := inventory.WriteLines(insertPath, statements); err != nil {
		return fmt.Errorf("writing %s: %w", insertPath, err)
	}

	if len(inv.Failures) > 0 {
		ui.Warn(fmt.Sprintf("%d servers could not be reached, see %s", len(inv.Failures), out.Join(out.ConnectionFailuresFile)))
	}

	if refreshSkipLoad {
		ui.Success(fmt.Sprintf("Generated %d statements for %s (load skipped)", len(statements), table))
		return nil
	}

	store, err := inventory.Open(cfg.Target.Server, table)
	if err != nil {
		return fmt.Errorf("connecting to inventory server: %w", err)
	}
	defer store.Close()

	if err := store.Reload(context.Background(), statements); err != nil {
		return fmt.Errorf("reloading %s: %w", table, err)
	}

	ui.Success(fmt.Sprintf("Reloaded %s with %d rows in %s", table, len(statements), time.Since(started).Round(time.Second)))
	return nil
}
