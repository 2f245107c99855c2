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
	"github.com/renekerr/sqlinv/internal/model"
	"github.com/renekerr/sqlinv/internal/reconcile"
	"github.com/renekerr/sqlinv/internal/ui"
)

var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Find servers missing from the inventory and prepare their registration",
	Long: `Compare the directory enumeration against the inventory table and the
curated exclusion lists. Every server that exists in the directory but is
tracked nowhere gets probed for its version, cluster status and hosted
databases, and an INSERT statement is generated per database so it can be
registered.`,
	RunE: runReconcile,
}

func init() {
	rootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprint(os.Stderr, ui.FormatError("Failed to load config", err.Error(), "run 'sqlinv init' to create a config file"))
		return err
	}
	if cfg.Target.Server == "" || cfg.Target.Table == "" {
		return fmt.Errorf("target.server and target.table must be configured")
	}

	dir := &collector.DirectoryCollector{
		URL:           cfg.Sources.Directory.URL,
		BindUser:      cfg.Sources.Directory.BindUser,
		BindPassword:  cfg.Sources.Directory.BindPassword,
		BaseDN:        cfg.Sources.Directory.BaseDN,
		NamePrefix:    cfg.Sources.Directory.NamePrefix,
		File:          cfg.Sources.Directory.File,
		UsePowershell: cfg.Sources.Directory.UsePowershell,
		ExtraHosts:    cfg.Sources.SQLServer.ExtraHosts,
	}

	fmt.Println(ui.Bold("Enumerating directory..."))
	inv := model.NewInventory()
	if err := dir.Collect(inv); err != nil {
		return fmt.Errorf("directory enumeration failed: %w", err)
	}
	inv.Clusters, inv.ServerObjects = model.Categorize(inv.Candidates, cfg.Sources.SQLServer.ClusterKeyword)

	out := cfg.Output
	for _, f := range []struct {
		path  string
		lines []string
	}{
		{out.Join(out.ADServersFile), inv.Candidates},
		{out.Join(out.ClusterFile), inv.Clusters},
		{out.Join(out.NonClusterFile), inv.ServerObjects},
	} {
		if err := inventory.WriteLines(f.path, f.lines); err != nil {
			return fmt.Errorf("writing %s: %w", f.path, err)
		}
	}

	store, err := inventory.Open(cfg.Target.Server, cfg.Target.Table)
	if err != nil {
		return fmt.Errorf("connecting to inventory server: %w", err)
	}
	defer store.Close()

	ctx := context.Background()
	tracked, err := store.TrackedServers(ctx)
	if err != nil {
		return fmt.Errorf("reading tracked servers: %w", err)
	}
	olap, err := store.OlapServers(ctx)
	if err != nil {
		return fmt.Errorf("reading analysis servers: %w", err)
	}
	if err := writeInventoryLists(out, tracked, olap); err != nil {
		return err
	}

	untracked := reconcile.Untracked(inv.ServerObjects,
		tracked, olap, cfg.Servers.ToReview, cfg.Servers.ToExclude)

	if len(untracked) == 0 {
		ui.Success("Inventory is up to date, no untracked servers found")
		return nil
	}

	fmt.Printf("%s\n", ui.Bold(fmt.Sprintf("%d untracked servers:", len(untracked))))
	for _, s := range untracked {
		fmt.Printf("  %s  %s\n", s, ui.Hint(model.EnvironmentFor(s)))
	}

	contacts := cfg.Servers.ResponsibleContacts
	if len(contacts) != len(untracked) {
		return fmt.Errorf("servers.responsible_contacts has %d entries but %d servers are untracked; list one contact per server, in order",
			len(contacts), len(untracked))
	}

	prober := reconcile.NewProber(time.Duration(cfg.Sources.SQLServer.TimeoutSeconds) * time.Second)

	regs := make([]model.Registration, 0, len(untracked))
	for i, server := range untracked {
		ui.Progress(i+1, len(untracked), server)

		contact, err := dir.LookupContact(contacts[i])
		if err != nil {
			ui.Warn(fmt.Sprintf("contact lookup for %q: %v", contacts[i], err))
			contact = model.Contact{Name: contacts[i]}
		}

		reg := model.Registration{
			Server:      server,
			Contact:     contact,
			Environment: model.EnvironmentFor(server),
		}
		if err := prober.Probe(ctx, &reg); err != nil {
			inv.AddFailure(server, "sql", err)
		}
		regs = append(regs, reg)
	}

	statements := inventory.BuildRegistrationInserts(cfg.Target.Table, regs, cfg.Target.BackupRetentionDays)

	fmt.Println()
	for _, stmt := range statements {
		fmt.Println(stmt)
	}

	insertPath := out.Join(out.InsertStatementsFile)
	if err := inventory.WriteLines(insertPath, statements); err != nil {
		return fmt.Errorf("writing %s: %w", insertPath, err)
	}

	if len(inv.Failures) > 0 {
		failPath := out.Join(out.ConnectionFailuresFile)
		if err := inventory.WriteLines(failPath, inv.FailureLines()); err != nil {
			return fmt.Errorf("writing %s: %w", failPath, err)
		}
		ui.Warn(fmt.Sprintf("%d servers could not be probed, see %s", len(inv.Failures), failPath))
	}

	ui.Success(fmt.Sprintf("Generated %d statements in %s, review before executing", len(statements), insertPath))
	return nil
}

// writeInventoryLists saves the tracked and analysis server lists fetched
// from the inventory table, so a run can be audited against what the
// database reported at the time.
func writeInventoryLists(out config.Output, tracked, olap []string) error {
	if err := inventory.WriteLines(out.Join(out.TrackedServersFile), tracked); err != nil {
		return fmt.Errorf("writing %s: %w", out.Join(out.TrackedServersFile), err)
	}
	if err := inventory.WriteLines(out.Join(out.OlapServersFile), olap); err != nil {
		return fmt.Errorf("writing %s: %w", out.Join(out.OlapServersFile), err)
	}
	return nil
}
