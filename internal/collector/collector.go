package collector

import (
	"fmt"
	"time"

	"github.com/renekerr/sqlinv/internal/config"
	"github.com/renekerr/sqlinv/internal/inventory"
	"github.com/renekerr/sqlinv/internal/model"
	"github.com/renekerr/sqlinv/internal/reconcile"
)

// CollectResult reports the outcome of one pipeline stage.
type CollectResult struct {
	Name    string
	Skipped bool
	Detail  string // e.g. "312 servers", "no olap servers configured"
	Err     error
}

// Collect runs the full-refresh pipeline: enumerate the directory, split
// clusters from servers, derive the operational list, collect databases
// from relational and analysis servers, load the registration details
// and merge everything. Stages depend on each other's output, so they
// run in a fixed order; only the directory stage is fatal.
func Collect(cfg *config.Config) (*model.Inventory, []CollectResult, error) {
	inv := model.NewInventory()
	var results []CollectResult

	dir := &DirectoryCollector{
		URL:           cfg.Sources.Directory.URL,
		BindUser:      cfg.Sources.Directory.BindUser,
		BindPassword:  cfg.Sources.Directory.BindPassword,
		BaseDN:        cfg.Sources.Directory.BaseDN,
		NamePrefix:    cfg.Sources.Directory.NamePrefix,
		File:          cfg.Sources.Directory.File,
		UsePowershell: cfg.Sources.Directory.UsePowershell,
		ExtraHosts:    cfg.Sources.SQLServer.ExtraHosts,
	}
	if err := dir.Collect(inv); err != nil {
		werr := &CollectorError{Collector: "directory", Err: err}
		results = append(results, CollectResult{Name: "directory", Err: werr})
		return nil, results, werr
	}
	results = append(results, CollectResult{
		Name:   "directory",
		Detail: fmt.Sprintf("%d candidate servers", len(inv.Candidates)),
	})

	inv.Clusters, inv.ServerObjects = model.Categorize(inv.Candidates, cfg.Sources.SQLServer.ClusterKeyword)
	inv.OlapServers = cfg.Sources.Olap.Servers
	inv.Operational = reconcile.Untracked(inv.ServerObjects,
		cfg.Servers.ToReview, cfg.Sources.Olap.Servers, cfg.Servers.ToExclude)

	sqlc := &SQLServerCollector{Servers: inv.Operational, Open: inventory.OpenServer}
	if cfg.Sources.SQLServer.TimeoutSeconds > 0 {
		sqlc.Timeout = time.Duration(cfg.Sources.SQLServer.TimeoutSeconds) * time.Second
	}
	if err := sqlc.Collect(inv); err != nil {
		results = append(results, CollectResult{Name: "sqlserver", Err: &CollectorError{Collector: "sqlserver", Err: err}})
	} else {
		results = append(results, CollectResult{
			Name:   "sqlserver",
			Detail: fmt.Sprintf("%d servers, %d databases", len(inv.Operational), len(inv.Databases)),
		})
	}

	if len(cfg.Sources.Olap.Servers) == 0 {
		results = append(results, CollectResult{Name: "olap", Skipped: true, Detail: "no servers configured"})
	} else {
		before := len(inv.Databases)
		olap := &OlapCollector{Servers: cfg.Sources.Olap.Servers, Endpoint: cfg.Sources.Olap.Endpoint}
		if err := olap.Collect(inv); err != nil {
			results = append(results, CollectResult{Name: "olap", Err: &CollectorError{Collector: "olap", Err: err}})
		} else {
			results = append(results, CollectResult{
				Name:   "olap",
				Detail: fmt.Sprintf("%d catalogs", len(inv.Databases)-before),
			})
		}
	}

	details := &DetailsCollector{Server: cfg.Target.Server, Table: cfg.Target.Table}
	if err := details.Collect(inv); err != nil {
		results = append(results, CollectResult{Name: "details", Err: &CollectorError{Collector: "details", Err: err}})
	} else {
		results = append(results, CollectResult{
			Name:   "details",
			Detail: fmt.Sprintf("%d server detail rows", len(inv.Details)),
		})
	}

	Merge(inv)
	results = append(results, CollectResult{
		Name:   "merge",
		Detail: fmt.Sprintf("%d merged rows", len(inv.Merged)),
	})

	return inv, results, nil
}
