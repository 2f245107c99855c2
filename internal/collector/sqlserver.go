package collector

import (
	"context"
	"database/sql"
	"time"

	"github.com/renekerr/sqlinv/internal/inventory"
	"github.com/renekerr/sqlinv/internal/model"
	"github.com/renekerr/sqlinv/internal/ui"
)

func init() {
	Register(func() RegisteredCollector { return &SQLServerCollector{Open: inventory.OpenServer} })
}

// SQLServerCollector lists user databases on every operational server, one
// connection at a time. A server that cannot be reached is recorded in the
// failure list and the loop continues; a reachable server with no user
// databases gets the sentinel record.
type SQLServerCollector struct {
	Servers []string
	Timeout time.Duration

	// Open is swapped out by tests.
	Open func(server string) (*sql.DB, error)
}

func (sc *SQLServerCollector) Metadata() CollectorMetadata {
	return CollectorMetadata{
		Name:        "sqlserver",
		DisplayName: "SQL Server",
		Description: "Collects hosted user databases from each relational server",
		ConfigKey:   "sqlserver",
		DetectHint:  "sqlcmd",
	}
}

func (sc *SQLServerCollector) Enabled(sources map[string]any) bool {
	_, ok := sources["sqlserver"].(map[string]any)
	return ok
}

func (sc *SQLServerCollector) Configure(section map[string]any) error {
	if section == nil {
		return nil
	}
	if v, ok := section["timeout_seconds"].(int); ok && v > 0 {
		sc.Timeout = time.Duration(v) * time.Second
	}
	return nil
}

func (sc *SQLServerCollector) Validate() []ValidationError {
	return nil
}

func (sc *SQLServerCollector) Collect(inv *model.Inventory) error {
	for i, server := range sc.Servers {
		ui.Progress(i+1, len(sc.Servers), server)
		if err := sc.collectServer(inv, server); err != nil {
			inv.AddFailure(server, "sql", err)
		}
	}
	return nil
}

func (sc *SQLServerCollector) collectServer(inv *model.Inventory, server string) error {
	db, err := sc.Open(server)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx := context.Background()
	if sc.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, sc.Timeout)
		defer cancel()
	}

	rows, err := db.QueryContext(ctx, inventory.QueryUserDatabases)
	if err != nil {
		return err
	}
	defer rows.Close()

	found := false
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		inv.AddDatabase(server, name)
		found = true
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if !found {
		inv.AddDatabase(server, model.NoDatabaseFound)
	}
	return nil
}
