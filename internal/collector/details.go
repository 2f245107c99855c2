package collector

import (
	"context"

	"github.com/renekerr/sqlinv/internal/inventory"
	"github.com/renekerr/sqlinv/internal/model"
)

// DetailsCollector loads the per-server registration columns (contacts,
// environment, retention and friends) from the inventory table so the
// merge pass can join them onto the collected databases. A failure here
// is recorded like any connection failure: the merge then produces rows
// with empty metadata columns instead of aborting the run.
type DetailsCollector struct {
	Server string
	Table  string

	// Open is a test seam; defaults to the inventory connector.
	Open func(server, table string) (*inventory.Store, error)
}

func (dc *DetailsCollector) Collect(inv *model.Inventory) error {
	open := dc.Open
	if open == nil {
		open = inventory.Open
	}
	store, err := open(dc.Server, dc.Table)
	if err != nil {
		inv.AddFailure(dc.Server, "details", err)
		return nil
	}
	defer store.Close()

	details, err := store.ServerDetails(context.Background())
	if err != nil {
		inv.AddFailure(dc.Server, "details", err)
		return nil
	}
	for i := range details {
		d := details[i]
		inv.Details[d.ServerName] = &d
	}
	return nil
}
