package reconcile

import (
	"context"
	"database/sql"
	"time"

	"github.com/renekerr/sqlinv/internal/inventory"
	"github.com/renekerr/sqlinv/internal/model"
)

// Placeholder values recorded when an untracked server cannot be reached.
// The row is still emitted so the registration list stays complete.
const (
	UnknownVersion   = "Unknown version"
	UnknownStatus    = "Unknown status"
	ConnectionFailed = "Connection failed"
)

// Prober collects live facts from untracked servers, one at a time.
type Prober struct {
	Timeout time.Duration

	// Open is swapped out by tests.
	Open func(server string) (*sql.DB, error)
}

func NewProber(timeout time.Duration) *Prober {
	return &Prober{Timeout: timeout, Open: inventory.OpenServer}
}

// Probe fills one registration with the server's engine version, instance
// type and user databases. On connection failure the registration gets
// placeholder values and the error is returned for the failure log.
func (p *Prober) Probe(ctx context.Context, reg *model.Registration) error {
	if err := p.probe(ctx, reg); err != nil {
		reg.SQLVersion = UnknownVersion
		reg.InstanceType = UnknownStatus
		reg.Databases = []string{ConnectionFailed}
		return err
	}
	return nil
}

func (p *Prober) probe(ctx context.Context, reg *model.Registration) error {
	db, err := p.Open(reg.Server)
	if err != nil {
		return err
	}
	defer db.Close()

	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	if err := db.QueryRowContext(ctx, inventory.QueryVersion).Scan(&reg.SQLVersion); err != nil {
		return err
	}
	if err := db.QueryRowContext(ctx, inventory.QueryInstanceType).Scan(&reg.InstanceType); err != nil {
		return err
	}

	rows, err := db.QueryContext(ctx, inventory.QueryUserDatabases)
	if err != nil {
		return err
	}
	defer rows.Close()

	reg.Databases = nil
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		reg.Databases = append(reg.Databases, name)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if len(reg.Databases) == 0 {
		reg.Databases = []string{"No user database found"}
	}
	return nil
}
