package inventory

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/microsoft/go-mssqldb"

	"github.com/renekerr/sqlinv/internal/model"
	"github.com/renekerr/sqlinv/internal/util"
)

// DSN builds a trusted-connection string for a server in the estate.
func DSN(server string) string {
	return fmt.Sprintf("server=%s;trusted_connection=yes;app name=sqlinv", server)
}

// OpenServer opens a connection to any SQL Server host in the estate.
func OpenServer(server string) (*sql.DB, error) {
	return sql.Open("sqlserver", DSN(server))
}

// Store gives access to the central inventory table on the target server.
type Store struct {
	db    *sql.DB
	table string
}

// Open connects to the target server hosting the inventory table.
func Open(server, table string) (*Store, error) {
	db, err := OpenServer(server)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", server, err)
	}
	return NewStore(db, table), nil
}

// NewStore wraps an existing connection. Used by tests.
func NewStore(db *sql.DB, table string) *Store {
	return &Store{db: db, table: table}
}

func (s *Store) Close() error {
	return s.db.Close()
}

// TrackedServers returns every server name the inventory already tracks.
func (s *Store) TrackedServers(ctx context.Context) ([]string, error) {
	return s.serverNames(ctx, fmt.Sprintf(queryTrackedServers, s.table))
}

// OlapServers returns the server names tracked as analysis hosts.
func (s *Store) OlapServers(ctx context.Context) ([]string, error) {
	return s.serverNames(ctx, fmt.Sprintf(queryOlapServers, s.table))
}

func (s *Store) serverNames(ctx context.Context, query string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, util.NormalizeName(name))
	}
	return names, rows.Err()
}

// ServerDetails pulls one detail row per server from the inventory table.
func (s *Store) ServerDetails(ctx context.Context) ([]model.ServerDetail, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(queryServerDetails, s.table))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []model.ServerDetail
	for rows.Next() {
		var d model.ServerDetail
		cols := []any{
			&d.ServerName, &d.RespContact1, &d.Email1, &d.RespContact2, &d.Email2,
			&d.Env, &d.SQLVersion, &d.InstanceType, &d.Lstnr, &d.BackupRetDays,
			&d.ServiceDesk, &d.RelAppServ, &d.Comments, &d.Maintenance,
		}
		nullable := make([]any, len(cols))
		strs := make([]sql.NullString, len(cols))
		for i := range cols {
			nullable[i] = &strs[i]
		}
		if err := rows.Scan(nullable...); err != nil {
			return nil, err
		}
		for i, c := range cols {
			*(c.(*string)) = strs[i].String
		}
		d.ServerName = util.NormalizeName(d.ServerName)
		details = append(details, d)
	}
	return details, rows.Err()
}

// Reload truncates the inventory table and executes the generated INSERT
// statements in one transaction, mirroring the full-refresh semantics.
func (s *Store) Reload(ctx context.Context, statements []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "TRUNCATE TABLE "+s.table); err != nil {
		return fmt.Errorf("truncating %s: %w", s.table, err)
	}
	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("insert %d/%d: %w", i+1, len(statements), err)
		}
	}
	return tx.Commit()
}
