package model

import (
	"fmt"
	"sort"
	"strings"
)

// Inventory is the top-level aggregate of everything collected in one run.
// The name slices keep discovery order so the generated files are stable
// across runs against the same estate.
type Inventory struct {
	Candidates    []string // raw directory enumeration, uppercased
	Clusters      []string // cluster network objects
	ServerObjects []string // non-cluster directory objects
	Operational   []string // server objects minus review/olap/excluded lists
	OlapServers   []string

	Databases []DatabaseRecord
	Details   map[string]*ServerDetail // keyed by server name
	Merged    []MergedRow

	Failures []Failure
}

// NewInventory creates an initialized Inventory.
func NewInventory() *Inventory {
	return &Inventory{
		Details: make(map[string]*ServerDetail),
	}
}

// Failure records one per-server connection problem. Failures are data, not
// errors: the collection loops append and continue.
type Failure struct {
	Server string
	Stage  string // "sql", "olap", "details"
	Err    string
}

func (f Failure) String() string {
	return fmt.Sprintf("%s - %s - %s", f.Server, f.Stage, f.Err)
}

// AddDatabase appends a collected database record.
func (inv *Inventory) AddDatabase(server, database string) {
	inv.Databases = append(inv.Databases, DatabaseRecord{ServerName: server, DatabaseName: database})
}

// AddFailure records a connection failure for later reporting.
func (inv *Inventory) AddFailure(server, stage string, err error) {
	inv.Failures = append(inv.Failures, Failure{Server: server, Stage: stage, Err: err.Error()})
}

// FailureLines renders the failure list for the connection-failures file.
func (inv *Inventory) FailureLines() []string {
	lines := make([]string, 0, len(inv.Failures))
	for _, f := range inv.Failures {
		lines = append(lines, f.String())
	}
	return lines
}

// DetailLines renders the loaded server details as comma-separated lines
// in inventory column order, sorted by server name.
func (inv *Inventory) DetailLines() []string {
	servers := make([]string, 0, len(inv.Details))
	for s := range inv.Details {
		servers = append(servers, s)
	}
	sort.Strings(servers)

	lines := make([]string, 0, len(servers))
	for _, s := range servers {
		d := inv.Details[s]
		lines = append(lines, strings.Join([]string{
			d.ServerName, d.RespContact1, d.Email1, d.RespContact2, d.Email2,
			d.Env, d.SQLVersion, d.InstanceType, d.Lstnr, d.BackupRetDays,
			d.ServiceDesk, d.RelAppServ, d.Comments, d.Maintenance,
		}, ","))
	}
	return lines
}

// DatabaseLines renders collected records as "SERVER,database" lines.
func (inv *Inventory) DatabaseLines() []string {
	lines := make([]string, 0, len(inv.Databases))
	for _, rec := range inv.Databases {
		lines = append(lines, rec.ServerName+","+rec.DatabaseName)
	}
	return lines
}
