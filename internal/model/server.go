package model

// ServerType classifies a directory object by its role in the estate.
type ServerType string

const (
	ServerTypeCluster ServerType = "cluster" // cluster network object, not a connectable host
	ServerTypeServer  ServerType = "server"  // relational SQL Server host
	ServerTypeOlap    ServerType = "olap"    // analysis services (SSAS/tabular) host
)

// NoDatabaseFound is the sentinel database name recorded when a reachable
// server hosts no user databases.
const NoDatabaseFound = "No database found"

// DatabaseRecord is one (server, database) pair collected from a live host.
type DatabaseRecord struct {
	ServerName   string
	DatabaseName string
}

// ServerDetail mirrors one row of the central inventory table: ownership,
// contact and version metadata keyed by server name.
type ServerDetail struct {
	ServerName    string
	RespContact1  string
	Email1        string
	RespContact2  string
	Email2        string
	Env           string
	SQLVersion    string
	InstanceType  string
	Lstnr         string
	BackupRetDays string
	ServiceDesk   string
	RelAppServ    string
	Comments      string
	Maintenance   string
}

// MergedRow is a database record left-joined with its server's detail row.
// Field order matches the inventory table column order; the csv tags drive
// the merged dataset file.
type MergedRow struct {
	ServerName    string `csv:"ServerName"`
	DatabaseName  string `csv:"DatabaseName"`
	RespContact1  string `csv:"RespContact1"`
	Email1        string `csv:"Email1"`
	RespContact2  string `csv:"RespContact2"`
	Email2        string `csv:"Email2"`
	Env           string `csv:"Env"`
	SQLVersion    string `csv:"SQLVersion"`
	InstanceType  string `csv:"InstanceType"`
	Lstnr         string `csv:"Lstnr"`
	BackupRetDays string `csv:"BackupRetDays"`
	ServiceDesk   string `csv:"ServiceDesk"`
	RelAppServ    string `csv:"RelAppServ"`
	Comments      string `csv:"Comments"`
	Maintenance   string `csv:"Maintenance"`
}

// Contact is a responsible person resolved through the directory.
type Contact struct {
	Name  string
	Email string
}

// Registration holds everything needed to register one untracked server:
// contact assignment, derived environment, and the facts probed live.
type Registration struct {
	Server       string
	Contact      Contact
	Environment  string
	SQLVersion   string
	InstanceType string
	Databases    []string
}
