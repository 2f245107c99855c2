package config

import (
	"errors"
	"path/filepath"

	"github.com/spf13/viper"
)

type Config struct {
	Output     Output  `mapstructure:"output"`
	Target     Target  `mapstructure:"target"`
	Sources    Sources `mapstructure:"sources"`
	Servers    Lists   `mapstructure:"servers"`
	RawSources map[string]any
}

// Output names every generated file. Dir is prepended to each name.
type Output struct {
	Dir                    string `mapstructure:"dir"`
	ADServersFile          string `mapstructure:"ad_servers_file"`
	ClusterFile            string `mapstructure:"cluster_file"`
	NonClusterFile         string `mapstructure:"non_cluster_file"`
	OperationalFile        string `mapstructure:"operational_servers_file"`
	TrackedServersFile     string `mapstructure:"tracked_servers_file"`
	OlapServersFile        string `mapstructure:"olap_servers_file"`
	DatabasesFile          string `mapstructure:"databases_file"`
	ServerDetailsFile      string `mapstructure:"server_details_file"`
	MergedCSVFile          string `mapstructure:"merged_csv_file"`
	InsertStatementsFile   string `mapstructure:"insert_statements_file"`
	ConnectionFailuresFile string `mapstructure:"connection_failures_file"`
}

// Join resolves a configured file name against the output directory.
func (o Output) Join(name string) string {
	if o.Dir == "" {
		return name
	}
	return filepath.Join(o.Dir, name)
}

type Target struct {
	Server              string `mapstructure:"server"`
	Table               string `mapstructure:"table"`
	TestingTable        string `mapstructure:"testing_table"`
	BackupRetentionDays int    `mapstructure:"backup_retention_days"`
}

type Sources struct {
	Directory DirectorySource `mapstructure:"directory"`
	SQLServer SQLServerSource `mapstructure:"sqlserver"`
	Olap      OlapSource      `mapstructure:"olap"`
}

type DirectorySource struct {
	URL           string `mapstructure:"url"`
	BindUser      string `mapstructure:"bind_user"`
	BindPassword  string `mapstructure:"bind_password"`
	BaseDN        string `mapstructure:"base_dn"`
	NamePrefix    string `mapstructure:"name_prefix"`
	File          string `mapstructure:"file"`
	UsePowershell bool   `mapstructure:"use_powershell"`
}

type SQLServerSource struct {
	ClusterKeyword string   `mapstructure:"cluster_keyword"`
	ExtraHosts     []string `mapstructure:"extra_hosts"`
	TimeoutSeconds int      `mapstructure:"timeout_seconds"`
}

type OlapSource struct {
	Servers  []string `mapstructure:"servers"`
	Endpoint string   `mapstructure:"endpoint"` // host substituted for %s
}

// Lists are the manually curated exclusion lists. Nothing guarantees they
// are disjoint; membership in any of them excludes a server.
type Lists struct {
	ToReview            []string `mapstructure:"servers_to_review"`
	ToExclude           []string `mapstructure:"servers_to_exclude"`
	ResponsibleContacts []string `mapstructure:"responsible_contacts"`
}

func Load() (*Config, error) {
	if viper.ConfigFileUsed() == "" {
		return nil, errors.New("no config file found")
	}

	cfg := &Config{
		Output: Output{
			Dir:                    "output",
			ADServersFile:          "ad_ou_servers.txt",
			ClusterFile:            "clusters_objects.txt",
			NonClusterFile:         "server_objects.txt",
			OperationalFile:        "operational_servers.txt",
			TrackedServersFile:     "tracked_servers.txt",
			OlapServersFile:        "ssas_olap_servers.txt",
			DatabasesFile:          "databases.txt",
			ServerDetailsFile:      "server_details.txt",
			MergedCSVFile:          "merged_dataset.csv",
			InsertStatementsFile:   "insert_statements.sql",
			ConnectionFailuresFile: "conex_failures.txt",
		},
	}
	cfg.Target.BackupRetentionDays = 15
	cfg.Sources.SQLServer.ClusterKeyword = "CLU"
	cfg.Sources.SQLServer.TimeoutSeconds = 15
	cfg.Sources.Directory.NamePrefix = "SR"
	cfg.Sources.Olap.Endpoint = "http://%s/olap/msmdpump.dll"

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}

	// Populate RawSources for the registry-based validation path
	cfg.RawSources = viper.GetStringMap("sources")

	return cfg, nil
}

// TableFor returns the production table unless testing mode is on.
func (c *Config) TableFor(testing bool) string {
	if testing && c.Target.TestingTable != "" {
		return c.Target.TestingTable
	}
	return c.Target.Table
}
