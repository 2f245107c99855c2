package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestGenerateConfigLdapMode(t *testing.T) {
	answers := WizardAnswers{
		TargetServer:  "SRINV01PRO",
		TargetTable:   "dbo.DatabaseInventory",
		DirectoryMode: "ldap",
		LdapURL:       "ldap://dc01.mutua.es",
		BindUser:      "svc_inventory",
		BaseDN:        "OU=BBDD,DC=mutua,DC=es",
		RetentionDays: 30,
	}

	out, err := GenerateConfig(answers)
	require.NoError(t, err)

	assert.Contains(t, out, "server: SRINV01PRO")
	assert.Contains(t, out, "table: dbo.DatabaseInventory")
	assert.Contains(t, out, "url: ldap://dc01.mutua.es")
	assert.Contains(t, out, "bind_user: svc_inventory")
	assert.Contains(t, out, "base_dn: OU=BBDD,DC=mutua,DC=es")
	assert.Contains(t, out, "backup_retention_days: 30")
	assert.NotContains(t, out, "use_powershell")
	assert.NotContains(t, out, "file:")
}

func TestGenerateConfigFileMode(t *testing.T) {
	answers := WizardAnswers{
		TargetServer:  "SRINV01PRO",
		TargetTable:   "dbo.DatabaseInventory",
		DirectoryMode: "file",
		ServersFile:   "output/ad_ou_servers.txt",
	}

	out, err := GenerateConfig(answers)
	require.NoError(t, err)

	assert.Contains(t, out, "file: output/ad_ou_servers.txt")
	assert.NotContains(t, out, "url:")
}

func TestGenerateConfigOlapServers(t *testing.T) {
	answers := WizardAnswers{
		TargetServer:  "SRINV01PRO",
		TargetTable:   "dbo.DatabaseInventory",
		DirectoryMode: "powershell",
		OlapServers:   []string{"SRSSAS01PRO", "SRSSAS02PRE"},
	}

	out, err := GenerateConfig(answers)
	require.NoError(t, err)

	assert.Contains(t, out, "use_powershell: true")
	assert.Contains(t, out, "- SRSSAS01PRO")
	assert.Contains(t, out, "- SRSSAS02PRE")
	assert.Contains(t, out, "msmdpump.dll")
}

func TestGenerateConfigDefaultsAndParses(t *testing.T) {
	answers := WizardAnswers{
		TargetServer: "SRINV01PRO",
		TargetTable:  "dbo.DatabaseInventory",
	}

	out, err := GenerateConfig(answers)
	require.NoError(t, err)

	assert.Contains(t, out, "name_prefix: SR")
	assert.Contains(t, out, "cluster_keyword: CLU")
	assert.Contains(t, out, "backup_retention_days: 15")

	var parsed map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &parsed))
	assert.Contains(t, parsed, "target")
	assert.Contains(t, parsed, "sources")
	assert.Contains(t, parsed, "servers")
}
