package collector

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renekerr/sqlinv/internal/model"
)

func TestDirectoryCollectFromFile(t *testing.T) {
	inv := model.NewInventory()
	dc := &DirectoryCollector{
		File:       filepath.Join("testdata", "servers.txt"),
		ExtraHosts: []string{"srsql99pro"},
	}

	require.NoError(t, dc.Collect(inv))

	assert.Equal(t, []string{
		"SRSQL01PRO", "SRSQL02PRE", "SRSQLCLU01PRO", "SRSQL03DES", "SRSQL99PRO",
	}, inv.Candidates, "names normalize to upper case, blanks dropped, extra hosts appended last")
}

func TestDirectoryCollectMissingFile(t *testing.T) {
	inv := model.NewInventory()
	dc := &DirectoryCollector{File: filepath.Join("testdata", "nope.txt")}

	err := dc.Collect(inv)
	require.Error(t, err)
	assert.Empty(t, inv.Candidates)
}

func TestDirectoryEnabled(t *testing.T) {
	tests := []struct {
		name    string
		sources map[string]any
		want    bool
	}{
		{"no section", map[string]any{}, false},
		{"empty section", map[string]any{"directory": map[string]any{}}, false},
		{"url set", map[string]any{"directory": map[string]any{"url": "ldap://dc01"}}, true},
		{"file set", map[string]any{"directory": map[string]any{"file": "servers.txt"}}, true},
		{"powershell", map[string]any{"directory": map[string]any{"use_powershell": true}}, true},
	}

	dc := &DirectoryCollector{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, dc.Enabled(tt.sources))
		})
	}
}

func TestDirectoryValidate(t *testing.T) {
	t.Run("url and base_dn missing", func(t *testing.T) {
		dc := &DirectoryCollector{}
		fields := make([]string, 0)
		for _, e := range dc.Validate() {
			fields = append(fields, e.Field)
		}
		assert.Contains(t, fields, "sources.directory.url")
		assert.Contains(t, fields, "sources.directory.base_dn")
	})

	t.Run("existing file is enough", func(t *testing.T) {
		dc := &DirectoryCollector{File: filepath.Join("testdata", "servers.txt")}
		assert.Empty(t, dc.Validate())
	})
}

func TestDirectoryConfigure(t *testing.T) {
	dc := &DirectoryCollector{}
	require.NoError(t, dc.Configure(map[string]any{
		"url":         "ldap://dc01.mutua.es",
		"base_dn":     "OU=BBDD,DC=mutua,DC=es",
		"name_prefix": "SR",
	}))

	assert.Equal(t, "ldap://dc01.mutua.es", dc.URL)
	assert.Equal(t, "OU=BBDD,DC=mutua,DC=es", dc.BaseDN)
	assert.Equal(t, "SR", dc.NamePrefix)
}

func TestLookupContactRequiresURL(t *testing.T) {
	dc := &DirectoryCollector{}
	_, err := dc.LookupContact("Jane Roe")
	require.Error(t, err)
}
