package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renekerr/sqlinv/internal/config"
	"github.com/renekerr/sqlinv/internal/inventory"
)

func TestWriteInventoryLists(t *testing.T) {
	out := config.Output{
		Dir:                t.TempDir(),
		TrackedServersFile: "tracked_servers.txt",
		OlapServersFile:    "ssas_olap_servers.txt",
	}

	tracked := []string{"SRSQL01PRO", "SRSQL02PRE"}
	olap := []string{"SRSSAS01PRO"}
	require.NoError(t, writeInventoryLists(out, tracked, olap))

	got, err := inventory.ReadLines(filepath.Join(out.Dir, "tracked_servers.txt"))
	require.NoError(t, err)
	assert.Equal(t, tracked, got)

	got, err = inventory.ReadLines(filepath.Join(out.Dir, "ssas_olap_servers.txt"))
	require.NoError(t, err)
	assert.Equal(t, olap, got)
}
