package inventory

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renekerr/sqlinv/internal/model"
)

func TestLinesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "servers.txt")

	err := WriteLines(path, []string{"SRSQL01PRO", "SRSQL02PRE"})
	require.NoError(t, err)

	lines, err := ReadLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"SRSQL01PRO", "SRSQL02PRE"}, lines)
}

func TestReadLinesSkipsBlanks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "servers.txt")
	require.NoError(t, os.WriteFile(path, []byte("SRSQL01PRO\n\n  \nSRSQL02PRE\n"), 0644))

	lines, err := ReadLines(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"SRSQL01PRO", "SRSQL02PRE"}, lines)
}

func TestMergedCSVRoundTrip(t *testing.T) {
	rows := []model.MergedRow{
		{
			ServerName:    "SRSQL01PRO",
			DatabaseName:  "AdventureWorks",
			RespContact1:  "John O'Brien",
			Email1:        "john@example.com",
			Env:           "PRO",
			SQLVersion:    "Microsoft SQL Server 2019",
			InstanceType:  "SA",
			BackupRetDays: "15",
		},
		{
			ServerName:   "SROLAP01PRO",
			DatabaseName: model.NoDatabaseFound,
		},
	}

	path := filepath.Join(t.TempDir(), "merged_dataset.csv")
	require.NoError(t, WriteMergedCSV(path, rows))

	// Header keeps the inventory column order
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	header := strings.SplitN(string(data), "\n", 2)[0]
	assert.Equal(t,
		"ServerName,DatabaseName,RespContact1,Email1,RespContact2,Email2,Env,"+
			"SQLVersion,InstanceType,Lstnr,BackupRetDays,ServiceDesk,RelAppServ,Comments,Maintenance",
		strings.TrimRight(header, "\r"))

	got, err := ReadMergedCSV(path)
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}
