package collector

import (
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renekerr/sqlinv/internal/model"
)

func TestSQLServerCollect(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("database_id > 4").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Sales").AddRow("HR"))

	inv := model.NewInventory()
	sc := &SQLServerCollector{
		Servers: []string{"SRSQL01PRO"},
		Open:    func(string) (*sql.DB, error) { return db, nil },
	}
	require.NoError(t, sc.Collect(inv))

	assert.Empty(t, inv.Failures)
	assert.Equal(t, []model.DatabaseRecord{
		{ServerName: "SRSQL01PRO", DatabaseName: "Sales"},
		{ServerName: "SRSQL01PRO", DatabaseName: "HR"},
	}, inv.Databases)
}

func TestSQLServerCollectNoUserDatabases(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("database_id > 4").
		WillReturnRows(sqlmock.NewRows([]string{"name"}))

	inv := model.NewInventory()
	sc := &SQLServerCollector{
		Servers: []string{"SRSQL02PRE"},
		Open:    func(string) (*sql.DB, error) { return db, nil },
	}
	require.NoError(t, sc.Collect(inv))

	assert.Equal(t, []model.DatabaseRecord{
		{ServerName: "SRSQL02PRE", DatabaseName: model.NoDatabaseFound},
	}, inv.Databases)
}

func TestSQLServerCollectContinuesPastFailures(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("database_id > 4").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("Payroll"))

	open := func(server string) (*sql.DB, error) {
		if server == "SRSQL01PRO" {
			return nil, assert.AnError
		}
		return db, nil
	}

	inv := model.NewInventory()
	sc := &SQLServerCollector{Servers: []string{"SRSQL01PRO", "SRSQL02PRE"}, Open: open}
	require.NoError(t, sc.Collect(inv))

	require.Len(t, inv.Failures, 1)
	assert.Equal(t, "SRSQL01PRO", inv.Failures[0].Server)
	assert.Equal(t, "sql", inv.Failures[0].Stage)
	assert.Equal(t, []model.DatabaseRecord{
		{ServerName: "SRSQL02PRE", DatabaseName: "Payroll"},
	}, inv.Databases)
}
